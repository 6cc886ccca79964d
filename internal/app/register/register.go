package register

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/oklog/ulid/v2"
	"golang.org/x/crypto/bcrypt"

	"github.com/slok/wellhub/internal/log"
	"github.com/slok/wellhub/internal/model"
	"github.com/slok/wellhub/internal/storage"
)

const welcomeCreditsDescription = "Welcome credits"

// ServiceConfig is the configuration for the register service.
type ServiceConfig struct {
	Repository storage.UserRepository
	// Credits is optional, when set new users get the welcome credits on an
	// account named as their username.
	Credits        storage.CreditRepository
	WelcomeCredits int
	// BcryptCost is the password hashing cost.
	BcryptCost int
	Logger     log.Logger
}

func (c *ServiceConfig) defaults() error {
	if c.Repository == nil {
		return fmt.Errorf("repository is required")
	}

	if c.BcryptCost == 0 {
		c.BcryptCost = bcrypt.DefaultCost
	}
	if c.BcryptCost < bcrypt.MinCost || c.BcryptCost > bcrypt.MaxCost {
		return fmt.Errorf("bcrypt cost must be between %d and %d", bcrypt.MinCost, bcrypt.MaxCost)
	}

	if c.WelcomeCredits < 0 {
		return fmt.Errorf("welcome credits can't be negative")
	}

	if c.Logger == nil {
		c.Logger = log.Noop
	}
	c.Logger = c.Logger.WithValues(log.Kv{"svc": "app.Register"})

	return nil
}

// Service registers new platform users.
type Service struct {
	repo           storage.UserRepository
	credits        storage.CreditRepository
	welcomeCredits int
	bcryptCost     int
	logger         log.Logger
}

// NewService creates a new register service.
func NewService(cfg ServiceConfig) (*Service, error) {
	if err := cfg.defaults(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &Service{
		repo:           cfg.Repository,
		credits:        cfg.Credits,
		welcomeCredits: cfg.WelcomeCredits,
		bcryptCost:     cfg.BcryptCost,
		logger:         cfg.Logger,
	}, nil
}

// Register validates and stores a new user. The returned errors are meant to be
// shown to the user as they are.
func (s *Service) Register(ctx context.Context, r model.Registration) (*model.User, error) {
	r.Username = strings.TrimSpace(r.Username)
	r.Email = strings.TrimSpace(r.Email)
	r.DisplayName = strings.TrimSpace(r.DisplayName)
	if r.Role == "" {
		r.Role = model.RoleUser
	}

	if err := r.Validate(); err != nil {
		return nil, err
	}

	// Uniqueness.
	_, err := s.repo.GetUserByUsername(ctx, r.Username)
	switch {
	case err == nil:
		return nil, fmt.Errorf("username %q is already taken: %w", r.Username, model.ErrAlreadyExists)
	case !errors.Is(err, model.ErrNotFound):
		return nil, fmt.Errorf("could not check username: %w", err)
	}

	_, err = s.repo.GetUserByEmail(ctx, r.Email)
	switch {
	case err == nil:
		return nil, fmt.Errorf("an account with email %q already exists: %w", r.Email, model.ErrAlreadyExists)
	case !errors.Is(err, model.ErrNotFound):
		return nil, fmt.Errorf("could not check email: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(r.Password), s.bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("could not hash password: %w", err)
	}

	u := model.User{
		ID:           ulid.Make().String(),
		Username:     r.Username,
		Email:        r.Email,
		PasswordHash: hash,
		DisplayName:  r.DisplayName,
		FirstName:    r.FirstName,
		LastName:     r.LastName,
		Bio:          r.Bio,
		Department:   r.Department,
		Role:         r.Role,
		EmployeeID:   r.EmployeeID,
		CreatedAt:    time.Now().UTC(),
	}

	if err := s.repo.CreateUser(ctx, u); err != nil {
		if errors.Is(err, model.ErrAlreadyExists) {
			return nil, fmt.Errorf("username or email is already registered: %w", err)
		}
		return nil, fmt.Errorf("could not store user: %w", err)
	}

	s.logger.Infof("Registered user %s (%s)", u.Username, u.ID)

	// The user is already registered, a failed grant doesn't fail the registration.
	if s.credits != nil && s.welcomeCredits > 0 {
		if _, err := s.credits.AddCredits(ctx, u.Username, s.welcomeCredits, welcomeCreditsDescription); err != nil {
			s.logger.Warningf("Could not grant welcome credits to %s: %s", u.Username, err)
		}
	}

	return &u, nil
}

// CheckPassword reports if the password matches the user password hash.
func CheckPassword(u model.User, password string) bool {
	return bcrypt.CompareHashAndPassword(u.PasswordHash, []byte(password)) == nil
}
