package io

import (
	"context"
	"embed"
	"fmt"
	"io/fs"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/slok/wellhub/internal/model"
)

//go:embed catalog.yaml
var defaultCatalogFS embed.FS

// DefaultCatalogPath is the path of the embedded default catalog.
const DefaultCatalogPath = "catalog.yaml"

// CatalogYAMLRepository loads the smart tools catalog from a YAML file.
type CatalogYAMLRepository struct {
	fs   fs.FS
	path string
}

// NewCatalogYAMLRepository creates a new YAML catalog repository.
func NewCatalogYAMLRepository(filesystem fs.FS, path string) *CatalogYAMLRepository {
	return &CatalogYAMLRepository{fs: filesystem, path: path}
}

// NewDefaultCatalogRepository returns the repository of the catalog shipped with the binary.
func NewDefaultCatalogRepository() *CatalogYAMLRepository {
	return NewCatalogYAMLRepository(defaultCatalogFS, DefaultCatalogPath)
}

// ListTools loads the catalog and returns validated tools in file order.
func (r *CatalogYAMLRepository) ListTools(ctx context.Context) ([]model.Tool, error) {
	data, err := fs.ReadFile(r.fs, r.path)
	if err != nil {
		return nil, fmt.Errorf("reading catalog file: %w", err)
	}

	if ctx.Err() != nil {
		return nil, ctx.Err()
	}

	var cfg CatalogConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing YAML: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("invalid catalog: %w", err)
	}

	return cfg.toModel(), nil
}

// CatalogConfig represents the YAML structure of the tool catalog.
type CatalogConfig struct {
	Tools []ToolConfig `yaml:"tools"`
}

// ToolConfig represents the YAML structure of a tool.
type ToolConfig struct {
	ID          string `yaml:"id"`
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
	Category    string `yaml:"category"`
	CreditCost  int    `yaml:"credit_cost"`
}

func (c CatalogConfig) validate() error {
	if len(c.Tools) == 0 {
		return fmt.Errorf("at least one tool is required")
	}

	ids := map[string]bool{}
	for i, t := range c.Tools {
		if t.ID == "" {
			return fmt.Errorf("tool %d: id is required", i)
		}
		if ids[t.ID] {
			return fmt.Errorf("tool %q is duplicated", t.ID)
		}
		ids[t.ID] = true

		if t.Name == "" {
			return fmt.Errorf("tool %q: name is required", t.ID)
		}
		if t.CreditCost < 0 {
			return fmt.Errorf("tool %q: credit_cost can't be negative, got: %d", t.ID, t.CreditCost)
		}
	}
	return nil
}

func (c CatalogConfig) toModel() []model.Tool {
	tools := make([]model.Tool, 0, len(c.Tools))
	for _, t := range c.Tools {
		tools = append(tools, model.Tool{
			ID:          t.ID,
			Name:        t.Name,
			Description: t.Description,
			Category:    t.Category,
			CreditCost:  t.CreditCost,
		})
	}
	return tools
}

// AnswersYAMLRepository loads pre filled registration wizard answers from YAML files.
type AnswersYAMLRepository struct {
	fs fs.FS
}

// NewAnswersYAMLRepository creates a new YAML answers repository.
func NewAnswersYAMLRepository(filesystem fs.FS) *AnswersYAMLRepository {
	return &AnswersYAMLRepository{fs: filesystem}
}

// GetAnswers loads the answers file as wizard fields. Only the set values are returned.
func (r *AnswersYAMLRepository) GetAnswers(ctx context.Context, path string) (model.Fields, error) {
	data, err := fs.ReadFile(r.fs, path)
	if err != nil {
		return nil, fmt.Errorf("reading answers file: %w", err)
	}

	if ctx.Err() != nil {
		return nil, ctx.Err()
	}

	var a AnswersConfig
	if err := yaml.Unmarshal(data, &a); err != nil {
		return nil, fmt.Errorf("parsing YAML: %w", err)
	}

	return a.toModel(), nil
}

// AnswersConfig represents the YAML structure of registration answers.
type AnswersConfig struct {
	Username        string `yaml:"username"`
	Email           string `yaml:"email"`
	Password        string `yaml:"password"`
	ConfirmPassword string `yaml:"confirm_password"`
	FirstName       string `yaml:"first_name"`
	LastName        string `yaml:"last_name"`
	DisplayName     string `yaml:"display_name"`
	Bio             string `yaml:"bio"`
	Department      string `yaml:"department"`
	Role            string `yaml:"role"`
	EmployeeID      string `yaml:"employee_id"`
}

func (a AnswersConfig) toModel() model.Fields {
	// Files usually don't repeat the password.
	if a.ConfirmPassword == "" {
		a.ConfirmPassword = a.Password
	}

	all := map[model.Field]string{
		model.FieldUsername:        a.Username,
		model.FieldEmail:           a.Email,
		model.FieldPassword:        a.Password,
		model.FieldConfirmPassword: a.ConfirmPassword,
		model.FieldFirstName:       a.FirstName,
		model.FieldLastName:        a.LastName,
		model.FieldDisplayName:     a.DisplayName,
		model.FieldBio:             a.Bio,
		model.FieldDepartment:      a.Department,
		model.FieldRole:            strings.ToLower(a.Role),
		model.FieldEmployeeID:      a.EmployeeID,
	}

	fields := model.Fields{}
	for k, v := range all {
		if v != "" {
			fields[k] = v
		}
	}
	return fields
}
