package model_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/slok/wellhub/internal/model"
)

func registrationFixture() model.Registration {
	return model.Registration{
		Username:    "jdoe",
		Email:       "jdoe@example.com",
		Password:    "Sup3r$ecret",
		DisplayName: "John Doe",
		Department:  "Engineering",
		Role:        model.RoleUser,
	}
}

func TestRegistrationValidate(t *testing.T) {
	tests := map[string]struct {
		reg    func() model.Registration
		expErr bool
	}{
		"A valid registration should not fail": {
			reg:    registrationFixture,
			expErr: false,
		},

		"A short username should fail": {
			reg: func() model.Registration {
				r := registrationFixture()
				r.Username = "jd"
				return r
			},
			expErr: true,
		},

		"An invalid email should fail": {
			reg: func() model.Registration {
				r := registrationFixture()
				r.Email = "jdoe.example.com"
				return r
			},
			expErr: true,
		},

		"A short password should fail": {
			reg: func() model.Registration {
				r := registrationFixture()
				r.Password = "1234567"
				return r
			},
			expErr: true,
		},

		"A blank display name should fail": {
			reg: func() model.Registration {
				r := registrationFixture()
				r.DisplayName = "   "
				return r
			},
			expErr: true,
		},

		"A missing department should fail": {
			reg: func() model.Registration {
				r := registrationFixture()
				r.Department = ""
				return r
			},
			expErr: true,
		},

		"An unknown role should fail": {
			reg: func() model.Registration {
				r := registrationFixture()
				r.Role = "superuser"
				return r
			},
			expErr: true,
		},
	}

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			reg := test.reg()
			err := reg.Validate()

			if test.expErr {
				assert.Error(t, err)
				assert.True(t, errors.Is(err, model.ErrNotValid))
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
