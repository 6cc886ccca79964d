package commands

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrompterAsk(t *testing.T) {
	tests := map[string]struct {
		input  string
		def    string
		exp    string
		expOut string
		expErr bool
	}{
		"Typed value should be returned trimmed": {
			input:  "  jdoe \n",
			exp:    "jdoe",
			expOut: "Username: ",
		},
		"Empty value should return the default": {
			input:  "\n",
			def:    "jdoe",
			exp:    "jdoe",
			expOut: "Username [jdoe]: ",
		},
		"Last line without newline should be read": {
			input: "jdoe",
			exp:   "jdoe",
		},
		"No more input should fail": {
			input:  "",
			expErr: true,
		},
	}

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			assert := assert.New(t)
			require := require.New(t)

			var out bytes.Buffer
			p := newPrompter(strings.NewReader(test.input), &out)
			got, err := p.Ask("Username", test.def)

			if test.expErr {
				require.Error(err)
				return
			}
			require.NoError(err)
			assert.Equal(test.exp, got)
			if test.expOut != "" {
				assert.Equal(test.expOut, out.String())
			}
		})
	}
}

func TestPrompterAskSecretWithoutTerminal(t *testing.T) {
	var out bytes.Buffer
	p := newPrompter(strings.NewReader("Secret123!\nSecret123!\n"), &out)

	pw, err := p.AskSecret("Password")
	require.NoError(t, err)
	confirm, err := p.AskSecret("Confirm password")
	require.NoError(t, err)

	assert.Equal(t, "Secret123!", pw)
	assert.Equal(t, pw, confirm)
	assert.NotContains(t, out.String(), "Secret123!")
}

func TestPrompterConfirm(t *testing.T) {
	tests := map[string]struct {
		input string
		def   bool
		exp   bool
	}{
		"Yes":                     {input: "y\n", exp: true},
		"Long yes any case":       {input: "YES\n", exp: true},
		"No":                      {input: "n\n", def: true, exp: false},
		"Empty uses default true": {input: "\n", def: true, exp: true},
		"Empty uses default false": {
			input: "\n",
			exp:   false,
		},
		"Invalid answer asks again": {input: "maybe\nyes\n", exp: true},
	}

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			var out bytes.Buffer
			p := newPrompter(strings.NewReader(test.input), &out)

			got, err := p.Confirm("Continue?", test.def)
			require.NoError(t, err)
			assert.Equal(t, test.exp, got)
		})
	}
}
