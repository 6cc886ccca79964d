package wizard

import (
	"regexp"
	"unicode/utf8"

	"github.com/slok/wellhub/internal/model"
)

var (
	lowerRegexp  = regexp.MustCompile(`[a-z]`)
	upperRegexp  = regexp.MustCompile(`[A-Z]`)
	digitRegexp  = regexp.MustCompile(`[0-9]`)
	symbolRegexp = regexp.MustCompile(`[^A-Za-z0-9]`)
)

// Strength is the informational strength of a password.
type Strength struct {
	// Score is the number of criteria met, from 0 to 5.
	Score int
	Label string
	Color string
}

// PasswordStrength scores a password with one point per criteria met: length,
// lowercase, uppercase, digit and symbol. It never blocks the wizard.
func PasswordStrength(password string) Strength {
	score := 0
	if utf8.RuneCountInString(password) >= model.MinPasswordLength {
		score++
	}
	for _, r := range []*regexp.Regexp{lowerRegexp, upperRegexp, digitRegexp, symbolRegexp} {
		if r.MatchString(password) {
			score++
		}
	}

	switch {
	case score <= 1:
		return Strength{Score: score, Label: "Very weak", Color: "red"}
	case score == 2:
		return Strength{Score: score, Label: "Weak", Color: "orange"}
	case score == 3:
		return Strength{Score: score, Label: "Fair", Color: "yellow"}
	case score == 4:
		return Strength{Score: score, Label: "Good", Color: "blue"}
	default:
		return Strength{Score: score, Label: "Strong", Color: "green"}
	}
}
