// Package auth holds the credential rules of the user registry: password
// strength scoring, email syntax, and password hashing.
package auth

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

// MinPasswordLength is the length a password needs to satisfy the length check.
const MinPasswordLength = 8

// MaxPasswordBytes is the longest password bcrypt can hash. It is enforced for
// every hasher so accounts stay portable between them.
const MaxPasswordBytes = 72

// Level is the coarse strength bucket derived from a Score.
type Level int

const (
	LevelWeak   Level = 1
	LevelMedium Level = 2
	LevelStrong Level = 3
)

// MinRegistrationLevel is the weakest password accepted at registration.
const MinRegistrationLevel = LevelMedium

func (l Level) String() string {
	switch l {
	case LevelStrong:
		return "strong"
	case LevelMedium:
		return "medium"
	default:
		return "weak"
	}
}

// Checks reports which strength rules a password satisfies.
type Checks struct {
	Length    bool `json:"length"`
	Lowercase bool `json:"lowercase"`
	Uppercase bool `json:"uppercase"`
	Numbers   bool `json:"numbers"`
	Special   bool `json:"special"`
}

// Strength is the scored result of PasswordStrength.
type Strength struct {
	Score  int    `json:"score"`
	Level  Level  `json:"level"`
	Label  string `json:"label"`
	Checks Checks `json:"checks"`
}

const specialChars = `!@#$%^&*(),.?":{}|<>`

// PasswordStrength scores a password by the number of satisfied checks.
// One point each; level is weak by default, medium from 3 and strong from 4.
func PasswordStrength(password string) Strength {
	c := Checks{
		Length:    utf8.RuneCountInString(password) >= MinPasswordLength,
		Lowercase: strings.IndexFunc(password, isASCIILower) >= 0,
		Uppercase: strings.IndexFunc(password, isASCIIUpper) >= 0,
		Numbers:   strings.IndexFunc(password, unicode.IsDigit) >= 0,
		Special:   strings.ContainsAny(password, specialChars),
	}

	score := 0
	for _, ok := range []bool{c.Length, c.Lowercase, c.Uppercase, c.Numbers, c.Special} {
		if ok {
			score++
		}
	}

	level := LevelWeak
	if score >= 3 {
		level = LevelMedium
	}
	if score >= 4 {
		level = LevelStrong
	}

	return Strength{Score: score, Level: level, Label: level.String(), Checks: c}
}

func isASCIILower(r rune) bool { return r >= 'a' && r <= 'z' }
func isASCIIUpper(r rune) bool { return r >= 'A' && r <= 'Z' }

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// ValidEmail reports whether s looks like local@domain.tld.
func ValidEmail(s string) bool {
	return emailPattern.MatchString(s)
}
