package utils

import (
	"net/mail"
	"time"
	"unicode"
)

// IsValidEmail reports whether s parses as an RFC 5322 address.
func IsValidEmail(s string) bool {
	_, err := mail.ParseAddress(s)
	return err == nil
}

// IsStrongPassword requires at least 8 characters with a letter, a digit,
// and a symbol.
func IsStrongPassword(s string) bool {
	if len(s) < 8 {
		return false
	}
	var hasLetter, hasDigit, hasSymbol bool
	for _, r := range s {
		switch {
		case unicode.IsLetter(r):
			hasLetter = true
		case unicode.IsDigit(r):
			hasDigit = true
		case unicode.IsPunct(r) || unicode.IsSymbol(r):
			hasSymbol = true
		}
	}
	return hasLetter && hasDigit && hasSymbol
}

// FormattedJoinDate renders a join date the way the admin console shows it.
func FormattedJoinDate(t time.Time) string {
	return t.Format("January 2, 2006")
}

func PtrString(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
