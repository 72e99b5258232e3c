package utils

import (
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
)

var (
	ukNumberPattern = regexp.MustCompile(`^\+44\d{10}$`)
	validate        = validator.New()
)

// NormalizePhone prefixes a non-empty phone number with "+" when missing.
func NormalizePhone(phone string) string {
	phone = strings.TrimSpace(phone)
	if phone == "" || strings.HasPrefix(phone, "+") {
		return phone
	}
	return "+" + phone
}

// IsUKNumber reports whether phone is an E.164 UK number.
func IsUKNumber(phone string) bool {
	return ukNumberPattern.MatchString(phone)
}

// IsEmail reports whether s is a syntactically valid email address.
func IsEmail(s string) bool {
	return validate.Var(s, "required,email") == nil
}
