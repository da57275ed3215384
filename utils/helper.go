package utils

import (
	"fmt"
	"path/filepath"
	"regexp"
	"strings"
	"unicode"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/ttacon/libphonenumber"
)

var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

func IsValidEmail(email string) bool {
	return emailRegex.MatchString(email)
}

// NormalizePhoneNumber formats a phone number into national format; input is
// returned unchanged when it cannot be parsed (best-effort normalization).
func NormalizePhoneNumber(phoneNumber, countryCode string) string {
	num, err := libphonenumber.Parse(phoneNumber, countryCode)
	if err != nil || !libphonenumber.IsValidNumber(num) {
		return phoneNumber
	}
	return libphonenumber.Format(num, libphonenumber.NATIONAL)
}

// GenerateUniqueFilename keeps the original extension so MIME detection and
// browser previews keep working on the stored object.
func GenerateUniqueFilename(originalName string) string {
	ext := filepath.Ext(originalName)
	return uuid.NewString() + ext
}

// ProcessValidationErrors flattens validator errors into a field->message
// map for inline form error display.
func ProcessValidationErrors(err error) map[string]string {
	out := map[string]string{}
	validationErrors, ok := err.(validator.ValidationErrors)
	if !ok {
		out["error"] = err.Error()
		return out
	}
	for _, fieldErr := range validationErrors {
		out[LowercaseFirst(fieldErr.Field())] = fmt.Sprintf("failed on %s", fieldErr.Tag())
	}
	return out
}

func NewTrue() *bool {
	b := true
	return &b
}

func NewFalse() *bool {
	b := false
	return &b
}

func UniqueSlice[T comparable](slice []T) []T {
	seen := make(map[T]struct{}, len(slice))
	result := make([]T, 0, len(slice))
	for _, v := range slice {
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		result = append(result, v)
	}
	return result
}

func DereferencePtr[T any](ptr *T, defaults ...T) T {
	if ptr != nil {
		return *ptr
	}
	var def T
	if len(defaults) > 0 {
		def = defaults[0]
	}
	return def
}

func LowercaseFirst(s string) string {
	if s == "" {
		return s
	}
	return strings.ToLower(s[:1]) + s[1:]
}

// CamelToSnake applies the generic column naming rule: an underscore is
// inserted before each uppercase letter, which is then lowercased. Entities
// with bespoke column names (nested JSON columns, numbered addresses) opt
// out per field.
func CamelToSnake(s string) string {
	var b strings.Builder
	for i, r := range s {
		if unicode.IsUpper(r) {
			if i > 0 {
				b.WriteByte('_')
			}
			b.WriteRune(unicode.ToLower(r))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}
