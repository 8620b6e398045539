package validation

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/go-playground/validator/v10"

	"github.com/voxday/planner-api/internal/models"
)

var (
	// Validate is a shared validator instance
	Validate *validator.Validate
)

func init() {
	Validate = validator.New()

	if err := Validate.RegisterValidation("call_kind", validateCallKind); err != nil {
		panic(fmt.Sprintf("failed to register call_kind validator: %v", err))
	}
}

// validateCallKind validates that a string is a valid CallKind enum value
func validateCallKind(fl validator.FieldLevel) bool {
	switch models.CallKind(fl.Field().String()) {
	case models.CallKindMorning, models.CallKindEvening:
		return true
	default:
		return false
	}
}

// SanitizeText sanitizes text input by trimming whitespace and removing control characters
func SanitizeText(text string) string {
	text = strings.TrimSpace(text)

	var sanitized strings.Builder
	for _, r := range text {
		if unicode.IsControl(r) && r != '\n' && r != '\t' {
			continue
		}
		sanitized.WriteRune(r)
	}

	return sanitized.String()
}
