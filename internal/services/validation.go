package services

import (
	"errors"
	"strings"
	"unicode"

	"github.com/go-playground/validator/v10"
	apierrors "github.com/yukikurage/workspace-task-api/internal/errors"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// FieldViolation describes one failed validation rule.
type FieldViolation struct {
	Field string `json:"field"`
	Rule  string `json:"rule"`
}

// validateInput checks the `validate` tags of input and converts failures into
// an InvalidInput DomainError listing every violated field.
func validateInput(input interface{}) error {
	err := validate.Struct(input)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return apierrors.NewDomainError(apierrors.KindInvalidInput, err.Error())
	}

	violations := make([]FieldViolation, len(fieldErrs))
	names := make([]string, len(fieldErrs))
	for i, fe := range fieldErrs {
		violations[i] = FieldViolation{Field: snakeCase(fe.Field()), Rule: fe.Tag()}
		names[i] = violations[i].Field
	}

	return apierrors.NewDomainErrorWithDetails(
		apierrors.KindInvalidInput,
		"invalid "+strings.Join(names, ", "),
		violations,
	)
}

func snakeCase(name string) string {
	var b strings.Builder
	runes := []rune(name)
	for i, r := range runes {
		if unicode.IsUpper(r) {
			if i > 0 && (unicode.IsLower(runes[i-1]) || (i+1 < len(runes) && unicode.IsLower(runes[i+1]))) {
				b.WriteByte('_')
			}
			r = unicode.ToLower(r)
		}
		b.WriteRune(r)
	}
	return b.String()
}

// trimPtr returns a trimmed copy of an optional string.
func trimPtr(s *string) *string {
	if s == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*s)
	return &trimmed
}
