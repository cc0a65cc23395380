package handlers

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// bindingErrorMessage flattens a gin binding failure into a caller-friendly
// message, unpacking field-level validation errors when present.
func bindingErrorMessage(err error) string {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		parts := make([]string, len(verrs))
		for i, fe := range verrs {
			switch fe.Tag() {
			case "required":
				parts[i] = fmt.Sprintf("field '%s' is required", fe.Field())
			case "gt":
				parts[i] = fmt.Sprintf("field '%s' must be greater than %s", fe.Field(), fe.Param())
			default:
				parts[i] = fmt.Sprintf("field '%s' failed validation '%s'", fe.Field(), fe.Tag())
			}
		}
		return "Invalid request: " + strings.Join(parts, "; ")
	}
	return "Invalid request format: " + err.Error()
}
