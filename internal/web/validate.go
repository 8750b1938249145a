package web

import (
	"strings"

	"github.com/go-playground/validator/v10"

	"dog-show-club/internal/apperr"
)

// validate es compartido: el validador es thread-safe y cachea metadata
// de structs, así que una sola instancia para toda la API.
var validate = validator.New(validator.WithRequiredStructEnabled())

// Validate corre las reglas declarativas de un request DTO y traduce
// violaciones a VALIDATION_ERROR con detalle por campo.
func Validate(v any) error {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}

	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return apperr.Wrap(apperr.KindInternal, "validator failure", err)
	}

	details := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		details[fieldName(fe)] = ruleMessage(fe)
	}
	return apperr.Validation("invalid request").WithDetails(details)
}

func fieldName(fe validator.FieldError) string {
	// Namespace viene como "createDogRequest.Microchip"; nos quedamos
	// con el campo en snake_case aproximado via tag json no disponible,
	// así que usamos el nombre del campo en minúsculas.
	parts := strings.Split(fe.Namespace(), ".")
	return toSnake(parts[len(parts)-1])
}

func ruleMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "email":
		return "must be a valid email"
	case "len":
		return "must be exactly " + fe.Param() + " characters"
	case "numeric":
		return "must contain only digits"
	case "oneof":
		return "must be one of: " + fe.Param()
	case "min":
		return "must be at least " + fe.Param()
	case "max":
		return "must be at most " + fe.Param()
	case "eq":
		return "must equal " + fe.Param()
	case "gt":
		return "must be greater than " + fe.Param()
	default:
		return "is invalid (" + fe.Tag() + ")"
	}
}

func toSnake(s string) string {
	var b strings.Builder
	for i, r := range s {
		if r >= 'A' && r <= 'Z' {
			if i > 0 {
				b.WriteByte('_')
			}
			b.WriteRune(r - 'A' + 'a')
		} else {
			b.WriteRune(r)
		}
	}
	return b.String()
}
