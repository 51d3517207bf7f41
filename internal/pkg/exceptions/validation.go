package exceptions

import (
	"cybersentry-service/internal/pkg/constvars"
	"strings"

	"github.com/go-playground/validator/v10"
)

func FormatFirstValidationError(err error) string {
	if err == nil {
		return constvars.ErrClientCannotProcessRequest
	}

	validationErrors, ok := err.(validator.ValidationErrors)
	if !ok || len(validationErrors) == 0 {
		return constvars.ErrClientCannotProcessRequest
	}

	first := validationErrors[0]
	fieldName := strings.ToLower(first.Field())
	tag := first.Tag()
	customMessage, ok := constvars.CustomValidationErrorMessages[tag]
	if !ok {
		customMessage = "is invalid"
	}
	if constvars.TagsWithParams[tag] {
		if tag == "oneof" {
			customMessage = strings.Replace(customMessage, "%s", strings.Join(strings.Fields(first.Param()), ", "), 1)
		} else {
			customMessage = strings.Replace(customMessage, "%s", first.Param(), 1)
		}
	}
	return fieldName + " " + customMessage
}
