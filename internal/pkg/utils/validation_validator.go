package utils

import (
	"github.com/go-playground/validator/v10"
)

var validate *validator.Validate

func init() {
	validate = validator.New()
	validate.RegisterValidation("business_email", validateBusinessEmail)
	validate.RegisterValidation("language_code", validateLanguageCode)
}

func ValidateStruct(s interface{}) error {
	return validate.Struct(s)
}

func validateBusinessEmail(fl validator.FieldLevel) bool {
	return IsBusinessEmail(fl.Field().String())
}

func validateLanguageCode(fl validator.FieldLevel) bool {
	return IsValidLanguageCode(fl.Field().String())
}
