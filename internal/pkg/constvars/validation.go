package constvars

var CustomValidationErrorMessages = map[string]string{
	"required":       "is required",
	"email":          "must be a valid email address",
	"ip":             "must be a valid IP address",
	"max":            "must be at most %s characters",
	"min":            "must be at least %s characters",
	"oneof":          "must be one of %s",
	"business_email": "must be a valid business email address",
	"language_code":  "must be at most 2 characters",
}

var TagsWithParams = map[string]bool{
	"max":   true,
	"min":   true,
	"oneof": true,
}
