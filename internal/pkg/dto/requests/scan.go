package requests

// ScanCompany carries the query parameters of the company scan endpoint.
// Presence is checked separately (missing parameters are a 400, while
// present-but-invalid values are a 200 rejection message).
type ScanCompany struct {
	UserEmail string `json:"userEmail" validate:"required,business_email"`
	Language  string `json:"language" validate:"required,language_code"`
}
