package models

import "time"

// OperationKind is the closed set of email-gated actions this service knows
// how to complete. ScanIP is deliberately absent: it is synchronous and never
// creates an operation.
type OperationKind string

const (
	OperationKindCheckEmailCredentials OperationKind = "check_email_credentials"
	OperationKindGetRawPages           OperationKind = "get_raw_pages"
	OperationKindScanCompany           OperationKind = "scan_company"
)

func (k OperationKind) Valid() bool {
	switch k {
	case OperationKindCheckEmailCredentials, OperationKindGetRawPages, OperationKindScanCompany:
		return true
	}
	return false
}

// OperationStatus transitions only forward: pending -> consumed or
// pending -> expired. Consumed and expired are terminal.
type OperationStatus string

const (
	OperationStatusPending  OperationStatus = "pending"
	OperationStatusConsumed OperationStatus = "consumed"
	OperationStatusExpired  OperationStatus = "expired"
)

// OperationPayload carries the kind-specific fields of an operation. Which
// fields are set is fixed by the constructor for each kind; the payload is
// immutable once the operation is created.
type OperationPayload struct {
	Email       string `json:"email,omitempty" bson:"email,omitempty"`
	Domain      string `json:"domain,omitempty" bson:"domain,omitempty"`
	CompanyName string `json:"company_name,omitempty" bson:"company_name,omitempty"`
	UserEmail   string `json:"user_email,omitempty" bson:"user_email,omitempty"`
	Language    string `json:"language,omitempty" bson:"language,omitempty"`
}

// NotifyAddress is the mailbox that proved ownership and receives both the
// operation code and, later, the result of the redeemed operation.
func (p OperationPayload) NotifyAddress() string {
	if p.UserEmail != "" {
		return p.UserEmail
	}
	return p.Email
}

// Operation is a pending email-gated request awaiting redemption. Only the
// sha256 of the one-time code is kept; the raw code never touches storage.
type Operation struct {
	CodeHash  string           `json:"code_hash"`
	Kind      OperationKind    `json:"kind"`
	Payload   OperationPayload `json:"payload"`
	Status    OperationStatus  `json:"status"`
	CreatedAt time.Time        `json:"created_at"`
}

func NewCheckEmailCredentialsOperation(email string, now time.Time) *Operation {
	return &Operation{
		Kind: OperationKindCheckEmailCredentials,
		Payload: OperationPayload{
			Email: email,
		},
		Status:    OperationStatusPending,
		CreatedAt: now,
	}
}

func NewGetRawPagesOperation(email, domain string, now time.Time) *Operation {
	return &Operation{
		Kind: OperationKindGetRawPages,
		Payload: OperationPayload{
			Email:  email,
			Domain: domain,
		},
		Status:    OperationStatusPending,
		CreatedAt: now,
	}
}

func NewScanCompanyOperation(companyName, domain, userEmail, language string, now time.Time) *Operation {
	return &Operation{
		Kind: OperationKindScanCompany,
		Payload: OperationPayload{
			CompanyName: companyName,
			Domain:      domain,
			UserEmail:   userEmail,
			Language:    language,
		},
		Status:    OperationStatusPending,
		CreatedAt: now,
	}
}

// OperationAudit is the insert-only record written when an operation reaches a
// terminal status. The redeem path never reads it back, so a terminal code can
// never match again.
type OperationAudit struct {
	ID        string           `bson:"_id"`
	CodeHash  string           `bson:"code_hash"`
	Kind      OperationKind    `bson:"kind"`
	Payload   OperationPayload `bson:"payload"`
	Status    OperationStatus  `bson:"status"`
	Outcome   string           `bson:"outcome,omitempty"`
	CreatedAt time.Time        `bson:"created_at"`
	ClosedAt  time.Time        `bson:"closed_at"`
}
