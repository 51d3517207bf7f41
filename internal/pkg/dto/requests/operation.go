package requests

type RedeemOperation struct {
	OperationCode string `json:"operationCode" validate:"required,alphanum,max=32"`
}
