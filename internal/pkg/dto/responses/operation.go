package responses

// OperationResultDTO is the flat body the gated scan endpoints return to the
// chat client, for both the "request sent" and validation rejection cases.
type OperationResultDTO struct {
	OperationResult string `json:"operationResult"`
}

type RedeemOperationDTO struct {
	OperationResult string `json:"operationResult"`
	Kind            string `json:"kind"`
	DownloadURL     string `json:"downloadUrl,omitempty"`
	ResultToken     string `json:"resultToken,omitempty"`
}
