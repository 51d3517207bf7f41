package constvars

// Operation result texts are part of the public contract with the chat client;
// do not reword without coordinating with it.
const (
	OperationResultRequestSent = "The request has been sent. Please check your email for the operation code to insert in the chat."

	OperationResultInvalidBusinessEmail = "Please check the parameters. The email must be a valid business email address."

	OperationResultInvalidCompanyScan = "Please check the parameters. The email must be a valid business email address and you must specify the language for the report."

	OperationResultRedeemed = "The operation code has been accepted. Your request is being processed and the result has been sent to your email."
)

const (
	OperationCodeSentSuccess = "Operation code sent"
	OperationRedeemedSuccess = "Operation redeemed"
)
