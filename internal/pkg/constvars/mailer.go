package constvars

const (
	EmailOperationCodeSubjectMessage = "[CYBERSENTRY] Your operation code"
	EmailScanResultSubjectMessage    = "[CYBERSENTRY] Your scan result is ready"
)

const (
	EmailSendBasicEmailSubjectFormat = "To: %s\r\nSubject: %s\r\n\r\n%s\r\n"
	EmailSendHTMLEmailSubjectFormat  = "To: %s\r\nSubject: %s\r\nMIME-version: 1.0;\r\nContent-Type: text/html; charset=\"UTF-8\";\r\n\r\n%s\r\n"

	EmailBodyOperationCode = "Your operation code is: %s\r\n\r\nInsert it in the chat to confirm the request. The code is valid for %d minutes and can only be used once. If you did not request this, please ignore this email."
	EmailBodyScanResult    = "Your request has been completed.\r\n\r\nDownload the result here: %s\r\n\r\nThe link expires in %d hours."
)
