package constvars

// Client-facing messages. Deliberately vague for infrastructure failures so
// internals do not leak through the API.
const (
	ErrClientSomethingWrongWithApplication = "Something went wrong with the application, please try again later"
	ErrClientCannotProcessRequest          = "Cannot process request, please check your request"
	ErrClientInvalidEmail                  = "The email address is not valid"
	ErrClientInvalidIP                     = "The IP address is not valid"
	ErrClientOperationNotFound             = "The operation code is not valid"
	ErrClientScanFeedUnavailable           = "The scan service is currently unavailable, please try again later"
	ErrClientServerLongRespond             = "Server takes too long to respond, please try again later"
)

// Developer messages, logged but never returned to the client.
const (
	ErrDevValidationFailed       = "Request validation failed"
	ErrDevCannotParseJSON        = "Failed to parse JSON request body"
	ErrDevCannotMarshalJSON      = "Failed to marshal data to JSON"
	ErrDevCannotUnmarshalJSON    = "Failed to unmarshal JSON data"
	ErrDevRedisSet               = "Failed to set value in Redis"
	ErrDevRedisGet               = "Failed to get value from Redis, key: %s"
	ErrDevRedisDelete            = "Failed to delete value in Redis"
	ErrDevRedisEval              = "Failed to run script in Redis"
	ErrDevRedisZAdd              = "Failed to add member to Redis sorted set"
	ErrDevRedisZRangeByScore     = "Failed to range Redis sorted set by score"
	ErrDevMongoInsert            = "Failed to insert document into MongoDB, collection: %s"
	ErrDevBuildHTTPRequest       = "Failed to build HTTP request"
	ErrDevSendHTTPRequest        = "Failed to send HTTP request"
	ErrDevDecodeResponse         = "Failed to decode response from %s"
	ErrDevScanFeedBadStatus      = "Scan feed responded with unexpected status: %d"
	ErrDevSMTPSendEmail          = "Failed to send email through SMTP host: %s"
	ErrDevMailerPublish          = "Failed to publish email payload to queue: %s"
	ErrDevOperationNotFound      = "No pending operation matches the supplied code"
	ErrDevOperationCodeCollision = "Could not mint a unique operation code after retries"
	ErrDevMinioCreateObject      = "Failed to create object in bucket: %s"
	ErrDevMinioPresignObject     = "Failed to presign object in bucket: %s"
	ErrDevGenerateToken          = "Failed to generate result access token"
	ErrDevServerDeadlineExceeded = "Server deadline exceeded while processing request"
	ErrDevServerProcess          = "Unexpected internal failure"
)

const (
	ResponseUnknown = "unknown"
)
