package constvars

const (
	LoggingRequestIDKey     = "request_id"
	LoggingMethodKey        = "method"
	LoggingEndpointKey      = "endpoint"
	LoggingRemoteAddrKey    = "remote_addr"
	LoggingUserAgentKey     = "user_agent"
	LoggingQueryKey         = "query"
	LoggingStatusCodeKey    = "status_code"
	LoggingDurationKey      = "duration"
	LoggingSuccessKey       = "success"
	LoggingEmailKey         = "email"
	LoggingIPKey            = "ip"
	LoggingOperationKindKey = "operation_kind"
	LoggingCodeHashKey      = "code_hash"
	LoggingRedisKey         = "redis_key"
	LoggingSweptKey         = "swept"
	LoggingQueueKey         = "queue"
	LoggingObjectNameKey    = "object_name"
	LoggingLockExpirationTimeKey = "lock_expiration_time"
)
