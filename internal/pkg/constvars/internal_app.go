package constvars

type contextKey string

const (
	CONTEXT_REQUEST_ID_KEY           contextKey = "request_id"
	CONTEXT_IS_CLIENT_REQUEST_ID_KEY contextKey = "is_client_request_id"
)

const (
	URLParamEmail = "email"
	URLParamIP    = "ip"

	QueryParamUserEmail = "userEmail"
	QueryParamLanguage  = "language"
)

const (
	// Redis key layout for the operation store. Pending operations live under
	// RedisKeyOperationPendingPrefix keyed by the sha256 hex of the code, and
	// RedisKeyOperationPendingIndex is a ZSET of those hashes scored by the
	// creation time (unix seconds) so the sweeper can range-scan by age.
	RedisKeyOperationPendingPrefix = "operation:pending:"
	RedisKeyOperationPendingIndex  = "operation:pending_index"

	RedisKeyOperationSweeperLock = "operation:sweeper:lock"
)

const (
	MongoCollectionOperationAudit = "operation_audit"
)

const (
	// OperationCodeAlphabet deliberately omits 0/O and 1/I so codes survive
	// being read from a mail client and typed into the chat.
	OperationCodeAlphabet = "23456789ABCDEFGHJKLMNPQRSTUVWXYZ"
)

const (
	IPFeedScanIPPathFormat           = "%s/cyb/scanIP/%s"
	IPFeedCheckCredentialsPathFormat = "%s/cyb/checkCredentials/%s"
	IPFeedRawPagesPathFormat         = "%s/cyb/rawPages/%s"
	IPFeedScanCompanyPathFormat      = "%s/cyb/scanCompany/%s?language=%s"
)

const (
	ArtifactObjectNameFormat = "%s/%s_%s.json"
)
