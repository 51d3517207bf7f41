package operations

import (
	"context"
	"cybersentry-service/internal/app/contracts"
	"cybersentry-service/internal/app/models"
	"cybersentry-service/internal/pkg/constvars"
	"cybersentry-service/internal/pkg/exceptions"
	"strconv"
	"time"

	"github.com/goccy/go-json"
	"github.com/redis/go-redis/v9"
)

// takePendingScript removes a pending operation and returns its document in a
// single script execution. Redis runs scripts serially, so when several
// consumers race on one code exactly one of them gets the value back; the
// rest see nil. This is the primitive the at-most-once redemption guarantee
// rests on.
var takePendingScript = redis.NewScript(`
local value = redis.call('GET', KEYS[1])
redis.call('ZREM', KEYS[2], ARGV[1])
if not value then
  return false
end
redis.call('DEL', KEYS[1])
return value
`)

type operationRedisRepository struct {
	client *redis.Client
}

func NewOperationRedisRepository(client *redis.Client) contracts.OperationRepository {
	return &operationRedisRepository{client: client}
}

func (r *operationRedisRepository) CreatePending(ctx context.Context, operation *models.Operation, ttl time.Duration) (bool, error) {
	jsonValue, err := json.Marshal(operation)
	if err != nil {
		return false, exceptions.ErrCannotMarshalJSON(err)
	}

	key := constvars.RedisKeyOperationPendingPrefix + operation.CodeHash
	created, err := r.client.SetNX(ctx, key, jsonValue, ttl).Result()
	if err != nil {
		return false, exceptions.ErrRedisSet(err)
	}
	if !created {
		return false, nil
	}

	err = r.client.ZAdd(ctx, constvars.RedisKeyOperationPendingIndex, redis.Z{
		Score:  float64(operation.CreatedAt.Unix()),
		Member: operation.CodeHash,
	}).Err()
	if err != nil {
		// The document has a TTL, so an index-less entry still dies on its
		// own; report the failure rather than leaving it silent.
		return false, exceptions.ErrRedisZAdd(err)
	}

	return true, nil
}

func (r *operationRedisRepository) FindPending(ctx context.Context, codeHash string) (*models.Operation, error) {
	key := constvars.RedisKeyOperationPendingPrefix + codeHash
	data, err := r.client.Get(ctx, key).Result()
	if err == redis.Nil {
		return nil, nil
	} else if err != nil {
		return nil, exceptions.ErrRedisGet(err, key)
	}

	return unmarshalOperation([]byte(data))
}

func (r *operationRedisRepository) TakePending(ctx context.Context, codeHash string) (*models.Operation, error) {
	key := constvars.RedisKeyOperationPendingPrefix + codeHash
	result, err := takePendingScript.Run(ctx, r.client,
		[]string{key, constvars.RedisKeyOperationPendingIndex},
		codeHash,
	).Result()
	if err == redis.Nil {
		return nil, nil
	} else if err != nil {
		return nil, exceptions.ErrRedisEval(err)
	}

	data, ok := result.(string)
	if !ok {
		return nil, nil
	}

	return unmarshalOperation([]byte(data))
}

func (r *operationRedisRepository) ListPendingOlderThan(ctx context.Context, cutoff time.Time) ([]string, error) {
	codeHashes, err := r.client.ZRangeByScore(ctx, constvars.RedisKeyOperationPendingIndex, &redis.ZRangeBy{
		Min: "-inf",
		Max: strconv.FormatInt(cutoff.Unix(), 10),
	}).Result()
	if err != nil {
		return nil, exceptions.ErrRedisZRangeByScore(err)
	}
	return codeHashes, nil
}

func unmarshalOperation(data []byte) (*models.Operation, error) {
	operation := new(models.Operation)
	err := json.Unmarshal(data, operation)
	if err != nil {
		return nil, exceptions.ErrCannotUnmarshalJSON(err)
	}
	return operation, nil
}
