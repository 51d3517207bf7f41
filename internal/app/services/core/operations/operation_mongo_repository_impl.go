package operations

import (
	"context"
	"cybersentry-service/internal/app/contracts"
	"cybersentry-service/internal/app/models"
	"cybersentry-service/internal/pkg/constvars"
	"cybersentry-service/internal/pkg/exceptions"

	"go.mongodb.org/mongo-driver/mongo"
)

type operationMongoRepository struct {
	collection *mongo.Collection
}

func NewOperationMongoRepository(client *mongo.Client, dbName string) contracts.OperationAuditRepository {
	return &operationMongoRepository{
		collection: client.Database(dbName).Collection(constvars.MongoCollectionOperationAudit),
	}
}

func (r *operationMongoRepository) InsertAudit(ctx context.Context, audit *models.OperationAudit) error {
	_, err := r.collection.InsertOne(ctx, audit)
	if err != nil {
		return exceptions.ErrMongoInsert(err, constvars.MongoCollectionOperationAudit)
	}
	return nil
}
