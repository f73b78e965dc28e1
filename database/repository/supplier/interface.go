// File: database/repository/supplier/interface.go
package supplierRepo

import (
	"context"

	"lengolf/database"
	"lengolf/models"

	"go.mongodb.org/mongo-driver/mongo"
)

type SupplierRepository interface {
	Create(ctx context.Context, s models.Supplier) (string, error)
	GetByID(ctx context.Context, id string) (*models.Supplier, error)
	// List returns all suppliers ordered by name.
	List(ctx context.Context) ([]models.Supplier, error)
	TaxIDExists(ctx context.Context, taxID string) (bool, error)
}

type mongoSupplierRepo struct {
	coll *mongo.Collection
}

// NewMongoSupplierRepo constructs a new MongoDB SupplierRepository.
func NewMongoSupplierRepo() SupplierRepository {
	db := database.MongoClient.Database(database.DatabaseName)
	return &mongoSupplierRepo{
		coll: db.Collection("suppliers"),
	}
}
