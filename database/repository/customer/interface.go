// File: database/repository/customer/interface.go
package customerRepo

import (
	"context"

	"lengolf/database"
	"lengolf/models"

	"go.mongodb.org/mongo-driver/mongo"
)

type CustomerRepository interface {
	Create(ctx context.Context, c models.Customer) (string, error)
	GetByID(ctx context.Context, id string) (*models.Customer, error)
	GetByPhone(ctx context.Context, phone string) (*models.Customer, error)
	SearchByName(ctx context.Context, name string, limit int) ([]models.Customer, error)
	PhoneExists(ctx context.Context, phone string) (bool, error)
}

type mongoCustomerRepo struct {
	coll *mongo.Collection
}

// NewMongoCustomerRepo constructs a new MongoDB CustomerRepository.
func NewMongoCustomerRepo() CustomerRepository {
	db := database.MongoClient.Database(database.DatabaseName)
	return &mongoCustomerRepo{
		coll: db.Collection("customers"),
	}
}
