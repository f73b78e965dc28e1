// File: database/repository/invoice/interface.go
package invoiceRepo

import (
	"context"

	"lengolf/database"
	"lengolf/models"

	"go.mongodb.org/mongo-driver/mongo"
)

type InvoiceRepository interface {
	Create(ctx context.Context, inv models.Invoice) (string, error)
	GetByID(ctx context.Context, id string) (*models.Invoice, error)
	// ListRecent returns the latest generated documents, newest first.
	ListRecent(ctx context.Context, limit int) ([]models.Invoice, error)
}

type mongoInvoiceRepo struct {
	coll *mongo.Collection
}

// NewMongoInvoiceRepo constructs a new MongoDB InvoiceRepository.
func NewMongoInvoiceRepo() InvoiceRepository {
	db := database.MongoClient.Database(database.DatabaseName)
	return &mongoInvoiceRepo{
		coll: db.Collection("invoices"),
	}
}
