// File: database/repository/booking/interface.go
package bookingRepo

import (
	"context"

	"lengolf/database"
	"lengolf/models"

	"go.mongodb.org/mongo-driver/mongo"
)

type BookingRepository interface {
	Create(ctx context.Context, b models.Booking) (string, error)
	GetByID(ctx context.Context, id string) (*models.Booking, error)
	Update(ctx context.Context, b models.Booking) error
	SetStatus(ctx context.Context, id string, status models.BookingStatus) error
	UpcomingByCustomer(ctx context.Context, customerID string, fromDate string, limit int) ([]models.Booking, error)
	RecentByCustomer(ctx context.Context, customerID string, beforeDate string, limit int) ([]models.Booking, error)
	FindByCustomerAndDate(ctx context.Context, customerID, date string) ([]models.Booking, error)
	// BusyIntervals derives the committed half-open intervals for one
	// resource on one date from confirmed bookings.
	BusyIntervals(ctx context.Context, resourceID, date string) ([]models.BusyInterval, error)
}

type mongoBookingRepo struct {
	coll *mongo.Collection
}

// NewMongoBookingRepo constructs a new MongoDB BookingRepository.
func NewMongoBookingRepo() BookingRepository {
	db := database.MongoClient.Database(database.DatabaseName)
	return &mongoBookingRepo{
		coll: db.Collection("bookings"),
	}
}
