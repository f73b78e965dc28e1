// File: services/billing/interface.go
package billing

import (
	"context"
	"time"

	invoiceRepo "lengolf/database/repository/invoice"
	supplierRepo "lengolf/database/repository/supplier"
	"lengolf/models"
)

// InvoiceRequest is the staff input for one supplier invoice.
type InvoiceRequest struct {
	SupplierID string
	// Number defaults to the current YYYYMM period when empty.
	Number string
	// Date defaults to today when empty.
	Date string
	// WHTRate is the withholding tax percentage. Negative means use the
	// configured default; zero is an explicit no-deduction invoice.
	WHTRate float64
	Items   []models.InvoiceLine
}

// BillingService generates billing documents: supplier invoices with Thai
// withholding tax, and customer receipts for committed bookings.
type BillingService interface {
	GenerateInvoice(ctx context.Context, req InvoiceRequest) (*models.Invoice, error)
	ReceiptForBooking(ctx context.Context, b models.Booking) (*models.Invoice, error)
}

type DefaultBillingService struct {
	Suppliers supplierRepo.SupplierRepository
	Invoices  invoiceRepo.InvoiceRepository
	Now       func() time.Time
}

func NewDefaultBillingService(
	suppliers supplierRepo.SupplierRepository,
	invoices invoiceRepo.InvoiceRepository,
) *DefaultBillingService {
	return &DefaultBillingService{
		Suppliers: suppliers,
		Invoices:  invoices,
		Now:       time.Now,
	}
}
