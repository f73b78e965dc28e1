// File: services/billing/invoice.go
package billing

import (
	"context"
	"fmt"
	"math"
	"regexp"
	"strings"

	"lengolf/config"
	"lengolf/models"
	"lengolf/utils"

	"go.uber.org/zap"
)

// GenerateInvoice builds a supplier invoice from staff input. Blank or
// zero-amount line items are dropped; the withholding tax is deducted from
// the subtotal to give the payable total.
func (s *DefaultBillingService) GenerateInvoice(ctx context.Context, req InvoiceRequest) (*models.Invoice, error) {
	supplier, err := s.Suppliers.GetByID(ctx, req.SupplierID)
	if err != nil {
		return nil, fmt.Errorf("supplier lookup failed: %w", err)
	}
	if supplier == nil {
		return nil, fmt.Errorf("supplier %s not found", req.SupplierID)
	}

	now := s.Now()
	number := strings.TrimSpace(req.Number)
	if number == "" {
		number = now.Format("200601")
	}
	date := req.Date
	if date == "" {
		date = now.Format("2006-01-02")
	}
	rate := req.WHTRate
	if rate < 0 {
		rate = config.AppConfig.DefaultWHTRate
	}

	var items []models.InvoiceLine
	var subtotal float64
	for _, it := range req.Items {
		desc := strings.TrimSpace(it.Description)
		if desc == "" || it.Amount <= 0 {
			continue
		}
		items = append(items, models.InvoiceLine{Description: desc, Amount: it.Amount})
		subtotal += it.Amount
	}
	if len(items) == 0 {
		return nil, fmt.Errorf("invoice has no valid line items")
	}

	wht := round2(subtotal * rate / 100)
	inv := models.Invoice{
		Number:     number,
		Kind:       models.InvoiceSupplier,
		SupplierID: supplier.ID,
		Date:       date,
		Items:      items,
		Subtotal:   round2(subtotal),
		WHTRate:    rate,
		WHTAmount:  wht,
		Total:      round2(subtotal - wht),
		FileName:   documentName("Inv", supplier.Name, number),
	}

	doc, err := renderDocument(inv, supplier)
	if err != nil {
		return nil, fmt.Errorf("failed to render invoice document: %w", err)
	}
	inv.Document = doc

	id, err := s.Invoices.Create(ctx, inv)
	if err != nil {
		return nil, fmt.Errorf("failed to persist invoice: %w", err)
	}
	inv.ID = id

	utils.GetLogger().Info("billing: invoice generated",
		zap.String("invoiceID", id),
		zap.String("supplier", supplier.Name),
		zap.Float64("total", inv.Total))
	return &inv, nil
}

// ReceiptForBooking issues the customer receipt for a committed booking.
// Walk-in sessions are priced from the configured hourly rate; sessions
// covered by a package are receipted at zero with the package named.
func (s *DefaultBillingService) ReceiptForBooking(ctx context.Context, b models.Booking) (*models.Invoice, error) {
	hours := float64(b.Duration) / 60
	line := models.InvoiceLine{}
	if b.RateCategory == "" || b.RateCategory == "walk-in" {
		line.Description = fmt.Sprintf("%s session, %.1f hours (walk-in rate)", b.Type, hours)
		line.Amount = round2(hours * walkInHourlyRate(b.ResourceClass))
	} else {
		line.Description = fmt.Sprintf("%s session, %.1f hours (package: %s)", b.Type, hours, b.RateCategory)
	}

	number := s.Now().Format("200601")
	inv := models.Invoice{
		Number:       number,
		Kind:         models.InvoiceReceipt,
		BookingID:    b.ID,
		CustomerName: b.CustomerName,
		Date:         b.Date,
		Items:        []models.InvoiceLine{line},
		Subtotal:     line.Amount,
		WHTRate:      0,
		WHTAmount:    0,
		Total:        line.Amount,
		FileName:     documentName("Receipt", b.CustomerName, number),
	}

	doc, err := renderDocument(inv, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to render receipt document: %w", err)
	}
	inv.Document = doc

	id, err := s.Invoices.Create(ctx, inv)
	if err != nil {
		return nil, fmt.Errorf("failed to persist receipt: %w", err)
	}
	inv.ID = id
	return &inv, nil
}

func walkInHourlyRate(class models.ResourceClass) float64 {
	switch class {
	case models.ClassSim:
		return config.AppConfig.WalkInRateSim
	case models.ClassCoach:
		return config.AppConfig.WalkInRateCoach
	}
	return config.AppConfig.WalkInRateBay
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

var unsafeNameChars = regexp.MustCompile(`[^a-zA-Z0-9_.-]`)

// documentName builds a filesystem-safe document name for downloads.
func documentName(label, party, number string) string {
	clean := func(v string) string {
		return strings.Trim(unsafeNameChars.ReplaceAllString(v, "_"), "_")
	}
	return fmt.Sprintf("LENGOLF_%s_%s_%s.html", clean(party), label, clean(number))
}
