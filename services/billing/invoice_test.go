package billing

import (
	"context"
	"testing"
	"time"

	"lengolf/config"
	"lengolf/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memSuppliers struct {
	byID map[string]models.Supplier
}

func (m *memSuppliers) Create(_ context.Context, s models.Supplier) (string, error) {
	m.byID[s.ID] = s
	return s.ID, nil
}

func (m *memSuppliers) GetByID(_ context.Context, id string) (*models.Supplier, error) {
	s, ok := m.byID[id]
	if !ok {
		return nil, nil
	}
	return &s, nil
}

func (m *memSuppliers) List(_ context.Context) ([]models.Supplier, error) { return nil, nil }

func (m *memSuppliers) TaxIDExists(_ context.Context, _ string) (bool, error) { return false, nil }

type memInvoices struct {
	created []models.Invoice
}

func (m *memInvoices) Create(_ context.Context, inv models.Invoice) (string, error) {
	if inv.ID == "" {
		inv.ID = "inv-1"
	}
	m.created = append(m.created, inv)
	return inv.ID, nil
}

func (m *memInvoices) GetByID(_ context.Context, _ string) (*models.Invoice, error) {
	return nil, nil
}

func (m *memInvoices) ListRecent(_ context.Context, _ int) ([]models.Invoice, error) {
	return nil, nil
}

func newTestBilling(t *testing.T) (*DefaultBillingService, *memInvoices) {
	t.Helper()
	config.AppConfig.BusinessName = "LENGOLF CO. LTD."
	config.AppConfig.BusinessTaxID = "105566207013"
	config.AppConfig.DefaultWHTRate = 3.0
	config.AppConfig.WalkInRateBay = 500
	config.AppConfig.WalkInRateSim = 700
	config.AppConfig.WalkInRateCoach = 1500

	suppliers := &memSuppliers{byID: map[string]models.Supplier{
		"sup-1": {ID: "sup-1", Name: "Ace Golf Supply", TaxID: "1234567890123"},
	}}
	invoices := &memInvoices{}
	svc := NewDefaultBillingService(suppliers, invoices)
	svc.Now = func() time.Time { return time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC) }
	return svc, invoices
}

func TestGenerateInvoiceTotals(t *testing.T) {
	svc, invoices := newTestBilling(t)

	inv, err := svc.GenerateInvoice(context.Background(), InvoiceRequest{
		SupplierID: "sup-1",
		WHTRate:    -1,
		Items: []models.InvoiceLine{
			{Description: "Range balls", Amount: 1000.50},
			{Description: "Tees", Amount: 234.06},
		},
	})
	require.NoError(t, err)

	assert.InDelta(t, 1234.56, inv.Subtotal, 1e-9)
	assert.InDelta(t, 3.0, inv.WHTRate, 1e-9)
	assert.InDelta(t, 37.04, inv.WHTAmount, 1e-9)
	assert.InDelta(t, 1197.52, inv.Total, 1e-9)

	// Number and date default to the current period.
	assert.Equal(t, "202503", inv.Number)
	assert.Equal(t, "2025-03-10", inv.Date)
	assert.Equal(t, "LENGOLF_Ace_Golf_Supply_Inv_202503.html", inv.FileName)
	assert.Equal(t, models.InvoiceSupplier, inv.Kind)

	require.Len(t, invoices.created, 1)
	doc := invoices.created[0].Document
	assert.Contains(t, doc, "Ace Golf Supply")
	assert.Contains(t, doc, "37.04")
	assert.Contains(t, doc, "1197.52")
}

func TestGenerateInvoiceExplicitZeroRate(t *testing.T) {
	svc, _ := newTestBilling(t)

	inv, err := svc.GenerateInvoice(context.Background(), InvoiceRequest{
		SupplierID: "sup-1",
		WHTRate:    0,
		Items:      []models.InvoiceLine{{Description: "Service fee", Amount: 200}},
	})
	require.NoError(t, err)
	assert.Zero(t, inv.WHTAmount)
	assert.InDelta(t, 200.0, inv.Total, 1e-9)
}

func TestGenerateInvoiceSkipsBlankItems(t *testing.T) {
	svc, _ := newTestBilling(t)

	inv, err := svc.GenerateInvoice(context.Background(), InvoiceRequest{
		SupplierID: "sup-1",
		WHTRate:    -1,
		Items: []models.InvoiceLine{
			{Description: "   ", Amount: 50},
			{Description: "Balls", Amount: 0},
			{Description: "Gloves", Amount: 100},
		},
	})
	require.NoError(t, err)
	require.Len(t, inv.Items, 1)
	assert.Equal(t, "Gloves", inv.Items[0].Description)
	assert.InDelta(t, 100.0, inv.Subtotal, 1e-9)
}

func TestGenerateInvoiceNoValidItems(t *testing.T) {
	svc, invoices := newTestBilling(t)

	_, err := svc.GenerateInvoice(context.Background(), InvoiceRequest{
		SupplierID: "sup-1",
		WHTRate:    -1,
		Items:      []models.InvoiceLine{{Description: "", Amount: 0}},
	})
	assert.Error(t, err)
	assert.Empty(t, invoices.created)
}

func TestGenerateInvoiceUnknownSupplier(t *testing.T) {
	svc, _ := newTestBilling(t)

	_, err := svc.GenerateInvoice(context.Background(), InvoiceRequest{
		SupplierID: "sup-missing",
		WHTRate:    -1,
		Items:      []models.InvoiceLine{{Description: "Balls", Amount: 50}},
	})
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestReceiptForWalkInBooking(t *testing.T) {
	svc, _ := newTestBilling(t)

	inv, err := svc.ReceiptForBooking(context.Background(), models.Booking{
		ID:            "bk-1",
		CustomerName:  "Khun Somchai",
		Date:          "2025-03-12",
		Duration:      90,
		ResourceClass: models.ClassBay,
		Type:          models.TypeSimulator,
		RateCategory:  "walk-in",
	})
	require.NoError(t, err)

	assert.Equal(t, models.InvoiceReceipt, inv.Kind)
	assert.Equal(t, "bk-1", inv.BookingID)
	assert.InDelta(t, 750.0, inv.Total, 1e-9) // 1.5h at the bay rate
	assert.Zero(t, inv.WHTAmount)
	assert.Contains(t, inv.Items[0].Description, "walk-in rate")
}

func TestReceiptForPackageBooking(t *testing.T) {
	svc, _ := newTestBilling(t)

	inv, err := svc.ReceiptForBooking(context.Background(), models.Booking{
		ID:            "bk-2",
		CustomerName:  "Khun Lek",
		Date:          "2025-03-12",
		Duration:      60,
		ResourceClass: models.ClassCoach,
		Type:          models.TypeCoaching,
		RateCategory:  "Gold 20h",
	})
	require.NoError(t, err)

	assert.Zero(t, inv.Total)
	assert.Contains(t, inv.Items[0].Description, "Gold 20h")
}

func TestDocumentName(t *testing.T) {
	assert.Equal(t, "LENGOLF_Ace_Golf_Supply_Inv_202503.html",
		documentName("Inv", "Ace Golf Supply", "202503"))
	assert.Equal(t, "LENGOLF_A_B_Receipt_202503.html",
		documentName("Receipt", "A/B?", "202503"))
}
