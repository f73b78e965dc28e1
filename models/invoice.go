package models

import "time"

// Supplier is a vendor the business purchases from. Invoices issued against
// a supplier carry Thai withholding tax deducted from the payable total.
type Supplier struct {
	ID                 string    `bson:"id" json:"id"`
	Name               string    `bson:"name" json:"name"`
	AddressLine1       string    `bson:"address_line1,omitempty" json:"address_line1,omitempty"`
	AddressLine2       string    `bson:"address_line2,omitempty" json:"address_line2,omitempty"`
	TaxID              string    `bson:"tax_id,omitempty" json:"tax_id,omitempty"`
	DefaultDescription string    `bson:"default_description,omitempty" json:"default_description,omitempty"`
	DefaultUnitPrice   float64   `bson:"default_unit_price,omitempty" json:"default_unit_price,omitempty"`
	CreatedAt          time.Time `bson:"created_at" json:"created_at"`
}

// InvoiceKind distinguishes supplier invoices from customer receipts.
type InvoiceKind string

const (
	InvoiceSupplier InvoiceKind = "supplier"
	InvoiceReceipt  InvoiceKind = "receipt"
)

// InvoiceLine is one billed line item.
type InvoiceLine struct {
	Description string  `bson:"description" json:"description"`
	Amount      float64 `bson:"amount" json:"amount"`
}

// Invoice is a generated billing document: either a supplier invoice with
// withholding tax, or a customer receipt for a committed booking. The
// rendered document is stored alongside the figures and served separately.
type Invoice struct {
	ID           string        `bson:"id" json:"id"`
	Number       string        `bson:"number" json:"number"`
	Kind         InvoiceKind   `bson:"kind" json:"kind"`
	SupplierID   string        `bson:"supplier_id,omitempty" json:"supplier_id,omitempty"`
	BookingID    string        `bson:"booking_id,omitempty" json:"booking_id,omitempty"`
	CustomerName string        `bson:"customer_name,omitempty" json:"customer_name,omitempty"`
	Date         string        `bson:"date" json:"date"` // "YYYY-MM-DD"
	Items        []InvoiceLine `bson:"items" json:"items"`
	Subtotal     float64       `bson:"subtotal" json:"subtotal"`
	WHTRate      float64       `bson:"wht_rate" json:"wht_rate"` // percent
	WHTAmount    float64       `bson:"wht_amount" json:"wht_amount"`
	Total        float64       `bson:"total" json:"total"`
	FileName     string        `bson:"file_name" json:"file_name"`
	Document     string        `bson:"document" json:"-"`
	CreatedAt    time.Time     `bson:"created_at" json:"created_at"`
}
