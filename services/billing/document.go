// File: services/billing/document.go
package billing

import (
	"html/template"
	"strings"

	"lengolf/config"
	"lengolf/models"
)

var documentTemplate = template.Must(template.New("document").Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>{{.Title}} {{.Invoice.Number}}</title>
</head>
<body>
<h1>{{.Business.Name}}</h1>
<p>{{.Business.AddressLine1}}<br>
{{.Business.AddressLine2}}<br>
Tax ID: {{.Business.TaxID}}</p>
<h2>{{.Title}} {{.Invoice.Number}}</h2>
<p>Date: {{.Invoice.Date}}</p>
{{if .Supplier}}
<p>Supplier: {{.Supplier.Name}}<br>
{{if .Supplier.AddressLine1}}{{.Supplier.AddressLine1}}<br>{{end}}
{{if .Supplier.AddressLine2}}{{.Supplier.AddressLine2}}<br>{{end}}
{{if .Supplier.TaxID}}Tax ID: {{.Supplier.TaxID}}{{end}}</p>
{{end}}
{{if .Invoice.CustomerName}}<p>Customer: {{.Invoice.CustomerName}}</p>{{end}}
<table>
{{range .Invoice.Items}}<tr><td>{{.Description}}</td><td>{{printf "%.2f" .Amount}}</td></tr>
{{end}}</table>
<p>Subtotal: {{printf "%.2f" .Invoice.Subtotal}}</p>
{{if .Invoice.WHTAmount}}<p>Withholding tax ({{printf "%.2f" .Invoice.WHTRate}}%): -{{printf "%.2f" .Invoice.WHTAmount}}</p>{{end}}
<p><strong>Total: {{printf "%.2f" .Invoice.Total}}</strong></p>
{{if .Bank.Name}}<p>Payment: {{.Bank.Name}} {{.Bank.AccountNumber}}</p>{{end}}
</body>
</html>
`))

type businessIdentity struct {
	Name         string
	AddressLine1 string
	AddressLine2 string
	TaxID        string
}

type bankDetails struct {
	Name          string
	AccountNumber string
}

// renderDocument produces the stored HTML for an invoice or receipt. The
// business identity and bank details come from configuration.
func renderDocument(inv models.Invoice, supplier *models.Supplier) (string, error) {
	title := "Receipt"
	if inv.Kind == models.InvoiceSupplier {
		title = "Invoice"
	}
	data := struct {
		Title    string
		Invoice  models.Invoice
		Supplier *models.Supplier
		Business businessIdentity
		Bank     bankDetails
	}{
		Title:    title,
		Invoice:  inv,
		Supplier: supplier,
		Business: businessIdentity{
			Name:         config.AppConfig.BusinessName,
			AddressLine1: config.AppConfig.BusinessAddressLine1,
			AddressLine2: config.AppConfig.BusinessAddressLine2,
			TaxID:        config.AppConfig.BusinessTaxID,
		},
		Bank: bankDetails{
			Name:          config.AppConfig.BankName,
			AccountNumber: config.AppConfig.BankAccountNumber,
		},
	}

	var sb strings.Builder
	if err := documentTemplate.Execute(&sb, data); err != nil {
		return "", err
	}
	return sb.String(), nil
}
