// File: handlers/billing.go
package handlers

import (
	"net/http"
	"strconv"

	invoiceRepo "lengolf/database/repository/invoice"
	supplierRepo "lengolf/database/repository/supplier"
	"lengolf/models"
	"lengolf/services/billing"
	"lengolf/utils"

	"github.com/gin-gonic/gin"
)

// Injected from main during wiring.
var (
	Billing   billing.BillingService
	Suppliers supplierRepo.SupplierRepository
	Invoices  invoiceRepo.InvoiceRepository
)

// ListSuppliers returns every supplier, ordered by name.
func ListSuppliers(c *gin.Context) {
	suppliers, err := Suppliers.List(c.Request.Context())
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "failed to list suppliers", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"suppliers": suppliers})
}

// AddSupplier registers a vendor. Duplicate tax ids are rejected.
func AddSupplier(c *gin.Context) {
	var input struct {
		Name               string  `json:"name" binding:"required"`
		AddressLine1       string  `json:"address_line1"`
		AddressLine2       string  `json:"address_line2"`
		TaxID              string  `json:"tax_id"`
		DefaultDescription string  `json:"default_description"`
		DefaultUnitPrice   float64 `json:"default_unit_price"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}

	if input.TaxID != "" {
		exists, err := Suppliers.TaxIDExists(c.Request.Context(), input.TaxID)
		if err != nil {
			utils.JSONError(c, http.StatusInternalServerError, "failed to check tax id", err.Error())
			return
		}
		if exists {
			utils.JSONError(c, http.StatusConflict, "duplicate supplier", "a supplier with this tax id already exists")
			return
		}
	}

	id, err := Suppliers.Create(c.Request.Context(), models.Supplier{
		Name:               input.Name,
		AddressLine1:       input.AddressLine1,
		AddressLine2:       input.AddressLine2,
		TaxID:              input.TaxID,
		DefaultDescription: input.DefaultDescription,
		DefaultUnitPrice:   input.DefaultUnitPrice,
	})
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "failed to create supplier", err.Error())
		return
	}
	c.JSON(http.StatusCreated, gin.H{"id": id})
}

// GenerateInvoice produces a supplier invoice with withholding tax applied.
func GenerateInvoice(c *gin.Context) {
	var input struct {
		SupplierID string               `json:"supplier_id" binding:"required"`
		Number     string               `json:"number"`
		Date       string               `json:"date"`
		WHTRate    *float64             `json:"wht_rate"`
		Items      []models.InvoiceLine `json:"items" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}

	rate := -1.0
	if input.WHTRate != nil {
		rate = *input.WHTRate
	}
	inv, err := Billing.GenerateInvoice(c.Request.Context(), billing.InvoiceRequest{
		SupplierID: input.SupplierID,
		Number:     input.Number,
		Date:       input.Date,
		WHTRate:    rate,
		Items:      input.Items,
	})
	if err != nil {
		utils.JSONError(c, http.StatusUnprocessableEntity, "failed to generate invoice", err.Error())
		return
	}
	c.JSON(http.StatusCreated, inv)
}

// ListInvoices returns the latest generated documents, newest first.
func ListInvoices(c *gin.Context) {
	limit := 10
	if raw := c.Query("limit"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 {
			limit = n
		}
	}
	invoices, err := Invoices.ListRecent(c.Request.Context(), limit)
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "failed to list invoices", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"invoices": invoices})
}

// GetInvoiceDocument serves the stored document inline.
func GetInvoiceDocument(c *gin.Context) {
	id := c.Param("id")
	inv, err := Invoices.GetByID(c.Request.Context(), id)
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "failed to load invoice", err.Error())
		return
	}
	if inv == nil {
		utils.JSONError(c, http.StatusNotFound, "invoice not found", id)
		return
	}
	c.Header("Content-Disposition", "inline; filename="+inv.FileName)
	c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(inv.Document))
}
