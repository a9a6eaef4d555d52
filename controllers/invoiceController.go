package controllers

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/jlvilasoler/hashrate/database"
	"github.com/jlvilasoler/hashrate/history"
	"github.com/jlvilasoler/hashrate/middlewares"
	"github.com/jlvilasoler/hashrate/models"
	"github.com/jlvilasoler/hashrate/pdf"
	"github.com/jlvilasoler/hashrate/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

const msgDuplicateNumber = "Ya existe un comprobante con ese número"

type InvoiceItemInput struct {
	ServiceKey  string  `json:"serviceKey" validate:"required,oneof=A B C"`
	ServiceName string  `json:"serviceName" validate:"required,max=200"`
	Month       string  `json:"month" validate:"omitempty,len=7"`
	Quantity    int     `json:"quantity" validate:"required,gt=0"`
	Price       float64 `json:"price" validate:"gte=0"`
	Discount    float64 `json:"discount" validate:"gte=0"`
}

type InvoiceCreateInput struct {
	Number     string             `json:"number" validate:"omitempty,max=50"`
	Type       string             `json:"type" validate:"required,oneof=Factura Recibo"`
	ClientName string             `json:"clientName" validate:"required,max=200"`
	Date       string             `json:"date" validate:"required,datetime=2006-01-02"`
	Month      string             `json:"month" validate:"omitempty,len=7"`
	Items      []InvoiceItemInput `json:"items" validate:"required,min=1,dive"`
}

// CreateInvoice persists a document with its line items. Totals are always
// recomputed server-side from the items; a client-submitted total is ignored.
func CreateInvoice(c *fiber.Ctx) error {
	var input InvoiceCreateInput
	if err := c.BodyParser(&input); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid body")
	}
	utils.NormalizeDTO(&input)
	if err := middlewares.ValidateStruct(&input); err != nil {
		return err
	}

	if input.Month == "" {
		input.Month = input.Date[:7]
	}

	items, subtotal, discounts := buildInvoiceItems(input.Items)

	invoice := models.Invoice{
		Number:     input.Number,
		Type:       input.Type,
		ClientName: input.ClientName,
		Date:       input.Date,
		Month:      input.Month,
		Items:      items,
		Subtotal:   subtotal,
		Discounts:  discounts,
		Total:      utils.SumTotals(subtotal, -discounts),
	}

	tx := database.DB.Begin()

	if invoice.Number == "" {
		number, err := nextNumber(tx, invoice.Type)
		if err != nil {
			tx.Rollback()
			return err
		}
		invoice.Number = number
	}

	if err := tx.Create(&invoice).Error; err != nil {
		tx.Rollback()
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return c.Status(fiber.StatusConflict).JSON(middlewares.Envelope(msgDuplicateNumber))
		}
		return err
	}
	tx.Commit()

	appendHistoryEntry(invoice)

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"invoice": invoice})
}

func GetInvoices(c *fiber.Ctx) error {
	invoices := []models.Invoice{}
	if err := database.DB.Preload("Items").Order("created_at DESC").Find(&invoices).Error; err != nil {
		return err
	}
	return c.JSON(fiber.Map{"invoices": invoices})
}

func GetInvoice(c *fiber.Ctx) error {
	invoice, err := findInvoice(c)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"invoice": invoice})
}

// GetInvoicePDF renders the stored document into the branded A4 template.
func GetInvoicePDF(c *fiber.Ctx) error {
	invoice, err := findInvoice(c)
	if err != nil {
		return err
	}

	date, err := time.Parse("2006-01-02", invoice.Date)
	if err != nil {
		return fmt.Errorf("invoice %s has malformed date %q: %w", invoice.Number, invoice.Date, err)
	}

	doc := pdf.Document{
		Number:     invoice.Number,
		Type:       invoice.Type,
		ClientName: invoice.ClientName,
		Date:       date,
		Items:      invoice.Items,
		Subtotal:   invoice.Subtotal,
		Discounts:  invoice.Discounts,
		Total:      invoice.Total,
	}

	out, err := pdf.Render(doc, brandingImages())
	if err != nil {
		return err
	}

	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+invoice.Number+`.pdf"`)
	return c.Send(out)
}

func findInvoice(c *fiber.Ctx) (models.Invoice, error) {
	var invoice models.Invoice
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return invoice, fiber.NewError(fiber.StatusBadRequest, "Invalid id")
	}
	if err := database.DB.Preload("Items").First(&invoice, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return invoice, fiber.NewError(fiber.StatusNotFound, "Comprobante no encontrado")
		}
		return invoice, err
	}
	return invoice, nil
}

// buildInvoiceItems computes the money rollup: subtotal is the sum of
// price*quantity, discounts the sum of discount*quantity, so that
// total = subtotal - discounts = sum of (price-discount)*quantity line totals.
func buildInvoiceItems(inputs []InvoiceItemInput) ([]models.InvoiceItem, float64, float64) {
	items := make([]models.InvoiceItem, 0, len(inputs))
	gross := make([]float64, 0, len(inputs))
	reductions := make([]float64, 0, len(inputs))

	for _, in := range inputs {
		gross = append(gross, utils.LineTotal(in.Price, 0, in.Quantity))
		reductions = append(reductions, utils.LineTotal(in.Discount, 0, in.Quantity))
		items = append(items, models.InvoiceItem{
			ServiceKey:  in.ServiceKey,
			ServiceName: in.ServiceName,
			Month:       in.Month,
			Quantity:    in.Quantity,
			Price:       utils.Round2(in.Price),
			Discount:    utils.Round2(in.Discount),
		})
	}

	return items, utils.SumTotals(gross...), utils.SumTotals(reductions...)
}

// nextNumber assigns the next type-prefixed sequence value, starting at 1001.
func nextNumber(tx *gorm.DB, docType string) (string, error) {
	prefix := models.NumberPrefix(docType)

	var numbers []string
	if err := tx.Model(&models.Invoice{}).
		Where("number LIKE ?", prefix+"%").
		Pluck("number", &numbers).Error; err != nil {
		return "", err
	}

	max := 1000
	for _, n := range numbers {
		if v, err := strconv.Atoi(strings.TrimPrefix(n, prefix)); err == nil && v > max {
			max = v
		}
	}
	return fmt.Sprintf("%s%d", prefix, max+1), nil
}

// appendHistoryEntry records a summary in the local history list. Best-effort:
// the invoice is already committed, a history write failure only logs.
func appendHistoryEntry(invoice models.Invoice) {
	store := historyStore()
	entries := store.Load()
	entries = append(entries, history.Entry{
		Numero:  invoice.Number,
		Tipo:    invoice.Type,
		Cliente: invoice.ClientName,
		Fecha:   invoice.Date,
		Mes:     invoice.Month,
		Total:   invoice.Total,
	})
	if err := store.Save(entries); err != nil {
		logHistoryError(err)
	}
}

func brandingImages() pdf.Images {
	var images pdf.Images
	if path := os.Getenv("BRAND_LOGO_PATH"); path != "" {
		images.Logo, _ = os.ReadFile(path)
	}
	if path := os.Getenv("BRAND_FOOTER_PATH"); path != "" {
		images.Footer, _ = os.ReadFile(path)
	}
	return images
}
