package models

import "time"

// Document types. The number prefix (FC-/RC-) mirrors the type for display,
// but Type is the stored discriminator.
const (
	TypeFactura = "Factura"
	TypeRecibo  = "Recibo"

	PrefixFactura = "FC-"
	PrefixRecibo  = "RC-"
)

// Invoice is a billed document (invoice or receipt) plus its line items.
// ClientName is a denormalized snapshot: renaming a client never rewrites
// historical documents.
type Invoice struct {
	Id         uint   `json:"id" gorm:"primaryKey"`
	Number     string `json:"number" gorm:"not null;uniqueIndex;size:50"`
	Type       string `json:"type" gorm:"not null;size:20"`
	ClientName string `json:"clientName" gorm:"not null;size:200"`
	Date       string `json:"date" gorm:"not null;size:10"` // YYYY-MM-DD
	Month      string `json:"month" gorm:"not null;size:7"` // YYYY-MM billing period

	Items     []InvoiceItem `json:"items" gorm:"foreignKey:InvoiceId;constraint:OnDelete:CASCADE"`
	Subtotal  float64       `json:"subtotal" gorm:"type:numeric(12,2)"`
	Discounts float64       `json:"discounts" gorm:"type:numeric(12,2)"`
	Total     float64       `json:"total" gorm:"type:numeric(12,2)"`

	CreatedAt time.Time `json:"created_at"`
}

type InvoiceItem struct {
	Id          uint    `json:"id" gorm:"primaryKey"`
	InvoiceId   uint    `json:"-" gorm:"index"`
	ServiceKey  string  `json:"serviceKey" gorm:"not null;size:10"`
	ServiceName string  `json:"serviceName" gorm:"column:service;not null;size:200"`
	Month       string  `json:"month" gorm:"size:7"`
	Quantity    int     `json:"quantity" gorm:"not null"`
	Price       float64 `json:"price" gorm:"type:numeric(12,2)"`
	Discount    float64 `json:"discount" gorm:"type:numeric(12,2)"`
}

// NumberPrefix returns the sequence prefix for a document type.
func NumberPrefix(docType string) string {
	if docType == TypeRecibo {
		return PrefixRecibo
	}
	return PrefixFactura
}
