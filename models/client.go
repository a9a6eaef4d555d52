package models

// Client is a directory entry. Code is the business identifier shown to
// clerks; invoices only store the name snapshot, never the id.
type Client struct {
	Id      uint   `json:"id" gorm:"primaryKey"`
	Code    string `json:"code" gorm:"not null;uniqueIndex;size:50"`
	Name    string `json:"name" gorm:"not null;size:200"`
	Phone   string `json:"phone" gorm:"size:50"`
	Email   string `json:"email" gorm:"size:200"`
	Address string `json:"address" gorm:"size:300"`
	City    string `json:"city" gorm:"size:100"`
}
