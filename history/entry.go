// Package history keeps the local list of issued document summaries and the
// pure functions (filter, stats, monthly totals, export) that the history
// view is built from.
package history

import (
	"strings"

	"github.com/jlvilasoler/hashrate/models"
)

// Entry is one issued-document summary. The JSON keys match the records the
// legacy browser view kept under localStorage ("facturas_hrs"), so existing
// exports load unchanged. Tipo is the stored discriminator; legacy records
// without it fall back to the number-prefix convention.
type Entry struct {
	Numero  string  `json:"numero"`
	Tipo    string  `json:"tipo,omitempty"`
	Cliente string  `json:"cliente"`
	Fecha   string  `json:"fecha"` // YYYY-MM-DD
	Mes     string  `json:"mes,omitempty"`
	Total   float64 `json:"total"`
}

// DocumentType returns the explicit stored type when present, otherwise
// classifies by number prefix: FC- is an invoice, anything else a receipt.
func (e Entry) DocumentType() string {
	if e.Tipo != "" {
		return e.Tipo
	}
	if strings.HasPrefix(e.Numero, models.PrefixFactura) {
		return models.TypeFactura
	}
	return models.TypeRecibo
}

// BillingMonth returns the explicit period, falling back to the first 7
// characters of the date (YYYY-MM).
func (e Entry) BillingMonth() string {
	if e.Mes != "" {
		return e.Mes
	}
	if len(e.Fecha) >= 7 {
		return e.Fecha[:7]
	}
	return e.Fecha
}
