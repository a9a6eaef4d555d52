// Package pdf renders billed documents into the branded HRS A4 template.
// The layout is a fixed absolute-coordinate template in millimeters.
package pdf

import (
	"bytes"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"strconv"
	"time"

	"github.com/jlvilasoler/hashrate/models"
	"github.com/jlvilasoler/hashrate/utils"

	"github.com/go-pdf/fpdf"
)

// Document is the invoice snapshot the renderer consumes.
type Document struct {
	Number     string
	Type       string // models.TypeFactura | models.TypeRecibo
	ClientName string
	Date       time.Time
	Items      []models.InvoiceItem
	Subtotal   float64
	Discounts  float64
	Total      float64
}

// Images carries optional branding bytes. Undecodable images are skipped
// silently; the document renders without them.
type Images struct {
	Logo   []byte // full-width band at the top
	Footer []byte // band at the bottom of the page
}

// Issuer identity printed on every document.
const (
	emisorNombre    = "HRS GROUP S.A"
	emisorDireccion = "Juan de Salazar 1857"
	emisorCiudad    = "Asunción - Paraguay"
	emisorTelefono  = "Teléfono: (+595) 993 358 387"
	emisorEmail     = "sales@hashrate.space"
	emisorRUC       = "RUC EMISOR: 80144251-6"
	emisorWeb       = "https://hashrate.space"
)

const (
	marginMM     = 18.0
	pageW        = 210.0
	pageH        = 297.0
	colDesc      = 95.0
	colPrecio    = 32.0
	colCant      = 22.0
	colTotal     = 38.0
	tableLeft    = marginMM
	rowH         = 7.0
	headerRowH   = 8.0
	logoHeightMM = 20.0
	fajaHeightMM = 18.0

	descMaxChars = 52
)

// Brand green.
var hrsGreen = struct{ r, g, b int }{0, 166, 82}

// Render produces the paginated PDF for a document. Deterministic given
// identical inputs; the only I/O is decoding the optional branding images.
func Render(doc Document, images Images) ([]byte, error) {
	p := fpdf.New("P", "mm", "A4", "")
	tr := p.UnicodeTranslatorFromDescriptor("")
	p.SetAutoPageBreak(false, 0)
	p.AddPage()

	now := doc.Date
	vencimiento := now.AddDate(0, 0, 7)

	y := 10.0

	// ---------- Logo (top, page wide) ----------
	if name, ok := registerImage(p, "logo", images.Logo); ok {
		logoW := pageW - 2*marginMM
		p.ImageOptions(name, marginMM, y, logoW, logoHeightMM, false, imageOpts(images.Logo), 0, "")
		y += logoHeightMM + 6
	} else {
		y += 4
	}

	// ---------- Row: left = issuer, right = type+number / VIA CLIENTE / FECHA / TOTAL ----------
	tipoLabel := "RECIBO"
	if doc.Type == models.TypeFactura {
		tipoLabel = "FACTURA CREDITO"
	}
	p.SetFont("Helvetica", "B", 12)
	p.SetTextColor(hrsGreen.r, hrsGreen.g, hrsGreen.b)
	p.Text(marginMM, y, tr(emisorNombre))
	p.SetTextColor(0, 0, 0)
	p.SetFontSize(11)
	textRight(p, pageW-marginMM, y, tr(tipoLabel+" - "+doc.Number))
	y += 5

	p.SetFont("Helvetica", "", 9)
	p.Text(marginMM, y, tr(emisorDireccion))
	textRight(p, pageW-marginMM, y, "VIA CLIENTE")
	y += 5

	p.Text(marginMM, y, tr(emisorCiudad))
	textRight(p, pageW-marginMM, y, "FECHA")
	y += 5

	p.Text(marginMM, y, tr(emisorTelefono))
	textRight(p, pageW-marginMM, y, tr(formatFechaTexto(now)))
	y += 5

	p.Text(marginMM, y, emisorEmail)
	p.SetFont("Helvetica", "B", 9)
	p.SetTextColor(hrsGreen.r, hrsGreen.g, hrsGreen.b)
	textRight(p, pageW-marginMM, y, tr("TOTAL "+utils.FormatUSD(doc.Total)))
	p.SetTextColor(0, 0, 0)
	p.SetFont("Helvetica", "", 9)
	y += 5

	textRight(p, pageW-marginMM, y, emisorRUC)
	y += 8

	// ---------- Service line derived from the first item ----------
	servicioTitulo := "Servicio alojamiento y mantenimiento"
	if len(doc.Items) > 0 {
		first := doc.Items[0]
		servicioTitulo += " " + serviceCode(first.ServiceName)
		if first.Month != "" {
			servicioTitulo += " - " + monthToRange(first.Month)
		}
	}
	p.SetFontSize(10)
	p.Text(marginMM, y, tr(servicioTitulo))
	y += 8

	// ---------- Table: header row with green fill ----------
	tableTop := y
	tableW := colDesc + colPrecio + colCant + colTotal
	p.SetFillColor(hrsGreen.r, hrsGreen.g, hrsGreen.b)
	p.Rect(tableLeft, tableTop, tableW, headerRowH, "F")
	p.SetDrawColor(hrsGreen.r, hrsGreen.g, hrsGreen.b)
	p.Line(tableLeft+colDesc, tableTop, tableLeft+colDesc, tableTop+headerRowH)
	p.Line(tableLeft+colDesc+colPrecio, tableTop, tableLeft+colDesc+colPrecio, tableTop+headerRowH)
	p.Line(tableLeft+colDesc+colPrecio+colCant, tableTop, tableLeft+colDesc+colPrecio+colCant, tableTop+headerRowH)

	p.SetFont("Helvetica", "B", 9)
	p.SetTextColor(255, 255, 255)
	p.Text(tableLeft+2, tableTop+5.5, "DESCRIPCION")
	p.Text(tableLeft+colDesc+2, tableTop+5.5, "PRECIO")
	p.Text(tableLeft+colDesc+colPrecio+2, tableTop+5.5, "CANTIDAD")
	p.Text(tableLeft+colDesc+colPrecio+colCant+2, tableTop+5.5, "TOTAL")
	p.SetTextColor(0, 0, 0)

	y = tableTop + headerRowH
	p.SetFont("Helvetica", "", 9)
	p.SetDrawColor(0, 0, 0)

	for _, it := range doc.Items {
		lineTotal := utils.LineTotal(it.Price, it.Discount, it.Quantity)
		desc := it.ServiceName
		if it.Month != "" {
			desc = it.ServiceName + " - " + it.Month
		}
		tableRow(p, y,
			tr(truncate(desc, descMaxChars)),
			utils.FormatUSD(it.Price),
			strconv.Itoa(it.Quantity),
			utils.FormatUSD(lineTotal))
		y += rowH
	}

	if doc.Discounts > 0 {
		descDescuento := "Descuento HASHRATE"
		if len(doc.Items) == 1 && doc.Items[0].Month != "" {
			descDescuento += " - " + doc.Items[0].ServiceName + " - " + monthToRange(doc.Items[0].Month)
		}
		tableRow(p, y,
			tr(truncate(descDescuento, descMaxChars)),
			"- "+utils.FormatUSD(doc.Discounts),
			"1",
			"- "+utils.FormatUSD(doc.Discounts))
		y += rowH
	}

	y += 6

	// ---------- Issue / due dates ----------
	p.SetFontSize(9)
	p.Text(marginMM, y, tr("FECHA DE EMISIÓN: "+formatDDMMYY(now)))
	y += 6
	p.Text(marginMM, y, tr("FECHA DE VENCIMIENTO: "+formatDDMMYY(vencimiento)))
	y += 10

	// ---------- Client block ----------
	p.SetFont("Helvetica", "B", 10)
	p.SetTextColor(hrsGreen.r, hrsGreen.g, hrsGreen.b)
	p.Text(marginMM, y, "CLIENTE:")
	p.SetTextColor(0, 0, 0)
	p.SetFont("Helvetica", "", 10)
	p.Text(marginMM+20, y, tr(doc.ClientName))
	y += 6
	p.SetFontSize(9)
	p.SetTextColor(80, 80, 80)
	p.Text(marginMM, y, emisorWeb)
	p.SetTextColor(0, 0, 0)
	y += 10

	// ---------- Highlighted total (green, right) ----------
	p.SetFont("Helvetica", "B", 12)
	p.SetTextColor(hrsGreen.r, hrsGreen.g, hrsGreen.b)
	textRight(p, pageW-marginMM, y, tr("TOTAL "+utils.FormatUSD(doc.Total)))
	p.SetTextColor(0, 0, 0)

	// ---------- Footer band (bottom of the sheet) ----------
	if y+fajaHeightMM < pageH-15 {
		if name, ok := registerImage(p, "faja", images.Footer); ok {
			p.ImageOptions(name, 0, pageH-fajaHeightMM-10, pageW, fajaHeightMM, false, imageOpts(images.Footer), 0, "")
		}
	}

	var buf bytes.Buffer
	if err := p.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// tableRow draws one bordered row with the four column values.
func tableRow(p *fpdf.Fpdf, y float64, desc, precio, cantidad, total string) {
	tableW := colDesc + colPrecio + colCant + colTotal
	p.Rect(tableLeft, y, tableW, rowH, "D")
	p.Text(tableLeft+2, y+4.5, desc)
	p.Text(tableLeft+colDesc+2, y+4.5, precio)
	p.Text(tableLeft+colDesc+colPrecio+2, y+4.5, cantidad)
	p.Text(tableLeft+colDesc+colPrecio+colCant+2, y+4.5, total)
	p.Line(tableLeft+colDesc, y, tableLeft+colDesc, y+rowH)
	p.Line(tableLeft+colDesc+colPrecio, y, tableLeft+colDesc+colPrecio, y+rowH)
	p.Line(tableLeft+colDesc+colPrecio+colCant, y, tableLeft+colDesc+colPrecio+colCant, y+rowH)
}

func textRight(p *fpdf.Fpdf, x, y float64, s string) {
	p.Text(x-p.GetStringWidth(s), y, s)
}

// registerImage validates and registers branding bytes under name.
// Returns false (and registers nothing) when the bytes are missing or do not
// decode as PNG/JPEG, so a broken image degrades cosmetically instead of
// failing the document.
func registerImage(p *fpdf.Fpdf, name string, data []byte) (string, bool) {
	if len(data) == 0 {
		return "", false
	}
	if _, _, err := image.DecodeConfig(bytes.NewReader(data)); err != nil {
		return "", false
	}
	p.RegisterImageOptionsReader(name, imageOpts(data), bytes.NewReader(data))
	return name, p.Ok()
}

func imageOpts(data []byte) fpdf.ImageOptions {
	imgType := "PNG"
	if _, format, err := image.DecodeConfig(bytes.NewReader(data)); err == nil && format == "jpeg" {
		imgType = "JPG"
	}
	return fpdf.ImageOptions{ImageType: imgType}
}
