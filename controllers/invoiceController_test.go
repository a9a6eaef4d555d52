package controllers_test

import (
	"io"
	"os"
	"strings"
	"testing"

	"github.com/jlvilasoler/hashrate/history"
	"github.com/jlvilasoler/hashrate/models"
)

type invoiceResponse struct {
	Invoice models.Invoice `json:"invoice"`
}

const sampleInvoiceBody = `{
	"type": "Factura",
	"clientName": "ACME S.R.L.",
	"date": "2026-09-01",
	"items": [
		{"serviceKey":"A","serviceName":"Servicio alojamiento y mantenimiento L7","month":"2026-09","quantity":2,"price":100,"discount":10}
	]
}`

func TestCreateInvoiceComputesTotalsAndNumber(t *testing.T) {
	app := setupApp(t)

	resp := doJSON(t, app, "POST", "/api/invoices", sampleInvoiceBody)
	if resp.StatusCode != 201 {
		t.Fatalf("status = %d, want 201", resp.StatusCode)
	}
	var out invoiceResponse
	decodeBody(t, resp, &out)

	inv := out.Invoice
	if inv.Number != "FC-1001" {
		t.Errorf("number = %q, want FC-1001", inv.Number)
	}
	if inv.Subtotal != 200 || inv.Discounts != 20 || inv.Total != 180 {
		t.Errorf("totals = %v/%v/%v, want 200/20/180", inv.Subtotal, inv.Discounts, inv.Total)
	}
	if inv.Month != "2026-09" {
		t.Errorf("month = %q, want date-derived 2026-09", inv.Month)
	}
	if len(inv.Items) != 1 || inv.Items[0].ServiceKey != "A" {
		t.Errorf("items = %+v", inv.Items)
	}

	// The document sequence advances per type.
	resp = doJSON(t, app, "POST", "/api/invoices", sampleInvoiceBody)
	decodeBody(t, resp, &out)
	if out.Invoice.Number != "FC-1002" {
		t.Errorf("second number = %q, want FC-1002", out.Invoice.Number)
	}

	recibo := strings.Replace(sampleInvoiceBody, `"Factura"`, `"Recibo"`, 1)
	resp = doJSON(t, app, "POST", "/api/invoices", recibo)
	decodeBody(t, resp, &out)
	if out.Invoice.Number != "RC-1001" {
		t.Errorf("receipt number = %q, want RC-1001", out.Invoice.Number)
	}
}

func TestCreateInvoiceIgnoresClientTotals(t *testing.T) {
	app := setupApp(t)

	body := strings.Replace(sampleInvoiceBody, `"type"`, `"subtotal": 9999, "total": 1, "type"`, 1)
	resp := doJSON(t, app, "POST", "/api/invoices", body)
	if resp.StatusCode != 201 {
		t.Fatalf("status = %d, want 201", resp.StatusCode)
	}
	var out invoiceResponse
	decodeBody(t, resp, &out)
	if out.Invoice.Subtotal != 200 || out.Invoice.Total != 180 {
		t.Errorf("server must recompute totals, got %v/%v", out.Invoice.Subtotal, out.Invoice.Total)
	}
}

func TestCreateInvoiceDuplicateNumberConflicts(t *testing.T) {
	app := setupApp(t)

	withNumber := strings.Replace(sampleInvoiceBody, `"type"`, `"number": "FC-7777", "type"`, 1)
	resp := doJSON(t, app, "POST", "/api/invoices", withNumber)
	if resp.StatusCode != 201 {
		t.Fatalf("first status = %d", resp.StatusCode)
	}
	resp.Body.Close()

	resp = doJSON(t, app, "POST", "/api/invoices", withNumber)
	if resp.StatusCode != 409 {
		t.Fatalf("duplicate status = %d, want 409", resp.StatusCode)
	}
	resp.Body.Close()
}

func TestCreateInvoiceValidation(t *testing.T) {
	app := setupApp(t)

	cases := []struct {
		name string
		body string
	}{
		{"no items", `{"type":"Factura","clientName":"ACME","date":"2026-09-01","items":[]}`},
		{"bad type", `{"type":"Presupuesto","clientName":"ACME","date":"2026-09-01","items":[{"serviceKey":"A","serviceName":"x","quantity":1,"price":1,"discount":0}]}`},
		{"bad date", `{"type":"Factura","clientName":"ACME","date":"01/09/2026","items":[{"serviceKey":"A","serviceName":"x","quantity":1,"price":1,"discount":0}]}`},
		{"zero quantity", `{"type":"Factura","clientName":"ACME","date":"2026-09-01","items":[{"serviceKey":"A","serviceName":"x","quantity":0,"price":1,"discount":0}]}`},
		{"bad service key", `{"type":"Factura","clientName":"ACME","date":"2026-09-01","items":[{"serviceKey":"Z","serviceName":"x","quantity":1,"price":1,"discount":0}]}`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			resp := doJSON(t, app, "POST", "/api/invoices", tc.body)
			if resp.StatusCode != 400 {
				t.Errorf("status = %d, want 400", resp.StatusCode)
			}
			resp.Body.Close()
		})
	}
}

func TestCreateInvoiceAppendsHistory(t *testing.T) {
	app := setupApp(t)

	resp := doJSON(t, app, "POST", "/api/invoices", sampleInvoiceBody)
	if resp.StatusCode != 201 {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	resp.Body.Close()

	entries := history.NewStore(os.Getenv("HISTORY_PATH")).Load()
	if len(entries) != 1 {
		t.Fatalf("history entries = %d, want 1", len(entries))
	}
	e := entries[0]
	if e.Numero != "FC-1001" || e.Tipo != "Factura" || e.Cliente != "ACME S.R.L." || e.Total != 180 {
		t.Errorf("history entry = %+v", e)
	}
}

func TestGetInvoicePDF(t *testing.T) {
	app := setupApp(t)

	resp := doJSON(t, app, "POST", "/api/invoices", sampleInvoiceBody)
	resp.Body.Close()

	resp = doJSON(t, app, "GET", "/api/invoices/1/pdf", "")
	if resp.StatusCode != 200 {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}
	defer resp.Body.Close()
	if ct := resp.Header.Get("Content-Type"); ct != "application/pdf" {
		t.Errorf("content type = %q", ct)
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(string(body), "%PDF") {
		t.Error("body does not look like a PDF")
	}

	resp = doJSON(t, app, "GET", "/api/invoices/99/pdf", "")
	if resp.StatusCode != 404 {
		t.Errorf("missing invoice status = %d, want 404", resp.StatusCode)
	}
	resp.Body.Close()
}

func TestCreateInvoiceIdempotencyReplay(t *testing.T) {
	app := setupApp(t)

	resp := doJSON(t, app, "POST", "/api/invoices", sampleInvoiceBody,
		"Idempotency-Key", "abc-123")
	if resp.StatusCode != 201 {
		t.Fatalf("first status = %d", resp.StatusCode)
	}
	var first invoiceResponse
	decodeBody(t, resp, &first)

	// Same key + same body: replayed response, no second document.
	resp = doJSON(t, app, "POST", "/api/invoices", sampleInvoiceBody,
		"Idempotency-Key", "abc-123")
	var second invoiceResponse
	decodeBody(t, resp, &second)
	if second.Invoice.Number != first.Invoice.Number {
		t.Errorf("replay returned %q, want %q", second.Invoice.Number, first.Invoice.Number)
	}

	var count int64
	if err := dbCount(&count); err != nil {
		t.Fatal(err)
	}
	if count != 1 {
		t.Errorf("invoice count = %d, want 1", count)
	}

	// Same key + different body: conflict.
	other := strings.Replace(sampleInvoiceBody, "ACME S.R.L.", "Otro Cliente", 1)
	resp = doJSON(t, app, "POST", "/api/invoices", other, "Idempotency-Key", "abc-123")
	if resp.StatusCode != 409 {
		t.Errorf("key reuse status = %d, want 409", resp.StatusCode)
	}
	resp.Body.Close()
}
