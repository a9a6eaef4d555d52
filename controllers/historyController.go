package controllers

import (
	"os"
	"strconv"

	"github.com/jlvilasoler/hashrate/history"
	"github.com/jlvilasoler/hashrate/middlewares"
	"github.com/jlvilasoler/hashrate/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
)

// historyStore points at the local history file, the server-side stand-in for
// the browser's "facturas_hrs" localStorage key.
func historyStore() *history.Store {
	path := os.Getenv("HISTORY_PATH")
	if path == "" {
		path = "data/facturas_hrs.json"
	}
	return history.NewStore(path)
}

func logHistoryError(err error) {
	log.Error().Err(err).Msg("history save failed")
}

type HistoryEntryInput struct {
	Numero  string  `json:"numero" validate:"required,max=50"`
	Tipo    string  `json:"tipo" validate:"omitempty,oneof=Factura Recibo"`
	Cliente string  `json:"cliente" validate:"required,max=200"`
	Fecha   string  `json:"fecha" validate:"required,max=10"`
	Mes     string  `json:"mes" validate:"omitempty,len=7"`
	Total   float64 `json:"total" validate:"gte=0"`
}

// GetHistory lists entries, optionally filtered by cliente/tipo/mes query
// params. Stats always come from the full unfiltered list.
func GetHistory(c *fiber.Ctx) error {
	entries := historyStore().Load()
	filtered := history.Filter(entries, history.Query{
		Cliente: c.Query("cliente"),
		Tipo:    c.Query("tipo"),
		Mes:     c.Query("mes"),
	})
	return c.JSON(fiber.Map{
		"entries": filtered,
		"stats":   history.Stats(entries),
	})
}

func GetHistoryStats(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"stats": history.Stats(historyStore().Load())})
}

func GetHistoryMonthly(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"months": history.MonthlyTotals(historyStore().Load())})
}

// ExportHistory streams the full list as an XLSX attachment. Empty list: 204,
// nothing is written.
func ExportHistory(c *fiber.Ctx) error {
	out, err := history.ExportXLSX(historyStore().Load())
	if err != nil {
		return err
	}
	if out == nil {
		return c.SendStatus(fiber.StatusNoContent)
	}
	c.Set(fiber.HeaderContentType, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="Historial_Facturas.xlsx"`)
	return c.Send(out)
}

// AppendHistory imports one summary entry (e.g. migrated from a legacy
// localStorage dump).
func AppendHistory(c *fiber.Ctx) error {
	var input HistoryEntryInput
	if err := c.BodyParser(&input); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid body")
	}
	utils.NormalizeDTO(&input)
	if err := middlewares.ValidateStruct(&input); err != nil {
		return err
	}

	store := historyStore()
	entries := store.Load()
	entry := history.Entry{
		Numero:  input.Numero,
		Tipo:    input.Tipo,
		Cliente: input.Cliente,
		Fecha:   input.Fecha,
		Mes:     input.Mes,
		Total:   input.Total,
	}
	entries = append(entries, entry)
	if err := store.Save(entries); err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"entry": entry})
}

// DeleteHistoryEntry removes by positional index from the full list and
// persists immediately.
func DeleteHistoryEntry(c *fiber.Ctx) error {
	index, err := strconv.Atoi(c.Params("index"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid index")
	}

	store := historyStore()
	entries := store.Load()
	remaining, err := history.RemoveAt(entries, index)
	if err != nil {
		return fiber.NewError(fiber.StatusNotFound, "Registro no encontrado")
	}
	if err := store.Save(remaining); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"entries": remaining})
}

// ClearHistory empties the stored list. Irreversible, so it demands an
// explicit ?confirm=true.
func ClearHistory(c *fiber.Ctx) error {
	if c.Query("confirm") != "true" {
		return fiber.NewError(fiber.StatusBadRequest, "confirmation required (confirm=true)")
	}
	if err := historyStore().Save([]history.Entry{}); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"message": "success"})
}
