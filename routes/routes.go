package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jlvilasoler/hashrate/controllers"
	"github.com/jlvilasoler/hashrate/middlewares"
)

// Register wires all HTTP routes.
func Register(app *fiber.App) {
	api := app.Group("/api")

	// Public auth endpoints
	api.Post("/registration", controllers.Register)
	api.Post("/login", controllers.Login)
	api.Post("/logout", controllers.Logout)

	// Billing endpoints (bearer JWT when AUTH_ENABLED)
	protected := api.Group("")
	protected.Use(middlewares.IsAuthenticatedHeader())

	// Idempotency guard for mutating requests
	protected.Use(middlewares.Idempotency())

	// Clients
	protected.Get("/clients", controllers.GetClients)
	protected.Post("/clients", controllers.CreateClient)
	protected.Put("/clients/:id", controllers.UpdateClient)

	// Invoices / receipts
	protected.Post("/invoices", controllers.CreateInvoice)
	protected.Get("/invoices", controllers.GetInvoices)
	protected.Get("/invoices/:id", controllers.GetInvoice)
	protected.Get("/invoices/:id/pdf", controllers.GetInvoicePDF)

	// History view
	protected.Get("/history", controllers.GetHistory)
	protected.Get("/history/stats", controllers.GetHistoryStats)
	protected.Get("/history/monthly", controllers.GetHistoryMonthly)
	protected.Get("/history/export", controllers.ExportHistory)
	protected.Post("/history", controllers.AppendHistory)
	protected.Delete("/history/:index", controllers.DeleteHistoryEntry)
	protected.Delete("/history", controllers.ClearHistory)
}
