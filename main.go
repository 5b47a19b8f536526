package main

import (
	"log"
	"net/http"
	"os"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/apis"
	"github.com/pocketbase/pocketbase/core"

	"billingdesk/collections"
	"billingdesk/handlers"
)

func main() {
	app := pocketbase.New()

	// Create collections and seed data on startup
	app.OnServe().BindFunc(func(se *core.ServeEvent) error {
		collections.Setup(app)
		if err := collections.Seed(app); err != nil {
			log.Printf("Warning: seed data failed: %v", err)
		}
		if err := collections.MigrateMissingHSNCodes(app); err != nil {
			log.Printf("Warning: HSN backfill failed: %v", err)
		}
		return se.Next()
	})

	app.OnServe().BindFunc(func(se *core.ServeEvent) error {
		se.Router.GET("/static/{path...}", apis.Static(os.DirFS("./static"), false))

		// Resolve the staff session globally
		se.Router.BindFunc(handlers.StaffSessionMiddleware(app))

		// ── Auth ─────────────────────────────────────────────────
		se.Router.GET("/login", handlers.HandleLoginPage(app))
		se.Router.POST("/login", handlers.HandleLogin(app))
		se.Router.POST("/logout", handlers.HandleLogout(app))

		// ── Booking flow ─────────────────────────────────────────
		se.Router.GET("/book", handlers.RequireStaff(handlers.HandleBookingPage(app)))
		se.Router.POST("/book/{id}/company", handlers.RequireStaff(handlers.HandleBookingCompanyChange(app)))
		se.Router.POST("/book/{id}/bill-no", handlers.RequireStaff(handlers.HandleBookingBillNoEdit(app)))
		se.Router.POST("/book/{id}/customer", handlers.RequireStaff(handlers.HandleBookingCustomerChange(app)))
		se.Router.POST("/book/{id}/tax", handlers.RequireStaff(handlers.HandleBookingTaxChange(app)))
		se.Router.POST("/book/{id}/items", handlers.RequireStaff(handlers.HandleCartAdd(app)))
		se.Router.PATCH("/book/{id}/items/{itemId}", handlers.RequireStaff(handlers.HandleCartUpdate(app)))
		se.Router.DELETE("/book/{id}/items/{itemId}", handlers.RequireStaff(handlers.HandleCartRemove(app)))
		se.Router.POST("/book/{id}/generate", handlers.RequireStaff(handlers.HandleBookingGenerate(app)))

		// ── Product listing (both roles) ─────────────────────────
		se.Router.GET("/listing", handlers.RequireStaff(handlers.HandleProductList(app)))
		se.Router.GET("/listing/{id}/edit", handlers.RequireAdmin(handlers.HandleProductEdit(app)))
		se.Router.POST("/listing/{id}/save", handlers.RequireAdmin(handlers.HandleProductUpdate(app)))
		se.Router.DELETE("/listing/{id}", handlers.RequireAdmin(handlers.HandleProductDelete(app)))

		// ── Inventory entry (admin) ──────────────────────────────
		se.Router.GET("/inventory", handlers.RequireAdmin(handlers.HandleInventoryPage(app)))
		se.Router.POST("/inventory", handlers.RequireAdmin(handlers.HandleProductSave(app)))
		se.Router.POST("/inventory/types", handlers.RequireAdmin(handlers.HandleProductTypeSave(app)))

		// ── Company profiles (admin) ─────────────────────────────
		se.Router.GET("/company", handlers.RequireAdmin(handlers.HandleCompanyList(app)))
		se.Router.GET("/company/create", handlers.RequireAdmin(handlers.HandleCompanyCreate(app)))
		se.Router.POST("/company", handlers.RequireAdmin(handlers.HandleCompanySave(app)))
		se.Router.GET("/company/{id}/edit", handlers.RequireAdmin(handlers.HandleCompanyEdit(app)))
		se.Router.POST("/company/{id}/save", handlers.RequireAdmin(handlers.HandleCompanyUpdate(app)))

		// ── Saved billings (admin) ───────────────────────────────
		se.Router.GET("/allbookings", handlers.RequireAdmin(handlers.HandleBillingList(app)))
		se.Router.GET("/allbookings/export", handlers.RequireAdmin(handlers.HandleBillingExport(app)))
		se.Router.GET("/allbookings/{id}/pdf", handlers.RequireStaff(handlers.HandleBillingPDF(app)))

		// Home goes to the booking page
		se.Router.GET("/", func(e *core.RequestEvent) error {
			return e.Redirect(http.StatusFound, "/book")
		})

		return se.Next()
	})

	if err := app.Start(); err != nil {
		log.Fatal(err)
	}
}
