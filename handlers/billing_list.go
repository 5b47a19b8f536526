package handlers

import (
	"log"
	"net/http"
	"strings"

	"github.com/a-h/templ"
	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"billingdesk/services"
	"billingdesk/templates"
)

// HandleBillingList shows every saved bill, newest first, searchable by
// bill number, customer or place.
func HandleBillingList(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		searchQuery := strings.TrimSpace(e.Request.URL.Query().Get("q"))
		records, err := querySavedBookings(app, searchQuery)
		if err != nil {
			log.Printf("billing_list: could not query bookings: %v", err)
			records = nil
		}

		var items []templates.BillingListItem
		var totalNet float64
		for _, rec := range records {
			items = append(items, templates.BillingListItem{
				ID:           rec.Id,
				BillNumber:   rec.GetString("bill_no"),
				IssueDate:    rec.GetString("issued_date"),
				CustomerName: rec.GetString("customer_name"),
				Place:        rec.GetString("customer_place"),
				NetAmount:    rec.GetFloat("net_amount"),
				HasPDF:       rec.GetString("pdf") != "",
			})
			totalNet += rec.GetFloat("net_amount")
		}

		data := templates.BillingListData{
			Billings:    items,
			SearchQuery: searchQuery,
			TotalCount:  len(items),
			TotalNet:    totalNet,
		}

		var component templ.Component
		if e.Request.Header.Get("HX-Request") == "true" {
			component = templates.BillingListContent(data)
		} else {
			component = templates.BillingListPage(data, GetHeaderData(e.Request), GetSidebarData(e.Request))
		}
		return component.Render(e.Request.Context(), e.Response)
	}
}

// HandleBillingPDF redirects to the stored PDF artifact of a saved bill.
func HandleBillingPDF(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		rec, err := app.FindRecordById("bookings", e.Request.PathValue("id"))
		if err != nil {
			return e.String(http.StatusNotFound, "Bill not found")
		}
		filename := rec.GetString("pdf")
		if filename == "" {
			return e.String(http.StatusNotFound, "No PDF stored for this bill")
		}
		return e.Redirect(http.StatusFound, recordFileURL(rec, filename))
	}
}

// HandleBillingExport downloads the saved bills as an Excel register.
func HandleBillingExport(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		records, err := querySavedBookings(app, "")
		if err != nil {
			log.Printf("billing_list: could not query bookings for export: %v", err)
			return e.String(http.StatusInternalServerError, "Export failed")
		}

		companyName := "Billing Desk"
		if companies, err := app.FindRecordsByFilter("companies", "1=1", "company_name", 1, 0, nil); err == nil && len(companies) > 0 {
			companyName = companies[0].GetString("company_name")
		}

		data := services.BillingRegisterData{CompanyName: companyName}
		for _, rec := range records {
			data.Rows = append(data.Rows, services.BillingRegisterRow{
				BillNumber:   rec.GetString("bill_no"),
				IssueDate:    rec.GetString("issued_date"),
				CustomerName: rec.GetString("customer_name"),
				Place:        rec.GetString("customer_place"),
				TaxableValue: rec.GetFloat("taxable_value"),
				CGSTAmount:   rec.GetFloat("cgst_amount"),
				SGSTAmount:   rec.GetFloat("sgst_amount"),
				IGSTAmount:   rec.GetFloat("igst_amount"),
				NetAmount:    rec.GetFloat("net_amount"),
			})
		}

		out, err := services.GenerateBillingRegisterExcel(data)
		if err != nil {
			log.Printf("billing_list: excel export failed: %v", err)
			return e.String(http.StatusInternalServerError, "Export failed")
		}

		e.Response.Header().Set("Content-Disposition", `attachment; filename="billings.xlsx"`)
		return e.Blob(http.StatusOK,
			"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", out)
	}
}

func querySavedBookings(app *pocketbase.PocketBase, searchQuery string) ([]*core.Record, error) {
	filter := "status = 'saved'"
	params := map[string]any{}
	if searchQuery != "" {
		filter += " && (bill_no ~ {:q} || customer_name ~ {:q} || customer_place ~ {:q})"
		params["q"] = searchQuery
	}
	return app.FindRecordsByFilter("bookings", filter, "-created", 0, 0, params)
}
