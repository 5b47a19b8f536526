package handlers

import (
	"log"
	"net/http"

	"github.com/a-h/templ"
	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"billingdesk/services"
	"billingdesk/templates"
)

// HandleBookingPage renders the booking composition page. Each staff member
// works on one draft at a time; the draft is created on first visit and
// reused until generated.
func HandleBookingPage(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		booking, err := findOrCreateDraft(app, GetStaff(e.Request).ID)
		if err != nil {
			log.Printf("booking: could not open draft: %v", err)
			return e.String(http.StatusInternalServerError, "Could not open booking")
		}

		data := buildBookingPageData(app, booking)

		var component templ.Component
		if e.Request.Header.Get("HX-Request") == "true" {
			component = templates.BookingContent(data)
		} else {
			component = templates.BookingPage(data, GetHeaderData(e.Request), GetSidebarData(e.Request))
		}
		return component.Render(e.Request.Context(), e.Response)
	}
}

// findOrCreateDraft returns the staff member's open draft, creating one
// bound to the first company when none exists.
func findOrCreateDraft(app *pocketbase.PocketBase, staffID string) (*core.Record, error) {
	drafts, err := app.FindRecordsByFilter(
		"bookings",
		"status = 'draft' && staff = {:staff}",
		"-created",
		1,
		0,
		map[string]any{"staff": staffID},
	)
	if err == nil && len(drafts) > 0 {
		return drafts[0], nil
	}

	col, err := app.FindCollectionByNameOrId("bookings")
	if err != nil {
		return nil, err
	}

	booking := core.NewRecord(col)
	booking.Set("status", "draft")
	booking.Set("staff", staffID)
	booking.Set("packing_percent", 0.0)

	companies, err := app.FindRecordsByFilter("companies", "1=1", "company_name", 1, 0, nil)
	if err == nil && len(companies) > 0 {
		company := companies[0]
		booking.Set("company", company.Id)
		prefix := services.CompanyPrefix(company.GetString("company_name"))
		booking.Set("suggested_bill_no", services.NextBillNumber(app, prefix))
	}

	if err := app.Save(booking); err != nil {
		return nil, err
	}
	return booking, nil
}

// buildBookingPageData assembles the full page model for a draft booking.
func buildBookingPageData(app *pocketbase.PocketBase, booking *core.Record) templates.BookingPageData {
	data := templates.BookingPageData{
		BookingID:         booking.Id,
		CustomerName:      booking.GetString("customer_name"),
		CustomerAddress:   booking.GetString("customer_address"),
		CustomerGSTIN:     booking.GetString("customer_gstin"),
		CustomerPlace:     booking.GetString("customer_place"),
		CustomerStateCode: booking.GetString("customer_state_code"),
		Through:           booking.GetString("through"),
		Destination:       booking.GetString("destination"),
		PackingPercent:    services.FormatAmount(booking.GetFloat("packing_percent")),
		ExtraTaxable:      booking.GetString("extra_taxable"),
		IsInterstate:      booking.GetBool("is_igst"),
	}

	companyID := booking.GetString("company")
	if companies, err := app.FindRecordsByFilter("companies", "1=1", "company_name", 0, 0, nil); err == nil {
		for _, rec := range companies {
			data.Companies = append(data.Companies, templates.CompanyOption{
				ID:       rec.Id,
				Name:     rec.GetString("company_name"),
				Selected: rec.Id == companyID,
			})
		}
	}

	if products, err := app.FindRecordsByFilter("products", "1=1", "productname", 0, 0, nil); err == nil {
		for _, rec := range products {
			data.Products = append(data.Products, templates.ProductListItem{
				ID:          rec.Id,
				ProductName: rec.GetString("productname"),
				HSNCode:     rec.GetString("hsn_code"),
				RatePerBox:  rec.GetFloat("rate_per_box"),
				PerCase:     rec.GetInt("per_case"),
			})
		}
	}

	if customers, err := app.FindRecordsByFilter("customers", "1=1", "customer_name", 0, 0, nil); err == nil {
		for _, rec := range customers {
			data.Customers = append(data.Customers, templates.CustomerOption{
				Name:      rec.GetString("customer_name"),
				Address:   rec.GetString("customer_address"),
				GSTIN:     rec.GetString("customer_gstin"),
				Place:     rec.GetString("customer_place"),
				StateCode: rec.GetString("customer_state_code"),
			})
		}
	}

	if states, err := app.FindRecordsByFilter("states", "1=1", "code", 0, 0, nil); err == nil {
		for _, rec := range states {
			data.States = append(data.States, templates.StateOption{
				Code:     rec.GetString("code"),
				Name:     rec.GetString("state_name"),
				Selected: rec.GetString("state_name") == data.CustomerPlace,
			})
		}
	}

	billState := services.BillStateOf(booking)
	data.BillNumber = templates.BillNumberData{
		BookingID:  booking.Id,
		Suggested:  billState.Suggested,
		Manual:     billState.Manual,
		Effective:  billState.Effective(),
		IsOverride: billState.IsOverride(),
	}

	data.Cart = buildCartData(app, booking.Id)
	data.Summary = buildSummaryData(app, booking)
	return data
}

// buildCartData loads the draft's line items for the cart table.
func buildCartData(app *pocketbase.PocketBase, bookingID string) templates.CartData {
	data := templates.CartData{BookingID: bookingID}
	cart, err := services.LoadCart(app, bookingID)
	if err != nil {
		log.Printf("booking: could not load cart for %s: %v", bookingID, err)
		return data
	}
	for _, item := range cart {
		data.Rows = append(data.Rows, templates.CartRow{
			ID:          item.ItemID,
			ProductName: item.ProductName,
			HSNCode:     item.HSNCode,
			RatePerBox:  item.RatePerBox,
			Cases:       item.Cases,
			Amount:      item.Amount(),
		})
	}
	return data
}

// buildSummaryData recomputes the totals panel from the stored draft.
func buildSummaryData(app *pocketbase.PocketBase, booking *core.Record) templates.SummaryData {
	cart, err := services.LoadCart(app, booking.Id)
	if err != nil {
		log.Printf("booking: could not load cart for summary %s: %v", booking.Id, err)
	}
	tax := services.TaxContextOf(booking)
	result := services.ComputeTax(cart, tax)

	words, err := services.AmountInWords(int64(result.NetAmount))
	if err != nil {
		words = ""
	}

	return templates.SummaryData{
		BookingID:      booking.Id,
		Subtotal:       result.Subtotal,
		PackingPercent: tax.PackingPercent,
		PackingAmount:  result.PackingAmount,
		ExtraAmount:    result.ExtraAmount,
		TaxableValue:   result.TaxableValue,
		IsInterstate:   tax.IsInterstate,
		CGSTAmount:     result.CGSTAmount,
		SGSTAmount:     result.SGSTAmount,
		IGSTAmount:     result.IGSTAmount,
		NetAmount:      result.NetAmount,
		AmountWords:    words,
	}
}
