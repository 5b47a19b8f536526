package handlers

import (
	"log"
	"net/http"
	"strings"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"billingdesk/services"
	"billingdesk/templates"
)

// HandleBookingCompanyChange switches the issuing company on the draft and
// re-suggests the bill number under the new company's prefix. Any manual
// override is discarded; the operator re-enters it if still wanted.
func HandleBookingCompanyChange(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		booking, err := findDraft(app, e)
		if err != nil {
			return e.String(http.StatusNotFound, "Booking not found")
		}
		if err := e.Request.ParseForm(); err != nil {
			return ErrorToast(e, http.StatusBadRequest, "Invalid form submission")
		}

		company, err := app.FindRecordById("companies", e.Request.FormValue("company"))
		if err != nil {
			return ErrorToast(e, http.StatusBadRequest, "Unknown company")
		}

		prefix := services.CompanyPrefix(company.GetString("company_name"))
		state := services.BillStateOf(booking).ApplySuggestion(services.NextBillNumber(app, prefix))

		booking.Set("company", company.Id)
		booking.Set("suggested_bill_no", state.Suggested)
		booking.Set("manual_bill_no", "")
		if err := app.Save(booking); err != nil {
			log.Printf("booking: could not switch company on %s: %v", booking.Id, err)
			return ErrorToast(e, http.StatusInternalServerError, "Could not switch company")
		}

		return renderBillNumberField(e, booking.Id, state)
	}
}

// HandleBookingBillNoEdit records a manual bill number edit. Clearing the
// field reverts to the suggestion.
func HandleBookingBillNoEdit(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		booking, err := findDraft(app, e)
		if err != nil {
			return e.String(http.StatusNotFound, "Booking not found")
		}
		if err := e.Request.ParseForm(); err != nil {
			return ErrorToast(e, http.StatusBadRequest, "Invalid form submission")
		}

		state := services.BillStateOf(booking).SetManual(e.Request.FormValue("manual_bill_no"))
		if !state.IsOverride() {
			state.Manual = ""
		}

		booking.Set("manual_bill_no", state.Manual)
		if err := app.Save(booking); err != nil {
			log.Printf("booking: could not record bill no on %s: %v", booking.Id, err)
			return ErrorToast(e, http.StatusInternalServerError, "Could not save bill number")
		}

		return renderBillNumberField(e, booking.Id, state)
	}
}

// HandleBookingCustomerChange persists the customer block fields of the
// draft. Selecting a previously billed customer fills the remaining fields
// from history; choosing a place of supply outside the home state flips the
// bill to IGST.
func HandleBookingCustomerChange(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		booking, err := findDraft(app, e)
		if err != nil {
			return e.String(http.StatusNotFound, "Booking not found")
		}
		if err := e.Request.ParseForm(); err != nil {
			return ErrorToast(e, http.StatusBadRequest, "Invalid form submission")
		}

		name := strings.TrimSpace(e.Request.FormValue("customer_name"))
		address := strings.TrimSpace(e.Request.FormValue("customer_address"))
		gstin := strings.ToUpper(strings.TrimSpace(e.Request.FormValue("customer_gstin")))
		place := strings.TrimSpace(e.Request.FormValue("customer_place"))

		// A known customer fills the blanks from history.
		if name != "" && address == "" && gstin == "" {
			if history, err := app.FindFirstRecordByData("customers", "customer_name", name); err == nil {
				address = history.GetString("customer_address")
				gstin = history.GetString("customer_gstin")
				if place == "" {
					place = history.GetString("customer_place")
				}
			}
		}

		stateCode := services.HomeStateCode
		if place != "" {
			if state, err := app.FindFirstRecordByData("states", "state_name", place); err == nil {
				stateCode = state.GetString("code")
			}
		}

		booking.Set("customer_name", name)
		booking.Set("customer_address", address)
		booking.Set("customer_gstin", gstin)
		booking.Set("customer_place", place)
		booking.Set("customer_state_code", stateCode)
		booking.Set("through", strings.TrimSpace(e.Request.FormValue("through")))
		booking.Set("destination", strings.TrimSpace(e.Request.FormValue("destination")))
		booking.Set("is_igst", stateCode != services.HomeStateCode)
		if err := app.Save(booking); err != nil {
			log.Printf("booking: could not save customer on %s: %v", booking.Id, err)
			return ErrorToast(e, http.StatusInternalServerError, "Could not save customer details")
		}

		summary := buildSummaryData(app, booking)
		return templates.BookingSummary(summary).Render(e.Request.Context(), e.Response)
	}
}

// HandleBookingTaxChange persists the packing percent, extra taxable amount
// and interstate flag, then returns the recomputed summary.
func HandleBookingTaxChange(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		booking, err := findDraft(app, e)
		if err != nil {
			return e.String(http.StatusNotFound, "Booking not found")
		}
		if err := e.Request.ParseForm(); err != nil {
			return ErrorToast(e, http.StatusBadRequest, "Invalid form submission")
		}

		booking.Set("packing_percent", services.ParseAmountOrZero(e.Request.FormValue("packing_percent")))
		booking.Set("extra_taxable", strings.TrimSpace(e.Request.FormValue("extra_taxable")))
		booking.Set("is_igst", e.Request.FormValue("is_igst") == "true")
		if err := app.Save(booking); err != nil {
			log.Printf("booking: could not save tax inputs on %s: %v", booking.Id, err)
			return ErrorToast(e, http.StatusInternalServerError, "Could not save tax settings")
		}

		summary := buildSummaryData(app, booking)
		return templates.BookingSummary(summary).Render(e.Request.Context(), e.Response)
	}
}

func renderBillNumberField(e *core.RequestEvent, bookingID string, state services.BillNumberState) error {
	data := templates.BillNumberData{
		BookingID:  bookingID,
		Suggested:  state.Suggested,
		Manual:     state.Manual,
		Effective:  state.Effective(),
		IsOverride: state.IsOverride(),
	}
	return templates.BillNumberField(data).Render(e.Request.Context(), e.Response)
}
