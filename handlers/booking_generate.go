package handlers

import (
	"encoding/base64"
	"errors"
	"log"
	"net/http"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"billingdesk/services"
	"billingdesk/templates"
)

// HandleBookingGenerate runs the full generate flow on a draft: validate,
// assemble the invoice snapshot, render the PDF and persist the saved bill.
// Each failure class gets its own user-facing message because the recovery
// differs: validation keeps the draft editable, a render failure persists
// nothing, and a persistence failure means the bill must be generated again.
func HandleBookingGenerate(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		booking, err := findDraft(app, e)
		if err != nil {
			return e.String(http.StatusNotFound, "Booking not found")
		}

		data, err := services.BuildInvoiceData(app, booking.Id)
		if err != nil {
			log.Printf("generate: could not assemble invoice for %s: %v", booking.Id, err)
			return ErrorToast(e, http.StatusInternalServerError, "Could not assemble the invoice")
		}

		if err := services.ValidateDraft(data.Customer.Name, data.Cart); err != nil {
			var vErr *services.ValidationError
			if errors.As(err, &vErr) {
				return ErrorToast(e, http.StatusBadRequest, vErr.Reason)
			}
			return ErrorToast(e, http.StatusBadRequest, err.Error())
		}

		pdf, err := services.GenerateInvoicePDF(data)
		if err != nil {
			log.Printf("generate: PDF render failed for %s: %v", booking.Id, err)
			return ErrorToast(e, http.StatusInternalServerError, "Invoice PDF could not be rendered")
		}

		billNo, err := services.FinalizeBooking(app, booking, data, pdf)
		if err != nil {
			log.Printf("generate: could not save booking %s: %v", booking.Id, err)
			var pErr *services.PersistenceError
			if errors.As(err, &pErr) {
				// The rendered artifact outlives the rejected save.
				SetToast(e, "error", "Bill could not be saved; the PDF is still available below")
				dataURL := "data:application/pdf;base64," + base64.StdEncoding.EncodeToString(pdf)
				return templates.BookingSaveFailed(dataURL).Render(e.Request.Context(), e.Response)
			}
			return ErrorToast(e, http.StatusInternalServerError, "Bill could not be saved; please generate again")
		}

		SetToast(e, "success", "Invoice "+billNo+" generated")
		pdfURL := "/allbookings/" + booking.Id + "/pdf"
		return templates.BookingSaved(billNo, pdfURL).Render(e.Request.Context(), e.Response)
	}
}
