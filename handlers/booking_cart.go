package handlers

import (
	"log"
	"net/http"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"billingdesk/services"
	"billingdesk/templates"
)

// HandleCartAdd appends a product to the draft cart. The product's name,
// HSN code and rate are copied onto the line so later catalog edits never
// rewrite an open draft.
func HandleCartAdd(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		booking, err := findDraft(app, e)
		if err != nil {
			return e.String(http.StatusNotFound, "Booking not found")
		}
		if err := e.Request.ParseForm(); err != nil {
			return ErrorToast(e, http.StatusBadRequest, "Invalid form submission")
		}

		product, err := app.FindRecordById("products", e.Request.FormValue("product"))
		if err != nil {
			return ErrorToast(e, http.StatusBadRequest, "Select a product first")
		}

		col, err := app.FindCollectionByNameOrId("booking_items")
		if err != nil {
			return ErrorToast(e, http.StatusInternalServerError, "Cart unavailable")
		}

		existing, err := app.FindRecordsByFilter(
			"booking_items",
			"booking = {:bookingId}",
			"",
			0,
			0,
			map[string]any{"bookingId": booking.Id},
		)
		if err != nil {
			log.Printf("cart: could not count items for %s: %v", booking.Id, err)
		}
		// Max instead of count; removals leave gaps and the new line must
		// still sort after every surviving one.
		maxSort := 0
		for _, line := range existing {
			if v := line.GetInt("sort_order"); v > maxSort {
				maxSort = v
			}
		}

		item := core.NewRecord(col)
		item.Set("booking", booking.Id)
		item.Set("sort_order", maxSort+1)
		item.Set("productname", product.GetString("productname"))
		item.Set("hsn_code", services.NormalizeHSN(product.GetString("hsn_code")))
		item.Set("rate_per_box", product.GetFloat("rate_per_box"))
		item.Set("cases", services.ParseCasesOrOne(e.Request.FormValue("cases")))
		if err := app.Save(item); err != nil {
			log.Printf("cart: could not add item to %s: %v", booking.Id, err)
			return ErrorToast(e, http.StatusInternalServerError, "Could not add product")
		}

		return renderCartRegion(app, e, booking)
	}
}

// HandleCartUpdate changes the case count on one cart line.
func HandleCartUpdate(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		booking, err := findDraft(app, e)
		if err != nil {
			return e.String(http.StatusNotFound, "Booking not found")
		}
		item, err := app.FindRecordById("booking_items", e.Request.PathValue("itemId"))
		if err != nil || item.GetString("booking") != booking.Id {
			return e.String(http.StatusNotFound, "Cart line not found")
		}
		if err := e.Request.ParseForm(); err != nil {
			return ErrorToast(e, http.StatusBadRequest, "Invalid form submission")
		}

		item.Set("cases", services.ParseCasesOrOne(e.Request.FormValue("cases")))
		if err := app.Save(item); err != nil {
			log.Printf("cart: could not update item %s: %v", item.Id, err)
			return ErrorToast(e, http.StatusInternalServerError, "Could not update cart")
		}

		return renderCartRegion(app, e, booking)
	}
}

// HandleCartRemove deletes one cart line.
func HandleCartRemove(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		booking, err := findDraft(app, e)
		if err != nil {
			return e.String(http.StatusNotFound, "Booking not found")
		}
		item, err := app.FindRecordById("booking_items", e.Request.PathValue("itemId"))
		if err != nil || item.GetString("booking") != booking.Id {
			return e.String(http.StatusNotFound, "Cart line not found")
		}
		if err := app.Delete(item); err != nil {
			log.Printf("cart: could not delete item %s: %v", item.Id, err)
			return ErrorToast(e, http.StatusInternalServerError, "Could not remove product")
		}

		return renderCartRegion(app, e, booking)
	}
}

// findDraft loads the draft booking addressed by the route, rejecting
// already-saved bookings so finished bills stay immutable.
func findDraft(app *pocketbase.PocketBase, e *core.RequestEvent) (*core.Record, error) {
	booking, err := app.FindRecordById("bookings", e.Request.PathValue("id"))
	if err != nil {
		return nil, err
	}
	if booking.GetString("status") != "draft" {
		return nil, errBookingSaved
	}
	return booking, nil
}

var errBookingSaved = &services.ValidationError{Field: "status", Reason: "booking is already saved"}

func renderCartRegion(app *pocketbase.PocketBase, e *core.RequestEvent, booking *core.Record) error {
	cart := buildCartData(app, booking.Id)
	summary := buildSummaryData(app, booking)
	return templates.CartRegion(cart, summary).Render(e.Request.Context(), e.Response)
}
