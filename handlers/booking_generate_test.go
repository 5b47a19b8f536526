package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/pocketbase/pocketbase/core"

	"billingdesk/testhelpers"
)

func generateRequest(bookingID string) (*http.Request, *httptest.ResponseRecorder) {
	req := httptest.NewRequest(http.MethodPost, "/book/"+bookingID+"/generate", nil)
	req.Header.Set("HX-Request", "true")
	req.SetPathValue("id", bookingID)
	req = withStaff(req, "staff1", "worker", "worker")
	return req, httptest.NewRecorder()
}

func TestHandleBookingGenerate_Success(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	company := testhelpers.CreateTestCompany(t, app, "Nisha Traders")
	booking := testhelpers.CreateTestBooking(t, app, company.Id, "draft")
	booking.Set("customer_name", "Murugan Stores")
	booking.Set("packing_percent", 10.0)
	if err := app.Save(booking); err != nil {
		t.Fatalf("failed to update draft: %v", err)
	}
	testhelpers.CreateTestBookingItem(t, app, booking.Id, 1, "Flower Pots Big", 100, 2)

	req, rec := generateRequest(booking.Id)
	if err := HandleBookingGenerate(app)(newTestRequestEvent(app, req, rec)); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Errorf("expected status 200, got %d", rec.Code)
	}
	testhelpers.AssertHTMLContains(t, rec.Body.String(), "NT-001", "Download PDF")

	saved, err := app.FindRecordById("bookings", booking.Id)
	if err != nil {
		t.Fatalf("reload booking: %v", err)
	}
	if saved.GetString("status") != "saved" {
		t.Errorf("status = %q, want saved", saved.GetString("status"))
	}
	if saved.GetFloat("net_amount") != 260 {
		t.Errorf("net_amount = %v, want 260", saved.GetFloat("net_amount"))
	}
	if saved.GetString("pdf") == "" {
		t.Error("pdf not attached")
	}
}

func TestHandleBookingGenerate_MissingCustomer(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	company := testhelpers.CreateTestCompany(t, app, "Nisha Traders")
	booking := testhelpers.CreateTestBooking(t, app, company.Id, "draft")
	testhelpers.CreateTestBookingItem(t, app, booking.Id, 1, "Flower Pots Big", 100, 2)

	req, rec := generateRequest(booking.Id)
	if err := HandleBookingGenerate(app)(newTestRequestEvent(app, req, rec)); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected status 400, got %d", rec.Code)
	}
	// The draft must survive a failed validation untouched.
	draft, _ := app.FindRecordById("bookings", booking.Id)
	if draft.GetString("status") != "draft" {
		t.Errorf("status = %q, want draft", draft.GetString("status"))
	}
}

func TestHandleBookingGenerate_StoreRejectionKeepsPDF(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	company := testhelpers.CreateTestCompany(t, app, "Nisha Traders")
	booking := testhelpers.CreateTestBooking(t, app, company.Id, "draft")
	booking.Set("customer_name", "Murugan Stores")
	if err := app.Save(booking); err != nil {
		t.Fatalf("failed to update draft: %v", err)
	}
	testhelpers.CreateTestBookingItem(t, app, booking.Id, 1, "Flower Pots Big", 100, 2)

	// A required field the draft cannot satisfy makes the store reject the
	// save while validation and rendering still succeed.
	col, err := app.FindCollectionByNameOrId("bookings")
	if err != nil {
		t.Fatalf("find bookings collection: %v", err)
	}
	col.Fields.Add(&core.TextField{Name: "approval_code", Required: true})
	if err := app.Save(col); err != nil {
		t.Fatalf("alter bookings collection: %v", err)
	}

	req, rec := generateRequest(booking.Id)
	if err := HandleBookingGenerate(app)(newTestRequestEvent(app, req, rec)); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Errorf("expected status 200, got %d", rec.Code)
	}
	// The rendered PDF must stay downloadable even though nothing was stored.
	testhelpers.AssertHTMLContains(t, rec.Body.String(),
		"data:application/pdf;base64,", "Download PDF", "Invoice Could Not Be Saved")

	stored, err := app.FindRecordById("bookings", booking.Id)
	if err != nil {
		t.Fatalf("reload booking: %v", err)
	}
	if stored.GetString("status") != "draft" {
		t.Errorf("status = %q, want draft after rejected save", stored.GetString("status"))
	}
	if stored.GetString("pdf") != "" {
		t.Error("no pdf must be attached when the save is rejected")
	}
}

func TestHandleBookingGenerate_EmptyCart(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	company := testhelpers.CreateTestCompany(t, app, "Nisha Traders")
	booking := testhelpers.CreateTestBooking(t, app, company.Id, "draft")
	booking.Set("customer_name", "Murugan Stores")
	if err := app.Save(booking); err != nil {
		t.Fatalf("failed to update draft: %v", err)
	}

	req, rec := generateRequest(booking.Id)
	if err := HandleBookingGenerate(app)(newTestRequestEvent(app, req, rec)); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected status 400, got %d", rec.Code)
	}
}
