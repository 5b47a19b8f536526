package handlers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"billingdesk/testhelpers"
)

func TestHandleBillingList(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	company := testhelpers.CreateTestCompany(t, app, "Nisha Traders")
	testhelpers.CreateTestSavedBooking(t, app, company.Id, "NT-001")
	testhelpers.CreateTestSavedBooking(t, app, company.Id, "NT-002")
	// Drafts never show up on the billings page.
	testhelpers.CreateTestBooking(t, app, company.Id, "draft")

	req := httptest.NewRequest(http.MethodGet, "/allbookings", nil)
	req.Header.Set("HX-Request", "true")
	req = withStaff(req, "staff1", "admin", "admin")
	rec := httptest.NewRecorder()

	if err := HandleBillingList(app)(newTestRequestEvent(app, req, rec)); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	testhelpers.AssertHTMLContains(t, rec.Body.String(), "NT-001", "NT-002", "All Billings (2)")
}

func TestHandleBillingList_Search(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	company := testhelpers.CreateTestCompany(t, app, "Nisha Traders")
	testhelpers.CreateTestSavedBooking(t, app, company.Id, "NT-001")
	other := testhelpers.CreateTestSavedBooking(t, app, company.Id, "NT-002")
	other.Set("customer_name", "Kerala Crackers Mart")
	if err := app.Save(other); err != nil {
		t.Fatalf("failed to update booking: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/allbookings?q=Kerala", nil)
	req.Header.Set("HX-Request", "true")
	req = withStaff(req, "staff1", "admin", "admin")
	rec := httptest.NewRecorder()

	if err := HandleBillingList(app)(newTestRequestEvent(app, req, rec)); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	body := rec.Body.String()
	testhelpers.AssertHTMLContains(t, body, "NT-002", "Kerala Crackers Mart")
	if strings.Contains(body, "NT-001") {
		t.Error("search must filter out non-matching bills")
	}
}

func TestHandleBillingExport(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	company := testhelpers.CreateTestCompany(t, app, "Nisha Traders")
	testhelpers.CreateTestSavedBooking(t, app, company.Id, "NT-001")

	req := httptest.NewRequest(http.MethodGet, "/allbookings/export", nil)
	req = withStaff(req, "staff1", "admin", "admin")
	rec := httptest.NewRecorder()

	if err := HandleBillingExport(app)(newTestRequestEvent(app, req, rec)); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Errorf("expected status 200, got %d", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); !strings.Contains(ct, "spreadsheetml") {
		t.Errorf("unexpected content type %q", ct)
	}
	if rec.Body.Len() == 0 {
		t.Error("empty export body")
	}
}

func TestHandleBillingPDF_NoFile(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	company := testhelpers.CreateTestCompany(t, app, "Nisha Traders")
	booking := testhelpers.CreateTestSavedBooking(t, app, company.Id, "NT-001")

	req := httptest.NewRequest(http.MethodGet, "/allbookings/"+booking.Id+"/pdf", nil)
	req.SetPathValue("id", booking.Id)
	req = withStaff(req, "staff1", "admin", "admin")
	rec := httptest.NewRecorder()

	if err := HandleBillingPDF(app)(newTestRequestEvent(app, req, rec)); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	if rec.Code != http.StatusNotFound {
		t.Errorf("expected 404 without stored PDF, got %d", rec.Code)
	}
}
