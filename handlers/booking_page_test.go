package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"billingdesk/testhelpers"
)

func TestHandleBookingPage_CreatesDraft(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	testhelpers.CreateTestCompany(t, app, "Nisha Traders")
	staff := testhelpers.CreateTestStaff(t, app, "worker1", "worker")

	req := httptest.NewRequest(http.MethodGet, "/book", nil)
	req = withStaff(req, staff.Id, "worker1", "worker")
	rec := httptest.NewRecorder()

	if err := HandleBookingPage(app)(newTestRequestEvent(app, req, rec)); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Errorf("expected status 200, got %d", rec.Code)
	}
	// Suggestion derived from the default company on first visit.
	testhelpers.AssertHTMLContains(t, rec.Body.String(), "New Booking", "NT-001")

	drafts, err := app.FindRecordsByFilter("bookings", "status = 'draft'", "", 0, 0, nil)
	if err != nil || len(drafts) != 1 {
		t.Fatalf("expected one draft, got %d (err %v)", len(drafts), err)
	}
	if drafts[0].GetString("staff") != staff.Id {
		t.Errorf("draft not bound to staff member")
	}
}

func TestHandleBookingPage_ReusesDraft(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	testhelpers.CreateTestCompany(t, app, "Nisha Traders")
	staff := testhelpers.CreateTestStaff(t, app, "worker1", "worker")

	visit := func() {
		req := httptest.NewRequest(http.MethodGet, "/book", nil)
		req = withStaff(req, staff.Id, "worker1", "worker")
		rec := httptest.NewRecorder()
		if err := HandleBookingPage(app)(newTestRequestEvent(app, req, rec)); err != nil {
			t.Fatalf("handler returned error: %v", err)
		}
	}
	visit()
	visit()

	drafts, err := app.FindRecordsByFilter("bookings", "status = 'draft'", "", 0, 0, nil)
	if err != nil || len(drafts) != 1 {
		t.Errorf("expected the draft to be reused, got %d drafts (err %v)", len(drafts), err)
	}
}
