package handlers

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/pocketbase/pocketbase/core"

	"billingdesk/testhelpers"
)

func TestHandleBookingCompanyChange_SuggestsNewPrefix(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	nisha := testhelpers.CreateTestCompany(t, app, "Nisha Traders")
	kali := testhelpers.CreateTestCompany(t, app, "Sri Kaliswari Fireworks")
	testhelpers.CreateTestSavedBooking(t, app, kali.Id, "SK-004")

	booking := testhelpers.CreateTestBooking(t, app, nisha.Id, "draft")
	booking.Set("suggested_bill_no", "NT-001")
	booking.Set("manual_bill_no", "NT-200")
	if err := app.Save(booking); err != nil {
		t.Fatalf("failed to update draft: %v", err)
	}

	form := url.Values{}
	form.Set("company", kali.Id)

	req := httptest.NewRequest(http.MethodPost, "/book/"+booking.Id+"/company",
		strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.SetPathValue("id", booking.Id)
	req = withStaff(req, "staff1", "admin", "admin")
	rec := httptest.NewRecorder()

	if err := HandleBookingCompanyChange(app)(newTestRequestEvent(app, req, rec)); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	testhelpers.AssertHTMLContains(t, rec.Body.String(), "SK-005", "suggested")

	updated, _ := app.FindRecordById("bookings", booking.Id)
	if updated.GetString("company") != kali.Id {
		t.Errorf("company not switched")
	}
	if updated.GetString("suggested_bill_no") != "SK-005" {
		t.Errorf("suggested_bill_no = %q, want SK-005", updated.GetString("suggested_bill_no"))
	}
	if updated.GetString("manual_bill_no") != "" {
		t.Errorf("manual override must reset on company change, got %q", updated.GetString("manual_bill_no"))
	}
}

func TestHandleBookingBillNoEdit(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	company := testhelpers.CreateTestCompany(t, app, "Nisha Traders")
	booking := testhelpers.CreateTestBooking(t, app, company.Id, "draft")
	booking.Set("suggested_bill_no", "NT-001")
	if err := app.Save(booking); err != nil {
		t.Fatalf("failed to update draft: %v", err)
	}

	send := func(manual string) *httptest.ResponseRecorder {
		form := url.Values{}
		form.Set("manual_bill_no", manual)
		req := httptest.NewRequest(http.MethodPost, "/book/"+booking.Id+"/bill-no",
			strings.NewReader(form.Encode()))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		req.SetPathValue("id", booking.Id)
		req = withStaff(req, "staff1", "admin", "admin")
		rec := httptest.NewRecorder()
		if err := HandleBookingBillNoEdit(app)(newTestRequestEvent(app, req, rec)); err != nil {
			t.Fatalf("handler returned error: %v", err)
		}
		return rec
	}

	rec := send("nt-042")
	testhelpers.AssertHTMLContains(t, rec.Body.String(), "NT-042", "manual")
	updated, _ := app.FindRecordById("bookings", booking.Id)
	if updated.GetString("manual_bill_no") != "NT-042" {
		t.Errorf("manual_bill_no = %q, want NT-042", updated.GetString("manual_bill_no"))
	}

	// Typing the suggestion verbatim is not an override.
	rec = send("NT-001")
	testhelpers.AssertHTMLContains(t, rec.Body.String(), "suggested")
	updated, _ = app.FindRecordById("bookings", booking.Id)
	if updated.GetString("manual_bill_no") != "" {
		t.Errorf("manual_bill_no = %q, want cleared", updated.GetString("manual_bill_no"))
	}

	// Clearing reverts to the suggestion.
	rec = send("")
	testhelpers.AssertHTMLContains(t, rec.Body.String(), "NT-001", "suggested")
}

func TestHandleBookingCustomerChange_InterstateFlip(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	company := testhelpers.CreateTestCompany(t, app, "Nisha Traders")
	booking := testhelpers.CreateTestBooking(t, app, company.Id, "draft")

	col, err := app.FindCollectionByNameOrId("states")
	if err != nil {
		t.Fatalf("states collection: %v", err)
	}
	for _, s := range [][2]string{{"33", "Tamil Nadu"}, {"32", "Kerala"}} {
		rec := core.NewRecord(col)
		rec.Set("code", s[0])
		rec.Set("state_name", s[1])
		if err := app.Save(rec); err != nil {
			t.Fatalf("save state: %v", err)
		}
	}

	form := url.Values{}
	form.Set("customer_name", "Kerala Crackers Mart")
	form.Set("customer_address", "MG Road, Kochi")
	form.Set("customer_place", "Kerala")

	req := httptest.NewRequest(http.MethodPost, "/book/"+booking.Id+"/customer",
		strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.SetPathValue("id", booking.Id)
	req = withStaff(req, "staff1", "worker", "worker")
	rec := httptest.NewRecorder()

	if err := HandleBookingCustomerChange(app)(newTestRequestEvent(app, req, rec)); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	testhelpers.AssertHTMLContains(t, rec.Body.String(), "IGST 18%")

	updated, _ := app.FindRecordById("bookings", booking.Id)
	if !updated.GetBool("is_igst") {
		t.Error("expected is_igst = true for out-of-state place of supply")
	}
	if updated.GetString("customer_state_code") != "32" {
		t.Errorf("customer_state_code = %q, want 32", updated.GetString("customer_state_code"))
	}
}

func TestHandleBookingTaxChange(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	company := testhelpers.CreateTestCompany(t, app, "Nisha Traders")
	booking := testhelpers.CreateTestBooking(t, app, company.Id, "draft")
	testhelpers.CreateTestBookingItem(t, app, booking.Id, 1, "Flower Pots Big", 100, 2)

	form := url.Values{}
	form.Set("packing_percent", "10")
	form.Set("extra_taxable", "")

	req := httptest.NewRequest(http.MethodPost, "/book/"+booking.Id+"/tax",
		strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.SetPathValue("id", booking.Id)
	req = withStaff(req, "staff1", "worker", "worker")
	rec := httptest.NewRecorder()

	if err := HandleBookingTaxChange(app)(newTestRequestEvent(app, req, rec)); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	testhelpers.AssertHTMLContains(t, rec.Body.String(),
		"₹200.00", "₹20.00", "₹220.00", "₹260.00", "Two Hundred and Sixty Only")
}
