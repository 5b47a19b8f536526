package handlers

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"billingdesk/testhelpers"
)

func TestHandleProductSave_Valid(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	ptype := testhelpers.CreateTestProductType(t, app, "Sparklers")

	form := url.Values{}
	form.Set("product_type", ptype.Id)
	form.Set("productname", "Sparklers 15cm")
	form.Set("hsn_code", "")
	form.Set("rate_per_box", "45.50")
	form.Set("per_case", "20")

	req := httptest.NewRequest(http.MethodPost, "/inventory", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("HX-Request", "true")
	req = withStaff(req, "staff1", "admin", "admin")
	rec := httptest.NewRecorder()

	if err := HandleProductSave(app)(newTestRequestEvent(app, req, rec)); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Errorf("expected status 200, got %d", rec.Code)
	}

	records, err := app.FindRecordsByFilter("products", "productname = 'Sparklers 15cm'", "", 1, 0, nil)
	if err != nil || len(records) != 1 {
		t.Fatalf("expected saved product, got %d (err %v)", len(records), err)
	}
	// Blank HSN falls back to the fireworks code.
	if records[0].GetString("hsn_code") != "360410" {
		t.Errorf("hsn_code = %q, want 360410", records[0].GetString("hsn_code"))
	}
	if records[0].GetFloat("rate_per_box") != 45.50 {
		t.Errorf("rate_per_box = %v, want 45.5", records[0].GetFloat("rate_per_box"))
	}
}

func TestHandleProductSave_RequiresRate(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	ptype := testhelpers.CreateTestProductType(t, app, "Sparklers")

	form := url.Values{}
	form.Set("product_type", ptype.Id)
	form.Set("productname", "Free Crackers")
	form.Set("rate_per_box", "0")

	req := httptest.NewRequest(http.MethodPost, "/inventory", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("HX-Request", "true")
	req = withStaff(req, "staff1", "admin", "admin")
	rec := httptest.NewRecorder()

	if err := HandleProductSave(app)(newTestRequestEvent(app, req, rec)); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	testhelpers.AssertHTMLContains(t, rec.Body.String(), "Rate must be greater than zero")

	records, _ := app.FindRecordsByFilter("products", "productname = 'Free Crackers'", "", 1, 0, nil)
	if len(records) != 0 {
		t.Error("invalid product must not be saved")
	}
}

func TestHandleProductTypeSave(t *testing.T) {
	app := testhelpers.NewTestApp(t)

	form := url.Values{}
	form.Set("name", "Aerial Items")

	req := httptest.NewRequest(http.MethodPost, "/inventory/types", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("HX-Request", "true")
	req = withStaff(req, "staff1", "admin", "admin")
	rec := httptest.NewRecorder()

	if err := HandleProductTypeSave(app)(newTestRequestEvent(app, req, rec)); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	// Names are folded to lower_snake_case on save.
	testhelpers.AssertHTMLContains(t, rec.Body.String(), "aerial_items")

	records, err := app.FindRecordsByFilter("product_types", "name = 'aerial_items'", "", 1, 0, nil)
	if err != nil || len(records) != 1 {
		t.Errorf("expected saved product type, got %d (err %v)", len(records), err)
	}
}

func TestHandleProductList_Search(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	ptype := testhelpers.CreateTestProductType(t, app, "Ground Items")
	testhelpers.CreateTestProduct(t, app, ptype.Id, "Flower Pots Big", 100)
	testhelpers.CreateTestProduct(t, app, ptype.Id, "Ground Chakkar", 80)

	req := httptest.NewRequest(http.MethodGet, "/listing?q=Flower", nil)
	req.Header.Set("HX-Request", "true")
	req = withStaff(req, "staff1", "worker", "worker")
	rec := httptest.NewRecorder()

	if err := HandleProductList(app)(newTestRequestEvent(app, req, rec)); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	body := rec.Body.String()
	testhelpers.AssertHTMLContains(t, body, "Flower Pots Big")
	if strings.Contains(body, "Ground Chakkar") {
		t.Error("search must filter out non-matching products")
	}
	// Workers get no edit controls.
	if strings.Contains(body, "Delete") {
		t.Error("worker must not see delete controls")
	}
}
