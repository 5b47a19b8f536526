package handlers

import (
	"bytes"
	"image"
	"image/png"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"billingdesk/testhelpers"
)

// companyForm builds a multipart request body from the given fields, with an
// optional PNG upload under fileField.
func companyForm(t *testing.T, fields map[string]string, fileField string) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for k, v := range fields {
		if err := w.WriteField(k, v); err != nil {
			t.Fatalf("write field %s: %v", k, err)
		}
	}
	if fileField != "" {
		fw, err := w.CreateFormFile(fileField, fileField+".png")
		if err != nil {
			t.Fatalf("create file part: %v", err)
		}
		if err := png.Encode(fw, image.NewRGBA(image.Rect(0, 0, 1, 1))); err != nil {
			t.Fatalf("encode png: %v", err)
		}
	}
	if err := w.Close(); err != nil {
		t.Fatalf("close multipart writer: %v", err)
	}
	return &buf, w.FormDataContentType()
}

func TestHandleCompanySave_Valid(t *testing.T) {
	app := testhelpers.NewTestApp(t)

	body, contentType := companyForm(t, map[string]string{
		"company_name": "Nisha Traders",
		"address":      "3/1474-B Paraipatti, Kil Thayilapatti, Sivakasi - 626123",
		"gstin":        "33aadcb2230m1zv",
		"email":        "office@example.com",
		"bank_name":    "Indian Bank",
		"branch":       "Sivakasi",
		"account_no":   "6528512104",
		"ifsc_code":    "idib000s733",
	}, "")

	req := httptest.NewRequest(http.MethodPost, "/company/save", body)
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("HX-Request", "true")
	req = withStaff(req, "staff1", "admin", "admin")
	rec := httptest.NewRecorder()

	if err := HandleCompanySave(app)(newTestRequestEvent(app, req, rec)); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Errorf("expected status 200, got %d", rec.Code)
	}
	if loc := rec.Header().Get("HX-Redirect"); loc != "/company" {
		t.Errorf("HX-Redirect = %q, want /company", loc)
	}

	records, err := app.FindRecordsByFilter("companies", "company_name = 'Nisha Traders'", "", 1, 0, nil)
	if err != nil || len(records) != 1 {
		t.Fatalf("expected saved company, got %d (err %v)", len(records), err)
	}
	// GSTIN and IFSC are folded to upper case on save.
	if records[0].GetString("gstin") != "33AADCB2230M1ZV" {
		t.Errorf("gstin = %q, want upper case", records[0].GetString("gstin"))
	}
	if records[0].GetString("ifsc_code") != "IDIB000S733" {
		t.Errorf("ifsc_code = %q, want upper case", records[0].GetString("ifsc_code"))
	}
}

func TestHandleCompanySave_RequiresName(t *testing.T) {
	app := testhelpers.NewTestApp(t)

	body, contentType := companyForm(t, map[string]string{
		"company_name": "   ",
		"gstin":        "33AADCB2230M1ZV",
	}, "")

	req := httptest.NewRequest(http.MethodPost, "/company/save", body)
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("HX-Request", "true")
	req = withStaff(req, "staff1", "admin", "admin")
	rec := httptest.NewRecorder()

	if err := HandleCompanySave(app)(newTestRequestEvent(app, req, rec)); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	testhelpers.AssertHTMLContains(t, rec.Body.String(), "Company name is required")

	records, _ := app.FindRecordsByFilter("companies", "1=1", "", 0, 0, nil)
	if len(records) != 0 {
		t.Error("nameless company must not be saved")
	}
}

func TestHandleCompanySave_StoresLogoUpload(t *testing.T) {
	app := testhelpers.NewTestApp(t)

	body, contentType := companyForm(t, map[string]string{
		"company_name": "Nisha Traders",
	}, "logo")

	req := httptest.NewRequest(http.MethodPost, "/company/save", body)
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("HX-Request", "true")
	req = withStaff(req, "staff1", "admin", "admin")
	rec := httptest.NewRecorder()

	if err := HandleCompanySave(app)(newTestRequestEvent(app, req, rec)); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}

	records, err := app.FindRecordsByFilter("companies", "company_name = 'Nisha Traders'", "", 1, 0, nil)
	if err != nil || len(records) != 1 {
		t.Fatalf("expected saved company, got %d (err %v)", len(records), err)
	}
	if records[0].GetString("logo") == "" {
		t.Error("uploaded logo not stored")
	}
}

func TestHandleCompanyUpdate(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	company := testhelpers.CreateTestCompany(t, app, "Nisha Traders")

	body, contentType := companyForm(t, map[string]string{
		"company_name": "Nisha Traders & Sons",
		"branch":       "Madurai",
	}, "")

	req := httptest.NewRequest(http.MethodPost, "/company/"+company.Id, body)
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("HX-Request", "true")
	req.SetPathValue("id", company.Id)
	req = withStaff(req, "staff1", "admin", "admin")
	rec := httptest.NewRecorder()

	if err := HandleCompanyUpdate(app)(newTestRequestEvent(app, req, rec)); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	if loc := rec.Header().Get("HX-Redirect"); loc != "/company" {
		t.Errorf("HX-Redirect = %q, want /company", loc)
	}

	saved, err := app.FindRecordById("companies", company.Id)
	if err != nil {
		t.Fatalf("reload company: %v", err)
	}
	if saved.GetString("company_name") != "Nisha Traders & Sons" {
		t.Errorf("company_name = %q", saved.GetString("company_name"))
	}
	if saved.GetString("branch") != "Madurai" {
		t.Errorf("branch = %q, want Madurai", saved.GetString("branch"))
	}
}

func TestHandleCompanyList(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	testhelpers.CreateTestCompany(t, app, "Nisha Traders")
	testhelpers.CreateTestCompany(t, app, "Anand Fireworks")

	req := httptest.NewRequest(http.MethodGet, "/company", nil)
	req.Header.Set("HX-Request", "true")
	req = withStaff(req, "staff1", "admin", "admin")
	rec := httptest.NewRecorder()

	if err := HandleCompanyList(app)(newTestRequestEvent(app, req, rec)); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	body := rec.Body.String()
	testhelpers.AssertHTMLContains(t, body, "Nisha Traders")
	testhelpers.AssertHTMLContains(t, body, "Anand Fireworks")
}

func TestHandleCompanyEdit_NotFound(t *testing.T) {
	app := testhelpers.NewTestApp(t)

	req := httptest.NewRequest(http.MethodGet, "/company/missing/edit", nil)
	req.SetPathValue("id", "missing")
	req = withStaff(req, "staff1", "admin", "admin")
	rec := httptest.NewRecorder()

	if err := HandleCompanyEdit(app)(newTestRequestEvent(app, req, rec)); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	if rec.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "Company not found") {
		t.Errorf("body = %q, want not-found message", rec.Body.String())
	}
}
