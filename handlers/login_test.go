package handlers

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"billingdesk/testhelpers"
)

func TestHandleLogin_Success(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	testhelpers.CreateTestStaff(t, app, "admin", "admin")

	form := url.Values{}
	form.Set("username", "admin")
	form.Set("password", "changeme123")

	req := httptest.NewRequest(http.MethodPost, "/login", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()

	if err := HandleLogin(app)(newTestRequestEvent(app, req, rec)); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	if rec.Code != http.StatusFound {
		t.Errorf("expected redirect 302, got %d", rec.Code)
	}
	if loc := rec.Header().Get("Location"); loc != "/book" {
		t.Errorf("redirect location = %q, want /book", loc)
	}

	var sessionSet bool
	for _, c := range rec.Result().Cookies() {
		if c.Name == "staff_session" && c.Value != "" {
			sessionSet = true
		}
	}
	if !sessionSet {
		t.Error("session cookie not set")
	}
}

func TestHandleLogin_WrongPassword(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	testhelpers.CreateTestStaff(t, app, "admin", "admin")

	form := url.Values{}
	form.Set("username", "admin")
	form.Set("password", "nottherightone")

	req := httptest.NewRequest(http.MethodPost, "/login", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()

	if err := HandleLogin(app)(newTestRequestEvent(app, req, rec)); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	testhelpers.AssertHTMLContains(t, rec.Body.String(), "Invalid username or password")
}

func TestHandleLogin_UnknownUser(t *testing.T) {
	app := testhelpers.NewTestApp(t)

	form := url.Values{}
	form.Set("username", "nobody")
	form.Set("password", "whatever")

	req := httptest.NewRequest(http.MethodPost, "/login", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()

	if err := HandleLogin(app)(newTestRequestEvent(app, req, rec)); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	testhelpers.AssertHTMLContains(t, rec.Body.String(), "Invalid username or password")
}

func TestRequireStaff_RedirectsAnonymous(t *testing.T) {
	app := testhelpers.NewTestApp(t)

	req := httptest.NewRequest(http.MethodGet, "/book", nil)
	rec := httptest.NewRecorder()
	if err := RequireStaff(HandleBookingPage(app))(newTestRequestEvent(app, req, rec)); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	if rec.Code != http.StatusFound {
		t.Errorf("expected redirect 302, got %d", rec.Code)
	}
	if loc := rec.Header().Get("Location"); loc != "/login" {
		t.Errorf("redirect location = %q, want /login", loc)
	}
}

func TestRequireAdmin_RejectsWorker(t *testing.T) {
	app := testhelpers.NewTestApp(t)

	req := httptest.NewRequest(http.MethodGet, "/allbookings", nil)
	req.Header.Set("HX-Request", "true")
	req = withStaff(req, "staff1", "worker", "worker")
	rec := httptest.NewRecorder()

	if err := RequireAdmin(HandleBillingList(app))(newTestRequestEvent(app, req, rec)); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	if rec.Code != http.StatusForbidden {
		t.Errorf("expected 403 for worker, got %d", rec.Code)
	}
}
