package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/pocketbase/pocketbase/core"
)

func triggerPayload(t *testing.T, rec *httptest.ResponseRecorder) map[string]json.RawMessage {
	t.Helper()
	raw := rec.Header().Get("HX-Trigger")
	if raw == "" {
		t.Fatal("HX-Trigger header not set")
	}
	var triggers map[string]json.RawMessage
	if err := json.Unmarshal([]byte(raw), &triggers); err != nil {
		t.Fatalf("HX-Trigger is not valid JSON: %v", err)
	}
	return triggers
}

func TestSetToast(t *testing.T) {
	rec := httptest.NewRecorder()
	e := &core.RequestEvent{}
	e.Response = rec

	SetToast(e, "success", "Company saved")

	triggers := triggerPayload(t, rec)
	var toast map[string]string
	if err := json.Unmarshal(triggers["showToast"], &toast); err != nil {
		t.Fatalf("showToast payload: %v", err)
	}
	if toast["message"] != "Company saved" || toast["type"] != "success" {
		t.Errorf("toast = %v", toast)
	}

	// The flash cookie carries the toast across non-HTMX redirects.
	var flash *http.Cookie
	for _, c := range rec.Result().Cookies() {
		if c.Name == "flash_toast" {
			flash = c
		}
	}
	if flash == nil {
		t.Fatal("flash_toast cookie not set")
	}
	if flash.MaxAge != 10 {
		t.Errorf("flash cookie MaxAge = %d, want 10", flash.MaxAge)
	}
}

func TestSetToast_MergesWithExistingTrigger(t *testing.T) {
	rec := httptest.NewRecorder()
	e := &core.RequestEvent{}
	e.Response = rec
	rec.Header().Set("HX-Trigger", `{"cartChanged":{"count":3}}`)

	SetToast(e, "error", "Could not save")

	triggers := triggerPayload(t, rec)
	if _, ok := triggers["cartChanged"]; !ok {
		t.Error("existing HX-Trigger event lost")
	}
	if _, ok := triggers["showToast"]; !ok {
		t.Error("showToast event missing")
	}
}

func TestErrorToast(t *testing.T) {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/company", nil)
	e := &core.RequestEvent{}
	e.Request = req
	e.Response = rec

	if err := ErrorToast(e, http.StatusBadRequest, "Invalid form submission"); err != nil {
		t.Fatalf("ErrorToast returned error: %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
	if rec.Header().Get("HX-Reswap") != "none" {
		t.Error("HX-Reswap none must stop the body from swapping in")
	}

	triggers := triggerPayload(t, rec)
	var toast map[string]string
	if err := json.Unmarshal(triggers["showToast"], &toast); err != nil {
		t.Fatalf("showToast payload: %v", err)
	}
	if toast["type"] != "error" {
		t.Errorf("toast type = %q, want error", toast["type"])
	}
}
