package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"billingdesk/templates"
)

// newTestRequestEvent creates a RequestEvent suitable for handler tests.
func newTestRequestEvent(app *pocketbase.PocketBase, req *http.Request, rec *httptest.ResponseRecorder) *core.RequestEvent {
	e := &core.RequestEvent{}
	e.App = app
	e.Request = req
	e.Response = rec
	return e
}

// withStaff injects an authenticated staff member into the request context,
// as StaffSessionMiddleware would.
func withStaff(req *http.Request, id, username, role string) *http.Request {
	staff := &templates.CurrentStaff{ID: id, Username: username, Role: role}
	ctx := context.WithValue(req.Context(), StaffKey, staff)
	ctx = context.WithValue(ctx, HeaderDataKey, templates.HeaderData{Staff: staff})
	ctx = context.WithValue(ctx, SidebarDataKey, templates.SidebarData{Staff: staff})
	return req.WithContext(ctx)
}
