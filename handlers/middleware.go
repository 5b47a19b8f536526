package handlers

import (
	"context"
	"net/http"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"billingdesk/templates"
)

type contextKey string

const StaffKey contextKey = "currentStaff"
const HeaderDataKey contextKey = "headerData"
const SidebarDataKey contextKey = "sidebarData"

// sessionCookie holds the staff auth token between requests.
const sessionCookie = "staff_session"

// GetStaff extracts the authenticated staff member from the request context.
func GetStaff(r *http.Request) *templates.CurrentStaff {
	if val, ok := r.Context().Value(StaffKey).(*templates.CurrentStaff); ok {
		return val
	}
	return nil
}

// GetHeaderData extracts the pre-built HeaderData from the request context.
func GetHeaderData(r *http.Request) templates.HeaderData {
	if val, ok := r.Context().Value(HeaderDataKey).(templates.HeaderData); ok {
		return val
	}
	return templates.HeaderData{}
}

// GetSidebarData extracts the pre-built SidebarData from the request context.
func GetSidebarData(r *http.Request) templates.SidebarData {
	if val, ok := r.Context().Value(SidebarDataKey).(templates.SidebarData); ok {
		return val
	}
	return templates.SidebarData{}
}

// StaffSessionMiddleware resolves the session cookie into a staff record and
// stores the staff, header and sidebar data in the request context. An
// invalid or expired token clears the cookie and continues anonymously; the
// route guards decide what anonymous users may see.
func StaffSessionMiddleware(app *pocketbase.PocketBase) func(e *core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		var staff *templates.CurrentStaff

		cookie, err := e.Request.Cookie(sessionCookie)
		if err == nil && cookie.Value != "" {
			rec, err := app.FindAuthRecordByToken(cookie.Value, core.TokenTypeAuth)
			if err == nil && rec.Collection().Name == "staff" {
				staff = &templates.CurrentStaff{
					ID:       rec.Id,
					Username: rec.GetString("username"),
					Role:     rec.GetString("role"),
				}
			} else {
				http.SetCookie(e.Response, &http.Cookie{
					Name:   sessionCookie,
					Value:  "",
					Path:   "/",
					MaxAge: -1,
				})
			}
		}

		headerData := templates.HeaderData{Staff: staff}
		sidebarData := BuildSidebarData(app, staff, e.Request.URL.Path)

		ctx := context.WithValue(e.Request.Context(), StaffKey, staff)
		ctx = context.WithValue(ctx, HeaderDataKey, headerData)
		ctx = context.WithValue(ctx, SidebarDataKey, sidebarData)
		e.Request = e.Request.WithContext(ctx)

		return e.Next()
	}
}

// RequireStaff redirects anonymous requests to the login page.
func RequireStaff(next func(*core.RequestEvent) error) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		if GetStaff(e.Request) == nil {
			if e.Request.Header.Get("HX-Request") == "true" {
				e.Response.Header().Set("HX-Redirect", "/login")
				return e.NoContent(http.StatusUnauthorized)
			}
			return e.Redirect(http.StatusFound, "/login")
		}
		return next(e)
	}
}

// RequireAdmin rejects non-admin staff. Workers get a toast instead of the
// admin page.
func RequireAdmin(next func(*core.RequestEvent) error) func(*core.RequestEvent) error {
	return RequireStaff(func(e *core.RequestEvent) error {
		if !GetStaff(e.Request).IsAdmin() {
			if e.Request.Header.Get("HX-Request") == "true" {
				return ErrorToast(e, http.StatusForbidden, "Admin access required")
			}
			return e.Redirect(http.StatusFound, "/book")
		}
		return next(e)
	})
}
