package handlers

import (
	"log"
	"net/http"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"billingdesk/templates"
)

// HandleLoginPage renders the login form. Authenticated staff are sent
// straight to the booking page.
func HandleLoginPage(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		if GetStaff(e.Request) != nil {
			return e.Redirect(http.StatusFound, "/book")
		}
		return templates.LoginPage(templates.LoginData{}).Render(e.Request.Context(), e.Response)
	}
}

// HandleLogin checks the submitted credentials against the staff collection
// and opens a session on success.
func HandleLogin(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		if err := e.Request.ParseForm(); err != nil {
			return e.String(http.StatusBadRequest, "invalid form")
		}
		username := e.Request.FormValue("username")
		password := e.Request.FormValue("password")

		failed := func() error {
			data := templates.LoginData{
				Username: username,
				Error:    "Invalid username or password",
			}
			return templates.LoginPage(data).Render(e.Request.Context(), e.Response)
		}

		rec, err := app.FindFirstRecordByData("staff", "username", username)
		if err != nil {
			log.Printf("login: unknown username %q", username)
			return failed()
		}
		if !rec.ValidatePassword(password) {
			log.Printf("login: wrong password for %q", username)
			return failed()
		}

		token, err := rec.NewAuthToken()
		if err != nil {
			log.Printf("login: could not issue token for %q: %v", username, err)
			return failed()
		}

		http.SetCookie(e.Response, &http.Cookie{
			Name:     sessionCookie,
			Value:    token,
			Path:     "/",
			HttpOnly: true,
			SameSite: http.SameSiteLaxMode,
		})
		return e.Redirect(http.StatusFound, "/book")
	}
}

// HandleLogout clears the session cookie.
func HandleLogout(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		http.SetCookie(e.Response, &http.Cookie{
			Name:   sessionCookie,
			Value:  "",
			Path:   "/",
			MaxAge: -1,
		})
		return e.Redirect(http.StatusFound, "/login")
	}
}
