package handlers

import (
	"log"
	"net/http"
	"strings"

	"github.com/a-h/templ"
	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"
	"github.com/pocketbase/pocketbase/tools/filesystem"

	"billingdesk/templates"
)

// HandleCompanyList shows all configured billing companies.
func HandleCompanyList(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		records, err := app.FindRecordsByFilter("companies", "1=1", "company_name", 0, 0, nil)
		if err != nil {
			log.Printf("company: could not query companies: %v", err)
			records = nil
		}

		var items []templates.CompanyListItem
		for _, rec := range records {
			items = append(items, templates.CompanyListItem{
				ID:          rec.Id,
				CompanyName: rec.GetString("company_name"),
				GSTIN:       rec.GetString("gstin"),
				Email:       rec.GetString("email"),
			})
		}
		data := templates.CompanyListData{Companies: items}

		var component templ.Component
		if e.Request.Header.Get("HX-Request") == "true" {
			component = templates.CompanyListContent(data)
		} else {
			component = templates.CompanyListPage(data, GetHeaderData(e.Request), GetSidebarData(e.Request))
		}
		return component.Render(e.Request.Context(), e.Response)
	}
}

// HandleCompanyCreate renders an empty company form.
func HandleCompanyCreate(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		return renderCompanyForm(e, templates.CompanyFormData{})
	}
}

// HandleCompanyEdit renders the form pre-filled from an existing record.
func HandleCompanyEdit(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		rec, err := app.FindRecordById("companies", e.Request.PathValue("id"))
		if err != nil {
			return e.String(http.StatusNotFound, "Company not found")
		}
		return renderCompanyForm(e, companyFormDataOf(rec))
	}
}

// HandleCompanySave creates a new company from the submitted form.
func HandleCompanySave(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		col, err := app.FindCollectionByNameOrId("companies")
		if err != nil {
			return ErrorToast(e, http.StatusInternalServerError, "Companies collection unavailable")
		}
		return saveCompany(app, e, core.NewRecord(col))
	}
}

// HandleCompanyUpdate applies the submitted form to an existing record.
func HandleCompanyUpdate(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		rec, err := app.FindRecordById("companies", e.Request.PathValue("id"))
		if err != nil {
			return e.String(http.StatusNotFound, "Company not found")
		}
		return saveCompany(app, e, rec)
	}
}

func saveCompany(app *pocketbase.PocketBase, e *core.RequestEvent, rec *core.Record) error {
	if err := e.Request.ParseMultipartForm(10 << 20); err != nil {
		return ErrorToast(e, http.StatusBadRequest, "Invalid form submission")
	}

	name := strings.TrimSpace(e.Request.FormValue("company_name"))
	if name == "" {
		data := companyFormDataOf(rec)
		data.Errors = map[string]string{"company_name": "Company name is required"}
		return renderCompanyForm(e, data)
	}

	rec.Set("company_name", name)
	rec.Set("address", strings.TrimSpace(e.Request.FormValue("address")))
	rec.Set("gstin", strings.ToUpper(strings.TrimSpace(e.Request.FormValue("gstin"))))
	rec.Set("email", strings.TrimSpace(e.Request.FormValue("email")))
	rec.Set("bank_name", strings.TrimSpace(e.Request.FormValue("bank_name")))
	rec.Set("branch", strings.TrimSpace(e.Request.FormValue("branch")))
	rec.Set("account_no", strings.TrimSpace(e.Request.FormValue("account_no")))
	rec.Set("ifsc_code", strings.ToUpper(strings.TrimSpace(e.Request.FormValue("ifsc_code"))))

	for _, field := range []string{"logo", "signature"} {
		if headers := e.Request.MultipartForm.File[field]; len(headers) > 0 {
			f, err := filesystem.NewFileFromMultipart(headers[0])
			if err != nil {
				log.Printf("company: could not read uploaded %s: %v", field, err)
				continue
			}
			rec.Set(field, f)
		}
	}

	if err := app.Save(rec); err != nil {
		log.Printf("company: save failed: %v", err)
		return ErrorToast(e, http.StatusInternalServerError, "Could not save company")
	}

	SetToast(e, "success", "Company saved")
	e.Response.Header().Set("HX-Redirect", "/company")
	return e.NoContent(http.StatusOK)
}

func companyFormDataOf(rec *core.Record) templates.CompanyFormData {
	data := templates.CompanyFormData{
		ID:          rec.Id,
		CompanyName: rec.GetString("company_name"),
		Address:     rec.GetString("address"),
		GSTIN:       rec.GetString("gstin"),
		Email:       rec.GetString("email"),
		BankName:    rec.GetString("bank_name"),
		Branch:      rec.GetString("branch"),
		AccountNo:   rec.GetString("account_no"),
		IFSCCode:    rec.GetString("ifsc_code"),
	}
	if logo := rec.GetString("logo"); logo != "" {
		data.LogoURL = recordFileURL(rec, logo)
	}
	if sig := rec.GetString("signature"); sig != "" {
		data.SignatureURL = recordFileURL(rec, sig)
	}
	return data
}

// recordFileURL builds the PocketBase file endpoint path for a stored file.
func recordFileURL(rec *core.Record, filename string) string {
	return "/api/files/" + rec.Collection().Id + "/" + rec.Id + "/" + filename
}

func renderCompanyForm(e *core.RequestEvent, data templates.CompanyFormData) error {
	var component templ.Component
	if e.Request.Header.Get("HX-Request") == "true" {
		component = templates.CompanyFormContent(data)
	} else {
		component = templates.CompanyFormPage(data, GetHeaderData(e.Request), GetSidebarData(e.Request))
	}
	return component.Render(e.Request.Context(), e.Response)
}
