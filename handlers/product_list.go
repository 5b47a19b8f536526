package handlers

import (
	"log"
	"net/http"
	"strconv"
	"strings"

	"github.com/a-h/templ"
	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"billingdesk/services"
	"billingdesk/templates"
)

// HandleProductList shows the searchable product listing. Edit and delete
// controls only render for admins.
func HandleProductList(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		searchQuery := strings.TrimSpace(e.Request.URL.Query().Get("q"))
		typeFilter := e.Request.URL.Query().Get("type")

		filter := "1=1"
		params := map[string]any{}
		if searchQuery != "" {
			filter += " && (productname ~ {:q} || hsn_code ~ {:q})"
			params["q"] = searchQuery
		}
		if typeFilter != "" {
			filter += " && product_type = {:type}"
			params["type"] = typeFilter
		}

		records, err := app.FindRecordsByFilter("products", filter, "productname", 0, 0, params)
		if err != nil {
			log.Printf("product_list: could not query products: %v", err)
			records = nil
		}

		typeNames := loadProductTypeNames(app)
		var items []templates.ProductListItem
		for _, rec := range records {
			items = append(items, templates.ProductListItem{
				ID:          rec.Id,
				ProductName: rec.GetString("productname"),
				TypeName:    typeNames[rec.GetString("product_type")],
				HSNCode:     rec.GetString("hsn_code"),
				RatePerBox:  rec.GetFloat("rate_per_box"),
				PerCase:     rec.GetInt("per_case"),
			})
		}

		data := templates.ProductListData{
			Products:    items,
			SearchQuery: searchQuery,
			TypeFilter:  typeFilter,
			Types:       loadProductTypeOptions(app, typeFilter),
			TotalCount:  len(items),
			CanEdit:     GetStaff(e.Request).IsAdmin(),
		}

		var component templ.Component
		if e.Request.Header.Get("HX-Request") == "true" {
			component = templates.ProductListContent(data)
		} else {
			component = templates.ProductListPage(data, GetHeaderData(e.Request), GetSidebarData(e.Request))
		}
		return component.Render(e.Request.Context(), e.Response)
	}
}

// HandleProductEdit renders the edit form for one product.
func HandleProductEdit(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		rec, err := app.FindRecordById("products", e.Request.PathValue("id"))
		if err != nil {
			return e.String(http.StatusNotFound, "Product not found")
		}

		data := templates.InventoryFormData{
			ProductTypes: loadProductTypeOptions(app, rec.GetString("product_type")),
			ProductName:  rec.GetString("productname"),
			HSNCode:      rec.GetString("hsn_code"),
			RatePerBox:   services.FormatAmount(rec.GetFloat("rate_per_box")),
			PerCase:      strconv.Itoa(rec.GetInt("per_case")),
		}

		var component templ.Component
		if e.Request.Header.Get("HX-Request") == "true" {
			component = templates.ProductEditContent(data, rec.Id)
		} else {
			component = templates.ProductEditPage(data, rec.Id, GetHeaderData(e.Request), GetSidebarData(e.Request))
		}
		return component.Render(e.Request.Context(), e.Response)
	}
}

// HandleProductUpdate applies the edit form to an existing product.
func HandleProductUpdate(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		rec, err := app.FindRecordById("products", e.Request.PathValue("id"))
		if err != nil {
			return e.String(http.StatusNotFound, "Product not found")
		}
		if err := e.Request.ParseForm(); err != nil {
			return ErrorToast(e, http.StatusBadRequest, "Invalid form submission")
		}

		name := strings.TrimSpace(e.Request.FormValue("productname"))
		rate := services.ParseAmountOrZero(e.Request.FormValue("rate_per_box"))
		if name == "" || rate <= 0 {
			return ErrorToast(e, http.StatusBadRequest, "Name and a positive rate are required")
		}

		rec.Set("productname", name)
		rec.Set("product_type", e.Request.FormValue("product_type"))
		rec.Set("hsn_code", services.NormalizeHSN(e.Request.FormValue("hsn_code")))
		rec.Set("rate_per_box", rate)
		rec.Set("per_case", services.ParseCasesOrOne(e.Request.FormValue("per_case")))
		if err := app.Save(rec); err != nil {
			log.Printf("product_list: could not update product %s: %v", rec.Id, err)
			return ErrorToast(e, http.StatusInternalServerError, "Could not save product")
		}

		SetToast(e, "success", "Product updated")
		e.Response.Header().Set("HX-Redirect", "/listing")
		return e.NoContent(http.StatusOK)
	}
}

// HandleProductDelete removes a product. Saved bills keep their own copy of
// the product data, so deletion never rewrites history.
func HandleProductDelete(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		rec, err := app.FindRecordById("products", e.Request.PathValue("id"))
		if err != nil {
			return e.String(http.StatusNotFound, "Product not found")
		}
		if err := app.Delete(rec); err != nil {
			log.Printf("product_list: could not delete product %s: %v", rec.Id, err)
			return ErrorToast(e, http.StatusInternalServerError, "Could not delete product")
		}
		SetToast(e, "success", "Product deleted")
		return e.NoContent(http.StatusOK)
	}
}

func loadProductTypeNames(app *pocketbase.PocketBase) map[string]string {
	names := map[string]string{}
	records, err := app.FindRecordsByFilter("product_types", "1=1", "", 0, 0, nil)
	if err != nil {
		log.Printf("product_list: could not query product types: %v", err)
		return names
	}
	for _, rec := range records {
		names[rec.Id] = rec.GetString("name")
	}
	return names
}
