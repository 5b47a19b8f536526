package handlers

import (
	"log"
	"net/http"
	"strings"

	"github.com/a-h/templ"
	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"billingdesk/services"
	"billingdesk/templates"
)

// HandleInventoryPage renders the product entry form.
func HandleInventoryPage(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		data := templates.InventoryFormData{
			ProductTypes: loadProductTypeOptions(app, ""),
		}
		return renderInventory(e, data)
	}
}

// HandleProductTypeSave creates a product type from the inline form.
func HandleProductTypeSave(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		if err := e.Request.ParseForm(); err != nil {
			return ErrorToast(e, http.StatusBadRequest, "Invalid form submission")
		}
		name := services.NormalizeTypeName(e.Request.FormValue("name"))
		if name == "" {
			return ErrorToast(e, http.StatusBadRequest, "Type name is required")
		}

		col, err := app.FindCollectionByNameOrId("product_types")
		if err != nil {
			return ErrorToast(e, http.StatusInternalServerError, "Product types collection unavailable")
		}
		rec := core.NewRecord(col)
		rec.Set("name", name)
		if err := app.Save(rec); err != nil {
			log.Printf("inventory: could not save product type %q: %v", name, err)
			return ErrorToast(e, http.StatusInternalServerError, "Could not save product type")
		}

		SetToast(e, "success", "Product type added")
		data := templates.InventoryFormData{
			ProductTypes: loadProductTypeOptions(app, rec.Id),
		}
		return renderInventory(e, data)
	}
}

// HandleProductSave creates a product from the entry form.
func HandleProductSave(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		if err := e.Request.ParseForm(); err != nil {
			return ErrorToast(e, http.StatusBadRequest, "Invalid form submission")
		}

		typeID := e.Request.FormValue("product_type")
		name := strings.TrimSpace(e.Request.FormValue("productname"))

		data := templates.InventoryFormData{
			ProductTypes: loadProductTypeOptions(app, typeID),
			ProductName:  name,
			HSNCode:      e.Request.FormValue("hsn_code"),
			RatePerBox:   e.Request.FormValue("rate_per_box"),
			PerCase:      e.Request.FormValue("per_case"),
			Errors:       map[string]string{},
		}

		if typeID == "" {
			data.Errors["product_type"] = "Select a product type"
		}
		if name == "" {
			data.Errors["productname"] = "Product name is required"
		}
		rate := services.ParseAmountOrZero(e.Request.FormValue("rate_per_box"))
		if rate <= 0 {
			data.Errors["rate_per_box"] = "Rate must be greater than zero"
		}
		if len(data.Errors) > 0 {
			return renderInventory(e, data)
		}

		col, err := app.FindCollectionByNameOrId("products")
		if err != nil {
			return ErrorToast(e, http.StatusInternalServerError, "Products collection unavailable")
		}
		rec := core.NewRecord(col)
		rec.Set("productname", name)
		rec.Set("product_type", typeID)
		rec.Set("hsn_code", services.NormalizeHSN(e.Request.FormValue("hsn_code")))
		rec.Set("rate_per_box", rate)
		rec.Set("per_case", services.ParseCasesOrOne(e.Request.FormValue("per_case")))
		if err := app.Save(rec); err != nil {
			log.Printf("inventory: could not save product %q: %v", name, err)
			return ErrorToast(e, http.StatusInternalServerError, "Could not save product")
		}

		SetToast(e, "success", "Product added")
		return renderInventory(e, templates.InventoryFormData{
			ProductTypes: loadProductTypeOptions(app, typeID),
		})
	}
}

func loadProductTypeOptions(app *pocketbase.PocketBase, selectedID string) []templates.ProductTypeOption {
	records, err := app.FindRecordsByFilter("product_types", "1=1", "name", 0, 0, nil)
	if err != nil {
		log.Printf("inventory: could not query product types: %v", err)
		return nil
	}
	var options []templates.ProductTypeOption
	for _, rec := range records {
		options = append(options, templates.ProductTypeOption{
			ID:       rec.Id,
			Name:     rec.GetString("name"),
			Selected: rec.Id == selectedID,
		})
	}
	return options
}

func renderInventory(e *core.RequestEvent, data templates.InventoryFormData) error {
	var component templ.Component
	if e.Request.Header.Get("HX-Request") == "true" {
		component = templates.InventoryContent(data)
	} else {
		component = templates.InventoryPage(data, GetHeaderData(e.Request), GetSidebarData(e.Request))
	}
	return component.Render(e.Request.Context(), e.Response)
}
