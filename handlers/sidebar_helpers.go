package handlers

import (
	"github.com/pocketbase/pocketbase"

	"billingdesk/templates"
)

// BuildSidebarData assembles the sidebar counts for the current staff
// member. Count queries are best effort; a failed count renders as zero.
func BuildSidebarData(app *pocketbase.PocketBase, staff *templates.CurrentStaff, activePath string) templates.SidebarData {
	data := templates.SidebarData{
		Staff:      staff,
		ActivePath: activePath,
	}
	if staff == nil {
		return data
	}

	productsCol, _ := app.FindCollectionByNameOrId("products")
	if productsCol != nil {
		products, _ := app.FindAllRecords(productsCol)
		data.ProductCount = len(products)
	}

	if staff.IsAdmin() {
		saved, _ := app.FindRecordsByFilter("bookings", "status = 'saved'", "", 0, 0, nil)
		data.BillingCount = len(saved)
	}

	return data
}
