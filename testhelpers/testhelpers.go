// Package testhelpers provides utilities for testing PocketBase-based applications.
package testhelpers

import (
	"strings"
	"testing"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"billingdesk/collections"
)

// NewTestApp creates a PocketBase instance backed by a temporary directory.
// It bootstraps the app and runs collections.Setup to create all tables.
// The temporary directory is cleaned up automatically when the test finishes.
func NewTestApp(t *testing.T) *pocketbase.PocketBase {
	t.Helper()

	tmpDir := t.TempDir()
	app := pocketbase.NewWithConfig(pocketbase.Config{
		DefaultDataDir: tmpDir,
	})

	if err := app.Bootstrap(); err != nil {
		t.Fatalf("failed to bootstrap test app: %v", err)
	}

	collections.Setup(app)

	return app
}

// CreateTestCompany creates a company record with the given name and returns it.
func CreateTestCompany(t *testing.T, app *pocketbase.PocketBase, name string) *core.Record {
	t.Helper()

	col, err := app.FindCollectionByNameOrId("companies")
	if err != nil {
		t.Fatalf("failed to find companies collection: %v", err)
	}

	record := core.NewRecord(col)
	record.Set("company_name", name)
	record.Set("address", "3/1474-B Paraipatti, Kil Thayilapatti, Sivakasi - 626123")
	record.Set("gstin", "33AADCB2230M1ZV")
	record.Set("email", "office@example.com")
	record.Set("bank_name", "Indian Bank")
	record.Set("branch", "Sivakasi")
	record.Set("account_no", "6543210987")
	record.Set("ifsc_code", "IDIB000S123")

	if err := app.Save(record); err != nil {
		t.Fatalf("failed to save test company: %v", err)
	}

	return record
}

// CreateTestProductType creates a product type record and returns it.
func CreateTestProductType(t *testing.T, app *pocketbase.PocketBase, name string) *core.Record {
	t.Helper()

	col, err := app.FindCollectionByNameOrId("product_types")
	if err != nil {
		t.Fatalf("failed to find product_types collection: %v", err)
	}

	record := core.NewRecord(col)
	record.Set("name", name)

	if err := app.Save(record); err != nil {
		t.Fatalf("failed to save test product type: %v", err)
	}

	return record
}

// CreateTestProduct creates a product record linked to a product type.
func CreateTestProduct(t *testing.T, app *pocketbase.PocketBase, typeID, name string, rate float64) *core.Record {
	t.Helper()

	col, err := app.FindCollectionByNameOrId("products")
	if err != nil {
		t.Fatalf("failed to find products collection: %v", err)
	}

	record := core.NewRecord(col)
	record.Set("productname", name)
	record.Set("product_type", typeID)
	record.Set("hsn_code", "360410")
	record.Set("rate_per_box", rate)
	record.Set("per_case", 10)

	if err := app.Save(record); err != nil {
		t.Fatalf("failed to save test product: %v", err)
	}

	return record
}

// CreateTestBooking creates a booking record in the given status for a company.
func CreateTestBooking(t *testing.T, app *pocketbase.PocketBase, companyID, status string) *core.Record {
	t.Helper()

	col, err := app.FindCollectionByNameOrId("bookings")
	if err != nil {
		t.Fatalf("failed to find bookings collection: %v", err)
	}

	record := core.NewRecord(col)
	record.Set("company", companyID)
	record.Set("status", status)
	record.Set("packing_percent", 0.0)

	if err := app.Save(record); err != nil {
		t.Fatalf("failed to save test booking: %v", err)
	}

	return record
}

// CreateTestSavedBooking creates a saved booking carrying a bill number,
// as left behind by a completed generate flow.
func CreateTestSavedBooking(t *testing.T, app *pocketbase.PocketBase, companyID, billNo string) *core.Record {
	t.Helper()

	record := CreateTestBooking(t, app, companyID, "saved")
	record.Set("bill_no", billNo)
	record.Set("customer_name", "Test Customer")
	record.Set("net_amount", 1000.0)

	if err := app.Save(record); err != nil {
		t.Fatalf("failed to save test saved booking: %v", err)
	}

	return record
}

// CreateTestBookingItem creates a cart line under a booking.
func CreateTestBookingItem(t *testing.T, app *pocketbase.PocketBase, bookingID string, sortOrder int, name string, rate float64, cases int) *core.Record {
	t.Helper()

	col, err := app.FindCollectionByNameOrId("booking_items")
	if err != nil {
		t.Fatalf("failed to find booking_items collection: %v", err)
	}

	record := core.NewRecord(col)
	record.Set("booking", bookingID)
	record.Set("sort_order", sortOrder)
	record.Set("productname", name)
	record.Set("hsn_code", "360410")
	record.Set("rate_per_box", rate)
	record.Set("cases", cases)

	if err := app.Save(record); err != nil {
		t.Fatalf("failed to save test booking item: %v", err)
	}

	return record
}

// CreateTestCustomer creates a customer history record and returns it.
func CreateTestCustomer(t *testing.T, app *pocketbase.PocketBase, name, place string) *core.Record {
	t.Helper()

	col, err := app.FindCollectionByNameOrId("customers")
	if err != nil {
		t.Fatalf("failed to find customers collection: %v", err)
	}

	record := core.NewRecord(col)
	record.Set("customer_name", name)
	record.Set("customer_address", "12 Main Road")
	record.Set("customer_place", place)
	record.Set("customer_state_code", "33")

	if err := app.Save(record); err != nil {
		t.Fatalf("failed to save test customer: %v", err)
	}

	return record
}

// CreateTestStaff creates a staff auth record with the given role.
func CreateTestStaff(t *testing.T, app *pocketbase.PocketBase, username, role string) *core.Record {
	t.Helper()

	col, err := app.FindCollectionByNameOrId("staff")
	if err != nil {
		t.Fatalf("failed to find staff collection: %v", err)
	}

	record := core.NewRecord(col)
	record.Set("username", username)
	record.Set("email", username+"@example.com")
	record.Set("role", role)
	record.SetPassword("changeme123")

	if err := app.Save(record); err != nil {
		t.Fatalf("failed to save test staff: %v", err)
	}

	return record
}

// AssertHTMLContains checks that body contains all specified fragments.
func AssertHTMLContains(t *testing.T, body string, fragments ...string) {
	t.Helper()

	for _, frag := range fragments {
		if !strings.Contains(body, frag) {
			t.Errorf("expected HTML to contain %q, but it was not found\nbody (first 500 chars): %s",
				frag, truncate(body, 500))
		}
	}
}

// AssertHXRedirect checks that the response has an HX-Redirect header with the expected URL.
func AssertHXRedirect(t *testing.T, headerVal, expectedURL string) {
	t.Helper()

	if headerVal != expectedURL {
		t.Errorf("expected HX-Redirect %q, got %q", expectedURL, headerVal)
	}
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
