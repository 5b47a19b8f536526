package collections_test

import (
	"testing"

	"billingdesk/collections"
	"billingdesk/testhelpers"
)

func TestSeed_CreatesData(t *testing.T) {
	app := testhelpers.NewTestApp(t)

	if err := collections.Seed(app); err != nil {
		t.Fatalf("Seed() error: %v", err)
	}

	// Full GST state table.
	statesCol, _ := app.FindCollectionByNameOrId("states")
	states, err := app.FindAllRecords(statesCol)
	if err != nil {
		t.Fatalf("query states error: %v", err)
	}
	if len(states) != 36 {
		t.Errorf("expected 36 states, got %d", len(states))
	}

	home, err := app.FindFirstRecordByData("states", "code", "33")
	if err != nil {
		t.Fatalf("home state missing: %v", err)
	}
	if home.GetString("state_name") != "Tamil Nadu" {
		t.Errorf("state 33 = %q, want Tamil Nadu", home.GetString("state_name"))
	}

	// Default company.
	companiesCol, _ := app.FindCollectionByNameOrId("companies")
	companies, _ := app.FindAllRecords(companiesCol)
	if len(companies) != 1 {
		t.Fatalf("expected 1 company, got %d", len(companies))
	}
	if companies[0].GetString("company_name") != "NISHA TRADERS" {
		t.Errorf("company = %q, want NISHA TRADERS", companies[0].GetString("company_name"))
	}

	// Sample inventory under three types.
	typesCol, _ := app.FindCollectionByNameOrId("product_types")
	types, _ := app.FindAllRecords(typesCol)
	if len(types) != 3 {
		t.Errorf("expected 3 product types, got %d", len(types))
	}
	productsCol, _ := app.FindCollectionByNameOrId("products")
	products, _ := app.FindAllRecords(productsCol)
	if len(products) != 7 {
		t.Errorf("expected 7 products, got %d", len(products))
	}
	for _, p := range products {
		if p.GetString("hsn_code") != "360410" {
			t.Errorf("product %q hsn = %q, want 360410",
				p.GetString("productname"), p.GetString("hsn_code"))
		}
	}

	// Built-in staff accounts.
	staffCol, _ := app.FindCollectionByNameOrId("staff")
	staff, _ := app.FindAllRecords(staffCol)
	if len(staff) != 2 {
		t.Fatalf("expected 2 staff accounts, got %d", len(staff))
	}
	admin, err := app.FindFirstRecordByData("staff", "username", "admin")
	if err != nil {
		t.Fatalf("admin account missing: %v", err)
	}
	if admin.GetString("role") != "admin" {
		t.Errorf("admin role = %q", admin.GetString("role"))
	}
	if !admin.ValidatePassword("changeme123") {
		t.Error("admin default password not set")
	}
}

func TestSeed_Idempotent(t *testing.T) {
	app := testhelpers.NewTestApp(t)

	if err := collections.Seed(app); err != nil {
		t.Fatalf("first Seed() error: %v", err)
	}
	if err := collections.Seed(app); err != nil {
		t.Fatalf("second Seed() error: %v", err)
	}

	companiesCol, _ := app.FindCollectionByNameOrId("companies")
	companies, _ := app.FindAllRecords(companiesCol)
	if len(companies) != 1 {
		t.Errorf("expected 1 company after idempotent seed, got %d", len(companies))
	}

	statesCol, _ := app.FindCollectionByNameOrId("states")
	states, _ := app.FindAllRecords(statesCol)
	if len(states) != 36 {
		t.Errorf("expected 36 states after idempotent seed, got %d", len(states))
	}
}
