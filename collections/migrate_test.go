package collections_test

import (
	"testing"

	"github.com/pocketbase/pocketbase/core"

	"billingdesk/collections"
	"billingdesk/testhelpers"
)

func TestMigrateMissingHSNCodes_Backfills(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	productType := testhelpers.CreateTestProductType(t, app, "multi_shot")

	productsCol, err := app.FindCollectionByNameOrId("products")
	if err != nil {
		t.Fatalf("find products collection: %v", err)
	}

	// A legacy row saved before the HSN column existed.
	legacy := core.NewRecord(productsCol)
	legacy.Set("productname", "Old Stock Item")
	legacy.Set("product_type", productType.Id)
	legacy.Set("rate_per_box", 120.0)
	legacy.Set("per_case", 5)
	if err := app.Save(legacy); err != nil {
		t.Fatalf("save legacy product: %v", err)
	}

	// A row with a deliberate non-default code must not be touched.
	custom := core.NewRecord(productsCol)
	custom.Set("productname", "Custom Coded Item")
	custom.Set("product_type", productType.Id)
	custom.Set("hsn_code", "360490")
	custom.Set("rate_per_box", 80.0)
	custom.Set("per_case", 10)
	if err := app.Save(custom); err != nil {
		t.Fatalf("save custom product: %v", err)
	}

	if err := collections.MigrateMissingHSNCodes(app); err != nil {
		t.Fatalf("MigrateMissingHSNCodes() error: %v", err)
	}

	reloaded, err := app.FindRecordById("products", legacy.Id)
	if err != nil {
		t.Fatalf("reload legacy product: %v", err)
	}
	if got := reloaded.GetString("hsn_code"); got != "360410" {
		t.Errorf("legacy hsn_code = %q, want 360410", got)
	}

	untouched, err := app.FindRecordById("products", custom.Id)
	if err != nil {
		t.Fatalf("reload custom product: %v", err)
	}
	if got := untouched.GetString("hsn_code"); got != "360490" {
		t.Errorf("custom hsn_code = %q, want 360490 unchanged", got)
	}
}

func TestMigrateMissingHSNCodes_NoopWhenComplete(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	productType := testhelpers.CreateTestProductType(t, app, "fancy")
	testhelpers.CreateTestProduct(t, app, productType.Id, "Flower Pots Big", 45.0)

	if err := collections.MigrateMissingHSNCodes(app); err != nil {
		t.Fatalf("MigrateMissingHSNCodes() error: %v", err)
	}
}
