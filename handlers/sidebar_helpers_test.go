package handlers

import (
	"testing"

	"billingdesk/templates"
	"billingdesk/testhelpers"
)

func TestBuildSidebarData_AnonymousIsEmpty(t *testing.T) {
	app := testhelpers.NewTestApp(t)

	data := BuildSidebarData(app, nil, "/login")
	if data.Staff != nil {
		t.Error("anonymous sidebar must carry no staff")
	}
	if data.ProductCount != 0 || data.BillingCount != 0 {
		t.Errorf("anonymous counts = %d/%d, want 0/0", data.ProductCount, data.BillingCount)
	}
	if data.ActivePath != "/login" {
		t.Errorf("ActivePath = %q, want /login", data.ActivePath)
	}
}

func TestBuildSidebarData_WorkerCounts(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	ptype := testhelpers.CreateTestProductType(t, app, "Sparklers")
	testhelpers.CreateTestProduct(t, app, ptype.Id, "Sparklers 10cm", 45)
	testhelpers.CreateTestProduct(t, app, ptype.Id, "Sparklers 15cm", 60)

	company := testhelpers.CreateTestCompany(t, app, "Nisha Traders")
	testhelpers.CreateTestSavedBooking(t, app, company.Id, "NT-001")

	worker := &templates.CurrentStaff{ID: "staff1", Username: "priya", Role: "worker"}
	data := BuildSidebarData(app, worker, "/book")

	if data.ProductCount != 2 {
		t.Errorf("ProductCount = %d, want 2", data.ProductCount)
	}
	// The billing count is admin-only.
	if data.BillingCount != 0 {
		t.Errorf("BillingCount = %d, want 0 for worker", data.BillingCount)
	}
}

func TestBuildSidebarData_AdminBillingCount(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	company := testhelpers.CreateTestCompany(t, app, "Nisha Traders")
	testhelpers.CreateTestSavedBooking(t, app, company.Id, "NT-001")
	testhelpers.CreateTestSavedBooking(t, app, company.Id, "NT-002")
	// Drafts stay out of the billing count.
	testhelpers.CreateTestBooking(t, app, company.Id, "draft")

	admin := &templates.CurrentStaff{ID: "staff1", Username: "admin", Role: "admin"}
	data := BuildSidebarData(app, admin, "/allbookings")

	if data.BillingCount != 2 {
		t.Errorf("BillingCount = %d, want 2", data.BillingCount)
	}
}
