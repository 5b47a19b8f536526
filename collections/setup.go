package collections

import (
	"fmt"
	"log"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"
)

// Setup programmatically creates/ensures the collections backing the billing
// desk: staff, companies, product_types, products, states, customers,
// bookings and booking_items.
func Setup(app *pocketbase.PocketBase) {
	staff := ensureAuthCollection(app, "staff", func(c *core.Collection) {
		c.Fields.Add(&core.TextField{Name: "username", Required: true})
		c.Fields.Add(&core.SelectField{
			Name:      "role",
			Required:  true,
			Values:    []string{"admin", "worker"},
			MaxSelect: 1,
		})
	})

	companies := ensureCollection(app, "companies", func(c *core.Collection) {
		c.Fields.Add(&core.TextField{Name: "company_name", Required: true})
		c.Fields.Add(&core.TextField{Name: "address", Required: false})
		c.Fields.Add(&core.TextField{Name: "gstin", Required: false})
		c.Fields.Add(&core.EmailField{Name: "email", Required: false})
		c.Fields.Add(&core.TextField{Name: "bank_name", Required: false})
		c.Fields.Add(&core.TextField{Name: "branch", Required: false})
		c.Fields.Add(&core.TextField{Name: "account_no", Required: false})
		c.Fields.Add(&core.TextField{Name: "ifsc_code", Required: false})
		c.Fields.Add(&core.FileField{
			Name:      "logo",
			MaxSelect: 1,
			MaxSize:   5 << 20,
			MimeTypes: []string{"image/png", "image/jpeg", "image/webp"},
		})
		c.Fields.Add(&core.FileField{
			Name:      "signature",
			MaxSelect: 1,
			MaxSize:   5 << 20,
			MimeTypes: []string{"image/png", "image/jpeg", "image/webp"},
		})
		c.Fields.Add(&core.AutodateField{Name: "created", OnCreate: true})
		c.Fields.Add(&core.AutodateField{Name: "updated", OnCreate: true, OnUpdate: true})
	})

	productTypes := ensureCollection(app, "product_types", func(c *core.Collection) {
		c.Fields.Add(&core.TextField{Name: "name", Required: true})
	})

	ensureCollection(app, "products", func(c *core.Collection) {
		c.Fields.Add(&core.TextField{Name: "productname", Required: true})
		c.Fields.Add(&core.RelationField{
			Name:         "product_type",
			Required:     true,
			CollectionId: productTypes.Id,
			MaxSelect:    1,
		})
		c.Fields.Add(&core.TextField{Name: "hsn_code", Required: false})
		c.Fields.Add(&core.NumberField{Name: "rate_per_box", Required: true})
		c.Fields.Add(&core.NumberField{Name: "per_case", Required: false})
		c.Fields.Add(&core.AutodateField{Name: "created", OnCreate: true})
		c.Fields.Add(&core.AutodateField{Name: "updated", OnCreate: true, OnUpdate: true})
	})

	ensureCollection(app, "states", func(c *core.Collection) {
		c.Fields.Add(&core.TextField{Name: "code", Required: true})
		c.Fields.Add(&core.TextField{Name: "state_name", Required: true})
	})

	ensureCollection(app, "customers", func(c *core.Collection) {
		c.Fields.Add(&core.TextField{Name: "customer_name", Required: true})
		c.Fields.Add(&core.TextField{Name: "customer_address", Required: false})
		c.Fields.Add(&core.TextField{Name: "customer_gstin", Required: false})
		c.Fields.Add(&core.TextField{Name: "customer_place", Required: false})
		c.Fields.Add(&core.TextField{Name: "customer_state_code", Required: false})
		c.Fields.Add(&core.AutodateField{Name: "created", OnCreate: true})
		c.Fields.Add(&core.AutodateField{Name: "updated", OnCreate: true, OnUpdate: true})
	})

	bookings := ensureCollection(app, "bookings", func(c *core.Collection) {
		c.Fields.Add(&core.RelationField{
			Name:         "company",
			Required:     false,
			CollectionId: companies.Id,
			MaxSelect:    1,
		})
		c.Fields.Add(&core.RelationField{
			Name:         "staff",
			Required:     false,
			CollectionId: staff.Id,
			MaxSelect:    1,
		})
		c.Fields.Add(&core.SelectField{
			Name:      "status",
			Required:  true,
			Values:    []string{"draft", "saved"},
			MaxSelect: 1,
		})
		c.Fields.Add(&core.TextField{Name: "bill_no", Required: false})
		c.Fields.Add(&core.TextField{Name: "suggested_bill_no", Required: false})
		c.Fields.Add(&core.TextField{Name: "manual_bill_no", Required: false})
		c.Fields.Add(&core.TextField{Name: "customer_name", Required: false})
		c.Fields.Add(&core.TextField{Name: "customer_address", Required: false})
		c.Fields.Add(&core.TextField{Name: "customer_gstin", Required: false})
		c.Fields.Add(&core.TextField{Name: "customer_place", Required: false})
		c.Fields.Add(&core.TextField{Name: "customer_state_code", Required: false})
		c.Fields.Add(&core.TextField{Name: "through", Required: false})
		c.Fields.Add(&core.TextField{Name: "destination", Required: false})
		c.Fields.Add(&core.NumberField{Name: "packing_percent", Required: false})
		c.Fields.Add(&core.TextField{Name: "extra_taxable", Required: false})
		c.Fields.Add(&core.BoolField{Name: "is_igst"})
		c.Fields.Add(&core.NumberField{Name: "subtotal", Required: false})
		c.Fields.Add(&core.NumberField{Name: "packing_amount", Required: false})
		c.Fields.Add(&core.NumberField{Name: "extra_amount", Required: false})
		c.Fields.Add(&core.NumberField{Name: "cgst_amount", Required: false})
		c.Fields.Add(&core.NumberField{Name: "sgst_amount", Required: false})
		c.Fields.Add(&core.NumberField{Name: "igst_amount", Required: false})
		c.Fields.Add(&core.NumberField{Name: "taxable_value", Required: false})
		c.Fields.Add(&core.NumberField{Name: "net_amount", Required: false})
		c.Fields.Add(&core.TextField{Name: "issued_date", Required: false})
		c.Fields.Add(&core.FileField{
			Name:      "pdf",
			MaxSelect: 1,
			MaxSize:   20 << 20,
			MimeTypes: []string{"application/pdf"},
		})
		c.Fields.Add(&core.AutodateField{Name: "created", OnCreate: true})
		c.Fields.Add(&core.AutodateField{Name: "updated", OnCreate: true, OnUpdate: true})
	})

	ensureCollection(app, "booking_items", func(c *core.Collection) {
		c.Fields.Add(&core.RelationField{
			Name:          "booking",
			Required:      true,
			CollectionId:  bookings.Id,
			CascadeDelete: true,
			MaxSelect:     1,
		})
		c.Fields.Add(&core.NumberField{Name: "sort_order", Required: true})
		c.Fields.Add(&core.TextField{Name: "productname", Required: true})
		c.Fields.Add(&core.TextField{Name: "hsn_code", Required: false})
		c.Fields.Add(&core.NumberField{Name: "rate_per_box", Required: true})
		c.Fields.Add(&core.NumberField{Name: "cases", Required: true})
	})
}

// ensureCollection checks if a collection already exists by name. If it does,
// the existing collection is returned. Otherwise a new base collection is
// created, the addFields callback is invoked to populate its fields, and the
// collection is saved.
func ensureCollection(app *pocketbase.PocketBase, name string, addFields func(*core.Collection)) *core.Collection {
	existing, err := app.FindCollectionByNameOrId(name)
	if err == nil && existing != nil {
		log.Printf("Collection %q already exists, skipping creation.\n", name)
		return existing
	}

	collection := core.NewBaseCollection(name)
	addFields(collection)

	if err := app.Save(collection); err != nil {
		log.Fatalf("Failed to create collection %q: %v", name, err)
	}

	fmt.Printf("Created collection %q (id=%s)\n", name, collection.Id)
	return collection
}

// ensureAuthCollection is ensureCollection for auth-backed collections.
func ensureAuthCollection(app *pocketbase.PocketBase, name string, addFields func(*core.Collection)) *core.Collection {
	existing, err := app.FindCollectionByNameOrId(name)
	if err == nil && existing != nil {
		log.Printf("Collection %q already exists, skipping creation.\n", name)
		return existing
	}

	collection := core.NewAuthCollection(name)
	addFields(collection)

	if err := app.Save(collection); err != nil {
		log.Fatalf("Failed to create collection %q: %v", name, err)
	}

	fmt.Printf("Created collection %q (id=%s)\n", name, collection.Id)
	return collection
}
