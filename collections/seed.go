package collections

import (
	"fmt"
	"log"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"
)

// ── Definition structs ───────────────────────────────────────────────────

type stateDef struct {
	code string
	name string
}

type productDef struct {
	name       string
	hsnCode    string
	ratePerBox float64
	perCase    float64
}

type staffDef struct {
	username string
	email    string
	password string
	role     string
}

// gstStates is the GST jurisdiction table used to resolve the Place of Supply
// and the interstate flag (Tamil Nadu = 33 is home intrastate).
var gstStates = []stateDef{
	{"01", "Jammu and Kashmir"},
	{"02", "Himachal Pradesh"},
	{"03", "Punjab"},
	{"04", "Chandigarh"},
	{"05", "Uttarakhand"},
	{"06", "Haryana"},
	{"07", "Delhi"},
	{"08", "Rajasthan"},
	{"09", "Uttar Pradesh"},
	{"10", "Bihar"},
	{"11", "Sikkim"},
	{"12", "Arunachal Pradesh"},
	{"13", "Nagaland"},
	{"14", "Manipur"},
	{"15", "Mizoram"},
	{"16", "Tripura"},
	{"17", "Meghalaya"},
	{"18", "Assam"},
	{"19", "West Bengal"},
	{"20", "Jharkhand"},
	{"21", "Odisha"},
	{"22", "Chhattisgarh"},
	{"23", "Madhya Pradesh"},
	{"24", "Gujarat"},
	{"26", "Dadra and Nagar Haveli and Daman and Diu"},
	{"27", "Maharashtra"},
	{"29", "Karnataka"},
	{"30", "Goa"},
	{"31", "Lakshadweep"},
	{"32", "Kerala"},
	{"33", "Tamil Nadu"},
	{"34", "Puducherry"},
	{"35", "Andaman and Nicobar Islands"},
	{"36", "Telangana"},
	{"37", "Andhra Pradesh"},
	{"38", "Ladakh"},
}

var seedProductTypes = map[string][]productDef{
	"multi_shot": {
		{"100 Shot Green", "360410", 2450, 1},
		{"60 Shot Crackling", "360410", 1680, 1},
		{"30 Shot Red", "360410", 950, 1},
	},
	"single_shot": {
		{"Classic Single", "360410", 320, 1},
		{"Whistling Single", "360410", 410, 1},
	},
	"fancy": {
		{"Peacock Fountain", "360410", 780, 1},
		{"Colour Smoke", "360410", 540, 1},
	},
}

var seedStaff = []staffDef{
	{"admin", "admin@billingdesk.local", "changeme123", "admin"},
	{"worker", "worker@billingdesk.local", "changeme123", "worker"},
}

// Seed inserts the GST state table, a default company, the built-in staff
// accounts and a small sample inventory. It is idempotent: if the states
// collection already has rows, nothing is inserted.
func Seed(app *pocketbase.PocketBase) error {
	statesCol, err := app.FindCollectionByNameOrId("states")
	if err != nil {
		return fmt.Errorf("seed: could not find states collection: %w", err)
	}
	existing, err := app.FindAllRecords(statesCol)
	if err != nil {
		return fmt.Errorf("seed: could not query states: %w", err)
	}
	if len(existing) > 0 {
		return nil // already seeded
	}

	log.Println("seed: states collection is empty – inserting seed data …")

	for _, s := range gstStates {
		rec := core.NewRecord(statesCol)
		rec.Set("code", s.code)
		rec.Set("state_name", s.name)
		if err := app.Save(rec); err != nil {
			return fmt.Errorf("seed: could not save state %s: %w", s.code, err)
		}
	}

	companiesCol, err := app.FindCollectionByNameOrId("companies")
	if err != nil {
		return fmt.Errorf("seed: could not find companies collection: %w", err)
	}
	company := core.NewRecord(companiesCol)
	company.Set("company_name", "NISHA TRADERS")
	company.Set("address", "3/1202 Main Bazaar, Near Kil Thayilapatti, Sivakasi")
	company.Set("gstin", "33AADFN4282L1ZL")
	company.Set("email", "nishatraders@example.com")
	company.Set("bank_name", "Tamilnad Mercantile Bank Ltd.")
	company.Set("branch", "SIVAKASI")
	company.Set("account_no", "157150050800120")
	company.Set("ifsc_code", "TMBL0000157")
	if err := app.Save(company); err != nil {
		return fmt.Errorf("seed: could not save default company: %w", err)
	}

	typesCol, err := app.FindCollectionByNameOrId("product_types")
	if err != nil {
		return fmt.Errorf("seed: could not find product_types collection: %w", err)
	}
	productsCol, err := app.FindCollectionByNameOrId("products")
	if err != nil {
		return fmt.Errorf("seed: could not find products collection: %w", err)
	}
	for typeName, defs := range seedProductTypes {
		typeRec := core.NewRecord(typesCol)
		typeRec.Set("name", typeName)
		if err := app.Save(typeRec); err != nil {
			return fmt.Errorf("seed: could not save product type %q: %w", typeName, err)
		}
		for _, d := range defs {
			rec := core.NewRecord(productsCol)
			rec.Set("productname", d.name)
			rec.Set("product_type", typeRec.Id)
			rec.Set("hsn_code", d.hsnCode)
			rec.Set("rate_per_box", d.ratePerBox)
			rec.Set("per_case", d.perCase)
			if err := app.Save(rec); err != nil {
				return fmt.Errorf("seed: could not save product %q: %w", d.name, err)
			}
		}
	}

	staffCol, err := app.FindCollectionByNameOrId("staff")
	if err != nil {
		return fmt.Errorf("seed: could not find staff collection: %w", err)
	}
	for _, s := range seedStaff {
		rec := core.NewRecord(staffCol)
		rec.Set("username", s.username)
		rec.Set("email", s.email)
		rec.Set("role", s.role)
		rec.SetPassword(s.password)
		if err := app.Save(rec); err != nil {
			return fmt.Errorf("seed: could not save staff %q: %w", s.username, err)
		}
	}

	log.Println("seed: done")
	return nil
}
