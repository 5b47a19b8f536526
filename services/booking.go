package services

import (
	"fmt"
	"io"
	"log"
	"math"
	"path/filepath"
	"strings"
	"time"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"
	"github.com/pocketbase/pocketbase/tools/filesystem"
)

// DefaultHSNCode is applied to cart lines whose product carries no HSN code.
// Fireworks fall under HSN 360410.
const DefaultHSNCode = "360410"

// InvoiceDateLayout is the dd/mm/yyyy format printed on invoices.
const InvoiceDateLayout = "02/01/2006"

// CompanyInfo is the issuing company as printed on the invoice. Logo and
// Signature hold the stored image bytes when the company has uploaded them,
// with the file extension recorded for the document engine.
type CompanyInfo struct {
	ID           string
	Name         string
	Address      string
	GSTIN        string
	Email        string
	BankName     string
	Branch       string
	AccountNo    string
	IFSCCode     string
	Logo         []byte
	LogoExt      string
	Signature    []byte
	SignatureExt string
}

// CustomerInfo is the invoice recipient.
type CustomerInfo struct {
	Name      string
	Address   string
	GSTIN     string
	Place     string
	StateCode string
}

// InvoiceData is the immutable snapshot handed to the document renderer and
// the store at generation time.
type InvoiceData struct {
	Company       CompanyInfo
	Customer      CustomerInfo
	BillNumber    string
	Through       string
	Destination   string
	IssueDate     string
	PlaceOfSupply string
	Cart          []CartItem
	Tax           TaxContext
	Result        TaxResult
	TotalCases    int
	AmountWords   string
}

// ValidateDraft enforces the generation preconditions: a customer name and a
// non-empty cart. Violations return a *ValidationError before any I/O.
func ValidateDraft(customerName string, cart []CartItem) error {
	if strings.TrimSpace(customerName) == "" {
		return &ValidationError{Field: "customer_name", Reason: "customer name is required"}
	}
	if len(cart) == 0 {
		return &ValidationError{Field: "cart", Reason: "add at least one product"}
	}
	return nil
}

// NormalizeHSN substitutes the fallback classification for blank codes.
func NormalizeHSN(code string) string {
	if strings.TrimSpace(code) == "" {
		return DefaultHSNCode
	}
	return code
}

// NormalizeTypeName folds a product type name to lower_snake_case so "Multi
// Shot" and "multi_shot" name the same category.
func NormalizeTypeName(name string) string {
	return strings.Join(strings.Fields(strings.ToLower(strings.TrimSpace(name))), "_")
}

// LoadCart reads the booking's line items in insertion order. The row order
// on the invoice is the order items were added.
func LoadCart(app *pocketbase.PocketBase, bookingID string) ([]CartItem, error) {
	records, err := app.FindRecordsByFilter(
		"booking_items",
		"booking = {:bookingId}",
		"sort_order",
		0,
		0,
		map[string]any{"bookingId": bookingID},
	)
	if err != nil {
		return nil, &FetchError{Op: "load cart for booking " + bookingID, Err: err}
	}

	var cart []CartItem
	for _, rec := range records {
		cart = append(cart, CartItem{
			ItemID:      rec.Id,
			ProductName: rec.GetString("productname"),
			HSNCode:     NormalizeHSN(rec.GetString("hsn_code")),
			RatePerBox:  rec.GetFloat("rate_per_box"),
			Cases:       rec.GetInt("cases"),
		})
	}
	return cart, nil
}

// TaxContextOf rebuilds the tax context from a draft booking record.
func TaxContextOf(booking *core.Record) TaxContext {
	return TaxContext{
		PackingPercent: booking.GetFloat("packing_percent"),
		ExtraTaxable:   booking.GetString("extra_taxable"),
		IsInterstate:   booking.GetBool("is_igst"),
	}
}

// BillStateOf rebuilds the bill number state from a draft booking record.
func BillStateOf(booking *core.Record) BillNumberState {
	return BillNumberState{
		Suggested: booking.GetString("suggested_bill_no"),
		Manual:    booking.GetString("manual_bill_no"),
	}
}

// CompanyInfoOf maps a company record onto the invoice view of it.
func CompanyInfoOf(company *core.Record) CompanyInfo {
	return CompanyInfo{
		ID:        company.Id,
		Name:      strings.TrimSpace(company.GetString("company_name")),
		Address:   strings.TrimSpace(company.GetString("address")),
		GSTIN:     strings.TrimSpace(company.GetString("gstin")),
		Email:     strings.TrimSpace(company.GetString("email")),
		BankName:  company.GetString("bank_name"),
		Branch:    company.GetString("branch"),
		AccountNo: company.GetString("account_no"),
		IFSCCode:  company.GetString("ifsc_code"),
	}
}

// attachCompanyImages loads the stored logo and signature files so the
// document renderer can print them. Missing or unreadable files only log;
// the invoice renders without them.
func attachCompanyImages(app *pocketbase.PocketBase, rec *core.Record, info *CompanyInfo) {
	fsys, err := app.NewFilesystem()
	if err != nil {
		log.Printf("booking: could not open file storage: %v", err)
		return
	}
	defer fsys.Close()

	if name := rec.GetString("logo"); name != "" {
		if b, err := readRecordFile(fsys, rec, name); err != nil {
			log.Printf("booking: could not read logo %s: %v", name, err)
		} else {
			info.Logo = b
			info.LogoExt = imageFileExt(name)
		}
	}
	if name := rec.GetString("signature"); name != "" {
		if b, err := readRecordFile(fsys, rec, name); err != nil {
			log.Printf("booking: could not read signature %s: %v", name, err)
		} else {
			info.Signature = b
			info.SignatureExt = imageFileExt(name)
		}
	}
}

func readRecordFile(fsys *filesystem.System, rec *core.Record, name string) ([]byte, error) {
	r, err := fsys.GetReader(rec.BaseFilesPath() + "/" + name)
	if err != nil {
		return nil, err
	}
	defer r.Close()
	return io.ReadAll(r)
}

func imageFileExt(name string) string {
	return strings.TrimPrefix(strings.ToLower(filepath.Ext(name)), ".")
}

// BuildInvoiceData assembles the invoice snapshot for a draft booking:
// company, customer, cart, recomputed tax result, effective bill number,
// place of supply and the net amount in words.
func BuildInvoiceData(app *pocketbase.PocketBase, bookingID string) (*InvoiceData, error) {
	booking, err := app.FindRecordById("bookings", bookingID)
	if err != nil {
		return nil, &FetchError{Op: "load booking " + bookingID, Err: err}
	}

	cart, err := LoadCart(app, bookingID)
	if err != nil {
		return nil, err
	}

	var company CompanyInfo
	if companyID := booking.GetString("company"); companyID != "" {
		rec, err := app.FindRecordById("companies", companyID)
		if err != nil {
			log.Printf("booking: could not load company %s: %v", companyID, err)
		} else {
			company = CompanyInfoOf(rec)
			attachCompanyImages(app, rec, &company)
		}
	}

	customer := CustomerInfo{
		Name:      strings.TrimSpace(booking.GetString("customer_name")),
		Address:   strings.TrimSpace(booking.GetString("customer_address")),
		GSTIN:     strings.TrimSpace(booking.GetString("customer_gstin")),
		Place:     strings.TrimSpace(booking.GetString("customer_place")),
		StateCode: booking.GetString("customer_state_code"),
	}

	tax := TaxContextOf(booking)
	result := ComputeTax(cart, tax)

	words, err := AmountInWords(int64(result.NetAmount))
	if err != nil {
		return nil, fmt.Errorf("net amount %v: %w", result.NetAmount, err)
	}

	return &InvoiceData{
		Company:       company,
		Customer:      customer,
		BillNumber:    BillStateOf(booking).Effective(),
		Through:       booking.GetString("through"),
		Destination:   booking.GetString("destination"),
		IssueDate:     time.Now().Format(InvoiceDateLayout),
		PlaceOfSupply: PlaceOfSupply(app, customer.Place),
		Cart:          cart,
		Tax:           tax,
		Result:        result,
		TotalCases:    TotalCases(cart),
		AmountWords:   words,
	}, nil
}

// PlaceOfSupply renders "CODE - State Name" for the invoice. A blank place
// defaults to the home state; an unknown name is shown as typed.
func PlaceOfSupply(app *pocketbase.PocketBase, place string) string {
	if place == "" {
		return HomeStateCode + " - Tamil Nadu"
	}
	states, err := app.FindRecordsByFilter(
		"states",
		"state_name = {:name}",
		"",
		1,
		0,
		map[string]any{"name": place},
	)
	if err != nil || len(states) == 0 {
		return place
	}
	return states[0].GetString("code") + " - " + states[0].GetString("state_name")
}

// FinalizeBooking stores the generated invoice: the authoritative bill
// number, the computed tax breakdown, the PDF artifact and the customer
// history entry. The returned string is the bill number actually persisted,
// which may differ from the one requested. Store failures come back as a
// *PersistenceError.
func FinalizeBooking(app *pocketbase.PocketBase, booking *core.Record, data *InvoiceData, pdfBytes []byte) (string, error) {
	prefix := CompanyPrefix(data.Company.Name)
	billNo := ResolveBillNumber(app, data.BillNumber, prefix)

	pdfFile, err := filesystem.NewFileFromBytes(pdfBytes, billNo+".pdf")
	if err != nil {
		return "", &PersistenceError{Err: fmt.Errorf("attach pdf: %w", err)}
	}

	booking.Set("status", "saved")
	booking.Set("bill_no", billNo)
	booking.Set("suggested_bill_no", billNo)
	booking.Set("manual_bill_no", "")
	booking.Set("issued_date", data.IssueDate)
	booking.Set("subtotal", data.Result.Subtotal)
	booking.Set("packing_amount", data.Result.PackingAmount)
	booking.Set("extra_amount", data.Result.ExtraAmount)
	booking.Set("taxable_value", data.Result.TaxableValue)
	booking.Set("cgst_amount", data.Result.CGSTAmount)
	booking.Set("sgst_amount", data.Result.SGSTAmount)
	booking.Set("igst_amount", data.Result.IGSTAmount)
	booking.Set("net_amount", data.Result.NetAmount)
	booking.Set("pdf", pdfFile)

	if err := app.Save(booking); err != nil {
		return "", &PersistenceError{Err: err}
	}

	rememberCustomer(app, data.Customer)

	return billNo, nil
}

// rememberCustomer upserts the customer history entry used by the
// previous-customer picker. Failures only log; history is best effort.
func rememberCustomer(app *pocketbase.PocketBase, c CustomerInfo) {
	if c.Name == "" {
		return
	}

	existing, err := app.FindRecordsByFilter(
		"customers",
		"customer_name = {:name}",
		"",
		1,
		0,
		map[string]any{"name": c.Name},
	)
	if err != nil {
		log.Printf("booking: could not query customer history: %v", err)
		return
	}

	var rec *core.Record
	if len(existing) > 0 {
		rec = existing[0]
	} else {
		col, err := app.FindCollectionByNameOrId("customers")
		if err != nil {
			log.Printf("booking: could not find customers collection: %v", err)
			return
		}
		rec = core.NewRecord(col)
		rec.Set("customer_name", c.Name)
	}
	rec.Set("customer_address", c.Address)
	rec.Set("customer_gstin", c.GSTIN)
	rec.Set("customer_place", c.Place)
	rec.Set("customer_state_code", c.StateCode)
	if err := app.Save(rec); err != nil {
		log.Printf("booking: could not save customer history for %q: %v", c.Name, err)
	}
}

// ParseCasesOrOne enforces the caseCount >= 1 invariant on cart edits;
// blank or malformed input collapses to one case rather than erroring,
// matching the data entry leniency of the rest of the form.
func ParseCasesOrOne(raw string) int {
	n := int(math.Floor(ParseAmountOrZero(raw)))
	if n < 1 {
		return 1
	}
	return n
}
