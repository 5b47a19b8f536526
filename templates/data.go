// Package templates holds the templ views and their data structs.
// Run `templ generate` to produce the *_templ.go files.
package templates

// CurrentStaff is the authenticated staff member carried through the
// request context.
type CurrentStaff struct {
	ID       string
	Username string
	Role     string
}

// IsAdmin reports whether the staff member holds the admin role.
func (s *CurrentStaff) IsAdmin() bool {
	return s != nil && s.Role == "admin"
}

// HeaderData feeds the top bar on every page.
type HeaderData struct {
	Staff *CurrentStaff
}

// SidebarData feeds the navigation sidebar. Links render according to the
// staff role; ActivePath highlights the current section.
type SidebarData struct {
	Staff        *CurrentStaff
	ActivePath   string
	ProductCount int
	BillingCount int
}

// LoginData feeds the login form, including the error shown on a failed
// attempt.
type LoginData struct {
	Username string
	Error    string
}

// CompanyFormData feeds the company profile form.
type CompanyFormData struct {
	ID           string
	CompanyName  string
	Address      string
	GSTIN        string
	Email        string
	BankName     string
	Branch       string
	AccountNo    string
	IFSCCode     string
	LogoURL      string
	SignatureURL string
	Errors       map[string]string
}

// CompanyListItem is one row on the company listing.
type CompanyListItem struct {
	ID          string
	CompanyName string
	GSTIN       string
	Email       string
}

// CompanyListData feeds the company listing page.
type CompanyListData struct {
	Companies []CompanyListItem
}

// ProductTypeOption is one entry in the product type dropdown.
type ProductTypeOption struct {
	ID       string
	Name     string
	Selected bool
}

// InventoryFormData feeds the product entry form.
type InventoryFormData struct {
	ProductTypes []ProductTypeOption
	ProductName  string
	HSNCode      string
	RatePerBox   string
	PerCase      string
	Errors       map[string]string
}

// ProductListItem is one row on the product listing.
type ProductListItem struct {
	ID          string
	ProductName string
	TypeName    string
	HSNCode     string
	RatePerBox  float64
	PerCase     int
}

// ProductListData feeds the product listing page.
type ProductListData struct {
	Products    []ProductListItem
	SearchQuery string
	TypeFilter  string
	Types       []ProductTypeOption
	TotalCount  int
	CanEdit     bool
}

// CompanyOption is one entry in the issuing company dropdown.
type CompanyOption struct {
	ID       string
	Name     string
	Selected bool
}

// CustomerOption is one entry in the previous-customer picker.
type CustomerOption struct {
	Name      string
	Address   string
	GSTIN     string
	Place     string
	StateCode string
}

// StateOption is one entry in the place-of-supply dropdown.
type StateOption struct {
	Code     string
	Name     string
	Selected bool
}

// CartRow is one line of the booking cart as rendered.
type CartRow struct {
	ID          string
	ProductName string
	HSNCode     string
	RatePerBox  float64
	Cases       int
	Amount      float64
}

// CartData feeds the cart table partial.
type CartData struct {
	BookingID string
	Rows      []CartRow
}

// SummaryData feeds the recomputed totals panel partial.
type SummaryData struct {
	BookingID      string
	Subtotal       float64
	PackingPercent float64
	PackingAmount  float64
	ExtraAmount    float64
	TaxableValue   float64
	IsInterstate   bool
	CGSTAmount     float64
	SGSTAmount     float64
	IGSTAmount     float64
	NetAmount      float64
	AmountWords    string
}

// BillNumberData feeds the bill number field partial: the suggestion, any
// manual override and the derived display state.
type BillNumberData struct {
	BookingID  string
	Suggested  string
	Manual     string
	Effective  string
	IsOverride bool
}

// BookingPageData feeds the booking composition page.
type BookingPageData struct {
	BookingID         string
	Companies         []CompanyOption
	Products          []ProductListItem
	Customers         []CustomerOption
	States            []StateOption
	CustomerName      string
	CustomerAddress   string
	CustomerGSTIN     string
	CustomerPlace     string
	CustomerStateCode string
	Through           string
	Destination       string
	PackingPercent    string
	ExtraTaxable      string
	IsInterstate      bool
	BillNumber        BillNumberData
	Cart              CartData
	Summary           SummaryData
}

// BillingListItem is one saved bill on the overall billings page.
type BillingListItem struct {
	ID           string
	BillNumber   string
	IssueDate    string
	CustomerName string
	Place        string
	NetAmount    float64
	HasPDF       bool
}

// BillingListData feeds the overall billings page.
type BillingListData struct {
	Billings    []BillingListItem
	SearchQuery string
	TotalCount  int
	TotalNet    float64
}
