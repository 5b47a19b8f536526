package services

import (
	"fmt"

	"github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/image"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/extension"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/orientation"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
)

// invoiceTableRows is the fixed number of body rows on the printed invoice;
// unused rows render blank so every bill has the same footprint.
const invoiceTableRows = 10

// GenerateInvoicePDF renders a tax invoice as an A4 PDF using maroto/v2.
// A *RenderError is returned when the document engine fails.
func GenerateInvoicePDF(data *InvoiceData) ([]byte, error) {
	cfg := config.NewBuilder().
		WithOrientation(orientation.Vertical).
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).
		WithTopMargin(10).
		WithRightMargin(10).
		Build()

	m := maroto.New(cfg)

	addInvoiceHeader(m, data)
	addInvoiceParties(m, data)
	addInvoiceItemsTable(m, data)
	addInvoiceTotals(m, data)
	addInvoiceAmountInWords(m, data)
	addInvoiceTermsAndSignature(m, data)

	doc, err := m.Generate()
	if err != nil {
		return nil, &RenderError{Err: fmt.Errorf("generate invoice PDF: %w", err)}
	}

	return doc.GetBytes(), nil
}

// addInvoiceHeader adds the centered company masthead: logo when one is
// stored, name, the two address lines, GSTIN and email.
func addInvoiceHeader(m core.Maroto, data *InvoiceData) {
	line1, line2 := SplitAddressLines(data.Company.Address)

	m.AddRows(
		row.New(10).Add(
			col.New(12).Add(
				text.New("TAX INVOICE", props.Text{
					Size:  9,
					Style: fontstyle.Bold,
					Align: align.Center,
					Color: &props.Color{Red: 100, Green: 100, Blue: 100},
				}),
			),
		),
	)

	if ext, ok := imageExtension(data.Company.LogoExt); ok && len(data.Company.Logo) > 0 {
		m.AddRows(
			row.New(16).Add(
				col.New(12).Add(
					image.NewFromBytes(data.Company.Logo, ext, props.Rect{
						Center:  true,
						Percent: 90,
					}),
				),
			),
		)
	}

	m.AddRows(
		row.New(10).Add(
			col.New(12).Add(
				text.New(data.Company.Name, props.Text{
					Size:  18,
					Style: fontstyle.Bold,
					Align: align.Center,
				}),
			),
		),
	)

	for _, line := range []string{line1, line2} {
		if line == "" {
			continue
		}
		m.AddRows(
			row.New(5).Add(
				col.New(12).Add(text.New(line, props.Text{Size: 9, Align: align.Center})),
			),
		)
	}

	m.AddRows(
		row.New(6).Add(
			col.New(12).Add(
				text.New(fmt.Sprintf("GSTIN: %s    Email: %s", data.Company.GSTIN, data.Company.Email), props.Text{
					Size:  8,
					Align: align.Center,
				}),
			),
		),
		row.New(3),
	)
}

// addInvoiceParties adds the customer block on the left and the bill
// metadata (number, date, through, cases, destination) on the right.
func addInvoiceParties(m core.Maroto, data *InvoiceData) {
	label := props.Text{
		Size:  7,
		Style: fontstyle.Bold,
		Align: align.Left,
		Color: &props.Color{Red: 100, Green: 100, Blue: 100},
	}
	value := props.Text{Size: 9, Align: align.Left}
	boldValue := props.Text{Size: 10, Style: fontstyle.Bold, Align: align.Left}

	customerName := data.Customer.Name
	if customerName == "" {
		customerName = "______________________"
	}

	destination := data.Destination
	if destination == "" {
		destination = data.Customer.Place
	}
	if destination == "" {
		destination = "__________"
	}

	m.AddRows(
		row.New(6).Add(
			col.New(7).Add(text.New("TO", label)),
			col.New(5).Add(text.New(fmt.Sprintf("No.: %s    Date: %s", data.BillNumber, data.IssueDate), boldValue)),
		),
		row.New(6).Add(
			col.New(7).Add(text.New(customerName, boldValue)),
			col.New(5).Add(text.New(fmt.Sprintf("Through: %s", data.Through), value)),
		),
		row.New(6).Add(
			col.New(7).Add(text.New(data.Customer.Address, value)),
			col.New(5).Add(text.New(fmt.Sprintf("No. of Cases: %d Cases", data.TotalCases), value)),
		),
		row.New(6).Add(
			col.New(7).Add(text.New(fmt.Sprintf("GSTIN: %s", orDashes(data.Customer.GSTIN)), value)),
			col.New(5).Add(text.New(fmt.Sprintf("Destination: %s", destination), value)),
		),
		row.New(6).Add(
			col.New(7).Add(text.New(fmt.Sprintf("Place of Supply: %s", data.PlaceOfSupply), value)),
		),
		row.New(3),
	)
}

// addInvoiceItemsTable adds the line items table, padded with blank rows up
// to the fixed invoice length.
func addInvoiceItemsTable(m core.Maroto, data *InvoiceData) {
	headerBg := &props.Color{Red: 241, Green: 241, Blue: 241}
	headerCell := props.Cell{BackgroundColor: headerBg}
	headerText := props.Text{Size: 7, Style: fontstyle.Bold, Align: align.Center}

	m.AddRows(
		row.New(8).Add(
			col.New(5).Add(text.New(fmt.Sprintf("PRODUCT NAME  (HSN: %s)", DefaultHSNCode), headerText)).WithStyle(&headerCell),
			col.New(1).Add(text.New("CASES", headerText)).WithStyle(&headerCell),
			col.New(2).Add(text.New("QUANTITY", headerText)).WithStyle(&headerCell),
			col.New(2).Add(text.New("RATE PER", headerText)).WithStyle(&headerCell),
			col.New(2).Add(text.New("AMOUNT", headerText)).WithStyle(&headerCell),
		),
	)

	altBg := &props.Color{Red: 248, Green: 249, Blue: 250}
	bodyText := props.Text{Size: 8, Align: align.Center}
	bodyTextLeft := props.Text{Size: 8, Align: align.Left}
	bodyTextRight := props.Text{Size: 8, Align: align.Right}

	for i := 0; i < invoiceTableRows || i < len(data.Cart); i++ {
		name, cases, qty, rate, amount := "", "", "", "", ""
		if i < len(data.Cart) {
			item := data.Cart[i]
			name = item.ProductName
			cases = fmt.Sprintf("%d", item.Cases)
			qty = fmt.Sprintf("%d Case", item.Cases)
			rate = FormatAmount(item.RatePerBox)
			amount = FormatAmount(item.Amount())
		}

		var cellStyle *props.Cell
		if i%2 == 1 {
			cellStyle = &props.Cell{BackgroundColor: altBg}
		}

		colName := col.New(5).Add(text.New(name, bodyTextLeft))
		colCases := col.New(1).Add(text.New(cases, bodyText))
		colQty := col.New(2).Add(text.New(qty, bodyText))
		colRate := col.New(2).Add(text.New(rate, bodyTextRight))
		colAmount := col.New(2).Add(text.New(amount, bodyTextRight))

		if cellStyle != nil {
			colName = colName.WithStyle(cellStyle)
			colCases = colCases.WithStyle(cellStyle)
			colQty = colQty.WithStyle(cellStyle)
			colRate = colRate.WithStyle(cellStyle)
			colAmount = colAmount.WithStyle(cellStyle)
		}

		m.AddRows(row.New(6).Add(colName, colCases, colQty, colRate, colAmount))
	}

	m.AddRows(row.New(2))
}

// addInvoiceTotals adds bank details on the left and the tax breakdown on
// the right. CGST/SGST rows appear only on intrastate bills, the IGST row
// only on interstate ones.
func addInvoiceTotals(m core.Maroto, data *InvoiceData) {
	label := props.Text{Size: 8, Align: align.Left}
	labelBold := props.Text{Size: 8, Style: fontstyle.Bold, Align: align.Left}
	amountStyle := props.Text{Size: 8, Align: align.Right}

	type totalRow struct {
		label  string
		amount float64
	}
	rows := []totalRow{
		{"Total", data.Result.Subtotal},
		{fmt.Sprintf("Packing (%s%%)", FormatAmount(data.Tax.PackingPercent)), data.Result.PackingAmount},
		{"Taxable Value", data.Result.TaxableValue},
	}
	if data.Tax.IsInterstate {
		rows = append(rows, totalRow{"IGST 18%", data.Result.IGSTAmount})
	} else {
		rows = append(rows,
			totalRow{"CGST 9%", data.Result.CGSTAmount},
			totalRow{"SGST 9%", data.Result.SGSTAmount},
		)
	}

	bank := []string{
		fmt.Sprintf("Total Cases: %d", data.TotalCases),
		"Our Bank Account:",
		fmt.Sprintf("Bank: %s", data.Company.BankName),
		fmt.Sprintf("Branch: %s", data.Company.Branch),
		fmt.Sprintf("A/c No.: %s", data.Company.AccountNo),
		fmt.Sprintf("IFSC: %s", data.Company.IFSCCode),
	}

	lines := len(rows) + 1
	if len(bank) > lines {
		lines = len(bank)
	}
	for i := 0; i < lines; i++ {
		left := ""
		if i < len(bank) {
			left = bank[i]
		}
		leftStyle := label
		if i <= 1 {
			leftStyle = labelBold
		}

		if i < len(rows) {
			m.AddRows(
				row.New(5).Add(
					col.New(7).Add(text.New(left, leftStyle)),
					col.New(3).Add(text.New(rows[i].label, label)),
					col.New(2).Add(text.New(FormatAmount(rows[i].amount), amountStyle)),
				),
			)
		} else if i == len(rows) {
			grand := props.Text{Size: 9, Style: fontstyle.Bold, Align: align.Left}
			grandAmount := props.Text{Size: 9, Style: fontstyle.Bold, Align: align.Right}
			m.AddRows(
				row.New(6).Add(
					col.New(7).Add(text.New(left, leftStyle)),
					col.New(3).Add(text.New("NET AMOUNT", grand)),
					col.New(2).Add(text.New(FormatAmount(data.Result.NetAmount), grandAmount)),
				),
			)
		} else {
			m.AddRows(row.New(5).Add(col.New(12).Add(text.New(left, leftStyle))))
		}
	}

	m.AddRows(row.New(3))
}

// addInvoiceAmountInWords adds the centered amount-in-words band.
func addInvoiceAmountInWords(m core.Maroto, data *InvoiceData) {
	m.AddRows(
		row.New(8).Add(
			col.New(12).Add(
				text.New(fmt.Sprintf("Rupees %s", data.AmountWords), props.Text{
					Size:  9,
					Style: fontstyle.Bold,
					Align: align.Center,
				}),
			),
		),
		row.New(3),
	)
}

// addInvoiceTermsAndSignature adds the fixed terms block and the signatory
// line for the issuing company.
func addInvoiceTermsAndSignature(m core.Maroto, data *InvoiceData) {
	termLabel := props.Text{Size: 8, Style: fontstyle.Bold, Align: align.Left}
	term := props.Text{Size: 8, Align: align.Left}
	signText := props.Text{Size: 9, Align: align.Center}

	terms := []string{
		"- Goods once sold cannot be taken back",
		"- We are not responsible for damage / shortage",
		"- Subject to SIVAKASI jurisdiction",
		"- E.&O.E.",
	}

	m.AddRows(
		row.New(6).Add(
			col.New(7).Add(text.New("TERMS & CONDITIONS:", termLabel)),
			col.New(5).Add(text.New(fmt.Sprintf("For %s", data.Company.Name), signText)),
		),
	)

	if ext, ok := imageExtension(data.Company.SignatureExt); ok && len(data.Company.Signature) > 0 {
		m.AddRows(
			row.New(14).Add(
				col.New(7),
				col.New(5).Add(
					image.NewFromBytes(data.Company.Signature, ext, props.Rect{
						Center:  true,
						Percent: 70,
					}),
				),
			),
		)
	}

	for i, t := range terms {
		right := ""
		if i == len(terms)-1 {
			right = "Partner / Manager"
		}
		m.AddRows(
			row.New(5).Add(
				col.New(7).Add(text.New(t, term)),
				col.New(5).Add(text.New(right, props.Text{Size: 9, Style: fontstyle.Bold, Align: align.Center})),
			),
		)
	}
}

// imageExtension maps a stored file extension onto the document engine's
// type. Unsupported formats report false and the image is skipped.
func imageExtension(ext string) (extension.Type, bool) {
	switch ext {
	case "png":
		return extension.Png, true
	case "jpg", "jpeg":
		return extension.Jpg, true
	default:
		return "", false
	}
}

// orDashes substitutes the printed placeholder for missing values.
func orDashes(v string) string {
	if v == "" {
		return "---"
	}
	return v
}
