package service

import (
	"strconv"
	"strings"

	"github.com/bompreco/pdv-api/internal/domain/entity"
	"github.com/bompreco/pdv-api/pkg/printer"
)

// nameColumns is the display width reserved for product names on a line.
const nameColumns = 20

// ReceiptProfile is the business identity printed on receipt headers.
type ReceiptProfile struct {
	StoreName string
	Location  string
}

// EncodeReceipt renders a sale into the ESC/POS control stream for an
// 80mm thermal printer. It is a pure function of its inputs: identical
// sale and items always produce byte-identical output. The receipt is a
// non-fiscal convenience document.
func EncodeReceipt(profile ReceiptProfile, sale *entity.Sale, items []entity.SaleItem) []byte {
	doc := printer.NewDocument(printer.Width80mm)

	// Header
	doc.SetAlign(printer.AlignCenter).
		SetBold(true).
		SetFontSize(printer.FontDouble).
		Text(profile.StoreName).
		SetFontSize(printer.FontNormal).
		SetBold(false).
		Text(profile.Location).
		TextF("Data: %s", sale.CreatedAt.Format("02/01/2006 15:04:05")).
		TextF("Venda: #%s", saleNumber(sale)).
		Separator('-')

	// Body
	doc.SetAlign(printer.AlignLeft).
		TextF("%-20s %-5s %-8s %10s", "ITEM", "QTD", "UN", "TOTAL").
		Separator('-')

	for _, item := range items {
		doc.SetAlign(printer.AlignLeft).
			Text(printer.TruncateName(item.ProductName(), nameColumns))
		doc.SetAlign(printer.AlignRight).
			TextF("   %s x %-8s = %s",
				printer.FormatQuantity(item.Quantity),
				printer.FormatMoney(item.UnitPrice),
				printer.FormatMoney(item.Subtotal))
	}

	// Footer
	doc.SetAlign(printer.AlignLeft).
		Separator('-').
		SetBold(true).
		SetFontSize(printer.FontDouble).
		TextF("TOTAL: %s", printer.FormatMoney(sale.Total)).
		SetFontSize(printer.FontNormal).
		SetBold(false).
		TextF("Pagamento: %s", strings.ToUpper(sale.PaymentMethod.String())).
		FeedLines(2).
		SetAlign(printer.AlignCenter).
		Text("Nao e documento fiscal").
		Text("Agradecemos a preferencia!").
		FeedLines(4).
		Cut()

	return doc.Bytes()
}

func saleNumber(sale *entity.Sale) string {
	if sale.Number <= 0 {
		return "???"
	}
	return strconv.FormatInt(sale.Number, 10)
}
