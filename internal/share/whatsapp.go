// Package share builds WhatsApp deep links that open a chat pre-filled
// with a quotation summary. Link building is best effort and never
// fails: a malformed phone number degrades to an unprefixed link.
package share

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Linker builds wa.me-style deep links. Both the base URL and the
// default country code come from configuration so deployments outside
// the default locale only change an environment variable.
type Linker struct {
	BaseURL     string
	CountryCode string
}

func NewLinker(baseURL, countryCode string) *Linker {
	return &Linker{BaseURL: strings.TrimRight(baseURL, "/"), CountryCode: countryCode}
}

// Quotation is the subset of a quotation needed to compose the message.
type Quotation struct {
	ClientName     string
	ClientPhone    string
	ProductName    string
	ProductDetails string
	Price          decimal.Decimal
}

// QuotationLink returns <base>/<normalized-phone>?text=<summary>.
// Lines are joined with the literal %0A so the messaging app renders
// them as newlines.
func (l *Linker) QuotationLink(q Quotation) string {
	details := q.ProductDetails
	if strings.TrimSpace(details) == "" {
		details = "—"
	}
	lines := []string{
		"Hello " + q.ClientName + ",",
		"Here is your quotation:",
		"Product: " + q.ProductName,
		"Details: " + details,
		"Price: " + q.Price.StringFixed(2),
	}
	for i, line := range lines {
		// Newlines inside a line would be ambiguous with the
		// delimiter scheme; collapse them to spaces first.
		lines[i] = strings.ReplaceAll(line, "\n", " ")
	}
	text := strings.Join(lines, "%0A")
	return l.BaseURL + "/" + l.NormalizePhone(q.ClientPhone) + "?text=" + text
}

// NormalizePhone prepares a phone number for the deep link:
//   - "+<country><number>" keeps its digits as supplied;
//   - a bare 10-digit local number gets the default country code;
//   - anything else is reduced to its digits and used as is.
func (l *Linker) NormalizePhone(phone string) string {
	phone = strings.TrimSpace(phone)
	if strings.HasPrefix(phone, "+") {
		return strings.ReplaceAll(phone[1:], " ", "")
	}
	digits := keepDigits(phone)
	if len(digits) == 10 {
		return l.CountryCode + digits
	}
	return digits
}

func keepDigits(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}
