package share

import (
	"strings"
	"testing"

	"github.com/shopspring/decimal"
)

func testLinker() *Linker {
	return NewLinker("https://wa.me", "91")
}

func TestNormalizePhone(t *testing.T) {
	tests := []struct {
		name  string
		phone string
		want  string
	}{
		{"ten local digits get country code", "9876543210", "919876543210"},
		{"international with plus and spaces", "+1 415 555 0100", "14155550100"},
		{"plus without spaces", "+447911123456", "447911123456"},
		{"formatted local number", "(987) 654-3210", "919876543210"},
		{"eleven digits used as is", "09876543210", "09876543210"},
		{"short number used as is", "12345", "12345"},
	}

	l := testLinker()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := l.NormalizePhone(tt.phone); got != tt.want {
				t.Errorf("NormalizePhone(%q) = %q, want %q", tt.phone, got, tt.want)
			}
		})
	}
}

func TestNormalizePhone_NonDigitNoise(t *testing.T) {
	l := testLinker()
	// Ten digits survive the stripping, so the prefix applies.
	if got := l.NormalizePhone("98-76-54-32-10"); got != "919876543210" {
		t.Errorf("got %q, want 919876543210", got)
	}
	// Garbage degrades to best effort, never an error.
	if got := l.NormalizePhone("call me maybe"); got != "" {
		t.Errorf("got %q, want empty", got)
	}
}

func TestNormalizePhone_CustomCountryCode(t *testing.T) {
	l := NewLinker("https://wa.me", "33")
	if got := l.NormalizePhone("0612345678"); got != "330612345678" {
		t.Errorf("got %q, want 330612345678", got)
	}
}

func TestQuotationLink(t *testing.T) {
	l := testLinker()
	link := l.QuotationLink(Quotation{
		ClientName:     "Asha",
		ClientPhone:    "9876543210",
		ProductName:    "Water Heater",
		ProductDetails: "20L storage",
		Price:          decimal.RequireFromString("4999.00"),
	})

	if !strings.HasPrefix(link, "https://wa.me/919876543210?text=") {
		t.Fatalf("unexpected link prefix: %s", link)
	}
	text := link[strings.Index(link, "?text=")+len("?text="):]
	wantLines := []string{
		"Hello Asha,",
		"Here is your quotation:",
		"Product: Water Heater",
		"Details: 20L storage",
		"Price: 4999.00",
	}
	if text != strings.Join(wantLines, "%0A") {
		t.Errorf("text = %q", text)
	}
}

func TestQuotationLink_EmptyDetailsPlaceholder(t *testing.T) {
	l := testLinker()
	link := l.QuotationLink(Quotation{
		ClientName:  "Asha",
		ClientPhone: "9876543210",
		ProductName: "Pipe",
		Price:       decimal.Zero,
	})
	if !strings.Contains(link, "Details: —") {
		t.Errorf("missing details placeholder in %s", link)
	}
}

func TestQuotationLink_CollapsesNewlines(t *testing.T) {
	l := testLinker()
	link := l.QuotationLink(Quotation{
		ClientName:     "Asha",
		ClientPhone:    "9876543210",
		ProductName:    "Heater",
		ProductDetails: "line one\nline two",
		Price:          decimal.Zero,
	})
	if strings.Contains(link, "\n") {
		t.Error("raw newline leaked into the link")
	}
	if !strings.Contains(link, "Details: line one line two") {
		t.Errorf("newline not collapsed to space: %s", link)
	}
	// Exactly four delimiters for the five fixed lines.
	if got := strings.Count(link, "%0A"); got != 4 {
		t.Errorf("delimiter count = %d, want 4", got)
	}
}
