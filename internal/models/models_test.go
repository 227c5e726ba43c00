package models

import (
	"testing"

	"github.com/shopspring/decimal"

	"github.com/crmkit/go-crm/internal/billing"
)

func TestUser_PasswordRoundTrip(t *testing.T) {
	u := &User{Username: "admin"}
	if err := u.SetPassword("admin123"); err != nil {
		t.Fatalf("SetPassword: %v", err)
	}
	if u.PasswordHash == "admin123" {
		t.Error("password stored in clear")
	}
	if !u.CheckPassword("admin123") {
		t.Error("correct password rejected")
	}
	if u.CheckPassword("wrong") {
		t.Error("wrong password accepted")
	}
}

func TestFollowUp_IsPending(t *testing.T) {
	fu := &FollowUp{Status: FollowUpStatusPending}
	if !fu.IsPending() {
		t.Error("pending follow-up reported as not pending")
	}
	fu.Status = FollowUpStatusCompleted
	if fu.IsPending() {
		t.Error("completed follow-up reported as pending")
	}
}

func TestInvoice_SummaryFromBlob(t *testing.T) {
	blob, err := billing.MarshalItems([]billing.LineItem{
		{Name: "Heater", Qty: 2, Price: decimal.RequireFromString("100.00")},
	})
	if err != nil {
		t.Fatal(err)
	}
	inv := &Invoice{ClientName: "Asha", Items: blob, TaxPercent: decimal.RequireFromString("18")}

	got := inv.Summary()
	if got.Subtotal.StringFixed(2) != "200.00" {
		t.Errorf("Subtotal = %s, want 200.00", got.Subtotal.StringFixed(2))
	}
	if got.TaxAmount.StringFixed(2) != "36.00" {
		t.Errorf("TaxAmount = %s, want 36.00", got.TaxAmount.StringFixed(2))
	}
	if got.Total.StringFixed(2) != "236.00" {
		t.Errorf("Total = %s, want 236.00", got.Total.StringFixed(2))
	}
}

func TestInvoice_SummaryDegradesOnCorruptBlob(t *testing.T) {
	inv := &Invoice{ClientName: "Asha", Items: "{corrupt", TaxPercent: decimal.RequireFromString("18")}

	if _, err := inv.LineItems(); err == nil {
		t.Fatal("LineItems() accepted corrupt blob")
	}
	got := inv.Summary()
	if !got.Total.IsZero() {
		t.Errorf("corrupt blob Total = %s, want 0", got.Total)
	}
}
