package message

import (
	"testing"

	"PaisaPulse/internal/domain/models"
)

func TestParseDebitUPI(t *testing.T) {
	p, ok := Parse("Rs. 5,000 debited via UPI for spent groceries")
	if !ok {
		t.Fatalf("expected parse ok")
	}
	if p.Amount != 5000 {
		t.Fatalf("unexpected amount %d", p.Amount)
	}
	if p.Direction != models.DirectionDebit {
		t.Fatalf("unexpected direction %s", p.Direction)
	}
	if p.Source != models.SourceUPI {
		t.Fatalf("unexpected source %s", p.Source)
	}
}

func TestParseCreditDefaultsToBank(t *testing.T) {
	p, ok := Parse("INR 42000 credited to your account - salary")
	if !ok {
		t.Fatalf("expected parse ok")
	}
	if p.Amount != 42000 {
		t.Fatalf("unexpected amount %d", p.Amount)
	}
	if p.Direction != models.DirectionCredit {
		t.Fatalf("unexpected direction %s", p.Direction)
	}
	if p.Source != models.SourceBank {
		t.Fatalf("unexpected source %s", p.Source)
	}
}

func TestParseRupeeSymbol(t *testing.T) {
	p, ok := Parse("₹1,200 spent on card at BigBasket")
	if !ok {
		t.Fatalf("expected parse ok")
	}
	if p.Amount != 1200 {
		t.Fatalf("unexpected amount %d", p.Amount)
	}
	if p.Source != models.SourceCard {
		t.Fatalf("unexpected source %s", p.Source)
	}
}

func TestParseNoAmount(t *testing.T) {
	if _, ok := Parse("Your OTP is 482913, do not share it"); ok {
		t.Fatalf("expected parse to fail for non-transaction text")
	}
}

func TestParseNoDirectionKeyword(t *testing.T) {
	p, ok := Parse("Rs 300 towards monthly plan")
	if !ok {
		t.Fatalf("expected parse ok")
	}
	if p.Direction != models.DirectionUnknown {
		t.Fatalf("unexpected direction %s", p.Direction)
	}
}

func TestClassify(t *testing.T) {
	cases := []struct {
		name string
		text string
		want models.Category
	}{
		{"credit is income", "Rs 42000 credited - salary", models.CategoryIncome},
		{"debit is expense", "Rs. 5,000 debited via UPI for spent groceries", models.CategoryExpense},
		{"self transfer", "Rs 2000 debited transfer to self account", models.CategoryTransfer},
		{"withdrawal", "Rs 500 debited ATM withdrawal", models.CategoryTransfer},
		{"no direction", "Rs 300 towards monthly plan", models.CategoryUnknown},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			p, ok := Parse(tc.text)
			if !ok {
				t.Fatalf("expected parse ok")
			}
			if got := Classify(p, tc.text); got != tc.want {
				t.Fatalf("got %s want %s", got, tc.want)
			}
		})
	}
}
