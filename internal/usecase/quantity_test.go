package usecase

import (
	"testing"

	"github.com/pricelens/backend/internal/domain"
)

func TestNormalizeQuantity(t *testing.T) {
	tests := []struct {
		name   string
		raw    string
		want   domain.Quantity
		wantOK bool
	}{
		{name: "milliliters", raw: "545ml", want: domain.Quantity{Value: 545, Unit: domain.UnitMilliliter}, wantOK: true},
		{name: "liters with space and case", raw: "1.5 L", want: domain.Quantity{Value: 1500, Unit: domain.UnitMilliliter}, wantOK: true},
		{name: "lt alias", raw: "2lt", want: domain.Quantity{Value: 2000, Unit: domain.UnitMilliliter}, wantOK: true},
		{name: "liter alias", raw: "1 liter", want: domain.Quantity{Value: 1000, Unit: domain.UnitMilliliter}, wantOK: true},
		{name: "litre alias", raw: "0.75 Litre", want: domain.Quantity{Value: 750, Unit: domain.UnitMilliliter}, wantOK: true},
		{name: "grams", raw: "250g", want: domain.Quantity{Value: 250, Unit: domain.UnitGram}, wantOK: true},
		{name: "kilograms", raw: "1.2kg", want: domain.Quantity{Value: 1200, Unit: domain.UnitGram}, wantOK: true},
		{name: "pieces", raw: "6 pcs", want: domain.Quantity{Value: 6, Unit: domain.UnitPiece}, wantOK: true},
		{name: "single piece", raw: "1pc", want: domain.Quantity{Value: 1, Unit: domain.UnitPiece}, wantOK: true},
		{name: "pack", raw: "3 Packs", want: domain.Quantity{Value: 3, Unit: domain.UnitPack}, wantOK: true},
		{name: "inner whitespace removed", raw: " 1 . 5 l ", want: domain.Quantity{Value: 1500, Unit: domain.UnitMilliliter}, wantOK: true},
		{name: "empty", raw: "", wantOK: false},
		{name: "whitespace only", raw: "   ", wantOK: false},
		{name: "unknown unit", raw: "12oz", wantOK: false},
		{name: "no number", raw: "ml", wantOK: false},
		{name: "no unit", raw: "500", wantOK: false},
		{name: "comma decimal", raw: "1,5l", wantOK: false},
		{name: "negative", raw: "-5ml", wantOK: false},
		{name: "trailing dot", raw: "5.ml", wantOK: false},
		{name: "free text", raw: "large bottle", wantOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := NormalizeQuantity(tt.raw)
			if ok != tt.wantOK {
				t.Fatalf("NormalizeQuantity(%q) ok = %v, want %v", tt.raw, ok, tt.wantOK)
			}
			if ok && got != tt.want {
				t.Errorf("NormalizeQuantity(%q) = %+v, want %+v", tt.raw, got, tt.want)
			}
		})
	}
}

func TestNormalizeQuantity_RoundTrip(t *testing.T) {
	for alias := range unitAliases {
		raw := "2" + alias
		first, ok := NormalizeQuantity(raw)
		if !ok {
			t.Errorf("NormalizeQuantity(%q) failed", raw)
			continue
		}
		second, ok := NormalizeQuantity(first.String())
		if !ok || second != first {
			t.Errorf("re-normalizing %q: got %+v (ok=%v), want %+v", first.String(), second, ok, first)
		}
	}
}

func TestEquivalentQuantities(t *testing.T) {
	ml := func(v float64) domain.Quantity { return domain.Quantity{Value: v, Unit: domain.UnitMilliliter} }
	g := func(v float64) domain.Quantity { return domain.Quantity{Value: v, Unit: domain.UnitGram} }
	pc := func(v float64) domain.Quantity { return domain.Quantity{Value: v, Unit: domain.UnitPiece} }

	tests := []struct {
		name string
		a, b domain.Quantity
		want bool
	}{
		{name: "identical", a: ml(500), b: ml(500), want: true},
		{name: "within two percent", a: ml(100), b: ml(102), want: true},
		{name: "beyond two percent", a: ml(100), b: ml(104), want: false},
		{name: "absolute floor of one unit", a: g(10), b: g(11), want: true},
		{name: "beyond absolute floor", a: g(10), b: g(11.5), want: false},
		{name: "large values scale", a: g(1000), b: g(1020), want: true},
		{name: "different units", a: ml(500), b: g(500), want: false},
		{name: "count exact", a: pc(6), b: pc(6), want: true},
		{name: "count off by one", a: pc(6), b: pc(7), want: false},
		{name: "count within half", a: pc(6), b: pc(6.4), want: true},
		{name: "count at half", a: pc(6), b: pc(6.5), want: false},
		{name: "piece vs pack", a: pc(1), b: domain.Quantity{Value: 1, Unit: domain.UnitPack}, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := EquivalentQuantities(tt.a, tt.b); got != tt.want {
				t.Errorf("EquivalentQuantities(%v, %v) = %v, want %v", tt.a, tt.b, got, tt.want)
			}
			if got := EquivalentQuantities(tt.b, tt.a); got != tt.want {
				t.Errorf("EquivalentQuantities(%v, %v) = %v, want %v (symmetry)", tt.b, tt.a, got, tt.want)
			}
		})
	}
}

func TestSameQuantity(t *testing.T) {
	tests := []struct {
		name string
		a, b string
		want bool
	}{
		{name: "liters vs milliliters", a: "1L", b: "1000ml", want: true},
		{name: "kilograms vs grams", a: "1.5kg", b: "1500 g", want: true},
		{name: "tolerance", a: "100ml", b: "102ml", want: true},
		{name: "out of tolerance", a: "100ml", b: "104ml", want: false},
		{name: "pieces differ", a: "6pcs", b: "7pcs", want: false},
		{name: "cross unit", a: "500ml", b: "500g", want: false},
		{name: "unknown left passes", a: "family size", b: "500ml", want: true},
		{name: "unknown right passes", a: "500ml", b: "", want: true},
		{name: "both unknown pass", a: "big", b: "small", want: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SameQuantity(tt.a, tt.b); got != tt.want {
				t.Errorf("SameQuantity(%q, %q) = %v, want %v", tt.a, tt.b, got, tt.want)
			}
			if got := SameQuantity(tt.b, tt.a); got != tt.want {
				t.Errorf("SameQuantity(%q, %q) = %v, want %v (symmetry)", tt.b, tt.a, got, tt.want)
			}
		})
	}
}
