package usecase

import (
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/pricelens/backend/internal/domain"
)

// Package-level compiled regex patterns for performance
var (
	whitespaceRegex = regexp.MustCompile(`\s+`)
	quantityRegex   = regexp.MustCompile(`^(\d+(?:\.\d+)?)([a-z]+)$`)
)

// unitAlias maps a lower-cased unit token to its base unit and scale factor
type unitAlias struct {
	unit  domain.Unit
	scale float64
}

var unitAliases = map[string]unitAlias{
	// Volume
	"ml":          {domain.UnitMilliliter, 1},
	"milliliter":  {domain.UnitMilliliter, 1},
	"milliliters": {domain.UnitMilliliter, 1},
	"l":           {domain.UnitMilliliter, 1000},
	"lt":          {domain.UnitMilliliter, 1000},
	"liter":       {domain.UnitMilliliter, 1000},
	"litre":       {domain.UnitMilliliter, 1000},
	// Weight
	"g":     {domain.UnitGram, 1},
	"gram":  {domain.UnitGram, 1},
	"grams": {domain.UnitGram, 1},
	"kg":    {domain.UnitGram, 1000},
	// Count
	"pc":     {domain.UnitPiece, 1},
	"pcs":    {domain.UnitPiece, 1},
	"piece":  {domain.UnitPiece, 1},
	"pieces": {domain.UnitPiece, 1},
	"pack":   {domain.UnitPack, 1},
	"packs":  {domain.UnitPack, 1},
}

// Tolerances for quantity equivalence
const (
	countTolerance        = 0.5  // piece/pack values must round to the same integer
	relativeTolerance     = 0.02 // milliliter/gram values may differ by 2%
	absoluteToleranceUnit = 1.0  // ...but never less than one unit
)

// NormalizeQuantity parses free-text quantity into a canonical quantity.
// Returns false when the text does not describe a supported quantity;
// that is not an error, callers treat it as "unknown".
func NormalizeQuantity(raw string) (domain.Quantity, bool) {
	compact := strings.ToLower(whitespaceRegex.ReplaceAllString(raw, ""))
	if compact == "" {
		return domain.Quantity{}, false
	}

	matches := quantityRegex.FindStringSubmatch(compact)
	if matches == nil {
		return domain.Quantity{}, false
	}

	value, err := strconv.ParseFloat(matches[1], 64)
	if err != nil {
		return domain.Quantity{}, false
	}

	alias, ok := unitAliases[matches[2]]
	if !ok {
		return domain.Quantity{}, false
	}

	return domain.Quantity{Value: value * alias.scale, Unit: alias.unit}, true
}

// SameQuantity reports whether two raw quantities denote the same amount.
// If either side cannot be normalized the result is true: an unknown
// quantity passes the filter.
func SameQuantity(a, b string) bool {
	qa, okA := NormalizeQuantity(a)
	qb, okB := NormalizeQuantity(b)
	if !okA || !okB {
		return true
	}
	return EquivalentQuantities(qa, qb)
}

// EquivalentQuantities compares two canonical quantities under the
// unit-specific tolerance rules. Different units are never equivalent.
func EquivalentQuantities(a, b domain.Quantity) bool {
	if a.Unit != b.Unit {
		return false
	}

	diff := math.Abs(a.Value - b.Value)
	if a.Unit.IsCount() {
		return diff < countTolerance
	}

	allowed := math.Max(absoluteToleranceUnit, relativeTolerance*math.Max(a.Value, b.Value))
	return diff <= allowed
}
