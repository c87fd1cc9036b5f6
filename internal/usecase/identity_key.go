package usecase

import "github.com/pricelens/backend/internal/domain"

// IdentityKey is the case- and whitespace-insensitive projection of an item
// used to detect exact duplicates during find-or-create. Absent quantity and
// feature collapse to the empty string.
type IdentityKey struct {
	Name     string
	Brand    string
	Quantity string
	Feature  string
}

// KeyOf builds the identity key for an item description
func KeyOf(name, brand, quantity, feature string) IdentityKey {
	return IdentityKey{
		Name:     domain.FoldKey(name),
		Brand:    domain.FoldKey(brand),
		Quantity: domain.FoldKey(quantity),
		Feature:  domain.FoldKey(feature),
	}
}
