package domain

import (
	"strings"
	"time"
)

// ItemRecord is a persisted catalogue entry. ID is immutable once assigned.
type ItemRecord struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Brand        string    `json:"brand"`
	Quantity     string    `json:"quantity,omitempty"`     // free text, e.g. "545ml"
	Feature      string    `json:"feature,omitempty"`      // comma-separated tags
	ProductColor string    `json:"productColor,omitempty"`
	PicWebsite   string    `json:"picWebsite,omitempty"`
	CreatedAt    time.Time `json:"createdAt,omitempty"`
}

// ResolveRequest is the wire form of a resolution query
type ResolveRequest struct {
	Brand            string         `json:"brand"`
	Item             string         `json:"item"`
	Quantity         *QuantityInput `json:"quantity,omitempty"`
	SelectedFeatures []string       `json:"selectedFeatures,omitempty"`
	StrictQty        bool           `json:"strictQty,omitempty"`
}

// ResolveResult is the outcome of narrowing the catalogue to a query
type ResolveResult struct {
	ExactID           *string      `json:"exactId"`
	SuggestedFeatures []string     `json:"suggestedFeatures"`
	Candidates        []ItemRecord `json:"candidates"`
}

// BatchRow is one raw item description submitted to find-or-create
type BatchRow struct {
	Name     string `json:"name" yaml:"name"`
	Brand    string `json:"brand" yaml:"brand"`
	Feature  string `json:"feature,omitempty" yaml:"feature,omitempty"`
	Quantity string `json:"quantity,omitempty" yaml:"quantity,omitempty"`
}

// BatchRequest wraps the rows of a find-or-create call
type BatchRequest struct {
	Rows []BatchRow `json:"rows"`
}

// BatchRowResult reports the outcome for the row at the same index
type BatchRowResult struct {
	OK      bool   `json:"ok"`
	ID      string `json:"id,omitempty"`
	Existed *bool  `json:"existed,omitempty"`
	Error   string `json:"error,omitempty"`
}

// BatchResponse is returned when the whole batch committed
type BatchResponse struct {
	Results []BatchRowResult `json:"results"`
}

// CreateItemRequest creates a catalogue item without a duplicate lookup
type CreateItemRequest struct {
	Name         string `json:"name"`
	Brand        string `json:"brand"`
	Quantity     string `json:"quantity,omitempty"`
	Feature      string `json:"feature,omitempty"`
	ProductColor string `json:"productColor,omitempty"`
	PicWebsite   string `json:"picWebsite,omitempty"`
}

// FoldKey is the case and whitespace folding applied to every identity
// field. Stores that compare in SQL must fold both sides the same way.
func FoldKey(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
