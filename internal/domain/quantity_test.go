package domain

import (
	"encoding/json"
	"errors"
	"testing"
)

func TestQuantityInput_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    string
		wantErr error
	}{
		{name: "free text", input: `"1.5L"`, want: "1.5L"},
		{name: "null", input: `null`, want: ""},
		{name: "structured decimal", input: `{"value":1.5,"unit":"L"}`, want: "1.5L"},
		{name: "structured exponent", input: `{"value":1e3,"unit":"ml"}`, want: "1000ml"},
		{name: "structured negative exponent", input: `{"value":2.5E-1,"unit":"kg"}`, want: "0.25kg"},
		{name: "structured string value", input: `{"value":"2","unit":"kg"}`, want: "2kg"},
		{name: "structured null value", input: `{"value":null,"unit":"pcs"}`, want: "pcs"},
		{name: "structured boolean value", input: `{"value":true,"unit":"ml"}`, wantErr: ErrInvalidRequest},
		{name: "bare number", input: `500`, wantErr: ErrInvalidRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var q QuantityInput
			err := json.Unmarshal([]byte(tt.input), &q)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("Unmarshal(%s) error = %v, want %v", tt.input, err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("Unmarshal(%s) unexpected error: %v", tt.input, err)
			}
			if q.Raw != tt.want {
				t.Errorf("Unmarshal(%s) = %q, want %q", tt.input, q.Raw, tt.want)
			}
		})
	}
}

func TestQuantityInput_InRequest(t *testing.T) {
	var req ResolveRequest
	body := `{"brand":"Acme","item":"Cola","quantity":{"value":1e3,"unit":"ml"}}`
	if err := json.Unmarshal([]byte(body), &req); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := req.Quantity.String(); got != "1000ml" {
		t.Errorf("Quantity = %q, want %q", got, "1000ml")
	}
}

func TestFoldKey(t *testing.T) {
	tests := []struct{ in, want string }{
		{"  Cola\t", "cola"},
		{"Äpfelsaft\n", "äpfelsaft"},
		{"ÖKO", "öko"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := FoldKey(tt.in); got != tt.want {
			t.Errorf("FoldKey(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
