// SoberShot - Drink Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/sobershot

package catalog

import (
	"database/sql/driver"
	"testing"
)

func TestContainsPattern(t *testing.T) {
	tests := []struct {
		query string
		want  string
	}{
		{"", "%%"},
		{"Margarita", "%margarita%"},
		{"100%", `%100\%%`},
		{"snake_bite", `%snake\_bite%`},
		{`back\slash`, `%back\\slash%`},
		{"CRÈME", "%crème%"},
	}

	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			if got := containsPattern(tt.query, lowerText); got != tt.want {
				t.Errorf("containsPattern(%q) = %q, want %q", tt.query, got, tt.want)
			}
		})
	}
}

func TestFoldText(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Margarita", "margarita"},
		{"CRÈME BRÛLÉE", "crème brûlée"},
		{"ÉCLAIR", "éclair"},
		{"Straße", "strasse"},
		{"100% Agave", "100% agave"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := foldText(tt.in); got != tt.want {
				t.Errorf("foldText(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestCasefold(t *testing.T) {
	tests := []struct {
		name string
		arg  interface{}
		want interface{}
	}{
		{"string", "CRÈME", "crème"},
		{"bytes", []byte("BRÛLÉE"), "brûlée"},
		{"null", nil, nil},
		{"integer", int64(7), int64(7)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := casefold(nil, []driver.Value{tt.arg})
			if err != nil {
				t.Fatalf("casefold: %v", err)
			}
			if got != tt.want {
				t.Errorf("casefold(%v) = %v, want %v", tt.arg, got, tt.want)
			}
		})
	}
}

func TestRebindDollar(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"SELECT 1", "SELECT 1"},
		{"WHERE a = ?", "WHERE a = $1"},
		{"VALUES (?, ?, ?)", "VALUES ($1, $2, $3)"},
	}

	for _, tt := range tests {
		if got := rebindDollar(tt.in); got != tt.want {
			t.Errorf("rebindDollar(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestDecodeIngredients(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		wantLen int
		wantErr bool
	}{
		{"empty string", "", 0, false},
		{"json null", "null", 0, false},
		{"empty object", "{}", 0, false},
		{"two entries", `{"Gin":"2 oz","Tonic":"4 oz"}`, 2, false},
		{"malformed", `{"Gin":`, 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := decodeIngredients(tt.raw)
			if (err != nil) != tt.wantErr {
				t.Fatalf("err = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				return
			}
			if got == nil {
				t.Fatal("map is nil")
			}
			if len(got) != tt.wantLen {
				t.Errorf("len = %d, want %d", len(got), tt.wantLen)
			}
		})
	}
}
