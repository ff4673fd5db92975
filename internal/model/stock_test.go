package model

import "testing"

func TestStockStatus(t *testing.T) {
	tests := []struct {
		quantity  int
		threshold int
		expected  string
	}{
		{0, 10, StockStatusOutOfStock},
		{-1, 10, StockStatusOutOfStock},
		{1, 10, StockStatusLowStock},
		{10, 10, StockStatusLowStock},
		{11, 10, StockStatusInStock},
		{100, 10, StockStatusInStock},
		// Zero threshold: anything positive is in stock.
		{1, 0, StockStatusInStock},
		{0, 0, StockStatusOutOfStock},
	}

	for _, tt := range tests {
		got := StockStatus(tt.quantity, tt.threshold)
		if got != tt.expected {
			t.Errorf("StockStatus(%d, %d) = %q, want %q", tt.quantity, tt.threshold, got, tt.expected)
		}
	}
}

func TestValidatePassword(t *testing.T) {
	tests := []struct {
		password string
		wantErr  bool
	}{
		{"", true},
		{"short", true},
		{"1234567", true},
		{"12345678", false},
		{"a-valid-password", false},
	}

	for _, tt := range tests {
		err := ValidatePassword(tt.password)
		if (err != nil) != tt.wantErr {
			t.Errorf("ValidatePassword(%q) error = %v, wantErr %v", tt.password, err, tt.wantErr)
		}
	}
}
