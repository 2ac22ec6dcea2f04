package match

import (
	"reflect"
	"testing"
)

func TestNormalizeIdent(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		// Basic cases
		{"OrderID", "orderid"},
		{"order_id", "orderid"},
		{"order-id", "orderid"},
		{"orderId", "orderid"},
		{"ORDERID", "orderid"},

		// CamelCase variations
		{"customerName", "customername"},
		{"CustomerName", "customername"},
		{"XMLParser", "xmlparser"},
		{"getHTTPResponse", "gethttpresponse"},

		// Path punctuation
		{"customer.address.city", "customeraddresscity"},
		{"items[*].id", "itemsid"},
		{"order.@currency", "ordercurrency"},
		{"$", ""},

		// Edge cases
		{"", ""},
		{"a", "a"},
		{"ID", "id"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			result := NormalizeIdent(tt.input)
			if result != tt.expected {
				t.Errorf("NormalizeIdent(%q) = %q, want %q", tt.input, result, tt.expected)
			}
		})
	}
}

func TestTokenizeIdent(t *testing.T) {
	tests := []struct {
		input    string
		expected []string
	}{
		{"OrderID", []string{"order", "id"}},
		{"customer_name", []string{"customer", "name"}},
		{"XMLParser", []string{"xml", "parser"}},
		{"items[*].unitPrice", []string{"items", "unit", "price"}},
		{"order.@currency", []string{"order", "currency"}},
		{"", nil},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			result := TokenizeIdent(tt.input)
			if !reflect.DeepEqual(result, tt.expected) {
				t.Errorf("TokenizeIdent(%q) = %v, want %v", tt.input, result, tt.expected)
			}
		})
	}
}

func TestSortedTokens(t *testing.T) {
	result := SortedTokens("NameFirst")
	expected := []string{"first", "name"}

	if !reflect.DeepEqual(result, expected) {
		t.Errorf("SortedTokens(%q) = %v, want %v", "NameFirst", result, expected)
	}
}
