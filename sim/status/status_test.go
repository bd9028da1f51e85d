package status

import (
	"strings"
	"testing"
)

func TestCategoryOf(t *testing.T) {
	tests := []struct {
		code     Code
		expected Category
	}{
		{"200", CategorySuccess},
		{"299", CategorySuccess},
		{"404", CategoryClientError},
		{"499", CategoryClientError},
		{"500", CategoryServerError},
		{"599", CategoryServerError},
		{"600", CategorySimulator},
		{"650", CategorySimulator},
		{"699", CategorySimulator},
		{"900", CategoryCustom},
		{"999", CategoryCustom},
		{"150", CategoryNone},
		{"300", CategoryNone},
		{"399", CategoryNone},
		{"700", CategoryNone},
		{"1000", CategoryNone},
		{"-200", CategoryNone},
		{"", CategoryNone},
		{"abc", CategoryNone},
		{"6o1", CategoryNone},
	}

	for _, tt := range tests {
		if got := CategoryOf(tt.code); got != tt.expected {
			t.Errorf("CategoryOf(%q) = %q, want %q", tt.code, got, tt.expected)
		}
	}
}

func TestIsKnownNarrowerThanCategory(t *testing.T) {
	// "650" has a valid category but is not a registered constant.
	if CategoryOf("650") != CategorySimulator {
		t.Error("Expected 650 to classify as simulator")
	}
	if IsKnown("650") {
		t.Error("650 should not be a known code")
	}

	// Every registered code must classify into a real band.
	for _, code := range Codes() {
		if !IsKnown(code) {
			t.Errorf("Registered code %q not reported as known", code)
		}
		if CategoryOf(code) == CategoryNone {
			t.Errorf("Registered code %q has no category", code)
		}
	}
}

func TestDescription(t *testing.T) {
	if got := Description(SimDisconnected); got != "Simulator disconnected" {
		t.Errorf("Description(601) = %q, want %q", got, "Simulator disconnected")
	}

	if got := Description(SimConnected); got != "Simulator connected" {
		t.Errorf("Description(600) = %q, want %q", got, "Simulator connected")
	}

	// Unknown codes get a deterministic fallback containing the literal code.
	got := Description("737")
	if !strings.Contains(got, "737") {
		t.Errorf("Description for unknown code should include the code, got %q", got)
	}
	if got != "Unknown status code: 737" {
		t.Errorf("Description(737) = %q, want %q", got, "Unknown status code: 737")
	}

	// Non-numeric input never fails either.
	if got := Description("garbage"); got != "Unknown status code: garbage" {
		t.Errorf("Description(garbage) = %q", got)
	}
}

func TestPredicates(t *testing.T) {
	if !IsSuccess("200") {
		t.Error("200 should be success")
	}
	if IsSuccess("404") {
		t.Error("404 should not be success")
	}

	if !IsError("404") {
		t.Error("404 should be an error code")
	}
	if !IsError("500") {
		t.Error("500 should be an error code")
	}
	if IsError("601") {
		t.Error("601 should not be an error code")
	}

	if !IsSimulator("601") {
		t.Error("601 should be a simulator code")
	}
	if IsSimulator("200") {
		t.Error("200 should not be a simulator code")
	}
	if IsSimulator("not-a-code") {
		t.Error("Non-numeric codes should not be simulator codes")
	}
}
