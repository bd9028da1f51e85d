// Package status defines the closed set of wire status codes exchanged with
// the simulator client and classifies them into numeric bands. Codes travel
// as strings so vendor-specific or non-numeric extensions survive parsing;
// the band is always computed from the numeric value, never stored.
package status

import (
	"fmt"
	"strconv"
)

// Code is a wire status code. Known codes are enumerated below, but any
// string value is a valid Code; unknown values are preserved verbatim.
type Code string

const (
	// Success band [200,300)
	Success Code = "200"

	// Client-error band [400,500)
	BadRequest   Code = "400"
	Unauthorized Code = "401"
	NotFound     Code = "404"

	// Server-error band [500,600)
	ServerError Code = "500"

	// Simulator band [600,700)
	SimConnected    Code = "600"
	SimDisconnected Code = "601"
	SimLoading      Code = "602"
	SimDataError    Code = "603"

	// Custom band [900,1000), reserved for deployments to extend
	Custom Code = "900"
)

// Category is the numeric band a code falls into.
type Category string

const (
	CategorySuccess     Category = "success"
	CategoryClientError Category = "client-error"
	CategoryServerError Category = "server-error"
	CategorySimulator   Category = "simulator"
	CategoryCustom      Category = "custom"
	CategoryNone        Category = "none"
)

// descriptions holds the registered human-readable text for known codes.
var descriptions = map[Code]string{
	Success:         "Success",
	BadRequest:      "Bad request",
	Unauthorized:    "Unauthorized",
	NotFound:        "Not found",
	ServerError:     "Internal server error",
	SimConnected:    "Simulator connected",
	SimDisconnected: "Simulator disconnected",
	SimLoading:      "Simulator loading",
	SimDataError:    "Simulator data unavailable",
	Custom:          "Reserved for custom use",
}

// CategoryOf classifies a code by its numeric value alone. Non-numeric input
// and values outside every band yield CategoryNone. A code does not need to
// be a registered constant to have a category.
func CategoryOf(code Code) Category {
	n, err := strconv.Atoi(string(code))
	if err != nil {
		return CategoryNone
	}

	switch {
	case n >= 200 && n < 300:
		return CategorySuccess
	case n >= 400 && n < 500:
		return CategoryClientError
	case n >= 500 && n < 600:
		return CategoryServerError
	case n >= 600 && n < 700:
		return CategorySimulator
	case n >= 900 && n < 1000:
		return CategoryCustom
	default:
		return CategoryNone
	}
}

// IsKnown reports whether code exactly matches one of the enumerated
// constants. This is strictly narrower than having a category: "650" sits in
// the simulator band but is not a known code.
func IsKnown(code Code) bool {
	_, ok := descriptions[code]
	return ok
}

// Description returns the registered text for known codes. Unknown codes get
// a deterministic fallback that includes the literal code; it never fails.
func Description(code Code) string {
	if desc, ok := descriptions[code]; ok {
		return desc
	}
	return fmt.Sprintf("Unknown status code: %s", code)
}

// IsSuccess reports whether code falls in the success band.
func IsSuccess(code Code) bool {
	return CategoryOf(code) == CategorySuccess
}

// IsError reports whether code falls in the client-error or server-error band.
func IsError(code Code) bool {
	c := CategoryOf(code)
	return c == CategoryClientError || c == CategoryServerError
}

// IsSimulator reports whether code falls in the simulator band.
func IsSimulator(code Code) bool {
	return CategoryOf(code) == CategorySimulator
}

// Codes returns all registered codes in ascending order.
func Codes() []Code {
	out := make([]Code, 0, len(descriptions))
	for _, c := range []Code{
		Success,
		BadRequest,
		Unauthorized,
		NotFound,
		ServerError,
		SimConnected,
		SimDisconnected,
		SimLoading,
		SimDataError,
		Custom,
	} {
		out = append(out, c)
	}
	return out
}
