package extract

// Package extract locates payment redirect URLs and booking identifiers in
// responses whose shape is not stable across server versions. Each lookup is
// an ordered list of candidate JMESPath expressions (and header names)
// evaluated in fixed priority order; the first usable match wins. This is a
// compatibility shim for an unstable upstream contract, not a general query
// layer.

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/url"
	"strings"

	jmespath "github.com/jmespath-community/go-jmespath"
)

var (
	redirectURLExprs = []string{"sessionUrl", "url", "checkoutUrl"}
	bookingIDExprs   = []string{"bookingId", "paymentId"}

	// The reuse candidate is always the first pending entry; the server
	// orders the listing most-relevant first.
	pendingReuseExprs = []string{"[0].bookingId", "[0].id", "[0].bookingIdString", "[0].paymentId"}

	redirectHeaderNames  = []string{"Location", "X-Session-Url", "X-Checkout-Url"}
	bookingIDHeaderNames = []string{"X-Booking-Id", "X-Payment-Id"}
)

// RedirectURL returns the payment redirect target announced in the booking
// response body or headers, or "" when none is present. Only absolute
// http(s) URLs are usable as redirect targets.
func RedirectURL(body []byte, header http.Header) string {
	if u := searchBody(body, redirectURLExprs, IsAbsoluteHTTPURL); u != "" {
		return u
	}
	return searchHeader(header, redirectHeaderNames, IsAbsoluteHTTPURL)
}

// PaymentRedirectURL returns the redirect target of a payment-initialization
// response body, or "" when the body carries no usable URL.
func PaymentRedirectURL(body []byte) string {
	return searchBody(body, redirectURLExprs, IsAbsoluteHTTPURL)
}

// BookingID returns the booking/payment identifier announced in the booking
// response body or headers, or "" when none is present.
func BookingID(body []byte, header http.Header) string {
	if id := searchBody(body, bookingIDExprs, nonEmpty); id != "" {
		return id
	}
	return searchHeader(header, bookingIDHeaderNames, nonEmpty)
}

// PendingReuseID returns the identifier of the first entry of a
// pending-bookings listing, or "" when the list is empty or unusable.
func PendingReuseID(body []byte) string {
	return searchBody(body, pendingReuseExprs, nonEmpty)
}

// IsAbsoluteHTTPURL reports whether s is an absolute http or https URL.
func IsAbsoluteHTTPURL(s string) bool {
	u, err := url.Parse(s)
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}

func nonEmpty(s string) bool { return s != "" }

// searchBody evaluates the candidate expressions against the decoded body in
// priority order and returns the first match accepted by usable.
func searchBody(body []byte, exprs []string, usable func(string) bool) string {
	if len(bytes.TrimSpace(body)) == 0 {
		return ""
	}

	dec := json.NewDecoder(bytes.NewReader(body))
	dec.UseNumber()
	var data any
	if err := dec.Decode(&data); err != nil {
		return ""
	}

	for _, expr := range exprs {
		res, err := jmespath.Search(expr, data)
		if err != nil {
			continue
		}
		if s := stringValue(res); s != "" && usable(s) {
			return s
		}
	}
	return ""
}

func searchHeader(header http.Header, names []string, usable func(string) bool) string {
	for _, name := range names {
		if v := strings.TrimSpace(header.Get(name)); v != "" && usable(v) {
			return v
		}
	}
	return ""
}

// stringValue renders a matched scalar as a string. Identifiers arrive as
// JSON strings or numbers depending on server version.
func stringValue(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case json.Number:
		return t.String()
	default:
		return ""
	}
}
