package utils

import (
	"errors"
	"strings"
)

var ErrorRecordNotFound = errors.New("record not found")

// connectivity failures get a dedicated classification so handlers can show
// a "check your network" message instead of a generic one.
var unavailablePatterns = []string{
	"network",
	"failed to fetch",
	"fetch failed",
	"connection refused",
	"no such host",
	"i/o timeout",
}

// IsUnavailableError reports whether err looks like the store or a vendor
// API being unreachable rather than an application-logic failure. Matching
// is message-pattern based and case-insensitive.
func IsUnavailableError(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	for _, p := range unavailablePatterns {
		if strings.Contains(msg, p) {
			return true
		}
	}
	return false
}
