// utils/validation.go
package utils

import (
	"regexp"
	"strings"
)

var imeiRegex = regexp.MustCompile(`^\d{15}$`)

// NormalizeIMEI strips spaces and dashes and reports whether the result is a
// valid 15-digit IMEI. The returned string is the canonical form to store.
func NormalizeIMEI(imei string) (string, bool) {
	cleaned := strings.ReplaceAll(imei, " ", "")
	cleaned = strings.ReplaceAll(cleaned, "-", "")
	return cleaned, imeiRegex.MatchString(cleaned)
}

// ValidateIMEI checks that an IMEI is exactly 15 digits
func ValidateIMEI(imei string) bool {
	_, ok := NormalizeIMEI(imei)
	return ok
}
