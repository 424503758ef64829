package id

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// Registry key prefixes, one per stored object type.
const (
	PrefixBalanceSheet  = "BS"
	PrefixIncome        = "IS"
	PrefixCashFlow      = "CF"
	PrefixSubsidiary    = "SUB"
	PrefixConsolidation = "CONS"
)

// New returns a registry key like "BS_0f8fad5b-...". UUIDs replace
// timestamp-granularity keys so rapid successive calls cannot collide.
func New(prefix string) string {
	return prefix + "_" + uuid.NewString()
}

// Prefix returns the type prefix of a registry key.
// "BS_0f8fad5b" -> "BS"
func Prefix(key string) string {
	i := strings.IndexByte(key, '_')
	if i < 0 {
		return key
	}
	return key[:i]
}

// Parse splits a registry key into prefix and suffix, validating shape.
func Parse(key string) (prefix, suffix string, err error) {
	i := strings.IndexByte(key, '_')
	if i <= 0 || i == len(key)-1 {
		return "", "", fmt.Errorf("invalid registry key format: %q", key)
	}
	return key[:i], key[i+1:], nil
}
