package common

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

const (
	SOLDecimals = 9 // SOL has 9 decimals (lamports)
)

// LamportsToSOL converts lamports to SOL string without float precision loss
func LamportsToSOL(lamports uint64) string {
	return FormatWithDecimals(lamports, SOLDecimals)
}

// SOLToLamports converts SOL string to lamports without float precision loss
func SOLToLamports(sol string) (uint64, error) {
	return ParseWithDecimals(sol, SOLDecimals)
}

// FormatWithDecimals converts integer to decimal string by inserting decimal point
// Example: FormatWithDecimals(24981836, 9) = "0.024981836"
func FormatWithDecimals(value uint64, decimals int) string {
	s := fmt.Sprintf("%d", value)

	// Pad with leading zeros if needed
	for len(s) <= decimals {
		s = "0" + s
	}

	// Insert decimal point
	pos := len(s) - decimals
	return s[:pos] + "." + s[pos:]
}

// ParseWithDecimals converts decimal string to integer by removing decimal point
// Example: ParseWithDecimals("0.024981836", 9) = 24981836
func ParseWithDecimals(s string, decimals int) (uint64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, fmt.Errorf("empty string")
	}

	parts := strings.Split(s, ".")

	if len(parts) == 1 {
		// No decimal point - multiply by 10^decimals
		n, err := strconv.ParseUint(parts[0], 10, 64)
		if err != nil {
			return 0, err
		}
		for i := 0; i < decimals; i++ {
			if n > math.MaxUint64/10 {
				return 0, fmt.Errorf("value out of range: %s", s)
			}
			n *= 10
		}
		return n, nil
	}

	if len(parts) != 2 {
		return 0, fmt.Errorf("invalid decimal format")
	}

	whole := parts[0]
	frac := parts[1]

	// Pad or truncate fractional part to exact decimals
	if len(frac) < decimals {
		frac += strings.Repeat("0", decimals-len(frac))
	} else if len(frac) > decimals {
		frac = frac[:decimals]
	}

	// Combine and parse
	combined := whole + frac
	return strconv.ParseUint(combined, 10, 64)
}

// SumSOL adds SOL decimal string amounts without float precision loss.
func SumSOL(amounts ...string) (string, error) {
	var total uint64
	for _, a := range amounts {
		v, err := ParseWithDecimals(a, SOLDecimals)
		if err != nil {
			return "", fmt.Errorf("failed to parse amount '%s': %w", a, err)
		}
		total += v
	}
	return FormatWithDecimals(total, SOLDecimals), nil
}

// CompareSOLAmounts compares two SOL decimal string amounts without float precision loss.
// Returns: -1 if a < b, 0 if a == b, 1 if a > b, and error if parsing fails
func CompareSOLAmounts(a, b string) (int, error) {
	aVal, err := ParseWithDecimals(a, SOLDecimals)
	if err != nil {
		return 0, fmt.Errorf("failed to parse amount '%s': %w", a, err)
	}

	bVal, err := ParseWithDecimals(b, SOLDecimals)
	if err != nil {
		return 0, fmt.Errorf("failed to parse amount '%s': %w", b, err)
	}

	if aVal < bVal {
		return -1, nil
	}
	if aVal > bVal {
		return 1, nil
	}
	return 0, nil
}
