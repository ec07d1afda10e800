// Package utils provides shared utility functions.
package utils

import (
	"fmt"
	"strconv"
	"strings"
)

// FormatBRL formats a number as Brazilian currency ("R$ 1.234,56").
func FormatBRL(amount float64) string {
	negative := amount < 0
	if negative {
		amount = -amount
	}

	// Format with 2 decimal places
	str := fmt.Sprintf("%.2f", amount)
	parts := strings.Split(str, ".")
	intPart := parts[0]
	decPart := parts[1]

	result := "R$ " + groupThousands(intPart) + "," + decPart
	if negative {
		result = "-" + result
	}
	return result
}

// groupThousands inserts dots every three digits from the right.
func groupThousands(s string) string {
	n := len(s)
	if n <= 3 {
		return s
	}

	result := s[n-3:]
	s = s[:n-3]
	for len(s) > 3 {
		result = s[len(s)-3:] + "." + result
		s = s[:len(s)-3]
	}
	return s + "." + result
}

// ParseBRL parses a currency cell into a number. It accepts both
// BRL-formatted cells ("R$ 1.234,56", thousands dots, decimal comma) and
// plain decimals ("1234.56"). Malformed cells parse to 0.
func ParseBRL(s string) float64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0
	}

	s = strings.ReplaceAll(s, "R$", "")
	s = strings.ReplaceAll(s, "\u00a0", "") // sheet exports use non-breaking spaces
	s = strings.ReplaceAll(s, " ", "")

	if strings.Contains(s, ",") {
		// BRL layout: dots are thousands separators
		s = strings.ReplaceAll(s, ".", "")
		s = strings.Replace(s, ",", ".", 1)
	}

	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return v
}

// FormatPnL formats a signed result with an explicit plus for gains.
func FormatPnL(pnl float64) string {
	formatted := FormatBRL(pnl)
	if pnl > 0 {
		return "+" + formatted
	}
	return formatted
}

// FormatPercent formats a percentage with sign.
func FormatPercent(value float64) string {
	sign := ""
	if value > 0 {
		sign = "+"
	}
	return fmt.Sprintf("%s%.2f%%", sign, value)
}
