// internal/parser/fields.go
package parser

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

var (
	dateFullRe     = regexp.MustCompile(`\d{2}/\d{2}/\d{4}`)
	dateShortRe    = regexp.MustCompile(`\d{2}/\d{2}`)
	installmentsRe = regexp.MustCompile(`(?i)(\d{1,2})\s*(?:/|de)\s*(\d{1,2})\s*(?:parcela|parcelas)`)

	cardLast4Res = []*regexp.Regexp{
		regexp.MustCompile(`(?i)final\s*(\d{4})`),
		regexp.MustCompile(`(?i)cart[aã]o\s*\*{2,4}\s*(\d{4})`),
		regexp.MustCompile(`\*{2,4}\s*(\d{4})`),
	}

	// Applied strictly in order: an earlier substitution can expose a suffix
	// that only a later rule strips.
	merchantCleanupRes = []*regexp.Regexp{
		regexp.MustCompile(`(?i)\s+-\s+cart[aã]o.*$`),
		regexp.MustCompile(`(?i)\s+cart[aã]o.*$`),
		regexp.MustCompile(`(?i)\s+no\s+.*$`),
		regexp.MustCompile(`(?i)\s+na\s+.*$`),
		regexp.MustCompile(`(?i)\s+em\s+\d{2}/\d{2}/\d{4}.*$`),
		regexp.MustCompile(`(?i)\s+-\s+.*$`),
	}
)

// ParseAmount converts a Brazilian-locale numeral ("1.234,56") to a decimal.
// Callers invoke it on regex captures that are numeric by construction, so a
// failure here is a pattern bug and is returned as a hard error.
func ParseAmount(value string) (decimal.Decimal, error) {
	cleaned := strings.TrimSpace(value)
	cleaned = strings.ReplaceAll(cleaned, ".", "")
	cleaned = strings.ReplaceAll(cleaned, ",", ".")
	amount, err := decimal.NewFromString(cleaned)
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("parse amount %q: %w", value, err)
	}
	return amount, nil
}

// ParseDate finds a dd/mm/yyyy date in the text. A bare dd/mm match is treated
// as not parseable: guessing the year would silently misdate transactions.
func ParseDate(text string) *time.Time {
	for _, re := range []*regexp.Regexp{dateFullRe, dateShortRe} {
		match := re.FindString(text)
		if match == "" {
			continue
		}
		if len(match) == 10 {
			date, err := time.Parse("02/01/2006", match)
			if err != nil {
				return nil
			}
			return &date
		}
	}
	return nil
}

// DetectPaymentMethod checks substrings in priority order and falls back to the
// caller-supplied default (empty string for none).
func DetectPaymentMethod(text, fallback string) string {
	haystack := strings.ToLower(text)
	switch {
	case strings.Contains(haystack, "pix"):
		return MethodPix
	case strings.Contains(haystack, "boleto"):
		return MethodBoleto
	case strings.Contains(haystack, "débito") || strings.Contains(haystack, "debito"):
		return MethodDebitCard
	case strings.Contains(haystack, "crédito") || strings.Contains(haystack, "credito") ||
		strings.Contains(haystack, "cartão") || strings.Contains(haystack, "cartao"):
		return MethodCreditCard
	}
	return fallback
}

// ParseInstallments matches "2/5 parcelas" or "2 de 5 parcela" style markers.
// A partial capture is never valid: either both values come back or neither.
func ParseInstallments(text string) (current, total int, ok bool) {
	match := installmentsRe.FindStringSubmatch(text)
	if match == nil {
		return 0, 0, false
	}
	current, _ = strconv.Atoi(match[1])
	total, _ = strconv.Atoi(match[2])
	return current, total, true
}

// DetectCardLast4 returns the card suffix digits, or "" when no pattern hits.
func DetectCardLast4(text string) string {
	for _, re := range cardLast4Res {
		if match := re.FindStringSubmatch(text); match != nil {
			return match[1]
		}
	}
	return ""
}

// CleanMerchant strips the qualifier phrases bank templates append after the
// merchant name ("no débito", "- cartão final 1234", trailing dates, ...).
func CleanMerchant(value string) string {
	cleaned := strings.TrimSpace(value)
	for _, re := range merchantCleanupRes {
		cleaned = re.ReplaceAllString(cleaned, "")
	}
	return strings.TrimSpace(cleaned)
}
