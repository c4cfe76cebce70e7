// internal/parser/parser.go
package parser

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Transaction types produced by parsing.
const (
	TypePurchase = "purchase"
	TypePixIn    = "pix_in"
	TypePixOut   = "pix_out"
	TypeUnknown  = "unknown"
)

// Payment methods.
const (
	MethodCreditCard = "credit_card"
	MethodDebitCard  = "debit_card"
	MethodPix        = "pix"
	MethodBoleto     = "boleto"
)

// Known bank sources.
const (
	BankNubank   = "nubank"
	BankItau     = "itau"
	BankBradesco = "bradesco"
	BankBTG      = "btg"
	BankInter    = "inter"
)

const reasonUnrecognized = "Formato de email não reconhecido"

// EmailInput is a raw notification email as handed over by the ingestion side.
// MessageID is opaque here; it only matters for deduplication upstream.
type EmailInput struct {
	MessageID   string  `json:"message_id"`
	FromAddress string  `json:"from_address"`
	Subject     *string `json:"subject"`
	Body        string  `json:"body"`
	BankSource  *string `json:"bank_source"`
}

// ParsedTransaction is the structured result of parsing one email. Success
// false means no pattern matched; Reason explains what did (or did not) match.
type ParsedTransaction struct {
	Success             bool             `json:"success"`
	BankSource          *string          `json:"bank_source"`
	Amount              *decimal.Decimal `json:"amount"`
	Merchant            *string          `json:"merchant"`
	TransactionType     *string          `json:"transaction_type"`
	PaymentMethod       *string          `json:"payment_method"`
	CardLast4           *string          `json:"card_last4"`
	InstallmentsTotal   *int             `json:"installments_total"`
	InstallmentsCurrent *int             `json:"installments_current"`
	TransactionDate     *time.Time       `json:"transaction_date"`
	Description         *string          `json:"description"`
	Subject             *string          `json:"subject"`
	Reason              string           `json:"reason"`
}

type bankParser func(body string) (*ParsedTransaction, error)

func parsersFor(bank string) []bankParser {
	switch bank {
	case BankNubank:
		return []bankParser{parseNubankPurchase, parseNubankPix}
	case BankItau:
		return []bankParser{parseItauPurchase, parseItauPix}
	case BankBradesco:
		return []bankParser{parseBradescoPurchase}
	case BankBTG:
		return []bankParser{parseBTGPurchase}
	case BankInter:
		return []bankParser{parseInterPurchase}
	}
	return nil
}

// Parse runs the ordered parser list for the email's bank, falling back to the
// generic extractor and finally to an explicit failure result. Unrecognized
// input is a normal return value, not an error; the only error path is a
// captured numeral that fails decimal parsing, which indicates a pattern bug.
func Parse(email EmailInput) (ParsedTransaction, error) {
	bank := ""
	if email.BankSource != nil && *email.BankSource != "" {
		bank = *email.BankSource
	} else {
		bank = DetectBank(email.FromAddress, email.Subject)
	}

	var bankPtr *string
	if bank != "" {
		bankPtr = &bank
	}

	for _, parse := range parsersFor(bank) {
		result, err := parse(email.Body)
		if err != nil {
			return ParsedTransaction{}, err
		}
		if result != nil {
			result.BankSource = bankPtr
			result.Subject = email.Subject
			return *result, nil
		}
	}

	fallback, err := parseGeneric(email.Body)
	if err != nil {
		return ParsedTransaction{}, err
	}
	if fallback != nil {
		fallback.BankSource = bankPtr
		fallback.Subject = email.Subject
		return *fallback, nil
	}

	return ParsedTransaction{
		Success:    false,
		BankSource: bankPtr,
		Subject:    email.Subject,
		Reason:     reasonUnrecognized,
	}, nil
}

// DetectBank classifies the origin bank from sender address and subject using
// fixed substrings in priority order. Returns "" when nothing matches.
func DetectBank(fromAddress string, subject *string) string {
	haystack := fromAddress + " "
	if subject != nil {
		haystack += *subject
	}
	haystack = strings.ToLower(haystack)

	switch {
	case strings.Contains(haystack, "nubank"):
		return BankNubank
	case strings.Contains(haystack, "itau") || strings.Contains(haystack, "itaú"):
		return BankItau
	case strings.Contains(haystack, "bradesco"):
		return BankBradesco
	case strings.Contains(haystack, "btg"):
		return BankBTG
	case strings.Contains(haystack, "inter"):
		return BankInter
	}
	return ""
}
