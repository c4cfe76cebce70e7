// internal/parser/banks.go
package parser

import (
	"regexp"
	"strings"
)

var (
	nubankPurchaseRe = regexp.MustCompile(`(?i)Compra (?:de|no) R\$\s*([\d\.]+,\d{2}) aprovada em (.+?)(?: em \d{2}/\d{2}/\d{4}|\s+-\s+|$)`)
	nubankPixRe      = regexp.MustCompile(`(?i)Pix de R\$\s*([\d\.]+,\d{2}) (enviado para|recebido de) (.+)`)
	itauPurchaseRes  = []*regexp.Regexp{
		regexp.MustCompile(`(?i)Compra aprovada:\s*R\$\s*([\d\.]+,\d{2})\s*-\s*(.+?)(?:\s+no\s+|\s+na\s+|\s+Cart[aã]o|$)`),
		regexp.MustCompile(`(?i)Compra com cartão\s*R\$\s*([\d\.]+,\d{2})\s*-\s*(.+?)(?:\s+no\s+|\s+na\s+|\s+Cart[aã]o|$)`),
	}
	itauPixRe          = regexp.MustCompile(`(?i)Transferência PIX realizada:\s*R\$\s*([\d\.]+,\d{2})`)
	bradescoAmountRe   = regexp.MustCompile(`(?i)Valor:\s*R\$\s*([\d\.]+,\d{2})`)
	bradescoMerchantRe = regexp.MustCompile(`(?i)Estabelecimento:\s*(.+)`)
	interPurchaseRe    = regexp.MustCompile(`(?i)Compra aprovada de R\$\s*([\d\.]+,\d{2}) em (.+)`)
	btgPurchaseRe      = regexp.MustCompile(`(?i)Compra (?:aprovada|realizada):?\s*R\$\s*([\d\.]+,\d{2})\s*(?:em|no)\s*(.+?)(?:\s+-\s+Cart[aã]o|\s+-\s+|$)`)
	genericAmountRe    = regexp.MustCompile(`R\$\s*([\d\.]+,\d{2})`)
)

// purchaseResult builds the common shape shared by every card-purchase
// template: cleaned merchant, credit-card default payment method, and the
// shared field extractors run over the full body.
func purchaseResult(body, rawAmount, rawMerchant, reason string) (*ParsedTransaction, error) {
	amount, err := ParseAmount(rawAmount)
	if err != nil {
		return nil, err
	}
	result := &ParsedTransaction{
		Success:         true,
		Amount:          &amount,
		Merchant:        ptr(CleanMerchant(rawMerchant)),
		TransactionType: ptr(TypePurchase),
		PaymentMethod:   ptr(DetectPaymentMethod(body, MethodCreditCard)),
		TransactionDate: ParseDate(body),
		Reason:          reason,
	}
	if last4 := DetectCardLast4(body); last4 != "" {
		result.CardLast4 = &last4
	}
	if current, total, ok := ParseInstallments(body); ok {
		result.InstallmentsCurrent = &current
		result.InstallmentsTotal = &total
	}
	return result, nil
}

func parseNubankPurchase(body string) (*ParsedTransaction, error) {
	match := nubankPurchaseRe.FindStringSubmatch(body)
	if match == nil {
		return nil, nil
	}
	return purchaseResult(body, match[1], match[2], "Nubank compra")
}

func parseNubankPix(body string) (*ParsedTransaction, error) {
	match := nubankPixRe.FindStringSubmatch(body)
	if match == nil {
		return nil, nil
	}
	amount, err := ParseAmount(match[1])
	if err != nil {
		return nil, err
	}
	txType := TypePixIn
	if strings.Contains(strings.ToLower(match[2]), "enviado") {
		txType = TypePixOut
	}
	return &ParsedTransaction{
		Success:         true,
		Amount:          &amount,
		Merchant:        ptr(strings.TrimSpace(match[3])),
		TransactionType: &txType,
		PaymentMethod:   ptr(MethodPix),
		TransactionDate: ParseDate(body),
		Reason:          "Nubank Pix",
	}, nil
}

func parseItauPurchase(body string) (*ParsedTransaction, error) {
	for _, re := range itauPurchaseRes {
		if match := re.FindStringSubmatch(body); match != nil {
			return purchaseResult(body, match[1], match[2], "Itaú compra")
		}
	}
	return nil, nil
}

func parseItauPix(body string) (*ParsedTransaction, error) {
	match := itauPixRe.FindStringSubmatch(body)
	if match == nil {
		return nil, nil
	}
	amount, err := ParseAmount(match[1])
	if err != nil {
		return nil, err
	}
	return &ParsedTransaction{
		Success:         true,
		Amount:          &amount,
		TransactionType: ptr(TypePixOut),
		PaymentMethod:   ptr(MethodPix),
		TransactionDate: ParseDate(body),
		Reason:          "Itaú Pix",
	}, nil
}

func parseBradescoPurchase(body string) (*ParsedTransaction, error) {
	amountMatch := bradescoAmountRe.FindStringSubmatch(body)
	merchantMatch := bradescoMerchantRe.FindStringSubmatch(body)
	if amountMatch == nil || merchantMatch == nil {
		return nil, nil
	}
	return purchaseResult(body, amountMatch[1], merchantMatch[1], "Bradesco compra")
}

func parseBTGPurchase(body string) (*ParsedTransaction, error) {
	match := btgPurchaseRe.FindStringSubmatch(body)
	if match == nil {
		return nil, nil
	}
	return purchaseResult(body, match[1], match[2], "BTG compra")
}

func parseInterPurchase(body string) (*ParsedTransaction, error) {
	match := interPurchaseRe.FindStringSubmatch(body)
	if match == nil {
		return nil, nil
	}
	return purchaseResult(body, match[1], match[2], "Inter compra")
}

// parseGeneric is the fallback: any "R$ <amount>" anywhere in the body, no
// merchant, transaction type unknown.
func parseGeneric(body string) (*ParsedTransaction, error) {
	match := genericAmountRe.FindStringSubmatch(body)
	if match == nil {
		return nil, nil
	}
	amount, err := ParseAmount(match[1])
	if err != nil {
		return nil, err
	}
	result := &ParsedTransaction{
		Success:         true,
		Amount:          &amount,
		TransactionType: ptr(TypeUnknown),
		TransactionDate: ParseDate(body),
		Reason:          "Genérico",
	}
	if method := DetectPaymentMethod(body, ""); method != "" {
		result.PaymentMethod = &method
	}
	if last4 := DetectCardLast4(body); last4 != "" {
		result.CardLast4 = &last4
	}
	if current, total, ok := ParseInstallments(body); ok {
		result.InstallmentsCurrent = &current
		result.InstallmentsTotal = &total
	}
	return result, nil
}

func ptr[T any](v T) *T { return &v }
