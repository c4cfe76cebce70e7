// internal/parser/parser_test.go
package parser

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func strPtr(s string) *string { return &s }

func TestDetectBank(t *testing.T) {
	tests := []struct {
		name    string
		from    string
		subject *string
		want    string
	}{
		{"nubank address", "todomundo@nubank.com.br", nil, BankNubank},
		{"itau address", "itau@itau-unibanco.com.br", nil, BankItau},
		{"itau accented subject", "alerta@banco.com.br", strPtr("Itaú: compra aprovada"), BankItau},
		{"bradesco address", "noreply@bradesco.com.br", nil, BankBradesco},
		{"btg address", "cartoes@btgpactual.com", nil, BankBTG},
		{"inter address", "naoresponda@bancointer.com.br", nil, BankInter},
		{"nubank beats inter", "nubank@inter.com", nil, BankNubank},
		{"unknown sender", "newsletter@example.com", strPtr("Oferta"), ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DetectBank(tt.from, tt.subject); got != tt.want {
				t.Errorf("DetectBank(%q) = %q, want %q", tt.from, got, tt.want)
			}
		})
	}
}

func TestParseNubankPurchase(t *testing.T) {
	result, err := Parse(EmailInput{
		MessageID:   "1",
		FromAddress: "todomundo@nubank.com.br",
		Subject:     strPtr("Compra aprovada"),
		Body:        "Compra de R$ 123,45 aprovada em PADARIA CENTRAL em 03/02/2026 no crédito 2/5 parcelas - cartão final 1234",
	})
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}
	if !result.Success {
		t.Fatalf("expected success, got reason %q", result.Reason)
	}
	if result.Reason != "Nubank compra" {
		t.Errorf("reason = %q", result.Reason)
	}
	if !result.Amount.Equal(decimal.RequireFromString("123.45")) {
		t.Errorf("amount = %s, want 123.45", result.Amount)
	}
	if *result.Merchant != "PADARIA CENTRAL" {
		t.Errorf("merchant = %q", *result.Merchant)
	}
	if *result.TransactionType != TypePurchase {
		t.Errorf("transaction type = %q", *result.TransactionType)
	}
	if *result.PaymentMethod != MethodCreditCard {
		t.Errorf("payment method = %q", *result.PaymentMethod)
	}
	if *result.InstallmentsCurrent != 2 || *result.InstallmentsTotal != 5 {
		t.Errorf("installments = %d/%d, want 2/5", *result.InstallmentsCurrent, *result.InstallmentsTotal)
	}
	if *result.CardLast4 != "1234" {
		t.Errorf("card last4 = %q", *result.CardLast4)
	}
	wantDate := time.Date(2026, 2, 3, 0, 0, 0, 0, time.UTC)
	if result.TransactionDate == nil || !result.TransactionDate.Equal(wantDate) {
		t.Errorf("transaction date = %v, want %v", result.TransactionDate, wantDate)
	}
	if result.BankSource == nil || *result.BankSource != BankNubank {
		t.Errorf("bank source = %v, want nubank", result.BankSource)
	}
}

func TestParseNubankPixSent(t *testing.T) {
	result, err := Parse(EmailInput{
		MessageID:   "2",
		FromAddress: "todomundo@nubank.com.br",
		Subject:     strPtr("Pix enviado"),
		Body:        "Pix de R$ 50,00 enviado para JOAO SILVA em 03/02/2026",
	})
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}
	if !result.Success {
		t.Fatalf("expected success, got reason %q", result.Reason)
	}
	if result.Reason != "Nubank Pix" {
		t.Errorf("reason = %q", result.Reason)
	}
	if !result.Amount.Equal(decimal.RequireFromString("50")) {
		t.Errorf("amount = %s, want 50", result.Amount)
	}
	if *result.TransactionType != TypePixOut {
		t.Errorf("transaction type = %q, want pix_out", *result.TransactionType)
	}
	if *result.PaymentMethod != MethodPix {
		t.Errorf("payment method = %q, want pix", *result.PaymentMethod)
	}
}

func TestParseNubankPixReceived(t *testing.T) {
	result, err := Parse(EmailInput{
		MessageID:   "2b",
		FromAddress: "todomundo@nubank.com.br",
		Body:        "Pix de R$ 200,00 recebido de MARIA SOUZA",
	})
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}
	if !result.Success {
		t.Fatalf("expected success, got reason %q", result.Reason)
	}
	if *result.TransactionType != TypePixIn {
		t.Errorf("transaction type = %q, want pix_in", *result.TransactionType)
	}
	if *result.Merchant != "MARIA SOUZA" {
		t.Errorf("merchant = %q", *result.Merchant)
	}
}

func TestParseItauPurchase(t *testing.T) {
	result, err := Parse(EmailInput{
		MessageID:   "3",
		FromAddress: "itau@itau-unibanco.com.br",
		Subject:     strPtr("Compra com cartão"),
		Body:        "Compra aprovada: R$ 85,90 - SUPERMERCADO X no débito Cartão ***4321",
	})
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}
	if !result.Success {
		t.Fatalf("expected success, got reason %q", result.Reason)
	}
	if result.Reason != "Itaú compra" {
		t.Errorf("reason = %q", result.Reason)
	}
	if !result.Amount.Equal(decimal.RequireFromString("85.90")) {
		t.Errorf("amount = %s, want 85.90", result.Amount)
	}
	if *result.Merchant != "SUPERMERCADO X" {
		t.Errorf("merchant = %q", *result.Merchant)
	}
	if *result.PaymentMethod != MethodDebitCard {
		t.Errorf("payment method = %q, want debit_card", *result.PaymentMethod)
	}
	if *result.CardLast4 != "4321" {
		t.Errorf("card last4 = %q", *result.CardLast4)
	}
}

func TestParseItauPix(t *testing.T) {
	result, err := Parse(EmailInput{
		MessageID:   "3b",
		FromAddress: "itau@itau.com.br",
		Body:        "Transferência PIX realizada: R$ 1.500,00",
	})
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}
	if !result.Success {
		t.Fatalf("expected success, got reason %q", result.Reason)
	}
	if result.Reason != "Itaú Pix" {
		t.Errorf("reason = %q", result.Reason)
	}
	if !result.Amount.Equal(decimal.RequireFromString("1500")) {
		t.Errorf("amount = %s, want 1500", result.Amount)
	}
	if *result.TransactionType != TypePixOut {
		t.Errorf("transaction type = %q, want pix_out", *result.TransactionType)
	}
}

func TestParseBradescoPurchase(t *testing.T) {
	result, err := Parse(EmailInput{
		MessageID:   "4",
		FromAddress: "noreply@bradesco.com.br",
		Body:        "Compra aprovada no cartão\nValor: R$ 320,10\nEstabelecimento: FARMACIA SAO JOAO",
	})
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}
	if !result.Success {
		t.Fatalf("expected success, got reason %q", result.Reason)
	}
	if result.Reason != "Bradesco compra" {
		t.Errorf("reason = %q", result.Reason)
	}
	if !result.Amount.Equal(decimal.RequireFromString("320.10")) {
		t.Errorf("amount = %s, want 320.10", result.Amount)
	}
	if *result.Merchant != "FARMACIA SAO JOAO" {
		t.Errorf("merchant = %q", *result.Merchant)
	}
}

func TestParseBTGPurchase(t *testing.T) {
	result, err := Parse(EmailInput{
		MessageID:   "5",
		FromAddress: "cartoes@btgpactual.com",
		Subject:     strPtr("Compra aprovada"),
		Body:        "Compra aprovada: R$ 210,00 em LOJA Y - Cartão ***9876",
	})
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}
	if !result.Success {
		t.Fatalf("expected success, got reason %q", result.Reason)
	}
	if result.Reason != "BTG compra" {
		t.Errorf("reason = %q", result.Reason)
	}
	if !result.Amount.Equal(decimal.RequireFromString("210")) {
		t.Errorf("amount = %s, want 210", result.Amount)
	}
	if *result.Merchant != "LOJA Y" {
		t.Errorf("merchant = %q", *result.Merchant)
	}
	if *result.PaymentMethod != MethodCreditCard {
		t.Errorf("payment method = %q, want credit_card", *result.PaymentMethod)
	}
	if *result.CardLast4 != "9876" {
		t.Errorf("card last4 = %q", *result.CardLast4)
	}
}

func TestParseInterPurchase(t *testing.T) {
	result, err := Parse(EmailInput{
		MessageID:   "6",
		FromAddress: "naoresponda@bancointer.com.br",
		Body:        "Compra aprovada de R$ 47,80 em POSTO SHELL",
	})
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}
	if !result.Success {
		t.Fatalf("expected success, got reason %q", result.Reason)
	}
	if result.Reason != "Inter compra" {
		t.Errorf("reason = %q", result.Reason)
	}
	if *result.Merchant != "POSTO SHELL" {
		t.Errorf("merchant = %q", *result.Merchant)
	}
}

func TestParseGenericFallback(t *testing.T) {
	result, err := Parse(EmailInput{
		MessageID:   "7",
		FromAddress: "cobranca@nubank.com.br",
		Body:        "Sua fatura chegou: R$ 9,99",
	})
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}
	if !result.Success {
		t.Fatalf("expected success, got reason %q", result.Reason)
	}
	if result.Reason != "Genérico" {
		t.Errorf("reason = %q", result.Reason)
	}
	if !result.Amount.Equal(decimal.RequireFromString("9.99")) {
		t.Errorf("amount = %s, want 9.99", result.Amount)
	}
	if *result.TransactionType != TypeUnknown {
		t.Errorf("transaction type = %q, want unknown", *result.TransactionType)
	}
	if result.Merchant != nil {
		t.Errorf("merchant = %q, want nil", *result.Merchant)
	}
	if result.PaymentMethod != nil {
		t.Errorf("payment method = %q, want nil", *result.PaymentMethod)
	}
}

func TestParseUnrecognized(t *testing.T) {
	result, err := Parse(EmailInput{
		MessageID:   "8",
		FromAddress: "newsletter@example.com",
		Subject:     strPtr("Promoção imperdível"),
		Body:        "Aproveite nossas ofertas de verão!",
	})
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}
	if result.Success {
		t.Fatal("expected failure for unrecognized email")
	}
	if result.Reason != "Formato de email não reconhecido" {
		t.Errorf("reason = %q", result.Reason)
	}
	if result.BankSource != nil {
		t.Errorf("bank source = %v, want nil", result.BankSource)
	}
}

func TestParseExplicitBankSource(t *testing.T) {
	// Explicit bank_source skips detection even when the sender says otherwise.
	result, err := Parse(EmailInput{
		MessageID:   "9",
		FromAddress: "forwarded@gmail.com",
		Body:        "Compra aprovada de R$ 15,00 em PADOCA",
		BankSource:  strPtr(BankInter),
	})
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}
	if !result.Success {
		t.Fatalf("expected success, got reason %q", result.Reason)
	}
	if result.Reason != "Inter compra" {
		t.Errorf("reason = %q", result.Reason)
	}
}
