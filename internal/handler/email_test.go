// internal/handler/email_test.go
package handler

import (
	"fmt"
	"net/http"
	"testing"

	"assessor-financeiro/internal/domain"
	"assessor-financeiro/internal/storage"

	"github.com/shopspring/decimal"
)

func int64Ptr(v int64) *int64 { return &v }

func nubankEmail(messageID, body string) IngestEmailRequest {
	return IngestEmailRequest{
		MessageID:   messageID,
		FromAddress: "noreply@nubank.com.br",
		Body:        body,
	}
}

func TestParseToTransaction(t *testing.T) {
	t.Run("returns a draft for a parsed purchase", func(t *testing.T) {
		h := NewEmailHandler(newMockStore())
		c, w := jsonContext(t, http.MethodPost, "/email/parse-to-transaction", ParseToTransactionRequest{
			AccountID:  1,
			CategoryID: int64Ptr(2),
			Email:      nubankEmail("msg-1", "Compra de R$ 15,00 aprovada em TESTE"),
		})

		h.ParseToTransaction(c)

		if w.Code != http.StatusOK {
			t.Fatalf("status = %d, want %d: %s", w.Code, http.StatusOK, w.Body.String())
		}
		resp := decodeResponse[ParseToTransactionResponse](t, w)
		if !resp.Parsed.Success {
			t.Fatalf("parsed.success = false, reason %q", resp.Parsed.Reason)
		}
		if resp.Transaction == nil {
			t.Fatal("transaction draft is nil")
		}
		if resp.Transaction.AccountID != 1 {
			t.Errorf("draft account_id = %d, want 1", resp.Transaction.AccountID)
		}
		if resp.Transaction.CategoryID == nil || *resp.Transaction.CategoryID != 2 {
			t.Errorf("draft category_id = %v, want 2", resp.Transaction.CategoryID)
		}
		if !resp.Transaction.Amount.Equal(decimal.NewFromInt(15)) {
			t.Errorf("draft amount = %s, want 15", resp.Transaction.Amount)
		}
		if resp.Transaction.Merchant == nil || *resp.Transaction.Merchant != "TESTE" {
			t.Errorf("draft merchant = %v, want TESTE", resp.Transaction.Merchant)
		}
	})

	t.Run("null draft when nothing matches", func(t *testing.T) {
		h := NewEmailHandler(newMockStore())
		c, w := jsonContext(t, http.MethodPost, "/email/parse-to-transaction", ParseToTransactionRequest{
			AccountID: 1,
			Email: IngestEmailRequest{
				MessageID:   "msg-2",
				FromAddress: "contato@loja.example",
				Body:        "chegou a sua fatura",
			},
		})

		h.ParseToTransaction(c)

		if w.Code != http.StatusOK {
			t.Fatalf("status = %d, want %d: %s", w.Code, http.StatusOK, w.Body.String())
		}
		resp := decodeResponse[ParseToTransactionResponse](t, w)
		if resp.Parsed.Success {
			t.Error("parsed.success = true for unrecognized email")
		}
		if resp.Transaction != nil {
			t.Errorf("transaction = %+v, want null", resp.Transaction)
		}
	})
}

func TestParseAndCreate(t *testing.T) {
	newStore := func() *mockStore {
		store := newMockStore()
		store.accounts[1] = domain.Account{ID: 1, UserID: 1, BankName: "Nubank", AccountType: domain.AccountChecking}
		return store
	}

	t.Run("explicit category skips the categorizer", func(t *testing.T) {
		store := newStore()
		h := NewEmailHandler(store)
		c, w := jsonContext(t, http.MethodPost, "/email/parse-and-create", ParseToTransactionRequest{
			AccountID:  1,
			CategoryID: int64Ptr(2),
			Email:      nubankEmail("msg-1", "Compra de R$ 15,00 aprovada em TESTE"),
		})

		h.ParseAndCreate(c)

		if w.Code != http.StatusCreated {
			t.Fatalf("status = %d, want %d: %s", w.Code, http.StatusCreated, w.Body.String())
		}
		resp := decodeResponse[ParseAndCreateResponse](t, w)
		if resp.Transaction == nil {
			t.Fatal("transaction is nil")
		}
		if resp.Transaction.CategoryID == nil || *resp.Transaction.CategoryID != 2 {
			t.Errorf("category_id = %v, want 2", resp.Transaction.CategoryID)
		}
		if resp.Transaction.RawEmailID == nil {
			t.Error("raw_email_id not set on created transaction")
		}
		if store.categoryListCalls != 0 {
			t.Errorf("categorizer consulted the store %d times with an explicit category", store.categoryListCalls)
		}
		if len(store.createdCategories) != 0 {
			t.Errorf("categories created: %v", store.createdCategories)
		}
		if _, ok := store.rawEmails["msg-1"]; !ok {
			t.Error("raw email was not ingested")
		}
	})

	t.Run("auto-categorizes when category omitted", func(t *testing.T) {
		store := newStore()
		h := NewEmailHandler(store)
		c, w := jsonContext(t, http.MethodPost, "/email/parse-and-create", ParseToTransactionRequest{
			AccountID: 1,
			Email:     nubankEmail("msg-2", "Compra de R$ 50,00 aprovada em PADARIA DO ZE"),
		})

		h.ParseAndCreate(c)

		if w.Code != http.StatusCreated {
			t.Fatalf("status = %d, want %d: %s", w.Code, http.StatusCreated, w.Body.String())
		}
		if store.categoryListCalls == 0 {
			t.Error("categorizer never consulted the store")
		}
		if len(store.createdTransactions) != 1 {
			t.Fatalf("created %d transactions, want 1", len(store.createdTransactions))
		}
	})

	t.Run("parse failure answers with a null transaction", func(t *testing.T) {
		store := newStore()
		h := NewEmailHandler(store)
		c, w := jsonContext(t, http.MethodPost, "/email/parse-and-create", ParseToTransactionRequest{
			AccountID: 1,
			Email: IngestEmailRequest{
				MessageID:   "msg-3",
				FromAddress: "contato@loja.example",
				Body:        "chegou a sua fatura",
			},
		})

		h.ParseAndCreate(c)

		if w.Code != http.StatusOK {
			t.Fatalf("status = %d, want %d: %s", w.Code, http.StatusOK, w.Body.String())
		}
		resp := decodeResponse[ParseAndCreateResponse](t, w)
		if resp.Transaction != nil {
			t.Errorf("transaction = %+v, want null", resp.Transaction)
		}
		if len(store.rawEmails) != 0 || len(store.createdTransactions) != 0 {
			t.Error("unparseable email should write nothing")
		}
	})

	t.Run("conflict when the message was already ingested", func(t *testing.T) {
		store := newStore()
		store.rawEmails["msg-1"] = domain.RawEmail{ID: 9, UserID: 1, MessageID: "msg-1"}
		h := NewEmailHandler(store)
		c, w := jsonContext(t, http.MethodPost, "/email/parse-and-create", ParseToTransactionRequest{
			AccountID: 1,
			Email:     nubankEmail("msg-1", "Compra de R$ 15,00 aprovada em TESTE"),
		})

		h.ParseAndCreate(c)

		if w.Code != http.StatusConflict {
			t.Fatalf("status = %d, want %d: %s", w.Code, http.StatusConflict, w.Body.String())
		}
		if len(store.createdTransactions) != 0 {
			t.Error("transaction created for a duplicate email")
		}
	})

	t.Run("conflict when the insert loses the unique-index race", func(t *testing.T) {
		store := newStore()
		store.createRawEmailErr = fmt.Errorf("create raw email: %w", storage.ErrDuplicate)
		h := NewEmailHandler(store)
		c, w := jsonContext(t, http.MethodPost, "/email/parse-and-create", ParseToTransactionRequest{
			AccountID: 1,
			Email:     nubankEmail("msg-1", "Compra de R$ 15,00 aprovada em TESTE"),
		})

		h.ParseAndCreate(c)

		if w.Code != http.StatusConflict {
			t.Fatalf("status = %d, want %d: %s", w.Code, http.StatusConflict, w.Body.String())
		}
		if len(store.createdTransactions) != 0 {
			t.Error("transaction created for a duplicate email")
		}
	})

	t.Run("account not owned answers 404", func(t *testing.T) {
		store := newStore()
		store.accounts[3] = domain.Account{ID: 3, UserID: 2, BankName: "Itaú", AccountType: domain.AccountChecking}
		h := NewEmailHandler(store)
		c, w := jsonContext(t, http.MethodPost, "/email/parse-and-create", ParseToTransactionRequest{
			AccountID: 3,
			Email:     nubankEmail("msg-4", "Compra de R$ 15,00 aprovada em TESTE"),
		})

		h.ParseAndCreate(c)

		if w.Code != http.StatusNotFound {
			t.Fatalf("status = %d, want %d: %s", w.Code, http.StatusNotFound, w.Body.String())
		}
	})
}

func TestIngest(t *testing.T) {
	t.Run("conflict when the message was already ingested", func(t *testing.T) {
		store := newMockStore()
		store.rawEmails["msg-1"] = domain.RawEmail{ID: 9, UserID: 1, MessageID: "msg-1"}
		h := NewEmailHandler(store)
		c, w := jsonContext(t, http.MethodPost, "/email/ingest", nubankEmail("msg-1", "Compra de R$ 15,00 aprovada em TESTE"))

		h.Ingest(c)

		if w.Code != http.StatusConflict {
			t.Fatalf("status = %d, want %d: %s", w.Code, http.StatusConflict, w.Body.String())
		}
	})

	t.Run("conflict when the insert loses the unique-index race", func(t *testing.T) {
		store := newMockStore()
		store.createRawEmailErr = fmt.Errorf("create raw email: %w", storage.ErrDuplicate)
		h := NewEmailHandler(store)
		c, w := jsonContext(t, http.MethodPost, "/email/ingest", nubankEmail("msg-1", "Compra de R$ 15,00 aprovada em TESTE"))

		h.Ingest(c)

		if w.Code != http.StatusConflict {
			t.Fatalf("status = %d, want %d: %s", w.Code, http.StatusConflict, w.Body.String())
		}
	})
}
