// internal/handler/mock_test.go
package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http/httptest"
	"testing"
	"time"

	"assessor-financeiro/internal/domain"
	"assessor-financeiro/internal/storage"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

// mockStore is an in-memory stand-in for the postgres layer, shared by the
// handler tests. Seed the maps before handing it to a handler.
type mockStore struct {
	accounts     map[int64]domain.Account
	categories   []domain.Category
	transactions map[int64]domain.Transaction
	rawEmails    map[string]domain.RawEmail

	createRawEmailErr error

	nextID int64

	createdTransactions []domain.Transaction
	updatedTransactions []domain.Transaction
	createdCategories   []string
	categoryListCalls   int
}

func newMockStore() *mockStore {
	return &mockStore{
		accounts:     map[int64]domain.Account{},
		transactions: map[int64]domain.Transaction{},
		rawEmails:    map[string]domain.RawEmail{},
		nextID:       100,
	}
}

func (m *mockStore) nextIDValue() int64 {
	m.nextID++
	return m.nextID
}

func (m *mockStore) CreateAccount(ctx context.Context, account *domain.Account) error {
	account.ID = m.nextIDValue()
	m.accounts[account.ID] = *account
	return nil
}

func (m *mockStore) ListAccounts(ctx context.Context, userID int64, skip, limit int) ([]domain.Account, int64, error) {
	return nil, 0, nil
}

func (m *mockStore) GetAccount(ctx context.Context, userID, accountID int64) (*domain.Account, error) {
	account, ok := m.accounts[accountID]
	if !ok || account.UserID != userID {
		return nil, nil
	}
	return &account, nil
}

func (m *mockStore) UpdateAccount(ctx context.Context, account *domain.Account) error { return nil }

func (m *mockStore) DeleteAccount(ctx context.Context, userID, accountID int64) (bool, error) {
	return false, nil
}

func (m *mockStore) CreateCategory(ctx context.Context, userID int64, name string, parentID *int64, icon, color *string) (*domain.Category, error) {
	category := domain.Category{ID: m.nextIDValue(), UserID: &userID, Name: name, ParentID: parentID}
	m.categories = append(m.categories, category)
	m.createdCategories = append(m.createdCategories, name)
	return &category, nil
}

func (m *mockStore) ListCategories(ctx context.Context, userID int64, skip, limit int) ([]domain.Category, int64, error) {
	return m.categories, int64(len(m.categories)), nil
}

func (m *mockStore) ListAllCategories(ctx context.Context, userID int64) ([]domain.Category, error) {
	m.categoryListCalls++
	return m.categories, nil
}

func (m *mockStore) GetCategory(ctx context.Context, userID, categoryID int64) (*domain.Category, error) {
	for _, category := range m.categories {
		if category.ID == categoryID {
			return &category, nil
		}
	}
	return nil, nil
}

func (m *mockStore) ListChildCategoryIDs(ctx context.Context, parentID int64) ([]int64, error) {
	return nil, nil
}

func (m *mockStore) CreateTransaction(ctx context.Context, tx *domain.Transaction) error {
	tx.ID = m.nextIDValue()
	m.transactions[tx.ID] = *tx
	m.createdTransactions = append(m.createdTransactions, *tx)
	return nil
}

func (m *mockStore) ListTransactions(ctx context.Context, userID int64, filter storage.TransactionFilter, skip, limit int) ([]domain.Transaction, int64, error) {
	return nil, 0, nil
}

func (m *mockStore) GetTransaction(ctx context.Context, userID, transactionID int64) (*domain.Transaction, error) {
	tx, ok := m.transactions[transactionID]
	if !ok {
		return nil, nil
	}
	return &tx, nil
}

func (m *mockStore) UpdateTransaction(ctx context.Context, tx *domain.Transaction) error {
	m.transactions[tx.ID] = *tx
	m.updatedTransactions = append(m.updatedTransactions, *tx)
	return nil
}

func (m *mockStore) DeleteTransaction(ctx context.Context, userID, transactionID int64) (bool, error) {
	return false, nil
}

func (m *mockStore) SumTransactions(ctx context.Context, categoryIDs []int64, start, end time.Time) (decimal.Decimal, error) {
	return decimal.Zero, nil
}

func (m *mockStore) CreateRawEmail(ctx context.Context, email *domain.RawEmail) error {
	if m.createRawEmailErr != nil {
		return m.createRawEmailErr
	}
	email.ID = m.nextIDValue()
	email.ReceivedAt = time.Now().UTC()
	m.rawEmails[email.MessageID] = *email
	return nil
}

func (m *mockStore) FindRawEmailByMessageID(ctx context.Context, messageID string) (*domain.RawEmail, error) {
	email, ok := m.rawEmails[messageID]
	if !ok {
		return nil, nil
	}
	return &email, nil
}

// jsonContext builds a gin test context carrying a JSON body and the user id
// the auth middleware would have set.
func jsonContext(t *testing.T, method, target string, body any) (*gin.Context, *httptest.ResponseRecorder) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	payload, err := json.Marshal(body)
	if err != nil {
		t.Fatalf("marshal request body: %v", err)
	}
	c.Request = httptest.NewRequest(method, target, bytes.NewReader(payload))
	c.Request.Header.Set("Content-Type", "application/json")
	c.Set("user_id", int64(1))
	return c, w
}

func decodeResponse[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	if err := json.Unmarshal(w.Body.Bytes(), &out); err != nil {
		t.Fatalf("unmarshal response %q: %v", w.Body.String(), err)
	}
	return out
}
