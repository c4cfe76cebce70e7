// internal/categorizer/categorizer_test.go
package categorizer

import (
	"context"
	"testing"

	"assessor-financeiro/internal/domain"
)

func strPtr(s string) *string { return &s }

func TestCategorize(t *testing.T) {
	tests := []struct {
		name            string
		merchant        *string
		description     *string
		wantCategory    string
		wantSubcategory string
	}{
		{"uber trip", strPtr("Uber Trip"), nil, "Transporte", "Uber/99"},
		{"supermarket", strPtr("Supermercado Assai"), nil, "Alimentação", "Supermercado"},
		{"accented keyword matches unaccented text", strPtr("POSTO DE COMBUSTIVEL BR"), nil, "Transporte", "Combustível"},
		{"capitalized rule keyword", strPtr("ZONA SUL GAVEA"), nil, "Alimentação", "Supermercado"},
		{"match via description", nil, strPtr("mensalidade da faculdade"), "Educação", "Mensalidade"},
		{"netflix hits streaming before assinaturas", strPtr("NETFLIX.COM"), nil, "Lazer", "Streaming"},
		{"pix falls to transferencias", nil, strPtr("pix para fulano"), "Outros", "Transferências"},
		{"no match", strPtr("XYZQWERTY"), nil, "Outros", "Outros"},
		{"nil everything", nil, nil, "Outros", "Outros"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Categorize(tt.merchant, tt.description)
			if got.CategoryName != tt.wantCategory || got.SubcategoryName != tt.wantSubcategory {
				t.Errorf("Categorize = %s/%s, want %s/%s",
					got.CategoryName, got.SubcategoryName, tt.wantCategory, tt.wantSubcategory)
			}
		})
	}
}

func TestCategorizeReason(t *testing.T) {
	got := Categorize(strPtr("Uber Trip"), nil)
	if got.Reason != "Regra por palavra-chave: uber" {
		t.Errorf("reason = %q", got.Reason)
	}

	got = Categorize(strPtr("XYZQWERTY"), nil)
	if got.Reason != "Sem correspondência" {
		t.Errorf("fallback reason = %q", got.Reason)
	}
}

type mockCategoryStore struct {
	categories []domain.Category
	nextID     int64
	created    []string
	listErr    error
}

func (m *mockCategoryStore) ListAllCategories(_ context.Context, _ int64) ([]domain.Category, error) {
	if m.listErr != nil {
		return nil, m.listErr
	}
	out := make([]domain.Category, len(m.categories))
	copy(out, m.categories)
	return out, nil
}

func (m *mockCategoryStore) CreateCategory(_ context.Context, userID int64, name string, parentID *int64, icon, color *string) (*domain.Category, error) {
	m.nextID++
	c := domain.Category{ID: m.nextID, UserID: &userID, Name: name, ParentID: parentID, Icon: icon, Color: color}
	m.categories = append(m.categories, c)
	m.created = append(m.created, name)
	return &c, nil
}

func TestCategorizeWithStoreResolvesExisting(t *testing.T) {
	parentID := int64(1)
	store := &mockCategoryStore{
		categories: []domain.Category{
			{ID: 1, Name: "Transporte"},
			{ID: 2, Name: "Uber/99", ParentID: &parentID},
		},
		nextID: 2,
	}

	got, err := CategorizeWithStore(context.Background(), store, 42, strPtr("Uber Trip"), nil)
	if err != nil {
		t.Fatalf("CategorizeWithStore returned error: %v", err)
	}
	if got.CategoryID == nil || *got.CategoryID != 2 {
		t.Errorf("category id = %v, want 2 (subcategory)", got.CategoryID)
	}
	if len(store.created) != 0 {
		t.Errorf("created %v, want no writes", store.created)
	}
}

func TestCategorizeWithStoreParentOnly(t *testing.T) {
	// Subcategory missing: the parent id is used, nothing is created for
	// non-fallback names.
	store := &mockCategoryStore{
		categories: []domain.Category{{ID: 7, Name: "Transporte"}},
		nextID:     7,
	}

	got, err := CategorizeWithStore(context.Background(), store, 42, strPtr("Uber Trip"), nil)
	if err != nil {
		t.Fatalf("CategorizeWithStore returned error: %v", err)
	}
	if got.CategoryID == nil || *got.CategoryID != 7 {
		t.Errorf("category id = %v, want 7 (parent)", got.CategoryID)
	}
	if len(store.created) != 0 {
		t.Errorf("created %v, want no writes", store.created)
	}
}

func TestCategorizeWithStoreCreatesFallback(t *testing.T) {
	store := &mockCategoryStore{}

	got, err := CategorizeWithStore(context.Background(), store, 42, strPtr("XYZQWERTY"), nil)
	if err != nil {
		t.Fatalf("CategorizeWithStore returned error: %v", err)
	}
	if len(store.created) != 2 {
		t.Fatalf("created %v, want Outros parent and child", store.created)
	}
	if store.created[0] != Fallback || store.created[1] != Fallback {
		t.Errorf("created %v, want two %q rows", store.created, Fallback)
	}
	if got.CategoryID == nil || *got.CategoryID != 2 {
		t.Errorf("category id = %v, want 2 (the Outros child)", got.CategoryID)
	}

	// Second call reuses what the first created.
	got, err = CategorizeWithStore(context.Background(), store, 42, strPtr("OUTRA COISA SEM REGRA"), nil)
	if err != nil {
		t.Fatalf("second CategorizeWithStore returned error: %v", err)
	}
	if len(store.created) != 2 {
		t.Errorf("created %v after second call, want no new rows", store.created)
	}
	if got.CategoryID == nil || *got.CategoryID != 2 {
		t.Errorf("category id = %v, want 2", got.CategoryID)
	}
}

func TestCategorizeWithStoreMissingCategoryNoWrite(t *testing.T) {
	// Matched a real rule but the user has no such category and it is not the
	// fallback: no id, no writes.
	store := &mockCategoryStore{}

	got, err := CategorizeWithStore(context.Background(), store, 42, strPtr("Uber Trip"), nil)
	if err != nil {
		t.Fatalf("CategorizeWithStore returned error: %v", err)
	}
	if got.CategoryID != nil {
		t.Errorf("category id = %v, want nil", got.CategoryID)
	}
	if len(store.created) != 0 {
		t.Errorf("created %v, want no writes", store.created)
	}
	if got.CategoryName != "Transporte" {
		t.Errorf("category name = %q", got.CategoryName)
	}
}
