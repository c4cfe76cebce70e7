// internal/categorizer/seed.go
package categorizer

import (
	"context"
	"fmt"

	"assessor-financeiro/internal/domain"
)

type seedCategory struct {
	Name          string
	Subcategories []string
}

// defaultCategories is the tree every new user starts with. The rule table
// maps into this taxonomy, so keep the two aligned when editing either.
var defaultCategories = []seedCategory{
	{"Alimentação", []string{"Restaurantes", "Supermercado", "Marmitas", "Delivery", "Padaria"}},
	{"Transporte", []string{"Combustível", "Uber/99", "Estacionamento", "Transporte Público", "Aluguel de Carro"}},
	{"Moradia", []string{"Aluguel", "Condomínio", "Diarista", "Água", "Luz", "Gás", "Internet"}},
	{"Saúde", []string{"Farmácia", "Médicos", "Plano de Saúde", "Academia", "Dentista"}},
	{"Educação", []string{"Cursos", "Livros", "Mensalidade"}},
	{"Lazer", []string{"Cinema", "Viagens", "Hobbies", "Festas", "Bares"}},
	{"Compras", []string{"Roupas", "Eletrônicos", "Casa", "Presentes"}},
	{"Serviços", []string{"Assinaturas", "Streaming", "Telefone", "Seguros"}},
	{"Investimentos", []string{"Ações", "Renda Fixa", "Crypto", "Previdência"}},
	{"Outros", []string{"Transferências", "Saques", "Taxas Bancárias"}},
}

// SeedDefaults creates the default category tree for a user that has none yet.
// A user with any existing categories is left untouched.
func SeedDefaults(ctx context.Context, store CategoryStore, userID int64) ([]domain.Category, error) {
	existing, err := store.ListAllCategories(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	if len(existing) > 0 {
		return existing, nil
	}

	var created []domain.Category
	for _, item := range defaultCategories {
		parent, err := store.CreateCategory(ctx, userID, item.Name, nil, nil, nil)
		if err != nil {
			return nil, fmt.Errorf("seed category %q: %w", item.Name, err)
		}
		created = append(created, *parent)
		for _, subName := range item.Subcategories {
			sub, err := store.CreateCategory(ctx, userID, subName, &parent.ID, nil, nil)
			if err != nil {
				return nil, fmt.Errorf("seed subcategory %q: %w", subName, err)
			}
			created = append(created, *sub)
		}
	}
	return created, nil
}
