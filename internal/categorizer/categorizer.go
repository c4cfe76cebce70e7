// internal/categorizer/categorizer.go
package categorizer

import (
	"context"
	"strings"

	"assessor-financeiro/internal/domain"
)

// Fallback is the catch-all category and subcategory label, created on demand
// when no rule matches.
const Fallback = "Outros"

type Response struct {
	CategoryID      *int64 `json:"category_id"`
	CategoryName    string `json:"category_name"`
	SubcategoryName string `json:"subcategory_name"`
	Reason          string `json:"reason"`
}

// Categorize matches the merchant+description text against the rule table.
// Pure and deterministic: first (rule, keyword) hit in table order wins.
func Categorize(merchant, description *string) Response {
	text := Normalize(deref(merchant) + " " + deref(description))
	for _, rule := range Rules {
		for _, keyword := range rule.Keywords {
			normalized := Normalize(keyword)
			if normalized != "" && strings.Contains(text, normalized) {
				return Response{
					CategoryName:    rule.Category,
					SubcategoryName: rule.Subcategory,
					Reason:          "Regra por palavra-chave: " + keyword,
				}
			}
		}
	}
	return Response{
		CategoryName:    Fallback,
		SubcategoryName: Fallback,
		Reason:          "Sem correspondência",
	}
}

// CategoryStore is the slice of storage the categorizer needs to resolve rule
// names into per-user category ids.
type CategoryStore interface {
	ListAllCategories(ctx context.Context, userID int64) ([]domain.Category, error)
	CreateCategory(ctx context.Context, userID int64, name string, parentID *int64, icon, color *string) (*domain.Category, error)
}

// CategorizeWithStore runs Categorize and then resolves the matched names into
// the owner's category ids. When the matched name is the fallback label and no
// such category exists yet, it is created on the spot. That is the only write
// this lookup performs. Concurrent first-time calls for the same owner may
// race into duplicate fallback rows; the storage layer is expected to
// tolerate or constrain that.
func CategorizeWithStore(ctx context.Context, store CategoryStore, userID int64, merchant, description *string) (Response, error) {
	result := Categorize(merchant, description)

	categories, err := store.ListAllCategories(ctx, userID)
	if err != nil {
		return Response{}, err
	}

	parent := findByName(categories, result.CategoryName, nil)
	if parent == nil && result.CategoryName == Fallback {
		created, err := store.CreateCategory(ctx, userID, Fallback, nil, nil, nil)
		if err != nil {
			return Response{}, err
		}
		parent = created
		categories = append(categories, *created)
	}

	var sub *domain.Category
	if parent != nil {
		sub = findByName(categories, result.SubcategoryName, &parent.ID)
		if sub == nil && result.SubcategoryName == Fallback {
			created, err := store.CreateCategory(ctx, userID, Fallback, &parent.ID, nil, nil)
			if err != nil {
				return Response{}, err
			}
			sub = created
		}
	}

	switch {
	case sub != nil:
		result.CategoryID = &sub.ID
	case parent != nil:
		result.CategoryID = &parent.ID
	}
	return result, nil
}

// findByName matches on normalized name within the given parent scope (nil
// parentID means top-level categories only).
func findByName(categories []domain.Category, name string, parentID *int64) *domain.Category {
	target := Normalize(name)
	for i := range categories {
		c := &categories[i]
		if parentID == nil {
			if c.ParentID != nil {
				continue
			}
		} else if c.ParentID == nil || *c.ParentID != *parentID {
			continue
		}
		if Normalize(c.Name) == target {
			return c
		}
	}
	return nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
