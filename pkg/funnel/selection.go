package funnel

import (
	"agrocalc-be/internal/constant"
	"agrocalc-be/internal/entity"

	"github.com/google/uuid"
)

// SelectionSet holds the products the user has committed to ("my products").
// Its lifetime is independent from the candidate set: narrowing candidates
// never touches an already-made selection. Iteration order is insertion
// order, which keeps display pagination stable.
type SelectionSet struct {
	items []*entity.Product
}

// Add appends the product unless it is already selected.
func (s *SelectionSet) Add(p *entity.Product) {
	if s.Contains(p.Id) {
		return
	}
	s.items = append(s.items, p)
}

// Remove drops the product; absent products are a no-op.
func (s *SelectionSet) Remove(id uuid.UUID) {
	for i, p := range s.items {
		if p.Id == id {
			s.items = append(s.items[:i], s.items[i+1:]...)
			return
		}
	}
}

func (s *SelectionSet) Contains(id uuid.UUID) bool {
	for _, p := range s.items {
		if p.Id == id {
			return true
		}
	}
	return false
}

// ToggleAction returns the valid next action token for the product: remove
// when it is already selected, add otherwise. The transport renders it as
// the product card's button.
func (s *SelectionSet) ToggleAction(id uuid.UUID) string {
	if s.Contains(id) {
		return constant.ActionRemoveProduct
	}
	return constant.ActionAddProduct
}

func (s *SelectionSet) Items() []*entity.Product {
	return s.items
}

func (s *SelectionSet) Ids() []uuid.UUID {
	ids := make([]uuid.UUID, len(s.items))
	for i, p := range s.items {
		ids[i] = p.Id
	}
	return ids
}

func (s *SelectionSet) Len() int {
	return len(s.items)
}

func (s *SelectionSet) Clear() {
	s.items = nil
}
