package funnel

import (
	"strings"

	"agrocalc-be/internal/entity"
	"agrocalc-be/internal/pkg/apperr"

	"github.com/google/uuid"
)

// CandidateSet is the session's working pool of products under active
// filtering. It is seeded from the catalog once per session and only ever
// shrinks afterwards; the catalog is never re-queried mid-funnel.
type CandidateSet struct {
	items  []*entity.Product
	seeded bool
}

// Seed populates the set the first time a filter is applied. Reseeding is a
// no-op for the rest of the session, even after narrowing leaves the set
// empty: products excluded by an earlier stage must never reappear.
func (c *CandidateSet) Seed(all []*entity.Product) {
	if c.seeded {
		return
	}
	c.items = append(c.items[:0], all...)
	c.seeded = true
}

// Narrow removes every candidate failing pred, preserving the relative order
// of the survivors. Narrowing an already-empty set is a no-op; both that and
// a narrow that leaves no survivors report an empty-result error so the
// machine can route the user back a stage.
func (c *CandidateSet) Narrow(pred func(*entity.Product) bool) error {
	if len(c.items) == 0 {
		return apperr.EmptyResult("candidate set is already empty")
	}

	survivors := c.items[:0]
	for _, p := range c.items {
		if pred(p) {
			survivors = append(survivors, p)
		}
	}
	c.items = survivors

	if len(c.items) == 0 {
		return apperr.EmptyResult("no candidates left after narrowing")
	}
	return nil
}

// Search keeps only candidates whose product or brand name contains text
// (case-insensitive). Unlike Narrow, a search with zero matches leaves the
// set untouched and only reports not-found, so a typo costs the user
// nothing.
func (c *CandidateSet) Search(text string) error {
	needle := strings.ToLower(strings.TrimSpace(text))
	if needle == "" {
		return apperr.Validation("empty search query")
	}

	var matched []*entity.Product
	for _, p := range c.items {
		if strings.Contains(strings.ToLower(p.Name), needle) ||
			strings.Contains(strings.ToLower(p.BrandName), needle) {
			matched = append(matched, p)
		}
	}
	if len(matched) == 0 {
		return apperr.EmptyResult("no product or brand matched " + text)
	}

	c.items = matched
	return nil
}

func (c *CandidateSet) Items() []*entity.Product {
	return c.items
}

func (c *CandidateSet) Contains(id uuid.UUID) bool {
	for _, p := range c.items {
		if p.Id == id {
			return true
		}
	}
	return false
}

func (c *CandidateSet) Len() int {
	return len(c.items)
}

func (c *CandidateSet) Seeded() bool {
	return c.seeded
}

func (c *CandidateSet) Clear() {
	c.items = nil
	c.seeded = false
}
