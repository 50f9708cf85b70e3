package mapper

import (
	"sort"
	"time"

	"agrocalc-be/internal/constant"
	"agrocalc-be/internal/entity"
	"agrocalc-be/internal/model"
)

type CatalogMapper struct{}

func NewCatalogMapper() *CatalogMapper {
	return &CatalogMapper{}
}

var phaseRank = func() map[string]int {
	ranks := make(map[string]int, len(constant.PhaseOrder))
	for i, name := range constant.PhaseOrder {
		ranks[name] = i
	}
	return ranks
}()

func (m *CatalogMapper) ProductToEntity(p *model.Product) *entity.Product {
	if p == nil {
		return nil
	}

	var deletedAt *time.Time
	if p.DeletedAt.Valid {
		t := p.DeletedAt.Time
		deletedAt = &t
	}

	var updatedAt *time.Time
	if !p.UpdatedAt.IsZero() {
		t := p.UpdatedAt
		updatedAt = &t
	}

	var targetTag string
	if p.Target != nil {
		targetTag = p.Target.Tag
	}

	phases := make([]entity.Phase, len(p.Phases))
	for i, ph := range p.Phases {
		phases[i] = entity.Phase{
			Id:          ph.Id,
			ProductId:   ph.ProductId,
			Name:        ph.Name,
			Description: ph.Description,
			Weeks:       ph.Weeks,
			Formula:     ph.Formula,
		}
	}
	// The schedule walks phases in the global phase order; keep the slice
	// sorted so callers never depend on DB row order.
	sort.SliceStable(phases, func(i, j int) bool {
		return phaseRank[phases[i].Name] < phaseRank[phases[j].Name]
	})

	return &entity.Product{
		Id:              p.Id,
		BrandName:       p.Brand.Name,
		Name:            p.Name,
		Environment:     p.Environment,
		BaseCategory:    p.BaseCategory,
		TargetId:        p.TargetId,
		TargetTag:       targetTag,
		PhotoRef:        p.PhotoRef,
		DescriptionLink: p.DescriptionLink,
		Phases:          phases,
		CreatedAt:       p.CreatedAt,
		UpdatedAt:       updatedAt,
		DeletedAt:       deletedAt,
		IsDeleted:       p.DeletedAt.Valid,
	}
}

func (m *CatalogMapper) ProductsToEntities(models []*model.Product) []*entity.Product {
	entities := make([]*entity.Product, len(models))
	for i, p := range models {
		entities[i] = m.ProductToEntity(p)
	}
	return entities
}

func (m *CatalogMapper) TargetToEntity(t *model.Target) *entity.Target {
	if t == nil {
		return nil
	}
	return &entity.Target{
		Id:    t.Id,
		Tag:   t.Tag,
		Color: t.Color,
	}
}

func (m *CatalogMapper) TargetsToEntities(models []*model.Target) []*entity.Target {
	entities := make([]*entity.Target, len(models))
	for i, t := range models {
		entities[i] = m.TargetToEntity(t)
	}
	return entities
}
