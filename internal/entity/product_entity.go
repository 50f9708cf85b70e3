package entity

import (
	"time"

	"github.com/google/uuid"
)

type Brand struct {
	Id        uuid.UUID
	Name      string
	CreatedAt time.Time
}

// Target is a supplementary-purpose tag (e.g. a specific additive purpose),
// mutually exclusive with a product's base category.
type Target struct {
	Id    uuid.UUID
	Tag   string
	Color string
}

type Product struct {
	Id              uuid.UUID
	BrandName       string
	Name            string
	Environment     string
	BaseCategory    string     // empty when the product carries a target
	TargetId        *uuid.UUID // nil when the product carries a base category
	TargetTag       string
	PhotoRef        string
	DescriptionLink string
	Phases          []Phase // ordered by the global phase order
	CreatedAt       time.Time
	UpdatedAt       *time.Time
	DeletedAt       *time.Time
	IsDeleted       bool
}

// ShortDescription is the display line used on product cards and in dosing
// event descriptions.
func (p *Product) ShortDescription() string {
	desc := p.BrandName + " - " + p.Name
	if p.TargetTag != "" {
		desc += "\n" + p.TargetTag
	}
	return desc
}

// PhaseByName returns the product's phase with the given name, or nil.
func (p *Product) PhaseByName(name string) *Phase {
	for i := range p.Phases {
		if p.Phases[i].Name == name {
			return &p.Phases[i]
		}
	}
	return nil
}

type Phase struct {
	Id          uuid.UUID
	ProductId   uuid.UUID
	Name        string
	Description string
	Weeks       string // whole weeks, carried as text in the catalog
	Formula     string // arithmetic expression over the reservoir volume "v"
}
