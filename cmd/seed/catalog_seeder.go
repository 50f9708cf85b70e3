package main

import (
	"context"
	"fmt"
	"log"

	"agrocalc-be/internal/constant"
	"agrocalc-be/internal/entity"
	"agrocalc-be/internal/repository/contract"
)

type seedPhase struct {
	name    string
	weeks   string
	formula string
}

type seedProduct struct {
	brand        string
	name         string
	environment  string
	baseCategory string
	targetTag    string
	link         string
	phases       []seedPhase
}

func seedTargets() []entity.Target {
	return []entity.Target{
		{Tag: "calmag", Color: "#8ecae6"},
		{Tag: "root_stimulation", Color: "#b5e48c"},
		{Tag: "flowering_boost", Color: "#f4a261"},
		{Tag: "enzymes", Color: "#cdb4db"},
	}
}

func seedProducts() []seedProduct {
	return []seedProduct{
		{
			brand: "BioBizz", name: "Bio Grow", environment: constant.EnvironmentSoil,
			baseCategory: constant.VegaBaseCategory,
			link:         "https://www.biobizz.com/product/bio-grow/",
			phases: []seedPhase{
				{constant.PhaseStart, "1", "v/100"},
				{constant.PhaseVegetativeFirst, "2", "v/50"},
				{constant.PhaseVegetativeSecond, "2", "v/25"},
				{constant.PhaseGenerativeFirst, "3", "v/25"},
			},
		},
		{
			brand: "BioBizz", name: "Bio Bloom", environment: constant.EnvironmentSoil,
			baseCategory: constant.BloomBaseCategory,
			link:         "https://www.biobizz.com/product/bio-bloom/",
			phases: []seedPhase{
				{constant.PhaseGenerativeFirst, "2", "v/50"},
				{constant.PhaseGenerativeSecond, "3", "v/25"},
				{constant.PhaseGenerativeThird, "3", "(v/25)*2"},
			},
		},
		{
			brand: "BioBizz", name: "Root Juice", environment: constant.EnvironmentUniversal,
			targetTag: "root_stimulation",
			phases: []seedPhase{
				{constant.PhaseStart, "1", "v/250"},
				{constant.PhaseVegetativeFirst, "2", "v/250"},
			},
		},
		{
			brand: "Plagron", name: "Hydro A", environment: constant.EnvironmentHydro,
			baseCategory: constant.VegaBaseCategory,
			phases: []seedPhase{
				{constant.PhaseStart, "1", "v/100"},
				{constant.PhaseVegetativeFirst, "2", "v/50"},
				{constant.PhaseVegetativeSecond, "2", "(v/50)*1.5"},
			},
		},
		{
			brand: "Plagron", name: "Green Sensation", environment: constant.EnvironmentHydro,
			targetTag: "flowering_boost",
			phases: []seedPhase{
				{constant.PhaseGenerativeSecond, "2", "v/1000"},
				{constant.PhaseGenerativeThird, "2", "v/1000"},
				{constant.PhaseGenerativeFourth, "2", "v/500"},
			},
		},
		{
			brand: "CANNA", name: "CalMag Agent", environment: constant.EnvironmentUniversal,
			targetTag: "calmag",
			phases: []seedPhase{
				{constant.PhaseVegetativeFirst, "2", "v/100"},
				{constant.PhaseVegetativeSecond, "2", "v/100"},
				{constant.PhaseGenerativeFirst, "3", "v/100"},
			},
		},
		{
			brand: "CANNA", name: "Cannazym", environment: constant.EnvironmentCoco,
			targetTag: "enzymes",
			phases: []seedPhase{
				{constant.PhaseVegetativeSecond, "2", "v/40"},
				{constant.PhaseGenerativeFirst, "3", "v/40"},
				{constant.PhaseGenerativeSecond, "3", "v/40"},
			},
		},
		{
			brand: "GHE", name: "Flora Gro", environment: constant.EnvironmentOrganic,
			baseCategory: constant.VegaBaseCategory,
			phases: []seedPhase{
				{constant.PhaseStart, "1", "v/200"},
				{constant.PhaseVegetativeFirst, "2", "v/100"},
				{constant.PhaseVegetativeSecond, "2", "v/66"},
			},
		},
	}
}

// SeedCatalog populates a starter nutrient catalog through the repository
// write path. A non-empty catalog is left untouched, so reruns never
// duplicate.
func SeedCatalog(
	ctx context.Context,
	brands contract.BrandRepository,
	targets contract.TargetRepository,
	products contract.ProductRepository,
) error {
	count, err := products.Count(ctx)
	if err != nil {
		return fmt.Errorf("counting products: %w", err)
	}
	if count > 0 {
		log.Println("Catalog already populated, skipping seed")
		return nil
	}

	targetIds := map[string]entity.Target{}
	for _, target := range seedTargets() {
		if err := targets.Create(ctx, &target); err != nil {
			return fmt.Errorf("seeding target %s: %w", target.Tag, err)
		}
		targetIds[target.Tag] = target
	}

	for _, p := range seedProducts() {
		brand, err := brands.FindOrCreate(ctx, p.brand)
		if err != nil {
			return fmt.Errorf("seeding brand %s: %w", p.brand, err)
		}

		phases := make([]entity.Phase, len(p.phases))
		for i, ph := range p.phases {
			phases[i] = entity.Phase{
				Name:    ph.name,
				Weeks:   ph.weeks,
				Formula: ph.formula,
			}
		}

		product := entity.Product{
			Name:            p.name,
			Environment:     p.environment,
			BaseCategory:    p.baseCategory,
			DescriptionLink: p.link,
			Phases:          phases,
		}
		if p.targetTag != "" {
			target := targetIds[p.targetTag]
			product.TargetId = &target.Id
		}

		if err := products.Create(ctx, &product, brand.Id); err != nil {
			return fmt.Errorf("seeding product %s: %w", p.name, err)
		}
		log.Printf("Seeded product: %s - %s", p.brand, p.name)
	}
	return nil
}
