package seed

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

type categorySeed struct {
	Name   string
	Slug   string
	Parent string
}

type productSeed struct {
	Name          string
	Slug          string
	Description   string
	PriceCents    int64
	OriginalCents int64
	Brand         string
	Category      string
	Trending      bool
	TopDeal       bool
	Rating        float64
	Sizes         []string
}

// Apply inserts demo catalog data for manual testing. It is idempotent via
// ON CONFLICT on the slug columns.
func Apply(ctx context.Context, pool *pgxpool.Pool) error {
	categories := []categorySeed{
		{Name: "Men", Slug: "men"},
		{Name: "Women", Slug: "women"},
		{Name: "Shirts", Slug: "men-shirts", Parent: "men"},
		{Name: "Shoes", Slug: "men-shoes", Parent: "men"},
		{Name: "Dresses", Slug: "women-dresses", Parent: "women"},
	}
	ids := make(map[string]string, len(categories))
	for _, c := range categories {
		id, err := upsertCategory(ctx, pool, c, ids)
		if err != nil {
			return fmt.Errorf("upsert category %s: %w", c.Slug, err)
		}
		ids[c.Slug] = id
	}

	products := []productSeed{
		{
			Name:        "Classic Oxford Shirt",
			Slug:        "classic-oxford-shirt",
			Description: "Button-down oxford in washed cotton",
			PriceCents:  149900, OriginalCents: 199900,
			Brand: "Harbour Lane", Category: "men-shirts",
			TopDeal: true, Rating: 4.3,
			Sizes: []string{"S", "M", "L", "XL"},
		},
		{
			Name:        "Everyday Runner",
			Slug:        "everyday-runner",
			Description: "Lightweight knit runner with foam midsole",
			PriceCents:  329900,
			Brand:       "Stride", Category: "men-shoes",
			Trending: true, Rating: 4.6,
			Sizes: []string{"8", "9", "10", "11"},
		},
		{
			Name:        "Wrap Midi Dress",
			Slug:        "wrap-midi-dress",
			Description: "Printed wrap dress in viscose crepe",
			PriceCents:  219900, OriginalCents: 259900,
			Brand: "Mira", Category: "women-dresses",
			Trending: true, TopDeal: true, Rating: 4.4,
			Sizes: []string{"XS", "S", "M", "L"},
		},
	}
	for _, p := range products {
		if err := upsertProduct(ctx, pool, p, ids); err != nil {
			return fmt.Errorf("upsert product %s: %w", p.Slug, err)
		}
	}

	return nil
}

func upsertCategory(ctx context.Context, pool *pgxpool.Pool, c categorySeed, ids map[string]string) (string, error) {
	const q = `
INSERT INTO categories (name, slug, parent_id)
VALUES ($1, $2, $3)
ON CONFLICT (slug) DO UPDATE SET name = EXCLUDED.name, parent_id = EXCLUDED.parent_id
RETURNING id::text
`
	var parentID *string
	if c.Parent != "" {
		id, ok := ids[c.Parent]
		if !ok {
			return "", fmt.Errorf("unknown parent slug %q", c.Parent)
		}
		parentID = &id
	}
	var id string
	if err := pool.QueryRow(ctx, q, c.Name, c.Slug, parentID).Scan(&id); err != nil {
		return "", err
	}
	return id, nil
}

func upsertProduct(ctx context.Context, pool *pgxpool.Pool, p productSeed, ids map[string]string) error {
	const q = `
INSERT INTO products (name, slug, description, price_cents, original_price_cents, brand, category_id, is_trending, is_top_deal, rating)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
ON CONFLICT (slug) DO UPDATE
SET name = EXCLUDED.name,
    description = EXCLUDED.description,
    price_cents = EXCLUDED.price_cents,
    original_price_cents = EXCLUDED.original_price_cents,
    brand = EXCLUDED.brand,
    category_id = EXCLUDED.category_id,
    is_trending = EXCLUDED.is_trending,
    is_top_deal = EXCLUDED.is_top_deal,
    rating = EXCLUDED.rating
RETURNING id::text
`
	categoryID, ok := ids[p.Category]
	if !ok {
		return fmt.Errorf("unknown category slug %q", p.Category)
	}
	var original *int64
	if p.OriginalCents > 0 {
		original = &p.OriginalCents
	}
	var productID string
	err := pool.QueryRow(ctx, q,
		p.Name, p.Slug, p.Description, p.PriceCents, original,
		p.Brand, categoryID, p.Trending, p.TopDeal, p.Rating,
	).Scan(&productID)
	if err != nil {
		return err
	}

	const vq = `
INSERT INTO product_variants (product_id, size, quantity)
VALUES ($1, $2, $3)
ON CONFLICT (product_id, size) DO UPDATE SET quantity = EXCLUDED.quantity
`
	for _, size := range p.Sizes {
		if _, err := pool.Exec(ctx, vq, productID, size, 25); err != nil {
			return err
		}
	}
	return nil
}
