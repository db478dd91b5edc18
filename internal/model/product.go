package model

import (
	"slices"
	"time"

	"github.com/google/uuid"
)

type Product struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Price       float64   `json:"price"`
	Colors      []string  `json:"colors"`
	Images      []string  `json:"images"`
	Category    string    `json:"category"`
	Featured    bool      `json:"featured"`
	Stock       int       `json:"stock"`
	CreatedAt   time.Time `json:"created_at"`
}

// HasColor reports whether color is one of the product colors.
// Matching is exact and case-sensitive on the whole string, so "Deep Red" never matches "Red".
func (p Product) HasColor(color string) bool {
	return slices.Contains(p.Colors, color)
}

// Clone returns a copy of p that shares no slices with it.
func (p Product) Clone() Product {
	p.Colors = slices.Clone(p.Colors)
	p.Images = slices.Clone(p.Images)
	return p
}

// ProductPatch holds the fields of a partial product update. Nil fields are left unchanged.
type ProductPatch struct {
	Name        *string   `json:"name,omitempty"`
	Description *string   `json:"description,omitempty"`
	Price       *float64  `json:"price,omitempty"`
	Colors      *[]string `json:"colors,omitempty"`
	Images      *[]string `json:"images,omitempty"`
	Category    *string   `json:"category,omitempty"`
	Featured    *bool     `json:"featured,omitempty"`
	Stock       *int      `json:"stock,omitempty"`
}

// IsEmpty reports whether the patch changes nothing.
func (p ProductPatch) IsEmpty() bool {
	return p == ProductPatch{}
}

// Apply returns a copy of product with every present patch field merged in.
// ID and CreatedAt are never touched.
func (p ProductPatch) Apply(product Product) Product {
	out := product.Clone()
	if p.Name != nil {
		out.Name = *p.Name
	}
	if p.Description != nil {
		out.Description = *p.Description
	}
	if p.Price != nil {
		out.Price = *p.Price
	}
	if p.Colors != nil {
		out.Colors = slices.Clone(*p.Colors)
	}
	if p.Images != nil {
		out.Images = slices.Clone(*p.Images)
	}
	if p.Category != nil {
		out.Category = *p.Category
	}
	if p.Featured != nil {
		out.Featured = *p.Featured
	}
	if p.Stock != nil {
		out.Stock = *p.Stock
	}
	return out
}

// ProductFilter narrows a product listing. Nil fields do not filter.
type ProductFilter struct {
	Color    *string
	Featured *bool
}

// Match reports whether product passes every present filter.
func (f ProductFilter) Match(product Product) bool {
	if f.Color != nil && !product.HasColor(*f.Color) {
		return false
	}
	if f.Featured != nil && product.Featured != *f.Featured {
		return false
	}
	return true
}
