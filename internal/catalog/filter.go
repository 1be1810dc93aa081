package catalog

import (
	"strings"

	"github.com/auracommerce/storefront/internal/domain"
)

// CategoryAll matches every category.
const CategoryAll = "All"

// Visible filters the catalog down to what the shop view shows: the active
// category (or "All") intersected with a case-insensitive substring search
// over name and category. Pure function, input order preserved.
func Visible(products []domain.Product, activeCategory, query string) []domain.Product {
	q := strings.ToLower(query)

	visible := make([]domain.Product, 0, len(products))
	for _, p := range products {
		if activeCategory != CategoryAll && p.Category != activeCategory {
			continue
		}
		if q != "" &&
			!strings.Contains(strings.ToLower(p.Name), q) &&
			!strings.Contains(strings.ToLower(p.Category), q) {
			continue
		}
		visible = append(visible, p)
	}
	return visible
}

// Categories lists the distinct product categories in first-seen order,
// prefixed with "All".
func Categories(products []domain.Product) []string {
	categories := []string{CategoryAll}
	seen := make(map[string]bool)
	for _, p := range products {
		if !seen[p.Category] {
			seen[p.Category] = true
			categories = append(categories, p.Category)
		}
	}
	return categories
}
