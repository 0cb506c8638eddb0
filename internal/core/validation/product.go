package validation

import (
	"strings"

	"github.com/artpar/storefront/internal/core/domain"
)

// ValidateCreateProductFields validates required fields for product creation.
// Returns the field name and error message if validation fails.
// Returns empty strings if all fields are valid.
//
// Example:
//
//	field, msg := ValidateCreateProductFields("Flyers", "Quick-turn flyers", 20, "local")
//	if field != "" {
//	    // Handle validation error
//	}
func ValidateCreateProductFields(title, description string, price float64, categorySlug string) (field, message string) {
	if strings.TrimSpace(title) == "" {
		return "title", "title is required"
	}
	if strings.TrimSpace(description) == "" {
		return "description", "description is required"
	}
	if price < 0 {
		return "price", "price cannot be negative"
	}
	if !domain.CategorySlug(categorySlug).IsValid() {
		return "category_slug", "category_slug must be one of digital, prints, local"
	}
	return "", ""
}
