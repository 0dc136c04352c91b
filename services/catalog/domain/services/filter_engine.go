// Package services contains stateless domain services for the catalog
// bounded context. They operate purely on domain types with zero external
// dependencies beyond stdlib and the domain layer.
package services

import "github.com/pawmatch/pawmatch/services/catalog/domain/models"

// ApplyFilter narrows the catalog to names satisfying the filter, preserving
// catalog order. It is a pure function: no side effects, no error path —
// contradictory or unsupported combinations yield an empty result so a query
// can degrade but never fail.
func ApplyFilter(filter models.Filter, catalog []models.Name) []models.Name {
	filter = filter.Normalized()
	if filter.Contradictory() {
		return nil
	}

	var out []models.Name
	for _, name := range catalog {
		if filter.Matches(name) {
			out = append(out, name)
		}
	}
	return out
}
