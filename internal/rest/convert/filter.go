// Package convert maps database types to REST API types.
package convert

import (
	"github.com/sweeplabs/modsweep/internal/database/types"
	restTypes "github.com/sweeplabs/modsweep/internal/rest/types"
)

// Filter converts a database filter to its export shape.
func Filter(filter *types.Filter) restTypes.FilterExport {
	return restTypes.FilterExport{
		ID:      filter.ID,
		Pattern: filter.Pattern,
		Type:    filter.Type.String(),
		Action:  filter.Action.String(),
		IsRegex: filter.IsRegex(),
	}
}

// Filters converts a slice of database filters.
func Filters(filters []*types.Filter) []restTypes.FilterExport {
	exports := make([]restTypes.FilterExport, 0, len(filters))
	for _, filter := range filters {
		exports = append(exports, Filter(filter))
	}

	return exports
}
