package http

import (
	"net/http"
	"strings"

	"github.com/shopspring/decimal"

	"workworth/internal/core"
)

// parseFilter extracts the history search criteria from query parameters:
// q (substring), labels (comma-separated ids), min and max (inclusive price
// bounds). Malformed price bounds are ignored rather than rejected.
func parseFilter(r *http.Request) core.Filter {
	q := r.URL.Query()

	filter := core.Filter{Query: strings.TrimSpace(q.Get("q"))}

	if raw := strings.TrimSpace(q.Get("labels")); raw != "" {
		for _, id := range strings.Split(raw, ",") {
			if id = strings.TrimSpace(id); id != "" {
				filter.LabelIDs = append(filter.LabelIDs, id)
			}
		}
	}

	if raw := strings.TrimSpace(q.Get("min")); raw != "" {
		if d, err := decimal.NewFromString(raw); err == nil {
			filter.MinPrice = &d
		}
	}
	if raw := strings.TrimSpace(q.Get("max")); raw != "" {
		if d, err := decimal.NewFromString(raw); err == nil {
			filter.MaxPrice = &d
		}
	}

	return filter
}

// parseSortOrder maps the sort query parameter onto a core.SortOrder,
// defaulting to newest first.
func parseSortOrder(r *http.Request) core.SortOrder {
	switch core.SortOrder(strings.TrimSpace(r.URL.Query().Get("sort"))) {
	case core.SortOldestFirst:
		return core.SortOldestFirst
	case core.SortPriceHighToLow:
		return core.SortPriceHighToLow
	case core.SortPriceLowToHigh:
		return core.SortPriceLowToHigh
	case core.SortNameAZ:
		return core.SortNameAZ
	default:
		return core.SortNewestFirst
	}
}

// pathID returns the trailing path segment after the given prefix, e.g. the
// transaction id in /api/transactions/{id}.
func pathID(r *http.Request, prefix string) string {
	return strings.Trim(strings.TrimPrefix(r.URL.Path, prefix), "/")
}
