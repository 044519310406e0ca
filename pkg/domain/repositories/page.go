// Package repositories declares the read/write interfaces the planning
// core uses to reach the external store. The core never talks to a
// concrete database; pkg/infrastructure/storeadapter provides the
// in-memory reference implementation used by tests and the CLI.
package repositories

// Page is the shared pagination envelope for every list method below.
type Page[T any] struct {
	Items      []T
	Page       int
	Limit      int
	Total      int
	TotalPages int
	HasNext    bool
	HasPrev    bool
}

// Paginate slices items into a Page given a 1-indexed page number and a
// per-page limit. A limit <= 0 returns every item on a single page.
func Paginate[T any](items []T, page, limit int) Page[T] {
	total := len(items)
	if limit <= 0 {
		return Page[T]{Items: items, Page: 1, Limit: total, Total: total, TotalPages: 1}
	}
	if page < 1 {
		page = 1
	}
	totalPages := (total + limit - 1) / limit
	if totalPages == 0 {
		totalPages = 1
	}
	start := (page - 1) * limit
	if start > total {
		start = total
	}
	end := start + limit
	if end > total {
		end = total
	}
	return Page[T]{
		Items:      items[start:end],
		Page:       page,
		Limit:      limit,
		Total:      total,
		TotalPages: totalPages,
		HasNext:    page < totalPages,
		HasPrev:    page > 1,
	}
}
