package position

import (
	"sort"
	"strings"

	"github.com/shopspring/decimal"
)

// Listing is the searchable view of a position.
type Listing struct {
	ID          string
	Name        string
	Description string
	BaseSalary  decimal.Decimal
}

// Page describes one page of a listing. Items [Start, End) belong to it.
type Page struct {
	Page       int
	PageSize   int
	TotalPages int
	Total      int
	Start      int
	End        int
}

// Search keeps the listings whose name, description or salary contains
// query, ignoring case. A blank query keeps everything.
func Search(items []Listing, query string) []Listing {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return items
	}

	var out []Listing
	for _, it := range items {
		if matches(it, q) {
			out = append(out, it)
		}
	}
	return out
}

func matches(it Listing, q string) bool {
	fields := []string{
		it.Name,
		it.Description,
		it.BaseSalary.String(),
		it.BaseSalary.StringFixed(2),
	}
	for _, f := range fields {
		if strings.Contains(strings.ToLower(f), q) {
			return true
		}
	}
	return false
}

// SortByName orders listings A-Z by name ignoring case, then by ID.
func SortByName(items []Listing) {
	sort.SliceStable(items, func(i, j int) bool {
		a, b := strings.ToLower(items[i].Name), strings.ToLower(items[j].Name)
		if a != b {
			return a < b
		}
		return items[i].ID < items[j].ID
	})
}

// Paginate computes the bounds of the requested page.
// Page size below 1 becomes 1, and page is clamped to [1, TotalPages].
// An empty listing still has one (empty) page.
func Paginate(total, page, pageSize int) Page {
	if pageSize < 1 {
		pageSize = 1
	}
	totalPages := (total + pageSize - 1) / pageSize
	if totalPages < 1 {
		totalPages = 1
	}
	if page < 1 {
		page = 1
	}
	if page > totalPages {
		page = totalPages
	}

	start := (page - 1) * pageSize
	if start > total {
		start = total
	}
	end := start + pageSize
	if end > total {
		end = total
	}

	return Page{
		Page:       page,
		PageSize:   pageSize,
		TotalPages: totalPages,
		Total:      total,
		Start:      start,
		End:        end,
	}
}
