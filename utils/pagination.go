package utils

import (
	"strconv"

	"gorm.io/gorm"
)

// PageSize is the fixed number of items on every listing page.
const PageSize = 10

// Page is a bounded window over an ordered collection plus the metadata the
// templates need to render pagination controls.
type Page struct {
	CurrentPage int
	TotalPages  int
	TotalItems  int
	HasNext     bool
	HasPrev     bool
}

func (p Page) NextPage() int { return p.CurrentPage + 1 }
func (p Page) PrevPage() int { return p.CurrentPage - 1 }

// ParsePageNumber interprets a raw "page" query parameter. Anything that is
// not a positive integer means page 1.
func ParsePageNumber(raw string) int {
	page, err := strconv.Atoi(raw)
	if err != nil || page < 1 {
		return 1
	}
	return page
}

// ClampPage snaps an out-of-range page number to the nearest valid page. A
// collection always has at least one (possibly empty) page.
func ClampPage(page, totalItems, pageSize int) (clamped, totalPages int) {
	totalPages = (totalItems + pageSize - 1) / pageSize
	if totalPages < 1 {
		totalPages = 1
	}
	if page < 1 {
		page = 1
	}
	if page > totalPages {
		page = totalPages
	}
	return page, totalPages
}

// Paginate counts the given query, clamps the requested page number and loads
// the matching window into dest. The query must already carry its ordering,
// pagination itself is a pure LIMIT/OFFSET on top of it.
func Paginate(query *gorm.DB, requestedPage int, dest interface{}) (Page, error) {
	// A shared session so that counting and fetching do not pollute each
	// other's statement.
	tx := query.Session(&gorm.Session{})

	var total int64
	if err := tx.Count(&total).Error; err != nil {
		return Page{}, err
	}

	page, totalPages := ClampPage(requestedPage, int(total), PageSize)
	offset := (page - 1) * PageSize
	if err := tx.Offset(offset).Limit(PageSize).Find(dest).Error; err != nil {
		return Page{}, err
	}

	return Page{
		CurrentPage: page,
		TotalPages:  totalPages,
		TotalItems:  int(total),
		HasNext:     page < totalPages,
		HasPrev:     page > 1,
	}, nil
}
