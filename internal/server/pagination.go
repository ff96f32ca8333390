package server

import (
	"photo-hunt/internal/web"

	"gorm.io/gorm"
)

// pageQuery is bound from ?page=&per_page=. Zero means the default.
type pageQuery struct {
	Page    int `form:"page" binding:"omitempty,min=1"`
	PerPage int `form:"per_page" binding:"omitempty,min=1"`
}

// window applies defaults and caps per_page at maxPerPage.
func (q pageQuery) window(defaultPerPage, maxPerPage int) (int, int) {
	page, perPage := q.Page, q.PerPage
	if page < 1 {
		page = 1
	}
	if perPage < 1 {
		perPage = defaultPerPage
	}
	if maxPerPage > 0 && perPage > maxPerPage {
		perPage = maxPerPage
	}
	return page, perPage
}

// pageFor clamps page into the range covered by total rows.
func pageFor(page, perPage int, total int64) web.PaginationData {
	if perPage < 1 {
		perPage = 1
	}
	pages := int((total + int64(perPage) - 1) / int64(perPage))
	if pages < 1 {
		pages = 1
	}
	page = min(max(page, 1), pages)
	data := web.PaginationData{
		Page:       page,
		PerPage:    perPage,
		Total:      int(total),
		TotalPages: pages,
		HasPrev:    page > 1,
		HasNext:    page < pages,
	}
	if data.HasPrev {
		data.PrevPage = page - 1
	}
	if data.HasNext {
		data.NextPage = page + 1
	}
	return data
}

// paginated limits a query to the rows of one page.
func paginated(data web.PaginationData) func(*gorm.DB) *gorm.DB {
	return func(tx *gorm.DB) *gorm.DB {
		return tx.Limit(data.PerPage).Offset((data.Page - 1) * data.PerPage)
	}
}
