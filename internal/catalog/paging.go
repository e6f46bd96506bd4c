package catalog

import "github.com/fjod/storefront/internal/domain"

// PageSize is the number of products per catalog page.
const PageSize = 8

type Page struct {
	Products   []*domain.Product `json:"products"`
	PageIndex  int               `json:"page_index"`
	TotalPages int               `json:"total_pages"`
}

// Paginate slices products for a 1-based page. The page is clamped to
// [1, TotalPages] and TotalPages is at least 1.
func Paginate(products []*domain.Product, pageIndex, pageSize int) Page {
	if pageSize <= 0 {
		pageSize = PageSize
	}
	totalPages := (len(products) + pageSize - 1) / pageSize
	if totalPages == 0 {
		totalPages = 1
	}
	if pageIndex < 1 {
		pageIndex = 1
	}
	if pageIndex > totalPages {
		pageIndex = totalPages
	}

	start := (pageIndex - 1) * pageSize
	end := min(start+pageSize, len(products))
	page := make([]*domain.Product, 0, end-start)
	if start < end {
		page = append(page, products[start:end]...)
	}

	return Page{Products: page, PageIndex: pageIndex, TotalPages: totalPages}
}
