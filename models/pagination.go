package models

// The two resources report pagination with different key names; both shapes
// are kept as-is because clients depend on them.

type PropertyPagination struct {
	CurrentPage     int   `json:"currentPage"`
	TotalPages      int   `json:"totalPages"`
	TotalProperties int64 `json:"totalProperties"`
	Limit           int   `json:"limit"`
	HasNext         bool  `json:"hasNext"`
	HasPrev         bool  `json:"hasPrev"`
}

type UserPagination struct {
	CurrentPage int   `json:"currentPage"`
	TotalPages  int   `json:"totalPages"`
	TotalUsers  int64 `json:"totalUsers"`
	HasNextPage bool  `json:"hasNextPage"`
	HasPrevPage bool  `json:"hasPrevPage"`
	Limit       int   `json:"limit"`
}

type SearchInfo struct {
	Query        string `json:"query"`
	Role         string `json:"role"`
	Department   string `json:"department"`
	TotalResults int64  `json:"totalResults"`
}

func TotalPages(total int64, limit int) int {
	if limit <= 0 {
		return 0
	}
	pages := int(total) / limit
	if int(total)%limit != 0 {
		pages++
	}
	return pages
}

func NewPropertyPagination(page, limit int, total int64) PropertyPagination {
	totalPages := TotalPages(total, limit)
	return PropertyPagination{
		CurrentPage:     page,
		TotalPages:      totalPages,
		TotalProperties: total,
		Limit:           limit,
		HasNext:         page < totalPages,
		HasPrev:         page > 1,
	}
}

func NewUserPagination(page, limit int, total int64) UserPagination {
	totalPages := TotalPages(total, limit)
	return UserPagination{
		CurrentPage: page,
		TotalPages:  totalPages,
		TotalUsers:  total,
		HasNextPage: page < totalPages,
		HasPrevPage: page > 1,
		Limit:       limit,
	}
}
