package domain

import "math"

const (
	DefaultPerPage uint32 = 9
	MaxPerPage     uint32 = 100
)

// PageQuery 是调用方传入的分页请求，所有字段都可以省略
type PageQuery struct {
	Page    *uint32
	PerPage *uint32
	Query   *string
}

// PaginationParameters 是规范化之后交给 repository 的分页参数
type PaginationParameters struct {
	Page         uint32
	ItemsPerPage uint32
	Query        *string
}

type PaginationResponse struct {
	CurrentPage uint32 `json:"currentPage"`
	TotalItems  uint64 `json:"totalItems"`
	TotalPages  uint32 `json:"totalPages"`
}

// Paginated 是分页查询的返回值
type Paginated[T any] struct {
	Pagination PaginationResponse `json:"pagination"`
	Data       []T                `json:"data"`
}

func (q PageQuery) Normalize() PaginationParameters {
	page := uint32(1)
	if q.Page != nil && *q.Page > 0 {
		page = *q.Page
	}

	perPage := DefaultPerPage
	if q.PerPage != nil && *q.PerPage > 0 {
		perPage = min(*q.PerPage, MaxPerPage)
	}

	var query *string
	if q.Query != nil && *q.Query != "" {
		query = q.Query
	}

	return PaginationParameters{
		Page:         page,
		ItemsPerPage: perPage,
		Query:        query,
	}
}

func (p PaginationParameters) Offset() uint64 {
	if p.Page == 0 {
		return 0
	}
	return uint64(p.Page-1) * uint64(p.ItemsPerPage)
}

func NewPaginationResponse(params PaginationParameters, totalItems uint64) PaginationResponse {
	perPage := uint64(params.ItemsPerPage)
	if perPage == 0 {
		perPage = uint64(DefaultPerPage)
	}

	page := params.Page
	if page == 0 {
		page = 1
	}

	return PaginationResponse{
		CurrentPage: page,
		TotalItems:  totalItems,
		TotalPages:  totalPages(totalItems, perPage),
	}
}

// Paginate 根据请求的页码、每页数量和总数计算分页信息，本身不查询任何数据
func Paginate(page, perPage *uint32, totalItems uint64) PaginationResponse {
	params := PageQuery{Page: page, PerPage: perPage}.Normalize()
	return NewPaginationResponse(params, totalItems)
}

func NewPaginated[T any](data []T, params PaginationParameters, totalItems uint64) *Paginated[T] {
	if data == nil {
		data = make([]T, 0)
	}
	return &Paginated[T]{
		Pagination: NewPaginationResponse(params, totalItems),
		Data:       data,
	}
}

// totalPages 向上取整，超出 uint32 范围时取最大值
func totalPages(totalItems, perPage uint64) uint32 {
	pages := totalItems / perPage
	if totalItems%perPage != 0 {
		pages++
	}
	return uint32(min(pages, math.MaxUint32))
}
