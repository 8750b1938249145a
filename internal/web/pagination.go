package web

import (
	"net/http"
	"strconv"

	"dog-show-club/internal/apperr"
)

const DefaultLimit = 20

// PageParams son los parámetros de paginación ya validados.
type PageParams struct {
	Page  int
	Limit int
}

func (p PageParams) Offset() int {
	return (p.Page - 1) * p.Limit
}

// ParsePage lee ?page y ?limit con defaults y tope por entidad.
// Valores no numéricos o fuera de rango => VALIDATION_ERROR.
func ParsePage(r *http.Request, maxLimit int) (PageParams, error) {
	p := PageParams{Page: 1, Limit: DefaultLimit}

	if v := r.URL.Query().Get("page"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			return PageParams{}, apperr.Validation("page must be a positive integer")
		}
		p.Page = n
	}

	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 || n > maxLimit {
			return PageParams{}, apperr.Newf(apperr.KindValidation, "limit must be between 1 and %d", maxLimit)
		}
		p.Limit = n
	}

	return p, nil
}

// Pagination es la parte de metadata del envelope de listados.
type Pagination struct {
	Page  int `json:"page"`
	Limit int `json:"limit"`
	Total int `json:"total"`
	Pages int `json:"pages"`
}

// Paginated es el envelope {data, pagination}.
type Paginated[T any] struct {
	Data       []T        `json:"data"`
	Pagination Pagination `json:"pagination"`
}

func NewPaginated[T any](items []T, p PageParams, total int) Paginated[T] {
	pages := 0
	if total > 0 {
		pages = (total + p.Limit - 1) / p.Limit
	}
	if items == nil {
		items = []T{}
	}
	return Paginated[T]{
		Data: items,
		Pagination: Pagination{
			Page:  p.Page,
			Limit: p.Limit,
			Total: total,
			Pages: pages,
		},
	}
}
