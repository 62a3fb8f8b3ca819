package dto

import (
	"net/url"
	"strconv"
)

// Envelope forma común de las respuestas del backend: {success, data, message?}.
// En respuestas de error llega {success:false, error, message}.
type Envelope[T any] struct {
	Success bool   `json:"success"`
	Data    T      `json:"data"`
	Message string `json:"message,omitempty"`
	Error   string `json:"error,omitempty"`
}

// Pagination metadatos de página devueltos por el backend.
type Pagination struct {
	Page       int `json:"page"`
	Limit      int `json:"limit"`
	Total      int `json:"total,omitempty"`
	TotalPages int `json:"total_pages,omitempty"`
}

// Paginated listado paginado: {success, data[], pagination}.
type Paginated[T any] struct {
	Success    bool       `json:"success"`
	Data       []T        `json:"data"`
	Pagination Pagination `json:"pagination"`
	Message    string     `json:"message,omitempty"`
}

// PageRequest paginación para listados.
type PageRequest struct {
	Page  int `query:"page"`
	Limit int `query:"limit"`
}

// encode agrega page/limit a q solo si son positivos.
func (p PageRequest) encode(q url.Values) {
	if p.Page > 0 {
		q.Set("page", strconv.Itoa(p.Page))
	}
	if p.Limit > 0 {
		q.Set("limit", strconv.Itoa(p.Limit))
	}
}

// ErrorResponse cuerpo de error HTTP del dashboard.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}
