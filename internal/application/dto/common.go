package dto

// ErrorResponse cuerpo de error HTTP.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ListResponse vista derivada de un store con sus filtros activos.
type ListResponse[T any, F any] struct {
	Items   []T      `json:"items"`
	Count   int      `json:"count"`
	Periods []string `json:"periods"`
	Filters F        `json:"filters"`
	Version uint64   `json:"version"`
}
