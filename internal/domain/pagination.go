package domain

const (
	DefaultPage  = 1
	DefaultLimit = 20
)

// Page — постраничный ответ бэкенда.
type Page[T any] struct {
	Items      []T `json:"items"`
	Total      int `json:"total"`
	Page       int `json:"page"`
	Limit      int `json:"limit"`
	TotalPages int `json:"total_pages"`
}

// EmptyPage — значение по умолчанию, которое витрина показывает при ошибке бэкенда.
func EmptyPage[T any]() Page[T] {
	return Page[T]{
		Items:      []T{},
		Total:      0,
		Page:       DefaultPage,
		Limit:      DefaultLimit,
		TotalPages: 0,
	}
}
