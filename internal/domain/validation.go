package domain

// Бизнес-правило корзины: количество всегда в [1, 5].
// Сторы верхнюю границу не проверяют — это ответственность вызывающего слоя
// (хендлеры web проверяют перед мутацией).
const (
	MinQuantity = 1
	MaxQuantity = 5
)

func ValidQuantity(q int) bool {
	return q >= MinQuantity && q <= MaxQuantity
}
