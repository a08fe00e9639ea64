package domain

// Идентичность текущего пользователя: email, числовой id строкой
// или сентинел "anonymous". Меняется только на явных login/logout.
type IdentityKey = string

const IdentityAnonymous IdentityKey = "anonymous"

// Идентификатор товара в каталоге (числовой, как отдаёт бекенд).
type ProductID = int64

// Пользователь из записи сессии (userData). Пишется внешним флоу авторизации,
// мы только читаем.
type SessionUser struct {
	ID    int64  `json:"id"`
	Email string `json:"email,omitempty"`
	Name  string `json:"nombre,omitempty"`
}

// Позиция корзины. JSON-теги повторяют формат бекенда (испанские имена),
// в таком же виде позиции лежат в локальном хранилище.
type CartLine struct {
	ProductID ProductID `json:"id"`
	Name      string    `json:"nombre"`
	UnitPrice string    `json:"precio"`
	ImagePath string    `json:"imagen"`
	Quantity  int       `json:"cantidad"`
	Size      string    `json:"talla,omitempty"`
	Color     string    `json:"color,omitempty"`
}

// Товар каталога (контракт удалённого API; поля сверх перечисленных не разбираем).
type Product struct {
	ID          ProductID `json:"id"`
	Name        string    `json:"nombre"`
	Price       string    `json:"precio"`
	Image       string    `json:"imagen"`
	Description string    `json:"descripcion,omitempty"`
	Category    string    `json:"categoria,omitempty"`
	Stock       int       `json:"stock,omitempty"`
}

// Позиция заказа при оформлении (POST на бекенд).
type OrderItem struct {
	ProductID ProductID `json:"id_producto"`
	Size      string    `json:"talla,omitempty"`
	Color     string    `json:"color,omitempty"`
	Quantity  int       `json:"cantidad"`
}
