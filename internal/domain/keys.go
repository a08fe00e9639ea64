package domain

// Ключи локального хранилища — единое место, чтобы не расползались по коду.
// userToken/userData пишет внешний флоу авторизации, остальные — наши сторы.
const (
	KeyUserToken = "userToken"
	KeyUserData  = "userData"
)

func KeyFavorites(id IdentityKey) string { return "favoritos_" + id }
func KeyCart(id IdentityKey) string      { return "cart_" + id }
