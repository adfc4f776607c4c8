package domain

import "errors"

var (
	// ErrCustomerNotFound возвращается, если клиент не найден в хранилище.
	ErrCustomerNotFound = errors.New("customer not found")
	// ErrAccountNotFound возвращается, если учётная запись не найдена.
	ErrAccountNotFound = errors.New("customer account not found")
	// ErrProductNotFound возвращается, если товар не найден в каталоге.
	ErrProductNotFound = errors.New("product not found")
	// ErrOrderNotFound возвращается, если заказ не найден.
	ErrOrderNotFound = errors.New("order not found")

	// Ошибка отсутствующего имени клиента или названия товара.
	ErrNameRequired = errors.New("name is required")
	// Ошибка отсутствующего email.
	ErrEmailRequired = errors.New("email is required")
	// Ошибка отсутствующего номера телефона.
	ErrPhoneRequired = errors.New("phone_number is required")
	// Ошибка отсутствующего имени пользователя.
	ErrUsernameRequired = errors.New("username is required")
	// Ошибка отсутствующего пароля.
	ErrPasswordRequired = errors.New("password is required")
	// Ошибка отрицательной цены товара.
	ErrPriceNegative = errors.New("price must be non-negative")

	// Ошибка отсутствующего идентификатора клиента.
	ErrCustomerRequired = errors.New("customer_id is required")
	// Ошибка отсутствующей даты заказа.
	ErrOrderDateRequired = errors.New("order_date is required")
	// Ошибка отсутствия хотя бы одного товара в заказе.
	ErrItemsRequired = errors.New("order must contain at least one item")
	// Ошибка отсутствующего идентификатора товара в позиции.
	ErrItemProductRequired = errors.New("item product_id is required")
	// Ошибка при некорректном количестве товара (<= 0).
	ErrItemQtyInvalid = errors.New("item quantity must be greater than zero")

	// ErrEmailTaken — нарушение уникальности email клиента.
	ErrEmailTaken = errors.New("email is already taken")
	// ErrUsernameTaken — нарушение уникальности имени пользователя.
	ErrUsernameTaken = errors.New("username is already taken")

	// ErrIntegrity сигнализирует, что сохранённая ссылка не разрешается при чтении.
	// Это повреждение данных, а не ошибка запроса; наружу уходит как 500.
	ErrIntegrity = errors.New("stored reference does not resolve")
)

// IsNotFound проверяет, является ли ошибка отсутствием сущности.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrCustomerNotFound) ||
		errors.Is(err, ErrAccountNotFound) ||
		errors.Is(err, ErrProductNotFound) ||
		errors.Is(err, ErrOrderNotFound)
}

// IsValidation проверяет, является ли ошибка нарушением входных ограничений.
func IsValidation(err error) bool {
	return errors.Is(err, ErrNameRequired) ||
		errors.Is(err, ErrEmailRequired) ||
		errors.Is(err, ErrPhoneRequired) ||
		errors.Is(err, ErrUsernameRequired) ||
		errors.Is(err, ErrPasswordRequired) ||
		errors.Is(err, ErrPriceNegative) ||
		errors.Is(err, ErrCustomerRequired) ||
		errors.Is(err, ErrOrderDateRequired) ||
		errors.Is(err, ErrItemsRequired) ||
		errors.Is(err, ErrItemProductRequired) ||
		errors.Is(err, ErrItemQtyInvalid)
}

// IsConflict проверяет, является ли ошибка нарушением уникальности.
func IsConflict(err error) bool {
	return errors.Is(err, ErrEmailTaken) || errors.Is(err, ErrUsernameTaken)
}

// IsIntegrity проверяет, является ли ошибка нарушением целостности ссылок.
func IsIntegrity(err error) bool {
	return errors.Is(err, ErrIntegrity)
}
