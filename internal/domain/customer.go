package domain

// Customer — покупатель. Email уникален в пределах хранилища.
type Customer struct {
	ID    int64
	Name  string
	Email string
	Phone string
}

// Validate проверяет обязательные поля клиента.
func (c *Customer) Validate() []error {
	var errs []error
	if c.Name == "" {
		errs = append(errs, ErrNameRequired)
	}
	if c.Email == "" {
		errs = append(errs, ErrEmailRequired)
	}
	if c.Phone == "" {
		errs = append(errs, ErrPhoneRequired)
	}
	return errs
}

// CustomerAccount — учётная запись клиента. Username уникален.
// Аутентификация вне зоны ответственности сервиса, пароль хранится как есть.
// TODO: хешировать пароль перед сохранением, когда появится слой аутентификации.
type CustomerAccount struct {
	ID         int64
	Username   string
	Password   string
	CustomerID int64
}

// Validate проверяет обязательные поля учётной записи.
func (a *CustomerAccount) Validate() []error {
	var errs []error
	if a.Username == "" {
		errs = append(errs, ErrUsernameRequired)
	}
	if a.Password == "" {
		errs = append(errs, ErrPasswordRequired)
	}
	if a.CustomerID <= 0 {
		errs = append(errs, ErrCustomerRequired)
	}
	return errs
}
