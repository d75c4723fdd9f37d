package payment

import "errors"

var (
	// ErrNotConfigured возвращается, если адрес платёжного webhook не задан
	ErrNotConfigured = errors.New("payment client: webhook url not configured")

	// ErrInternal возвращается при внутренних ошибках клиента
	ErrInternal = errors.New("payment client: internal error")

	// ErrInvalidResponse возвращается при некорректном ответе от платёжного сервиса
	ErrInvalidResponse = errors.New("payment client: invalid response")
)
