package closure

import "errors"

var (
	// ErrAlreadyBlocked возвращается, когда день уже закрыт
	ErrAlreadyBlocked = errors.New("closure: day already blocked")

	// ErrNotBlocked возвращается, когда день не был закрыт
	ErrNotBlocked = errors.New("closure: day is not blocked")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("closure: invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("closure: internal error")
)
