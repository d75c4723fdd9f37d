package create_block

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_block: invalid input data")

	// ErrZoneNotFound возвращается, когда зона не найдена
	ErrZoneNotFound = errors.New("create_block: zone not found")

	// ErrTableNotFound возвращается, когда стол не найден
	ErrTableNotFound = errors.New("create_block: table not found")

	// ErrConflict возвращается, когда стол уже занят в эту смену
	ErrConflict = errors.New("create_block: table already taken")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_block: internal error")
)
