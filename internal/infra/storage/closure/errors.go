package closure

import "errors"

var (
	// ErrAlreadyClosed возвращается, когда дата уже закрыта
	ErrAlreadyClosed = errors.New("closure.repository: date already closed")

	// ErrNotClosed возвращается, когда дата не закрыта
	ErrNotClosed = errors.New("closure.repository: date not closed")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("closure.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("closure.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("closure.repository: failed to scan row")
)
