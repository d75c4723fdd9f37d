package inventory

import "errors"

var (
	// ErrZoneNotFound возвращается, когда зона не найдена
	ErrZoneNotFound = errors.New("inventory.repository: zone not found")

	// ErrTableNotFound возвращается, когда стол не найден
	ErrTableNotFound = errors.New("inventory.repository: table not found")

	// ErrInvalidReference возвращается при ссылке на несуществующую зону
	ErrInvalidReference = errors.New("inventory.repository: invalid reference")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("inventory.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("inventory.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("inventory.repository: failed to scan row")
)
