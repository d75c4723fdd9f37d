package check_availability

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("check_availability: invalid input data")

	// ErrStrategyFailed возвращается стратегией при ошибке хранилища
	ErrStrategyFailed = errors.New("check_availability: strategy failed")
)
