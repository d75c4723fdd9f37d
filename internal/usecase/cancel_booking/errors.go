package cancel_booking

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("cancel_booking: invalid input data")

	// ErrBookingNotFound возвращается, когда бронирование с таким токеном не найдено
	ErrBookingNotFound = errors.New("cancel_booking: booking not found")

	// ErrLateCancellation возвращается, когда до визита осталось меньше минимального срока отмены
	ErrLateCancellation = errors.New("cancel_booking: too late to cancel")

	// ErrCannotCancel возвращается для завершённых бронирований и блокировок
	ErrCannotCancel = errors.New("cancel_booking: booking cannot be cancelled")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("cancel_booking: internal error")
)
