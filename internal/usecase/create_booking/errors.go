package create_booking

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_booking: invalid input data")

	// ErrDateClosed возвращается, когда ресторан закрыт в указанную дату
	ErrDateClosed = errors.New("create_booking: restaurant is closed on this date")

	// ErrBookingInPast возвращается при попытке забронировать прошедшее время
	ErrBookingInPast = errors.New("create_booking: booking time is in the past")

	// ErrZoneNotFound возвращается, когда зона не найдена
	ErrZoneNotFound = errors.New("create_booking: zone not found")

	// ErrTableNotFound возвращается, когда выбранный стол не найден
	ErrTableNotFound = errors.New("create_booking: table not found")

	// ErrZoneBlocked возвращается, когда зона заблокирована администратором на эту смену
	ErrZoneBlocked = errors.New("create_booking: zone is blocked for this turn")

	// ErrConflict возвращается, когда выбранный стол уже занят или транзакция конкурирует с другой
	ErrConflict = errors.New("create_booking: table is no longer available")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_booking: internal error")
)
