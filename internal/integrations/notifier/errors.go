package notifier

import "errors"

var (
	// ErrQueueFull возвращается, когда буфер диспетчера заполнен
	ErrQueueFull = errors.New("notifier: queue is full")

	// ErrClosed возвращается после остановки диспетчера
	ErrClosed = errors.New("notifier: dispatcher closed")

	// ErrDelivery возвращается при ошибке доставки в приёмник
	ErrDelivery = errors.New("notifier: delivery failed")
)
