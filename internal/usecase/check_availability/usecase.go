package check_availability

import (
	"context"
	"sync"
	"time"

	"github.com/m04kA/SMC-RestaurantBooking/internal/domain"
)

// Исходы расчёта для метрик
const (
	outcomeOK       = "ok"
	outcomeFallback = "fallback"
	outcomeFailed   = "failed"
)

// UseCase use case проверки доступности столов.
// Основная стратегия после ошибки отключается на время cooldown, затем пробуется снова.
type UseCase struct {
	primary      Strategy
	fallback     Strategy
	closure      ClosureChecker
	settings     SettingsProvider
	bookingRepo  BookingRepository
	inventory    InventoryRepository
	metrics      MetricsRecorder
	timeProvider TimeProvider
	logger       Logger

	cooldown       time.Duration
	mu             sync.Mutex
	unhealthyUntil time.Time
}

// NewUseCase создает новый экземпляр use case; metrics может быть nil
func NewUseCase(
	primary Strategy,
	fallback Strategy,
	closure ClosureChecker,
	settings SettingsProvider,
	bookingRepo BookingRepository,
	inventory InventoryRepository,
	metrics MetricsRecorder,
	cooldown time.Duration,
	logger Logger,
) *UseCase {
	return &UseCase{
		primary:      primary,
		fallback:     fallback,
		closure:      closure,
		settings:     settings,
		bookingRepo:  bookingRepo,
		inventory:    inventory,
		metrics:      metrics,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
		cooldown:     cooldown,
	}
}

// WithTimeProvider подменяет источник времени
func (uc *UseCase) WithTimeProvider(tp TimeProvider) *UseCase {
	uc.timeProvider = tp
	return uc
}

// Execute возвращает зоны со свободными столами для даты, смены и размера компании.
// Ошибки хранилища не пробрасываются: в худшем случае результат пустой.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CheckAvailability: tenant=%s, date=%s, turn=%s, pax=%d",
		req.TenantID, req.Date.Format(domain.DateFormat), req.Turn, req.PartySize)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CheckAvailability: validation failed: %v", err)
		return nil, err
	}

	date := domain.DateOnly(req.Date)
	turn := domain.Turn(req.Turn)
	resp := &Response{
		Date:      date,
		Turn:      turn,
		PartySize: req.PartySize,
		Zones:     []domain.ZoneAvailability{},
	}

	// 2. Закрытый день - пустой ответ
	closed, err := uc.closure.IsDateClosed(ctx, req.TenantID, date)
	if err != nil {
		uc.logger.Error("CheckAvailability: closure check failed: %v", err)
		return uc.fail(resp), nil
	}
	if closed {
		uc.logger.Info("CheckAvailability: tenant=%s is closed on %s", req.TenantID, date.Format(domain.DateFormat))
		resp.Closed = true
		resp.Strategy = StrategyClosed
		return resp, nil
	}

	// 3. Заблокированные зоны исключаются всегда, в том числе в гибком режиме
	blockedIDs, err := uc.bookingRepo.ListBlockedZoneIDs(ctx, req.TenantID, date, turn)
	if err != nil {
		uc.logger.Error("CheckAvailability: failed to read blocked zones: %v", err)
		return uc.fail(resp), nil
	}
	blocked := domain.IDSet(blockedIDs)

	// 4. Гибкий режим - все незаблокированные зоны без ограничения
	settings, err := uc.settings.Get(ctx, req.TenantID)
	if err != nil {
		uc.logger.Warn("CheckAvailability: settings unavailable, using defaults: %v", err)
		settings = domain.DefaultSettings()
	}

	if settings.FlexibleCapacity {
		zones, err := uc.inventory.ListZones(ctx, req.TenantID)
		if err != nil {
			uc.logger.Error("CheckAvailability: failed to list zones: %v", err)
			return uc.fail(resp), nil
		}
		resp.Zones = domain.FlexibleAvailability(zones, blocked)
		resp.Strategy = StrategyFlexible
		uc.record(StrategyFlexible, outcomeOK)
		return resp, nil
	}

	// 5. Строгий режим: основная стратегия, при ошибке - запасная
	zones, strategy, ok := uc.compute(ctx, req, date, turn)
	if !ok {
		return uc.fail(resp), nil
	}

	resp.Zones = excludeBlocked(zones, blocked)
	resp.Strategy = strategy

	uc.logger.Info("CheckAvailability: %d zones available via %s", len(resp.Zones), strategy)
	return resp, nil
}

func (uc *UseCase) compute(ctx context.Context, req *Request, date time.Time, turn domain.Turn) ([]domain.ZoneAvailability, string, bool) {
	if uc.primaryHealthy() {
		zones, err := uc.primary.Compute(ctx, req.TenantID, date, turn, req.PartySize)
		if err == nil {
			uc.record(uc.primary.Name(), outcomeOK)
			return zones, uc.primary.Name(), true
		}
		uc.logger.Warn("CheckAvailability: %s failed, switching to %s: %v", uc.primary.Name(), uc.fallback.Name(), err)
		uc.markPrimaryUnhealthy()
		uc.record(uc.primary.Name(), outcomeFailed)
	}

	zones, err := uc.fallback.Compute(ctx, req.TenantID, date, turn, req.PartySize)
	if err != nil {
		uc.logger.Error("CheckAvailability: %s failed: %v", uc.fallback.Name(), err)
		uc.record(uc.fallback.Name(), outcomeFailed)
		return nil, "", false
	}

	uc.record(uc.fallback.Name(), outcomeFallback)
	return zones, uc.fallback.Name(), true
}

func (uc *UseCase) primaryHealthy() bool {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	return !uc.timeProvider.Now().Before(uc.unhealthyUntil)
}

func (uc *UseCase) markPrimaryUnhealthy() {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	uc.unhealthyUntil = uc.timeProvider.Now().Add(uc.cooldown)
}

func (uc *UseCase) fail(resp *Response) *Response {
	resp.Strategy = StrategyNone
	resp.Zones = []domain.ZoneAvailability{}
	uc.record(StrategyNone, outcomeFailed)
	return resp
}

func (uc *UseCase) record(strategy, outcome string) {
	if uc.metrics != nil {
		uc.metrics.IncAvailability(strategy, outcome)
	}
}

func excludeBlocked(zones []domain.ZoneAvailability, blocked map[int64]struct{}) []domain.ZoneAvailability {
	result := make([]domain.ZoneAvailability, 0, len(zones))
	for _, z := range zones {
		if _, ok := blocked[z.ZoneID]; ok {
			continue
		}
		if z.AvailableSlots <= 0 {
			continue
		}
		result = append(result, z)
	}
	return result
}
