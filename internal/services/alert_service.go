package services

import (
	"context"
	"time"

	"github.com/vladimiradmaev/lunchlego/internal/domain"
	"github.com/vladimiradmaev/lunchlego/internal/logger"
	"github.com/vladimiradmaev/lunchlego/internal/notify"
	"github.com/vladimiradmaev/lunchlego/internal/state"
)

// EventPantryExpiring is published to clients watching all kids
const EventPantryExpiring = "pantry.expiring"

const alertMarkTTL = 24 * time.Hour

// AlertService periodically checks the pantry and sends at most one
// expiration alert per calendar day while notifications are enabled.
type AlertService struct {
	expiration *ExpirationService
	settings   *SettingsService
	marks      state.StateManager
	notifier   notify.Notifier
	events     Publisher
	interval   time.Duration
	now        func() time.Time
}

func NewAlertService(
	expiration *ExpirationService,
	settings *SettingsService,
	marks state.StateManager,
	notifier notify.Notifier,
	events Publisher,
	interval time.Duration,
) *AlertService {
	if interval <= 0 {
		interval = time.Hour
	}
	return &AlertService{
		expiration: expiration,
		settings:   settings,
		marks:      marks,
		notifier:   notifier,
		events:     events,
		interval:   interval,
		now:        time.Now,
	}
}

// Run checks once right away and then on every tick until ctx is done
func (s *AlertService) Run(ctx context.Context) {
	log := logger.WithComponent("alerts")
	log.Info("Expiration alerts started", "interval", s.interval.String())

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		if _, err := s.CheckAndNotify(ctx); err != nil {
			log.Error("Expiration check failed", "error", err)
		}

		select {
		case <-ctx.Done():
			log.Info("Expiration alerts stopped")
			return
		case <-ticker.C:
		}
	}
}

// CheckAndNotify reports whether an alert was sent
func (s *AlertService) CheckAndNotify(ctx context.Context) (bool, error) {
	enabled, err := s.settings.Bool(ctx, domain.SettingNotifications)
	if err != nil {
		return false, err
	}
	if !enabled {
		return false, nil
	}

	report, err := s.expiration.Check(ctx, s.now())
	if err != nil {
		return false, err
	}
	if report.Total() == 0 {
		return false, nil
	}

	first, err := s.marks.MarkOnce(ctx, "expiry-alert:"+report.Date, alertMarkTTL)
	if err != nil {
		return false, err
	}
	if !first {
		return false, nil
	}

	if s.events != nil {
		s.events.Broadcast(EventPantryExpiring, "", report)
	}
	if err := s.notifier.Notify(ctx, notify.FormatExpirationMessage(report)); err != nil {
		return false, err
	}

	logger.Info("Expiration alert sent",
		"date", report.Date,
		"expired", len(report.Expired),
		"expiring_soon", len(report.ExpiringSoon))
	return true, nil
}
