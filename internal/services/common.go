package services

import (
	"errors"
	"strings"
	"time"

	"github.com/vladimiradmaev/lunchlego/internal/domain"
	apperrors "github.com/vladimiradmaev/lunchlego/internal/errors"
	"github.com/vladimiradmaev/lunchlego/internal/repository"
)

// Publisher receives change events for connected clients
type Publisher interface {
	Broadcast(eventType, kidID string, payload interface{})
}

// Event types published by the planner
const (
	EventLunchBoxUpdated = "lunchbox.updated"
	EventLunchBoxDeleted = "lunchbox.deleted"
)

// now is millisecond precision so timestamps survive every storage driver unchanged
func now() time.Time {
	return time.Now().UTC().Truncate(time.Millisecond)
}

func storeError(err error, notFound *apperrors.AppError) error {
	if errors.Is(err, repository.ErrNotFound) {
		return notFound
	}
	return apperrors.NewDatabaseError(err)
}

// cleanList trims entries and drops blanks and case-insensitive duplicates
func cleanList(in []string) []string {
	out := make([]string, 0, len(in))
	seen := make(map[string]bool, len(in))
	for _, s := range in {
		s = strings.TrimSpace(s)
		key := strings.ToLower(s)
		if s == "" || seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, s)
	}
	return out
}

var (
	_ domain.KidService         = (*KidService)(nil)
	_ domain.PantryService      = (*PantryService)(nil)
	_ domain.PlannerService     = (*PlannerService)(nil)
	_ domain.SnapshotService    = (*SnapshotService)(nil)
	_ domain.SettingsService    = (*SettingsService)(nil)
	_ domain.ExpirationService  = (*ExpirationService)(nil)
	_ domain.NutritionEstimator = (*GeminiEstimator)(nil)
	_ domain.NutritionEstimator = NoEstimator{}
)
