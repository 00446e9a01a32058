package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/vladimiradmaev/lunchlego/internal/domain"
	apperrors "github.com/vladimiradmaev/lunchlego/internal/errors"
	"github.com/vladimiradmaev/lunchlego/internal/logger"
	"github.com/vladimiradmaev/lunchlego/internal/repository"
	"github.com/vladimiradmaev/lunchlego/internal/utils"
)

// SnapshotVersion is written into every export
const SnapshotVersion = "1.0.0"

// Snapshot is the backup document covering the whole dataset
type Snapshot struct {
	Version     string              `json:"version"`
	ExportDate  time.Time           `json:"exportDate"`
	Kids        []domain.Kid        `json:"kids"`
	Ingredients []domain.Ingredient `json:"ingredients"`
	LunchBoxes  []domain.LunchBox   `json:"lunchBoxes"`
}

type SnapshotService struct {
	snapshots *repository.SnapshotRepository
}

func NewSnapshotService(snapshots *repository.SnapshotRepository) *SnapshotService {
	return &SnapshotService{snapshots: snapshots}
}

// Export returns the indented JSON snapshot of every kid, ingredient and lunch box
func (s *SnapshotService) Export(ctx context.Context) ([]byte, error) {
	ds, err := s.snapshots.LoadAll(ctx)
	if err != nil {
		return nil, apperrors.NewDatabaseError(err)
	}

	data, err := json.MarshalIndent(Snapshot{
		Version:     SnapshotVersion,
		ExportDate:  now(),
		Kids:        ds.Kids,
		Ingredients: ds.Ingredients,
		LunchBoxes:  ds.LunchBoxes,
	}, "", "  ")
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}

	logger.Info("Snapshot exported",
		"kids", len(ds.Kids),
		"ingredients", len(ds.Ingredients),
		"lunch_boxes", len(ds.LunchBoxes))
	return data, nil
}

// Import replaces all three collections with the snapshot content.
// A document that does not decode fails with ErrInvalidFormat and changes nothing.
func (s *SnapshotService) Import(ctx context.Context, data []byte) error {
	snap, err := ParseSnapshot(data)
	if err != nil {
		return err
	}

	ds := &repository.Dataset{
		Kids:        snap.Kids,
		Ingredients: snap.Ingredients,
		LunchBoxes:  snap.LunchBoxes,
	}
	if err := s.snapshots.ReplaceAll(ctx, ds); err != nil {
		return apperrors.NewDatabaseError(err)
	}

	logger.Info("Snapshot imported",
		"version", snap.Version,
		"kids", len(ds.Kids),
		"ingredients", len(ds.Ingredients),
		"lunch_boxes", len(ds.LunchBoxes))
	return nil
}

// ParseSnapshot decodes and checks a snapshot document. Missing arrays come back empty.
func ParseSnapshot(data []byte) (*Snapshot, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return nil, apperrors.NewInvalidFormatError(fmt.Errorf("snapshot must be a JSON object"))
	}

	var snap Snapshot
	if err := json.Unmarshal(trimmed, &snap); err != nil {
		return nil, apperrors.NewInvalidFormatError(err)
	}

	if snap.Kids == nil {
		snap.Kids = []domain.Kid{}
	}
	if snap.Ingredients == nil {
		snap.Ingredients = []domain.Ingredient{}
	}
	if snap.LunchBoxes == nil {
		snap.LunchBoxes = []domain.LunchBox{}
	}
	if snap.Version != "" && !strings.HasPrefix(snap.Version, "1.") {
		logger.Warn("Importing snapshot with unknown version", "version", snap.Version)
	}

	if err := checkSnapshot(&snap); err != nil {
		return nil, apperrors.NewInvalidFormatError(err)
	}
	return &snap, nil
}

func checkSnapshot(snap *Snapshot) error {
	kidIDs := make(map[string]bool, len(snap.Kids))
	for _, k := range snap.Kids {
		if k.ID == "" || kidIDs[k.ID] {
			return fmt.Errorf("kid id %q is missing or duplicated", k.ID)
		}
		kidIDs[k.ID] = true
	}

	ingredientIDs := make(map[string]bool, len(snap.Ingredients))
	for _, ing := range snap.Ingredients {
		if ing.ID == "" || ingredientIDs[ing.ID] {
			return fmt.Errorf("ingredient id %q is missing or duplicated", ing.ID)
		}
		if !ing.Category.Valid() {
			return fmt.Errorf("ingredient %q has unknown category %q", ing.ID, ing.Category)
		}
		ingredientIDs[ing.ID] = true
	}

	boxIDs := make(map[string]bool, len(snap.LunchBoxes))
	days := make(map[string]bool, len(snap.LunchBoxes))
	for i := range snap.LunchBoxes {
		lb := &snap.LunchBoxes[i]
		if lb.ID == "" || boxIDs[lb.ID] {
			return fmt.Errorf("lunch box id %q is missing or duplicated", lb.ID)
		}
		boxIDs[lb.ID] = true

		lb.Date = utils.DateOnly(lb.Date)
		day := lb.KidID + "/" + utils.FormatDate(lb.Date)
		if days[day] {
			return fmt.Errorf("more than one lunch box for kid %q on %s", lb.KidID, utils.FormatDate(lb.Date))
		}
		days[day] = true

		if lb.Ingredients == nil {
			lb.Ingredients = []domain.LunchBoxIngredient{}
		}
		for _, item := range lb.Ingredients {
			if item.Quantity < 1 {
				return fmt.Errorf("lunch box %q has quantity %d", lb.ID, item.Quantity)
			}
			if item.Compartment < 1 || item.Compartment > domain.CompartmentCount {
				return fmt.Errorf("lunch box %q has compartment %d", lb.ID, item.Compartment)
			}
		}
	}
	return nil
}
