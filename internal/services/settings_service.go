package services

import (
	"context"
	"encoding/json"
	"errors"
	"strings"

	apperrors "github.com/vladimiradmaev/lunchlego/internal/errors"
	"github.com/vladimiradmaev/lunchlego/internal/repository"
)

const maxSettingKeyLength = 64

type SettingsService struct {
	settings *repository.SettingsRepository
}

func NewSettingsService(settings *repository.SettingsRepository) *SettingsService {
	return &SettingsService{settings: settings}
}

func (s *SettingsService) GetSetting(ctx context.Context, key string) (json.RawMessage, error) {
	value, err := s.settings.Get(ctx, key)
	if err != nil {
		return nil, storeError(err, apperrors.ErrSettingNotFound)
	}
	return json.RawMessage(value), nil
}

// SetSetting stores any JSON value under key
func (s *SettingsService) SetSetting(ctx context.Context, key string, value json.RawMessage) error {
	key = strings.TrimSpace(key)
	if key == "" || len(key) > maxSettingKeyLength {
		return apperrors.NewValidationError("setting key must be 1 to 64 characters")
	}
	if !json.Valid(value) {
		return apperrors.NewValidationError("setting value must be valid JSON")
	}

	if err := s.settings.Set(ctx, key, string(value)); err != nil {
		return apperrors.NewDatabaseError(err)
	}
	return nil
}

func (s *SettingsService) AllSettings(ctx context.Context) (map[string]json.RawMessage, error) {
	values, err := s.settings.All(ctx)
	if err != nil {
		return nil, apperrors.NewDatabaseError(err)
	}
	out := make(map[string]json.RawMessage, len(values))
	for k, v := range values {
		out[k] = json.RawMessage(v)
	}
	return out, nil
}

// Bool reads a boolean setting, treating a missing or non-boolean value as false
func (s *SettingsService) Bool(ctx context.Context, key string) (bool, error) {
	raw, err := s.GetSetting(ctx, key)
	if errors.Is(err, apperrors.ErrSettingNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}

	var b bool
	if err := json.Unmarshal(raw, &b); err != nil {
		return false, nil
	}
	return b, nil
}
