package services

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/vladimiradmaev/lunchlego/internal/domain"
	apperrors "github.com/vladimiradmaev/lunchlego/internal/errors"
	"github.com/vladimiradmaev/lunchlego/internal/repository"
)

const (
	minKidAge = 1
	maxKidAge = 18
)

type KidService struct {
	kids *repository.KidRepository
}

func NewKidService(kids *repository.KidRepository) *KidService {
	return &KidService{kids: kids}
}

func normalizeKid(kid *domain.Kid) error {
	kid.Name = strings.TrimSpace(kid.Name)
	if kid.Name == "" {
		return apperrors.NewValidationError("kid name is required")
	}
	if kid.Age < minKidAge || kid.Age > maxKidAge {
		return apperrors.NewValidationError("kid age must be between 1 and 18")
	}
	kid.Allergies = cleanList(kid.Allergies)
	kid.Preferences = cleanList(kid.Preferences)
	kid.Dislikes = cleanList(kid.Dislikes)
	return nil
}

func (s *KidService) CreateKid(ctx context.Context, kid domain.Kid) (*domain.Kid, error) {
	if err := normalizeKid(&kid); err != nil {
		return nil, err
	}

	if kid.ID == "" {
		kid.ID = uuid.NewString()
	}
	kid.CreatedAt = now()
	kid.UpdatedAt = kid.CreatedAt

	if err := s.kids.Save(ctx, &kid); err != nil {
		return nil, apperrors.NewDatabaseError(err)
	}
	return &kid, nil
}

func (s *KidService) GetKid(ctx context.Context, id string) (*domain.Kid, error) {
	kid, err := s.kids.Get(ctx, id)
	if err != nil {
		return nil, storeError(err, apperrors.ErrKidNotFound)
	}
	return kid, nil
}

func (s *KidService) ListKids(ctx context.Context) ([]domain.Kid, error) {
	kids, err := s.kids.List(ctx)
	if err != nil {
		return nil, apperrors.NewDatabaseError(err)
	}
	return kids, nil
}

// UpdateKid replaces the editable fields of an existing kid
func (s *KidService) UpdateKid(ctx context.Context, kid domain.Kid) (*domain.Kid, error) {
	existing, err := s.GetKid(ctx, kid.ID)
	if err != nil {
		return nil, err
	}
	if err := normalizeKid(&kid); err != nil {
		return nil, err
	}

	kid.CreatedAt = existing.CreatedAt
	kid.UpdatedAt = now()

	if err := s.kids.Save(ctx, &kid); err != nil {
		return nil, apperrors.NewDatabaseError(err)
	}
	return &kid, nil
}

// DeleteKid removes the profile only. Its lunch boxes stay until deleted on their own.
func (s *KidService) DeleteKid(ctx context.Context, id string) error {
	if err := s.kids.Delete(ctx, id); err != nil {
		return storeError(err, apperrors.ErrKidNotFound)
	}
	return nil
}
