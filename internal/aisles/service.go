package aisles

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/minliz/udacimarket-backend/pkg/db"
	"github.com/minliz/udacimarket-backend/pkg/db/models"
	pkgerrors "github.com/minliz/udacimarket-backend/pkg/errors"
	"github.com/minliz/udacimarket-backend/pkg/pagination"
)

type aisleRepository interface {
	List(ctx context.Context, page pagination.Params, perPage int) ([]models.Aisle, error)
	Find(ctx context.Context, aisleNumber int) (*models.Aisle, error)
	CreateWithTx(tx *gorm.DB, row *models.Aisle) error
	UpdateWithTx(tx *gorm.DB, row *models.Aisle) error
	DeletePlacementsWithTx(tx *gorm.DB, aisleNumber int) error
	DeleteWithTx(tx *gorm.DB, aisleNumber int) error
}

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

// Service exposes aisle operations.
type Service interface {
	List(ctx context.Context, page pagination.Params) ([]AisleDTO, error)
	Find(ctx context.Context, aisleNumber int) (*AisleDTO, error)
	Create(ctx context.Context, input CreateAisleInput) (*AisleDTO, error)
	Update(ctx context.Context, aisleNumber int, input UpdateAisleInput) (*AisleDTO, error)
	Delete(ctx context.Context, aisleNumber int) error
}

type service struct {
	repo    aisleRepository
	tx      txRunner
	perPage int
}

// NewService builds an aisle service.
func NewService(repo aisleRepository, tx txRunner, perPage int) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("aisle repository required")
	}
	if tx == nil {
		return nil, fmt.Errorf("transaction runner required")
	}
	return &service{repo: repo, tx: tx, perPage: perPage}, nil
}

func (s *service) List(ctx context.Context, page pagination.Params) ([]AisleDTO, error) {
	rows, err := s.repo.List(ctx, page, s.perPage)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list aisles")
	}
	if len(rows) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeUnprocessable, "no aisles found")
	}
	return FromModels(rows), nil
}

func (s *service) Find(ctx context.Context, aisleNumber int) (*AisleDTO, error) {
	row, err := s.repo.Find(ctx, aisleNumber)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeUnprocessable, "aisle not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load aisle")
	}
	return FromModel(row), nil
}

func (s *service) Create(ctx context.Context, input CreateAisleInput) (*AisleDTO, error) {
	if input.AisleNumber <= 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "aisle number must be positive")
	}
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "aisle name is required")
	}

	row := &models.Aisle{AisleNumber: input.AisleNumber, Name: name}
	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		return s.repo.CreateWithTx(tx, row)
	})
	if err != nil {
		if db.IsUniqueViolation(err) {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "aisle number already exists")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create aisle")
	}
	return FromModel(row), nil
}

func (s *service) Update(ctx context.Context, aisleNumber int, input UpdateAisleInput) (*AisleDTO, error) {
	row, err := s.repo.Find(ctx, aisleNumber)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeUnprocessable, "aisle not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load aisle")
	}

	if input.Name != nil && strings.TrimSpace(*input.Name) != "" {
		row.Name = strings.TrimSpace(*input.Name)
	}

	err = s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		return s.repo.UpdateWithTx(tx, row)
	})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update aisle")
	}
	return FromModel(row), nil
}

// Delete removes the aisle and its placement rows in one transaction, so a
// failure partway through never strands orphan placements.
func (s *service) Delete(ctx context.Context, aisleNumber int) error {
	if _, err := s.repo.Find(ctx, aisleNumber); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.New(pkgerrors.CodeUnprocessable, "aisle not found")
		}
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load aisle")
	}

	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		if err := s.repo.DeletePlacementsWithTx(tx, aisleNumber); err != nil {
			return fmt.Errorf("deleting aisle placements: %w", err)
		}
		return s.repo.DeleteWithTx(tx, aisleNumber)
	})
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete aisle")
	}
	return nil
}
