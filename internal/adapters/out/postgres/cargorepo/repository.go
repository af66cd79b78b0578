package cargorepo

import (
	"context"
	"errors"

	"github.com/SlinkierSwine/cargo-track/internal/core/domain/model/cargo"
	"github.com/SlinkierSwine/cargo-track/internal/core/domain/model/kernel"
	"github.com/SlinkierSwine/cargo-track/internal/pkg/errs"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormCargoRepository implements CargoRepository using GORM.
type GormCargoRepository struct {
	db *gorm.DB
}

// NewGormCargoRepository creates a new GORM cargo repository.
func NewGormCargoRepository(db *gorm.DB) *GormCargoRepository {
	return &GormCargoRepository{db: db}
}

// Add saves a new cargo record to the database.
func (r *GormCargoRepository) Add(ctx context.Context, c cargo.Cargo) error {
	if err := c.ID.Validate(); err != nil {
		return err
	}

	dto := fromDomain(c)
	return r.db.WithContext(ctx).Create(&dto).Error
}

// Update saves changes to an existing cargo record.
func (r *GormCargoRepository) Update(ctx context.Context, c cargo.Cargo) error {
	if err := c.ID.Validate(); err != nil {
		return err
	}

	dto := fromDomain(c)
	result := r.db.WithContext(ctx).
		Model(&CargoDTO{}).
		Where("id = ?", dto.ID).
		Select("*").
		Omit("created_at").
		Updates(&dto)
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	return nil
}

// Upsert inserts the cargo record or overwrites an existing one atomically.
func (r *GormCargoRepository) Upsert(ctx context.Context, c cargo.Cargo) error {
	if err := c.ID.Validate(); err != nil {
		return err
	}

	dto := fromDomain(c)
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "id"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"name", "cargo_type", "weight", "volume", "status",
				"requires_temperature_control", "hazardous_material",
				"special_handling", "updated_at",
			}),
		}).
		Create(&dto).Error
}

// Get retrieves a cargo record by ID.
func (r *GormCargoRepository) Get(ctx context.Context, id kernel.UUID) (cargo.Cargo, error) {
	if err := id.Validate(); err != nil {
		return cargo.Cargo{}, err
	}

	var dto CargoDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return cargo.Cargo{}, errs.NewObjectNotFoundError("cargo", id.String())
		}
		return cargo.Cargo{}, err
	}

	return toDomain(dto)
}
