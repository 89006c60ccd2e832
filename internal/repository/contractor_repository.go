package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/nurpe/contractor-form/internal/model"
)

const defaultListLimit = 100

type ListFilter struct {
	Type  *model.ContractorType
	Limit int
}

type ContractorRepository struct {
	db *gorm.DB
}

func NewContractorRepository(db *gorm.DB) *ContractorRepository {
	return &ContractorRepository{db: db}
}

type contractorRow struct {
	ID        uuid.UUID
	FirstName string
	LastName  string
	Type      string
	IDNumber  string
	Image     string
	CreatedBy *uuid.UUID
	CreatedAt time.Time
}

func (r contractorRow) toModel() model.Contractor {
	return model.Contractor{
		ID:        r.ID,
		FirstName: r.FirstName,
		LastName:  r.LastName,
		Type:      model.ContractorType(r.Type),
		IDNumber:  r.IDNumber,
		Image:     r.Image,
		CreatedBy: r.CreatedBy,
		CreatedAt: r.CreatedAt,
	}
}

func (r *ContractorRepository) Create(ctx context.Context, data model.ContractorData, createdBy *uuid.UUID) (*model.Contractor, error) {
	var row contractorRow
	err := r.db.WithContext(ctx).Raw(`
		INSERT INTO contractors (first_name, last_name, type, id_number, image, created_by)
		VALUES (?, ?, ?::contractor_type, ?, ?, ?)
		RETURNING id, first_name, last_name, type::text AS type, id_number, image, created_by, created_at
	`, data.FirstName, data.LastName, string(data.Type), data.IDNumber, data.Image, createdBy).Scan(&row).Error
	if err != nil {
		return nil, err
	}
	contractor := row.toModel()
	return &contractor, nil
}

func (r *ContractorRepository) Get(ctx context.Context, id uuid.UUID) (*model.Contractor, error) {
	var row contractorRow
	err := r.db.WithContext(ctx).Raw(`
		SELECT id, first_name, last_name, type::text AS type, id_number, image, created_by, created_at
		FROM contractors
		WHERE id = ?
		LIMIT 1
	`, id).Scan(&row).Error
	if err != nil {
		return nil, err
	}
	if row.ID == uuid.Nil {
		return nil, gorm.ErrRecordNotFound
	}
	contractor := row.toModel()
	return &contractor, nil
}

func (r *ContractorRepository) List(ctx context.Context, filter ListFilter) ([]model.Contractor, error) {
	limit := filter.Limit
	if limit <= 0 {
		limit = defaultListLimit
	}

	query := r.db.WithContext(ctx).
		Table("contractors").
		Select("id, first_name, last_name, type::text AS type, id_number, image, created_by, created_at")
	if filter.Type != nil {
		query = query.Where("type = ?::contractor_type", string(*filter.Type))
	}

	var rows []contractorRow
	if err := query.Order("created_at DESC").Limit(limit).Scan(&rows).Error; err != nil {
		return nil, err
	}

	result := make([]model.Contractor, 0, len(rows))
	for _, row := range rows {
		result = append(result, row.toModel())
	}
	return result, nil
}
