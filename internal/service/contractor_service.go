package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/text/unicode/norm"
	"gorm.io/gorm"

	"github.com/nurpe/contractor-form/internal/metrics"
	"github.com/nurpe/contractor-form/internal/model"
	"github.com/nurpe/contractor-form/internal/repository"
	"github.com/nurpe/contractor-form/internal/validation"
)

const maxListLimit = 1000

type ContractorRepository interface {
	Create(ctx context.Context, data model.ContractorData, createdBy *uuid.UUID) (*model.Contractor, error)
	Get(ctx context.Context, id uuid.UUID) (*model.Contractor, error)
	List(ctx context.Context, filter repository.ListFilter) ([]model.Contractor, error)
}

type ExcelGenerator interface {
	Generate(contractors []model.Contractor) ([]byte, error)
}

type PDFGenerator interface {
	Generate(contractor model.Contractor) ([]byte, error)
}

type ContractorService struct {
	repo    ContractorRepository
	excel   ExcelGenerator
	pdf     PDFGenerator
	metrics *metrics.Recorder
	log     zerolog.Logger
}

type SaveContractorInput struct {
	Data      model.ContractorData
	Principal model.Principal
}

type FileResult struct {
	FileName string
	Content  []byte
}

func NewContractorService(repo ContractorRepository, excel ExcelGenerator, pdf PDFGenerator, rec *metrics.Recorder, log zerolog.Logger) *ContractorService {
	return &ContractorService{
		repo:    repo,
		excel:   excel,
		pdf:     pdf,
		metrics: rec,
		log:     log,
	}
}

func (s *ContractorService) Save(ctx context.Context, input SaveContractorInput) (*model.Contractor, error) {
	if !input.Principal.CanRegister() {
		s.metrics.Save("forbidden")
		return nil, ErrPermissionDenied
	}

	data := normalizeData(input.Data)
	if err := validateData(data); err != nil {
		s.metrics.Save("invalid")
		return nil, err
	}

	var createdBy *uuid.UUID
	if input.Principal.UserID != uuid.Nil {
		id := input.Principal.UserID
		createdBy = &id
	}

	contractor, err := s.repo.Create(ctx, data, createdBy)
	if err != nil {
		s.metrics.Save("error")
		return nil, fmt.Errorf("create contractor: %w", err)
	}

	s.metrics.Save("saved")
	s.log.Info().
		Str("contractor_id", contractor.ID.String()).
		Str("type", string(contractor.Type)).
		Msg("contractor saved")
	return contractor, nil
}

func (s *ContractorService) Get(ctx context.Context, id uuid.UUID) (*model.Contractor, error) {
	if id == uuid.Nil {
		return nil, fmt.Errorf("%w: id is required", ErrInvalidInput)
	}
	contractor, err := s.repo.Get(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return contractor, nil
}

func (s *ContractorService) List(ctx context.Context, filter repository.ListFilter) ([]model.Contractor, error) {
	if filter.Type != nil && !filter.Type.Valid() {
		return nil, fmt.Errorf("%w: unknown type", ErrInvalidInput)
	}
	if filter.Limit < 0 || filter.Limit > maxListLimit {
		return nil, fmt.Errorf("%w: limit must be between 0 and %d", ErrInvalidInput, maxListLimit)
	}
	return s.repo.List(ctx, filter)
}

func (s *ContractorService) ExportRegistry(ctx context.Context, filter repository.ListFilter) (*FileResult, error) {
	contractors, err := s.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	content, err := s.excel.Generate(contractors)
	if err != nil {
		return nil, err
	}
	s.metrics.Export("xlsx")

	name := "kontrahenci.xlsx"
	if filter.Type != nil {
		name = fmt.Sprintf("kontrahenci-%s.xlsx", strings.ToLower(string(*filter.Type)))
	}
	return &FileResult{FileName: name, Content: content}, nil
}

func (s *ContractorService) RenderCard(ctx context.Context, id uuid.UUID) (*FileResult, error) {
	contractor, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	content, err := s.pdf.Generate(*contractor)
	if err != nil {
		return nil, err
	}
	s.metrics.Export("pdf")
	return &FileResult{
		FileName: fmt.Sprintf("kontrahent-%s.pdf", contractor.ID.String()),
		Content:  content,
	}, nil
}

func normalizeData(data model.ContractorData) model.ContractorData {
	data.FirstName = normalizeName(data.FirstName)
	data.LastName = normalizeName(data.LastName)
	data.IDNumber = strings.TrimSpace(data.IDNumber)
	data.Image = strings.TrimSpace(data.Image)
	return data
}

func normalizeName(value string) string {
	return norm.NFC.String(strings.Join(strings.Fields(value), " "))
}

// validateData mirrors the form rules. The photo ratio cannot be checked
// here since the URI points at the submitting device.
func validateData(data model.ContractorData) error {
	if !data.Type.Valid() {
		return fmt.Errorf("%w: unknown type", ErrInvalidInput)
	}
	if !validation.ValidateIDNumber(data.IDNumber, data.Type) {
		return fmt.Errorf("%w: invalid %s", ErrInvalidInput, data.Type.IDLabel())
	}
	if _, ok := validation.PhotoExtension(data.Image); !ok {
		return fmt.Errorf("%w: image must be a jpg or jpeg file", ErrInvalidInput)
	}
	return nil
}
