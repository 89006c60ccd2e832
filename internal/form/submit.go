package form

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/nurpe/contractor-form/internal/model"
	"github.com/nurpe/contractor-form/internal/validation"
)

type SaveStatus int

const (
	SaveOK SaveStatus = iota
	SaveNotFound
	SaveFailed
)

// Saver sends an accepted record to the remote store.
type Saver interface {
	Save(ctx context.Context, data model.ContractorData) (SaveStatus, error)
}

type ImageAcceptor interface {
	IsAcceptable(ctx context.Context, uri string) bool
}

type Submitter struct {
	images ImageAcceptor
	saver  Saver
	log    zerolog.Logger
}

func NewSubmitter(images ImageAcceptor, saver Saver, log zerolog.Logger) *Submitter {
	return &Submitter{images: images, saver: saver, log: log}
}

// Submit runs identifier validation, the image check and the save, strictly
// in that order. Each step stops the sequence on failure.
func (s *Submitter) Submit(ctx context.Context, data model.ContractorData) Result {
	return s.submit(ctx, data, nil)
}

func (s *Submitter) submit(ctx context.Context, data model.ContractorData, onSave func()) Result {
	log := s.log.With().Str("type", string(data.Type)).Logger()

	if !validation.ValidateIDNumber(data.IDNumber, data.Type) {
		log.Info().Msg("submit rejected: invalid identifier")
		return Result{Kind: OutcomeInvalidIdentifier}
	}

	if !s.images.IsAcceptable(ctx, data.Image) {
		log.Info().Str("image", data.Image).Msg("submit rejected: invalid image")
		return Result{Kind: OutcomeInvalidImage}
	}

	if onSave != nil {
		onSave()
	}

	status, err := s.saver.Save(ctx, data)
	if err != nil {
		log.Error().Err(err).Msg("save failed")
		return Result{Kind: OutcomeError, Err: err}
	}

	switch status {
	case SaveOK:
		log.Info().Msg("contractor saved")
		return Result{Kind: OutcomeSaved}
	case SaveNotFound:
		log.Warn().Msg("save endpoint not found")
		return Result{Kind: OutcomeNotFound}
	default:
		log.Warn().Msg("save returned failure")
		return Result{Kind: OutcomeError}
	}
}
