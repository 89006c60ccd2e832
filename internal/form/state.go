// Package form implements the contractor form: the editable state, image
// selection handling and the submit sequence.
package form

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/nurpe/contractor-form/internal/model"
)

var (
	ErrUnknownField = errors.New("unknown form field")
	ErrInvalidType  = errors.New("invalid contractor type")
)

const (
	FieldFirstName = "firstName"
	FieldLastName  = "lastName"
	FieldType      = "type"
	FieldIDNumber  = "idNumber"
	FieldImage     = "image"
)

type Phase int

const (
	PhaseIdle Phase = iota
	PhaseValidating
	PhaseSubmitting
)

func (p Phase) String() string {
	switch p {
	case PhaseValidating:
		return "validating"
	case PhaseSubmitting:
		return "submitting"
	default:
		return "idle"
	}
}

type Form struct {
	mu        sync.Mutex
	data      model.ContractorData
	phase     Phase
	submitter *Submitter
	notifier  Notifier
}

func New(submitter *Submitter, notifier Notifier) *Form {
	return &Form{
		data:      model.NewContractorData(),
		submitter: submitter,
		notifier:  notifier,
	}
}

// SetField updates a single field by its wire name.
func (f *Form) SetField(key, value string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	switch key {
	case FieldFirstName:
		f.data.FirstName = value
	case FieldLastName:
		f.data.LastName = value
	case FieldIDNumber:
		f.data.IDNumber = value
	case FieldImage:
		f.data.Image = value
	case FieldType:
		t, err := model.ParseContractorType(value)
		if err != nil {
			return fmt.Errorf("%w: %q", ErrInvalidType, value)
		}
		f.data.Type = t
	default:
		return fmt.Errorf("%w: %q", ErrUnknownField, key)
	}
	return nil
}

func (f *Form) SetImage(uri string) {
	f.mu.Lock()
	f.data.Image = uri
	f.mu.Unlock()
}

func (f *Form) Snapshot() model.ContractorData {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.data
}

func (f *Form) Phase() Phase {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.phase
}

func (f *Form) setPhase(p Phase) {
	f.mu.Lock()
	f.phase = p
	f.mu.Unlock()
}

// Submit validates and saves the current state, then reports the outcome
// through the notifier. The form state itself is left untouched.
func (f *Form) Submit(ctx context.Context) Result {
	data := f.Snapshot()

	f.setPhase(PhaseValidating)
	defer f.setPhase(PhaseIdle)

	result := f.submitter.submit(ctx, data, func() { f.setPhase(PhaseSubmitting) })
	if f.notifier != nil {
		f.notifier.Notify(result)
	}
	return result
}
