package form

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"

	"github.com/nurpe/contractor-form/internal/model"
	"github.com/nurpe/contractor-form/internal/validation"
)

type stubLookup struct {
	width, height int
	err           error
	calls         int
}

func (s *stubLookup) Dimensions(_ context.Context, _ string) (int, int, error) {
	s.calls++
	return s.width, s.height, s.err
}

type stubSaver struct {
	status SaveStatus
	err    error
	calls  int
	last   model.ContractorData
	onSave func()
}

func (s *stubSaver) Save(_ context.Context, data model.ContractorData) (SaveStatus, error) {
	s.calls++
	s.last = data
	if s.onSave != nil {
		s.onSave()
	}
	return s.status, s.err
}

type recorder struct {
	results []Result
}

func (r *recorder) Notify(res Result) {
	r.results = append(r.results, res)
}

func newTestForm(lookup *stubLookup, saver *stubSaver) (*Form, *recorder) {
	checker := validation.NewImageChecker(lookup, zerolog.Nop())
	rec := &recorder{}
	return New(NewSubmitter(checker, saver, zerolog.Nop()), rec), rec
}

func fill(t *testing.T, f *Form, fields map[string]string) {
	t.Helper()
	for k, v := range fields {
		if err := f.SetField(k, v); err != nil {
			t.Fatalf("SetField(%s): %v", k, err)
		}
	}
}

func TestNewFormDefaults(t *testing.T) {
	f, _ := newTestForm(&stubLookup{}, &stubSaver{})
	got := f.Snapshot()
	want := model.ContractorData{Type: model.ContractorTypePerson}
	if got != want {
		t.Fatalf("defaults = %+v, want %+v", got, want)
	}
	if f.Phase() != PhaseIdle {
		t.Fatalf("phase = %s, want idle", f.Phase())
	}
}

func TestSetFieldRejectsUnknownAndInvalid(t *testing.T) {
	f, _ := newTestForm(&stubLookup{}, &stubSaver{})

	if err := f.SetField("nickname", "x"); !errors.Is(err, ErrUnknownField) {
		t.Fatalf("expected ErrUnknownField, got %v", err)
	}
	if err := f.SetField(FieldType, "Spółka"); !errors.Is(err, ErrInvalidType) {
		t.Fatalf("expected ErrInvalidType, got %v", err)
	}
	if f.Snapshot().Type != model.ContractorTypePerson {
		t.Fatal("invalid type must not change state")
	}
	if err := f.SetField(FieldType, "Firma"); err != nil {
		t.Fatal(err)
	}
	if f.Snapshot().Type != model.ContractorTypeCompany {
		t.Fatal("type not updated")
	}
}

func TestSubmitSavedScenario(t *testing.T) {
	lookup := &stubLookup{width: 200, height: 200}
	saver := &stubSaver{status: SaveOK}
	f, rec := newTestForm(lookup, saver)
	fill(t, f, map[string]string{
		FieldFirstName: "Jan",
		FieldLastName:  "Kowalski",
		FieldIDNumber:  "12345678901",
		FieldImage:     "photo.jpg",
	})

	var phaseDuringSave Phase
	saver.onSave = func() { phaseDuringSave = f.Phase() }

	res := f.Submit(context.Background())
	if res.Kind != OutcomeSaved || res.Message() != "Zapisano" {
		t.Fatalf("result = %v (%s)", res.Kind, res.Message())
	}
	if saver.calls != 1 {
		t.Fatalf("saver calls = %d, want 1", saver.calls)
	}
	if saver.last != f.Snapshot() {
		t.Fatalf("saver got %+v, want full state", saver.last)
	}
	if phaseDuringSave != PhaseSubmitting {
		t.Fatalf("phase during save = %s, want submitting", phaseDuringSave)
	}
	if f.Phase() != PhaseIdle {
		t.Fatalf("phase after submit = %s, want idle", f.Phase())
	}
	if len(rec.results) != 1 || rec.results[0].Kind != OutcomeSaved {
		t.Fatalf("notifications = %+v", rec.results)
	}
}

func TestSubmitInvalidIdentifierSkipsEverything(t *testing.T) {
	lookup := &stubLookup{width: 200, height: 200}
	saver := &stubSaver{status: SaveOK}
	f, rec := newTestForm(lookup, saver)
	fill(t, f, map[string]string{
		FieldType:     "Firma",
		FieldIDNumber: "123456789",
		FieldImage:    "photo.jpg",
	})

	res := f.Submit(context.Background())
	if res.Kind != OutcomeInvalidIdentifier {
		t.Fatalf("result = %v, want invalid identifier", res.Kind)
	}
	if res.Message() != "Nieprawidłowy numer identyfikacyjny" {
		t.Fatalf("message = %q", res.Message())
	}
	if !res.Rejected() {
		t.Fatal("expected Rejected")
	}
	if lookup.calls != 0 || saver.calls != 0 {
		t.Fatalf("lookup calls = %d, saver calls = %d, want 0", lookup.calls, saver.calls)
	}
	if len(rec.results) != 1 {
		t.Fatalf("expected one notification, got %d", len(rec.results))
	}
}

func TestSubmitIdentifierFollowsCurrentType(t *testing.T) {
	saver := &stubSaver{status: SaveOK}
	f, _ := newTestForm(&stubLookup{width: 5, height: 5}, saver)
	fill(t, f, map[string]string{FieldIDNumber: "1234567890", FieldImage: "a.jpg"})

	if res := f.Submit(context.Background()); res.Kind != OutcomeInvalidIdentifier {
		t.Fatalf("Osoba with 10 digits: %v", res.Kind)
	}
	fill(t, f, map[string]string{FieldType: "Firma"})
	if res := f.Submit(context.Background()); res.Kind != OutcomeSaved {
		t.Fatalf("Firma with 10 digits: %v", res.Kind)
	}
}

func TestSubmitInvalidImage(t *testing.T) {
	cases := []struct {
		name   string
		image  string
		lookup *stubLookup
	}{
		{"png", "photo.png", &stubLookup{width: 200, height: 200}},
		{"not square", "photo.jpg", &stubLookup{width: 200, height: 100}},
		{"lookup error", "photo.jpeg", &stubLookup{err: errors.New("unreadable")}},
		{"empty", "", &stubLookup{width: 1, height: 1}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			saver := &stubSaver{status: SaveOK}
			f, _ := newTestForm(tc.lookup, saver)
			fill(t, f, map[string]string{FieldIDNumber: "12345678901", FieldImage: tc.image})

			res := f.Submit(context.Background())
			if res.Kind != OutcomeInvalidImage {
				t.Fatalf("result = %v, want invalid image", res.Kind)
			}
			if res.Message() != "Nieprawidłowy format zdjęcia lub nieprawidłowe proporcje" {
				t.Fatalf("message = %q", res.Message())
			}
			if saver.calls != 0 {
				t.Fatal("save must not be attempted")
			}
		})
	}
}

func TestSubmitRemoteOutcomes(t *testing.T) {
	transportErr := errors.New("connection refused")
	cases := []struct {
		name    string
		saver   *stubSaver
		want    OutcomeKind
		message string
	}{
		{"not found", &stubSaver{status: SaveNotFound}, OutcomeNotFound, "Nie znaleziono metody zapisu"},
		{"other status", &stubSaver{status: SaveFailed}, OutcomeError, "Wystąpił błąd"},
		{"transport", &stubSaver{status: SaveFailed, err: transportErr}, OutcomeError, "Wystąpił błąd"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			f, _ := newTestForm(&stubLookup{width: 10, height: 10}, tc.saver)
			fill(t, f, map[string]string{FieldIDNumber: "12345678901", FieldImage: "photo.jpg"})
			before := f.Snapshot()

			res := f.Submit(context.Background())
			if res.Kind != tc.want || res.Message() != tc.message {
				t.Fatalf("result = %v (%q), want %v (%q)", res.Kind, res.Message(), tc.want, tc.message)
			}
			if tc.saver.err != nil && !errors.Is(res.Err, tc.saver.err) {
				t.Fatalf("Err = %v, want %v", res.Err, tc.saver.err)
			}
			if tc.saver.calls != 1 {
				t.Fatalf("saver calls = %d, want exactly 1", tc.saver.calls)
			}
			if f.Snapshot() != before {
				t.Fatal("submit must not mutate the form")
			}
			if f.Phase() != PhaseIdle {
				t.Fatal("phase must return to idle")
			}
		})
	}
}

func TestApplyPick(t *testing.T) {
	f, _ := newTestForm(&stubLookup{}, &stubSaver{})
	f.SetImage("old.jpg")

	ignored := []PickResult{
		{DidCancel: true, Assets: []Asset{{URI: "a.jpg"}}},
		{ErrorCode: "permission", Assets: []Asset{{URI: "a.jpg"}}},
		{ErrorMessage: "camera unavailable", Assets: []Asset{{URI: "a.jpg"}}},
		{},
		{Assets: []Asset{{URI: ""}}},
	}
	for i, p := range ignored {
		if f.ApplyPick(p) {
			t.Fatalf("case %d: expected pick to be ignored", i)
		}
		if f.Snapshot().Image != "old.jpg" {
			t.Fatalf("case %d: image changed", i)
		}
	}

	if !f.ApplyPick(PickResult{Assets: []Asset{{URI: "file:///tmp/new.jpg"}, {URI: "second.jpg"}}}) {
		t.Fatal("expected clean pick to apply")
	}
	if got := f.Snapshot().Image; got != "file:///tmp/new.jpg" {
		t.Fatalf("image = %q", got)
	}
}

func TestResultMessageUnknownKind(t *testing.T) {
	if got := (Result{Kind: OutcomeKind(42)}).Message(); got != "Wystąpił błąd" {
		t.Fatalf("message = %q", got)
	}
	if OutcomeKind(42).String() != "unknown" {
		t.Fatal("expected unknown name")
	}
}
