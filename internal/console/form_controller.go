package console

import (
	"context"
	"fmt"
	"sync"

	"github.com/go-playground/validator/v10"
)

// FormController owns one draft record and the create-vs-edit decision for
// a modal. Required-field validation runs before any network call; a
// rejected draft never leaves the client. On success the modal closes, the
// draft resets to its empty defaults, and the bound list resyncs. On
// failure the modal stays open with the draft intact so the operator can
// correct and resubmit.
type FormController[P any] struct {
	mu       sync.Mutex
	validate *validator.Validate
	create   func(ctx context.Context, payload P) error
	update   func(ctx context.Context, id string, payload P) error
	onSaved  func(ctx context.Context)
	empty    P

	draft     P
	editingID string
	open      bool
	message   string
}

type FormConfig[P any] struct {
	// Empty is the default draft a fresh create form starts from.
	Empty P
	// Create and Update are the gateway operations the submit dispatches to.
	Create func(ctx context.Context, payload P) error
	Update func(ctx context.Context, id string, payload P) error
	// OnSaved triggers the owning list's resync after a successful save
	// or delete.
	OnSaved func(ctx context.Context)
}

func NewFormController[P any](cfg FormConfig[P]) *FormController[P] {
	return &FormController[P]{
		validate: validator.New(),
		create:   cfg.Create,
		update:   cfg.Update,
		onSaved:  cfg.OnSaved,
		empty:    cfg.Empty,
		draft:    cfg.Empty,
	}
}

// OpenCreate opens the modal with an empty draft.
func (f *FormController[P]) OpenCreate() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.draft = f.empty
	f.editingID = ""
	f.message = ""
	f.open = true
}

// OpenEdit opens the modal pre-filled from the selected row.
func (f *FormController[P]) OpenEdit(id string, draft P) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.draft = draft
	f.editingID = id
	f.message = ""
	f.open = true
}

func (f *FormController[P]) SetDraft(draft P) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.draft = draft
}

func (f *FormController[P]) Draft() P {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.draft
}

// Submit validates the draft and dispatches to create or update depending
// on the edit target. The returned error mirrors Message() for callers
// that want to branch on it.
func (f *FormController[P]) Submit(ctx context.Context) error {
	ctx, span := startConsoleSpan(ctx, "console.form.submit")
	defer span.End()

	f.mu.Lock()
	if !f.open {
		f.mu.Unlock()
		return fmt.Errorf("form is not open")
	}
	draft := f.draft
	editingID := f.editingID
	f.mu.Unlock()

	if err := f.validate.StructCtx(ctx, draft); err != nil {
		f.fail("Please fill in all required fields.")
		return fmt.Errorf("draft validation failed: %w", err)
	}

	var err error
	if editingID == "" {
		if f.create == nil {
			f.fail("This form cannot create records.")
			return fmt.Errorf("form has no create operation")
		}
		err = f.create(ctx, draft)
	} else {
		err = f.update(ctx, editingID, draft)
	}
	if err != nil {
		f.fail(displayMessage(err))
		return err
	}

	f.mu.Lock()
	f.open = false
	f.draft = f.empty
	f.editingID = ""
	f.message = ""
	f.mu.Unlock()

	if f.onSaved != nil {
		f.onSaved(ctx)
	}

	return nil
}

// Close dismisses the modal without saving and resets the draft.
func (f *FormController[P]) Close() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.open = false
	f.draft = f.empty
	f.editingID = ""
	f.message = ""
}

func (f *FormController[P]) IsOpen() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.open
}

// EditingID reports the edit target, "" meaning create mode.
func (f *FormController[P]) EditingID() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.editingID
}

func (f *FormController[P]) Message() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.message
}

func (f *FormController[P]) fail(message string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.message = message
}

// ConfirmedDelete runs a confirmation-gated delete outside any modal. A
// declined prompt issues no network call; a completed delete triggers the
// same resync as a save.
func ConfirmedDelete(ctx context.Context, confirm func() bool, del func(ctx context.Context) error, onSaved func(ctx context.Context)) error {
	if confirm != nil && !confirm() {
		return nil
	}
	if err := del(ctx); err != nil {
		return err
	}
	if onSaved != nil {
		onSaved(ctx)
	}
	return nil
}
