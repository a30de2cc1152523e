package form

import (
	"log/slog"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"

	domproduct "example.com/finproducts-admin/internal/domain/product"
)

// Field names match the wire names of the product record.
type Field string

const (
	FieldID           Field = "id"
	FieldName         Field = "name"
	FieldDescription  Field = "description"
	FieldLogo         Field = "logo"
	FieldDateRelease  Field = "date_release"
	FieldDateRevision Field = "date_revision"
)

// Fields lists every field in display order.
var Fields = []Field{FieldID, FieldName, FieldDescription, FieldLogo, FieldDateRelease, FieldDateRevision}

type Mode int

const (
	ModeCreate Mode = iota
	ModeEdit
)

// FieldState is the per-field slice of the form state. Errors holds the
// sync and cross-field rule results; AsyncError holds the uniqueness
// result for the id field.
type FieldState struct {
	Value      string
	Errors     []string
	AsyncError string
	Pending    bool
	Touched    bool
	Dirty      bool
	Disabled   bool
}

func (s FieldState) valid() bool {
	return len(s.Errors) == 0 && s.AsyncError == "" && !s.Pending
}

// fieldSet is the fixed six-field record of an editing session.
type fieldSet struct {
	id           FieldState
	name         FieldState
	description  FieldState
	logo         FieldState
	dateRelease  FieldState
	dateRevision FieldState
}

func (fs *fieldSet) get(f Field) *FieldState {
	switch f {
	case FieldID:
		return &fs.id
	case FieldName:
		return &fs.name
	case FieldDescription:
		return &fs.description
	case FieldLogo:
		return &fs.logo
	case FieldDateRelease:
		return &fs.dateRelease
	case FieldDateRevision:
		return &fs.dateRevision
	}
	return nil
}

type Config struct {
	Mode           Mode
	Gateway        domproduct.Gateway
	Logger         *slog.Logger
	Now            func() time.Time
	DebounceWindow time.Duration
}

// Form is the validation engine for a single create/edit session. All
// exported methods are safe for concurrent use; the debounce timer applies
// uniqueness results through the same lock the mutators hold.
type Form struct {
	mu             sync.Mutex
	mode           Mode
	fields         fieldSet
	releaseRuleErr string
	validate       *validator.Validate
	checker        *uniquenessChecker
	now            func() time.Time
	originalID     string
}

func New(cfg Config) *Form {
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	if cfg.DebounceWindow <= 0 {
		cfg.DebounceWindow = 300 * time.Millisecond
	}

	f := &Form{
		mode:     cfg.Mode,
		validate: validator.New(),
		now:      cfg.Now,
	}
	f.fields.dateRevision.Disabled = true
	if cfg.Mode == ModeEdit {
		f.fields.id.Disabled = true
	}
	f.checker = &uniquenessChecker{
		mu:      &f.mu,
		gateway: cfg.Gateway,
		window:  cfg.DebounceWindow,
		logger:  cfg.Logger,
		setPending: func(pending bool) {
			f.fields.id.Pending = pending
			if pending {
				f.fields.id.AsyncError = ""
			}
		},
		apply: func(exists bool) {
			f.fields.id.Pending = false
			if exists {
				f.fields.id.AsyncError = "id already exists"
			} else {
				f.fields.id.AsyncError = ""
			}
		},
	}
	f.revalidateLocked()
	return f
}

// SetValue records a user edit. Writes to disabled fields are dropped, the
// way a disabled input never fires a change event.
func (f *Form) SetValue(field Field, value string) {
	f.mu.Lock()
	state := f.fields.get(field)
	if state == nil || state.Disabled {
		f.mu.Unlock()
		return
	}
	state.Value = value
	state.Dirty = true
	f.revalidateLocked()
	f.mu.Unlock()

	if field == FieldID && f.mode == ModeCreate {
		f.checker.schedule(value)
	}
}

// SetInitial loads a product into the form without marking anything dirty.
// Used when an edit screen opens; the id is locked afterwards.
func (f *Form) SetInitial(p *domproduct.FinancialProduct) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.fields.id.Value = p.ID
	f.fields.name.Value = p.Name
	f.fields.description.Value = p.Description
	f.fields.logo.Value = p.Logo
	f.fields.dateRelease.Value = p.DateRelease.String()
	f.fields.dateRevision.Value = p.DateRevision.String()
	f.fields.id.Disabled = true
	f.originalID = p.ID
	f.revalidateLocked()
}

func (f *Form) Touch(field Field) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if state := f.fields.get(field); state != nil {
		state.Touched = true
	}
}

// MarkAllTouched surfaces every error at once, used on an invalid submit.
func (f *Form) MarkAllTouched() {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, name := range Fields {
		f.fields.get(name).Touched = true
	}
}

// Field returns a snapshot of one field's state.
func (f *Form) Field(field Field) FieldState {
	f.mu.Lock()
	defer f.mu.Unlock()
	return *f.fields.get(field)
}

// Valid reports whether every rule passed and no uniqueness check is in
// flight. A pending check blocks validity without producing an error.
func (f *Form) Valid() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, name := range Fields {
		if !f.fields.get(name).valid() {
			return false
		}
	}
	return true
}

// Pending reports whether the id uniqueness check is still in flight.
func (f *Form) Pending() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.fields.id.Pending
}

// Values assembles the submission payload from the raw values, including
// disabled fields, mirroring getRawValue on the original form.
func (f *Form) Values() domproduct.FinancialProduct {
	f.mu.Lock()
	defer f.mu.Unlock()

	release, _ := domproduct.ParseDate(f.fields.dateRelease.Value)
	revision, _ := domproduct.ParseDate(f.fields.dateRevision.Value)
	return domproduct.FinancialProduct{
		ID:           f.fields.id.Value,
		Name:         f.fields.name.Value,
		Description:  f.fields.description.Value,
		Logo:         f.fields.logo.Value,
		DateRelease:  release,
		DateRevision: revision,
	}
}

// Reset blanks the session. In edit mode the original id is restored and
// stays locked.
func (f *Form) Reset() {
	f.checker.cancel()

	f.mu.Lock()
	defer f.mu.Unlock()

	originalID := f.originalID
	f.fields = fieldSet{}
	f.fields.dateRevision.Disabled = true
	if f.mode == ModeEdit {
		f.fields.id.Value = originalID
		f.fields.id.Disabled = true
	}
	f.revalidateLocked()
}

// Close cancels the pending debounce timer and discards the result of any
// in-flight uniqueness check.
func (f *Form) Close() {
	f.checker.cancel()
}
