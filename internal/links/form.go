package links

import (
	"context"
	"errors"
	"regexp"
	"sync"
	"time"

	"github.com/justkashish/linkview/internal/api"
)

// Form errors returned by Submit. Validation failures are also visible
// per-field via FieldErrors.
var (
	ErrInvalidInput   = errors.New("invalid form input")
	ErrSubmitInFlight = errors.New("submission already in flight")
	ErrFormNotOpen    = errors.New("form is not open")
	ErrNoTargetRecord = errors.New("edit form opened without a record")
)

// Mode distinguishes the create flow from the edit flow.
type Mode int

const (
	ModeCreate Mode = iota
	ModeEdit
)

// State is the form's modal lifecycle.
type State int

const (
	StateClosed State = iota
	StateOpen
	StateSubmitting
)

// Fields are the editable values the form collects.
type Fields struct {
	DestinationURL    string
	Remarks           string
	ExpirationEnabled bool
	ExpirationDate    time.Time
}

// FieldErrors flags which fields failed validation.
type FieldErrors struct {
	DestinationURL bool
	Remarks        bool
	ExpirationDate bool
}

func (e FieldErrors) ok() bool {
	return !e.DestinationURL && !e.Remarks && !e.ExpirationDate
}

// Scheme-optional host, optional port, path, query and fragment.
var urlShape = regexp.MustCompile(`(?i)^(https?://)?` +
	`((([a-z\d]([a-z\d-]*[a-z\d])*)\.?)+[a-z]{2,}|((\d{1,3}\.){3}\d{1,3}))` +
	`(:\d+)?(/[-a-z\d%_.~+]*)*` +
	`(\?[;&a-z\d%_.~+=-]*)?` +
	`(#[-a-z\d_]*)?$`)

// ValidURL reports whether s has the shape of a destination URL.
func ValidURL(s string) bool {
	return urlShape.MatchString(s)
}

// Form collects, validates and submits one link's editable fields. A
// single form instance is reused across openings; Open and OpenWith
// always re-initialize it.
type Form struct {
	mu       sync.Mutex
	mode     Mode
	backend  Backend
	notifier Notifier
	now      func() time.Time

	state       State
	fields      Fields
	fieldErrs   FieldErrors
	dateTouched bool
	target      api.Link
	hasTarget   bool
	onComplete  func(api.Link)
}

// NewCreateForm creates the new-link form. onComplete receives the
// server-confirmed record after a successful submit.
func NewCreateForm(backend Backend, notifier Notifier, onComplete func(api.Link)) *Form {
	return &Form{
		mode:       ModeCreate,
		backend:    backend,
		notifier:   notifier,
		now:        time.Now,
		onComplete: onComplete,
	}
}

// NewEditForm creates the edit-link form.
func NewEditForm(backend Backend, notifier Notifier, onComplete func(api.Link)) *Form {
	return &Form{
		mode:       ModeEdit,
		backend:    backend,
		notifier:   notifier,
		now:        time.Now,
		onComplete: onComplete,
	}
}

// Open transitions the create form to pristine open state. Leftover
// values from a previous session are discarded.
func (f *Form) Open() {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.state = StateOpen
	f.fields = Fields{}
	f.fieldErrs = FieldErrors{}
	f.dateTouched = false
	f.hasTarget = false
}

// OpenWith opens the edit form hydrated from the target record. Called
// on every open so the form always reflects the record's current values.
func (f *Form) OpenWith(link api.Link) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.state = StateOpen
	f.target = link
	f.hasTarget = true
	f.fieldErrs = FieldErrors{}
	f.dateTouched = false
	f.fields = fieldsFromLink(link)
}

func fieldsFromLink(link api.Link) Fields {
	fields := Fields{
		DestinationURL: link.OriginalURL,
		Remarks:        link.Remark,
	}

	if link.ExpirationDate != nil {
		fields.ExpirationEnabled = true
		fields.ExpirationDate = *link.ExpirationDate
	}

	return fields
}

// Close dismisses the form without submitting.
func (f *Form) Close() {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.state = StateClosed
}

// SetDestination sets the destination URL field.
func (f *Form) SetDestination(url string) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.fields.DestinationURL = url
}

// SetRemarks sets the remarks field.
func (f *Form) SetRemarks(remarks string) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.fields.Remarks = remarks
}

// EnableExpiration toggles the expiration gate. The picked date is kept
// but only submitted while the gate is on.
func (f *Form) EnableExpiration(enabled bool) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.fields.ExpirationEnabled = enabled
}

// SetExpirationDate sets the expiration date field.
func (f *Form) SetExpirationDate(date time.Time) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.fields.ExpirationDate = date
	f.dateTouched = true
}

// Fields returns the current field values.
func (f *Form) Fields() Fields {
	f.mu.Lock()
	defer f.mu.Unlock()

	return f.fields
}

// FieldErrors returns the per-field validation flags from the last
// Validate or Submit.
func (f *Form) FieldErrors() FieldErrors {
	f.mu.Lock()
	defer f.mu.Unlock()

	return f.fieldErrs
}

// State returns the form's lifecycle state.
func (f *Form) State() State {
	f.mu.Lock()
	defer f.mu.Unlock()

	return f.state
}

// Validate runs the synchronous field checks and records per-field
// flags. It must pass before any network call is made.
func (f *Form) Validate() bool {
	f.mu.Lock()
	defer f.mu.Unlock()

	return f.validateLocked()
}

func (f *Form) validateLocked() bool {
	f.fieldErrs = FieldErrors{
		DestinationURL: !ValidURL(f.fields.DestinationURL),
		Remarks:        f.fields.Remarks == "",
	}

	// The not-before-now rule guards the picker, so it only applies to
	// dates picked this session. A record hydrated with an already-past
	// expiration stays submittable as-is.
	if f.dateTouched && f.fields.ExpirationEnabled && f.fields.ExpirationDate.Before(f.now()) {
		f.fieldErrs.ExpirationDate = true
	}

	return f.fieldErrs.ok()
}

// Submit validates and sends the form. On success the completion
// callback receives the server record, the form resets and closes. On
// failure the form stays open with its values so the user can correct
// and resubmit.
func (f *Form) Submit(ctx context.Context) error {
	f.mu.Lock()

	switch f.state {
	case StateSubmitting:
		f.mu.Unlock()

		return ErrSubmitInFlight
	case StateClosed:
		f.mu.Unlock()

		return ErrFormNotOpen
	}

	if f.mode == ModeEdit && !f.hasTarget {
		f.mu.Unlock()

		return ErrNoTargetRecord
	}

	if !f.validateLocked() {
		urlInvalid := f.fieldErrs.DestinationURL
		f.mu.Unlock()

		if urlInvalid {
			f.notifier.Error("Please enter a valid URL.")
		}

		return ErrInvalidInput
	}

	input := api.LinkInput{
		URL:    f.fields.DestinationURL,
		Remark: f.fields.Remarks,
	}

	// A date picked before the gate was toggled off must not leak out.
	if f.fields.ExpirationEnabled {
		date := f.fields.ExpirationDate
		input.ExpirationDate = &date
	}

	mode := f.mode
	targetID := f.target.ID
	f.state = StateSubmitting
	f.mu.Unlock()

	var (
		record api.Link
		err    error
	)

	if mode == ModeCreate {
		record, err = f.backend.CreateLink(ctx, input)
	} else {
		record, err = f.backend.EditLink(ctx, targetID, input)
	}

	f.mu.Lock()

	if err != nil {
		f.state = StateOpen
		f.mu.Unlock()

		if mode == ModeCreate {
			f.notifier.Error(api.Message(err, "Failed to create link"))
		} else {
			f.notifier.Error(api.Message(err, "Failed to update link"))
		}

		return err
	}

	f.state = StateClosed
	f.fields = Fields{}
	f.fieldErrs = FieldErrors{}
	f.dateTouched = false
	f.mu.Unlock()

	if mode == ModeCreate {
		f.notifier.Success("Link created successfully")
	} else {
		f.notifier.Success("Link updated successfully")
	}

	if f.onComplete != nil {
		f.onComplete(record)
	}

	return nil
}

// Clear resets the fields: the create form goes back to empty, the edit
// form back to the hydrated record values.
func (f *Form) Clear() {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.fieldErrs = FieldErrors{}
	f.dateTouched = false

	if f.mode == ModeEdit && f.hasTarget {
		f.fields = fieldsFromLink(f.target)

		return
	}

	f.fields = Fields{}
}
