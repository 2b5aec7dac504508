package editor

import "github.com/mesh-intelligence/nuzlocke/pkg/types"

// State is the phase of an edit form.
type State int

const (
	StateSeeding State = iota
	StateEditing
	StateSubmitting
	StateClosed
)

var stateNames = map[State]string{
	StateSeeding:    "seeding",
	StateEditing:    "editing",
	StateSubmitting: "submitting",
	StateClosed:     "closed",
}

func (s State) String() string {
	if name, ok := stateNames[s]; ok {
		return name
	}
	return "unknown"
}

// Form holds the working values of one entry for one session. Each edit
// changes exactly one value; nothing is validated here.
type Form struct {
	state  State
	entry  types.Entry
	values Values
	err    error
}

// NewForm seeds a form from entry and leaves it editing.
func NewForm(run types.Run, entry types.Entry) *Form {
	f := &Form{}
	f.Reseed(run, entry)
	return f
}

// Reseed replaces the working values with those of entry. It is used when
// the bound entry changes and discards unsaved edits.
func (f *Form) Reseed(run types.Run, entry types.Entry) {
	f.state = StateSeeding
	f.entry = entry.Clone()
	f.values = Seed(run, entry)
	f.err = nil
	f.state = StateEditing
}

// State returns the current phase.
func (f *Form) State() State { return f.state }

// Err returns the failure of the last submit, if any.
func (f *Form) Err() error { return f.err }

// EntryID returns the id of the entry being edited.
func (f *Form) EntryID() string { return f.entry.ID }

// Paired reports whether the form carries a partner value.
func (f *Form) Paired() bool {
	_, ok := f.values.(*PairedValues)
	return ok
}

// Fields returns a copy of the working values shared by every mode.
func (f *Form) Fields() Fields { return *f.values.fields() }

// Partner returns the working partner id and whether one is set.
func (f *Form) Partner() (string, bool) {
	p := f.values.partner()
	if p == nil {
		return "", false
	}
	return *p, true
}

func (f *Form) editable() error {
	switch f.state {
	case StateEditing:
		return nil
	case StateSubmitting:
		return ErrSubmitInFlight
	default:
		return ErrSessionClosed
	}
}

// SetNickname changes the working nickname.
func (f *Form) SetNickname(nickname string) error {
	if err := f.editable(); err != nil {
		return err
	}
	f.values.fields().Nickname = nickname
	return nil
}

// SetLocation changes the working location.
func (f *Form) SetLocation(location string) error {
	if err := f.editable(); err != nil {
		return err
	}
	f.values.fields().Location = location
	return nil
}

// SetStatus changes the working status. Values outside the vocabulary are
// accepted and left for the service to reject.
func (f *Form) SetStatus(status types.Status) error {
	if err := f.editable(); err != nil {
		return err
	}
	f.values.fields().Status = status
	return nil
}

// SetPartner changes the working partner; nil clears it. It fails with
// ErrPartnerUnavailable when the run is not paired.
func (f *Form) SetPartner(partnerID *string) error {
	if err := f.editable(); err != nil {
		return err
	}
	paired, ok := f.values.(*PairedValues)
	if !ok {
		return ErrPartnerUnavailable
	}
	if partnerID == nil {
		paired.Partner = nil
		return nil
	}
	id := *partnerID
	paired.Partner = &id
	return nil
}

// BeginSubmit moves the form to submitting and returns the full payload.
// A second call before the first resolves fails with ErrSubmitInFlight.
func (f *Form) BeginSubmit() (types.UpdatePayload, error) {
	if err := f.editable(); err != nil {
		return types.UpdatePayload{}, err
	}
	f.state = StateSubmitting
	f.err = nil
	return Payload(f.entry, f.values), nil
}

// SubmitSucceeded closes the form.
func (f *Form) SubmitSucceeded() {
	if f.state == StateSubmitting {
		f.state = StateClosed
	}
}

// SubmitFailed returns the form to editing with its working values intact
// and records err.
func (f *Form) SubmitFailed(err error) {
	if f.state == StateSubmitting {
		f.state = StateEditing
		f.err = err
	}
}

// Close ends the form. Later edits fail with ErrSessionClosed.
func (f *Form) Close() {
	f.state = StateClosed
}
