// Package editor implements the client-side editing state machine as a pure
// reducer over tagged actions, with a small runtime executing the effects the
// reducer requests. Every transition is testable without a rendering
// environment or a live server.
package editor

// Section is the editing mode: one of the two record kinds, or locale
// administration.
type Section string

const (
	SectionMember  Section = "member"
	SectionProject Section = "project"
	SectionLocales Section = "locale-admin"
)

// RecordSummary is the editor's snapshot of a server record, fetched once at
// load and not live-synced.
type RecordSummary struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Locale      string `json:"locale"`
	HasImage    bool   `json:"has_image"`
}

// State is the whole editor draft. ID empty means "new record". The zero
// value plus an initial SelectSection action is a ready-to-use form.
type State struct {
	Section Section

	// Form fields.
	ID          string
	Name        string
	Description string
	Locale      string
	Token       string

	// Image attachment: set once the async encoding finished.
	ImageDataURI string
	Encoding     bool
	// A submit requested while encoding is held and fires on completion.
	SubmitQueued bool

	// Reference data.
	Locales []string
	Records []RecordSummary

	// One request in flight at a time; submit and delete are no-ops while
	// Loading is true.
	Loading bool

	// Transient feedback. MessageGen invalidates stale expiry timers when a
	// newer message replaced the one they were scheduled for.
	Message        string
	MessageIsError bool
	MessageGen     int
}

// CanDelete reports whether the delete control is enabled: an existing
// record is selected and nothing is in flight.
func (s State) CanDelete() bool {
	return s.ID != "" && !s.Loading && s.Section != SectionLocales
}
