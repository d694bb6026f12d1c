package editor

// Effect is a side effect the reducer requests from the runtime. Effects are
// executed outside the reducer, and feed their outcome back in as actions.
type Effect interface {
	isEffect()
}

// LoadLocales fetches the registered locale list.
type LoadLocales struct{}

// LoadRecords fetches the reference list for a record kind.
type LoadRecords struct {
	Kind Section
}

// EncodeFile reads a file from disk and encodes it as an image data URI.
type EncodeFile struct {
	Path string
}

// SaveDraft submits the draft to the record pipeline.
type SaveDraft struct {
	Token       string
	Kind        Section
	ID          string
	Name        string
	Description string
	Locale      string
	Image       string
}

// DeleteDraft removes the selected record.
type DeleteDraft struct {
	Token string
	Kind  Section
	ID    string
}

// RegisterLocale creates a locale through the admin endpoint.
type RegisterLocale struct {
	Token    string
	Language string
}

// RemoveLocale deletes a locale through the admin endpoint.
type RemoveLocale struct {
	Token    string
	Language string
}

// ExpireMessage arms a timer that dispatches MessageExpired{Gen} after the
// transient-message TTL.
type ExpireMessage struct {
	Gen int
}

func (LoadLocales) isEffect()    {}
func (LoadRecords) isEffect()    {}
func (EncodeFile) isEffect()     {}
func (SaveDraft) isEffect()      {}
func (DeleteDraft) isEffect()    {}
func (RegisterLocale) isEffect() {}
func (RemoveLocale) isEffect()   {}
func (ExpireMessage) isEffect()  {}
