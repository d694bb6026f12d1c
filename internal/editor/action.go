package editor

// Action is the tagged variant driving every state transition.
type Action interface {
	isAction()
}

// SelectSection switches between member, project and locale administration.
// It resets the active selection to "new" and reloads reference data.
type SelectSection struct {
	Section Section
}

// SetField updates one named form field: "name", "description", "locale",
// "token".
type SetField struct {
	Field string
	Value string
}

// SelectRecord populates the form from a reference-list entry. A zero-value
// record resets the selection to "new".
type SelectRecord struct {
	Record RecordSummary
}

// AttachFile starts asynchronous encoding of the chosen file into a data URI.
type AttachFile struct {
	Path string
}

// FileEncoded reports a finished encoding.
type FileEncoded struct {
	DataURI string
}

// EncodeFailed reports a failed encoding.
type EncodeFailed struct {
	Message string
}

// Submit requests a save of the current draft: create when ID is empty,
// update otherwise. Ignored while a request is in flight; held while a file
// is still encoding.
type Submit struct{}

// Delete requests removal of the selected record. Ignored when no record is
// selected or a request is in flight.
type Delete struct{}

// SubmitOK reports a successful save or locale registration.
type SubmitOK struct {
	Message string
}

// SubmitErr reports a failed save; the server (or transport) message is
// displayed verbatim.
type SubmitErr struct {
	Message string
}

// DeleteOK reports a successful deletion.
type DeleteOK struct {
	Message string
}

// DeleteErr reports a failed deletion.
type DeleteErr struct {
	Message string
}

// LocalesLoaded replaces the locale reference list.
type LocalesLoaded struct {
	Locales []string
}

// RecordsLoaded replaces the record reference list for the active section.
type RecordsLoaded struct {
	Records []RecordSummary
}

// MessageExpired clears the transient message if it is still the one the
// timer was armed for.
type MessageExpired struct {
	Gen int
}

// Reset clears the form back to "new" keeping token and reference data.
type Reset struct{}

func (SelectSection) isAction()  {}
func (SetField) isAction()       {}
func (SelectRecord) isAction()   {}
func (AttachFile) isAction()     {}
func (FileEncoded) isAction()    {}
func (EncodeFailed) isAction()   {}
func (Submit) isAction()         {}
func (Delete) isAction()         {}
func (SubmitOK) isAction()       {}
func (SubmitErr) isAction()      {}
func (DeleteOK) isAction()       {}
func (DeleteErr) isAction()      {}
func (LocalesLoaded) isAction()  {}
func (RecordsLoaded) isAction()  {}
func (MessageExpired) isAction() {}
func (Reset) isAction()          {}
