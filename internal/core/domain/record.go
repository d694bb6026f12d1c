package domain

import (
	"errors"
	"strings"
	"time"
)

// Kind selects which record collection an operation targets. Members and
// projects are independent collections; an id is unique within its kind only.
type Kind string

const (
	KindMember  Kind = "member"
	KindProject Kind = "project"
)

var ErrInvalidToken = errors.New("invalid token")
var ErrRecordNotFound = errors.New("record not found")
var ErrLocaleNotFound = errors.New("unknown locale")
var ErrUnknownKind = errors.New("unknown kind")
var ErrInvalidImage = errors.New("invalid image")
var ErrAssetNotFound = errors.New("asset not found")

// MissingFieldError reports the first required field absent from a create
// request. Fields are checked in the fixed order name, description, locale,
// image.
type MissingFieldError struct {
	Field string
}

func (e *MissingFieldError) Error() string {
	return "missing " + e.Field
}

// ParseKind validates a client-supplied kind string.
func ParseKind(s string) (Kind, error) {
	switch Kind(strings.ToLower(strings.TrimSpace(s))) {
	case KindMember:
		return KindMember, nil
	case KindProject:
		return KindProject, nil
	default:
		return "", ErrUnknownKind
	}
}

// Record is a persisted member or project entry. For members the description
// holds the role label. HasImage is derived from the asset store at read time
// and never persisted.
type Record struct {
	ID          string    `json:"id" bson:"_id"`
	Name        string    `json:"name" bson:"name"`
	Description string    `json:"description" bson:"description"`
	Locale      string    `json:"locale" bson:"locale"`
	HasImage    bool      `json:"has_image" bson:"-"`
	CreatedAt   time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt   time.Time `json:"updated_at" bson:"updated_at"`
}

// RecordFields carries the writable fields of a record. On the update path an
// empty field means "leave unchanged".
type RecordFields struct {
	Name        string
	Description string
	Locale      string
}

// WriteOp tags a RecordWrite as a create or an update.
type WriteOp int

const (
	OpCreate WriteOp = iota
	OpUpdate
)

// RecordWrite is the upsert request resolved once at the boundary: an absent
// or empty id means create, anything else means update of that id.
type RecordWrite struct {
	Op     WriteOp
	ID     string
	Fields RecordFields
}

// NewRecordWrite builds the tagged write variant from an optional identifier.
func NewRecordWrite(id string, fields RecordFields) RecordWrite {
	if strings.TrimSpace(id) == "" {
		return RecordWrite{Op: OpCreate, Fields: fields}
	}
	return RecordWrite{Op: OpUpdate, ID: id, Fields: fields}
}

// Locale is a language tag acting as the foreign-key target for Record.Locale.
type Locale struct {
	Language string `json:"language" bson:"_id"`
}

// AssetOwner returns the record id an asset filename refers to: the filename
// stem before the first dot. The relationship is lookup only; deleting a
// record must command asset deletion explicitly rather than rely on a later
// sweep.
func AssetOwner(filename string) string {
	if i := strings.IndexByte(filename, '.'); i >= 0 {
		return filename[:i]
	}
	return filename
}
