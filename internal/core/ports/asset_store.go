package ports

// AssetStore is a flat directory of image files named <record id>.<ext>,
// zero or one file per record. There is no referential enforcement at this
// layer; the reconcile service keeps it consistent with the record store.
type AssetStore interface {
	// Write stores the canonical-format bytes for a record id, replacing any
	// previous asset for that id.
	Write(id string, data []byte) error
	// Remove deletes every asset owned by id. A missing asset is a no-op.
	Remove(id string) error
	Exists(id string) bool
	// List enumerates all asset filenames currently stored.
	List() ([]string, error)
	// FilePath resolves a stored filename to an absolute path for serving,
	// rejecting names that escape the asset directory.
	FilePath(filename string) (string, error)
}

// ImageCodec decodes a data-URI image payload into the canonical stored
// format. Codec failures never abort a record write; the caller logs and
// continues.
type ImageCodec interface {
	Decode(dataURI string) (*DecodedImage, error)
}

// DecodedImage is the codec output: canonical-format bytes plus what the
// payload declared itself to be.
type DecodedImage struct {
	Data         []byte
	SourceFormat string
	Animated     bool
}
