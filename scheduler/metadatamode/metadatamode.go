package metadatamode

type MetadataMode string

const (
	Default MetadataMode = ""
	// NoArchive refreshes the stored metadata without copying the file to Cloud Storage.
	NoArchive MetadataMode = "NO_ARCHIVE"
)

func (m MetadataMode) ToString() string {
	return string(m)
}

func FromString(s string) MetadataMode {
	return MetadataMode(s)
}
