package types

// Kind is the classification of a path on disk.
type Kind int

const (
	// KindMissing means nothing exists at the path.
	KindMissing Kind = iota
	// KindFile is a regular file.
	KindFile
	// KindDirectory is a directory.
	KindDirectory
)

func (k Kind) String() string {
	switch k {
	case KindMissing:
		return "missing"
	case KindFile:
		return "file"
	case KindDirectory:
		return "directory"
	default:
		return "unknown"
	}
}

// Exists reports whether the kind denotes something on disk.
func (k Kind) Exists() bool {
	return k != KindMissing
}
