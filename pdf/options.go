package pdf

// SortKey selects the ordering applied to discovered files when no custom
// order is given.
type SortKey string

const (
	SortByName SortKey = "name"
	SortByDate SortKey = "date"
	SortBySize SortKey = "size"
)

// Options configures a single merge. The zero value is valid: files are
// sorted by name ascending, every .pdf file is taken and bookmarks are added.
type Options struct {
	// SortBy is the ordering key. Unknown values sort by name.
	SortBy SortKey

	// Descending reverses the order produced by SortBy.
	Descending bool

	// FilePattern is a regular expression matched against file names that
	// already carry the .pdf extension. Empty matches everything.
	FilePattern string

	// CustomFileOrder lists file names or paths in the order they should be
	// merged. When non-empty it replaces SortBy and Descending.
	CustomFileOrder []string

	// AddBookmarks controls the outline. Nil means true.
	AddBookmarks *bool

	// MaxFileSize rejects source files larger than this many bytes.
	// Zero disables the limit.
	MaxFileSize int64

	// OnProgress receives progress events synchronously, in order.
	OnProgress ProgressSink
}

// Bool returns a pointer to v, for use with Options.AddBookmarks.
func Bool(v bool) *bool {
	return &v
}

func (o Options) bookmarksEnabled() bool {
	return o.AddBookmarks == nil || *o.AddBookmarks
}
