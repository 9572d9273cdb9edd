package library

// Song is one library entry. Optional metadata is nil when unknown.
type Song struct {
	ID           int64
	Title        string
	Source       *string
	CatalogID    *string
	ThumbnailURL *string
	FileID       *int64
}

// NewSong is the insertable form of a song.
type NewSong struct {
	Title        string
	Source       *string
	CatalogID    *string
	ThumbnailURL *string
	FileID       *int64
}

// Artist is a named artist row.
type Artist struct {
	ID   int64
	Name string
}

// Album is a named album row.
type Album struct {
	ID   int64
	Name string
}

// Genre is a named genre row.
type Genre struct {
	ID   int64
	Name string
}

// File is a tracked on-disk file, keyed by library-relative path.
type File struct {
	ID           int64
	RelativePath string
}
