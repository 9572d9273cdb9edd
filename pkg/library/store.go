// Package library persists the music library in SQLite. The dispatch core
// treats it purely as a request/response boundary: no transaction is ever
// held across a dispatch cycle.
package library

import (
	"database/sql"
	_ "embed"
	stderrors "errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/odvcencio/stax/pkg/errors"
	sqlite "modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

//go:embed schema.sql
var schemaSQL string

// Store manages the library database.
type Store struct {
	db *sql.DB
}

// Open opens (creating if needed) the library database at path. Use
// ":memory:" for tests.
func Open(path string) (*Store, error) {
	if path != ":memory:" {
		if dir := filepath.Dir(path); dir != "" && dir != "." {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return nil, errors.Wrap(errors.CodeLibraryWrite, "create database directory", err)
			}
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, errors.Wrap(errors.CodeLibraryRead, "open database", err)
	}

	// SQLite allows one writer; WAL keeps readers from blocking on it.
	for _, pragma := range []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA busy_timeout = 5000",
		"PRAGMA foreign_keys = ON",
	} {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, errors.Wrap(errors.CodeLibraryWrite, pragma, err)
		}
	}

	if _, err := db.Exec(schemaSQL); err != nil {
		db.Close()
		return nil, errors.Wrap(errors.CodeLibraryWrite, "apply schema", err)
	}

	return &Store{db: db}, nil
}

// Close closes the database.
func (s *Store) Close() error {
	return s.db.Close()
}

// InsertSong inserts a song and returns its id.
func (s *Store) InsertSong(song NewSong) (int64, error) {
	res, err := s.db.Exec(
		`INSERT INTO songs (title, source, catalog_id, thumbnail_url, file_id) VALUES (?, ?, ?, ?, ?)`,
		song.Title, song.Source, song.CatalogID, song.ThumbnailURL, song.FileID,
	)
	if err != nil {
		return 0, errors.Wrap(errors.CodeLibraryWrite, "insert song", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, errors.Wrap(errors.CodeLibraryWrite, "song id", err)
	}
	return id, nil
}

// UpsertArtist returns the id of the artist with the given name, inserting
// the row if the name is new.
func (s *Store) UpsertArtist(name string) (int64, error) {
	return s.upsertNamed("artists", name)
}

// UpsertAlbum returns the id of the album with the given name, inserting
// the row if the name is new.
func (s *Store) UpsertAlbum(name string) (int64, error) {
	return s.upsertNamed("albums", name)
}

// UpsertGenre returns the id of the genre with the given name, inserting
// the row if the name is new.
func (s *Store) UpsertGenre(name string) (int64, error) {
	return s.upsertNamed("genres", name)
}

func (s *Store) upsertNamed(table, name string) (int64, error) {
	var id int64
	err := s.db.QueryRow(fmt.Sprintf(`SELECT id FROM %s WHERE name = ?`, table), name).Scan(&id)
	switch {
	case err == nil:
		return id, nil
	case stderrors.Is(err, sql.ErrNoRows):
		res, err := s.db.Exec(fmt.Sprintf(`INSERT INTO %s (name) VALUES (?)`, table), name)
		if err != nil {
			return 0, errors.Wrap(errors.CodeLibraryWrite, "insert "+table, err)
		}
		id, err := res.LastInsertId()
		if err != nil {
			return 0, errors.Wrap(errors.CodeLibraryWrite, table+" id", err)
		}
		return id, nil
	default:
		return 0, errors.Wrap(errors.CodeLibraryRead, "lookup "+table, err)
	}
}

// UpsertFile returns the id of the file with the given relative path,
// inserting the row if the path is new.
func (s *Store) UpsertFile(relativePath string) (int64, error) {
	var id int64
	err := s.db.QueryRow(`SELECT id FROM files WHERE relative_path = ?`, relativePath).Scan(&id)
	switch {
	case err == nil:
		return id, nil
	case stderrors.Is(err, sql.ErrNoRows):
		res, err := s.db.Exec(`INSERT INTO files (relative_path) VALUES (?)`, relativePath)
		if err != nil {
			return 0, errors.Wrap(errors.CodeLibraryWrite, "insert file", err)
		}
		id, err := res.LastInsertId()
		if err != nil {
			return 0, errors.Wrap(errors.CodeLibraryWrite, "file id", err)
		}
		return id, nil
	default:
		return 0, errors.Wrap(errors.CodeLibraryRead, "lookup file", err)
	}
}

// LinkSongArtist associates a song with an artist. Linking the same pair
// twice is a conflict error.
func (s *Store) LinkSongArtist(songID, artistID int64) error {
	return s.link(`INSERT INTO songs_artists (song_id, artist_id) VALUES (?, ?)`, songID, artistID)
}

// LinkSongAlbum associates a song with an album.
func (s *Store) LinkSongAlbum(songID, albumID int64) error {
	return s.link(`INSERT INTO songs_albums (song_id, album_id) VALUES (?, ?)`, songID, albumID)
}

// LinkSongGenre associates a song with a genre.
func (s *Store) LinkSongGenre(songID, genreID int64) error {
	return s.link(`INSERT INTO songs_genres (song_id, genre_id) VALUES (?, ?)`, songID, genreID)
}

func (s *Store) link(query string, a, b int64) error {
	if _, err := s.db.Exec(query, a, b); err != nil {
		if isConstraintErr(err) {
			return errors.Wrap(errors.CodeLibraryConflict, "association already exists", err)
		}
		return errors.Wrap(errors.CodeLibraryWrite, "insert association", err)
	}
	return nil
}

func isConstraintErr(err error) bool {
	var serr *sqlite.Error
	if stderrors.As(err, &serr) {
		code := serr.Code() & 0xff
		return code == sqlite3.SQLITE_CONSTRAINT
	}
	return false
}

// Song fetches one song by id.
func (s *Store) Song(id int64) (*Song, error) {
	row := s.db.QueryRow(
		`SELECT id, title, source, catalog_id, thumbnail_url, file_id FROM songs WHERE id = ?`, id)
	var song Song
	if err := row.Scan(&song.ID, &song.Title, &song.Source, &song.CatalogID, &song.ThumbnailURL, &song.FileID); err != nil {
		return nil, errors.Wrap(errors.CodeLibraryRead, "get song", err)
	}
	return &song, nil
}

// Songs returns every song ordered by title.
func (s *Store) Songs() ([]Song, error) {
	rows, err := s.db.Query(
		`SELECT id, title, source, catalog_id, thumbnail_url, file_id FROM songs ORDER BY title, id`)
	if err != nil {
		return nil, errors.Wrap(errors.CodeLibraryRead, "list songs", err)
	}
	defer rows.Close()

	var songs []Song
	for rows.Next() {
		var song Song
		if err := rows.Scan(&song.ID, &song.Title, &song.Source, &song.CatalogID, &song.ThumbnailURL, &song.FileID); err != nil {
			return nil, errors.Wrap(errors.CodeLibraryRead, "scan song", err)
		}
		songs = append(songs, song)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(errors.CodeLibraryRead, "iterate songs", err)
	}
	return songs, nil
}

// ArtistsForSong returns the artists associated with a song.
func (s *Store) ArtistsForSong(songID int64) ([]Artist, error) {
	rows, err := s.db.Query(
		`SELECT a.id, a.name FROM artists a
		 JOIN songs_artists sa ON sa.artist_id = a.id
		 WHERE sa.song_id = ? ORDER BY a.name`, songID)
	if err != nil {
		return nil, errors.Wrap(errors.CodeLibraryRead, "artists for song", err)
	}
	defer rows.Close()

	var artists []Artist
	for rows.Next() {
		var a Artist
		if err := rows.Scan(&a.ID, &a.Name); err != nil {
			return nil, errors.Wrap(errors.CodeLibraryRead, "scan artist", err)
		}
		artists = append(artists, a)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(errors.CodeLibraryRead, "iterate artists", err)
	}
	return artists, nil
}

// Artists returns every artist ordered by name.
func (s *Store) Artists() ([]Artist, error) {
	rows, err := s.db.Query(`SELECT id, name FROM artists ORDER BY name`)
	if err != nil {
		return nil, errors.Wrap(errors.CodeLibraryRead, "list artists", err)
	}
	defer rows.Close()

	var artists []Artist
	for rows.Next() {
		var a Artist
		if err := rows.Scan(&a.ID, &a.Name); err != nil {
			return nil, errors.Wrap(errors.CodeLibraryRead, "scan artist", err)
		}
		artists = append(artists, a)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(errors.CodeLibraryRead, "iterate artists", err)
	}
	return artists, nil
}
