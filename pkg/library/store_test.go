package library

import (
	"path/filepath"
	"testing"

	"github.com/odvcencio/stax/pkg/errors"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "library.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func TestUpsertArtistIdempotent(t *testing.T) {
	store := openTestStore(t)

	first, err := store.UpsertArtist("suisei")
	if err != nil {
		t.Fatalf("first upsert: %v", err)
	}
	second, err := store.UpsertArtist("suisei")
	if err != nil {
		t.Fatalf("second upsert: %v", err)
	}
	if first != second {
		t.Fatalf("expected same id for same name, got %d and %d", first, second)
	}

	other, err := store.UpsertArtist("miko")
	if err != nil {
		t.Fatalf("third upsert: %v", err)
	}
	if other == first {
		t.Fatalf("distinct name should get a new id, got %d twice", first)
	}
}

func TestUpsertAlbumAndGenre(t *testing.T) {
	store := openTestStore(t)

	a1, err := store.UpsertAlbum("Still Still Stellar")
	if err != nil {
		t.Fatalf("upsert album: %v", err)
	}
	a2, _ := store.UpsertAlbum("Still Still Stellar")
	if a1 != a2 {
		t.Fatalf("album upsert not idempotent: %d vs %d", a1, a2)
	}

	g1, err := store.UpsertGenre("pop")
	if err != nil {
		t.Fatalf("upsert genre: %v", err)
	}
	g2, _ := store.UpsertGenre("pop")
	if g1 != g2 {
		t.Fatalf("genre upsert not idempotent: %d vs %d", g1, g2)
	}
}

func TestUpsertFileByPath(t *testing.T) {
	store := openTestStore(t)

	f1, err := store.UpsertFile("artist/album/track.opus")
	if err != nil {
		t.Fatalf("upsert file: %v", err)
	}
	f2, err := store.UpsertFile("artist/album/track.opus")
	if err != nil {
		t.Fatalf("second upsert file: %v", err)
	}
	if f1 != f2 {
		t.Fatalf("file upsert not idempotent: %d vs %d", f1, f2)
	}
}

func TestDuplicateAssociationFails(t *testing.T) {
	store := openTestStore(t)

	songID, err := store.InsertSong(NewSong{Title: "Stellar Stellar"})
	if err != nil {
		t.Fatalf("insert song: %v", err)
	}
	artistID, err := store.UpsertArtist("suisei")
	if err != nil {
		t.Fatalf("upsert artist: %v", err)
	}

	if err := store.LinkSongArtist(songID, artistID); err != nil {
		t.Fatalf("first link: %v", err)
	}
	err = store.LinkSongArtist(songID, artistID)
	if err == nil {
		t.Fatal("expected duplicate association to fail")
	}
	if !errors.HasCode(err, errors.CodeLibraryConflict) {
		t.Fatalf("expected LIBRARY_CONFLICT, got %v", err)
	}
}

func TestSongRoundTrip(t *testing.T) {
	store := openTestStore(t)

	source := "catalog"
	catalogID := "dQw4w9WgXcQ"
	id, err := store.InsertSong(NewSong{Title: "Never Gonna Give You Up", Source: &source, CatalogID: &catalogID})
	if err != nil {
		t.Fatalf("insert song: %v", err)
	}

	song, err := store.Song(id)
	if err != nil {
		t.Fatalf("get song: %v", err)
	}
	if song.Title != "Never Gonna Give You Up" {
		t.Fatalf("unexpected title %q", song.Title)
	}
	if song.Source == nil || *song.Source != source {
		t.Fatalf("unexpected source %v", song.Source)
	}
	if song.CatalogID == nil || *song.CatalogID != catalogID {
		t.Fatalf("unexpected catalog id %v", song.CatalogID)
	}
}

func TestSongsOrderedByTitle(t *testing.T) {
	store := openTestStore(t)

	for _, title := range []string{"Zeta", "Alpha", "Midway"} {
		if _, err := store.InsertSong(NewSong{Title: title}); err != nil {
			t.Fatalf("insert %s: %v", title, err)
		}
	}

	songs, err := store.Songs()
	if err != nil {
		t.Fatalf("list songs: %v", err)
	}
	if len(songs) != 3 {
		t.Fatalf("expected 3 songs, got %d", len(songs))
	}
	want := []string{"Alpha", "Midway", "Zeta"}
	for i, w := range want {
		if songs[i].Title != w {
			t.Fatalf("song %d: expected %s, got %s", i, w, songs[i].Title)
		}
	}
}

func TestArtistsForSong(t *testing.T) {
	store := openTestStore(t)

	songID, err := store.InsertSong(NewSong{Title: "collab"})
	if err != nil {
		t.Fatalf("insert song: %v", err)
	}
	for _, name := range []string{"b-artist", "a-artist"} {
		artistID, err := store.UpsertArtist(name)
		if err != nil {
			t.Fatalf("upsert %s: %v", name, err)
		}
		if err := store.LinkSongArtist(songID, artistID); err != nil {
			t.Fatalf("link %s: %v", name, err)
		}
	}

	artists, err := store.ArtistsForSong(songID)
	if err != nil {
		t.Fatalf("artists for song: %v", err)
	}
	if len(artists) != 2 {
		t.Fatalf("expected 2 artists, got %d", len(artists))
	}
	if artists[0].Name != "a-artist" || artists[1].Name != "b-artist" {
		t.Fatalf("expected name order, got %v", artists)
	}

	unrelated, err := store.InsertSong(NewSong{Title: "solo"})
	if err != nil {
		t.Fatalf("insert unrelated: %v", err)
	}
	none, err := store.ArtistsForSong(unrelated)
	if err != nil {
		t.Fatalf("artists for unrelated: %v", err)
	}
	if len(none) != 0 {
		t.Fatalf("expected no artists, got %v", none)
	}
}
