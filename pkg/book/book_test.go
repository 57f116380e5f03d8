package book

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/lattice7/fourply/pkg/board"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func samplePositions(t *testing.T) []board.Position {
	t.Helper()
	variations := []string{"", "4", "44", "443", "4433", "1122"}
	positions := make([]board.Position, 0, len(variations))
	for _, v := range variations {
		p, err := board.FromVariation(v)
		require.NoError(t, err)
		positions = append(positions, p)
	}
	return positions
}

func sampleEntries(t *testing.T) []Entry {
	t.Helper()
	scores := []board.Score{board.Win, board.Loss, board.Draw, board.DrawOrWin, board.DrawOrLoss, board.Win}
	positions := samplePositions(t)
	entries := make([]Entry, len(positions))
	for i, p := range positions {
		entries[i] = NewEntry(p.NormalizedCode(), scores[i])
	}
	return entries
}

func TestNewSortsEntriesByCode(t *testing.T) {
	b := New(sampleEntries(t))
	for i := 1; i < len(b.Entries()); i++ {
		assert.Less(t, b.Entries()[i-1].Code(), b.Entries()[i].Code())
	}
}

func TestBookGetFindsStoredScore(t *testing.T) {
	entries := sampleEntries(t)
	b := New(entries)
	for _, e := range entries {
		assert.Equal(t, e.Score(), b.Get(e.Code()))
	}
}

func TestBookGetMissingCodeIsUnknown(t *testing.T) {
	b := New(sampleEntries(t))
	p, err := board.FromVariation("1234567")
	require.NoError(t, err)
	assert.Equal(t, board.Unknown, b.Get(p.NormalizedCode()))
}

func TestBookGetNormalizesQueryCode(t *testing.T) {
	// "43" (columns 3 then 2, zero-based) is not its own mirror image, so p.Code() and
	// p.Flip().Code() genuinely differ; both must still resolve to the one stored entry.
	p, err := board.FromVariation("43")
	require.NoError(t, err)
	require.NotEqual(t, p.Code(), p.Flip().Code())

	b := New([]Entry{NewEntry(p.NormalizedCode(), board.Win)})
	assert.Equal(t, board.Win, b.Get(p.Code()))
	assert.Equal(t, board.Win, b.Get(p.Flip().Code()))
}

func TestBookContainsPlyMatchesStoredPlies(t *testing.T) {
	p4, err := board.FromVariation("443")
	require.NoError(t, err)
	require.Equal(t, 3, p4.Ply)

	b := New([]Entry{NewEntry(p4.NormalizedCode(), board.Draw)})
	assert.True(t, b.ContainsPly(3))
}

func TestWriteAndOpenHexBookRoundTrips(t *testing.T) {
	entries := sampleEntries(t)
	var buf bytes.Buffer
	require.NoError(t, WriteHex(&buf, entries))

	path := filepath.Join(t.TempDir(), "book.txt")
	require.NoError(t, os.WriteFile(path, buf.Bytes(), 0o644))

	got, err := Open(path)
	require.NoError(t, err)
	assertSameEntries(t, entries, got.Entries())
}

func TestWriteAndOpenBinaryBookRoundTrips(t *testing.T) {
	entries := sampleEntries(t)
	var buf bytes.Buffer
	require.NoError(t, WriteBinary(&buf, entries))

	path := filepath.Join(t.TempDir(), "book.bin")
	require.NoError(t, os.WriteFile(path, buf.Bytes(), 0o644))

	got, err := Open(path)
	require.NoError(t, err)
	assertSameEntries(t, entries, got.Entries())
}

func TestOpenRejectsMalformedBook(t *testing.T) {
	path := filepath.Join(t.TempDir(), "book.txt")
	require.NoError(t, os.WriteFile(path, []byte("not a book\n"), 0o644))
	_, err := Open(path)
	assert.Error(t, err)
}

func assertSameEntries(t *testing.T, want, got []Entry) {
	t.Helper()
	wantByCode := map[board.PositionCode]board.Score{}
	for _, e := range want {
		wantByCode[e.Code()] = e.Score()
	}
	gotByCode := map[board.PositionCode]board.Score{}
	for _, e := range got {
		gotByCode[e.Code()] = e.Score()
	}
	assert.Equal(t, wantByCode, gotByCode)
}
