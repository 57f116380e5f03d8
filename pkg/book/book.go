package book

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/lattice7/fourply/pkg/board"
)

// Book is an immutable, sorted array of opening-book entries keyed by normalized position code,
// plus a ply mask that lets callers skip a probe outright at plies the book has nothing for.
// Books are built offline by Generate and never mutated at runtime.
type Book struct {
	entries []Entry
	plyMask uint64
}

// New builds a Book from entries, which need not be pre-sorted or deduplicated; the last entry
// for a given code wins.
func New(entries []Entry) *Book {
	byCode := make(map[board.PositionCode]Entry, len(entries))
	for _, e := range entries {
		byCode[e.Code()] = e
	}

	sorted := make([]Entry, 0, len(byCode))
	for _, e := range byCode {
		sorted = append(sorted, e)
	}
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Code() < sorted[j].Code() })

	var mask uint64
	for _, e := range sorted {
		mask |= uint64(board.FromCode(e.Code()).Ply)
	}
	return &Book{entries: sorted, plyMask: mask}
}

// Len returns the number of entries.
func (b *Book) Len() int { return len(b.entries) }

// Entries returns the entries in sorted order. Callers must not mutate the returned slice.
func (b *Book) Entries() []Entry { return b.entries }

// ContainsPly is the hot-path gate described in spec.md §4.4: (ply_mask & ply) != 0. It is a
// cheap necessary condition, not a precise one -- it can false-positive when ply is not itself a
// power of two stored in the book -- but the book's generated plies are chosen to make that rare
// in practice, and a false positive only costs a wasted Get, never a wrong answer.
func (b *Book) ContainsPly(ply int) bool {
	return b.plyMask&uint64(ply) != 0
}

// Get normalizes code and binary-searches for it, returning the stored score or board.Unknown.
func (b *Book) Get(code board.PositionCode) board.Score {
	normalized := code.Normalize()
	i := sort.Search(len(b.entries), func(i int) bool { return b.entries[i].Code() >= normalized })
	if i < len(b.entries) && b.entries[i].Code() == normalized {
		return b.entries[i].Score()
	}
	return board.Unknown
}

// Open loads a book from path, trying the text format (hex or verbose, autodetected per line)
// first; on any parse failure it rewinds and tries the binary format.
func Open(path string) (*Book, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("open book %q: %v", path, err)
	}

	if entries, err := parseText(string(data)); err == nil {
		return New(entries), nil
	}

	entries, err := parseBinary(data)
	if err != nil {
		return nil, fmt.Errorf("open book %q: not a valid text or binary book", path)
	}
	return New(entries), nil
}

func parseText(data string) ([]Entry, error) {
	var entries []Entry
	scanner := bufio.NewScanner(strings.NewReader(data))
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		code, score, err := parseLine(line)
		if err != nil {
			return nil, fmt.Errorf("invalid book entry: %v", err)
		}
		entries = append(entries, NewEntry(code, score))
	}
	if len(entries) == 0 {
		return nil, fmt.Errorf("no entries parsed")
	}
	return entries, nil
}

func parseBinary(data []byte) ([]Entry, error) {
	if len(data)%8 != 0 || len(data) == 0 {
		return nil, fmt.Errorf("invalid binary book length: %v bytes", len(data))
	}
	entries := make([]Entry, 0, len(data)/8)
	for i := 0; i < len(data); i += 8 {
		e := Entry(binary.BigEndian.Uint64(data[i : i+8]))
		if !board.IsValidCode(e.Code()) || e.Score() == board.Unknown {
			return nil, fmt.Errorf("invalid binary book entry at offset %v", i)
		}
		entries = append(entries, e)
	}
	return entries, nil
}

// WriteHex writes the book in hex text format: one "<16 hex><score char>" line per entry.
func WriteHex(w io.Writer, entries []Entry) error {
	bw := bufio.NewWriter(w)
	for _, e := range entries {
		if _, err := fmt.Fprintln(bw, formatHex(e.Code(), e.Score())); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// WriteBinary writes the book in binary format: concatenated big-endian 8-byte entries.
func WriteBinary(w io.Writer, entries []Entry) error {
	bw := bufio.NewWriter(w)
	var buf [8]byte
	for _, e := range entries {
		binary.BigEndian.PutUint64(buf[:], uint64(e))
		if _, err := bw.Write(buf[:]); err != nil {
			return err
		}
	}
	return bw.Flush()
}
