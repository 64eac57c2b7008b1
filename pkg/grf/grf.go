// Package grf reads map files out of Ragnarok Online GRF 0x200 archives.
package grf

import (
	"bytes"
	"compress/zlib"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"golang.org/x/text/encoding/korean"
	"golang.org/x/text/transform"
)

const (
	grfMagic      = "Master of Magic"
	headerSize    = 46
	entryMetaSize = 17
	version200    = 0x200

	flagFile      = 0x01
	flagEncMixed  = 0x02
	flagEncHeader = 0x04
)

// GRF errors.
var (
	ErrInvalidMagic       = errors.New("grf: invalid magic")
	ErrUnsupportedVersion = errors.New("grf: unsupported version")
	ErrCorruptTable       = errors.New("grf: corrupt file table")
	ErrNotFound           = errors.New("grf: file not found")
	ErrEncrypted          = errors.New("grf: encrypted entries are not supported")
)

// Entry describes one file stored in the archive.
type Entry struct {
	Name             string // UTF-8, lower case, forward slashes
	CompressedSize   uint32
	AlignedSize      uint32
	UncompressedSize uint32
	Flags            uint8
	Offset           uint32
}

// Archive is an opened GRF archive. Reads go through io.ReaderAt, so an
// Archive can serve concurrent Read calls.
type Archive struct {
	r       io.ReaderAt
	closer  io.Closer
	version uint32
	entries map[string]*Entry
}

// Open opens a GRF archive on disk.
func Open(path string) (*Archive, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening archive: %w", err)
	}
	a, err := NewReader(f)
	if err != nil {
		f.Close()
		return nil, err
	}
	a.closer = f
	return a, nil
}

// NewReader reads the header and file table from r.
func NewReader(r io.ReaderAt) (*Archive, error) {
	header := make([]byte, headerSize)
	if err := readFull(r, header, 0); err != nil {
		return nil, fmt.Errorf("reading header: %w", err)
	}
	if string(header[:len(grfMagic)]) != grfMagic {
		return nil, ErrInvalidMagic
	}

	tableOffset := binary.LittleEndian.Uint32(header[30:])
	seed := binary.LittleEndian.Uint32(header[34:])
	rawCount := binary.LittleEndian.Uint32(header[38:])
	version := binary.LittleEndian.Uint32(header[42:])
	if version != version200 {
		return nil, fmt.Errorf("%w: 0x%x", ErrUnsupportedVersion, version)
	}
	if rawCount < seed+7 {
		return nil, fmt.Errorf("%w: file count %d below seed %d", ErrCorruptTable, rawCount, seed)
	}

	a := &Archive{r: r, version: version, entries: make(map[string]*Entry)}
	if err := a.readTable(int64(tableOffset)+headerSize, int(rawCount-seed-7)); err != nil {
		return nil, err
	}
	return a, nil
}

func (a *Archive) readTable(offset int64, count int) error {
	sizes := make([]byte, 8)
	if err := readFull(a.r, sizes, offset); err != nil {
		return fmt.Errorf("%w: reading table sizes: %v", ErrCorruptTable, err)
	}
	compressed := make([]byte, binary.LittleEndian.Uint32(sizes[0:]))
	if err := readFull(a.r, compressed, offset+8); err != nil {
		return fmt.Errorf("%w: reading table: %v", ErrCorruptTable, err)
	}
	table, err := inflate(compressed, binary.LittleEndian.Uint32(sizes[4:]))
	if err != nil {
		return fmt.Errorf("%w: %v", ErrCorruptTable, err)
	}

	pos := 0
	for i := 0; i < count; i++ {
		end := bytes.IndexByte(table[pos:], 0)
		if end < 0 || pos+end+1+entryMetaSize > len(table) {
			return fmt.Errorf("%w: entry %d truncated", ErrCorruptTable, i)
		}
		name := decodeName(table[pos : pos+end])
		meta := table[pos+end+1:]
		pos += end + 1 + entryMetaSize

		e := &Entry{
			Name:             name,
			CompressedSize:   binary.LittleEndian.Uint32(meta[0:]),
			AlignedSize:      binary.LittleEndian.Uint32(meta[4:]),
			UncompressedSize: binary.LittleEndian.Uint32(meta[8:]),
			Flags:            meta[12],
			Offset:           binary.LittleEndian.Uint32(meta[13:]),
		}
		if e.Flags&flagFile == 0 {
			continue // directory
		}
		a.entries[name] = e
	}
	return nil
}

// Close releases the underlying file, if any.
func (a *Archive) Close() error {
	if a.closer != nil {
		return a.closer.Close()
	}
	return nil
}

// Len returns the number of file entries.
func (a *Archive) Len() int {
	return len(a.entries)
}

// List returns the sorted names of all files whose name has the given
// suffix (case-insensitive). An empty suffix lists everything.
func (a *Archive) List(suffix string) []string {
	suffix = strings.ToLower(suffix)
	names := make([]string, 0, len(a.entries))
	for name := range a.entries {
		if strings.HasSuffix(name, suffix) {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names
}

// Stat returns the entry for path.
func (a *Archive) Stat(path string) (*Entry, bool) {
	e, ok := a.entries[NormalizePath(path)]
	return e, ok
}

// Read returns the uncompressed content of path.
func (a *Archive) Read(path string) ([]byte, error) {
	e, ok := a.Stat(path)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, path)
	}
	if e.Flags&(flagEncMixed|flagEncHeader) != 0 {
		return nil, fmt.Errorf("%w: %s", ErrEncrypted, path)
	}

	data := make([]byte, e.CompressedSize)
	if err := readFull(a.r, data, int64(e.Offset)+headerSize); err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	if e.CompressedSize == e.UncompressedSize {
		return data, nil
	}
	out, err := inflate(data, e.UncompressedSize)
	if err != nil {
		return nil, fmt.Errorf("inflating %s: %w", path, err)
	}
	return out, nil
}

// readFull fills buf from off. A reader may report io.EOF together with a
// complete read at the end of the input.
func readFull(r io.ReaderAt, buf []byte, off int64) error {
	n, err := r.ReadAt(buf, off)
	if n == len(buf) {
		return nil
	}
	if err == nil || err == io.EOF {
		err = io.ErrUnexpectedEOF
	}
	return err
}

func inflate(data []byte, size uint32) ([]byte, error) {
	zr, err := zlib.NewReader(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	defer zr.Close()

	out := make([]byte, size)
	if _, err := io.ReadFull(zr, out); err != nil {
		return nil, err
	}
	return out, nil
}

// decodeName converts an EUC-KR archive name to a normalized UTF-8 path.
// Names that are not valid EUC-KR are kept byte for byte.
func decodeName(raw []byte) string {
	name, _, err := transform.Bytes(korean.EUCKR.NewDecoder(), raw)
	if err != nil {
		name = raw
	}
	return NormalizePath(string(name))
}

// NormalizePath lower-cases path and converts backslashes to slashes.
func NormalizePath(path string) string {
	return strings.ToLower(strings.ReplaceAll(path, "\\", "/"))
}
