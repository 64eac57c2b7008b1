// Package gridio loads terrain grids from disk and saves labeled results.
//
// Supported inputs: plain text (.txt), YAML documents (.yaml, .yml), GAT
// walkability tables (.gat) and obstacle masks (.png, .bmp, .gif, .jpg).
// Outputs: text, YAML and GAT.
package gridio

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/Faultbox/midgard-regions/pkg/formats"
	"github.com/Faultbox/midgard-regions/pkg/terrain"
)

// Format identifies an on-disk grid encoding.
type Format int

// Supported formats.
const (
	FormatText Format = iota
	FormatYAML
	FormatGAT
	FormatImage
)

// String returns the format name.
func (f Format) String() string {
	switch f {
	case FormatText:
		return "text"
	case FormatYAML:
		return "yaml"
	case FormatGAT:
		return "gat"
	case FormatImage:
		return "image"
	default:
		return fmt.Sprintf("Unknown(%d)", int(f))
	}
}

// gridio errors.
var (
	ErrUnknownFormat = errors.New("gridio: unknown file format")
	ErrUnsupported   = errors.New("gridio: operation not supported for format")
	ErrSyntax        = errors.New("gridio: syntax error")
)

// FormatFromPath picks a format from the file extension.
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".txt", ".grid":
		return FormatText, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".gat":
		return FormatGAT, nil
	case ".png", ".bmp", ".gif", ".jpg", ".jpeg":
		return FormatImage, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownFormat, path)
	}
}

// Load reads a grid document from path. The document name defaults to the
// file name without extension.
func Load(path string) (*Document, error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return nil, err
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening grid: %w", err)
	}
	defer f.Close()

	doc, err := Decode(f, format)
	if err != nil {
		return nil, fmt.Errorf("loading %s: %w", path, err)
	}
	if doc.Name == "" {
		doc.Name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	return doc, nil
}

// Decode reads a document in the given format. The grid shape is validated.
func Decode(r io.Reader, format Format) (*Document, error) {
	var (
		doc *Document
		err error
	)
	switch format {
	case FormatText:
		doc, err = decodeText(r)
	case FormatYAML:
		doc, err = decodeYAML(r)
	case FormatGAT:
		doc, err = decodeGAT(r)
	case FormatImage:
		doc, err = decodeImage(r)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownFormat, format)
	}
	if err != nil {
		return nil, err
	}
	if err := terrain.Validate(doc.Grid()); err != nil {
		return nil, err
	}
	return doc, nil
}

// Save writes doc to path in the format implied by the extension.
func Save(path string, doc *Document) error {
	format, err := FormatFromPath(path)
	if err != nil {
		return err
	}
	var buf bytes.Buffer
	if err := Encode(&buf, doc, format); err != nil {
		return err
	}
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return err
		}
	}
	return os.WriteFile(path, buf.Bytes(), 0644)
}

// Encode writes doc in the given format. Images are produced by the render
// package and are not supported here.
func Encode(w io.Writer, doc *Document, format Format) error {
	switch format {
	case FormatText:
		return encodeText(w, doc)
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(doc); err != nil {
			return err
		}
		return enc.Close()
	case FormatGAT:
		_, err := w.Write(formats.GATFromGrid(doc.Grid()).Encode())
		return err
	default:
		return fmt.Errorf("%w: %s", ErrUnsupported, format)
	}
}

// decodeText parses one row per line, cells separated by whitespace.
// Blank lines and lines starting with '#' are skipped.
func decodeText(r io.Reader) (*Document, error) {
	doc := &Document{}
	sc := bufio.NewScanner(r)
	line := 0
	for sc.Scan() {
		line++
		text := strings.TrimSpace(sc.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}
		fields := strings.Fields(text)
		row := make(Row, len(fields))
		for i, f := range fields {
			v, err := strconv.Atoi(f)
			if err != nil || v < 0 {
				return nil, fmt.Errorf("%w: line %d: invalid cell %q", ErrSyntax, line, f)
			}
			row[i] = v
		}
		doc.Rows = append(doc.Rows, row)
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return doc, nil
}

func encodeText(w io.Writer, doc *Document) error {
	bw := bufio.NewWriter(w)
	for _, row := range doc.Rows {
		for i, v := range row {
			if i > 0 {
				bw.WriteByte(' ')
			}
			bw.WriteString(strconv.Itoa(v))
		}
		bw.WriteByte('\n')
	}
	return bw.Flush()
}

func decodeYAML(r io.Reader) (*Document, error) {
	doc := &Document{}
	if err := yaml.NewDecoder(r).Decode(doc); err != nil {
		if errors.Is(err, io.EOF) {
			return doc, nil
		}
		return nil, fmt.Errorf("%w: %v", ErrSyntax, err)
	}
	for i, row := range doc.Rows {
		for j, v := range row {
			if v < 0 {
				return nil, fmt.Errorf("%w: rows[%d][%d]: negative cell %d", ErrSyntax, i, j, v)
			}
		}
	}
	return doc, nil
}

func decodeGAT(r io.Reader) (*Document, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	gat, err := formats.ParseGAT(data)
	if err != nil {
		return nil, err
	}
	return NewDocument("", gat.ToGrid()), nil
}
