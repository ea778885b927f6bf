package board

import (
	"bytes"
	_ "embed"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

const (
	typeColumn        = 1
	destinationColumn = 2
)

//go:embed default.csv
var defaultBoard []byte

// Default returns the board bundled with the binary.
func Default() (*Board, error) {
	return ReadCSV(bytes.NewReader(defaultBoard))
}

// Load reads a board file, picking the format from its extension. An empty
// path loads the bundled board.
func Load(path string) (*Board, error) {
	if path == "" {
		return Default()
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open board %s: %w", path, err)
	}
	defer f.Close()

	var b *Board
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		b, err = ReadYAML(f)
	default:
		b, err = ReadCSV(f)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load board %s: %w", path, err)
	}
	return b, nil
}

// ReadCSV parses rows of index,type,destination. The index column is ignored;
// row order defines the board index. Type codes are -1 eel, 0 normal and
// 1 escalator.
func ReadCSV(r io.Reader) (*Board, error) {
	reader := csv.NewReader(r)
	reader.Comment = '#'
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	var tiles []Tile
	for line := 1; ; line++ {
		row, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read board row: %w", err)
		}
		tile, err := tileFromRow(row)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", line, err)
		}
		tiles = append(tiles, tile)
	}
	return build(tiles)
}

func tileFromRow(row []string) (Tile, error) {
	if len(row) <= typeColumn {
		return Tile{}, fmt.Errorf("missing tile type column (index %d)", typeColumn)
	}
	code, err := strconv.ParseInt(strings.TrimSpace(row[typeColumn]), 10, 8)
	if err != nil {
		return Tile{}, fmt.Errorf("invalid tile type %q: %w", row[typeColumn], err)
	}

	kind := Kind(code)
	switch kind {
	case Normal:
		return NormalTile(), nil
	case Eel, Escalator:
	default:
		return Tile{}, fmt.Errorf("%w: %d", ErrUnknownTileType, code)
	}

	if len(row) <= destinationColumn {
		return Tile{}, fmt.Errorf("missing destination column (index %d)", destinationColumn)
	}
	dest, err := strconv.Atoi(strings.TrimSpace(row[destinationColumn]))
	if err != nil {
		return Tile{}, fmt.Errorf("invalid destination %q: %w", row[destinationColumn], err)
	}
	return Tile{Kind: kind, Destination: dest}, nil
}

// yamlBoard is the on-disk YAML layout.
type yamlBoard struct {
	Name  string     `yaml:"name"`
	Tiles []yamlTile `yaml:"tiles"`
}

type yamlTile struct {
	Type        string `yaml:"type"`
	Destination int    `yaml:"destination"`
}

// ReadYAML parses a board of the form
//
//	tiles:
//	  - type: normal
//	  - type: eel
//	    destination: 2
func ReadYAML(r io.Reader) (*Board, error) {
	var yb yamlBoard
	if err := yaml.NewDecoder(r).Decode(&yb); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("failed to decode yaml board: %w", err)
	}

	tiles := make([]Tile, 0, len(yb.Tiles))
	for i, yt := range yb.Tiles {
		kind, err := ParseKind(strings.ToLower(strings.TrimSpace(yt.Type)))
		if err != nil {
			return nil, fmt.Errorf("tile %d: %w", i, err)
		}
		if kind == Normal {
			tiles = append(tiles, NormalTile())
			continue
		}
		tiles = append(tiles, Tile{Kind: kind, Destination: yt.Destination})
	}
	return build(tiles)
}

// WriteYAML encodes b in the format ReadYAML accepts.
func WriteYAML(w io.Writer, b *Board) error {
	yb := yamlBoard{Tiles: make([]yamlTile, 0, b.Len())}
	for _, t := range b.tiles {
		yt := yamlTile{Type: t.Kind.String()}
		if t.Special() {
			yt.Destination = t.Destination
		}
		yb.Tiles = append(yb.Tiles, yt)
	}
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(yb); err != nil {
		return fmt.Errorf("failed to encode yaml board: %w", err)
	}
	return enc.Close()
}

func build(tiles []Tile) (*Board, error) {
	b, err := New(tiles)
	if err != nil {
		return nil, err
	}
	if err := b.Validate(); err != nil {
		return nil, err
	}
	return b, nil
}
