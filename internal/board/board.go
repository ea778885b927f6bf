package board

import (
	"errors"
	"fmt"
)

var (
	// ErrEmptyBoard is returned when a board has no tiles.
	ErrEmptyBoard = errors.New("board has no tiles")
	// ErrDestinationOutOfRange is returned when a special tile points past the board.
	ErrDestinationOutOfRange = errors.New("tile destination out of range")
	// ErrUnknownTileType is returned by loaders for an unrecognized type code.
	ErrUnknownTileType = errors.New("unknown tile type")
)

// Kind is the closed set of tile variants.
type Kind int8

const (
	Eel       Kind = -1
	Normal    Kind = 0
	Escalator Kind = 1
)

func (k Kind) String() string {
	switch k {
	case Eel:
		return "eel"
	case Escalator:
		return "escalator"
	case Normal:
		return "normal"
	default:
		return fmt.Sprintf("kind(%d)", int8(k))
	}
}

// ParseKind maps a name (as used in YAML boards) to a Kind.
func ParseKind(name string) (Kind, error) {
	switch name {
	case "eel":
		return Eel, nil
	case "normal", "":
		return Normal, nil
	case "escalator":
		return Escalator, nil
	}
	return Normal, fmt.Errorf("%w: %q", ErrUnknownTileType, name)
}

// Tile is one board position. Destination only has meaning for Eel and
// Escalator tiles.
type Tile struct {
	Kind        Kind
	Destination int
}

// NormalTile returns a tile with no effect.
func NormalTile() Tile { return Tile{Kind: Normal} }

// EelTile returns an eel that sends the player to destination.
func EelTile(destination int) Tile { return Tile{Kind: Eel, Destination: destination} }

// EscalatorTile returns an escalator that sends the player to destination.
func EscalatorTile(destination int) Tile { return Tile{Kind: Escalator, Destination: destination} }

// Special reports whether landing on the tile relocates the player.
func (t Tile) Special() bool { return t.Kind == Eel || t.Kind == Escalator }

func (t Tile) String() string {
	if t.Special() {
		return fmt.Sprintf("%s(%d)", t.Kind, t.Destination)
	}
	return t.Kind.String()
}

// Board is an immutable ordered sequence of tiles. It is safe for concurrent
// readers once built.
type Board struct {
	tiles []Tile
}

// New copies tiles into a board. The board must not be empty.
func New(tiles []Tile) (*Board, error) {
	if len(tiles) == 0 {
		return nil, ErrEmptyBoard
	}
	cp := make([]Tile, len(tiles))
	copy(cp, tiles)
	return &Board{tiles: cp}, nil
}

// MustNew is New for fixed boards known to be valid.
func MustNew(tiles ...Tile) *Board {
	b, err := New(tiles)
	if err != nil {
		panic(err)
	}
	return b
}

// Len returns the number of tiles.
func (b *Board) Len() int { return len(b.tiles) }

// TileAt returns the tile at index, or false when index is past the last tile.
func (b *Board) TileAt(index int) (Tile, bool) {
	if index < 0 || index >= len(b.tiles) {
		return Tile{}, false
	}
	return b.tiles[index], true
}

// NextSpecialOfKind returns the smallest index >= from holding a tile of kind.
func (b *Board) NextSpecialOfKind(kind Kind, from int) (int, bool) {
	if from < 0 {
		from = 0
	}
	for i := from; i < len(b.tiles); i++ {
		if b.tiles[i].Kind == kind {
			return i, true
		}
	}
	return 0, false
}

// Tiles returns a copy of the tile sequence.
func (b *Board) Tiles() []Tile {
	cp := make([]Tile, len(b.tiles))
	copy(cp, b.tiles)
	return cp
}

// Count returns how many tiles are of kind.
func (b *Board) Count(kind Kind) int {
	n := 0
	for _, t := range b.tiles {
		if t.Kind == kind {
			n++
		}
	}
	return n
}

// Validate checks that every special tile points inside the board.
func (b *Board) Validate() error {
	var errs []error
	for i, t := range b.tiles {
		if !t.Special() {
			continue
		}
		if t.Destination < 0 || t.Destination >= len(b.tiles) {
			errs = append(errs, fmt.Errorf("%w: tile %d (%s) of %d", ErrDestinationOutOfRange, i, t, len(b.tiles)))
		}
	}
	return errors.Join(errs...)
}
