package engine

import (
	"github.com/suderio/eels-and-escalators/internal/board"
	"github.com/suderio/eels-and-escalators/internal/dice"
)

// Move records how a single turn played out.
type Move struct {
	Roll   dice.RollResult `json:"roll"`
	From   int             `json:"from"`
	Landed int             `json:"landed"`
	To     int             `json:"to"`
	Won    bool            `json:"won"`
}

// ResolveTurn applies roll to p. A double-eel or double-escalator roll jumps
// to the next tile of that kind at or after the current location, falling back
// to a plain advance when none is left. The tile landed on is followed exactly
// once; landing past the end of the board wins.
func ResolveTurn(p *Player, b *board.Board, roll dice.RollResult) Move {
	mv := Move{Roll: roll, From: p.Location}

	switch roll.Kind {
	case dice.Eels:
		p.Location = jumpOrAdvance(b, board.Eel, p.Location, roll.Value)
	case dice.Escalators:
		p.Location = jumpOrAdvance(b, board.Escalator, p.Location, roll.Value)
	default:
		p.Location += int(roll.Value)
	}
	mv.Landed = p.Location

	tile, ok := b.TileAt(p.Location)
	switch {
	case !ok:
		p.HasWon = true
	case tile.Special():
		p.Location = tile.Destination
	}

	mv.To = p.Location
	mv.Won = p.HasWon
	return mv
}

func jumpOrAdvance(b *board.Board, kind board.Kind, from int, steps uint32) int {
	if next, ok := b.NextSpecialOfKind(kind, from); ok {
		return next
	}
	return from + int(steps)
}
