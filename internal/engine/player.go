package engine

// Player is a racer's per-game state. Location may run past the last tile,
// which is how a win is detected.
type Player struct {
	Location int  `json:"location"`
	HasWon   bool `json:"has_won"`
}

// NewPlayer places a player on the first tile.
func NewPlayer() Player {
	return Player{}
}
