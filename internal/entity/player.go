package entity

type Player struct {
	ID     string `json:"id"`
	Side   string `json:"side,omitempty"`
	GameID string `json:"game_id,omitempty"`
}

func (that *Player) InGame() bool {
	return that.GameID != ""
}
