package game

import "gomahjong/framework/shanten"

const (
	SeatCount     = 4
	InitialPoints = 25000
)

type Wind int

const (
	WindEast  Wind = iota // 东风
	WindSouth             // 南风
	WindWest              // 西风
	WindNorth             // 北风
)

func (w Wind) String() string {
	switch w {
	case WindEast:
		return "East"
	case WindSouth:
		return "South"
	case WindWest:
		return "West"
	default:
		return "North"
	}
}

// Tile 对应的字牌
func (w Wind) Tile() shanten.TileType {
	return shanten.East + shanten.TileType(w)
}

type Player struct {
	Seat  int
	Name  string
	Score int
	Hand  *Hand
}

func NewPlayer(seat int, name string, score int) *Player {
	return &Player{
		Seat:  seat,
		Name:  name,
		Score: score,
		Hand:  NewHand(),
	}
}
