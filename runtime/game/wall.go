package game

import (
	"math/rand"

	"gomahjong/framework/shanten"
)

const (
	TileLimit   = 136 // 34 种 × 4
	SeasonTiles = 4
)

// Wall 牌山。摸牌从末尾取
type Wall struct {
	tiles      []shanten.Tile
	rng        *rand.Rand
	useSeasons bool
}

func NewWall(rng *rand.Rand, useSeasons bool) *Wall {
	w := &Wall{
		tiles:      make([]shanten.Tile, 0, TileLimit+SeasonTiles),
		rng:        rng,
		useSeasons: useSeasons,
	}
	w.Reset()
	return w
}

// Reset 重新生成并洗牌
func (w *Wall) Reset() {
	w.tiles = w.tiles[:0]
	for t := shanten.Man1; t <= shanten.Red; t++ {
		for id := 0; id < 4; id++ {
			w.tiles = append(w.tiles, shanten.Tile{Type: t, ID: id})
		}
	}
	if w.useSeasons {
		for t := shanten.Spring; t <= shanten.Winter; t++ {
			w.tiles = append(w.tiles, shanten.Tile{Type: t})
		}
	}
	w.rng.Shuffle(len(w.tiles), func(i, j int) {
		w.tiles[i], w.tiles[j] = w.tiles[j], w.tiles[i]
	})
}

// Draw 牌山为空时 ok 为 false
func (w *Wall) Draw() (shanten.Tile, bool) {
	if len(w.tiles) == 0 {
		return shanten.Tile{}, false
	}
	t := w.tiles[len(w.tiles)-1]
	w.tiles = w.tiles[:len(w.tiles)-1]
	return t, true
}

func (w *Wall) Remaining() int {
	return len(w.tiles)
}
