package game

import (
	"fmt"
	"sort"
	"strings"

	"gomahjong/framework/shanten"
)

// Hand 有序手牌
type Hand struct {
	tiles []shanten.Tile
}

func NewHand() *Hand {
	return &Hand{tiles: make([]shanten.Tile, 0, shanten.MaxHand)}
}

func (h *Hand) Add(t shanten.Tile) {
	h.tiles = append(h.tiles, t)
}

// Remove 按下标打出一张，返回被打出的牌
func (h *Hand) Remove(index int) (shanten.Tile, error) {
	if index < 0 || index >= len(h.tiles) {
		return shanten.Tile{}, fmt.Errorf("手牌下标越界: %d, 手牌数 %d", index, len(h.tiles))
	}
	t := h.tiles[index]
	h.tiles = append(h.tiles[:index], h.tiles[index+1:]...)
	return t, nil
}

// Sort 按牌种稳定排序，同种牌按 ID
func (h *Hand) Sort() {
	sort.SliceStable(h.tiles, func(i, j int) bool {
		if h.tiles[i].Type != h.tiles[j].Type {
			return h.tiles[i].Type < h.tiles[j].Type
		}
		return h.tiles[i].ID < h.tiles[j].ID
	})
}

func (h *Hand) Reset() {
	h.tiles = h.tiles[:0]
}

func (h *Hand) Tile(index int) shanten.Tile {
	return h.tiles[index]
}

// Tiles 返回副本
func (h *Hand) Tiles() []shanten.Tile {
	out := make([]shanten.Tile, len(h.tiles))
	copy(out, h.tiles)
	return out
}

func (h *Hand) Len() int {
	return len(h.tiles)
}

// String 控制台展示，如 "1万 2万 东"
func (h *Hand) String() string {
	names := make([]string, len(h.tiles))
	for i, t := range h.tiles {
		names[i] = t.Type.Name()
	}
	return strings.Join(names, " ")
}
