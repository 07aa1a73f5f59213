package app

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/decker502/giftrooms/pkg/config"
	"github.com/decker502/giftrooms/pkg/puzzle"
	"github.com/decker502/giftrooms/pkg/types"
	"github.com/decker502/giftrooms/pkg/utils"
)

var (
	imageTileColor  = color.RGBA{R: 196, G: 64, B: 64, A: 255}
	themedTileColor = color.RGBA{R: 64, G: 128, B: 96, A: 255}
	solvedTileColor = color.RGBA{R: 220, G: 180, B: 60, A: 255}
)

// puzzleScreen 带滑块拼图的房间界面
// 文字面板复用 roomScreen，右侧绘制棋盘，点击图块移动
type puzzleScreen struct {
	*roomScreen
	room types.RoomID
}

func newPuzzleScreen(room *roomScreen, roomID types.RoomID) *puzzleScreen {
	return &puzzleScreen{roomScreen: room, room: roomID}
}

// grid 当前拼图的棋盘几何
func (p *puzzleScreen) grid(pz *puzzle.Puzzle) utils.TileGrid {
	return utils.NewTileGrid(config.PuzzleOriginX, config.PuzzleOriginY, config.PuzzleExtent, config.PuzzleTileGap, pz.Size())
}

// Update 处理点击，其余输入交给文字面板
func (p *puzzleScreen) Update(deltaTime float64) {
	p.roomScreen.Update(deltaTime)

	if p.store.CurrentScene() != p.room.Scene() {
		return
	}
	clicked, x, y := utils.IsJustTouchedOrClicked()
	if !clicked {
		return
	}
	p.click(x, y)
}

// click 点击屏幕坐标 (x, y)
func (p *puzzleScreen) click(x, y int) bool {
	pz := p.navigator.Puzzle(p.room)
	if pz == nil {
		return false
	}
	pos, ok := p.grid(pz).CellAt(x, y)
	if !ok {
		return false
	}
	if !p.navigator.MoveTile(p.room, pos) {
		return false
	}
	if pz.IsSolved() {
		reward, _ := p.navigator.RewardFor(p.room)
		reward.Replay = false
		p.message = "Puzzle solved! " + describeReward(reward)
	}
	return true
}

// Draw 绘制文字面板和棋盘
func (p *puzzleScreen) Draw(screen *ebiten.Image) {
	p.roomScreen.Draw(screen)

	pz := p.navigator.Puzzle(p.room)
	if pz == nil {
		return
	}
	grid := p.grid(pz)
	tileColor := imageTileColor
	if pz.Kind() == puzzle.KindThemed {
		tileColor = themedTileColor
	}
	if pz.IsSolved() {
		tileColor = solvedTileColor
	}

	board := pz.Board()
	blank := board.BlankValue()
	size := float32(grid.TileSize())
	for pos, value := range board {
		if value == blank && !pz.IsSolved() {
			continue
		}
		x, y := grid.CellOrigin(pos)
		vector.DrawFilledRect(screen, float32(x), float32(y), size, size, tileColor, false)
		ebitenutil.DebugPrintAt(screen, fmt.Sprint(value+1), int(x)+4, int(y)+4)
	}

	ebitenutil.DebugPrintAt(screen, fmt.Sprintf("%s puzzle  moves: %d", pz.Kind(), pz.Moves()),
		int(config.PuzzleOriginX), int(config.PuzzleOriginY)-config.TextLineHeight*2)
}
