package app

import (
	"fmt"
	"image/color"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/decker502/giftrooms/pkg/config"
	"github.com/decker502/giftrooms/pkg/game"
	"github.com/decker502/giftrooms/pkg/types"
	"github.com/decker502/giftrooms/pkg/utils"
)

// maxCodeLength 密码输入框最多接受的字符数
const maxCodeLength = 12

var backgroundColor = color.RGBA{R: 24, G: 28, B: 44, A: 255}

// roomScreen 通用场景界面
// 以文字面板显示进度，键盘选择出口、完成房间、输入密码
type roomScreen struct {
	store     *game.ProgressionStore
	navigator *game.Navigator
	sequencer *game.Sequencer
	settings  *game.SettingsManager

	selected int    // 当前选中的出口
	code     []rune // 终章的密码输入
	message  string // 最近一次操作的反馈
}

func newRoomScreen(store *game.ProgressionStore, navigator *game.Navigator, sequencer *game.Sequencer, settings *game.SettingsManager) *roomScreen {
	return &roomScreen{
		store:     store,
		navigator: navigator,
		sequencer: sequencer,
		settings:  settings,
	}
}

// OnEnter 进入新场景时清空选择和输入
func (r *roomScreen) OnEnter() {
	r.selected = 0
	r.code = r.code[:0]
	r.message = ""
}

// Update 处理键盘输入
func (r *roomScreen) Update(deltaTime float64) {
	if clicked, x, y := utils.IsJustTouchedOrClicked(); clicked {
		r.tapExit(x, y)
	}

	switch {
	case inpututil.IsKeyJustPressed(ebiten.KeyTab):
		r.nextExit()
	case inpututil.IsKeyJustPressed(ebiten.KeySpace):
		r.enterSelected()
	case inpututil.IsKeyJustPressed(ebiten.KeyF):
		r.finishRoom()
	case inpututil.IsKeyJustPressed(ebiten.KeyM):
		r.toggleMute()
	case inpututil.IsKeyJustPressed(ebiten.KeyT):
		r.toggleTreeLights()
	case inpututil.IsKeyJustPressed(ebiten.KeyL):
		r.toggleFireplace()
	}

	scene := r.store.CurrentScene()
	if scene == types.SceneDoor && inpututil.IsKeyJustPressed(ebiten.KeyO) {
		r.openGift()
	}
	if scene != types.SceneFinal {
		return
	}
	for _, ch := range ebiten.AppendInputChars(nil) {
		r.typeChar(ch)
	}
	switch {
	case inpututil.IsKeyJustPressed(ebiten.KeyBackspace):
		r.backspace()
	case inpututil.IsKeyJustPressed(ebiten.KeyEnter):
		r.submitCode()
	case inpututil.IsKeyJustPressed(ebiten.KeyP):
		r.revealPhoto()
	case inpututil.IsKeyJustPressed(ebiten.KeyO):
		r.openGift()
	}
}

// nextExit 选中下一个出口
func (r *roomScreen) nextExit() {
	exits := r.navigator.Exits()
	if len(exits) == 0 {
		return
	}
	r.selected = (r.selected + 1) % len(exits)
}

// enterSelected 进入选中的出口
func (r *roomScreen) enterSelected() {
	exits := r.navigator.Exits()
	if len(exits) == 0 {
		return
	}
	if r.selected >= len(exits) {
		r.selected = 0
	}
	r.navigator.Enter(exits[r.selected])
}

// tapExit 点击文字面板上的出口行时进入该出口
func (r *roomScreen) tapExit(x, y int) bool {
	if float64(x) >= config.PuzzleOriginX || y < config.TextMarginY {
		return false
	}
	_, firstExit := r.statusLines()
	i := (y-config.TextMarginY)/config.TextLineHeight - firstExit
	if i < 0 || i >= len(r.navigator.Exits()) {
		return false
	}
	r.selected = i
	r.enterSelected()
	return true
}

// finishRoom 完成当前房间并展示奖励
// 有拼图的房间只能通过还原拼图完成
func (r *roomScreen) finishRoom() {
	room := types.RoomID(r.store.CurrentScene())
	if !r.store.State().HasRoom(room) {
		return
	}
	if r.navigator.Puzzle(room) != nil {
		r.message = "Solve the puzzle to finish this room."
		return
	}
	reward, _ := r.navigator.FinishRoom(room)
	r.message = describeReward(reward)
}

// describeReward 奖励卡的文字
func describeReward(reward game.Reward) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%s complete", reward.Room)
	if reward.HasFragment {
		fmt.Fprintf(&sb, " - photo fragment #%d shows the digit %d", reward.Fragment.ID, reward.Fragment.Number)
	}
	if reward.Replay {
		sb.WriteString(" (again)")
	}
	return sb.String()
}

func (r *roomScreen) toggleMute() {
	muted := !r.settings.GetSettings().Muted
	r.settings.SetMuted(muted)
	r.settings.ApplyTo(r.sequencer)
	if err := r.settings.Save(); err != nil {
		r.message = fmt.Sprintf("settings not saved: %v", err)
	}
}

// canDecorate 客厅的彩灯和壁炉在全部终局标记达成后才能切换
func (r *roomScreen) canDecorate() bool {
	return r.store.CurrentScene() == types.SceneLivingRoom && r.store.AllRoomsComplete()
}

func (r *roomScreen) toggleTreeLights() {
	if r.canDecorate() {
		r.store.ToggleTreeLights()
	}
}

func (r *roomScreen) toggleFireplace() {
	if r.canDecorate() {
		r.store.ToggleFireplace()
	}
}

// typeChar 接受数字和分隔符
func (r *roomScreen) typeChar(ch rune) {
	if len(r.code) >= maxCodeLength {
		return
	}
	if (ch >= '0' && ch <= '9') || ch == '-' {
		r.code = append(r.code, ch)
	}
}

func (r *roomScreen) backspace() {
	if len(r.code) > 0 {
		r.code = r.code[:len(r.code)-1]
	}
}

func (r *roomScreen) submitCode() {
	if r.navigator.TryCombination(string(r.code)) {
		r.message = "The lock clicks open."
	} else {
		r.message = "Wrong combination."
	}
	r.code = r.code[:0]
}

func (r *roomScreen) revealPhoto() {
	if r.navigator.RevealPhoto() {
		r.message = "The photo is complete: " + r.store.Combination().String()
	} else {
		r.message = "Some photo fragments are still missing."
	}
}

func (r *roomScreen) openGift() {
	if r.navigator.OpenGift() {
		r.message = "Merry Christmas!"
	}
}

// statusLines 文字面板内容，以及第一个出口所在的行号
func (r *roomScreen) statusLines() ([]string, int) {
	state := r.store.State()
	lines := []string{
		fmt.Sprintf("Scene: %s   Music: %s   Muted: %v", state.Scene(), r.navigator.CurrentMusic(), r.settings.GetSettings().Muted),
		"",
		"Rooms:",
	}
	for _, room := range state.Rooms() {
		status := "locked"
		switch {
		case state.IsRoomCompleted(room):
			status = "done"
		case state.IsRoomUnlocked(room):
			status = "open"
		}
		lines = append(lines, fmt.Sprintf("  %-12s %s", room, status))
	}

	lines = append(lines, "", "Milestones:")
	for _, m := range state.WinMilestones() {
		mark := " "
		if state.IsMilestoneReached(m) {
			mark = "x"
		}
		lines = append(lines, fmt.Sprintf("  [%s] %s", mark, m))
	}

	lines = append(lines, "", "Fragments:")
	for _, f := range state.Fragments() {
		digit := "?"
		if f.Collected {
			digit = fmt.Sprint(f.Number)
		}
		lines = append(lines, fmt.Sprintf("  #%d (%s): %s", f.ID, f.Room, digit))
	}

	if r.canDecorate() {
		lines = append(lines, "", fmt.Sprintf("Tree lights: %v   Fireplace: %v   [T] [L]", state.TreeLightsOn(), state.FireplaceOn()))
	}
	if state.Scene() == types.SceneFinal {
		lines = append(lines, "", fmt.Sprintf("Code: %s_   [Enter] submit  [P] photo  [O] open gift", string(r.code)))
		if state.PhotoRevealed() {
			lines = append(lines, "Photo: "+state.Combination().String())
		}
	}
	if state.Scene() == types.SceneDoor {
		lines = append(lines, "", fmt.Sprintf("Gift unlocked: %v   Opened: %v   [O] open gift", state.Gift().MainGiftUnlocked, state.Gift().Opened))
	}

	lines = append(lines, "", "Exits:")
	firstExit := len(lines)
	for i, exit := range r.navigator.Exits() {
		cursor := " "
		if i == r.selected {
			cursor = ">"
		}
		lines = append(lines, fmt.Sprintf(" %s %s", cursor, exit))
	}
	if utils.IsMobile() {
		lines = append(lines, "", "Tap an exit to go there.")
	} else {
		lines = append(lines, "", "[Tab] next exit  [Space] go  [F] finish room  [M] mute  [F11] fullscreen")
	}

	if r.message != "" {
		lines = append(lines, "")
		lines = append(lines, utils.WrapText(r.message, config.PuzzleOriginX-2*config.TextMarginX, nil)...)
	}
	return lines, firstExit
}

// Draw 绘制文字面板
func (r *roomScreen) Draw(screen *ebiten.Image) {
	screen.Fill(backgroundColor)
	lines, _ := r.statusLines()
	for i, line := range lines {
		ebitenutil.DebugPrintAt(screen, line, config.TextMarginX, config.TextMarginY+i*config.TextLineHeight)
	}
}
