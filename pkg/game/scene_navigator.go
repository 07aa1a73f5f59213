package game

import (
	"log"
	"math/rand/v2"
	"slices"
	"time"

	"github.com/decker502/giftrooms/pkg/config"
	"github.com/decker502/giftrooms/pkg/puzzle"
	"github.com/decker502/giftrooms/pkg/types"
)

// 界面反馈音效 ID（在 story.yaml 中注册）
const (
	EffectTileSlide       = "tile_slide"
	EffectFragmentCollect = "fragment_collect"
	EffectWrongCode       = "wrong_code"
	EffectGiftOpen        = "gift_open"
)

// Reward 完成房间后展示的奖励卡
type Reward struct {
	Room        types.RoomID
	Fragment    Fragment // HasFragment 为 false 时无意义
	HasFragment bool
	Replay      bool // 房间此前已完成，本次只是重新展示
}

// Navigator 场景导航器
//
// 职责：
//   - 根据路线图、房间解锁表和终局门槛判断能否进入某个场景
//   - 进入场景时更新 Store，并交叉淡化场景背景音乐
//   - 完成房间：写入完成表、解锁后续房间、收集碎片、设置终局标记
//   - 房间内的滑块拼图与终章的密码校验
//
// Store 只记录事实，所有"能不能做"的判断都在这里。
type Navigator struct {
	cfg       *config.StoryConfig
	store     *ProgressionStore
	sequencer *Sequencer
	rng       *rand.Rand

	routes       map[types.Scene][]config.RouteConfig
	sceneMusic   map[types.Scene]string
	crossfade    time.Duration
	unlocks      map[types.RoomID][]types.RoomID
	milestones   map[types.RoomID]types.Milestone
	puzzleConfig map[types.RoomID]config.PuzzleConfig
	puzzles      map[types.RoomID]*puzzle.Puzzle

	currentMusic string
}

// NewNavigator 创建场景导航器
//
// 参数：
//   - cfg: 剧情配置，nil 时使用 config.DefaultStoryConfig()
//   - store: 进度状态机
//   - sequencer: 音频编排器，可为 nil（不播放声音）
//   - rng: 拼图洗牌使用的随机源，可为 nil
//
// 返回：
//   - *Navigator: 导航器实例，已订阅 Store 的场景变化
func NewNavigator(cfg *config.StoryConfig, store *ProgressionStore, sequencer *Sequencer, rng *rand.Rand) *Navigator {
	if cfg == nil {
		cfg = config.DefaultStoryConfig()
	}
	n := &Navigator{
		cfg:          cfg,
		store:        store,
		sequencer:    sequencer,
		rng:          rng,
		routes:       make(map[types.Scene][]config.RouteConfig),
		sceneMusic:   make(map[types.Scene]string),
		crossfade:    cfg.Audio.CrossfadeDuration(),
		unlocks:      make(map[types.RoomID][]types.RoomID),
		milestones:   make(map[types.RoomID]types.Milestone),
		puzzleConfig: make(map[types.RoomID]config.PuzzleConfig),
		puzzles:      make(map[types.RoomID]*puzzle.Puzzle),
	}

	for _, route := range cfg.Routes {
		from := types.Scene(route.From)
		n.routes[from] = append(n.routes[from], route)
	}
	for scene, track := range cfg.Audio.SceneMusic {
		n.sceneMusic[types.Scene(scene)] = track
	}
	for room, targets := range cfg.Unlocks {
		for _, target := range targets {
			n.unlocks[types.RoomID(room)] = append(n.unlocks[types.RoomID(room)], types.RoomID(target))
		}
	}
	for room, milestone := range cfg.RoomMilestones {
		n.milestones[types.RoomID(room)] = types.Milestone(milestone)
	}
	for _, pc := range cfg.Puzzles {
		n.puzzleConfig[types.RoomID(pc.Room)] = pc
	}

	store.Subscribe(func(prev, next State) {
		if prev.Scene() != next.Scene() {
			n.playSceneMusic(next.Scene())
		}
	})
	return n
}

// Start 开始当前场景的背景音乐（淡入）
func (n *Navigator) Start() {
	n.playSceneMusic(n.store.CurrentScene())
}

// Exits 返回从当前场景出发、此刻可以进入的场景
func (n *Navigator) Exits() []types.Scene {
	var exits []types.Scene
	for _, route := range n.routes[n.store.CurrentScene()] {
		to := types.Scene(route.To)
		if n.CanEnter(to) && !slices.Contains(exits, to) {
			exits = append(exits, to)
		}
	}
	return exits
}

// CanEnter 判断能否从当前场景进入 target
//
// 条件：
//   - 路线图中存在当前场景到 target 的边
//   - target 是房间时，房间已解锁
//   - 边上的门槛已满足（例如终章要求 AllRoomsComplete）
func (n *Navigator) CanEnter(target types.Scene) bool {
	state := n.store.State()
	if state.HasRoom(types.RoomID(target)) && !state.IsRoomUnlocked(types.RoomID(target)) {
		return false
	}
	for _, route := range n.routes[state.Scene()] {
		if types.Scene(route.To) == target && gateSatisfied(route.Gate, state) {
			return true
		}
	}
	return false
}

// Enter 进入 target 场景
//
// 不满足 CanEnter 时记录警告并返回 false，场景不变。
// 背景音乐由 Store 的场景变化回调切换。
func (n *Navigator) Enter(target types.Scene) bool {
	if !n.CanEnter(target) {
		log.Printf("[Navigator] Warning: cannot enter %s from %s", target, n.store.CurrentScene())
		return false
	}
	n.store.SetScene(target)
	return true
}

// gateSatisfied 检查路线门槛
func gateSatisfied(gate string, state State) bool {
	switch gate {
	case config.GateNone:
		return true
	case config.GateAllRoomsComplete:
		return state.AllRoomsComplete()
	case config.GateAllFragmentsCollected:
		return state.AllFragmentsCollected()
	case config.GatePhotoRevealed:
		return state.PhotoRevealed()
	case config.GateGiftUnlocked:
		return state.Gift().MainGiftUnlocked
	default:
		return false
	}
}

// playSceneMusic 切换到场景的背景音乐
// 场景没有配置音乐或与当前音乐相同时保持现状
func (n *Navigator) playSceneMusic(scene types.Scene) {
	if n.sequencer == nil {
		return
	}
	track, ok := n.sceneMusic[scene]
	if !ok || track == n.currentMusic {
		return
	}
	if n.currentMusic == "" {
		n.sequencer.Play(track, true)
	} else {
		n.sequencer.Crossfade(n.currentMusic, track, n.crossfade)
	}
	n.currentMusic = track
}

// CurrentMusic 返回当前的场景音乐 ID
func (n *Navigator) CurrentMusic() string {
	return n.currentMusic
}

// FinishRoom 完成一个房间
//
// 依次：标记完成、解锁后续房间、设置房间对应的终局标记、收集房间的碎片。
// 已完成的房间再次调用是幂等的，返回的奖励带 Replay 标记。
//
// 导航器不检查房间是否已解锁，也不检查房间的谜题是否已解开：
// 谜题的 OnSolved 回调和调试工具会直接调用本方法。
// 面向玩家的调用方（房间界面）必须自行拒绝带谜题的房间，
// 并且只对已通过 CanEnter 进入的房间调用。
//
// 参数：
//   - room: 房间
//
// 返回：
//   - Reward: 要展示的奖励卡
//   - bool: room 是否是已知房间
func (n *Navigator) FinishRoom(room types.RoomID) (Reward, bool) {
	state := n.store.State()
	if !state.HasRoom(room) {
		log.Printf("[Navigator] Warning: cannot finish unknown room %s", room)
		return Reward{}, false
	}
	replay := state.IsRoomCompleted(room)

	n.store.CompleteRoom(room)
	for _, target := range n.unlocks[room] {
		n.store.UnlockRoom(target)
	}
	if milestone, ok := n.milestones[room]; ok {
		n.store.MarkMilestone(milestone)
	}
	if fragment, ok := state.FragmentForRoom(room); ok && !fragment.Collected {
		n.store.CollectFragment(fragment.ID)
		n.playEffect(EffectFragmentCollect)
	}

	reward, _ := n.RewardFor(room)
	reward.Replay = replay
	return reward, true
}

// RewardFor 返回已完成房间的奖励卡（用于重新进入房间时再次展示）
//
// 返回：
//   - Reward: 奖励卡，Replay 为 true
//   - bool: 房间是否已完成
func (n *Navigator) RewardFor(room types.RoomID) (Reward, bool) {
	state := n.store.State()
	if !state.IsRoomCompleted(room) {
		return Reward{}, false
	}
	reward := Reward{Room: room, Replay: true}
	if fragment, ok := state.FragmentForRoom(room); ok {
		reward.Fragment = fragment
		reward.HasFragment = true
	}
	return reward, true
}

// RevealPhoto 全部碎片收集后拼出照片
// 碎片未集齐时返回 false，不修改 Store
func (n *Navigator) RevealPhoto() bool {
	if !n.store.AllFragmentsCollected() {
		return false
	}
	n.store.RevealPhoto()
	return true
}

// TryCombination 校验玩家输入的密码
//
// 只有完整且匹配的密码才会解锁礼物；否则播放错误提示音并返回 false。
func (n *Navigator) TryCombination(input string) bool {
	if n.store.Combination().Matches(input) {
		n.store.UnlockGift()
		return true
	}
	n.playEffect(EffectWrongCode)
	return false
}

// OpenGift 打开已解锁的礼物
func (n *Navigator) OpenGift() bool {
	if !n.store.State().Gift().MainGiftUnlocked {
		return false
	}
	if n.store.State().Gift().Opened {
		return true
	}
	n.store.OpenGift()
	n.playEffect(EffectGiftOpen)
	return true
}

// Puzzle 返回房间内的滑块拼图（首次访问时生成）
//
// 房间没有配置拼图时返回 nil。
// 拼图还原时：设置配置中的终局标记，并完成该房间。
func (n *Navigator) Puzzle(room types.RoomID) *puzzle.Puzzle {
	if p, ok := n.puzzles[room]; ok {
		return p
	}
	pc, ok := n.puzzleConfig[room]
	if !ok {
		return nil
	}

	p := puzzle.New(puzzle.Kind(pc.Kind), pc.GridSize, n.rng)
	n.attachPuzzle(room, pc, p)
	return p
}

// SetPuzzle 用指定棋盘替换房间的拼图（测试与调试工具使用）
func (n *Navigator) SetPuzzle(room types.RoomID, board puzzle.Board) *puzzle.Puzzle {
	pc, ok := n.puzzleConfig[room]
	if !ok {
		return nil
	}
	p := puzzle.NewWithBoard(puzzle.Kind(pc.Kind), board)
	if p == nil {
		log.Printf("[Navigator] Warning: board for %s is not solvable", room)
		return nil
	}
	n.attachPuzzle(room, pc, p)
	return p
}

func (n *Navigator) attachPuzzle(room types.RoomID, pc config.PuzzleConfig, p *puzzle.Puzzle) {
	p.OnSolved(func() {
		if pc.Milestone != "" {
			n.store.MarkMilestone(types.Milestone(pc.Milestone))
		}
		n.FinishRoom(room)
	})
	n.puzzles[room] = p
}

// MoveTile 在房间拼图中点击 pos 位置的图块
// 移动成功时播放滑动音效
func (n *Navigator) MoveTile(room types.RoomID, pos int) bool {
	p := n.Puzzle(room)
	if p == nil {
		log.Printf("[Navigator] Warning: room %s has no puzzle", room)
		return false
	}
	if !p.TryMove(pos) {
		return false
	}
	n.playEffect(EffectTileSlide)
	return true
}

func (n *Navigator) playEffect(id string) {
	if n.sequencer == nil {
		return
	}
	n.sequencer.Play(id, false)
}
