package game

import (
	"sort"

	"github.com/decker502/giftrooms/pkg/config"
	"github.com/decker502/giftrooms/pkg/types"
)

// Fragment 照片碎片
// Number 在创建时确定且不再改变；Collected 只会从 false 变为 true
type Fragment struct {
	ID        int          // 1..K，决定密码中的顺序
	Number    int          // 一位数字
	Collected bool         // 是否已收集
	Room      types.RoomID // 所属房间
}

// GiftState 礼物状态
type GiftState struct {
	MainGiftUnlocked bool // 主礼物已解锁（调用方负责先核对密码）
	Opened           bool // 礼物已打开
}

// State 进度状态的不可变快照
//
// 所有字段都不导出，只能通过 Reduce 产生新的 State。
// 修改时采用写时复制，旧快照永远不会被改变，可以放心交给界面层持有。
type State struct {
	version int

	scene         types.Scene
	rooms         []types.RoomID
	unlocked      map[types.RoomID]bool
	completed     map[types.RoomID]bool
	fragments     []Fragment // 按 ID 升序
	winMilestones []types.Milestone
	milestones    map[types.Milestone]bool

	photoRevealed bool
	treeLightsOn  bool
	fireplaceOn   bool
	gift          GiftState
}

// NewState 根据剧情配置创建初始状态
func NewState(cfg *config.StoryConfig) State {
	s := State{
		scene:      types.Scene(cfg.InitialScene),
		unlocked:   make(map[types.RoomID]bool, len(cfg.Rooms)),
		completed:  make(map[types.RoomID]bool, len(cfg.Rooms)),
		milestones: make(map[types.Milestone]bool, len(cfg.Milestones)),
	}

	for _, room := range cfg.Rooms {
		id := types.RoomID(room)
		s.rooms = append(s.rooms, id)
		s.unlocked[id] = false
		s.completed[id] = false
	}
	for _, room := range cfg.InitiallyUnlocked {
		s.unlocked[types.RoomID(room)] = true
	}

	for _, f := range cfg.Fragments {
		s.fragments = append(s.fragments, Fragment{
			ID:     f.ID,
			Number: f.Number,
			Room:   types.RoomID(f.Room),
		})
	}
	sort.Slice(s.fragments, func(i, j int) bool {
		return s.fragments[i].ID < s.fragments[j].ID
	})

	for _, m := range cfg.Milestones {
		id := types.Milestone(m)
		s.winMilestones = append(s.winMilestones, id)
		s.milestones[id] = false
	}

	return s
}

// Version 每次状态发生可观察变化时递增
func (s State) Version() int {
	return s.version
}

// Scene 当前场景
func (s State) Scene() types.Scene {
	return s.scene
}

// Rooms 返回参与进度的房间（配置顺序）
func (s State) Rooms() []types.RoomID {
	return append([]types.RoomID(nil), s.rooms...)
}

// HasRoom 是否为已知房间
func (s State) HasRoom(room types.RoomID) bool {
	_, ok := s.unlocked[room]
	return ok
}

// IsRoomUnlocked 房间是否可进入
func (s State) IsRoomUnlocked(room types.RoomID) bool {
	return s.unlocked[room]
}

// IsRoomCompleted 房间内的挑战是否至少完成过一次
func (s State) IsRoomCompleted(room types.RoomID) bool {
	return s.completed[room]
}

// UnlockMap 返回解锁表副本
func (s State) UnlockMap() map[types.RoomID]bool {
	return cloneMap(s.unlocked)
}

// CompletionMap 返回完成表副本
func (s State) CompletionMap() map[types.RoomID]bool {
	return cloneMap(s.completed)
}

// Fragments 返回碎片副本（按 ID 升序）
func (s State) Fragments() []Fragment {
	return append([]Fragment(nil), s.fragments...)
}

// Fragment 按 ID 查找碎片
func (s State) Fragment(id int) (Fragment, bool) {
	for _, f := range s.fragments {
		if f.ID == id {
			return f, true
		}
	}
	return Fragment{}, false
}

// FragmentForRoom 查找房间拥有的碎片
func (s State) FragmentForRoom(room types.RoomID) (Fragment, bool) {
	for _, f := range s.fragments {
		if f.Room == room {
			return f, true
		}
	}
	return Fragment{}, false
}

// AllFragmentsCollected 每次调用都重新计算所有碎片 Collected 的合取
// 没有碎片时为 false，避免空密码被视为完整
func (s State) AllFragmentsCollected() bool {
	if len(s.fragments) == 0 {
		return false
	}
	for _, f := range s.fragments {
		if !f.Collected {
			return false
		}
	}
	return true
}

// Combination 由已收集碎片按 ID 升序组成的密码
func (s State) Combination() Combination {
	return CombinationOf(s.fragments)
}

// IsMilestoneReached 终局标记是否已达成
func (s State) IsMilestoneReached(m types.Milestone) bool {
	return s.milestones[m]
}

// WinMilestones 返回终局条件所需的标记（配置顺序）
func (s State) WinMilestones() []types.Milestone {
	return append([]types.Milestone(nil), s.winMilestones...)
}

// AllRoomsComplete 终局条件：固定标记集合全部达成
// 与房间完成表相互独立，完成所有房间并不意味着满足该条件
func (s State) AllRoomsComplete() bool {
	if len(s.winMilestones) == 0 {
		return false
	}
	for _, m := range s.winMilestones {
		if !s.milestones[m] {
			return false
		}
	}
	return true
}

// PhotoRevealed 照片是否已揭示
func (s State) PhotoRevealed() bool {
	return s.photoRevealed
}

// TreeLightsOn 圣诞树灯是否点亮
func (s State) TreeLightsOn() bool {
	return s.treeLightsOn
}

// FireplaceOn 壁炉是否点燃
func (s State) FireplaceOn() bool {
	return s.fireplaceOn
}

// Gift 礼物状态
func (s State) Gift() GiftState {
	return s.gift
}

func cloneMap[K comparable](m map[K]bool) map[K]bool {
	out := make(map[K]bool, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}
