package game

import (
	"log"

	"github.com/decker502/giftrooms/pkg/config"
	"github.com/decker502/giftrooms/pkg/types"
)

// StateListener 状态发生变化后的回调
type StateListener func(prev, next State)

// ProgressionStore 进度状态机
// 职责：
//   - 持有一局游戏的全部进度事实（场景、解锁表、完成表、碎片、礼物）
//   - 通过 Reduce 应用命令，动作在调用方看来是同步且原子的
//   - 吞掉所有非法输入：未知 ID 记一条警告，重复调用不产生效果
//
// 设计原则：
//   - Store 只是事实库，不是路由器：SetScene 不检查房间图，合法性由界面层负责
//   - 状态只存在于内存中，重新加载即重置
//
// 与 ResourceManager 一样，Store 不是并发安全的，只应在游戏主循环中调用。
type ProgressionStore struct {
	cfg       *config.StoryConfig
	state     State
	listeners []StateListener
}

// NewProgressionStore 根据剧情配置创建进度状态机
//
// 参数：
//   - cfg: 剧情配置，为 nil 时使用 config.DefaultStoryConfig()
//
// 返回：
//   - *ProgressionStore: 处于初始状态的状态机
func NewProgressionStore(cfg *config.StoryConfig) *ProgressionStore {
	if cfg == nil {
		cfg = config.DefaultStoryConfig()
	}
	return &ProgressionStore{
		cfg:   cfg,
		state: NewState(cfg),
	}
}

// Subscribe 注册状态变化回调
// 回调在状态已更新之后调用，可以在回调中继续派发命令
func (ps *ProgressionStore) Subscribe(listener StateListener) {
	ps.listeners = append(ps.listeners, listener)
}

// Dispatch 应用一条命令
// 错误只记录为警告，不会返回给调用方
func (ps *ProgressionStore) Dispatch(cmd Command) {
	prev := ps.state
	next, err := Reduce(prev, cmd)
	if err != nil {
		log.Printf("[ProgressionStore] Warning: ignoring %s: %v", cmd.Type, err)
		return
	}
	if next.Version() == prev.Version() {
		return
	}

	ps.state = next
	for _, listener := range ps.listeners {
		listener(prev, next)
	}
}

// Reset 丢弃本局进度，回到初始状态（对应重新加载页面）
func (ps *ProgressionStore) Reset() {
	prev := ps.state
	ps.state = NewState(ps.cfg)
	ps.state.version = prev.version + 1
	log.Printf("[ProgressionStore] Session reset")
	for _, listener := range ps.listeners {
		listener(prev, ps.state)
	}
}

// State 返回当前状态快照
func (ps *ProgressionStore) State() State {
	return ps.state
}

// SetScene 切换当前场景，不做任何合法性检查
func (ps *ProgressionStore) SetScene(scene types.Scene) {
	ps.Dispatch(SetSceneCmd(scene))
}

// UnlockRoom 解锁房间（幂等）
func (ps *ProgressionStore) UnlockRoom(room types.RoomID) {
	ps.Dispatch(UnlockRoomCmd(room))
}

// CompleteRoom 标记房间完成（幂等）
func (ps *ProgressionStore) CompleteRoom(room types.RoomID) {
	ps.Dispatch(CompleteRoomCmd(room))
}

// CollectFragment 收集碎片
// 已收集或 ID 未知时不产生效果
func (ps *ProgressionStore) CollectFragment(id int) {
	ps.Dispatch(CollectFragmentCmd(id))
}

// RevealPhoto 揭示照片
// 不检查碎片是否收集完毕；提前调用只会揭示一个不完整的密码
func (ps *ProgressionStore) RevealPhoto() {
	ps.Dispatch(RevealPhotoCmd())
}

// ToggleTreeLights 切换圣诞树灯
// 是否允许切换由界面层先检查 AllRoomsComplete
func (ps *ProgressionStore) ToggleTreeLights() {
	ps.Dispatch(ToggleTreeLightsCmd())
}

// ToggleFireplace 切换壁炉
func (ps *ProgressionStore) ToggleFireplace() {
	ps.Dispatch(ToggleFireplaceCmd())
}

// UnlockGift 解锁主礼物
// 调用方负责先核对玩家输入与密码
func (ps *ProgressionStore) UnlockGift() {
	ps.Dispatch(UnlockGiftCmd())
}

// OpenGift 打开礼物
func (ps *ProgressionStore) OpenGift() {
	ps.Dispatch(OpenGiftCmd())
}

// MarkMilestone 达成一个终局标记
func (ps *ProgressionStore) MarkMilestone(m types.Milestone) {
	ps.Dispatch(MarkMilestoneCmd(m))
}

// CurrentScene 当前场景
func (ps *ProgressionStore) CurrentScene() types.Scene {
	return ps.state.Scene()
}

// IsRoomUnlocked 房间是否可进入
func (ps *ProgressionStore) IsRoomUnlocked(room types.RoomID) bool {
	return ps.state.IsRoomUnlocked(room)
}

// IsRoomCompleted 房间是否已完成
func (ps *ProgressionStore) IsRoomCompleted(room types.RoomID) bool {
	return ps.state.IsRoomCompleted(room)
}

// AllRoomsComplete 终局条件
func (ps *ProgressionStore) AllRoomsComplete() bool {
	return ps.state.AllRoomsComplete()
}

// AllFragmentsCollected 全部碎片是否已收集
func (ps *ProgressionStore) AllFragmentsCollected() bool {
	return ps.state.AllFragmentsCollected()
}

// Combination 当前密码
func (ps *ProgressionStore) Combination() Combination {
	return ps.state.Combination()
}
