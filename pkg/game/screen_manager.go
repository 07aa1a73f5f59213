package game

import (
	"log"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/decker502/giftrooms/pkg/types"
)

// ScreenManager 按 Store 的当前场景选择要调度的界面
// 任意时刻只有一个界面的 Update 和 Draw 会被调用
type ScreenManager struct {
	store    *ProgressionStore
	screens  map[types.Scene]Screen
	fallback Screen

	active  types.Scene
	current Screen
}

// NewScreenManager 创建界面管理器
// 首次 Update 时才会根据当前场景选择界面
func NewScreenManager(store *ProgressionStore) *ScreenManager {
	return &ScreenManager{
		store:   store,
		screens: make(map[types.Scene]Screen),
	}
}

// Register 为场景注册界面
func (sm *ScreenManager) Register(scene types.Scene, screen Screen) {
	sm.screens[scene] = screen
	if scene == sm.active {
		sm.current = nil
	}
}

// SetFallback 设置没有专属界面的场景使用的界面
func (sm *ScreenManager) SetFallback(screen Screen) {
	sm.fallback = screen
	sm.current = nil
}

// Current 返回当前界面，没有可用界面时返回 nil
func (sm *ScreenManager) Current() Screen {
	return sm.current
}

// Sync 按当前场景选择界面，场景变化时调用新界面的 OnEnter
// Update 每帧都会调用；组装完成后也可以直接调用，让 Current 立即可用
func (sm *ScreenManager) Sync() {
	scene := sm.store.CurrentScene()
	if scene == sm.active && sm.current != nil {
		return
	}

	next, ok := sm.screens[scene]
	if !ok {
		next = sm.fallback
	}
	if next == nil {
		if scene != sm.active {
			log.Printf("[ScreenManager] Warning: no screen registered for %s", scene)
		}
		sm.active = scene
		sm.current = nil
		return
	}

	sm.active = scene
	sm.current = next
	if e, ok := next.(Enterable); ok {
		e.OnEnter()
	}
}

// Update 更新当前界面
func (sm *ScreenManager) Update(deltaTime float64) {
	sm.Sync()
	if sm.current != nil {
		sm.current.Update(deltaTime)
	}
}

// Draw 绘制当前界面
func (sm *ScreenManager) Draw(screen *ebiten.Image) {
	if sm.current != nil {
		sm.current.Draw(screen)
	}
}
