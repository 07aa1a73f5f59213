package game

import (
	"github.com/hajimehoshi/ebiten/v2"
)

// Screen 一个场景的界面
// 每个界面有自己的更新和绘制逻辑，由 ScreenManager 按当前场景调度
type Screen interface {
	// Update 更新界面逻辑，deltaTime 为距上一帧的秒数
	Update(deltaTime float64)

	// Draw 绘制界面
	Draw(screen *ebiten.Image)
}

// Enterable 是一个可选接口，界面在成为当前界面时收到通知
type Enterable interface {
	OnEnter()
}
