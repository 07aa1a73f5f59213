package config

import "time"

// 音频淡入淡出相关默认值
const (
	// DefaultFadeDuration Play(fadeIn) 与 Stop(fadeOut) 的固定淡入淡出时长
	DefaultFadeDuration = 1000 * time.Millisecond

	// DefaultCrossfadeDuration 场景切换时背景音乐交叉淡化的时长
	DefaultCrossfadeDuration = 2000 * time.Millisecond

	// DefaultAmbientVolume 环境音（背景音乐）的类别目标音量
	DefaultAmbientVolume = 0.3

	// DefaultEffectVolume 音效的类别目标音量
	DefaultEffectVolume = 0.6

	// DefaultFadeCurve 淡入淡出曲线名称（见 utils.EasingByName）
	DefaultFadeCurve = "linear"
)

// 音轨类别名称（YAML 中使用）
const (
	TrackCategoryAmbient = "ambient"
	TrackCategoryEffect  = "effect"
)
