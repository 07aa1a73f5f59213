package game

import (
	"fmt"
	"log"
	"math"

	"github.com/quasilyte/gdata/v2"
	"gopkg.in/yaml.v3"

	"github.com/decker502/giftrooms/pkg/config"
)

// GameSettings 玩家偏好设置
// 只保存音频与显示偏好；剧情进度不落盘
type GameSettings struct {
	// 音频设置
	AmbientVolume float64 `yaml:"ambientVolume"` // 环境音类别音量 0.0 ~ 1.0
	EffectVolume  float64 `yaml:"effectVolume"`  // 音效类别音量 0.0 ~ 1.0
	Muted         bool    `yaml:"muted"`         // 全局静音

	// 显示设置
	Fullscreen bool `yaml:"fullscreen"` // 启动时是否全屏
}

// DefaultSettings 返回默认设置
func DefaultSettings() *GameSettings {
	return &GameSettings{
		AmbientVolume: config.DefaultAmbientVolume,
		EffectVolume:  config.DefaultEffectVolume,
		Muted:         false,
		Fullscreen:    false,
	}
}

// SettingsFromAudio 以剧情配置的类别音量作为默认设置
// 配置未给出的音量使用 config 中的默认值
func SettingsFromAudio(ac config.AudioConfig) *GameSettings {
	settings := DefaultSettings()
	if ac.AmbientVolume != nil {
		settings.AmbientVolume = clampVolume(*ac.AmbientVolume)
	}
	if ac.EffectVolume != nil {
		settings.EffectVolume = clampVolume(*ac.EffectVolume)
	}
	return settings
}

// SettingsManager 设置管理器
// 负责设置的加载、保存，以及把音量偏好应用到音频编排器
type SettingsManager struct {
	gdataManager *gdata.Manager // gdata 跨平台存储管理器，可为 nil（降级模式）
	defaults     GameSettings   // 尚未保存过设置时使用的值
	settings     *GameSettings  // 当前设置
}

// 存储路径常量
const (
	settingsObject   = "settings"
	settingsProperty = "audio"
)

// NewSettingsManager 创建新的设置管理器实例
//
// 参数：
//   - gdataManager: gdata 跨平台存储管理器，可为 nil（降级模式，仅内存设置）
//   - defaults: 没有已保存设置时使用的默认值，nil 时使用 DefaultSettings()
//
// 返回：
//   - *SettingsManager: 设置管理器实例
//   - error: 保留给调用方统一处理，加载失败只记录警告
func NewSettingsManager(gdataManager *gdata.Manager, defaults *GameSettings) (*SettingsManager, error) {
	if defaults == nil {
		defaults = DefaultSettings()
	}
	sm := &SettingsManager{
		gdataManager: gdataManager,
		defaults:     *defaults,
	}
	sm.settings = sm.defaultSettings()

	if err := sm.Load(); err != nil {
		log.Printf("[SettingsManager] Warning: Failed to load settings: %v (using defaults)", err)
	}

	return sm, nil
}

// Load 从 gdata 加载设置
//
// 如果 gdataManager 为 nil 或尚未保存过，使用创建时给出的默认设置
//
// 返回：
//   - error: 读取或反序列化失败
func (sm *SettingsManager) Load() error {
	if sm.gdataManager == nil {
		sm.settings = sm.defaultSettings()
		return nil
	}

	if !sm.gdataManager.ObjectPropExists(settingsObject, settingsProperty) {
		sm.settings = sm.defaultSettings()
		return nil
	}

	data, err := sm.gdataManager.LoadObjectProp(settingsObject, settingsProperty)
	if err != nil {
		sm.settings = sm.defaultSettings()
		return fmt.Errorf("failed to load settings: %w", err)
	}

	// 以默认值为底，缺失的字段保持默认
	loaded := sm.defaultSettings()
	if err := yaml.Unmarshal(data, loaded); err != nil {
		sm.settings = sm.defaultSettings()
		return fmt.Errorf("failed to unmarshal settings: %w", err)
	}
	loaded.AmbientVolume = clampVolume(loaded.AmbientVolume)
	loaded.EffectVolume = clampVolume(loaded.EffectVolume)

	sm.settings = loaded
	log.Printf("[SettingsManager] Settings loaded successfully")
	return nil
}

// Save 保存设置到 gdata
//
// 如果 gdataManager 为 nil，返回 nil（降级模式，不报错）
func (sm *SettingsManager) Save() error {
	if sm.gdataManager == nil {
		return nil
	}

	data, err := yaml.Marshal(sm.settings)
	if err != nil {
		return fmt.Errorf("failed to marshal settings: %w", err)
	}

	if err := sm.gdataManager.SaveObjectProp(settingsObject, settingsProperty, data); err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}

	log.Printf("[SettingsManager] Settings saved successfully")
	return nil
}

// defaultSettings 返回默认值的副本
func (sm *SettingsManager) defaultSettings() *GameSettings {
	settings := sm.defaults
	return &settings
}

// GetSettings 获取当前设置
func (sm *SettingsManager) GetSettings() *GameSettings {
	return sm.settings
}

// SetAmbientVolume 设置环境音音量
//
// 音量值会被限制在 0.0 ~ 1.0 范围内
// 注意：仅修改内存中的设置，需调用 Save() 方法持久化
func (sm *SettingsManager) SetAmbientVolume(volume float64) {
	sm.settings.AmbientVolume = clampVolume(volume)
}

// SetEffectVolume 设置音效音量
//
// 音量值会被限制在 0.0 ~ 1.0 范围内
// 注意：仅修改内存中的设置，需调用 Save() 方法持久化
func (sm *SettingsManager) SetEffectVolume(volume float64) {
	sm.settings.EffectVolume = clampVolume(volume)
}

// SetMuted 设置全局静音
// 静音不会覆盖保存的音量，取消静音后恢复原音量
func (sm *SettingsManager) SetMuted(muted bool) {
	sm.settings.Muted = muted
}

// SetFullscreen 设置全屏模式
func (sm *SettingsManager) SetFullscreen(enabled bool) {
	sm.settings.Fullscreen = enabled
}

// ApplyTo 把音量偏好应用到音频编排器
//
// 静音时两个类别的目标音量都设为 0，正在播放和正在渐变的音轨立即生效。
//
// 参数：
//   - seq: 音频编排器，nil 时忽略
func (sm *SettingsManager) ApplyTo(seq *Sequencer) {
	if seq == nil {
		return
	}
	ambient, effect := sm.settings.AmbientVolume, sm.settings.EffectVolume
	if sm.settings.Muted {
		ambient, effect = 0, 0
	}
	seq.SetCategoryVolume(CategoryAmbient, ambient)
	seq.SetCategoryVolume(CategoryEffect, effect)
}

// clampVolume 将音量值限制在 0.0 ~ 1.0 范围内，NaN 视为静音
func clampVolume(volume float64) float64 {
	if math.IsNaN(volume) || volume < 0.0 {
		return 0.0
	}
	if volume > 1.0 {
		return 1.0
	}
	return volume
}
