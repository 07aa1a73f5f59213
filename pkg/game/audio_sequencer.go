package game

import (
	"log"
	"math"
	"maps"
	"slices"
	"time"

	"github.com/decker502/giftrooms/pkg/config"
	"github.com/decker502/giftrooms/pkg/utils"
)

// TrackCategory 音轨类别
// 同一类别的音轨共享一个目标音量
type TrackCategory string

const (
	// CategoryAmbient 环境音 / 背景音乐（通常循环）
	CategoryAmbient TrackCategory = config.TrackCategoryAmbient
	// CategoryEffect 一次性音效
	CategoryEffect TrackCategory = config.TrackCategoryEffect
)

// Valid 返回类别是否已知
func (c TrackCategory) Valid() bool {
	return c == CategoryAmbient || c == CategoryEffect
}

// TrackPlayer 单条音轨的播放器
// *audio.Player（ebiten）直接满足该接口
type TrackPlayer interface {
	Play()
	Pause()
	IsPlaying() bool
	Rewind() error
	SetVolume(volume float64)
	Volume() float64
	Position() time.Duration
}

// TrackLoader 根据不透明的资源定位符创建播放器
type TrackLoader interface {
	Load(source string, loop bool) (TrackPlayer, error)
}

// audioTrack 注册表中的一条音轨
type audioTrack struct {
	id       string
	source   string
	category TrackCategory
	loop     bool
	player   TrackPlayer
	loadErr  error
	gain     float64 // 0~1，实际音量 = gain × 类别目标音量
	paused   bool
}

// SequencerConfig 音频编排器配置
type SequencerConfig struct {
	FadeDuration  time.Duration    // Play/Stop 的淡入淡出时长
	AmbientVolume float64          // 环境音类别目标音量
	EffectVolume  float64          // 音效类别目标音量
	Easing        utils.EasingFunc // 渐变曲线，nil 为线性
	Now           func() time.Time // 时钟，nil 为 time.Now
}

// DefaultSequencerConfig 返回默认配置
func DefaultSequencerConfig() SequencerConfig {
	return SequencerConfig{
		FadeDuration:  config.DefaultFadeDuration,
		AmbientVolume: config.DefaultAmbientVolume,
		EffectVolume:  config.DefaultEffectVolume,
	}
}

// SequencerConfigFromAudio 从剧情配置的音频段构建编排器配置
func SequencerConfigFromAudio(ac config.AudioConfig) SequencerConfig {
	cfg := DefaultSequencerConfig()
	if ac.FadeDurationMs > 0 {
		cfg.FadeDuration = ac.FadeDuration()
	}
	if ac.AmbientVolume != nil {
		cfg.AmbientVolume = *ac.AmbientVolume
	}
	if ac.EffectVolume != nil {
		cfg.EffectVolume = *ac.EffectVolume
	}
	if ac.FadeCurve != "" {
		easing, ok := utils.EasingByName(ac.FadeCurve)
		if !ok {
			log.Printf("[Sequencer] Warning: unknown fade curve %q, using linear", ac.FadeCurve)
		}
		cfg.Easing = easing
	}
	return cfg
}

// Sequencer 音频编排器
//
// 职责：
//   - 以字符串 ID 维护音轨注册表（类别、是否循环、实时音量）
//   - 播放 / 暂停 / 恢复 / 停止，可选淡入淡出
//   - 两条音轨的交叉淡化
//   - 按类别统一调整目标音量（用于全局静音）
//
// 所有操作对未注册的 ID 只记录警告，不报错也不修改注册表。
// 渐变由 FadeScheduler 推进，调用方需每帧调用 Update。
type Sequencer struct {
	loader       TrackLoader
	scheduler    *FadeScheduler
	tracks       map[string]*audioTrack
	volumes      map[TrackCategory]float64
	fadeDuration time.Duration
}

// NewSequencer 创建音频编排器
//
// 参数：
//   - loader: 音轨加载器，nil 时使用 SilentTrackLoader
//   - cfg: 编排器配置
//
// 返回：
//   - *Sequencer: 编排器实例
func NewSequencer(loader TrackLoader, cfg SequencerConfig) *Sequencer {
	if loader == nil {
		loader = &SilentTrackLoader{Now: cfg.Now}
	}
	fade := cfg.FadeDuration
	if fade <= 0 {
		fade = config.DefaultFadeDuration
	}
	return &Sequencer{
		loader:    loader,
		scheduler: NewFadeScheduler(cfg.Now, cfg.Easing),
		tracks:    make(map[string]*audioTrack),
		volumes: map[TrackCategory]float64{
			CategoryAmbient: utils.Clamp01(cfg.AmbientVolume),
			CategoryEffect:  utils.Clamp01(cfg.EffectVolume),
		},
		fadeDuration: fade,
	}
}

// Preload 注册一条音轨
//
// 同一 ID 重复注册是无操作（先注册者生效）。
// 加载失败不会阻止注册，错误在播放时以警告形式出现。
//
// 参数：
//   - id: 音轨 ID
//   - source: 资源定位符（编排器不校验）
//   - category: 类别
//   - loop: 是否循环
//
// 返回：
//   - bool: 是否新注册了音轨
func (s *Sequencer) Preload(id, source string, category TrackCategory, loop bool) bool {
	if _, exists := s.tracks[id]; exists {
		return false
	}
	if !category.Valid() {
		log.Printf("[Sequencer] Warning: track %q has unknown category %q, not registered", id, category)
		return false
	}

	track := &audioTrack{
		id:       id,
		source:   source,
		category: category,
		loop:     loop,
		gain:     1,
	}
	player, err := s.loader.Load(source, loop)
	if err != nil {
		log.Printf("[Sequencer] Warning: Failed to load track %s (%s): %v", id, source, err)
		track.loadErr = err
	} else {
		track.player = player
	}
	s.tracks[id] = track
	return true
}

// PreloadAll 注册剧情配置中的全部音轨
func (s *Sequencer) PreloadAll(tracks []config.TrackConfig) {
	for _, tc := range tracks {
		s.Preload(tc.ID, tc.Source, TrackCategory(tc.Category), tc.Loop)
	}
}

// Play 开始播放
//
// 音效每次从头播放；环境音从当前位置继续。
// fadeIn 为 true 时音量在 FadeDuration 内从 0 升到类别目标音量。
func (s *Sequencer) Play(id string, fadeIn bool) {
	track := s.playable(id)
	if track == nil {
		return
	}
	s.scheduler.Cancel(id)
	s.start(track)

	if fadeIn {
		s.fadeTo(track, 0, 1, s.fadeDuration, nil)
		return
	}
	s.setGain(track, 1)
}

// Pause 暂停播放，保留播放位置
// 进行中的渐变不会被取消
func (s *Sequencer) Pause(id string) {
	track := s.playable(id)
	if track == nil {
		return
	}
	if !track.player.IsPlaying() {
		return
	}
	track.player.Pause()
	track.paused = true
}

// Resume 从暂停位置继续播放
// 仅对处于暂停状态的音轨生效
func (s *Sequencer) Resume(id string) {
	track := s.playable(id)
	if track == nil {
		return
	}
	if !track.paused {
		return
	}
	track.paused = false
	track.player.Play()
}

// Stop 停止播放并回到开头
//
// fadeOut 为 true 时先在 FadeDuration 内降到 0，渐变结束后才停止并复位。
// 未在播放的音轨直接停止。
func (s *Sequencer) Stop(id string, fadeOut bool) {
	track := s.playable(id)
	if track == nil {
		return
	}
	s.scheduler.Cancel(id)

	if !fadeOut || !s.sounding(track) {
		s.halt(track)
		return
	}
	s.fadeTo(track, track.gain, 0, s.fadeDuration, func() {
		s.halt(track)
	})
}

// Crossfade 交叉淡化
//
// 在同一次调用中安排两个独立的渐变：from 在 duration 内降到 0 后停止并复位，
// to 从 0 开始播放并在 duration 内升到类别目标音量。
// 任一 ID 未注册时只跳过对应的一半。
func (s *Sequencer) Crossfade(fromID, toID string, duration time.Duration) {
	if fromID == toID {
		log.Printf("[Sequencer] Warning: crossfade from %q to itself ignored", fromID)
		return
	}

	if from := s.playable(fromID); from != nil {
		s.scheduler.Cancel(fromID)
		if s.sounding(from) {
			s.fadeTo(from, from.gain, 0, duration, func() {
				s.halt(from)
			})
		} else {
			s.halt(from)
		}
	}

	if to := s.playable(toID); to != nil {
		s.scheduler.Cancel(toID)
		s.start(to)
		s.fadeTo(to, 0, 1, duration, nil)
	}
}

// SetCategoryVolume 设置类别目标音量并立即应用到该类别的全部音轨
//
// 参数：
//   - category: 类别
//   - volume: 目标音量（限制在 0.0 ~ 1.0）
func (s *Sequencer) SetCategoryVolume(category TrackCategory, volume float64) {
	if !category.Valid() {
		log.Printf("[Sequencer] Warning: unknown category %q", category)
		return
	}
	if math.IsNaN(volume) {
		log.Printf("[Sequencer] Warning: ignoring NaN volume for category %q", category)
		return
	}
	s.volumes[category] = utils.Clamp01(volume)

	for _, id := range s.Tracks() {
		track := s.tracks[id]
		if track.category == category {
			s.apply(track)
		}
	}
}

// CategoryVolume 返回类别目标音量
func (s *Sequencer) CategoryVolume(category TrackCategory) float64 {
	return s.volumes[category]
}

// StopAll 停止所有正在播放或暂停的音轨
func (s *Sequencer) StopAll(fadeOut bool) {
	for _, id := range s.Tracks() {
		track := s.tracks[id]
		if track.player == nil {
			continue
		}
		if track.player.IsPlaying() || track.paused {
			s.Stop(id, fadeOut)
		}
	}
}

// Update 推进进行中的渐变
// 由游戏循环每帧调用一次
func (s *Sequencer) Update() {
	s.scheduler.Tick()
}

// Volume 返回音轨的实际音量（增益 × 类别目标音量）
// 未注册时返回 0
func (s *Sequencer) Volume(id string) float64 {
	track, ok := s.tracks[id]
	if !ok {
		return 0
	}
	return s.effective(track)
}

// IsPlaying 返回音轨是否正在发声
func (s *Sequencer) IsPlaying(id string) bool {
	track, ok := s.tracks[id]
	return ok && track.player != nil && track.player.IsPlaying()
}

// IsPaused 返回音轨是否处于暂停状态
func (s *Sequencer) IsPaused(id string) bool {
	track, ok := s.tracks[id]
	return ok && track.paused
}

// IsFading 返回音轨是否有进行中的渐变
func (s *Sequencer) IsFading(id string) bool {
	return s.scheduler.Active(id)
}

// IsRegistered 返回 ID 是否已注册
func (s *Sequencer) IsRegistered(id string) bool {
	_, ok := s.tracks[id]
	return ok
}

// Position 返回音轨的播放位置
func (s *Sequencer) Position(id string) time.Duration {
	track, ok := s.tracks[id]
	if !ok || track.player == nil {
		return 0
	}
	return track.player.Position()
}

// Category 返回音轨类别
func (s *Sequencer) Category(id string) (TrackCategory, bool) {
	track, ok := s.tracks[id]
	if !ok {
		return "", false
	}
	return track.category, true
}

// Tracks 返回已注册的音轨 ID（已排序）
func (s *Sequencer) Tracks() []string {
	return slices.Sorted(maps.Keys(s.tracks))
}

// playable 查找可播放的音轨，未注册或加载失败时记录警告并返回 nil
func (s *Sequencer) playable(id string) *audioTrack {
	track, ok := s.tracks[id]
	if !ok {
		log.Printf("[Sequencer] Warning: track %q is not registered", id)
		return nil
	}
	if track.player == nil {
		log.Printf("[Sequencer] Warning: track %q is unavailable: %v", id, track.loadErr)
		return nil
	}
	return track
}

// start 开始发声，音效先回到开头
func (s *Sequencer) start(track *audioTrack) {
	if track.category == CategoryEffect {
		if err := track.player.Rewind(); err != nil {
			log.Printf("[Sequencer] Warning: Failed to rewind %s: %v", track.id, err)
		}
	}
	track.paused = false
	track.player.Play()
}

// halt 停止并复位到开头
func (s *Sequencer) halt(track *audioTrack) {
	track.player.Pause()
	if err := track.player.Rewind(); err != nil {
		log.Printf("[Sequencer] Warning: Failed to rewind %s: %v", track.id, err)
	}
	track.paused = false
}

// sounding 返回音轨是否在播放或暂停中（即停止需要渐变）
func (s *Sequencer) sounding(track *audioTrack) bool {
	return track.player.IsPlaying() || track.paused
}

func (s *Sequencer) fadeTo(track *audioTrack, from, to float64, d time.Duration, onDone func()) {
	s.scheduler.Schedule(track.id, from, to, d, func(gain float64) {
		s.setGain(track, gain)
	}, onDone)
}

func (s *Sequencer) setGain(track *audioTrack, gain float64) {
	track.gain = utils.Clamp01(gain)
	s.apply(track)
}

func (s *Sequencer) apply(track *audioTrack) {
	if track.player == nil {
		return
	}
	track.player.SetVolume(s.effective(track))
}

func (s *Sequencer) effective(track *audioTrack) float64 {
	return track.gain * s.volumes[track.category]
}
