package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/decker502/giftrooms/pkg/utils"
)

// StoryConfig 礼物体验的剧情配置（构建时固定，随二进制嵌入）
// 定义场景、房间、碎片、路线图、音轨和拼图房间
type StoryConfig struct {
	InitialScene      string              `yaml:"initialScene"`      // 开场场景，默认 "intro"
	Scenes            []string            `yaml:"scenes"`            // 全部场景
	Rooms             []string            `yaml:"rooms"`             // 参与进度的房间（必须同时出现在 scenes 中）
	InitiallyUnlocked []string            `yaml:"initiallyUnlocked"` // 开局即可进入的房间
	Milestones        []string            `yaml:"milestones"`        // 终局条件标记，默认 types.WinMilestones
	Fragments         []FragmentConfig    `yaml:"fragments"`         // 照片碎片（每个房间最多一个）
	Routes            []RouteConfig       `yaml:"routes"`            // 场景之间的合法跳转
	Unlocks           map[string][]string `yaml:"unlocks"`           // 完成房间后解锁的房间
	RoomMilestones    map[string]string   `yaml:"roomMilestones"`    // 完成房间时设置的终局标记
	Audio             AudioConfig         `yaml:"audio"`             // 音频配置
	Puzzles           []PuzzleConfig      `yaml:"puzzles"`           // 内嵌滑块拼图的房间
}

// FragmentConfig 单个照片碎片
// Number 是随碎片固定的一位数字，与 ID 无关
type FragmentConfig struct {
	ID     int    `yaml:"id"`     // 1..K，决定密码中的顺序
	Number int    `yaml:"number"` // 0..9
	Room   string `yaml:"room"`   // 所属房间
}

// RouteConfig 一条场景跳转边
// Gate 为空表示无额外条件；目标是房间时总是要求该房间已解锁
type RouteConfig struct {
	From string `yaml:"from"`
	To   string `yaml:"to"`
	Gate string `yaml:"gate"` // "", "allRoomsComplete", "allFragmentsCollected", "photoRevealed", "giftUnlocked"
}

// 路线门槛名称
const (
	GateNone                  = ""
	GateAllRoomsComplete      = "allRoomsComplete"
	GateAllFragmentsCollected = "allFragmentsCollected"
	GatePhotoRevealed         = "photoRevealed"
	GateGiftUnlocked          = "giftUnlocked"
)

// AudioConfig 音频配置
type AudioConfig struct {
	FadeDurationMs      int               `yaml:"fadeDurationMs"`      // 默认 1000
	CrossfadeDurationMs int               `yaml:"crossfadeDurationMs"` // 默认 2000
	AmbientVolume       *float64          `yaml:"ambientVolume"`       // 默认 0.3（0 合法，故使用指针）
	EffectVolume        *float64          `yaml:"effectVolume"`        // 默认 0.6
	FadeCurve           string            `yaml:"fadeCurve"`           // 默认 "linear"
	Tracks              []TrackConfig     `yaml:"tracks"`              // 预加载的音轨
	SceneMusic          map[string]string `yaml:"sceneMusic"`          // 场景 -> 环境音轨 ID
}

// TrackConfig 单条音轨
type TrackConfig struct {
	ID       string `yaml:"id"`
	Source   string `yaml:"source"`   // 不透明的资源定位符，播放时才会暴露错误
	Category string `yaml:"category"` // "ambient" 或 "effect"
	Loop     bool   `yaml:"loop"`
}

// PuzzleConfig 房间内嵌的滑块拼图
type PuzzleConfig struct {
	Room      string `yaml:"room"`
	Kind      string `yaml:"kind"`      // "image" 或 "themed"
	GridSize  int    `yaml:"gridSize"`  // 默认 3
	Milestone string `yaml:"milestone"` // 可选：拼图完成时设置的终局标记
}

// FadeDuration 返回淡入淡出时长
func (c *AudioConfig) FadeDuration() time.Duration {
	return time.Duration(c.FadeDurationMs) * time.Millisecond
}

// CrossfadeDuration 返回场景交叉淡化时长
func (c *AudioConfig) CrossfadeDuration() time.Duration {
	return time.Duration(c.CrossfadeDurationMs) * time.Millisecond
}

// LoadStoryConfig 从文件加载剧情配置
//
// 参数：
//   - filepath: YAML 文件路径
//
// 返回：
//   - *StoryConfig: 已应用默认值并通过校验的配置
//   - error: 读取、解析或校验失败
func LoadStoryConfig(filepath string) (*StoryConfig, error) {
	data, err := os.ReadFile(filepath)
	if err != nil {
		return nil, fmt.Errorf("failed to read story config file %s: %w", filepath, err)
	}

	cfg, err := ParseStoryConfig(data)
	if err != nil {
		return nil, fmt.Errorf("story config %s: %w", filepath, err)
	}
	return cfg, nil
}

// ParseStoryConfig 解析 YAML 数据为剧情配置（用于嵌入资源）
func ParseStoryConfig(data []byte) (*StoryConfig, error) {
	var cfg StoryConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse story config YAML: %w", err)
	}

	applyStoryDefaults(&cfg)

	if err := validateStoryConfig(&cfg); err != nil {
		return nil, fmt.Errorf("invalid story config: %w", err)
	}

	return &cfg, nil
}

// DefaultStoryConfig 返回内置的剧情配置
// 与 data/story.yaml 保持一致，测试和工具在没有嵌入资源时使用
func DefaultStoryConfig() *StoryConfig {
	ambient := DefaultAmbientVolume
	effect := DefaultEffectVolume
	cfg := &StoryConfig{
		InitialScene:      "intro",
		Scenes:            []string{"intro", "hub", "livingroom", "kitchen", "bedroom", "airbag", "garden", "final", "door"},
		Rooms:             []string{"livingroom", "kitchen", "bedroom", "airbag", "garden"},
		InitiallyUnlocked: []string{"livingroom"},
		Milestones:        []string{"dogFed", "tarotPuzzle", "boardGame", "letter"},
		Fragments: []FragmentConfig{
			{ID: 1, Number: 3, Room: "airbag"},
			{ID: 2, Number: 5, Room: "bedroom"},
			{ID: 3, Number: 7, Room: "kitchen"},
		},
		Routes: []RouteConfig{
			{From: "intro", To: "hub"},
			{From: "hub", To: "livingroom"},
			{From: "hub", To: "kitchen"},
			{From: "hub", To: "bedroom"},
			{From: "hub", To: "airbag"},
			{From: "hub", To: "garden"},
			{From: "livingroom", To: "hub"},
			{From: "kitchen", To: "hub"},
			{From: "bedroom", To: "hub"},
			{From: "airbag", To: "hub"},
			{From: "garden", To: "hub"},
			{From: "hub", To: "final", Gate: GateAllRoomsComplete},
			{From: "final", To: "hub"},
			{From: "final", To: "door", Gate: GateGiftUnlocked},
		},
		Unlocks: map[string][]string{
			"livingroom": {"kitchen", "garden"},
			"kitchen":    {"bedroom"},
			"bedroom":    {"airbag"},
		},
		RoomMilestones: map[string]string{
			"garden":  "dogFed",
			"kitchen": "boardGame",
			"airbag":  "letter",
		},
		Audio: AudioConfig{
			AmbientVolume: &ambient,
			EffectVolume:  &effect,
			Tracks: []TrackConfig{
				{ID: "intro_theme", Source: "assets/audio/intro_theme.ogg", Category: TrackCategoryAmbient, Loop: true},
				{ID: "hub_ambient", Source: "assets/audio/hub_ambient.ogg", Category: TrackCategoryAmbient, Loop: true},
				{ID: "fireplace", Source: "assets/audio/fireplace.ogg", Category: TrackCategoryAmbient, Loop: true},
				{ID: "final_theme", Source: "assets/audio/final_theme.ogg", Category: TrackCategoryAmbient, Loop: true},
				{ID: "tile_slide", Source: "assets/audio/tile_slide.wav", Category: TrackCategoryEffect},
				{ID: "fragment_collect", Source: "assets/audio/fragment_collect.wav", Category: TrackCategoryEffect},
				{ID: "wrong_code", Source: "assets/audio/wrong_code.au", Category: TrackCategoryEffect},
				{ID: "gift_open", Source: "assets/audio/gift_open.ogg", Category: TrackCategoryEffect},
			},
			SceneMusic: map[string]string{
				"intro":      "intro_theme",
				"hub":        "hub_ambient",
				"livingroom": "fireplace",
				"final":      "final_theme",
				"door":       "final_theme",
			},
		},
		Puzzles: []PuzzleConfig{
			{Room: "bedroom", Kind: PuzzleKindImage},
			{Room: "livingroom", Kind: PuzzleKindThemed, Milestone: "tarotPuzzle"},
		},
	}
	applyStoryDefaults(cfg)
	return cfg
}

// applyStoryDefaults 为缺省字段设置默认值
func applyStoryDefaults(cfg *StoryConfig) {
	if cfg.InitialScene == "" {
		cfg.InitialScene = "intro"
	}
	if len(cfg.Milestones) == 0 {
		cfg.Milestones = []string{"dogFed", "tarotPuzzle", "boardGame", "letter"}
	}

	audio := &cfg.Audio
	if audio.FadeDurationMs <= 0 {
		audio.FadeDurationMs = int(DefaultFadeDuration / time.Millisecond)
	}
	if audio.CrossfadeDurationMs <= 0 {
		audio.CrossfadeDurationMs = int(DefaultCrossfadeDuration / time.Millisecond)
	}
	if audio.AmbientVolume == nil {
		v := DefaultAmbientVolume
		audio.AmbientVolume = &v
	}
	if audio.EffectVolume == nil {
		v := DefaultEffectVolume
		audio.EffectVolume = &v
	}
	if audio.FadeCurve == "" {
		audio.FadeCurve = DefaultFadeCurve
	}
	if audio.SceneMusic == nil {
		audio.SceneMusic = make(map[string]string)
	}

	for i := range cfg.Puzzles {
		if cfg.Puzzles[i].GridSize == 0 {
			cfg.Puzzles[i].GridSize = DefaultPuzzleGridSize
		}
		if cfg.Puzzles[i].Kind == "" {
			cfg.Puzzles[i].Kind = PuzzleKindImage
		}
	}
}

// validateStoryConfig 校验配置的引用完整性
func validateStoryConfig(cfg *StoryConfig) error {
	scenes := toSet(cfg.Scenes)
	if len(scenes) != len(cfg.Scenes) {
		return fmt.Errorf("duplicate scene names")
	}
	if !scenes[cfg.InitialScene] {
		return fmt.Errorf("initial scene %q is not a known scene", cfg.InitialScene)
	}

	rooms := toSet(cfg.Rooms)
	if len(rooms) != len(cfg.Rooms) {
		return fmt.Errorf("duplicate room names")
	}
	for _, room := range cfg.Rooms {
		if !scenes[room] {
			return fmt.Errorf("room %q is not a known scene", room)
		}
	}
	for _, room := range cfg.InitiallyUnlocked {
		if !rooms[room] {
			return fmt.Errorf("initially unlocked room %q is not a known room", room)
		}
	}

	if len(toSet(cfg.Milestones)) != len(cfg.Milestones) {
		return fmt.Errorf("duplicate milestone names")
	}
	milestones := toSet(cfg.Milestones)

	if err := validateFragments(cfg.Fragments, rooms); err != nil {
		return err
	}

	for room, targets := range cfg.Unlocks {
		if !rooms[room] {
			return fmt.Errorf("unlocks for unknown room %q", room)
		}
		for _, target := range targets {
			if !rooms[target] {
				return fmt.Errorf("room %q unlocks unknown room %q", room, target)
			}
		}
	}
	for room, milestone := range cfg.RoomMilestones {
		if !rooms[room] {
			return fmt.Errorf("milestone for unknown room %q", room)
		}
		if !milestones[milestone] {
			return fmt.Errorf("room %q references unknown milestone %q", room, milestone)
		}
	}

	for i, route := range cfg.Routes {
		if !scenes[route.From] || !scenes[route.To] {
			return fmt.Errorf("route %d (%s -> %s) references an unknown scene", i, route.From, route.To)
		}
		switch route.Gate {
		case GateNone, GateAllRoomsComplete, GateAllFragmentsCollected, GatePhotoRevealed, GateGiftUnlocked:
		default:
			return fmt.Errorf("route %d (%s -> %s) has unknown gate %q", i, route.From, route.To, route.Gate)
		}
	}

	tracks := make(map[string]bool, len(cfg.Audio.Tracks))
	for _, track := range cfg.Audio.Tracks {
		if track.ID == "" {
			return fmt.Errorf("track with empty id")
		}
		if tracks[track.ID] {
			return fmt.Errorf("duplicate track id %q", track.ID)
		}
		if track.Source == "" {
			return fmt.Errorf("track %q has no source", track.ID)
		}
		if track.Category != TrackCategoryAmbient && track.Category != TrackCategoryEffect {
			return fmt.Errorf("track %q has unknown category %q", track.ID, track.Category)
		}
		tracks[track.ID] = true
	}
	for scene, trackID := range cfg.Audio.SceneMusic {
		if !scenes[scene] {
			return fmt.Errorf("scene music for unknown scene %q", scene)
		}
		if !tracks[trackID] {
			return fmt.Errorf("scene %q music references unknown track %q", scene, trackID)
		}
	}
	if err := validateVolume("ambientVolume", *cfg.Audio.AmbientVolume); err != nil {
		return err
	}
	if err := validateVolume("effectVolume", *cfg.Audio.EffectVolume); err != nil {
		return err
	}
	if _, ok := utils.EasingByName(cfg.Audio.FadeCurve); !ok {
		return fmt.Errorf("unknown fade curve %q", cfg.Audio.FadeCurve)
	}

	for _, puzzle := range cfg.Puzzles {
		if !rooms[puzzle.Room] {
			return fmt.Errorf("puzzle room %q is not a known room", puzzle.Room)
		}
		if puzzle.Kind != PuzzleKindImage && puzzle.Kind != PuzzleKindThemed {
			return fmt.Errorf("puzzle in %q has unknown kind %q", puzzle.Room, puzzle.Kind)
		}
		if puzzle.GridSize < 2 {
			return fmt.Errorf("puzzle in %q has grid size %d (minimum 2)", puzzle.Room, puzzle.GridSize)
		}
		if puzzle.Milestone != "" && !milestones[puzzle.Milestone] {
			return fmt.Errorf("puzzle in %q references unknown milestone %q", puzzle.Room, puzzle.Milestone)
		}
	}

	return nil
}

// validateFragments 碎片 ID 必须是 1..K 且每个房间最多一个碎片
func validateFragments(fragments []FragmentConfig, rooms map[string]bool) error {
	seenIDs := make(map[int]bool, len(fragments))
	seenRooms := make(map[string]bool, len(fragments))
	for _, f := range fragments {
		if f.ID < 1 || f.ID > len(fragments) {
			return fmt.Errorf("fragment id %d out of range 1..%d", f.ID, len(fragments))
		}
		if seenIDs[f.ID] {
			return fmt.Errorf("duplicate fragment id %d", f.ID)
		}
		if f.Number < 0 || f.Number > 9 {
			return fmt.Errorf("fragment %d number %d is not a single digit", f.ID, f.Number)
		}
		if !rooms[f.Room] {
			return fmt.Errorf("fragment %d belongs to unknown room %q", f.ID, f.Room)
		}
		if seenRooms[f.Room] {
			return fmt.Errorf("room %q owns more than one fragment", f.Room)
		}
		seenIDs[f.ID] = true
		seenRooms[f.Room] = true
	}
	return nil
}

func validateVolume(name string, v float64) error {
	if v < 0 || v > 1 {
		return fmt.Errorf("%s %.2f out of range 0..1", name, v)
	}
	return nil
}

func toSet(values []string) map[string]bool {
	set := make(map[string]bool, len(values))
	for _, v := range values {
		set[v] = true
	}
	return set
}
