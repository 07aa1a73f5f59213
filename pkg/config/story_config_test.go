package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const minimalStoryYAML = `
scenes: [intro, hub, kitchen]
rooms: [kitchen]
fragments:
  - { id: 1, number: 7, room: kitchen }
`

// TestLoadStoryConfig 测试从文件加载剧情配置
func TestLoadStoryConfig(t *testing.T) {
	t.Run("仓库内置 story.yaml", func(t *testing.T) {
		cfg, err := LoadStoryConfig(filepath.Join("..", "..", "data", "story.yaml"))
		if err != nil {
			t.Fatalf("LoadStoryConfig() failed: %v", err)
		}

		if cfg.InitialScene != "intro" {
			t.Errorf("InitialScene: got %q, want intro", cfg.InitialScene)
		}
		if len(cfg.Fragments) != 3 {
			t.Fatalf("Expected 3 fragments, got %d", len(cfg.Fragments))
		}
		want := map[int]int{1: 3, 2: 5, 3: 7}
		for _, f := range cfg.Fragments {
			if want[f.ID] != f.Number {
				t.Errorf("fragment %d number: got %d, want %d", f.ID, f.Number, want[f.ID])
			}
		}
		if cfg.Audio.FadeDuration().Milliseconds() != 1000 {
			t.Errorf("FadeDuration: got %v, want 1s", cfg.Audio.FadeDuration())
		}
		if *cfg.Audio.AmbientVolume != 0.3 {
			t.Errorf("AmbientVolume: got %v, want 0.3", *cfg.Audio.AmbientVolume)
		}
		if got := cfg.Unlocks["livingroom"]; len(got) != 2 {
			t.Errorf("Unlocks[livingroom]: got %v", got)
		}
		if cfg.RoomMilestones["garden"] != "dogFed" {
			t.Errorf("RoomMilestones[garden]: got %q, want dogFed", cfg.RoomMilestones["garden"])
		}
	})

	t.Run("文件不存在", func(t *testing.T) {
		_, err := LoadStoryConfig(filepath.Join(t.TempDir(), "missing.yaml"))
		if err == nil {
			t.Fatal("Expected error for missing file")
		}
	})

	t.Run("临时文件", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "story.yaml")
		if err := os.WriteFile(path, []byte(minimalStoryYAML), 0644); err != nil {
			t.Fatalf("Failed to create test file: %v", err)
		}
		cfg, err := LoadStoryConfig(path)
		if err != nil {
			t.Fatalf("LoadStoryConfig() failed: %v", err)
		}
		if len(cfg.Rooms) != 1 || cfg.Rooms[0] != "kitchen" {
			t.Errorf("Rooms: got %v", cfg.Rooms)
		}
	})
}

// TestParseStoryConfigDefaults 测试缺省字段的默认值
func TestParseStoryConfigDefaults(t *testing.T) {
	cfg, err := ParseStoryConfig([]byte(minimalStoryYAML))
	if err != nil {
		t.Fatalf("ParseStoryConfig() failed: %v", err)
	}

	if cfg.InitialScene != "intro" {
		t.Errorf("InitialScene: got %q, want intro", cfg.InitialScene)
	}
	if len(cfg.Milestones) != 4 {
		t.Errorf("Milestones: got %v, want 4 default milestones", cfg.Milestones)
	}
	if cfg.Audio.FadeDurationMs != 1000 {
		t.Errorf("FadeDurationMs: got %d, want 1000", cfg.Audio.FadeDurationMs)
	}
	if cfg.Audio.CrossfadeDurationMs != 2000 {
		t.Errorf("CrossfadeDurationMs: got %d, want 2000", cfg.Audio.CrossfadeDurationMs)
	}
	if *cfg.Audio.AmbientVolume != DefaultAmbientVolume {
		t.Errorf("AmbientVolume: got %v, want %v", *cfg.Audio.AmbientVolume, DefaultAmbientVolume)
	}
	if *cfg.Audio.EffectVolume != DefaultEffectVolume {
		t.Errorf("EffectVolume: got %v, want %v", *cfg.Audio.EffectVolume, DefaultEffectVolume)
	}
	if cfg.Audio.FadeCurve != "linear" {
		t.Errorf("FadeCurve: got %q, want linear", cfg.Audio.FadeCurve)
	}
}

// TestParseStoryConfigZeroVolume 测试显式的 0 音量不会被默认值覆盖
func TestParseStoryConfigZeroVolume(t *testing.T) {
	cfg, err := ParseStoryConfig([]byte(minimalStoryYAML + "audio:\n  ambientVolume: 0\n"))
	if err != nil {
		t.Fatalf("ParseStoryConfig() failed: %v", err)
	}
	if *cfg.Audio.AmbientVolume != 0 {
		t.Errorf("AmbientVolume: got %v, want 0", *cfg.Audio.AmbientVolume)
	}
}

// TestParseStoryConfigInvalid 测试校验失败的情况
func TestParseStoryConfigInvalid(t *testing.T) {
	tests := []struct {
		name    string
		yaml    string
		wantErr string
	}{
		{
			name:    "YAML 语法错误",
			yaml:    "scenes: [intro",
			wantErr: "parse",
		},
		{
			name:    "开场场景未知",
			yaml:    "initialScene: nowhere\nscenes: [intro]\n",
			wantErr: "initial scene",
		},
		{
			name:    "房间不是场景",
			yaml:    "scenes: [intro]\nrooms: [kitchen]\n",
			wantErr: "not a known scene",
		},
		{
			name:    "初始解锁房间未知",
			yaml:    "scenes: [intro, kitchen]\nrooms: [kitchen]\ninitiallyUnlocked: [garden]\n",
			wantErr: "initially unlocked",
		},
		{
			name: "碎片 ID 越界",
			yaml: `scenes: [intro, kitchen]
rooms: [kitchen]
fragments:
  - { id: 2, number: 7, room: kitchen }
`,
			wantErr: "out of range",
		},
		{
			name: "碎片数字不是一位数",
			yaml: `scenes: [intro, kitchen]
rooms: [kitchen]
fragments:
  - { id: 1, number: 12, room: kitchen }
`,
			wantErr: "single digit",
		},
		{
			name: "同一房间两个碎片",
			yaml: `scenes: [intro, kitchen]
rooms: [kitchen]
fragments:
  - { id: 1, number: 1, room: kitchen }
  - { id: 2, number: 2, room: kitchen }
`,
			wantErr: "more than one fragment",
		},
		{
			name: "路线门槛未知",
			yaml: `scenes: [intro, hub]
routes:
  - { from: intro, to: hub, gate: magic }
`,
			wantErr: "unknown gate",
		},
		{
			name: "音轨类别未知",
			yaml: `scenes: [intro]
audio:
  tracks:
    - { id: x, source: x.ogg, category: music }
`,
			wantErr: "unknown category",
		},
		{
			name: "场景音乐引用未知音轨",
			yaml: `scenes: [intro]
audio:
  sceneMusic:
    intro: missing
`,
			wantErr: "unknown track",
		},
		{
			name: "音量越界",
			yaml: `scenes: [intro]
audio:
  effectVolume: 1.5
`,
			wantErr: "effectVolume",
		},
		{
			name: "淡入淡出曲线未知",
			yaml: `scenes: [intro]
audio:
  fadeCurve: bounce
`,
			wantErr: "fade curve",
		},
		{
			name: "解锁未知房间",
			yaml: `scenes: [intro, kitchen]
rooms: [kitchen]
unlocks:
  kitchen: [cellar]
`,
			wantErr: "unlocks unknown room",
		},
		{
			name: "房间终局标记未知",
			yaml: `scenes: [intro, kitchen]
rooms: [kitchen]
roomMilestones:
  kitchen: nope
`,
			wantErr: "unknown milestone",
		},
		{
			name: "拼图尺寸过小",
			yaml: `scenes: [intro, bedroom]
rooms: [bedroom]
puzzles:
  - { room: bedroom, gridSize: 1 }
`,
			wantErr: "grid size",
		},
		{
			name: "拼图引用未知终局标记",
			yaml: `scenes: [intro, bedroom]
rooms: [bedroom]
puzzles:
  - { room: bedroom, milestone: nope }
`,
			wantErr: "unknown milestone",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseStoryConfig([]byte(tt.yaml))
			if err == nil {
				t.Fatalf("Expected error containing %q, got nil", tt.wantErr)
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Expected error containing %q, got %v", tt.wantErr, err)
			}
		})
	}
}

// TestDefaultStoryConfigValid 内置配置必须能通过校验
func TestDefaultStoryConfigValid(t *testing.T) {
	cfg := DefaultStoryConfig()
	if err := validateStoryConfig(cfg); err != nil {
		t.Fatalf("DefaultStoryConfig() is invalid: %v", err)
	}
	if cfg.Puzzles[0].GridSize != DefaultPuzzleGridSize {
		t.Errorf("puzzle grid size default: got %d, want %d", cfg.Puzzles[0].GridSize, DefaultPuzzleGridSize)
	}
}
