// Package app 提供游戏应用的核心包装器
//
// 该包把剧情配置、进度状态机、音频编排器、导航器和界面组装成一个 ebiten.Game，
// main.go 和 mobile 包都通过 NewApp() 创建应用。
package app

import (
	"fmt"
	"image/color"
	"io"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/audio"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/quasilyte/gdata/v2"

	"github.com/decker502/giftrooms/pkg/config"
	"github.com/decker502/giftrooms/pkg/embedded"
	"github.com/decker502/giftrooms/pkg/game"
	"github.com/decker502/giftrooms/pkg/types"
	"github.com/decker502/giftrooms/pkg/utils"
)

// StoryPath 内嵌剧情配置的路径
const StoryPath = "data/story.yaml"

// AudioSampleRate 音频上下文采样率
const AudioSampleRate = 48000

// Config 定义应用启动配置
type Config struct {
	// Verbose 启用详细日志输出
	Verbose bool
	// Scene 指定开场场景（调试用），为空则使用剧情配置的 initialScene
	Scene string
	// StoryFile 外部剧情配置文件，为空则使用内嵌的 data/story.yaml
	StoryFile string
	// Muted 启动时静音（不写入设置）
	Muted bool
}

// App 是游戏应用的核心包装器，实现 ebiten.Game 接口
type App struct {
	story         *config.StoryConfig
	store         *game.ProgressionStore
	sequencer     *game.Sequencer
	navigator     *game.Navigator
	settings      *game.SettingsManager
	screenManager *game.ScreenManager
	verbose       bool

	pendingWindowSizeReset   bool // 延迟设置窗口大小标志
	windowSizeResetCountdown int  // 延迟帧数
}

// NewApp 创建并初始化游戏应用
//
// 调用此函数前，必须先调用 embedded.Init() 初始化嵌入资源。
func NewApp(cfg Config) (*App, error) {
	// 配置日志输出
	if !cfg.Verbose {
		log.SetOutput(io.Discard)
		log.SetFlags(0)
	}

	story, err := loadStory(cfg.StoryFile)
	if err != nil {
		return nil, err
	}

	audioContext := audio.NewContext(AudioSampleRate)
	loader := game.NewEbitenTrackLoader(audioContext)

	if err := utils.EnsureStorageDir(); err != nil {
		log.Printf("[App] Warning: %v", err)
	}
	gdataManager, err := gdata.Open(gdata.Config{AppName: "giftrooms"})
	if err != nil {
		log.Printf("[App] Warning: settings storage unavailable: %v (settings will not persist)", err)
		gdataManager = nil
	}
	settings, err := game.NewSettingsManager(gdataManager, game.SettingsFromAudio(story.Audio))
	if err != nil {
		return nil, fmt.Errorf("设置初始化失败: %w", err)
	}
	if cfg.Muted {
		settings.SetMuted(true)
	}

	a := newApp(story, loader, settings, types.Scene(cfg.Scene))
	a.verbose = cfg.Verbose
	return a, nil
}

// loadStory 读取外部或内嵌的剧情配置
func loadStory(path string) (*config.StoryConfig, error) {
	if path != "" {
		story, err := config.LoadStoryConfig(path)
		if err != nil {
			return nil, fmt.Errorf("剧情配置加载失败: %w", err)
		}
		return story, nil
	}

	data, err := embedded.ReadFile(StoryPath)
	if err != nil {
		return nil, fmt.Errorf("剧情配置读取失败: %w", err)
	}
	story, err := config.ParseStoryConfig(data)
	if err != nil {
		return nil, fmt.Errorf("剧情配置加载失败: %w", err)
	}
	log.Printf("[App] Story loaded: %d scenes, %d rooms, %d fragments", len(story.Scenes), len(story.Rooms), len(story.Fragments))
	return story, nil
}

// newApp 组装各组件（测试中使用静音加载器）
func newApp(story *config.StoryConfig, loader game.TrackLoader, settings *game.SettingsManager, startScene types.Scene) *App {
	sequencer := game.NewSequencer(loader, game.SequencerConfigFromAudio(story.Audio))
	sequencer.PreloadAll(story.Audio.Tracks)
	settings.ApplyTo(sequencer)
	log.Printf("[App] Sequencer initialized with %d tracks", len(sequencer.Tracks()))

	store := game.NewProgressionStore(story)
	if startScene != "" {
		store.SetScene(startScene)
		log.Printf("[App] Starting at scene: %s", startScene)
	}

	navigator := game.NewNavigator(story, store, sequencer, nil)
	navigator.Start()

	screenManager := game.NewScreenManager(store)
	room := newRoomScreen(store, navigator, sequencer, settings)
	screenManager.SetFallback(room)
	for _, pc := range story.Puzzles {
		roomID := types.RoomID(pc.Room)
		screenManager.Register(roomID.Scene(), newPuzzleScreen(room, roomID))
	}
	screenManager.Sync()

	return &App{
		story:         story,
		store:         store,
		sequencer:     sequencer,
		navigator:     navigator,
		settings:      settings,
		screenManager: screenManager,
	}
}

// Update 更新游戏逻辑
// 每个 tick 调用一次（通常每秒 60 次）
func (a *App) Update() error {
	// 延迟设置窗口大小（退出全屏后需要等待几帧才能正确设置）
	if a.pendingWindowSizeReset {
		a.windowSizeResetCountdown--
		if a.windowSizeResetCountdown <= 0 {
			ebiten.SetWindowSize(config.GameWindowWidth, config.GameWindowHeight)
			a.pendingWindowSizeReset = false
		}
	}

	// F11 切换全屏
	if inpututil.IsKeyJustPressed(ebiten.KeyF11) {
		a.toggleFullscreen()
	}

	deltaTime := 1.0 / 60.0
	a.screenManager.Update(deltaTime)
	a.sequencer.Update()
	return nil
}

func (a *App) toggleFullscreen() {
	fullscreen := !ebiten.IsFullscreen()
	ebiten.SetFullscreen(fullscreen)
	if !fullscreen {
		if ebiten.IsWindowMaximized() || ebiten.IsWindowMinimized() {
			ebiten.RestoreWindow()
		}
		a.pendingWindowSizeReset = true
		a.windowSizeResetCountdown = 3
	}

	a.settings.SetFullscreen(fullscreen)
	if err := a.settings.Save(); err != nil {
		log.Printf("[App] Warning: Failed to save settings: %v", err)
	}
}

// Draw 绘制游戏画面
func (a *App) Draw(screen *ebiten.Image) {
	a.screenManager.Draw(screen)
}

// DrawFinalScreen 实现 FinalScreenDrawer 接口
// 全屏时左右 letterbox 填充黑色
func (a *App) DrawFinalScreen(screen ebiten.FinalScreen, offscreen *ebiten.Image, geoM ebiten.GeoM) {
	screen.Fill(color.Black)
	op := &ebiten.DrawImageOptions{}
	op.GeoM = geoM
	op.Filter = ebiten.FilterLinear
	screen.DrawImage(offscreen, op)
}

// Layout 返回游戏的逻辑屏幕尺寸
func (a *App) Layout(outsideWidth, outsideHeight int) (int, int) {
	return config.GameWindowWidth, config.GameWindowHeight
}

// Shutdown 立即停止所有音轨（不淡出）并保存设置
func (a *App) Shutdown() {
	a.sequencer.StopAll(false)
	if err := a.settings.Save(); err != nil {
		log.Printf("[App] Warning: Failed to save settings: %v", err)
	}
}

// Settings 返回设置管理器
func (a *App) Settings() *game.SettingsManager {
	return a.settings
}

// Store 返回进度状态机
func (a *App) Store() *game.ProgressionStore {
	return a.store
}

// IsVerbose 返回是否启用了详细日志
func (a *App) IsVerbose() bool {
	return a.verbose
}
