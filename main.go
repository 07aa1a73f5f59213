package main

import (
	"flag"
	"log"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/decker502/giftrooms/pkg/app"
	"github.com/decker502/giftrooms/pkg/config"
	"github.com/decker502/giftrooms/pkg/embedded"
)

var (
	verbose   = flag.Bool("verbose", false, "显示详细调试信息")
	scene     = flag.String("scene", "", "直接进入指定场景（调试用），如 hub、kitchen、final")
	storyFile = flag.String("story", "", "外部剧情配置文件（默认使用内嵌的 data/story.yaml）")
	muted     = flag.Bool("muted", false, "静音启动")
)

func main() {
	flag.Parse()

	// 音频从磁盘读取，只嵌入剧情配置
	embedded.Init(nil, dataFS)

	game, err := app.NewApp(app.Config{
		Verbose:   *verbose,
		Scene:     *scene,
		StoryFile: *storyFile,
		Muted:     *muted,
	})
	if err != nil {
		log.Fatalf("启动失败: %v", err)
	}
	defer game.Shutdown()

	ebiten.SetWindowSize(config.GameWindowWidth, config.GameWindowHeight)
	ebiten.SetWindowTitle("Gift Rooms")
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	if game.Settings().GetSettings().Fullscreen {
		ebiten.SetFullscreen(true)
	}

	if err := ebiten.RunGame(game); err != nil {
		log.Fatal(err)
	}
}
