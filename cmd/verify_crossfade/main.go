// verify_crossfade 用模拟时钟打印淡入和交叉淡化的音量时间线
//
// 不需要音频设备，音轨使用静音播放器。
//
// 用法:
//
//	go run ./cmd/verify_crossfade -curve equalPower -duration 2s -step 250ms
package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/decker502/giftrooms/pkg/config"
	"github.com/decker502/giftrooms/pkg/game"
	"github.com/decker502/giftrooms/pkg/utils"
)

var (
	curve    = flag.String("curve", config.DefaultFadeCurve, "渐变曲线: linear, inQuad, outQuad, inOutCubic, equalPower")
	duration = flag.Duration("duration", config.DefaultCrossfadeDuration, "交叉淡化时长")
	step     = flag.Duration("step", 250*time.Millisecond, "采样间隔")
)

// clock 手动推进的时钟
type clock struct {
	now time.Time
}

func (c *clock) Now() time.Time { return c.now }

func main() {
	flag.Parse()

	easing, ok := utils.EasingByName(*curve)
	if !ok {
		fmt.Printf("❌ unknown curve %q\n", *curve)
		os.Exit(1)
	}
	if *step <= 0 {
		fmt.Println("❌ step must be positive")
		os.Exit(1)
	}

	c := &clock{now: time.Unix(0, 0)}
	cfg := game.DefaultSequencerConfig()
	cfg.Easing = easing
	cfg.Now = c.Now

	seq := game.NewSequencer(&game.SilentTrackLoader{Now: c.Now}, cfg)
	seq.Preload("a", "a.ogg", game.CategoryAmbient, true)
	seq.Preload("b", "b.ogg", game.CategoryAmbient, true)

	fmt.Printf("=== Fade in a (%v, %s) ===\n", cfg.FadeDuration, *curve)
	seq.Play("a", true)
	timeline(seq, c, cfg.FadeDuration, "a")

	fmt.Printf("\n=== Crossfade a -> b (%v, %s) ===\n", *duration, *curve)
	seq.Crossfade("a", "b", *duration)
	timeline(seq, c, *duration, "a", "b")

	fmt.Println()
	fmt.Printf("a playing=%v position=%v\n", seq.IsPlaying("a"), seq.Position("a"))
	fmt.Printf("b playing=%v volume=%.3f\n", seq.IsPlaying("b"), seq.Volume("b"))
	if seq.IsPlaying("a") || seq.Volume("b") != seq.CategoryVolume(game.CategoryAmbient) {
		fmt.Println("❌ crossfade did not settle")
		os.Exit(1)
	}
	fmt.Println("✅ crossfade settled")
}

// timeline 按 step 推进时钟直到 d，每步打印各音轨音量
func timeline(seq *game.Sequencer, c *clock, d time.Duration, ids ...string) {
	for elapsed := time.Duration(0); elapsed <= d; elapsed += *step {
		seq.Update()
		fmt.Printf("%8v", elapsed)
		for _, id := range ids {
			fmt.Printf("  %s=%.3f", id, seq.Volume(id))
		}
		fmt.Println()
		c.now = c.now.Add(*step)
	}
	// 确保最后一步落在终点之后
	seq.Update()
}
