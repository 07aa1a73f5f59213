package game

import (
	"math"
	"slices"
	"testing"
	"time"

	"github.com/decker502/giftrooms/pkg/config"
)

// newTestSequencer 使用静音加载器和假时钟的编排器
func newTestSequencer(t *testing.T) (*Sequencer, *fakeClock) {
	t.Helper()
	clock := newFakeClock()
	cfg := DefaultSequencerConfig()
	cfg.Now = clock.Now
	s := NewSequencer(&SilentTrackLoader{Now: clock.Now, Missing: map[string]bool{"missing.mp3": true}}, cfg)
	s.Preload("ambient", "hub.mp3", CategoryAmbient, true)
	s.Preload("other", "fire.mp3", CategoryAmbient, true)
	s.Preload("click", "click.wav", CategoryEffect, false)
	return s, clock
}

func playerOf(t *testing.T, s *Sequencer, id string) *SilentPlayer {
	t.Helper()
	p, ok := s.tracks[id].player.(*SilentPlayer)
	if !ok {
		t.Fatalf("track %s has no silent player", id)
	}
	return p
}

func TestSequencerPreloadFirstWins(t *testing.T) {
	s, _ := newTestSequencer(t)

	if s.Preload("ambient", "other.mp3", CategoryEffect, false) {
		t.Error("second Preload of the same id should be a no-op")
	}
	cat, _ := s.Category("ambient")
	if cat != CategoryAmbient || s.tracks["ambient"].source != "hub.mp3" {
		t.Errorf("first registration should win, got %s %s", cat, s.tracks["ambient"].source)
	}
	if s.Preload("bad", "x.mp3", TrackCategory("voice"), false) {
		t.Error("unknown category should not register")
	}
	if s.IsRegistered("bad") {
		t.Error("bad track must not be registered")
	}
}

func TestSequencerPlayWithoutFade(t *testing.T) {
	s, _ := newTestSequencer(t)

	s.Play("ambient", false)
	if !s.IsPlaying("ambient") {
		t.Fatal("ambient should be playing")
	}
	if got := s.Volume("ambient"); !approxEqual(got, config.DefaultAmbientVolume) {
		t.Errorf("Volume = %v, want %v", got, config.DefaultAmbientVolume)
	}
	if got := playerOf(t, s, "ambient").Volume(); !approxEqual(got, config.DefaultAmbientVolume) {
		t.Errorf("player volume = %v, want %v", got, config.DefaultAmbientVolume)
	}
}

// 淡入：500ms 时为一半，1000ms 及以后精确等于目标音量
func TestSequencerFadeIn(t *testing.T) {
	s, clock := newTestSequencer(t)

	s.Play("ambient", true)
	if got := s.Volume("ambient"); got != 0 {
		t.Errorf("volume at start = %v, want 0", got)
	}

	clock.Advance(500 * time.Millisecond)
	s.Update()
	if got := s.Volume("ambient"); !approxEqual(got, 0.15) {
		t.Errorf("volume at 500ms = %v, want 0.15", got)
	}

	clock.Advance(500 * time.Millisecond)
	s.Update()
	if got := s.Volume("ambient"); got != 0.3 {
		t.Errorf("volume at 1000ms = %v, want exactly 0.3", got)
	}

	clock.Advance(time.Second)
	s.Update()
	if got := s.Volume("ambient"); got != 0.3 {
		t.Errorf("volume after fade = %v, want 0.3", got)
	}
	if s.IsFading("ambient") {
		t.Error("fade should be finished")
	}
}

func TestSequencerStopWithFadeOutResetsAfterFade(t *testing.T) {
	s, clock := newTestSequencer(t)
	s.Play("ambient", false)
	clock.Advance(3 * time.Second)

	s.Stop("ambient", true)

	clock.Advance(500 * time.Millisecond)
	s.Update()
	if !s.IsPlaying("ambient") {
		t.Fatal("track must keep playing during the fade-out")
	}
	if s.Position("ambient") == 0 {
		t.Fatal("position must not reset before the fade completes")
	}
	if got := s.Volume("ambient"); !approxEqual(got, 0.15) {
		t.Errorf("volume at 500ms = %v, want 0.15", got)
	}

	clock.Advance(500 * time.Millisecond)
	s.Update()
	if s.IsPlaying("ambient") {
		t.Error("track should be stopped after the fade")
	}
	if s.Position("ambient") != 0 {
		t.Errorf("position = %v, want 0 after stop", s.Position("ambient"))
	}
}

func TestSequencerStopImmediate(t *testing.T) {
	s, clock := newTestSequencer(t)
	s.Play("ambient", false)
	clock.Advance(time.Second)

	s.Stop("ambient", false)
	if s.IsPlaying("ambient") || s.Position("ambient") != 0 {
		t.Errorf("immediate stop: playing=%v position=%v", s.IsPlaying("ambient"), s.Position("ambient"))
	}
}

func TestSequencerPauseResumeKeepsPosition(t *testing.T) {
	s, clock := newTestSequencer(t)
	s.Play("ambient", false)
	clock.Advance(2 * time.Second)

	s.Pause("ambient")
	if !s.IsPaused("ambient") || s.IsPlaying("ambient") {
		t.Fatal("track should be paused")
	}
	clock.Advance(5 * time.Second)
	if got := s.Position("ambient"); got != 2*time.Second {
		t.Errorf("paused position = %v, want 2s", got)
	}

	s.Resume("ambient")
	clock.Advance(time.Second)
	if got := s.Position("ambient"); got != 3*time.Second {
		t.Errorf("resumed position = %v, want 3s", got)
	}

	// 未暂停的音轨 Resume 无效果
	s.Resume("other")
	if s.IsPlaying("other") {
		t.Error("Resume must not start a track that was never paused")
	}
}

func TestSequencerAmbientPlayContinuesEffectRewinds(t *testing.T) {
	s, clock := newTestSequencer(t)

	s.Play("ambient", false)
	s.Play("click", false)
	clock.Advance(time.Second)
	s.Pause("ambient")

	s.Play("ambient", false)
	if got := s.Position("ambient"); got != time.Second {
		t.Errorf("ambient position after replay = %v, want 1s", got)
	}

	s.Play("click", false)
	if got := s.Position("click"); got != 0 {
		t.Errorf("effect position after replay = %v, want 0", got)
	}
}

// 交叉淡化：2000ms 后 a 停止并复位，b 达到目标音量
func TestSequencerCrossfade(t *testing.T) {
	s, clock := newTestSequencer(t)
	s.Play("ambient", false)
	clock.Advance(4 * time.Second)

	s.Crossfade("ambient", "other", 2*time.Second)
	if !s.IsPlaying("other") || s.Volume("other") != 0 {
		t.Fatalf("b should start at 0: playing=%v volume=%v", s.IsPlaying("other"), s.Volume("other"))
	}

	clock.Advance(time.Second)
	s.Update()
	if !approxEqual(s.Volume("ambient"), 0.15) || !approxEqual(s.Volume("other"), 0.15) {
		t.Errorf("midpoint volumes a=%v b=%v, want 0.15 both", s.Volume("ambient"), s.Volume("other"))
	}
	if !s.IsPlaying("ambient") {
		t.Error("a should still be playing at the midpoint")
	}

	clock.Advance(time.Second)
	s.Update()
	if s.IsPlaying("ambient") {
		t.Error("a should be stopped")
	}
	if s.Position("ambient") != 0 {
		t.Errorf("a position = %v, want 0", s.Position("ambient"))
	}
	if s.Volume("other") != 0.3 {
		t.Errorf("b volume = %v, want 0.3", s.Volume("other"))
	}
}

func TestSequencerNewFadeSupersedesOld(t *testing.T) {
	s, clock := newTestSequencer(t)
	s.Play("ambient", false)

	s.Stop("ambient", true)
	clock.Advance(500 * time.Millisecond)
	s.Update()

	// 淡出途中重新播放，旧的停止回调不得生效
	s.Play("ambient", true)
	clock.Advance(600 * time.Millisecond)
	s.Update()
	if !s.IsPlaying("ambient") {
		t.Fatal("superseded fade-out must not stop the track")
	}

	clock.Advance(time.Second)
	s.Update()
	if !s.IsPlaying("ambient") || s.Volume("ambient") != 0.3 {
		t.Errorf("playing=%v volume=%v, want true 0.3", s.IsPlaying("ambient"), s.Volume("ambient"))
	}
}

func TestSequencerSetCategoryVolume(t *testing.T) {
	s, _ := newTestSequencer(t)
	s.Play("ambient", false)
	s.Play("click", false)

	s.SetCategoryVolume(CategoryAmbient, 0)
	if got := playerOf(t, s, "ambient").Volume(); got != 0 {
		t.Errorf("muted ambient player volume = %v, want 0", got)
	}
	if got := playerOf(t, s, "other").Volume(); got != 0 {
		t.Errorf("registered but idle ambient track should also be updated, got %v", got)
	}
	if got := s.Volume("click"); !approxEqual(got, config.DefaultEffectVolume) {
		t.Errorf("effect volume changed to %v", got)
	}

	s.SetCategoryVolume(CategoryAmbient, 1.5)
	if got := s.CategoryVolume(CategoryAmbient); got != 1 {
		t.Errorf("category volume = %v, want clamped 1", got)
	}
	if got := s.Volume("ambient"); got != 1 {
		t.Errorf("unmuted volume = %v, want 1", got)
	}
}

func TestSequencerSetCategoryVolumeIgnoresNaN(t *testing.T) {
	s, _ := newTestSequencer(t)
	s.Play("ambient", false)

	s.SetCategoryVolume(CategoryAmbient, math.NaN())
	if got := s.CategoryVolume(CategoryAmbient); !approxEqual(got, config.DefaultAmbientVolume) {
		t.Errorf("category volume = %v, want unchanged %v", got, config.DefaultAmbientVolume)
	}
	if got := playerOf(t, s, "ambient").Volume(); math.IsNaN(got) || !approxEqual(got, config.DefaultAmbientVolume) {
		t.Errorf("player volume = %v, want unchanged %v", got, config.DefaultAmbientVolume)
	}
}

func TestSequencerSetCategoryVolumeDuringFade(t *testing.T) {
	s, clock := newTestSequencer(t)
	s.Play("ambient", true)
	clock.Advance(500 * time.Millisecond)
	s.Update()

	s.SetCategoryVolume(CategoryAmbient, 0.6)
	clock.Advance(500 * time.Millisecond)
	s.Update()
	if got := s.Volume("ambient"); got != 0.6 {
		t.Errorf("fade should land on the new target, got %v", got)
	}
}

func TestSequencerUnknownIDIsNoOp(t *testing.T) {
	s, _ := newTestSequencer(t)
	before := s.Tracks()

	s.Play("nope", true)
	s.Pause("nope")
	s.Resume("nope")
	s.Stop("nope", true)
	s.Crossfade("nope", "nada", time.Second)
	s.Update()

	if after := s.Tracks(); !slices.Equal(before, after) {
		t.Errorf("registry changed: %v -> %v", before, after)
	}
	if s.IsPlaying("nope") || s.Volume("nope") != 0 || s.IsRegistered("nope") {
		t.Error("unknown id should report nothing")
	}
}

func TestSequencerCrossfadeToUnknownStillFadesOut(t *testing.T) {
	s, clock := newTestSequencer(t)
	s.Play("ambient", false)

	s.Crossfade("ambient", "nope", time.Second)
	clock.Advance(time.Second)
	s.Update()
	if s.IsPlaying("ambient") {
		t.Error("known half of the crossfade should still run")
	}
}

func TestSequencerMissingSourceRegistersButDoesNotPlay(t *testing.T) {
	s, _ := newTestSequencer(t)

	if !s.Preload("broken", "missing.mp3", CategoryEffect, false) {
		t.Fatal("failed load should still register")
	}
	s.Play("broken", false)
	if s.IsPlaying("broken") {
		t.Error("broken track cannot play")
	}
	if !s.IsRegistered("broken") {
		t.Error("broken track should stay registered")
	}
}

func TestSequencerStopAll(t *testing.T) {
	s, clock := newTestSequencer(t)
	s.Play("ambient", false)
	s.Play("other", false)
	s.Pause("other")

	s.StopAll(true)
	clock.Advance(time.Second)
	s.Update()

	for _, id := range s.Tracks() {
		if s.IsPlaying(id) || s.IsPaused(id) {
			t.Errorf("%s still active after StopAll", id)
		}
	}
}

func TestSequencerConfigFromAudio(t *testing.T) {
	cfg := config.DefaultStoryConfig()
	sc := SequencerConfigFromAudio(cfg.Audio)
	if sc.FadeDuration != cfg.Audio.FadeDuration() {
		t.Errorf("FadeDuration = %v, want %v", sc.FadeDuration, cfg.Audio.FadeDuration())
	}
	if sc.AmbientVolume != *cfg.Audio.AmbientVolume || sc.EffectVolume != *cfg.Audio.EffectVolume {
		t.Errorf("volumes = %v/%v", sc.AmbientVolume, sc.EffectVolume)
	}
	if sc.Easing == nil || sc.Easing(0.5) != 0.5 {
		t.Error("default curve should be linear")
	}
}
