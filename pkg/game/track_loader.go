package game

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/hajimehoshi/ebiten/v2/audio"
	"github.com/hajimehoshi/ebiten/v2/audio/mp3"
	"github.com/hajimehoshi/ebiten/v2/audio/vorbis"
	"github.com/hajimehoshi/ebiten/v2/audio/wav"

	auaudio "github.com/decker502/giftrooms/internal/audio"
	"github.com/decker502/giftrooms/pkg/embedded"
)

var _ TrackPlayer = (*audio.Player)(nil)

// EbitenTrackLoader 使用 ebiten 音频上下文加载音轨
//
// 支持的格式：MP3 (.mp3)、OGG Vorbis (.ogg)、WAV (.wav)、Sun AU (.au)。
// 文件整体读入内存，播放器可以自由 Seek 而无需保持文件句柄。
type EbitenTrackLoader struct {
	audioContext *audio.Context
	readFile     func(path string) ([]byte, error)
}

// NewEbitenTrackLoader 创建加载器
//
// 参数：
//   - audioContext: ebiten 音频上下文
//
// 返回：
//   - *EbitenTrackLoader: 加载器实例，已初始化 embedded 包时优先读取嵌入资源
func NewEbitenTrackLoader(audioContext *audio.Context) *EbitenTrackLoader {
	return &EbitenTrackLoader{
		audioContext: audioContext,
		readFile:     readTrackFile,
	}
}

// readTrackFile 优先从嵌入资源读取，失败时回退到文件系统
func readTrackFile(path string) ([]byte, error) {
	if embedded.IsInitialized() {
		if data, err := embedded.ReadFile(path); err == nil {
			return data, nil
		}
	}
	return os.ReadFile(path)
}

// Load 解码音频文件并创建播放器
//
// 参数：
//   - source: 文件路径
//   - loop: 为 true 时包装为无限循环流
//
// 返回：
//   - TrackPlayer: 未开始播放的 *audio.Player
//   - error: 读取、解码失败或格式不支持
func (l *EbitenTrackLoader) Load(source string, loop bool) (TrackPlayer, error) {
	data, err := l.readFile(source)
	if err != nil {
		return nil, fmt.Errorf("failed to read audio file %s: %w", source, err)
	}

	stream, length, err := l.decode(source, bytes.NewReader(data))
	if err != nil {
		return nil, err
	}

	var src io.Reader = stream
	if loop {
		src = audio.NewInfiniteLoop(stream, length)
	}

	player, err := l.audioContext.NewPlayer(src)
	if err != nil {
		return nil, fmt.Errorf("failed to create audio player for %s: %w", source, err)
	}
	return player, nil
}

// decode 按扩展名解码为上下文采样率的立体声流
func (l *EbitenTrackLoader) decode(source string, reader *bytes.Reader) (io.ReadSeeker, int64, error) {
	sampleRate := l.audioContext.SampleRate()
	ext := strings.ToLower(filepath.Ext(source))

	switch ext {
	case ".mp3":
		s, err := mp3.DecodeWithSampleRate(sampleRate, reader)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to decode MP3 audio %s: %w", source, err)
		}
		return s, s.Length(), nil
	case ".ogg":
		s, err := vorbis.DecodeWithSampleRate(sampleRate, reader)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to decode OGG audio %s: %w", source, err)
		}
		return s, s.Length(), nil
	case ".wav":
		s, err := wav.DecodeWithSampleRate(sampleRate, reader)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to decode WAV audio %s: %w", source, err)
		}
		return s, s.Length(), nil
	case ".au":
		s, err := auaudio.DecodeAU(reader)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to decode AU audio %s: %w", source, err)
		}
		from := int(s.SampleRate())
		if from == sampleRate {
			return s, s.Length(), nil
		}
		length := s.Length() * int64(sampleRate) / int64(from)
		length -= length % auaudio.BytesPerFrame
		return audio.Resample(s, s.Length(), from, sampleRate), length, nil
	default:
		return nil, 0, fmt.Errorf("unsupported audio format: %s (supported: .mp3, .ogg, .wav, .au)", ext)
	}
}

// SilentTrackLoader 不发声的加载器
// 用于测试和无音频设备的命令行工具；播放位置按时钟推进
type SilentTrackLoader struct {
	Now func() time.Time

	// Missing 中的 source 加载时返回错误
	Missing map[string]bool
}

// Load 返回一个静音播放器
func (l *SilentTrackLoader) Load(source string, loop bool) (TrackPlayer, error) {
	if l.Missing[source] {
		return nil, fmt.Errorf("audio file %s not found", source)
	}
	now := l.Now
	if now == nil {
		now = time.Now
	}
	return &SilentPlayer{now: now, volume: 1}, nil
}

// SilentPlayer 实现 TrackPlayer，只记录状态
type SilentPlayer struct {
	now       func() time.Time
	playing   bool
	volume    float64
	offset    time.Duration // 最近一次暂停时累计的位置
	startedAt time.Time
}

// Play 开始或继续计时
func (p *SilentPlayer) Play() {
	if p.playing {
		return
	}
	p.playing = true
	p.startedAt = p.now()
}

// Pause 停止计时并保留位置
func (p *SilentPlayer) Pause() {
	if !p.playing {
		return
	}
	p.offset += p.now().Sub(p.startedAt)
	p.playing = false
}

func (p *SilentPlayer) IsPlaying() bool { return p.playing }

// Rewind 回到开头
func (p *SilentPlayer) Rewind() error {
	p.offset = 0
	p.startedAt = p.now()
	return nil
}

func (p *SilentPlayer) SetVolume(volume float64) { p.volume = volume }

func (p *SilentPlayer) Volume() float64 { return p.volume }

// Position 返回当前播放位置
func (p *SilentPlayer) Position() time.Duration {
	if !p.playing {
		return p.offset
	}
	return p.offset + p.now().Sub(p.startedAt)
}
