package audio

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
	"time"
)

// AUDecoder decodes Sun/NeXT audio (.au) files into the stream format
// Ebitengine players consume: interleaved 16-bit little-endian stereo.
// μ-law and 16-bit linear PCM encodings are supported; mono input is
// duplicated onto both channels.
type AUDecoder struct {
	data           []byte // Decoded stereo PCM data
	sampleRate     int64  // Sample rate in Hz
	sourceChannels int    // Channel count declared in the file header
	offset         int64  // Current read position
}

// AU file header structure (24 bytes minimum)
type auHeader struct {
	Magic      uint32 // 0x2e736e64 (".snd")
	DataOffset uint32 // Offset to audio data (typically 24)
	DataSize   uint32 // Size of audio data in bytes (0xFFFFFFFF if unknown)
	Encoding   uint32 // Audio encoding format
	SampleRate uint32 // Sample rate in Hz
	Channels   uint32 // Number of interleaved channels
}

const (
	auMagic         = 0x2e736e64 // ".snd" in big-endian
	auEncodingULaw  = 1          // 8-bit μ-law
	auEncodingPCM16 = 3          // 16-bit big-endian linear PCM
	auUnknownSize   = 0xFFFFFFFF

	// BytesPerFrame is the size of one decoded stereo frame.
	BytesPerFrame = 4
)

// μ-law decompression table (converts μ-law byte to 16-bit PCM)
var mulawTable = [256]int16{
	-32124, -31100, -30076, -29052, -28028, -27004, -25980, -24956,
	-23932, -22908, -21884, -20860, -19836, -18812, -17788, -16764,
	-15996, -15484, -14972, -14460, -13948, -13436, -12924, -12412,
	-11900, -11388, -10876, -10364, -9852, -9340, -8828, -8316,
	-7932, -7676, -7420, -7164, -6908, -6652, -6396, -6140,
	-5884, -5628, -5372, -5116, -4860, -4604, -4348, -4092,
	-3900, -3772, -3644, -3516, -3388, -3260, -3132, -3004,
	-2876, -2748, -2620, -2492, -2364, -2236, -2108, -1980,
	-1884, -1820, -1756, -1692, -1628, -1564, -1500, -1436,
	-1372, -1308, -1244, -1180, -1116, -1052, -988, -924,
	-876, -844, -812, -780, -748, -716, -684, -652,
	-620, -588, -556, -524, -492, -460, -428, -396,
	-372, -356, -340, -324, -308, -292, -276, -260,
	-244, -228, -212, -196, -180, -164, -148, -132,
	-120, -112, -104, -96, -88, -80, -72, -64,
	-56, -48, -40, -32, -24, -16, -8, 0,
	32124, 31100, 30076, 29052, 28028, 27004, 25980, 24956,
	23932, 22908, 21884, 20860, 19836, 18812, 17788, 16764,
	15996, 15484, 14972, 14460, 13948, 13436, 12924, 12412,
	11900, 11388, 10876, 10364, 9852, 9340, 8828, 8316,
	7932, 7676, 7420, 7164, 6908, 6652, 6396, 6140,
	5884, 5628, 5372, 5116, 4860, 4604, 4348, 4092,
	3900, 3772, 3644, 3516, 3388, 3260, 3132, 3004,
	2876, 2748, 2620, 2492, 2364, 2236, 2108, 1980,
	1884, 1820, 1756, 1692, 1628, 1564, 1500, 1436,
	1372, 1308, 1244, 1180, 1116, 1052, 988, 924,
	876, 844, 812, 780, 748, 716, 684, 652,
	620, 588, 556, 524, 492, 460, 428, 396,
	372, 356, 340, 324, 308, 292, 276, 260,
	244, 228, 212, 196, 180, 164, 148, 132,
	120, 112, 104, 96, 88, 80, 72, 64,
	56, 48, 40, 32, 24, 16, 8, 0,
}

// DecodeAU decodes a Sun/NeXT audio file (.au) from the given reader.
//
// Parameters:
//   - r: Reader containing AU file data
//
// Returns:
//   - *AUDecoder: Decoded stereo stream
//   - error: Error if the header is malformed or the encoding is unsupported
func DecodeAU(r io.Reader) (*AUDecoder, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read AU file: %w", err)
	}

	if len(data) < 24 {
		return nil, fmt.Errorf("AU file too short: %d bytes (minimum 24)", len(data))
	}

	var header auHeader
	if err := binary.Read(bytes.NewReader(data), binary.BigEndian, &header); err != nil {
		return nil, fmt.Errorf("failed to read AU header: %w", err)
	}

	if header.Magic != auMagic {
		return nil, fmt.Errorf("invalid AU magic number: 0x%08x (expected 0x%08x)", header.Magic, auMagic)
	}
	if header.Channels < 1 || header.Channels > 2 {
		return nil, fmt.Errorf("unsupported channel count: %d (only 1-2 supported)", header.Channels)
	}
	if header.SampleRate == 0 {
		return nil, fmt.Errorf("invalid sample rate: 0")
	}

	dataOffset := int(header.DataOffset)
	if dataOffset < 24 || dataOffset > len(data) {
		return nil, fmt.Errorf("invalid data offset: %d (file size: %d)", dataOffset, len(data))
	}
	body := data[dataOffset:]
	if header.DataSize != auUnknownSize && int(header.DataSize) < len(body) {
		body = body[:header.DataSize]
	}

	var samples []int16
	switch header.Encoding {
	case auEncodingULaw:
		samples = make([]int16, len(body))
		for i, b := range body {
			samples[i] = mulawTable[b]
		}
	case auEncodingPCM16:
		samples = make([]int16, len(body)/2)
		for i := range samples {
			samples[i] = int16(binary.BigEndian.Uint16(body[i*2:]))
		}
	default:
		return nil, fmt.Errorf("unsupported AU encoding: %d (supported: μ-law [1], PCM16 [3])", header.Encoding)
	}

	channels := int(header.Channels)
	return &AUDecoder{
		data:           toStereo(samples, channels),
		sampleRate:     int64(header.SampleRate),
		sourceChannels: channels,
	}, nil
}

// toStereo interleaves samples as 16-bit little-endian stereo frames.
// A trailing partial frame of stereo input is dropped.
func toStereo(samples []int16, channels int) []byte {
	frames := len(samples) / channels
	out := make([]byte, frames*BytesPerFrame)
	for f := 0; f < frames; f++ {
		left := samples[f*channels]
		right := left
		if channels == 2 {
			right = samples[f*channels+1]
		}
		binary.LittleEndian.PutUint16(out[f*BytesPerFrame:], uint16(left))
		binary.LittleEndian.PutUint16(out[f*BytesPerFrame+2:], uint16(right))
	}
	return out
}

// Read reads decoded PCM data into p.
func (d *AUDecoder) Read(p []byte) (n int, err error) {
	if d.offset >= int64(len(d.data)) {
		return 0, io.EOF
	}

	n = copy(p, d.data[d.offset:])
	d.offset += int64(n)
	return n, nil
}

// Seek sets the offset for the next Read.
func (d *AUDecoder) Seek(offset int64, whence int) (int64, error) {
	var newOffset int64

	switch whence {
	case io.SeekStart:
		newOffset = offset
	case io.SeekCurrent:
		newOffset = d.offset + offset
	case io.SeekEnd:
		newOffset = int64(len(d.data)) + offset
	default:
		return 0, fmt.Errorf("invalid whence: %d", whence)
	}

	if newOffset < 0 {
		return 0, fmt.Errorf("negative position: %d", newOffset)
	}

	d.offset = newOffset
	return newOffset, nil
}

// Length returns the size of the decoded stereo stream in bytes.
func (d *AUDecoder) Length() int64 {
	return int64(len(d.data))
}

// SampleRate returns the sample rate of the audio in Hz.
func (d *AUDecoder) SampleRate() int64 {
	return d.sampleRate
}

// SourceChannels returns the channel count declared by the file (1=mono, 2=stereo).
// The decoded stream is always stereo.
func (d *AUDecoder) SourceChannels() int {
	return d.sourceChannels
}

// Duration returns the playback length of the decoded stream.
func (d *AUDecoder) Duration() time.Duration {
	frames := d.Length() / BytesPerFrame
	return time.Duration(frames) * time.Second / time.Duration(d.sampleRate)
}
