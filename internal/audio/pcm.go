package audio

import (
	"encoding/binary"
	"io"
	"math"

	"github.com/gopxl/beep"
)

// PCMReader exposes a beep.Streamer as interleaved little-endian float32
// stereo PCM, the format Ebiten's NewPlayerF32 expects.
type PCMReader struct {
	stream beep.Streamer
	buf    [][2]float64
}

// NewPCMReader wraps s.
func NewPCMReader(s beep.Streamer) *PCMReader {
	return &PCMReader{stream: s}
}

// NewThemeReader returns the theme as PCM at SampleRate with the configured
// volume applied.
func NewThemeReader(t Theme, tempo int, volume float64) *PCMReader {
	return NewPCMReader(WithVolume(NewThemeStreamer(t, SampleRate, tempo), volume))
}

const bytesPerFrame = 8 // Two float32 channels

// Read implements io.Reader. It always returns whole frames.
func (r *PCMReader) Read(p []byte) (int, error) {
	frames := len(p) / bytesPerFrame
	if frames == 0 {
		return 0, nil
	}
	if cap(r.buf) < frames {
		r.buf = make([][2]float64, frames)
	}
	buf := r.buf[:frames]

	n, ok := r.stream.Stream(buf)
	if !ok && n == 0 {
		if err := r.stream.Err(); err != nil {
			return 0, err
		}
		return 0, io.EOF
	}

	for i := 0; i < n; i++ {
		off := i * bytesPerFrame
		binary.LittleEndian.PutUint32(p[off:], math.Float32bits(float32(buf[i][0])))
		binary.LittleEndian.PutUint32(p[off+4:], math.Float32bits(float32(buf[i][1])))
	}
	return n * bytesPerFrame, nil
}
