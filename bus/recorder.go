package bus

import (
	"encoding/hex"
	"strings"
	"sync"
)

// Recorder keeps every latched frame in memory. It backs dry runs and
// tests.
type Recorder struct {
	mu     sync.Mutex
	frames [][]byte
	cur    []byte
	open   bool
}

func (r *Recorder) Enable() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.cur = make([]byte, 0, 24)
	r.open = true
	return nil
}

func (r *Recorder) TransmitByte(b byte) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if !r.open {
		return ErrNotEnabled
	}
	r.cur = append(r.cur, b)
	return nil
}

func (r *Recorder) Latch() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.open = false
	r.frames = append(r.frames, r.cur)
	r.cur = nil
	return nil
}

// Frames returns the latched frames, oldest first.
func (r *Recorder) Frames() [][]byte {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([][]byte, len(r.frames))
	copy(out, r.frames)
	return out
}

func (r *Recorder) Last() []byte {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.frames) == 0 {
		return nil
	}
	return r.frames[len(r.frames)-1]
}

func (r *Recorder) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.frames = nil
}

// Dump writes one hex line per frame.
func (r *Recorder) Dump() string {
	var sb strings.Builder
	for _, f := range r.Frames() {
		sb.WriteString(hex.EncodeToString(f))
		sb.WriteByte('\n')
	}
	return sb.String()
}
