// Package input turns a raw terminal byte stream into per-tick input snapshots.
package input

import (
	"bufio"
	"sync"
	"time"
)

// keyHoldDuration is how long a movement or fire key is considered "held"
// after its last press. Terminals only report repeats, never releases.
const keyHoldDuration = 60 * time.Millisecond

// escapeTimeout is how long a trailing ESC or ESC [ waits for the rest of
// an arrow key sequence before ESC is taken as a key of its own.
const escapeTimeout = 50 * time.Millisecond

// Snapshot is the input state for one tick.
type Snapshot struct {
	Direction        int  // -1 left, 0 none, 1 right
	Fire             bool // Fire held
	ToggleFullscreen bool // Pressed since the previous poll
	Quit             bool // Pressed since the previous poll
	ToggleInvincible bool // Pressed since the previous poll
}

// keyState tracks the last time each held key was pressed.
type keyState struct {
	left  time.Time
	right time.Time
	fire  time.Time
}

// edges collects keys pressed since the previous poll.
type edges struct {
	fullscreen bool
	quit       bool
	invincible bool
}

// Stream delivers input bytes via a channel and tracks held keys.
type Stream struct {
	ch     chan byte
	done   chan struct{}
	once   sync.Once
	closed bool
	state  keyState
	now    func() time.Time

	// pending holds an escape prefix that may continue in the next poll.
	pending   []byte
	pendingAt time.Time
}

func newStream() *Stream {
	return &Stream{
		ch:   make(chan byte, 128),
		done: make(chan struct{}),
		now:  time.Now,
	}
}

// StartStream spawns a goroutine that reads from r and sends bytes to the
// stream until r fails or Close is called.
func StartStream(r *bufio.Reader) *Stream {
	s := newStream()
	go func() {
		defer close(s.ch)
		for {
			b, err := r.ReadByte()
			if err != nil {
				return
			}
			select {
			case s.ch <- b:
			case <-s.done:
				return
			}
		}
	}()
	return s
}

// Close stops delivering bytes. The reader goroutine exits with its next
// byte, or at once if it is blocked on a full buffer.
func (s *Stream) Close() {
	s.once.Do(func() { close(s.done) })
}

// Poll drains all available bytes (non-blocking) and returns the snapshot
// for the current tick. A closed input (EOF) reads as a quit request.
func (s *Stream) Poll() Snapshot {
	var fresh []byte

drain:
	for {
		select {
		case b, ok := <-s.ch:
			if !ok {
				s.closed = true
				break drain
			}
			fresh = append(fresh, b)
		default:
			break drain
		}
	}

	now := s.now()
	buf := append(s.pending, fresh...)
	s.pending = nil

	// Hold back an escape prefix until it completes or times out.
	if n := escapePrefix(buf); n > 0 && !s.closed {
		if len(fresh) > 0 {
			s.pendingAt = now
		}
		if now.Sub(s.pendingAt) < escapeTimeout {
			s.pending = append([]byte(nil), buf[len(buf)-n:]...)
			buf = buf[:len(buf)-n]
		}
	}

	snap := parse(&s.state, buf, now)
	if s.closed {
		snap.Quit = true
	}
	return snap
}

// escapePrefix returns the length of a trailing ESC or ESC [ in buf.
func escapePrefix(buf []byte) int {
	n := len(buf)
	switch {
	case n >= 1 && buf[n-1] == '\x1b':
		return 1
	case n >= 2 && buf[n-2] == '\x1b' && buf[n-1] == '[':
		return 2
	}
	return 0
}

// parse updates key state from buf and builds the snapshot at time now.
func parse(state *keyState, buf []byte, now time.Time) Snapshot {
	var e edges

	for i := 0; i < len(buf); i++ {
		b := buf[i]

		// CSI sequence: ESC [ <code>
		if b == '\x1b' && i+2 < len(buf) && buf[i+1] == '[' {
			switch buf[i+2] {
			case 'C': // Right arrow
				state.right = now
				i += 2
				continue
			case 'D': // Left arrow
				state.left = now
				i += 2
				continue
			case 'A', 'B': // Up/down arrows are unused
				i += 2
				continue
			}
		}

		applyByte(state, &e, b, now)
	}

	snap := Snapshot{
		Fire:             now.Sub(state.fire) < keyHoldDuration,
		ToggleFullscreen: e.fullscreen,
		Quit:             e.quit,
		ToggleInvincible: e.invincible,
	}

	left := now.Sub(state.left) < keyHoldDuration
	right := now.Sub(state.right) < keyHoldDuration
	switch {
	case right && !left:
		snap.Direction = 1
	case left && !right:
		snap.Direction = -1
	}

	return snap
}

// applyByte updates held keys and edges for a single pressed byte.
func applyByte(state *keyState, e *edges, b byte, now time.Time) {
	switch b {
	case 'q', 'Q', '\x1b', '\x03':
		e.quit = true
	case 'a', 'A', 'j', 'J':
		state.left = now
	case 'd', 'D', 'l', 'L':
		state.right = now
	case ' ':
		state.fire = now
	case 'f', 'F':
		e.fullscreen = true
	case 'm', 'M':
		e.invincible = true
	}
}
