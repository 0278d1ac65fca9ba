// Package radio defines the boundary to the radio firmware.
//
// Commands are fire-and-forget: the core builds a Command, submits it and
// never waits for a reply. Raw 802.11 frames go through a Transmitter.
package radio

import "sync"

// Commander submits commands to the radio.
type Commander interface {
	// Submit queues cmd for the radio. There is no reply.
	Submit(cmd Command)
}

// Transmitter sends raw 802.11 frames on a virtual interface.
type Transmitter interface {
	Transmit(vif int, frame []byte) error
}

// CommanderFunc adapts a function to the Commander interface.
type CommanderFunc func(cmd Command)

// Submit calls f(cmd).
func (f CommanderFunc) Submit(cmd Command) {
	f(cmd)
}

// Recorder is an in-memory Commander and Transmitter that keeps every
// command and frame in submission order. It is safe for concurrent use.
type Recorder struct {
	mu       sync.Mutex
	commands []Command
	frames   [][]byte
}

// NewRecorder creates an empty Recorder.
func NewRecorder() *Recorder {
	return &Recorder{}
}

// Submit records cmd.
func (r *Recorder) Submit(cmd Command) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.commands = append(r.commands, cmd)
}

// Transmit records a copy of frame.
func (r *Recorder) Transmit(vif int, frame []byte) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.frames = append(r.frames, append([]byte(nil), frame...))
	return nil
}

// Commands returns the recorded commands.
func (r *Recorder) Commands() []Command {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Command, len(r.commands))
	copy(out, r.commands)
	return out
}

// Kinds returns the kinds of the recorded commands.
func (r *Recorder) Kinds() []CommandKind {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]CommandKind, len(r.commands))
	for i, c := range r.commands {
		out[i] = c.Kind
	}
	return out
}

// Frames returns the transmitted frames.
func (r *Recorder) Frames() [][]byte {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([][]byte, len(r.frames))
	copy(out, r.frames)
	return out
}

// Reset discards everything recorded so far.
func (r *Recorder) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.commands = nil
	r.frames = nil
}

// Compile-time interface satisfaction checks.
var (
	_ Commander   = (*Recorder)(nil)
	_ Transmitter = (*Recorder)(nil)
	_ Commander   = CommanderFunc(nil)
)
