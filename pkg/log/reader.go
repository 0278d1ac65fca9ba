package log

import (
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/fxamacker/cbor/v2"
)

// Filter specifies criteria for filtering trace events.
// Empty/nil fields match all events for that criterion.
type Filter struct {
	// SessionID filters by exact session ID match.
	SessionID string

	// VIF filters by virtual interface.
	VIF *int

	// Direction filters by flow direction.
	Direction *Direction

	// Layer filters by capturing layer.
	Layer *Layer

	// Category filters by event category.
	Category *Category

	// Peer filters by peer address.
	Peer string

	// TimeStart filters events at or after this time.
	TimeStart *time.Time

	// TimeEnd filters events before this time.
	TimeEnd *time.Time
}

// Matches reports whether the event matches all filter criteria.
func (f *Filter) Matches(event Event) bool {
	if f.SessionID != "" && event.SessionID != f.SessionID {
		return false
	}
	if f.VIF != nil && event.VIF != *f.VIF {
		return false
	}
	if f.Direction != nil && event.Direction != *f.Direction {
		return false
	}
	if f.Layer != nil && event.Layer != *f.Layer {
		return false
	}
	if f.Category != nil && event.Category != *f.Category {
		return false
	}
	if f.Peer != "" && event.Peer != f.Peer {
		return false
	}
	if f.TimeStart != nil && event.Timestamp.Before(*f.TimeStart) {
		return false
	}
	if f.TimeEnd != nil && !event.Timestamp.Before(*f.TimeEnd) {
		return false
	}
	return true
}

// Reader reads trace events from a CBOR-encoded file.
// It provides an iterator interface for streaming large files.
type Reader struct {
	file      *os.File
	decoder   *cbor.Decoder
	filter    Filter
	read      int
	truncated bool
}

// NewReader creates a Reader that reads all events from the specified file.
func NewReader(path string) (*Reader, error) {
	return NewFilteredReader(path, Filter{})
}

// NewFilteredReader creates a Reader that reads events matching the filter.
func NewFilteredReader(path string, filter Filter) (*Reader, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	return &Reader{
		file:    f,
		decoder: NewDecoder(f),
		filter:  filter,
	}, nil
}

// Next returns the next event that matches the filter.
// Returns io.EOF when no more events are available. A final event cut
// short (the host lost power while writing) also ends the stream; see
// Truncated.
func (r *Reader) Next() (Event, error) {
	for {
		var event Event
		if err := r.decoder.Decode(&event); err != nil {
			switch {
			case errors.Is(err, io.EOF):
				return Event{}, io.EOF
			case errors.Is(err, io.ErrUnexpectedEOF):
				r.truncated = true
				return Event{}, io.EOF
			}
			return Event{}, fmt.Errorf("event %d: %w", r.read+1, err)
		}
		r.read++

		if r.filter.Matches(event) {
			return event, nil
		}
	}
}

// Read returns the number of events decoded so far, matching or not.
func (r *Reader) Read() int {
	return r.read
}

// Truncated reports whether the stream ended inside an event.
func (r *Reader) Truncated() bool {
	return r.truncated
}

// Close closes the underlying file.
func (r *Reader) Close() error {
	return r.file.Close()
}
