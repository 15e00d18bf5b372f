package tempo

import (
	"fmt"
	"math"
	"sort"
	"time"
)

// ValidationError is returned when a tempo event or map is rejected at
// construction. Maps are never partially constructed.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string {
	return "validation failed: " + e.Reason
}

func validation(format string, args ...interface{}) error {
	return &ValidationError{Reason: fmt.Sprintf(format, args...)}
}

// Signature is a time signature as (numerator, denominator).
type Signature struct {
	Numerator   uint8
	Denominator uint8
}

func isPowerOfTwo(n uint8) bool {
	return n != 0 && n&(n-1) == 0
}

// Event is a tempo/time-signature change at a point in time.
type Event struct {
	// Seconds from the start of the piece.
	TimeSeconds float64
	// Beats per minute.
	Bpm       float64
	Signature Signature
}

func NewEvent(timeSeconds, bpm float64, signature Signature) (Event, error) {
	if timeSeconds < 0 {
		return Event{}, validation("tempo events cannot have negative time")
	}
	if bpm < 10 || bpm > 400 {
		return Event{}, validation("tempo bpm must be between 10 and 400, got %v", bpm)
	}
	if signature.Numerator == 0 || !isPowerOfTwo(signature.Denominator) {
		return Event{}, validation("time signature denominator must be a power of two")
	}
	return Event{TimeSeconds: timeSeconds, Bpm: bpm, Signature: signature}, nil
}

func (e Event) SecondsPerBeat() float64 {
	return 60.0 / e.Bpm
}

// Map is a piecewise-constant tempo timeline. It is immutable after
// construction; a lesson replace swaps the whole map.
type Map struct {
	events []Event
}

// New sorts events by time and validates that the earliest sits at
// exactly time 0.
func New(events []Event) (*Map, error) {
	if len(events) == 0 {
		return nil, validation("tempo map requires at least one event")
	}
	sorted := make([]Event, len(events))
	copy(sorted, events)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].TimeSeconds < sorted[j].TimeSeconds
	})
	if sorted[0].TimeSeconds != 0 {
		return nil, validation("tempo map must start at time 0")
	}
	return &Map{events: sorted}, nil
}

// Constant is a convenience for a single-event 4/4 map.
func Constant(bpm float64) (*Map, error) {
	event, err := NewEvent(0, bpm, Signature{4, 4})
	if nil != err {
		return nil, err
	}
	return &Map{events: []Event{event}}, nil
}

func (m *Map) Events() []Event {
	return m.events
}

// at returns the latest event with time <= t. Total for any t; times
// before the first event resolve to the first event.
func (m *Map) at(t float64) Event {
	current := m.events[0]
	for _, event := range m.events {
		if event.TimeSeconds <= t {
			current = event
		} else {
			break
		}
	}
	return current
}

func (m *Map) BpmAt(t float64) float64 {
	return m.at(t).Bpm
}

func (m *Map) TimeSignatureAt(t float64) Signature {
	return m.at(t).Signature
}

// BeatAtTime integrates bpm/60 over the elapsed segments up to t.
// Monotonically non-decreasing; the last tempo holds indefinitely.
func (m *Map) BeatAtTime(t float64) float64 {
	prevTime := 0.0
	beats := 0.0
	current := m.events[0]
	for _, event := range m.events[1:] {
		if event.TimeSeconds > t {
			break
		}
		beats += (event.TimeSeconds - prevTime) / current.SecondsPerBeat()
		prevTime = event.TimeSeconds
		current = event
	}
	return beats + (t-prevTime)/current.SecondsPerBeat()
}

// TimeAtBeat is the exact inverse of BeatAtTime.
func (m *Map) TimeAtBeat(beat float64) float64 {
	prevTime := 0.0
	beats := 0.0
	current := m.events[0]
	for _, event := range m.events[1:] {
		segmentBeats := (event.TimeSeconds - prevTime) / current.SecondsPerBeat()
		if beats+segmentBeats > beat {
			break
		}
		beats += segmentBeats
		prevTime = event.TimeSeconds
		current = event
	}
	return prevTime + (beat-beats)*current.SecondsPerBeat()
}

// DurationBetweenBeats accumulates in 1-beat steps, each step priced at
// the tempo active where the step starts.
func (m *Map) DurationBetweenBeats(startBeat, endBeat float64) time.Duration {
	if endBeat <= startBeat {
		return 0
	}
	t := m.TimeAtBeat(startBeat)
	seconds := 0.0
	for cursor := startBeat; cursor < endBeat; cursor += 1.0 {
		spb := 60.0 / m.BpmAt(t+seconds)
		seconds += math.Min(endBeat-cursor, 1.0) * spb
	}
	return time.Duration(seconds * float64(time.Second))
}
