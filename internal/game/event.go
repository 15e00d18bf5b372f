package game

import (
	"time"
)

// DrumEvent is a single strike, expected or performed.
type DrumEvent struct {
	// Beat position, one quarter note = 1.0
	Beat         float64
	Piece        DrumPiece
	Articulation DrumArticulation
	Dynamic      DrumDynamic
	Velocity     uint8
	// Offset from the quantized grid in milliseconds
	TimingOffsetMs float32
}

// NewDrumEvent derives the dynamic band from the velocity.
func NewDrumEvent(beat float64, piece DrumPiece, velocity uint8, articulation DrumArticulation) DrumEvent {
	return DrumEvent{
		Beat:         beat,
		Piece:        piece,
		Articulation: articulation,
		Dynamic:      DynamicFromVelocity(velocity),
		Velocity:     velocity,
	}
}

// Tuplet marks an event as part of an n:m grouping.
type Tuplet struct {
	Numerator   uint8
	Denominator uint8
}

// NotatedEvent is a DrumEvent with its written duration.
type NotatedEvent struct {
	Event    DrumEvent
	Duration time.Duration
	Tuplet   *Tuplet
}

func NewNotatedEvent(event DrumEvent, duration time.Duration) NotatedEvent {
	return NotatedEvent{Event: event, Duration: duration}
}
