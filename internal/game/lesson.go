package game

import (
	"time"

	"git.lost.host/meutraa/taal/internal/tempo"
)

// PracticeStatistics accumulates across runs of a lesson.
type PracticeStatistics struct {
	AverageAccuracy float64
	HighestStreak   uint32
	LastPracticed   time.Time
}

// Lesson is a chart: a tempo map plus the notated strikes it expects.
// Notation is NOT guaranteed sorted by beat; consumers must not assume
// order.
type Lesson struct {
	ID         string
	Title      string
	Difficulty uint8
	Tempo      *tempo.Map
	Notation   []NotatedEvent
	Stats      PracticeStatistics
}

func NewLesson(id, title string, difficulty uint8, tempoMap *tempo.Map, notation []NotatedEvent) *Lesson {
	return &Lesson{
		ID:         id,
		Title:      title,
		Difficulty: difficulty,
		Tempo:      tempoMap,
		Notation:   notation,
	}
}

// MaxBeat scans the whole notation; 0 for an empty lesson.
func (l *Lesson) MaxBeat() float64 {
	max := 0.0
	for _, notated := range l.Notation {
		if notated.Event.Beat > max {
			max = notated.Event.Beat
		}
	}
	return max
}
