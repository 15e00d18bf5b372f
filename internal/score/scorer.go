package score

import (
	"git.lost.host/meutraa/taal/internal/game"
)

// Report is the end-of-run summary produced by the batch engine.
type Report struct {
	Accuracy  float64
	EarlyHits int
	LateHits  int
}

// History is one previously saved run of a lesson.
type History struct {
	Sum      string
	Bpm      float64
	Accuracy float64
	Hits     []game.DrumEvent
}

// Store persists run history and rolled-up practice statistics.
type Store interface {
	Init() error
	Deinit()

	// Save the captured hit log and report for one run
	Save(lesson *game.Lesson, hits []game.DrumEvent, bpm float64, report Report)

	// Load previous runs of this lesson
	Load(lesson *game.Lesson) []History

	SaveStats(lesson *game.Lesson)
	LoadStats(lesson *game.Lesson)
}
