package score

import (
	"math"

	"git.lost.host/meutraa/taal/internal/game"
)

// Batch tolerance for a pair to count as matched, in milliseconds.
const batchWindowMs = 50.0

// Fallback tolerance in beats when no seconds-per-beat is supplied.
const batchWindowBeats = 0.25

// Engine compares a captured hit log against a lesson after the run has
// ended. It is positional: the i-th expected event is paired with the
// i-th captured hit. It is deliberately a different algorithm from the
// live matcher; unifying the two would change reported accuracy.
type Engine struct{}

// ScoreWithSecondsPerBeat pairs notation and hits index by index and
// counts a pair as matched when the beat delta converts to under 50ms
// at the given tempo.
func (Engine) ScoreWithSecondsPerBeat(lesson *game.Lesson, hits []game.DrumEvent, secondsPerBeat float64) Report {
	if len(lesson.Notation) == 0 {
		return Report{}
	}
	matched, early, late := 0, 0, 0
	for i, expected := range lesson.Notation {
		if i >= len(hits) {
			break
		}
		deltaBeats := hits[i].Beat - expected.Event.Beat
		deltaMs := math.Abs(deltaBeats * secondsPerBeat * 1000.0)
		if deltaMs < batchWindowMs {
			matched++
			if deltaBeats < 0 {
				early++
			} else if deltaBeats > 0 {
				late++
			}
		}
	}
	return Report{
		Accuracy:  float64(matched) / float64(len(lesson.Notation)),
		EarlyHits: early,
		LateHits:  late,
	}
}

// Score is the tempo-free variant with a fixed quarter-beat window.
func (Engine) Score(lesson *game.Lesson, hits []game.DrumEvent) Report {
	if len(lesson.Notation) == 0 {
		return Report{}
	}
	matched, early, late := 0, 0, 0
	for i, expected := range lesson.Notation {
		if i >= len(hits) {
			break
		}
		delta := hits[i].Beat - expected.Event.Beat
		if math.Abs(delta) < batchWindowBeats {
			matched++
			if delta < 0 {
				early++
			} else if delta > 0 {
				late++
			}
		}
	}
	return Report{
		Accuracy:  float64(matched) / float64(len(lesson.Notation)),
		EarlyHits: early,
		LateHits:  late,
	}
}
