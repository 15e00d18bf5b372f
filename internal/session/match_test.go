package session

import (
	"math"
	"testing"
	"time"

	"git.lost.host/meutraa/taal/internal/game"
)

func notation(beats []float64, piece game.DrumPiece) []game.NotatedEvent {
	events := make([]game.NotatedEvent, len(beats))
	for i, beat := range beats {
		events[i] = game.NewNotatedEvent(game.NewDrumEvent(beat, piece, 96, game.Normal), 500*time.Millisecond)
	}
	return events
}

func matchSettings() Settings {
	s := DefaultSettings()
	s.FixedBpm = 120
	return s
}

func TestMatchWindowHybrid(t *testing.T) {
	// 25% of a beat vs 75ms cap: the cap converts to 0.15 beats at
	// 120 bpm, 0.075 at 60 bpm. The tighter one always wins.
	if w := matchWindowBeats(25, 75, 120); math.Abs(w-0.15) > 1e-12 {
		t.Error("window at 120 bpm =", w)
	}
	if w := matchWindowBeats(25, 75, 60); math.Abs(w-0.075) > 1e-12 {
		t.Error("window at 60 bpm =", w)
	}
	if w := matchWindowBeats(10, 10000, 120); math.Abs(w-0.1) > 1e-12 {
		t.Error("uncapped window =", w)
	}
}

func TestResolveNearestNeighbour(t *testing.T) {
	events := notation([]float64{1.0, 1.2}, game.Snare)
	statuses := make([]game.HitLabel, len(events))
	index, _, _ := resolveStrike(events, statuses, Strike{Piece: game.Snare, Velocity: 96}, 1.15, 120, matchSettings())
	if index != 1 {
		t.Error("expected nearest event at beat 1.2, resolved index", index)
	}
}

func TestResolveEquidistantTieBreak(t *testing.T) {
	// A strike equidistant from two candidates resolves the lowest
	// notation index, consistently across runs.
	events := notation([]float64{1.0, 1.2}, game.Snare)
	for run := 0; run < 10; run++ {
		statuses := make([]game.HitLabel, len(events))
		index, _, _ := resolveStrike(events, statuses, Strike{Piece: game.Snare, Velocity: 96}, 1.1, 120, matchSettings())
		if index != 0 {
			t.Fatal("tie break resolved index", index)
		}
	}
}

func TestResolveSkipsResolvedEntries(t *testing.T) {
	events := notation([]float64{1.0, 1.2}, game.Snare)
	statuses := []game.HitLabel{game.LabelOnTime, game.LabelNone}
	index, _, _ := resolveStrike(events, statuses, Strike{Piece: game.Snare, Velocity: 96}, 1.0, 120, matchSettings())
	if index != 1 {
		t.Error("resolved entry must not be matched again, got index", index)
	}
}

func TestResolveWrongPieceOrOutOfWindow(t *testing.T) {
	events := notation([]float64{1.0}, game.Snare)
	statuses := make([]game.HitLabel, 1)

	if index, _, _ := resolveStrike(events, statuses, Strike{Piece: game.Bass, Velocity: 96}, 1.0, 120, matchSettings()); index != -1 {
		t.Error("wrong piece matched index", index)
	}
	if index, _, _ := resolveStrike(events, statuses, Strike{Piece: game.Snare, Velocity: 96}, 2.0, 120, matchSettings()); index != -1 {
		t.Error("out-of-window strike matched index", index)
	}
}

func TestResolveLabels(t *testing.T) {
	// On-time band at 120 bpm: min(0.08, 0.04) = 0.04 beats.
	settings := matchSettings()

	cases := map[float64]game.HitLabel{
		1.0:  game.LabelOnTime,
		1.03: game.LabelOnTime,
		1.08: game.LabelLate,
		0.92: game.LabelEarly,
	}
	for playhead, expected := range cases {
		events := notation([]float64{1.0}, game.Snare)
		statuses := make([]game.HitLabel, 1)
		index, label, _ := resolveStrike(events, statuses, Strike{Piece: game.Snare, Velocity: 96}, playhead, 120, settings)
		if index != 0 || label != expected {
			t.Log("playhead", playhead, "index", index, "label", label, "expected", expected)
			t.Fail()
		}
	}
}

func TestResolveLatencyCompensation(t *testing.T) {
	settings := matchSettings()
	settings.LatencyMs = 50 // 0.1 beats at 120 bpm

	events := notation([]float64{1.0}, game.Snare)
	statuses := make([]game.HitLabel, 1)
	index, label, hitBeat := resolveStrike(events, statuses, Strike{Piece: game.Snare, Velocity: 96}, 1.1, 120, settings)
	if index != 0 || label != game.LabelOnTime {
		t.Error("latency-shifted strike index", index, "label", label)
	}
	if math.Abs(hitBeat-1.0) > 1e-9 {
		t.Error("hit beat =", hitBeat)
	}

	// The compensated beat never goes negative
	_, _, clamped := resolveStrike(events, statuses, Strike{Piece: game.Snare, Velocity: 96}, 0.01, 120, settings)
	if clamped != 0 {
		t.Error("clamped hit beat =", clamped)
	}
}

// Chart with one snare at beat 0, strike landing 0.02 beats in: the
// on-time band (0.04 beats at 120 bpm) covers it.
func TestEndToEndSingleStrike(t *testing.T) {
	events := []game.NotatedEvent{
		game.NewNotatedEvent(game.NewDrumEvent(0.0, game.Snare, 96, game.Normal), 500*time.Millisecond),
	}
	statuses := make([]game.HitLabel, 1)
	index, label, _ := resolveStrike(events, statuses, Strike{Piece: game.Snare, Velocity: 96}, 0.02, 120, matchSettings())
	if index != 0 || label != game.LabelOnTime {
		t.Error("index", index, "label", label)
	}
}
