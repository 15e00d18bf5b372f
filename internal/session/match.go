package session

import (
	"math"

	"git.lost.host/meutraa/taal/internal/game"
)

// Strike is one decoded note-on from the transport collaborator.
type Strike struct {
	Piece    game.DrumPiece
	Velocity uint8
}

// beatsForMs converts a millisecond span to beats at the given tempo.
func beatsForMs(ms, bpm float64) float64 {
	return ms / 1000.0 * bpm / 60.0
}

// matchWindowBeats is the tighter of the percentage-of-beat window and
// the millisecond cap, so the effective real-time window shrinks as the
// tempo climbs past the cap threshold.
func matchWindowBeats(pct, capMs, bpm float64) float64 {
	return math.Min(pct/100.0, beatsForMs(capMs, bpm))
}

// resolveStrike classifies one live strike against the not-yet-resolved
// notation entries. It returns the resolved index, the label written,
// and the latency-compensated hit beat; index is -1 when nothing
// qualified (the strike is still captured by the caller).
//
// Selection is greedy nearest-neighbour over |expected - hit| among
// entries of the same piece whose status is still pending; it is a
// single-pass assignment and never revisits an earlier choice. Ties go
// to the lowest notation index.
func resolveStrike(
	notation []game.NotatedEvent,
	statuses []game.HitLabel,
	strike Strike,
	playheadBeat, bpm float64,
	settings Settings,
) (int, game.HitLabel, float64) {
	latencyBeats := beatsForMs(settings.LatencyMs, bpm)
	hitBeat := math.Max(0, playheadBeat-latencyBeats)

	window := matchWindowBeats(settings.MatchWindowPct, settings.MatchCapMs, bpm)

	best := -1
	bestDistance := math.Inf(1)
	for i, notated := range notation {
		if notated.Event.Piece != strike.Piece {
			continue
		}
		if statuses[i] != game.LabelNone {
			continue
		}
		d := math.Abs(notated.Event.Beat - hitBeat)
		if d < window && d < bestDistance {
			best = i
			bestDistance = d
		}
	}
	if best < 0 {
		return -1, game.LabelNone, hitBeat
	}

	delta := hitBeat - notation[best].Event.Beat
	onTime := matchWindowBeats(settings.OnTimePct, settings.OnTimeCapMs, bpm)
	label := game.LabelEarly
	if math.Abs(delta) < onTime {
		label = game.LabelOnTime
	} else if delta > 0 {
		label = game.LabelLate
	}
	return best, label, hitBeat
}
