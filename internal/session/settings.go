package session

// Mode selects what happens when the pass target is reached.
type Mode uint8

const (
	// FreePlay loops forever and never auto-stops.
	FreePlay Mode = iota
	// Test stops and scores after the configured number of passes.
	Test
)

// Settings is everything the tick loop reads. It is passed in
// explicitly so the matcher stays pure and testable; there is no
// ambient configuration state inside the session.
type Settings struct {
	Mode Mode

	// Match window as a percentage of one beat
	MatchWindowPct float64
	// Millisecond cap on the match window; the tighter of the two wins
	MatchCapMs float64
	// On-time band as a percentage of one beat
	OnTimePct float64
	// Millisecond cap on the on-time band
	OnTimeCapMs float64

	// Input latency compensation
	LatencyMs float64

	// Countdown length. One count per beat, timed in wall-clock
	// seconds regardless of tempo.
	PreRollBeats uint8
	// Re-enter the countdown at every loop restart
	CountdownEachLoop bool

	// Passes before a Test run stops and scores
	PassesTarget uint32

	// Follow the lesson tempo map instead of a fixed bpm
	UseLessonTempo bool
	FixedBpm       float64
}

// DefaultSettings mirrors the CLI flag defaults.
func DefaultSettings() Settings {
	return Settings{
		Mode:           Test,
		MatchWindowPct: 25,
		MatchCapMs:     75,
		OnTimePct:      8,
		OnTimeCapMs:    20,
		PreRollBeats:   4,
		PassesTarget:   1,
		FixedBpm:       120,
	}
}
