package session

import (
	"log"
	"math"

	"git.lost.host/meutraa/taal/internal/game"
	"git.lost.host/meutraa/taal/internal/score"
)

type State uint8

const (
	StateIdle State = iota
	StatePreRoll
	StatePlaying
	StateStopped
)

func (s State) String() string {
	switch s {
	case StatePreRoll:
		return "pre-roll"
	case StatePlaying:
		return "playing"
	case StateStopped:
		return "stopped"
	default:
		return "idle"
	}
}

type LoopKind uint8

const (
	LoopNone LoopKind = iota
	LoopWholeChart
	LoopExplicit
)

// LoopRegion selects what one pass traverses. None and WholeChart both
// end at the last notated beat; Explicit ends at End.
type LoopRegion struct {
	Kind  LoopKind
	Start float64
	End   float64
}

// Metronome receives a click per beat boundary. A nil metronome is
// silent.
type Metronome interface {
	Click(accent bool)
}

// PieceCounts breaks a review down per kit piece.
type PieceCounts struct {
	OnTime int
	Early  int
	Late   int
	Missed int
}

// Review is the end-of-run summary.
type Review struct {
	Report score.Report
	Passes uint32
	Pieces map[game.DrumPiece]PieceCounts
}

const strikeQueueDepth = 128

// Session owns the playhead, the loop machinery and the per-event
// status table. Everything mutates on the single tick goroutine; the
// only concurrent entry point is FeedStrike, which goes through a
// buffered queue drained non-blockingly each tick.
type Session struct {
	lesson   *game.Lesson
	settings Settings

	metronome Metronome
	engine    score.Engine

	state State
	loop  LoopRegion

	playheadBeat   float64
	elapsedSeconds float64

	passesCompleted  uint32
	preRollRemaining float64
	nextClickBeat    float64

	statuses []game.HitLabel
	captured []game.DrumEvent

	strikes chan Strike

	review *Review
}

func New(lesson *game.Lesson, settings Settings) *Session {
	return &Session{
		lesson:   lesson,
		settings: settings,
		statuses: make([]game.HitLabel, len(lesson.Notation)),
		captured: []game.DrumEvent{},
		strikes:  make(chan Strike, strikeQueueDepth),
	}
}

func (s *Session) SetMetronome(m Metronome) {
	s.metronome = m
}

func (s *Session) SetSettings(settings Settings) {
	s.settings = settings
}

// SetLoopRegion re-clamps an inverted explicit region by swapping its
// ends.
func (s *Session) SetLoopRegion(region LoopRegion) {
	if region.Kind == LoopExplicit && region.End < region.Start {
		region.Start, region.End = region.End, region.Start
	}
	s.loop = region
}

func (s *Session) LoopRegion() LoopRegion {
	return s.loop
}

// Start begins a fresh run: playhead at the loop start, pass counter
// zeroed, statuses and captured hits cleared, pre-roll countdown armed.
func (s *Session) Start() {
	s.rewind()
	s.passesCompleted = 0
	s.clearStatuses()
	s.captured = s.captured[:0]
	s.review = nil
	s.enterPreRoll()
}

// Stop is an immediate transition; the run is scored as it stands.
func (s *Session) Stop() {
	if s.state != StatePreRoll && s.state != StatePlaying {
		return
	}
	s.finish()
}

// Reset rewinds the playhead but keeps the status table.
func (s *Session) Reset() {
	s.rewind()
	s.nextClickBeat = math.Ceil(s.playheadBeat)
}

// Retry rewinds and forgets the run so far. After a stopped run it
// re-arms the countdown.
func (s *Session) Retry() {
	s.rewind()
	s.passesCompleted = 0
	s.clearStatuses()
	s.captured = s.captured[:0]
	s.review = nil
	if s.state == StateStopped || s.state == StateIdle {
		s.enterPreRoll()
	} else {
		s.nextClickBeat = math.Ceil(s.playheadBeat)
	}
}

// FeedStrike never blocks; it is safe to call from the transport
// callback. A full queue drops the strike.
func (s *Session) FeedStrike(strike Strike) {
	select {
	case s.strikes <- strike:
	default:
		log.Println("strike queue full, dropping strike", strike.Piece)
	}
}

// Tick advances the session by one wall-clock delta in seconds.
func (s *Session) Tick(dt float64) {
	switch s.state {
	case StatePreRoll:
		s.tickPreRoll(dt)
	case StatePlaying:
		s.tickPlaying(dt)
	default:
		// Strikes arriving outside a run must not leak into the next one
		s.discardStrikes()
	}
}

// Snapshot accessors for the display layer.

func (s *Session) State() State            { return s.state }
func (s *Session) PlayheadBeat() float64   { return s.playheadBeat }
func (s *Session) ElapsedSeconds() float64 { return s.elapsedSeconds }
func (s *Session) PassesCompleted() uint32 { return s.passesCompleted }
func (s *Session) Lesson() *game.Lesson    { return s.lesson }

func (s *Session) PreRollRemaining() float64 {
	if s.state != StatePreRoll {
		return 0
	}
	return s.preRollRemaining
}

func (s *Session) Statuses() []game.HitLabel {
	snapshot := make([]game.HitLabel, len(s.statuses))
	copy(snapshot, s.statuses)
	return snapshot
}

func (s *Session) CapturedHits() []game.DrumEvent {
	snapshot := make([]game.DrumEvent, len(s.captured))
	copy(snapshot, s.captured)
	return snapshot
}

// Review is non-nil once the session has stopped.
func (s *Session) Review() *Review {
	return s.review
}

// internal

func (s *Session) loopStart() float64 {
	if s.loop.Kind == LoopExplicit {
		return s.loop.Start
	}
	return 0
}

func (s *Session) loopEnd() float64 {
	if s.loop.Kind == LoopExplicit {
		return s.loop.End
	}
	return s.lesson.MaxBeat()
}

func (s *Session) bpmNow() float64 {
	if s.settings.UseLessonTempo {
		return s.lesson.Tempo.BpmAt(s.elapsedSeconds)
	}
	return s.settings.FixedBpm
}

func (s *Session) rewind() {
	s.playheadBeat = s.loopStart()
	if s.settings.UseLessonTempo {
		s.elapsedSeconds = s.lesson.Tempo.TimeAtBeat(s.playheadBeat)
	} else {
		s.elapsedSeconds = s.playheadBeat * 60.0 / s.settings.FixedBpm
	}
}

func (s *Session) clearStatuses() {
	for i := range s.statuses {
		s.statuses[i] = game.LabelNone
	}
}

func (s *Session) enterPreRoll() {
	if s.settings.PreRollBeats == 0 {
		s.beginPlaying()
		return
	}
	s.state = StatePreRoll
	// One count per configured beat, but timed in wall-clock seconds
	// regardless of tempo. Known quirk, kept for compatibility.
	s.preRollRemaining = float64(s.settings.PreRollBeats)
	s.nextClickBeat = 0
}

func (s *Session) beginPlaying() {
	s.state = StatePlaying
	s.nextClickBeat = math.Ceil(s.playheadBeat)
}

func (s *Session) click(accent bool) {
	if nil != s.metronome {
		s.metronome.Click(accent)
	}
}

func (s *Session) tickPreRoll(dt float64) {
	s.preRollRemaining -= dt
	total := float64(s.settings.PreRollBeats)
	counted := total - math.Max(s.preRollRemaining, 0)
	for s.nextClickBeat < total && counted >= s.nextClickBeat {
		s.click(s.nextClickBeat == 0)
		s.nextClickBeat++
	}
	if s.preRollRemaining <= 0 {
		s.beginPlaying()
	}
}

func (s *Session) tickPlaying(dt float64) {
	s.elapsedSeconds += dt
	if s.settings.UseLessonTempo {
		s.playheadBeat = s.lesson.Tempo.BeatAtTime(s.elapsedSeconds)
	} else {
		s.playheadBeat += dt * s.settings.FixedBpm / 60.0
	}

	s.emitClicks()
	// Strikes drain before missed detection so a hit arriving in the
	// same tick can still satisfy a window the scan would expire.
	s.drainStrikes()
	s.detectMissed()
	s.checkLoopBoundary()
}

func (s *Session) emitClicks() {
	for s.playheadBeat >= s.nextClickBeat {
		signature := s.lesson.Tempo.TimeSignatureAt(s.lesson.Tempo.TimeAtBeat(s.nextClickBeat))
		accent := int64(s.nextClickBeat)%int64(signature.Numerator) == 0
		s.click(accent)
		s.nextClickBeat++
	}
}

func (s *Session) drainStrikes() {
	for {
		select {
		case strike := <-s.strikes:
			s.resolve(strike)
		default:
			return
		}
	}
}

func (s *Session) discardStrikes() {
	for {
		select {
		case <-s.strikes:
		default:
			return
		}
	}
}

func (s *Session) resolve(strike Strike) {
	index, label, hitBeat := resolveStrike(
		s.lesson.Notation, s.statuses, strike, s.playheadBeat, s.bpmNow(), s.settings)
	if index >= 0 {
		s.statuses[index] = label
	}
	// An unmatched strike is informational, not an error; the batch
	// scorer still sees it.
	s.captured = append(s.captured, game.NewDrumEvent(hitBeat, strike.Piece, strike.Velocity, game.Normal))
}

// detectMissed expires pending entries whose window the playhead has
// passed. Lazy: checked on the advancing edge only, never retroactive.
func (s *Session) detectMissed() {
	window := matchWindowBeats(s.settings.MatchWindowPct, s.settings.MatchCapMs, s.bpmNow())
	for i, notated := range s.lesson.Notation {
		if s.statuses[i] == game.LabelNone && notated.Event.Beat+window < s.playheadBeat {
			s.statuses[i] = game.LabelMissed
		}
	}
}

func (s *Session) checkLoopBoundary() {
	if s.playheadBeat < s.loopEnd() {
		return
	}
	s.passesCompleted++
	if s.settings.Mode == FreePlay || s.passesCompleted < s.settings.PassesTarget {
		s.rewind()
		s.clearStatuses()
		if s.settings.CountdownEachLoop {
			s.enterPreRoll()
		} else {
			s.nextClickBeat = math.Ceil(s.playheadBeat)
		}
		return
	}
	s.finish()
}

func (s *Session) finish() {
	s.state = StateStopped
	report := s.engine.ScoreWithSecondsPerBeat(s.lesson, s.captured, 60.0/s.bpmNow())

	review := &Review{
		Report: report,
		Passes: s.passesCompleted,
		Pieces: map[game.DrumPiece]PieceCounts{},
	}
	for i, notated := range s.lesson.Notation {
		counts := review.Pieces[notated.Event.Piece]
		switch s.statuses[i] {
		case game.LabelOnTime:
			counts.OnTime++
		case game.LabelEarly:
			counts.Early++
		case game.LabelLate:
			counts.Late++
		default:
			// Unresolved entries at stop time read as missed
			counts.Missed++
		}
		review.Pieces[notated.Event.Piece] = counts
	}
	s.review = review

	score.NewAnalytics(report).UpdateStatistics(&s.lesson.Stats)
}
