package config

import (
	"fmt"
	"strconv"
	"strings"

	"git.lost.host/meutraa/taal/internal/game"
	"git.lost.host/meutraa/taal/internal/session"
	"gopkg.in/alecthomas/kingpin.v2"
)

var (
	LessonFile        = kingpin.Arg("lesson", "Lesson file").Required().ExistingFile()
	Bpm               = kingpin.Flag("bpm", "Fixed practice tempo").Default("120").Short('b').Float64()
	UseLessonTempo    = kingpin.Flag("lesson-tempo", "Follow the lesson tempo map").Short('l').Bool()
	LatencyMs         = kingpin.Flag("latency", "Input latency compensation in ms").Default("0").Float64()
	MatchWindowPct    = kingpin.Flag("window", "Match window as percent of a beat").Default("25").Float64()
	MatchCapMs        = kingpin.Flag("window-cap", "Match window cap in ms").Default("75").Float64()
	OnTimePct         = kingpin.Flag("on-time", "On-time band as percent of a beat").Default("8").Float64()
	OnTimeCapMs       = kingpin.Flag("on-time-cap", "On-time band cap in ms").Default("20").Float64()
	PreRollBeats      = kingpin.Flag("pre-roll", "Countdown beats before playing").Default("4").Uint()
	CountdownEachLoop = kingpin.Flag("countdown-each-loop", "Re-run the countdown on every pass").Bool()
	Passes            = kingpin.Flag("passes", "Passes before the run is scored").Default("1").Uint()
	FreePlay          = kingpin.Flag("free-play", "Loop forever, never auto-stop").Bool()
	LoopSpec          = kingpin.Flag("loop", "Loop region: 'whole' or start:end in beats").String()
	MetronomeOn       = kingpin.Flag("metronome", "Play metronome clicks").Default("true").Bool()
	Port              = kingpin.Flag("port", "MIDI input port name substring").Short('p').String()
	FramePeriod       = kingpin.Flag("frame-period", "Tick period").Default("4ms").Duration()
	DBPath            = kingpin.Flag("db", "History database path").Default("./history.db").String()
	keys              = kingpin.Flag("keys", "Keys mapped to drum pieces").Default("zxcvbnm,./").Short('k').String()
)

// keyPieces is the piece order the keys flag maps onto.
var keyPieces = []game.DrumPiece{
	game.Bass,
	game.Snare,
	game.HiHatClosed,
	game.HiHatOpen,
	game.Ride,
	game.Crash,
	game.HighTom,
	game.LowTom,
	game.FloorTom,
	game.CrossStick,
}

// KeyPiece maps a pressed rune to a drum piece.
func KeyPiece(r rune) (game.DrumPiece, bool) {
	for i, c := range []rune(*keys) {
		if c == r && i < len(keyPieces) {
			return keyPieces[i], true
		}
	}
	return 0, false
}

// Settings materialises the flag surface into the explicit struct the
// session ticks on.
func Settings() session.Settings {
	mode := session.Test
	if *FreePlay {
		mode = session.FreePlay
	}
	return session.Settings{
		Mode:              mode,
		MatchWindowPct:    *MatchWindowPct,
		MatchCapMs:        *MatchCapMs,
		OnTimePct:         *OnTimePct,
		OnTimeCapMs:       *OnTimeCapMs,
		LatencyMs:         *LatencyMs,
		PreRollBeats:      uint8(*PreRollBeats),
		CountdownEachLoop: *CountdownEachLoop,
		PassesTarget:      uint32(*Passes),
		UseLessonTempo:    *UseLessonTempo,
		FixedBpm:          *Bpm,
	}
}

// Loop parses the loop flag.
func Loop() (session.LoopRegion, error) {
	spec := strings.TrimSpace(*LoopSpec)
	switch spec {
	case "":
		return session.LoopRegion{Kind: session.LoopNone}, nil
	case "whole":
		return session.LoopRegion{Kind: session.LoopWholeChart}, nil
	}
	parts := strings.SplitN(spec, ":", 2)
	if len(parts) != 2 {
		return session.LoopRegion{}, fmt.Errorf("loop must be 'whole' or start:end, got %q", spec)
	}
	start, err := strconv.ParseFloat(parts[0], 64)
	if nil != err {
		return session.LoopRegion{}, err
	}
	end, err := strconv.ParseFloat(parts[1], 64)
	if nil != err {
		return session.LoopRegion{}, err
	}
	return session.LoopRegion{Kind: session.LoopExplicit, Start: start, End: end}, nil
}

func init() {
	kingpin.Version("0.1.0")
	kingpin.Parse()
}
