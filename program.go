package main

import (
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"git.lost.host/meutraa/taal/internal/config"
	"git.lost.host/meutraa/taal/internal/game"
	"git.lost.host/meutraa/taal/internal/metronome"
	"git.lost.host/meutraa/taal/internal/midi"
	"git.lost.host/meutraa/taal/internal/parser"
	"git.lost.host/meutraa/taal/internal/render"
	"git.lost.host/meutraa/taal/internal/score"
	"git.lost.host/meutraa/taal/internal/session"
	"git.lost.host/meutraa/taal/internal/theme"
	"github.com/eiannone/keyboard"
	"golang.org/x/term"
)

type Program struct {
	Parser   parser.Parser
	Store    score.Store
	Theme    theme.Theme
	Renderer render.Renderer

	session *session.Session
	lesson  *game.Lesson

	midiInput  *midi.Input
	keyChannel <-chan keyboard.KeyEvent

	width int
}

func (p *Program) Init() error {
	// Ensure our Default implementations are used as interfaces
	p.Parser = &parser.DefaultParser{}
	p.Store = &score.DefaultStore{Path: *config.DBPath}
	p.Theme = &theme.DefaultTheme{}
	p.Renderer = &render.DefaultRenderer{}

	lesson, err := p.Parser.Parse(*config.LessonFile)
	if nil != err {
		return err
	}
	p.lesson = lesson

	if err := p.Store.Init(); nil != err {
		return err
	}
	p.Store.LoadStats(lesson)

	p.session = session.New(lesson, config.Settings())
	loop, err := config.Loop()
	if nil != err {
		return err
	}
	p.session.SetLoopRegion(loop)

	if *config.MetronomeOn {
		speaker, err := metronome.NewSpeaker()
		if nil != err {
			log.Println("unable to open audio output", err)
		} else {
			p.session.SetMetronome(speaker)
		}
	}

	if *config.Port != "" {
		input, err := midi.Open(*config.Port, midi.DefaultMapping(), func(piece game.DrumPiece, velocity uint8) {
			p.session.FeedStrike(session.Strike{Piece: piece, Velocity: velocity})
		})
		if nil != err {
			return err
		}
		p.midiInput = input
		log.Println("listening on", input.Name())
	}

	keyChannel, err := keyboard.GetKeys(128)
	if nil != err {
		return fmt.Errorf("unable to open keyboard: %w", err)
	}
	p.keyChannel = keyChannel

	p.width, _, err = term.GetSize(int(os.Stdout.Fd()))
	if nil != err {
		p.width = 80
	}

	return p.Renderer.Init()
}

func (p *Program) Deinit() {
	p.Renderer.Deinit()
	if nil != p.midiInput {
		p.midiInput.Close()
	}
	if err := keyboard.Close(); nil != err {
		log.Println("unable to close keyboard:", err)
	}
	p.Store.Deinit()
}

func (p *Program) Run() error {
	p.session.Start()

	ticker := time.NewTicker(*config.FramePeriod)
	defer ticker.Stop()

	last := time.Now()
	for now := range ticker.C {
		dt := now.Sub(last).Seconds()
		last = now

		if quit := p.handleKeys(); quit {
			p.session.Stop()
		}

		p.session.Tick(dt)

		if p.session.State() == session.StateStopped {
			break
		}
		p.Renderer.Status(p.width, p.statusLine())
	}

	return p.report()
}

// handleKeys drains pending key events; mapped runes become strikes.
func (p *Program) handleKeys() bool {
	for i := 0; i < len(p.keyChannel); i++ {
		key := <-p.keyChannel
		if key.Key == keyboard.KeyEsc {
			return true
		}
		if piece, ok := config.KeyPiece(key.Rune); ok {
			p.session.FeedStrike(session.Strike{Piece: piece, Velocity: 96})
		} else if key.Rune == 'r' {
			p.session.Retry()
		}
	}
	return false
}

func (p *Program) statusLine() string {
	s := p.session
	if s.State() == session.StatePreRoll {
		return fmt.Sprintf(" %s  %d", s.State(), int(s.PreRollRemaining())+1)
	}
	var strip strings.Builder
	for _, label := range s.Statuses() {
		strip.WriteString(p.Theme.StatusRune(label))
	}
	return fmt.Sprintf(" %s  beat %6.2f  pass %d  %s",
		s.State(), s.PlayheadBeat(), s.PassesCompleted()+1, strip.String())
}

func (p *Program) report() error {
	review := p.session.Review()
	if nil == review {
		return nil
	}

	p.Renderer.Line("")
	p.Renderer.Line(fmt.Sprintf("%s  accuracy %3.0f%%  early %d  late %d  passes %d",
		p.lesson.Title,
		review.Report.Accuracy*100,
		review.Report.EarlyHits,
		review.Report.LateHits,
		review.Passes))
	for _, piece := range game.Pieces() {
		counts, ok := review.Pieces[piece]
		if !ok {
			continue
		}
		p.Renderer.Line(fmt.Sprintf("  %-12v %s %3d  %s %3d  %s %3d  %s %3d",
			piece,
			p.Theme.LabelText(game.LabelOnTime), counts.OnTime,
			p.Theme.LabelText(game.LabelEarly), counts.Early,
			p.Theme.LabelText(game.LabelLate), counts.Late,
			p.Theme.LabelText(game.LabelMissed), counts.Missed))
	}
	p.Renderer.Line(fmt.Sprintf("  average %3.0f%%  streak %d",
		p.lesson.Stats.AverageAccuracy*100, p.lesson.Stats.HighestStreak))

	if histories := p.Store.Load(p.lesson); len(histories) > 0 {
		best := 0.0
		for _, history := range histories {
			if history.Accuracy > best {
				best = history.Accuracy
			}
		}
		p.Renderer.Line(fmt.Sprintf("  previous runs %d  best %3.0f%%", len(histories), best*100))
	}

	bpm := *config.Bpm
	if *config.UseLessonTempo {
		bpm = p.lesson.Tempo.BpmAt(p.session.ElapsedSeconds())
	}
	p.Store.Save(p.lesson, p.session.CapturedHits(), bpm, review.Report)
	p.Store.SaveStats(p.lesson)
	return nil
}
