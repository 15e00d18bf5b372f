package parser

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"git.lost.host/meutraa/taal/internal/game"
	"git.lost.host/meutraa/taal/internal/tempo"
)

// Wire format of a lesson file. Tempo events are validated through the
// tempo package; a bad event rejects the whole file.
type lessonFile struct {
	ID         string          `json:"id"`
	Title      string          `json:"title"`
	Difficulty uint8           `json:"difficulty"`
	Tempo      []tempoEvent    `json:"tempo"`
	Notation   []notationEvent `json:"notation"`
}

type tempoEvent struct {
	TimeSeconds float64  `json:"time"`
	Bpm         float64  `json:"bpm"`
	Signature   [2]uint8 `json:"signature"`
}

type notationEvent struct {
	Beat         float64               `json:"beat"`
	Piece        game.DrumPiece        `json:"piece"`
	Velocity     uint8                 `json:"velocity"`
	Articulation game.DrumArticulation `json:"articulation"`
	DurationMs   float64               `json:"duration_ms"`
	Tuplet       *[2]uint8             `json:"tuplet,omitempty"`
}

type DefaultParser struct{}

func (p *DefaultParser) Parse(file string) (*game.Lesson, error) {
	data, err := os.ReadFile(file)
	if nil != err {
		return nil, err
	}
	return p.ParseBytes(data)
}

func (p *DefaultParser) ParseBytes(data []byte) (*game.Lesson, error) {
	var file lessonFile
	if err := json.Unmarshal(data, &file); nil != err {
		return nil, fmt.Errorf("unable to parse lesson: %w", err)
	}

	events := make([]tempo.Event, 0, len(file.Tempo))
	for _, te := range file.Tempo {
		event, err := tempo.NewEvent(te.TimeSeconds, te.Bpm, tempo.Signature{
			Numerator:   te.Signature[0],
			Denominator: te.Signature[1],
		})
		if nil != err {
			return nil, err
		}
		events = append(events, event)
	}
	tempoMap, err := tempo.New(events)
	if nil != err {
		return nil, err
	}

	notation := make([]game.NotatedEvent, 0, len(file.Notation))
	for _, ne := range file.Notation {
		notated := game.NewNotatedEvent(
			game.NewDrumEvent(ne.Beat, ne.Piece, ne.Velocity, ne.Articulation),
			time.Duration(ne.DurationMs*float64(time.Millisecond)),
		)
		if nil != ne.Tuplet {
			notated.Tuplet = &game.Tuplet{Numerator: ne.Tuplet[0], Denominator: ne.Tuplet[1]}
		}
		notation = append(notation, notated)
	}

	return game.NewLesson(file.ID, file.Title, file.Difficulty, tempoMap, notation), nil
}
