package metronome

import (
	"log"
	"time"

	"github.com/faiface/beep"
	"github.com/faiface/beep/generators"
	"github.com/faiface/beep/speaker"
)

const (
	sampleRate    = beep.SampleRate(44100)
	clickDuration = 70 * time.Millisecond

	accentHz = 880
	beatHz   = 660
)

// Speaker renders clicks through the audio output. It satisfies
// session.Metronome.
type Speaker struct{}

// NewSpeaker initialises the global audio output.
func NewSpeaker() (*Speaker, error) {
	if err := speaker.Init(sampleRate, sampleRate.N(time.Second/60)); nil != err {
		return nil, err
	}
	return &Speaker{}, nil
}

// Click plays a short sine burst, higher pitched on bar accents.
func (s *Speaker) Click(accent bool) {
	freq := beatHz
	if accent {
		freq = accentHz
	}
	tone, err := generators.SinTone(sampleRate, freq)
	if nil != err {
		log.Println("unable to generate click", err)
		return
	}
	speaker.Play(beep.Take(sampleRate.N(clickDuration), tone))
}
