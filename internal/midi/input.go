package midi

import (
	"fmt"
	"strings"

	"git.lost.host/meutraa/taal/internal/game"
	gomidi "gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/drivers"
	_ "gitlab.com/gomidi/midi/v2/drivers/rtmididrv" // register MIDI driver
)

// Input listens on one MIDI port and forwards decoded note-on strikes.
// It runs on the driver's callback goroutine and must therefore only
// feed a non-blocking sink.
type Input struct {
	port drivers.In
	stop func()
}

// Open connects to the first input port whose name contains the given
// substring (case-insensitive) and pushes every note-on with a known
// mapping through feed.
func Open(portName string, mapping map[uint8]game.DrumPiece, feed func(piece game.DrumPiece, velocity uint8)) (*Input, error) {
	var port drivers.In
	for _, in := range gomidi.GetInPorts() {
		if strings.Contains(strings.ToLower(in.String()), strings.ToLower(portName)) {
			port = in
			break
		}
	}
	if nil == port {
		return nil, fmt.Errorf("no MIDI input matching %q", portName)
	}
	if err := port.Open(); nil != err {
		return nil, fmt.Errorf("open %q: %w", port.String(), err)
	}

	stop, err := gomidi.ListenTo(port, func(msg gomidi.Message, timestampms int32) {
		var channel, note, velocity uint8
		if msg.GetNoteOn(&channel, &note, &velocity) && velocity > 0 {
			if piece, ok := mapping[note]; ok {
				feed(piece, velocity)
			}
		}
	})
	if nil != err {
		_ = port.Close()
		return nil, fmt.Errorf("listen %q: %w", port.String(), err)
	}

	return &Input{port: port, stop: stop}, nil
}

func (i *Input) Name() string {
	return i.port.String()
}

func (i *Input) Close() {
	if nil != i.stop {
		i.stop()
	}
	if nil != i.port {
		_ = i.port.Close()
	}
}

// DefaultMapping is the General MIDI percussion map for a standard kit.
func DefaultMapping() map[uint8]game.DrumPiece {
	return map[uint8]game.DrumPiece{
		36: game.Bass,
		37: game.CrossStick,
		38: game.Snare,
		41: game.FloorTom,
		42: game.HiHatClosed,
		44: game.HiHatFoot,
		46: game.HiHatOpen,
		47: game.LowTom,
		49: game.Crash,
		50: game.HighTom,
		51: game.Ride,
		52: game.China,
		55: game.Splash,
	}
}
