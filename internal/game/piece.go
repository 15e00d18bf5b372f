package game

import (
	"encoding/json"
	"fmt"
)

// DrumPiece is a physical part of the kit.
type DrumPiece uint8

const (
	Crash DrumPiece = iota
	Ride
	HiHatClosed
	HiHatOpen
	HiHatFoot
	HighTom
	LowTom
	FloorTom
	Snare
	CrossStick
	Bass
	Splash
	China
)

var pieceNames = map[DrumPiece]string{
	Crash:       "crash",
	Ride:        "ride",
	HiHatClosed: "hihat-closed",
	HiHatOpen:   "hihat-open",
	HiHatFoot:   "hihat-foot",
	HighTom:     "high-tom",
	LowTom:      "low-tom",
	FloorTom:    "floor-tom",
	Snare:       "snare",
	CrossStick:  "cross-stick",
	Bass:        "bass",
	Splash:      "splash",
	China:       "china",
}

// Pieces lists every piece in declaration order.
func Pieces() []DrumPiece {
	return []DrumPiece{
		Crash, Ride, HiHatClosed, HiHatOpen, HiHatFoot,
		HighTom, LowTom, FloorTom, Snare, CrossStick,
		Bass, Splash, China,
	}
}

func (p DrumPiece) String() string {
	if name, ok := pieceNames[p]; ok {
		return name
	}
	return fmt.Sprintf("piece(%d)", uint8(p))
}

func PieceFromName(name string) (DrumPiece, error) {
	for piece, n := range pieceNames {
		if n == name {
			return piece, nil
		}
	}
	return 0, fmt.Errorf("unknown drum piece %q", name)
}

func (p DrumPiece) MarshalJSON() ([]byte, error) {
	return json.Marshal(p.String())
}

func (p *DrumPiece) UnmarshalJSON(data []byte) error {
	var name string
	if err := json.Unmarshal(data, &name); nil != err {
		return err
	}
	piece, err := PieceFromName(name)
	if nil != err {
		return err
	}
	*p = piece
	return nil
}

// DrumArticulation describes how a piece is struck.
type DrumArticulation uint8

const (
	Normal DrumArticulation = iota
	Flam
	Drag
	Rimshot
	Ghost
)

var articulationNames = map[DrumArticulation]string{
	Normal:  "normal",
	Flam:    "flam",
	Drag:    "drag",
	Rimshot: "rimshot",
	Ghost:   "ghost",
}

func (a DrumArticulation) String() string {
	if name, ok := articulationNames[a]; ok {
		return name
	}
	return fmt.Sprintf("articulation(%d)", uint8(a))
}

func (a DrumArticulation) MarshalJSON() ([]byte, error) {
	return json.Marshal(a.String())
}

func (a *DrumArticulation) UnmarshalJSON(data []byte) error {
	var name string
	if err := json.Unmarshal(data, &name); nil != err {
		return err
	}
	for art, n := range articulationNames {
		if n == name {
			*a = art
			return nil
		}
	}
	return fmt.Errorf("unknown articulation %q", name)
}

// DrumDynamic is a dynamic band derived from velocity. It is always
// recomputed from the velocity, never stored independently.
type DrumDynamic uint8

const (
	Pianissimo DrumDynamic = iota
	Piano
	MezzoPiano
	MezzoForte
	Forte
	Fortissimo
)

func DynamicFromVelocity(velocity uint8) DrumDynamic {
	switch {
	case velocity <= 20:
		return Pianissimo
	case velocity <= 50:
		return Piano
	case velocity <= 80:
		return MezzoPiano
	case velocity <= 100:
		return MezzoForte
	case velocity <= 115:
		return Forte
	default:
		return Fortissimo
	}
}

func (d DrumDynamic) String() string {
	switch d {
	case Pianissimo:
		return "pp"
	case Piano:
		return "p"
	case MezzoPiano:
		return "mp"
	case MezzoForte:
		return "mf"
	case Forte:
		return "f"
	default:
		return "ff"
	}
}
