package game

// HitLabel is the resolution of one expected event. The zero value
// means not yet resolved.
type HitLabel uint8

const (
	LabelNone HitLabel = iota
	LabelOnTime
	LabelLate
	LabelEarly
	LabelMissed
)

func (l HitLabel) String() string {
	switch l {
	case LabelOnTime:
		return "on time"
	case LabelLate:
		return "late"
	case LabelEarly:
		return "early"
	case LabelMissed:
		return "missed"
	default:
		return "pending"
	}
}
