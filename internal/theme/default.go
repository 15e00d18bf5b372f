package theme

import "git.lost.host/meutraa/taal/internal/game"

type DefaultTheme struct{}

// LabelText colors a judgement for the review table.
func (t *DefaultTheme) LabelText(label game.HitLabel) string {
	switch label {
	case game.LabelOnTime:
		return "\033[1;32mon time\033[0m"
	case game.LabelEarly:
		return "\033[1;33mearly\033[0m"
	case game.LabelLate:
		return "\033[1;35mlate\033[0m"
	case game.LabelMissed:
		return "\033[1;31mmissed\033[0m"
	default:
		return "pending"
	}
}

// StatusRune is one cell of the per-event status strip.
func (t *DefaultTheme) StatusRune(label game.HitLabel) string {
	switch label {
	case game.LabelOnTime:
		return "\033[1;32mo\033[0m"
	case game.LabelEarly:
		return "\033[1;33m<\033[0m"
	case game.LabelLate:
		return "\033[1;35m>\033[0m"
	case game.LabelMissed:
		return "\033[1;31mx\033[0m"
	default:
		return "·"
	}
}
