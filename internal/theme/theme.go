package theme

import "git.lost.host/meutraa/taal/internal/game"

type Theme interface {
	LabelText(label game.HitLabel) string
	StatusRune(label game.HitLabel) string
}
