package parser

import "git.lost.host/meutraa/taal/internal/game"

type Parser interface {
	Parse(file string) (*game.Lesson, error)
	ParseBytes(data []byte) (*game.Lesson, error)
}
