package testdata

import (
	"git.lost.host/meutraa/taal/internal/game"
	"git.lost.host/meutraa/taal/internal/parser"
)

// GetLesson parses the embedded rock-beat lesson: eight beats of
// hi-hat quarters with bass on the odd and snare on the even beats,
// constant 120 bpm.
func GetLesson() (*game.Lesson, error) {
	var p parser.DefaultParser
	return p.ParseBytes([]byte(data))
}

const data = `{
  "id": "rock-beat-8",
  "title": "Basic Rock Beat",
  "difficulty": 1,
  "tempo": [
    {"time": 0, "bpm": 120, "signature": [4, 4]}
  ],
  "notation": [
    {"beat": 0, "piece": "hihat-closed", "velocity": 80, "articulation": "normal", "duration_ms": 500},
    {"beat": 0, "piece": "bass", "velocity": 100, "articulation": "normal", "duration_ms": 500},
    {"beat": 1, "piece": "hihat-closed", "velocity": 80, "articulation": "normal", "duration_ms": 500},
    {"beat": 1, "piece": "snare", "velocity": 96, "articulation": "normal", "duration_ms": 500},
    {"beat": 2, "piece": "hihat-closed", "velocity": 80, "articulation": "normal", "duration_ms": 500},
    {"beat": 2, "piece": "bass", "velocity": 100, "articulation": "normal", "duration_ms": 500},
    {"beat": 3, "piece": "hihat-closed", "velocity": 80, "articulation": "normal", "duration_ms": 500},
    {"beat": 3, "piece": "snare", "velocity": 96, "articulation": "normal", "duration_ms": 500},
    {"beat": 4, "piece": "hihat-closed", "velocity": 80, "articulation": "normal", "duration_ms": 500},
    {"beat": 4, "piece": "bass", "velocity": 100, "articulation": "normal", "duration_ms": 500},
    {"beat": 5, "piece": "hihat-closed", "velocity": 80, "articulation": "normal", "duration_ms": 500},
    {"beat": 5, "piece": "snare", "velocity": 96, "articulation": "normal", "duration_ms": 500},
    {"beat": 6, "piece": "hihat-closed", "velocity": 80, "articulation": "normal", "duration_ms": 500},
    {"beat": 6, "piece": "bass", "velocity": 100, "articulation": "normal", "duration_ms": 500},
    {"beat": 7, "piece": "hihat-closed", "velocity": 80, "articulation": "normal", "duration_ms": 500},
    {"beat": 7, "piece": "snare", "velocity": 96, "articulation": "normal", "duration_ms": 500}
  ]
}`
