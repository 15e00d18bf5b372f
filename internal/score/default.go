package score

import (
	"crypto/sha256"
	"database/sql"
	"encoding/base64"
	"encoding/json"
	"log"
	"time"

	"git.lost.host/meutraa/taal/internal/game"
	_ "github.com/mattn/go-sqlite3"
)

// DefaultStore keeps run history and statistics in a local sqlite
// database. Persistence failures are logged and swallowed; a run is
// never interrupted by the store.
type DefaultStore struct {
	Path string

	db *sql.DB
}

type hitsCompact struct {
	Piece      game.DrumPiece
	Beats      []float64
	Velocities []uint8
}

func compactHits(hits []game.DrumEvent) []hitsCompact {
	compact := []hitsCompact{}
	index := map[game.DrumPiece]int{}
	for _, hit := range hits {
		i, ok := index[hit.Piece]
		if !ok {
			i = len(compact)
			index[hit.Piece] = i
			compact = append(compact, hitsCompact{Piece: hit.Piece, Beats: []float64{}, Velocities: []uint8{}})
		}
		compact[i].Beats = append(compact[i].Beats, hit.Beat)
		compact[i].Velocities = append(compact[i].Velocities, hit.Velocity)
	}
	return compact
}

func uncompactHits(compact []hitsCompact) []game.DrumEvent {
	hits := []game.DrumEvent{}
	for _, c := range compact {
		for i, beat := range c.Beats {
			velocity := uint8(0)
			if i < len(c.Velocities) {
				velocity = c.Velocities[i]
			}
			hits = append(hits, game.NewDrumEvent(beat, c.Piece, velocity, game.Normal))
		}
	}
	return hits
}

func (s *DefaultStore) Init() error {
	path := s.Path
	if path == "" {
		path = "./history.db"
	}
	db, err := sql.Open("sqlite3", path)
	if nil != err {
		return err
	}

	initStatement := `
	create table if not exists runs
	  (
		  id integer not null primary key,
		  sum text,
		  bpm real,
		  accuracy real,
		  hits bytearray
	  );
	create table if not exists stats
	  (
		  sum text not null primary key,
		  average_accuracy real,
		  highest_streak integer,
		  last_practiced integer
	  );
	`
	if _, err = db.Exec(initStatement); nil != err {
		return err
	}

	s.db = db
	return nil
}

func (s *DefaultStore) Deinit() {
	if nil != s.db {
		s.db.Close()
	}
}

// hashLesson identifies a lesson by its notation content, so renames
// keep their history.
func (s *DefaultStore) hashLesson(lesson *game.Lesson) string {
	data, err := json.Marshal(lesson.Notation)
	if nil != err {
		return lesson.ID
	}
	sum := sha256.Sum256(data)
	return base64.StdEncoding.EncodeToString(sum[:])
}

func (s *DefaultStore) Save(lesson *game.Lesson, hits []game.DrumEvent, bpm float64, report Report) {
	data, err := json.Marshal(compactHits(hits))
	if nil != err {
		log.Println("unable to marshal hits", err)
		return
	}
	_, err = s.db.Exec("insert into runs(sum, bpm, accuracy, hits) values(?, ?, ?, ?)",
		s.hashLesson(lesson), bpm, report.Accuracy, data)
	if nil != err {
		log.Println("unable to save run", err)
	}
}

func (s *DefaultStore) Load(lesson *game.Lesson) []History {
	histories := []History{}
	rows, err := s.db.Query("select sum, bpm, accuracy, hits from runs where sum = ?", s.hashLesson(lesson))
	if nil != err {
		if err != sql.ErrNoRows {
			log.Println("unable to load runs", err)
		}
		return histories
	}
	defer rows.Close()
	for rows.Next() {
		var sum string
		var bpm, accuracy float64
		var data []byte
		if err := rows.Scan(&sum, &bpm, &accuracy, &data); nil != err {
			log.Println("unable to scan run", err)
			continue
		}
		var compact []hitsCompact
		if err := json.Unmarshal(data, &compact); nil != err {
			log.Println("unable to unmarshal hit history", err)
			continue
		}
		histories = append(histories, History{
			Sum:      sum,
			Bpm:      bpm,
			Accuracy: accuracy,
			Hits:     uncompactHits(compact),
		})
	}
	return histories
}

func (s *DefaultStore) SaveStats(lesson *game.Lesson) {
	_, err := s.db.Exec(
		"insert into stats(sum, average_accuracy, highest_streak, last_practiced) values(?, ?, ?, ?) "+
			"on conflict(sum) do update set average_accuracy=excluded.average_accuracy, "+
			"highest_streak=excluded.highest_streak, last_practiced=excluded.last_practiced",
		s.hashLesson(lesson),
		lesson.Stats.AverageAccuracy,
		lesson.Stats.HighestStreak,
		lesson.Stats.LastPracticed.Unix())
	if nil != err {
		log.Println("unable to save stats", err)
	}
}

func (s *DefaultStore) LoadStats(lesson *game.Lesson) {
	row := s.db.QueryRow("select average_accuracy, highest_streak, last_practiced from stats where sum = ?",
		s.hashLesson(lesson))
	var avg float64
	var streak uint32
	var practiced int64
	if err := row.Scan(&avg, &streak, &practiced); nil != err {
		if err != sql.ErrNoRows {
			log.Println("unable to load stats", err)
		}
		return
	}
	lesson.Stats.AverageAccuracy = avg
	lesson.Stats.HighestStreak = streak
	lesson.Stats.LastPracticed = time.Unix(practiced, 0)
}
