package score

import (
	"time"

	"git.lost.host/meutraa/taal/internal/game"
)

// Analytics rolls a run report into cumulative lesson statistics.
type Analytics struct {
	Report Report
}

func NewAnalytics(report Report) Analytics {
	return Analytics{Report: report}
}

// UpdateStatistics halves the previous average towards the new accuracy
// rather than keeping a true running mean, and moves the streak one
// step up or down with a floor of zero.
func (a Analytics) UpdateStatistics(stats *game.PracticeStatistics) {
	stats.AverageAccuracy = (stats.AverageAccuracy + a.Report.Accuracy) / 2.0
	if a.Report.Accuracy > 0.9 {
		stats.HighestStreak++
	} else if stats.HighestStreak > 0 {
		stats.HighestStreak--
	}
	stats.LastPracticed = time.Now()
}
