package domain

// 5-1-1 rule thresholds, in milliseconds.
const (
	FiveMinutes = 5 * 60 * 1000
	OneMinute   = 60 * 1000
	OneHour     = 60 * 60 * 1000
)

// Stats summarises the completed contractions of a history.
type Stats struct {
	Completed   int
	AvgDuration float64
	// AvgInterval is only meaningful when HasInterval is set, which needs at
	// least two completed contractions.
	AvgInterval float64
	HasInterval bool
	TotalSpan   int64

	IntervalMet bool
	DurationMet bool
	SpanMet     bool
}

// ComputeStats aggregates contractions, which must be ordered
// most-recent-first. In-progress records are ignored.
func ComputeStats(contractions []Contraction) Stats {
	completed := make([]Contraction, 0, len(contractions))
	for _, c := range contractions {
		if c.Completed() {
			completed = append(completed, c)
		}
	}
	stats := Stats{Completed: len(completed)}
	if len(completed) == 0 {
		return stats
	}

	var totalDuration int64
	for _, c := range completed {
		totalDuration += c.Duration()
	}
	stats.AvgDuration = float64(totalDuration) / float64(len(completed))

	if len(completed) >= 2 {
		var totalInterval int64
		for i := 0; i < len(completed)-1; i++ {
			totalInterval += completed[i].StartTime - completed[i+1].boundary()
		}
		stats.AvgInterval = float64(totalInterval) / float64(len(completed)-1)
		stats.HasInterval = true
	}

	stats.TotalSpan = *completed[0].EndTime - completed[len(completed)-1].StartTime

	stats.IntervalMet = stats.HasInterval && stats.AvgInterval > 0 && stats.AvgInterval <= FiveMinutes
	stats.DurationMet = stats.AvgDuration >= OneMinute
	stats.SpanMet = stats.TotalSpan >= OneHour
	return stats
}

// IntervalFromPrevious is the gap between contractions[i] and the next-older
// record. The oldest record has no interval.
func IntervalFromPrevious(contractions []Contraction, i int) (int64, bool) {
	if i < 0 || i >= len(contractions)-1 {
		return 0, false
	}
	return contractions[i].StartTime - contractions[i+1].boundary(), true
}
