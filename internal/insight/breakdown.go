package insight

import (
	"time"

	"github.com/runoshun/taskpulse/internal/domain"
)

const trendWeeks = 4

// CountByPriority counts tasks per priority. Unknown priorities are ignored.
func CountByPriority(tasks []domain.Task) domain.PriorityCounts {
	var counts domain.PriorityCounts
	for i := range tasks {
		switch tasks[i].Priority {
		case domain.PriorityHigh:
			counts.High++
		case domain.PriorityMedium:
			counts.Medium++
		case domain.PriorityLow:
			counts.Low++
		}
	}
	return counts
}

// WeeklyTrend buckets task creation into four weeks, oldest first.
// Bucket k (1..4) starts at local midnight of now minus (4-k) weeks and spans
// seven calendar days, so the last bucket starts today.
func (e *Engine) WeeklyTrend(tasks []domain.Task, now time.Time) []domain.WeekBucket {
	buckets := make([]domain.WeekBucket, 0, trendWeeks)
	y, m, d := now.Date()
	loc := now.Location()

	for k := 1; k <= trendWeeks; k++ {
		offset := (trendWeeks - k) * 7
		start := time.Date(y, m, d-offset, 0, 0, 0, 0, loc)
		end := time.Date(y, m, d-offset+6, 23, 59, 59, int(999*time.Millisecond), loc)

		bucket := domain.WeekBucket{
			Label: e.T(msgWeekLabel, k),
			Start: start,
			End:   end,
		}
		for i := range tasks {
			created := tasks[i].CreatedAt
			if created.Before(start) || created.After(end) {
				continue
			}
			bucket.Created++
			if tasks[i].Completed {
				bucket.Completed++
			}
		}
		buckets = append(buckets, bucket)
	}

	return buckets
}
