package jobs

import (
	"time"

	"github.com/gorhill/cronexpr"

	"github.com/owservable/folders/config"
)

// FindPrevious returns the latest time before moment at which cron fires, or
// the zero time if it never did within the last 200 years.
func FindPrevious(cron *cronexpr.Expression, moment time.Time) time.Time {
	if cron == nil {
		return time.Time{}
	}

	upper := cron.Next(moment)
	if upper.IsZero() {
		upper = moment.Add(time.Second)
	}

	// widen the window into the past until it contains an activation
	window := -2 * config.Day
	lower := cron.Next(moment.Add(window))
	for lower.IsZero() || !lower.Before(upper) {
		window *= 2
		if window < -200*config.Year {
			return time.Time{}
		}
		lower = cron.Next(moment.Add(window))
	}

	return bisectPrevious(cron, lower, moment, upper)
}

// bisectPrevious narrows [low, high] down to the last activation before next.
// low is always an activation.
func bisectPrevious(cron *cronexpr.Expression, low time.Time, high time.Time, next time.Time) time.Time {
	for {
		diff := high.Sub(low)
		median := low.Add(diff / 2)
		afterMedian := cron.Next(median)

		if afterMedian.Before(next) {
			if diff < time.Minute {
				return afterMedian
			}
			low = afterMedian
		} else {
			if diff < time.Minute {
				return low
			}
			high = median
		}
	}
}
