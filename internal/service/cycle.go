package service

import "time"

// cycleAt derives the open assessment cycle from a point in time:
// months 1-3 are Q1, 4-6 Q2, 7-9 Q3, 10-12 Q4.
func cycleAt(now time.Time) (quarter, year int) {
	return int(now.Month()-1)/3 + 1, now.Year()
}
