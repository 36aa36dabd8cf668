// Package kst pins dates to Korea Standard Time; exchanges and filings are dated in KST.
package kst

import "time"

// Location is Asia/Seoul, or a fixed +09:00 zone when tzdata is unavailable
var Location = loadLocation()

func loadLocation() *time.Location {
	loc, err := time.LoadLocation("Asia/Seoul")
	if err != nil {
		return time.FixedZone("KST", 9*60*60)
	}
	return loc
}

// Now returns the current time in KST
func Now() time.Time {
	return time.Now().In(Location)
}

// Date returns midnight KST of the given calendar date
func Date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, Location)
}

// Truncate returns midnight KST of t's KST calendar date
func Truncate(t time.Time) time.Time {
	t = t.In(Location)
	return Date(t.Year(), t.Month(), t.Day())
}
