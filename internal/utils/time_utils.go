package utils

import (
	"time"
)

var marketLoc *time.Location

func init() {
	var err error
	marketLoc, err = time.LoadLocation("Asia/Kolkata")
	if err != nil {
		// Fallback to Local if timezone data is missing
		// In production docker, ensure tzdata is installed
		marketLoc = time.Local
	}
}

// MarketTime returns the current time in the exchange timezone (IST)
func MarketTime() time.Time {
	return time.Now().In(marketLoc)
}

// StartOfDay returns 00:00:00 of the current market day
func StartOfDay() time.Time {
	now := MarketTime()
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, marketLoc)
}

// GetLocation returns the exchange *time.Location
func GetLocation() *time.Location {
	return marketLoc
}
