// Package timefmt formats commit timestamps for display.
package timefmt

import (
	"fmt"
	"time"

	"github.com/dustin/go-humanize"
)

const (
	day   = 24 * time.Hour
	week  = 7 * day
	month = 30 * day

	dateLayout     = "Jan 02, 2006"
	dateTimeLayout = "Jan 02, 2006, 03:04 PM"
)

// Past this age Relative prints the calendar date instead.
const relativeLimit = 12 * month

var magnitudes = []humanize.RelTimeMagnitude{
	{D: 11 * time.Second, Format: "now", DivBy: time.Second},
	{D: time.Minute, Format: "%d seconds %s", DivBy: time.Second},
	{D: 2 * time.Minute, Format: "1 minute %s", DivBy: 1},
	{D: time.Hour, Format: "%d minutes %s", DivBy: time.Minute},
	{D: 2 * time.Hour, Format: "1 hour %s", DivBy: 1},
	{D: day, Format: "%d hours %s", DivBy: time.Hour},
	{D: 2 * day, Format: "1 day %s", DivBy: 1},
	{D: week, Format: "%d days %s", DivBy: day},
	{D: 2 * week, Format: "1 week %s", DivBy: 1},
	{D: 4 * week, Format: "%d weeks %s", DivBy: week},
	{D: 2 * month, Format: "1 month %s", DivBy: 1},
	{D: relativeLimit, Format: "%d months %s", DivBy: month},
}

// Relative describes t relative to now, e.g. "3 days ago". Times a year or
// more in the past are printed as a date.
func Relative(t, now time.Time) string {
	if now.Sub(t) >= relativeLimit {
		return t.Format(dateLayout)
	}
	return humanize.CustomRelTime(t, now, "ago", "from now", magnitudes)
}

// DateTime formats t in its own zone, e.g. "Jan 02, 2006, 03:04 PM GMT+2".
func DateTime(t time.Time) string {
	_, offset := t.Zone()
	sign := '+'
	if offset < 0 {
		sign = '-'
		offset = -offset
	}
	return fmt.Sprintf("%s GMT%c%d", t.Format(dateTimeLayout), sign, offset/3600)
}

// InZone returns t shifted to a fixed zone offsetMinutes east of UTC.
func InZone(t time.Time, offsetMinutes int) time.Time {
	return t.In(time.FixedZone("", offsetMinutes*60))
}
