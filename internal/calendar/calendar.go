// Package calendar resolves recurring-item dates across variable month
// lengths and year boundaries.
package calendar

import "time"

// ISODate is the wire format for transaction dates.
const ISODate = "2006-01-02"

// DaysIn returns the number of days in (year, month). month is 1-12.
func DaysIn(year, month int) int {
	// Day 0 of the following month is the last day of this one.
	return time.Date(year, time.Month(month)+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// ResolveDate returns the ISO date for (year, month, day), clamping day
// to the last valid day of the month (e.g. day 30 in February resolves
// to the 28th, or the 29th in a leap year).
func ResolveDate(year, month, day int) string {
	if max := DaysIn(year, month); day > max {
		day = max
	}
	return time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC).Format(ISODate)
}

// MonthAt returns the (year, month) that lies offset whole months before
// now's calendar month. Offset 0 is now's month; month numbers that go to
// zero or below borrow from the year.
func MonthAt(now time.Time, offset int) (year, month int) {
	year = now.Year()
	month = int(now.Month()) - offset
	for month <= 0 {
		month += 12
		year--
	}
	return year, month
}
