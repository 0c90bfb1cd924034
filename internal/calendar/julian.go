package calendar

// DayNumber returns the Julian Day Number of a Gregorian calendar date.
// DayNumber(2006, 1, 2) == 2453738.
func DayNumber(y, m, d int) int {
	return d - 32075 +
		1461*(y+4800+(m-14)/12)/4 +
		367*(m-2-(m-14)/12*12)/12 -
		3*((y+4900+(m-14)/12)/100)/4
}

// DateOf inverts DayNumber.
func DateOf(jdn int) (y, m, d int) {
	l := jdn + 68569
	n := 4 * l / 146097
	l -= (146097*n + 3) / 4
	i := 4000 * (l + 1) / 1461001
	l = l - 1461*i/4 + 31
	j := 80 * l / 2447
	d = l - 2447*j/80
	l = j / 11
	m = j + 2 - 12*l
	y = 100*(n-49) + i + l
	return y, m, d
}
