package toml

import (
	"fmt"
	"strconv"
	"strings"
)

// =========================
// Calendar Value Types
// =========================

// LocalDate is a calendar date without time or offset, e.g. 1979-05-27.
type LocalDate struct {
	Year  int
	Month int
	Day   int
}

// ParseLocalDate validates s in YYYY-MM-DD form. Month and day are range
// checked only; day-in-month is not cross-checked.
func ParseLocalDate(s string) (LocalDate, error) {
	if len(s) != 10 || s[4] != '-' || s[7] != '-' {
		return LocalDate{}, fmt.Errorf("invalid local date %q", s)
	}
	year, ok1 := atoiFixed(s[0:4])
	month, ok2 := atoiFixed(s[5:7])
	day, ok3 := atoiFixed(s[8:10])
	if !ok1 || !ok2 || !ok3 {
		return LocalDate{}, fmt.Errorf("invalid local date %q", s)
	}
	if month < 1 || month > 12 {
		return LocalDate{}, fmt.Errorf("month out of range in %q", s)
	}
	if day < 1 || day > 31 {
		return LocalDate{}, fmt.Errorf("day out of range in %q", s)
	}
	return LocalDate{Year: year, Month: month, Day: day}, nil
}

func (d LocalDate) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, d.Month, d.Day)
}

func (d LocalDate) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// LocalTime is a time of day with millisecond precision. Extra fractional
// digits in the source are truncated, never rounded.
type LocalTime struct {
	Hour        int
	Minute      int
	Second      int
	Millisecond int
}

// ParseLocalTime validates s in HH:MM:SS[.fraction] form.
func ParseLocalTime(s string) (LocalTime, error) {
	if len(s) < 8 || s[2] != ':' || s[5] != ':' {
		return LocalTime{}, fmt.Errorf("invalid local time %q", s)
	}
	hour, ok1 := atoiFixed(s[0:2])
	minute, ok2 := atoiFixed(s[3:5])
	second, ok3 := atoiFixed(s[6:8])
	if !ok1 || !ok2 || !ok3 {
		return LocalTime{}, fmt.Errorf("invalid local time %q", s)
	}
	if hour > 23 || minute > 59 || second > 59 {
		return LocalTime{}, fmt.Errorf("time out of range in %q", s)
	}
	t := LocalTime{Hour: hour, Minute: minute, Second: second}
	rest := s[8:]
	if rest == "" {
		return t, nil
	}
	if rest[0] != '.' || len(rest) == 1 {
		return LocalTime{}, fmt.Errorf("invalid fractional seconds in %q", s)
	}
	frac := rest[1:]
	if !allDigits(frac) {
		return LocalTime{}, fmt.Errorf("invalid fractional seconds in %q", s)
	}
	// pad or truncate to exactly three digits
	frac = (frac + "00")[:3]
	t.Millisecond, _ = atoiFixed(frac)
	return t, nil
}

func (t LocalTime) String() string {
	s := fmt.Sprintf("%02d:%02d:%02d", t.Hour, t.Minute, t.Second)
	if t.Millisecond != 0 {
		s += fmt.Sprintf(".%03d", t.Millisecond)
	}
	return s
}

func (t LocalTime) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

// LocalDateTime is a date and time of day without an offset.
type LocalDateTime struct {
	LocalDate
	LocalTime
}

// ParseLocalDateTime validates s as a date and a time joined by 'T', 't'
// or a single space.
func ParseLocalDateTime(s string) (LocalDateTime, error) {
	if len(s) < 11 || !strings.ContainsRune("Tt ", rune(s[10])) {
		return LocalDateTime{}, fmt.Errorf("invalid local date-time %q", s)
	}
	d, err := ParseLocalDate(s[:10])
	if err != nil {
		return LocalDateTime{}, err
	}
	t, err := ParseLocalTime(s[11:])
	if err != nil {
		return LocalDateTime{}, err
	}
	return LocalDateTime{LocalDate: d, LocalTime: t}, nil
}

func (dt LocalDateTime) String() string {
	return dt.LocalDate.String() + "T" + dt.LocalTime.String()
}

func (dt LocalDateTime) MarshalText() ([]byte, error) {
	return []byte(dt.String()), nil
}

func allDigits(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

// atoiFixed parses an all-digit string; signs and underscores are rejected.
func atoiFixed(s string) (int, bool) {
	if !allDigits(s) {
		return 0, false
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, false
	}
	return n, true
}
