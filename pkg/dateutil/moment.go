package dateutil

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Moment tokens, longest first within each letter so the scanner always
// takes the longest match.
var momentTokens = []string{
	"YYYY", "YY",
	"Q",
	"MMMM", "MMM", "MM", "M",
	"DDDD", "DDD", "DD", "Do", "D",
	"dddd", "ddd", "dd", "d",
	"GGGG", "WW", "W",
	"HH", "H", "hh", "h", "kk", "k",
	"mm", "m",
	"ss", "s",
	"SSS", "SS", "S",
	"A", "a",
	"ZZ", "Z",
	"X", "x",
}

// FormatMoment formats t using a moment.js style pattern, e.g.
// "YYYY-MM-DD HH:mm". Text inside square brackets is copied verbatim and
// characters that are not tokens pass through unchanged.
func FormatMoment(t time.Time, pattern string) string {
	var b strings.Builder

	for i := 0; i < len(pattern); {
		if pattern[i] == '[' {
			end := strings.IndexByte(pattern[i+1:], ']')
			if end >= 0 {
				b.WriteString(pattern[i+1 : i+1+end])
				i += end + 2
				continue
			}
		}

		token := matchToken(pattern[i:])
		if token == "" {
			b.WriteByte(pattern[i])
			i++
			continue
		}
		b.WriteString(formatToken(t, token))
		i += len(token)
	}

	return b.String()
}

func matchToken(s string) string {
	for _, tok := range momentTokens {
		if strings.HasPrefix(s, tok) {
			return tok
		}
	}
	return ""
}

func formatToken(t time.Time, token string) string {
	switch token {
	case "YYYY":
		return fmt.Sprintf("%04d", t.Year())
	case "YY":
		return fmt.Sprintf("%02d", t.Year()%100)
	case "Q":
		return strconv.Itoa((int(t.Month())-1)/3 + 1)
	case "MMMM":
		return t.Month().String()
	case "MMM":
		return t.Month().String()[:3]
	case "MM":
		return fmt.Sprintf("%02d", int(t.Month()))
	case "M":
		return strconv.Itoa(int(t.Month()))
	case "DDDD":
		return fmt.Sprintf("%03d", t.YearDay())
	case "DDD":
		return strconv.Itoa(t.YearDay())
	case "DD":
		return fmt.Sprintf("%02d", t.Day())
	case "Do":
		return Ordinal(t.Day())
	case "D":
		return strconv.Itoa(t.Day())
	case "dddd":
		return t.Weekday().String()
	case "ddd":
		return t.Weekday().String()[:3]
	case "dd":
		return t.Weekday().String()[:2]
	case "d":
		return strconv.Itoa(int(t.Weekday()))
	case "GGGG":
		year, _ := t.ISOWeek()
		return fmt.Sprintf("%04d", year)
	case "WW":
		_, week := t.ISOWeek()
		return fmt.Sprintf("%02d", week)
	case "W":
		_, week := t.ISOWeek()
		return strconv.Itoa(week)
	case "HH":
		return fmt.Sprintf("%02d", t.Hour())
	case "H":
		return strconv.Itoa(t.Hour())
	case "hh":
		return fmt.Sprintf("%02d", hour12(t))
	case "h":
		return strconv.Itoa(hour12(t))
	case "kk":
		return fmt.Sprintf("%02d", hour24From1(t))
	case "k":
		return strconv.Itoa(hour24From1(t))
	case "mm":
		return fmt.Sprintf("%02d", t.Minute())
	case "m":
		return strconv.Itoa(t.Minute())
	case "ss":
		return fmt.Sprintf("%02d", t.Second())
	case "s":
		return strconv.Itoa(t.Second())
	case "SSS":
		return fmt.Sprintf("%03d", t.Nanosecond()/int(time.Millisecond))
	case "SS":
		return fmt.Sprintf("%02d", t.Nanosecond()/(10*int(time.Millisecond)))
	case "S":
		return strconv.Itoa(t.Nanosecond() / (100 * int(time.Millisecond)))
	case "A":
		if t.Hour() < 12 {
			return "AM"
		}
		return "PM"
	case "a":
		if t.Hour() < 12 {
			return "am"
		}
		return "pm"
	case "ZZ":
		return t.Format("-0700")
	case "Z":
		return t.Format("-07:00")
	case "X":
		return strconv.FormatInt(t.Unix(), 10)
	case "x":
		return strconv.FormatInt(t.UnixMilli(), 10)
	}
	return token
}

func hour12(t time.Time) int {
	h := t.Hour() % 12
	if h == 0 {
		return 12
	}
	return h
}

func hour24From1(t time.Time) int {
	if t.Hour() == 0 {
		return 24
	}
	return t.Hour()
}

// Ordinal renders n with its English ordinal suffix, e.g. 1st, 22nd, 13th
func Ordinal(n int) string {
	suffix := "th"
	switch n % 100 {
	case 11, 12, 13:
	default:
		switch n % 10 {
		case 1:
			suffix = "st"
		case 2:
			suffix = "nd"
		case 3:
			suffix = "rd"
		}
	}
	return strconv.Itoa(n) + suffix
}
