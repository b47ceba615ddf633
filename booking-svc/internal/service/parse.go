package service

import (
	"regexp"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"
)

const (
	MinPartySize = 1
	MaxPartySize = 20

	minNameLen    = 2
	minPhoneLen   = 6
	minAddressLen = 6

	maxNameLen     = 64
	maxPhoneLen    = 32
	maxAddressLen  = 256
	maxCommentLen  = 512
	maxCategoryLen = 64
	maxTitleLen    = 128
	maxLineQty     = 100

	// maxPriceCents is 1,000,000 major units.
	maxPriceCents = 1_000_000 * 100
)

var (
	priceRe = regexp.MustCompile(`^(\d+)(?:\.(\d{1,2}))?$`)

	// currency markers stripped before parsing, longest first
	currencyMarks = []string{"₽", "руб.", "руб", "р.", "р", "rub", "$", "€"}

	todayWords    = map[string]bool{"today": true, "сегодня": true}
	tomorrowWords = map[string]bool{"tomorrow": true, "завтра": true}
	nowWords      = map[string]bool{"now": true, "asap": true, "сейчас": true, "как можно скорее": true}
	laterWords    = map[string]bool{"later": true, "schedule": true, "позже": true, "ко времени": true}
)

// ParseDate resolves "today"/"tomorrow" relative to now, or an ISO date.
func ParseDate(text string, now time.Time) (time.Time, bool) {
	raw := strings.ToLower(strings.TrimSpace(text))
	loc := now.Location()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, loc)
	switch {
	case todayWords[raw]:
		return today, true
	case tomorrowWords[raw]:
		return today.AddDate(0, 0, 1), true
	}
	d, err := time.ParseInLocation("2006-01-02", raw, loc)
	if err != nil {
		return time.Time{}, false
	}
	return d, true
}

// ParseTime accepts HH:MM or HH:MM:SS and returns the offset from midnight.
func ParseTime(text string) (time.Duration, bool) {
	raw := strings.TrimSpace(text)
	for _, layout := range []string{"15:04", "15:04:05"} {
		t, err := time.Parse(layout, raw)
		if err == nil {
			return time.Duration(t.Hour())*time.Hour + time.Duration(t.Minute())*time.Minute, true
		}
	}
	return 0, false
}

// CombineDateTime places a clock offset on a calendar date.
func CombineDateTime(date time.Time, clock time.Duration) time.Time {
	h := int(clock / time.Hour)
	m := int((clock % time.Hour) / time.Minute)
	return time.Date(date.Year(), date.Month(), date.Day(), h, m, 0, 0, date.Location())
}

func ParsePartySize(text string) (int, bool) {
	n, err := strconv.Atoi(strings.TrimSpace(text))
	if err != nil || n < MinPartySize || n > MaxPartySize {
		return 0, false
	}
	return n, true
}

// ParsePrice normalizes "930", "930.50", "930,50 ₽" to minor units.
func ParsePrice(text string) (int64, bool) {
	raw := strings.ToLower(strings.TrimSpace(text))
	for _, mark := range currencyMarks {
		raw = strings.ReplaceAll(raw, mark, "")
	}
	raw = strings.NewReplacer(" ", "", "\u00a0", "", ",", ".").Replace(raw)
	if raw == "" {
		return 0, false
	}

	m := priceRe.FindStringSubmatch(raw)
	if m == nil {
		return 0, false
	}
	if len(strings.TrimLeft(m[1], "0")) > 7 {
		return 0, false
	}
	major, err := strconv.ParseInt(m[1], 10, 64)
	if err != nil {
		return 0, false
	}
	var minor int64
	if frac := m[2]; frac != "" {
		if len(frac) == 1 {
			frac += "0"
		}
		minor, _ = strconv.ParseInt(frac, 10, 64)
	}

	cents := major*100 + minor
	if cents <= 0 || cents > maxPriceCents {
		return 0, false
	}
	return cents, true
}

// FormatPrice renders minor units as "930 ₽" or "930.50 ₽".
func FormatPrice(cents int64) string {
	sign := ""
	if cents < 0 {
		sign = "-"
		cents = -cents
	}
	if cents%100 == 0 {
		return sign + strconv.FormatInt(cents/100, 10) + " ₽"
	}
	frac := strconv.FormatInt(cents%100, 10)
	if len(frac) == 1 {
		frac = "0" + frac
	}
	return sign + strconv.FormatInt(cents/100, 10) + "." + frac + " ₽"
}

func validName(s string) bool    { return utf8.RuneCountInString(s) >= minNameLen }
func validPhone(s string) bool   { return utf8.RuneCountInString(s) >= minPhoneLen }
func validAddress(s string) bool { return utf8.RuneCountInString(s) >= minAddressLen }

func isNowAnswer(text string) bool {
	return nowWords[strings.ToLower(strings.TrimSpace(text))]
}

func isLaterAnswer(text string) bool {
	return laterWords[strings.ToLower(strings.TrimSpace(text))]
}

// commentText clips a free-text comment; a lone "-" means no comment.
func commentText(raw string) string {
	comment := clip(raw, maxCommentLen)
	if comment == "-" {
		return ""
	}
	return comment
}

// clip trims s and cuts it to at most max runes.
func clip(s string, max int) string {
	s = strings.TrimSpace(s)
	if utf8.RuneCountInString(s) <= max {
		return s
	}
	return strings.TrimSpace(string([]rune(s)[:max]))
}
