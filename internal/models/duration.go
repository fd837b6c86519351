package models

import (
	"math"
	"strconv"
	"strings"
)

// ParseDuration converts a colon separated duration ("SS", "M:SS", "H:MM:SS") to milliseconds.
//
// Segments are folded left to right as acc*60+segment. Segment values are not range checked,
// so "1:75" is 135000. Anything that is not digits and colons yields NaN, which callers let
// propagate into the accuracy score instead of treating it as an error.
func ParseDuration(s string) float64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return math.NaN()
	}

	var total float64
	for _, seg := range strings.Split(s, ":") {
		if seg == "" || strings.TrimLeft(seg, "0123456789") != "" {
			return math.NaN()
		}
		n, err := strconv.ParseFloat(seg, 64)
		if err != nil {
			return math.NaN()
		}
		total = total*60 + n
	}
	return total * 1000
}

// FormatDuration renders milliseconds as "M:SS" or "H:MM:SS". NaN renders as "?".
func FormatDuration(ms float64) string {
	if math.IsNaN(ms) || ms < 0 {
		return "?"
	}
	secs := int64(ms / 1000)
	h, m, s := secs/3600, (secs%3600)/60, secs%60
	if h > 0 {
		return strconv.FormatInt(h, 10) + ":" + pad2(m) + ":" + pad2(s)
	}
	return strconv.FormatInt(m, 10) + ":" + pad2(s)
}

func pad2(n int64) string {
	if n < 10 {
		return "0" + strconv.FormatInt(n, 10)
	}
	return strconv.FormatInt(n, 10)
}
