package web

import (
	"strconv"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
)

func itoa(value int) string {
	return strconv.Itoa(value)
}

func utoa(value uint) string {
	return strconv.FormatUint(uint64(value), 10)
}

func pageURL(base string, page, perPage int) string {
	if strings.Contains(base, "?") {
		return base + "&page=" + itoa(page) + "&per_page=" + itoa(perPage)
	}
	return base + "?page=" + itoa(page) + "&per_page=" + itoa(perPage)
}

func formatTime(value time.Time) string {
	if value.IsZero() {
		return "-"
	}
	return value.Format("2006-01-02 15:04:05")
}

// sinceTime renders a timestamp as "3 minutes ago".
func sinceTime(value *time.Time) string {
	if value == nil || value.IsZero() {
		return "not started"
	}
	return humanize.Time(*value)
}

func pointsLabel(points int) string {
	if points == 1 {
		return "1 pt"
	}
	return humanize.Comma(int64(points)) + " pts"
}
