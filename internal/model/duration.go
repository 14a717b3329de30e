package model

import (
	"fmt"
	"strconv"
	"strings"
)

// FormatHMS renders a duration in seconds as "HH:MM:SS". Negative input
// yields "00:00:00"; hours are not capped at 24.
func FormatHMS(seconds int) string {
	if seconds < 0 {
		seconds = 0
	}
	hours := seconds / 3600
	minutes := (seconds % 3600) / 60
	secs := seconds % 60
	return fmt.Sprintf("%02d:%02d:%02d", hours, minutes, secs)
}

// ParseHMS converts an "HH:MM:SS" string back to seconds. Returns 0 for
// empty or malformed input; the spreadsheet's duration column is free text
// and unparseable values are treated as unknown.
func ParseHMS(hms string) int {
	parts := strings.Split(strings.TrimSpace(hms), ":")
	if len(parts) != 3 {
		return 0
	}
	h, err1 := strconv.Atoi(parts[0])
	m, err2 := strconv.Atoi(parts[1])
	s, err3 := strconv.Atoi(parts[2])
	if err1 != nil || err2 != nil || err3 != nil || h < 0 || m < 0 || s < 0 {
		return 0
	}
	return h*3600 + m*60 + s
}
