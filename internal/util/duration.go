// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package util

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// durationRegex matches audio durations in MM:SS or H:MM:SS form.
// Minutes and seconds must be two digits and below 60 when an hour part
// is present; the leading component is unbounded.
var durationRegex = regexp.MustCompile(`^(?:\d+:)?[0-5]?\d:[0-5]\d$`)

// IsValidDuration reports whether s is a well-formed duration string
// (MM:SS or H:MM:SS).
func IsValidDuration(s string) bool {
	return durationRegex.MatchString(s)
}

// ParseDuration converts a MM:SS or H:MM:SS string to a time.Duration.
func ParseDuration(s string) (time.Duration, error) {
	if !IsValidDuration(s) {
		return 0, fmt.Errorf("invalid duration %q: want MM:SS or H:MM:SS", s)
	}

	parts := strings.Split(s, ":")
	var h, m, sec int
	switch len(parts) {
	case 2:
		m, _ = strconv.Atoi(parts[0])
		sec, _ = strconv.Atoi(parts[1])
	case 3:
		h, _ = strconv.Atoi(parts[0])
		m, _ = strconv.Atoi(parts[1])
		sec, _ = strconv.Atoi(parts[2])
	}

	return time.Duration(h)*time.Hour + time.Duration(m)*time.Minute + time.Duration(sec)*time.Second, nil
}

// FormatDuration renders a time.Duration as MM:SS, or H:MM:SS when the
// value reaches a full hour.
func FormatDuration(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	total := int(d.Round(time.Second).Seconds())
	h := total / 3600
	m := (total % 3600) / 60
	s := total % 60

	if h > 0 {
		return fmt.Sprintf("%d:%02d:%02d", h, m, s)
	}
	return fmt.Sprintf("%02d:%02d", m, s)
}
