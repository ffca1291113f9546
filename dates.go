package main

import (
	"strings"
	"time"
)

// ParsedTime is the outcome of a date-parse attempt. A zero Unix value
// is ambiguous (epoch vs failure), so the flag is explicit.
type ParsedTime struct {
	Unix int64
	OK   bool
}

// Accepted input date layouts, tried in order. GSAK exports are not
// consistent about the format they emit.
var dateLayouts = []string{
	"02/01/2006",
	"2006/01/02",
	"02/Jan/06",
	"02 Jan 06",
}

// parseDate parses a day-granularity date string, anchoring the result
// at 00:00:01 local time. An empty or unparseable string yields
// ParsedTime{OK: false}.
func parseDate(s string) ParsedTime {
	s = strings.TrimSpace(s)
	if s == "" {
		return ParsedTime{}
	}
	for _, layout := range dateLayouts {
		if t, err := time.ParseInLocation(layout, s, time.Local); err == nil {
			return ParsedTime{Unix: t.Add(time.Second).Unix(), OK: true}
		}
	}
	return ParsedTime{}
}
