// Package hours turns the practice record's compact opening-hours string
// into display rows.
//
// Wire format: entries separated by ";", each entry "days-start-end",
// days separated by "|" using 0..7 where both 0 and 7 mean Sunday.
//
//	"1|2|3|4|5-09:00-17:30;6-09:00-13:00;0-Closed-"
package hours

import "strings"

// Entry is one schedule row, in source order.
type Entry struct {
	Days  string `json:"days"`
	Start string `json:"start"`
	End   string `json:"end"`
	Open  bool   `json:"open"`
}

var dayNames = map[string]string{
	"0": "Sunday",
	"1": "Monday",
	"2": "Tuesday",
	"3": "Wednesday",
	"4": "Thursday",
	"5": "Friday",
	"6": "Saturday",
	"7": "Sunday",
}

// Parse converts raw into entries.  Empty input yields an empty, non-nil
// slice.  Entries without a day part are dropped; unknown day codes are
// kept verbatim.
func Parse(raw string) []Entry {
	out := make([]Entry, 0, 4)
	for _, item := range strings.Split(raw, ";") {
		if item == "" {
			continue
		}
		parts := strings.Split(item, "-")
		days := parts[0]
		if days == "" {
			continue
		}
		var start, end string
		if len(parts) > 1 {
			start = parts[1]
		}
		if len(parts) > 2 {
			end = parts[2]
		}

		out = append(out, Entry{
			Days:  joinDays(days),
			Start: orDefault(start, "Closed"),
			End:   end,
			Open:  start != "" && start != "Closed" && start != "closed",
		})
	}
	return out
}

func joinDays(days string) string {
	names := make([]string, 0, 7)
	for _, d := range strings.Split(days, "|") {
		name, ok := dayNames[d]
		if !ok {
			name = d
		}
		if name != "" {
			names = append(names, name)
		}
	}
	if len(names) == 0 {
		return "Unknown"
	}
	return strings.Join(names, ", ")
}

func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}
