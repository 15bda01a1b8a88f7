package atlas

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"time"
)

// MarshalJSON encodes the plan as an object keyed by "YYYY-MM-DD (DayName)".
// encoding/json sorts map keys, and the ISO date prefix keeps them in
// calendar order.
func (p StudyPlan) MarshalJSON() ([]byte, error) {
	doc := make(map[string][]StudyTask, len(p.Days))
	for _, day := range p.Days {
		tasks := day.Tasks
		if tasks == nil {
			tasks = []StudyTask{}
		}
		doc[day.Key()] = tasks
	}
	return json.Marshal(doc)
}

// UnmarshalJSON decodes a plan document, ordering days by date.
func (p *StudyPlan) UnmarshalJSON(data []byte) error {
	var doc map[string][]StudyTask
	if err := json.Unmarshal(data, &doc); err != nil {
		return err
	}

	days := make([]DayPlan, 0, len(doc))
	for key, tasks := range doc {
		date, name, err := ParseDayKey(key)
		if err != nil {
			return err
		}
		days = append(days, DayPlan{Date: date, DayName: name, Tasks: tasks})
	}
	sort.Slice(days, func(i, j int) bool {
		return days[i].Date.Before(days[j].Date)
	})

	p.Days = days
	return nil
}

// ParseDayKey splits a plan day key into its date and weekday name.
func ParseDayKey(key string) (time.Time, string, error) {
	datePart, rest, found := strings.Cut(key, " ")
	date, err := time.ParseInLocation(DateLayout, datePart, time.Local)
	if err != nil {
		return time.Time{}, "", fmt.Errorf("invalid plan day key %q: %w", key, err)
	}

	name := date.Weekday().String()
	if found {
		rest = strings.TrimSpace(rest)
		rest = strings.TrimPrefix(rest, "(")
		rest = strings.TrimSuffix(rest, ")")
		if rest != "" {
			name = rest
		}
	}
	return date, name, nil
}
