package googlehome

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"mimic/internal/api"

	"mimic/pkg/logging"
)

var durationRe = regexp.MustCompile(`^(\d+)([smh])$`)

// parseDelay parses durations of the form "5s", "20m", "1h".
func parseDelay(raw string) (time.Duration, error) {
	if raw == "" {
		return 0, nil
	}
	m := durationRe.FindStringSubmatch(raw)
	if m == nil {
		return 0, api.NewInvalidInputError("invalid duration format %q, expected e.g. 5s, 20m, 1h", raw)
	}
	n, _ := strconv.Atoi(m[1])
	switch m[2] {
	case "s":
		return time.Duration(n) * time.Second, nil
	case "m":
		return time.Duration(n) * time.Minute, nil
	}
	return time.Duration(n) * time.Hour, nil
}

// scheduleStart resolves the absolute start of a scheduled command from
// an optional date (YYYY-MM-DD), time of day (HH:MM[:SS]) with an
// AM/PM hint, and a relative delay. A time of day without a date that
// already passed today rolls over to tomorrow.
func scheduleStart(now time.Time, timeOfDay, date, amPM, delay string) (time.Time, error) {
	start := now
	if date != "" || timeOfDay != "" {
		day := now.UTC()
		if date != "" {
			parsed, err := time.Parse("2006-01-02", date)
			if err != nil {
				return time.Time{}, api.NewInvalidInputError("invalid date %q, expected YYYY-MM-DD", date)
			}
			day = parsed
		}
		hour, minute, second := 0, 0, 0
		if timeOfDay != "" {
			parts := strings.Split(timeOfDay, ":")
			if len(parts) != 2 && len(parts) != 3 {
				return time.Time{}, api.NewInvalidInputError("invalid time_of_day %q, expected HH:MM or HH:MM:SS", timeOfDay)
			}
			nums := make([]int, len(parts))
			for i, p := range parts {
				n, err := strconv.Atoi(p)
				if err != nil {
					return time.Time{}, api.NewInvalidInputError("invalid time_of_day %q, expected HH:MM or HH:MM:SS", timeOfDay)
				}
				nums[i] = n
			}
			hour, minute = nums[0], nums[1]
			if len(nums) == 3 {
				second = nums[2]
			}
			if hour < 0 || hour > 23 || minute < 0 || minute > 59 || second < 0 || second > 59 {
				return time.Time{}, api.NewInvalidInputError("time_of_day %q is out of range", timeOfDay)
			}
			switch strings.ToUpper(amPM) {
			case "PM":
				if hour >= 1 && hour <= 11 {
					hour += 12
				}
			case "AM", "UNKNOWN":
				if hour == 12 {
					hour = 0
				}
			}
		}
		start = time.Date(day.Year(), day.Month(), day.Day(), hour, minute, second, 0, time.UTC)
		if date == "" && start.Before(now) {
			start = start.Add(24 * time.Hour)
		}
	}
	if delay != "" {
		d, err := parseDelay(delay)
		if err != nil {
			return time.Time{}, err
		}
		start = start.Add(d)
	}
	return start, nil
}

// processDueSchedules applies every schedule whose start time has
// passed and removes it. A schedule with a duration queues the
// reverting command at start+duration.
func processDueSchedules(st *State, now time.Time) {
	for _, structure := range st.Structures {
		for _, room := range structure.Rooms {
			for _, device := range room.Devices {
				if len(device.Schedules) == 0 {
					continue
				}
				var remaining []*Schedule
				for _, schedule := range device.Schedules {
					start, err := time.Parse(time.RFC3339, schedule.StartTime)
					if err != nil || start.After(now) {
						remaining = append(remaining, schedule)
						continue
					}
					if err := applyCommand(device, schedule.Action, schedule.Values); err != nil {
						logging.Warn("googlehome", "Skipping schedule for device %s: %v", device.ID, err)
						continue
					}
					if revert := revertSchedule(schedule, start); revert != nil {
						remaining = append(remaining, revert)
					}
				}
				device.Schedules = remaining
			}
		}
	}
}

// revertSchedule builds the follow-up schedule that undoes a timed
// command once its duration elapses.
func revertSchedule(schedule *Schedule, start time.Time) *Schedule {
	if schedule.Duration == "" {
		return nil
	}
	d, err := parseDelay(schedule.Duration)
	if err != nil {
		return nil
	}
	revertAt := start.Add(d).Format(time.RFC3339)
	switch schedule.Action {
	case "on":
		return &Schedule{Action: "off", StartTime: revertAt}
	case "off":
		return &Schedule{Action: "on", StartTime: revertAt}
	case "toggle_on_off":
		return &Schedule{Action: "toggle_on_off", StartTime: revertAt}
	case "set_light_effect", "set_light_effect_with_duration":
		return &Schedule{Action: "set_mode", Values: []string{"lightEffect", ""}, StartTime: revertAt}
	}
	return nil
}

func scheduleSummary(s *Schedule) string {
	if len(s.Values) > 0 {
		return fmt.Sprintf("%s(%s) at %s", s.Action, strings.Join(s.Values, ", "), s.StartTime)
	}
	return fmt.Sprintf("%s at %s", s.Action, s.StartTime)
}
