package googlehome

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"mimic/internal/api"
	"mimic/internal/sim/args"
	"mimic/internal/store"
)

// Simulator emulates a Google Home home graph: structures containing
// rooms containing devices, with trait-based command execution and
// scheduled commands applied when they come due.
type Simulator struct {
	store *store.Store[State]
	now   func() time.Time
}

func New() *Simulator {
	return &Simulator{
		store: store.New(seedState),
		now:   func() time.Time { return time.Now().UTC() },
	}
}

func (s *Simulator) Name() string { return "googlehome" }

func (s *Simulator) SaveState(path string) error { return s.store.SaveState(path) }
func (s *Simulator) LoadState(path string) error { return s.store.LoadState(path) }
func (s *Simulator) ResetState()                 { s.store.Reset() }

func (s *Simulator) WatchState(ctx context.Context, path string) error {
	return s.store.Watch(ctx, path)
}

func (s *Simulator) Store() *store.Store[State] { return s.store }

func allDevices(st *State) []*Device {
	var out []*Device
	for _, structure := range st.Structures {
		for _, room := range structure.Rooms {
			out = append(out, room.Devices...)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// resolveDevices maps the requested ids to devices, failing when any
// id is unknown.
func resolveDevices(st *State, ids []string) ([]*Device, error) {
	byID := map[string]*Device{}
	for _, d := range allDevices(st) {
		byID[d.ID] = d
	}
	var missing []string
	devices := make([]*Device, 0, len(ids))
	for _, id := range ids {
		d, ok := byID[id]
		if !ok {
			missing = append(missing, id)
			continue
		}
		devices = append(devices, d)
	}
	if len(missing) > 0 {
		return nil, api.NewNotFoundErrorf("devices not found: %s", strings.Join(missing, ", "))
	}
	return devices, nil
}

// deviceView projects a device for tool output, optionally with its
// dynamic state and pending schedules.
func deviceView(d *Device, includeState bool) map[string]interface{} {
	view := map[string]interface{}{
		"id":            d.ID,
		"names":         d.Names,
		"types":         d.Types,
		"traits":        d.Traits,
		"room_name":     d.RoomName,
		"structure":     d.Structure,
		"toggles_modes": d.TogglesModes,
	}
	if includeState {
		view["device_state"] = d.States
		view["schedules"] = d.Schedules
	}
	return view
}

func (s *Simulator) listStructures(arguments map[string]interface{}) (interface{}, error) {
	var structures []map[string]interface{}
	err := s.store.Update(func(st *State) error {
		processDueSchedules(st, s.now())
		names := make([]string, 0, len(st.Structures))
		for name := range st.Structures {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			structure := st.Structures[name]
			roomNames := make([]string, 0, len(structure.Rooms))
			for roomName := range structure.Rooms {
				roomNames = append(roomNames, roomName)
			}
			sort.Strings(roomNames)
			rooms := make([]map[string]interface{}, 0, len(roomNames))
			for _, roomName := range roomNames {
				room := structure.Rooms[roomName]
				deviceIDs := make([]string, 0, len(room.Devices))
				for _, d := range room.Devices {
					deviceIDs = append(deviceIDs, d.ID)
				}
				sort.Strings(deviceIDs)
				rooms = append(rooms, map[string]interface{}{
					"name":       room.Name,
					"device_ids": deviceIDs,
				})
			}
			structures = append(structures, map[string]interface{}{
				"name":  structure.Name,
				"rooms": rooms,
			})
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return map[string]interface{}{"structures": structures}, nil
}

func (s *Simulator) createRoom(arguments map[string]interface{}) (interface{}, error) {
	structureName, err := args.RequiredString(arguments, "structure_name")
	if err != nil {
		return nil, err
	}
	roomName, err := args.RequiredString(arguments, "room_name")
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(roomName) == "" {
		return nil, api.NewFieldValidationError("room_name", "must not be empty")
	}

	var created *Room
	err = s.store.Update(func(st *State) error {
		structure, ok := st.Structures[structureName]
		if !ok {
			return api.NewNotFoundError("structure", structureName)
		}
		if _, exists := structure.Rooms[roomName]; exists {
			return api.NewDuplicateErrorf("room %q already exists in structure %q", roomName, structureName)
		}
		created = &Room{Name: roomName, Devices: []*Device{}}
		structure.Rooms[roomName] = created
		return nil
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

func (s *Simulator) deleteRoom(arguments map[string]interface{}) (interface{}, error) {
	structureName, err := args.RequiredString(arguments, "structure_name")
	if err != nil {
		return nil, err
	}
	roomName, err := args.RequiredString(arguments, "room_name")
	if err != nil {
		return nil, err
	}
	err = s.store.Update(func(st *State) error {
		structure, ok := st.Structures[structureName]
		if !ok {
			return api.NewNotFoundError("structure", structureName)
		}
		if _, exists := structure.Rooms[roomName]; !exists {
			return api.NewNotFoundError("room", roomName)
		}
		delete(structure.Rooms, roomName)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return map[string]interface{}{"status": fmt.Sprintf("Room %q deleted from structure %q.", roomName, structureName)}, nil
}

func (s *Simulator) listDevices(arguments map[string]interface{}) (interface{}, error) {
	structureName, _, err := args.String(arguments, "structure_name")
	if err != nil {
		return nil, err
	}
	roomName, _, err := args.String(arguments, "room_name")
	if err != nil {
		return nil, err
	}
	traitHints, _, err := args.StringSlice(arguments, "trait_hints")
	if err != nil {
		return nil, err
	}
	typeHints, _, err := args.StringSlice(arguments, "type_hints")
	if err != nil {
		return nil, err
	}
	includeState, err := args.BoolOr(arguments, "include_state", false)
	if err != nil {
		return nil, err
	}

	var views []map[string]interface{}
	err = s.store.Update(func(st *State) error {
		processDueSchedules(st, s.now())
		for _, d := range allDevices(st) {
			if structureName != "" && d.Structure != structureName {
				continue
			}
			if roomName != "" && d.RoomName != roomName {
				continue
			}
			if len(traitHints) > 0 && !hasAny(d.Traits, traitHints) {
				continue
			}
			if len(typeHints) > 0 && !hasAny(d.Types, typeHints) {
				continue
			}
			views = append(views, deviceView(d, includeState))
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	if views == nil {
		views = []map[string]interface{}{}
	}
	return map[string]interface{}{"devices": views}, nil
}

func hasAny(have, want []string) bool {
	for _, w := range want {
		for _, h := range have {
			if h == w {
				return true
			}
		}
	}
	return false
}

func (s *Simulator) getDevice(arguments map[string]interface{}) (interface{}, error) {
	deviceID, err := args.RequiredString(arguments, "device_id")
	if err != nil {
		return nil, err
	}
	var view map[string]interface{}
	err = s.store.Update(func(st *State) error {
		processDueSchedules(st, s.now())
		devices, err := resolveDevices(st, []string{deviceID})
		if err != nil {
			return err
		}
		view = deviceView(devices[0], true)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return view, nil
}

// commandRequest is the validated device/command/values triple shared
// by execute_command and schedule_command.
type commandRequest struct {
	deviceIDs []string
	command   string
	values    []string
}

func decodeCommandRequest(arguments map[string]interface{}) (*commandRequest, error) {
	deviceIDs, _, err := args.StringSlice(arguments, "devices")
	if err != nil {
		return nil, err
	}
	if len(deviceIDs) == 0 {
		return nil, api.NewFieldValidationError("devices", "must contain at least one device id")
	}
	command, err := args.RequiredString(arguments, "command")
	if err != nil {
		return nil, err
	}
	values, _, err := args.StringSlice(arguments, "values")
	if err != nil {
		return nil, err
	}
	if err := validateCommand(command, values); err != nil {
		return nil, err
	}
	return &commandRequest{deviceIDs: deviceIDs, command: command, values: values}, nil
}

// checkTraitSupport verifies every target device carries the trait the
// command belongs to.
func checkTraitSupport(devices []*Device, command string) error {
	trait, ok := commandTrait(command)
	if !ok {
		return api.NewInvalidInputError("unknown command %q", command)
	}
	var unsupported []string
	for _, d := range devices {
		if !d.hasTrait(trait) {
			unsupported = append(unsupported, d.ID)
		}
	}
	if len(unsupported) > 0 {
		return api.NewInvalidInputError("devices do not support trait %q: %s", trait, strings.Join(unsupported, ", "))
	}
	return nil
}

func (s *Simulator) executeCommand(arguments map[string]interface{}) (interface{}, error) {
	req, err := decodeCommandRequest(arguments)
	if err != nil {
		return nil, err
	}

	var results []map[string]interface{}
	err = s.store.Update(func(st *State) error {
		processDueSchedules(st, s.now())
		devices, err := resolveDevices(st, req.deviceIDs)
		if err != nil {
			return err
		}
		if err := checkTraitSupport(devices, req.command); err != nil {
			return err
		}
		for _, d := range devices {
			if err := applyCommand(d, req.command, req.values); err != nil {
				return err
			}
			results = append(results, map[string]interface{}{"device_id": d.ID, "result": "SUCCESS"})
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return map[string]interface{}{
		"result": "SUCCESS",
		"device_execution_results": map[string]interface{}{
			"text_to_speech": fmt.Sprintf("Okay, running %s on %d device(s).", req.command, len(results)),
			"results":        results,
		},
	}, nil
}

func (s *Simulator) scheduleCommand(arguments map[string]interface{}) (interface{}, error) {
	req, err := decodeCommandRequest(arguments)
	if err != nil {
		return nil, err
	}
	timeOfDay, _, err := args.String(arguments, "time_of_day")
	if err != nil {
		return nil, err
	}
	date, _, err := args.String(arguments, "date")
	if err != nil {
		return nil, err
	}
	amPM, _, err := args.String(arguments, "am_pm_or_unknown")
	if err != nil {
		return nil, err
	}
	delay, _, err := args.String(arguments, "delay")
	if err != nil {
		return nil, err
	}
	duration, _, err := args.String(arguments, "duration")
	if err != nil {
		return nil, err
	}
	if timeOfDay == "" && date == "" && delay == "" {
		return nil, api.NewInvalidInputError("provide a time_of_day, date, or delay to schedule the command")
	}
	if duration != "" {
		if _, err := parseDelay(duration); err != nil {
			return nil, err
		}
	}
	start, err := scheduleStart(s.now(), timeOfDay, date, amPM, delay)
	if err != nil {
		return nil, err
	}

	var scheduled []map[string]interface{}
	err = s.store.Update(func(st *State) error {
		devices, err := resolveDevices(st, req.deviceIDs)
		if err != nil {
			return err
		}
		if err := checkTraitSupport(devices, req.command); err != nil {
			return err
		}
		for _, d := range devices {
			schedule := &Schedule{
				Action:    req.command,
				Values:    req.values,
				StartTime: start.Format(time.RFC3339),
				Duration:  duration,
			}
			d.Schedules = append(d.Schedules, schedule)
			scheduled = append(scheduled, map[string]interface{}{
				"device_id": d.ID,
				"schedule":  scheduleSummary(schedule),
			})
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return map[string]interface{}{
		"success":   true,
		"tts":       fmt.Sprintf("Okay, scheduled %s for %s.", req.command, start.Format(time.RFC3339)),
		"scheduled": scheduled,
	}, nil
}

func (s *Simulator) cancelSchedules(arguments map[string]interface{}) (interface{}, error) {
	deviceIDs, _, err := args.StringSlice(arguments, "devices")
	if err != nil {
		return nil, err
	}

	cancelled := 0
	err = s.store.Update(func(st *State) error {
		targets := allDevices(st)
		if len(deviceIDs) > 0 {
			targets, err = resolveDevices(st, deviceIDs)
			if err != nil {
				return err
			}
		}
		for _, d := range targets {
			cancelled += len(d.Schedules)
			d.Schedules = nil
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return map[string]interface{}{
		"success":         true,
		"tts":             fmt.Sprintf("Okay, cancelled %d schedule(s).", cancelled),
		"cancelled_count": cancelled,
	}, nil
}
