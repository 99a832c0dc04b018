package googlehome

import (
	"context"

	"mimic/internal/api"
)

func (s *Simulator) GetTools() []api.ToolMetadata {
	stringListSchema := map[string]interface{}{
		"type":  "array",
		"items": map[string]interface{}{"type": "string"},
	}

	return []api.ToolMetadata{
		{
			Name:        "list_structures",
			Description: "List the home structures with their rooms and device ids.",
		},
		{
			Name:        "create_room",
			Description: "Add an empty room to a structure.",
			Args: []api.ArgMetadata{
				{Name: "structure_name", Type: "string", Required: true, Description: "Structure to add the room to"},
				{Name: "room_name", Type: "string", Required: true, Description: "Name of the new room, unique within the structure"},
			},
		},
		{
			Name:        "delete_room",
			Description: "Remove a room (and the devices in it) from a structure.",
			Args: []api.ArgMetadata{
				{Name: "structure_name", Type: "string", Required: true, Description: "Structure containing the room"},
				{Name: "room_name", Type: "string", Required: true, Description: "Room to delete"},
			},
		},
		{
			Name:        "list_devices",
			Description: "List devices, optionally filtered by structure, room, traits, or device types. Due schedules are applied first.",
			Args: []api.ArgMetadata{
				{Name: "structure_name", Type: "string", Description: "Only devices in this structure"},
				{Name: "room_name", Type: "string", Description: "Only devices in this room"},
				{Name: "trait_hints", Type: "array", Description: "Only devices with at least one of these traits", Schema: stringListSchema},
				{Name: "type_hints", Type: "array", Description: "Only devices of at least one of these types", Schema: stringListSchema},
				{Name: "include_state", Type: "boolean", Description: "Include dynamic device state and pending schedules", Default: false},
			},
		},
		{
			Name:        "get_device",
			Description: "Fetch one device with its full state and pending schedules.",
			Args: []api.ArgMetadata{
				{Name: "device_id", Type: "string", Required: true, Description: "Device id"},
			},
		},
		{
			Name:        "execute_command",
			Description: "Run a trait command (on, set_brightness, lock, set_temperature, ...) on one or more devices now.",
			Args: []api.ArgMetadata{
				{Name: "devices", Type: "array", Required: true, Description: "Target device ids", Schema: stringListSchema},
				{Name: "command", Type: "string", Required: true, Description: "Command name, e.g. on, off, set_brightness, set_volume_level"},
				{Name: "values", Type: "array", Description: "Command values as strings, e.g. [\"0.5\"]", Schema: stringListSchema},
			},
		},
		{
			Name:        "schedule_command",
			Description: "Schedule a trait command for later: at a time of day (HH:MM[:SS] with optional AM/PM), on a date, or after a delay like 5s, 20m, 1h. An optional duration reverts on/off commands afterwards.",
			Args: []api.ArgMetadata{
				{Name: "devices", Type: "array", Required: true, Description: "Target device ids", Schema: stringListSchema},
				{Name: "command", Type: "string", Required: true, Description: "Command name to run when due"},
				{Name: "values", Type: "array", Description: "Command values as strings", Schema: stringListSchema},
				{Name: "time_of_day", Type: "string", Description: "HH:MM or HH:MM:SS"},
				{Name: "date", Type: "string", Description: "YYYY-MM-DD"},
				{Name: "am_pm_or_unknown", Type: "string", Description: "AM, PM, or UNKNOWN"},
				{Name: "delay", Type: "string", Description: "Relative delay, e.g. 5s, 20m, 1h"},
				{Name: "duration", Type: "string", Description: "How long the command should last, e.g. 30m"},
			},
		},
		{
			Name:        "cancel_schedules",
			Description: "Cancel pending schedules on the given devices, or on all devices when none are given.",
			Args: []api.ArgMetadata{
				{Name: "devices", Type: "array", Description: "Device ids to clear; all devices when omitted", Schema: stringListSchema},
			},
		},
	}
}

func (s *Simulator) ExecuteTool(ctx context.Context, name string, a map[string]interface{}) (*api.CallToolResult, error) {
	var (
		result interface{}
		err    error
	)
	switch name {
	case "list_structures":
		result, err = s.listStructures(a)
	case "create_room":
		result, err = s.createRoom(a)
	case "delete_room":
		result, err = s.deleteRoom(a)
	case "list_devices":
		result, err = s.listDevices(a)
	case "get_device":
		result, err = s.getDevice(a)
	case "execute_command":
		result, err = s.executeCommand(a)
	case "schedule_command":
		result, err = s.scheduleCommand(a)
	case "cancel_schedules":
		result, err = s.cancelSchedules(a)
	default:
		return nil, api.NewInvalidInputError("unknown googlehome tool: %s", name)
	}
	if err != nil {
		return nil, err
	}
	return api.NewResult(result), nil
}
