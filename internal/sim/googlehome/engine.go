package googlehome

import (
	"strconv"
	"strings"

	"mimic/internal/api"
)

// commandTrait returns the trait a command belongs to.
func commandTrait(command string) (string, bool) {
	for trait, commands := range traitCommands {
		for _, c := range commands {
			if c == command {
				return trait, true
			}
		}
	}
	return "", false
}

// validateCommand checks the command is known, its value arity matches,
// and its first numeric value is inside the allowed range.
func validateCommand(command string, values []string) error {
	if !commandsRequiringValues[command] && !commandsWithoutValues[command] {
		return api.NewInvalidInputError("unknown command %q", command)
	}
	if commandsRequiringValues[command] && len(values) == 0 {
		return api.NewInvalidInputError("command %q requires a value", command)
	}
	if rng, ok := commandRanges[command]; ok {
		v, err := strconv.ParseFloat(values[0], 64)
		if err != nil {
			return api.NewInvalidInputError("command %q requires a numeric value, got %q", command, values[0])
		}
		if v < rng[0] || v > rng[1] {
			return api.NewInvalidInputError("value for %q must be between %g and %g", command, rng[0], rng[1])
		}
	}
	return nil
}

func floatValue(command string, values []string) (float64, error) {
	v, err := strconv.ParseFloat(values[0], 64)
	if err != nil {
		return 0, api.NewInvalidInputError("command %q requires a numeric value, got %q", command, values[0])
	}
	return v, nil
}

func (d *Device) floatState(name string) float64 {
	s := d.state(name)
	if s == nil {
		return 0
	}
	switch v := s.Value.(type) {
	case float64:
		return v
	case int:
		return float64(v)
	}
	return 0
}

func (d *Device) boolState(name string) bool {
	if s := d.state(name); s != nil {
		if b, ok := s.Value.(bool); ok {
			return b
		}
	}
	return false
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// applyCommand mutates the device state for a validated command. The
// device is assumed to support the command's trait.
func applyCommand(d *Device, command string, values []string) error {
	if commandsWithoutValues[command] {
		values = nil
	}
	switch command {
	case "on":
		d.setState(StateOn, true)
	case "off":
		d.setState(StateOn, false)
	case "toggle_on_off":
		d.setState(StateOn, !d.boolState(StateOn))

	case "open":
		d.setState(StateOpenPercent, 100.0)
	case "close":
		d.setState(StateOpenPercent, 0.0)
	case "open_percent", "open_ambiguous_amount":
		delta := 10.0
		if len(values) > 0 {
			v, err := floatValue(command, values)
			if err != nil {
				return err
			}
			delta = v
		}
		d.setState(StateOpenPercent, clamp(d.floatState(StateOpenPercent)+delta, 0, 100))
	case "close_percent", "close_ambiguous_amount":
		delta := 10.0
		if len(values) > 0 {
			v, err := floatValue(command, values)
			if err != nil {
				return err
			}
			delta = v
		}
		d.setState(StateOpenPercent, clamp(d.floatState(StateOpenPercent)-delta, 0, 100))
	case "open_percent_absolute":
		v, err := floatValue(command, values)
		if err != nil {
			return err
		}
		d.setState(StateOpenPercent, v)
	case "close_percent_absolute":
		v, err := floatValue(command, values)
		if err != nil {
			return err
		}
		d.setState(StateOpenPercent, 100.0-v)

	case "start":
		d.setState(StateIsStopped, false)
	case "stop":
		d.setState(StateIsStopped, true)
	case "pause":
		d.setState(StateIsPaused, true)
	case "unpause":
		d.setState(StateIsPaused, false)

	case "activate_scene", "deactivate_scene":
		// scenes carry no state

	case "set_input":
		d.setState(StateCurrentInput, values[0])
	case "next_input", "previous_input":
		// input cycling needs an input list the device does not model
	case "open_app":
		d.setState(StateCurrentApp, values[0])

	case "set_brightness":
		v, err := floatValue(command, values)
		if err != nil {
			return err
		}
		d.setState(StateBrightness, v)
	case "brighter_percentage", "brighter_ambiguous":
		delta := 0.1
		if len(values) > 0 {
			v, err := floatValue(command, values)
			if err != nil {
				return err
			}
			delta = v / 100.0
		}
		d.setState(StateBrightness, clamp(d.floatState(StateBrightness)+delta, 0, 1))
	case "dimmer_percentage", "dimmer_ambiguous":
		delta := 0.1
		if len(values) > 0 {
			v, err := floatValue(command, values)
			if err != nil {
				return err
			}
			delta = v / 100.0
		}
		d.setState(StateBrightness, clamp(d.floatState(StateBrightness)-delta, 0, 1))

	case "change_color":
		d.setState(StateColor, values[0])

	case "dock":
		d.setState(StateIsDocked, true)
		d.setState(StateIsStopped, true)

	case "set_fan_speed":
		level, ok := fanSpeedLevels[strings.ToLower(values[0])]
		if !ok {
			return api.NewInvalidInputError("fan speed must be one of low, medium, high, got %q", values[0])
		}
		d.setState(StateFanSpeed, level)
	case "set_fan_speed_percentage":
		v, err := floatValue(command, values)
		if err != nil {
			return err
		}
		d.setState(StateFanSpeed, int(v))
	case "fan_up_percentage", "fan_up_ambiguous":
		delta := 10.0
		if len(values) > 0 {
			v, err := floatValue(command, values)
			if err != nil {
				return err
			}
			delta = v
		}
		d.setState(StateFanSpeed, int(clamp(d.floatState(StateFanSpeed)+delta, 0, 100)))
	case "fan_down_percentage", "fan_down_ambiguous":
		delta := 10.0
		if len(values) > 0 {
			v, err := floatValue(command, values)
			if err != nil {
				return err
			}
			delta = v
		}
		d.setState(StateFanSpeed, int(clamp(d.floatState(StateFanSpeed)-delta, 0, 100)))

	case "set_temperature", "set_temperature_celsius", "set_temperature_fahrenheit":
		v, err := floatValue(command, values)
		if err != nil {
			return err
		}
		d.setState(StateThermostatSetpont, v)
	case "set_temperature_mode":
		if err := d.validateThermostatMode(values[0]); err != nil {
			return err
		}
		d.setState(StateThermostatMode, values[0])
	case "set_mode_and_temperature", "set_mode_and_temperature_celsius", "set_mode_and_temperature_fahrenheit":
		if len(values) < 2 {
			return api.NewInvalidInputError("command %q requires a mode and a temperature", command)
		}
		if err := d.validateThermostatMode(values[0]); err != nil {
			return err
		}
		v, err := strconv.ParseFloat(values[1], 64)
		if err != nil {
			return api.NewInvalidInputError("command %q requires a numeric temperature, got %q", command, values[1])
		}
		d.setState(StateThermostatMode, values[0])
		d.setState(StateThermostatSetpont, v)
	case "change_relative_temperature":
		v, err := floatValue(command, values)
		if err != nil {
			return err
		}
		d.setState(StateThermostatSetpont, d.floatState(StateThermostatSetpont)+v)
	case "warmer_ambiguous":
		d.setState(StateThermostatSetpont, d.floatState(StateThermostatSetpont)+1)
	case "cooler_ambiguous":
		d.setState(StateThermostatSetpont, d.floatState(StateThermostatSetpont)-1)

	case "toggle_setting":
		if len(values) < 2 {
			return api.NewInvalidInputError("toggle_setting requires a toggle id and a boolean value")
		}
		enabled, err := strconv.ParseBool(strings.ToLower(values[1]))
		if err != nil {
			return api.NewInvalidInputError("toggle_setting value must be true or false, got %q", values[1])
		}
		toggles := map[string]interface{}{}
		if s := d.state(StateActiveToggles); s != nil {
			if m, ok := s.Value.(map[string]interface{}); ok {
				toggles = m
			}
		}
		toggles[values[0]] = enabled
		d.setState(StateActiveToggles, toggles)

	case "set_mode":
		if len(values) < 2 {
			return api.NewInvalidInputError("set_mode requires a mode id and a setting")
		}
		return d.setMode(values[0], values[1])
	case "set_light_effect", "set_light_effect_with_duration":
		effect := values[0]
		if !lightEffects[effect] {
			return api.NewInvalidInputError("light effect must be one of sleep, wake, colorLoop, pulse, got %q", effect)
		}
		return d.setMode("lightEffect", effect)

	case "find_device":
		d.setState(StateIsRinging, true)
	case "silence_ringing":
		d.setState(StateIsRinging, false)

	case "volume_up", "volume_up_percentage", "volume_up_ambiguous":
		delta := 10.0
		if len(values) > 0 {
			v, err := floatValue(command, values)
			if err != nil {
				return err
			}
			delta = v
		}
		d.setState(StateCurrentVolume, int(clamp(d.floatState(StateCurrentVolume)+delta, 0, 100)))
	case "volume_down", "volume_down_percentage", "volume_down_ambiguous":
		delta := 10.0
		if len(values) > 0 {
			v, err := floatValue(command, values)
			if err != nil {
				return err
			}
			delta = v
		}
		d.setState(StateCurrentVolume, int(clamp(d.floatState(StateCurrentVolume)-delta, 0, 100)))
	case "set_volume_level", "set_volume_percentage":
		v, err := floatValue(command, values)
		if err != nil {
			return err
		}
		d.setState(StateCurrentVolume, int(v))
	case "mute":
		d.setState(StateIsMuted, true)
	case "unmute":
		d.setState(StateIsMuted, false)

	case "lock":
		d.setState(StateIsLocked, true)
	case "unlock":
		d.setState(StateIsLocked, false)

	default:
		return api.NewInvalidInputError("unknown command %q", command)
	}
	return nil
}

// validateThermostatMode checks a mode against the device's declared
// thermostatMode settings, when it declares any.
func (d *Device) validateThermostatMode(mode string) error {
	for _, tm := range d.TogglesModes {
		if tm.ID != StateThermostatMode || len(tm.Settings) == 0 {
			continue
		}
		for _, setting := range tm.Settings {
			if setting.ID == mode {
				return nil
			}
		}
		ids := make([]string, 0, len(tm.Settings))
		for _, setting := range tm.Settings {
			ids = append(ids, setting.ID)
		}
		return api.NewInvalidInputError("invalid thermostat mode %q, must be one of %s", mode, strings.Join(ids, ", "))
	}
	return nil
}

// setMode selects a setting in currentModes. Modes other than
// lightEffect must be declared in the device's toggles_modes.
func (d *Device) setMode(modeID, setting string) error {
	if modeID != "lightEffect" {
		declared := false
		for _, tm := range d.TogglesModes {
			if tm.ID == modeID {
				declared = true
				break
			}
		}
		if !declared {
			return api.NewInvalidInputError("device %s does not declare mode %q", d.ID, modeID)
		}
	}
	modes := map[string]interface{}{}
	if s := d.state(StateCurrentModes); s != nil {
		if m, ok := s.Value.(map[string]interface{}); ok {
			modes = m
		}
	}
	modes[modeID] = setting
	d.setState(StateCurrentModes, modes)
	return nil
}
