package googlehome

// Device traits.
const (
	TraitOnOff              = "OnOff"
	TraitOpenClose          = "OpenClose"
	TraitStartStop          = "StartStop"
	TraitTransportControl   = "TransportControl"
	TraitScene              = "Scene"
	TraitInputSelector      = "InputSelector"
	TraitAppSelector        = "AppSelector"
	TraitBrightness         = "Brightness"
	TraitColorSetting       = "ColorSetting"
	TraitDock               = "Dock"
	TraitFanSpeed           = "FanSpeed"
	TraitTemperatureSetting = "TemperatureSetting"
	TraitToggles            = "Toggles"
	TraitLocator            = "Locator"
	TraitLightEffects       = "LightEffects"
	TraitVolume             = "Volume"
	TraitModes              = "Modes"
	TraitLockUnlock         = "LockUnlock"
)

// Device state names.
const (
	StateOn                = "on"
	StateIsPaused          = "isPaused"
	StateIsStopped         = "isStopped"
	StateBrightness        = "brightness"
	StateColor             = "color"
	StateThermostatSetpont = "thermostatTemperatureSetpoint"
	StateThermostatMode    = "thermostatMode"
	StateThermostatAmbient = "thermostatTemperatureAmbient"
	StateFanSpeed          = "fanSpeed"
	StateOpenPercent       = "openPercent"
	StateCurrentVolume     = "currentVolume"
	StateIsMuted           = "isMuted"
	StateCurrentInput      = "currentInput"
	StateCurrentApp        = "currentApp"
	StateIsLocked          = "isLocked"
	StateIsDocked          = "isDocked"
	StateActiveToggles     = "activeToggles"
	StateCurrentModes      = "currentModes"
	StateIsRinging         = "isRinging"
)

// traitCommands maps each trait to the commands it accepts.
var traitCommands = map[string][]string{
	TraitOnOff:            {"on", "off", "toggle_on_off"},
	TraitOpenClose:        {"open", "close", "open_percent", "close_percent", "open_percent_absolute", "close_percent_absolute", "open_ambiguous_amount", "close_ambiguous_amount"},
	TraitStartStop:        {"start", "stop", "pause", "unpause"},
	TraitTransportControl: {"start", "stop", "pause", "unpause"},
	TraitScene:            {"activate_scene", "deactivate_scene"},
	TraitInputSelector:    {"next_input", "previous_input", "set_input"},
	TraitAppSelector:      {"open_app"},
	TraitBrightness:       {"set_brightness", "brighter_ambiguous", "dimmer_ambiguous", "brighter_percentage", "dimmer_percentage"},
	TraitColorSetting:     {"change_color"},
	TraitDock:             {"dock"},
	TraitFanSpeed:         {"fan_up_ambiguous", "fan_down_ambiguous", "set_fan_speed", "set_fan_speed_percentage", "fan_up_percentage", "fan_down_percentage"},
	TraitTemperatureSetting: {
		"cooler_ambiguous", "warmer_ambiguous", "set_temperature", "set_temperature_celsius",
		"set_temperature_fahrenheit", "set_temperature_mode", "set_mode_and_temperature",
		"set_mode_and_temperature_fahrenheit", "set_mode_and_temperature_celsius",
		"change_relative_temperature",
	},
	TraitToggles:      {"toggle_setting"},
	TraitLocator:      {"find_device", "silence_ringing"},
	TraitLightEffects: {"set_light_effect", "set_light_effect_with_duration"},
	TraitVolume: {
		"volume_up", "volume_down", "volume_up_percentage", "volume_down_percentage",
		"volume_up_ambiguous", "volume_down_ambiguous", "set_volume_level",
		"set_volume_percentage", "mute", "unmute",
	},
	TraitModes:      {"set_mode"},
	TraitLockUnlock: {"lock", "unlock"},
}

// commandsRequiringValues lists commands whose values list must be
// non-empty. Commands absent here and from commandsWithoutValues are
// unknown.
var commandsRequiringValues = map[string]bool{
	"open_percent": true, "close_percent": true, "open_percent_absolute": true,
	"close_percent_absolute": true, "open_ambiguous_amount": true, "close_ambiguous_amount": true,
	"set_input": true, "open_app": true,
	"set_brightness": true, "brighter_ambiguous": true, "dimmer_ambiguous": true,
	"brighter_percentage": true, "dimmer_percentage": true, "change_color": true,
	"fan_up_ambiguous": true, "fan_down_ambiguous": true, "set_fan_speed": true,
	"set_fan_speed_percentage": true, "fan_up_percentage": true, "fan_down_percentage": true,
	"cooler_ambiguous": true, "warmer_ambiguous": true,
	"set_temperature": true, "set_temperature_celsius": true, "set_temperature_fahrenheit": true,
	"set_temperature_mode": true, "set_mode_and_temperature": true,
	"set_mode_and_temperature_fahrenheit": true, "set_mode_and_temperature_celsius": true,
	"change_relative_temperature": true, "toggle_setting": true,
	"set_light_effect": true, "set_light_effect_with_duration": true,
	"volume_up": true, "volume_down": true, "volume_up_percentage": true,
	"volume_down_percentage": true, "volume_up_ambiguous": true, "volume_down_ambiguous": true,
	"set_volume_level": true, "set_volume_percentage": true, "set_mode": true,
}

var commandsWithoutValues = map[string]bool{
	"on": true, "off": true, "toggle_on_off": true,
	"start": true, "stop": true, "pause": true, "unpause": true,
	"activate_scene": true, "deactivate_scene": true,
	"next_input": true, "previous_input": true,
	"open": true, "close": true, "dock": true,
	"find_device": true, "silence_ringing": true,
	"mute": true, "unmute": true,
	"lock": true, "unlock": true,
}

// commandRanges bounds the first numeric value of a command.
var commandRanges = map[string][2]float64{
	"open_percent": {0, 100}, "close_percent": {0, 100},
	"open_percent_absolute": {0, 100}, "close_percent_absolute": {0, 100},
	"set_brightness": {0, 1}, "brighter_percentage": {0, 100}, "dimmer_percentage": {0, 100},
	"set_fan_speed_percentage": {0, 100}, "fan_up_percentage": {0, 100}, "fan_down_percentage": {0, 100},
	"volume_up_percentage": {0, 100}, "volume_down_percentage": {0, 100},
	"set_volume_level": {0, 100}, "set_volume_percentage": {0, 100},
}

var fanSpeedLevels = map[string]int{"low": 33, "medium": 66, "high": 100}

var lightEffects = map[string]bool{"sleep": true, "wake": true, "colorLoop": true, "pulse": true}

// DeviceState is one named state entry on a device.
type DeviceState struct {
	Name  string      `json:"name"`
	Value interface{} `json:"value"`
}

// ModeSetting is one selectable setting of a mode.
type ModeSetting struct {
	ID    string   `json:"id"`
	Names []string `json:"names"`
}

// ToggleMode declares a toggle or mode a device supports.
type ToggleMode struct {
	ID       string        `json:"id"`
	Names    []string      `json:"names"`
	Settings []ModeSetting `json:"settings"`
}

// Schedule is a pending command on a device.
type Schedule struct {
	Action    string   `json:"action"`
	Values    []string `json:"values"`
	StartTime string   `json:"start_time"`
	Duration  string   `json:"duration,omitempty"`
}

// Device is a smart home device placed in a room.
type Device struct {
	ID           string         `json:"id"`
	Names        []string       `json:"names"`
	Types        []string       `json:"types"`
	Traits       []string       `json:"traits"`
	RoomName     string         `json:"room_name"`
	Structure    string         `json:"structure"`
	TogglesModes []ToggleMode   `json:"toggles_modes"`
	States       []*DeviceState `json:"device_state"`
	Schedules    []*Schedule    `json:"schedules"`
}

func (d *Device) hasTrait(trait string) bool {
	for _, t := range d.Traits {
		if t == trait {
			return true
		}
	}
	return false
}

func (d *Device) state(name string) *DeviceState {
	for _, s := range d.States {
		if s.Name == name {
			return s
		}
	}
	return nil
}

func (d *Device) setState(name string, value interface{}) {
	if s := d.state(name); s != nil {
		s.Value = value
		return
	}
	d.States = append(d.States, &DeviceState{Name: name, Value: value})
}

// Room groups devices inside a structure.
type Room struct {
	Name    string    `json:"name"`
	Devices []*Device `json:"devices"`
}

// Structure is a home with named rooms.
type Structure struct {
	Name  string           `json:"name"`
	Rooms map[string]*Room `json:"rooms"`
}

// State is the googlehome simulator database.
type State struct {
	Structures map[string]*Structure `json:"structures"`
}

func seedState() *State {
	home := &Structure{
		Name: "Home",
		Rooms: map[string]*Room{
			"Living Room": {
				Name: "Living Room",
				Devices: []*Device{
					{
						ID:        "light-1",
						Names:     []string{"Floor Lamp"},
						Types:     []string{"LIGHT"},
						Traits:    []string{TraitOnOff, TraitBrightness, TraitColorSetting, TraitLightEffects},
						RoomName:  "Living Room",
						Structure: "Home",
						States: []*DeviceState{
							{Name: StateOn, Value: false},
							{Name: StateBrightness, Value: 0.8},
							{Name: StateColor, Value: "warm white"},
						},
					},
					{
						ID:        "tv-1",
						Names:     []string{"Living Room TV"},
						Types:     []string{"TV"},
						Traits:    []string{TraitOnOff, TraitVolume, TraitInputSelector, TraitAppSelector, TraitTransportControl},
						RoomName:  "Living Room",
						Structure: "Home",
						States: []*DeviceState{
							{Name: StateOn, Value: true},
							{Name: StateCurrentVolume, Value: 35},
							{Name: StateIsMuted, Value: false},
							{Name: StateCurrentInput, Value: "HDMI 1"},
							{Name: StateCurrentApp, Value: "youtube"},
							{Name: StateIsPaused, Value: false},
							{Name: StateIsStopped, Value: true},
						},
					},
				},
			},
			"Bedroom": {
				Name: "Bedroom",
				Devices: []*Device{
					{
						ID:        "thermostat-1",
						Names:     []string{"Bedroom Thermostat"},
						Types:     []string{"THERMOSTAT"},
						Traits:    []string{TraitTemperatureSetting},
						RoomName:  "Bedroom",
						Structure: "Home",
						TogglesModes: []ToggleMode{
							{
								ID:    StateThermostatMode,
								Names: []string{"mode"},
								Settings: []ModeSetting{
									{ID: "heat", Names: []string{"heat"}},
									{ID: "cool", Names: []string{"cool"}},
									{ID: "off", Names: []string{"off"}},
								},
							},
						},
						States: []*DeviceState{
							{Name: StateThermostatSetpont, Value: 21.0},
							{Name: StateThermostatMode, Value: "heat"},
							{Name: StateThermostatAmbient, Value: 19.5},
						},
					},
					{
						ID:        "blinds-1",
						Names:     []string{"Bedroom Blinds"},
						Types:     []string{"BLINDS"},
						Traits:    []string{TraitOpenClose},
						RoomName:  "Bedroom",
						Structure: "Home",
						States: []*DeviceState{
							{Name: StateOpenPercent, Value: 100.0},
						},
					},
					{
						ID:        "lock-1",
						Names:     []string{"Bedroom Door Lock"},
						Types:     []string{"LOCK"},
						Traits:    []string{TraitLockUnlock},
						RoomName:  "Bedroom",
						Structure: "Home",
						States: []*DeviceState{
							{Name: StateIsLocked, Value: true},
						},
					},
				},
			},
			"Kitchen": {
				Name: "Kitchen",
				Devices: []*Device{
					{
						ID:        "vacuum-1",
						Names:     []string{"Robot Vacuum"},
						Types:     []string{"VACUUM"},
						Traits:    []string{TraitStartStop, TraitDock, TraitLocator},
						RoomName:  "Kitchen",
						Structure: "Home",
						States: []*DeviceState{
							{Name: StateIsStopped, Value: true},
							{Name: StateIsPaused, Value: false},
							{Name: StateIsDocked, Value: true},
							{Name: StateIsRinging, Value: false},
						},
					},
					{
						ID:        "fan-1",
						Names:     []string{"Ceiling Fan"},
						Types:     []string{"FAN"},
						Traits:    []string{TraitOnOff, TraitFanSpeed},
						RoomName:  "Kitchen",
						Structure: "Home",
						States: []*DeviceState{
							{Name: StateOn, Value: true},
							{Name: StateFanSpeed, Value: 33},
						},
					},
				},
			},
		},
	}
	return &State{Structures: map[string]*Structure{"Home": home}}
}
