package smartcast

// EndpointKey names a logical SmartCast operation that maps onto a
// device-type-specific URL path
type EndpointKey string

const (
	EndpointKeyPress     EndpointKey = "KEY_PRESS"
	EndpointBeginPair    EndpointKey = "BEGIN_PAIR"
	EndpointFinishPair   EndpointKey = "FINISH_PAIR"
	EndpointCancelPair   EndpointKey = "CANCEL_PAIR"
	EndpointLaunchApp    EndpointKey = "LAUNCH_APP"
	EndpointCurrentApp   EndpointKey = "CURRENT_APP"
	EndpointPowerMode    EndpointKey = "POWER_MODE"
	EndpointCurrentInput EndpointKey = "CURRENT_INPUT"
	EndpointListInputs   EndpointKey = "LIST_INPUTS"
	EndpointVolume       EndpointKey = "VOLUME"
)

// endpoints maps device type and operation to the URL path on the
// device. Speakers expose the settings tree under audio_settings and
// have no app launcher.
var endpoints = map[DeviceType]map[EndpointKey]string{
	DeviceTypeTV: {
		EndpointKeyPress:     "/key_command/",
		EndpointBeginPair:    "/pairing/start",
		EndpointFinishPair:   "/pairing/pair",
		EndpointCancelPair:   "/pairing/cancel",
		EndpointLaunchApp:    "/app/launch",
		EndpointCurrentApp:   "/app/current",
		EndpointPowerMode:    "/state/device/power_mode",
		EndpointCurrentInput: "/menu_native/dynamic/tv_settings/devices/current_input",
		EndpointListInputs:   "/menu_native/dynamic/tv_settings/devices/name_input",
		EndpointVolume:       "/menu_native/dynamic/tv_settings/audio/volume",
	},
	DeviceTypeSpeaker: {
		EndpointKeyPress:     "/key_command/",
		EndpointBeginPair:    "/pairing/start",
		EndpointFinishPair:   "/pairing/pair",
		EndpointCancelPair:   "/pairing/cancel",
		EndpointPowerMode:    "/state/device/power_mode",
		EndpointCurrentInput: "/menu_native/dynamic/audio_settings/input/current_input",
		EndpointListInputs:   "/menu_native/dynamic/audio_settings/input/name_input",
		EndpointVolume:       "/menu_native/dynamic/audio_settings/audio/volume",
	},
}

// ResolveEndpoint returns the URL path for an operation on a device
// type. ok is false when the device class does not support the
// operation (e.g. app launch on a speaker).
func ResolveEndpoint(deviceType DeviceType, key EndpointKey) (string, bool) {
	table, ok := endpoints[deviceType]
	if !ok {
		return "", false
	}
	path, ok := table[key]
	return path, ok
}
