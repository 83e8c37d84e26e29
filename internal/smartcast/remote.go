package smartcast

import (
	"fmt"

	"vizcast/internal"
	"vizcast/internal/device"
)

// SmartCastRemote implements the Device interface for Vizio SmartCast
// devices
type SmartCastRemote struct {
	client *SmartCastClient
	info   device.DeviceInfo
}

// NewSmartCastRemote creates a new SmartCastRemote device
func NewSmartCastRemote(address, authToken string, deviceType DeviceType, options internal.FnModeOptions) *SmartCastRemote {
	client := NewSmartCastClient(address, authToken, deviceType, options)

	capabilities := []string{
		"remote_control",
		"power_control",
		"input_control",
	}
	if deviceType == DeviceTypeTV {
		capabilities = append(capabilities, "app_control")
	}

	return &SmartCastRemote{
		client: client,
		info: device.DeviceInfo{
			Type:         fmt.Sprintf("smartcast_%s", deviceType),
			Model:        "Vizio SmartCast",
			Address:      address,
			Capabilities: capabilities,
		},
	}
}

// GetDeviceInfo returns information about this SmartCast device
func (sr *SmartCastRemote) GetDeviceInfo() device.DeviceInfo {
	return sr.info
}

// Client exposes the underlying API client
func (sr *SmartCastRemote) Client() *SmartCastClient {
	return sr.client
}

// remoteActionMap maps generic remote actions to SmartCast key codes
var remoteActionMap = map[device.RemoteAction]Key{
	device.RemoteActionPower:       KeyPowerToggle,
	device.RemoteActionPowerOn:     KeyPowerOn,
	device.RemoteActionPowerOff:    KeyPowerOff,
	device.RemoteActionVolumeUp:    KeyVolumeUp,
	device.RemoteActionVolumeDown:  KeyVolumeDown,
	device.RemoteActionMute:        KeyMuteToggle,
	device.RemoteActionChannelUp:   KeyChannelUp,
	device.RemoteActionChannelDown: KeyChannelDown,
	device.RemoteActionChannelPrev: KeyChannelPrev,
	device.RemoteActionUp:          KeyUp,
	device.RemoteActionDown:        KeyDown,
	device.RemoteActionLeft:        KeyLeft,
	device.RemoteActionRight:       KeyRight,
	device.RemoteActionConfirm:     KeyOK,
	device.RemoteActionHome:        KeyHome,
	device.RemoteActionMenu:        KeyMenu,
	device.RemoteActionBack:        KeyBack,
	device.RemoteActionExit:        KeyExit,
	device.RemoteActionInfo:        KeyInfo,
	device.RemoteActionInputNext:   KeyInputNext,
	device.RemoteActionPlay:        KeyPlay,
	device.RemoteActionPause:       KeyPause,
	device.RemoteActionSeekFwd:     KeySeekForward,
	device.RemoteActionSeekBack:    KeySeekBack,
	device.RemoteActionCCToggle:    KeyCCToggle,
}

// Process handles JSON action requests and routes them to appropriate methods
func (sr *SmartCastRemote) Process(actionJSON []byte) (*device.ActionResponse, error) {
	request, err := device.ParseActionRequest(actionJSON)
	if err != nil {
		return &device.ActionResponse{
			Success: false,
			Error:   err.Error(),
		}, nil
	}

	switch request.Type {
	case device.ActionTypeRemote:
		return sr.processRemoteAction(request)
	case device.ActionTypeControl:
		return sr.processControlAction(request)
	default:
		return &device.ActionResponse{
			Success: false,
			Error:   fmt.Sprintf("unsupported action type: %s", request.Type),
		}, nil
	}
}

// processRemoteAction handles remote key press actions
func (sr *SmartCastRemote) processRemoteAction(request *device.ActionRequest) (*device.ActionResponse, error) {
	key, exists := remoteActionMap[device.RemoteAction(request.Action)]
	if !exists {
		return &device.ActionResponse{
			Success: false,
			Error:   fmt.Sprintf("unsupported remote action: %s", request.Action),
		}, nil
	}

	if err := sr.client.KeyPress(key); err != nil {
		return &device.ActionResponse{
			Success: false,
			Error:   fmt.Sprintf("key press failed: %v", err),
		}, nil
	}

	return &device.ActionResponse{
		Success: true,
		Data:    fmt.Sprintf("Remote action '%s' executed successfully", request.Action),
	}, nil
}

// processControlAction handles API control actions
func (sr *SmartCastRemote) processControlAction(request *device.ActionRequest) (*device.ActionResponse, error) {
	switch device.ControlAction(request.Action) {
	case device.ControlActionPowerState:
		on, err := sr.client.PowerState()
		return controlResult(map[string]any{"on": on}, err)

	case device.ControlActionCurrentApp:
		name, err := sr.client.CurrentAppName()
		return controlResult(map[string]any{"name": name}, err)

	case device.ControlActionAppConfig:
		config, err := sr.client.CurrentApp()
		return controlResult(config, err)

	case device.ControlActionLaunchApp:
		return sr.processLaunchApp(request.Parameters)

	case device.ControlActionAppList:
		return controlResult(AppNames(), nil)

	case device.ControlActionCurrentInput:
		input, err := sr.client.CurrentInput()
		return controlResult(map[string]any{"input": input}, err)

	case device.ControlActionInputList:
		inputs, err := sr.client.ListInputs()
		return controlResult(inputs, err)

	case device.ControlActionSetInput:
		name := getString(request.Parameters, "name")
		if name == nil {
			return &device.ActionResponse{
				Success: false,
				Error:   "set_input requires a 'name' parameter",
			}, nil
		}
		return controlResult(nil, sr.client.SetInput(*name))

	case device.ControlActionVolume:
		level, err := sr.client.Volume()
		return controlResult(map[string]any{"level": level}, err)

	default:
		return &device.ActionResponse{
			Success: false,
			Error:   fmt.Sprintf("unsupported control action: %s", request.Action),
		}, nil
	}
}

// processLaunchApp launches by name when a 'name' parameter is present,
// otherwise by explicit app_id / name_space / message parameters
func (sr *SmartCastRemote) processLaunchApp(params map[string]any) (*device.ActionResponse, error) {
	if name := getString(params, "name"); name != nil {
		return controlResult(nil, sr.client.LaunchAppByName(*name))
	}

	appID := getString(params, "app_id")
	nameSpace := getInt(params, "name_space")
	if appID == nil || nameSpace == nil {
		return &device.ActionResponse{
			Success: false,
			Error:   "launch_app requires 'name' or both 'app_id' and 'name_space' parameters",
		}, nil
	}

	config := NewAppConfig(*appID, *nameSpace, getString(params, "message"))
	return controlResult(nil, sr.client.LaunchApp(config))
}

func controlResult(data any, err error) (*device.ActionResponse, error) {
	if err != nil {
		return &device.ActionResponse{
			Success: false,
			Error:   err.Error(),
		}, nil
	}

	return &device.ActionResponse{
		Success: true,
		Data:    data,
	}, nil
}
