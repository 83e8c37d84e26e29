// Copyright 2025 Arion Yau
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package smartcast

import "fmt"

// NewLaunchAppRequest builds a launch command for an explicit config.
// No validation is done on the config values; the device is the
// authority on what it accepts.
func NewLaunchAppRequest(deviceType DeviceType, config AppConfig) (*LaunchRequest, error) {
	endpoint, ok := ResolveEndpoint(deviceType, EndpointLaunchApp)
	if !ok {
		return nil, fmt.Errorf("device type %q does not support app launch", deviceType)
	}

	return &LaunchRequest{
		Endpoint: endpoint,
		Value:    config,
	}, nil
}

// NewLaunchAppByNameRequest resolves a display name through the catalog
// and builds a launch command from the matched config.
//
// An unmatched name does not fail: the request is built with an all-null
// config, which the device will reject or ignore. Callers that want to
// fail fast should check Value.IsEmpty() before sending.
func NewLaunchAppByNameRequest(deviceType DeviceType, appName string) (*LaunchRequest, error) {
	var config AppConfig
	if def, ok := FindAppByName(appName); ok {
		config = def.Config
	}

	return NewLaunchAppRequest(deviceType, config)
}

// ParseCurrentApp interprets a "current app" query response. The config
// lives under ITEM.VALUE; both keys and the config fields are matched
// case-insensitively. A missing or null VALUE means no app is running
// and yields the empty config. Malformed fields degrade to nil, never
// to an error.
func ParseCurrentApp(response map[string]any) AppConfig {
	item := getMap(response, "ITEM")
	value, ok := getCaseInsensitive(item, "VALUE")
	if !ok {
		return AppConfig{}
	}

	fields, ok := value.(map[string]any)
	if !ok {
		return AppConfig{}
	}

	return AppConfig{
		AppID:     getString(fields, "APP_ID"),
		NameSpace: getInt(fields, "NAME_SPACE"),
		Message:   getString(fields, "MESSAGE"),
	}
}

// CurrentAppName resolves a parsed config to a display name. Three
// outcomes: NoAppRunning when the config is empty, the catalog name on
// a match, UnknownApp otherwise. MESSAGE plays no part in the match.
func CurrentAppName(config AppConfig) string {
	if config.IsEmpty() {
		return NoAppRunning
	}

	if config.AppID == nil || config.NameSpace == nil {
		return UnknownApp
	}

	if def, ok := FindAppByConfig(*config.AppID, *config.NameSpace); ok {
		return def.Name
	}

	return UnknownApp
}
