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

// DeviceType identifies the class of SmartCast device being controlled
type DeviceType string

const (
	DeviceTypeTV      DeviceType = "tv"
	DeviceTypeSpeaker DeviceType = "speaker"
)

// AppConfig is the (app id, namespace, message) tuple SmartCast uses to
// identify and launch an app. All fields are pointers: the device reports
// "no app running" as an all-null config, and NAME_SPACE 0 is a valid
// value for cast-style apps.
type AppConfig struct {
	AppID     *string `json:"APP_ID,omitempty"`
	NameSpace *int    `json:"NAME_SPACE,omitempty"`
	Message   *string `json:"MESSAGE,omitempty"`
}

// NewAppConfig creates an AppConfig with the required id and namespace.
// message may be nil for apps that take no launch payload.
func NewAppConfig(appID string, nameSpace int, message *string) AppConfig {
	return AppConfig{
		AppID:     &appID,
		NameSpace: &nameSpace,
		Message:   message,
	}
}

// Equal reports structural equality of two configs, comparing the
// pointed-to values rather than the pointers
func (c AppConfig) Equal(other AppConfig) bool {
	return strPtrEqual(c.AppID, other.AppID) &&
		intPtrEqual(c.NameSpace, other.NameSpace) &&
		strPtrEqual(c.Message, other.Message)
}

// IsEmpty reports whether all fields are null, the shape the device
// returns when nothing is running
func (c AppConfig) IsEmpty() bool {
	return c.AppID == nil && c.NameSpace == nil && c.Message == nil
}

// AppDefinition describes one known app: its display name, regional
// availability, SmartCast catalog id, and launch config
type AppDefinition struct {
	Name      string
	Country   []string
	CatalogID string
	Config    AppConfig
}

// LaunchRequest is a built "launch app" command: the endpoint path for
// the target device type plus the config payload to send
type LaunchRequest struct {
	Endpoint string
	Value    AppConfig
}

// PairingChallenge holds the state returned by a pairing start request,
// needed to complete the handshake with the on-screen PIN
type PairingChallenge struct {
	Token         int
	ChallengeType int
}

func strPtrEqual(a, b *string) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

func intPtrEqual(a, b *int) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}
