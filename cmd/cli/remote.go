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

package cli

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbletea"
	"vizcast/internal/device"
	"vizcast/internal/smartcast"
)

// historyEntry is one executed action shown in the activity log
type historyEntry struct {
	Timestamp time.Time
	Action    string
	Success   bool
	Detail    string
}

// RemoteModel is the interactive remote control screen. Two modes: key
// mode sends remote presses, app mode picks an app from the catalog.
type RemoteModel struct {
	device     device.Device
	deviceInfo device.DeviceInfo

	appMode     bool
	selectedApp int
	appNames    []string

	history    []historyEntry
	maxHistory int

	debugMode bool
	testMode  bool

	width  int
	height int
}

// NewRemoteModel creates the remote screen for a connected device
func NewRemoteModel(dev device.Device, info device.DeviceInfo, debug, test bool) RemoteModel {
	return RemoteModel{
		device:     dev,
		deviceInfo: info,
		appNames:   smartcast.AppNames(),
		maxHistory: 6,
		debugMode:  debug,
		testMode:   test,
	}
}

// Init initializes the model
func (m RemoteModel) Init() tea.Cmd {
	return nil
}

// Update handles key events
func (m RemoteModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		if m.appMode {
			return m.updateAppMode(msg)
		}
		return m.updateKeyMode(msg)
	}

	return m, nil
}

func (m RemoteModel) updateKeyMode(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "q":
		return m, tea.Quit

	case "a":
		m.appMode = true
		return m, nil

	case "up":
		return m.sendRemote(device.RemoteActionUp), nil
	case "down":
		return m.sendRemote(device.RemoteActionDown), nil
	case "left":
		return m.sendRemote(device.RemoteActionLeft), nil
	case "right":
		return m.sendRemote(device.RemoteActionRight), nil
	case "enter":
		return m.sendRemote(device.RemoteActionConfirm), nil

	case "p":
		return m.sendRemote(device.RemoteActionPower), nil
	case "+", "=":
		return m.sendRemote(device.RemoteActionVolumeUp), nil
	case "-":
		return m.sendRemote(device.RemoteActionVolumeDown), nil
	case "m":
		return m.sendRemote(device.RemoteActionMute), nil

	case "ctrl+up":
		return m.sendRemote(device.RemoteActionChannelUp), nil
	case "ctrl+down":
		return m.sendRemote(device.RemoteActionChannelDown), nil

	case "h":
		return m.sendRemote(device.RemoteActionHome), nil
	case "backspace":
		return m.sendRemote(device.RemoteActionBack), nil
	case "i":
		return m.sendRemote(device.RemoteActionInputNext), nil
	case "x":
		return m.sendRemote(device.RemoteActionExit), nil

	case "c":
		return m.sendControl(device.ControlActionCurrentApp, nil), nil
	}

	return m, nil
}

func (m RemoteModel) updateAppMode(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "q", "esc", "a":
		m.appMode = false
		return m, nil

	case "up":
		if m.selectedApp > 0 {
			m.selectedApp--
		}
		return m, nil

	case "down":
		if m.selectedApp < len(m.appNames)-1 {
			m.selectedApp++
		}
		return m, nil

	case "enter":
		name := m.appNames[m.selectedApp]
		m.appMode = false
		return m.sendControl(device.ControlActionLaunchApp, map[string]any{"name": name}), nil
	}

	return m, nil
}

// sendRemote dispatches a remote key action to the device
func (m RemoteModel) sendRemote(action device.RemoteAction) RemoteModel {
	return m.send(device.ActionRequest{
		Type:   device.ActionTypeRemote,
		Action: string(action),
	})
}

// sendControl dispatches a control action to the device
func (m RemoteModel) sendControl(action device.ControlAction, params map[string]any) RemoteModel {
	return m.send(device.ActionRequest{
		Type:       device.ActionTypeControl,
		Action:     string(action),
		Parameters: params,
	})
}

func (m RemoteModel) send(request device.ActionRequest) RemoteModel {
	entry := historyEntry{
		Timestamp: time.Now(),
		Action:    request.Action,
	}

	if m.testMode {
		entry.Success = true
		entry.Detail = "test mode, not sent"
		return m.appendHistory(entry)
	}

	actionJSON, err := json.Marshal(request)
	if err != nil {
		entry.Detail = err.Error()
		return m.appendHistory(entry)
	}

	response, err := m.device.Process(actionJSON)
	if err != nil {
		entry.Detail = err.Error()
		return m.appendHistory(entry)
	}

	entry.Success = response.Success
	if response.Error != "" {
		entry.Detail = response.Error
	} else if response.Data != nil {
		if data, marshalErr := json.Marshal(response.Data); marshalErr == nil {
			entry.Detail = string(data)
		}
	}

	return m.appendHistory(entry)
}

func (m RemoteModel) appendHistory(entry historyEntry) RemoteModel {
	m.history = append(m.history, entry)
	if len(m.history) > m.maxHistory {
		m.history = m.history[len(m.history)-m.maxHistory:]
	}
	return m
}

// View renders the remote screen
func (m RemoteModel) View() string {
	if m.appMode {
		return m.renderAppView()
	}
	return m.renderKeyView()
}

func (m RemoteModel) renderKeyView() string {
	var sections []string

	sections = append(sections, titleStyle.Render("Vizcast - SmartCast Remote"))

	deviceLine := successStyle.Render("📺 " + m.deviceInfo.Model + " @ " + m.deviceInfo.Address)
	if m.testMode {
		deviceLine += " " + errorStyle.Render("(test mode)")
	}
	sections = append(sections, deviceLine)

	sections = append(sections, "")
	sections = append(sections, subtitleStyle.Render("Keys:"))
	sections = append(sections, helpStyle.Render(strings.Join([]string{
		"↑/↓/←/→: Navigate",
		"Enter: OK",
		"p: Power",
		"+/-: Volume",
		"m: Mute",
	}, " • ")))
	sections = append(sections, helpStyle.Render(strings.Join([]string{
		"h: Home",
		"Backspace: Back",
		"i: Input",
		"x: Exit",
		"c: Current app",
		"a: App launcher",
		"q: Quit",
	}, " • ")))

	sections = append(sections, "")
	sections = append(sections, m.renderHistory())

	return strings.Join(sections, "\n")
}

func (m RemoteModel) renderAppView() string {
	var sections []string

	sections = append(sections, titleStyle.Render("Vizcast - Launch App"))
	sections = append(sections, "")

	// Keep the selection visible on small terminals
	visible := 12
	start := 0
	if m.selectedApp >= visible {
		start = m.selectedApp - visible + 1
	}
	end := start + visible
	if end > len(m.appNames) {
		end = len(m.appNames)
	}

	for i := start; i < end; i++ {
		cursor := "  "
		line := m.appNames[i]
		if i == m.selectedApp {
			cursor = "> "
			line = selectedStyle.Render(line)
		}
		sections = append(sections, cursor+line)
	}

	sections = append(sections, "")
	sections = append(sections, helpStyle.Render("↑/↓: Navigate • Enter: Launch • Esc: Back"))

	return strings.Join(sections, "\n")
}

func (m RemoteModel) renderHistory() string {
	if len(m.history) == 0 {
		return helpStyle.Render("No actions yet")
	}

	var lines []string
	lines = append(lines, subtitleStyle.Render("Activity:"))
	for i := len(m.history) - 1; i >= 0; i-- {
		entry := m.history[i]
		status := successStyle.Render("✓")
		if !entry.Success {
			status = errorStyle.Render("✗")
		}
		line := fmt.Sprintf("%s %s %s", entry.Timestamp.Format("15:04:05"), status, entry.Action)
		if entry.Detail != "" {
			line += helpStyle.Render(" " + truncate(entry.Detail, 60))
		}
		lines = append(lines, line)
	}
	return strings.Join(lines, "\n")
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max-1] + "…"
}

// StartRemote runs the interactive remote for a connected device
func StartRemote(dev device.Device, info device.DeviceInfo, debug, test bool) error {
	model := NewRemoteModel(dev, info, debug, test)

	program := tea.NewProgram(model, tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("failed to run remote: %w", err)
	}

	return nil
}
