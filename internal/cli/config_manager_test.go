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

package cli_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"vizcast/internal/cli"
)

func testManager(t *testing.T) *cli.ConfigManager {
	t.Helper()
	return cli.NewConfigManager(filepath.Join(t.TempDir(), "vizcast.yaml"))
}

func livingRoomTV() cli.DeviceConfig {
	return cli.DeviceConfig{
		ID:        "living-room",
		Name:      "Living Room TV",
		Type:      "tv",
		Address:   "192.168.1.50",
		AuthToken: "Zabcde12345",
		PairingID: "abc-123",
	}
}

func TestConfigManagerLoad(t *testing.T) {
	t.Run("creates empty registry on first use", func(t *testing.T) {
		manager := testManager(t)

		config, err := manager.LoadConfig()
		require.NoError(t, err)
		assert.Empty(t, config.Devices)
		assert.Empty(t, config.Default)

		// The file exists now
		_, err = os.Stat(manager.GetConfigPath())
		assert.NoError(t, err)
	})

	t.Run("round-trips through yaml", func(t *testing.T) {
		manager := testManager(t)
		require.NoError(t, manager.AddDevice(livingRoomTV()))

		loaded, err := manager.GetDevice("living-room")
		require.NoError(t, err)
		assert.Equal(t, livingRoomTV(), *loaded)
	})

	t.Run("rejects malformed registry", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "vizcast.yaml")
		require.NoError(t, os.WriteFile(path, []byte("devices:\n  - id: x\n    type: toaster\n    address: 1.2.3.4\n"), 0600))

		manager := cli.NewConfigManager(path)
		_, err := manager.LoadConfig()

		assert.Error(t, err)
		assert.Contains(t, err.Error(), "must be 'tv' or 'speaker'")
	})
}

func TestAddDevice(t *testing.T) {
	t.Run("first device becomes default", func(t *testing.T) {
		manager := testManager(t)
		require.NoError(t, manager.AddDevice(livingRoomTV()))

		config, err := manager.LoadConfig()
		require.NoError(t, err)
		assert.Equal(t, "living-room", config.Default)
	})

	t.Run("second device does not steal the default", func(t *testing.T) {
		manager := testManager(t)
		require.NoError(t, manager.AddDevice(livingRoomTV()))
		require.NoError(t, manager.AddDevice(cli.DeviceConfig{
			ID: "bedroom", Type: "speaker", Address: "192.168.1.51",
		}))

		config, err := manager.LoadConfig()
		require.NoError(t, err)
		assert.Equal(t, "living-room", config.Default)
		assert.Len(t, config.Devices, 2)
	})

	t.Run("rejects duplicate IDs", func(t *testing.T) {
		manager := testManager(t)
		require.NoError(t, manager.AddDevice(livingRoomTV()))

		err := manager.AddDevice(livingRoomTV())
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "already exists")
	})
}

func TestRemoveDevice(t *testing.T) {
	t.Run("removes and clears default", func(t *testing.T) {
		manager := testManager(t)
		require.NoError(t, manager.AddDevice(livingRoomTV()))

		require.NoError(t, manager.RemoveDevice("living-room"))

		config, err := manager.LoadConfig()
		require.NoError(t, err)
		assert.Empty(t, config.Devices)
		assert.Empty(t, config.Default)
	})

	t.Run("unknown device errors", func(t *testing.T) {
		manager := testManager(t)
		assert.Error(t, manager.RemoveDevice("ghost"))
	})
}

func TestUpdateDevice(t *testing.T) {
	manager := testManager(t)
	require.NoError(t, manager.AddDevice(livingRoomTV()))

	updated := livingRoomTV()
	updated.AuthToken = "Znewtoken999"
	require.NoError(t, manager.UpdateDevice("living-room", updated))

	loaded, err := manager.GetDevice("living-room")
	require.NoError(t, err)
	assert.Equal(t, "Znewtoken999", loaded.AuthToken)
}

func TestDefaultDevice(t *testing.T) {
	t.Run("sole device is the implicit default", func(t *testing.T) {
		manager := testManager(t)
		require.NoError(t, manager.AddDevice(livingRoomTV()))

		// Clear the explicit default and check the fallback
		config, err := manager.LoadConfig()
		require.NoError(t, err)
		config.Default = ""
		require.NoError(t, manager.SaveConfig(config))

		device, err := manager.GetDefaultDevice()
		require.NoError(t, err)
		assert.Equal(t, "living-room", device.ID)
	})

	t.Run("explicit default wins among several", func(t *testing.T) {
		manager := testManager(t)
		require.NoError(t, manager.AddDevice(livingRoomTV()))
		require.NoError(t, manager.AddDevice(cli.DeviceConfig{
			ID: "bedroom", Type: "tv", Address: "192.168.1.51",
		}))
		require.NoError(t, manager.SetDefaultDevice("bedroom"))

		device, err := manager.GetDefaultDevice()
		require.NoError(t, err)
		assert.Equal(t, "bedroom", device.ID)
	})

	t.Run("no default among several errors", func(t *testing.T) {
		manager := testManager(t)
		require.NoError(t, manager.AddDevice(livingRoomTV()))
		require.NoError(t, manager.AddDevice(cli.DeviceConfig{
			ID: "bedroom", Type: "tv", Address: "192.168.1.51",
		}))

		config, err := manager.LoadConfig()
		require.NoError(t, err)
		config.Default = ""
		require.NoError(t, manager.SaveConfig(config))

		_, err = manager.GetDefaultDevice()
		assert.Error(t, err)
	})

	t.Run("cannot set unknown device as default", func(t *testing.T) {
		manager := testManager(t)
		assert.Error(t, manager.SetDefaultDevice("ghost"))
	})
}

func TestDeviceExists(t *testing.T) {
	manager := testManager(t)
	require.NoError(t, manager.AddDevice(livingRoomTV()))

	assert.True(t, manager.DeviceExists("living-room"))
	assert.False(t, manager.DeviceExists("ghost"))
}
