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

package bridge

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testDatabase(t *testing.T) *Database {
	t.Helper()
	database, err := NewDatabase(filepath.Join(t.TempDir(), "bridge.db"))
	require.NoError(t, err)
	t.Cleanup(func() { database.Close() })
	return database
}

func TestUsers(t *testing.T) {
	t.Run("creates a user with a generated api key", func(t *testing.T) {
		database := testDatabase(t)

		user, err := database.CreateUser("alice", "hashed-password")
		require.NoError(t, err)
		assert.Equal(t, "alice", user.Username)
		assert.Equal(t, "hashed-password", user.PasswordHash)
		assert.NotEmpty(t, user.APIKey)
		assert.NotZero(t, user.ID)
	})

	t.Run("usernames are unique", func(t *testing.T) {
		database := testDatabase(t)

		_, err := database.CreateUser("alice", "hash1")
		require.NoError(t, err)

		_, err = database.CreateUser("alice", "hash2")
		assert.Error(t, err)
	})

	t.Run("fetches by username", func(t *testing.T) {
		database := testDatabase(t)

		created, err := database.CreateUser("bob", "hash")
		require.NoError(t, err)

		fetched, err := database.GetUserByUsername("bob")
		require.NoError(t, err)
		assert.Equal(t, created.ID, fetched.ID)
	})

	t.Run("unknown user errors", func(t *testing.T) {
		database := testDatabase(t)

		_, err := database.GetUser(42)
		assert.Error(t, err)

		_, err = database.GetUserByUsername("nobody")
		assert.Error(t, err)
	})
}

func TestDevices(t *testing.T) {
	t.Run("assigns a device id when absent", func(t *testing.T) {
		database := testDatabase(t)

		device, err := database.AddDevice(Device{
			Name:       "Living Room TV",
			DeviceType: "tv",
			Address:    "192.168.1.50",
			AuthToken:  "Zabcde12345",
		})
		require.NoError(t, err)
		assert.NotEmpty(t, device.DeviceID)
		assert.Equal(t, "Living Room TV", device.Name)
	})

	t.Run("keeps an explicit device id", func(t *testing.T) {
		database := testDatabase(t)

		device, err := database.AddDevice(Device{
			DeviceID:   "living-room",
			Name:       "Living Room TV",
			DeviceType: "tv",
			Address:    "192.168.1.50",
		})
		require.NoError(t, err)
		assert.Equal(t, "living-room", device.DeviceID)

		fetched, err := database.GetDevice("living-room")
		require.NoError(t, err)
		assert.Equal(t, "192.168.1.50", fetched.Address)
	})

	t.Run("lists devices in insertion order", func(t *testing.T) {
		database := testDatabase(t)

		for _, name := range []string{"first", "second"} {
			_, err := database.AddDevice(Device{Name: name, DeviceType: "tv", Address: "10.0.0.1"})
			require.NoError(t, err)
		}

		devices, err := database.ListDevices()
		require.NoError(t, err)
		require.Len(t, devices, 2)
		assert.Equal(t, "first", devices[0].Name)
		assert.Equal(t, "second", devices[1].Name)
	})

	t.Run("removes a device", func(t *testing.T) {
		database := testDatabase(t)

		_, err := database.AddDevice(Device{DeviceID: "gone", Name: "TV", DeviceType: "tv", Address: "10.0.0.1"})
		require.NoError(t, err)

		require.NoError(t, database.RemoveDevice("gone"))

		_, err = database.GetDevice("gone")
		assert.Error(t, err)
	})

	t.Run("removing a missing device errors", func(t *testing.T) {
		database := testDatabase(t)
		assert.Error(t, database.RemoveDevice("ghost"))
	})
}

func TestActions(t *testing.T) {
	t.Run("records and lists newest first", func(t *testing.T) {
		database := testDatabase(t)

		require.NoError(t, database.RecordAction("living-room", "power", true, ""))
		require.NoError(t, database.RecordAction("living-room", "launch_app", false, "device rejected request"))

		records, err := database.ListActions("living-room", 0)
		require.NoError(t, err)
		require.Len(t, records, 2)
		assert.Equal(t, "launch_app", records[0].Action)
		assert.False(t, records[0].Success)
		assert.Equal(t, "device rejected request", records[0].Detail)
		assert.Equal(t, "power", records[1].Action)
	})

	t.Run("limit caps the result", func(t *testing.T) {
		database := testDatabase(t)

		for i := 0; i < 5; i++ {
			require.NoError(t, database.RecordAction("living-room", "volume", true, ""))
		}

		records, err := database.ListActions("living-room", 3)
		require.NoError(t, err)
		assert.Len(t, records, 3)
	})

	t.Run("actions are scoped to the device", func(t *testing.T) {
		database := testDatabase(t)

		require.NoError(t, database.RecordAction("living-room", "power", true, ""))
		require.NoError(t, database.RecordAction("bedroom", "power", true, ""))

		records, err := database.ListActions("bedroom", 0)
		require.NoError(t, err)
		require.Len(t, records, 1)
		assert.Equal(t, "bedroom", records[0].DeviceID)
	})
}
