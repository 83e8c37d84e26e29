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
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"vizcast/internal"
)

func testServer(t *testing.T) (*APIServer, *httptest.Server) {
	t.Helper()

	database, err := NewDatabase(filepath.Join(t.TempDir(), "bridge.db"))
	require.NoError(t, err)
	t.Cleanup(func() { database.Close() })

	api := NewAPIServer(database, "test-secret-key", internal.FnModeOptions{})
	server := httptest.NewServer(api.router())
	t.Cleanup(server.Close)

	return api, server
}

func postJSON(t *testing.T, url, token string, body any) *http.Response {
	t.Helper()

	data, err := json.Marshal(body)
	require.NoError(t, err)

	req, err := http.NewRequest("POST", url, bytes.NewReader(data))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	return resp
}

func loginToken(t *testing.T, baseURL string) string {
	t.Helper()

	resp := postJSON(t, baseURL+"/api/v1/auth/register", "", map[string]string{
		"username": "alice", "password": "hunter22",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	resp.Body.Close()

	resp = postJSON(t, baseURL+"/api/v1/auth/login", "", map[string]string{
		"username": "alice", "password": "hunter22",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	defer resp.Body.Close()

	var payload struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&payload))
	require.NotEmpty(t, payload.Token)
	return payload.Token
}

func TestHealthEndpoint(t *testing.T) {
	_, server := testServer(t)

	resp, err := http.Get(server.URL + "/api/v1/health")
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestAuthFlow(t *testing.T) {
	t.Run("register, login, me", func(t *testing.T) {
		_, server := testServer(t)
		token := loginToken(t, server.URL)

		req, err := http.NewRequest("GET", server.URL+"/api/v1/auth/me", nil)
		require.NoError(t, err)
		req.Header.Set("Authorization", "Bearer "+token)

		resp, err := http.DefaultClient.Do(req)
		require.NoError(t, err)
		defer resp.Body.Close()

		require.Equal(t, http.StatusOK, resp.StatusCode)

		var user User
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&user))
		assert.Equal(t, "alice", user.Username)
	})

	t.Run("login with wrong password fails", func(t *testing.T) {
		_, server := testServer(t)
		loginToken(t, server.URL)

		resp := postJSON(t, server.URL+"/api/v1/auth/login", "", map[string]string{
			"username": "alice", "password": "wrong",
		})
		defer resp.Body.Close()

		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("duplicate registration conflicts", func(t *testing.T) {
		_, server := testServer(t)
		loginToken(t, server.URL)

		resp := postJSON(t, server.URL+"/api/v1/auth/register", "", map[string]string{
			"username": "alice", "password": "again",
		})
		defer resp.Body.Close()

		assert.Equal(t, http.StatusConflict, resp.StatusCode)
	})

	t.Run("register requires credentials", func(t *testing.T) {
		_, server := testServer(t)

		resp := postJSON(t, server.URL+"/api/v1/auth/register", "", map[string]string{})
		defer resp.Body.Close()

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})
}

func TestDeviceEndpoints(t *testing.T) {
	t.Run("requires authentication", func(t *testing.T) {
		_, server := testServer(t)

		resp, err := http.Get(server.URL + "/api/v1/devices")
		require.NoError(t, err)
		defer resp.Body.Close()

		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("adds and lists devices", func(t *testing.T) {
		_, server := testServer(t)
		token := loginToken(t, server.URL)

		resp := postJSON(t, server.URL+"/api/v1/devices", token, map[string]string{
			"name":        "Living Room TV",
			"device_type": "tv",
			"address":     "192.168.1.50",
			"auth_token":  "Zabcde12345",
		})
		require.Equal(t, http.StatusCreated, resp.StatusCode)

		var created Device
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&created))
		resp.Body.Close()
		assert.NotEmpty(t, created.DeviceID)

		req, err := http.NewRequest("GET", server.URL+"/api/v1/devices", nil)
		require.NoError(t, err)
		req.Header.Set("Authorization", "Bearer "+token)

		listResp, err := http.DefaultClient.Do(req)
		require.NoError(t, err)
		defer listResp.Body.Close()

		var payload struct {
			Devices []Device `json:"devices"`
		}
		require.NoError(t, json.NewDecoder(listResp.Body).Decode(&payload))
		require.Len(t, payload.Devices, 1)
		assert.Equal(t, "Living Room TV", payload.Devices[0].Name)
	})

	t.Run("rejects unknown device types", func(t *testing.T) {
		_, server := testServer(t)
		token := loginToken(t, server.URL)

		resp := postJSON(t, server.URL+"/api/v1/devices", token, map[string]string{
			"name":        "Toaster",
			"device_type": "toaster",
			"address":     "192.168.1.60",
		})
		defer resp.Body.Close()

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	t.Run("removes a device", func(t *testing.T) {
		api, server := testServer(t)
		token := loginToken(t, server.URL)

		_, err := api.database.AddDevice(Device{
			DeviceID: "living-room", Name: "TV", DeviceType: "tv", Address: "192.168.1.50",
		})
		require.NoError(t, err)

		req, err := http.NewRequest("DELETE", server.URL+"/api/v1/devices/living-room", nil)
		require.NoError(t, err)
		req.Header.Set("Authorization", "Bearer "+token)

		resp, err := http.DefaultClient.Do(req)
		require.NoError(t, err)
		defer resp.Body.Close()

		assert.Equal(t, http.StatusOK, resp.StatusCode)
	})

	t.Run("action on unknown device is 404", func(t *testing.T) {
		_, server := testServer(t)
		token := loginToken(t, server.URL)

		resp := postJSON(t, server.URL+"/api/v1/devices/ghost/action", token, map[string]string{
			"type": "remote", "action": "up",
		})
		defer resp.Body.Close()

		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	})

	t.Run("action outcome lands in the audit log", func(t *testing.T) {
		api, server := testServer(t)
		token := loginToken(t, server.URL)

		// Unreachable address: the action fails but is still recorded
		_, err := api.database.AddDevice(Device{
			DeviceID: "living-room", Name: "TV", DeviceType: "tv", Address: "127.0.0.1:1",
		})
		require.NoError(t, err)

		resp := postJSON(t, server.URL+"/api/v1/devices/living-room/action", token, map[string]string{
			"type": "remote", "action": "up",
		})
		require.Equal(t, http.StatusOK, resp.StatusCode)
		resp.Body.Close()

		records, err := api.database.ListActions("living-room", 0)
		require.NoError(t, err)
		require.Len(t, records, 1)
		assert.False(t, records[0].Success)
	})
}
