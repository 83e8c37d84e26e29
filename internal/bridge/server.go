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
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog"
	"vizcast/internal"
	"vizcast/internal/logger"
	"vizcast/internal/smartcast"
)

// APIServer exposes registered SmartCast devices over an authenticated
// REST API, for home-automation systems that can't speak the device
// protocol directly
type APIServer struct {
	database        *Database
	logger          zerolog.Logger
	server          *http.Server
	jwtService      *JWTService
	passwordService *PasswordService
	authMiddleware  *AuthMiddleware
	options         internal.FnModeOptions
}

// NewAPIServer creates a new API server
func NewAPIServer(database *Database, jwtSecret string, options internal.FnModeOptions) *APIServer {
	jwtService := NewJWTService(jwtSecret, "vizcast-bridge", 24)
	passwordService := NewPasswordService()
	authMiddleware := NewAuthMiddleware(jwtService, database)

	return &APIServer{
		database:        database,
		logger:          logger.With("bridge"),
		jwtService:      jwtService,
		passwordService: passwordService,
		authMiddleware:  authMiddleware,
		options:         options,
	}
}

// router builds the full route table
func (api *APIServer) router() *mux.Router {
	router := mux.NewRouter()

	router.Use(api.loggingMiddleware)
	router.Use(api.corsMiddleware)

	apiRouter := router.PathPrefix("/api/v1").Subrouter()

	// Authentication endpoints
	apiRouter.HandleFunc("/auth/register", api.handleRegister).Methods("POST")
	apiRouter.HandleFunc("/auth/login", api.handleLogin).Methods("POST")
	apiRouter.Handle("/auth/me", api.authMiddleware.RequireAuth(http.HandlerFunc(api.handleGetCurrentUser))).Methods("GET")

	// Device endpoints (protected)
	apiRouter.Handle("/devices", api.authMiddleware.RequireAuth(http.HandlerFunc(api.handleListDevices))).Methods("GET")
	apiRouter.Handle("/devices", api.authMiddleware.RequireAuth(http.HandlerFunc(api.handleAddDevice))).Methods("POST")
	apiRouter.Handle("/devices/{device_id}", api.authMiddleware.RequireAuth(http.HandlerFunc(api.handleRemoveDevice))).Methods("DELETE")
	apiRouter.Handle("/devices/{device_id}/action", api.authMiddleware.RequireAuth(http.HandlerFunc(api.handleDeviceAction))).Methods("POST")
	apiRouter.Handle("/devices/{device_id}/app", api.authMiddleware.RequireAuth(http.HandlerFunc(api.handleDeviceApp))).Methods("GET")
	apiRouter.Handle("/devices/{device_id}/actions", api.authMiddleware.RequireAuth(http.HandlerFunc(api.handleDeviceActions))).Methods("GET")

	// Health check
	apiRouter.HandleFunc("/health", api.handleHealth).Methods("GET")

	return router
}

// Start starts the HTTP API server
func (api *APIServer) Start(address string) error {
	api.server = &http.Server{
		Addr:         address,
		Handler:      api.router(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 45 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	api.logger.Info().
		Str("address", address).
		Msg("Starting bridge API server")

	return api.server.ListenAndServe()
}

// Stop stops the API server
func (api *APIServer) Stop() error {
	if api.server != nil {
		return api.server.Close()
	}
	return nil
}

// Middleware
func (api *APIServer) loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		api.logger.Info().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Dur("duration", time.Since(start)).
			Msg("API request")
	})
}

func (api *APIServer) corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// JSON response helpers
func (api *APIServer) writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		api.logger.Error().Err(err).Msg("Failed to encode response")
	}
}

func (api *APIServer) writeError(w http.ResponseWriter, status int, message string) {
	api.writeJSON(w, status, map[string]string{"error": message})
}

// Handlers

func (api *APIServer) handleHealth(w http.ResponseWriter, r *http.Request) {
	api.writeJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
}

type credentialsRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func (api *APIServer) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		api.writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if req.Username == "" || req.Password == "" {
		api.writeError(w, http.StatusBadRequest, "username and password are required")
		return
	}

	hash, err := api.passwordService.HashPassword(req.Password)
	if err != nil {
		api.writeError(w, http.StatusInternalServerError, "failed to hash password")
		return
	}

	user, err := api.database.CreateUser(req.Username, hash)
	if err != nil {
		api.writeError(w, http.StatusConflict, "failed to create user")
		return
	}

	api.writeJSON(w, http.StatusCreated, user)
}

func (api *APIServer) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		api.writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	user, err := api.database.GetUserByUsername(req.Username)
	if err != nil {
		api.writeError(w, http.StatusUnauthorized, "invalid credentials")
		return
	}

	valid, err := api.passwordService.VerifyPassword(req.Password, user.PasswordHash)
	if err != nil || !valid {
		api.writeError(w, http.StatusUnauthorized, "invalid credentials")
		return
	}

	token, err := api.jwtService.GenerateToken(user)
	if err != nil {
		api.writeError(w, http.StatusInternalServerError, "failed to generate token")
		return
	}

	api.writeJSON(w, http.StatusOK, map[string]any{
		"token": token,
		"user":  user,
	})
}

func (api *APIServer) handleGetCurrentUser(w http.ResponseWriter, r *http.Request) {
	user, ok := GetUserFromContext(r)
	if !ok {
		api.writeError(w, http.StatusUnauthorized, "not authenticated")
		return
	}

	api.writeJSON(w, http.StatusOK, user)
}

func (api *APIServer) handleListDevices(w http.ResponseWriter, r *http.Request) {
	devices, err := api.database.ListDevices()
	if err != nil {
		api.writeError(w, http.StatusInternalServerError, "failed to list devices")
		return
	}

	api.writeJSON(w, http.StatusOK, map[string]any{"devices": devices})
}

type addDeviceRequest struct {
	Name       string `json:"name"`
	DeviceType string `json:"device_type"`
	Address    string `json:"address"`
	AuthToken  string `json:"auth_token"`
}

func (api *APIServer) handleAddDevice(w http.ResponseWriter, r *http.Request) {
	var req addDeviceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		api.writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if req.Name == "" || req.Address == "" {
		api.writeError(w, http.StatusBadRequest, "name and address are required")
		return
	}

	if req.DeviceType == "" {
		req.DeviceType = string(smartcast.DeviceTypeTV)
	}
	if req.DeviceType != string(smartcast.DeviceTypeTV) && req.DeviceType != string(smartcast.DeviceTypeSpeaker) {
		api.writeError(w, http.StatusBadRequest, fmt.Sprintf("unknown device type: %s", req.DeviceType))
		return
	}

	device, err := api.database.AddDevice(Device{
		Name:       req.Name,
		DeviceType: req.DeviceType,
		Address:    req.Address,
		AuthToken:  req.AuthToken,
	})
	if err != nil {
		api.writeError(w, http.StatusConflict, "failed to add device")
		return
	}

	api.writeJSON(w, http.StatusCreated, device)
}

func (api *APIServer) handleRemoveDevice(w http.ResponseWriter, r *http.Request) {
	deviceID := mux.Vars(r)["device_id"]

	if err := api.database.RemoveDevice(deviceID); err != nil {
		api.writeError(w, http.StatusNotFound, "device not found")
		return
	}

	api.writeJSON(w, http.StatusOK, map[string]string{"status": "removed"})
}

// handleDeviceAction forwards a raw action request to the device and
// records the outcome in the audit log
func (api *APIServer) handleDeviceAction(w http.ResponseWriter, r *http.Request) {
	deviceID := mux.Vars(r)["device_id"]

	device, err := api.database.GetDevice(deviceID)
	if err != nil {
		api.writeError(w, http.StatusNotFound, "device not found")
		return
	}

	actionJSON, err := io.ReadAll(r.Body)
	if err != nil {
		api.writeError(w, http.StatusBadRequest, "failed to read request body")
		return
	}

	remote := smartcast.NewSmartCastRemote(
		device.Address,
		device.AuthToken,
		smartcast.DeviceType(device.DeviceType),
		api.options,
	)

	response, err := remote.Process(actionJSON)
	if err != nil {
		api.writeError(w, http.StatusBadGateway, fmt.Sprintf("device action failed: %v", err))
		return
	}

	detail := response.Error
	if recordErr := api.database.RecordAction(deviceID, string(actionJSON), response.Success, detail); recordErr != nil {
		api.logger.Error().Err(recordErr).Msg("Failed to record action")
	}

	api.writeJSON(w, http.StatusOK, response)
}

// handleDeviceApp reports the running app's name and config
func (api *APIServer) handleDeviceApp(w http.ResponseWriter, r *http.Request) {
	deviceID := mux.Vars(r)["device_id"]

	device, err := api.database.GetDevice(deviceID)
	if err != nil {
		api.writeError(w, http.StatusNotFound, "device not found")
		return
	}

	client := smartcast.NewSmartCastClient(
		device.Address,
		device.AuthToken,
		smartcast.DeviceType(device.DeviceType),
		api.options,
	)

	config, err := client.CurrentApp()
	if err != nil {
		api.writeError(w, http.StatusBadGateway, fmt.Sprintf("failed to query device: %v", err))
		return
	}

	api.writeJSON(w, http.StatusOK, map[string]any{
		"name":   smartcast.CurrentAppName(config),
		"config": config,
	})
}

func (api *APIServer) handleDeviceActions(w http.ResponseWriter, r *http.Request) {
	deviceID := mux.Vars(r)["device_id"]

	records, err := api.database.ListActions(deviceID, 50)
	if err != nil {
		api.writeError(w, http.StatusInternalServerError, "failed to list actions")
		return
	}

	api.writeJSON(w, http.StatusOK, map[string]any{"actions": records})
}
