package smartcast

import (
	"bytes"
	"crypto/tls"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"vizcast/internal"
	"vizcast/internal/logger"
)

// SmartCastClient talks to a single SmartCast device over its local
// HTTPS/JSON API. Devices use self-signed certificates, so verification
// is disabled; the AUTH header carries the pairing token.
type SmartCastClient struct {
	httpClient *http.Client
	host       string
	authToken  string
	deviceType DeviceType
	debug      bool
	logger     zerolog.Logger
}

// NewSmartCastClient creates a client for the device at host. host may
// include a port; DefaultPort is assumed otherwise. authToken may be
// empty for unauthenticated endpoints (pairing, power state).
func NewSmartCastClient(host, authToken string, deviceType DeviceType, options internal.FnModeOptions) *SmartCastClient {
	if !strings.Contains(host, ":") {
		host = fmt.Sprintf("%s:%d", host, DefaultPort)
	}

	client := &SmartCastClient{
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
			Transport: &http.Transport{
				TLSClientConfig: &tls.Config{InsecureSkipVerify: true},
			},
		},
		host:       host,
		authToken:  authToken,
		deviceType: deviceType,
		debug:      options.Debug,
		logger:     logger.New(),
	}

	if options.Debug {
		logger.SetLevel("debug")
	}

	return client
}

// DeviceType returns the device class this client was built for
func (c *SmartCastClient) DeviceType() DeviceType {
	return c.deviceType
}

// do sends a JSON request to the device and returns the parsed response
// after checking the STATUS envelope
func (c *SmartCastClient) do(method, endpoint string, payload any) (map[string]any, error) {
	var body io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal payload: %w", err)
		}
		body = bytes.NewBuffer(data)
	}

	url := fmt.Sprintf("https://%s%s", c.host, endpoint)

	req, err := http.NewRequest(method, url, body)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	if c.authToken != "" {
		req.Header.Set("AUTH", c.authToken)
	}

	if c.debug {
		c.logger.Debug().
			Str("method", method).
			Str("url", url).
			Msg("Sending SmartCast request")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		if c.debug {
			c.logger.Error().
				Int("status", resp.StatusCode).
				Str("body", string(data)).
				Msg("SmartCast request failed")
		}
		return nil, fmt.Errorf("request failed with status %d: %s", resp.StatusCode, string(data))
	}

	var parsed map[string]any
	if err := json.Unmarshal(data, &parsed); err != nil {
		return nil, fmt.Errorf("failed to parse response: %w", err)
	}

	if result := statusResult(parsed); !strings.EqualFold(result, "success") {
		return nil, fmt.Errorf("device rejected request: %s", result)
	}

	if c.debug {
		c.logger.Debug().
			Int("status", resp.StatusCode).
			Str("endpoint", endpoint).
			Msg("SmartCast request successful")
	}

	return parsed, nil
}

// doEndpoint resolves a logical endpoint for this device type and sends
// the request
func (c *SmartCastClient) doEndpoint(method string, key EndpointKey, payload any) (map[string]any, error) {
	endpoint, ok := ResolveEndpoint(c.deviceType, key)
	if !ok {
		return nil, fmt.Errorf("operation %s unsupported for device type %q", key, c.deviceType)
	}
	return c.do(method, endpoint, payload)
}

// statusResult extracts STATUS.RESULT from a response envelope
func statusResult(response map[string]any) string {
	status := getMap(response, "STATUS")
	if result := getString(status, "RESULT"); result != nil {
		return *result
	}
	return ""
}

// responseItems extracts the ITEMS list from a response envelope
func responseItems(response map[string]any) []map[string]any {
	v, ok := getCaseInsensitive(response, "ITEMS")
	if !ok {
		return nil
	}
	list, ok := v.([]any)
	if !ok {
		return nil
	}
	items := make([]map[string]any, 0, len(list))
	for _, entry := range list {
		if m, ok := entry.(map[string]any); ok {
			items = append(items, m)
		}
	}
	return items
}

// LaunchApp launches an app by explicit config
func (c *SmartCastClient) LaunchApp(config AppConfig) error {
	request, err := NewLaunchAppRequest(c.deviceType, config)
	if err != nil {
		return err
	}

	_, err = c.do(http.MethodPut, request.Endpoint, request.Value)
	return err
}

// LaunchAppByName launches an app by catalog display name. An unknown
// name sends an empty config, which the device refuses; see
// NewLaunchAppByNameRequest.
func (c *SmartCastClient) LaunchAppByName(appName string) error {
	request, err := NewLaunchAppByNameRequest(c.deviceType, appName)
	if err != nil {
		return err
	}

	if c.debug && request.Value.IsEmpty() {
		c.logger.Debug().
			Str("app", appName).
			Msg("App not in catalog, sending empty launch config")
	}

	_, err = c.do(http.MethodPut, request.Endpoint, request.Value)
	return err
}

// CurrentApp queries the running app's config. An all-null config means
// nothing is running.
func (c *SmartCastClient) CurrentApp() (AppConfig, error) {
	response, err := c.doEndpoint(http.MethodGet, EndpointCurrentApp, nil)
	if err != nil {
		return AppConfig{}, err
	}

	return ParseCurrentApp(response), nil
}

// CurrentAppName queries the running app and resolves it to a display
// name, or one of the NoAppRunning / UnknownApp sentinels
func (c *SmartCastClient) CurrentAppName() (string, error) {
	config, err := c.CurrentApp()
	if err != nil {
		return "", err
	}

	return CurrentAppName(config), nil
}

// keyEntry is one entry in a KEYLIST payload
type keyEntry struct {
	Codeset int    `json:"CODESET"`
	Code    int    `json:"CODE"`
	Action  string `json:"ACTION"`
}

// KeyPress sends one or more remote key presses in a single request
func (c *SmartCastClient) KeyPress(keys ...Key) error {
	if len(keys) == 0 {
		return fmt.Errorf("at least one key is required")
	}

	keyList := make([]keyEntry, 0, len(keys))
	for _, key := range keys {
		keyList = append(keyList, keyEntry{
			Codeset: key.Codeset,
			Code:    key.Code,
			Action:  "KEYPRESS",
		})
	}

	_, err := c.doEndpoint(http.MethodPut, EndpointKeyPress, map[string]any{"KEYLIST": keyList})
	return err
}

// PowerOn wakes the device
func (c *SmartCastClient) PowerOn() error { return c.KeyPress(KeyPowerOn) }

// PowerOff puts the device to sleep
func (c *SmartCastClient) PowerOff() error { return c.KeyPress(KeyPowerOff) }

// PowerToggle flips the power state
func (c *SmartCastClient) PowerToggle() error { return c.KeyPress(KeyPowerToggle) }

// PowerState reports whether the device is on. This endpoint answers
// without authentication.
func (c *SmartCastClient) PowerState() (bool, error) {
	response, err := c.doEndpoint(http.MethodGet, EndpointPowerMode, nil)
	if err != nil {
		return false, err
	}

	items := responseItems(response)
	if len(items) == 0 {
		return false, fmt.Errorf("power mode response contained no items")
	}

	mode := getInt(items[0], "VALUE")
	if mode == nil {
		return false, fmt.Errorf("power mode response missing value")
	}

	return *mode == 1, nil
}

// Volume reads the current volume level (0-100)
func (c *SmartCastClient) Volume() (int, error) {
	response, err := c.doEndpoint(http.MethodGet, EndpointVolume, nil)
	if err != nil {
		return 0, err
	}

	items := responseItems(response)
	if len(items) == 0 {
		return 0, fmt.Errorf("volume response contained no items")
	}

	level := getInt(items[0], "VALUE")
	if level == nil {
		return 0, fmt.Errorf("volume response missing value")
	}

	return *level, nil
}

// CurrentInput reads the name of the active input
func (c *SmartCastClient) CurrentInput() (string, error) {
	response, err := c.doEndpoint(http.MethodGet, EndpointCurrentInput, nil)
	if err != nil {
		return "", err
	}

	items := responseItems(response)
	if len(items) == 0 {
		return "", fmt.Errorf("current input response contained no items")
	}

	name := getString(items[0], "VALUE")
	if name == nil {
		return "", fmt.Errorf("current input response missing value")
	}

	return *name, nil
}

// ListInputs returns the names of all selectable inputs
func (c *SmartCastClient) ListInputs() ([]string, error) {
	response, err := c.doEndpoint(http.MethodGet, EndpointListInputs, nil)
	if err != nil {
		return nil, err
	}

	var names []string
	for _, item := range responseItems(response) {
		if name := getString(item, "NAME"); name != nil {
			names = append(names, *name)
		}
	}

	return names, nil
}

// SetInput switches the active input. The settings tree requires the
// current item's HASHVAL to be echoed back on modification, so this
// reads the current input first.
func (c *SmartCastClient) SetInput(name string) error {
	response, err := c.doEndpoint(http.MethodGet, EndpointCurrentInput, nil)
	if err != nil {
		return err
	}

	items := responseItems(response)
	if len(items) == 0 {
		return fmt.Errorf("current input response contained no items")
	}

	hash := getInt(items[0], "HASHVAL")
	if hash == nil {
		return fmt.Errorf("current input response missing hashval")
	}

	_, err = c.doEndpoint(http.MethodPut, EndpointCurrentInput, map[string]any{
		"REQUEST": "MODIFY",
		"VALUE":   name,
		"HASHVAL": *hash,
	})
	return err
}
