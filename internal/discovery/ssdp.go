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

package discovery

import (
	"fmt"
	"net"
	"strings"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/rs/zerolog"
	"vizcast/internal/logger"
)

const (
	ssdpAddress = "239.255.255.250:1900"

	// SmartCast devices announce themselves as DIAL servers
	searchTarget = "urn:dial-multiscreen-org:device:dial:1"

	defaultCacheSize = 64
	defaultCacheTTL  = 5 * time.Minute
)

// Device is a SmartCast device found via SSDP
type Device struct {
	IP       string    `json:"ip"`
	Location string    `json:"location"`
	USN      string    `json:"usn"`
	Server   string    `json:"server"`
	SeenAt   time.Time `json:"seen_at"`
}

// Discoverer finds SmartCast devices on the local network. Responses
// are cached so repeated scans (and the TUI's refresh) don't depend on
// every device answering every probe.
type Discoverer struct {
	cache  *lru.Cache[string, Device]
	ttl    time.Duration
	logger zerolog.Logger
}

// NewDiscoverer creates a discoverer with the default cache settings
func NewDiscoverer() *Discoverer {
	cache, _ := lru.New[string, Device](defaultCacheSize)
	return &Discoverer{
		cache:  cache,
		ttl:    defaultCacheTTL,
		logger: logger.With("discovery"),
	}
}

// Discover probes the network for timeout and returns all devices seen
// in this scan or still fresh in the cache
func (d *Discoverer) Discover(timeout time.Duration) ([]Device, error) {
	if timeout <= 0 {
		timeout = 3 * time.Second
	}

	conn, err := net.ListenPacket("udp4", ":0")
	if err != nil {
		return nil, fmt.Errorf("failed to open discovery socket: %w", err)
	}
	defer conn.Close()

	target, err := net.ResolveUDPAddr("udp4", ssdpAddress)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve ssdp address: %w", err)
	}

	request := strings.Join([]string{
		"M-SEARCH * HTTP/1.1",
		"HOST: " + ssdpAddress,
		"MAN: \"ssdp:discover\"",
		"MX: 2",
		"ST: " + searchTarget,
		"", "",
	}, "\r\n")

	if _, err := conn.WriteTo([]byte(request), target); err != nil {
		return nil, fmt.Errorf("failed to send discovery request: %w", err)
	}

	if err := conn.SetReadDeadline(time.Now().Add(timeout)); err != nil {
		return nil, fmt.Errorf("failed to set read deadline: %w", err)
	}

	buf := make([]byte, 2048)
	for {
		n, addr, err := conn.ReadFrom(buf)
		if err != nil {
			// Deadline hit, scan over
			break
		}

		device, ok := parseResponse(string(buf[:n]))
		if !ok {
			continue
		}

		host, _, splitErr := net.SplitHostPort(addr.String())
		if splitErr != nil {
			host = addr.String()
		}
		device.IP = host
		device.SeenAt = time.Now()

		d.cache.Add(device.USN, device)

		d.logger.Debug().
			Str("ip", device.IP).
			Str("usn", device.USN).
			Msg("Discovered SmartCast device")
	}

	return d.CachedDevices(), nil
}

// CachedDevices returns devices seen within the cache TTL, evicting
// stale entries as it goes
func (d *Discoverer) CachedDevices() []Device {
	var devices []Device
	for _, usn := range d.cache.Keys() {
		device, ok := d.cache.Get(usn)
		if !ok {
			continue
		}
		if time.Since(device.SeenAt) > d.ttl {
			d.cache.Remove(usn)
			continue
		}
		devices = append(devices, device)
	}
	return devices
}

// parseResponse extracts the interesting headers from an SSDP search
// response. Header names are matched case-insensitively.
func parseResponse(response string) (Device, bool) {
	lines := strings.Split(response, "\r\n")
	if len(lines) == 0 || !strings.Contains(lines[0], "200") {
		return Device{}, false
	}

	var device Device
	for _, line := range lines[1:] {
		name, value, found := strings.Cut(line, ":")
		if !found {
			continue
		}
		value = strings.TrimSpace(value)

		switch strings.ToUpper(strings.TrimSpace(name)) {
		case "LOCATION":
			device.Location = value
		case "USN":
			device.USN = value
		case "SERVER":
			device.Server = value
		}
	}

	if device.USN == "" {
		return Device{}, false
	}

	return device, true
}
