package smartcast

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/google/uuid"
)

// Pairing handshake. The flow is: StartPairing puts a PIN on the
// device's screen, FinishPairing exchanges that PIN for a long-lived
// AUTH token, CancelPairing abandons the attempt. None of these require
// an existing token.

// NewPairingDeviceID generates a client device id for pairing. The
// device remembers the id alongside the issued token, so callers should
// persist and reuse it.
func NewPairingDeviceID() string {
	return uuid.New().String()
}

// StartPairing begins the handshake and returns the challenge state
// needed to finish it. deviceName is what shows up in the device's
// paired-devices list.
func (c *SmartCastClient) StartPairing(deviceName, deviceID string) (*PairingChallenge, error) {
	response, err := c.doEndpoint(http.MethodPut, EndpointBeginPair, map[string]any{
		"DEVICE_NAME": deviceName,
		"DEVICE_ID":   deviceID,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to start pairing: %w", err)
	}

	item := getMap(response, "ITEM")

	token := getInt(item, "PAIRING_REQ_TOKEN")
	if token == nil {
		return nil, fmt.Errorf("pairing response missing request token")
	}

	challengeType := getInt(item, "CHALLENGE_TYPE")
	if challengeType == nil {
		return nil, fmt.Errorf("pairing response missing challenge type")
	}

	return &PairingChallenge{
		Token:         *token,
		ChallengeType: *challengeType,
	}, nil
}

// FinishPairing submits the on-screen PIN and returns the AUTH token.
// Dashes and spaces in the PIN are tolerated.
func (c *SmartCastClient) FinishPairing(deviceID string, challenge PairingChallenge, pin string) (string, error) {
	pin = strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' {
			return r
		}
		return -1
	}, pin)

	if pin == "" {
		return "", fmt.Errorf("pairing pin is required")
	}

	response, err := c.doEndpoint(http.MethodPut, EndpointFinishPair, map[string]any{
		"DEVICE_ID":         deviceID,
		"CHALLENGE_TYPE":    challenge.ChallengeType,
		"RESPONSE_VALUE":    pin,
		"PAIRING_REQ_TOKEN": challenge.Token,
	})
	if err != nil {
		return "", fmt.Errorf("failed to finish pairing: %w", err)
	}

	item := getMap(response, "ITEM")

	authToken := getString(item, "AUTH_TOKEN")
	if authToken == nil {
		return "", fmt.Errorf("pairing response missing auth token")
	}

	return *authToken, nil
}

// CancelPairing abandons an in-progress pairing attempt
func (c *SmartCastClient) CancelPairing(deviceID string) error {
	_, err := c.doEndpoint(http.MethodPut, EndpointCancelPair, map[string]any{
		"DEVICE_ID": deviceID,
	})
	if err != nil {
		return fmt.Errorf("failed to cancel pairing: %w", err)
	}
	return nil
}
