// Package client is the HTTP side of talking to a drop server.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"geoseal/internal/domain"
)

// HTTPClient talks to a geoseal drop server over its REST API.
type HTTPClient struct {
	Base string
	HTTP *http.Client
}

// New returns a client for the server at base, e.g. "http://host:8750".
func New(base string) *HTTPClient {
	return &HTTPClient{
		Base: base,
		HTTP: http.DefaultClient,
	}
}

var _ domain.DropClient = (*HTTPClient)(nil)

// envelope matches the server's response wrapper.
type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data,omitempty"`
	Error   string          `json:"error,omitempty"`
}

// PostMessage stores a sealed message and returns the server-assigned id.
func (c *HTTPClient) PostMessage(
	ctx context.Context,
	message domain.SealedMessage,
) (domain.MessageID, error) {
	var out struct {
		ID string `json:"id"`
	}
	err := c.do(ctx, http.MethodPost, "/api/messages", wireMessage(message), &out)
	if err != nil {
		return "", err
	}
	return domain.MessageID(out.ID), nil
}

// FetchMessage retrieves a stored message. The wrapped-key fields of the
// result are empty; the server withholds them until an unlock succeeds.
func (c *HTTPClient) FetchMessage(
	ctx context.Context,
	id domain.MessageID,
) (domain.SealedMessage, error) {
	var out storedMessage
	err := c.do(ctx, http.MethodGet, "/api/messages/"+id.String(), nil, &out)
	if err != nil {
		return domain.SealedMessage{}, err
	}
	return out.toDomain(), nil
}

// Unlock submits an attestation for a message. A denial is a normal
// response, not an error; check Valid on the result.
func (c *HTTPClient) Unlock(
	ctx context.Context,
	id domain.MessageID,
	att domain.LocationAttestation,
) (domain.UnlockResponse, error) {
	var out domain.UnlockResponse
	err := c.do(ctx, http.MethodPost, "/api/messages/"+id.String()+"/unlock", wireAttestation(att), &out)
	if err != nil {
		return domain.UnlockResponse{}, err
	}
	return out, nil
}

// DeleteMessage removes a stored message.
func (c *HTTPClient) DeleteMessage(ctx context.Context, id domain.MessageID) error {
	return c.do(ctx, http.MethodDelete, "/api/messages/"+id.String(), nil, nil)
}

// RegisterDevice binds a device identifier to its signing key on the server.
func (c *HTTPClient) RegisterDevice(
	ctx context.Context,
	id domain.DeviceID,
	key domain.Ed25519Public,
) error {
	body := map[string]interface{}{
		"device_id":  id.String(),
		"public_key": key.Slice(),
	}
	return c.do(ctx, http.MethodPost, "/api/devices", body, nil)
}

// ListMessages returns every stored, unexpired message in read form.
func (c *HTTPClient) ListMessages(ctx context.Context) ([]domain.SealedMessage, error) {
	var out []storedMessage
	if err := c.do(ctx, http.MethodGet, "/api/messages", nil, &out); err != nil {
		return nil, err
	}
	result := make([]domain.SealedMessage, 0, len(out))
	for _, m := range out {
		result = append(result, m.toDomain())
	}
	return result, nil
}

func (c *HTTPClient) do(ctx context.Context, method, path string, body, out interface{}) error {
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.Base+path, reader)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return fmt.Errorf("%s %s: %s", method, path, resp.Status)
	}
	if resp.StatusCode >= 400 {
		if env.Error != "" {
			return fmt.Errorf("%s %s: %s", method, path, env.Error)
		}
		return fmt.Errorf("%s %s: %s", method, path, resp.Status)
	}
	if out != nil {
		return json.Unmarshal(env.Data, out)
	}
	return nil
}
