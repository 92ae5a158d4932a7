package authsdk

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
)

// Register performs dynamic client registration. Validation failures come
// back with HTTP 200 and are returned as *RegistrationError.
func (c *SDKClient) Register(ctx context.Context, req RegistrationRequest) (*RegistrationResponse, error) {
	resp, err := c.postJSON(ctx, PathRegister, req, "")
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, parseErrorResponse(resp, body)
	}

	var probe struct {
		Error string `json:"error"`
	}
	if err := json.Unmarshal(body, &probe); err == nil && probe.Error != "" {
		return nil, &RegistrationError{Message: probe.Error}
	}

	var out RegistrationResponse
	if err := json.Unmarshal(body, &out); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}
	return &out, nil
}
