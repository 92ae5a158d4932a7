package authsdk

import (
	"context"
	"net/http"
	"net/url"
)

// GetManifest fetches the Badge Connect manifest for domain.
func (c *SDKClient) GetManifest(ctx context.Context, domain string) (*Manifest, error) {
	resp, err := c.doRequest(ctx, http.MethodGet, PathManifest+url.PathEscape(domain), nil, nil, "")
	if err != nil {
		return nil, err
	}

	var out Manifest
	if err := decodeJSON(resp, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}
