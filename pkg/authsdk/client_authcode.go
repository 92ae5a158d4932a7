package authsdk

import (
	"context"
	"net/http"
)

// MintAuthcode turns the caller's access token into a short-lived authcode
// that another party can redeem with ExchangeAuthcode.
func (c *SDKClient) MintAuthcode(ctx context.Context, accessToken string) (*AuthcodeMintResponse, error) {
	resp, err := c.postJSON(ctx, PathAuthcode, struct{}{}, accessToken)
	if err != nil {
		return nil, err
	}

	var out AuthcodeMintResponse
	if err := decodeJSON(resp, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}

// ExchangeAuthcode redeems an authcode for the access token it refers to.
func (c *SDKClient) ExchangeAuthcode(ctx context.Context, code string) (*TokenResponse, error) {
	resp, err := c.postJSON(ctx, PathTokenExchange, AuthcodeRequest{Code: code}, "")
	if err != nil {
		return nil, err
	}

	var out TokenResponse
	if err := decodeJSON(resp, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}

// ListTokens returns the live access tokens issued to the caller.
func (c *SDKClient) ListTokens(ctx context.Context, accessToken string) (*TokenListResponse, error) {
	resp, err := c.doRequest(ctx, http.MethodGet, PathTokens, nil, nil, accessToken)
	if err != nil {
		return nil, err
	}

	var out TokenListResponse
	if err := decodeJSON(resp, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}
