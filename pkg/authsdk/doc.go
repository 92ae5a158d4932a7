/*
Package authsdk is the Go client and wire types for the Badgr authorization
service.

The server imports the same types for its request and response bodies, so
the two sides cannot drift apart.

# Registration

	client := authsdk.NewSDKClient("https://api.badgr.example")
	reg, err := client.Register(ctx, authsdk.RegistrationRequest{
		ClientName:   "Backpack Sync",
		ClientURI:    "https://sync.example.org",
		RedirectURIs: []string{"https://sync.example.org/callback"},
		GrantTypes:   []string{"authorization_code", "refresh_token"},
		ResponseTypes: []string{"code"},
	})

Validation failures are returned as *RegistrationError with the exact server
message, for example "URIs do not match".

# Authorization code with PKCE

	pkce, _ := authsdk.GeneratePKCEChallenge()
	consent, err := client.Authorize(ctx, userToken, authsdk.AuthorizeRequest{
		ClientID:            reg.ClientID,
		RedirectURI:         "https://sync.example.org/callback",
		Scopes:              []string{"https://purl.imsglobal.org/spec/ob/v2p1/scope/assertion.readonly"},
		State:               "xyz",
		CodeChallenge:       pkce.Challenge,
		CodeChallengeMethod: pkce.Method,
		Allow:               true,
	})
	code, _, _ := authsdk.ParseAuthorizationCallback(consent.SuccessURL)
	tokens, err := client.ExchangeAuthorizationCode(ctx,
		authsdk.ClientCredentials{ID: reg.ClientID, Secret: reg.ClientSecret},
		code, "https://sync.example.org/callback", pkce.Verifier)

# Errors

Non-2xx responses are returned as *OAuth2Error. A password grant made while
locked out yields StatusCode 429 with RetryAfter set.
*/
package authsdk
