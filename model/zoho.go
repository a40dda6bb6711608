package model

// TokenResponse is the parsed shape of the Zoho accounts token endpoint
// payload. The raw body is carried separately where it needs to be echoed
// back to the caller.
type TokenResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	APIDomain    string `json:"api_domain"`
	TokenType    string `json:"token_type"`
	ExpiresIn    int    `json:"expires_in"`
	Error        string `json:"error"`
}

// Field is a single entry from the CRM field-metadata endpoint.
type Field struct {
	APIName string `json:"api_name"`
}
