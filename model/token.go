// file: model/token.go

package model

// TokenRecord is the persisted credential set for the Zoho account.
// RefreshToken is only written by the authorization-code exchange; a refresh
// replaces AccessToken and APIDomain but leaves RefreshToken alone.
type TokenRecord struct {
	RefreshToken string `json:"refresh_token,omitempty"`
	AccessToken  string `json:"access_token,omitempty"`
	APIDomain    string `json:"api_domain,omitempty"`
}
