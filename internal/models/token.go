package models

// TokenPair is the access/refresh pair returned by the auth endpoints
type TokenPair struct {
	Access  string `json:"access"`
	Refresh string `json:"refresh"`
}
