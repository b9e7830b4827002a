package domain

import "time"

// ApiCredential is one API credential record (login-bound app key pair).
// The stored AppSecret is encrypted at rest; PasswordHash never leaves the
// repository layer.
type ApiCredential struct {
	Login        string
	Description  string
	PasswordHash string
	ClientID     string
	AppKey       string
	AppSecret    string
	IsActive     NoYes

	UpdateDatetime time.Time
}

// HasCredentials reports whether a client ID has already been issued for
// this login.
func (c *ApiCredential) HasCredentials() bool {
	return c.ClientID != ""
}
