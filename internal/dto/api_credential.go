package dto

// CreateApiCredentialRequest carries the login/password pair used to issue
// a new set of API credentials.
type CreateApiCredentialRequest struct {
	Login    string `json:"login" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// GetApiCredentialRequest carries the login/password pair used to retrieve
// existing API credentials.
type GetApiCredentialRequest struct {
	Login    string `json:"login" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// ApiCredentialResponse returns the issued credentials. The raw app secret
// is only ever available through this response.
type ApiCredentialResponse struct {
	Name      string `json:"name"`
	ClientID  string `json:"clientId"`
	AppKey    string `json:"appKey"`
	AppSecret string `json:"appSecret"`
}
