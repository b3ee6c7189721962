package provider

import "fmt"

// ProviderError is a non-2xx response from an external provider.
type ProviderError struct {
	Provider   string
	Message    string
	StatusCode int
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("provider %s returned status %d: %s", e.Provider, e.StatusCode, e.Message)
}

type providerErrorResponse struct {
	Err     string `json:"error"`
	Message string `json:"message"`
}
