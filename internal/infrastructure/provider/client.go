// Package provider implements the HTTP clients for the external payment
// providers.
package provider

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/DanielPopoola/charge-gateway/internal/application"
)

// sendRequest posts a JSON body and decodes the JSON response. Non-2xx
// responses come back as *ProviderError so callers can distinguish business
// rejections (422) from transport-level failures.
func sendRequest[Req any, Resp any](ctx context.Context, client *http.Client, providerName, method, url string, reqBody *Req) (*Resp, error) {
	var bodyReader io.Reader
	if reqBody != nil {
		jsonData, err := json.Marshal(reqBody)
		if err != nil {
			return nil, fmt.Errorf("error marshalling json: %w", err)
		}
		bodyReader = bytes.NewReader(jsonData)
	}

	httpReq, err := http.NewRequestWithContext(ctx, method, url, bodyReader)
	if err != nil {
		return nil, fmt.Errorf("error creating request: %w", err)
	}

	if reqBody != nil {
		httpReq.Header.Set("Content-Type", "application/json")
	}

	if requestID := application.RequestIDFromContext(ctx); requestID != "" {
		httpReq.Header.Set("request-id", requestID)
	}

	resp, err := client.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("error making request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(resp.Body)
		var errResp providerErrorResponse
		message := string(body)
		if err := json.Unmarshal(body, &errResp); err == nil && errResp.Message != "" {
			message = errResp.Message
		}
		return nil, &ProviderError{
			Provider:   providerName,
			Message:    message,
			StatusCode: resp.StatusCode,
		}
	}

	var decoded Resp
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return nil, fmt.Errorf("error decoding json response: %w", err)
	}

	return &decoded, nil
}

// isBusinessRejection reports whether the provider cleanly rejected the
// operation for business reasons rather than failing at transport level.
func isBusinessRejection(err error) bool {
	var provErr *ProviderError
	return errors.As(err, &provErr) && provErr.StatusCode == http.StatusUnprocessableEntity
}
