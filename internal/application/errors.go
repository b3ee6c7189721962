package application

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/DanielPopoola/charge-gateway/internal/domain"
)

// ServiceError is an application-level orchestration error.
type ServiceError struct {
	Code       string
	Message    string
	HTTPStatus int
	Err        error
}

func (e *ServiceError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *ServiceError) Unwrap() error {
	return e.Err
}

const (
	ErrCodeInternal           = "INTERNAL_ERROR"
	ErrCodeInvalidInput       = "INVALID_INPUT"
	ErrCodeAllProvidersFailed = "ALL_PROVIDERS_FAILED"
	ErrCodeProviderNotFound   = "PROVIDER_NOT_FOUND"
	ErrCodeRefundFailed       = "REFUND_FAILED"
)

func NewInternalError(err error) *ServiceError {
	return &ServiceError{
		Code:       ErrCodeInternal,
		Message:    "an internal error occurred",
		HTTPStatus: http.StatusInternalServerError,
		Err:        err,
	}
}

func NewInvalidInputError(err error) *ServiceError {
	return &ServiceError{
		Code:       ErrCodeInvalidInput,
		Message:    "invalid input",
		HTTPStatus: http.StatusBadRequest,
		Err:        err,
	}
}

// NewAllProvidersFailedError aggregates the per-provider failures collected
// by the fallback loop.
func NewAllProvidersFailedError(err error) *ServiceError {
	return &ServiceError{
		Code:       ErrCodeAllProvidersFailed,
		Message:    "all providers failed",
		HTTPStatus: http.StatusBadGateway,
		Err:        err,
	}
}

func NewProviderNotFoundError(providerName string) *ServiceError {
	return &ServiceError{
		Code:       ErrCodeProviderNotFound,
		Message:    fmt.Sprintf("provider %s not found", providerName),
		HTTPStatus: http.StatusInternalServerError,
	}
}

func NewRefundFailedError(providerName string, err error) *ServiceError {
	return &ServiceError{
		Code:       ErrCodeRefundFailed,
		Message:    fmt.Sprintf("refund failed with provider %s", providerName),
		HTTPStatus: http.StatusBadGateway,
		Err:        err,
	}
}

// ToHTTPStatus maps any error to the status code the REST layer should emit.
func ToHTTPStatus(err error) int {
	var svcErr *ServiceError
	if errors.As(err, &svcErr) {
		return svcErr.HTTPStatus
	}
	var domainErr *domain.DomainError
	if errors.As(err, &domainErr) {
		if domainErr.Code == domain.ErrCodeInvalidTransition {
			return http.StatusConflict
		}
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

// ToErrorCode extracts the machine-readable code for the response envelope.
func ToErrorCode(err error) string {
	var svcErr *ServiceError
	if errors.As(err, &svcErr) {
		return svcErr.Code
	}
	var domainErr *domain.DomainError
	if errors.As(err, &domainErr) {
		return domainErr.Code
	}
	return ErrCodeInternal
}
