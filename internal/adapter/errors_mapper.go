package adapter

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/go-resty/resty/v2"
)

func mapHTTPError(resp *resty.Response) error {
	if resp.StatusCode() >= http.StatusOK && resp.StatusCode() < http.StatusMultipleChoices {
		return nil
	}

	apiErr := &APIError{Code: resp.StatusCode()}

	// The marketplace answers errors as {"message": ..., "details": ...};
	// older deployments use "error" for the message field.
	var body struct {
		Message string `json:"message"`
		Err     string `json:"error"`
		Details string `json:"details"`
	}
	if err := json.Unmarshal(resp.Body(), &body); err == nil {
		apiErr.Message = body.Message
		if apiErr.Message == "" {
			apiErr.Message = body.Err
		}
		apiErr.Details = body.Details
	}
	if apiErr.Message == "" {
		apiErr.Message = strings.TrimSpace(string(resp.Body()))
	}
	if apiErr.Message == "" {
		apiErr.Message = http.StatusText(resp.StatusCode())
	}

	apiErr.sentinel = sentinelForStatus(resp.StatusCode())

	return apiErr
}

func sentinelForStatus(code int) error {
	switch code {
	case http.StatusBadRequest:
		return ErrBadRequest
	case http.StatusUnauthorized:
		return ErrUnauthorized
	case http.StatusPaymentRequired:
		return ErrPaymentRequired
	case http.StatusForbidden:
		return ErrForbidden
	case http.StatusNotFound:
		return ErrNotFound
	case http.StatusConflict:
		return ErrConflict
	case http.StatusInternalServerError:
		return ErrInternalServerError
	case http.StatusBadGateway:
		return ErrBadGateway
	default:
		return nil
	}
}
