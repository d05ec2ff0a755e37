package pages

import (
	"errors"
	"fmt"
	"strings"

	"github.com/Skotchmaster/order_admin/internal/apiclient"
	"github.com/Skotchmaster/order_admin/internal/service"
)

// Message turns any error reaching a page into the one line shown to the user.
func Message(action string, err error) string {
	if err == nil {
		return ""
	}

	var (
		te *apiclient.TransportError
		se *apiclient.StatusError
		pe *apiclient.ParseError
	)
	var reason string
	switch {
	case errors.Is(err, service.ErrValidation):
		reason = "invalid input (" + detail(err, service.ErrValidation) + ")"
	case errors.Is(err, service.ErrReference):
		reason = detail(err, service.ErrReference)
	case errors.As(err, &se):
		reason = fmt.Sprintf("the API answered %s", se.Status)
	case errors.As(err, &pe):
		reason = "the API returned an unexpected response"
	case errors.As(err, &te):
		reason = "could not reach the API"
	default:
		reason = err.Error()
	}
	return fmt.Sprintf("Failed to %s: %s", action, reason)
}

// detail strips the sentinel prefix added by fmt.Errorf("%w: ...").
func detail(err, sentinel error) string {
	msg := err.Error()
	if i := strings.Index(msg, sentinel.Error()+": "); i >= 0 {
		return msg[i+len(sentinel.Error())+2:]
	}
	return msg
}
