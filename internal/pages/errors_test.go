package pages

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Skotchmaster/order_admin/internal/apiclient"
	"github.com/Skotchmaster/order_admin/internal/service"
)

func TestMessage(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{name: "nil", err: nil, want: ""},
		{
			name: "validation",
			err:  fmt.Errorf("%w: customer required", service.ErrValidation),
			want: "Failed to create order: invalid input (customer required)",
		},
		{
			name: "reference",
			err:  fmt.Errorf("%w: product p9 not found", service.ErrReference),
			want: "Failed to create order: product p9 not found",
		},
		{
			name: "status",
			err:  fmt.Errorf("create order: %w", &apiclient.StatusError{Op: "create order", StatusCode: 500, Status: "500 Internal Server Error"}),
			want: "Failed to create order: the API answered 500 Internal Server Error",
		},
		{
			name: "parse",
			err:  &apiclient.ParseError{Op: "list orders", Err: errors.New("expected a JSON array")},
			want: "Failed to create order: the API returned an unexpected response",
		},
		{
			name: "transport",
			err:  &apiclient.TransportError{Op: "list orders", Err: errors.New("dial tcp: refused")},
			want: "Failed to create order: could not reach the API",
		},
		{name: "other", err: errors.New("boom"), want: "Failed to create order: boom"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Message("create order", tt.err))
		})
	}
}
