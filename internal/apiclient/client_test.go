package apiclient

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Skotchmaster/order_admin/internal/logging"
	"github.com/Skotchmaster/order_admin/internal/models"
	"github.com/Skotchmaster/order_admin/internal/tokens"
)

type captured struct {
	method string
	path   string
	header http.Header
	body   string
}

func newTestServer(t *testing.T, status int, respBody string, got *captured) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		b, _ := io.ReadAll(r.Body)
		if got != nil {
			*got = captured{method: r.Method, path: r.URL.Path, header: r.Header.Clone(), body: string(b)}
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = io.WriteString(w, respBody)
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestList_DecodesArray(t *testing.T) {
	var got captured
	srv := newTestServer(t, http.StatusOK, `[{"id":"c1","name":"Acme","email":"a@acme.io","phone":"1"}]`, &got)

	customers, err := NewClient(srv.URL + "/api/").Customers().List(context.Background())
	require.NoError(t, err)
	require.Len(t, customers, 1)
	assert.Equal(t, models.ID("c1"), customers[0].ID)
	assert.Equal(t, "Acme", customers[0].Name)
	assert.Equal(t, http.MethodGet, got.method)
	assert.Equal(t, "/api/customer", got.path)
}

func TestList_EmptyArrayIsNotAnError(t *testing.T) {
	srv := newTestServer(t, http.StatusOK, `[]`, nil)

	products, err := NewClient(srv.URL).Products().List(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, products)
	assert.Empty(t, products)
}

func TestList_NonArrayIsParseError(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{name: "object", body: `{"items":[]}`},
		{name: "string", body: `"nope"`},
		{name: "null", body: `null`},
		{name: "garbage", body: `<html>`},
		{name: "empty", body: ``},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			srv := newTestServer(t, http.StatusOK, tt.body, nil)

			orders, err := NewClient(srv.URL).Orders().List(context.Background())
			require.Error(t, err)
			assert.Nil(t, orders)

			var pe *ParseError
			require.ErrorAs(t, err, &pe)
			assert.Equal(t, "list orders", pe.Op)
		})
	}
}

func TestList_ObjectReportsExpectedArray(t *testing.T) {
	srv := newTestServer(t, http.StatusOK, `{"id":"o1"}`, nil)

	_, err := NewClient(srv.URL).Orders().List(context.Background())
	assert.ErrorIs(t, err, errNotArray)
}

func TestNonSuccessStatusIsStatusError(t *testing.T) {
	srv := newTestServer(t, http.StatusNotFound, `{"message":"ignored"}`, nil)

	_, err := NewClient(srv.URL).Customers().Get(context.Background(), "missing")
	var se *StatusError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, http.StatusNotFound, se.StatusCode)
	assert.Equal(t, "get customer", se.Op)
}

func TestTransportError(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	err := NewClient(url).Products().Delete(context.Background(), "p1")
	var te *TransportError
	require.ErrorAs(t, err, &te)
	assert.Equal(t, "delete product", te.Op)
}

func TestWithTimeout_CopiesCallerClient(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-time.After(500 * time.Millisecond):
		case <-r.Context().Done():
		}
		_, _ = io.WriteString(w, "[]")
	}))
	t.Cleanup(srv.Close)

	hc := srv.Client()
	c := NewClient(srv.URL, WithHTTPClient(hc), WithTimeout(20*time.Millisecond))
	assert.Zero(t, hc.Timeout, "caller's client is left alone")

	_, err := c.Orders().List(context.Background())
	var te *TransportError
	require.ErrorAs(t, err, &te)

	_, err = NewClient(srv.URL, WithHTTPClient(hc)).Orders().List(context.Background())
	assert.NoError(t, err)
}

func TestPing(t *testing.T) {
	srv := newTestServer(t, http.StatusUnauthorized, "", nil)
	assert.NoError(t, NewClient(srv.URL).Ping(context.Background()), "any status means reachable")

	down := httptest.NewServer(http.NotFoundHandler())
	down.Close()
	var te *TransportError
	assert.ErrorAs(t, NewClient(down.URL).Ping(context.Background()), &te)
}

func TestCreateOrder_SendsCommand(t *testing.T) {
	var got captured
	srv := newTestServer(t, http.StatusCreated, `{"id":"o1","customerId":"c1","customerName":"Acme","items":[],"totalAmount":30,"status":"pending"}`, &got)

	cmd := models.CreateOrderCommand{
		CustomerID:   "c1",
		CustomerName: "Acme",
		Items: []models.OrderItem{{
			ID: "i1", ProductID: "p1", ProductName: "Widget", Quantity: 3,
			Price: decimal.RequireFromString("10.00"), Subtotal: decimal.RequireFromString("30.00"),
		}},
		TotalAmount: decimal.RequireFromString("30.00"),
		Status:      models.StatusPending,
	}

	order, err := NewClient(srv.URL).Orders().Create(context.Background(), cmd)
	require.NoError(t, err)
	assert.Equal(t, models.ID("o1"), order.ID)
	assert.Equal(t, "30.00", models.FormatAmount(order.TotalAmount))

	assert.Equal(t, http.MethodPost, got.method)
	assert.Equal(t, "/order", got.path)
	assert.Equal(t, "application/json", got.header.Get("Content-Type"))

	var sent map[string]any
	require.NoError(t, json.Unmarshal([]byte(got.body), &sent))
	assert.NotContains(t, sent, "id")
	assert.NotContains(t, sent, "createdAt")
	assert.Equal(t, "pending", sent["status"])
	assert.EqualValues(t, 30, sent["totalAmount"])
}

func TestUpdateStatus_Path(t *testing.T) {
	var got captured
	srv := newTestServer(t, http.StatusOK, `{"id":"o1","status":"completed"}`, &got)

	order, err := NewClient(srv.URL).Orders().UpdateStatus(context.Background(), "o1", models.StatusCompleted)
	require.NoError(t, err)
	assert.Equal(t, models.StatusCompleted, order.Status)
	assert.Equal(t, http.MethodPut, got.method)
	assert.Equal(t, "/order/o1/status", got.path)
	assert.JSONEq(t, `{"status":"completed"}`, got.body)
}

func TestUpdateCustomer_PassesThroughPresentFields(t *testing.T) {
	var got captured
	srv := newTestServer(t, http.StatusOK, `{"id":"c1","name":"New","email":"old@x.io","phone":"1"}`, &got)

	name := "New"
	_, err := NewClient(srv.URL).Customers().Update(context.Background(), "c1", models.CustomerPatch{Name: &name})
	require.NoError(t, err)
	assert.Equal(t, "/customer/c1", got.path)
	assert.JSONEq(t, `{"name":"New"}`, got.body)
}

func TestDelete_IgnoresBody(t *testing.T) {
	var got captured
	srv := newTestServer(t, http.StatusNoContent, ``, &got)

	require.NoError(t, NewClient(srv.URL).Customers().Delete(context.Background(), "c 1"))
	assert.Equal(t, http.MethodDelete, got.method)
	assert.Equal(t, "/customer/c 1", got.path)
}

func TestHeaders_SignerAndRequestID(t *testing.T) {
	var got captured
	srv := newTestServer(t, http.StatusOK, `[]`, &got)

	signer := &tokens.Signer{Secret: []byte("s3cret"), Subject: "order-admin"}
	ctx := logging.WithRequestID(context.Background(), "rid-42")

	_, err := NewClient(srv.URL, WithSigner(signer)).Products().List(ctx)
	require.NoError(t, err)

	assert.Equal(t, "rid-42", got.header.Get("X-Request-ID"))
	auth := got.header.Get("Authorization")
	require.True(t, strings.HasPrefix(auth, "Bearer "))
	claims, err := tokens.ServiceClaimsFromToken(strings.TrimPrefix(auth, "Bearer "), []byte("s3cret"))
	require.NoError(t, err)
	assert.Equal(t, "order-admin", claims.Subject)
}

type failingSigner struct{}

func (failingSigner) Sign() (string, error) { return "", errors.New("no key") }

func TestSignerFailureIsTransportError(t *testing.T) {
	srv := newTestServer(t, http.StatusOK, `[]`, nil)

	_, err := NewClient(srv.URL, WithSigner(failingSigner{})).Products().List(context.Background())
	var te *TransportError
	assert.ErrorAs(t, err, &te)
}
