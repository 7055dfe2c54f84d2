package commerce

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"orderdesk/internal/config"
	"orderdesk/internal/domain/order"
	"orderdesk/pkg/logger"
)

func testClient(baseURL string) *Client {
	return NewClient(config.CommerceConfig{
		BaseURL:     baseURL,
		Token:       "test-token",
		PageSize:    2,
		SleepMS:     1,
		TimeoutSecs: 5,
		RetryMax:    1,
		RetryWaitMS: 1,
	}, logger.NewNop())
}

func TestClient_ListOrders_Paged(t *testing.T) {
	var gotAuth string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		page := r.URL.Query().Get("page_number")
		w.Header().Set("Content-Type", "application/json")
		if page == "1" {
			fmt.Fprint(w, `{"data": [{"id": 1}, {"id": 2}], "total_pages": 2}`)
			return
		}
		fmt.Fprint(w, `{"data": [{"id": 3}], "total_pages": 2}`)
	}))
	defer server.Close()

	orders, err := testClient(server.URL).ListOrders(context.Background())

	require.NoError(t, err)
	assert.Len(t, orders, 3)
	assert.Equal(t, "Bearer test-token", gotAuth)
}

func TestClient_ListOrders_NestedEnvelope(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"responseBody": {"data": [{"id": 1}], "totalPages": 1}}`)
	}))
	defer server.Close()

	orders, err := testClient(server.URL).ListOrders(context.Background())

	require.NoError(t, err)
	assert.Len(t, orders, 1)
}

func TestClient_ListOrders_MissingDataIsMalformed(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"message": "hello"}`)
	}))
	defer server.Close()

	_, err := testClient(server.URL).ListOrders(context.Background())

	assert.ErrorIs(t, err, order.ErrMalformedResponse)
}

func TestClient_ListOrders_ServerErrorMessageExtracted(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		fmt.Fprint(w, `{"responseBody": {"message": "shop is suspended"}}`)
	}))
	defer server.Close()

	_, err := testClient(server.URL).ListOrders(context.Background())

	require.Error(t, err)
	assert.Contains(t, err.Error(), "shop is suspended")
}

func TestClient_ListOrders_TransportFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close() // nothing listens anymore

	_, err := testClient(server.URL).ListOrders(context.Background())

	assert.ErrorIs(t, err, order.ErrNoResponse)
}

func TestClient_ListOrders_RetriesServerErrors(t *testing.T) {
	var calls int
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		if calls == 1 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"data": [{"id": 1}], "total_pages": 1}`)
	}))
	defer server.Close()

	client := NewClient(config.CommerceConfig{
		BaseURL: server.URL, RetryMax: 3, RetryWaitMS: 1, SleepMS: 1, PageSize: 10, TimeoutSecs: 5,
	}, logger.NewNop())

	orders, err := client.ListOrders(context.Background())

	require.NoError(t, err)
	assert.Len(t, orders, 1)
	assert.Equal(t, 2, calls)
}

func TestClient_GetOrder(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/orders/5", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"data": {"id": 5, "customerName": "Jane"}}`)
	}))
	defer server.Close()

	payload, err := testClient(server.URL).GetOrder(context.Background(), "5")

	require.NoError(t, err)
	var raw map[string]interface{}
	require.NoError(t, json.Unmarshal(payload, &raw))
	assert.Equal(t, "Jane", raw["customerName"])
}

func TestClient_GetOrder_NotFound(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		fmt.Fprint(w, `{"message": "no such order"}`)
	}))
	defer server.Close()

	_, err := testClient(server.URL).GetOrder(context.Background(), "404")

	assert.ErrorIs(t, err, order.ErrNotFound)
}

func TestClient_UpdateOrderStatus_Primary(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPut, r.Method)
		assert.Equal(t, "/orders/7/status", r.URL.Path)
		assert.Equal(t, "3", r.URL.Query().Get("status"))
		w.WriteHeader(http.StatusNoContent)
	}))
	defer server.Close()

	err := testClient(server.URL).UpdateOrderStatus(context.Background(), "7", 3)

	assert.NoError(t, err)
}

func TestClient_UpdateOrderStatus_FallbackBodyEncoding(t *testing.T) {
	var calls int
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		if r.URL.Query().Get("status") != "" {
			// backend variant that rejects the query encoding
			w.WriteHeader(http.StatusBadRequest)
			fmt.Fprint(w, `{"message": "status must be in body"}`)
			return
		}
		var body map[string]int
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, 3, body["status"])
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	err := testClient(server.URL).UpdateOrderStatus(context.Background(), "7", 3)

	assert.NoError(t, err)
	assert.Equal(t, 2, calls)
}

func TestClient_UpdateOrderStatus_BothEncodingsRejected(t *testing.T) {
	var calls int
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.WriteHeader(http.StatusUnprocessableEntity)
		fmt.Fprint(w, `{"message": "invalid transition"}`)
	}))
	defer server.Close()

	err := testClient(server.URL).UpdateOrderStatus(context.Background(), "7", 3)

	require.Error(t, err)
	// exactly one fallback attempt, then give up with the original rejection
	assert.Equal(t, 2, calls)
	assert.Contains(t, err.Error(), "invalid transition")
}

func TestClient_CreateOrder(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		w.WriteHeader(http.StatusCreated)
	}))
	defer server.Close()

	err := testClient(server.URL).CreateOrder(context.Background(), []byte(`{"customerName": "Jane"}`))

	assert.NoError(t, err)
}

func TestClient_DeleteAndRestore(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.Method == http.MethodDelete && r.URL.Path == "/orders/9":
			w.WriteHeader(http.StatusNoContent)
		case r.Method == http.MethodPost && r.URL.Path == "/orders/9/restore":
			w.WriteHeader(http.StatusOK)
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer server.Close()

	client := testClient(server.URL)
	assert.NoError(t, client.DeleteOrder(context.Background(), "9"))
	assert.NoError(t, client.RestoreOrder(context.Background(), "9"))
}

func TestClient_InvalidBaseURL(t *testing.T) {
	client := NewClient(config.CommerceConfig{BaseURL: "://nope"}, logger.NewNop())

	_, err := client.ListOrders(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid commerce base url")
}
