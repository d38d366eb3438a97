package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"golang.org/x/oauth2"

	"github.com/storksoft/cashtrack/internal/common"
	"github.com/storksoft/cashtrack/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testClient(t *testing.T, handler http.Handler) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client := New(server.URL, oauth2.StaticTokenSource(&oauth2.Token{AccessToken: "test-token"}))
	client.retry = common.RetryOptions{MaxAttempts: 3, InitialDelay: time.Millisecond, MaxDelay: 5 * time.Millisecond}
	return client
}

func TestClient_AttachesBearerToken(t *testing.T) {
	var gotAuth string
	client := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		_, _ = w.Write([]byte(`[]`))
	}))

	_, err := client.ListAccounts(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Bearer test-token", gotAuth)
}

func TestClient_PublicClientSendsNoToken(t *testing.T) {
	var gotAuth string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		_, _ = w.Write([]byte(`{"id":"u1","email":"a@b.c","username":"a"}`))
	}))
	defer server.Close()

	client := NewPublic(server.URL)
	_, err := client.Register(context.Background(), model.UserRegistration{
		Email:    "a@b.c",
		Username: "a",
		Password: "secret",
	})
	require.NoError(t, err)
	assert.Empty(t, gotAuth)
}

func TestClient_DecodesErrorEnvelope(t *testing.T) {
	client := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"message":"category does not allow expenses"}`))
	}))

	_, err := client.CreateOperation(context.Background(), &model.OperationInput{})
	require.Error(t, err)

	var apiErr *Error
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusBadRequest, apiErr.StatusCode)
	assert.Equal(t, "category does not allow expenses", apiErr.Message)
}

func TestClient_MapsStatusErrors(t *testing.T) {
	tests := []struct {
		want   error
		name   string
		status int
	}{
		{name: "unauthorized", status: http.StatusUnauthorized, want: common.ErrUnauthorized},
		{name: "forbidden", status: http.StatusForbidden, want: common.ErrForbidden},
		{name: "not found", status: http.StatusNotFound, want: common.ErrNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(tt.status)
			}))

			err := client.DeleteOperation(context.Background(), "op-1")
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestClient_RetriesServerErrorsOnReads(t *testing.T) {
	attempts := 0
	client := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		attempts++
		if attempts < 3 {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		_, _ = w.Write([]byte(`[]`))
	}))

	_, err := client.ListOperations(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 3, attempts)
}

func TestClient_DoesNotRetryClientErrorsOnReads(t *testing.T) {
	attempts := 0
	client := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		attempts++
		w.WriteHeader(http.StatusBadRequest)
	}))

	_, err := client.ListOperations(context.Background())
	require.Error(t, err)
	assert.Equal(t, 1, attempts)
}

func TestClient_DoesNotRetryMutations(t *testing.T) {
	attempts := 0
	client := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		attempts++
		w.WriteHeader(http.StatusInternalServerError)
	}))

	_, err := client.CreateOperation(context.Background(), &model.OperationInput{})
	require.Error(t, err)
	assert.Equal(t, 1, attempts, "one request per directed command")
}

func TestFilterOperations_WireShape(t *testing.T) {
	var got map[string]json.RawMessage
	client := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, apiPrefix+"/operations/filter", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		_, _ = w.Write([]byte(`[]`))
	}))

	_, err := client.FilterOperations(context.Background(), model.OperationFilter{})
	require.NoError(t, err)

	// An empty filter serializes every dimension as null, matching the
	// "no filter" request of the web client.
	for _, key := range []string{"dateRange", "accountIds", "categoryFilter", "notProcessed", "operationTypes"} {
		raw, ok := got[key]
		require.True(t, ok, "missing key %s", key)
		assert.Equal(t, "null", string(raw), "key %s", key)
	}
}

func TestSearchPlaces_QueryParameter(t *testing.T) {
	client := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "coffee", r.URL.Query().Get("search"))
		_, _ = w.Write([]byte(`[{"id":"p1","description":"Coffee House"}]`))
	}))

	places, err := client.SearchPlaces(context.Background(), "coffee")
	require.NoError(t, err)
	require.Len(t, places, 1)
	assert.Equal(t, "Coffee House", places[0].Description)
}
