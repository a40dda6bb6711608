// file: service/schema_service_test.go

package service

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSchemaService_ListFields(t *testing.T) {
	t.Run("returns api names in provider order", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/crm/v3/settings/fields", r.URL.Path)
			assert.Equal(t, "Customers", r.URL.Query().Get("module"))
			assert.Equal(t, "Zoho-oauthtoken token-123", r.Header.Get("Authorization"))
			w.Write([]byte(`{"fields":[{"api_name":"Name"},{"api_name":"Email"},{"api_name":"Phone"}]}`))
		}))
		defer server.Close()

		schemaService := NewSchemaService(server.Client())
		fields, err := schemaService.ListFields(context.Background(), "token-123", server.URL, "Customers")

		assert.NoError(t, err)
		assert.Equal(t, []string{"Name", "Email", "Phone"}, fields)
	})

	t.Run("non-200 status carries the provider body", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusForbidden)
			w.Write([]byte(`{"code":"NO_PERMISSION"}`))
		}))
		defer server.Close()

		schemaService := NewSchemaService(server.Client())
		_, err := schemaService.ListFields(context.Background(), "t", server.URL, "Customers")

		var fetchErr *SchemaFetchError
		assert.ErrorAs(t, err, &fetchErr)
		assert.Equal(t, http.StatusForbidden, fetchErr.StatusCode)
		assert.Equal(t, `{"code":"NO_PERMISSION"}`, fetchErr.Body)
	})

	t.Run("missing fields key", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"info":{}}`))
		}))
		defer server.Close()

		schemaService := NewSchemaService(server.Client())
		_, err := schemaService.ListFields(context.Background(), "t", server.URL, "Customers")

		assert.ErrorIs(t, err, ErrNoFieldsFound)
	})

	t.Run("empty fields list is not an error", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"fields":[]}`))
		}))
		defer server.Close()

		schemaService := NewSchemaService(server.Client())
		fields, err := schemaService.ListFields(context.Background(), "t", server.URL, "Customers")

		assert.NoError(t, err)
		assert.Empty(t, fields)
	})

	t.Run("unreachable provider is a transport error", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
		serverURL := server.URL
		server.Close()

		schemaService := NewSchemaService(http.DefaultClient)
		_, err := schemaService.ListFields(context.Background(), "t", serverURL, "Customers")

		var transportErr *TransportError
		assert.ErrorAs(t, err, &transportErr)
	})
}
