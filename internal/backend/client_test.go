package backend

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/docgen-client/internal/types"
)

func testPayload() *types.GenerationPayload {
	return &types.GenerationPayload{
		DocType: types.DocTypeResume,
		Fields:  map[string]any{"name": "Ada"},
	}
}

func TestNew_InvalidURL(t *testing.T) {
	for _, bad := range []string{"", "not-a-url", "/relative"} {
		_, err := New(bad, nil)
		assert.Error(t, err, bad)
	}
}

func TestGenerate_Success(t *testing.T) {
	var gotPayload types.GenerationPayload
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/generate", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotPayload))

		w.Header().Set("Content-Type", "application/pdf")
		_, _ = w.Write([]byte("%PDF-1.4 fake"))
	}))
	defer srv.Close()

	client, err := New(srv.URL, nil)
	require.NoError(t, err)

	result, err := client.Generate(context.Background(), testPayload())
	require.NoError(t, err)
	assert.Equal(t, []byte("%PDF-1.4 fake"), result.Data)
	assert.Equal(t, "application/pdf", result.ContentType)
	assert.Equal(t, types.DocTypeResume, gotPayload.DocType)
}

func TestGenerate_DefaultContentType(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header()["Content-Type"] = nil
		_, _ = w.Write([]byte("binary"))
	}))
	defer srv.Close()

	client, err := New(srv.URL, nil)
	require.NoError(t, err)

	result, err := client.Generate(context.Background(), testPayload())
	require.NoError(t, err)
	assert.Equal(t, DefaultContentType, result.ContentType)
}

func TestGenerate_ErrorDetail(t *testing.T) {
	tests := []struct {
		name       string
		status     int
		body       string
		wantDetail string
	}{
		{"detail field", http.StatusBadRequest, `{"detail":"doc_type is required"}`, "doc_type is required"},
		{"error field fallback", http.StatusInternalServerError, `{"error":"PDF generation produced no file"}`, "PDF generation produced no file"},
		{"detail wins over error", http.StatusInternalServerError, `{"error":"x","detail":"Generation failed"}`, "Generation failed"},
		{"non-JSON body", http.StatusBadGateway, `upstream exploded`, ""},
		{"empty body", http.StatusNotFound, ``, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			client, err := New(srv.URL, nil)
			require.NoError(t, err)

			_, err = client.Generate(context.Background(), testPayload())
			var berr *Error
			require.ErrorAs(t, err, &berr)
			assert.Equal(t, tt.status, berr.StatusCode)
			assert.Equal(t, tt.wantDetail, berr.Detail)
		})
	}
}

func TestGenerate_TransportError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	srv.Close() // connection refused from here on

	client, err := New(srv.URL, nil)
	require.NoError(t, err)

	_, err = client.Generate(context.Background(), testPayload())
	var berr *Error
	require.ErrorAs(t, err, &berr)
	assert.NotNil(t, berr.Unwrap())
	assert.Empty(t, berr.Detail)
}

func TestGenerate_ContextCancelled(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}))
	defer srv.Close()

	client, err := New(srv.URL, nil)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err = client.Generate(ctx, testPayload())
	assert.Error(t, err)
}
