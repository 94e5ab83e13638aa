package generator

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/openai/openai-go/option"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestOpenAI(t *testing.T, model string, handler http.HandlerFunc) *OpenAI {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	o, err := NewOpenAIFromConfig(&Settings{
		APIKey:  "sk-test",
		Model:   model,
		BaseURL: srv.URL + "/",
		Size:    "1024x1024",
	})
	require.NoError(t, err)
	o.Opts = append(o.Opts, option.WithMaxRetries(0))
	o.Now = func() time.Time { return time.UnixMilli(7) }
	return o
}

func TestOpenAI_Base64Payload(t *testing.T) {
	var req map[string]any
	o := newTestOpenAI(t, "dall-e-3", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/images/generations", r.URL.Path)
		assert.Equal(t, "Bearer sk-test", r.Header.Get("Authorization"))

		body, _ := io.ReadAll(r.Body)
		require.NoError(t, json.Unmarshal(body, &req))

		w.Header().Set("Content-Type", "application/json")
		io.WriteString(w, `{"created":1,"data":[{"b64_json":"iVBORw0KGgo="}]}`)
	})

	ref, err := o.Generate(context.Background(), Vehicles)
	require.NoError(t, err)
	assert.Equal(t, "data:image/png;base64,iVBORw0KGgo=", ref)

	assert.Equal(t, "dall-e-3", req["model"])
	assert.Equal(t, "b64_json", req["response_format"])
	assert.Equal(t, "1024x1024", req["size"])
	assert.Contains(t, req["prompt"], "Véhicules")
}

func TestOpenAI_URLPayload(t *testing.T) {
	var req map[string]any
	o := newTestOpenAI(t, "gpt-image-1", func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		json.Unmarshal(body, &req)

		w.Header().Set("Content-Type", "application/json")
		io.WriteString(w, `{"created":1,"data":[{"url":"https://example.com/page.png"}]}`)
	})

	ref, err := o.Generate(context.Background(), Animals)
	require.NoError(t, err)
	assert.Equal(t, "https://example.com/page.png", ref)
	assert.NotContains(t, req, "response_format")
}

func TestOpenAI_Errors(t *testing.T) {
	o := newTestOpenAI(t, "", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusTooManyRequests)
		io.WriteString(w, `{"error":{"message":"rate limited","type":"requests"}}`)
	})
	assert.Equal(t, DefaultOpenAIModel, o.Model)

	_, err := o.Generate(context.Background(), Animals)
	assert.Error(t, err)

	empty := newTestOpenAI(t, "", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		io.WriteString(w, `{"created":1,"data":[]}`)
	})
	_, err = empty.Generate(context.Background(), Animals)
	assert.ErrorContains(t, err, "no image generated")
}
