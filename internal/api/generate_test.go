package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/BerylCAtieno/startup-idea-agent/internal/ideagen"
	"github.com/BerylCAtieno/startup-idea-agent/internal/metrics"
	"github.com/BerylCAtieno/startup-idea-agent/internal/models"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeUpstream is an OpenAI-compatible gateway returning a fixed status and body.
func fakeUpstream(t *testing.T, status int, body string) (string, *int32) {
	t.Helper()
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv.URL, &calls
}

func completion(content string) string {
	data, _ := json.Marshal(map[string]any{
		"choices": []map[string]any{{"message": map[string]string{"role": "assistant", "content": content}}},
	})
	return string(data)
}

func proxyRouter(url, apiKey string) http.Handler {
	gen := ideagen.NewGenerator(ideagen.NewGatewayClient(ideagen.GatewayConfig{
		URL: url, Model: "google/gemini-2.5-flash", APIKey: apiKey, Timeout: 5 * time.Second,
	}))
	return NewRouter(Options{Generator: gen})
}

func postJSON(h http.Handler, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func decodeError(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	var body models.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body.Error
}

func TestGenerate_Success(t *testing.T) {
	url, calls := fakeUpstream(t, http.StatusOK, completion(
		"Startup Name: EcoConnect\nDescription: A sustainability marketplace.\nTarget Audience: Eco-conscious millennials.\nMonetization Model: Commission-based."))
	r := proxyRouter(url, "k")

	before := testutil.ToFloat64(metrics.Generations.WithLabelValues(metrics.OutcomeSuccess))
	w := postJSON(r, "/generate-startup-idea", `{"areaOfInterest":"Sustainability"}`)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
	assert.JSONEq(t, `{"idea":{"name":"EcoConnect","description":"A sustainability marketplace.","targetAudience":"Eco-conscious millennials.","monetization":"Commission-based."}}`, w.Body.String())
	assert.Equal(t, int32(1), atomic.LoadInt32(calls))
	assert.Equal(t, before+1, testutil.ToFloat64(metrics.Generations.WithLabelValues(metrics.OutcomeSuccess)))
}

func TestGenerate_PartialReplyStillSucceeds(t *testing.T) {
	url, _ := fakeUpstream(t, http.StatusOK, completion("Startup Name: Half\nDescription: Only two."))
	w := postJSON(proxyRouter(url, "k"), "/functions/v1/generate-startup-idea", `{"areaOfInterest":"x","startupName":"Half"}`)

	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"idea":{"name":"Half","description":"Only two."}}`, w.Body.String())
}

func TestGenerate_MissingAreaNeverCallsUpstream(t *testing.T) {
	url, calls := fakeUpstream(t, http.StatusOK, completion("Startup Name: X"))
	r := proxyRouter(url, "k")

	for _, body := range []string{`{}`, `{"areaOfInterest":""}`, `{"areaOfInterest":"   "}`, `{"startupName":"Only"}`} {
		w := postJSON(r, "/generate-startup-idea", body)
		assert.Equal(t, http.StatusBadRequest, w.Code, body)
		assert.Equal(t, "Area of interest is required", decodeError(t, w))
	}
	assert.Equal(t, int32(0), atomic.LoadInt32(calls))
}

func TestGenerate_UpstreamStatuses(t *testing.T) {
	tests := []struct {
		name     string
		upstream int
		body     string
		want     int
		message  string
	}{
		{"rate limited", http.StatusTooManyRequests, "", http.StatusTooManyRequests, "Rate limits exceeded, please try again later."},
		{"payment", http.StatusPaymentRequired, "", http.StatusPaymentRequired, "Payment required, please add funds to your Lovable AI workspace."},
		{"server error", http.StatusInternalServerError, "model crashed", http.StatusInternalServerError, "AI gateway error"},
		{"bad request", http.StatusBadRequest, "bad model", http.StatusInternalServerError, "AI gateway error"},
		{"no choices", http.StatusOK, `{"choices":[]}`, http.StatusInternalServerError, "AI gateway returned no choices"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			url, calls := fakeUpstream(t, tt.upstream, tt.body)
			w := postJSON(proxyRouter(url, "k"), "/generate-startup-idea", `{"areaOfInterest":"AI"}`)
			assert.Equal(t, tt.want, w.Code)
			assert.Equal(t, tt.message, decodeError(t, w))
			assert.Equal(t, int32(1), atomic.LoadInt32(calls))
		})
	}
}

func TestGenerate_MissingCredential(t *testing.T) {
	url, calls := fakeUpstream(t, http.StatusOK, completion("Startup Name: X"))
	w := postJSON(proxyRouter(url, ""), "/generate-startup-idea", `{"areaOfInterest":"AI"}`)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, "LOVABLE_API_KEY is not configured", decodeError(t, w))
	assert.Equal(t, int32(0), atomic.LoadInt32(calls))
}

func TestGenerate_MalformedJSON(t *testing.T) {
	url, calls := fakeUpstream(t, http.StatusOK, completion("Startup Name: X"))
	w := postJSON(proxyRouter(url, "k"), "/generate-startup-idea", `{"areaOfInterest":`)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.NotEmpty(t, decodeError(t, w))
	assert.Equal(t, int32(0), atomic.LoadInt32(calls))
}

type errGenerator struct{ err error }

func (g errGenerator) GenerateIdea(context.Context, models.IdeaRequest) (models.Idea, error) {
	return models.Idea{}, g.err
}

func TestGenerate_LocalFailureSurfacesMessage(t *testing.T) {
	r := NewRouter(Options{Generator: errGenerator{err: errors.New("dial tcp: connection refused")}})
	w := postJSON(r, "/generate-startup-idea", `{"areaOfInterest":"AI"}`)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, "dial tcp: connection refused", decodeError(t, w))
}
