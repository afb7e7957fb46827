package a2a

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/BerylCAtieno/startup-idea-agent/internal/ideagen"
	"github.com/BerylCAtieno/startup-idea-agent/internal/models"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubBackend struct {
	reply  string
	err    error
	prompt ideagen.Prompt
	calls  int
}

func (s *stubBackend) Generate(_ context.Context, p ideagen.Prompt) (string, error) {
	s.calls++
	s.prompt = p
	return s.reply, s.err
}

func newTestRouter(backend *stubBackend) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	NewA2AHandler(ideagen.NewGenerator(backend), "http://agent.local/").Register(r)
	return r
}

func post(t *testing.T, r http.Handler, body string) JSONRPCResponse {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, EndpointPath, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	var resp JSONRPCResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "2.0", resp.JSONRPC)
	return resp
}

const ecoReply = "Startup Name: EcoConnect\nDescription: A sustainability marketplace.\nTarget Audience: Millennials.\nMonetization Model: Commission."

func TestServeAgentCard(t *testing.T) {
	r := newTestRouter(&stubBackend{})
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, AgentCardPath, nil))
	require.Equal(t, http.StatusOK, w.Code)

	var card AgentCard
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &card))
	assert.Equal(t, "http://agent.local/a2a/idea-generator", card.URL)
	require.Len(t, card.Skills, 1)
	assert.Equal(t, "generate-startup-idea", card.Skills[0].ID)
}

func TestMessageSend_Completed(t *testing.T) {
	backend := &stubBackend{reply: ecoReply}
	r := newTestRouter(backend)

	resp := post(t, r, `{"jsonrpc":"2.0","id":"req-1","method":"message/send","params":{"message":{"kind":"message","role":"user","parts":[{"kind":"text","text":"Sustainability"}]}}}`)

	require.Nil(t, resp.Error)
	require.NotNil(t, resp.Result)
	assert.Equal(t, "req-1", resp.ID)
	assert.Equal(t, StateCompleted, resp.Result.Status.State)
	assert.NotEmpty(t, resp.Result.ID)
	assert.Contains(t, backend.prompt.User, "Area of Interest: Sustainability")

	require.Len(t, resp.Result.Artifacts, 1)
	parts := resp.Result.Artifacts[0].Parts
	require.Len(t, parts, 2)
	assert.Contains(t, parts[0].Text, "# EcoConnect")
	assert.Contains(t, parts[0].Text, "**Monetization Model:** Commission.")

	var idea models.Idea
	require.NoError(t, json.Unmarshal(parts[1].Data, &idea))
	assert.Equal(t, models.Idea{
		Name:           "EcoConnect",
		Description:    "A sustainability marketplace.",
		TargetAudience: "Millennials.",
		Monetization:   "Commission.",
	}, idea)
}

func TestMessageSend_TaskIDIsKept(t *testing.T) {
	r := newTestRouter(&stubBackend{reply: ecoReply})
	resp := post(t, r, `{"jsonrpc":"2.0","id":"1","method":"agent/task","params":{"message":{"role":"user","taskId":"task-42","parts":[{"kind":"text","text":"AI"}]}}}`)
	require.NotNil(t, resp.Result)
	assert.Equal(t, "task-42", resp.Result.ID)
}

func TestMessageSend_FailedTasks(t *testing.T) {
	tests := []struct {
		name    string
		backend *stubBackend
		parts   string
		message string
		calls   int
	}{
		{"no area", &stubBackend{reply: ecoReply}, `[{"kind":"text","text":"   "}]`, "Area of interest is required", 0},
		{"rate limited", &stubBackend{err: ideagen.ErrRateLimited}, `[{"kind":"text","text":"AI"}]`, "Rate limits exceeded, please try again later.", 1},
		{"payment", &stubBackend{err: ideagen.ErrPaymentRequired}, `[{"kind":"text","text":"AI"}]`, "Payment required, please add funds to your Lovable AI workspace.", 1},
		{"upstream", &stubBackend{err: &ideagen.UpstreamError{Status: 500}}, `[{"kind":"text","text":"AI"}]`, "AI gateway error", 1},
		{"credential", &stubBackend{err: &ideagen.CredentialError{Env: "LOVABLE_API_KEY"}}, `[{"kind":"text","text":"AI"}]`, "LOVABLE_API_KEY is not configured", 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := newTestRouter(tt.backend)
			resp := post(t, r, `{"jsonrpc":"2.0","id":"x","method":"message/send","params":{"message":{"role":"user","parts":`+tt.parts+`}}}`)

			require.Nil(t, resp.Error)
			require.NotNil(t, resp.Result)
			assert.Equal(t, StateFailed, resp.Result.Status.State)
			require.NotNil(t, resp.Result.Status.Message)
			assert.Equal(t, tt.message, resp.Result.Status.Message.Parts[0].Text)
			assert.Empty(t, resp.Result.Artifacts)
			assert.Equal(t, tt.calls, tt.backend.calls)
		})
	}
}

func TestRPCErrors(t *testing.T) {
	tests := []struct {
		name string
		body string
		code int
	}{
		{"bad version", `{"jsonrpc":"1.0","id":"1","method":"message/send","params":{}}`, CodeInvalidRequest},
		{"unknown method", `{"jsonrpc":"2.0","id":"1","method":"tasks/cancel","params":{}}`, CodeMethodNotFound},
		{"missing params", `{"jsonrpc":"2.0","id":"1","method":"message/send"}`, CodeInvalidParams},
		{"bad params", `{"jsonrpc":"2.0","id":"1","method":"message/send","params":{"message":"nope"}}`, CodeInvalidParams},
		{"not json", `{{{`, CodeParseError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := post(t, newTestRouter(&stubBackend{}), tt.body)
			require.NotNil(t, resp.Error)
			assert.Equal(t, tt.code, resp.Error.Code)
			assert.Nil(t, resp.Result)
		})
	}
}

func TestDirectMessage(t *testing.T) {
	backend := &stubBackend{reply: ecoReply}
	resp := post(t, newTestRouter(backend), `{"message":{"role":"user","parts":[{"kind":"text","text":"Fintech"}]}}`)

	require.NotNil(t, resp.Result)
	assert.Equal(t, directMessageID, resp.ID)
	assert.Equal(t, StateCompleted, resp.Result.Status.State)
	assert.Contains(t, backend.prompt.User, "Area of Interest: Fintech")
}

func TestExtractAreaOfInterest(t *testing.T) {
	tests := []struct {
		name string
		msg  A2AMessage
		want string
	}{
		{
			name: "text parts joined",
			msg:  A2AMessage{Parts: []MessagePart{TextPart(" Green "), TextPart("energy")}},
			want: "Green energy",
		},
		{
			name: "history fallback picks latest user text",
			msg: A2AMessage{Parts: []MessagePart{{
				Kind: "data",
				Data: json.RawMessage(`[{"kind":"text","role":"user","text":"<p>Old</p>"},{"kind":"text","role":"user","text":"<p>Healthcare</p>"},{"kind":"text","role":"agent","text":"Working on it"}]`),
			}}},
			want: "Healthcare",
		},
		{
			name: "text wins over history",
			msg: A2AMessage{Parts: []MessagePart{
				TextPart("Education"),
				{Kind: "data", Data: json.RawMessage(`[{"kind":"text","text":"Other"}]`)},
			}},
			want: "Education",
		},
		{
			name: "non-history data ignored",
			msg:  A2AMessage{Parts: []MessagePart{{Kind: "data", Data: json.RawMessage(`{"a":1}`)}}},
			want: "",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, extractAreaOfInterest(tt.msg))
		})
	}
}

func TestFormatIdeaSkipsEmptyFields(t *testing.T) {
	got := formatIdea(models.Idea{Description: "Only this."})
	assert.Equal(t, "# Startup Idea\n\n**Description:** Only this.\n", got)
}
