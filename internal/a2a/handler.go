package a2a

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/BerylCAtieno/startup-idea-agent/internal/ideagen"
	"github.com/BerylCAtieno/startup-idea-agent/internal/logger"
	"github.com/BerylCAtieno/startup-idea-agent/internal/metrics"
	"github.com/BerylCAtieno/startup-idea-agent/internal/models"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const directMessageID = "direct-message"

type IdeaGenerator interface {
	GenerateIdea(ctx context.Context, req models.IdeaRequest) (models.Idea, error)
}

type A2AHandler struct {
	generator IdeaGenerator
	card      AgentCard
}

func NewA2AHandler(generator IdeaGenerator, baseURL string) *A2AHandler {
	return &A2AHandler{
		generator: generator,
		card:      NewAgentCard(baseURL),
	}
}

// Register mounts the agent card and the JSON-RPC endpoint.
func (h *A2AHandler) Register(r gin.IRoutes) {
	r.GET(AgentCardPath, h.ServeAgentCard)
	r.POST(EndpointPath, h.HandleIdeaGenerator)
}

func (h *A2AHandler) ServeAgentCard(c *gin.Context) {
	c.JSON(http.StatusOK, h.card)
}

// HandleIdeaGenerator processes A2A messages. Bodies that are not JSON-RPC
// envelopes are tried as bare message params.
func (h *A2AHandler) HandleIdeaGenerator(c *gin.Context) {
	bodyBytes, err := io.ReadAll(c.Request.Body)
	if err != nil {
		logger.Errorf("a2a: failed to read request body: %v", err)
		h.sendErrorResponse(c, "", "Failed to read request body", CodeParseError)
		return
	}
	logger.Debugf("a2a: raw request body: %s", string(bodyBytes))

	var rpcReq JSONRPCRequest
	if err := json.Unmarshal(bodyBytes, &rpcReq); err != nil || rpcReq.JSONRPC == "" {
		h.handleDirectMessage(c, bodyBytes)
		return
	}

	if rpcReq.JSONRPC != "2.0" {
		logger.Warnf("a2a: invalid JSON-RPC version %q", rpcReq.JSONRPC)
		h.sendErrorResponse(c, rpcReq.ID, "Invalid JSON-RPC version", CodeInvalidRequest)
		return
	}

	switch rpcReq.Method {
	case "message/send", "agent/task":
		h.handleTask(c, rpcReq)
	default:
		logger.Warnf("a2a: unknown method %q", rpcReq.Method)
		h.sendErrorResponse(c, rpcReq.ID, fmt.Sprintf("Method not found: %s", rpcReq.Method), CodeMethodNotFound)
	}
}

func (h *A2AHandler) handleDirectMessage(c *gin.Context, bodyBytes []byte) {
	var msgParams MessageParams
	if err := json.Unmarshal(bodyBytes, &msgParams); err != nil || len(msgParams.Message.Parts) == 0 {
		logger.Warnf("a2a: body is neither JSON-RPC nor a message: %v", err)
		h.sendErrorResponse(c, "", "Invalid request format", CodeParseError)
		return
	}

	result := h.runTask(c.Request.Context(), directMessageID, msgParams.Message)
	h.sendSuccessResponse(c, directMessageID, result)
}

func (h *A2AHandler) handleTask(c *gin.Context, rpcReq JSONRPCRequest) {
	var msgParams MessageParams
	if len(rpcReq.Params) == 0 {
		h.sendErrorResponse(c, rpcReq.ID, "Invalid parameters", CodeInvalidParams)
		return
	}
	if err := json.Unmarshal(rpcReq.Params, &msgParams); err != nil {
		logger.Warnf("a2a: failed to decode params: %v", err)
		h.sendErrorResponse(c, rpcReq.ID, "Invalid parameters", CodeInvalidParams)
		return
	}

	result := h.runTask(c.Request.Context(), rpcReq.ID, msgParams.Message)
	h.sendSuccessResponse(c, rpcReq.ID, result)
}

// runTask generates an idea for the message and reports it as a task.
// Generation errors become a failed task, not a JSON-RPC error.
func (h *A2AHandler) runTask(ctx context.Context, rpcID string, msg A2AMessage) *TaskResult {
	taskID := msg.TaskID
	if taskID == "" {
		taskID = uuid.New().String()
	}

	area := extractAreaOfInterest(msg)
	logger.Infof("a2a: task %s (request %s) area=%q", taskID, rpcID, area)

	idea, err := h.generator.GenerateIdea(ctx, models.IdeaRequest{AreaOfInterest: area})
	metrics.Generations.WithLabelValues(ideagen.Outcome(err)).Inc()
	if err != nil {
		logger.Errorf("a2a: task %s failed: %v", taskID, err)
		return createErrorTaskResult(taskID, ideagen.PublicMessage(err))
	}
	return createSuccessTaskResult(taskID, idea)
}

type historyItem struct {
	Kind string `json:"kind"`
	Role string `json:"role"`
	Text string `json:"text"`
}

// extractAreaOfInterest joins the message's text parts. Without any, it
// falls back to the most recent user text in a data part carrying history.
func extractAreaOfInterest(msg A2AMessage) string {
	var texts []string
	for _, part := range msg.Parts {
		if part.Kind == "text" && strings.TrimSpace(part.Text) != "" {
			texts = append(texts, strings.TrimSpace(part.Text))
		}
	}
	if len(texts) > 0 {
		return strings.Join(texts, " ")
	}

	for _, part := range msg.Parts {
		if part.Kind != "data" || len(part.Data) == 0 {
			continue
		}
		var history []historyItem
		if err := json.Unmarshal(part.Data, &history); err != nil {
			logger.Debugf("a2a: data part is not a history array: %v", err)
			continue
		}
		for i := len(history) - 1; i >= 0; i-- {
			item := history[i]
			if item.Kind != "text" || item.Role == RoleAgent {
				continue
			}
			text := strings.NewReplacer("<p>", "", "</p>", "").Replace(item.Text)
			if text = strings.TrimSpace(text); text != "" {
				return text
			}
		}
	}
	return ""
}

func createSuccessTaskResult(taskID string, idea models.Idea) *TaskResult {
	text := formatIdea(idea)
	return &TaskResult{
		ID:   taskID,
		Kind: "task",
		Status: TaskStatus{
			State:     StateCompleted,
			Timestamp: Timestamp(),
			Message: &A2AMessage{
				Kind:      "message",
				Role:      RoleAgent,
				MessageID: uuid.New().String(),
				TaskID:    taskID,
				Parts:     []MessagePart{TextPart(text)},
			},
		},
		Artifacts: []Artifact{
			{
				ArtifactID: uuid.New().String(),
				Name:       "Startup Idea",
				Parts:      []MessagePart{TextPart(text), IdeaPart(idea)},
			},
		},
	}
}

func createErrorTaskResult(taskID string, errorMsg string) *TaskResult {
	return &TaskResult{
		ID:   taskID,
		Kind: "task",
		Status: TaskStatus{
			State:     StateFailed,
			Timestamp: Timestamp(),
			Message: &A2AMessage{
				Kind:      "message",
				Role:      RoleAgent,
				MessageID: uuid.New().String(),
				TaskID:    taskID,
				Parts:     []MessagePart{TextPart(errorMsg)},
			},
		},
	}
}

func formatIdea(idea models.Idea) string {
	var b strings.Builder
	name := idea.Name
	if name == "" {
		name = "Startup Idea"
	}
	fmt.Fprintf(&b, "# %s\n", name)

	for _, field := range []struct{ label, value string }{
		{"Description", idea.Description},
		{"Target Audience", idea.TargetAudience},
		{"Monetization Model", idea.Monetization},
	} {
		if field.value != "" {
			fmt.Fprintf(&b, "\n**%s:** %s\n", field.label, field.value)
		}
	}
	return b.String()
}

func (h *A2AHandler) sendSuccessResponse(c *gin.Context, id string, result *TaskResult) {
	c.JSON(http.StatusOK, JSONRPCResponse{JSONRPC: "2.0", ID: id, Result: result})
}

// JSON-RPC errors are sent with 200 OK.
func (h *A2AHandler) sendErrorResponse(c *gin.Context, id string, message string, code int) {
	logger.Warnf("a2a: rpc error %d: %s", code, message)
	c.JSON(http.StatusOK, JSONRPCResponse{
		JSONRPC: "2.0",
		ID:      id,
		Error:   &JSONRPCError{Code: code, Message: message},
	})
}
