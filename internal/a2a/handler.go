// Package a2a serves the startup pack generator as an A2A agent over
// JSON-RPC 2.0.
package a2a

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"html"
	"io"
	"net/http"
	"strings"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/microcosm-cc/bluemonday"

	"github.com/BerylCAtieno/startup-pack-agent/internal/apierr"
	"github.com/BerylCAtieno/startup-pack-agent/internal/generator"
	"github.com/BerylCAtieno/startup-pack-agent/internal/logger"
	"github.com/BerylCAtieno/startup-pack-agent/internal/models"
	"github.com/BerylCAtieno/startup-pack-agent/internal/render"
)

const (
	maxBodyBytes   = 1 << 20
	maxDumpedBytes = 2048
)

const (
	promptForIdea        = "Please send your startup idea on the first line and a short description on the following lines."
	promptForDescription = "Got the idea %q. Please add a short description of the product and its customers on the following lines."
)

var (
	htmlPolicyOnce sync.Once
	htmlPolicy     *bluemonday.Policy
)

type A2AHandler struct {
	generator *generator.Service
	log       *logger.Logger
}

func NewA2AHandler(gen *generator.Service, log *logger.Logger) *A2AHandler {
	return &A2AHandler{
		generator: gen,
		log:       log,
	}
}

// RequestDumpMiddleware logs request and response bodies at debug level.
func RequestDumpMiddleware(log *logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		bodyBytes, _ := io.ReadAll(io.LimitReader(c.Request.Body, maxBodyBytes))
		c.Request.Body = io.NopCloser(bytes.NewReader(bodyBytes))

		log.Debug("a2a request",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"body", logger.Truncate(string(bodyBytes), maxDumpedBytes),
		)

		c.Next()

		log.Debug("a2a response", "status", c.Writer.Status())
	}
}

// HandleStartupPack processes A2A messages.
func (h *A2AHandler) HandleStartupPack(c *gin.Context) {
	bodyBytes, err := io.ReadAll(io.LimitReader(c.Request.Body, maxBodyBytes))
	if err != nil {
		h.log.Error("failed to read a2a request body", "error", err)
		h.sendErrorResponse(c, nil, "Failed to read request body", CodeParseError)
		return
	}

	var rpcReq JSONRPCRequest
	if err := json.Unmarshal(bodyBytes, &rpcReq); err != nil {
		h.log.Warn("a2a request is not valid JSON", "error", err)
		h.sendErrorResponse(c, nil, "Parse error", CodeParseError)
		return
	}

	// Some callers post the message params without the JSON-RPC envelope.
	if rpcReq.JSONRPC == "" && rpcReq.Method == "" {
		h.handleDirectMessage(c, bodyBytes)
		return
	}

	if rpcReq.JSONRPC != "2.0" {
		h.log.Warn("invalid JSON-RPC version", "version", rpcReq.JSONRPC)
		h.sendErrorResponse(c, rpcReq.ID, "Invalid JSON-RPC version", CodeInvalidRequest)
		return
	}

	switch rpcReq.Method {
	case "agent/task", "message/send":
		h.handleTask(c, rpcReq)
	default:
		h.log.Warn("unknown a2a method", "method", rpcReq.Method)
		h.sendErrorResponse(c, rpcReq.ID, fmt.Sprintf("Method not found: %s", rpcReq.Method), CodeMethodNotFound)
	}
}

func (h *A2AHandler) handleDirectMessage(c *gin.Context, bodyBytes []byte) {
	var msgParams MessageParams
	if err := json.Unmarshal(bodyBytes, &msgParams); err != nil || len(msgParams.Message.Parts) == 0 {
		h.sendErrorResponse(c, nil, "Invalid request format", CodeInvalidRequest)
		return
	}

	result := h.runTask(c.Request.Context(), msgParams.Message)
	h.sendSuccessResponse(c, nil, result)
}

func (h *A2AHandler) handleTask(c *gin.Context, rpcReq JSONRPCRequest) {
	var msgParams MessageParams
	if len(rpcReq.Params) == 0 {
		h.sendErrorResponse(c, rpcReq.ID, "Missing parameters", CodeInvalidParams)
		return
	}
	if err := json.Unmarshal(rpcReq.Params, &msgParams); err != nil {
		h.log.Warn("invalid a2a params", "error", err)
		h.sendErrorResponse(c, rpcReq.ID, "Invalid parameters", CodeInvalidParams)
		return
	}

	result := h.runTask(c.Request.Context(), msgParams.Message)
	h.sendSuccessResponse(c, rpcReq.ID, result)
}

// runTask turns one user message into a task result. Generation problems
// are reported in the task state, never as JSON-RPC errors.
func (h *A2AHandler) runTask(ctx context.Context, msg A2AMessage) TaskResult {
	taskID := firstNonEmpty(msg.TaskID, uuid.NewString())
	contextID := firstNonEmpty(msg.ContextID, uuid.NewString())

	req := extractRequest(msg)
	if req.Idea == "" {
		return h.statusResult(taskID, contextID, StateInputRequired, promptForIdea)
	}
	if req.Description == "" {
		return h.statusResult(taskID, contextID, StateInputRequired, fmt.Sprintf(promptForDescription, req.Idea))
	}

	h.log.Info("a2a generation started", "task_id", taskID, "idea", logger.Truncate(req.Idea, 80))
	pack, err := h.generator.Generate(ctx, req)
	if err != nil {
		if errors.Is(err, apierr.ErrValidation) {
			return h.statusResult(taskID, contextID, StateInputRequired, apierr.PublicMessage(err, promptForIdea))
		}
		h.log.Error("a2a generation failed", "task_id", taskID, "error", err)
		return h.statusResult(taskID, contextID, StateFailed, apierr.PublicMessage(err, "Failed to generate startup pack"))
	}

	result, err := h.createSuccessTaskResult(taskID, contextID, req.Idea, pack)
	if err != nil {
		h.log.Error("failed to encode startup pack", "task_id", taskID, "error", err)
		return h.statusResult(taskID, contextID, StateFailed, "Failed to generate startup pack")
	}
	h.log.Info("a2a generation completed", "task_id", taskID, "competitors", len(pack.Competitors))
	return result
}

// ServeAgentCard serves the agent card using Gin
func (h *A2AHandler) ServeAgentCard(c *gin.Context) {
	c.JSON(http.StatusOK, NewAgentCard(baseURL(c.Request)))
}

func (h *A2AHandler) createSuccessTaskResult(taskID, contextID, idea string, pack *models.StartupPack) (TaskResult, error) {
	responseText := render.Markdown(pack, idea)
	data, err := DataPart(pack)
	if err != nil {
		return TaskResult{}, err
	}

	return TaskResult{
		ID:        taskID,
		ContextID: contextID,
		Kind:      "task",
		Status: TaskStatus{
			State:     StateCompleted,
			Timestamp: Timestamp(),
			Message: &A2AMessage{
				Kind:      "message",
				Role:      RoleAgent,
				MessageID: uuid.NewString(),
				TaskID:    taskID,
				ContextID: contextID,
				Parts:     []MessagePart{TextPart(responseText)},
			},
		},
		Artifacts: []Artifact{
			{
				ArtifactID: uuid.NewString(),
				Name:       "Startup Pack",
				Parts:      []MessagePart{TextPart(responseText)},
			},
			{
				ArtifactID: uuid.NewString(),
				Name:       "Startup Pack Data",
				Parts:      []MessagePart{data},
			},
		},
	}, nil
}

func (h *A2AHandler) statusResult(taskID, contextID, state, text string) TaskResult {
	return TaskResult{
		ID:        taskID,
		ContextID: contextID,
		Kind:      "task",
		Status: TaskStatus{
			State:     state,
			Timestamp: Timestamp(),
			Message: &A2AMessage{
				Kind:      "message",
				Role:      RoleAgent,
				MessageID: uuid.NewString(),
				TaskID:    taskID,
				ContextID: contextID,
				Parts:     []MessagePart{TextPart(text)},
			},
		},
	}
}

func (h *A2AHandler) sendSuccessResponse(c *gin.Context, id json.RawMessage, result interface{}) {
	c.JSON(http.StatusOK, JSONRPCResponse{
		JSONRPC: "2.0",
		ID:      id,
		Result:  result,
	})
}

func (h *A2AHandler) sendErrorResponse(c *gin.Context, id json.RawMessage, message string, code int) {
	// JSON-RPC errors are sent with 200 OK
	c.JSON(http.StatusOK, JSONRPCResponse{
		JSONRPC: "2.0",
		ID:      id,
		Error:   &JSONRPCError{Code: code, Message: message},
	})
}

// extractRequest reads the idea and description from a message. A data part
// carrying {idea, description} wins; otherwise text parts (and the latest
// user turn of a history data part) are joined, the first line being the
// idea and the rest the description.
func extractRequest(msg A2AMessage) models.GenerationRequest {
	var texts []string
	for _, part := range msg.Parts {
		switch part.Kind {
		case "text":
			if text := cleanText(part.Text); text != "" {
				texts = append(texts, text)
			}
		case "data":
			if req, ok := requestFromData(part.Data); ok {
				return req
			}
			if text := latestHistoryText(part.Data); text != "" {
				texts = append(texts, text)
			}
		}
	}
	return splitIdea(strings.Join(texts, "\n"))
}

func requestFromData(data json.RawMessage) (models.GenerationRequest, bool) {
	var obj map[string]interface{}
	if err := json.Unmarshal(data, &obj); err != nil {
		return models.GenerationRequest{}, false
	}
	idea, hasIdea := obj["idea"].(string)
	description, hasDescription := obj["description"].(string)
	if !hasIdea && !hasDescription {
		return models.GenerationRequest{}, false
	}
	return models.GenerationRequest{
		Idea:        strings.TrimSpace(idea),
		Description: strings.TrimSpace(description),
	}, true
}

// latestHistoryText returns the most recent user text in a conversation
// history data part, skipping the agent's own progress messages.
func latestHistoryText(data json.RawMessage) string {
	var history []map[string]interface{}
	if err := json.Unmarshal(data, &history); err != nil {
		return ""
	}
	for i := len(history) - 1; i >= 0; i-- {
		item := history[i]
		if kind, _ := item["kind"].(string); kind != "text" {
			continue
		}
		if role, _ := item["role"].(string); role == RoleAgent {
			continue
		}
		text, _ := item["text"].(string)
		text = cleanText(text)
		if text == "" || isProgressMessage(text) {
			continue
		}
		return text
	}
	return ""
}

func isProgressMessage(text string) bool {
	lower := strings.ToLower(text)
	if strings.Contains(lower, "generating") || strings.Contains(lower, "creating") {
		return true
	}
	return strings.Trim(text, ".") == "" || (strings.HasSuffix(text, "...") && len(text) <= 8)
}

func splitIdea(text string) models.GenerationRequest {
	var lines []string
	for _, line := range strings.Split(text, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			lines = append(lines, line)
		}
	}
	if len(lines) == 0 {
		return models.GenerationRequest{}
	}
	return models.GenerationRequest{
		Idea:        lines[0],
		Description: strings.Join(lines[1:], "\n"),
	}
}

// cleanText strips chat-client HTML such as <p> wrappers.
func cleanText(s string) string {
	s = strings.TrimSpace(s)
	if !strings.Contains(s, "<") {
		return s
	}
	htmlPolicyOnce.Do(func() {
		htmlPolicy = bluemonday.StrictPolicy()
	})
	// Paragraph boundaries separate the idea from the description.
	s = strings.NewReplacer("</p>", "\n", "<br>", "\n", "<br/>", "\n").Replace(s)
	return strings.TrimSpace(html.UnescapeString(htmlPolicy.Sanitize(s)))
}

func baseURL(r *http.Request) string {
	scheme := "http"
	if r.TLS != nil {
		scheme = "https"
	}
	if proto := r.Header.Get("X-Forwarded-Proto"); proto != "" {
		scheme = strings.TrimSpace(strings.Split(proto, ",")[0])
	}
	return scheme + "://" + r.Host
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			return v
		}
	}
	return ""
}
