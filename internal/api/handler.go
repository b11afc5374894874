// Package api exposes the generation and feedback operations over HTTP.
package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/BerylCAtieno/startup-pack-agent/internal/apierr"
	"github.com/BerylCAtieno/startup-pack-agent/internal/feedback"
	"github.com/BerylCAtieno/startup-pack-agent/internal/generator"
	"github.com/BerylCAtieno/startup-pack-agent/internal/llm"
	"github.com/BerylCAtieno/startup-pack-agent/internal/logger"
	"github.com/BerylCAtieno/startup-pack-agent/internal/middleware"
	"github.com/BerylCAtieno/startup-pack-agent/internal/models"
)

const (
	msgGenerateFailed   = "Failed to generate startup pack"
	msgNoModelResponse  = "No response from AI"
	msgMissingFields    = "Idea and description are required"
	msgFeedbackMissing  = "Email and feedback are required"
	msgFeedbackDisabled = "Feedback service is not configured"
	msgFeedbackFailed   = "Failed to process feedback"
	msgFeedbackReceived = "Feedback received successfully"
)

type Handler struct {
	generator *generator.Service
	relay     *feedback.Relay
	log       *logger.Logger
}

func NewHandler(gen *generator.Service, relay *feedback.Relay, log *logger.Logger) *Handler {
	return &Handler{generator: gen, relay: relay, log: log}
}

// Register mounts the HTTP routes on r.
func (h *Handler) Register(r gin.IRouter) {
	r.GET("/health", h.Health)
	r.POST("/api/generate", h.Generate)
	r.POST("/api/feedback", h.Feedback)
}

func (h *Handler) Health(c *gin.Context) {
	c.String(http.StatusOK, "OK")
}

// Generate handles POST /api/generate.
func (h *Handler) Generate(c *gin.Context) {
	var req models.GenerationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": msgMissingFields})
		return
	}

	pack, err := h.generator.Generate(c.Request.Context(), req)
	if err != nil {
		h.fail(c, err, generateMessage(err))
		return
	}
	c.JSON(http.StatusOK, pack)
}

// Feedback handles POST /api/feedback.
func (h *Handler) Feedback(c *gin.Context) {
	var sub models.FeedbackSubmission
	if err := c.ShouldBindJSON(&sub); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": msgFeedbackMissing})
		return
	}

	res, err := h.relay.Submit(c.Request.Context(), sub)
	if err == nil {
		err = res.Err()
	}
	if err != nil {
		h.fail(c, err, feedbackMessage(err))
		return
	}
	c.JSON(http.StatusOK, models.FeedbackResponse{Success: true, Message: msgFeedbackReceived})
}

func (h *Handler) fail(c *gin.Context, err error, fallback string) {
	status := apierr.Status(err)
	if status >= http.StatusInternalServerError {
		h.log.Error("request failed",
			"path", c.FullPath(),
			"status", status,
			"request_id", middleware.RequestIDFrom(c.Request.Context()),
			"error", err,
		)
	}
	_ = c.Error(err)
	c.JSON(status, gin.H{"error": apierr.PublicMessage(err, fallback)})
}

func generateMessage(err error) string {
	if errors.Is(err, llm.ErrNoContent) {
		return msgNoModelResponse
	}
	return msgGenerateFailed
}

func feedbackMessage(err error) string {
	switch {
	case errors.Is(err, apierr.ErrConfiguration):
		return msgFeedbackDisabled
	case errors.Is(err, apierr.ErrRelayFailure):
		var e *apierr.Error
		if errors.As(err, &e) {
			return e.Message
		}
	}
	return msgFeedbackFailed
}
