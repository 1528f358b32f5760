package api

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Inshalc/battery-soh-chatbot/domain/battery"
	"github.com/Inshalc/battery-soh-chatbot/internal/errors"
)

type predictRequest struct {
	Voltages  []float64 `json:"voltages"`
	Threshold *float64  `json:"threshold"`
}

func (s *Server) handlePredict(c *gin.Context) {
	var req predictRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "details": err.Error()})
		return
	}

	result, err := s.predictions.Analyze(c.Request.Context(), req.Voltages, req.Threshold)
	if err != nil {
		if errors.IsValidation(err) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Validation failed", "details": err.Error()})
			return
		}
		// Model failures are infrastructure faults: reported with
		// diagnostic detail, never retried here.
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Prediction service failed", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, result)
}

type healthStatusRequest struct {
	SOH       *float64 `json:"soh"`
	Threshold *float64 `json:"threshold"`
}

func (s *Server) handleHealthStatus(c *gin.Context) {
	var req healthStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "details": err.Error()})
		return
	}
	if req.SOH == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "SOH value is required", "details": "body field 'soh' is missing"})
		return
	}

	threshold := s.predictions.DefaultThreshold()
	if req.Threshold != nil {
		threshold = *req.Threshold
	}

	prediction, err := battery.Classify(*req.SOH, threshold)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Validation failed", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"soh":       prediction.SOH,
		"threshold": prediction.Threshold,
		"status":    prediction.Status,
		"message":   prediction.Message,
		"isHealthy": prediction.IsHealthy(),
	})
}

type chatMessageRequest struct {
	Message  *string  `json:"message"`
	KnownSOH *float64 `json:"knownSOH"`
}

func (s *Server) handleChatMessage(c *gin.Context) {
	var req chatMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Message is required and must be a string", "details": err.Error()})
		return
	}
	if req.Message == nil || *req.Message == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Message is required and must be a string", "details": "body field 'message' is missing or empty"})
		return
	}

	// Conversational failures degrade inside the orchestrator; this
	// endpoint only 400s on a missing message.
	reply := s.chat.HandleMessage(c.Request.Context(), *req.Message, req.KnownSOH)
	c.JSON(http.StatusOK, reply)
}

func (s *Server) handleHealth(c *gin.Context) {
	geminiState := "not configured"
	if s.config.AI.GeminiKey != "" {
		geminiState = "configured"
	}
	openaiState := "not configured"
	if s.config.AI.OpenAIKey != "" {
		openaiState = "configured"
	}
	historyState := "disabled"
	if s.history != nil {
		historyState = "enabled"
	}

	c.JSON(http.StatusOK, gin.H{
		"status":    "Server is running",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
		"services": gin.H{
			"battery_prediction": "active",
			"chatbot":            "active",
			"gemini_ai":          geminiState,
			"openai_ai":          openaiState,
			"history":            historyState,
		},
	})
}

func (s *Server) handleUsageSummary(c *gin.Context) {
	if !s.usage.Enabled() {
		c.JSON(http.StatusNotFound, gin.H{"error": "Usage tracking is not enabled", "details": "set DATABASE_URL to enable"})
		return
	}

	days := 7
	if raw := c.Query("days"); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil && parsed > 0 {
			days = parsed
		}
	}

	since := time.Now().AddDate(0, 0, -days)
	summary, err := s.usage.Summary(c.Request.Context(), since)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load usage summary", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"since": since, "providers": summary})
}

func (s *Server) handleRecentPredictions(c *gin.Context) {
	if s.history == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Prediction history is not enabled", "details": "set DATABASE_URL to enable"})
		return
	}

	limit := 50
	if raw := c.Query("limit"); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil && parsed > 0 {
			limit = parsed
		}
	}

	records, err := s.history.ListRecent(c.Request.Context(), limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load predictions", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"predictions": records})
}
