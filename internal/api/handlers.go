package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/screening-recommender/internal/domain"
	"github.com/screening-recommender/internal/middleware"
)

// RecommendResponse is the body of a successful recommend call.
type RecommendResponse struct {
	Features         domain.FeatureInput `json:"features"`
	RecommendedTools []string            `json:"recommended_tools"`
}

// handleHealth handles health check requests
func (s *Server) handleHealth(c *gin.Context) {
	body := gin.H{
		"status":    "healthy",
		"timestamp": time.Now(),
		"version":   Version,
	}
	if s.deps.Model != nil {
		body["model"] = gin.H{
			"schema_version": s.deps.Model.SchemaVersion(),
			"label_count":    s.deps.Model.LabelCount(),
		}
	}
	if s.deps.Breakers != nil {
		body["circuit_breakers"] = s.deps.Breakers.BreakerStates()
	}
	c.JSON(http.StatusOK, body)
}

// handleAnalyze runs the screening pipeline for the client named in the
// query string.
func (s *Server) handleAnalyze(c *gin.Context) {
	var client domain.ClientIdentity
	if err := c.ShouldBindQuery(&client); err != nil {
		if verr := client.Validate(); verr != nil {
			err = verr
		}
		s.writeError(c, err)
		return
	}
	if err := client.Validate(); err != nil {
		s.writeError(c, err)
		return
	}

	result, err := s.deps.Analyzer.Analyze(c.Request.Context(), client)
	if err != nil {
		s.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// handleRecommend runs the tool classifier on caller-supplied features.
func (s *Server) handleRecommend(c *gin.Context) {
	var input domain.FeatureInput
	if err := c.ShouldBindJSON(&input); err != nil {
		s.writeError(c, &domain.InvalidInputError{Err: err})
		return
	}
	if err := input.Validate(); err != nil {
		s.writeError(c, err)
		return
	}

	tools, err := s.deps.Recommender.Recommend(input.Vector())
	if err != nil {
		s.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, RecommendResponse{Features: input, RecommendedTools: tools})
}

// writeError renders err as an APIError envelope with the mapped status.
func (s *Server) writeError(c *gin.Context, err error) {
	status, code := domain.HTTPStatus(err)
	requestID := c.GetString(middleware.CorrelationIDKey)

	entry := s.logger.WithFields(logrus.Fields{
		"correlation_id": requestID,
		"status":         status,
		"code":           code,
	}).WithError(err)
	if status >= http.StatusInternalServerError {
		entry.Error("Request processing failed")
	} else {
		entry.Info("Request not fulfilled")
	}

	c.JSON(status, domain.NewAPIError(code, errorMessage(code), domain.ErrorDetail(err), requestID))
}

func errorMessage(code string) string {
	switch code {
	case domain.ErrClientNotFound:
		return "Client not found"
	case domain.ErrValidation, domain.ErrInvalidInput:
		return "Invalid request"
	case domain.ErrUpstreamFetch:
		return "Assessment source unavailable"
	default:
		return "Processing failed"
	}
}

// recoverPanic renders a recovered handler panic as an INTERNAL_SERVER_ERROR
// envelope carrying the request's correlation id.
func recoverPanic(logger *logrus.Logger) gin.RecoveryFunc {
	return func(c *gin.Context, recovered any) {
		requestID := c.GetString(middleware.CorrelationIDKey)
		logger.WithFields(logrus.Fields{
			"correlation_id": requestID,
			"panic":          recovered,
		}).Error("Recovered from handler panic")

		c.AbortWithStatusJSON(http.StatusInternalServerError, domain.NewAPIError(
			domain.ErrInternalServer,
			"Internal server error",
			"an unexpected error occurred",
			requestID,
		))
	}
}
