package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/olivepayment/pos-intake/internal/forms"
	"github.com/olivepayment/pos-intake/internal/submission"
)

const (
	msgSuccess     = "Application submitted successfully!"
	msgFailure     = "Failed to submit application. Please try again later."
	msgConfigError = "Server configuration error"
)

// handleSubmission returns the relay handler for one form definition. Every
// failure collapses to a single generic message; detail goes to the server
// log only.
func (s *Server) handleSubmission(def *forms.Definition) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()

		// The credential guard runs before the request body is touched.
		if !s.cfg.HasMailCredential() {
			s.logger.ErrorContext(ctx, "outbound email credential is missing", "formType", def.Type)
			c.JSON(http.StatusInternalServerError, submission.Response{
				Success: false,
				Message: msgConfigError,
			})
			return
		}

		var payload submission.Payload
		if err := c.ShouldBindJSON(&payload); err != nil {
			s.logger.ErrorContext(ctx, "malformed submission payload", "formType", def.Type, "error", err)
			c.JSON(http.StatusInternalServerError, submission.Response{
				Success: false,
				Message: msgFailure,
			})
			return
		}

		s.logger.InfoContext(ctx, "submission received",
			"formType", def.Type, "applicant", payload.ApplicantName, "attachments", len(payload.Attachments))

		if err := s.relay.Process(ctx, def, &payload); err != nil {
			s.logger.ErrorContext(ctx, "submission relay failed", "formType", def.Type, "error", err)
			c.JSON(http.StatusInternalServerError, submission.Response{
				Success: false,
				Message: msgFailure,
			})
			return
		}

		c.JSON(http.StatusOK, submission.Response{
			Success: true,
			Message: msgSuccess,
		})
	}
}
