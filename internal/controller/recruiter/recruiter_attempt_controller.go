package recruiter

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/lshigami/Hireboard/internal/controller"
	"github.com/lshigami/Hireboard/internal/dto"
	"github.com/lshigami/Hireboard/internal/service"
)

// RecruiterAttemptController covers what recruiters do with submitted attempts:
// releasing scores and requesting AI feedback on written answers.
type RecruiterAttemptController struct {
	attemptService  service.AttemptService
	feedbackService service.FeedbackService
}

func NewRecruiterAttemptController(as service.AttemptService, fs service.FeedbackService) *RecruiterAttemptController {
	return &RecruiterAttemptController{attemptService: as, feedbackService: fs}
}

func (c *RecruiterAttemptController) RegisterRoutes(rg *gin.RouterGroup) {
	attempts := rg.Group("/attempts")
	attempts.POST("/release-results", c.ReleaseResults)
	attempts.POST("/:attempt_id/answers/:question_id/feedback", c.GenerateFeedback)
}

// ReleaseResults godoc
// @Summary (Recruiter) Release attempt results to candidates
// @Description Targets one attempt (attempt_id) or every attempt of a test (test_id). Attempts whose test was deleted are skipped; any attempt of another recruiter's test rejects the whole batch.
// @Tags Recruiter - Attempts
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param release_data body dto.ReleaseResultsDTO true "attempt_id or test_id"
// @Success 200 {object} dto.ReleaseResultsResponseDTO
// @Failure 400 {object} dto.ErrorResponse "Neither attempt_id nor test_id given"
// @Failure 403 {object} dto.ErrorResponse "Attempt of another recruiter's test"
// @Failure 404 {object} dto.ErrorResponse "No releasable attempts"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /recruiter/attempts/release-results [post]
func (c *RecruiterAttemptController) ReleaseResults(ctx *gin.Context) {
	recruiterID, ok := controller.CurrentUser(ctx)
	if !ok {
		return
	}
	var req dto.ReleaseResultsDTO
	if err := ctx.ShouldBindJSON(&req); err != nil {
		controller.BindError(ctx, err)
		return
	}
	resp, err := c.attemptService.ReleaseResults(ctx.Request.Context(), recruiterID, req)
	if err != nil {
		controller.RespondError(ctx, err, "Failed to release results")
		return
	}
	ctx.JSON(http.StatusOK, resp)
}

// GenerateFeedback godoc
// @Summary (Recruiter) Generate AI feedback for a subjective answer
// @Description Stores advisory feedback and a 0-5 rating on the answer. The attempt score is not changed.
// @Tags Recruiter - Attempts
// @Produce json
// @Security BearerAuth
// @Param attempt_id path int true "Test Attempt ID"
// @Param question_id path int true "Question ID"
// @Success 200 {object} dto.AnswerResultDTO
// @Failure 400 {object} dto.ErrorResponse "Question is not subjective"
// @Failure 403 {object} dto.ErrorResponse "Attempt of another recruiter's test"
// @Failure 404 {object} dto.ErrorResponse "Attempt, question or answer not found"
// @Failure 409 {object} dto.ErrorResponse "Attempt not submitted yet"
// @Failure 422 {object} dto.ErrorResponse "AI feedback not configured"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /recruiter/attempts/{attempt_id}/answers/{question_id}/feedback [post]
func (c *RecruiterAttemptController) GenerateFeedback(ctx *gin.Context) {
	recruiterID, ok := controller.CurrentUser(ctx)
	if !ok {
		return
	}
	attemptID, ok := controller.UintParam(ctx, "attempt_id")
	if !ok {
		return
	}
	questionID, ok := controller.UintParam(ctx, "question_id")
	if !ok {
		return
	}
	resp, err := c.feedbackService.GenerateFeedback(ctx.Request.Context(), recruiterID, attemptID, questionID)
	if err != nil {
		controller.RespondError(ctx, err, "Failed to generate feedback")
		return
	}
	ctx.JSON(http.StatusOK, resp)
}
