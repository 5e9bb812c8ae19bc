package candidate

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/lshigami/Hireboard/internal/controller"
	"github.com/lshigami/Hireboard/internal/dto"
	"github.com/lshigami/Hireboard/internal/service"
)

type CandidateAttemptController struct {
	attemptService   service.AttemptService
	candidateService service.CandidateService
}

func NewCandidateAttemptController(as service.AttemptService, cs service.CandidateService) *CandidateAttemptController {
	return &CandidateAttemptController{attemptService: as, candidateService: cs}
}

// RegisterRoutes mounts the candidate endpoints on an authenticated group.
func (c *CandidateAttemptController) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/tests/assigned", c.GetAssignedTests)
	rg.POST("/attempts/start", c.StartAttempt)
	rg.POST("/attempts/:attempt_id/submit", c.SubmitAttempt)
	rg.GET("/attempts/my", c.GetMyAttempts)
}

// GetAssignedTests godoc
// @Summary (Candidate) List tests assigned through applications
// @Description Tests the candidate may start: the current round test of each of their applications.
// @Tags Candidate - Attempts
// @Produce json
// @Security BearerAuth
// @Success 200 {array} dto.AssignedTestDTO
// @Failure 401 {object} dto.ErrorResponse "Missing or invalid token"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /tests/assigned [get]
func (c *CandidateAttemptController) GetAssignedTests(ctx *gin.Context) {
	candidateID, ok := controller.CurrentUser(ctx)
	if !ok {
		return
	}
	tests, err := c.candidateService.GetAssignedTests(ctx.Request.Context(), candidateID)
	if err != nil {
		controller.RespondError(ctx, err, "Failed to retrieve assigned tests")
		return
	}
	ctx.JSON(http.StatusOK, tests)
}

// StartAttempt godoc
// @Summary (Candidate) Start or resume a test attempt
// @Description Freezes the question set for the candidate. Starting again while an attempt is open returns that attempt.
// @Tags Candidate - Attempts
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param start_data body dto.StartAttemptDTO true "Test to start"
// @Success 200 {object} dto.TestAttemptDTO "Open attempt with candidate-safe questions"
// @Failure 400 {object} dto.ErrorResponse "Invalid request body"
// @Failure 403 {object} dto.ErrorResponse "Test is not assigned to the candidate"
// @Failure 404 {object} dto.ErrorResponse "Test not found"
// @Failure 422 {object} dto.ErrorResponse "Test selection is misconfigured"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /attempts/start [post]
func (c *CandidateAttemptController) StartAttempt(ctx *gin.Context) {
	candidateID, ok := controller.CurrentUser(ctx)
	if !ok {
		return
	}
	var req dto.StartAttemptDTO
	if err := ctx.ShouldBindJSON(&req); err != nil {
		controller.BindError(ctx, err)
		return
	}

	attempt, err := c.attemptService.StartAttempt(ctx.Request.Context(), candidateID, req.TestID)
	if err != nil {
		controller.RespondError(ctx, err, "Failed to start attempt")
		return
	}
	ctx.JSON(http.StatusOK, attempt)
}

// SubmitAttempt godoc
// @Summary (Candidate) Submit answers for an open attempt
// @Description Grades every answer and closes the attempt. Scores stay hidden until the recruiter releases results.
// @Tags Candidate - Attempts
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param attempt_id path int true "Test Attempt ID"
// @Param submission_data body dto.TestAttemptSubmitDTO true "Answers; questions left out are unanswered"
// @Success 200 {object} dto.SubmitResultDTO
// @Failure 400 {object} dto.ErrorResponse "Invalid request body or ID"
// @Failure 403 {object} dto.ErrorResponse "Attempt belongs to another candidate"
// @Failure 404 {object} dto.ErrorResponse "Attempt not found"
// @Failure 409 {object} dto.ErrorResponse "Attempt already submitted or past its deadline"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /attempts/{attempt_id}/submit [post]
func (c *CandidateAttemptController) SubmitAttempt(ctx *gin.Context) {
	candidateID, ok := controller.CurrentUser(ctx)
	if !ok {
		return
	}
	attemptID, ok := controller.UintParam(ctx, "attempt_id")
	if !ok {
		return
	}
	var req dto.TestAttemptSubmitDTO
	if err := ctx.ShouldBindJSON(&req); err != nil {
		controller.BindError(ctx, err)
		return
	}

	result, err := c.attemptService.SubmitAttempt(ctx.Request.Context(), attemptID, candidateID, req)
	if err != nil {
		controller.RespondError(ctx, err, "Failed to submit attempt")
		return
	}
	ctx.JSON(http.StatusOK, result)
}

// GetMyAttempts godoc
// @Summary (Candidate) List my attempts
// @Description Attempts newest first. Score fields are present only once results are released.
// @Tags Candidate - Attempts
// @Produce json
// @Security BearerAuth
// @Success 200 {array} dto.TestAttemptSummaryDTO
// @Failure 401 {object} dto.ErrorResponse "Missing or invalid token"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /attempts/my [get]
func (c *CandidateAttemptController) GetMyAttempts(ctx *gin.Context) {
	candidateID, ok := controller.CurrentUser(ctx)
	if !ok {
		return
	}
	attempts, err := c.attemptService.GetAttemptsByCandidate(ctx.Request.Context(), candidateID)
	if err != nil {
		controller.RespondError(ctx, err, "Failed to retrieve attempts")
		return
	}
	ctx.JSON(http.StatusOK, attempts)
}
