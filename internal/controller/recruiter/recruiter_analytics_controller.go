package recruiter

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/lshigami/Hireboard/internal/controller"
	"github.com/lshigami/Hireboard/internal/dto"
	"github.com/lshigami/Hireboard/internal/service"
)

type RecruiterAnalyticsController struct {
	analyticsService service.AnalyticsService
}

func NewRecruiterAnalyticsController(analyticsService service.AnalyticsService) *RecruiterAnalyticsController {
	return &RecruiterAnalyticsController{analyticsService: analyticsService}
}

func (c *RecruiterAnalyticsController) RegisterRoutes(rg *gin.RouterGroup) {
	analytics := rg.Group("/analytics")
	analytics.GET("/tests/:test_id", c.GetTestAnalytics)
	analytics.GET("/jobs/:job_id", c.GetJobAnalytics)
}

// GetTestAnalytics godoc
// @Summary (Recruiter) Score statistics for a test
// @Description Average, highest and lowest score over completed attempts, plus the top 5 ranked by score then duration.
// @Tags Recruiter - Analytics
// @Produce json
// @Security BearerAuth
// @Param test_id path int true "Test ID"
// @Success 200 {object} dto.TestAnalyticsDTO
// @Failure 403 {object} dto.ErrorResponse "Test belongs to another recruiter"
// @Failure 404 {object} dto.ErrorResponse "Test not found"
// @Router /recruiter/analytics/tests/{test_id} [get]
func (c *RecruiterAnalyticsController) GetTestAnalytics(ctx *gin.Context) {
	recruiterID, ok := controller.CurrentUser(ctx)
	if !ok {
		return
	}
	testID, ok := controller.UintParam(ctx, "test_id")
	if !ok {
		return
	}
	resp, err := c.analyticsService.GetTestAnalytics(ctx.Request.Context(), testID, recruiterID)
	if err != nil {
		controller.RespondError(ctx, err, "Failed to compute test analytics")
		return
	}
	ctx.JSON(http.StatusOK, resp)
}

// GetJobAnalytics godoc
// @Summary (Recruiter) Candidate results for a job
// @Description Completed attempts of the job's applicants on the job's test, optionally limited to applicants who reached a round.
// @Tags Recruiter - Analytics
// @Produce json
// @Security BearerAuth
// @Param job_id path int true "Job ID"
// @Param round query int false "Only applicants whose round history includes this round"
// @Success 200 {object} dto.JobAnalyticsDTO
// @Failure 400 {object} dto.ErrorResponse "Invalid job ID or round"
// @Failure 404 {object} dto.ErrorResponse "Job not found"
// @Router /recruiter/analytics/jobs/{job_id} [get]
func (c *RecruiterAnalyticsController) GetJobAnalytics(ctx *gin.Context) {
	jobID, ok := controller.UintParam(ctx, "job_id")
	if !ok {
		return
	}
	var round *int
	if raw := ctx.Query("round"); raw != "" {
		r, err := strconv.Atoi(raw)
		if err != nil || r < 1 {
			ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid round format"})
			return
		}
		round = &r
	}
	resp, err := c.analyticsService.GetJobAnalytics(ctx.Request.Context(), jobID, round)
	if err != nil {
		controller.RespondError(ctx, err, "Failed to compute job analytics")
		return
	}
	ctx.JSON(http.StatusOK, resp)
}
