package recruiter

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/lshigami/Hireboard/internal/controller"
	"github.com/lshigami/Hireboard/internal/dto"
	"github.com/lshigami/Hireboard/internal/service"
)

type RecruiterApplicationController struct {
	applicationService service.ApplicationService
}

func NewRecruiterApplicationController(applicationService service.ApplicationService) *RecruiterApplicationController {
	return &RecruiterApplicationController{applicationService: applicationService}
}

func (c *RecruiterApplicationController) RegisterRoutes(rg *gin.RouterGroup) {
	rg.PUT("/applications/:application_id/round", c.AssignRound)
}

// AssignRound godoc
// @Summary (Recruiter) Move an application to a round
// @Description Sets the round and its test; the candidate can then start that test.
// @Tags Recruiter - Applications
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param application_id path int true "Application ID"
// @Param round_data body dto.AssignRoundDTO true "Round number and test"
// @Success 200 {object} dto.ApplicationResponseDTO
// @Failure 400 {object} dto.ErrorResponse "Invalid request body or ID"
// @Failure 403 {object} dto.ErrorResponse "Job belongs to another recruiter"
// @Failure 404 {object} dto.ErrorResponse "Application or test not found"
// @Router /recruiter/applications/{application_id}/round [put]
func (c *RecruiterApplicationController) AssignRound(ctx *gin.Context) {
	recruiterID, ok := controller.CurrentUser(ctx)
	if !ok {
		return
	}
	applicationID, ok := controller.UintParam(ctx, "application_id")
	if !ok {
		return
	}
	var req dto.AssignRoundDTO
	if err := ctx.ShouldBindJSON(&req); err != nil {
		controller.BindError(ctx, err)
		return
	}
	resp, err := c.applicationService.AssignRound(ctx.Request.Context(), recruiterID, applicationID, req)
	if err != nil {
		controller.RespondError(ctx, err, "Failed to assign round")
		return
	}
	ctx.JSON(http.StatusOK, resp)
}
