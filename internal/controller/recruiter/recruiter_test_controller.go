package recruiter

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/lshigami/Hireboard/internal/controller"
	"github.com/lshigami/Hireboard/internal/dto"
	"github.com/lshigami/Hireboard/internal/service"
)

type RecruiterTestController struct {
	testService service.TestService
}

func NewRecruiterTestController(testService service.TestService) *RecruiterTestController {
	return &RecruiterTestController{testService: testService}
}

func (c *RecruiterTestController) RegisterRoutes(rg *gin.RouterGroup) {
	tests := rg.Group("/tests")
	tests.POST("", c.CreateTest)
	tests.GET("", c.ListTests)
	tests.GET("/:test_id", c.GetTest)
	tests.PUT("/:test_id", c.UpdateTest)
	tests.DELETE("/:test_id", c.DeleteTest)
}

// CreateTest godoc
// @Summary (Recruiter) Create a test
// @Description Manual tests list question ids; random tests carry a difficulty distribution whose percentages sum to 100.
// @Tags Recruiter - Tests
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param test_data body dto.TestUpsertDTO true "Test definition"
// @Success 201 {object} dto.TestResponseDTO
// @Failure 400 {object} dto.ErrorResponse "Invalid request body"
// @Failure 422 {object} dto.ErrorResponse "Inconsistent selection configuration"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /recruiter/tests [post]
func (c *RecruiterTestController) CreateTest(ctx *gin.Context) {
	recruiterID, ok := controller.CurrentUser(ctx)
	if !ok {
		return
	}
	var req dto.TestUpsertDTO
	if err := ctx.ShouldBindJSON(&req); err != nil {
		controller.BindError(ctx, err)
		return
	}
	resp, err := c.testService.CreateTest(ctx.Request.Context(), recruiterID, req)
	if err != nil {
		controller.RespondError(ctx, err, "Failed to create test")
		return
	}
	ctx.JSON(http.StatusCreated, resp)
}

// ListTests godoc
// @Summary (Recruiter) List my tests
// @Tags Recruiter - Tests
// @Produce json
// @Security BearerAuth
// @Success 200 {array} dto.TestResponseDTO
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /recruiter/tests [get]
func (c *RecruiterTestController) ListTests(ctx *gin.Context) {
	recruiterID, ok := controller.CurrentUser(ctx)
	if !ok {
		return
	}
	tests, err := c.testService.ListTests(ctx.Request.Context(), recruiterID)
	if err != nil {
		controller.RespondError(ctx, err, "Failed to retrieve tests")
		return
	}
	ctx.JSON(http.StatusOK, tests)
}

// GetTest godoc
// @Summary (Recruiter) Get a test
// @Tags Recruiter - Tests
// @Produce json
// @Security BearerAuth
// @Param test_id path int true "Test ID"
// @Success 200 {object} dto.TestResponseDTO
// @Failure 403 {object} dto.ErrorResponse "Test belongs to another recruiter"
// @Failure 404 {object} dto.ErrorResponse "Test not found"
// @Router /recruiter/tests/{test_id} [get]
func (c *RecruiterTestController) GetTest(ctx *gin.Context) {
	recruiterID, ok := controller.CurrentUser(ctx)
	if !ok {
		return
	}
	testID, ok := controller.UintParam(ctx, "test_id")
	if !ok {
		return
	}
	resp, err := c.testService.GetTest(ctx.Request.Context(), testID, recruiterID)
	if err != nil {
		controller.RespondError(ctx, err, "Failed to retrieve test")
		return
	}
	ctx.JSON(http.StatusOK, resp)
}

// UpdateTest godoc
// @Summary (Recruiter) Replace a test definition
// @Description Attempts already started keep their frozen question snapshot.
// @Tags Recruiter - Tests
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param test_id path int true "Test ID"
// @Param test_data body dto.TestUpsertDTO true "Test definition"
// @Success 200 {object} dto.TestResponseDTO
// @Failure 400 {object} dto.ErrorResponse "Invalid request body or ID"
// @Failure 403 {object} dto.ErrorResponse "Test belongs to another recruiter"
// @Failure 404 {object} dto.ErrorResponse "Test not found"
// @Failure 422 {object} dto.ErrorResponse "Inconsistent selection configuration"
// @Router /recruiter/tests/{test_id} [put]
func (c *RecruiterTestController) UpdateTest(ctx *gin.Context) {
	recruiterID, ok := controller.CurrentUser(ctx)
	if !ok {
		return
	}
	testID, ok := controller.UintParam(ctx, "test_id")
	if !ok {
		return
	}
	var req dto.TestUpsertDTO
	if err := ctx.ShouldBindJSON(&req); err != nil {
		controller.BindError(ctx, err)
		return
	}
	resp, err := c.testService.UpdateTest(ctx.Request.Context(), testID, recruiterID, req)
	if err != nil {
		controller.RespondError(ctx, err, "Failed to update test")
		return
	}
	ctx.JSON(http.StatusOK, resp)
}

// DeleteTest godoc
// @Summary (Recruiter) Delete a test
// @Tags Recruiter - Tests
// @Security BearerAuth
// @Param test_id path int true "Test ID"
// @Success 204
// @Failure 403 {object} dto.ErrorResponse "Test belongs to another recruiter"
// @Failure 404 {object} dto.ErrorResponse "Test not found"
// @Router /recruiter/tests/{test_id} [delete]
func (c *RecruiterTestController) DeleteTest(ctx *gin.Context) {
	recruiterID, ok := controller.CurrentUser(ctx)
	if !ok {
		return
	}
	testID, ok := controller.UintParam(ctx, "test_id")
	if !ok {
		return
	}
	if err := c.testService.DeleteTest(ctx.Request.Context(), testID, recruiterID); err != nil {
		controller.RespondError(ctx, err, "Failed to delete test")
		return
	}
	ctx.Status(http.StatusNoContent)
}
