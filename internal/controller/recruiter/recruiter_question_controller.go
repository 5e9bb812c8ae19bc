package recruiter

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/lshigami/Hireboard/internal/controller"
	"github.com/lshigami/Hireboard/internal/dto"
	"github.com/lshigami/Hireboard/internal/model"
	"github.com/lshigami/Hireboard/internal/repository"
	"github.com/lshigami/Hireboard/internal/service"
)

type RecruiterQuestionController struct {
	questionService service.QuestionService
}

func NewRecruiterQuestionController(questionService service.QuestionService) *RecruiterQuestionController {
	return &RecruiterQuestionController{questionService: questionService}
}

func (c *RecruiterQuestionController) RegisterRoutes(rg *gin.RouterGroup) {
	questions := rg.Group("/questions")
	questions.POST("", c.CreateQuestion)
	questions.GET("", c.ListQuestions)
	questions.GET("/:question_id", c.GetQuestion)
	questions.PUT("/:question_id", c.UpdateQuestion)
	questions.DELETE("/:question_id", c.DeleteQuestion)
}

// CreateQuestion godoc
// @Summary (Recruiter) Create a question
// @Description Coding questions default to a 2s time limit, 256MB and partial scoring by test case.
// @Tags Recruiter - Questions
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param question_data body dto.QuestionUpsertDTO true "Question definition"
// @Success 201 {object} dto.QuestionResponseDTO
// @Failure 400 {object} dto.ErrorResponse "Invalid question"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /recruiter/questions [post]
func (c *RecruiterQuestionController) CreateQuestion(ctx *gin.Context) {
	recruiterID, ok := controller.CurrentUser(ctx)
	if !ok {
		return
	}
	var req dto.QuestionUpsertDTO
	if err := ctx.ShouldBindJSON(&req); err != nil {
		controller.BindError(ctx, err)
		return
	}
	resp, err := c.questionService.CreateQuestion(ctx.Request.Context(), recruiterID, req)
	if err != nil {
		controller.RespondError(ctx, err, "Failed to create question")
		return
	}
	ctx.JSON(http.StatusCreated, resp)
}

// ListQuestions godoc
// @Summary (Recruiter) List questions
// @Description Filter the question bank by type and difficulty. mine=true limits it to the caller's questions.
// @Tags Recruiter - Questions
// @Produce json
// @Security BearerAuth
// @Param type query string false "Question type" Enums(Multiple Choice, Subjective, Coding)
// @Param difficulty query string false "Difficulty" Enums(Easy, Medium, Hard, Expert)
// @Param mine query bool false "Only questions created by the caller"
// @Success 200 {array} dto.QuestionResponseDTO
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /recruiter/questions [get]
func (c *RecruiterQuestionController) ListQuestions(ctx *gin.Context) {
	recruiterID, ok := controller.CurrentUser(ctx)
	if !ok {
		return
	}
	filter := repository.QuestionFilter{
		Type:       model.QuestionType(ctx.Query("type")),
		Difficulty: model.Difficulty(ctx.Query("difficulty")),
	}
	if ctx.Query("mine") == "true" {
		filter.CreatedBy = recruiterID
	}
	questions, err := c.questionService.GetAllQuestions(ctx.Request.Context(), filter)
	if err != nil {
		controller.RespondError(ctx, err, "Failed to retrieve questions")
		return
	}
	ctx.JSON(http.StatusOK, questions)
}

// GetQuestion godoc
// @Summary (Recruiter) Get a question
// @Tags Recruiter - Questions
// @Produce json
// @Security BearerAuth
// @Param question_id path int true "Question ID"
// @Success 200 {object} dto.QuestionResponseDTO
// @Failure 404 {object} dto.ErrorResponse "Question not found"
// @Router /recruiter/questions/{question_id} [get]
func (c *RecruiterQuestionController) GetQuestion(ctx *gin.Context) {
	questionID, ok := controller.UintParam(ctx, "question_id")
	if !ok {
		return
	}
	resp, err := c.questionService.GetQuestion(ctx.Request.Context(), questionID)
	if err != nil {
		controller.RespondError(ctx, err, "Failed to retrieve question")
		return
	}
	ctx.JSON(http.StatusOK, resp)
}

// UpdateQuestion godoc
// @Summary (Recruiter) Replace a question
// @Tags Recruiter - Questions
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param question_id path int true "Question ID"
// @Param question_data body dto.QuestionUpsertDTO true "Question definition"
// @Success 200 {object} dto.QuestionResponseDTO
// @Failure 400 {object} dto.ErrorResponse "Invalid question"
// @Failure 403 {object} dto.ErrorResponse "Question belongs to another recruiter"
// @Failure 404 {object} dto.ErrorResponse "Question not found"
// @Router /recruiter/questions/{question_id} [put]
func (c *RecruiterQuestionController) UpdateQuestion(ctx *gin.Context) {
	recruiterID, ok := controller.CurrentUser(ctx)
	if !ok {
		return
	}
	questionID, ok := controller.UintParam(ctx, "question_id")
	if !ok {
		return
	}
	var req dto.QuestionUpsertDTO
	if err := ctx.ShouldBindJSON(&req); err != nil {
		controller.BindError(ctx, err)
		return
	}
	resp, err := c.questionService.UpdateQuestion(ctx.Request.Context(), questionID, recruiterID, req)
	if err != nil {
		controller.RespondError(ctx, err, "Failed to update question")
		return
	}
	ctx.JSON(http.StatusOK, resp)
}

// DeleteQuestion godoc
// @Summary (Recruiter) Delete a question
// @Description Soft delete. Frozen attempt snapshots are unaffected.
// @Tags Recruiter - Questions
// @Security BearerAuth
// @Param question_id path int true "Question ID"
// @Success 204
// @Failure 403 {object} dto.ErrorResponse "Question belongs to another recruiter"
// @Failure 404 {object} dto.ErrorResponse "Question not found"
// @Router /recruiter/questions/{question_id} [delete]
func (c *RecruiterQuestionController) DeleteQuestion(ctx *gin.Context) {
	recruiterID, ok := controller.CurrentUser(ctx)
	if !ok {
		return
	}
	questionID, ok := controller.UintParam(ctx, "question_id")
	if !ok {
		return
	}
	if err := c.questionService.DeleteQuestion(ctx.Request.Context(), questionID, recruiterID); err != nil {
		controller.RespondError(ctx, err, "Failed to delete question")
		return
	}
	ctx.Status(http.StatusNoContent)
}
