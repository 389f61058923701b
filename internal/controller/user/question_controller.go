package user

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/lnthach/Margay/internal/apperr"
	"github.com/lnthach/Margay/internal/controller/middleware"
	"github.com/lnthach/Margay/internal/dto"
	"github.com/lnthach/Margay/internal/service"
	"github.com/rs/zerolog/log"
)

// QuestionController handles exam-question generation and the question
// library.
type QuestionController struct {
	questionSvc service.QuestionService
}

func NewQuestionController(questionSvc service.QuestionService) *QuestionController {
	return &QuestionController{questionSvc: questionSvc}
}

// GenerateQuestions godoc
// @Summary Generate exam questions
// @Description Generates a batch of exam questions with Gemini; nothing is saved until the teacher stores a question in the library
// @Tags questions
// @Accept json
// @Produce json
// @Param request body dto.GenerateQuestionsRequest true "Generation parameters"
// @Success 200 {object} dto.APIResponse
// @Failure 400 {object} dto.APIResponse "Invalid request body"
// @Failure 500 {object} dto.APIResponse "Generation failure"
// @Router /questions/generate [post]
// @Security BearerAuth
func (ctrl *QuestionController) GenerateQuestions(c *gin.Context) {
	var req dto.GenerateQuestionsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warn().Err(err).Msg("Failed to bind GenerateQuestionsRequest")
		c.JSON(http.StatusBadRequest, dto.Fail(err.Error()))
		return
	}

	questions, err := ctrl.questionSvc.Generate(c.Request.Context(), req)
	if err != nil {
		c.JSON(apperr.HTTPStatus(err), dto.Fail(err.Error()))
		return
	}
	c.JSON(http.StatusOK, dto.OK(questions))
}

// SaveQuestion godoc
// @Summary Save a question to the library
// @Tags library
// @Accept json
// @Produce json
// @Param request body dto.SaveQuestionRequest true "Question data"
// @Success 201 {object} dto.APIResponse
// @Failure 400 {object} dto.APIResponse "Invalid request body"
// @Router /library/questions [post]
// @Security BearerAuth
func (ctrl *QuestionController) SaveQuestion(c *gin.Context) {
	var req dto.SaveQuestionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warn().Err(err).Msg("Failed to bind SaveQuestionRequest")
		c.JSON(http.StatusBadRequest, dto.Fail(err.Error()))
		return
	}

	question, err := ctrl.questionSvc.Save(req, middleware.UserID(c))
	if err != nil {
		c.JSON(apperr.HTTPStatus(err), dto.Fail(err.Error()))
		return
	}
	c.JSON(http.StatusCreated, dto.OK(question))
}

// ListQuestions godoc
// @Summary List the caller's question library
// @Tags library
// @Produce json
// @Success 200 {object} dto.APIResponse
// @Router /library/questions [get]
// @Security BearerAuth
func (ctrl *QuestionController) ListQuestions(c *gin.Context) {
	questions, err := ctrl.questionSvc.List(middleware.UserID(c))
	if err != nil {
		c.JSON(apperr.HTTPStatus(err), dto.Fail(err.Error()))
		return
	}
	c.JSON(http.StatusOK, dto.OK(questions))
}

// GetQuestion godoc
// @Summary Get a library question
// @Tags library
// @Produce json
// @Param id path int true "Question ID"
// @Success 200 {object} dto.APIResponse
// @Failure 404 {object} dto.APIResponse "Question not found"
// @Router /library/questions/{id} [get]
// @Security BearerAuth
func (ctrl *QuestionController) GetQuestion(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.Fail("invalid question ID format"))
		return
	}

	question, err := ctrl.questionSvc.Get(uint(id), middleware.UserID(c))
	if err != nil {
		c.JSON(apperr.HTTPStatus(err), dto.Fail(err.Error()))
		return
	}
	c.JSON(http.StatusOK, dto.OK(question))
}

// DeleteQuestion godoc
// @Summary Delete a library question
// @Tags library
// @Param id path int true "Question ID"
// @Success 200 {object} dto.APIResponse
// @Failure 404 {object} dto.APIResponse "Question not found"
// @Router /library/questions/{id} [delete]
// @Security BearerAuth
func (ctrl *QuestionController) DeleteQuestion(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.Fail("invalid question ID format"))
		return
	}

	if err := ctrl.questionSvc.Delete(uint(id), middleware.UserID(c)); err != nil {
		c.JSON(apperr.HTTPStatus(err), dto.Fail(err.Error()))
		return
	}
	c.JSON(http.StatusOK, dto.APIResponse{Success: true})
}
