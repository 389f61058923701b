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

// LessonPlanController handles lesson-plan generation and the lesson plan
// library.
type LessonPlanController struct {
	planSvc service.LessonPlanService
}

func NewLessonPlanController(planSvc service.LessonPlanService) *LessonPlanController {
	return &LessonPlanController{planSvc: planSvc}
}

// GenerateLessonPlan godoc
// @Summary Generate a lesson plan
// @Tags lesson-plans
// @Accept json
// @Produce json
// @Param request body dto.GenerateLessonPlanRequest true "Generation parameters"
// @Success 200 {object} dto.APIResponse
// @Failure 400 {object} dto.APIResponse "Invalid request body"
// @Failure 500 {object} dto.APIResponse "Generation failure"
// @Router /lesson-plans/generate [post]
// @Security BearerAuth
func (ctrl *LessonPlanController) GenerateLessonPlan(c *gin.Context) {
	var req dto.GenerateLessonPlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warn().Err(err).Msg("Failed to bind GenerateLessonPlanRequest")
		c.JSON(http.StatusBadRequest, dto.Fail(err.Error()))
		return
	}

	plan, err := ctrl.planSvc.Generate(c.Request.Context(), req)
	if err != nil {
		c.JSON(apperr.HTTPStatus(err), dto.Fail(err.Error()))
		return
	}
	c.JSON(http.StatusOK, dto.OK(plan))
}

// SaveLessonPlan godoc
// @Summary Save a lesson plan to the library
// @Tags library
// @Accept json
// @Produce json
// @Param request body dto.SaveLessonPlanRequest true "Lesson plan data"
// @Success 201 {object} dto.APIResponse
// @Failure 400 {object} dto.APIResponse "Invalid request body"
// @Router /library/lesson-plans [post]
// @Security BearerAuth
func (ctrl *LessonPlanController) SaveLessonPlan(c *gin.Context) {
	var req dto.SaveLessonPlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warn().Err(err).Msg("Failed to bind SaveLessonPlanRequest")
		c.JSON(http.StatusBadRequest, dto.Fail(err.Error()))
		return
	}

	plan, err := ctrl.planSvc.Save(req, middleware.UserID(c))
	if err != nil {
		c.JSON(apperr.HTTPStatus(err), dto.Fail(err.Error()))
		return
	}
	c.JSON(http.StatusCreated, dto.OK(plan))
}

// ListLessonPlans godoc
// @Summary List the caller's lesson plan library
// @Tags library
// @Produce json
// @Success 200 {object} dto.APIResponse
// @Router /library/lesson-plans [get]
// @Security BearerAuth
func (ctrl *LessonPlanController) ListLessonPlans(c *gin.Context) {
	plans, err := ctrl.planSvc.List(middleware.UserID(c))
	if err != nil {
		c.JSON(apperr.HTTPStatus(err), dto.Fail(err.Error()))
		return
	}
	c.JSON(http.StatusOK, dto.OK(plans))
}

// GetLessonPlan godoc
// @Summary Get a library lesson plan
// @Tags library
// @Produce json
// @Param id path int true "Lesson plan ID"
// @Success 200 {object} dto.APIResponse
// @Failure 404 {object} dto.APIResponse "Lesson plan not found"
// @Router /library/lesson-plans/{id} [get]
// @Security BearerAuth
func (ctrl *LessonPlanController) GetLessonPlan(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.Fail("invalid lesson plan ID format"))
		return
	}

	plan, err := ctrl.planSvc.Get(uint(id), middleware.UserID(c))
	if err != nil {
		c.JSON(apperr.HTTPStatus(err), dto.Fail(err.Error()))
		return
	}
	c.JSON(http.StatusOK, dto.OK(plan))
}

// DeleteLessonPlan godoc
// @Summary Delete a library lesson plan
// @Tags library
// @Param id path int true "Lesson plan ID"
// @Success 200 {object} dto.APIResponse
// @Failure 404 {object} dto.APIResponse "Lesson plan not found"
// @Router /library/lesson-plans/{id} [delete]
// @Security BearerAuth
func (ctrl *LessonPlanController) DeleteLessonPlan(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.Fail("invalid lesson plan ID format"))
		return
	}

	if err := ctrl.planSvc.Delete(uint(id), middleware.UserID(c)); err != nil {
		c.JSON(apperr.HTTPStatus(err), dto.Fail(err.Error()))
		return
	}
	c.JSON(http.StatusOK, dto.APIResponse{Success: true})
}
