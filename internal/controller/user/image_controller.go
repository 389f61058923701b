package user

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/lnthach/Margay/internal/apperr"
	"github.com/lnthach/Margay/internal/controller/middleware"
	"github.com/lnthach/Margay/internal/dto"
	"github.com/lnthach/Margay/internal/model"
	"github.com/lnthach/Margay/internal/service"
	"github.com/rs/zerolog/log"
)

// ImageController exposes the illustrative-image surface: generation,
// attempt recording, selection and feedback.
type ImageController struct {
	selectionSvc  service.ImageSelectionService
	generationSvc service.ImageGenerationService
}

func NewImageController(selectionSvc service.ImageSelectionService, generationSvc service.ImageGenerationService) *ImageController {
	return &ImageController{selectionSvc: selectionSvc, generationSvc: generationSvc}
}

// GenerateImage godoc
// @Summary Generate an illustrative image
// @Description Creates an image prompt, generates an image for it and records the result as the placement's selected attempt
// @Tags images
// @Accept json
// @Produce json
// @Param request body dto.GenerateImageRequest true "Image generation request"
// @Success 201 {object} dto.APIResponse
// @Failure 400 {object} dto.APIResponse "Invalid request body"
// @Failure 500 {object} dto.APIResponse "Generation or store failure"
// @Router /images/generate [post]
// @Security BearerAuth
func (ctrl *ImageController) GenerateImage(c *gin.Context) {
	var req dto.GenerateImageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warn().Err(err).Msg("Failed to bind GenerateImageRequest")
		c.JSON(http.StatusBadRequest, dto.Fail(err.Error()))
		return
	}

	attempt, err := ctrl.generationSvc.GenerateAndRecord(c.Request.Context(), req, middleware.UserID(c))
	if err != nil {
		c.JSON(apperr.HTTPStatus(err), dto.Fail(err.Error()))
		return
	}
	c.JSON(http.StatusCreated, dto.OK(attempt))
}

// RecordAttempt godoc
// @Summary Record a new image attempt
// @Description Saves an externally produced image as the group's new selected attempt; all sibling attempts are deselected
// @Tags images
// @Accept json
// @Produce json
// @Param request body dto.RecordAttemptRequest true "Attempt data; group addressed by prompt_id or (question_id, placement_type)"
// @Success 201 {object} dto.APIResponse
// @Failure 400 {object} dto.APIResponse "Invalid request body or group reference"
// @Failure 500 {object} dto.APIResponse "Store failure"
// @Router /images/attempts [post]
// @Security BearerAuth
func (ctrl *ImageController) RecordAttempt(c *gin.Context) {
	var req dto.RecordAttemptRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warn().Err(err).Msg("Failed to bind RecordAttemptRequest")
		c.JSON(http.StatusBadRequest, dto.Fail(err.Error()))
		return
	}

	ref, err := service.ResolveGroupRef(req.PromptID, req.QuestionID, req.PlacementType)
	if err != nil {
		c.JSON(apperr.HTTPStatus(err), dto.Fail(err.Error()))
		return
	}

	attempt, err := ctrl.selectionSvc.RecordNewAttempt(ref, req.ImageURL, req.PromptUsed, req.OriginalDescription, middleware.UserID(c))
	if err != nil {
		c.JSON(apperr.HTTPStatus(err), dto.Fail(err.Error()))
		return
	}
	c.JSON(http.StatusCreated, dto.OK(attempt))
}

// SelectImage godoc
// @Summary Select an image attempt
// @Description Marks the attempt as its group's selected image and deselects the rest
// @Tags images
// @Accept json
// @Produce json
// @Param request body dto.SelectImageRequest true "Attempt and group reference"
// @Success 200 {object} dto.SelectImageResponse
// @Failure 400 {object} dto.APIResponse "Invalid request body or group reference"
// @Failure 404 {object} dto.APIResponse "Attempt not found in group"
// @Router /images/select [post]
// @Security BearerAuth
func (ctrl *ImageController) SelectImage(c *gin.Context) {
	var req dto.SelectImageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warn().Err(err).Msg("Failed to bind SelectImageRequest")
		c.JSON(http.StatusBadRequest, dto.Fail(err.Error()))
		return
	}

	ref, err := service.ResolveGroupRef(req.PromptID, req.QuestionID, req.PlacementType)
	if err != nil {
		c.JSON(apperr.HTTPStatus(err), dto.Fail(err.Error()))
		return
	}

	if err := ctrl.selectionSvc.SelectAttempt(ref, req.ImageID, middleware.UserID(c)); err != nil {
		c.JSON(apperr.HTTPStatus(err), dto.Fail(err.Error()))
		return
	}
	c.JSON(http.StatusOK, dto.SelectImageResponse{Success: true, SelectedImageID: req.ImageID})
}

// DeselectImages godoc
// @Summary Deselect a group's images
// @Description Clears the selected flag on every attempt in the group so the placement shows no default image
// @Tags images
// @Accept json
// @Produce json
// @Param request body dto.DeselectImagesRequest true "Group reference"
// @Success 200 {object} dto.APIResponse
// @Failure 400 {object} dto.APIResponse "Invalid group reference"
// @Router /images/deselect [post]
// @Security BearerAuth
func (ctrl *ImageController) DeselectImages(c *gin.Context) {
	var req dto.DeselectImagesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warn().Err(err).Msg("Failed to bind DeselectImagesRequest")
		c.JSON(http.StatusBadRequest, dto.Fail(err.Error()))
		return
	}

	ref, err := service.ResolveGroupRef(req.PromptID, req.QuestionID, req.PlacementType)
	if err != nil {
		c.JSON(apperr.HTTPStatus(err), dto.Fail(err.Error()))
		return
	}

	if err := ctrl.selectionSvc.DeselectGroup(ref, middleware.UserID(c)); err != nil {
		c.JSON(apperr.HTTPStatus(err), dto.Fail(err.Error()))
		return
	}
	c.JSON(http.StatusOK, dto.APIResponse{Success: true})
}

// RateImage godoc
// @Summary Rate an image attempt
// @Description Stores a 1-5 rating and optional accuracy feedback on the attempt
// @Tags images
// @Accept json
// @Produce json
// @Param request body dto.RateImageRequest true "Rating data"
// @Success 200 {object} dto.APIResponse
// @Failure 400 {object} dto.APIResponse "Invalid rating"
// @Failure 404 {object} dto.APIResponse "Attempt not found"
// @Router /images/rating [post]
// @Security BearerAuth
func (ctrl *ImageController) RateImage(c *gin.Context) {
	var req dto.RateImageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warn().Err(err).Msg("Failed to bind RateImageRequest")
		c.JSON(http.StatusBadRequest, dto.Fail(err.Error()))
		return
	}

	if err := ctrl.selectionSvc.RateAttempt(req.ImageID, middleware.UserID(c), req.Rating, req.AccuracyFeedback); err != nil {
		c.JSON(apperr.HTTPStatus(err), dto.Fail(err.Error()))
		return
	}
	c.JSON(http.StatusOK, dto.APIResponse{Success: true})
}

// GetSelected godoc
// @Summary Get selected image attempts
// @Description Returns the selected attempt for a group, falling back to the most recently generated one. With only question_id, returns one attempt per placement.
// @Tags images
// @Produce json
// @Param prompt_id query int false "Legacy prompt id"
// @Param question_id query int false "Question id"
// @Param placement_type query string false "Placement slot, e.g. question, option_a"
// @Success 200 {object} dto.APIResponse
// @Failure 400 {object} dto.APIResponse "Missing group reference"
// @Router /images/selected [get]
// @Security BearerAuth
func (ctrl *ImageController) GetSelected(c *gin.Context) {
	userID := middleware.UserID(c)

	if promptIDStr := c.Query("prompt_id"); promptIDStr != "" {
		promptID, err := strconv.ParseUint(promptIDStr, 10, 32)
		if err != nil {
			c.JSON(http.StatusBadRequest, dto.Fail("invalid prompt_id"))
			return
		}
		attempts, err := ctrl.selectionSvc.GetSelected(model.LegacyRef(uint(promptID)), userID)
		if err != nil {
			c.JSON(apperr.HTTPStatus(err), dto.Fail(err.Error()))
			return
		}
		c.JSON(http.StatusOK, dto.OK(attempts))
		return
	}

	questionIDStr := c.Query("question_id")
	if questionIDStr == "" {
		c.JSON(http.StatusBadRequest, dto.Fail("prompt_id or question_id is required"))
		return
	}
	questionID, err := strconv.ParseUint(questionIDStr, 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.Fail("invalid question_id"))
		return
	}

	var attempts []dto.ImageAttemptResponse
	if placement := c.Query("placement_type"); placement != "" {
		attempts, err = ctrl.selectionSvc.GetSelected(model.DirectRef(uint(questionID), placement), userID)
	} else {
		attempts, err = ctrl.selectionSvc.GetSelectedForQuestion(uint(questionID), userID)
	}
	if err != nil {
		c.JSON(apperr.HTTPStatus(err), dto.Fail(err.Error()))
		return
	}
	c.JSON(http.StatusOK, dto.OK(attempts))
}
