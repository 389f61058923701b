package admin

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/lnthach/Margay/internal/apperr"
	"github.com/lnthach/Margay/internal/dto"
	"github.com/lnthach/Margay/internal/service"
	"github.com/rs/zerolog/log"
)

// MigrationController exposes the administrative image-schema backfill.
type MigrationController struct {
	migrationSvc service.ImageMigrationService
}

func NewMigrationController(migrationSvc service.ImageMigrationService) *MigrationController {
	return &MigrationController{migrationSvc: migrationSvc}
}

// RunImageMigration godoc
// @Summary Backfill legacy image attempts
// @Description Converts prompt-addressed attempts to direct (question, placement) addressing, resolving duplicate selections. Safe to re-run; only not-yet-migrated rows are touched.
// @Tags admin
// @Produce json
// @Success 200 {object} dto.APIResponse
// @Failure 500 {object} dto.APIResponse "Migration already in progress or store failure"
// @Router /admin/migration/images [post]
// @Security BearerAuth
func (ctrl *MigrationController) RunImageMigration(c *gin.Context) {
	stats, err := ctrl.migrationSvc.MigrateLegacyAttempts()
	if err != nil {
		log.Error().Err(err).Msg("Image migration failed")
		c.JSON(apperr.HTTPStatus(err), dto.Fail(err.Error()))
		return
	}
	c.JSON(http.StatusOK, dto.OK(stats))
}

// ValidateImageMigration godoc
// @Summary Validate migrated image attempts
// @Description Reports consistency issues in the attempt store; an empty list means the migration is consistent
// @Tags admin
// @Produce json
// @Success 200 {object} dto.APIResponse
// @Router /admin/migration/images/validate [get]
// @Security BearerAuth
func (ctrl *MigrationController) ValidateImageMigration(c *gin.Context) {
	issues, err := ctrl.migrationSvc.ValidateMigration()
	if err != nil {
		c.JSON(apperr.HTTPStatus(err), dto.Fail(err.Error()))
		return
	}
	c.JSON(http.StatusOK, dto.OK(dto.MigrationValidationDTO{Issues: issues}))
}

// RollbackImageMigration godoc
// @Summary Roll back the image schema migration
// @Description Clears direct (question_id, placement_type) addressing on migrated attempts. Selection state is not restored to pre-migration values.
// @Tags admin
// @Produce json
// @Success 200 {object} dto.APIResponse
// @Router /admin/migration/images/rollback [post]
// @Security BearerAuth
func (ctrl *MigrationController) RollbackImageMigration(c *gin.Context) {
	reverted, err := ctrl.migrationSvc.RollbackMigration()
	if err != nil {
		c.JSON(apperr.HTTPStatus(err), dto.Fail(err.Error()))
		return
	}
	c.JSON(http.StatusOK, dto.OK(dto.RollbackResultDTO{RowsReverted: reverted}))
}
