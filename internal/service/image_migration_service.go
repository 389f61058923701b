package service

import (
	"fmt"
	"sort"

	"github.com/lnthach/Margay/internal/apperr"
	"github.com/lnthach/Margay/internal/dto"
	"github.com/lnthach/Margay/internal/repository"
	"github.com/rs/zerolog/log"
)

const migrationLockName = "image_attempts_schema_backfill"

// ImageMigrationService backfills legacy prompt-addressed attempts into direct
// (question, placement) addressing and resolves duplicate selections. It is an
// administrative batch writer; the marker-row lock keeps two invocations from
// running at once. The legacy filter (question_id IS NULL) makes re-runs
// touch only rows not yet migrated.
type ImageMigrationService interface {
	MigrateLegacyAttempts() (*dto.MigrationStatsDTO, error)
	ValidateMigration() ([]string, error)
	RollbackMigration() (int64, error)
}

type imageMigrationService struct {
	migrationRepo repository.ImageMigrationRepository
}

func NewImageMigrationService(migrationRepo repository.ImageMigrationRepository) ImageMigrationService {
	return &imageMigrationService{migrationRepo: migrationRepo}
}

func (s *imageMigrationService) MigrateLegacyAttempts() (*dto.MigrationStatsDTO, error) {
	acquired, err := s.migrationRepo.AcquireLock(migrationLockName)
	if err != nil {
		return nil, apperr.Store(err, "failed to acquire migration lock")
	}
	if !acquired {
		return nil, apperr.Migration(nil, "image migration is already in progress")
	}
	defer func() {
		if releaseErr := s.migrationRepo.ReleaseLock(migrationLockName); releaseErr != nil {
			log.Error().Err(releaseErr).Msg("MigrateLegacyAttempts: failed to release migration lock")
		}
	}()

	rows, err := s.migrationRepo.FindLegacyAttempts()
	if err != nil {
		return nil, apperr.Store(err, "failed to load legacy image attempts")
	}

	stats := dto.MigrationStatsDTO{TotalImages: len(rows)}
	groups, unresolvable := groupLegacyRows(rows)
	stats.Errors += unresolvable

	// Per-group failures are counted and the batch continues; a group either
	// commits fully or not at all.
	for key, group := range groups {
		patches := buildGroupPatches(group)
		if len(group) > 1 {
			stats.DuplicatesFound += len(group)
		}
		if err := s.migrationRepo.ApplyPatches(patches); err != nil {
			log.Error().Err(err).Str("group", key).Int("rows", len(group)).Msg("MigrateLegacyAttempts: group patch failed")
			stats.Errors++
			continue
		}
		stats.MigratedImages += len(patches)
		if len(group) > 1 {
			stats.DuplicatesResolved += len(group)
		}
	}

	log.Info().
		Int("total", stats.TotalImages).
		Int("migrated", stats.MigratedImages).
		Int("duplicates_found", stats.DuplicatesFound).
		Int("duplicates_resolved", stats.DuplicatesResolved).
		Int("errors", stats.Errors).
		Msg("Legacy image attempt migration finished")
	return &stats, nil
}

// groupLegacyRows buckets legacy rows by their resolved (question, placement)
// group. Rows whose prompt carries no question cannot be resolved; they are
// counted, not migrated.
func groupLegacyRows(rows []repository.LegacyAttemptRow) (map[string][]repository.LegacyAttemptRow, int) {
	groups := make(map[string][]repository.LegacyAttemptRow)
	unresolvable := 0
	for _, row := range rows {
		if row.QuestionID == nil {
			unresolvable++
			continue
		}
		key := fmt.Sprintf("%d:%s", *row.QuestionID, row.PlacementType)
		groups[key] = append(groups[key], row)
	}
	return groups, unresolvable
}

// buildGroupPatches stamps every row of a group with its resolved direct
// addressing and decides the single keeper of the selected flag. Rows are
// preserved, never deleted.
func buildGroupPatches(group []repository.LegacyAttemptRow) []repository.MigrationPatch {
	keeper := chooseKeeper(group)
	patches := make([]repository.MigrationPatch, 0, len(group))
	for i, row := range group {
		patches = append(patches, repository.MigrationPatch{
			AttemptID:     row.AttemptID,
			QuestionID:    *row.QuestionID,
			PlacementType: row.PlacementType,
			IsSelected:    i == keeper,
		})
	}
	return patches
}

// chooseKeeper picks which row of a duplicate group stays selected: an
// already-selected row wins (latest generated_at breaks ties among several),
// otherwise the most recently generated row. The result is independent of the
// order rows were fetched in.
func chooseKeeper(group []repository.LegacyAttemptRow) int {
	indexes := make([]int, len(group))
	for i := range indexes {
		indexes[i] = i
	}
	sort.SliceStable(indexes, func(a, b int) bool {
		ra, rb := group[indexes[a]], group[indexes[b]]
		if ra.IsSelected != rb.IsSelected {
			return ra.IsSelected
		}
		return ra.GeneratedAt.After(rb.GeneratedAt)
	})
	return indexes[0]
}

// ValidateMigration checks the migrated data post-hoc. An empty result means
// the store is consistent.
func (s *imageMigrationService) ValidateMigration() ([]string, error) {
	issues := []string{}

	orphanKeys, err := s.migrationRepo.FindAttemptsMissingGroupKeys()
	if err != nil {
		return nil, apperr.Store(err, "failed to check attempts for missing group keys")
	}
	for _, id := range orphanKeys {
		issues = append(issues, fmt.Sprintf("image attempt %d has neither a prompt_id nor direct (question_id, placement_type)", id))
	}

	multiSelected, err := s.migrationRepo.FindGroupsWithMultipleSelected()
	if err != nil {
		return nil, apperr.Store(err, "failed to check groups for duplicate selections")
	}
	for _, group := range multiSelected {
		issues = append(issues, fmt.Sprintf("question %d placement %q has %d selected attempts", group.QuestionID, group.PlacementType, group.SelectedCount))
	}

	missingQuestions, err := s.migrationRepo.FindAttemptsWithMissingQuestion()
	if err != nil {
		return nil, apperr.Store(err, "failed to check attempts for missing questions")
	}
	for _, id := range missingQuestions {
		issues = append(issues, fmt.Sprintf("image attempt %d references a question that does not exist", id))
	}

	return issues, nil
}

// RollbackMigration clears direct addressing on migrated rows, reverting them
// to legacy-only addressing. Selection state is intentionally left as the
// migration set it; the original flags were overwritten and cannot be
// recovered.
func (s *imageMigrationService) RollbackMigration() (int64, error) {
	reverted, err := s.migrationRepo.ClearDirectFields()
	if err != nil {
		return 0, apperr.Store(err, "failed to roll back image migration")
	}
	log.Info().Int64("rows", reverted).Msg("Image migration rollback finished")
	return reverted, nil
}
