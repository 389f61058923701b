package dto

// MigrationStatsDTO reports the outcome of a legacy-attempt backfill run.
type MigrationStatsDTO struct {
	TotalImages        int `json:"total_images"`
	MigratedImages     int `json:"migrated_images"`
	DuplicatesFound    int `json:"duplicates_found"`
	DuplicatesResolved int `json:"duplicates_resolved"`
	Errors             int `json:"errors"`
}

// MigrationValidationDTO lists consistency issues found after a migration.
// An empty Issues slice means the migrated data is consistent.
type MigrationValidationDTO struct {
	Issues []string `json:"issues"`
}

// RollbackResultDTO reports how many attempts had their direct addressing
// fields cleared.
type RollbackResultDTO struct {
	RowsReverted int64 `json:"rows_reverted"`
}
