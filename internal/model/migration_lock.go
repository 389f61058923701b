package model

import "time"

// MigrationLock is a marker row giving the image-schema migrator mutual
// exclusion against concurrent invocation. Name is unique; a held lock is a
// present row.
type MigrationLock struct {
	ID         uint      `gorm:"primarykey" json:"id"`
	Name       string    `json:"name" gorm:"not null;uniqueIndex"`
	AcquiredAt time.Time `json:"acquired_at" gorm:"autoCreateTime"`
}
