package repository

import (
	"context"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// OrphanSweeper deletes accounts that never got a profile document, which
// happens when the profile write fails after the account was created.
type OrphanSweeper struct {
	db         *gorm.DB
	collection Collection
	log        *zap.Logger
}

func NewOrphanSweeper(db *gorm.DB, profiles Collection, log *zap.Logger) *OrphanSweeper {
	return &OrphanSweeper{db: db, collection: profiles, log: log}
}

// Sweep removes orphaned accounts created before now-minAge. The age floor
// skips registrations that may still be writing their profile.
func (s *OrphanSweeper) Sweep(ctx context.Context, now time.Time, minAge time.Duration) (int64, error) {
	profiles := s.db.WithContext(ctx).Model(&documentModel{}).
		Select("user_id").
		Where("database_id = ? AND collection_id = ? AND user_id IS NOT NULL",
			s.collection.DatabaseID, s.collection.CollectionID)

	var ids []string
	err := s.db.WithContext(ctx).Model(&accountModel{}).
		Where("created_at < ?", now.UTC().Add(-minAge)).
		Where("id NOT IN (?)", profiles).
		Pluck("id", &ids).Error
	if err != nil {
		return 0, err
	}
	if len(ids) == 0 {
		return 0, nil
	}

	res := s.db.WithContext(ctx).Where("id IN ?", ids).Delete(&accountModel{})
	if res.Error != nil {
		return 0, res.Error
	}
	s.log.Info("orphaned accounts deleted", zap.Int64("count", res.RowsAffected), zap.Strings("ids", ids))
	return res.RowsAffected, nil
}
