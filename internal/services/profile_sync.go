package services

import (
	"github.com/footpoets/claimsdb/internal/config"
	"github.com/footpoets/claimsdb/internal/models"
	"gorm.io/gorm"
)

// ProfileSync copies profile fields between a user and their primary poet
// profile so the two stay consistent after a primary claim is resolved or
// either side is edited.
type ProfileSync struct {
	DB   *gorm.DB
	Keys config.MetaKeys
}

// NewProfileSync creates a ProfileSync.
func NewProfileSync(db *gorm.DB, keys config.MetaKeys) *ProfileSync {
	return &ProfileSync{DB: db, Keys: keys}
}

// SyncPoetToUser copies the poet profile's biography and links onto the user.
func (s *ProfileSync) SyncPoetToUser(poet *models.Poet, userID uint64) error {
	return s.DB.Model(&models.User{}).
		Where("user_id = ?", userID).
		Updates(map[string]interface{}{
			"about":   poet.Content,
			"twitter": poet.Twitter,
			"website": poet.Website,
		}).Error
}

// SyncUserToPoet copies the user's biography and links onto their primary
// poet profile. A user without a primary profile is a no-op.
func (s *ProfileSync) SyncUserToPoet(user *models.User) error {
	var poetID uint64
	found, err := getUserMeta(s.DB, user.UserID, s.Keys.Primary, &poetID)
	if err != nil || !found {
		return err
	}

	return s.DB.Model(&models.Poet{}).
		Where("poet_id = ?", poetID).
		Updates(map[string]interface{}{
			"content": user.About,
			"twitter": user.Twitter,
			"website": user.Website,
		}).Error
}
