package services

import (
	"errors"

	"github.com/footpoets/claimsdb/internal/config"
	"github.com/footpoets/claimsdb/internal/models"
	"gorm.io/gorm"
)

// ConnectionStore manages the typed links between poets, poems and users.
type ConnectionStore struct {
	DB   *gorm.DB
	Keys config.MetaKeys
}

// NewConnectionStore creates a ConnectionStore.
func NewConnectionStore(db *gorm.DB, keys config.MetaKeys) *ConnectionStore {
	return &ConnectionStore{DB: db, Keys: keys}
}

// ConnectAsPrimary links poetID as userID's primary profile: a connection
// row plus the primary meta reference on both sides.
func (s *ConnectionStore) ConnectAsPrimary(poetID, userID uint64) error {
	return s.DB.Transaction(func(tx *gorm.DB) error {
		var conn models.Connection
		err := tx.Where(&models.Connection{
			ConnType: models.ConnPoetsToUsers,
			FromID:   poetID,
			ToID:     userID,
		}).FirstOrCreate(&conn).Error
		if err != nil {
			return err
		}
		if err := setPoetMeta(tx, poetID, s.Keys.Primary, userID); err != nil {
			return err
		}
		return setUserMeta(tx, userID, s.Keys.Primary, poetID)
	})
}

// DisconnectAsPrimary removes the primary link between poetID and userID.
func (s *ConnectionStore) DisconnectAsPrimary(poetID, userID uint64) error {
	return s.DB.Transaction(func(tx *gorm.DB) error {
		err := tx.Where("conn_type = ? AND from_id = ? AND to_id = ?",
			models.ConnPoetsToUsers, poetID, userID).
			Delete(&models.Connection{}).Error
		if err != nil {
			return err
		}
		if err := deletePoetMeta(tx, poetID, s.Keys.Primary); err != nil {
			return err
		}
		return deleteUserMeta(tx, userID, s.Keys.Primary)
	})
}

// PrimaryUser returns the user id holding poetID as their primary profile,
// or false when the profile is unlinked.
func (s *ConnectionStore) PrimaryUser(poetID uint64) (uint64, bool, error) {
	var userID uint64
	found, err := getPoetMeta(s.DB, poetID, s.Keys.Primary, &userID)
	return userID, found, err
}

// PrimaryPoet returns the poet id linked as userID's primary profile,
// or false when the user has none.
func (s *ConnectionStore) PrimaryPoet(userID uint64) (uint64, bool, error) {
	var poetID uint64
	found, err := getUserMeta(s.DB, userID, s.Keys.Primary, &poetID)
	return poetID, found, err
}

// ConnectPoetAndPoem links a poem to a poet profile. Relinking an existing
// pair is a no-op.
func (s *ConnectionStore) ConnectPoetAndPoem(poetID, poemID uint64) error {
	var conn models.Connection
	return s.DB.Where(&models.Connection{
		ConnType: models.ConnPoetsToPoems,
		FromID:   poetID,
		ToID:     poemID,
	}).FirstOrCreate(&conn).Error
}

// PoemCount returns the number of poems linked to poetID.
func (s *ConnectionStore) PoemCount(poetID uint64) (int64, error) {
	var count int64
	err := s.DB.Model(&models.Connection{}).
		Where("conn_type = ? AND from_id = ?", models.ConnPoetsToPoems, poetID).
		Count(&count).Error
	return count, err
}

// FindUser looks up a user by id.
func FindUser(db *gorm.DB, userID uint64) (*models.User, error) {
	var user models.User
	err := db.First(&user, userID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// FindPoet looks up a poet profile by id.
func FindPoet(db *gorm.DB, poetID uint64) (*models.Poet, error) {
	var poet models.Poet
	err := db.First(&poet, poetID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &poet, nil
}
