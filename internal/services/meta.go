package services

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/footpoets/claimsdb/internal/models"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Metadata access helpers shared by the claim machinery. Values are stored
// as JSON so a key can hold a scalar or a list without a schema change.

func encodeMeta(value interface{}) (models.JSON, error) {
	raw, err := json.Marshal(value)
	if err != nil {
		return models.JSON{}, fmt.Errorf("failed to encode meta value: %w", err)
	}
	return models.JSON{JSON: datatypes.JSON(raw)}, nil
}

// setPoetMeta writes a poet meta key, overwriting any existing value.
func setPoetMeta(db *gorm.DB, poetID uint64, key string, value interface{}) error {
	encoded, err := encodeMeta(value)
	if err != nil {
		return err
	}
	var meta models.PoetMeta
	return db.Where(&models.PoetMeta{PoetID: poetID, MetaKey: key}).
		Assign(models.PoetMeta{MetaValue: encoded}).
		FirstOrCreate(&meta).Error
}

// addPoetMeta writes a poet meta key only if it does not exist yet.
// Returns true when the write happened.
func addPoetMeta(db *gorm.DB, poetID uint64, key string, value interface{}) (bool, error) {
	encoded, err := encodeMeta(value)
	if err != nil {
		return false, err
	}
	var meta models.PoetMeta
	result := db.Where(&models.PoetMeta{PoetID: poetID, MetaKey: key}).
		Attrs(models.PoetMeta{MetaValue: encoded}).
		FirstOrCreate(&meta)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

// setUserMeta writes a user meta key, overwriting any existing value.
func setUserMeta(db *gorm.DB, userID uint64, key string, value interface{}) error {
	encoded, err := encodeMeta(value)
	if err != nil {
		return err
	}
	var meta models.UserMeta
	return db.Where(&models.UserMeta{UserID: userID, MetaKey: key}).
		Assign(models.UserMeta{MetaValue: encoded}).
		FirstOrCreate(&meta).Error
}

func deletePoetMeta(db *gorm.DB, poetID uint64, key string) error {
	return db.Where("poet_id = ? AND meta_key = ?", poetID, key).
		Delete(&models.PoetMeta{}).Error
}

func deleteUserMeta(db *gorm.DB, userID uint64, key string) error {
	return db.Where("user_id = ? AND meta_key = ?", userID, key).
		Delete(&models.UserMeta{}).Error
}

// getPoetMeta decodes a poet meta value into out. Returns false when the
// key is absent.
func getPoetMeta(db *gorm.DB, poetID uint64, key string, out interface{}) (bool, error) {
	var meta models.PoetMeta
	err := db.Where("poet_id = ? AND meta_key = ?", poetID, key).First(&meta).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if err := json.Unmarshal([]byte(meta.MetaValue.JSON), out); err != nil {
		return false, fmt.Errorf("failed to decode meta value for key %s: %w", key, err)
	}
	return true, nil
}

// getUserMeta decodes a user meta value into out. Returns false when the
// key is absent.
func getUserMeta(db *gorm.DB, userID uint64, key string, out interface{}) (bool, error) {
	var meta models.UserMeta
	err := db.Where("user_id = ? AND meta_key = ?", userID, key).First(&meta).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if err := json.Unmarshal([]byte(meta.MetaValue.JSON), out); err != nil {
		return false, fmt.Errorf("failed to decode meta value for key %s: %w", key, err)
	}
	return true, nil
}
