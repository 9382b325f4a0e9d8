// claimstore.go
//
// A Go data service that manages poet profile claims for the Football Poets site
// Copyright (c) 2026 Foot Poets <info@footpoets.org> (https://www.footpoets.org)
//
// This file is part of claimsdb.
// claimsdb is free software: you can redistribute it and/or modify it
// under the terms of the GNU Affero General Public License as published by the Free Software
// Foundation, either version 3 of the License, or (at your option) any later version.
// claimsdb is distributed in the hope that it will be useful, but WITHOUT ANY WARRANTY;
// without even the implied warranty of MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.
// See the GNU Affero General Public License for more details.
// You should have received a copy of the GNU Affero General Public License along with claimsdb.
// If not, see <https://www.gnu.org/licenses/>.
// Additional terms under GNU AGPL version 3 section 7:
// a) The reasonable legal notice of original copyright and author attribution must be preserved
//    by including the string: "Copyright (c) 2026 Foot Poets <info@footpoets.org> (https://www.footpoets.org)"
//    in this material, copies, or source code of derived works.

package services

import (
	"errors"
	"fmt"

	"github.com/footpoets/claimsdb/internal/config"
	"gorm.io/gorm"
)

// ErrClaimConflict is returned when a claim is opened on a poet profile
// that already carries a pending claim from a different user.
var ErrClaimConflict = errors.New("poet profile already has a pending claim from another user")

// ClaimStore reads and writes the pending-claim state on poets and users.
// A pending claim is represented as a claim meta key on the poet (the
// claiming user id) plus membership in the user's claimed-poets list.
type ClaimStore struct {
	DB   *gorm.DB
	Keys config.MetaKeys
}

// NewClaimStore creates a ClaimStore.
func NewClaimStore(db *gorm.DB, keys config.MetaKeys) *ClaimStore {
	return &ClaimStore{DB: db, Keys: keys}
}

// OpenClaim records a pending claim by userID on poetID. Reopening the same
// claim is a no-op. A pending claim by a different user yields ErrClaimConflict.
func (s *ClaimStore) OpenClaim(poetID, userID uint64) error {
	return s.DB.Transaction(func(tx *gorm.DB) error {
		created, err := addPoetMeta(tx, poetID, s.Keys.Claim, userID)
		if err != nil {
			return err
		}
		if !created {
			var existing uint64
			found, err := getPoetMeta(tx, poetID, s.Keys.Claim, &existing)
			if err != nil {
				return err
			}
			if found && existing != userID {
				return fmt.Errorf("poet %d: %w", poetID, ErrClaimConflict)
			}
		}

		var claimed []uint64
		if _, err := getUserMeta(tx, userID, s.Keys.Claim, &claimed); err != nil {
			return err
		}
		for _, id := range claimed {
			if id == poetID {
				return nil
			}
		}
		claimed = append(claimed, poetID)
		return setUserMeta(tx, userID, s.Keys.Claim, claimed)
	})
}

// OpenPrimaryClaim flags the pending claim as a primary-profile claim.
// The flag is written on both sides so either record answers the question.
func (s *ClaimStore) OpenPrimaryClaim(poetID, userID uint64) error {
	return s.DB.Transaction(func(tx *gorm.DB) error {
		if err := setPoetMeta(tx, poetID, s.Keys.ClaimPrimary, userID); err != nil {
			return err
		}
		return setUserMeta(tx, userID, s.Keys.ClaimPrimary, poetID)
	})
}

// CloseClaim removes the pending claim by userID on poetID from both sides.
func (s *ClaimStore) CloseClaim(poetID, userID uint64) error {
	return s.DB.Transaction(func(tx *gorm.DB) error {
		if err := deletePoetMeta(tx, poetID, s.Keys.Claim); err != nil {
			return err
		}

		var claimed []uint64
		found, err := getUserMeta(tx, userID, s.Keys.Claim, &claimed)
		if err != nil {
			return err
		}
		if !found {
			return nil
		}

		remaining := claimed[:0]
		for _, id := range claimed {
			if id != poetID {
				remaining = append(remaining, id)
			}
		}
		if len(remaining) == 0 {
			return deleteUserMeta(tx, userID, s.Keys.Claim)
		}
		return setUserMeta(tx, userID, s.Keys.Claim, remaining)
	})
}

// ClosePrimaryClaim clears the primary-claim flag from both sides.
func (s *ClaimStore) ClosePrimaryClaim(poetID, userID uint64) error {
	return s.DB.Transaction(func(tx *gorm.DB) error {
		if err := deletePoetMeta(tx, poetID, s.Keys.ClaimPrimary); err != nil {
			return err
		}
		return deleteUserMeta(tx, userID, s.Keys.ClaimPrimary)
	})
}

// ClaimingUser returns the user id holding the pending claim on poetID,
// or false when the poet has no pending claim.
func (s *ClaimStore) ClaimingUser(poetID uint64) (uint64, bool, error) {
	var userID uint64
	found, err := getPoetMeta(s.DB, poetID, s.Keys.Claim, &userID)
	return userID, found, err
}

// HasPendingClaim reports whether the poet carries any pending claim,
// standard or primary.
func (s *ClaimStore) HasPendingClaim(poetID uint64) (bool, error) {
	var ignored uint64
	found, err := getPoetMeta(s.DB, poetID, s.Keys.Claim, &ignored)
	if err != nil || found {
		return found, err
	}
	return getPoetMeta(s.DB, poetID, s.Keys.ClaimPrimary, &ignored)
}

// PendingPrimaryClaimUser returns the user id of a pending primary claim
// on poetID, or false when none exists.
func (s *ClaimStore) PendingPrimaryClaimUser(poetID uint64) (uint64, bool, error) {
	var userID uint64
	found, err := getPoetMeta(s.DB, poetID, s.Keys.ClaimPrimary, &userID)
	return userID, found, err
}

// UserPendingPrimaryClaim returns the poet id the user has a pending
// primary claim on, or false when none exists.
func (s *ClaimStore) UserPendingPrimaryClaim(userID uint64) (uint64, bool, error) {
	var poetID uint64
	found, err := getUserMeta(s.DB, userID, s.Keys.ClaimPrimary, &poetID)
	return poetID, found, err
}

// PoetClaimedAsPrimaryBy reports whether userID's pending primary claim
// targets poetID.
func (s *ClaimStore) PoetClaimedAsPrimaryBy(poetID, userID uint64) (bool, error) {
	pendingPoet, found, err := s.UserPendingPrimaryClaim(userID)
	if err != nil || !found {
		return false, err
	}
	return pendingPoet == poetID, nil
}

// DisableClaims records the user's opt-out from claim prompts.
func (s *ClaimStore) DisableClaims(userID uint64) error {
	return setUserMeta(s.DB, userID, s.Keys.ClaimDisable, "yes")
}

// ClaimsDisabled reports whether the user opted out of claim prompts.
func (s *ClaimStore) ClaimsDisabled(userID uint64) (bool, error) {
	var value string
	found, err := getUserMeta(s.DB, userID, s.Keys.ClaimDisable, &value)
	if err != nil {
		return false, err
	}
	return found && value == "yes", nil
}
