// reassign.go
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
	"fmt"

	"github.com/footpoets/claimsdb/internal/models"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/hints"
)

// Reassigner moves authorship of a poet profile's poems to its new owner
// in fixed-size pages. Pages are 1-based; the run is finished when a page
// comes back empty, so a profile with an exact multiple of PageSize poems
// still takes one final empty page to terminate.
type Reassigner struct {
	DB       *gorm.DB
	PageSize int
	Log      *zap.Logger
}

// NewReassigner creates a Reassigner.
func NewReassigner(db *gorm.DB, pageSize int, log *zap.Logger) *Reassigner {
	return &Reassigner{DB: db, PageSize: pageSize, Log: log}
}

// ReassignPage reassigns one page of poems linked to poetID to ownerID.
// Returns finished=true when the page was empty.
func (r *Reassigner) ReassignPage(poetID, ownerID uint64, page int) (bool, error) {
	if page < 1 {
		return false, fmt.Errorf("page must be at least 1, got %d", page)
	}

	var poemIDs []uint64
	err := r.DB.Model(&models.Connection{}).
		Clauses(hints.CommentBefore("select", "poem reassignment page")).
		Where("conn_type = ? AND from_id = ?", models.ConnPoetsToPoems, poetID).
		Order("to_id").
		Offset((page-1)*r.PageSize).
		Limit(r.PageSize).
		Pluck("to_id", &poemIDs).Error
	if err != nil {
		return false, err
	}

	if len(poemIDs) == 0 {
		return true, nil
	}

	err = r.DB.Model(&models.Poem{}).
		Where("poem_id IN ?", poemIDs).
		Update("author_id", ownerID).Error
	if err != nil {
		return false, err
	}

	r.Log.Debug("reassigned poem page",
		zap.Uint64("poet_id", poetID),
		zap.Uint64("owner_id", ownerID),
		zap.Int("page", page),
		zap.Int("count", len(poemIDs)))

	return false, nil
}

// ReassignAll runs pages until the run finishes. Used by the synchronous
// save-screen path where no javascript drives the stepping.
func (r *Reassigner) ReassignAll(poetID, ownerID uint64) error {
	for page := 1; ; page++ {
		finished, err := r.ReassignPage(poetID, ownerID, page)
		if err != nil {
			return err
		}
		if finished {
			return nil
		}
	}
}
