// data.go
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

package helpers

import (
	"fmt"
	"testing"

	"github.com/footpoets/claimsdb/internal/models"
	"gorm.io/gorm"
)

// CreateTestUser creates a user for test scenarios
func CreateTestUser(t *testing.T, db *gorm.DB, username string) *models.User {
	t.Helper()
	user := models.User{
		Username:    username,
		DisplayName: username,
	}
	if err := db.Create(&user).Error; err != nil {
		t.Fatalf("Failed to create user: %v", err)
	}
	return &user
}

// CreateTestPoet creates a poet profile owned by authorID
func CreateTestPoet(t *testing.T, db *gorm.DB, title string, authorID uint64) *models.Poet {
	t.Helper()
	poet := models.Poet{
		Title:    title,
		AuthorID: authorID,
	}
	if err := db.Create(&poet).Error; err != nil {
		t.Fatalf("Failed to create poet: %v", err)
	}
	return &poet
}

// CreateTestPoems creates count poems owned by authorID and links them to the poet
func CreateTestPoems(t *testing.T, db *gorm.DB, poetID, authorID uint64, count int) []uint64 {
	t.Helper()
	var poemIDs []uint64
	for i := 0; i < count; i++ {
		poem := models.Poem{
			Title:    fmt.Sprintf("Poem %d for poet %d", i+1, poetID),
			AuthorID: authorID,
		}
		if err := db.Create(&poem).Error; err != nil {
			t.Fatalf("Failed to create poem: %v", err)
		}
		conn := models.Connection{
			ConnType: models.ConnPoetsToPoems,
			FromID:   poetID,
			ToID:     poem.PoemID,
		}
		if err := db.Create(&conn).Error; err != nil {
			t.Fatalf("Failed to link poem: %v", err)
		}
		poemIDs = append(poemIDs, poem.PoemID)
	}
	return poemIDs
}
