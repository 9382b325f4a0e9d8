// resolve.go
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
	"strings"

	"github.com/footpoets/claimsdb/internal/config"
	"github.com/footpoets/claimsdb/internal/models"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Resolution decisions.
const (
	DecisionAccept = "accept"
	DecisionReject = "reject"
)

const msgNoDecision = "Oh dear, something went wrong. No decision was received."

// ResolveResult is the resolution stepper's response payload. Finished is
// a string because the driving javascript compares it against the literals
// "true" and "false".
type ResolveResult struct {
	Message  string `json:"message"`
	Error    string `json:"error"`
	Status   string `json:"status"`
	Finished string `json:"finished"`
}

// ResolveService runs the claim resolution state machine. Step zero
// transfers the profile; each later step reassigns one page of poems. The
// caller re-posts until Finished comes back "true", so a large catalogue is
// moved in small transactions instead of one long request.
type ResolveService struct {
	DB          *gorm.DB
	Cfg         *config.Config
	Claims      *ClaimStore
	Connections *ConnectionStore
	Steps       *StepTracker
	Batch       *Reassigner
	Sync        *ProfileSync
	Messages    *Messenger
	Log         *zap.Logger
}

// NewResolveService creates a ResolveService.
func NewResolveService(db *gorm.DB, cfg *config.Config, claims *ClaimStore,
	connections *ConnectionStore, steps *StepTracker, batch *Reassigner,
	sync *ProfileSync, messages *Messenger, log *zap.Logger) *ResolveService {
	return &ResolveService{
		DB:          db,
		Cfg:         cfg,
		Claims:      claims,
		Connections: connections,
		Steps:       steps,
		Batch:       batch,
		Sync:        sync,
		Messages:    messages,
		Log:         log,
	}
}

// Process advances a claim resolution by one step. Validation failures and
// rejections terminate the run immediately; only accepted claims enter the
// stepped reassignment.
func (s *ResolveService) Process(rawUser, rawPoet, rawDecision string) (*ResolveResult, error) {
	var v validation

	userID := parseID(rawUser)
	var user *models.User
	if userID == 0 {
		v.fail(msgNoUserID)
	} else {
		found, err := FindUser(s.DB, userID)
		if err != nil {
			return nil, err
		}
		if found == nil {
			v.fail(msgUserNotFound)
		}
		user = found
	}

	poetID := parseID(rawPoet)
	var poet *models.Poet
	if poetID == 0 {
		v.fail(msgNoPoetID)
	} else {
		found, err := FindPoet(s.DB, poetID)
		if err != nil {
			return nil, err
		}
		if found == nil {
			v.fail(msgPoetNotFound)
		}
		poet = found
	}

	decision := strings.TrimSpace(rawDecision)
	if decision != DecisionAccept && decision != DecisionReject {
		v.fail(msgNoDecision)
	}

	if v.firstError != "" {
		// Reset any cursor left over from an interrupted run so the
		// next valid request starts from step zero.
		if userID != 0 && poetID != 0 {
			if err := s.Steps.Delete(poetID, userID); err != nil {
				return nil, err
			}
		}
		return &ResolveResult{
			Error:    v.firstError,
			Status:   msgRetryStatus,
			Finished: "true",
		}, nil
	}

	if decision == DecisionReject {
		return s.reject(poet, user)
	}
	return s.acceptStep(poet, user)
}

// reject closes the claim without moving any content. The profile keeps its
// holding owner and the claimant is told the claim was declined.
func (s *ResolveService) reject(poet *models.Poet, user *models.User) (*ResolveResult, error) {
	if err := s.Claims.CloseClaim(poet.PoetID, user.UserID); err != nil {
		return nil, err
	}
	if err := s.Claims.ClosePrimaryClaim(poet.PoetID, user.UserID); err != nil {
		return nil, err
	}
	if err := s.Steps.Delete(poet.PoetID, user.UserID); err != nil {
		return nil, err
	}
	if err := s.Messages.SendDecisionNotice(user.UserID, poet, false); err != nil {
		return nil, err
	}

	s.Log.Info("claim rejected",
		zap.Uint64("poet_id", poet.PoetID),
		zap.Uint64("user_id", user.UserID))

	return &ResolveResult{
		Message:  "Claim rejected.",
		Status:   "Claim rejected.",
		Finished: "true",
	}, nil
}

// acceptStep runs one step of an accepted resolution.
func (s *ResolveService) acceptStep(poet *models.Poet, user *models.User) (*ResolveResult, error) {
	step, err := s.Steps.Get(poet.PoetID, user.UserID)
	if err != nil {
		return nil, err
	}

	if step == 0 {
		if err := s.acceptTransfer(poet, user); err != nil {
			return nil, err
		}
		if err := s.Steps.Increment(poet.PoetID, user.UserID, step); err != nil {
			return nil, err
		}
		return &ResolveResult{
			Status:   "Assigned poet profile",
			Finished: "false",
		}, nil
	}

	finished, err := s.Batch.ReassignPage(poet.PoetID, user.UserID, step)
	if err != nil {
		return nil, err
	}

	if finished {
		if err := s.Steps.Delete(poet.PoetID, user.UserID); err != nil {
			return nil, err
		}
		if err := s.Messages.SendDecisionNotice(user.UserID, poet, true); err != nil {
			return nil, err
		}
		s.Log.Info("claim accepted",
			zap.Uint64("poet_id", poet.PoetID),
			zap.Uint64("user_id", user.UserID),
			zap.Int("pages", step-1))
		return &ResolveResult{
			Message:  "Claim accepted.",
			Status:   "Claim accepted.",
			Finished: "true",
		}, nil
	}

	if err := s.Steps.Increment(poet.PoetID, user.UserID, step); err != nil {
		return nil, err
	}
	return &ResolveResult{
		Status: fmt.Sprintf("Assigning poems: %d - %d",
			(step-1)*s.Cfg.BatchPageSize, step*s.Cfg.BatchPageSize),
		Finished: "false",
	}, nil
}

// acceptTransfer hands the profile to the claimant and, for a primary
// claim, links it as the claimant's primary profile and syncs the fields.
func (s *ResolveService) acceptTransfer(poet *models.Poet, user *models.User) error {
	err := s.DB.Model(&models.Poet{}).
		Where("poet_id = ?", poet.PoetID).
		Update("author_id", user.UserID).Error
	if err != nil {
		return err
	}
	poet.AuthorID = user.UserID

	if err := s.Claims.CloseClaim(poet.PoetID, user.UserID); err != nil {
		return err
	}

	primaryUser, isPrimary, err := s.Claims.PendingPrimaryClaimUser(poet.PoetID)
	if err != nil {
		return err
	}
	if isPrimary && primaryUser == user.UserID {
		if err := s.Connections.ConnectAsPrimary(poet.PoetID, user.UserID); err != nil {
			return err
		}
		if err := s.Sync.SyncPoetToUser(poet, user.UserID); err != nil {
			return err
		}
		if err := s.Claims.ClosePrimaryClaim(poet.PoetID, user.UserID); err != nil {
			return err
		}
	}
	return nil
}

// SaveResolution resolves a claim from the profile save screen in one
// request. Revisions resolve against their parent profile. A profile with
// no pending claim is a no-op.
func (s *ResolveService) SaveResolution(poetID uint64, accepted bool) error {
	poet, err := FindPoet(s.DB, poetID)
	if err != nil {
		return err
	}
	if poet == nil {
		return gorm.ErrRecordNotFound
	}
	if poet.IsRevision() {
		parent, err := FindPoet(s.DB, poet.ParentID)
		if err != nil {
			return err
		}
		if parent == nil {
			return gorm.ErrRecordNotFound
		}
		poet = parent
	}

	userID, pending, err := s.Claims.ClaimingUser(poet.PoetID)
	if err != nil || !pending {
		return err
	}
	user, err := FindUser(s.DB, userID)
	if err != nil {
		return err
	}
	if user == nil {
		return s.Claims.CloseClaim(poet.PoetID, userID)
	}

	if accepted {
		if err := s.acceptTransfer(poet, user); err != nil {
			return err
		}
		if err := s.Batch.ReassignAll(poet.PoetID, user.UserID); err != nil {
			return err
		}
	} else {
		if err := s.Claims.CloseClaim(poet.PoetID, user.UserID); err != nil {
			return err
		}
	}

	// Clear any leftover primary flag and stepping cursor either way.
	if err := s.Claims.ClosePrimaryClaim(poet.PoetID, user.UserID); err != nil {
		return err
	}
	if err := s.Steps.Delete(poet.PoetID, user.UserID); err != nil {
		return err
	}

	return s.Messages.SendDecisionNotice(user.UserID, poet, accepted)
}
