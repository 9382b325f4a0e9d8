// claims.go
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
	"strconv"
	"strings"

	"github.com/footpoets/claimsdb/internal/config"
	"github.com/footpoets/claimsdb/internal/models"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Claim types accepted by the claim form.
const (
	ClaimTypeStandard = "standard"
	ClaimTypePrimary  = "primary"
)

// User-facing strings for the claim form. The javascript renders these
// verbatim, so they stay stable across releases.
const (
	msgNoUserID     = "Oh dear, something went wrong. No user ID was received."
	msgUserNotFound = "Oh dear, something went wrong. We couldn't find that user."
	msgNoPoetID     = "Oh dear, something went wrong. No poet ID was received."
	msgPoetNotFound = "Oh dear, something went wrong. We couldn't find that poet."
	msgNoClaimType  = "Oh dear, something went wrong. No claim type was received."
	msgNoStopFlag   = "Oh dear, something went wrong. No claim stopping flag was received."
	msgClaimTaken   = "Oh dear, something went wrong. That poet has already been claimed."

	msgClaimSent   = "Thanks! Your claim has been sent. A site editor will let you know the moment your claim has been approved."
	msgClaimStatus = "Your claim to this poet profile is being processed."
	msgRetryStatus = "Please reload the page and try again."
	msgStopThanks  = "Thanks! You won't see this form again."
)

// AjaxResult is the claim form's response payload. Empty Error means the
// request succeeded.
type AjaxResult struct {
	Message string `json:"message"`
	Error   string `json:"error"`
	Status  string `json:"status"`
}

// ClaimService implements the claim form operations: submitting a claim,
// opting out of the form, and computing the form's render state.
type ClaimService struct {
	DB          *gorm.DB
	Cfg         *config.Config
	Claims      *ClaimStore
	Connections *ConnectionStore
	Messages    *Messenger
	Log         *zap.Logger
}

// NewClaimService creates a ClaimService.
func NewClaimService(db *gorm.DB, cfg *config.Config, claims *ClaimStore,
	connections *ConnectionStore, messages *Messenger, log *zap.Logger) *ClaimService {
	return &ClaimService{
		DB:          db,
		Cfg:         cfg,
		Claims:      claims,
		Connections: connections,
		Messages:    messages,
		Log:         log,
	}
}

// parseID parses a form field as a positive id. Empty or malformed input
// yields zero.
func parseID(raw string) uint64 {
	id, err := strconv.ParseUint(strings.TrimSpace(raw), 10, 64)
	if err != nil {
		return 0
	}
	return id
}

// validate runs every check and keeps the first failure. All checks run
// even after one fails so the lookups are exercised uniformly.
type validation struct {
	firstError string
}

func (v *validation) fail(message string) {
	if v.firstError == "" {
		v.firstError = message
	}
}

// Submit handles a claim form post. All validation checks run; the first
// failure becomes the response error.
func (s *ClaimService) Submit(rawUser, rawPoet, rawType string) (*AjaxResult, error) {
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

	claimType := strings.TrimSpace(rawType)
	if claimType != ClaimTypeStandard && claimType != ClaimTypePrimary {
		v.fail(msgNoClaimType)
	}

	if v.firstError != "" {
		return &AjaxResult{
			Error:  v.firstError,
			Status: msgRetryStatus,
		}, nil
	}

	if err := s.Claims.OpenClaim(poetID, userID); err != nil {
		if errors.Is(err, ErrClaimConflict) {
			s.Log.Warn("claim conflict",
				zap.Uint64("poet_id", poetID),
				zap.Uint64("user_id", userID))
			return &AjaxResult{
				Error:  msgClaimTaken,
				Status: msgRetryStatus,
			}, nil
		}
		return nil, err
	}

	if claimType == ClaimTypePrimary {
		if err := s.Claims.OpenPrimaryClaim(poetID, userID); err != nil {
			return nil, err
		}
	}

	if err := s.Messages.SendClaimNotice(user, poet); err != nil {
		return nil, err
	}

	s.Log.Info("claim submitted",
		zap.Uint64("poet_id", poetID),
		zap.Uint64("user_id", userID),
		zap.String("claim_type", claimType))

	return &AjaxResult{
		Message: msgClaimSent,
		Status:  msgClaimStatus,
	}, nil
}

// Stop handles the "don't ask me again" form post.
func (s *ClaimService) Stop(rawUser, rawStop string) (*AjaxResult, error) {
	var v validation

	userID := parseID(rawUser)
	if userID == 0 {
		v.fail(msgNoUserID)
	} else {
		user, err := FindUser(s.DB, userID)
		if err != nil {
			return nil, err
		}
		if user == nil {
			v.fail(msgUserNotFound)
		}
	}

	if strings.TrimSpace(rawStop) != "yes" {
		v.fail(msgNoStopFlag)
	}

	if v.firstError != "" {
		return &AjaxResult{
			Error:  v.firstError,
			Status: msgRetryStatus,
		}, nil
	}

	if err := s.Claims.DisableClaims(userID); err != nil {
		return nil, err
	}

	return &AjaxResult{Message: msgStopThanks}, nil
}

// FormState describes what the claim form should render for a viewer.
type FormState struct {
	// Show is true when the claim form should be offered at all.
	Show bool `json:"show"`
	// Pending is true when a claim on this profile is awaiting review.
	Pending bool `json:"pending"`
	// ShowPrimary is true when the primary-claim option should be offered.
	ShowPrimary bool `json:"show_primary"`
}

// FormState computes the claim form render state for userID viewing poetID.
// The form only appears on profiles still owned by the holding user, for
// users who have not opted out, on profiles nobody holds as primary.
func (s *ClaimService) FormState(poetID, userID uint64) (*FormState, error) {
	poet, err := FindPoet(s.DB, poetID)
	if err != nil {
		return nil, err
	}
	if poet == nil {
		return nil, gorm.ErrRecordNotFound
	}

	state := &FormState{}

	if poet.AuthorID != s.Cfg.HoldingUserID {
		return state, nil
	}

	disabled, err := s.Claims.ClaimsDisabled(userID)
	if err != nil {
		return nil, err
	}
	if disabled {
		return state, nil
	}

	if _, linked, err := s.Connections.PrimaryUser(poetID); err != nil {
		return nil, err
	} else if linked {
		return state, nil
	}

	if mine, err := s.Claims.PoetClaimedAsPrimaryBy(poetID, userID); err != nil {
		return nil, err
	} else if mine {
		state.Pending = true
		return state, nil
	}

	if pending, err := s.Claims.HasPendingClaim(poetID); err != nil {
		return nil, err
	} else if pending {
		state.Pending = true
		return state, nil
	}

	state.Show = true

	_, hasPrimary, err := s.Connections.PrimaryPoet(userID)
	if err != nil {
		return nil, err
	}
	_, hasPendingPrimary, err := s.Claims.UserPendingPrimaryClaim(userID)
	if err != nil {
		return nil, err
	}
	state.ShowPrimary = !hasPrimary && !hasPendingPrimary

	return state, nil
}
