// poet.go
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

package handlers

import (
	"fmt"

	"github.com/footpoets/claimsdb/internal/config"
	"github.com/footpoets/claimsdb/internal/models"
	"github.com/footpoets/claimsdb/internal/services"
	"github.com/footpoets/claimsdb/internal/types"
	"github.com/footpoets/claimsdb/internal/utils"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// nonce action for the resolution save screen
const resolveNonceAction = "poet_resolve"

// PoetHandler handles poet profile admin routes
type PoetHandler struct {
	DB          *gorm.DB
	Cfg         *config.Config
	Claims      *services.ClaimStore
	Connections *services.ConnectionStore
	Resolve     *services.ResolveService
	Nonces      *services.NonceService
}

// poetRequest is the create-poet request body
type poetRequest struct {
	Title    string           `json:"title"`
	Content  string           `json:"content"`
	Twitter  string           `json:"twitter"`
	Website  string           `json:"website"`
	AuthorID types.FlexUint64 `json:"author_id"`
	ParentID types.FlexUint64 `json:"parent_id"`
}

// poemRequest is one poem in the seed-poems request body
type poemRequest struct {
	Title    string           `json:"title"`
	AuthorID types.FlexUint64 `json:"author_id"`
}

// CreatePoet handles POST /api/poets
// @Summary Create a poet profile
// @Description Create a poet profile; omitted author_id defaults to the holding user
// @Tags Poets
// @Accept json
// @Produce json
// @Param poet body poetRequest true "Poet profile"
// @Success 201 {object} models.Poet
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 500 {object} utils.ErrorResponseStruct
// @Router /poets [post]
func (h *PoetHandler) CreatePoet(c *fiber.Ctx) error {
	var req poetRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.ErrorResponse(c, fmt.Sprintf("Invalid request body: %v", err),
			fiber.StatusBadRequest, "createPoet")
	}
	if req.Title == "" {
		return utils.ErrorResponse(c, "Title is required", fiber.StatusBadRequest, "createPoet")
	}

	authorID := req.AuthorID.Uint64()
	if authorID == 0 {
		authorID = h.Cfg.HoldingUserID
	}

	poet := models.Poet{
		Title:    req.Title,
		Content:  req.Content,
		Twitter:  req.Twitter,
		Website:  req.Website,
		AuthorID: authorID,
		ParentID: req.ParentID.Uint64(),
	}
	if err := h.DB.Create(&poet).Error; err != nil {
		return utils.ErrorResponse(c, err.Error(), fiber.StatusInternalServerError, "createPoet")
	}

	return c.Status(fiber.StatusCreated).JSON(poet)
}

// GetPoet handles GET /api/poets/:poet_id
// @Summary Get a poet profile
// @Description Get a poet profile with its claim status and poem count
// @Tags Poets
// @Produce json
// @Param poet_id path int true "Poet profile ID"
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} utils.ErrorResponseStruct
// @Failure 500 {object} utils.ErrorResponseStruct
// @Router /poets/{poet_id} [get]
func (h *PoetHandler) GetPoet(c *fiber.Ctx) error {
	poetID, err := c.ParamsInt("poet_id")
	if err != nil || poetID < 1 {
		return utils.NotFoundResponse(c, "Poet not found")
	}

	poet, err := services.FindPoet(h.DB, uint64(poetID))
	if err != nil {
		return utils.ErrorResponse(c, err.Error(), fiber.StatusInternalServerError, "getPoet")
	}
	if poet == nil {
		return utils.NotFoundResponse(c, fmt.Sprintf("Poet '%d' not found", poetID))
	}

	pending, err := h.Claims.HasPendingClaim(poet.PoetID)
	if err != nil {
		return utils.ErrorResponse(c, err.Error(), fiber.StatusInternalServerError, "getPoet")
	}
	poemCount, err := h.Connections.PoemCount(poet.PoetID)
	if err != nil {
		return utils.ErrorResponse(c, err.Error(), fiber.StatusInternalServerError, "getPoet")
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"poet":          poet,
		"claim_pending": pending,
		"poem_count":    poemCount,
	})
}

// CreatePoems handles POST /api/poets/:poet_id/poems
// @Summary Add poems to a poet profile
// @Description Create poems and link them to the profile; accepts one object or an array
// @Tags Poets
// @Accept json
// @Produce json
// @Param poet_id path int true "Poet profile ID"
// @Param poems body poemRequest true "One poem or an array of poems"
// @Success 201 {object} map[string]interface{}
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Failure 500 {object} utils.ErrorResponseStruct
// @Router /poets/{poet_id}/poems [post]
func (h *PoetHandler) CreatePoems(c *fiber.Ctx) error {
	poetID, err := c.ParamsInt("poet_id")
	if err != nil || poetID < 1 {
		return utils.NotFoundResponse(c, "Poet not found")
	}

	poet, err := services.FindPoet(h.DB, uint64(poetID))
	if err != nil {
		return utils.ErrorResponse(c, err.Error(), fiber.StatusInternalServerError, "createPoems")
	}
	if poet == nil {
		return utils.NotFoundResponse(c, fmt.Sprintf("Poet '%d' not found", poetID))
	}

	var reqs types.FlexList[poemRequest]
	if err := reqs.UnmarshalJSON(c.Body()); err != nil {
		return utils.ErrorResponse(c, fmt.Sprintf("Invalid request body: %v", err),
			fiber.StatusBadRequest, "createPoems")
	}
	if len(reqs) == 0 {
		return utils.ErrorResponse(c, "No poems received", fiber.StatusBadRequest, "createPoems")
	}

	var created []uint64
	err = h.DB.Transaction(func(tx *gorm.DB) error {
		for _, req := range reqs.Slice() {
			if req.Title == "" {
				return fmt.Errorf("poem title is required")
			}
			authorID := req.AuthorID.Uint64()
			if authorID == 0 {
				authorID = poet.AuthorID
			}
			poem := models.Poem{Title: req.Title, AuthorID: authorID}
			if err := tx.Create(&poem).Error; err != nil {
				return err
			}
			conn := models.Connection{
				ConnType: models.ConnPoetsToPoems,
				FromID:   poet.PoetID,
				ToID:     poem.PoemID,
			}
			if err := tx.Create(&conn).Error; err != nil {
				return err
			}
			created = append(created, poem.PoemID)
		}
		return nil
	})
	if err != nil {
		return utils.ErrorResponse(c, err.Error(), fiber.StatusBadRequest, "createPoems")
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"poet_id":  poet.PoetID,
		"poem_ids": created,
	})
}

// ResolveForm handles GET /api/poets/:poet_id/resolve
// @Summary Get resolution form state
// @Description Get the pending claim details and a resolution nonce, or 204 when no claim is pending
// @Tags Poets
// @Produce json
// @Param poet_id path int true "Poet profile ID"
// @Success 200 {object} map[string]interface{}
// @Success 204
// @Failure 404 {object} utils.ErrorResponseStruct
// @Failure 500 {object} utils.ErrorResponseStruct
// @Router /poets/{poet_id}/resolve [get]
func (h *PoetHandler) ResolveForm(c *fiber.Ctx) error {
	poetID, err := c.ParamsInt("poet_id")
	if err != nil || poetID < 1 {
		return utils.NotFoundResponse(c, "Poet not found")
	}

	poet, err := services.FindPoet(h.DB, uint64(poetID))
	if err != nil {
		return utils.ErrorResponse(c, err.Error(), fiber.StatusInternalServerError, "resolveForm")
	}
	if poet == nil {
		return utils.NotFoundResponse(c, fmt.Sprintf("Poet '%d' not found", poetID))
	}
	if poet.IsRevision() {
		parent, err := services.FindPoet(h.DB, poet.ParentID)
		if err != nil {
			return utils.ErrorResponse(c, err.Error(), fiber.StatusInternalServerError, "resolveForm")
		}
		if parent != nil {
			poet = parent
		}
	}

	userID, pending, err := h.Claims.ClaimingUser(poet.PoetID)
	if err != nil {
		return utils.ErrorResponse(c, err.Error(), fiber.StatusInternalServerError, "resolveForm")
	}
	if !pending {
		return c.SendStatus(fiber.StatusNoContent)
	}

	claimType := services.ClaimTypeStandard
	if primaryUser, isPrimary, err := h.Claims.PendingPrimaryClaimUser(poet.PoetID); err != nil {
		return utils.ErrorResponse(c, err.Error(), fiber.StatusInternalServerError, "resolveForm")
	} else if isPrimary && primaryUser == userID {
		claimType = services.ClaimTypePrimary
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"poet_id":    poet.PoetID,
		"user_id":    userID,
		"claim_type": claimType,
		"nonce":      h.Nonces.Create(resolveNonceAction, poet.PoetID),
	})
}

// SavePoet handles POST /api/poets/:poet_id/save
// @Summary Resolve a claim from the profile save screen
// @Description Resolve a pending claim in one request; requires a resolution nonce
// @Tags Poets
// @Accept x-www-form-urlencoded
// @Produce json
// @Param poet_id path int true "Poet profile ID"
// @Param claim_resolved formData string false "Decision: accept or reject"
// @Param resolve_nonce formData string true "Resolution nonce"
// @Success 200 {object} map[string]interface{}
// @Failure 403 {object} utils.ErrorResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Failure 500 {object} utils.ErrorResponseStruct
// @Router /poets/{poet_id}/save [post]
func (h *PoetHandler) SavePoet(c *fiber.Ctx) error {
	poetID, err := c.ParamsInt("poet_id")
	if err != nil || poetID < 1 {
		return utils.NotFoundResponse(c, "Poet not found")
	}

	decision := c.FormValue("claim_resolved")
	if decision == "" {
		// No resolution on this save; nothing to do.
		return c.Status(fiber.StatusOK).JSON(fiber.Map{"resolved": false})
	}
	if decision != services.DecisionAccept && decision != services.DecisionReject {
		return utils.ErrorResponse(c, "Invalid decision", fiber.StatusBadRequest, "savePoet")
	}

	if !h.Nonces.Verify(c.FormValue("resolve_nonce"), resolveNonceAction, uint64(poetID)) {
		return utils.ErrorResponse(c, "Invalid or expired nonce", fiber.StatusForbidden, "savePoet")
	}

	if err := h.Resolve.SaveResolution(uint64(poetID), decision == services.DecisionAccept); err != nil {
		if err == gorm.ErrRecordNotFound {
			return utils.NotFoundResponse(c, fmt.Sprintf("Poet '%d' not found", poetID))
		}
		return utils.ErrorResponse(c, err.Error(), fiber.StatusInternalServerError, "savePoet")
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"resolved": true,
		"decision": decision,
	})
}
