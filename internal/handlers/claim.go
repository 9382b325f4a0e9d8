// claim.go
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
	"errors"
	"fmt"

	"github.com/footpoets/claimsdb/internal/services"
	"github.com/footpoets/claimsdb/internal/utils"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// ClaimHandler handles the claim form ajax routes
type ClaimHandler struct {
	Claims  *services.ClaimService
	Resolve *services.ResolveService
}

// ClaimPoet handles POST /api/ajax/claim_poet
// @Summary Submit a poet profile claim
// @Description Submit a claim on a poet profile for the logged-in user
// @Tags Claims
// @Accept x-www-form-urlencoded
// @Produce json
// @Param claiming_user_id formData string true "Claiming user ID"
// @Param claimed_poet_id formData string true "Poet profile ID"
// @Param claim_type formData string true "Claim type: standard or primary"
// @Success 200 {object} services.AjaxResult
// @Failure 500 {object} utils.ErrorResponseStruct
// @Router /ajax/claim_poet [post]
func (h *ClaimHandler) ClaimPoet(c *fiber.Ctx) error {
	result, err := h.Claims.Submit(
		c.FormValue("claiming_user_id"),
		c.FormValue("claimed_poet_id"),
		c.FormValue("claim_type"),
	)
	if err != nil {
		return utils.ErrorResponse(c, err.Error(), fiber.StatusInternalServerError, "claimPoet")
	}

	return c.Status(fiber.StatusOK).JSON(result)
}

// ClaimStop handles POST /api/ajax/claim_stop
// @Summary Opt out of claim prompts
// @Description Stop showing the claim form to the logged-in user
// @Tags Claims
// @Accept x-www-form-urlencoded
// @Produce json
// @Param claiming_user_id formData string true "User ID"
// @Param claim_stop formData string true "Literal 'yes' to opt out"
// @Success 200 {object} services.AjaxResult
// @Failure 500 {object} utils.ErrorResponseStruct
// @Router /ajax/claim_stop [post]
func (h *ClaimHandler) ClaimStop(c *fiber.Ctx) error {
	result, err := h.Claims.Stop(
		c.FormValue("claiming_user_id"),
		c.FormValue("claim_stop"),
	)
	if err != nil {
		return utils.ErrorResponse(c, err.Error(), fiber.StatusInternalServerError, "claimStop")
	}

	return c.Status(fiber.StatusOK).JSON(result)
}

// ClaimProcess handles POST /api/ajax/claim_process
// @Summary Advance a claim resolution by one step
// @Description Run one step of the claim resolution state machine; repost until finished is "true"
// @Tags Claims
// @Accept x-www-form-urlencoded
// @Produce json
// @Param claiming_user_id formData string true "Claiming user ID"
// @Param claimed_poet_id formData string true "Poet profile ID"
// @Param resolution formData string true "Decision: accept or reject"
// @Success 200 {object} services.ResolveResult
// @Failure 500 {object} utils.ErrorResponseStruct
// @Router /ajax/claim_process [post]
func (h *ClaimHandler) ClaimProcess(c *fiber.Ctx) error {
	result, err := h.Resolve.Process(
		c.FormValue("claiming_user_id"),
		c.FormValue("claimed_poet_id"),
		c.FormValue("resolution"),
	)
	if err != nil {
		return utils.ErrorResponse(c, err.Error(), fiber.StatusInternalServerError, "claimProcess")
	}

	return c.Status(fiber.StatusOK).JSON(result)
}

// ClaimForm handles GET /api/claims/form/:poet_id
// @Summary Get claim form render state
// @Description Compute what the claim form should render for the logged-in user on a poet profile
// @Tags Claims
// @Produce json
// @Param poet_id path int true "Poet profile ID"
// @Success 200 {object} services.FormState
// @Failure 404 {object} utils.ErrorResponseStruct
// @Failure 500 {object} utils.ErrorResponseStruct
// @Router /claims/form/{poet_id} [get]
func (h *ClaimHandler) ClaimForm(c *fiber.Ctx) error {
	poetID, err := c.ParamsInt("poet_id")
	if err != nil || poetID < 1 {
		return utils.NotFoundResponse(c, "Poet not found")
	}

	userID, ok := c.Locals("user_id").(uint64)
	if !ok {
		return utils.ErrorResponse(c, "missing session user", fiber.StatusForbidden, "claimForm")
	}

	state, err := h.Claims.FormState(uint64(poetID), userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.NotFoundResponse(c, fmt.Sprintf("Poet '%d' not found", poetID))
		}
		return utils.ErrorResponse(c, err.Error(), fiber.StatusInternalServerError, "claimForm")
	}

	return c.Status(fiber.StatusOK).JSON(state)
}
