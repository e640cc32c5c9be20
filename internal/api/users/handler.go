package users

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/idris-r/jobs4/internal/models"
	"github.com/idris-r/jobs4/internal/services"
	"github.com/idris-r/jobs4/internal/utils"
)

func currentUserID(c *gin.Context) (uint, bool) {
	id, exists := c.Get("userID")
	if !exists {
		c.JSON(http.StatusUnauthorized, utils.NewErrorResponse(http.StatusUnauthorized, "Unauthorized"))
		return 0, false
	}
	return id.(uint), true
}

func Profile(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	// Reload from the DB rather than trusting the middleware's cached copy,
	// so the balance reflects any grant that landed since.
	u, err := services.FindUserByID(userID)
	if err != nil {
		if errors.Is(err, services.ErrUserNotFound) {
			c.JSON(http.StatusNotFound, utils.NewErrorResponse(http.StatusNotFound, "User not found"))
			return
		}
		c.JSON(http.StatusInternalServerError, utils.NewErrorResponse(http.StatusInternalServerError, "Failed to fetch profile"))
		return
	}

	c.JSON(http.StatusOK, utils.NewSuccessResponse("Profile retrieved successfully", ProfileResponse{
		ID:           u.ID,
		Email:        u.Email,
		TokenBalance: u.TokenBalance,
		CreatedAt:    u.CreatedAt,
		LastLogin:    u.LastLogin,
	}))
}

func UpdateTokens(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var input TokenUpdateInput
	if !utils.BindAndValidate(c, &input) {
		return
	}

	newBalance, err := services.ApplyDelta(userID, *input.Amount, models.TokenAction(input.Action))
	if err != nil {
		switch {
		case errors.Is(err, services.ErrInvalidAction):
			c.JSON(http.StatusBadRequest, utils.NewErrorResponse(http.StatusBadRequest, err.Error()))
		case errors.Is(err, services.ErrUserNotFound):
			c.JSON(http.StatusNotFound, utils.NewErrorResponse(http.StatusNotFound, "User not found"))
		default:
			c.JSON(http.StatusInternalServerError, utils.NewErrorResponse(http.StatusInternalServerError, "Failed to update tokens"))
		}
		return
	}

	c.JSON(http.StatusOK, utils.NewSuccessResponse("Token balance updated", TokenUpdateResponse{
		NewBalance: newBalance,
	}))
}

func History(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	entries, err := services.TokenHistory(userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, utils.NewErrorResponse(http.StatusInternalServerError, "Failed to fetch token history"))
		return
	}

	c.JSON(http.StatusOK, utils.NewSuccessResponse("Token history retrieved successfully", entries))
}

func DeleteAccount(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	if err := services.DeleteAccount(userID); err != nil {
		if errors.Is(err, services.ErrUserNotFound) {
			c.JSON(http.StatusNotFound, utils.NewErrorResponse(http.StatusNotFound, "User not found"))
			return
		}
		c.JSON(http.StatusInternalServerError, utils.NewErrorResponse(http.StatusInternalServerError, "Failed to delete account"))
		return
	}

	c.JSON(http.StatusOK, utils.NewSuccessResponse("Account deleted successfully", nil))
}
