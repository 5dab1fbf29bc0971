package controllers

import (
	"net/http"

	"tailortrack-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// requireShopID pulls the authenticated shop id out of the gin context.
// Writes the error response itself when the claim is missing or malformed.
func requireShopID(c *gin.Context) (uuid.UUID, bool) {
	shopID, exists := c.Get("shopId")
	if !exists {
		utils.RespondWithError(c, http.StatusUnauthorized, "Shop ID not found in context")
		return uuid.Nil, false
	}
	shopUUID, err := uuid.Parse(shopID.(string))
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Invalid shop ID format")
		return uuid.Nil, false
	}
	return shopUUID, true
}

func requireUserID(c *gin.Context) (uuid.UUID, bool) {
	userID, exists := c.Get("userId")
	if !exists {
		utils.RespondWithError(c, http.StatusUnauthorized, "User ID not found in context")
		return uuid.Nil, false
	}
	userUUID, err := uuid.Parse(userID.(string))
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Invalid user ID format")
		return uuid.Nil, false
	}
	return userUUID, true
}

// parseIDParam parses the :id path parameter. Writes the 400 itself.
func parseIDParam(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid ID format")
		return uuid.Nil, false
	}
	return id, true
}
