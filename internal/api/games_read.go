package api

import (
	"net/http"

	"github.com/balajiduddukuri/Werewolf-AI-Game/internal/constants"

	"github.com/gin-gonic/gin"
)

// GetGame returns the session view for the client, with hidden roles
// redacted.
func (h *GameHandler) GetGame(c *gin.Context) {
	id, ok := parseGameID(c)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrInvalidGameID})
		return
	}
	g, err := h.repo.GetGameByID(id)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{constants.JSONKeyError: constants.ErrGameNotFound})
		return
	}
	out, err := MarshalGameView(g)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: constants.ErrGameNotFound})
		return
	}
	c.JSON(http.StatusOK, out)
}

// ListEvents returns the session's append-only log in emission order.
func (h *GameHandler) ListEvents(c *gin.Context) {
	id, ok := parseGameID(c)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrInvalidGameID})
		return
	}
	events, err := h.repo.GetEventsByGameID(id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: constants.ErrFailedFetchEvents})
		return
	}
	c.JSON(http.StatusOK, events)
}
