package api

import (
	"net/http"
	"unicode/utf8"

	"github.com/balajiduddukuri/Werewolf-AI-Game/internal/constants"
	"github.com/balajiduddukuri/Werewolf-AI-Game/internal/game"
	"github.com/balajiduddukuri/Werewolf-AI-Game/internal/service"

	"github.com/gin-gonic/gin"
)

type CreateGamePayload struct {
	PlayerName string `json:"player_name"`
	Role       string `json:"role"`
}

// CreateGame starts a new session around the caller's chosen role and
// returns the full session view, already awaiting the first night action.
func (h *GameHandler) CreateGame(c *gin.Context) {
	var req CreateGamePayload
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrInvalidRequest})
		return
	}
	if req.PlayerName == "" {
		req.PlayerName = "Player"
	}
	if utf8.RuneCountInString(req.PlayerName) > 32 {
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrPlayerNameExceeds})
		return
	}

	g, err := service.StartGame(c.Request.Context(), h.repo, h.cfg, req.PlayerName, game.Role(req.Role))
	if err != nil {
		if err == service.ErrUnknownRole {
			c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrUnknownRole})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: constants.ErrFailedCreateGame})
		return
	}

	out, err := MarshalGameView(g)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: constants.ErrFailedCreateGame})
		return
	}
	c.JSON(http.StatusCreated, out)
}

// RestartGame wipes the session and rebuilds it around the same user seat.
func (h *GameHandler) RestartGame(c *gin.Context) {
	id, ok := parseGameID(c)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrInvalidGameID})
		return
	}

	g, err := service.RestartGame(c.Request.Context(), h.repo, h.cfg, id)
	if err != nil {
		if err == service.ErrGameNotFound {
			c.JSON(http.StatusNotFound, gin.H{constants.JSONKeyError: constants.ErrGameNotFound})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: constants.ErrFailedRestartGame})
		return
	}

	out, err := MarshalGameView(g)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: constants.ErrFailedRestartGame})
		return
	}
	c.JSON(http.StatusOK, out)
}
