package api

import (
	"net/http"

	"github.com/balajiduddukuri/Werewolf-AI-Game/internal/constants"
	"github.com/balajiduddukuri/Werewolf-AI-Game/internal/engine"
	"github.com/balajiduddukuri/Werewolf-AI-Game/internal/service"

	"github.com/gin-gonic/gin"
)

type NightActionPayload struct {
	Kind     string `json:"kind"`
	RuneID   uint   `json:"rune_id"`
	TargetID string `json:"target_id"`
}

// NightAction submits the user's action for the night and resolves the
// night into the day intro.
func (h *GameHandler) NightAction(c *gin.Context) {
	id, ok := parseGameID(c)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrInvalidGameID})
		return
	}
	var req NightActionPayload
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrInvalidRequest})
		return
	}

	action := engine.UserNightAction{
		Kind:     engine.UserActionKind(req.Kind),
		RuneID:   req.RuneID,
		TargetID: req.TargetID,
	}
	g, err := service.SubmitNightAction(c.Request.Context(), h.repo, h.decider, id, action, h.cfg.ActionTimeout)
	if err != nil {
		switch err {
		case service.ErrGameNotFound:
			c.JSON(http.StatusNotFound, gin.H{constants.JSONKeyError: constants.ErrGameNotFound})
		case service.ErrWrongPhase:
			c.JSON(http.StatusConflict, gin.H{constants.JSONKeyError: constants.ErrWrongPhase})
		case service.ErrInvalidAction:
			c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrInvalidRequest})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: constants.ErrFailedResolveNight})
		}
		return
	}

	out, err := MarshalGameView(g)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: constants.ErrFailedResolveNight})
		return
	}
	c.JSON(http.StatusOK, out)
}

// Discussion runs the day discussion: bot chat lands on the event log and
// the session moves into voting.
func (h *GameHandler) Discussion(c *gin.Context) {
	id, ok := parseGameID(c)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrInvalidGameID})
		return
	}

	g, err := service.RunDiscussion(c.Request.Context(), h.repo, h.decider, id, h.cfg.ChatDelay, h.cfg.ActionTimeout)
	if err != nil {
		switch err {
		case service.ErrGameNotFound:
			c.JSON(http.StatusNotFound, gin.H{constants.JSONKeyError: constants.ErrGameNotFound})
		case service.ErrWrongPhase:
			c.JSON(http.StatusConflict, gin.H{constants.JSONKeyError: constants.ErrWrongPhase})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: constants.ErrFailedRunDiscussion})
		}
		return
	}

	out, err := MarshalGameView(g)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: constants.ErrFailedRunDiscussion})
		return
	}
	c.JSON(http.StatusOK, out)
}

type VotePayload struct {
	TargetID string `json:"target_id"`
}

// Vote submits the user's day vote (empty target abstains) and resolves the
// elimination for the day.
func (h *GameHandler) Vote(c *gin.Context) {
	id, ok := parseGameID(c)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrInvalidGameID})
		return
	}
	var req VotePayload
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrInvalidRequest})
		return
	}

	g, err := service.SubmitVote(c.Request.Context(), h.repo, id, req.TargetID, h.cfg.ActionTimeout)
	if err != nil {
		switch err {
		case service.ErrGameNotFound:
			c.JSON(http.StatusNotFound, gin.H{constants.JSONKeyError: constants.ErrGameNotFound})
		case service.ErrWrongPhase:
			c.JSON(http.StatusConflict, gin.H{constants.JSONKeyError: constants.ErrWrongPhase})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: constants.ErrFailedResolveVote})
		}
		return
	}

	out, err := MarshalGameView(g)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: constants.ErrFailedResolveVote})
		return
	}
	c.JSON(http.StatusOK, out)
}
