package api

import (
	"encoding/json"
	"strconv"

	"github.com/balajiduddukuri/Werewolf-AI-Game/internal/game"

	"github.com/gin-gonic/gin"
)

func parseGameID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("gameID"), 10, 32)
	if err != nil {
		return 0, false
	}
	return uint(id), true
}

// MarshalGameView marshals a session for the client. Two adjustments are
// applied to the raw model: GORM's CamelCase timestamp keys become
// snake_case, and the roles of living participants the user has no
// knowledge of are removed so hidden identities never reach the client.
func MarshalGameView(g *game.Game) (interface{}, error) {
	b, err := json.Marshal(g)
	if err != nil {
		return nil, err
	}
	var out interface{}
	if err := json.Unmarshal(b, &out); err != nil {
		return nil, err
	}
	out = normalizeTimestamps(out)
	redactHiddenRoles(out, visibleRoleIDs(g))
	return out, nil
}

// visibleRoleIDs collects the participant ids whose role the user is allowed
// to see: their own seat, everyone on the knowledge map and the dead (a
// death always reveals the role).
func visibleRoleIDs(g *game.Game) map[string]bool {
	visible := map[string]bool{g.UserParticipantID: true}
	for _, k := range g.Knowledge {
		visible[k.ParticipantID] = true
	}
	for i := range g.Participants {
		if !g.Participants[i].IsAlive || g.Phase == game.PhaseGameOver {
			visible[g.Participants[i].PublicID] = true
		}
	}
	return visible
}

// redactHiddenRoles walks the marshalled session and deletes the "role" key
// from participant objects not present in the visible set.
func redactHiddenRoles(v interface{}, visible map[string]bool) {
	switch vv := v.(type) {
	case map[string]interface{}:
		if id, ok := vv["id"].(string); ok {
			if _, hasRole := vv["role"]; hasRole && !visible[id] {
				delete(vv, "role")
			}
		}
		for _, val := range vv {
			redactHiddenRoles(val, visible)
		}
	case []interface{}:
		for i := range vv {
			redactHiddenRoles(vv[i], visible)
		}
	}
}

// normalizeTimestamps recursively renames GORM timestamp keys from CamelCase
// (CreatedAt, UpdatedAt, DeletedAt) to snake_case keys so clients receive a
// consistent JSON shape.
func normalizeTimestamps(v interface{}) interface{} {
	switch vv := v.(type) {
	case map[string]interface{}:
		for k, val := range vv {
			vv[k] = normalizeTimestamps(val)
		}
		if val, ok := vv["CreatedAt"]; ok {
			vv["created_at"] = val
			delete(vv, "CreatedAt")
		}
		if val, ok := vv["UpdatedAt"]; ok {
			vv["updated_at"] = val
			delete(vv, "UpdatedAt")
		}
		if val, ok := vv["DeletedAt"]; ok {
			vv["deleted_at"] = val
			delete(vv, "DeletedAt")
		}
		return vv
	case []interface{}:
		for i := range vv {
			vv[i] = normalizeTimestamps(vv[i])
		}
		return vv
	default:
		return v
	}
}
