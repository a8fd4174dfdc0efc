package game

import "math/rand"

// RosterSize is the fixed number of participants per session. Configurable
// roster sizes are a future extension point; the role pool below assumes
// exactly this many seats.
const RosterSize = 8

// RolePool returns the fixed role composition for a full roster:
// one seer, one doctor, two werewolves and villagers for the rest.
func RolePool() []Role {
	pool := []Role{RoleSeer, RoleDoctor, RoleWerewolf, RoleWerewolf}
	for len(pool) < RosterSize {
		pool = append(pool, RoleVillager)
	}
	return pool
}

// AssignRoles distributes the fixed role pool across the roster. The human's
// chosen role is swapped into slot 0 and the remaining roles are randomly
// permuted among the other participants. The roster length must match the
// pool size.
func AssignRoles(participants []Participant, humanRole Role) {
	pool := RolePool()
	for i, r := range pool {
		if r == humanRole {
			pool[0], pool[i] = pool[i], pool[0]
			break
		}
	}
	rest := pool[1:]
	rand.Shuffle(len(rest), func(i, j int) {
		rest[i], rest[j] = rest[j], rest[i]
	})
	for i := range participants {
		participants[i].Role = pool[i]
	}
}
