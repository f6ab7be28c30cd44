/*
snapshot.go - Immutable entity bundle handed to the calculators

PURPOSE:
  A Snapshot carries one consistent view of every entity collection plus
  by-id indexes for cheap lookups. The calculation packages take snapshots
  (or explicit slices) as input and never mutate them; each call constructs
  new derived records, so callers can share a snapshot freely.

USAGE:
  snap := store.Snapshot(ctx)
  check := allocation.CalculateTeamCapacity(team, period,
      snap.Allocations, snap.Cycles, snap.Epics)

SEE ALSO:
  - store.go: EntityStore.Snapshot produces these
  - types.go: The entity definitions
*/
package planning

// Snapshot is a point-in-time view of all entity collections.
type Snapshot struct {
	Teams            []Team
	People           []Person
	Roles            []Role
	Cycles           []Cycle
	Allocations      []Allocation
	Projects         []Project
	Epics            []Epic
	RunWorkCategories []RunWorkCategory
	Skills           []Skill
	PersonSkills     []PersonSkill
	Solutions        []Solution
	ProjectSolutions []ProjectSolution
	ProjectSkills    []ProjectSkill
}

// TeamByID returns the team with the given id, or false.
func (s *Snapshot) TeamByID(id TeamID) (Team, bool) {
	for _, t := range s.Teams {
		if t.ID == id {
			return t, true
		}
	}
	return Team{}, false
}

// ProjectByID returns the project with the given id, or false.
func (s *Snapshot) ProjectByID(id ProjectID) (Project, bool) {
	for _, p := range s.Projects {
		if p.ID == id {
			return p, true
		}
	}
	return Project{}, false
}

// EpicByID returns the epic with the given id, or false.
func (s *Snapshot) EpicByID(id EpicID) (Epic, bool) {
	for _, e := range s.Epics {
		if e.ID == id {
			return e, true
		}
	}
	return Epic{}, false
}

// CycleByID returns the cycle with the given id, or false.
func (s *Snapshot) CycleByID(id CycleID) (Cycle, bool) {
	return FindCycle(s.Cycles, id)
}

// RoleByID returns the role with the given id, or false.
func (s *Snapshot) RoleByID(id RoleID) (Role, bool) {
	for _, r := range s.Roles {
		if r.ID == id {
			return r, true
		}
	}
	return Role{}, false
}

// TeamMembers returns the people on the given team.
func (s *Snapshot) TeamMembers(id TeamID) []Person {
	var members []Person
	for _, p := range s.People {
		if p.TeamID == id {
			members = append(members, p)
		}
	}
	return members
}
