/*
store.go - Persistence interface for the entity collections

PURPOSE:
  Defines the interface between the planning domain and the database.
  Different implementations can use SQLite or in-memory storage; the
  calculators never see the store, only snapshots read from it.

KEY INTERFACE:
  EntityStore: Save/Get/List per entity type, plus Snapshot() for a
  consistent read of everything and Reset() for scenario loading.

SAVE SEMANTICS:
  Save* is an upsert keyed by entity id. The engine is a single-user
  planning tool; there is no optimistic locking or versioning.

IMPLEMENTATIONS:
  - store/sqlite/sqlite.go: Production SQLite
  - planning/store/memory.go: In-memory for testing/dev

SEE ALSO:
  - snapshot.go: The Snapshot type returned by Snapshot()
*/
package planning

import "context"

// EntityStore handles persistence of the planning entities.
type EntityStore interface {
	SaveTeam(ctx context.Context, t Team) error
	GetTeam(ctx context.Context, id TeamID) (Team, error)
	ListTeams(ctx context.Context) ([]Team, error)

	SavePerson(ctx context.Context, p Person) error
	ListPeople(ctx context.Context) ([]Person, error)

	SaveRole(ctx context.Context, r Role) error
	ListRoles(ctx context.Context) ([]Role, error)

	SaveCycle(ctx context.Context, c Cycle) error
	GetCycle(ctx context.Context, id CycleID) (Cycle, error)
	ListCycles(ctx context.Context) ([]Cycle, error)

	SaveAllocation(ctx context.Context, a Allocation) error
	ListAllocations(ctx context.Context) ([]Allocation, error)
	DeleteAllocation(ctx context.Context, id AllocationID) error

	SaveProject(ctx context.Context, p Project) error
	GetProject(ctx context.Context, id ProjectID) (Project, error)
	ListProjects(ctx context.Context) ([]Project, error)

	SaveEpic(ctx context.Context, e Epic) error
	ListEpics(ctx context.Context) ([]Epic, error)

	SaveRunWorkCategory(ctx context.Context, c RunWorkCategory) error
	ListRunWorkCategories(ctx context.Context) ([]RunWorkCategory, error)

	SaveSkill(ctx context.Context, s Skill) error
	ListSkills(ctx context.Context) ([]Skill, error)

	SavePersonSkill(ctx context.Context, ps PersonSkill) error
	ListPersonSkills(ctx context.Context) ([]PersonSkill, error)

	SaveSolution(ctx context.Context, s Solution) error
	ListSolutions(ctx context.Context) ([]Solution, error)

	SaveProjectSolution(ctx context.Context, ps ProjectSolution) error
	ListProjectSolutions(ctx context.Context) ([]ProjectSolution, error)

	SaveProjectSkill(ctx context.Context, ps ProjectSkill) error
	ListProjectSkills(ctx context.Context) ([]ProjectSkill, error)

	// Snapshot returns a consistent view of every collection.
	Snapshot(ctx context.Context) (*Snapshot, error)

	// Reset clears all data. Used by scenario loading; dev/demo only.
	Reset(ctx context.Context) error
}
