package sqlite_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/warp/planning-engine/planning"
	"github.com/warp/planning-engine/store/sqlite"
)

// =============================================================================
// TEST SETUP
// =============================================================================

func newTestStore(t *testing.T) *sqlite.Store {
	store, err := sqlite.New(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

// =============================================================================
// ROUND-TRIP AND UPSERT TESTS
// =============================================================================

func TestSQLite_TeamRoundTrip(t *testing.T) {
	// GIVEN: A team with target skills
	// WHEN: Saving and reading back
	// THEN: All fields survive, including the skill-id list

	store := newTestStore(t)
	ctx := context.Background()

	team := planning.Team{
		ID: "team-1", Name: "Platform", Capacity: 40,
		DivisionID:   "div-eng",
		TargetSkills: []planning.SkillID{"skill-go", "skill-sql"},
	}
	require.NoError(t, store.SaveTeam(ctx, team))

	got, err := store.GetTeam(ctx, "team-1")
	require.NoError(t, err)
	assert.Equal(t, team, got)
}

func TestSQLite_GetTeam_NotFound(t *testing.T) {
	store := newTestStore(t)

	_, err := store.GetTeam(context.Background(), "team-missing")

	assert.Error(t, err)
	assert.True(t, planning.IsNotFound(err), "should wrap ErrNotFound")
}

func TestSQLite_SaveTeam_Upsert(t *testing.T) {
	// GIVEN: A saved team
	// WHEN: Saving again with the same ID
	// THEN: The record is replaced, not duplicated

	store := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.SaveTeam(ctx, planning.Team{ID: "team-1", Name: "Old", Capacity: 30}))
	require.NoError(t, store.SaveTeam(ctx, planning.Team{ID: "team-1", Name: "New", Capacity: 40}))

	teams, err := store.ListTeams(ctx)
	require.NoError(t, err)
	require.Len(t, teams, 1)
	assert.Equal(t, "New", teams[0].Name)
	assert.Equal(t, 40.0, teams[0].Capacity)
}

func TestSQLite_PersonSalaryRoundTrip(t *testing.T) {
	// Decimal salaries are stored as TEXT; precision must survive.
	store := newTestStore(t)
	ctx := context.Background()

	salary := decimal.NewFromInt(185500)
	require.NoError(t, store.SavePerson(ctx, planning.Person{
		ID: "p1", Name: "Sam", TeamID: "team-1", RoleID: "role-eng",
		AnnualSalary: &salary,
	}))
	require.NoError(t, store.SavePerson(ctx, planning.Person{
		ID: "p2", Name: "Alex", TeamID: "team-1", RoleID: "role-eng",
	}))

	people, err := store.ListPeople(ctx)
	require.NoError(t, err)
	require.Len(t, people, 2)
	require.NotNil(t, people[0].AnnualSalary)
	assert.True(t, people[0].AnnualSalary.Equal(salary))
	assert.Nil(t, people[1].AnnualSalary, "absent salary should stay nil")
}

func TestSQLite_CycleOrderingAndDates(t *testing.T) {
	// GIVEN: Cycles saved out of chronological order
	// WHEN: Listing
	// THEN: Ordered by start date; TEXT dates parse back

	store := newTestStore(t)
	ctx := context.Background()

	q2 := planning.Cycle{
		ID: "q2-2026", Name: "Q2 2026", Type: planning.CycleQuarterly,
		StartDate: planning.NewDate(2026, 4, 1), EndDate: planning.NewDate(2026, 6, 30),
	}
	q1 := planning.Cycle{
		ID: "q1-2026", Name: "Q1 2026", Type: planning.CycleQuarterly,
		StartDate: planning.NewDate(2026, 1, 1), EndDate: planning.NewDate(2026, 3, 31),
	}
	it1 := planning.Cycle{
		ID: "q1-it1", Name: "Iteration 1", Type: planning.CycleIteration,
		StartDate: planning.NewDate(2026, 1, 1), EndDate: planning.NewDate(2026, 1, 14),
		ParentCycleID: "q1-2026",
	}
	require.NoError(t, store.SaveCycle(ctx, q2))
	require.NoError(t, store.SaveCycle(ctx, q1))
	require.NoError(t, store.SaveCycle(ctx, it1))

	cycles, err := store.ListCycles(ctx)
	require.NoError(t, err)
	require.Len(t, cycles, 3)
	assert.Equal(t, planning.CycleID("q1-2026"), cycles[0].ID)
	assert.Equal(t, planning.CycleID("q1-it1"), cycles[1].ID)
	assert.Equal(t, planning.CycleID("q2-2026"), cycles[2].ID)
	assert.True(t, cycles[0].StartDate.Equal(planning.NewDate(2026, 1, 1)))
	assert.Equal(t, planning.CycleID("q1-2026"), cycles[1].ParentCycleID)
}

func TestSQLite_SaveCycle_EndBeforeStart_Rejected(t *testing.T) {
	store := newTestStore(t)

	err := store.SaveCycle(context.Background(), planning.Cycle{
		ID: "bad", Type: planning.CycleQuarterly,
		StartDate: planning.NewDate(2026, 3, 31), EndDate: planning.NewDate(2026, 1, 1),
	})

	assert.ErrorIs(t, err, planning.ErrInvalidCycle)
}

func TestSQLite_AllocationDelete(t *testing.T) {
	// GIVEN: A saved allocation
	// WHEN: Deleting it, then deleting again
	// THEN: First delete succeeds, second reports not found

	store := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.SaveAllocation(ctx, planning.Allocation{
		ID: "a1", TeamID: "team-1", CycleID: "q1-2026", Percentage: 50, EpicID: "epic-1",
	}))

	require.NoError(t, store.DeleteAllocation(ctx, "a1"))

	err := store.DeleteAllocation(ctx, "a1")
	assert.True(t, planning.IsNotFound(err))

	allocations, err := store.ListAllocations(ctx)
	require.NoError(t, err)
	assert.Empty(t, allocations)
}

func TestSQLite_ProjectBudgetRoundTrip(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.SaveProject(ctx, planning.Project{
		ID: "proj-1", Name: "Portal", Status: planning.ProjectActive,
		Budget: decimal.NewFromInt(250000),
	}))

	got, err := store.GetProject(ctx, "proj-1")
	require.NoError(t, err)
	assert.True(t, got.Budget.Equal(decimal.NewFromInt(250000)))
	assert.Equal(t, planning.ProjectActive, got.Status)
}

func TestSQLite_SolutionSkillListRoundTrip(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	sol := planning.Solution{
		ID: "sol-1", Name: "Backend",
		SkillIDs: []planning.SkillID{"skill-go", "skill-sql"},
	}
	require.NoError(t, store.SaveSolution(ctx, sol))

	solutions, err := store.ListSolutions(ctx)
	require.NoError(t, err)
	require.Len(t, solutions, 1)
	assert.Equal(t, sol.SkillIDs, solutions[0].SkillIDs)
}

// =============================================================================
// SNAPSHOT AND RESET TESTS
// =============================================================================

func TestSQLite_SnapshotComposesAllCollections(t *testing.T) {
	// GIVEN: One entity of each kind
	// WHEN: Taking a snapshot
	// THEN: Every collection is populated

	store := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.SaveTeam(ctx, planning.Team{ID: "team-1", Name: "Core", Capacity: 40}))
	require.NoError(t, store.SavePerson(ctx, planning.Person{ID: "p1", Name: "Sam", TeamID: "team-1"}))
	require.NoError(t, store.SaveRole(ctx, planning.Role{ID: "role-eng", Name: "Engineer", WeeklyRate: decimal.NewFromInt(3000)}))
	require.NoError(t, store.SaveCycle(ctx, planning.Cycle{ID: "q1", Type: planning.CycleQuarterly}))
	require.NoError(t, store.SaveAllocation(ctx, planning.Allocation{ID: "a1", TeamID: "team-1", CycleID: "q1", Percentage: 50}))
	require.NoError(t, store.SaveProject(ctx, planning.Project{ID: "proj-1", Name: "Portal"}))
	require.NoError(t, store.SaveEpic(ctx, planning.Epic{ID: "e1", ProjectID: "proj-1", Name: "Auth"}))
	require.NoError(t, store.SaveRunWorkCategory(ctx, planning.RunWorkCategory{ID: "rw-support", Name: "Support"}))
	require.NoError(t, store.SaveSkill(ctx, planning.Skill{ID: "skill-go", Name: "Go"}))
	require.NoError(t, store.SavePersonSkill(ctx, planning.PersonSkill{ID: "ps1", PersonID: "p1", SkillID: "skill-go"}))
	require.NoError(t, store.SaveSolution(ctx, planning.Solution{ID: "sol-1", Name: "Backend"}))
	require.NoError(t, store.SaveProjectSolution(ctx, planning.ProjectSolution{ID: "psol-1", ProjectID: "proj-1", SolutionID: "sol-1"}))
	require.NoError(t, store.SaveProjectSkill(ctx, planning.ProjectSkill{ID: "psk-1", ProjectID: "proj-1", SkillID: "skill-go"}))

	snap, err := store.Snapshot(ctx)
	require.NoError(t, err)

	assert.Len(t, snap.Teams, 1)
	assert.Len(t, snap.People, 1)
	assert.Len(t, snap.Roles, 1)
	assert.Len(t, snap.Cycles, 1)
	assert.Len(t, snap.Allocations, 1)
	assert.Len(t, snap.Projects, 1)
	assert.Len(t, snap.Epics, 1)
	assert.Len(t, snap.RunWorkCategories, 1)
	assert.Len(t, snap.Skills, 1)
	assert.Len(t, snap.PersonSkills, 1)
	assert.Len(t, snap.Solutions, 1)
	assert.Len(t, snap.ProjectSolutions, 1)
	assert.Len(t, snap.ProjectSkills, 1)
}

func TestSQLite_ResetClearsEverything(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.SaveTeam(ctx, planning.Team{ID: "team-1", Name: "Core", Capacity: 40}))
	require.NoError(t, store.SaveAllocation(ctx, planning.Allocation{ID: "a1", TeamID: "team-1", CycleID: "q1", Percentage: 50}))

	require.NoError(t, store.Reset(ctx))

	snap, err := store.Snapshot(ctx)
	require.NoError(t, err)
	assert.Empty(t, snap.Teams)
	assert.Empty(t, snap.Allocations)
}
