package allocation_test

import (
	"reflect"
	"testing"
	"time"

	"github.com/warp/planning-engine/allocation"
	"github.com/warp/planning-engine/planning"
)

// =============================================================================
// TEST FIXTURES
// =============================================================================

func date(year int, month time.Month, day int) planning.Date {
	return planning.NewDate(year, month, day)
}

// q1Cycles returns a Q1 quarter with n linked two-week iterations.
func q1Cycles(n int) []planning.Cycle {
	cycles := []planning.Cycle{{
		ID:        "q1",
		Name:      "Q1 2026",
		Type:      planning.CycleQuarterly,
		StartDate: date(2026, time.January, 1),
		EndDate:   date(2026, time.March, 31),
	}}
	for i := 0; i < n; i++ {
		start := date(2026, time.January, 1).AddDays(i * 14)
		cycles = append(cycles, planning.Cycle{
			ID:            planning.CycleID("q1-it" + string(rune('1'+i))),
			Type:          planning.CycleIteration,
			StartDate:     start,
			EndDate:       start.AddDays(13),
			ParentCycleID: "q1",
		})
	}
	return cycles
}

var testEpics = []planning.Epic{
	{ID: "epic-auth", ProjectID: "proj-portal", Name: "Authentication"},
	{ID: "epic-search", ProjectID: "proj-portal", Name: "Search"},
	{ID: "epic-billing", ProjectID: "proj-billing", Name: "Billing Engine"},
}

// =============================================================================
// AGGREGATION TESTS
// =============================================================================

func TestAggregate_IterationAllocations_Averaged(t *testing.T) {
	// GIVEN: 6 iterations, team allocated 100% to the same epic in each
	// WHEN: Aggregating at quarter level
	// THEN: One group at 100% (average), never 600%

	cycles := q1Cycles(6)
	var allocs []planning.Allocation
	for i := 1; i <= 6; i++ {
		allocs = append(allocs, planning.Allocation{
			ID:              planning.AllocationID("a" + string(rune('0'+i))),
			TeamID:          "team-1",
			CycleID:         planning.CycleID("q1-it" + string(rune('0'+i))),
			IterationNumber: i,
			Percentage:      100,
			EpicID:          "epic-auth",
		})
	}

	result := allocation.AggregateTeamPeriodAllocations("team-1", "q1", allocs, cycles, testEpics)

	if len(result) != 1 {
		t.Fatalf("expected 1 group, got %d", len(result))
	}
	if result[0].Percentage != 100 {
		t.Errorf("expected 100%% (averaged), got %v", result[0].Percentage)
	}
	if result[0].GroupKey != "project-proj-portal" {
		t.Errorf("expected project group key, got %s", result[0].GroupKey)
	}
}

func TestAggregate_QuarterAllocations_Summed(t *testing.T) {
	// GIVEN: Two independent quarter-level allocations to different epics
	// WHEN: Aggregating at quarter level
	// THEN: 30% + 20% = 50% total across two groups

	cycles := q1Cycles(6)
	allocs := []planning.Allocation{
		{ID: "a1", TeamID: "team-1", CycleID: "q1", Percentage: 30, EpicID: "epic-auth"},
		{ID: "a2", TeamID: "team-1", CycleID: "q1", Percentage: 20, EpicID: "epic-billing"},
	}

	result := allocation.AggregateTeamPeriodAllocations("team-1", "q1", allocs, cycles, testEpics)

	if len(result) != 2 {
		t.Fatalf("expected 2 groups, got %d", len(result))
	}
	var total float64
	for _, r := range result {
		total += r.Percentage
	}
	if total != 50 {
		t.Errorf("expected 50%% total, got %v", total)
	}
}

func TestAggregate_SameProjectQuarterEntries_Summed(t *testing.T) {
	// GIVEN: Two quarter-level allocations to epics of the same project
	// WHEN: Aggregating
	// THEN: One group summed to 50% (independent contributions, not samples)

	cycles := q1Cycles(6)
	allocs := []planning.Allocation{
		{ID: "a1", TeamID: "team-1", CycleID: "q1", Percentage: 30, EpicID: "epic-auth"},
		{ID: "a2", TeamID: "team-1", CycleID: "q1", Percentage: 20, EpicID: "epic-search"},
	}

	result := allocation.AggregateTeamPeriodAllocations("team-1", "q1", allocs, cycles, testEpics)

	if len(result) != 1 {
		t.Fatalf("expected 1 group (same project), got %d", len(result))
	}
	if result[0].Percentage != 50 {
		t.Errorf("expected 50%%, got %v", result[0].Percentage)
	}
}

func TestAggregate_MisclassifiedIterationSet_Averaged(t *testing.T) {
	// GIVEN: Quarter with exactly 6 iterations, and exactly 6 quarter-level
	//        records for the same team/project, each at 100%
	// WHEN: Aggregating
	// THEN: 100% (treated as a misclassified iteration set), not 600%

	cycles := q1Cycles(6)
	var allocs []planning.Allocation
	for i := 1; i <= 6; i++ {
		allocs = append(allocs, planning.Allocation{
			ID:              planning.AllocationID("a" + string(rune('0'+i))),
			TeamID:          "team-1",
			CycleID:         "q1",
			IterationNumber: i,
			Percentage:      100,
			EpicID:          "epic-auth",
		})
	}

	result := allocation.AggregateTeamPeriodAllocations("team-1", "q1", allocs, cycles, testEpics)

	if len(result) != 1 {
		t.Fatalf("expected 1 group, got %d", len(result))
	}
	if result[0].Percentage != 100 {
		t.Errorf("expected 100%% (averaged misclassified set), got %v", result[0].Percentage)
	}
}

func TestAggregate_MixedGranularity_AverageThenSum(t *testing.T) {
	// GIVEN: Iteration allocations averaging 40% on one project, plus a
	//        separate quarter-level run-work allocation of 20%
	// WHEN: Aggregating
	// THEN: Total allocated equals 60%

	cycles := q1Cycles(2)
	allocs := []planning.Allocation{
		{ID: "a1", TeamID: "team-1", CycleID: "q1-it1", IterationNumber: 1, Percentage: 30, EpicID: "epic-auth"},
		{ID: "a2", TeamID: "team-1", CycleID: "q1-it2", IterationNumber: 2, Percentage: 50, EpicID: "epic-auth"},
		{ID: "a3", TeamID: "team-1", CycleID: "q1", Percentage: 20, RunWorkCategoryID: "run-support"},
	}

	result := allocation.AggregateTeamPeriodAllocations("team-1", "q1", allocs, cycles, testEpics)

	var total float64
	for _, r := range result {
		total += r.Percentage
	}
	if total != 60 {
		t.Errorf("expected 60%% total (40 avg + 20 sum), got %v", total)
	}
}

func TestAggregate_MixedGranularity_SameGroup(t *testing.T) {
	// GIVEN: The same epic allocated both per-iteration and at quarter level
	// WHEN: Aggregating
	// THEN: One group: average of iterations plus sum of quarter records

	cycles := q1Cycles(2)
	allocs := []planning.Allocation{
		{ID: "a1", TeamID: "team-1", CycleID: "q1-it1", IterationNumber: 1, Percentage: 60, EpicID: "epic-auth"},
		{ID: "a2", TeamID: "team-1", CycleID: "q1-it2", IterationNumber: 2, Percentage: 20, EpicID: "epic-auth"},
		{ID: "a3", TeamID: "team-1", CycleID: "q1", Percentage: 10, EpicID: "epic-auth"},
	}

	result := allocation.AggregateTeamPeriodAllocations("team-1", "q1", allocs, cycles, testEpics)

	if len(result) != 1 {
		t.Fatalf("expected 1 group, got %d", len(result))
	}
	if result[0].Percentage != 50 {
		t.Errorf("expected 50%% (avg 40 + sum 10), got %v", result[0].Percentage)
	}
}

func TestAggregate_FallbackDateInference(t *testing.T) {
	// GIVEN: Iterations with no ParentCycleID, date ranges inside the
	//        quarter, no direct quarter-level records
	// WHEN: Aggregating
	// THEN: Iteration allocations are discovered via dates and averaged

	cycles := []planning.Cycle{
		{ID: "q1", Type: planning.CycleQuarterly,
			StartDate: date(2026, time.January, 1), EndDate: date(2026, time.March, 31)},
		{ID: "orphan-1", Type: planning.CycleIteration,
			StartDate: date(2026, time.January, 1), EndDate: date(2026, time.January, 14)},
		{ID: "orphan-2", Type: planning.CycleIteration,
			StartDate: date(2026, time.January, 15), EndDate: date(2026, time.January, 28)},
		// Outside the quarter: must not be picked up.
		{ID: "other", Type: planning.CycleIteration,
			StartDate: date(2026, time.April, 1), EndDate: date(2026, time.April, 14)},
	}
	allocs := []planning.Allocation{
		{ID: "a1", TeamID: "team-1", CycleID: "orphan-1", IterationNumber: 1, Percentage: 80, EpicID: "epic-auth"},
		{ID: "a2", TeamID: "team-1", CycleID: "orphan-2", IterationNumber: 2, Percentage: 40, EpicID: "epic-auth"},
		{ID: "a3", TeamID: "team-1", CycleID: "other", IterationNumber: 1, Percentage: 100, EpicID: "epic-auth"},
	}

	result := allocation.AggregateTeamPeriodAllocations("team-1", "q1", allocs, cycles, testEpics)

	if len(result) != 1 {
		t.Fatalf("expected 1 group via date inference, got %d", len(result))
	}
	if result[0].Percentage != 60 {
		t.Errorf("expected 60%% (avg of 80 and 40), got %v", result[0].Percentage)
	}
}

func TestAggregate_Idempotent(t *testing.T) {
	// GIVEN: A fixed input set
	// WHEN: Aggregating twice
	// THEN: Identical output both times (pure function, no hidden state)

	cycles := q1Cycles(3)
	allocs := []planning.Allocation{
		{ID: "a1", TeamID: "team-1", CycleID: "q1-it1", IterationNumber: 1, Percentage: 50, EpicID: "epic-auth"},
		{ID: "a2", TeamID: "team-1", CycleID: "q1", Percentage: 25, RunWorkCategoryID: "run-support"},
		{ID: "a3", TeamID: "team-1", CycleID: "q1", Percentage: 10, Notes: "Quick allocation to Data Platform"},
	}

	first := allocation.AggregateTeamPeriodAllocations("team-1", "q1", allocs, cycles, testEpics)
	second := allocation.AggregateTeamPeriodAllocations("team-1", "q1", allocs, cycles, testEpics)

	if !reflect.DeepEqual(first, second) {
		t.Errorf("aggregation not idempotent:\nfirst:  %+v\nsecond: %+v", first, second)
	}
}

func TestAggregate_NoteRecovery(t *testing.T) {
	// GIVEN: An allocation with no epic/category but a quick-entry note
	// WHEN: Aggregating
	// THEN: Grouped under the project name recovered from the note

	cycles := q1Cycles(2)
	allocs := []planning.Allocation{
		{ID: "a1", TeamID: "team-1", CycleID: "q1", Percentage: 15, Notes: "Quick allocation to Data Platform"},
		{ID: "a2", TeamID: "team-1", CycleID: "q1", Percentage: 10, Notes: "Quick allocation to Data Platform"},
	}

	result := allocation.AggregateTeamPeriodAllocations("team-1", "q1", allocs, cycles, testEpics)

	if len(result) != 1 {
		t.Fatalf("expected 1 group from note recovery, got %d", len(result))
	}
	if result[0].GroupKey != "project-Data Platform" {
		t.Errorf("expected recovered project key, got %s", result[0].GroupKey)
	}
	if result[0].Percentage != 25 {
		t.Errorf("expected 25%% (summed quarter records), got %v", result[0].Percentage)
	}
}

func TestAggregate_UnknownEpic_GroupsAlone(t *testing.T) {
	// GIVEN: Allocations referencing an epic missing from the epic list
	// WHEN: Aggregating
	// THEN: Each record groups alone under a per-allocation key

	cycles := q1Cycles(2)
	allocs := []planning.Allocation{
		{ID: "a1", TeamID: "team-1", CycleID: "q1", Percentage: 10, EpicID: "epic-ghost"},
		{ID: "a2", TeamID: "team-1", CycleID: "q1", Percentage: 20, EpicID: "epic-ghost"},
	}

	result := allocation.AggregateTeamPeriodAllocations("team-1", "q1", allocs, cycles, testEpics)

	if len(result) != 2 {
		t.Fatalf("expected 2 standalone groups, got %d", len(result))
	}
}

func TestAggregate_OtherTeamsIgnored(t *testing.T) {
	cycles := q1Cycles(2)
	allocs := []planning.Allocation{
		{ID: "a1", TeamID: "team-1", CycleID: "q1", Percentage: 30, EpicID: "epic-auth"},
		{ID: "a2", TeamID: "team-2", CycleID: "q1", Percentage: 90, EpicID: "epic-auth"},
	}

	result := allocation.AggregateTeamPeriodAllocations("team-1", "q1", allocs, cycles, testEpics)

	if len(result) != 1 || result[0].Percentage != 30 {
		t.Errorf("expected only team-1's 30%%, got %+v", result)
	}
}

func TestAggregate_EmptyInput(t *testing.T) {
	result := allocation.AggregateTeamPeriodAllocations("team-1", "q1", nil, nil, nil)
	if len(result) != 0 {
		t.Errorf("expected empty result, got %+v", result)
	}
}

// =============================================================================
// ITERATION LOOKUP TESTS
// =============================================================================

func TestIterationAllocations_DirectFilter(t *testing.T) {
	allocs := []planning.Allocation{
		{ID: "a1", TeamID: "team-1", CycleID: "q1-it2", IterationNumber: 2, Percentage: 50},
		{ID: "a2", TeamID: "team-1", CycleID: "q1-it3", IterationNumber: 3, Percentage: 50},
		{ID: "a3", TeamID: "team-2", CycleID: "q1-it2", IterationNumber: 2, Percentage: 50},
	}

	result := allocation.IterationAllocations("team-1", 2, allocs)

	if len(result) != 1 || result[0].ID != "a1" {
		t.Errorf("expected only a1, got %+v", result)
	}
}
