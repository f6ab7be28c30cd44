/*
handlers_test.go - Unit tests for API handlers

Tests for:
- Capacity endpoint (quarter and iteration periods, over-allocation flag)
- Cost and financial endpoints
- Skill coverage and compatibility endpoints
- Scenario loading
*/
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/warp/planning-engine/planning"
	"github.com/warp/planning-engine/planning/store"
)

// =============================================================================
// TEST SETUP
// =============================================================================

func newTestServer(t *testing.T) (*Handler, *httptest.Server) {
	t.Helper()
	h := NewHandler(store.NewMemory())
	srv := httptest.NewServer(NewRouter(h))
	t.Cleanup(srv.Close)
	return h, srv
}

func getJSON(t *testing.T, url string, out any) int {
	t.Helper()
	resp, err := http.Get(url)
	if err != nil {
		t.Fatalf("GET %s failed: %v", url, err)
	}
	defer resp.Body.Close()
	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			t.Fatalf("decoding %s response: %v", url, err)
		}
	}
	return resp.StatusCode
}

func postJSON(t *testing.T, url string, body any, out any) int {
	t.Helper()
	buf, err := json.Marshal(body)
	if err != nil {
		t.Fatalf("encoding request: %v", err)
	}
	resp, err := http.Post(url, "application/json", bytes.NewReader(buf))
	if err != nil {
		t.Fatalf("POST %s failed: %v", url, err)
	}
	defer resp.Body.Close()
	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			t.Fatalf("decoding %s response: %v", url, err)
		}
	}
	return resp.StatusCode
}

// seedQuarterWithTeam creates a team, a quarter, and epic wiring directly in
// the store so capacity endpoints have something to compute over.
func seedQuarterWithTeam(t *testing.T, h *Handler) {
	t.Helper()
	ctx := context.Background()

	must := func(err error) {
		t.Helper()
		if err != nil {
			t.Fatalf("seeding store: %v", err)
		}
	}

	must(h.Store.SaveTeam(ctx, planning.Team{ID: "team-1", Name: "Platform", Capacity: 40}))
	must(h.Store.SaveCycle(ctx, planning.Cycle{
		ID: "q1-2026", Name: "Q1 2026", Type: planning.CycleQuarterly,
		StartDate: planning.NewDate(2026, 1, 1), EndDate: planning.NewDate(2026, 3, 31),
	}))
	must(h.Store.SaveProject(ctx, planning.Project{ID: "proj-1", Name: "Portal", Budget: decimal.NewFromInt(200000)}))
	must(h.Store.SaveEpic(ctx, planning.Epic{ID: "epic-1", ProjectID: "proj-1", Name: "Auth"}))
}

// =============================================================================
// CAPACITY ENDPOINT TESTS
// =============================================================================

func TestGetTeamCapacity_QuarterSum(t *testing.T) {
	// GIVEN: Two quarter-level allocations to different work items
	// WHEN: Requesting quarter capacity
	// THEN: Percentages sum; not over-allocated

	h, srv := newTestServer(t)
	seedQuarterWithTeam(t, h)
	ctx := context.Background()

	h.Store.SaveAllocation(ctx, planning.Allocation{
		ID: "a1", TeamID: "team-1", CycleID: "q1-2026", Percentage: 60, EpicID: "epic-1"})
	h.Store.SaveAllocation(ctx, planning.Allocation{
		ID: "a2", TeamID: "team-1", CycleID: "q1-2026", Percentage: 30, Notes: "Quick allocation to Search"})

	var dto CapacityDTO
	status := getJSON(t, srv.URL+"/api/teams/team-1/capacity?quarter=q1-2026", &dto)

	if status != http.StatusOK {
		t.Fatalf("expected 200, got %d", status)
	}
	if dto.Allocated != 90 {
		t.Errorf("expected 90%% allocated, got %v", dto.Allocated)
	}
	if dto.Available != 10 {
		t.Errorf("expected 10%% available, got %v", dto.Available)
	}
	if dto.IsOverAllocated {
		t.Error("should not be over-allocated at 90%")
	}
	if dto.AllocatedHours != 36 {
		t.Errorf("expected 36 allocated hours (90%% of 40), got %v", dto.AllocatedHours)
	}
	if len(dto.Allocations) != 2 {
		t.Errorf("expected 2 effective allocations, got %d", len(dto.Allocations))
	}
}

func TestGetTeamCapacity_OverAllocated(t *testing.T) {
	h, srv := newTestServer(t)
	seedQuarterWithTeam(t, h)
	ctx := context.Background()

	h.Store.SaveAllocation(ctx, planning.Allocation{
		ID: "a1", TeamID: "team-1", CycleID: "q1-2026", Percentage: 80, EpicID: "epic-1"})
	h.Store.SaveAllocation(ctx, planning.Allocation{
		ID: "a2", TeamID: "team-1", CycleID: "q1-2026", Percentage: 50, RunWorkCategoryID: "rw-support"})

	var dto CapacityDTO
	getJSON(t, srv.URL+"/api/teams/team-1/capacity?quarter=q1-2026", &dto)

	if !dto.IsOverAllocated {
		t.Error("expected over-allocation flag at 130%")
	}
	if dto.Available != 0 {
		t.Errorf("available should floor at 0, got %v", dto.Available)
	}
}

func TestGetTeamCapacity_IterationPeriod(t *testing.T) {
	// GIVEN: Iteration-tagged records for slots 1 and 2
	// WHEN: Requesting capacity for iteration 1
	// THEN: Only slot-1 records count, percentages raw

	h, srv := newTestServer(t)
	seedQuarterWithTeam(t, h)
	ctx := context.Background()

	h.Store.SaveAllocation(ctx, planning.Allocation{
		ID: "a1", TeamID: "team-1", CycleID: "q1-2026-it1", IterationNumber: 1, Percentage: 70, EpicID: "epic-1"})
	h.Store.SaveAllocation(ctx, planning.Allocation{
		ID: "a2", TeamID: "team-1", CycleID: "q1-2026-it2", IterationNumber: 2, Percentage: 90, EpicID: "epic-1"})

	var dto CapacityDTO
	getJSON(t, srv.URL+"/api/teams/team-1/capacity?iteration=1", &dto)

	if dto.Allocated != 70 {
		t.Errorf("expected 70%% for iteration 1, got %v", dto.Allocated)
	}
}

func TestGetTeamCapacity_MissingPeriod(t *testing.T) {
	h, srv := newTestServer(t)
	seedQuarterWithTeam(t, h)

	status := getJSON(t, srv.URL+"/api/teams/team-1/capacity", nil)

	if status != http.StatusBadRequest {
		t.Errorf("expected 400 without a period, got %d", status)
	}
}

func TestGetTeamCapacity_UnknownTeam(t *testing.T) {
	_, srv := newTestServer(t)

	status := getJSON(t, srv.URL+"/api/teams/nope/capacity?quarter=q1-2026", nil)

	if status != http.StatusNotFound {
		t.Errorf("expected 404 for unknown team, got %d", status)
	}
}

// =============================================================================
// COST AND FINANCIAL ENDPOINT TESTS
// =============================================================================

func TestGetTeamCost(t *testing.T) {
	// GIVEN: Two engineers at $3000/wk
	// WHEN: Requesting team cost
	// THEN: $6000 weekly, one role group

	h, srv := newTestServer(t)
	seedQuarterWithTeam(t, h)
	ctx := context.Background()

	h.Store.SaveRole(ctx, planning.Role{ID: "role-eng", Name: "Engineer", WeeklyRate: decimal.NewFromInt(3000)})
	h.Store.SavePerson(ctx, planning.Person{ID: "p1", Name: "Ana", TeamID: "team-1", RoleID: "role-eng"})
	h.Store.SavePerson(ctx, planning.Person{ID: "p2", Name: "Ben", TeamID: "team-1", RoleID: "role-eng"})

	var dto CostBreakdownDTO
	status := getJSON(t, srv.URL+"/api/teams/team-1/cost", &dto)

	if status != http.StatusOK {
		t.Fatalf("expected 200, got %d", status)
	}
	if dto.TotalWeeklyCost != "6000" {
		t.Errorf("expected weekly cost 6000, got %s", dto.TotalWeeklyCost)
	}
	if len(dto.RoleBreakdown) != 1 || dto.RoleBreakdown[0].Headcount != 2 {
		t.Errorf("expected one role with headcount 2, got %+v", dto.RoleBreakdown)
	}
	if dto.Display != "$6,000" {
		t.Errorf("expected formatted $6,000, got %s", dto.Display)
	}
}

func TestGetQuarterFinancials(t *testing.T) {
	// GIVEN: A 50%-allocated team costing $4000/wk over a 13-week quarter
	// WHEN: Requesting quarter financials with a $30000 budget
	// THEN: $26000 spend -> under budget (ratio 0.867)

	h, srv := newTestServer(t)
	seedQuarterWithTeam(t, h)
	ctx := context.Background()

	h.Store.SaveRole(ctx, planning.Role{ID: "role-eng", Name: "Engineer", WeeklyRate: decimal.NewFromInt(4000)})
	h.Store.SavePerson(ctx, planning.Person{ID: "p1", Name: "Ana", TeamID: "team-1", RoleID: "role-eng"})
	h.Store.SaveAllocation(ctx, planning.Allocation{
		ID: "a1", TeamID: "team-1", CycleID: "q1-2026", Percentage: 50, EpicID: "epic-1"})

	var dto QuarterFinancialsDTO
	status := getJSON(t, srv.URL+"/api/quarters/q1-2026/financials?budget=30000", &dto)

	if status != http.StatusOK {
		t.Fatalf("expected 200, got %d", status)
	}
	if dto.TotalCost != "26000" {
		t.Errorf("expected total 26000, got %s", dto.TotalCost)
	}
	if dto.Status != "under" {
		t.Errorf("expected under budget, got %s", dto.Status)
	}
	if len(dto.TeamCosts) != 1 || dto.TeamCosts[0].Allocated != 50 {
		t.Errorf("unexpected team costs: %+v", dto.TeamCosts)
	}
}

// =============================================================================
// SKILLS ENDPOINT TESTS
// =============================================================================

func TestGetProjectSkillsAndCompatibility(t *testing.T) {
	// GIVEN: The skill-gaps scenario
	// WHEN: Requesting billing project skills and compatibility
	// THEN: ML is missing; platform team scores partial credit

	h, srv := newTestServer(t)
	if err := h.loadSkillGapsScenario(context.Background()); err != nil {
		t.Fatalf("loading scenario: %v", err)
	}

	var coverage []SkillCoverageDTO
	status := getJSON(t, srv.URL+"/api/projects/proj-billing/skills", &coverage)
	if status != http.StatusOK {
		t.Fatalf("expected 200, got %d", status)
	}
	if len(coverage) != 3 {
		t.Fatalf("expected 3 requirements, got %d", len(coverage))
	}

	byID := make(map[string]SkillCoverageDTO)
	for _, c := range coverage {
		byID[c.Requirement.SkillID] = c
	}
	if byID["skill-ml"].Status != "missing" {
		t.Errorf("expected ML missing, got %s", byID["skill-ml"].Status)
	}
	if byID["skill-ml"].HolderCount != 0 {
		t.Errorf("expected no ML holders, got %d", byID["skill-ml"].HolderCount)
	}

	var compat []CompatibilityDTO
	status = getJSON(t, srv.URL+"/api/projects/proj-billing/compatibility?team=team-platform", &compat)
	if status != http.StatusOK {
		t.Fatalf("expected 200, got %d", status)
	}
	if len(compat) != 1 {
		t.Fatalf("expected one team scored, got %d", len(compat))
	}
	// Platform members hold Go and SQL of the three required skills.
	if compat[0].SkillsMatched != 2 || compat[0].SkillsRequired != 3 {
		t.Errorf("expected 2/3 matched, got %d/%d", compat[0].SkillsMatched, compat[0].SkillsRequired)
	}
}

// =============================================================================
// CRUD AND SCENARIO TESTS
// =============================================================================

func TestCreateAllocation_GeneratesID(t *testing.T) {
	h, srv := newTestServer(t)
	seedQuarterWithTeam(t, h)

	var dto AllocationDTO
	status := postJSON(t, srv.URL+"/api/allocations", CreateAllocationRequest{
		TeamID: "team-1", CycleID: "q1-2026", Percentage: 25, EpicID: "epic-1",
	}, &dto)

	if status != http.StatusCreated {
		t.Fatalf("expected 201, got %d", status)
	}
	if dto.ID == "" {
		t.Error("expected generated allocation id")
	}
}

func TestCreateAllocation_NegativePercentage_Rejected(t *testing.T) {
	h, srv := newTestServer(t)
	seedQuarterWithTeam(t, h)

	status := postJSON(t, srv.URL+"/api/allocations", CreateAllocationRequest{
		TeamID: "team-1", CycleID: "q1-2026", Percentage: -10,
	}, nil)

	if status != http.StatusBadRequest {
		t.Errorf("expected 400 for negative percentage, got %d", status)
	}
}

func TestCreateCycle_EndBeforeStart_Rejected(t *testing.T) {
	_, srv := newTestServer(t)

	status := postJSON(t, srv.URL+"/api/cycles", CycleDTO{
		ID: "bad", Type: "quarterly", StartDate: "2026-03-31", EndDate: "2026-01-01",
	}, nil)

	if status != http.StatusBadRequest {
		t.Errorf("expected 400 for inverted dates, got %d", status)
	}
}

func TestLoadScenario_OverAllocated(t *testing.T) {
	// GIVEN: A fresh server
	// WHEN: Loading the over-allocated scenario via the API
	// THEN: Platform's quarter capacity reports over-allocation

	_, srv := newTestServer(t)

	status := postJSON(t, srv.URL+"/api/scenarios/load", LoadScenarioRequest{
		ScenarioID: "over-allocated",
	}, nil)
	if status != http.StatusOK {
		t.Fatalf("expected 200 loading scenario, got %d", status)
	}

	var dto CapacityDTO
	getJSON(t, srv.URL+"/api/teams/team-platform/capacity?quarter=q1-2026", &dto)

	if !dto.IsOverAllocated {
		t.Errorf("expected platform over-allocated, got %v%%", dto.Allocated)
	}

	var current map[string]string
	getJSON(t, srv.URL+"/api/scenarios/current", &current)
	if current["scenario_id"] != "over-allocated" {
		t.Errorf("expected current scenario tracked, got %q", current["scenario_id"])
	}
}

func TestLoadScenario_MixedGranularity(t *testing.T) {
	// Iteration records average (40%) and stack with the quarter-level run
	// work (30%) for an effective 70%.
	_, srv := newTestServer(t)

	postJSON(t, srv.URL+"/api/scenarios/load", LoadScenarioRequest{
		ScenarioID: "mixed-granularity",
	}, nil)

	var dto CapacityDTO
	getJSON(t, srv.URL+"/api/teams/team-platform/capacity?quarter=q1-2026", &dto)

	if dto.Allocated != 70 {
		t.Errorf("expected 70%% effective allocation, got %v", dto.Allocated)
	}
	if len(dto.Allocations) != 2 {
		t.Errorf("expected 2 effective work items, got %d", len(dto.Allocations))
	}
}

func TestLoadScenario_Unknown(t *testing.T) {
	_, srv := newTestServer(t)

	status := postJSON(t, srv.URL+"/api/scenarios/load", LoadScenarioRequest{
		ScenarioID: "nope",
	}, nil)

	if status != http.StatusBadRequest {
		t.Errorf("expected 400 for unknown scenario, got %d", status)
	}
}
