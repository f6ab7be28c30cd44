/*
scenarios.go - Demo scenario loaders for testing and demonstrations

PURPOSE:

	Provides pre-built scenarios that populate the database with realistic
	data for testing and demos. Each scenario creates teams, people, cycles,
	projects, and allocations that demonstrate specific features.

AVAILABLE SCENARIOS:

	balanced-quarter:  Two teams fully but not over-allocated for a quarter
	over-allocated:    A team committed past 100% of its capacity
	mixed-granularity: Quarter-level and iteration-level records coexisting
	skill-gaps:        A project requiring skills the org partly lacks

HOW SCENARIOS WORK:
 1. Reset database (clear all data)
 2. Create roles, teams, people
 3. Create the cycle tree (quarter + iterations)
 4. Create projects, epics, run work categories
 5. Record allocations (and skills where relevant)

USAGE VIA API:

	POST /api/scenarios/load
	{"scenario_id": "over-allocated"}

ADDING NEW SCENARIOS:
 1. Add to 'scenarios' slice with ID, name, description
 2. Create loader function: loadXxxScenario(ctx)
 3. Add case to LoadScenario handler

NOTE:

	Scenarios reset the database. Only use in development/demo environments.

SEE ALSO:
  - handlers.go: LoadScenario, ListScenarios handlers
*/
package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/shopspring/decimal"

	"github.com/warp/planning-engine/planning"
)

// =============================================================================
// SCENARIO DEFINITIONS
// =============================================================================

var scenarios = []ScenarioDTO{
	{
		ID:          "balanced-quarter",
		Name:        "Balanced Quarter",
		Description: "Two teams fully allocated across projects and run work",
		Category:    "capacity",
	},
	{
		ID:          "over-allocated",
		Name:        "Over-Allocated Team",
		Description: "A team committed past 100% of its capacity",
		Category:    "capacity",
	},
	{
		ID:          "mixed-granularity",
		Name:        "Mixed Granularity",
		Description: "Quarter-level and iteration-level allocations for the same quarter",
		Category:    "capacity",
	},
	{
		ID:          "skill-gaps",
		Name:        "Skill Gaps",
		Description: "A project requiring skills the organization partly lacks",
		Category:    "skills",
	},
}

// =============================================================================
// SCENARIO HANDLERS
// =============================================================================

// ListScenarios returns the available demo scenarios.
func (h *Handler) ListScenarios(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, scenarios)
}

// GetCurrentScenario returns the currently loaded scenario, if any.
func (h *Handler) GetCurrentScenario(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"scenario_id": h.currentScenario})
}

// LoadScenario resets the database and loads the selected scenario.
func (h *Handler) LoadScenario(w http.ResponseWriter, r *http.Request) {
	var req LoadScenarioRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	ctx := r.Context()
	if err := h.Store.Reset(ctx); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to reset database", err)
		return
	}

	var err error
	switch req.ScenarioID {
	case "balanced-quarter":
		err = h.loadBalancedQuarterScenario(ctx)
	case "over-allocated":
		err = h.loadOverAllocatedScenario(ctx)
	case "mixed-granularity":
		err = h.loadMixedGranularityScenario(ctx)
	case "skill-gaps":
		err = h.loadSkillGapsScenario(ctx)
	default:
		writeError(w, http.StatusBadRequest, fmt.Sprintf("Unknown scenario: %s", req.ScenarioID), nil)
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to load scenario", err)
		return
	}

	h.currentScenario = req.ScenarioID
	writeJSON(w, http.StatusOK, map[string]any{
		"status":      "loaded",
		"scenario_id": req.ScenarioID,
	})
}

// ResetDatabase clears everything without loading a scenario.
func (h *Handler) ResetDatabase(w http.ResponseWriter, r *http.Request) {
	if err := h.Store.Reset(r.Context()); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to reset database", err)
		return
	}
	h.currentScenario = ""
	writeJSON(w, http.StatusOK, map[string]any{"status": "reset"})
}

// =============================================================================
// SHARED FIXTURES
// =============================================================================

// loadQ1CycleTree creates Q1 2026 with six two-week iterations.
func (h *Handler) loadQ1CycleTree(ctx context.Context) error {
	quarter := planning.Cycle{
		ID: "q1-2026", Name: "Q1 2026", Type: planning.CycleQuarterly,
		StartDate: planning.NewDate(2026, 1, 1),
		EndDate:   planning.NewDate(2026, 3, 31),
	}
	if err := h.Store.SaveCycle(ctx, quarter); err != nil {
		return err
	}
	for i := 0; i < 6; i++ {
		start := quarter.StartDate.AddDays(i * 14)
		it := planning.Cycle{
			ID:            planning.CycleID(fmt.Sprintf("q1-2026-it%d", i+1)),
			Name:          fmt.Sprintf("Iteration %d", i+1),
			Type:          planning.CycleIteration,
			StartDate:     start,
			EndDate:       start.AddDays(13),
			ParentCycleID: quarter.ID,
		}
		if err := h.Store.SaveCycle(ctx, it); err != nil {
			return err
		}
	}
	return nil
}

// loadEngineeringOrg creates the standard roles, two teams, and their people.
func (h *Handler) loadEngineeringOrg(ctx context.Context) error {
	roles := []planning.Role{
		{ID: "role-eng", Name: "Engineer", WeeklyRate: decimal.NewFromInt(3000)},
		{ID: "role-qa", Name: "QA Analyst", WeeklyRate: decimal.NewFromInt(2000)},
	}
	for _, role := range roles {
		if err := h.Store.SaveRole(ctx, role); err != nil {
			return err
		}
	}

	teams := []planning.Team{
		{ID: "team-platform", Name: "Platform", Capacity: 40, DivisionID: "div-eng"},
		{ID: "team-growth", Name: "Growth", Capacity: 40, DivisionID: "div-eng"},
	}
	for _, team := range teams {
		if err := h.Store.SaveTeam(ctx, team); err != nil {
			return err
		}
	}

	people := []planning.Person{
		{ID: "person-ana", Name: "Ana Reyes", TeamID: "team-platform", RoleID: "role-eng"},
		{ID: "person-ben", Name: "Ben Okafor", TeamID: "team-platform", RoleID: "role-eng"},
		{ID: "person-cara", Name: "Cara Lindqvist", TeamID: "team-platform", RoleID: "role-qa"},
		{ID: "person-dev", Name: "Dev Patel", TeamID: "team-growth", RoleID: "role-eng"},
		{ID: "person-emi", Name: "Emi Tanaka", TeamID: "team-growth", RoleID: "role-qa"},
	}
	for _, p := range people {
		if err := h.Store.SavePerson(ctx, p); err != nil {
			return err
		}
	}
	return nil
}

// loadPortfolio creates the standard projects, epics, and run work category.
func (h *Handler) loadPortfolio(ctx context.Context) error {
	projects := []planning.Project{
		{ID: "proj-portal", Name: "Customer Portal", Status: planning.ProjectActive,
			Budget: decimal.NewFromInt(150000)},
		{ID: "proj-billing", Name: "Billing Revamp", Status: planning.ProjectActive,
			Budget: decimal.NewFromInt(100000)},
	}
	for _, p := range projects {
		if err := h.Store.SaveProject(ctx, p); err != nil {
			return err
		}
	}

	epics := []planning.Epic{
		{ID: "epic-auth", ProjectID: "proj-portal", Name: "Authentication"},
		{ID: "epic-search", ProjectID: "proj-portal", Name: "Search"},
		{ID: "epic-invoicing", ProjectID: "proj-billing", Name: "Invoicing"},
	}
	for _, e := range epics {
		if err := h.Store.SaveEpic(ctx, e); err != nil {
			return err
		}
	}

	return h.Store.SaveRunWorkCategory(ctx, planning.RunWorkCategory{
		ID: "rw-support", Name: "Production Support",
	})
}

func (h *Handler) saveAllocations(ctx context.Context, allocations []planning.Allocation) error {
	for _, a := range allocations {
		if err := h.Store.SaveAllocation(ctx, a); err != nil {
			return err
		}
	}
	return nil
}

// =============================================================================
// SCENARIO: BALANCED QUARTER
// =============================================================================

func (h *Handler) loadBalancedQuarterScenario(ctx context.Context) error {
	if err := h.loadEngineeringOrg(ctx); err != nil {
		return err
	}
	if err := h.loadQ1CycleTree(ctx); err != nil {
		return err
	}
	if err := h.loadPortfolio(ctx); err != nil {
		return err
	}

	return h.saveAllocations(ctx, []planning.Allocation{
		{ID: "alloc-1", TeamID: "team-platform", CycleID: "q1-2026", Percentage: 60, EpicID: "epic-auth"},
		{ID: "alloc-2", TeamID: "team-platform", CycleID: "q1-2026", Percentage: 40, RunWorkCategoryID: "rw-support"},
		{ID: "alloc-3", TeamID: "team-growth", CycleID: "q1-2026", Percentage: 70, EpicID: "epic-invoicing"},
		{ID: "alloc-4", TeamID: "team-growth", CycleID: "q1-2026", Percentage: 30, EpicID: "epic-search"},
	})
}

// =============================================================================
// SCENARIO: OVER-ALLOCATED TEAM
// =============================================================================

func (h *Handler) loadOverAllocatedScenario(ctx context.Context) error {
	if err := h.loadEngineeringOrg(ctx); err != nil {
		return err
	}
	if err := h.loadQ1CycleTree(ctx); err != nil {
		return err
	}
	if err := h.loadPortfolio(ctx); err != nil {
		return err
	}

	// Platform commits to 130% across three work items.
	return h.saveAllocations(ctx, []planning.Allocation{
		{ID: "alloc-1", TeamID: "team-platform", CycleID: "q1-2026", Percentage: 60, EpicID: "epic-auth"},
		{ID: "alloc-2", TeamID: "team-platform", CycleID: "q1-2026", Percentage: 40, EpicID: "epic-invoicing"},
		{ID: "alloc-3", TeamID: "team-platform", CycleID: "q1-2026", Percentage: 30, RunWorkCategoryID: "rw-support"},
		{ID: "alloc-4", TeamID: "team-growth", CycleID: "q1-2026", Percentage: 50, EpicID: "epic-search"},
	})
}

// =============================================================================
// SCENARIO: MIXED GRANULARITY
// =============================================================================

func (h *Handler) loadMixedGranularityScenario(ctx context.Context) error {
	if err := h.loadEngineeringOrg(ctx); err != nil {
		return err
	}
	if err := h.loadQ1CycleTree(ctx); err != nil {
		return err
	}
	if err := h.loadPortfolio(ctx); err != nil {
		return err
	}

	// Platform plans per iteration on auth (averages to 40%) while carrying
	// a quarter-level run work commitment (sums with the rest).
	allocations := []planning.Allocation{
		{ID: "alloc-q", TeamID: "team-platform", CycleID: "q1-2026", Percentage: 30, RunWorkCategoryID: "rw-support"},
	}
	for i := 1; i <= 6; i++ {
		allocations = append(allocations, planning.Allocation{
			ID:         planning.AllocationID(fmt.Sprintf("alloc-it%d", i)),
			TeamID:     "team-platform",
			CycleID:    planning.CycleID(fmt.Sprintf("q1-2026-it%d", i)),
			Percentage: 40,
			EpicID:     "epic-auth",
		})
	}
	return h.saveAllocations(ctx, allocations)
}

// =============================================================================
// SCENARIO: SKILL GAPS
// =============================================================================

func (h *Handler) loadSkillGapsScenario(ctx context.Context) error {
	if err := h.loadEngineeringOrg(ctx); err != nil {
		return err
	}
	if err := h.loadQ1CycleTree(ctx); err != nil {
		return err
	}
	if err := h.loadPortfolio(ctx); err != nil {
		return err
	}

	skillList := []planning.Skill{
		{ID: "skill-go", Name: "Go", Category: "engineering"},
		{ID: "skill-sql", Name: "SQL", Category: "engineering"},
		{ID: "skill-ml", Name: "Machine Learning", Category: "data"},
	}
	for _, s := range skillList {
		if err := h.Store.SaveSkill(ctx, s); err != nil {
			return err
		}
	}

	held := []planning.PersonSkill{
		{ID: "ps-1", PersonID: "person-ana", SkillID: "skill-go", Proficiency: planning.ProficiencyAdvanced},
		{ID: "ps-2", PersonID: "person-ben", SkillID: "skill-sql", Proficiency: planning.ProficiencyIntermediate},
	}
	for _, ps := range held {
		if err := h.Store.SavePersonSkill(ctx, ps); err != nil {
			return err
		}
	}

	// Billing Revamp needs Go+SQL via its solution, plus ML nobody holds.
	if err := h.Store.SaveSolution(ctx, planning.Solution{
		ID: "sol-data-platform", Name: "Data Platform",
		SkillIDs: []planning.SkillID{"skill-go", "skill-sql", "skill-ml"},
	}); err != nil {
		return err
	}
	return h.Store.SaveProjectSolution(ctx, planning.ProjectSolution{
		ID: "psol-1", ProjectID: "proj-billing", SolutionID: "sol-data-platform",
		Importance: planning.ImportanceHigh,
	})
}
