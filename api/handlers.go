/*
handlers.go - HTTP API handlers for the capacity planning engine

PURPOSE:
  Exposes the planning engine via REST API. Handles HTTP request/response,
  JSON serialization, and delegates to the calculator packages.

ENDPOINTS:
  Teams:
    GET    /api/teams                   List all teams
    POST   /api/teams                   Create/update team
    GET    /api/teams/{id}              Get team details
    GET    /api/teams/{id}/capacity     Capacity check (?quarter= or ?iteration=)
    GET    /api/teams/{id}/cost         Cost breakdown by role

  Planning data:
    GET/POST /api/cycles                Quarters and iterations
    GET/POST /api/allocations           Allocation records
    DELETE   /api/allocations/{id}
    GET/POST /api/projects
    GET      /api/projects/{id}
    GET/POST /api/people
    GET/POST /api/roles
    GET/POST /api/skills

  Analysis:
    GET /api/projects/{id}/skills        Required skills + org coverage
    GET /api/projects/{id}/compatibility Team-project fit (?team= optional)
    GET /api/quarters/{id}/financials    Cost rollup vs. budget

  Scenarios:
    GET  /api/scenarios                 List demo scenarios
    POST /api/scenarios/load            Load a demo scenario

ARCHITECTURE:
  Handler struct holds all dependencies:
  - Store: Database access (interface; SQLite in prod, memory in tests)
  - FinanceConfig / SkillsConfig: Named policy thresholds

REQUEST FLOW:
  1. Parse HTTP request
  2. Read a snapshot from the store
  3. Call calculator (allocation, finance, skills)
  4. Serialize response
  5. Handle errors

ERROR HANDLING:
  Errors are returned as JSON with appropriate HTTP status:
  - 400: Validation errors, invalid input
  - 404: Entity not found
  - 500: Internal errors

SECURITY NOTE:
  Currently NO authentication or authorization. All endpoints are public.

SEE ALSO:
  - dto.go: Request/response data structures
  - scenarios.go: Demo scenario loaders
  - server.go: Router setup and middleware
*/
package api

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/warp/planning-engine/allocation"
	"github.com/warp/planning-engine/finance"
	"github.com/warp/planning-engine/planning"
	"github.com/warp/planning-engine/skills"
)

// =============================================================================
// HANDLER CONTEXT
// =============================================================================

// Handler holds all dependencies for HTTP handlers.
type Handler struct {
	Store         planning.EntityStore
	FinanceConfig finance.Config
	SkillsConfig  skills.Config

	// Track currently loaded scenario
	currentScenario string
}

// NewHandler creates a new handler with the given store and default configs.
func NewHandler(store planning.EntityStore) *Handler {
	return &Handler{
		Store:         store,
		FinanceConfig: finance.DefaultConfig(),
		SkillsConfig:  skills.DefaultConfig(),
	}
}

// =============================================================================
// TEAM HANDLERS
// =============================================================================

// ListTeams returns all teams.
func (h *Handler) ListTeams(w http.ResponseWriter, r *http.Request) {
	teams, err := h.Store.ListTeams(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list teams", err)
		return
	}

	dtos := make([]TeamDTO, len(teams))
	for i, t := range teams {
		dtos[i] = toTeamDTO(t)
	}
	writeJSON(w, http.StatusOK, dtos)
}

// GetTeam returns a single team.
func (h *Handler) GetTeam(w http.ResponseWriter, r *http.Request) {
	id := planning.TeamID(chi.URLParam(r, "id"))

	team, err := h.Store.GetTeam(r.Context(), id)
	if err != nil {
		writeStoreError(w, "Failed to get team", err)
		return
	}
	writeJSON(w, http.StatusOK, toTeamDTO(team))
}

// CreateTeam creates or updates a team.
func (h *Handler) CreateTeam(w http.ResponseWriter, r *http.Request) {
	var req CreateTeamRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	if req.Name == "" {
		writeError(w, http.StatusBadRequest, "Team name is required", nil)
		return
	}
	if req.ID == "" {
		req.ID = "team-" + uuid.NewString()
	}

	team := planning.Team{
		ID:         planning.TeamID(req.ID),
		Name:       req.Name,
		Capacity:   req.Capacity,
		DivisionID: req.DivisionID,
	}
	for _, s := range req.TargetSkills {
		team.TargetSkills = append(team.TargetSkills, planning.SkillID(s))
	}

	if err := h.Store.SaveTeam(r.Context(), team); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to save team", err)
		return
	}
	writeJSON(w, http.StatusCreated, toTeamDTO(team))
}

// GetTeamCapacity returns the capacity check for a team and period.
// Query params: quarter=<cycle id> or iteration=<1-based number>.
func (h *Handler) GetTeamCapacity(w http.ResponseWriter, r *http.Request) {
	id := planning.TeamID(chi.URLParam(r, "id"))
	quarterID := r.URL.Query().Get("quarter")
	iterationStr := r.URL.Query().Get("iteration")

	var period allocation.Period
	var periodLabel string
	switch {
	case quarterID != "" && iterationStr != "":
		writeError(w, http.StatusBadRequest, "Specify quarter or iteration, not both", nil)
		return
	case quarterID != "":
		period = allocation.QuarterPeriod(planning.CycleID(quarterID))
		periodLabel = quarterID
	case iterationStr != "":
		n, err := strconv.Atoi(iterationStr)
		if err != nil || n < 1 {
			writeError(w, http.StatusBadRequest, "Invalid iteration number", err)
			return
		}
		period = allocation.IterationPeriod(n)
		periodLabel = "iteration " + iterationStr
	default:
		writeError(w, http.StatusBadRequest, "Missing quarter or iteration parameter", nil)
		return
	}

	ctx := r.Context()
	team, err := h.Store.GetTeam(ctx, id)
	if err != nil {
		writeStoreError(w, "Failed to get team", err)
		return
	}
	snap, err := h.Store.Snapshot(ctx)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to read snapshot", err)
		return
	}

	check := allocation.CalculateTeamCapacity(team, period, snap.Allocations, snap.Cycles, snap.Epics)

	dto := CapacityDTO{
		TeamID:          string(team.ID),
		Period:          periodLabel,
		Allocated:       check.Allocated,
		Available:       check.Available,
		AllocatedHours:  check.AllocatedHours(team),
		IsOverAllocated: check.IsOverAllocated,
		Allocations:     make([]EffectiveAllocationDTO, len(check.Allocations)),
	}
	for i, e := range check.Allocations {
		dto.Allocations[i] = EffectiveAllocationDTO{
			ID:                string(e.ID),
			CycleID:           string(e.CycleID),
			Percentage:        e.Percentage,
			EpicID:            string(e.EpicID),
			RunWorkCategoryID: string(e.RunWorkCategoryID),
			Notes:             e.Notes,
		}
	}
	writeJSON(w, http.StatusOK, dto)
}

// GetTeamCost returns a team's cost breakdown by role.
func (h *Handler) GetTeamCost(w http.ResponseWriter, r *http.Request) {
	id := planning.TeamID(chi.URLParam(r, "id"))

	ctx := r.Context()
	team, err := h.Store.GetTeam(ctx, id)
	if err != nil {
		writeStoreError(w, "Failed to get team", err)
		return
	}
	people, err := h.Store.ListPeople(ctx)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list people", err)
		return
	}
	roles, err := h.Store.ListRoles(ctx)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list roles", err)
		return
	}

	breakdown := finance.CalculateTeamCostBreakdown(team, people, roles, h.FinanceConfig)

	dto := CostBreakdownDTO{
		TeamID:             string(breakdown.TeamID),
		TotalWeeklyCost:    breakdown.TotalWeeklyCost.String(),
		TotalMonthlyCost:   breakdown.TotalMonthlyCost.String(),
		TotalQuarterlyCost: breakdown.TotalQuarterlyCost.String(),
		Display:            finance.FormatCurrency(breakdown.TotalWeeklyCost, h.FinanceConfig),
	}
	for _, rc := range breakdown.RoleBreakdown {
		dto.RoleBreakdown = append(dto.RoleBreakdown, RoleCostDTO{
			RoleID:     string(rc.RoleID),
			RoleName:   rc.RoleName,
			Headcount:  rc.Headcount,
			WeeklyCost: rc.WeeklyCost.String(),
		})
	}
	writeJSON(w, http.StatusOK, dto)
}

// =============================================================================
// CYCLE HANDLERS
// =============================================================================

// ListCycles returns all cycles in chronological order.
func (h *Handler) ListCycles(w http.ResponseWriter, r *http.Request) {
	cycles, err := h.Store.ListCycles(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list cycles", err)
		return
	}

	dtos := make([]CycleDTO, len(cycles))
	for i, c := range cycles {
		dtos[i] = toCycleDTO(c)
	}
	writeJSON(w, http.StatusOK, dtos)
}

// CreateCycle creates or updates a cycle.
func (h *Handler) CreateCycle(w http.ResponseWriter, r *http.Request) {
	var req CycleDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	if req.ID == "" {
		writeError(w, http.StatusBadRequest, "Cycle id is required", nil)
		return
	}
	cycleType := planning.CycleType(req.Type)
	if cycleType != planning.CycleQuarterly && cycleType != planning.CycleIteration {
		writeError(w, http.StatusBadRequest, "Cycle type must be quarterly or iteration", nil)
		return
	}

	cycle := planning.Cycle{
		ID:            planning.CycleID(req.ID),
		Name:          req.Name,
		Type:          cycleType,
		StartDate:     planning.ParseDate(req.StartDate),
		EndDate:       planning.ParseDate(req.EndDate),
		ParentCycleID: planning.CycleID(req.ParentCycleID),
	}

	if err := h.Store.SaveCycle(r.Context(), cycle); err != nil {
		if planning.IsClientError(err) {
			writeError(w, http.StatusBadRequest, "Invalid cycle", err)
			return
		}
		writeError(w, http.StatusInternalServerError, "Failed to save cycle", err)
		return
	}
	writeJSON(w, http.StatusCreated, toCycleDTO(cycle))
}

// =============================================================================
// ALLOCATION HANDLERS
// =============================================================================

// ListAllocations returns all allocation records, optionally filtered by team.
func (h *Handler) ListAllocations(w http.ResponseWriter, r *http.Request) {
	allocations, err := h.Store.ListAllocations(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list allocations", err)
		return
	}

	teamFilter := r.URL.Query().Get("team")
	dtos := []AllocationDTO{}
	for _, a := range allocations {
		if teamFilter != "" && string(a.TeamID) != teamFilter {
			continue
		}
		dtos = append(dtos, toAllocationDTO(a))
	}
	writeJSON(w, http.StatusOK, dtos)
}

// CreateAllocation records an allocation.
func (h *Handler) CreateAllocation(w http.ResponseWriter, r *http.Request) {
	var req CreateAllocationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	if req.TeamID == "" || req.CycleID == "" {
		writeError(w, http.StatusBadRequest, "team_id and cycle_id are required", nil)
		return
	}
	if req.Percentage < 0 {
		writeError(w, http.StatusBadRequest, "Percentage must not be negative", nil)
		return
	}
	if req.ID == "" {
		req.ID = "alloc-" + uuid.NewString()
	}

	alloc := planning.Allocation{
		ID:                planning.AllocationID(req.ID),
		TeamID:            planning.TeamID(req.TeamID),
		CycleID:           planning.CycleID(req.CycleID),
		IterationNumber:   req.IterationNumber,
		Percentage:        req.Percentage,
		EpicID:            planning.EpicID(req.EpicID),
		RunWorkCategoryID: planning.RunWorkCategoryID(req.RunWorkCategoryID),
		Notes:             req.Notes,
	}

	if err := h.Store.SaveAllocation(r.Context(), alloc); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to save allocation", err)
		return
	}
	writeJSON(w, http.StatusCreated, toAllocationDTO(alloc))
}

// DeleteAllocation removes an allocation record.
func (h *Handler) DeleteAllocation(w http.ResponseWriter, r *http.Request) {
	id := planning.AllocationID(chi.URLParam(r, "id"))

	if err := h.Store.DeleteAllocation(r.Context(), id); err != nil {
		writeStoreError(w, "Failed to delete allocation", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"status": "deleted"})
}

// =============================================================================
// PROJECT HANDLERS
// =============================================================================

// ListProjects returns all projects.
func (h *Handler) ListProjects(w http.ResponseWriter, r *http.Request) {
	projects, err := h.Store.ListProjects(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list projects", err)
		return
	}

	dtos := make([]ProjectDTO, len(projects))
	for i, p := range projects {
		dtos[i] = toProjectDTO(p)
	}
	writeJSON(w, http.StatusOK, dtos)
}

// GetProject returns a single project.
func (h *Handler) GetProject(w http.ResponseWriter, r *http.Request) {
	id := planning.ProjectID(chi.URLParam(r, "id"))

	project, err := h.Store.GetProject(r.Context(), id)
	if err != nil {
		writeStoreError(w, "Failed to get project", err)
		return
	}
	writeJSON(w, http.StatusOK, toProjectDTO(project))
}

// CreateProject creates or updates a project.
func (h *Handler) CreateProject(w http.ResponseWriter, r *http.Request) {
	var req ProjectDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	if req.Name == "" {
		writeError(w, http.StatusBadRequest, "Project name is required", nil)
		return
	}
	if req.ID == "" {
		req.ID = "proj-" + uuid.NewString()
	}

	budget := decimal.Zero
	if req.Budget != "" {
		var err error
		budget, err = decimal.NewFromString(req.Budget)
		if err != nil {
			writeError(w, http.StatusBadRequest, "Invalid budget", err)
			return
		}
	}

	project := planning.Project{
		ID:          planning.ProjectID(req.ID),
		Name:        req.Name,
		Description: req.Description,
		Status:      planning.ProjectStatus(req.Status),
		Budget:      budget,
	}

	if err := h.Store.SaveProject(r.Context(), project); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to save project", err)
		return
	}
	writeJSON(w, http.StatusCreated, toProjectDTO(project))
}

// GetProjectSkills returns a project's required skills and the org's
// coverage of each.
func (h *Handler) GetProjectSkills(w http.ResponseWriter, r *http.Request) {
	id := planning.ProjectID(chi.URLParam(r, "id"))

	ctx := r.Context()
	project, err := h.Store.GetProject(ctx, id)
	if err != nil {
		writeStoreError(w, "Failed to get project", err)
		return
	}
	snap, err := h.Store.Snapshot(ctx)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to read snapshot", err)
		return
	}

	required := skills.GetProjectRequiredSkills(
		project, snap.ProjectSkills, snap.Solutions, snap.Skills, snap.ProjectSolutions)
	coverage := skills.AnalyzeSkillCoverage(
		required, snap.Teams, snap.People, snap.PersonSkills, h.SkillsConfig)

	dtos := make([]SkillCoverageDTO, len(coverage))
	for i, c := range coverage {
		dto := SkillCoverageDTO{
			Requirement: SkillRequirementDTO{
				SkillID:    string(c.Requirement.SkillID),
				SkillName:  c.Requirement.SkillName,
				Importance: string(c.Requirement.Importance),
				Source:     string(c.Requirement.Source),
				SolutionID: string(c.Requirement.SolutionID),
			},
			Status:          string(c.Status),
			HolderCount:     c.HolderCount,
			CoveragePercent: c.CoveragePercent,
		}
		for _, teamID := range c.TeamsWithSkill {
			dto.TeamsWithSkill = append(dto.TeamsWithSkill, string(teamID))
		}
		dtos[i] = dto
	}
	writeJSON(w, http.StatusOK, dtos)
}

// GetProjectCompatibility scores teams against a project. With ?team= it
// scores one team; otherwise every team.
func (h *Handler) GetProjectCompatibility(w http.ResponseWriter, r *http.Request) {
	id := planning.ProjectID(chi.URLParam(r, "id"))
	teamFilter := r.URL.Query().Get("team")

	ctx := r.Context()
	project, err := h.Store.GetProject(ctx, id)
	if err != nil {
		writeStoreError(w, "Failed to get project", err)
		return
	}
	snap, err := h.Store.Snapshot(ctx)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to read snapshot", err)
		return
	}

	var dtos []CompatibilityDTO
	for _, team := range snap.Teams {
		if teamFilter != "" && string(team.ID) != teamFilter {
			continue
		}
		result := skills.CalculateTeamProjectCompatibility(
			team, project, snap.ProjectSkills, snap.Solutions, snap.Skills,
			snap.ProjectSolutions, snap.People, snap.PersonSkills, h.SkillsConfig)

		dtos = append(dtos, CompatibilityDTO{
			TeamID:             string(team.ID),
			ProjectID:          string(project.ID),
			CompatibilityScore: result.CompatibilityScore,
			SkillsMatched:      result.SkillsMatched,
			SkillsRequired:     result.SkillsRequired,
			Recommendation:     string(result.Recommendation),
			Reasoning:          result.Reasoning,
		})
	}
	if teamFilter != "" && len(dtos) == 0 {
		writeError(w, http.StatusNotFound, "Team not found", nil)
		return
	}
	writeJSON(w, http.StatusOK, dtos)
}

// =============================================================================
// FINANCIALS
// =============================================================================

// GetQuarterFinancials rolls up estimated spend for a quarter across teams.
// The budget comes from ?budget= or defaults to the sum of project budgets.
func (h *Handler) GetQuarterFinancials(w http.ResponseWriter, r *http.Request) {
	quarterID := planning.CycleID(chi.URLParam(r, "id"))

	ctx := r.Context()
	if _, err := h.Store.GetCycle(ctx, quarterID); err != nil {
		writeStoreError(w, "Failed to get quarter", err)
		return
	}
	snap, err := h.Store.Snapshot(ctx)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to read snapshot", err)
		return
	}

	budget := decimal.Zero
	if budgetStr := r.URL.Query().Get("budget"); budgetStr != "" {
		budget, err = decimal.NewFromString(budgetStr)
		if err != nil {
			writeError(w, http.StatusBadRequest, "Invalid budget", err)
			return
		}
	} else {
		for _, p := range snap.Projects {
			budget = budget.Add(p.Budget)
		}
	}

	summary := finance.CalculateQuarterFinancials(
		quarterID, snap.Teams, snap.People, snap.Roles,
		snap.Allocations, snap.Cycles, snap.Epics, budget, h.FinanceConfig)

	dto := QuarterFinancialsDTO{
		QuarterID: string(summary.QuarterID),
		TotalCost: summary.TotalCost.String(),
		Budget:    summary.Budget.String(),
		Status:    string(summary.Status),
		Display:   finance.FormatCurrency(summary.TotalCost, h.FinanceConfig),
	}
	for _, tc := range summary.TeamCosts {
		dto.TeamCosts = append(dto.TeamCosts, TeamQuarterCostDTO{
			TeamID:    string(tc.TeamID),
			TeamName:  tc.TeamName,
			Allocated: tc.Allocated,
			Cost:      tc.Cost.String(),
		})
	}
	writeJSON(w, http.StatusOK, dto)
}

// =============================================================================
// PEOPLE, ROLES, SKILLS
// =============================================================================

// ListPeople returns all people.
func (h *Handler) ListPeople(w http.ResponseWriter, r *http.Request) {
	people, err := h.Store.ListPeople(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list people", err)
		return
	}

	dtos := make([]PersonDTO, len(people))
	for i, p := range people {
		dto := PersonDTO{
			ID:     string(p.ID),
			Name:   p.Name,
			TeamID: string(p.TeamID),
			RoleID: string(p.RoleID),
		}
		if p.AnnualSalary != nil {
			dto.AnnualSalary = p.AnnualSalary.String()
		}
		dtos[i] = dto
	}
	writeJSON(w, http.StatusOK, dtos)
}

// CreatePerson creates or updates a person.
func (h *Handler) CreatePerson(w http.ResponseWriter, r *http.Request) {
	var req PersonDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	if req.Name == "" {
		writeError(w, http.StatusBadRequest, "Person name is required", nil)
		return
	}
	if req.ID == "" {
		req.ID = "person-" + uuid.NewString()
	}

	person := planning.Person{
		ID:     planning.PersonID(req.ID),
		Name:   req.Name,
		TeamID: planning.TeamID(req.TeamID),
		RoleID: planning.RoleID(req.RoleID),
	}
	if req.AnnualSalary != "" {
		salary, err := decimal.NewFromString(req.AnnualSalary)
		if err != nil {
			writeError(w, http.StatusBadRequest, "Invalid annual salary", err)
			return
		}
		person.AnnualSalary = &salary
	}

	if err := h.Store.SavePerson(r.Context(), person); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to save person", err)
		return
	}
	writeJSON(w, http.StatusCreated, req)
}

// ListRoles returns all roles.
func (h *Handler) ListRoles(w http.ResponseWriter, r *http.Request) {
	roles, err := h.Store.ListRoles(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list roles", err)
		return
	}

	dtos := make([]RoleDTO, len(roles))
	for i, role := range roles {
		dtos[i] = RoleDTO{
			ID:         string(role.ID),
			Name:       role.Name,
			WeeklyRate: role.WeeklyRate.String(),
		}
	}
	writeJSON(w, http.StatusOK, dtos)
}

// CreateRole creates or updates a role.
func (h *Handler) CreateRole(w http.ResponseWriter, r *http.Request) {
	var req RoleDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	if req.ID == "" || req.Name == "" {
		writeError(w, http.StatusBadRequest, "Role id and name are required", nil)
		return
	}
	rate, err := decimal.NewFromString(req.WeeklyRate)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid weekly rate", err)
		return
	}

	role := planning.Role{ID: planning.RoleID(req.ID), Name: req.Name, WeeklyRate: rate}
	if err := h.Store.SaveRole(r.Context(), role); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to save role", err)
		return
	}
	writeJSON(w, http.StatusCreated, req)
}

// ListSkills returns the skill taxonomy.
func (h *Handler) ListSkills(w http.ResponseWriter, r *http.Request) {
	skillList, err := h.Store.ListSkills(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list skills", err)
		return
	}

	dtos := make([]SkillDTO, len(skillList))
	for i, s := range skillList {
		dtos[i] = SkillDTO{ID: string(s.ID), Name: s.Name, Category: s.Category}
	}
	writeJSON(w, http.StatusOK, dtos)
}

// CreateSkill creates or updates a skill.
func (h *Handler) CreateSkill(w http.ResponseWriter, r *http.Request) {
	var req SkillDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	if req.Name == "" {
		writeError(w, http.StatusBadRequest, "Skill name is required", nil)
		return
	}
	if req.ID == "" {
		req.ID = "skill-" + uuid.NewString()
	}

	skill := planning.Skill{ID: planning.SkillID(req.ID), Name: req.Name, Category: req.Category}
	if err := h.Store.SaveSkill(r.Context(), skill); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to save skill", err)
		return
	}
	writeJSON(w, http.StatusCreated, req)
}

// =============================================================================
// DTO CONVERSION AND RESPONSE HELPERS
// =============================================================================

func toTeamDTO(t planning.Team) TeamDTO {
	dto := TeamDTO{
		ID:         string(t.ID),
		Name:       t.Name,
		Capacity:   t.Capacity,
		DivisionID: t.DivisionID,
	}
	for _, s := range t.TargetSkills {
		dto.TargetSkills = append(dto.TargetSkills, string(s))
	}
	return dto
}

func toCycleDTO(c planning.Cycle) CycleDTO {
	dto := CycleDTO{
		ID:            string(c.ID),
		Name:          c.Name,
		Type:          string(c.Type),
		ParentCycleID: string(c.ParentCycleID),
	}
	if !c.StartDate.IsZero() {
		dto.StartDate = c.StartDate.String()
	}
	if !c.EndDate.IsZero() {
		dto.EndDate = c.EndDate.String()
	}
	return dto
}

func toAllocationDTO(a planning.Allocation) AllocationDTO {
	return AllocationDTO{
		ID:                string(a.ID),
		TeamID:            string(a.TeamID),
		CycleID:           string(a.CycleID),
		IterationNumber:   a.IterationNumber,
		Percentage:        a.Percentage,
		EpicID:            string(a.EpicID),
		RunWorkCategoryID: string(a.RunWorkCategoryID),
		Notes:             a.Notes,
	}
}

func toProjectDTO(p planning.Project) ProjectDTO {
	dto := ProjectDTO{
		ID:          string(p.ID),
		Name:        p.Name,
		Description: p.Description,
		Status:      string(p.Status),
	}
	if !p.Budget.IsZero() {
		dto.Budget = p.Budget.String()
	}
	return dto
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, message string, err error) {
	resp := ErrorResponse{Error: message}
	if err != nil {
		resp.Details = err.Error()
	}
	writeJSON(w, status, resp)
}

// writeStoreError maps store errors to HTTP status codes.
func writeStoreError(w http.ResponseWriter, message string, err error) {
	if planning.IsNotFound(err) {
		writeError(w, http.StatusNotFound, message, err)
		return
	}
	writeError(w, http.StatusInternalServerError, message, err)
}
