/*
dto.go - Data Transfer Objects for API requests and responses

PURPOSE:
  Defines the JSON structures for API communication. These types decouple
  the internal domain model from the external API contract, allowing:
  - Field renaming without breaking clients
  - API-specific validation
  - Version evolution

NAMING CONVENTION:
  - *DTO: Response types returned to clients
  - *Request: Request body types from clients

TYPES:
  Entities:
    TeamDTO, PersonDTO, RoleDTO, CycleDTO, AllocationDTO, ProjectDTO,
    EpicDTO, SkillDTO

  Calculations:
    CapacityDTO, EffectiveAllocationDTO, CostBreakdownDTO,
    QuarterFinancialsDTO, SkillCoverageDTO, CompatibilityDTO

  Scenarios:
    ScenarioDTO, LoadScenarioRequest

VALIDATION:
  Validation is done in handlers, not in DTOs. DTOs are pure data carriers.

SEE ALSO:
  - handlers.go: Uses these types
*/
package api

// =============================================================================
// ENTITY TYPES
// =============================================================================

// TeamDTO represents a team in API responses.
type TeamDTO struct {
	ID           string   `json:"id"`
	Name         string   `json:"name"`
	Capacity     float64  `json:"capacity"`
	DivisionID   string   `json:"division_id,omitempty"`
	TargetSkills []string `json:"target_skills,omitempty"`
}

// CreateTeamRequest is the request to create or update a team.
type CreateTeamRequest struct {
	ID           string   `json:"id"`
	Name         string   `json:"name"`
	Capacity     float64  `json:"capacity"`
	DivisionID   string   `json:"division_id"`
	TargetSkills []string `json:"target_skills"`
}

// PersonDTO represents a person in API responses.
type PersonDTO struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	TeamID       string `json:"team_id,omitempty"`
	RoleID       string `json:"role_id,omitempty"`
	AnnualSalary string `json:"annual_salary,omitempty"`
}

// RoleDTO represents a role and its cost rate.
type RoleDTO struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	WeeklyRate string `json:"weekly_rate"`
}

// CycleDTO represents a quarter or iteration.
type CycleDTO struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	Type          string `json:"type"`
	StartDate     string `json:"start_date,omitempty"`
	EndDate       string `json:"end_date,omitempty"`
	ParentCycleID string `json:"parent_cycle_id,omitempty"`
}

// AllocationDTO represents a stored allocation record.
type AllocationDTO struct {
	ID                string  `json:"id"`
	TeamID            string  `json:"team_id"`
	CycleID           string  `json:"cycle_id"`
	IterationNumber   int     `json:"iteration_number,omitempty"`
	Percentage        float64 `json:"percentage"`
	EpicID            string  `json:"epic_id,omitempty"`
	RunWorkCategoryID string  `json:"run_work_category_id,omitempty"`
	Notes             string  `json:"notes,omitempty"`
}

// CreateAllocationRequest is the request to record an allocation. ID is
// optional; one is generated when absent.
type CreateAllocationRequest struct {
	ID                string  `json:"id"`
	TeamID            string  `json:"team_id"`
	CycleID           string  `json:"cycle_id"`
	IterationNumber   int     `json:"iteration_number"`
	Percentage        float64 `json:"percentage"`
	EpicID            string  `json:"epic_id"`
	RunWorkCategoryID string  `json:"run_work_category_id"`
	Notes             string  `json:"notes"`
}

// ProjectDTO represents a project.
type ProjectDTO struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Status      string `json:"status,omitempty"`
	Budget      string `json:"budget,omitempty"`
}

// EpicDTO represents an epic within a project.
type EpicDTO struct {
	ID        string `json:"id"`
	ProjectID string `json:"project_id"`
	Name      string `json:"name"`
}

// SkillDTO represents a skill in the taxonomy.
type SkillDTO struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Category string `json:"category,omitempty"`
}

// =============================================================================
// CALCULATION TYPES
// =============================================================================

// EffectiveAllocationDTO is one resolved work-item commitment.
type EffectiveAllocationDTO struct {
	ID                string  `json:"id"`
	CycleID           string  `json:"cycle_id"`
	Percentage        float64 `json:"percentage"`
	EpicID            string  `json:"epic_id,omitempty"`
	RunWorkCategoryID string  `json:"run_work_category_id,omitempty"`
	Notes             string  `json:"notes,omitempty"`
}

// CapacityDTO is the utilization summary for a team and period.
type CapacityDTO struct {
	TeamID          string                   `json:"team_id"`
	Period          string                   `json:"period"`
	Allocated       float64                  `json:"allocated"`
	Available       float64                  `json:"available"`
	AllocatedHours  float64                  `json:"allocated_hours"`
	IsOverAllocated bool                     `json:"is_over_allocated"`
	Allocations     []EffectiveAllocationDTO `json:"allocations"`
}

// RoleCostDTO is one role's contribution to a team's run rate.
type RoleCostDTO struct {
	RoleID     string `json:"role_id"`
	RoleName   string `json:"role_name"`
	Headcount  int    `json:"headcount"`
	WeeklyCost string `json:"weekly_cost"`
}

// CostBreakdownDTO is a team's run rate by role.
type CostBreakdownDTO struct {
	TeamID             string        `json:"team_id"`
	TotalWeeklyCost    string        `json:"total_weekly_cost"`
	TotalMonthlyCost   string        `json:"total_monthly_cost"`
	TotalQuarterlyCost string        `json:"total_quarterly_cost"`
	RoleBreakdown      []RoleCostDTO `json:"role_breakdown"`
	Display            string        `json:"display"` // formatted weekly cost
}

// TeamQuarterCostDTO is one team's estimated spend for a quarter.
type TeamQuarterCostDTO struct {
	TeamID    string  `json:"team_id"`
	TeamName  string  `json:"team_name"`
	Allocated float64 `json:"allocated"`
	Cost      string  `json:"cost"`
}

// QuarterFinancialsDTO is the per-quarter cost summary across teams.
type QuarterFinancialsDTO struct {
	QuarterID string               `json:"quarter_id"`
	TeamCosts []TeamQuarterCostDTO `json:"team_costs"`
	TotalCost string               `json:"total_cost"`
	Budget    string               `json:"budget"`
	Status    string               `json:"status"`
	Display   string               `json:"display"` // formatted total
}

// SkillRequirementDTO is one skill a project needs.
type SkillRequirementDTO struct {
	SkillID    string `json:"skill_id"`
	SkillName  string `json:"skill_name"`
	Importance string `json:"importance"`
	Source     string `json:"source"`
	SolutionID string `json:"solution_id,omitempty"`
}

// SkillCoverageDTO is the org's coverage of one requirement.
type SkillCoverageDTO struct {
	Requirement     SkillRequirementDTO `json:"requirement"`
	Status          string              `json:"status"`
	TeamsWithSkill  []string            `json:"teams_with_skill,omitempty"`
	HolderCount     int                 `json:"holder_count"`
	CoveragePercent float64             `json:"coverage_percent"`
}

// CompatibilityDTO scores a team against a project.
type CompatibilityDTO struct {
	TeamID             string   `json:"team_id"`
	ProjectID          string   `json:"project_id"`
	CompatibilityScore float64  `json:"compatibility_score"`
	SkillsMatched      int      `json:"skills_matched"`
	SkillsRequired     int      `json:"skills_required"`
	Recommendation     string   `json:"recommendation"`
	Reasoning          []string `json:"reasoning"`
}

// =============================================================================
// SCENARIO TYPES
// =============================================================================

// ScenarioDTO describes a loadable demo scenario.
type ScenarioDTO struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Category    string `json:"category"`
}

// LoadScenarioRequest selects a scenario to load.
type LoadScenarioRequest struct {
	ScenarioID string `json:"scenario_id"`
}

// ErrorResponse is the standard error body.
type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}
