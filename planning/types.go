/*
Package planning provides the core entity model for the capacity planning engine.

PURPOSE:
  This package contains the plain-data entities the calculation packages
  operate on: teams, people, cycles (quarters and iterations), allocations,
  projects, epics, and the skill taxonomy. Entities carry no behavior beyond
  small lookup helpers; all derived values (utilization, cost, coverage) are
  computed by the allocation, finance, and skills packages.

KEY CONCEPTS IN THIS FILE (types.go):
  - Team: owns a weekly capacity in hours, the denominator for utilization
  - Cycle: a time period, either a quarterly container or a child iteration
  - Allocation: a percentage of a team's capacity assigned to a work item
    for a cycle
  - Skill/PersonSkill/Solution: the skill taxonomy used for coverage analysis

DESIGN PRINCIPLES:
  1. Plain data: entities are records, not objects with behavior
  2. Type safety: strong typing for IDs prevents mixing team/cycle/epic IDs
  3. Precision: uses decimal.Decimal for money (role rates, salaries)
  4. Snapshots: calculators receive entity collections explicitly and never
     reach into ambient state

SEE ALSO:
  - cycles.go: Cycle tree navigation (quarter/iteration relationships)
  - snapshot.go: Immutable entity bundle with lookup indexes
  - store.go: Persistence interface
*/
package planning

import (
	"github.com/shopspring/decimal"
)

// =============================================================================
// IDENTIFIERS
// =============================================================================

type TeamID string
type PersonID string
type RoleID string
type CycleID string
type AllocationID string
type ProjectID string
type EpicID string
type RunWorkCategoryID string
type SkillID string
type SolutionID string

// =============================================================================
// TEAMS AND PEOPLE
// =============================================================================

// Team is a delivery team. Capacity is weekly capacity in hours and is the
// denominator for all utilization math.
type Team struct {
	ID         TeamID
	Name       string
	Capacity   float64 // hours per week
	DivisionID string

	// TargetSkills are the skills the team is staffed or hiring for.
	// Used by the skills package for coverage classification.
	TargetSkills []SkillID
}

// Person is a team member. RoleID links to the Role used for cost rates;
// AnnualSalary, when set, overrides the role rate for that person.
type Person struct {
	ID           PersonID
	Name         string
	TeamID       TeamID
	RoleID       RoleID
	AnnualSalary *decimal.Decimal
}

// Role defines a cost rate for people holding it.
type Role struct {
	ID         RoleID
	Name       string
	WeeklyRate decimal.Decimal
}

// =============================================================================
// CYCLES - Quarters and iterations
// =============================================================================

type CycleType string

const (
	CycleQuarterly CycleType = "quarterly"
	CycleIteration CycleType = "iteration"
)

// Cycle is a planning time box. Cycles form a two-level tree: quarters
// contain 0..N iterations linked via ParentCycleID. The link is not
// guaranteed by the data; see cycles.go for date-range fallback inference.
type Cycle struct {
	ID            CycleID
	Name          string
	Type          CycleType
	StartDate     Date
	EndDate       Date
	ParentCycleID CycleID // set on iterations; empty on quarters
}

// IsQuarter reports whether the cycle is a quarterly container.
func (c Cycle) IsQuarter() bool { return c.Type == CycleQuarterly }

// IsIteration reports whether the cycle is a child iteration.
func (c Cycle) IsIteration() bool { return c.Type == CycleIteration }

// =============================================================================
// ALLOCATIONS
// =============================================================================

// Allocation assigns a percentage of a team's capacity to a work item for a
// cycle. CycleID may point at either a quarter or an iteration; the
// allocation package resolves that ambiguity at read time.
//
// Exactly one of EpicID / RunWorkCategoryID is expected to be set. Notes is
// free text; allocations created through quick-entry paths sometimes carry
// their work item only as "Quick allocation to <name>" in Notes, and the
// aggregator recovers it from there as a last resort.
type Allocation struct {
	ID                AllocationID
	TeamID            TeamID
	CycleID           CycleID
	IterationNumber   int     // 1-based position within a quarter
	Percentage        float64 // 0-100, not clamped at the data layer
	EpicID            EpicID
	RunWorkCategoryID RunWorkCategoryID
	Notes             string
}

// IsRunWork reports whether the allocation targets a run-work category.
func (a Allocation) IsRunWork() bool { return a.RunWorkCategoryID != "" }

// =============================================================================
// WORK ITEMS
// =============================================================================

type ProjectStatus string

const (
	ProjectPlanning  ProjectStatus = "planning"
	ProjectActive    ProjectStatus = "active"
	ProjectCompleted ProjectStatus = "completed"
)

// Project is a top-level work item. Budget is optional; zero means no budget
// has been set and financial summaries report against a zero baseline.
type Project struct {
	ID          ProjectID
	Name        string
	Description string
	Status      ProjectStatus
	Budget      decimal.Decimal
}

// Epic is a child work item of a project. Allocations reference epics, and
// the aggregator resolves them to projects for grouping.
type Epic struct {
	ID        EpicID
	ProjectID ProjectID
	Name      string
}

// RunWorkCategory classifies operational work not tied to a project epic
// (support, maintenance, tech debt).
type RunWorkCategory struct {
	ID   RunWorkCategoryID
	Name string
}

// =============================================================================
// SKILLS
// =============================================================================

type ProficiencyLevel string

const (
	ProficiencyBeginner     ProficiencyLevel = "beginner"
	ProficiencyIntermediate ProficiencyLevel = "intermediate"
	ProficiencyAdvanced     ProficiencyLevel = "advanced"
	ProficiencyExpert       ProficiencyLevel = "expert"
)

type ImportanceLevel string

const (
	ImportanceLow    ImportanceLevel = "low"
	ImportanceMedium ImportanceLevel = "medium"
	ImportanceHigh   ImportanceLevel = "high"
)

// Skill is a named capability.
type Skill struct {
	ID       SkillID
	Name     string
	Category string
}

// PersonSkill links a person to a skill with a proficiency level.
type PersonSkill struct {
	ID          string
	PersonID    PersonID
	SkillID     SkillID
	Proficiency ProficiencyLevel
}

// Solution bundles the skills required to deliver a class of work.
type Solution struct {
	ID       SolutionID
	Name     string
	SkillIDs []SkillID
}

// ProjectSolution attaches a solution to a project with an importance tag.
type ProjectSolution struct {
	ID         string
	ProjectID  ProjectID
	SolutionID SolutionID
	Importance ImportanceLevel
}

// ProjectSkill is a manually attached skill requirement, used alongside the
// solution-derived requirements.
type ProjectSkill struct {
	ID        string
	ProjectID ProjectID
	SkillID   SkillID
}
