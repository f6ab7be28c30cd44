package allocation

import (
	"github.com/warp/planning-engine/planning"
)

// =============================================================================
// PERIOD - Tagged quarter-vs-iteration reference
// =============================================================================

// Period identifies the time box a capacity check covers. The tag removes
// the quarter-vs-iteration ambiguity at the API boundary even though stored
// allocations still carry it.
type Period struct {
	quarterID       planning.CycleID
	iterationNumber int
}

// QuarterPeriod references a quarter by cycle id; capacity is computed over
// the aggregated allocation set.
func QuarterPeriod(quarterID planning.CycleID) Period {
	return Period{quarterID: quarterID}
}

// IterationPeriod references one iteration slot (1-based); capacity is
// computed over the raw records for that slot.
func IterationPeriod(iterationNumber int) Period {
	return Period{iterationNumber: iterationNumber}
}

// IsIteration reports whether the period references an iteration slot.
func (p Period) IsIteration() bool { return p.iterationNumber > 0 }

// QuarterID returns the quarter cycle id for quarter periods.
func (p Period) QuarterID() planning.CycleID { return p.quarterID }

// IterationNumber returns the slot for iteration periods, 0 otherwise.
func (p Period) IterationNumber() int { return p.iterationNumber }

// =============================================================================
// CAPACITY CHECK
// =============================================================================

// CapacityCheck summarizes a team's utilization for a period.
//
// Allocated is the plain sum of resolved percentages and is deliberately
// not clamped: exceeding 100 is the over-allocation signal, not an error.
type CapacityCheck struct {
	Allocated       float64
	Available       float64
	IsOverAllocated bool
	Allocations     []EffectiveAllocation
}

// CalculateTeamCapacity computes the utilization summary for a team and
// period. Quarter periods aggregate across granularities; iteration periods
// filter raw records for the slot.
func CalculateTeamCapacity(
	team planning.Team,
	period Period,
	allocations []planning.Allocation,
	cycles []planning.Cycle,
	epics []planning.Epic,
) CapacityCheck {
	var effective []EffectiveAllocation
	if period.IsIteration() {
		for _, a := range IterationAllocations(team.ID, period.IterationNumber(), allocations) {
			effective = append(effective, EffectiveAllocation{
				ID:                a.ID,
				TeamID:            a.TeamID,
				CycleID:           a.CycleID,
				Percentage:        a.Percentage,
				EpicID:            a.EpicID,
				RunWorkCategoryID: a.RunWorkCategoryID,
				Notes:             a.Notes,
			})
		}
	} else {
		effective = AggregateTeamPeriodAllocations(team.ID, period.QuarterID(), allocations, cycles, epics)
	}

	var allocated float64
	for _, e := range effective {
		allocated += e.Percentage
	}

	available := 100 - allocated
	if available < 0 {
		available = 0
	}

	return CapacityCheck{
		Allocated:       allocated,
		Available:       available,
		IsOverAllocated: allocated > 100,
		Allocations:     effective,
	}
}

// HoursForPercentage converts an allocation percentage to weekly hours
// using the team's capacity.
func HoursForPercentage(team planning.Team, percentage float64) float64 {
	return team.Capacity * percentage / 100
}

// AllocatedHours returns the weekly hours the check's allocated percentage
// represents for the team.
func (c CapacityCheck) AllocatedHours(team planning.Team) float64 {
	return HoursForPercentage(team, c.Allocated)
}
