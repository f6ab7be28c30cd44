/*
Package allocation resolves raw allocation records into effective per-period
utilization.

PURPOSE:
  Allocations are recorded against either a quarter or one of its child
  iterations, with no discriminator on the record itself. This package owns
  the policy for resolving that dual-granularity storage into one effective
  percentage per logical work item per period, and for turning the resolved
  set into a capacity summary.

KEY CONCEPTS IN THIS FILE (aggregator.go):
  - Grouping: allocations are grouped by work item (run category, project
    via epic, or a name recovered from quick-entry notes)
  - Reconciliation: iteration-level records are averaged (they are repeated
    samples of the same commitment), quarter-level records are summed (they
    are independent contributions), with one misclassification exception

RECONCILIATION POLICY (per work-item group):
  - Only iteration records   -> average. A team at 100% in each of 6
    iterations is 100% allocated on average, not 600%.
  - Only quarter records     -> sum. EXCEPT when the group holds exactly as
    many quarter records as the quarter has iterations; that shape is a
    misclassified iteration set and is averaged instead.
  - Both                     -> average the iteration subset, sum the quarter
    subset, add the two.
  - Neither                  -> 0.

FALLBACK INFERENCE:
  When a quarter has no linked iterations and no direct quarter records
  exist, iteration-typed cycles whose dates fall inside the quarter are
  used as the iteration set. Parent links are not guaranteed by the data.

SEE ALSO:
  - capacity.go: Capacity summary built on the aggregated set
  - planning/cycles.go: Cycle tree navigation and date inference
*/
package allocation

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/warp/planning-engine/planning"
)

// =============================================================================
// EFFECTIVE ALLOCATION - One resolved record per work item per period
// =============================================================================

// EffectiveAllocation is a synthetic allocation carrying the single resolved
// percentage for a team+period, never a raw per-iteration percentage.
type EffectiveAllocation struct {
	ID                planning.AllocationID
	TeamID            planning.TeamID
	CycleID           planning.CycleID // the period cycle, not the source cycle
	Percentage        float64
	EpicID            planning.EpicID
	RunWorkCategoryID planning.RunWorkCategoryID
	Notes             string
	GroupKey          string
}

// Quick-entry notes encode the work item as free text when the structured
// fields were never set. Recovering it here is a last resort; the creation
// paths should be setting EpicID/RunWorkCategoryID.
var quickProjectPattern = regexp.MustCompile(`Quick allocation to (.+)`)

const quickRunWorkNote = "Quick run work allocation"

// =============================================================================
// AGGREGATION
// =============================================================================

// AggregateTeamPeriodAllocations returns the effective allocations for a
// team in the given quarter, resolving records stored at either quarter or
// iteration granularity. Output order follows first appearance of each work
// item in the input.
func AggregateTeamPeriodAllocations(
	teamID planning.TeamID,
	periodCycleID planning.CycleID,
	allocations []planning.Allocation,
	cycles []planning.Cycle,
	epics []planning.Epic,
) []EffectiveAllocation {
	quarter, quarterFound := planning.FindCycle(cycles, periodCycleID)
	iterations := planning.IterationsOf(cycles, periodCycleID)

	iterationRecords, quarterRecords := partition(teamID, periodCycleID, iterations, allocations)

	// No parent links and no direct quarter records: infer the iteration set
	// from date containment and re-partition.
	if len(iterations) == 0 && len(quarterRecords) == 0 && quarterFound {
		iterations = planning.IterationsWithinDates(cycles, quarter)
		iterationRecords, quarterRecords = partition(teamID, periodCycleID, iterations, allocations)
	}

	groups := groupByWorkItem(append(iterationRecords, quarterRecords...), iterationIDSet(iterations), epics)

	result := make([]EffectiveAllocation, 0, len(groups))
	for _, g := range groups {
		pct := g.resolve(len(iterations))
		base := g.base()
		result = append(result, EffectiveAllocation{
			ID:                planning.AllocationID(fmt.Sprintf("agg-%s-%s-%s", teamID, periodCycleID, g.key)),
			TeamID:            teamID,
			CycleID:           periodCycleID,
			Percentage:        pct,
			EpicID:            base.EpicID,
			RunWorkCategoryID: base.RunWorkCategoryID,
			Notes:             base.Notes,
			GroupKey:          g.key,
		})
	}
	return result
}

// IterationAllocations returns the team's raw records for one iteration
// slot. Iteration-level views show raw percentages; no reconciliation.
func IterationAllocations(teamID planning.TeamID, iterationNumber int, allocations []planning.Allocation) []planning.Allocation {
	var out []planning.Allocation
	for _, a := range allocations {
		if a.TeamID == teamID && a.IterationNumber == iterationNumber {
			out = append(out, a)
		}
	}
	return out
}

// =============================================================================
// PARTITIONING AND GROUPING
// =============================================================================

func iterationIDSet(iterations []planning.Cycle) map[planning.CycleID]bool {
	ids := make(map[planning.CycleID]bool, len(iterations))
	for _, it := range iterations {
		ids[it.ID] = true
	}
	return ids
}

// partition splits the team's allocations into iteration-level and
// quarter-level records for the target period. Records pointing elsewhere
// are dropped.
func partition(
	teamID planning.TeamID,
	periodCycleID planning.CycleID,
	iterations []planning.Cycle,
	allocations []planning.Allocation,
) (iterationRecords, quarterRecords []planning.Allocation) {
	ids := iterationIDSet(iterations)
	for _, a := range allocations {
		if a.TeamID != teamID {
			continue
		}
		switch {
		case ids[a.CycleID]:
			iterationRecords = append(iterationRecords, a)
		case a.CycleID == periodCycleID:
			quarterRecords = append(quarterRecords, a)
		}
	}
	return iterationRecords, quarterRecords
}

type workItemGroup struct {
	key       string
	iteration []planning.Allocation
	quarter   []planning.Allocation
}

// base returns the allocation whose descriptive fields (epic, run category,
// notes) the synthetic record carries. Iteration records win: they are the
// more deliberate creation path.
func (g *workItemGroup) base() planning.Allocation {
	if len(g.iteration) > 0 {
		return g.iteration[0]
	}
	return g.quarter[0]
}

// resolve applies the reconciliation precedence to produce one percentage.
func (g *workItemGroup) resolve(iterationCount int) float64 {
	switch {
	case len(g.iteration) > 0 && len(g.quarter) > 0:
		return average(g.iteration) + sum(g.quarter)
	case len(g.iteration) > 0:
		return average(g.iteration)
	case len(g.quarter) > 0:
		// A quarter-level record per iteration slot is a misclassified
		// iteration set: average it instead of summing.
		if iterationCount > 0 && len(g.quarter) == iterationCount {
			return average(g.quarter)
		}
		return sum(g.quarter)
	default:
		return 0
	}
}

// groupByWorkItem buckets allocations by derived work-item key, preserving
// first-appearance order.
func groupByWorkItem(
	allocations []planning.Allocation,
	iterationIDs map[planning.CycleID]bool,
	epics []planning.Epic,
) []*workItemGroup {
	byKey := make(map[string]*workItemGroup)
	var ordered []*workItemGroup

	for _, a := range allocations {
		key := workItemKey(a, epics)
		g, ok := byKey[key]
		if !ok {
			g = &workItemGroup{key: key}
			byKey[key] = g
			ordered = append(ordered, g)
		}
		if iterationIDs[a.CycleID] {
			g.iteration = append(g.iteration, a)
		} else {
			g.quarter = append(g.quarter, a)
		}
	}
	return ordered
}

// workItemKey derives the grouping key for an allocation:
//
//	run-<categoryID>   run-work allocation
//	project-<id|name>  epic allocation resolved to its project, or a name
//	                   recovered from a quick-entry note
//	alloc-<id>         nothing recoverable; the record groups alone
func workItemKey(a planning.Allocation, epics []planning.Epic) string {
	if a.RunWorkCategoryID != "" {
		return "run-" + string(a.RunWorkCategoryID)
	}
	if a.EpicID != "" {
		for _, e := range epics {
			if e.ID == a.EpicID {
				return "project-" + string(e.ProjectID)
			}
		}
	}
	if m := quickProjectPattern.FindStringSubmatch(a.Notes); m != nil {
		return "project-" + strings.TrimSpace(m[1])
	}
	if strings.Contains(a.Notes, quickRunWorkNote) {
		return "run-quick"
	}
	return "alloc-" + string(a.ID)
}

// =============================================================================
// PERCENTAGE MATH
// =============================================================================

func sum(allocations []planning.Allocation) float64 {
	var total float64
	for _, a := range allocations {
		total += a.Percentage
	}
	return total
}

func average(allocations []planning.Allocation) float64 {
	if len(allocations) == 0 {
		return 0
	}
	return sum(allocations) / float64(len(allocations))
}
