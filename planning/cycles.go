package planning

// =============================================================================
// CYCLE TREE - Quarter/iteration navigation
// =============================================================================

// FindCycle returns the cycle with the given id, or false if not present.
func FindCycle(cycles []Cycle, id CycleID) (Cycle, bool) {
	for _, c := range cycles {
		if c.ID == id {
			return c, true
		}
	}
	return Cycle{}, false
}

// IterationsOf returns the iterations whose ParentCycleID links them to the
// given quarter, in slice order.
func IterationsOf(cycles []Cycle, quarterID CycleID) []Cycle {
	var iterations []Cycle
	for _, c := range cycles {
		if c.IsIteration() && c.ParentCycleID == quarterID {
			iterations = append(iterations, c)
		}
	}
	return iterations
}

// IterationsWithinDates returns iteration-typed cycles whose date range lies
// inside the quarter's date range, regardless of ParentCycleID.
//
// This is the fallback for data created before parent links were recorded:
// referential integrity between iterations and quarters is not guaranteed,
// so containment by dates is the only remaining signal.
func IterationsWithinDates(cycles []Cycle, quarter Cycle) []Cycle {
	span := DateRange{Start: quarter.StartDate, End: quarter.EndDate}
	var iterations []Cycle
	for _, c := range cycles {
		if !c.IsIteration() {
			continue
		}
		if span.ContainsRange(DateRange{Start: c.StartDate, End: c.EndDate}) {
			iterations = append(iterations, c)
		}
	}
	return iterations
}

// LengthWeeks returns the cycle's length in whole weeks (rounded up).
// Zero when dates are missing.
func (c Cycle) LengthWeeks() int {
	if c.StartDate.IsZero() || c.EndDate.IsZero() {
		return 0
	}
	return WeeksBetween(c.StartDate, c.EndDate)
}

// Quarters returns only the quarterly cycles, in slice order.
func Quarters(cycles []Cycle) []Cycle {
	var quarters []Cycle
	for _, c := range cycles {
		if c.IsQuarter() {
			quarters = append(quarters, c)
		}
	}
	return quarters
}
