/*
Package finance estimates the cost impact of allocations and rolls costs up
per quarter.

PURPOSE:
  Turns team role composition (headcount x role cost rate) and cycle length
  into per-allocation, per-team, and per-quarter cost estimates, and compares
  quarter spend against a budget to produce an under/optimal/over status.

KEY CONCEPTS IN THIS FILE (cost.go):
  - CostBreakdown: a team's weekly/monthly/quarterly run rate by role
  - CostImpact: what one allocation costs over one cycle
  - QuarterFinancials: spend per team for a quarter vs. budget

DESIGN PRINCIPLES:
  1. Precision: uses decimal.Decimal for all money, never float64
  2. Totality: missing roles or cycles degrade to zero cost, not errors
  3. Determinism: same inputs always produce the same estimate
  4. Named thresholds: budget bands live in Config, not inline literals

SEE ALSO:
  - allocation/: Produces the effective percentages costed here
  - factory/: Parses Config from JSON
*/
package finance

import (
	"strings"

	"github.com/shopspring/decimal"

	"github.com/warp/planning-engine/allocation"
	"github.com/warp/planning-engine/planning"
)

// =============================================================================
// CONFIG - Named financial policy constants
// =============================================================================

// Config carries the financial policy knobs. Thresholds are ratios of spend
// to budget: below Under the quarter is under-spent, above Over it is
// over-spent, in between it is optimal.
type Config struct {
	CurrencySymbol string

	WeeksPerMonth   decimal.Decimal
	WeeksPerQuarter decimal.Decimal

	UnderBudgetRatio decimal.Decimal
	OverBudgetRatio  decimal.Decimal
}

// DefaultConfig returns the standard financial policy: USD display, a
// 13-week quarter, and a 90%-110% optimal band.
func DefaultConfig() Config {
	return Config{
		CurrencySymbol:   "$",
		WeeksPerMonth:    decimal.NewFromFloat(13.0 / 3.0),
		WeeksPerQuarter:  decimal.NewFromInt(13),
		UnderBudgetRatio: decimal.NewFromFloat(0.9),
		OverBudgetRatio:  decimal.NewFromFloat(1.1),
	}
}

// =============================================================================
// TEAM COST BREAKDOWN
// =============================================================================

// RoleCost is the weekly cost contribution of one role within a team.
type RoleCost struct {
	RoleID     planning.RoleID
	RoleName   string
	Headcount  int
	WeeklyCost decimal.Decimal
}

// CostBreakdown is a team's run rate derived from its members.
type CostBreakdown struct {
	TeamID             planning.TeamID
	TotalWeeklyCost    decimal.Decimal
	TotalMonthlyCost   decimal.Decimal
	TotalQuarterlyCost decimal.Decimal
	RoleBreakdown      []RoleCost
}

// CalculateTeamCostBreakdown derives a team's cost run rate from its
// members. A person's weekly cost is their annual salary divided by 52 when
// set, otherwise their role's weekly rate. People with no resolvable rate
// contribute zero.
func CalculateTeamCostBreakdown(team planning.Team, people []planning.Person, roles []planning.Role, cfg Config) CostBreakdown {
	roleByID := make(map[planning.RoleID]planning.Role, len(roles))
	for _, r := range roles {
		roleByID[r.ID] = r
	}

	weeksInYear := decimal.NewFromInt(52)
	totalWeekly := decimal.Zero
	perRole := make(map[planning.RoleID]*RoleCost)
	var roleOrder []planning.RoleID

	for _, p := range people {
		if p.TeamID != team.ID {
			continue
		}

		weekly := decimal.Zero
		if p.AnnualSalary != nil {
			weekly = p.AnnualSalary.Div(weeksInYear)
		} else if r, ok := roleByID[p.RoleID]; ok {
			weekly = r.WeeklyRate
		}
		totalWeekly = totalWeekly.Add(weekly)

		rc, ok := perRole[p.RoleID]
		if !ok {
			name := string(p.RoleID)
			if r, found := roleByID[p.RoleID]; found {
				name = r.Name
			}
			rc = &RoleCost{RoleID: p.RoleID, RoleName: name}
			perRole[p.RoleID] = rc
			roleOrder = append(roleOrder, p.RoleID)
		}
		rc.Headcount++
		rc.WeeklyCost = rc.WeeklyCost.Add(weekly)
	}

	breakdown := CostBreakdown{
		TeamID:             team.ID,
		TotalWeeklyCost:    totalWeekly,
		TotalMonthlyCost:   totalWeekly.Mul(cfg.WeeksPerMonth),
		TotalQuarterlyCost: totalWeekly.Mul(cfg.WeeksPerQuarter),
	}
	for _, id := range roleOrder {
		breakdown.RoleBreakdown = append(breakdown.RoleBreakdown, *perRole[id])
	}
	return breakdown
}

// =============================================================================
// ALLOCATION COST IMPACT
// =============================================================================

// CostImpact is the estimated cost of one allocation over one cycle.
type CostImpact struct {
	CycleCost        decimal.Decimal
	CycleLengthWeeks int
	WorkItemName     string
}

// CalculateAllocationCostImpact estimates what an allocation costs over the
// given cycle: team weekly cost x cycle weeks x percentage.
func CalculateAllocationCostImpact(
	alloc planning.Allocation,
	team planning.Team,
	cycle planning.Cycle,
	breakdown CostBreakdown,
	projects []planning.Project,
	epics []planning.Epic,
) CostImpact {
	weeks := cycle.LengthWeeks()
	fraction := decimal.NewFromFloat(alloc.Percentage).Div(decimal.NewFromInt(100))
	cost := breakdown.TotalWeeklyCost.Mul(decimal.NewFromInt(int64(weeks))).Mul(fraction)

	return CostImpact{
		CycleCost:        cost,
		CycleLengthWeeks: weeks,
		WorkItemName:     workItemName(alloc, projects, epics),
	}
}

// workItemName resolves a display name for the allocation's work item,
// degrading to fallback strings rather than failing on missing lookups.
func workItemName(alloc planning.Allocation, projects []planning.Project, epics []planning.Epic) string {
	if alloc.IsRunWork() {
		return "Run Work"
	}
	if alloc.EpicID == "" {
		return ""
	}
	for _, e := range epics {
		if e.ID != alloc.EpicID {
			continue
		}
		for _, p := range projects {
			if p.ID == e.ProjectID {
				return p.Name + " / " + e.Name
			}
		}
		return e.Name
	}
	return "Unknown Epic"
}

// =============================================================================
// QUARTER ROLLUP
// =============================================================================

type BudgetStatus string

const (
	BudgetUnder   BudgetStatus = "under"
	BudgetOptimal BudgetStatus = "optimal"
	BudgetOver    BudgetStatus = "over"
)

// TeamQuarterCost is one team's estimated spend for a quarter.
type TeamQuarterCost struct {
	TeamID    planning.TeamID
	TeamName  string
	Allocated float64 // effective percentage for the quarter
	Cost      decimal.Decimal
}

// QuarterFinancials is the per-quarter cost summary across teams.
type QuarterFinancials struct {
	QuarterID planning.CycleID
	TeamCosts []TeamQuarterCost
	TotalCost decimal.Decimal
	Budget    decimal.Decimal
	Status    BudgetStatus
}

// CalculateQuarterFinancials rolls up estimated spend for every team in a
// quarter and classifies it against the budget. A zero budget classifies any
// spend as over; budget tracking is opt-in.
func CalculateQuarterFinancials(
	quarterID planning.CycleID,
	teams []planning.Team,
	people []planning.Person,
	roles []planning.Role,
	allocations []planning.Allocation,
	cycles []planning.Cycle,
	epics []planning.Epic,
	budget decimal.Decimal,
	cfg Config,
) QuarterFinancials {
	quarter, _ := planning.FindCycle(cycles, quarterID)
	weeks := decimal.NewFromInt(int64(quarter.LengthWeeks()))

	summary := QuarterFinancials{QuarterID: quarterID, Budget: budget, TotalCost: decimal.Zero}

	for _, team := range teams {
		check := allocation.CalculateTeamCapacity(team, allocation.QuarterPeriod(quarterID), allocations, cycles, epics)
		if len(check.Allocations) == 0 {
			continue
		}

		breakdown := CalculateTeamCostBreakdown(team, people, roles, cfg)
		fraction := decimal.NewFromFloat(check.Allocated).Div(decimal.NewFromInt(100))
		cost := breakdown.TotalWeeklyCost.Mul(weeks).Mul(fraction)

		summary.TeamCosts = append(summary.TeamCosts, TeamQuarterCost{
			TeamID:    team.ID,
			TeamName:  team.Name,
			Allocated: check.Allocated,
			Cost:      cost,
		})
		summary.TotalCost = summary.TotalCost.Add(cost)
	}

	summary.Status = classifyBudget(summary.TotalCost, budget, cfg)
	return summary
}

func classifyBudget(cost, budget decimal.Decimal, cfg Config) BudgetStatus {
	if budget.IsZero() {
		if cost.IsZero() {
			return BudgetOptimal
		}
		return BudgetOver
	}
	ratio := cost.Div(budget)
	switch {
	case ratio.LessThan(cfg.UnderBudgetRatio):
		return BudgetUnder
	case ratio.GreaterThan(cfg.OverBudgetRatio):
		return BudgetOver
	default:
		return BudgetOptimal
	}
}

// =============================================================================
// CURRENCY FORMATTING
// =============================================================================

// FormatCurrency renders an amount for display: symbol, thousands grouping,
// whole units. Carries no calculation semantics.
func FormatCurrency(amount decimal.Decimal, cfg Config) string {
	symbol := cfg.CurrencySymbol
	if symbol == "" {
		symbol = "$"
	}

	negative := amount.IsNegative()
	digits := amount.Abs().Round(0).String()

	var b strings.Builder
	if negative {
		b.WriteString("-")
	}
	b.WriteString(symbol)

	lead := len(digits) % 3
	if lead > 0 {
		b.WriteString(digits[:lead])
		if len(digits) > lead {
			b.WriteString(",")
		}
	}
	for i := lead; i < len(digits); i += 3 {
		b.WriteString(digits[i : i+3])
		if i+3 < len(digits) {
			b.WriteString(",")
		}
	}
	return b.String()
}
