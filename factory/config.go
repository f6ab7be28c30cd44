/*
Package factory provides JSON to Go planning-configuration conversion.

PURPOSE:
  Converts JSON configuration into finance.Config and skills.Config. This
  keeps the policy knobs (currency, budget bands, coverage threshold,
  recommendation bands, importance weights) out of code - an admin can tune
  them without a rebuild, and scenarios can ship their own.

JSON SCHEMA:
  {
    "currency_symbol": "$",
    "weeks_per_quarter": 13,
    "under_budget_ratio": 0.9,
    "over_budget_ratio": 1.1,
    "covered_threshold": 50,
    "excellent_score": 0.7,
    "good_score": 0.5,
    "fair_score": 0.3,
    "importance_weights": {"low": 1, "medium": 2, "high": 3}
  }

  Every field is optional; omitted fields keep the package defaults.

USAGE:
  financeCfg, skillsCfg, err := factory.ParseConfig(jsonStr)

SEE ALSO:
  - finance/cost.go: finance.Config and DefaultConfig
  - skills/requirements.go: skills.Config and DefaultConfig
*/
package factory

import (
	"encoding/json"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/warp/planning-engine/finance"
	"github.com/warp/planning-engine/planning"
	"github.com/warp/planning-engine/skills"
)

// =============================================================================
// JSON SCHEMA TYPES
// =============================================================================

// ConfigJSON is the JSON representation of the planning configuration.
// Pointer fields distinguish "absent" from zero.
type ConfigJSON struct {
	CurrencySymbol string `json:"currency_symbol,omitempty"`

	WeeksPerQuarter  *float64 `json:"weeks_per_quarter,omitempty"`
	UnderBudgetRatio *float64 `json:"under_budget_ratio,omitempty"`
	OverBudgetRatio  *float64 `json:"over_budget_ratio,omitempty"`

	CoveredThreshold *float64 `json:"covered_threshold,omitempty"`
	ExcellentScore   *float64 `json:"excellent_score,omitempty"`
	GoodScore        *float64 `json:"good_score,omitempty"`
	FairScore        *float64 `json:"fair_score,omitempty"`

	ImportanceWeights map[string]float64 `json:"importance_weights,omitempty"`
}

// =============================================================================
// PARSING
// =============================================================================

// ParseConfig parses a JSON string into finance and skills configurations,
// applying package defaults for anything omitted.
func ParseConfig(jsonStr string) (finance.Config, skills.Config, error) {
	var cj ConfigJSON
	if err := json.Unmarshal([]byte(jsonStr), &cj); err != nil {
		return finance.Config{}, skills.Config{}, fmt.Errorf("failed to parse config JSON: %w", err)
	}
	financeCfg, skillsCfg := FromJSON(cj)
	return financeCfg, skillsCfg, nil
}

// FromJSON converts a parsed ConfigJSON into the two package configs.
func FromJSON(cj ConfigJSON) (finance.Config, skills.Config) {
	financeCfg := finance.DefaultConfig()
	skillsCfg := skills.DefaultConfig()

	if cj.CurrencySymbol != "" {
		financeCfg.CurrencySymbol = cj.CurrencySymbol
	}
	if cj.WeeksPerQuarter != nil {
		financeCfg.WeeksPerQuarter = decimal.NewFromFloat(*cj.WeeksPerQuarter)
		financeCfg.WeeksPerMonth = financeCfg.WeeksPerQuarter.Div(decimal.NewFromInt(3))
	}
	if cj.UnderBudgetRatio != nil {
		financeCfg.UnderBudgetRatio = decimal.NewFromFloat(*cj.UnderBudgetRatio)
	}
	if cj.OverBudgetRatio != nil {
		financeCfg.OverBudgetRatio = decimal.NewFromFloat(*cj.OverBudgetRatio)
	}

	if cj.CoveredThreshold != nil {
		skillsCfg.CoveredThreshold = *cj.CoveredThreshold
	}
	if cj.ExcellentScore != nil {
		skillsCfg.ExcellentScore = *cj.ExcellentScore
	}
	if cj.GoodScore != nil {
		skillsCfg.GoodScore = *cj.GoodScore
	}
	if cj.FairScore != nil {
		skillsCfg.FairScore = *cj.FairScore
	}
	if len(cj.ImportanceWeights) > 0 {
		weights := make(map[planning.ImportanceLevel]float64, len(cj.ImportanceWeights))
		for k, v := range cj.ImportanceWeights {
			weights[planning.ImportanceLevel(k)] = v
		}
		skillsCfg.ImportanceWeights = weights
	}

	return financeCfg, skillsCfg
}
