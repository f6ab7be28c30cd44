/*
Package skills cross-references project skill requirements against team and
person skill records.

PURPOSE:
  Projects require skills transitively through their attached solutions
  (plus manual additions). This package derives that requirement set,
  classifies organizational coverage per skill (covered/partial/missing),
  and scores team-to-project compatibility for staffing decisions.

DESIGN PRINCIPLES:
  1. Totality: missing lookups degrade to fallback names and zero scores
  2. Named thresholds: the 50% coverage boundary and the 0.3/0.5/0.7
     recommendation bands live in Config, not inline literals
  3. Pure projections: nothing here mutates the entity collections

SEE ALSO:
  - coverage.go: Per-skill coverage classification
  - compatibility.go: Team-to-project match scoring
*/
package skills

import (
	"github.com/warp/planning-engine/planning"
)

// =============================================================================
// CONFIG - Named skill policy constants
// =============================================================================

// Config carries the skill-analysis policy knobs.
type Config struct {
	// CoveredThreshold is the global coverage percent at or above which a
	// skill counts as covered (boundary inclusive).
	CoveredThreshold float64

	// Recommendation bands for compatibility scores (exclusive lower bounds).
	ExcellentScore float64
	GoodScore      float64
	FairScore      float64

	// ImportanceWeights weight required skills in compatibility scoring.
	ImportanceWeights map[planning.ImportanceLevel]float64
}

// DefaultConfig returns the standard skill policy.
func DefaultConfig() Config {
	return Config{
		CoveredThreshold: 50,
		ExcellentScore:   0.7,
		GoodScore:        0.5,
		FairScore:        0.3,
		ImportanceWeights: map[planning.ImportanceLevel]float64{
			planning.ImportanceLow:    1,
			planning.ImportanceMedium: 2,
			planning.ImportanceHigh:   3,
		},
	}
}

func (c Config) importanceWeight(level planning.ImportanceLevel) float64 {
	if w, ok := c.ImportanceWeights[level]; ok {
		return w
	}
	return 1
}

// =============================================================================
// REQUIRED SKILLS
// =============================================================================

type RequirementSource string

const (
	SourceSolution RequirementSource = "solution"
	SourceManual   RequirementSource = "manual"
)

// SkillRequirement is one skill a project needs, with provenance.
type SkillRequirement struct {
	SkillID    planning.SkillID
	SkillName  string
	Importance planning.ImportanceLevel
	Source     RequirementSource
	SolutionID planning.SolutionID // set for solution-derived requirements
}

// GetProjectRequiredSkills derives a project's required skills: each
// attached solution contributes its skill set tagged with the attachment's
// importance, then manual skill links fill in anything not already present.
// Duplicates resolve to the highest importance seen.
func GetProjectRequiredSkills(
	project planning.Project,
	manualSkills []planning.ProjectSkill,
	solutions []planning.Solution,
	skills []planning.Skill,
	projectSolutions []planning.ProjectSolution,
) []SkillRequirement {
	nameByID := make(map[planning.SkillID]string, len(skills))
	for _, s := range skills {
		nameByID[s.ID] = s.Name
	}
	skillName := func(id planning.SkillID) string {
		if name, ok := nameByID[id]; ok {
			return name
		}
		// Missing taxonomy entry: show the id rather than fail.
		return string(id)
	}

	solutionByID := make(map[planning.SolutionID]planning.Solution, len(solutions))
	for _, s := range solutions {
		solutionByID[s.ID] = s
	}

	bySkill := make(map[planning.SkillID]int) // skill id -> index into result
	var result []SkillRequirement

	for _, ps := range projectSolutions {
		if ps.ProjectID != project.ID {
			continue
		}
		solution, ok := solutionByID[ps.SolutionID]
		if !ok {
			continue
		}
		for _, skillID := range solution.SkillIDs {
			if idx, seen := bySkill[skillID]; seen {
				if importanceRank(ps.Importance) > importanceRank(result[idx].Importance) {
					result[idx].Importance = ps.Importance
					result[idx].SolutionID = solution.ID
				}
				continue
			}
			bySkill[skillID] = len(result)
			result = append(result, SkillRequirement{
				SkillID:    skillID,
				SkillName:  skillName(skillID),
				Importance: ps.Importance,
				Source:     SourceSolution,
				SolutionID: solution.ID,
			})
		}
	}

	for _, ms := range manualSkills {
		if ms.ProjectID != project.ID {
			continue
		}
		if _, seen := bySkill[ms.SkillID]; seen {
			continue
		}
		bySkill[ms.SkillID] = len(result)
		result = append(result, SkillRequirement{
			SkillID:    ms.SkillID,
			SkillName:  skillName(ms.SkillID),
			Importance: planning.ImportanceMedium,
			Source:     SourceManual,
		})
	}

	return result
}

func importanceRank(level planning.ImportanceLevel) int {
	switch level {
	case planning.ImportanceHigh:
		return 3
	case planning.ImportanceMedium:
		return 2
	case planning.ImportanceLow:
		return 1
	default:
		return 0
	}
}
