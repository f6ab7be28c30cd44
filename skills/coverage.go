package skills

import (
	"github.com/warp/planning-engine/planning"
)

// =============================================================================
// COVERAGE CLASSIFICATION
// =============================================================================

type CoverageStatus string

const (
	CoverageCovered CoverageStatus = "covered"
	CoveragePartial CoverageStatus = "partial"
	CoverageMissing CoverageStatus = "missing"
)

// SkillCoverage classifies how well the organization covers one required
// skill.
type SkillCoverage struct {
	Requirement     SkillRequirement
	Status          CoverageStatus
	TeamsWithSkill  []planning.TeamID
	HolderCount     int
	CoveragePercent float64
}

// AnalyzeSkillCoverage classifies each required skill against the
// organization: teams targeting the skill, plus people individually holding
// it who aren't already counted through such a team.
//
// Classification:
//   - covered: a skill-tagged team has at least one member, or global
//     coverage is at or above the configured threshold
//   - partial: a skill-tagged team exists but is empty, or coverage is
//     above zero but below the threshold
//   - missing: otherwise
func AnalyzeSkillCoverage(
	required []SkillRequirement,
	teams []planning.Team,
	people []planning.Person,
	personSkills []planning.PersonSkill,
	cfg Config,
) []SkillCoverage {
	membersByTeam := make(map[planning.TeamID][]planning.Person)
	for _, p := range people {
		membersByTeam[p.TeamID] = append(membersByTeam[p.TeamID], p)
	}

	holdersBySkill := make(map[planning.SkillID]map[planning.PersonID]bool)
	for _, ps := range personSkills {
		if holdersBySkill[ps.SkillID] == nil {
			holdersBySkill[ps.SkillID] = make(map[planning.PersonID]bool)
		}
		holdersBySkill[ps.SkillID][ps.PersonID] = true
	}

	result := make([]SkillCoverage, 0, len(required))
	for _, req := range required {
		coverage := SkillCoverage{Requirement: req}

		hasStaffedTeam := false
		hasEmptyTaggedTeam := false
		counted := make(map[planning.PersonID]bool)

		for _, team := range teams {
			if !teamTargetsSkill(team, req.SkillID) {
				continue
			}
			coverage.TeamsWithSkill = append(coverage.TeamsWithSkill, team.ID)
			members := membersByTeam[team.ID]
			if len(members) > 0 {
				hasStaffedTeam = true
				for _, m := range members {
					counted[m.ID] = true
				}
			} else {
				hasEmptyTaggedTeam = true
			}
		}

		// People holding the skill individually, not already counted via a
		// tagged team.
		for personID := range holdersBySkill[req.SkillID] {
			counted[personID] = true
		}
		coverage.HolderCount = len(counted)

		switch {
		case len(people) > 0:
			coverage.CoveragePercent = float64(coverage.HolderCount) / float64(len(people)) * 100
		case len(coverage.TeamsWithSkill) > 0:
			coverage.CoveragePercent = 100
		default:
			coverage.CoveragePercent = 0
		}

		switch {
		case hasStaffedTeam:
			coverage.Status = CoverageCovered
		case coverage.CoveragePercent >= cfg.CoveredThreshold:
			coverage.Status = CoverageCovered
		case hasEmptyTaggedTeam:
			coverage.Status = CoveragePartial
		case coverage.CoveragePercent > 0:
			coverage.Status = CoveragePartial
		default:
			coverage.Status = CoverageMissing
		}

		result = append(result, coverage)
	}
	return result
}

func teamTargetsSkill(team planning.Team, skillID planning.SkillID) bool {
	for _, s := range team.TargetSkills {
		if s == skillID {
			return true
		}
	}
	return false
}
