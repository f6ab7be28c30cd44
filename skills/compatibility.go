package skills

import (
	"fmt"

	"github.com/warp/planning-engine/planning"
)

// =============================================================================
// TEAM-PROJECT COMPATIBILITY
// =============================================================================

type Recommendation string

const (
	RecommendationExcellent Recommendation = "excellent"
	RecommendationGood      Recommendation = "good"
	RecommendationFair      Recommendation = "fair"
	RecommendationPoor      Recommendation = "poor"
)

// Compatibility scores how well a team's skills match a project's
// requirements.
type Compatibility struct {
	CompatibilityScore float64 // 0..1, importance-weighted match fraction
	SkillsMatched      int
	SkillsRequired     int
	Recommendation     Recommendation
	Reasoning          []string
}

// CalculateTeamProjectCompatibility scores a team against a project's
// required skills. A skill counts as matched when it appears in the team's
// target skills or is held by one of the team's members. The score is the
// importance-weighted fraction of requirements matched.
func CalculateTeamProjectCompatibility(
	team planning.Team,
	project planning.Project,
	manualSkills []planning.ProjectSkill,
	solutions []planning.Solution,
	skills []planning.Skill,
	projectSolutions []planning.ProjectSolution,
	people []planning.Person,
	personSkills []planning.PersonSkill,
	cfg Config,
) Compatibility {
	required := GetProjectRequiredSkills(project, manualSkills, solutions, skills, projectSolutions)

	if len(required) == 0 {
		return Compatibility{
			CompatibilityScore: 1,
			Recommendation:     RecommendationExcellent,
			Reasoning:          []string{fmt.Sprintf("%s has no skill requirements", project.Name)},
		}
	}

	teamSkills := teamSkillSet(team, people, personSkills)

	var matchedWeight, totalWeight float64
	var matched int
	var missing []SkillRequirement

	for _, req := range required {
		weight := cfg.importanceWeight(req.Importance)
		totalWeight += weight
		if teamSkills[req.SkillID] {
			matchedWeight += weight
			matched++
		} else {
			missing = append(missing, req)
		}
	}

	score := 0.0
	if totalWeight > 0 {
		score = matchedWeight / totalWeight
	}

	result := Compatibility{
		CompatibilityScore: score,
		SkillsMatched:      matched,
		SkillsRequired:     len(required),
		Recommendation:     classifyScore(score, cfg),
	}

	result.Reasoning = append(result.Reasoning,
		fmt.Sprintf("%s matches %d of %d required skills", team.Name, matched, len(required)))
	for _, req := range missing {
		if req.Importance == planning.ImportanceHigh {
			result.Reasoning = append(result.Reasoning,
				fmt.Sprintf("missing high-importance skill: %s", req.SkillName))
		}
	}
	if len(missing) > 0 && result.Recommendation == RecommendationPoor {
		result.Reasoning = append(result.Reasoning, "consider cross-team staffing or hiring")
	}

	return result
}

// teamSkillSet collects the skills a team can bring to a project: its
// declared target skills plus everything its members hold.
func teamSkillSet(team planning.Team, people []planning.Person, personSkills []planning.PersonSkill) map[planning.SkillID]bool {
	set := make(map[planning.SkillID]bool, len(team.TargetSkills))
	for _, s := range team.TargetSkills {
		set[s] = true
	}

	members := make(map[planning.PersonID]bool)
	for _, p := range people {
		if p.TeamID == team.ID {
			members[p.ID] = true
		}
	}
	for _, ps := range personSkills {
		if members[ps.PersonID] {
			set[ps.SkillID] = true
		}
	}
	return set
}

func classifyScore(score float64, cfg Config) Recommendation {
	switch {
	case score > cfg.ExcellentScore:
		return RecommendationExcellent
	case score > cfg.GoodScore:
		return RecommendationGood
	case score > cfg.FairScore:
		return RecommendationFair
	default:
		return RecommendationPoor
	}
}
