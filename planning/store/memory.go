// Package store provides EntityStore implementations.
package store

import (
	"context"
	"sort"
	"sync"

	"github.com/warp/planning-engine/planning"
)

// =============================================================================
// MEMORY STORE - In-memory implementation (for testing/dev)
// =============================================================================

type Memory struct {
	mu sync.RWMutex

	teams            map[planning.TeamID]planning.Team
	people           map[planning.PersonID]planning.Person
	roles            map[planning.RoleID]planning.Role
	cycles           map[planning.CycleID]planning.Cycle
	allocations      map[planning.AllocationID]planning.Allocation
	projects         map[planning.ProjectID]planning.Project
	epics            map[planning.EpicID]planning.Epic
	runCategories    map[planning.RunWorkCategoryID]planning.RunWorkCategory
	skills           map[planning.SkillID]planning.Skill
	personSkills     map[string]planning.PersonSkill
	solutions        map[planning.SolutionID]planning.Solution
	projectSolutions map[string]planning.ProjectSolution
	projectSkills    map[string]planning.ProjectSkill
}

func NewMemory() *Memory {
	m := &Memory{}
	m.reset()
	return m
}

func (m *Memory) reset() {
	m.teams = make(map[planning.TeamID]planning.Team)
	m.people = make(map[planning.PersonID]planning.Person)
	m.roles = make(map[planning.RoleID]planning.Role)
	m.cycles = make(map[planning.CycleID]planning.Cycle)
	m.allocations = make(map[planning.AllocationID]planning.Allocation)
	m.projects = make(map[planning.ProjectID]planning.Project)
	m.epics = make(map[planning.EpicID]planning.Epic)
	m.runCategories = make(map[planning.RunWorkCategoryID]planning.RunWorkCategory)
	m.skills = make(map[planning.SkillID]planning.Skill)
	m.personSkills = make(map[string]planning.PersonSkill)
	m.solutions = make(map[planning.SolutionID]planning.Solution)
	m.projectSolutions = make(map[string]planning.ProjectSolution)
	m.projectSkills = make(map[string]planning.ProjectSkill)
}

// =============================================================================
// TEAMS
// =============================================================================

func (m *Memory) SaveTeam(_ context.Context, t planning.Team) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.teams[t.ID] = t
	return nil
}

func (m *Memory) GetTeam(_ context.Context, id planning.TeamID) (planning.Team, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	t, ok := m.teams[id]
	if !ok {
		return planning.Team{}, &planning.NotFoundError{Kind: "team", ID: string(id)}
	}
	return t, nil
}

func (m *Memory) ListTeams(_ context.Context) ([]planning.Team, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]planning.Team, 0, len(m.teams))
	for _, t := range m.teams {
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// =============================================================================
// PEOPLE AND ROLES
// =============================================================================

func (m *Memory) SavePerson(_ context.Context, p planning.Person) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.people[p.ID] = p
	return nil
}

func (m *Memory) ListPeople(_ context.Context) ([]planning.Person, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]planning.Person, 0, len(m.people))
	for _, p := range m.people {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (m *Memory) SaveRole(_ context.Context, r planning.Role) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.roles[r.ID] = r
	return nil
}

func (m *Memory) ListRoles(_ context.Context) ([]planning.Role, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]planning.Role, 0, len(m.roles))
	for _, r := range m.roles {
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// =============================================================================
// CYCLES
// =============================================================================

func (m *Memory) SaveCycle(_ context.Context, c planning.Cycle) error {
	if !c.StartDate.IsZero() && !c.EndDate.IsZero() && c.EndDate.Before(c.StartDate) {
		return planning.ErrInvalidCycle
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.cycles[c.ID] = c
	return nil
}

func (m *Memory) GetCycle(_ context.Context, id planning.CycleID) (planning.Cycle, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	c, ok := m.cycles[id]
	if !ok {
		return planning.Cycle{}, &planning.NotFoundError{Kind: "cycle", ID: string(id)}
	}
	return c, nil
}

func (m *Memory) ListCycles(_ context.Context) ([]planning.Cycle, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]planning.Cycle, 0, len(m.cycles))
	for _, c := range m.cycles {
		out = append(out, c)
	}
	// Chronological, then by id for stable ordering of same-day cycles.
	sort.Slice(out, func(i, j int) bool {
		if !out[i].StartDate.Equal(out[j].StartDate) {
			return out[i].StartDate.Before(out[j].StartDate)
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

// =============================================================================
// ALLOCATIONS
// =============================================================================

func (m *Memory) SaveAllocation(_ context.Context, a planning.Allocation) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.allocations[a.ID] = a
	return nil
}

func (m *Memory) ListAllocations(_ context.Context) ([]planning.Allocation, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]planning.Allocation, 0, len(m.allocations))
	for _, a := range m.allocations {
		out = append(out, a)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (m *Memory) DeleteAllocation(_ context.Context, id planning.AllocationID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.allocations[id]; !ok {
		return &planning.NotFoundError{Kind: "allocation", ID: string(id)}
	}
	delete(m.allocations, id)
	return nil
}

// =============================================================================
// WORK ITEMS
// =============================================================================

func (m *Memory) SaveProject(_ context.Context, p planning.Project) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.projects[p.ID] = p
	return nil
}

func (m *Memory) GetProject(_ context.Context, id planning.ProjectID) (planning.Project, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	p, ok := m.projects[id]
	if !ok {
		return planning.Project{}, &planning.NotFoundError{Kind: "project", ID: string(id)}
	}
	return p, nil
}

func (m *Memory) ListProjects(_ context.Context) ([]planning.Project, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]planning.Project, 0, len(m.projects))
	for _, p := range m.projects {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (m *Memory) SaveEpic(_ context.Context, e planning.Epic) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.epics[e.ID] = e
	return nil
}

func (m *Memory) ListEpics(_ context.Context) ([]planning.Epic, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]planning.Epic, 0, len(m.epics))
	for _, e := range m.epics {
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (m *Memory) SaveRunWorkCategory(_ context.Context, c planning.RunWorkCategory) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.runCategories[c.ID] = c
	return nil
}

func (m *Memory) ListRunWorkCategories(_ context.Context) ([]planning.RunWorkCategory, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]planning.RunWorkCategory, 0, len(m.runCategories))
	for _, c := range m.runCategories {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// =============================================================================
// SKILLS
// =============================================================================

func (m *Memory) SaveSkill(_ context.Context, s planning.Skill) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.skills[s.ID] = s
	return nil
}

func (m *Memory) ListSkills(_ context.Context) ([]planning.Skill, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]planning.Skill, 0, len(m.skills))
	for _, s := range m.skills {
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (m *Memory) SavePersonSkill(_ context.Context, ps planning.PersonSkill) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.personSkills[ps.ID] = ps
	return nil
}

func (m *Memory) ListPersonSkills(_ context.Context) ([]planning.PersonSkill, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]planning.PersonSkill, 0, len(m.personSkills))
	for _, ps := range m.personSkills {
		out = append(out, ps)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (m *Memory) SaveSolution(_ context.Context, s planning.Solution) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.solutions[s.ID] = s
	return nil
}

func (m *Memory) ListSolutions(_ context.Context) ([]planning.Solution, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]planning.Solution, 0, len(m.solutions))
	for _, s := range m.solutions {
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (m *Memory) SaveProjectSolution(_ context.Context, ps planning.ProjectSolution) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.projectSolutions[ps.ID] = ps
	return nil
}

func (m *Memory) ListProjectSolutions(_ context.Context) ([]planning.ProjectSolution, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]planning.ProjectSolution, 0, len(m.projectSolutions))
	for _, ps := range m.projectSolutions {
		out = append(out, ps)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (m *Memory) SaveProjectSkill(_ context.Context, ps planning.ProjectSkill) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.projectSkills[ps.ID] = ps
	return nil
}

func (m *Memory) ListProjectSkills(_ context.Context) ([]planning.ProjectSkill, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]planning.ProjectSkill, 0, len(m.projectSkills))
	for _, ps := range m.projectSkills {
		out = append(out, ps)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// =============================================================================
// SNAPSHOT AND RESET
// =============================================================================

func (m *Memory) Snapshot(ctx context.Context) (*planning.Snapshot, error) {
	snap := &planning.Snapshot{}
	var err error
	if snap.Teams, err = m.ListTeams(ctx); err != nil {
		return nil, err
	}
	if snap.People, err = m.ListPeople(ctx); err != nil {
		return nil, err
	}
	if snap.Roles, err = m.ListRoles(ctx); err != nil {
		return nil, err
	}
	if snap.Cycles, err = m.ListCycles(ctx); err != nil {
		return nil, err
	}
	if snap.Allocations, err = m.ListAllocations(ctx); err != nil {
		return nil, err
	}
	if snap.Projects, err = m.ListProjects(ctx); err != nil {
		return nil, err
	}
	if snap.Epics, err = m.ListEpics(ctx); err != nil {
		return nil, err
	}
	if snap.RunWorkCategories, err = m.ListRunWorkCategories(ctx); err != nil {
		return nil, err
	}
	if snap.Skills, err = m.ListSkills(ctx); err != nil {
		return nil, err
	}
	if snap.PersonSkills, err = m.ListPersonSkills(ctx); err != nil {
		return nil, err
	}
	if snap.Solutions, err = m.ListSolutions(ctx); err != nil {
		return nil, err
	}
	if snap.ProjectSolutions, err = m.ListProjectSolutions(ctx); err != nil {
		return nil, err
	}
	if snap.ProjectSkills, err = m.ListProjectSkills(ctx); err != nil {
		return nil, err
	}
	return snap, nil
}

func (m *Memory) Reset(_ context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.reset()
	return nil
}
