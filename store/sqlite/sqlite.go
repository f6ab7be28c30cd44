/*
Package sqlite provides a SQLite-backed implementation of planning.EntityStore.

PURPOSE:
  Persists the planning entity collections using SQLite. In production the
  same patterns apply to PostgreSQL - only minor SQL dialect differences.

KEY TABLES:
  teams, people, roles:                    org structure and cost rates
  cycles:                                  quarter/iteration tree (TEXT dates)
  allocations:                             team percentage assignments
  projects, epics, run_work_categories:    work items
  skills, person_skills:                   skill taxonomy and holdings
  solutions, project_solutions,
  project_skills:                          project skill requirements

UPSERT SEMANTICS:
  Save* uses INSERT ... ON CONFLICT(id) DO UPDATE. The engine is a
  single-user planning tool; there is no versioning or optimistic locking.

JSON COLUMNS:
  Skill-id lists (team target skills, solution skill sets) are stored as
  JSON arrays. They are opaque to SQL; all cross-referencing happens in the
  calculators over snapshots.

WAL MODE:
  SQLite is opened with WAL (Write-Ahead Logging):
  - Multiple readers don't block
  - Single writer at a time
  - Better crash recovery

USAGE:
  store, err := sqlite.New("./data/planning.db")
  if err != nil {
      log.Fatal(err)
  }
  defer store.Close()
  snap, err := store.Snapshot(ctx)

MIGRATION:
  Schema is auto-migrated on New(). For production, use a proper
  migration tool (golang-migrate, goose) with versioned migrations.

SEE ALSO:
  - planning/store.go: Interface definition
  - planning/store/memory.go: In-memory implementation for testing
*/
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"sync"

	_ "github.com/mattn/go-sqlite3"
	"github.com/shopspring/decimal"

	"github.com/warp/planning-engine/planning"
)

// Store implements planning.EntityStore using SQLite.
type Store struct {
	db *sql.DB
	mu sync.RWMutex
}

// New creates a new SQLite store with the given database path.
// Use ":memory:" for an in-memory database.
func New(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite3", dbPath+"?_foreign_keys=on&_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}
	return store, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// migrate creates the database schema.
func (s *Store) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS teams (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		capacity REAL NOT NULL,
		division_id TEXT,
		target_skills_json TEXT
	);

	CREATE TABLE IF NOT EXISTS people (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		team_id TEXT,
		role_id TEXT,
		annual_salary TEXT
	);
	CREATE INDEX IF NOT EXISTS idx_people_team ON people(team_id);

	CREATE TABLE IF NOT EXISTS roles (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		weekly_rate TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS cycles (
		id TEXT PRIMARY KEY,
		name TEXT,
		cycle_type TEXT NOT NULL,
		start_date TEXT,
		end_date TEXT,
		parent_cycle_id TEXT
	);
	CREATE INDEX IF NOT EXISTS idx_cycles_parent ON cycles(parent_cycle_id);

	CREATE TABLE IF NOT EXISTS allocations (
		id TEXT PRIMARY KEY,
		team_id TEXT NOT NULL,
		cycle_id TEXT NOT NULL,
		iteration_number INTEGER,
		percentage REAL NOT NULL,
		epic_id TEXT,
		run_work_category_id TEXT,
		notes TEXT
	);
	CREATE INDEX IF NOT EXISTS idx_allocations_team_cycle
		ON allocations(team_id, cycle_id);

	CREATE TABLE IF NOT EXISTS projects (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		description TEXT,
		status TEXT,
		budget TEXT
	);

	CREATE TABLE IF NOT EXISTS epics (
		id TEXT PRIMARY KEY,
		project_id TEXT NOT NULL,
		name TEXT NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_epics_project ON epics(project_id);

	CREATE TABLE IF NOT EXISTS run_work_categories (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS skills (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		category TEXT
	);

	CREATE TABLE IF NOT EXISTS person_skills (
		id TEXT PRIMARY KEY,
		person_id TEXT NOT NULL,
		skill_id TEXT NOT NULL,
		proficiency TEXT
	);
	CREATE INDEX IF NOT EXISTS idx_person_skills_person ON person_skills(person_id);

	CREATE TABLE IF NOT EXISTS solutions (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		skill_ids_json TEXT
	);

	CREATE TABLE IF NOT EXISTS project_solutions (
		id TEXT PRIMARY KEY,
		project_id TEXT NOT NULL,
		solution_id TEXT NOT NULL,
		importance TEXT
	);
	CREATE INDEX IF NOT EXISTS idx_project_solutions_project
		ON project_solutions(project_id);

	CREATE TABLE IF NOT EXISTS project_skills (
		id TEXT PRIMARY KEY,
		project_id TEXT NOT NULL,
		skill_id TEXT NOT NULL
	);
	`
	_, err := s.db.Exec(schema)
	return err
}

// =============================================================================
// TEAMS
// =============================================================================

func (s *Store) SaveTeam(ctx context.Context, t planning.Team) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	skillsJSON, err := json.Marshal(t.TargetSkills)
	if err != nil {
		return fmt.Errorf("failed to encode target skills: %w", err)
	}
	_, err = s.db.ExecContext(ctx, `
		INSERT INTO teams (id, name, capacity, division_id, target_skills_json)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			name=excluded.name, capacity=excluded.capacity,
			division_id=excluded.division_id,
			target_skills_json=excluded.target_skills_json`,
		string(t.ID), t.Name, t.Capacity, t.DivisionID, string(skillsJSON))
	return err
}

func (s *Store) GetTeam(ctx context.Context, id planning.TeamID) (planning.Team, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	row := s.db.QueryRowContext(ctx, `
		SELECT id, name, capacity, division_id, target_skills_json
		FROM teams WHERE id = ?`, string(id))
	t, err := scanTeam(row)
	if err == sql.ErrNoRows {
		return planning.Team{}, &planning.NotFoundError{Kind: "team", ID: string(id)}
	}
	return t, err
}

func (s *Store) ListTeams(ctx context.Context) ([]planning.Team, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name, capacity, division_id, target_skills_json
		FROM teams ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var teams []planning.Team
	for rows.Next() {
		t, err := scanTeam(rows)
		if err != nil {
			return nil, err
		}
		teams = append(teams, t)
	}
	return teams, rows.Err()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanTeam(row scanner) (planning.Team, error) {
	var t planning.Team
	var divisionID, skillsJSON sql.NullString
	if err := row.Scan(&t.ID, &t.Name, &t.Capacity, &divisionID, &skillsJSON); err != nil {
		return planning.Team{}, err
	}
	t.DivisionID = divisionID.String
	if skillsJSON.String != "" {
		if err := json.Unmarshal([]byte(skillsJSON.String), &t.TargetSkills); err != nil {
			return planning.Team{}, fmt.Errorf("failed to decode target skills: %w", err)
		}
	}
	return t, nil
}

// =============================================================================
// PEOPLE AND ROLES
// =============================================================================

func (s *Store) SavePerson(ctx context.Context, p planning.Person) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	var salary sql.NullString
	if p.AnnualSalary != nil {
		salary = sql.NullString{String: p.AnnualSalary.String(), Valid: true}
	}
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO people (id, name, team_id, role_id, annual_salary)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			name=excluded.name, team_id=excluded.team_id,
			role_id=excluded.role_id, annual_salary=excluded.annual_salary`,
		string(p.ID), p.Name, string(p.TeamID), string(p.RoleID), salary)
	return err
}

func (s *Store) ListPeople(ctx context.Context) ([]planning.Person, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name, team_id, role_id, annual_salary FROM people ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var people []planning.Person
	for rows.Next() {
		var p planning.Person
		var teamID, roleID, salary sql.NullString
		if err := rows.Scan(&p.ID, &p.Name, &teamID, &roleID, &salary); err != nil {
			return nil, err
		}
		p.TeamID = planning.TeamID(teamID.String)
		p.RoleID = planning.RoleID(roleID.String)
		if salary.Valid && salary.String != "" {
			d, err := decimal.NewFromString(salary.String)
			if err != nil {
				return nil, fmt.Errorf("failed to decode salary: %w", err)
			}
			p.AnnualSalary = &d
		}
		people = append(people, p)
	}
	return people, rows.Err()
}

func (s *Store) SaveRole(ctx context.Context, r planning.Role) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO roles (id, name, weekly_rate) VALUES (?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			name=excluded.name, weekly_rate=excluded.weekly_rate`,
		string(r.ID), r.Name, r.WeeklyRate.String())
	return err
}

func (s *Store) ListRoles(ctx context.Context) ([]planning.Role, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx, `SELECT id, name, weekly_rate FROM roles ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var roles []planning.Role
	for rows.Next() {
		var r planning.Role
		var rate string
		if err := rows.Scan(&r.ID, &r.Name, &rate); err != nil {
			return nil, err
		}
		d, err := decimal.NewFromString(rate)
		if err != nil {
			return nil, fmt.Errorf("failed to decode weekly rate: %w", err)
		}
		r.WeeklyRate = d
		roles = append(roles, r)
	}
	return roles, rows.Err()
}

// =============================================================================
// CYCLES
// =============================================================================

func (s *Store) SaveCycle(ctx context.Context, c planning.Cycle) error {
	if !c.StartDate.IsZero() && !c.EndDate.IsZero() && c.EndDate.Before(c.StartDate) {
		return planning.ErrInvalidCycle
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO cycles (id, name, cycle_type, start_date, end_date, parent_cycle_id)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			name=excluded.name, cycle_type=excluded.cycle_type,
			start_date=excluded.start_date, end_date=excluded.end_date,
			parent_cycle_id=excluded.parent_cycle_id`,
		string(c.ID), c.Name, string(c.Type),
		dateToDB(c.StartDate), dateToDB(c.EndDate), string(c.ParentCycleID))
	return err
}

func (s *Store) GetCycle(ctx context.Context, id planning.CycleID) (planning.Cycle, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	row := s.db.QueryRowContext(ctx, `
		SELECT id, name, cycle_type, start_date, end_date, parent_cycle_id
		FROM cycles WHERE id = ?`, string(id))
	c, err := scanCycle(row)
	if err == sql.ErrNoRows {
		return planning.Cycle{}, &planning.NotFoundError{Kind: "cycle", ID: string(id)}
	}
	return c, err
}

func (s *Store) ListCycles(ctx context.Context) ([]planning.Cycle, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name, cycle_type, start_date, end_date, parent_cycle_id
		FROM cycles ORDER BY start_date, id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var cycles []planning.Cycle
	for rows.Next() {
		c, err := scanCycle(rows)
		if err != nil {
			return nil, err
		}
		cycles = append(cycles, c)
	}
	return cycles, rows.Err()
}

func scanCycle(row scanner) (planning.Cycle, error) {
	var c planning.Cycle
	var name, start, end, parent sql.NullString
	var cycleType string
	if err := row.Scan(&c.ID, &name, &cycleType, &start, &end, &parent); err != nil {
		return planning.Cycle{}, err
	}
	c.Name = name.String
	c.Type = planning.CycleType(cycleType)
	c.StartDate = dateFromDB(start.String)
	c.EndDate = dateFromDB(end.String)
	c.ParentCycleID = planning.CycleID(parent.String)
	return c, nil
}

func dateToDB(d planning.Date) sql.NullString {
	if d.IsZero() {
		return sql.NullString{}
	}
	return sql.NullString{String: d.String(), Valid: true}
}

func dateFromDB(s string) planning.Date {
	if s == "" {
		return planning.Date{}
	}
	return planning.ParseDate(s)
}

// =============================================================================
// ALLOCATIONS
// =============================================================================

func (s *Store) SaveAllocation(ctx context.Context, a planning.Allocation) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO allocations
			(id, team_id, cycle_id, iteration_number, percentage,
			 epic_id, run_work_category_id, notes)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			team_id=excluded.team_id, cycle_id=excluded.cycle_id,
			iteration_number=excluded.iteration_number,
			percentage=excluded.percentage, epic_id=excluded.epic_id,
			run_work_category_id=excluded.run_work_category_id,
			notes=excluded.notes`,
		string(a.ID), string(a.TeamID), string(a.CycleID), a.IterationNumber,
		a.Percentage, string(a.EpicID), string(a.RunWorkCategoryID), a.Notes)
	return err
}

func (s *Store) ListAllocations(ctx context.Context) ([]planning.Allocation, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, team_id, cycle_id, iteration_number, percentage,
		       epic_id, run_work_category_id, notes
		FROM allocations ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var allocations []planning.Allocation
	for rows.Next() {
		var a planning.Allocation
		var epicID, catID, notes sql.NullString
		var iteration sql.NullInt64
		if err := rows.Scan(&a.ID, &a.TeamID, &a.CycleID, &iteration,
			&a.Percentage, &epicID, &catID, &notes); err != nil {
			return nil, err
		}
		a.IterationNumber = int(iteration.Int64)
		a.EpicID = planning.EpicID(epicID.String)
		a.RunWorkCategoryID = planning.RunWorkCategoryID(catID.String)
		a.Notes = notes.String
		allocations = append(allocations, a)
	}
	return allocations, rows.Err()
}

func (s *Store) DeleteAllocation(ctx context.Context, id planning.AllocationID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	res, err := s.db.ExecContext(ctx, `DELETE FROM allocations WHERE id = ?`, string(id))
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return &planning.NotFoundError{Kind: "allocation", ID: string(id)}
	}
	return nil
}

// =============================================================================
// WORK ITEMS
// =============================================================================

func (s *Store) SaveProject(ctx context.Context, p planning.Project) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO projects (id, name, description, status, budget)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			name=excluded.name, description=excluded.description,
			status=excluded.status, budget=excluded.budget`,
		string(p.ID), p.Name, p.Description, string(p.Status), p.Budget.String())
	return err
}

func (s *Store) GetProject(ctx context.Context, id planning.ProjectID) (planning.Project, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	row := s.db.QueryRowContext(ctx, `
		SELECT id, name, description, status, budget FROM projects WHERE id = ?`,
		string(id))
	p, err := scanProject(row)
	if err == sql.ErrNoRows {
		return planning.Project{}, &planning.NotFoundError{Kind: "project", ID: string(id)}
	}
	return p, err
}

func (s *Store) ListProjects(ctx context.Context) ([]planning.Project, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name, description, status, budget FROM projects ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var projects []planning.Project
	for rows.Next() {
		p, err := scanProject(rows)
		if err != nil {
			return nil, err
		}
		projects = append(projects, p)
	}
	return projects, rows.Err()
}

func scanProject(row scanner) (planning.Project, error) {
	var p planning.Project
	var description, status, budget sql.NullString
	if err := row.Scan(&p.ID, &p.Name, &description, &status, &budget); err != nil {
		return planning.Project{}, err
	}
	p.Description = description.String
	p.Status = planning.ProjectStatus(status.String)
	if budget.Valid && budget.String != "" {
		d, err := decimal.NewFromString(budget.String)
		if err != nil {
			return planning.Project{}, fmt.Errorf("failed to decode budget: %w", err)
		}
		p.Budget = d
	}
	return p, nil
}

func (s *Store) SaveEpic(ctx context.Context, e planning.Epic) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO epics (id, project_id, name) VALUES (?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			project_id=excluded.project_id, name=excluded.name`,
		string(e.ID), string(e.ProjectID), e.Name)
	return err
}

func (s *Store) ListEpics(ctx context.Context) ([]planning.Epic, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx, `SELECT id, project_id, name FROM epics ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var epics []planning.Epic
	for rows.Next() {
		var e planning.Epic
		if err := rows.Scan(&e.ID, &e.ProjectID, &e.Name); err != nil {
			return nil, err
		}
		epics = append(epics, e)
	}
	return epics, rows.Err()
}

func (s *Store) SaveRunWorkCategory(ctx context.Context, c planning.RunWorkCategory) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO run_work_categories (id, name) VALUES (?, ?)
		ON CONFLICT(id) DO UPDATE SET name=excluded.name`,
		string(c.ID), c.Name)
	return err
}

func (s *Store) ListRunWorkCategories(ctx context.Context) ([]planning.RunWorkCategory, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx, `SELECT id, name FROM run_work_categories ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var categories []planning.RunWorkCategory
	for rows.Next() {
		var c planning.RunWorkCategory
		if err := rows.Scan(&c.ID, &c.Name); err != nil {
			return nil, err
		}
		categories = append(categories, c)
	}
	return categories, rows.Err()
}

// =============================================================================
// SKILLS
// =============================================================================

func (s *Store) SaveSkill(ctx context.Context, sk planning.Skill) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO skills (id, name, category) VALUES (?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			name=excluded.name, category=excluded.category`,
		string(sk.ID), sk.Name, sk.Category)
	return err
}

func (s *Store) ListSkills(ctx context.Context) ([]planning.Skill, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx, `SELECT id, name, category FROM skills ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []planning.Skill
	for rows.Next() {
		var sk planning.Skill
		var category sql.NullString
		if err := rows.Scan(&sk.ID, &sk.Name, &category); err != nil {
			return nil, err
		}
		sk.Category = category.String
		out = append(out, sk)
	}
	return out, rows.Err()
}

func (s *Store) SavePersonSkill(ctx context.Context, ps planning.PersonSkill) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO person_skills (id, person_id, skill_id, proficiency)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			person_id=excluded.person_id, skill_id=excluded.skill_id,
			proficiency=excluded.proficiency`,
		ps.ID, string(ps.PersonID), string(ps.SkillID), string(ps.Proficiency))
	return err
}

func (s *Store) ListPersonSkills(ctx context.Context) ([]planning.PersonSkill, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, person_id, skill_id, proficiency FROM person_skills ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []planning.PersonSkill
	for rows.Next() {
		var ps planning.PersonSkill
		var proficiency sql.NullString
		if err := rows.Scan(&ps.ID, &ps.PersonID, &ps.SkillID, &proficiency); err != nil {
			return nil, err
		}
		ps.Proficiency = planning.ProficiencyLevel(proficiency.String)
		out = append(out, ps)
	}
	return out, rows.Err()
}

func (s *Store) SaveSolution(ctx context.Context, sol planning.Solution) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	skillsJSON, err := json.Marshal(sol.SkillIDs)
	if err != nil {
		return fmt.Errorf("failed to encode skill ids: %w", err)
	}
	_, err = s.db.ExecContext(ctx, `
		INSERT INTO solutions (id, name, skill_ids_json) VALUES (?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			name=excluded.name, skill_ids_json=excluded.skill_ids_json`,
		string(sol.ID), sol.Name, string(skillsJSON))
	return err
}

func (s *Store) ListSolutions(ctx context.Context) ([]planning.Solution, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx, `SELECT id, name, skill_ids_json FROM solutions ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []planning.Solution
	for rows.Next() {
		var sol planning.Solution
		var skillsJSON sql.NullString
		if err := rows.Scan(&sol.ID, &sol.Name, &skillsJSON); err != nil {
			return nil, err
		}
		if skillsJSON.String != "" {
			if err := json.Unmarshal([]byte(skillsJSON.String), &sol.SkillIDs); err != nil {
				return nil, fmt.Errorf("failed to decode skill ids: %w", err)
			}
		}
		out = append(out, sol)
	}
	return out, rows.Err()
}

func (s *Store) SaveProjectSolution(ctx context.Context, ps planning.ProjectSolution) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO project_solutions (id, project_id, solution_id, importance)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			project_id=excluded.project_id, solution_id=excluded.solution_id,
			importance=excluded.importance`,
		ps.ID, string(ps.ProjectID), string(ps.SolutionID), string(ps.Importance))
	return err
}

func (s *Store) ListProjectSolutions(ctx context.Context) ([]planning.ProjectSolution, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, project_id, solution_id, importance FROM project_solutions ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []planning.ProjectSolution
	for rows.Next() {
		var ps planning.ProjectSolution
		var importance sql.NullString
		if err := rows.Scan(&ps.ID, &ps.ProjectID, &ps.SolutionID, &importance); err != nil {
			return nil, err
		}
		ps.Importance = planning.ImportanceLevel(importance.String)
		out = append(out, ps)
	}
	return out, rows.Err()
}

func (s *Store) SaveProjectSkill(ctx context.Context, ps planning.ProjectSkill) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO project_skills (id, project_id, skill_id) VALUES (?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			project_id=excluded.project_id, skill_id=excluded.skill_id`,
		ps.ID, string(ps.ProjectID), string(ps.SkillID))
	return err
}

func (s *Store) ListProjectSkills(ctx context.Context) ([]planning.ProjectSkill, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, project_id, skill_id FROM project_skills ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []planning.ProjectSkill
	for rows.Next() {
		var ps planning.ProjectSkill
		if err := rows.Scan(&ps.ID, &ps.ProjectID, &ps.SkillID); err != nil {
			return nil, err
		}
		out = append(out, ps)
	}
	return out, rows.Err()
}

// =============================================================================
// SNAPSHOT AND RESET
// =============================================================================

// Snapshot reads every collection into one consistent view.
func (s *Store) Snapshot(ctx context.Context) (*planning.Snapshot, error) {
	snap := &planning.Snapshot{}
	var err error
	if snap.Teams, err = s.ListTeams(ctx); err != nil {
		return nil, err
	}
	if snap.People, err = s.ListPeople(ctx); err != nil {
		return nil, err
	}
	if snap.Roles, err = s.ListRoles(ctx); err != nil {
		return nil, err
	}
	if snap.Cycles, err = s.ListCycles(ctx); err != nil {
		return nil, err
	}
	if snap.Allocations, err = s.ListAllocations(ctx); err != nil {
		return nil, err
	}
	if snap.Projects, err = s.ListProjects(ctx); err != nil {
		return nil, err
	}
	if snap.Epics, err = s.ListEpics(ctx); err != nil {
		return nil, err
	}
	if snap.RunWorkCategories, err = s.ListRunWorkCategories(ctx); err != nil {
		return nil, err
	}
	if snap.Skills, err = s.ListSkills(ctx); err != nil {
		return nil, err
	}
	if snap.PersonSkills, err = s.ListPersonSkills(ctx); err != nil {
		return nil, err
	}
	if snap.Solutions, err = s.ListSolutions(ctx); err != nil {
		return nil, err
	}
	if snap.ProjectSolutions, err = s.ListProjectSolutions(ctx); err != nil {
		return nil, err
	}
	if snap.ProjectSkills, err = s.ListProjectSkills(ctx); err != nil {
		return nil, err
	}
	return snap, nil
}

// Reset clears all data. Used by scenario loading; dev/demo only.
func (s *Store) Reset(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tables := []string{
		"teams", "people", "roles", "cycles", "allocations",
		"projects", "epics", "run_work_categories",
		"skills", "person_skills", "solutions", "project_solutions", "project_skills",
	}
	for _, table := range tables {
		if _, err := s.db.ExecContext(ctx, "DELETE FROM "+table); err != nil {
			return fmt.Errorf("failed to reset %s: %w", table, err)
		}
	}
	return nil
}
