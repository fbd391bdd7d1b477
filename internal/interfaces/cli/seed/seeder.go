// Package seed loads users, teams and projects from a YAML file through the
// regular use cases. Re-running a file skips records that already exist.
package seed

import (
	"bytes"
	"context"
	stderrors "errors"
	"fmt"
	"io"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/trackr-io/trackr/internal/application/common/ports"
	projectUsecases "github.com/trackr-io/trackr/internal/application/project/usecases"
	teamUsecases "github.com/trackr-io/trackr/internal/application/team/usecases"
	userUsecases "github.com/trackr-io/trackr/internal/application/user/usecases"
	"github.com/trackr-io/trackr/internal/domain/project"
	"github.com/trackr-io/trackr/internal/domain/team"
	"github.com/trackr-io/trackr/internal/domain/user"
	vo "github.com/trackr-io/trackr/internal/domain/user/valueobjects"
	"github.com/trackr-io/trackr/internal/shared/authorization"
	"github.com/trackr-io/trackr/internal/shared/constants"
	"github.com/trackr-io/trackr/internal/shared/errors"
	"github.com/trackr-io/trackr/internal/shared/logger"
	"github.com/trackr-io/trackr/internal/shared/query"
)

type File struct {
	Users    []UserSeed    `yaml:"users"`
	Teams    []TeamSeed    `yaml:"teams"`
	Projects []ProjectSeed `yaml:"projects"`
}

type UserSeed struct {
	Name     string `yaml:"name"`
	Email    string `yaml:"email"`
	Password string `yaml:"password"`
	Role     string `yaml:"role"`
}

type MemberSeed struct {
	Email string `yaml:"email"`
	Role  string `yaml:"role"`
}

type TeamSeed struct {
	Name        string       `yaml:"name"`
	Description string       `yaml:"description"`
	Owner       string       `yaml:"owner"`
	Members     []MemberSeed `yaml:"members"`
}

// ProjectSeed requires a key so a second run can recognize the project.
type ProjectSeed struct {
	Name        string       `yaml:"name"`
	Key         string       `yaml:"key"`
	Description string       `yaml:"description"`
	Category    string       `yaml:"category"`
	Owner       string       `yaml:"owner"`
	Team        string       `yaml:"team"`
	Members     []MemberSeed `yaml:"members"`
}

// Load parses a seed file.
func Load(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read seed file: %w", err)
	}
	return Parse(data)
}

func Parse(data []byte) (*File, error) {
	var f File
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil && !stderrors.Is(err, io.EOF) {
		return nil, fmt.Errorf("failed to parse seed file: %w", err)
	}
	for i, p := range f.Projects {
		if strings.TrimSpace(p.Key) == "" {
			return nil, fmt.Errorf("projects[%d] (%s): key is required", i, p.Name)
		}
	}
	return &f, nil
}

// Result counts what a run created and skipped.
type Result struct {
	UsersCreated    int
	UsersSkipped    int
	TeamsCreated    int
	TeamsSkipped    int
	ProjectsCreated int
	ProjectsSkipped int
	MembersAdded    int
}

type Deps struct {
	Users    user.Repository
	Teams    team.Repository
	Projects project.Repository
	Hasher   user.PasswordHasher
	Enforcer ports.PolicyEnforcer
	Recorder ports.ActivityRecorder
	Notifier ports.Notifier
}

type Seeder struct {
	users         user.Repository
	teams         team.Repository
	register      *userUsecases.RegisterUseCase
	createTeam    *teamUsecases.CreateTeamUseCase
	teamMembers   *teamUsecases.MembersUseCase
	createProject *projectUsecases.CreateProjectUseCase
	addMember     *projectUsecases.AddMemberUseCase
	logger        logger.Interface
}

func NewSeeder(d Deps, log logger.Interface) *Seeder {
	return &Seeder{
		users:         d.Users,
		teams:         d.Teams,
		register:      userUsecases.NewRegisterUseCase(d.Users, d.Hasher, vo.DefaultPasswordPolicy(), d.Recorder, log),
		createTeam:    teamUsecases.NewCreateTeamUseCase(d.Teams, d.Recorder, log),
		teamMembers:   teamUsecases.NewMembersUseCase(d.Teams, d.Users, d.Recorder, d.Notifier, log),
		createProject: projectUsecases.NewCreateProjectUseCase(d.Projects, d.Teams, d.Enforcer, d.Recorder, d.Notifier, log),
		addMember:     projectUsecases.NewAddMemberUseCase(d.Projects, d.Teams, d.Users, d.Recorder, d.Notifier, log),
		logger:        log,
	}
}

// Run applies f in order: users, then teams, then projects. A team the owner
// already owns under the same name is reused; a project whose key exists is
// skipped with its members.
func (s *Seeder) Run(ctx context.Context, f *File) (*Result, error) {
	res := &Result{}

	for _, u := range f.Users {
		if err := s.seedUser(ctx, u, res); err != nil {
			return res, fmt.Errorf("user %s: %w", u.Email, err)
		}
	}

	teamIDs := make(map[string]uint, len(f.Teams))
	for _, t := range f.Teams {
		id, err := s.seedTeam(ctx, t, res)
		if err != nil {
			return res, fmt.Errorf("team %s: %w", t.Name, err)
		}
		teamIDs[t.Name] = id
	}

	for _, p := range f.Projects {
		if err := s.seedProject(ctx, p, teamIDs, res); err != nil {
			return res, fmt.Errorf("project %s: %w", p.Key, err)
		}
	}

	return res, nil
}

func (s *Seeder) seedUser(ctx context.Context, in UserSeed, res *Result) error {
	existing, err := s.users.GetByEmail(ctx, in.Email)
	if err != nil {
		return err
	}
	if existing != nil {
		res.UsersSkipped++
		return nil
	}

	created, err := s.register.Execute(ctx, userUsecases.RegisterCommand{
		Name:     in.Name,
		Email:    in.Email,
		Password: in.Password,
	})
	if err != nil {
		return err
	}
	res.UsersCreated++

	if in.Role == "" {
		return nil
	}
	role := authorization.UserRole(in.Role)
	if !role.IsValid() {
		return fmt.Errorf("unknown role %q", in.Role)
	}
	u, err := s.users.GetByID(ctx, created.ID)
	if err != nil {
		return err
	}
	changed, err := u.ChangeRole(role)
	if err != nil || !changed {
		return err
	}
	return s.users.Update(ctx, u)
}

func (s *Seeder) seedTeam(ctx context.Context, in TeamSeed, res *Result) (uint, error) {
	owner, err := s.lookup(ctx, in.Owner)
	if err != nil {
		return 0, err
	}
	if id, ok, err := s.findOwnedTeam(ctx, owner.ID(), in.Name); err != nil {
		return 0, err
	} else if ok {
		res.TeamsSkipped++
		return id, nil
	}
	created, err := s.createTeam.Execute(ctx, teamUsecases.CreateTeamCommand{
		ActorID:     owner.ID(),
		Name:        in.Name,
		Description: in.Description,
	})
	if err != nil {
		return 0, err
	}
	res.TeamsCreated++

	for _, m := range in.Members {
		member, err := s.lookup(ctx, m.Email)
		if err != nil {
			return 0, err
		}
		if _, err := s.teamMembers.Add(ctx, teamUsecases.MemberCommand{
			ActorID: owner.ID(),
			TeamID:  created.ID,
			UserID:  member.ID(),
			Role:    m.Role,
		}); err != nil {
			return 0, err
		}
		res.MembersAdded++
	}
	return created.ID, nil
}

func (s *Seeder) seedProject(ctx context.Context, in ProjectSeed, teamIDs map[string]uint, res *Result) error {
	owner, err := s.lookup(ctx, in.Owner)
	if err != nil {
		return err
	}

	var teamID *uint
	if in.Team != "" {
		id, ok := teamIDs[in.Team]
		if !ok {
			return fmt.Errorf("team %q is not defined in the seed file", in.Team)
		}
		teamID = &id
	}

	created, err := s.createProject.Execute(ctx, projectUsecases.CreateProjectCommand{
		ActorID:     owner.ID(),
		ActorRole:   owner.Role(),
		Name:        in.Name,
		Description: in.Description,
		Key:         in.Key,
		TeamID:      teamID,
		Category:    in.Category,
	})
	if errors.IsConflictError(err) {
		s.logger.Infow("project already seeded", "key", in.Key)
		res.ProjectsSkipped++
		return nil
	}
	if err != nil {
		return err
	}
	res.ProjectsCreated++

	for _, m := range in.Members {
		member, err := s.lookup(ctx, m.Email)
		if err != nil {
			return err
		}
		if _, err := s.addMember.Execute(ctx, projectUsecases.AddMemberCommand{
			ActorID:   owner.ID(),
			ProjectID: created.ID,
			UserID:    member.ID(),
			Role:      m.Role,
		}); err != nil {
			return err
		}
		res.MembersAdded++
	}
	return nil
}

func (s *Seeder) findOwnedTeam(ctx context.Context, ownerID uint, name string) (uint, bool, error) {
	page := query.PageFilter{Page: 1, PageSize: constants.MaxPageSize}
	for {
		teams, total, err := s.teams.ListForMember(ctx, ownerID, page)
		if err != nil {
			return 0, false, err
		}
		for _, t := range teams {
			if t.OwnerID() == ownerID && t.Name() == name {
				return t.ID(), true, nil
			}
		}
		if len(teams) == 0 || int64(page.Page*page.PageSize) >= total {
			return 0, false, nil
		}
		page.Page++
	}
}

func (s *Seeder) lookup(ctx context.Context, email string) (*user.User, error) {
	u, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, fmt.Errorf("no user with email %q", email)
	}
	return u, nil
}
