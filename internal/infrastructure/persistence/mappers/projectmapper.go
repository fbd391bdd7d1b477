package mappers

import (
	"github.com/trackr-io/trackr/internal/domain/project"
	"github.com/trackr-io/trackr/internal/infrastructure/persistence/models"
)

// ProjectMapper splits a project into its row and its member rows.
type ProjectMapper interface {
	ToModel(p *project.Project) (*models.ProjectModel, error)
	MemberModels(p *project.Project) []models.ProjectMemberModel
	ToDomain(m *models.ProjectModel, members []models.ProjectMemberModel) (*project.Project, error)
}

type ProjectMapperImpl struct{}

func NewProjectMapper() ProjectMapper {
	return &ProjectMapperImpl{}
}

func (ProjectMapperImpl) ToModel(p *project.Project) (*models.ProjectModel, error) {
	types, err := toJSON(p.Config(project.KindType))
	if err != nil {
		return nil, err
	}
	statuses, err := toJSON(p.Config(project.KindStatus))
	if err != nil {
		return nil, err
	}
	priorities, err := toJSON(p.Config(project.KindPriority))
	if err != nil {
		return nil, err
	}
	return &models.ProjectModel{
		ID:               p.ID(),
		Key:              p.Key(),
		Name:             p.Name(),
		Description:      p.Description(),
		OwnerID:          p.OwnerID(),
		TeamID:           p.TeamID(),
		Status:           string(p.Status()),
		Category:         string(p.Category()),
		StartDate:        p.StartDate(),
		EndDate:          p.EndDate(),
		TicketTypes:      types,
		TicketStatuses:   statuses,
		TicketPriorities: priorities,
		CreatedAt:        p.CreatedAt(),
		UpdatedAt:        p.UpdatedAt(),
	}, nil
}

func (ProjectMapperImpl) MemberModels(p *project.Project) []models.ProjectMemberModel {
	return projectMembersToModels(p.ID(), p.Members())
}

func (ProjectMapperImpl) ToDomain(m *models.ProjectModel, members []models.ProjectMemberModel) (*project.Project, error) {
	var types, statuses, priorities []project.ConfigEntry
	if err := fromJSON(m.TicketTypes, &types, "ticket_types"); err != nil {
		return nil, err
	}
	if err := fromJSON(m.TicketStatuses, &statuses, "ticket_statuses"); err != nil {
		return nil, err
	}
	if err := fromJSON(m.TicketPriorities, &priorities, "ticket_priorities"); err != nil {
		return nil, err
	}
	return project.ReconstructProject(
		m.ID,
		m.Key,
		m.Name,
		m.Description,
		m.OwnerID,
		m.TeamID,
		project.Status(m.Status),
		project.Category(m.Category),
		m.StartDate,
		m.EndDate,
		ProjectMembersToDomain(members),
		project.ReconstructRegistry(types, statuses, priorities),
		m.CreatedAt,
		m.UpdatedAt,
	)
}
