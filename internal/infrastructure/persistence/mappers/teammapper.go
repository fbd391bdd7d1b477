package mappers

import (
	"github.com/trackr-io/trackr/internal/domain/team"
	"github.com/trackr-io/trackr/internal/infrastructure/persistence/models"
)

type TeamMapper interface {
	ToModel(t *team.Team) *models.TeamModel
	MemberModels(t *team.Team) []models.TeamMemberModel
	ToDomain(m *models.TeamModel, members []models.TeamMemberModel) (*team.Team, error)
}

type TeamMapperImpl struct{}

func NewTeamMapper() TeamMapper {
	return &TeamMapperImpl{}
}

func (TeamMapperImpl) ToModel(t *team.Team) *models.TeamModel {
	return &models.TeamModel{
		ID:          t.ID(),
		Name:        t.Name(),
		Description: t.Description(),
		OwnerID:     t.OwnerID(),
		CreatedAt:   t.CreatedAt(),
		UpdatedAt:   t.UpdatedAt(),
	}
}

func (TeamMapperImpl) MemberModels(t *team.Team) []models.TeamMemberModel {
	return teamMembersToModels(t.ID(), t.Members())
}

func (TeamMapperImpl) ToDomain(m *models.TeamModel, members []models.TeamMemberModel) (*team.Team, error) {
	return team.ReconstructTeam(m.ID, m.Name, m.Description, m.OwnerID, TeamMembersToDomain(members), m.CreatedAt, m.UpdatedAt)
}
