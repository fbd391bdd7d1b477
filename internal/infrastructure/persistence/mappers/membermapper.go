package mappers

import (
	"github.com/trackr-io/trackr/internal/domain/shared/membership"
	"github.com/trackr-io/trackr/internal/infrastructure/persistence/models"
)

func projectMembersToModels(projectID uint, members []membership.Member) []models.ProjectMemberModel {
	out := make([]models.ProjectMemberModel, 0, len(members))
	for i, m := range members {
		out = append(out, models.ProjectMemberModel{
			ProjectID: projectID,
			UserID:    m.UserID,
			Role:      m.Role.String(),
			Position:  i,
			JoinedAt:  m.JoinedAt,
		})
	}
	return out
}

func teamMembersToModels(teamID uint, members []membership.Member) []models.TeamMemberModel {
	out := make([]models.TeamMemberModel, 0, len(members))
	for i, m := range members {
		out = append(out, models.TeamMemberModel{
			TeamID:   teamID,
			UserID:   m.UserID,
			Role:     m.Role.String(),
			Position: i,
			JoinedAt: m.JoinedAt,
		})
	}
	return out
}

// ProjectMembersToDomain expects rows ordered by position.
func ProjectMembersToDomain(rows []models.ProjectMemberModel) []membership.Member {
	out := make([]membership.Member, 0, len(rows))
	for _, r := range rows {
		out = append(out, membership.Member{UserID: r.UserID, Role: membership.Role(r.Role), JoinedAt: r.JoinedAt})
	}
	return out
}

func TeamMembersToDomain(rows []models.TeamMemberModel) []membership.Member {
	out := make([]membership.Member, 0, len(rows))
	for _, r := range rows {
		out = append(out, membership.Member{UserID: r.UserID, Role: membership.Role(r.Role), JoinedAt: r.JoinedAt})
	}
	return out
}
