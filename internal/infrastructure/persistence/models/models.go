// Package models holds the gorm persistence shapes. They carry no behavior;
// mappers translate them to and from domain aggregates.
package models

// All lists every model in dependency order for AutoMigrate.
func All() []any {
	return []any{
		&UserModel{},
		&TeamModel{},
		&TeamMemberModel{},
		&ProjectModel{},
		&ProjectMemberModel{},
		&TicketModel{},
		&TicketHistoryModel{},
		&TicketSequenceModel{},
		&CommentModel{},
		&ActivityModel{},
		&NotificationModel{},
	}
}
