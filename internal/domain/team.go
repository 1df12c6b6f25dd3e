package domain

import (
	"time"

	"github.com/google/uuid"
)

type TeamRole struct {
	ID        int32     `json:"id"`
	Value     string    `json:"value"`
	CreatedAt time.Time `json:"createdAt"`
}

type TeamUser struct {
	ID              uuid.UUID  `json:"id"`
	Name            string     `json:"name"`
	ProfileImageURL string     `json:"profileImageUrl"`
	UserID          *uuid.UUID `json:"userId"`
	TeamRoleID      int32      `json:"teamRoleId"`
	CreatedAt       time.Time  `json:"createdAt"`
}

func NewTeamUser(name, profileImageURL string, userID *uuid.UUID, teamRoleID int32) *TeamUser {
	return &TeamUser{
		ID:              uuid.New(),
		Name:            name,
		ProfileImageURL: profileImageURL,
		UserID:          userID,
		TeamRoleID:      teamRoleID,
		CreatedAt:       time.Now().UTC(),
	}
}

type TeamUserFilter struct {
	TeamRoleID *int32
}

type TeamRoleFilter struct{}
