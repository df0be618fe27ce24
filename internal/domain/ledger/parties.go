package ledger

import (
	"time"

	"github.com/copia-dashboard/internal/domain/copia"
	"github.com/copia-dashboard/internal/domain/entity"
	"github.com/google/uuid"
)

// User is a user record as returned by the ledger API.
type User struct {
	Name      entity.UserName `json:"name"`
	Balance   copia.Copia     `json:"balance"`
	Icon      entity.Url      `json:"icon,omitempty"`
	CreatedAt time.Time       `json:"created_at"`
}

// Entity converts the record into the shared rendering union.
func (u User) Entity() entity.Entity {
	return entity.User(u.Name, u.Balance)
}

// Project is a project record as returned by the ledger API.
type Project struct {
	Name        entity.ProjectName `json:"name"`
	Balance     copia.Copia        `json:"balance"`
	Icon        entity.Url         `json:"icon,omitempty"`
	RedirectURL entity.Url         `json:"redirect_url,omitempty"`
	Admins      []entity.UserName  `json:"admins,omitempty"`
	CreatedAt   time.Time          `json:"created_at"`
}

// Entity converts the record into the shared rendering union.
func (p Project) Entity() entity.Entity {
	return entity.Project(p.Name, p.Balance)
}

// APIClient is an API credential issued to a project. The secret is only
// present in the create response and never stored by the dashboard.
type APIClient struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Secret    string    `json:"secret,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}
