// Package entity defines the branded name types and the tagged entity union
// shared by transaction, bill, and ranking rendering. The name types carry no
// validation; they exist so that a user name, a project name, and a URL are
// never substitutable for one another without an explicit conversion.
package entity

import (
	"encoding/json"
	"fmt"

	"github.com/copia-dashboard/internal/domain/copia"
)

// UserName identifies a user on the ledger.
type UserName string

// ProjectName identifies a project on the ledger.
type ProjectName string

// Url is an absolute URL handed to us by the ledger API or a project.
type Url string

// Kind discriminates the entity union.
type Kind string

const (
	KindUser    Kind = "user"
	KindProject Kind = "project"
	KindSystem  Kind = "system"
)

// Entity is a tagged union over the three ledger parties. Exactly the fields
// matching Kind are meaningful; rendering code must switch on Kind rather
// than duck-type on a shared name field.
type Entity struct {
	Kind        Kind
	UserName    UserName
	ProjectName ProjectName
	Balance     copia.Copia // meaningful for user and project only
}

// User builds a user entity.
func User(name UserName, balance copia.Copia) Entity {
	return Entity{Kind: KindUser, UserName: name, Balance: balance}
}

// Project builds a project entity.
func Project(name ProjectName, balance copia.Copia) Entity {
	return Entity{Kind: KindProject, ProjectName: name, Balance: balance}
}

// System builds the system entity. The system has no balance of its own.
func System() Entity {
	return Entity{Kind: KindSystem}
}

// Name returns the display name for the entity regardless of kind.
func (e Entity) Name() string {
	switch e.Kind {
	case KindUser:
		return string(e.UserName)
	case KindProject:
		return string(e.ProjectName)
	case KindSystem:
		return "system"
	default:
		return ""
	}
}

// Identity returns a stable key for the entity, unique across kinds. Used as
// a render key where server-assigned ranks may collide.
func (e Entity) Identity() string {
	return string(e.Kind) + ":" + e.Name()
}

type entityJSON struct {
	Kind    Kind        `json:"kind"`
	Name    string      `json:"name"`
	Balance copia.Copia `json:"balance,omitempty"`
}

// MarshalJSON encodes the union with its discriminator.
func (e Entity) MarshalJSON() ([]byte, error) {
	return json.Marshal(entityJSON{Kind: e.Kind, Name: e.Name(), Balance: e.Balance})
}

// UnmarshalJSON decodes the union, rejecting unknown kinds.
func (e *Entity) UnmarshalJSON(data []byte) error {
	var raw entityJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	switch raw.Kind {
	case KindUser:
		*e = User(UserName(raw.Name), raw.Balance)
	case KindProject:
		*e = Project(ProjectName(raw.Name), raw.Balance)
	case KindSystem:
		*e = System()
	default:
		return fmt.Errorf("unknown entity kind %q", raw.Kind)
	}
	return nil
}
