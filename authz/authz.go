// Package authz holds the capability check run at the start of every operation.
package authz

import (
	"context"
	"errors"
)

var (
	ErrUnauthenticated = errors.New("authentication required")
	ErrForbidden       = errors.New("forbidden")
)

// Role identifies which area of the application an actor belongs to
type Role string

const (
	RoleAdmin    Role = "admin"
	RoleCompany  Role = "empresa"
	RoleCustomer Role = "cliente"
)

// Actor is the caller of an operation. A nil *Actor is an anonymous caller.
type Actor struct {
	UserID     int64
	Role       Role
	CompanyID  int64
	CustomerID int64
}

// System is the actor used by command line tools
var System = &Actor{Role: RoleAdmin}

// Action is a capability an operation requires
type Action string

const (
	ViewCatalog      Action = "catalog:view"
	ManageCatalog    Action = "catalog:manage"
	ImportPrices     Action = "catalog:import"
	ManageTemplates  Action = "templates:manage"
	RenderFlyer      Action = "flyer:render"
	ViewCompanies    Action = "companies:view"
	ManageCompanies  Action = "companies:manage"
	EditCompany      Action = "company:edit"
	ManageCustomers  Action = "customers:manage"
	EditCustomer     Action = "customer:edit"
	ViewCompanyDash  Action = "dashboard:company"
	ViewCustomerDash Action = "dashboard:customer"
)

// Resource narrows an action to a specific record when ownership matters
type Resource struct {
	CompanyID  int64
	CustomerID int64
}

// Any is used for actions that are not tied to a single record
var Any = Resource{}

var companyActions = map[Action]bool{
	ViewCatalog:     true,
	ManageCatalog:   true,
	ImportPrices:    true,
	ManageTemplates: true,
	RenderFlyer:     true,
	ViewCompanies:   true,
	ManageCustomers: true,
	ViewCompanyDash: true,
}

var customerActions = map[Action]bool{
	ViewCatalog:      true,
	RenderFlyer:      true,
	ViewCustomerDash: true,
}

// Check returns nil when actor may perform action on res
func Check(actor *Actor, action Action, res Resource) error {
	// Flyers are public
	if action == RenderFlyer {
		return nil
	}
	if actor == nil {
		return ErrUnauthenticated
	}

	switch actor.Role {
	case RoleAdmin:
		return nil
	case RoleCompany:
		if action == EditCompany {
			if actor.CompanyID != 0 && actor.CompanyID == res.CompanyID {
				return nil
			}
			return ErrForbidden
		}
		if companyActions[action] {
			return nil
		}
	case RoleCustomer:
		if action == EditCustomer {
			if actor.CustomerID != 0 && actor.CustomerID == res.CustomerID {
				return nil
			}
			return ErrForbidden
		}
		if customerActions[action] {
			return nil
		}
	}
	return ErrForbidden
}

type ctxActorKeyType string

const ctxActorKey ctxActorKeyType = "TabloideActor"

// WithActor stores the actor in the context
func WithActor(ctx context.Context, actor *Actor) context.Context {
	return context.WithValue(ctx, ctxActorKey, actor)
}

// ActorFromContext returns the actor stored in ctx, or nil for anonymous callers
func ActorFromContext(ctx context.Context) *Actor {
	if actor, ok := ctx.Value(ctxActorKey).(*Actor); ok {
		return actor
	}
	return nil
}
