package authorization

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"go.uber.org/fx"
)

var Module = fx.Module("authorization",
	fx.Provide(NewEnforcer),
	fx.Provide(NewService),
)

type Service interface {
	// Authorize returns ErrForbidden when the user's roles do not allow action on object.
	Authorize(ctx context.Context, userID snowflake.ID, object, action string) error
	GrantRole(ctx context.Context, userID snowflake.ID, role string) error
	HasRole(ctx context.Context, userID snowflake.ID, role string) (bool, error)
}
