package authorization

import (
	"context"
	_ "embed"
	"fmt"
	"strings"

	"github.com/bwmarrin/snowflake"
	"github.com/casbin/casbin/v2"
	"github.com/casbin/casbin/v2/model"
	gormadapter "github.com/casbin/gorm-adapter/v3"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

//go:embed model.conf
var modelText string

const (
	ObjectAssessments = "assessments"

	ActionReadAll = "read_all"

	RoleAdmin = "admin"
)

type Params struct {
	fx.In

	Log      *zap.Logger
	Enforcer *casbin.SyncedEnforcer
}

type ServiceImpl struct {
	log      *zap.Logger
	enforcer *casbin.SyncedEnforcer
}

func NewEnforcer(db *gorm.DB) (*casbin.SyncedEnforcer, error) {
	adapter, err := gormadapter.NewAdapterByDB(db)
	if err != nil {
		return nil, err
	}
	m, err := model.NewModelFromString(modelText)
	if err != nil {
		return nil, err
	}
	enforcer, err := casbin.NewSyncedEnforcer(m, adapter)
	if err != nil {
		return nil, err
	}
	enforcer.EnableAutoSave(true)
	enforcer.EnableAutoBuildRoleLinks(true)
	if err := enforcer.LoadPolicy(); err != nil {
		return nil, err
	}
	if err := seedPolicies(enforcer); err != nil {
		return nil, err
	}
	if err := enforcer.BuildRoleLinks(); err != nil {
		return nil, err
	}
	return enforcer, nil
}

func NewService(p Params) Service {
	return &ServiceImpl{
		log:      p.Log.Named("authorization.service"),
		enforcer: p.Enforcer,
	}
}

func (s *ServiceImpl) Authorize(ctx context.Context, userID snowflake.ID, object, action string) error {
	if userID == 0 {
		return ErrInvalidActor
	}
	object = strings.TrimSpace(object)
	if object == "" {
		return ErrInvalidObject
	}
	action = strings.TrimSpace(action)
	if action == "" {
		return ErrInvalidAction
	}

	allowed, err := s.enforcer.Enforce(userSubject(userID), object, action)
	if err != nil {
		return err
	}
	if !allowed {
		s.log.Info("authorization denied",
			zap.String("user_id", userID.String()),
			zap.String("object", object),
			zap.String("action", action),
		)
		return ErrForbidden
	}
	return nil
}

func (s *ServiceImpl) GrantRole(ctx context.Context, userID snowflake.ID, role string) error {
	if userID == 0 {
		return ErrInvalidActor
	}
	roleName, err := roleSubject(role)
	if err != nil {
		return err
	}
	added, err := s.enforcer.AddGroupingPolicy(userSubject(userID), roleName)
	if err != nil {
		return err
	}
	if added {
		s.log.Info("role granted", zap.String("user_id", userID.String()), zap.String("role", roleName))
	}
	return nil
}

func (s *ServiceImpl) HasRole(ctx context.Context, userID snowflake.ID, role string) (bool, error) {
	if userID == 0 {
		return false, ErrInvalidActor
	}
	roleName, err := roleSubject(role)
	if err != nil {
		return false, err
	}
	return s.enforcer.HasGroupingPolicy(userSubject(userID), roleName)
}

func userSubject(userID snowflake.ID) string {
	return fmt.Sprintf("user:%s", userID.String())
}

func roleSubject(role string) (string, error) {
	role = strings.ToLower(strings.TrimSpace(role))
	if role == "" {
		return "", ErrInvalidRole
	}
	return "role:" + role, nil
}

func seedPolicies(enforcer *casbin.SyncedEnforcer) error {
	policies := [][]string{
		{"role:" + RoleAdmin, ObjectAssessments, ActionReadAll},
	}
	for _, policy := range policies {
		if _, err := enforcer.AddPolicy(policy); err != nil {
			return err
		}
	}
	return nil
}
