package service

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"errors"
	"math"
	"net/mail"
	"strconv"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/google/uuid"
	"github.com/smallbiznis/burnout/internal/auth/domain"
	"github.com/smallbiznis/burnout/internal/auth/password"
	"github.com/smallbiznis/burnout/internal/clock"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

const (
	sessionTokenBytes = 32
	sessionTTL        = 7 * 24 * time.Hour

	minPasswordLength = 8
	maxNameLength     = 100
	maxImageLength    = 2048
	maxAge            = 150
)

type Params struct {
	fx.In

	Log         *zap.Logger
	Repo        domain.Repository
	SessionRepo domain.SessionRepository
	GenID       *snowflake.Node
	Clock       clock.Clock
}

type Service struct {
	log         *zap.Logger
	repo        domain.Repository
	sessionRepo domain.SessionRepository
	genID       *snowflake.Node
	clock       clock.Clock
}

func New(p Params) domain.Service {
	c := p.Clock
	if c == nil {
		c = clock.SystemClock{}
	}
	return &Service{
		log:         p.Log.Named("auth.service"),
		repo:        p.Repo,
		sessionRepo: p.SessionRepo,
		genID:       p.GenID,
		clock:       c,
	}
}

func (s *Service) Signup(ctx context.Context, req domain.SignupRequest) (*domain.User, error) {
	name, err := normalizeName(req.Name)
	if err != nil {
		return nil, err
	}
	email, err := normalizeEmail(req.Email)
	if err != nil {
		return nil, domain.ErrInvalidEmail
	}
	if len(strings.TrimSpace(req.Password)) < minPasswordLength {
		return nil, domain.ErrInvalidPassword
	}
	age, err := parseAge(req.Age)
	if err != nil {
		return nil, err
	}
	gender, err := parseGender(req.Gender)
	if err != nil {
		return nil, err
	}

	if _, err := s.repo.FindByEmail(ctx, email); err == nil {
		return nil, domain.ErrUserExists
	} else if !errors.Is(err, domain.ErrUserNotFound) {
		return nil, err
	}

	hashed, err := password.Hash(req.Password)
	if err != nil {
		return nil, err
	}

	now := s.clock.Now()
	user := &domain.User{
		ID:                  s.genID.Generate(),
		ExternalID:          uuid.NewString(),
		Name:                name,
		Email:               email,
		PasswordHash:        &hashed,
		Age:                 age,
		Gender:              gender,
		LastPasswordChanged: &now,
		CreatedAt:           now,
		UpdatedAt:           now,
	}
	if err := s.repo.Create(ctx, user); err != nil {
		return nil, err
	}

	s.log.Info("user signed up", zap.String("user_id", user.ID.String()))
	return user, nil
}

func (s *Service) Login(ctx context.Context, req domain.LoginRequest) (*domain.LoginResult, error) {
	email, err := normalizeEmail(req.Email)
	if err != nil {
		return nil, domain.ErrInvalidCredentials
	}
	if strings.TrimSpace(req.Password) == "" {
		return nil, domain.ErrInvalidCredentials
	}

	user, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrInvalidCredentials
		}
		return nil, err
	}
	if user.PasswordHash == nil || !password.Verify(req.Password, *user.PasswordHash) {
		return nil, domain.ErrInvalidCredentials
	}

	rawToken, err := newSessionToken()
	if err != nil {
		return nil, err
	}

	now := s.clock.Now()
	session := &domain.Session{
		ID:               s.genID.Generate(),
		UserID:           user.ID,
		SessionTokenHash: hashToken(rawToken),
		UserAgent:        strings.TrimSpace(req.UserAgent),
		IPAddress:        strings.TrimSpace(req.IPAddress),
		ExpiresAt:        now.Add(sessionTTL),
		CreatedAt:        now,
		LastSeenAt:       now,
	}
	if err := s.sessionRepo.CreateSession(ctx, session); err != nil {
		return nil, err
	}

	return &domain.LoginResult{
		User:      user,
		RawToken:  rawToken,
		ExpiresAt: session.ExpiresAt,
		SessionID: session.ID,
	}, nil
}

func (s *Service) Logout(ctx context.Context, rawToken string) error {
	session, err := s.sessionByToken(ctx, rawToken)
	if err != nil {
		return err
	}
	return s.sessionRepo.RevokeSession(ctx, session.ID, s.clock.Now())
}

func (s *Service) Authenticate(ctx context.Context, rawToken string) (*domain.Session, error) {
	session, err := s.sessionByToken(ctx, rawToken)
	if err != nil {
		return nil, err
	}

	now := s.clock.Now()
	if session.RevokedAt != nil {
		return nil, domain.ErrSessionRevoked
	}
	if now.After(session.ExpiresAt) {
		return nil, domain.ErrSessionExpired
	}

	if err := s.sessionRepo.UpdateLastSeen(ctx, session.ID, now); err != nil {
		return nil, err
	}
	return session, nil
}

func (s *Service) GetProfile(ctx context.Context, userID snowflake.ID) (*domain.User, error) {
	return s.repo.FindByID(ctx, userID)
}

func (s *Service) UpdateProfile(ctx context.Context, userID snowflake.ID, req domain.UpdateProfileRequest) (*domain.User, error) {
	current, err := s.repo.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	fields := map[string]any{}
	if req.Name != nil {
		name, err := normalizeName(*req.Name)
		if err != nil {
			return nil, err
		}
		fields["name"] = name
	}
	if req.Email != nil {
		email, err := normalizeEmail(*req.Email)
		if err != nil {
			return nil, domain.ErrInvalidEmail
		}
		if email != current.Email {
			if _, err := s.repo.FindByEmail(ctx, email); err == nil {
				return nil, domain.ErrUserExists
			} else if !errors.Is(err, domain.ErrUserNotFound) {
				return nil, err
			}
			fields["email"] = email
		}
	}
	if req.Age != nil {
		age, err := parseAge(*req.Age)
		if err != nil {
			return nil, err
		}
		fields["age"] = age
	}
	if req.Gender != nil {
		gender, err := parseGender(*req.Gender)
		if err != nil {
			return nil, err
		}
		fields["gender"] = gender
	}
	if req.Image != nil {
		image := strings.TrimSpace(*req.Image)
		switch {
		case image == "":
			fields["image"] = nil
		case len(image) > maxImageLength:
			return nil, domain.ErrInvalidImage
		default:
			fields["image"] = image
		}
	}

	if len(fields) == 0 {
		return current, nil
	}
	fields["updated_at"] = s.clock.Now()

	if err := s.repo.UpdateFields(ctx, userID, fields); err != nil {
		return nil, err
	}
	return s.repo.FindByID(ctx, userID)
}

func (s *Service) ChangePassword(ctx context.Context, userID snowflake.ID, currentPassword, newPassword string) error {
	if len(strings.TrimSpace(newPassword)) < minPasswordLength {
		return domain.ErrInvalidPassword
	}

	user, err := s.repo.FindByID(ctx, userID)
	if err != nil {
		return err
	}
	if user.PasswordHash == nil || !password.Verify(currentPassword, *user.PasswordHash) {
		return domain.ErrInvalidCredentials
	}

	hashed, err := password.Hash(newPassword)
	if err != nil {
		return err
	}

	now := s.clock.Now()
	return s.repo.UpdateFields(ctx, userID, map[string]any{
		"password_hash":         hashed,
		"last_password_changed": now,
		"updated_at":            now,
	})
}

func (s *Service) UsersByID(ctx context.Context, ids []snowflake.ID) (map[snowflake.ID]domain.User, error) {
	users, err := s.repo.FindByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	out := make(map[snowflake.ID]domain.User, len(users))
	for _, u := range users {
		out[u.ID] = u
	}
	return out, nil
}

func (s *Service) sessionByToken(ctx context.Context, rawToken string) (*domain.Session, error) {
	token := strings.TrimSpace(rawToken)
	if token == "" {
		return nil, domain.ErrInvalidSession
	}

	session, err := s.sessionRepo.GetSessionByTokenHash(ctx, hashToken(token))
	if err != nil {
		if errors.Is(err, domain.ErrSessionNotFound) {
			return nil, domain.ErrInvalidSession
		}
		return nil, err
	}
	return session, nil
}

func normalizeName(raw string) (string, error) {
	name := strings.TrimSpace(raw)
	if name == "" || len(name) > maxNameLength {
		return "", domain.ErrInvalidName
	}
	return name, nil
}

func normalizeEmail(raw string) (string, error) {
	addr, err := mail.ParseAddress(strings.TrimSpace(raw))
	if err != nil {
		return "", err
	}
	return strings.ToLower(strings.TrimSpace(addr.Address)), nil
}

// parseAge accepts whole positive numbers, including "30" and "30.0".
func parseAge(raw string) (int, error) {
	value, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil || math.IsNaN(value) || value != math.Trunc(value) {
		return 0, domain.ErrInvalidAge
	}
	if value <= 0 || value > maxAge {
		return 0, domain.ErrInvalidAge
	}
	return int(value), nil
}

func parseGender(raw string) (domain.Gender, error) {
	switch domain.Gender(strings.ToLower(strings.TrimSpace(raw))) {
	case domain.GenderMale:
		return domain.GenderMale, nil
	case domain.GenderFemale:
		return domain.GenderFemale, nil
	default:
		return "", domain.ErrInvalidGender
	}
}

func newSessionToken() (string, error) {
	buf := make([]byte, sessionTokenBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(buf), nil
}

func hashToken(raw string) string {
	sum := sha256.Sum256([]byte(raw))
	return hex.EncodeToString(sum[:])
}
