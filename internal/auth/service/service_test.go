package service

import (
	"context"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/google/uuid"
	authdomain "github.com/smallbiznis/burnout/internal/auth/domain"
	"github.com/smallbiznis/burnout/internal/auth/repository"
	"github.com/smallbiznis/burnout/internal/clock"
	"github.com/smallbiznis/burnout/pkg/db"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func newTestService(t *testing.T) (authdomain.Service, *clock.FakeClock) {
	t.Helper()

	dbConn, err := db.NewTest()
	require.NoError(t, err)
	require.NoError(t, dbConn.AutoMigrate(&authdomain.User{}, &authdomain.Session{}))

	repo, sessionRepo := repository.New(dbConn)
	node, err := snowflake.NewNode(1)
	require.NoError(t, err)

	fake := clock.NewFakeClock(time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC))
	return New(Params{
		Log:         zaptest.NewLogger(t),
		Repo:        repo,
		SessionRepo: sessionRepo,
		GenID:       node,
		Clock:       fake,
	}), fake
}

func validSignup() authdomain.SignupRequest {
	return authdomain.SignupRequest{
		Name:     "Alice",
		Email:    "Alice@Example.com",
		Password: "correct-password",
		Age:      "29",
		Gender:   "Female",
	}
}

func TestSignup(t *testing.T) {
	svc, _ := newTestService(t)

	user, err := svc.Signup(context.Background(), validSignup())
	require.NoError(t, err)

	assert.Equal(t, "alice@example.com", user.Email)
	assert.Equal(t, authdomain.GenderFemale, user.Gender)
	assert.Equal(t, 29, user.Age)
	_, err = uuid.Parse(user.ExternalID)
	assert.NoError(t, err)
}

func TestSignupValidation(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*authdomain.SignupRequest)
		want   error
	}{
		{"missing name", func(r *authdomain.SignupRequest) { r.Name = " " }, authdomain.ErrInvalidName},
		{"bad email", func(r *authdomain.SignupRequest) { r.Email = "nope" }, authdomain.ErrInvalidEmail},
		{"short password", func(r *authdomain.SignupRequest) { r.Password = "short" }, authdomain.ErrInvalidPassword},
		{"zero age", func(r *authdomain.SignupRequest) { r.Age = "0" }, authdomain.ErrInvalidAge},
		{"negative age", func(r *authdomain.SignupRequest) { r.Age = "-3" }, authdomain.ErrInvalidAge},
		{"non numeric age", func(r *authdomain.SignupRequest) { r.Age = "abc" }, authdomain.ErrInvalidAge},
		{"fractional age", func(r *authdomain.SignupRequest) { r.Age = "29.5" }, authdomain.ErrInvalidAge},
		{"unknown gender", func(r *authdomain.SignupRequest) { r.Gender = "other" }, authdomain.ErrInvalidGender},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			svc, _ := newTestService(t)
			req := validSignup()
			tc.mutate(&req)

			_, err := svc.Signup(context.Background(), req)
			assert.ErrorIs(t, err, tc.want)
		})
	}
}

func TestSignupDuplicateEmail(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.Signup(context.Background(), validSignup())
	require.NoError(t, err)

	_, err = svc.Signup(context.Background(), validSignup())
	assert.ErrorIs(t, err, authdomain.ErrUserExists)
}

func TestLoginWrongPassword(t *testing.T) {
	svc, _ := newTestService(t)
	_, err := svc.Signup(context.Background(), validSignup())
	require.NoError(t, err)

	_, err = svc.Login(context.Background(), authdomain.LoginRequest{
		Email:    "alice@example.com",
		Password: "wrong-password",
	})
	assert.ErrorIs(t, err, authdomain.ErrInvalidCredentials)

	_, err = svc.Login(context.Background(), authdomain.LoginRequest{
		Email:    "nobody@example.com",
		Password: "whatever-password",
	})
	assert.ErrorIs(t, err, authdomain.ErrInvalidCredentials)
}

func TestSessionLifecycle(t *testing.T) {
	svc, fake := newTestService(t)
	user, err := svc.Signup(context.Background(), validSignup())
	require.NoError(t, err)

	result, err := svc.Login(context.Background(), authdomain.LoginRequest{
		Email:    "alice@example.com",
		Password: "correct-password",
	})
	require.NoError(t, err)
	assert.Equal(t, user.ID, result.User.ID)

	session, err := svc.Authenticate(context.Background(), result.RawToken)
	require.NoError(t, err)
	assert.Equal(t, user.ID, session.UserID)

	_, err = svc.Authenticate(context.Background(), "not-a-token")
	assert.ErrorIs(t, err, authdomain.ErrInvalidSession)

	fake.Advance(8 * 24 * time.Hour)
	_, err = svc.Authenticate(context.Background(), result.RawToken)
	assert.ErrorIs(t, err, authdomain.ErrSessionExpired)
}

func TestLogoutRevokesSession(t *testing.T) {
	svc, _ := newTestService(t)
	_, err := svc.Signup(context.Background(), validSignup())
	require.NoError(t, err)

	result, err := svc.Login(context.Background(), authdomain.LoginRequest{
		Email:    "alice@example.com",
		Password: "correct-password",
	})
	require.NoError(t, err)

	require.NoError(t, svc.Logout(context.Background(), result.RawToken))
	_, err = svc.Authenticate(context.Background(), result.RawToken)
	assert.ErrorIs(t, err, authdomain.ErrSessionRevoked)
}

func TestUpdateProfile(t *testing.T) {
	svc, _ := newTestService(t)
	user, err := svc.Signup(context.Background(), validSignup())
	require.NoError(t, err)

	other := validSignup()
	other.Email = "bob@example.com"
	_, err = svc.Signup(context.Background(), other)
	require.NoError(t, err)

	name := "Alice Smith"
	age := "30"
	image := "https://cdn.example.com/a.png"
	updated, err := svc.UpdateProfile(context.Background(), user.ID, authdomain.UpdateProfileRequest{
		Name:  &name,
		Age:   &age,
		Image: &image,
	})
	require.NoError(t, err)
	assert.Equal(t, "Alice Smith", updated.Name)
	assert.Equal(t, 30, updated.Age)
	require.NotNil(t, updated.Image)
	assert.Equal(t, image, *updated.Image)
	assert.Equal(t, "alice@example.com", updated.Email)

	taken := "BOB@example.com"
	_, err = svc.UpdateProfile(context.Background(), user.ID, authdomain.UpdateProfileRequest{Email: &taken})
	assert.ErrorIs(t, err, authdomain.ErrUserExists)

	badGender := "x"
	_, err = svc.UpdateProfile(context.Background(), user.ID, authdomain.UpdateProfileRequest{Gender: &badGender})
	assert.ErrorIs(t, err, authdomain.ErrInvalidGender)
}

func TestChangePassword(t *testing.T) {
	svc, _ := newTestService(t)
	user, err := svc.Signup(context.Background(), validSignup())
	require.NoError(t, err)

	err = svc.ChangePassword(context.Background(), user.ID, "wrong-password", "brand-new-password")
	assert.ErrorIs(t, err, authdomain.ErrInvalidCredentials)

	require.NoError(t, svc.ChangePassword(context.Background(), user.ID, "correct-password", "brand-new-password"))

	_, err = svc.Login(context.Background(), authdomain.LoginRequest{
		Email:    "alice@example.com",
		Password: "brand-new-password",
	})
	assert.NoError(t, err)
}

func TestUsersByID(t *testing.T) {
	svc, _ := newTestService(t)
	user, err := svc.Signup(context.Background(), validSignup())
	require.NoError(t, err)

	users, err := svc.UsersByID(context.Background(), []snowflake.ID{user.ID, snowflake.ID(1)})
	require.NoError(t, err)
	assert.Len(t, users, 1)
	assert.Equal(t, "Alice", users[user.ID].Name)
}
