package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/parischit85-sketch/play-sport-pro-sub002/docstore"
	"github.com/parischit85-sketch/play-sport-pro-sub002/models"
)

func seedMember(t *testing.T, store docstore.Store, clubID, userID string, role models.ClubRole) {
	t.Helper()
	member := &models.ClubMember{UserID: userID, ClubID: clubID, Role: role}
	require.NoError(t, store.Set(context.Background(),
		docstore.ClubMemberPath(clubID, userID), member, false))
}

func TestSignUpAndSignIn(t *testing.T) {
	ctx := context.Background()
	svc := NewAuthService(docstore.NewMemoryStore())

	user, err := svc.SignUp(ctx, SignUpInput{
		Email:     "Alice@Example.com",
		Password:  "correct horse",
		FirstName: "Alice",
	})
	require.NoError(t, err)
	assert.Equal(t, "alice@example.com", user.Email, "emails are stored lowercased")
	assert.NotEmpty(t, user.ID)

	// Duplicate registration is a conflict regardless of case.
	_, err = svc.SignUp(ctx, SignUpInput{Email: "alice@example.com", Password: "correct horse", FirstName: "A"})
	assert.ErrorIs(t, err, ErrEmailConflict)

	signedIn, err := svc.SignIn(ctx, "ALICE@example.com", "correct horse")
	require.NoError(t, err)
	assert.Equal(t, user.ID, signedIn.ID)

	_, err = svc.SignIn(ctx, "alice@example.com", "wrong password")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = svc.SignIn(ctx, "nobody@example.com", "whatever")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestSignUpValidation(t *testing.T) {
	ctx := context.Background()
	svc := NewAuthService(docstore.NewMemoryStore())

	_, err := svc.SignUp(ctx, SignUpInput{Email: "not-an-email", Password: "long enough"})
	assert.ErrorIs(t, err, ErrValidationFailed)

	_, err = svc.SignUp(ctx, SignUpInput{Email: "a@b.com", Password: "short"})
	assert.ErrorIs(t, err, ErrPasswordTooShort)
}

func TestRoleChecks(t *testing.T) {
	ctx := context.Background()
	store := docstore.NewMemoryStore()
	svc := NewAuthService(store)

	seedMember(t, store, "club1", "admin1", models.RoleAdmin)
	seedMember(t, store, "club1", "staff1", models.RoleStaff)
	seedMember(t, store, "club1", "member1", models.RoleMember)

	assert.True(t, svc.CanSubmitMatchResults(ctx, "admin1", "club1").Authorized)
	assert.True(t, svc.CanSubmitMatchResults(ctx, "staff1", "club1").Authorized)
	assert.False(t, svc.CanSubmitMatchResults(ctx, "member1", "club1").Authorized)
	assert.False(t, svc.CanSubmitMatchResults(ctx, "stranger", "club1").Authorized)

	assert.True(t, svc.CanViewAdminFeatures(ctx, "admin1", "club1").Authorized)
	assert.False(t, svc.CanViewAdminFeatures(ctx, "staff1", "club1").Authorized)

	decision := svc.CanViewAdminFeatures(ctx, "stranger", "club1")
	assert.False(t, decision.Authorized)
	assert.NotEmpty(t, decision.Reason)
}
