package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/campushub/api/internal/helpers"
	"github.com/campushub/api/internal/models"
)

type memMailer struct {
	sent []string // recipient addresses
}

func (m *memMailer) Send(to, subject, html string) error {
	m.sent = append(m.sent, to)
	return nil
}

type memOtpStore struct {
	codes map[string]string
}

func newMemOtpStore() *memOtpStore {
	return &memOtpStore{codes: map[string]string{}}
}

func (s *memOtpStore) Set(email, code string) { s.codes[email] = code }

func (s *memOtpStore) Get(email string) (string, bool) {
	code, ok := s.codes[email]
	return code, ok
}

func (s *memOtpStore) Delete(email string) { delete(s.codes, email) }

type userFixture struct {
	store    *memStore
	mail     *memMailer
	otpStore *memOtpStore
	service  *UserService
}

func newUserFixture() *userFixture {
	store := newMemStore()
	mail := &memMailer{}
	otpStore := newMemOtpStore()
	service := NewUserService(store, mail, otpStore, testLogger(), "test-secret", time.Hour, "http://localhost:3000")
	return &userFixture{store: store, mail: mail, otpStore: otpStore, service: service}
}

func TestSignupAndLogin(t *testing.T) {
	fx := newUserFixture()
	ctx := context.Background()

	result, err := fx.service.Signup(ctx, "Ama Mensah", "ama@campus.edu", "Str0ngpass", "")
	require.NoError(t, err)
	assert.Equal(t, models.RoleStudent, result.User.Role)
	assert.NotEmpty(t, result.Token)
	assert.Equal(t, []string{"ama@campus.edu"}, fx.mail.sent)

	claims, err := helpers.ValidateToken(result.Token, "test-secret")
	require.NoError(t, err)
	assert.Equal(t, result.User.ID.Hex(), claims.Subject)

	login, err := fx.service.Login(ctx, "ama@campus.edu", "Str0ngpass")
	require.NoError(t, err)
	assert.Equal(t, result.User.ID, login.User.ID)

	_, err = fx.service.Login(ctx, "ama@campus.edu", "wrong-password")
	var valErr *ValidationError
	assert.ErrorAs(t, err, &valErr)
}

func TestSignupWeakPasswordRejected(t *testing.T) {
	fx := newUserFixture()

	for _, password := range []string{"short1A", "alllowercase1", "NOLOWERCASE1", "NoDigitsHere"} {
		_, err := fx.service.Signup(context.Background(), "Ama", "ama@campus.edu", password, "")
		var valErr *ValidationError
		require.ErrorAs(t, err, &valErr, "password %q must be rejected", password)
	}
	assert.Empty(t, fx.store.users, "rejected signup must not create a user")
}

func TestSignupDuplicateEmail(t *testing.T) {
	fx := newUserFixture()
	ctx := context.Background()

	_, err := fx.service.Signup(ctx, "Ama", "ama@campus.edu", "Str0ngpass", "")
	require.NoError(t, err)

	_, err = fx.service.Signup(ctx, "Other", "ama@campus.edu", "Str0ngpass", "")
	var valErr *ValidationError
	assert.ErrorAs(t, err, &valErr)
}

func TestOtpFlow(t *testing.T) {
	fx := newUserFixture()
	ctx := context.Background()

	_, err := fx.service.Signup(ctx, "Ama", "ama@campus.edu", "Str0ngpass", "")
	require.NoError(t, err)

	require.NoError(t, fx.service.SendOtp(ctx, "ama@campus.edu"))
	code, ok := fx.otpStore.Get("ama@campus.edu")
	require.True(t, ok)
	require.Len(t, code, 6)

	var valErr *ValidationError
	assert.ErrorAs(t, fx.service.VerifyOtp("ama@campus.edu", "000000"), &valErr)

	require.NoError(t, fx.service.VerifyOtp("ama@campus.edu", code))
	// code is consumed on success
	assert.ErrorAs(t, fx.service.VerifyOtp("ama@campus.edu", code), &valErr)
}

func TestResetPassword(t *testing.T) {
	fx := newUserFixture()
	ctx := context.Background()

	_, err := fx.service.Signup(ctx, "Ama", "ama@campus.edu", "Str0ngpass", "")
	require.NoError(t, err)

	var valErr *ValidationError
	assert.ErrorAs(t, fx.service.ResetPassword(ctx, "ama@campus.edu", "weak"), &valErr)

	require.NoError(t, fx.service.ResetPassword(ctx, "ama@campus.edu", "N3wStrongpass"))

	_, err = fx.service.Login(ctx, "ama@campus.edu", "Str0ngpass")
	assert.ErrorAs(t, err, &valErr)

	_, err = fx.service.Login(ctx, "ama@campus.edu", "N3wStrongpass")
	assert.NoError(t, err)
}
