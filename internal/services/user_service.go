package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/campushub/api/internal/helpers"
	"github.com/campushub/api/internal/mailer"
	"github.com/campushub/api/internal/models"
	"github.com/campushub/api/internal/otp"
)

type AuthResult struct {
	Token string            `json:"token"`
	User  models.PublicUser `json:"user"`
}

type UserService struct {
	userRepo  models.UserRepo
	mail      mailer.Sender
	otpStore  otp.Store
	logger    *slog.Logger
	jwtSecret string
	jwtExpiry time.Duration
	clientURL string
}

func NewUserService(
	userRepo models.UserRepo,
	mail mailer.Sender,
	otpStore otp.Store,
	logger *slog.Logger,
	jwtSecret string,
	jwtExpiry time.Duration,
	clientURL string,
) *UserService {
	return &UserService{
		userRepo:  userRepo,
		mail:      mail,
		otpStore:  otpStore,
		logger:    logger,
		jwtSecret: jwtSecret,
		jwtExpiry: jwtExpiry,
		clientURL: clientURL,
	}
}

func (us *UserService) Signup(ctx context.Context, name, email, password, role string) (*AuthResult, error) {
	if name == "" || email == "" || password == "" {
		return nil, &ValidationError{Msg: "all fields required"}
	}
	if err := models.Validate.Var(email, "required,email"); err != nil {
		return nil, &ValidationError{Msg: "invalid email"}
	}
	if !helpers.IsPasswordStrong(password) {
		return nil, &ValidationError{Msg: "password must be at least 8 characters with upper and lower case letters and a number"}
	}
	if role == "" {
		role = models.RoleStudent
	}
	role = strings.ToUpper(role)
	if err := models.Validate.Var(role, "oneof=ADMIN STUDENT ORGANIZER"); err != nil {
		return nil, &ValidationError{Msg: "invalid role"}
	}

	existing, err := us.userRepo.GetUserByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, &ValidationError{Msg: "user already exists"}
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		Name:      name,
		Email:     email,
		Password:  string(hashed),
		Role:      role,
		CreatedAt: time.Now(),
	}
	created, err := us.userRepo.CreateUser(ctx, user)
	if err != nil {
		return nil, err
	}

	token, err := helpers.GenerateToken(created.ID.Hex(), created.Role, us.jwtSecret, us.jwtExpiry)
	if err != nil {
		return nil, err
	}

	// A failed welcome mail never fails the signup.
	if err := us.mail.Send(created.Email, "Welcome to Campus Event Hub",
		mailer.WelcomeBody(created.Name, created.Role, us.dashboardURL(created.Role))); err != nil {
		us.logger.Error("welcome email failed", "email", created.Email, "error", err)
	}

	return &AuthResult{Token: token, User: created.Public()}, nil
}

func (us *UserService) Login(ctx context.Context, email, password string) (*AuthResult, error) {
	if email == "" || password == "" {
		return nil, &ValidationError{Msg: "email and password required"}
	}

	user, err := us.userRepo.GetUserByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, &ValidationError{Msg: "user not found"}
	}
	if user.Password == "" {
		return nil, &ValidationError{Msg: "invalid credentials"}
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, &ValidationError{Msg: "invalid credentials"}
	}

	token, err := helpers.GenerateToken(user.ID.Hex(), user.Role, us.jwtSecret, us.jwtExpiry)
	if err != nil {
		return nil, err
	}
	return &AuthResult{Token: token, User: user.Public()}, nil
}

func (us *UserService) SendOtp(ctx context.Context, email string) error {
	if err := models.Validate.Var(email, "required,email"); err != nil {
		return &ValidationError{Msg: "valid email required"}
	}

	user, err := us.userRepo.GetUserByEmail(ctx, email)
	if err != nil {
		return err
	}
	if user == nil {
		return &NotFoundError{Resource: "user"}
	}

	code, err := otp.GenerateCode()
	if err != nil {
		return err
	}
	us.otpStore.Set(email, code)

	if err := us.mail.Send(email, "Your OTP Code", mailer.OtpBody(code)); err != nil {
		return fmt.Errorf("failed to send otp mail: %w", err)
	}
	return nil
}

func (us *UserService) VerifyOtp(email, code string) error {
	stored, found := us.otpStore.Get(email)
	if !found {
		return &ValidationError{Msg: "OTP expired or not requested"}
	}
	if stored != code {
		return &ValidationError{Msg: "invalid OTP"}
	}
	us.otpStore.Delete(email)
	return nil
}

func (us *UserService) ResetPassword(ctx context.Context, email, newPassword string) error {
	if email == "" || newPassword == "" {
		return &ValidationError{Msg: "email and new password required"}
	}
	if !helpers.IsPasswordStrong(newPassword) {
		return &ValidationError{Msg: "password must be at least 8 characters with upper and lower case letters and a number"}
	}

	user, err := us.userRepo.GetUserByEmail(ctx, email)
	if err != nil {
		return err
	}
	if user == nil {
		return &NotFoundError{Resource: "user"}
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}
	return us.userRepo.UpdatePassword(ctx, user.ID, string(hashed))
}

func (us *UserService) dashboardURL(role string) string {
	path := "/student/dashboard"
	switch strings.ToUpper(role) {
	case models.RoleAdmin:
		path = "/admin/dashboard"
	case models.RoleOrganizer:
		path = "/organizer/dashboard"
	}
	return us.clientURL + path
}
