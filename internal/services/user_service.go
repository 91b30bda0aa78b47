package services

import (
	"context"
	"fmt"
	"log"
	"math/rand"
	"time"

	"golang.org/x/crypto/bcrypt"

	"nyumbaBack/internal/models"
	"nyumbaBack/internal/repositories"
	"nyumbaBack/utils"
)

const (
	accessTokenTTL  = 20 * time.Hour
	sessionTTL      = 30 * 24 * time.Hour
	smsCodeTTL      = 10 * time.Minute
	resetCodeTTL    = 15 * time.Minute
	smsCodeTemplate = "Your nyumba verification code: %s"
)

type UserService struct {
	UserRepo *repositories.UserRepository
	Sessions *repositories.SessionStore
	SMS      SMSSender
	Tokens   *utils.Manager
}

func generateVerificationCode() string {
	return fmt.Sprintf("%04d", rand.Intn(10000))
}

func (s *UserService) SignUp(ctx context.Context, user models.User) (models.SignUpResponse, error) {
	if user.Email != "" {
		existing, err := s.UserRepo.GetUserByEmail(ctx, user.Email)
		if err != nil {
			return models.SignUpResponse{}, err
		}
		if existing.ID != 0 {
			return models.SignUpResponse{}, models.ErrDuplicateEmail
		}
	}
	existing, err := s.UserRepo.GetUserByPhone(ctx, user.Phone)
	if err != nil {
		return models.SignUpResponse{}, err
	}
	if existing.ID != 0 {
		return models.SignUpResponse{}, models.ErrDuplicatePhone
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(user.Password), bcrypt.DefaultCost)
	if err != nil {
		return models.SignUpResponse{}, err
	}
	user.Password = string(hashed)
	if user.Role == "" {
		user.Role = models.RoleClient
	}

	created, err := s.UserRepo.CreateUser(ctx, user)
	if err != nil {
		return models.SignUpResponse{}, err
	}

	code := generateVerificationCode()
	if err := s.Sessions.SaveVerificationCode(ctx, created.Phone, code, smsCodeTTL); err != nil {
		return models.SignUpResponse{}, err
	}
	if s.SMS != nil {
		if err := s.SMS.SendSMS(ctx, created.Phone, fmt.Sprintf(smsCodeTemplate, code)); err != nil {
			// A failed SMS must not lose the account; the client can
			// request a new code.
			log.Printf("sign up: sms to %s failed: %v", created.Phone, err)
		}
	}

	tokens, err := s.issueTokens(ctx, created.ID, created.Role)
	if err != nil {
		return models.SignUpResponse{}, err
	}
	return models.SignUpResponse{User: created, Tokens: tokens}, nil
}

func (s *UserService) SignIn(ctx context.Context, req models.SignInRequest) (models.SignUpResponse, error) {
	var user models.User
	var err error
	switch {
	case req.Phone != "":
		user, err = s.UserRepo.GetUserByPhone(ctx, req.Phone)
	case req.Email != "":
		user, err = s.UserRepo.GetUserByEmail(ctx, req.Email)
	default:
		return models.SignUpResponse{}, models.ErrInvalidCredentials
	}
	if err != nil {
		return models.SignUpResponse{}, err
	}
	if user.ID == 0 {
		return models.SignUpResponse{}, models.ErrInvalidCredentials
	}
	if user.Blocked {
		return models.SignUpResponse{}, models.ErrUserBlocked
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return models.SignUpResponse{}, models.ErrInvalidCredentials
	}

	tokens, err := s.issueTokens(ctx, user.ID, user.Role)
	if err != nil {
		return models.SignUpResponse{}, err
	}

	full, err := s.UserRepo.GetUserByID(ctx, user.ID)
	if err != nil {
		return models.SignUpResponse{}, err
	}
	return models.SignUpResponse{User: full, Tokens: tokens}, nil
}

func (s *UserService) issueTokens(ctx context.Context, userID int, role string) (models.Tokens, error) {
	access, err := s.Tokens.NewAccessToken(userID, role, accessTokenTTL)
	if err != nil {
		return models.Tokens{}, err
	}
	refresh, err := s.Tokens.NewRefreshToken()
	if err != nil {
		return models.Tokens{}, err
	}
	session := models.Session{
		Token:     refresh,
		UserID:    userID,
		Role:      role,
		ExpiresAt: time.Now().Add(sessionTTL),
	}
	if err := s.Sessions.SaveSession(ctx, session); err != nil {
		return models.Tokens{}, err
	}
	return models.Tokens{AccessToken: access, RefreshToken: refresh}, nil
}

func (s *UserService) SignOut(ctx context.Context, refreshToken string) error {
	if refreshToken == "" {
		return nil
	}
	return s.Sessions.DeleteSession(ctx, refreshToken)
}

func (s *UserService) VerifyPhone(ctx context.Context, req models.VerifyCodeRequest) error {
	if err := s.Sessions.CheckVerificationCode(ctx, req.Phone, req.Code); err != nil {
		return err
	}
	return s.UserRepo.MarkPhoneVerified(ctx, req.Phone)
}

func (s *UserService) ResendCode(ctx context.Context, phone string) error {
	code := generateVerificationCode()
	if err := s.Sessions.SaveVerificationCode(ctx, phone, code, smsCodeTTL); err != nil {
		return err
	}
	return s.SMS.SendSMS(ctx, phone, fmt.Sprintf(smsCodeTemplate, code))
}

func (s *UserService) RequestPasswordReset(ctx context.Context, phone string) error {
	user, err := s.UserRepo.GetUserByPhone(ctx, phone)
	if err != nil {
		return err
	}
	if user.ID == 0 {
		return models.ErrUserNotFound
	}
	code := generateVerificationCode()
	if err := s.Sessions.SaveResetCode(ctx, phone, code, resetCodeTTL); err != nil {
		return err
	}
	return s.SMS.SendSMS(ctx, phone, fmt.Sprintf("Your nyumba password reset code: %s", code))
}

func (s *UserService) VerifyResetCode(ctx context.Context, req models.VerifyCodeRequest) error {
	return s.Sessions.CheckResetCode(ctx, req.Phone, req.Code)
}

func (s *UserService) ResetPassword(ctx context.Context, req models.ResetPasswordRequest) error {
	if err := s.Sessions.CheckResetCode(ctx, req.Phone, req.Code); err != nil {
		return err
	}
	user, err := s.UserRepo.GetUserByPhone(ctx, req.Phone)
	if err != nil {
		return err
	}
	if user.ID == 0 {
		return models.ErrUserNotFound
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	if err := s.UserRepo.UpdatePassword(ctx, user.ID, string(hashed)); err != nil {
		return err
	}
	return s.Sessions.DeleteResetCode(ctx, req.Phone)
}

func (s *UserService) ChangePassword(ctx context.Context, req models.UpdatePasswordRequest) error {
	hash, err := s.UserRepo.GetPasswordHash(ctx, req.UserID)
	if err != nil {
		return err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(req.OldPassword)); err != nil {
		return models.ErrInvalidPassword
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	return s.UserRepo.UpdatePassword(ctx, req.UserID, string(hashed))
}

func (s *UserService) ChangePhone(ctx context.Context, userID int, phone string) error {
	existing, err := s.UserRepo.GetUserByPhone(ctx, phone)
	if err != nil {
		return err
	}
	if existing.ID != 0 && existing.ID != userID {
		return models.ErrDuplicatePhone
	}
	if err := s.UserRepo.UpdatePhone(ctx, userID, phone); err != nil {
		return err
	}
	code := generateVerificationCode()
	if err := s.Sessions.SaveVerificationCode(ctx, phone, code, smsCodeTTL); err != nil {
		return err
	}
	return s.SMS.SendSMS(ctx, phone, fmt.Sprintf(smsCodeTemplate, code))
}

func (s *UserService) ChangeEmail(ctx context.Context, userID int, email string) error {
	existing, err := s.UserRepo.GetUserByEmail(ctx, email)
	if err != nil {
		return err
	}
	if existing.ID != 0 && existing.ID != userID {
		return models.ErrDuplicateEmail
	}
	return s.UserRepo.UpdateEmail(ctx, userID, email)
}

// UpgradeToProvider promotes a client account so it can publish listings.
func (s *UserService) UpgradeToProvider(ctx context.Context, userID int) (models.User, error) {
	user, err := s.UserRepo.GetUserByID(ctx, userID)
	if err != nil {
		return models.User{}, err
	}
	if user.Role == models.RoleAdmin {
		return user, nil
	}
	if err := s.UserRepo.UpdateRole(ctx, userID, models.RoleProvider); err != nil {
		return models.User{}, err
	}
	return s.UserRepo.GetUserByID(ctx, userID)
}

func (s *UserService) CreateUser(ctx context.Context, user models.User) (models.User, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(user.Password), bcrypt.DefaultCost)
	if err != nil {
		return models.User{}, err
	}
	user.Password = string(hashed)
	return s.UserRepo.CreateUser(ctx, user)
}

func (s *UserService) GetUserByID(ctx context.Context, id int) (models.User, error) {
	return s.UserRepo.GetUserByID(ctx, id)
}

func (s *UserService) GetUsers(ctx context.Context, search string, page, limit int) ([]models.User, error) {
	return s.UserRepo.GetUsers(ctx, search, page, limit)
}

func (s *UserService) UpdateUser(ctx context.Context, user models.User) (models.User, error) {
	return s.UserRepo.UpdateUser(ctx, user)
}

func (s *UserService) UpdateAvatar(ctx context.Context, userID int, avatarPath string) error {
	return s.UserRepo.UpdateAvatar(ctx, userID, avatarPath)
}

func (s *UserService) DeleteUser(ctx context.Context, id int) error {
	return s.UserRepo.DeleteUser(ctx, id)
}
