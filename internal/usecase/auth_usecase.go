package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"medimeet-api/internal/converter"
	"medimeet-api/internal/delivery/dto"
	"medimeet-api/internal/domain/entity"
	"medimeet-api/internal/domain/repository"
	"medimeet-api/internal/service"
	"medimeet-api/pkg/jwt"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrEmailAlreadyExists  = errors.New("email already exists")
	ErrInvalidCredentials  = errors.New("invalid email or password")
	ErrInvalidToken        = errors.New("invalid or expired token")
	ErrTokenRevoked        = errors.New("token has been revoked")
	ErrUserNotFound        = errors.New("user not found")
	ErrUserInactive        = errors.New("user account is inactive")
	ErrRoleNotAllowed      = errors.New("only patient accounts can sign up here")
	ErrDoctorAlreadyLinked = errors.New("doctor profile already has an account")
	ErrDoctorEmailMismatch = errors.New("email does not match the doctor profile")
)

const (
	accessTokenKeyPrefix  = "access_token"
	refreshTokenKeyPrefix = "refresh_token"
)

type AuthUsecase interface {
	Signup(ctx context.Context, req *dto.SignupRequest) (*dto.UserResponse, error)
	DoctorSignup(ctx context.Context, req *dto.DoctorSignupRequest) (*dto.UserResponse, error)
	Login(ctx context.Context, req *dto.LoginRequest) (*dto.TokenResponse, error)
	Logout(ctx context.Context, userID uuid.UUID, accessTokenID string, refreshToken string) error
	RefreshToken(ctx context.Context, req *dto.RefreshTokenRequest) (*dto.TokenResponse, error)
	GetCurrentUser(ctx context.Context, userID uuid.UUID) (*dto.UserResponse, error)
	IsTokenValid(ctx context.Context, userID uuid.UUID, tokenID string, tokenType jwt.TokenType) (bool, error)
	RevokeAllUserTokens(ctx context.Context, userID uuid.UUID) error
	EnsureAdmin(ctx context.Context, email, password string) error
}

type authUsecase struct {
	log          *logrus.Logger
	userRepo     repository.UserRepository
	doctorRepo   repository.DoctorRepository
	auditService service.AuditService
	jwtService   *jwt.JWTService
	redisClient  *redis.Client
}

func NewAuthUsecase(
	log *logrus.Logger,
	userRepo repository.UserRepository,
	doctorRepo repository.DoctorRepository,
	auditService service.AuditService,
	jwtService *jwt.JWTService,
	redisClient *redis.Client,
) AuthUsecase {
	return &authUsecase{
		log:          log,
		userRepo:     userRepo,
		doctorRepo:   doctorRepo,
		auditService: auditService,
		jwtService:   jwtService,
		redisClient:  redisClient,
	}
}

// Signup registers a patient account.
func (u *authUsecase) Signup(ctx context.Context, req *dto.SignupRequest) (*dto.UserResponse, error) {
	if req.Role != "" && entity.RoleName(req.Role) != entity.RolePatient {
		return nil, ErrRoleNotAllowed
	}

	user, err := u.createUser(ctx, req.Name, req.Email, req.Password, entity.RoleIDPatient, func(user *entity.User) {
		user.Phone = req.Phone
		user.Gender = req.Gender
	})
	if err != nil {
		return nil, err
	}

	u.auditService.LogCreate(ctx, &user.ID, entity.AuditActionUserRegister, "user", user.ID.String(), converter.UserToResponse(user))
	return converter.UserToResponse(user), nil
}

// DoctorSignup creates a doctor-role login and links it to an existing
// doctor profile that has none yet. The email must be the profile's.
func (u *authUsecase) DoctorSignup(ctx context.Context, req *dto.DoctorSignupRequest) (*dto.UserResponse, error) {
	doctorID, err := uuid.Parse(req.DoctorID)
	if err != nil {
		return nil, ErrInvalidDoctorID
	}

	doctor, err := u.doctorRepo.FindByID(ctx, doctorID)
	if err != nil {
		u.log.Warnf("Failed to find doctor %s: %+v", doctorID, err)
		return nil, err
	}
	if doctor == nil {
		return nil, ErrDoctorNotFound
	}
	if doctor.UserID != nil {
		return nil, ErrDoctorAlreadyLinked
	}
	if !strings.EqualFold(doctor.Email, strings.TrimSpace(req.Email)) {
		return nil, ErrDoctorEmailMismatch
	}

	user, err := u.createUser(ctx, doctor.Name, req.Email, req.Password, entity.RoleIDDoctor, func(user *entity.User) {
		user.Phone = doctor.Phone
	})
	if err != nil {
		return nil, err
	}

	rows, err := u.doctorRepo.LinkUser(ctx, doctorID, user.ID)
	if err == nil && rows == 0 {
		err = ErrDoctorAlreadyLinked
	}
	if err != nil {
		// Another sign-up claimed the profile first; drop the orphan account.
		if _, delErr := u.userRepo.Delete(ctx, user.ID); delErr != nil {
			u.log.Errorf("Failed to remove unlinked doctor account %s: %+v", user.ID, delErr)
		}
		if errors.Is(err, ErrDoctorAlreadyLinked) || repository.IsDuplicate(err, repository.ConstraintDoctorUserID) {
			return nil, ErrDoctorAlreadyLinked
		}
		u.log.Warnf("Failed to link doctor %s to user %s: %+v", doctorID, user.ID, err)
		return nil, err
	}

	u.auditService.LogUpdate(ctx, &user.ID, entity.AuditActionDoctorLinkAccount, "doctor", doctorID.String(), nil, map[string]string{"user_id": user.ID.String()})

	response := converter.UserToResponse(user)
	response.DoctorID = &doctor.ID
	return response, nil
}

func (u *authUsecase) createUser(ctx context.Context, name, email, password string, roleID int, decorate func(*entity.User)) (*entity.User, error) {
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		u.log.Warnf("Failed to hash password: %+v", err)
		return nil, err
	}

	active := true
	user := &entity.User{
		RoleID:   roleID,
		Name:     strings.TrimSpace(name),
		Email:    strings.ToLower(strings.TrimSpace(email)),
		Password: string(hashedPassword),
		IsActive: &active,
	}
	if decorate != nil {
		decorate(user)
	}

	if err := u.userRepo.Create(ctx, user); err != nil {
		if repository.IsDuplicate(err, repository.ConstraintUserEmail) {
			return nil, ErrEmailAlreadyExists
		}
		u.log.Warnf("Failed to create user: %+v", err)
		return nil, err
	}

	if name, ok := entity.RoleNameByID(roleID); ok {
		user.Role = entity.Role{ID: roleID, RoleName: name}
	}
	return user, nil
}

func (u *authUsecase) Login(ctx context.Context, req *dto.LoginRequest) (*dto.TokenResponse, error) {
	user, err := u.userRepo.FindByEmail(ctx, strings.ToLower(strings.TrimSpace(req.Email)))
	if err != nil {
		u.log.Warnf("Failed to find user by email: %+v", err)
		return nil, err
	}
	if user == nil {
		return nil, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}
	if !user.Active() {
		return nil, ErrUserInactive
	}

	tokens, err := u.issueTokens(ctx, user)
	if err != nil {
		return nil, err
	}

	tokens.User, err = u.userResponse(ctx, user)
	if err != nil {
		return nil, err
	}

	u.auditService.LogAction(ctx, &user.ID, entity.AuditActionUserLogin, entity.JSON{"email": user.Email})
	return tokens, nil
}

// Logout revokes the current access token, and the refresh token too when
// the client sends it.
func (u *authUsecase) Logout(ctx context.Context, userID uuid.UUID, accessTokenID string, refreshToken string) error {
	keys := []string{tokenKey(accessTokenKeyPrefix, userID, accessTokenID)}

	if refreshToken != "" {
		claims, err := u.jwtService.ValidateToken(refreshToken)
		if err == nil && claims.TokenType == jwt.RefreshToken && claims.UserID == userID {
			keys = append(keys, tokenKey(refreshTokenKeyPrefix, userID, claims.TokenID))
		}
	}

	if err := u.redisClient.Del(ctx, keys...).Err(); err != nil {
		u.log.Warnf("Failed to delete tokens: %+v", err)
		return err
	}

	u.auditService.LogAction(ctx, &userID, entity.AuditActionUserLogout, nil)
	return nil
}

// RefreshToken rotates a refresh token. The old one is consumed, and the
// user's current role and status are read again.
func (u *authUsecase) RefreshToken(ctx context.Context, req *dto.RefreshTokenRequest) (*dto.TokenResponse, error) {
	claims, err := u.jwtService.ValidateToken(req.RefreshToken)
	if err != nil {
		return nil, ErrInvalidToken
	}

	if claims.TokenType != jwt.RefreshToken {
		return nil, ErrInvalidToken
	}

	// DEL doubles as the existence check so a token can be used only once.
	refreshKey := tokenKey(refreshTokenKeyPrefix, claims.UserID, claims.TokenID)
	deleted, err := u.redisClient.Del(ctx, refreshKey).Result()
	if err != nil {
		u.log.Warnf("Failed to consume refresh token: %+v", err)
		return nil, err
	}
	if deleted == 0 {
		return nil, ErrTokenRevoked
	}

	user, err := u.userRepo.FindByID(ctx, claims.UserID)
	if err != nil {
		u.log.Warnf("Failed to find user by ID: %+v", err)
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	if !user.Active() {
		return nil, ErrUserInactive
	}

	return u.issueTokens(ctx, user)
}

func (u *authUsecase) issueTokens(ctx context.Context, user *entity.User) (*dto.TokenResponse, error) {
	accessToken, accessTokenID, err := u.jwtService.GenerateAccessToken(user.ID, user.Email, user.RoleID)
	if err != nil {
		u.log.Warnf("Failed to generate access token: %+v", err)
		return nil, err
	}

	refreshToken, refreshTokenID, err := u.jwtService.GenerateRefreshToken(user.ID, user.Email, user.RoleID)
	if err != nil {
		u.log.Warnf("Failed to generate refresh token: %+v", err)
		return nil, err
	}

	pipe := u.redisClient.TxPipeline()
	pipe.Set(ctx, tokenKey(accessTokenKeyPrefix, user.ID, accessTokenID), "valid", u.jwtService.GetAccessExpiry())
	pipe.Set(ctx, tokenKey(refreshTokenKeyPrefix, user.ID, refreshTokenID), "valid", u.jwtService.GetRefreshExpiry())
	if _, err := pipe.Exec(ctx); err != nil {
		u.log.Warnf("Failed to store tokens in Redis: %+v", err)
		return nil, err
	}

	return &dto.TokenResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		ExpiresIn:    int64(u.jwtService.GetAccessExpiry().Seconds()),
	}, nil
}

func (u *authUsecase) GetCurrentUser(ctx context.Context, userID uuid.UUID) (*dto.UserResponse, error) {
	user, err := u.userRepo.FindByID(ctx, userID)
	if err != nil {
		u.log.Warnf("Failed to find user by ID: %+v", err)
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	return u.userResponse(ctx, user)
}

// userResponse attaches the linked doctor profile ID for doctor accounts.
func (u *authUsecase) userResponse(ctx context.Context, user *entity.User) (*dto.UserResponse, error) {
	response := converter.UserToResponse(user)
	if user.RoleName() != entity.RoleDoctor {
		return response, nil
	}

	doctor, err := u.doctorRepo.FindByUserID(ctx, user.ID)
	if err != nil {
		u.log.Warnf("Failed to find doctor for user %s: %+v", user.ID, err)
		return nil, err
	}
	if doctor != nil {
		response.DoctorID = &doctor.ID
	}
	return response, nil
}

func (u *authUsecase) IsTokenValid(ctx context.Context, userID uuid.UUID, tokenID string, tokenType jwt.TokenType) (bool, error) {
	prefix := accessTokenKeyPrefix
	if tokenType == jwt.RefreshToken {
		prefix = refreshTokenKeyPrefix
	}

	exists, err := u.redisClient.Exists(ctx, tokenKey(prefix, userID, tokenID)).Result()
	if err != nil {
		u.log.Warnf("Failed to check token validity: %+v", err)
		return false, err
	}

	return exists > 0, nil
}

// RevokeAllUserTokens revokes all tokens for a user (role change, deactivation or deletion)
func (u *authUsecase) RevokeAllUserTokens(ctx context.Context, userID uuid.UUID) error {
	for _, prefix := range []string{accessTokenKeyPrefix, refreshTokenKeyPrefix} {
		pattern := fmt.Sprintf("%s:%s:*", prefix, userID)

		iter := u.redisClient.Scan(ctx, 0, pattern, 100).Iterator()
		var keys []string
		for iter.Next(ctx) {
			keys = append(keys, iter.Val())
		}
		if err := iter.Err(); err != nil {
			u.log.Warnf("Failed to scan %s keys: %+v", prefix, err)
			return err
		}

		if len(keys) > 0 {
			if err := u.redisClient.Del(ctx, keys...).Err(); err != nil {
				u.log.Warnf("Failed to delete %s keys: %+v", prefix, err)
				return err
			}
		}
	}

	return nil
}

// EnsureAdmin creates the configured admin account unless the email is
// already registered. An existing non-admin account is left untouched.
func (u *authUsecase) EnsureAdmin(ctx context.Context, email, password string) error {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return nil
	}

	existing, err := u.userRepo.FindByEmail(ctx, email)
	if err != nil {
		return err
	}
	if existing != nil {
		if existing.RoleName() != entity.RoleAdmin {
			u.log.Warnf("Admin seed skipped: %s exists with role %s", email, existing.RoleName())
		}
		return nil
	}

	user, err := u.createUser(ctx, "Admin", email, password, entity.RoleIDAdmin, nil)
	if err != nil {
		if errors.Is(err, ErrEmailAlreadyExists) {
			return nil
		}
		return err
	}

	u.log.Infof("Admin account %s created", user.Email)
	return nil
}

func tokenKey(prefix string, userID uuid.UUID, tokenID string) string {
	return fmt.Sprintf("%s:%s:%s", prefix, userID, tokenID)
}
