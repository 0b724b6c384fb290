package usecase

import (
	"context"
	"errors"
	"strings"

	"medimeet-api/internal/converter"
	"medimeet-api/internal/delivery/dto"
	"medimeet-api/internal/domain/entity"
	"medimeet-api/internal/domain/repository"
	"medimeet-api/internal/service"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

var (
	ErrCannotModifySelf = errors.New("admins cannot demote, deactivate or delete themselves")
	ErrInvalidRole      = errors.New("invalid role")
)

// TokenRevoker ends every session of a user.
type TokenRevoker interface {
	RevokeAllUserTokens(ctx context.Context, userID uuid.UUID) error
}

type UserUsecase interface {
	GetUsers(ctx context.Context, page, limit int) ([]dto.UserResponse, int64, error)
	GetUser(ctx context.Context, id uuid.UUID) (*dto.UserResponse, error)
	UpdateUser(ctx context.Context, actor entity.Actor, id uuid.UUID, req *dto.UpdateUserRequest) (*dto.UserResponse, error)
	DeleteUser(ctx context.Context, actor entity.Actor, id uuid.UUID) error
}

type userUsecase struct {
	log          *logrus.Logger
	userRepo     repository.UserRepository
	auditService service.AuditService
	tokens       TokenRevoker
}

func NewUserUsecase(
	log *logrus.Logger,
	userRepo repository.UserRepository,
	auditService service.AuditService,
	tokens TokenRevoker,
) UserUsecase {
	return &userUsecase{
		log:          log,
		userRepo:     userRepo,
		auditService: auditService,
		tokens:       tokens,
	}
}

func (u *userUsecase) GetUsers(ctx context.Context, page, limit int) ([]dto.UserResponse, int64, error) {
	q := dto.PageQuery{Page: page, Limit: limit}.Normalize(10, MaxPageLimit)

	users, total, err := u.userRepo.FindAll(ctx, q.Limit, q.Offset())
	if err != nil {
		u.log.Warnf("Failed to find users: %+v", err)
		return nil, 0, err
	}

	return converter.UsersToResponses(users), total, nil
}

func (u *userUsecase) GetUser(ctx context.Context, id uuid.UUID) (*dto.UserResponse, error) {
	user, err := u.userRepo.FindByID(ctx, id)
	if err != nil {
		u.log.Warnf("Failed to find user %s: %+v", id, err)
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	return converter.UserToResponse(user), nil
}

// UpdateUser applies the fields present in req. A role change or
// deactivation ends the user's sessions since tokens carry the role.
func (u *userUsecase) UpdateUser(ctx context.Context, actor entity.Actor, id uuid.UUID, req *dto.UpdateUserRequest) (*dto.UserResponse, error) {
	user, err := u.userRepo.FindByID(ctx, id)
	if err != nil {
		u.log.Warnf("Failed to find user %s: %+v", id, err)
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	oldValue := converter.UserToResponse(user)
	revoke := false

	if req.Role != nil {
		role, ok := entity.ParseRoleName(*req.Role)
		if !ok {
			return nil, ErrInvalidRole
		}
		if role != user.RoleName() {
			if id == actor.UserID {
				return nil, ErrCannotModifySelf
			}
			user.RoleID = roleIDByName(role)
			user.Role = entity.Role{ID: user.RoleID, RoleName: role}
			revoke = true
		}
	}
	if req.IsActive != nil && *req.IsActive != user.Active() {
		if id == actor.UserID && !*req.IsActive {
			return nil, ErrCannotModifySelf
		}
		active := *req.IsActive
		user.IsActive = &active
		revoke = revoke || !active
	}
	if req.Name != nil {
		user.Name = strings.TrimSpace(*req.Name)
	}
	if req.Phone != nil {
		user.Phone = *req.Phone
	}
	if req.Gender != nil {
		user.Gender = *req.Gender
	}

	if err := u.userRepo.Update(ctx, user); err != nil {
		u.log.Warnf("Failed to update user %s: %+v", id, err)
		return nil, err
	}

	if revoke {
		if err := u.tokens.RevokeAllUserTokens(ctx, id); err != nil {
			u.log.Warnf("Failed to revoke tokens of user %s: %+v", id, err)
		}
	}

	response := converter.UserToResponse(user)
	u.auditService.LogUpdate(ctx, &actor.UserID, entity.AuditActionUserUpdate, "user", id.String(), oldValue, response)

	return response, nil
}

func (u *userUsecase) DeleteUser(ctx context.Context, actor entity.Actor, id uuid.UUID) error {
	if id == actor.UserID {
		return ErrCannotModifySelf
	}

	user, err := u.userRepo.FindByID(ctx, id)
	if err != nil {
		u.log.Warnf("Failed to find user %s: %+v", id, err)
		return err
	}
	if user == nil {
		return ErrUserNotFound
	}

	rows, err := u.userRepo.Delete(ctx, id)
	if err != nil {
		u.log.Warnf("Failed to delete user %s: %+v", id, err)
		return err
	}
	if rows == 0 {
		return ErrUserNotFound
	}

	if err := u.tokens.RevokeAllUserTokens(ctx, id); err != nil {
		u.log.Warnf("Failed to revoke tokens of user %s: %+v", id, err)
	}
	u.auditService.LogDelete(ctx, &actor.UserID, entity.AuditActionUserDelete, "user", id.String(), converter.UserToResponse(user))

	u.log.Infof("User %s deleted by %s", id, actor.UserID)
	return nil
}

func roleIDByName(role entity.RoleName) int {
	switch role {
	case entity.RoleAdmin:
		return entity.RoleIDAdmin
	case entity.RoleDoctor:
		return entity.RoleIDDoctor
	default:
		return entity.RoleIDPatient
	}
}
