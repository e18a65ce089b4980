package service

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"grafik-auth-api/common"
	"grafik-auth-api/logger"
	"grafik-auth-api/model"
	"grafik-auth-api/repository"
	"time"
)

// IUserService is the user directory boundary consumed by the auth flows.
type IUserService interface {
	Create(req model.SignupRequest) *common.Response
	FindByIdentifier(field, value string) *common.Response
	UpdatePassword(id, plaintext string) *common.Response
	UpdateVerifyAccount(id string) *common.Response
}

// UserService handles user directory business logic: account creation with
// role validation and verification mail, lookups, and the two updates the
// auth flows need.
type UserService struct {
	userRepo repository.IUserRepository
	roleRepo repository.IRoleRepository
	hash     IHashService
	tokens   ITokenService
	mail     IMailService
	cache    ICacheClient
}

const userCacheTTL = 10 * time.Minute

func NewUserService(userRepo repository.IUserRepository, roleRepo repository.IRoleRepository, hash IHashService, tokens ITokenService, mail IMailService, cache ICacheClient) *UserService {
	return &UserService{
		userRepo: userRepo,
		roleRepo: roleRepo,
		hash:     hash,
		tokens:   tokens,
		mail:     mail,
		cache:    cache,
	}
}

// Create validates the role, enforces email uniqueness, hashes the
// password, stores the user unverified, issues a verify-kind token and
// sends the verification mail. The mail is fire-and-forget: a send failure
// does not undo the created account.
func (s *UserService) Create(req model.SignupRequest) *common.Response {
	if _, err := s.roleRepo.GetRoleByID(req.RoleID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return common.NewResponse(nil, "Role not found", common.CodeNotFound)
		}
		return common.NewResponse(nil, err.Error(), common.CodeError)
	}

	if _, err := s.userRepo.GetUserByEmail(req.Email); err == nil {
		return common.NewResponse(nil, "User already exists", common.CodeAlreadyExists)
	} else if !errors.Is(err, sql.ErrNoRows) {
		return common.NewResponse(nil, err.Error(), common.CodeError)
	}

	hashed := s.hash.HashPassword(req.Password)
	if !hashed.IsSuccess() {
		return common.NewResponse(nil, "Error hashing password", common.CodeError)
	}

	user := &model.User{
		Name:     req.Name,
		LastName: req.LastName,
		Email:    req.Email,
		Password: hashed.Data.(string),
		Phone:    req.Phone,
		RoleID:   req.RoleID,
	}
	if err := s.userRepo.CreateUser(user); err != nil {
		logger.Log.WithError(err).Error("Failed to create user")
		return common.NewResponse(nil, err.Error(), common.CodeError)
	}

	verifyToken := s.tokens.Sign(model.TokenKindVerify, model.TokenPayload{ID: user.ID})
	if verifyToken.IsSuccess() {
		issued := verifyToken.Data.(model.IssuedToken)
		s.mail.SendAuthTemplate(user.Email, MailTemplateData{
			Subject:       "Verify your account",
			Preheader:     "Verify your account to access your visual content",
			Title:         "Welcome to Grafik Play",
			Text1:         "Verify your account to access your content on",
			TextAction:    "GRAFIK PLAY",
			TextActionURL: "/",
			Text2:         ", click the button below",
			ButtonText:    "Verify my account",
			ButtonURL:     fmt.Sprintf("/auth/verify-account?token=%s", issued.Token),
		})
	} else {
		logger.Log.WithField("user_id", user.ID).Warn("Verification token could not be issued at signup")
	}

	return common.NewResponse(user.Projection(), "User created successfully", common.CodeSuccess)
}

// FindByIdentifier looks a user up by "email" or "id". The id path is
// cache-aside over Redis; cached entries are projections without the
// password hash, so credential checks must use the email path.
func (s *UserService) FindByIdentifier(field, value string) *common.Response {
	var (
		user *model.User
		err  error
	)

	switch field {
	case "email":
		user, err = s.userRepo.GetUserByEmail(value)
	case "id", "_id":
		if cached := s.getCachedUser(value); cached != nil {
			return common.NewResponse(*cached, "User fetched successfully", common.CodeSuccess)
		}
		user, err = s.userRepo.GetUserByID(value)
		if err == nil {
			s.cacheUser(user)
		}
	default:
		return common.NewResponse(nil, fmt.Sprintf("unknown identifier field: %s", field), common.CodeError)
	}

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return common.NewResponse(nil, "User not found", common.CodeNotFound)
		}
		return common.NewResponse(nil, err.Error(), common.CodeError)
	}

	return common.NewResponse(*user, "User fetched successfully", common.CodeSuccess)
}

// UpdatePassword hashes and stores a new password.
func (s *UserService) UpdatePassword(id, plaintext string) *common.Response {
	hashed := s.hash.HashPassword(plaintext)
	if !hashed.IsSuccess() {
		return common.NewResponse(nil, "Error updating password", common.CodeUpdatedFailed)
	}

	updated, err := s.userRepo.UpdatePassword(id, hashed.Data.(string))
	if err != nil || !updated {
		return common.NewResponse(nil, "Error updating password", common.CodeUpdatedFailed)
	}

	s.invalidateUser(id)
	return common.NewResponse(nil, "Password updated successfully", common.CodeSuccess)
}

// UpdateVerifyAccount flips the verification flag. A user becomes verified
// exactly once; callers short-circuit already-verified accounts first.
func (s *UserService) UpdateVerifyAccount(id string) *common.Response {
	updated, err := s.userRepo.SetVerified(id)
	if err != nil {
		return common.NewResponse(nil, err.Error(), common.CodeError)
	}
	if !updated {
		return common.NewResponse(nil, "User not found", common.CodeNotFound)
	}

	s.invalidateUser(id)
	return common.NewResponse(nil, "User updated successfully", common.CodeSuccess)
}

func userCacheKey(id string) string {
	return "user:" + id
}

func (s *UserService) getCachedUser(id string) *model.User {
	if s.cache == nil {
		return nil
	}
	raw, err := s.cache.Get(context.Background(), userCacheKey(id)).Result()
	if err != nil {
		return nil
	}
	var user model.User
	if err := json.Unmarshal([]byte(raw), &user); err != nil {
		return nil
	}
	return &user
}

func (s *UserService) cacheUser(user *model.User) {
	if s.cache == nil {
		return
	}
	raw, err := json.Marshal(user.Projection())
	if err != nil {
		return
	}
	if err := s.cache.Set(context.Background(), userCacheKey(user.ID), raw, userCacheTTL).Err(); err != nil {
		logger.Log.WithError(err).Warn("Failed to cache user projection")
	}
}

func (s *UserService) invalidateUser(id string) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Del(context.Background(), userCacheKey(id)).Err(); err != nil {
		logger.Log.WithError(err).Warn("Failed to invalidate user cache")
	}
}
