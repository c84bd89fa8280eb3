/**
 * 服务层:用户管理服务
 * @author: sun977
 * @date: 2025.11.21
 * @description: 用户注册、查询、更新、删除的业务逻辑，密码在本层完成哈希
 * @func:
 *   - Register/GetUserByID/GetUserByEmail/UpdateUser/DeleteUser
 */
package auth

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"

	"neowatch/internal/model"
	"neowatch/internal/pkg/auth"
	"neowatch/internal/pkg/logger"
	"neowatch/internal/repo/mysql"
)

// UserService 用户管理服务
type UserService struct {
	userRepo        *mysql.UserRepository
	passwordManager *auth.PasswordManager
}

// NewUserService 创建用户管理服务实例
func NewUserService(userRepo *mysql.UserRepository, passwordManager *auth.PasswordManager) *UserService {
	return &UserService{
		userRepo:        userRepo,
		passwordManager: passwordManager,
	}
}

// Register 用户注册
// 明文密码只存在于本方法边界内，哈希后写库
// 邮箱重复返回ErrEmailAlreadyExists
func (s *UserService) Register(ctx context.Context, req *model.RegisterRequest) (*model.UserInfo, error) {
	if err := validateRegisterRequest(req); err != nil {
		return nil, err
	}

	hash, err := s.passwordManager.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	user := &model.User{
		Name:     req.Name,
		Email:    req.Email,
		Password: hash,
	}
	if err := s.userRepo.CreateUser(ctx, user); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, model.ErrEmailAlreadyExists
		}
		return nil, err
	}

	logger.LogBusinessOperation("user_register", user.ID, "", "", "success", "user registered", map[string]interface{}{
		"email": user.Email,
	})

	return model.NewUserInfo(user), nil
}

// GetUserByID 根据ID获取用户信息
// 返回结构不包含密码哈希
func (s *UserService) GetUserByID(ctx context.Context, id uint) (*model.UserInfo, error) {
	user, err := s.userRepo.GetUserByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, model.ErrUserNotFound
	}
	return model.NewUserInfo(user), nil
}

// GetUserByEmail 根据邮箱获取用户(含密码哈希)
// 仅供认证流程内部使用
func (s *UserService) GetUserByEmail(ctx context.Context, email string) (*model.User, error) {
	return s.userRepo.GetUserByEmail(ctx, email)
}

// UpdateUser 更新用户信息
// 密码字段为空时保留原密码
func (s *UserService) UpdateUser(ctx context.Context, id uint, req *model.UpdateUserRequest) (*model.UserInfo, error) {
	existing, err := s.userRepo.GetUserByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, model.ErrUserNotFound
	}

	if req.Name != "" {
		existing.Name = req.Name
	}
	if req.Email != "" {
		if !isValidEmail(req.Email) {
			return nil, model.NewValidationError("email", "invalid email format")
		}
		existing.Email = req.Email
	}
	if req.Password != "" {
		if err := auth.ValidatePasswordStrength(req.Password); err != nil {
			return nil, model.NewValidationError("password", err.Error())
		}
		hash, err := s.passwordManager.HashPassword(req.Password)
		if err != nil {
			return nil, err
		}
		existing.Password = hash
	}

	if err := s.userRepo.UpdateUser(ctx, existing); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, model.ErrEmailAlreadyExists
		}
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, model.ErrUserNotFound
		}
		return nil, err
	}

	return model.NewUserInfo(existing), nil
}

// DeleteUser 删除用户
func (s *UserService) DeleteUser(ctx context.Context, id uint) error {
	if err := s.userRepo.DeleteUser(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return model.ErrUserNotFound
		}
		return err
	}

	logger.LogBusinessOperation("user_delete", id, "", "", "success", "user deleted", nil)
	return nil
}

// validateRegisterRequest 校验注册请求
func validateRegisterRequest(req *model.RegisterRequest) error {
	if req.Name == "" {
		return model.NewValidationError("name", "name is required")
	}
	if req.Email == "" {
		return model.NewValidationError("email", "email is required")
	}
	if !isValidEmail(req.Email) {
		return model.NewValidationError("email", "invalid email format")
	}
	if req.Password == "" {
		return model.NewValidationError("password", "password is required")
	}
	if err := auth.ValidatePasswordStrength(req.Password); err != nil {
		return model.NewValidationError("password", err.Error())
	}
	return nil
}

// isValidEmail 粗粒度的邮箱格式检查
func isValidEmail(email string) bool {
	at := strings.Index(email, "@")
	if at <= 0 || at == len(email)-1 {
		return false
	}
	domain := email[at+1:]
	return strings.Contains(domain, ".") && !strings.ContainsAny(email, " \t\n")
}
