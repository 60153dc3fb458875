package service

import (
	"errors"
	"strings"

	"peer_eval_backend/internal/config"
	"peer_eval_backend/internal/model"
	"peer_eval_backend/internal/repository"
	"peer_eval_backend/internal/util"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type AuthService struct {
	UserRepo *repository.UserRepository
	Cfg      *config.Config
}

func NewAuthService(userRepo *repository.UserRepository, cfg *config.Config) *AuthService {
	return &AuthService{
		UserRepo: userRepo,
		Cfg:      cfg,
	}
}

// Register 创建后台账号。系统里已有用户时只允许管理员调用
// （首次部署时开放，用于创建第一个管理员）。
func (s *AuthService) Register(username, password string, role model.UserRole, caller *util.Claims) error {
	count, err := s.UserRepo.Count()
	if err != nil {
		return err
	}
	if count > 0 && (caller == nil || caller.Role != model.Admin) {
		return errors.New("permission denied")
	}

	if len(password) < 6 {
		return errors.New("password must be at least 6 characters")
	}
	if role != model.Admin && role != model.Staff {
		role = model.Staff
	}

	username = strings.ToLower(strings.TrimSpace(username))
	_, err = s.UserRepo.FindByUsername(username)
	if err == nil {
		return errors.New("username already exists")
	} else if err != gorm.ErrRecordNotFound {
		return err
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	return s.UserRepo.Create(&model.User{
		Username: username,
		Password: string(hashedPassword),
		Role:     role,
	})
}

func (s *AuthService) Login(username, password string) (string, *model.User, error) {
	user, err := s.UserRepo.FindByUsername(strings.ToLower(strings.TrimSpace(username)))
	if err != nil {
		return "", nil, errors.New("invalid credentials")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return "", nil, errors.New("invalid credentials")
	}

	token, err := util.GenerateJWT(user, s.Cfg.JWT.Secret, s.Cfg.JWT.ExpireTime)
	if err != nil {
		return "", nil, err
	}
	return token, user, nil
}

func (s *AuthService) GetCurrentUser(c *gin.Context) *model.User {
	claims := util.GetUserFromContext(c)
	if claims == nil {
		return nil
	}

	user, _ := s.UserRepo.FindByID(claims.UserID)
	return user
}
