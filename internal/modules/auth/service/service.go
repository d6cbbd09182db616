package service

import (
	"errors"
	"log"
	"pocket-pic-server/internal/config"
	"pocket-pic-server/internal/model"
	moduledto "pocket-pic-server/internal/modules/auth/dto"
	userrepo "pocket-pic-server/internal/modules/user/repo"
	platformservice "pocket-pic-server/internal/platform/service"
	"pocket-pic-server/internal/utils"
	"time"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type Service struct {
	*platformservice.AppService
	userStore userrepo.UserStore
}

func New(appService *platformservice.AppService, userStore userrepo.UserStore) *Service {
	return &Service{
		AppService: appService,
		userStore:  userStore,
	}
}

func (s *Service) Register(req moduledto.RegisterRequest) error {
	if ok, msg := utils.ValidateUsername(req.Username); !ok {
		return platformservice.NewValidationError(msg)
	}
	if ok, msg := utils.ValidatePassword(req.Password); !ok {
		return platformservice.NewValidationError(msg)
	}

	taken, err := s.userStore.IsUsernameTaken(req.Username)
	if err != nil {
		log.Printf("Check username error: %v\n", err)
		return platformservice.NewInternalError("查询用户名失败")
	}
	if taken {
		return platformservice.NewConflictError("用户名已被占用")
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		log.Printf("Hash password error: %v\n", err)
		return platformservice.NewInternalError("注册失败")
	}

	// 第一个注册的用户自动成为管理员
	count, err := s.userStore.CountAll()
	if err != nil {
		log.Printf("Count users error: %v\n", err)
		return platformservice.NewInternalError("注册失败")
	}

	user := &model.User{
		Username: req.Username,
		Password: string(hashed),
		Admin:    count == 0,
	}
	if err := s.userStore.Create(user); err != nil {
		log.Printf("Create user error: %v\n", err)
		return platformservice.NewInternalError("注册失败")
	}
	return nil
}

func (s *Service) Login(req moduledto.LoginRequest) (*moduledto.LoginResponse, error) {
	user, err := s.userStore.FindByUsername(req.Username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			// 不区分“用户不存在”与“密码错误”，避免枚举用户名
			return nil, platformservice.NewUnauthorizedError("用户名或密码错误")
		}
		log.Printf("Find user error: %v\n", err)
		return nil, platformservice.NewInternalError("登录失败")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return nil, platformservice.NewUnauthorizedError("用户名或密码错误")
	}

	expirationHours := config.Get().JWT.ExpirationHours
	if expirationHours <= 0 {
		expirationHours = 24
	}
	token, err := utils.GenerateLoginToken(user.ID, user.Username, user.Admin, time.Duration(expirationHours)*time.Hour)
	if err != nil {
		log.Printf("Generate token error: %v\n", err)
		return nil, platformservice.NewInternalError("登录失败")
	}

	return &moduledto.LoginResponse{
		Token:    token,
		ID:       user.ID,
		Username: user.Username,
		Admin:    user.Admin,
	}, nil
}
