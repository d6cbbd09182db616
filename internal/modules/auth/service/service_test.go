package service

import (
	"testing"

	moduledto "pocket-pic-server/internal/modules/auth/dto"
	userrepo "pocket-pic-server/internal/modules/user/repo"
	platformservice "pocket-pic-server/internal/platform/service"
	"pocket-pic-server/internal/testutils"
	"pocket-pic-server/internal/utils"
)

func setupAuthService(t *testing.T) (*Service, userrepo.UserStore) {
	t.Helper()
	testutils.SetupConfig(t)
	db := testutils.SetupDB(t)
	userStore := userrepo.NewUserRepository(db)
	return New(platformservice.NewAppService(), userStore), userStore
}

func assertCode(t *testing.T, err error, code platformservice.ErrorCode) {
	t.Helper()
	if err == nil {
		t.Fatalf("期望错误 code=%s，实际为 nil", code)
	}
	serviceErr, ok := platformservice.AsServiceError(err)
	if !ok {
		t.Fatalf("期望 ServiceError，实际为 %T: %v", err, err)
	}
	if serviceErr.Code != code {
		t.Fatalf("期望 code=%s，实际为 %s (%s)", code, serviceErr.Code, serviceErr.Message)
	}
}

// 测试内容：首个注册用户自动成为管理员，后续注册用户不是。
func TestRegister_FirstUserIsAdmin(t *testing.T) {
	svc, userStore := setupAuthService(t)

	if err := svc.Register(moduledto.RegisterRequest{Username: "alice_1", Password: "abc12345"}); err != nil {
		t.Fatalf("Register error: %v", err)
	}
	if err := svc.Register(moduledto.RegisterRequest{Username: "bob_2", Password: "abc12345"}); err != nil {
		t.Fatalf("Register error: %v", err)
	}

	alice, err := userStore.FindByUsername("alice_1")
	if err != nil {
		t.Fatalf("find alice: %v", err)
	}
	if !alice.Admin {
		t.Fatalf("期望首个用户为管理员")
	}
	if alice.Password == "abc12345" {
		t.Fatalf("密码必须以哈希存储")
	}

	bob, err := userStore.FindByUsername("bob_2")
	if err != nil {
		t.Fatalf("find bob: %v", err)
	}
	if bob.Admin {
		t.Fatalf("后续用户不应是管理员")
	}
}

// 测试内容：非法用户名/密码与重名注册被拒绝。
func TestRegister_Validation(t *testing.T) {
	svc, _ := setupAuthService(t)

	err := svc.Register(moduledto.RegisterRequest{Username: "ab", Password: "abc12345"})
	assertCode(t, err, platformservice.ErrorCodeValidation)

	err = svc.Register(moduledto.RegisterRequest{Username: "valid_user", Password: "short"})
	assertCode(t, err, platformservice.ErrorCodeValidation)

	if err := svc.Register(moduledto.RegisterRequest{Username: "valid_user", Password: "abc12345"}); err != nil {
		t.Fatalf("Register error: %v", err)
	}
	err = svc.Register(moduledto.RegisterRequest{Username: "valid_user", Password: "abc12345"})
	assertCode(t, err, platformservice.ErrorCodeConflict)
}

// 测试内容：登录成功签发可解析的 token；密码错误与用户不存在返回同样的错误。
func TestLogin(t *testing.T) {
	svc, _ := setupAuthService(t)

	if err := svc.Register(moduledto.RegisterRequest{Username: "alice_1", Password: "abc12345"}); err != nil {
		t.Fatalf("Register error: %v", err)
	}

	resp, err := svc.Login(moduledto.LoginRequest{Username: "alice_1", Password: "abc12345"})
	if err != nil {
		t.Fatalf("Login error: %v", err)
	}
	claims, err := utils.ParseLoginToken(resp.Token)
	if err != nil {
		t.Fatalf("签发的 token 无法解析: %v", err)
	}
	if claims.Username != "alice_1" || claims.ID != resp.ID {
		t.Fatalf("token claims 不符: %+v", claims)
	}

	_, wrongPass := svc.Login(moduledto.LoginRequest{Username: "alice_1", Password: "wrong123"})
	_, noUser := svc.Login(moduledto.LoginRequest{Username: "nobody_1", Password: "abc12345"})
	assertCode(t, wrongPass, platformservice.ErrorCodeUnauthorized)
	assertCode(t, noUser, platformservice.ErrorCodeUnauthorized)
	// 两种失败不应泄露用户是否存在
	if wrongPass.Error() != noUser.Error() {
		t.Fatalf("期望统一的失败消息，实际 %q vs %q", wrongPass.Error(), noUser.Error())
	}
}
