// Package space 反馈空间用例
package space

import (
	"log/slog"
	"strings"
	"time"

	"github.com/feedify/backend/internal/domain/account"
	"github.com/feedify/backend/internal/domain/space"
	"github.com/feedify/backend/internal/infrastructure/log"
)

// Service 空间应用服务
type Service struct {
	repo      space.Repository
	users     account.Repository
	domainSvc *space.Service
	logger    *slog.Logger
}

// NewService 创建空间应用服务
func NewService(repo space.Repository, users account.Repository, domainSvc *space.Service) *Service {
	return &Service{
		repo:      repo,
		users:     users,
		domainSvc: domainSvc,
		logger:    log.NewModuleLogger("space", "service"),
	}
}

// Create 为用户创建空间
func (s *Service) Create(userID string, dto *CreateSpaceDTO) (*SpaceDTO, error) {
	name := strings.TrimSpace(dto.Name)
	title := strings.TrimSpace(dto.Title)
	if err := s.domainSvc.Validate(name, title); err != nil {
		return nil, err
	}
	if _, err := s.users.FindByID(userID); err != nil {
		return nil, err
	}

	sp := &space.Space{
		UserID:    userID,
		Name:      name,
		Title:     title,
		CreatedAt: time.Now(),
	}
	if err := s.repo.Create(sp); err != nil {
		return nil, err
	}

	s.logger.Info("Space created", "user_id", userID, "space", name)
	return toDTO(sp), nil
}

// List 按创建顺序列出用户的空间
func (s *Service) List(userID string) ([]*SpaceDTO, error) {
	spaces, err := s.repo.ListByUser(userID)
	if err != nil {
		return nil, err
	}
	result := make([]*SpaceDTO, 0, len(spaces))
	for _, sp := range spaces {
		result = append(result, toDTO(sp))
	}
	return result, nil
}

// Get 返回用户的一个空间，不存在返回 ErrSpaceNotFound
func (s *Service) Get(userID, name string) (*space.Space, error) {
	return s.repo.FindByName(userID, name)
}

// GetHeading 公开页面的空间标题
func (s *Service) GetHeading(username, name string) (*HeadingDTO, error) {
	user, err := s.users.FindByUsername(account.NormalizeUsername(username))
	if err != nil {
		return nil, err
	}
	sp, err := s.repo.FindByName(user.ID, name)
	if err != nil {
		return nil, err
	}
	return &HeadingDTO{
		Username:  user.Username,
		SpaceName: sp.Name,
		Title:     sp.Title,
		CreatedAt: sp.CreatedAt.Format(time.RFC3339),
	}, nil
}

func toDTO(sp *space.Space) *SpaceDTO {
	return &SpaceDTO{
		Name:      sp.Name,
		Title:     sp.Title,
		CreatedAt: sp.CreatedAt.Format(time.RFC3339),
	}
}
