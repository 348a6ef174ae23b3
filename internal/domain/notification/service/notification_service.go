package service

import (
	"deal_market/internal/domain/notification/model"
	"deal_market/internal/domain/notification/repository"
	"deal_market/internal/pkg/push"
	"deal_market/internal/pkg/worker"
)

// NotificationService 通知服务接口
type NotificationService interface {
	// Notify 创建站内通知并尽力推送到移动端
	Notify(userID, notifType, title, body string, referenceID *string) error
	GetNotifications(userID string, page, limit int) ([]model.Notification, int64, error)
	CountUnread(userID string) (int64, error)
	MarkRead(userID, id string) error
	MarkAllRead(userID string) error
}

type notificationService struct {
	repo    repository.NotificationRepository
	workers *worker.Pool
}

func NewNotificationService(repo repository.NotificationRepository, workers *worker.Pool) NotificationService {
	return &notificationService{repo: repo, workers: workers}
}

// Notify 站内通知同步落库，移动端推送异步尽力而为
func (s *notificationService) Notify(userID, notifType, title, body string, referenceID *string) error {
	n := &model.Notification{
		UserID:      userID,
		Type:        notifType,
		Title:       title,
		Body:        body,
		ReferenceID: referenceID,
	}
	if err := s.repo.Create(n); err != nil {
		return err
	}

	// 未配置推送时 GlobalPushService 为 nil，直接跳过
	if push.GlobalPushService != nil && s.workers != nil {
		s.workers.Submit("push", func() error {
			ext := map[string]string{"type": notifType}
			if referenceID != nil {
				ext["referenceId"] = *referenceID
			}
			return push.GlobalPushService.PushToAccount(userID, title, body, ext)
		})
	}

	return nil
}

func (s *notificationService) GetNotifications(userID string, page, limit int) ([]model.Notification, int64, error) {
	if page <= 0 {
		page = 1
	}
	if limit <= 0 {
		limit = 10
	}
	return s.repo.GetByUser(userID, (page-1)*limit, limit)
}

func (s *notificationService) CountUnread(userID string) (int64, error) {
	return s.repo.CountUnread(userID)
}

func (s *notificationService) MarkRead(userID, id string) error {
	return s.repo.MarkRead(userID, id)
}

func (s *notificationService) MarkAllRead(userID string) error {
	return s.repo.MarkAllRead(userID)
}
