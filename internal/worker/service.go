package worker

import (
	"context"
	"errors"
	"time"

	"github.com/minishop/internal/logger"
)

const defaultSweepInterval = time.Minute

// Sweeper 可清理过期数据的存储
type Sweeper interface {
	Sweep() int
}

// Service 会话购物车定时清理服务
type Service struct {
	name     string
	sweeper  Sweeper
	interval time.Duration
	stopped  chan struct{}
}

// NewService 创建定时清理服务
func NewService(sweeper Sweeper, interval time.Duration) (*Service, error) {
	if sweeper == nil {
		return nil, errors.New("sweeper is nil")
	}
	if interval <= 0 {
		interval = defaultSweepInterval
	}
	return &Service{
		name:     "cart_sweeper",
		sweeper:  sweeper,
		interval: interval,
		stopped:  make(chan struct{}),
	}, nil
}

// Name 服务名称
func (s *Service) Name() string {
	if s == nil || s.name == "" {
		return "cart_sweeper"
	}
	return s.name
}

// Start 启动服务，阻塞至 ctx 结束
func (s *Service) Start(ctx context.Context) error {
	if s == nil || s.sweeper == nil {
		return errors.New("worker not initialized")
	}
	defer close(s.stopped)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			s.runOnce()
		}
	}
}

// Stop 等待清理循环退出
func (s *Service) Stop(ctx context.Context) error {
	if s == nil || s.stopped == nil {
		return nil
	}
	select {
	case <-s.stopped:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (s *Service) runOnce() {
	if removed := s.sweeper.Sweep(); removed > 0 {
		logger.Debugw("worker_cart_sessions_swept", "removed", removed)
	}
}
