package batch

import (
	"time"

	"github.com/robfig/cron/v3"
	"github.com/stocknote/stocknote-backend/internal/repository"
	"github.com/stocknote/stocknote-backend/pkg/logger"
)

// Market data jobs run on Korea Exchange hours
const (
	// every 10 minutes during the trading day
	scheduleScrape = "*/10 9-16 * * 1-5"
	// once after the close
	scheduleDaily = "0 17 * * 1-5"
	// vendor token check, hourly
	scheduleToken = "0 * * * *"
	// refresh session cleanup, nightly
	scheduleCleanup = "30 3 * * *"
)

// Scheduler owns the cron runner and the batch jobs
type Scheduler struct {
	cron     *cron.Cron
	naver    *NaverScraper
	kiwoom   *KiwoomClient
	userRepo repository.UserRepository
}

// NewScheduler creates a new Scheduler. Jobs run in KST regardless of the
// host timezone; trading-hour schedules are meaningless elsewhere.
func NewScheduler(marketRepo repository.MarketRepository, userRepo repository.UserRepository) *Scheduler {
	loc, err := time.LoadLocation("Asia/Seoul")
	if err != nil {
		loc = time.Local
	}

	return &Scheduler{
		cron:     cron.New(cron.WithLocation(loc)),
		naver:    NewNaverScraper(marketRepo),
		kiwoom:   NewKiwoomClient(marketRepo),
		userRepo: userRepo,
	}
}

// Start registers the jobs and kicks off the cron loop
func (s *Scheduler) Start() error {
	if _, err := s.cron.AddFunc(scheduleScrape, s.runScrapes); err != nil {
		return err
	}
	if _, err := s.cron.AddFunc(scheduleDaily, s.kiwoom.RunIndexSync); err != nil {
		return err
	}
	if _, err := s.cron.AddFunc(scheduleToken, s.kiwoom.RefreshToken); err != nil {
		return err
	}
	if _, err := s.cron.AddFunc(scheduleCleanup, s.cleanupSessions); err != nil {
		return err
	}

	s.cron.Start()
	logger.GetLogger().Info().Msg("batch scheduler started")
	return nil
}

// Stop waits for running jobs to finish
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	logger.GetLogger().Info().Msg("batch scheduler stopped")
}

// RunOnce executes every job immediately. Used by the batch binary for a
// manual refresh.
func (s *Scheduler) RunOnce() {
	s.runScrapes()
	s.kiwoom.RunIndexSync()
}

func (s *Scheduler) runScrapes() {
	s.naver.RunSectors()
	s.naver.RunThemes()
}

func (s *Scheduler) cleanupSessions() {
	if err := s.userRepo.DeleteExpiredRefreshTokens(); err != nil {
		logger.GetLogger().Error().Err(err).Msg("refresh session cleanup failed")
		return
	}
	logger.GetLogger().Info().Msg("expired refresh sessions removed")
}
