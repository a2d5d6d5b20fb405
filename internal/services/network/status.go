// Package network tracks whether the Eureka server can be reached.
package network

import (
	"context"
	"log/slog"
	"net/http"
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// StatusChecker remembers the last known reachability of the server.
type StatusChecker struct {
	mu        sync.RWMutex
	isOnline  bool
	lastCheck time.Time

	url     string
	timeout time.Duration
	client  *http.Client
	logger  *slog.Logger
}

// StatusMsg reports the outcome of a check.
type StatusMsg struct {
	Online bool
}

// pollMsg asks for the next scheduled check.
type pollMsg struct {
	checker *StatusChecker
}

// NewStatusChecker creates a checker for the server at url.
func NewStatusChecker(url string, timeout time.Duration, logger *slog.Logger) *StatusChecker {
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &StatusChecker{
		isOnline: true, // Optimistically assume online
		url:      url,
		timeout:  timeout,
		logger:   logger,
		client: &http.Client{
			Timeout: timeout,
			Transport: &http.Transport{
				DisableKeepAlives: true,
			},
			// A redirect to the login page still means the server answered.
			CheckRedirect: func(*http.Request, []*http.Request) error {
				return http.ErrUseLastResponse
			},
		},
	}
}

// Check sends a HEAD request to the server and records whether it answered
// with a 2xx or 3xx status.
func (s *StatusChecker) Check(ctx context.Context) bool {
	req, err := http.NewRequestWithContext(ctx, http.MethodHead, s.url, nil)
	if err != nil {
		s.logger.Debug("building status request", "url", s.url, "error", err)
		s.setOnline(false)
		return false
	}

	resp, err := s.client.Do(req)
	if err != nil {
		s.logger.Debug("server unreachable", "url", s.url, "error", err)
		s.setOnline(false)
		return false
	}
	defer resp.Body.Close()

	online := resp.StatusCode >= 200 && resp.StatusCode < 400

	s.setOnline(online)
	return online
}

// IsOnline returns the cached status.
func (s *StatusChecker) IsOnline() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.isOnline
}

// LastCheck returns the time of the last check.
func (s *StatusChecker) LastCheck() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lastCheck
}

func (s *StatusChecker) setOnline(online bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.isOnline = online
	s.lastCheck = time.Now()
}

// CheckCmd performs a one-time check.
func (s *StatusChecker) CheckCmd() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
		defer cancel()

		return StatusMsg{Online: s.Check(ctx)}
	}
}

// PollCmd waits interval and then asks for a check. Feed the resulting
// message to Update to keep polling.
func (s *StatusChecker) PollCmd(interval time.Duration) tea.Cmd {
	return tea.Tick(interval, func(time.Time) tea.Msg {
		return pollMsg{checker: s}
	})
}

// Update turns the checker's poll message into a check. Other messages
// yield nil.
func (s *StatusChecker) Update(msg tea.Msg) tea.Cmd {
	if p, ok := msg.(pollMsg); ok && p.checker == s {
		return s.CheckCmd()
	}
	return nil
}
