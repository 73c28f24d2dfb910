package health

import "time"

const serviceName = "3AI-MCP Backend"

// Status is the health payload.
type Status struct {
	Status    string `json:"status"`
	Service   string `json:"service"`
	Timestamp string `json:"timestamp"`
}

// Service encapsulates health-related checks.
type Service struct {
	now func() time.Time
}

// NewService constructs a new health service. A nil clock uses time.Now.
func NewService(now func() time.Time) *Service {
	if now == nil {
		now = time.Now
	}
	return &Service{now: now}
}

// Status reports the service as healthy with the current time.
func (s *Service) Status() Status {
	return Status{
		Status:    "healthy",
		Service:   serviceName,
		Timestamp: s.now().Format(time.RFC3339Nano),
	}
}
