package monitoring

import (
	"fmt"
	"os"
	"time"

	"github.com/isdelr/tagpulse-be/internal/models"
	"github.com/shirou/gopsutil/v3/process"
)

// EventCounter is the part of the event store the health check needs.
type EventCounter interface {
	Count() int
}

// ClientCounter reports connected live-feed clients.
type ClientCounter interface {
	ClientCount() int
}

// ProcessSample is a point-in-time reading of the server process.
type ProcessSample struct {
	RSSBytes   uint64
	CPUPercent float64
}

// Sampler reads resource usage of the current process.
type Sampler func() (ProcessSample, error)

// HealthChecker builds health reports for the running server.
type HealthChecker struct {
	events  EventCounter
	clients ClientCounter
	sample  Sampler
	started time.Time
	now     func() time.Time
}

// NewHealthChecker creates a HealthChecker. clients may be nil.
func NewHealthChecker(events EventCounter, clients ClientCounter) *HealthChecker {
	return &HealthChecker{
		events:  events,
		clients: clients,
		sample:  SampleCurrentProcess,
		started: time.Now(),
		now:     time.Now,
	}
}

// Check returns the current health of the process.
func (hc *HealthChecker) Check() (models.Health, error) {
	sample, err := hc.sample()
	if err != nil {
		return models.Health{}, fmt.Errorf("failed to sample process: %w", err)
	}

	health := models.Health{
		Status:         "ok",
		UptimeSeconds:  hc.now().Sub(hc.started).Seconds(),
		TotalEvents:    hc.events.Count(),
		MemoryRSSBytes: sample.RSSBytes,
		CPUPercent:     sample.CPUPercent,
	}
	if hc.clients != nil {
		health.ConnectedClients = hc.clients.ClientCount()
	}
	return health, nil
}

// SampleCurrentProcess reads memory and CPU usage of this process via gopsutil.
func SampleCurrentProcess() (ProcessSample, error) {
	p, err := process.NewProcess(int32(os.Getpid()))
	if err != nil {
		return ProcessSample{}, err
	}
	mem, err := p.MemoryInfo()
	if err != nil {
		return ProcessSample{}, err
	}
	cpu, err := p.CPUPercent()
	if err != nil {
		return ProcessSample{}, err
	}
	return ProcessSample{RSSBytes: mem.RSS, CPUPercent: cpu}, nil
}
