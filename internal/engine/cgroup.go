package engine

import (
	"github.com/Zixzorash/BURN-SUB/internal/config"
	"github.com/Zixzorash/BURN-SUB/pkg/logger"
	"github.com/containerd/cgroups"
	"github.com/google/uuid"
	specs "github.com/opencontainers/runtime-spec/specs-go"
)

const cpuPeriod = uint64(100000)

// cpuLimiter caps the engine process through a per-job cgroup. Limiting is
// best effort: a host without cgroup access still runs the job, just
// unbounded.
type cpuLimiter struct {
	cfg    config.ContainerConfig
	logger logger.Logger
}

func newCPULimiter(cfg config.ContainerConfig, log logger.Logger) *cpuLimiter {
	return &cpuLimiter{cfg: cfg, logger: log}
}

// Apply places pid into a fresh cgroup and returns a release func that
// removes the group once the process is gone.
func (l *cpuLimiter) Apply(pid int) func() {
	if l.cfg.CPULimit <= 0 && l.cfg.MemoryMB <= 0 {
		return func() {}
	}

	resources := &specs.LinuxResources{}
	if l.cfg.CPULimit > 0 {
		period := cpuPeriod
		quota := int64(l.cfg.CPULimit * float64(cpuPeriod))
		resources.CPU = &specs.LinuxCPU{
			Quota:  &quota,
			Period: &period,
		}
	}
	if l.cfg.MemoryMB > 0 {
		limit := int64(l.cfg.MemoryMB) << 20
		resources.Memory = &specs.LinuxMemory{Limit: &limit}
	}

	control, err := cgroups.New(cgroups.V1, cgroups.StaticPath("/burnsub/"+uuid.New().String()), resources)
	if err != nil {
		l.logger.Warnf("cgroup create failed, running unbounded: %v", err)
		return func() {}
	}

	if err := control.Add(cgroups.Process{Pid: pid}); err != nil {
		l.logger.Warnf("cgroup attach failed for pid %d: %v", pid, err)
	}

	return func() {
		if err := control.Delete(); err != nil {
			l.logger.Debugf("cgroup delete: %v", err)
		}
	}
}
