package utils

import "github.com/shirou/gopsutil/cpu"

// CheckCPUUsage reports whether the host is under the worker's intake
// limit, along with the sampled overall CPU percentage. A failed sample
// counts as busy so the worker errs on the side of not claiming work.
func CheckCPUUsage(maxCPUUsage float64) (bool, float64) {
	percents, err := cpu.Percent(0, false)
	if err != nil || len(percents) == 0 {
		return false, 0
	}
	return percents[0] <= maxCPUUsage, percents[0]
}
