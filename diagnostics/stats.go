package diagnostics

import "github.com/go-echarts/statsview"

// StartStatsServer launches the statsview live runtime-stats dashboard
// (goroutine count, heap size, GC pauses) in the background. It never
// returns; callers that want it running for the process's lifetime should
// invoke it in its own goroutine.
func StartStatsServer() {
	statsview.New().Start()
}
