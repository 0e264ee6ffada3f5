package search

import (
	"time"

	"github.com/schollz/progressbar/v3"

	"github.com/solhawk/sol-vanity-miner/internal/logger"
	"github.com/solhawk/sol-vanity-miner/pkg/types"
)

// Aggregator folds worker heartbeats into a cumulative attempt count and
// renders it. It runs for the lifetime of a search and stops when the
// coordinator closes the progress channel; it has no termination condition
// of its own.
type Aggregator struct {
	counts   map[int]int64
	total    int64
	bar      *progressbar.ProgressBar // nil when rendering through the logger
	log      *logger.Logger
	interval time.Duration
	lastLog  time.Time
	start    time.Time
	done     chan struct{}
}

// NewAggregator creates an aggregator for the given worker ids 1..workers,
// every counter starting at zero. With interactive set it renders a live
// progress bar; otherwise it writes a log line at most every interval.
func NewAggregator(workers int, log *logger.Logger, interactive bool, interval time.Duration) *Aggregator {
	a := &Aggregator{
		counts:   make(map[int]int64, workers),
		log:      log,
		interval: interval,
		done:     make(chan struct{}),
	}
	for id := 1; id <= workers; id++ {
		a.counts[id] = 0
	}

	if interactive {
		a.bar = progressbar.NewOptions64(-1,
			progressbar.OptionSetDescription("Searching"),
			progressbar.OptionSetWriter(log.Writer()),
			progressbar.OptionSetWidth(15),
			progressbar.OptionShowCount(),
			progressbar.OptionShowIts(),
			progressbar.OptionSetItsString("wallets"),
			progressbar.OptionSetPredictTime(false),
			progressbar.OptionSetElapsedTime(true),
			progressbar.OptionClearOnFinish(),
		)
	}
	return a
}

// Run consumes heartbeats until the progress channel is closed. Each report
// overwrites that worker's counter; the rendered value is the sum over all
// workers. Run never blocks a producer: workers send best-effort into a
// buffered channel, only the aggregator itself waits here.
func (a *Aggregator) Run(progress <-chan types.ProgressReport) {
	defer close(a.done)
	a.start = time.Now()
	a.lastLog = a.start

	for report := range progress {
		a.counts[report.WorkerID] = report.Attempts
		a.total = sum(a.counts)
		a.render()
	}

	if a.bar != nil {
		_ = a.bar.Finish()
	}
}

// render shows the current cumulative count, either on the live bar or as
// a rate-limited log line.
func (a *Aggregator) render() {
	if a.bar != nil {
		_ = a.bar.Set64(a.total)
		return
	}
	if time.Since(a.lastLog) < a.interval {
		return
	}
	a.lastLog = time.Now()
	elapsed := time.Since(a.start)
	rate := 0.0
	if elapsed.Seconds() > 0 {
		rate = float64(a.total) / elapsed.Seconds()
	}
	a.log.Printf("Progress: %d wallets searched, %.2f wallets/sec", a.total, rate)
}

// Done is closed once Run has drained the progress channel and returned.
func (a *Aggregator) Done() <-chan struct{} {
	return a.done
}

// Total returns the cumulative attempt count. Only safe to call after Done
// is closed; reports in flight when the search ended are included, attempts
// a worker never got to report are not.
func (a *Aggregator) Total() int64 {
	return a.total
}

func sum(counts map[int]int64) int64 {
	var total int64
	for _, n := range counts {
		total += n
	}
	return total
}
