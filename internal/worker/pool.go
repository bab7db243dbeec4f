package worker

import (
	"sync"

	"github.com/deepakMaj/Task-Manager-API/internal/metrics"
)

type job func()

// Pool runs fire-and-forget jobs (notification emails) on a fixed number
// of goroutines so a slow mail provider never blocks a request.
type Pool struct {
	wg   sync.WaitGroup
	jobs chan job
}

func NewPool(n int) *Pool {
	p := &Pool{jobs: make(chan job, 1024)}
	for i := 0; i < n; i++ {
		p.wg.Add(1)
		go func() {
			defer p.wg.Done()
			for j := range p.jobs {
				j()
				metrics.MailQueueDepth.Dec()
			}
		}()
	}
	return p
}

func (p *Pool) Submit(f func()) {
	metrics.MailQueueDepth.Inc()
	p.jobs <- f
}

// Stop closes the queue and waits for in-flight jobs to finish.
func (p *Pool) Stop() { close(p.jobs); p.wg.Wait() }
