package worker

import (
	"sync"

	"go.uber.org/zap"
)

// Task 一個背景工作
type Task func()

// Pool 以固定數量的 goroutine 執行任務
type Pool interface {
	// Submit 排入 t；pool 停止後回傳 false
	Submit(t Task) bool
	Stop()
}

// NewPool 啟動 n 個 worker（n<=0 視為 1），共用 n*queueFactor 格的佇列
func NewPool(n int) Pool {
	if n <= 0 {
		n = 1
	}
	p := &pool{jobs: make(chan Task, n*queueFactor)}
	p.wg.Add(n)
	for i := 0; i < n; i++ {
		go p.loop()
	}
	return p
}

const queueFactor = 16

type pool struct {
	mu      sync.RWMutex
	stopped bool
	jobs    chan Task
	wg      sync.WaitGroup
}

func (p *pool) loop() {
	defer p.wg.Done()
	for job := range p.jobs {
		run(job)
	}
}

// run 執行單一任務，panic 只記錄不讓 worker 結束
func run(job Task) {
	if job == nil {
		return
	}
	defer func() {
		if r := recover(); r != nil {
			zap.L().Error("worker task panic", zap.Any("panic", r))
		}
	}()
	job()
}

func (p *pool) Submit(t Task) bool {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if p.stopped {
		return false
	}
	p.jobs <- t
	return true
}

// Stop 執行完佇列中的任務並等 worker 結束；重複呼叫無妨
func (p *pool) Stop() {
	p.mu.Lock()
	if p.stopped {
		p.mu.Unlock()
		return
	}
	p.stopped = true
	close(p.jobs)
	p.mu.Unlock()
	p.wg.Wait()
}
