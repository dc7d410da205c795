// Package workertest 測試用的 worker.Pool 替身
package workertest

import "shop-admin/internal/worker"

// Inline 在呼叫端 goroutine 直接執行任務，panic 會被吞掉
type Inline struct{}

var _ worker.Pool = Inline{}

func (Inline) Submit(t worker.Task) bool {
	if t != nil {
		func() {
			defer func() { _ = recover() }()
			t()
		}()
	}
	return true
}

func (Inline) Stop() {}
