package queue

import "context"

// memoryBuffer bounds how many jobs can sit unprocessed before Push
// blocks. Notification and campaign jobs are small, so a deep buffer is
// cheap.
const memoryBuffer = 1024

// MemoryDriver is the channel-backed driver used when redis is not
// available (development, tests). Jobs do not survive a restart.
type MemoryDriver struct {
	ch chan []byte
}

func NewMemoryDriver() *MemoryDriver {
	return &MemoryDriver{ch: make(chan []byte, memoryBuffer)}
}

func (d *MemoryDriver) Push(payload []byte) error {
	d.ch <- payload
	return nil
}

func (d *MemoryDriver) Pop(ctx context.Context) ([]byte, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case payload := <-d.ch:
		return payload, nil
	}
}
