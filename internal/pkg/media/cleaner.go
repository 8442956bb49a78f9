package media

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

// Cleaner deletes replaced or orphaned images in the background. Deletions
// are enqueued after the owning database transaction commits; failures are
// logged and never retried, so a dead media host cannot block profile writes.
type Cleaner struct {
	deleter Deleter
	jobs    chan string
	wg      sync.WaitGroup

	mu     sync.Mutex
	closed bool
}

func NewCleaner(deleter Deleter, buffer int) *Cleaner {
	if buffer <= 0 {
		buffer = 64
	}
	c := &Cleaner{
		deleter: deleter,
		jobs:    make(chan string, buffer),
	}
	c.wg.Add(1)
	go c.run()
	return c
}

// Enqueue schedules the given image URLs for deletion. Empty URLs are
// ignored. When the queue is full the URL is dropped with a warning rather
// than blocking the caller.
func (c *Cleaner) Enqueue(urls ...string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	for _, url := range urls {
		if url == "" {
			continue
		}
		select {
		case c.jobs <- url:
		default:
			slog.Warn("image cleanup queue full, dropping deletion", "url", url)
		}
	}
}

func (c *Cleaner) run() {
	defer c.wg.Done()
	for url := range c.jobs {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		if err := c.deleter.DeleteImage(ctx, url); err != nil {
			slog.Warn("failed to delete image", "url", url, "error", err)
		}
		cancel()
	}
}

// Close drains the queue and stops the worker.
func (c *Cleaner) Close() {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	c.closed = true
	close(c.jobs)
	c.mu.Unlock()
	c.wg.Wait()
}
