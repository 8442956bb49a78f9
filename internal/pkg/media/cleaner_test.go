package media

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

type fakeDeleter struct {
	mu      sync.Mutex
	deleted []string
	err     error
}

func (f *fakeDeleter) DeleteImage(_ context.Context, url string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.deleted = append(f.deleted, url)
	return f.err
}

func (f *fakeDeleter) urls() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.deleted...)
}

func TestCleanerDeletesEnqueuedURLs(t *testing.T) {
	deleter := &fakeDeleter{}
	cleaner := NewCleaner(deleter, 8)

	cleaner.Enqueue("https://media.example.com/logos/a.png", "https://media.example.com/banners/b.png")
	cleaner.Close()

	assert.ElementsMatch(t, []string{
		"https://media.example.com/logos/a.png",
		"https://media.example.com/banners/b.png",
	}, deleter.urls())
}

func TestCleanerSkipsEmptyURLs(t *testing.T) {
	deleter := &fakeDeleter{}
	cleaner := NewCleaner(deleter, 8)

	cleaner.Enqueue("", "https://media.example.com/logos/a.png", "")
	cleaner.Close()

	assert.Equal(t, []string{"https://media.example.com/logos/a.png"}, deleter.urls())
}

func TestCleanerSwallowsDeleteErrors(t *testing.T) {
	deleter := &fakeDeleter{err: errors.New("host down")}
	cleaner := NewCleaner(deleter, 8)

	cleaner.Enqueue("https://media.example.com/logos/a.png")
	cleaner.Close()

	assert.Len(t, deleter.urls(), 1)
}

func TestCleanerEnqueueAfterCloseIsNoop(t *testing.T) {
	deleter := &fakeDeleter{}
	cleaner := NewCleaner(deleter, 8)
	cleaner.Close()

	cleaner.Enqueue("https://media.example.com/logos/a.png")

	assert.Empty(t, deleter.urls())
}
