package database

import (
	"errors"
	"sync"
	"sync/atomic"
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func sqliteOpener(calls *int32) Opener {
	return func() (*gorm.DB, error) {
		atomic.AddInt32(calls, 1)
		return gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
			Logger: logger.Default.LogMode(logger.Silent),
		})
	}
}

func TestProviderDialsOnce(t *testing.T) {
	var calls int32
	p := NewProvider(sqliteOpener(&calls))

	first, err := p.Get()
	if err != nil {
		t.Fatalf("Get error = %v", err)
	}
	second, err := p.Get()
	if err != nil {
		t.Fatalf("second Get error = %v", err)
	}
	if first != second {
		t.Fatalf("Get returned distinct handles")
	}
	if n := atomic.LoadInt32(&calls); n != 1 {
		t.Fatalf("opener called %d times, want 1", n)
	}
}

func TestProviderConcurrentFirstUse(t *testing.T) {
	var calls int32
	p := NewProvider(sqliteOpener(&calls))

	const workers = 16
	handles := make([]*gorm.DB, workers)

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			db, err := p.Get()
			if err != nil {
				t.Errorf("worker %d: Get error = %v", i, err)
				return
			}
			handles[i] = db
		}(i)
	}
	wg.Wait()

	if n := atomic.LoadInt32(&calls); n != 1 {
		t.Fatalf("opener called %d times under concurrent first use, want 1", n)
	}
	for i := 1; i < workers; i++ {
		if handles[i] != handles[0] {
			t.Fatalf("worker %d observed a different connection", i)
		}
	}
}

func TestProviderRetainsDialError(t *testing.T) {
	var calls int32
	dialErr := errors.New("boom")
	p := NewProvider(func() (*gorm.DB, error) {
		atomic.AddInt32(&calls, 1)
		return nil, dialErr
	})

	if _, err := p.Get(); !errors.Is(err, dialErr) {
		t.Fatalf("Get error = %v, want wrapped dial error", err)
	}
	if _, err := p.Get(); !errors.Is(err, dialErr) {
		t.Fatalf("second Get error = %v, want retained dial error", err)
	}
	if n := atomic.LoadInt32(&calls); n != 1 {
		t.Fatalf("opener called %d times, want 1 (no redial)", n)
	}
}
