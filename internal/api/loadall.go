package api

import (
	"context"
	"sync"
)

// Snapshot is one consistent fetch of all four collections.
type Snapshot struct {
	Tropes     []Trope
	Categories []Category
	Works      []Work
	Examples   []Example
}

// LoadAll fetches tropes, categories, works and examples concurrently.
// The load is all-or-nothing: any single failure cancels the rest and
// returns one error, so a caller never applies a partial snapshot.
func (c *Client) LoadAll(ctx context.Context, sort, order, filterCategory string) (*Snapshot, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	var (
		snap     Snapshot
		mu       sync.Mutex
		firstErr error
		wg       sync.WaitGroup
	)

	fail := func(err error) {
		mu.Lock()
		if firstErr == nil {
			firstErr = err
			cancel()
		}
		mu.Unlock()
	}

	wg.Add(4)
	go func() {
		defer wg.Done()
		tropes, err := c.ListTropes(ctx, sort, order, filterCategory)
		if err != nil {
			fail(err)
			return
		}
		snap.Tropes = tropes
	}()
	go func() {
		defer wg.Done()
		categories, err := c.ListCategories(ctx)
		if err != nil {
			fail(err)
			return
		}
		snap.Categories = categories
	}()
	go func() {
		defer wg.Done()
		works, err := c.ListWorks(ctx)
		if err != nil {
			fail(err)
			return
		}
		snap.Works = works
	}()
	go func() {
		defer wg.Done()
		examples, err := c.ListExamples(ctx)
		if err != nil {
			fail(err)
			return
		}
		snap.Examples = examples
	}()
	wg.Wait()

	if firstErr != nil {
		return nil, firstErr
	}
	return &snap, nil
}
