package service

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"pulsecheck/internal/model"
)

var errBackend = errors.New("backend down")

type fakeItemRepo struct {
	mu      sync.Mutex
	items   map[string]model.Item
	getErr  error
	reads   int
	upserts int
}

func newFakeItemRepo(items ...model.Item) *fakeItemRepo {
	r := &fakeItemRepo{items: make(map[string]model.Item)}
	for _, it := range items {
		r.items[it.ItemID] = it
	}
	return r
}

func (r *fakeItemRepo) Upsert(_ context.Context, item *model.Item) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.items[item.ItemID] = *item
	r.upserts++
	return nil
}

func (r *fakeItemRepo) UpsertMany(_ context.Context, items []model.Item) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, it := range items {
		r.items[it.ItemID] = it
	}
	r.upserts += len(items)
	return len(items), nil
}

func (r *fakeItemRepo) GetByID(_ context.Context, itemID string) (*model.Item, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.getErr != nil {
		return nil, r.getErr
	}
	it, ok := r.items[itemID]
	if !ok {
		return nil, nil
	}
	return &it, nil
}

func (r *fakeItemRepo) Delete(_ context.Context, itemID string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.items[itemID]; !ok {
		return false, nil
	}
	delete(r.items, itemID)
	return true, nil
}

func (r *fakeItemRepo) filter(keep func(model.Item) bool) ([]model.Item, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.reads++
	if r.getErr != nil {
		return nil, r.getErr
	}
	out := []model.Item{}
	for _, it := range r.items {
		if keep(it) {
			out = append(out, it)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ItemID < out[j].ItemID })
	return out, nil
}

func (r *fakeItemRepo) GetByConstruct(_ context.Context, construct model.Construct) ([]model.Item, error) {
	return r.filter(func(it model.Item) bool { return it.Construct == construct })
}

func (r *fakeItemRepo) GetAll(_ context.Context) ([]model.Item, error) {
	return r.filter(func(model.Item) bool { return true })
}

func (r *fakeItemRepo) GetActive(_ context.Context) ([]model.Item, error) {
	return r.filter(func(it model.Item) bool { return it.Active })
}

type fakeCatalogCache struct {
	items       []model.Item
	getErr      error
	sets        int
	invalidated int
}

func (c *fakeCatalogCache) Get(context.Context) ([]model.Item, error) {
	if c.getErr != nil {
		return nil, c.getErr
	}
	return c.items, nil
}

func (c *fakeCatalogCache) Set(_ context.Context, items []model.Item) error {
	c.items = items
	c.sets++
	return nil
}

func (c *fakeCatalogCache) Invalidate(context.Context) error {
	c.items = nil
	c.invalidated++
	return nil
}

type fakeRecentCache struct {
	touched map[string][]model.Construct
	recent  map[string][]model.Construct
	err     error
}

func newFakeRecentCache() *fakeRecentCache {
	return &fakeRecentCache{
		touched: make(map[string][]model.Construct),
		recent:  make(map[string][]model.Construct),
	}
}

func (c *fakeRecentCache) Touch(_ context.Context, userID string, constructs []model.Construct, _ time.Time) error {
	if c.err != nil {
		return c.err
	}
	c.touched[userID] = append(c.touched[userID], constructs...)
	return nil
}

func (c *fakeRecentCache) Recent(_ context.Context, userID string, _ time.Time) ([]model.Construct, error) {
	if c.err != nil {
		return nil, c.err
	}
	return c.recent[userID], nil
}

func (c *fakeRecentCache) Clear(_ context.Context, userID string) error {
	delete(c.recent, userID)
	return nil
}

type fakeBroadcaster struct {
	msgs []string
}

func (b *fakeBroadcaster) BroadcastToMonitors(msgType string, _ interface{}) {
	b.msgs = append(b.msgs, msgType)
}

func testItem(id string, c model.Construct, intent model.Intent, tone model.Tone, ts model.TemporalSensitivity) model.Item {
	return model.Item{
		ItemID:              id,
		Construct:           c,
		ResponseType:        model.ResponseRating,
		Intent:              intent,
		Tone:                tone,
		TemporalSensitivity: ts,
		Prompt:              "prompt " + id,
		ScaleMin:            1,
		ScaleMax:            5,
		Version:             1,
		Active:              true,
	}
}
