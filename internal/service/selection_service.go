package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"pulsecheck/internal/cache"
	"pulsecheck/internal/config"
	"pulsecheck/internal/epistemic"
	"pulsecheck/internal/measure"
	"pulsecheck/internal/model"
	"pulsecheck/internal/repository"
	"pulsecheck/internal/selector"
)

// Selection modes
const (
	ModeAdaptive = "adaptive"
	ModeStatic   = "static"
)

// ConstructSummary is raw estimator output for one construct, for callers
// that send period history instead of computed volatility/trend.
type ConstructSummary struct {
	Construct model.Construct `json:"construct"`
	measure.Summary
}

// SessionRequest is the body of a session selection call
type SessionRequest struct {
	// TargetCount nil means the configured default; zero or less selects nothing.
	TargetCount      *int                       `json:"targetCount,omitempty"`
	Contexts         []model.MeasurementContext `json:"contexts"`
	Summaries        []ConstructSummary         `json:"summaries,omitempty"`
	RecentConstructs []model.Construct          `json:"recentConstructs,omitempty"`
	Seed             *int64                     `json:"seed,omitempty"`
}

// SessionResponse is the outcome of one session selection
type SessionResponse struct {
	SelectionID string                     `json:"selectionId"`
	UserID      string                     `json:"userId"`
	Mode        string                     `json:"mode"`
	Seed        int64                      `json:"seed"`
	Items       []model.Item               `json:"items"`
	Selected    []model.SelectedItem       `json:"selected"`
	Contexts    []model.MeasurementContext `json:"contexts"`
	Candidates  []model.Construct          `json:"candidates"`
	Blocked     []model.Construct          `json:"blocked,omitempty"`
	Audit       model.MixAudit             `json:"audit"`
	CreatedAt   time.Time                  `json:"createdAt"`
}

// SelectionService assembles check-in sessions
type SelectionService struct {
	itemRepo     repository.ItemRepo
	catalogCache cache.CatalogCache
	recentCache  cache.RecentCache
	selector     *selector.Selector
	cfg          config.SelectionConfig
	logger       *zap.Logger
	broadcaster  Broadcaster
	now          func() time.Time
}

// NewSelectionService creates a new selection service
func NewSelectionService(
	itemRepo repository.ItemRepo,
	catalogCache cache.CatalogCache,
	recentCache cache.RecentCache,
	sel *selector.Selector,
	cfg config.SelectionConfig,
	logger *zap.Logger,
) *SelectionService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SelectionService{
		itemRepo:     itemRepo,
		catalogCache: catalogCache,
		recentCache:  recentCache,
		selector:     sel,
		cfg:          cfg,
		logger:       logger,
		now:          time.Now,
	}
}

// SetBroadcaster sets the broadcaster for monitor events
func (s *SelectionService) SetBroadcaster(b Broadcaster) {
	s.broadcaster = b
}

// SetClock overrides the service clock
func (s *SelectionService) SetClock(now func() time.Time) {
	s.now = now
}

// Select builds a session for userID. Infrastructure trouble while reading
// the recency set degrades to request-supplied recency; only a catalog that
// cannot be loaded at all is an error.
func (s *SelectionService) Select(ctx context.Context, userID string, req SessionRequest) (*SessionResponse, error) {
	if userID == "" {
		return nil, fmt.Errorf("%w: missing user id", ErrInvalidRequest)
	}
	target := s.cfg.DefaultTarget
	if req.TargetCount != nil {
		target = *req.TargetCount
	}

	catalog, err := s.activeCatalog(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load catalog: %w", err)
	}

	now := s.now()
	contexts := s.buildContexts(req)
	recent := s.recentConstructs(ctx, userID, now, req.RecentConstructs)

	resp := &SessionResponse{
		SelectionID: uuid.New().String(),
		UserID:      userID,
		Contexts:    contexts,
		CreatedAt:   now,
	}

	var result model.SelectionResult
	if s.cfg.Enabled {
		seed := selector.NewSeed()
		if req.Seed != nil {
			seed = *req.Seed
		}
		resp.Mode = ModeAdaptive
		resp.Seed = seed
		result = s.selector.Select(model.SelectionRequest{
			TargetCount:      target,
			Contexts:         contexts,
			ItemBank:         catalog,
			RecentConstructs: recent,
		}, selector.NewSeededSource(seed))
	} else {
		resp.Mode = ModeStatic
		result = s.static(catalog, target)
	}

	resp.Selected = result.Selected
	resp.Items = result.Items()
	resp.Candidates = result.Candidates
	resp.Blocked = result.Blocked
	resp.Audit = result.Audit

	s.remember(ctx, userID, resp.Items, now)
	s.report(resp)
	return resp, nil
}

// buildContexts classifies posted contexts and summaries, contexts first,
// keeping the first entry per construct.
func (s *SelectionService) buildContexts(req SessionRequest) []model.MeasurementContext {
	seen := make(map[model.Construct]bool)
	out := make([]model.MeasurementContext, 0, len(req.Contexts)+len(req.Summaries))
	for _, c := range req.Contexts {
		if seen[c.Construct] {
			continue
		}
		seen[c.Construct] = true
		if !c.EpistemicState.Valid() {
			c = epistemic.ClassifyContext(c)
		}
		out = append(out, c)
	}
	for _, sum := range req.Summaries {
		if seen[sum.Construct] {
			continue
		}
		seen[sum.Construct] = true
		out = append(out, measure.BuildContext(sum.Construct, sum.Summary))
	}
	return out
}

func (s *SelectionService) activeCatalog(ctx context.Context) ([]model.Item, error) {
	if s.catalogCache != nil {
		items, err := s.catalogCache.Get(ctx)
		if err != nil {
			s.logger.Warn("catalog cache read failed", zap.Error(err))
		} else if items != nil {
			return items, nil
		}
	}

	items, err := s.itemRepo.GetActive(ctx)
	if err != nil {
		return nil, err
	}
	if s.catalogCache != nil {
		if err := s.catalogCache.Set(ctx, items); err != nil {
			s.logger.Warn("catalog cache write failed", zap.Error(err))
		}
	}
	return items, nil
}

func (s *SelectionService) recentConstructs(ctx context.Context, userID string, now time.Time, supplied []model.Construct) []model.Construct {
	seen := make(map[model.Construct]bool)
	var out []model.Construct
	add := func(cs []model.Construct) {
		for _, c := range cs {
			if !seen[c] {
				seen[c] = true
				out = append(out, c)
			}
		}
	}
	add(supplied)

	if s.recentCache != nil {
		cached, err := s.recentCache.Recent(ctx, userID, now)
		if err != nil {
			s.logger.Warn("recent constructs unavailable", zap.String("userId", userID), zap.Error(err))
		}
		add(cached)
	}
	return out
}

// static is the non-adaptive path: the first explore/diagnostic items in
// catalog order.
func (s *SelectionService) static(catalog []model.Item, target int) model.SelectionResult {
	var res model.SelectionResult
	seen := make(map[string]bool)
	for _, it := range catalog {
		if len(res.Selected) >= target {
			break
		}
		if it.Intent != model.IntentExplore || it.Tone != model.ToneDiagnostic || seen[it.ItemID] {
			continue
		}
		seen[it.ItemID] = true
		res.Selected = append(res.Selected, model.SelectedItem{Item: it, Source: model.PickStatic})
	}
	cfg := s.selector.Config()
	res.Audit = selector.AuditMix(res.Items(), cfg.BehavioralCeiling, cfg.ChallengeCeiling)
	return res
}

func (s *SelectionService) remember(ctx context.Context, userID string, items []model.Item, now time.Time) {
	if s.recentCache == nil || len(items) == 0 {
		return
	}
	seen := make(map[model.Construct]bool)
	var constructs []model.Construct
	for _, it := range items {
		if !seen[it.Construct] {
			seen[it.Construct] = true
			constructs = append(constructs, it.Construct)
		}
	}
	if err := s.recentCache.Touch(ctx, userID, constructs, now); err != nil {
		s.logger.Warn("failed to record recent constructs", zap.String("userId", userID), zap.Error(err))
	}
}

func (s *SelectionService) report(resp *SessionResponse) {
	fields := []zap.Field{
		zap.String("selectionId", resp.SelectionID),
		zap.String("userId", resp.UserID),
		zap.String("mode", resp.Mode),
		zap.Int64("seed", resp.Seed),
		zap.Int("items", len(resp.Items)),
		zap.Int("blocked", len(resp.Blocked)),
		zap.Float64("behavioralFraction", resp.Audit.BehavioralFraction),
		zap.Float64("challengeFraction", resp.Audit.ChallengeFraction),
	}
	s.logger.Info("session selected", fields...)
	if resp.Audit.Exceeded() {
		s.logger.Warn("session mix above advisory ceiling", fields...)
	}

	if s.broadcaster != nil {
		s.broadcaster.BroadcastToMonitors(MsgSelectionAudit, map[string]interface{}{
			"selectionId": resp.SelectionID,
			"userId":      resp.UserID,
			"mode":        resp.Mode,
			"items":       len(resp.Items),
			"audit":       resp.Audit,
			"createdAt":   resp.CreatedAt,
		})
	}
}
