package itinerary

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"
	"google.golang.org/genai"

	appmetrics "github.com/travelmind-ai/travelmind-server/app/observability/metrics"
	"github.com/travelmind-ai/travelmind-server/internal/types"
)

// ContentGenerator is the slice of the AI client the itinerary service needs.
type ContentGenerator interface {
	GenerateContent(ctx context.Context, prompt string) (string, error)
	GenerateWithConfig(ctx context.Context, prompt string, config *genai.GenerateContentConfig) (string, error)
	Model() string
}

// InfluencerFetcher supplies curated recommendations for a destination.
type InfluencerFetcher interface {
	GetRecommendations(ctx context.Context, destination string) ([]types.InfluencerRecommendation, error)
}

// VideoFetcher supplies travel video references for a destination.
type VideoFetcher interface {
	GetTravelContent(ctx context.Context, destination string) ([]types.VideoReference, error)
}

// Service generates, varies and modifies trip itineraries.
type Service interface {
	GenerateItinerary(ctx context.Context, req types.TripRequest) (*types.Itinerary, error)
	GenerateItineraryOptions(ctx context.Context, req types.TripRequest) ([]*types.Itinerary, error)
	ModifyItinerary(ctx context.Context, current *types.Itinerary, request string) (*types.Itinerary, error)
}

// ErrUnparsableItinerary is returned when a model response yields no day
// plans at all.
var ErrUnparsableItinerary = errors.New("unparsable itinerary response")

var _ Service = (*ServiceImpl)(nil)

// budgetTier is one generation variant of the same trip.
type budgetTier struct {
	Multiplier float64
	Type       string
	Style      string
}

var budgetTiers = []budgetTier{
	{Multiplier: 0.8, Type: "Budget-Friendly", Style: "economical"},
	{Multiplier: 1.0, Type: "Standard", Style: "balanced"},
	{Multiplier: 1.3, Type: "Premium", Style: "luxury"},
}

// ServiceImpl orchestrates the model, the enrichment sources and the parser.
type ServiceImpl struct {
	generator    ContentGenerator
	influencers  InfluencerFetcher
	videos       VideoFetcher
	budgetMargin float64
	metrics      *appmetrics.AppMetrics
	logger       *slog.Logger
}

// NewItineraryService creates the itinerary service. influencers and videos
// may be nil, in which case enrichment is skipped entirely.
func NewItineraryService(generator ContentGenerator, influencers InfluencerFetcher, videos VideoFetcher, budgetMargin float64, m *appmetrics.AppMetrics, logger *slog.Logger) *ServiceImpl {
	return &ServiceImpl{
		generator:    generator,
		influencers:  influencers,
		videos:       videos,
		budgetMargin: budgetMargin,
		metrics:      m,
		logger:       logger,
	}
}

// GenerateItinerary produces a single itinerary at the requested budget.
// Model or parse failures degrade to the deterministic template plans, so the
// only hard failure is an invalid request.
func (s *ServiceImpl) GenerateItinerary(ctx context.Context, req types.TripRequest) (*types.Itinerary, error) {
	ctx, span := otel.Tracer("ItineraryService").Start(ctx, "GenerateItinerary", trace.WithAttributes(
		attribute.String("trip.destination", req.Destination),
		attribute.Int("trip.duration_days", req.DurationDays),
	))
	defer span.End()
	l := s.logger.With(slog.String("method", "GenerateItinerary"), slog.String("destination", req.Destination))

	if err := req.Validate(); err != nil {
		return nil, err
	}

	enrich := s.gatherEnrichment(ctx, req.Destination)
	it := s.generateOne(ctx, req, req.Budget, "Standard", "balanced", enrich)

	if s.metrics != nil {
		s.metrics.ItineraryRequestsTotal.Add(ctx, 1, metric.WithAttributes(
			attribute.Bool("ai_powered", it.DataSources.AIPowered),
		))
	}
	l.InfoContext(ctx, "Itinerary generated",
		slog.Int("days", len(it.DailyPlans)),
		slog.Int("total_cost", it.TotalCost),
		slog.Bool("ai_powered", it.DataSources.AIPowered))
	return it, nil
}

// GenerateItineraryOptions generates the three budget tiers concurrently.
// A tier whose generation or parsing fails is dropped; if every tier fails
// the result is three template options instead of an error.
func (s *ServiceImpl) GenerateItineraryOptions(ctx context.Context, req types.TripRequest) ([]*types.Itinerary, error) {
	ctx, span := otel.Tracer("ItineraryService").Start(ctx, "GenerateItineraryOptions", trace.WithAttributes(
		attribute.String("trip.destination", req.Destination),
	))
	defer span.End()
	l := s.logger.With(slog.String("method", "GenerateItineraryOptions"), slog.String("destination", req.Destination))

	if err := req.Validate(); err != nil {
		return nil, err
	}

	enrich := s.gatherEnrichment(ctx, req.Destination)

	results := make([]*types.Itinerary, len(budgetTiers))
	g, gctx := errgroup.WithContext(ctx)
	for i, tier := range budgetTiers {
		g.Go(func() error {
			tierBudget := int(float64(req.Budget) * tier.Multiplier)
			plans, err := s.generateDayPlans(gctx, req, tierBudget, tier.Style, enrich)
			if err != nil {
				l.WarnContext(gctx, "Tier generation failed, dropping option",
					slog.String("tier", tier.Type), slog.Any("error", err))
				return nil
			}
			results[i] = s.assemble(req, tierBudget, tier.Type, plans, enrich, true)
			return nil
		})
	}
	_ = g.Wait()

	var options []*types.Itinerary
	for _, it := range results {
		if it != nil {
			options = append(options, it)
		}
	}
	if len(options) == 0 {
		l.WarnContext(ctx, "All tiers failed, building template options")
		for _, tier := range budgetTiers {
			tierBudget := int(float64(req.Budget) * tier.Multiplier)
			plans := templateDayPlans(req.Destination, req.DurationDays, tierBudget, nil)
			options = append(options, s.assemble(req, tierBudget, tier.Type, plans, enrich, false))
		}
	}

	if s.metrics != nil {
		s.metrics.ItineraryRequestsTotal.Add(ctx, int64(len(options)))
	}
	return options, nil
}

// SelectBestOption picks the option whose total cost sits closest under the
// target budget, or the cheapest one when every option exceeds it.
func SelectBestOption(options []*types.Itinerary, budget int) *types.Itinerary {
	var best *types.Itinerary
	for _, opt := range options {
		if opt == nil || opt.TotalCost > budget {
			continue
		}
		if best == nil || opt.TotalCost > best.TotalCost {
			best = opt
		}
	}
	if best != nil {
		return best
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		if best == nil || opt.TotalCost < best.TotalCost {
			best = opt
		}
	}
	return best
}

// ModifyItinerary applies a natural language change in two model calls: an
// intent analysis pass and a regeneration pass built on its output. On any
// model failure the original itinerary comes back unchanged with the error.
func (s *ServiceImpl) ModifyItinerary(ctx context.Context, current *types.Itinerary, request string) (*types.Itinerary, error) {
	ctx, span := otel.Tracer("ItineraryService").Start(ctx, "ModifyItinerary", trace.WithAttributes(
		attribute.String("trip.destination", current.Destination),
	))
	defer span.End()
	l := s.logger.With(slog.String("method", "ModifyItinerary"), slog.String("destination", current.Destination))

	if strings.TrimSpace(request) == "" {
		return current, fmt.Errorf("modification request must not be empty")
	}

	intentCfg := &genai.GenerateContentConfig{Temperature: genai.Ptr[float32](0.2)}
	intentResp, err := s.timedGenerateWithConfig(ctx, buildIntentPrompt(current, request), intentCfg)
	if err != nil {
		l.ErrorContext(ctx, "Intent analysis failed", slog.Any("error", err))
		return current, fmt.Errorf("intent analysis failed: %w", err)
	}
	intent := parseIntentResponse(intentResp)
	l.DebugContext(ctx, "Modification intent analyzed",
		slog.String("type", intent["modification_type"]),
		slog.String("budget_adjustment", intent["budget_adjustment"]))

	adjustedBudget := current.Budget
	switch adjustment := strings.ToLower(intent["budget_adjustment"]); {
	case strings.Contains(adjustment, "increase"):
		adjustedBudget = int(float64(adjustedBudget) * 1.2)
	case strings.Contains(adjustment, "decrease"):
		adjustedBudget = int(float64(adjustedBudget) * 0.8)
	}

	budgetType := current.BudgetType
	if budgetType == "" {
		budgetType = "Standard"
	}
	switch strings.ToLower(intent["accommodation_preference"]) {
	case "budget":
		budgetType = "Budget-Friendly"
	case "luxury":
		budgetType = "Premium"
	}

	var themes []string
	for _, theme := range strings.Split(intent["new_themes"], ",") {
		if theme = strings.TrimSpace(theme); theme != "" {
			themes = append(themes, theme)
		}
	}

	prompt := buildModificationPrompt(current, intent, request, adjustedBudget, budgetType, themes)
	resp, err := s.timedGenerate(ctx, prompt)
	if err != nil {
		l.ErrorContext(ctx, "Regeneration failed", slog.Any("error", err))
		return current, fmt.Errorf("regeneration failed: %w", err)
	}

	plans := parseItineraryText(resp, current.DurationDays, types.EnrichmentContext{})
	templateBased := false
	if len(plans) == 0 {
		l.WarnContext(ctx, "Regenerated text unparsable, using template plans")
		plans = templateDayPlans(current.Destination, current.DurationDays, adjustedBudget, extractAttractions(resp, current.Destination))
		templateBased = true
	}

	modified := s.assemble(types.TripRequest{
		Destination:  current.Destination,
		DurationDays: current.DurationDays,
	}, adjustedBudget, budgetType, plans, types.EnrichmentContext{}, !templateBased)
	modified.ModificationApplied = request
	l.InfoContext(ctx, "Itinerary modified", slog.Int("budget", adjustedBudget), slog.String("budget_type", budgetType))
	return modified, nil
}

// generateOne is the single-itinerary path: model first, template on failure.
func (s *ServiceImpl) generateOne(ctx context.Context, req types.TripRequest, budget int, budgetType, style string, enrich types.EnrichmentContext) *types.Itinerary {
	plans, err := s.generateDayPlans(ctx, req, budget, style, enrich)
	if err != nil {
		s.logger.WarnContext(ctx, "Model generation failed, using template itinerary",
			slog.String("destination", req.Destination), slog.Any("error", err))
		plans = templateDayPlans(req.Destination, req.DurationDays, budget, nil)
		return s.assemble(req, budget, budgetType, plans, enrich, false)
	}
	return s.assemble(req, budget, budgetType, plans, enrich, true)
}

// generateDayPlans runs one model call and parses it, padding short responses
// with template days so the day count always matches the request.
func (s *ServiceImpl) generateDayPlans(ctx context.Context, req types.TripRequest, budget int, style string, enrich types.EnrichmentContext) ([]types.DayPlan, error) {
	tierReq := req
	tierReq.Budget = budget
	prompt := buildItineraryPrompt(tierReq, style, enrich)

	text, err := s.timedGenerate(ctx, prompt)
	if err != nil {
		return nil, err
	}

	plans := parseItineraryText(text, req.DurationDays, enrich)
	if len(plans) == 0 {
		return nil, fmt.Errorf("%w: no day plans in %d chars of model output", ErrUnparsableItinerary, len(text))
	}
	return s.padDays(plans, req.DurationDays, req.Destination, budget, text), nil
}

// padDays fills missing day numbers with template days so days run 1..want.
func (s *ServiceImpl) padDays(plans []types.DayPlan, want int, destination string, budget int, modelText string) []types.DayPlan {
	byDay := make(map[int]types.DayPlan, len(plans))
	for _, p := range plans {
		byDay[p.Day] = p
	}

	var template []types.DayPlan
	out := make([]types.DayPlan, 0, want)
	for day := 1; day <= want; day++ {
		if p, ok := byDay[day]; ok {
			out = append(out, p)
			continue
		}
		if template == nil {
			template = templateDayPlans(destination, want, budget, extractAttractions(modelText, destination))
		}
		out = append(out, template[day-1])
	}
	return out
}

// assemble finalizes an itinerary: identity, totals and the budget flag.
func (s *ServiceImpl) assemble(req types.TripRequest, budget int, budgetType string, plans []types.DayPlan, enrich types.EnrichmentContext, aiPowered bool) *types.Itinerary {
	it := &types.Itinerary{
		ID:           uuid.New(),
		Destination:  req.Destination,
		DurationDays: req.DurationDays,
		Budget:       budget,
		BudgetType:   budgetType,
		DailyPlans:   plans,
		CreatedAt:    time.Now().UTC(),
		DataSources: types.DataSources{
			InfluencerRecommendations: len(enrich.Influencers),
			YouTubeContent:            len(enrich.Videos),
			AIPowered:                 aiPowered,
			TemplateBased:             !aiPowered,
		},
	}
	it.TotalCost = it.SumCosts()
	it.ExceedsBudget = float64(it.TotalCost) > float64(budget)*(1+s.budgetMargin)
	return it
}

// gatherEnrichment fetches influencer and video context. Failures are logged
// and counted but never propagate; the prompt just gets less material.
func (s *ServiceImpl) gatherEnrichment(ctx context.Context, destination string) types.EnrichmentContext {
	var enrich types.EnrichmentContext

	if s.influencers != nil {
		recs, err := s.influencers.GetRecommendations(ctx, destination)
		if err != nil {
			s.countEnrichmentError(ctx, "influencer")
			s.logger.WarnContext(ctx, "Influencer lookup failed",
				slog.String("destination", destination), slog.Any("error", err))
		} else {
			enrich.Influencers = recs
		}
	}

	if s.videos != nil {
		videos, err := s.videos.GetTravelContent(ctx, destination)
		if err != nil {
			s.countEnrichmentError(ctx, "youtube")
			s.logger.WarnContext(ctx, "Video lookup failed",
				slog.String("destination", destination), slog.Any("error", err))
		} else {
			enrich.Videos = videos
		}
	}

	return enrich
}

func (s *ServiceImpl) countEnrichmentError(ctx context.Context, source string) {
	if s.metrics != nil {
		s.metrics.EnrichmentErrorsTotal.Add(ctx, 1, metric.WithAttributes(
			attribute.String("source", source),
		))
	}
}

func (s *ServiceImpl) timedGenerate(ctx context.Context, prompt string) (string, error) {
	start := time.Now()
	text, err := s.generator.GenerateContent(ctx, prompt)
	s.recordLlmDuration(ctx, start, err)
	return text, err
}

func (s *ServiceImpl) timedGenerateWithConfig(ctx context.Context, prompt string, cfg *genai.GenerateContentConfig) (string, error) {
	start := time.Now()
	text, err := s.generator.GenerateWithConfig(ctx, prompt, cfg)
	s.recordLlmDuration(ctx, start, err)
	return text, err
}

func (s *ServiceImpl) recordLlmDuration(ctx context.Context, start time.Time, err error) {
	if s.metrics == nil {
		return
	}
	s.metrics.LlmCallDurationSeconds.Record(ctx, time.Since(start).Seconds(), metric.WithAttributes(
		attribute.String("model", s.generator.Model()),
		attribute.Bool("error", err != nil),
	))
}
