package youtube

import (
	"context"
	"fmt"
	"log/slog"
	"regexp"
	"strings"
	"time"

	"github.com/patrickmn/go-cache"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"google.golang.org/api/option"
	ytapi "google.golang.org/api/youtube/v3"

	appmetrics "github.com/travelmind-ai/travelmind-server/app/observability/metrics"
	"github.com/travelmind-ai/travelmind-server/internal/types"
)

const defaultMaxResults = 5

var _ Service = (*ServiceImpl)(nil)

// Service returns travel video references for a destination.
type Service interface {
	GetTravelContent(ctx context.Context, destination string) ([]types.VideoReference, error)
}

// SearchClient is the subset of the YouTube Data API used by the service.
type SearchClient interface {
	SearchVideos(ctx context.Context, query string, maxResults int64) ([]*ytapi.SearchResult, error)
	VideoDetails(ctx context.Context, videoID string) (*ytapi.Video, error)
}

// GoogleClient wraps the real YouTube Data API service.
type GoogleClient struct {
	svc *ytapi.Service
}

func NewGoogleClient(ctx context.Context, apiKey string) (*GoogleClient, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("youtube API key is required")
	}
	svc, err := ytapi.NewService(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create youtube service: %w", err)
	}
	return &GoogleClient{svc: svc}, nil
}

func (c *GoogleClient) SearchVideos(ctx context.Context, query string, maxResults int64) ([]*ytapi.SearchResult, error) {
	resp, err := c.svc.Search.List([]string{"snippet"}).
		Q(query).
		MaxResults(maxResults).
		Type("video").
		VideoDefinition("high").
		RelevanceLanguage("en").
		VideoDuration("medium").
		Context(ctx).
		Do()
	if err != nil {
		return nil, err
	}
	return resp.Items, nil
}

func (c *GoogleClient) VideoDetails(ctx context.Context, videoID string) (*ytapi.Video, error) {
	resp, err := c.svc.Videos.List([]string{"statistics", "snippet"}).
		Id(videoID).
		Context(ctx).
		Do()
	if err != nil {
		return nil, err
	}
	if len(resp.Items) == 0 {
		return nil, nil
	}
	return resp.Items[0], nil
}

// ServiceImpl fetches travel videos, caching results per query for a bounded
// window so repeated lookups within a session make no outbound call.
type ServiceImpl struct {
	client     SearchClient
	cache      *cache.Cache
	cacheTTL   time.Duration
	maxResults int64
	metrics    *appmetrics.AppMetrics
	logger     *slog.Logger
}

func NewServiceImpl(client SearchClient, cacheTTL time.Duration, maxResults int64, m *appmetrics.AppMetrics, logger *slog.Logger) *ServiceImpl {
	if cacheTTL <= 0 {
		cacheTTL = 7 * 24 * time.Hour
	}
	if maxResults <= 0 {
		maxResults = defaultMaxResults
	}
	return &ServiceImpl{
		client:     client,
		cache:      cache.New(cacheTTL, 10*time.Minute),
		cacheTTL:   cacheTTL,
		maxResults: maxResults,
		metrics:    m,
		logger:     logger,
	}
}

func videoCacheKey(destination string) string {
	return "videos:" + strings.ToLower(strings.TrimSpace(destination))
}

// GetTravelContent returns up to maxResults video references for the
// destination, serving from cache within the TTL window.
func (s *ServiceImpl) GetTravelContent(ctx context.Context, destination string) ([]types.VideoReference, error) {
	ctx, span := otel.Tracer("YouTubeService").Start(ctx, "GetTravelContent")
	defer span.End()
	span.SetAttributes(attribute.String("youtube.destination", destination))

	key := videoCacheKey(destination)
	if cached, found := s.cache.Get(key); found {
		if refs, ok := cached.([]types.VideoReference); ok {
			span.SetAttributes(attribute.Bool("youtube.cache_hit", true))
			if s.metrics != nil {
				s.metrics.VideoCacheHitsTotal.Add(ctx, 1)
			}
			return refs, nil
		}
	}
	if s.metrics != nil {
		s.metrics.VideoCacheMissesTotal.Add(ctx, 1)
	}

	query := fmt.Sprintf("travel vlog %s places to visit", destination)
	items, err := s.client.SearchVideos(ctx, query, s.maxResults)
	if err != nil {
		s.logger.ErrorContext(ctx, "Video search failed", slog.String("destination", destination), slog.Any("error", err))
		span.RecordError(err)
		span.SetStatus(codes.Error, "video search failed")
		return nil, fmt.Errorf("video search for %q: %w", destination, err)
	}

	refs := make([]types.VideoReference, 0, len(items))
	for _, item := range items {
		if item.Id == nil || item.Id.VideoId == "" || item.Snippet == nil {
			continue
		}
		ref := types.VideoReference{
			VideoID: item.Id.VideoId,
			Title:   item.Snippet.Title,
			Channel: item.Snippet.ChannelTitle,
		}
		if item.Snippet.Thumbnails != nil && item.Snippet.Thumbnails.High != nil {
			ref.ThumbnailURL = item.Snippet.Thumbnails.High.Url
		}
		if t, perr := time.Parse(time.RFC3339, item.Snippet.PublishedAt); perr == nil {
			ref.PublishedAt = t
		}

		// Per-video failures are skipped, not fatal to the list.
		video, derr := s.client.VideoDetails(ctx, item.Id.VideoId)
		if derr != nil {
			s.logger.WarnContext(ctx, "Failed to fetch video details",
				slog.String("video_id", item.Id.VideoId), slog.Any("error", derr))
		} else if video != nil {
			if video.Statistics != nil {
				ref.ViewCount = video.Statistics.ViewCount
				ref.LikeCount = video.Statistics.LikeCount
			}
			if video.Snippet != nil {
				ref.Locations = extractLocations(video.Snippet.Description)
			}
		}

		refs = append(refs, ref)
	}

	s.cache.Set(key, refs, s.cacheTTL)
	span.SetAttributes(attribute.Int("youtube.videos.count", len(refs)))
	return refs, nil
}

// Location mention patterns scraped from video descriptions.
var locationPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i:visit(?:ing)?)\s+([A-Z][a-zA-Z ]+)`),
	regexp.MustCompile(`\bat\s+([A-Z][a-zA-Z ]+)`),
	regexp.MustCompile(`\bin\s+([A-Z][a-zA-Z ]+)`),
	regexp.MustCompile(`(?i:location):\s*([A-Z][a-zA-Z ]+)`),
	regexp.MustCompile(`(?i:places?(?:\s+to\s+visit)?):\s*([A-Z][a-zA-Z ]+)`),
}

// extractLocations pulls capitalized location mentions out of a video
// description. Matches shorter than four characters are noise.
func extractLocations(description string) []string {
	seen := make(map[string]struct{})
	var locations []string
	for _, pattern := range locationPatterns {
		for _, match := range pattern.FindAllStringSubmatch(description, -1) {
			location := strings.TrimSpace(match[1])
			if len(location) <= 3 {
				continue
			}
			if _, dup := seen[location]; dup {
				continue
			}
			seen[location] = struct{}{}
			locations = append(locations, location)
		}
	}
	return locations
}
