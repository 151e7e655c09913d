package service

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"strings"
	"time"

	"github.com/chigarow/maps-to-waze-app/internal/extractor"
	"github.com/chigarow/maps-to-waze-app/internal/geocoding"
	"github.com/chigarow/maps-to-waze-app/internal/metrics"
	"github.com/chigarow/maps-to-waze-app/internal/models"
	"github.com/chigarow/maps-to-waze-app/internal/patterns"
	"github.com/chigarow/maps-to-waze-app/internal/placeid"
	"github.com/chigarow/maps-to-waze-app/internal/redirect"
	"github.com/google/uuid"
)

// Stage names, used as metric labels and as the prefix of a result's source.
const (
	StageRedirect   = "redirect"
	StageFast       = "fast"
	StageAmbiguous  = "ambiguous"
	StageShortLink  = "short-link"
	StagePlaceID    = "place-id"
	StageExhaustive = "exhaustive"
)

// Redirector follows redirects and fetches pages for the pipeline.
type Redirector interface {
	Resolve(ctx context.Context, rawURL string) string
	ResolveWithoutFollowing(ctx context.Context, rawURL string) (string, bool)
	FetchReadable(ctx context.Context, rawURL string) (redirect.Page, bool)
}

// ResolutionService turns map URLs into coordinates by running a fixed sequence of
// stages and returning the first coordinate any stage produces.
type ResolutionService struct {
	log        *slog.Logger         // Logger for logging service activities
	redirector Redirector           // Redirector resolves short links and fetches pages
	extractor  *extractor.Extractor // Extractor applies the pattern library
	provider   geocoding.Provider   // Place-details provider; nil when no credential is configured
	metrics    *metrics.Metrics     // Metrics for tracking service performance
	cfg        Config
}

// resolution is the per-call state shared by the stages.
type resolution struct {
	id           string
	rawURL       string
	canonicalURL string
	fetchedBody  string
}

type stage struct {
	name string
	run  func(ctx context.Context, log *slog.Logger, res *resolution) (models.Result, error)
}

// NewResolutionService creates a new instance of ResolutionService.
// provider may be nil, in which case the place-id stage is skipped. Zero
// fields of cfg take their DefaultConfig values.
func NewResolutionService(
	log *slog.Logger,
	redirector Redirector,
	ext *extractor.Extractor,
	provider geocoding.Provider,
	metrics *metrics.Metrics,
	cfg Config,
) *ResolutionService {
	if ext == nil {
		ext = extractor.New(patterns.Default(), log)
	}
	return &ResolutionService{
		log:        log,
		redirector: redirector,
		extractor:  ext,
		provider:   provider,
		metrics:    metrics,
		cfg:        cfg.withDefaults(),
	}
}

// Resolve returns the coordinates rawURL points at, or NotFound. It never returns an
// error: network failures, malformed responses and panics inside a stage are logged
// and the pipeline moves on to the next stage. A cancelled ctx yields NotFound.
func (rs *ResolutionService) Resolve(ctx context.Context, rawURL string) models.Result {
	res := &resolution{id: uuid.NewString(), rawURL: normalizeURL(rawURL)}
	res.canonicalURL = res.rawURL
	log := rs.log.With("resolution_id", res.id)

	if err := rs.checkInput(strings.TrimSpace(rawURL)); err != nil {
		log.DebugContext(ctx, "Rejected input", "error", err)
		rs.metrics.ResolutionsTotal.WithLabelValues(metrics.OutcomeRejected).Inc()
		return models.NotFound()
	}

	log.InfoContext(ctx, "Resolving URL", "url", res.rawURL)

	for _, st := range rs.stages() {
		if ctx.Err() != nil {
			log.InfoContext(ctx, "Resolution cancelled", "stage", st.name, "error", ctx.Err())
			break
		}

		result := rs.runStage(ctx, log, st, res)
		coords, ok := result.Coordinates()
		if !ok || ctx.Err() != nil {
			continue
		}

		rs.metrics.StageHits.WithLabelValues(st.name).Inc()
		rs.metrics.ResolutionsTotal.WithLabelValues(metrics.OutcomeFound).Inc()
		log.InfoContext(ctx, "Resolved coordinates",
			"stage", st.name,
			"source", result.Source(),
			"lat", coords.Latitude,
			"lng", coords.Longitude,
		)
		return models.Found(coords, st.name+"/"+result.Source())
	}

	rs.metrics.ResolutionsTotal.WithLabelValues(metrics.OutcomeNotFound).Inc()
	log.InfoContext(ctx, "No coordinates found", "url", res.rawURL)
	return models.NotFound()
}

func (rs *ResolutionService) stages() []stage {
	return []stage{
		{name: StageRedirect, run: rs.resolveRedirect},
		{name: StageFast, run: rs.fastPass},
		{name: StageAmbiguous, run: rs.ambiguousGuard},
		{name: StageShortLink, run: rs.shortLinkPass},
		{name: StagePlaceID, run: rs.placeIDPass},
		{name: StageExhaustive, run: rs.exhaustivePass},
	}
}

// runStage runs one stage, turning errors and panics into NotFound.
func (rs *ResolutionService) runStage(
	ctx context.Context,
	log *slog.Logger,
	st stage,
	res *resolution,
) (result models.Result) {
	defer func() {
		if r := recover(); r != nil {
			log.ErrorContext(ctx, "Stage panicked", "stage", st.name, "panic", fmt.Sprint(r))
			rs.metrics.StageFailures.WithLabelValues(st.name).Inc()
			result = models.NotFound()
		}
	}()

	if rs.cfg.StageTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, rs.cfg.StageTimeout)
		defer cancel()
	}

	result, err := st.run(ctx, log, res)
	if err != nil {
		log.WarnContext(ctx, "Stage failed", "stage", st.name, "error", err)
		rs.metrics.StageFailures.WithLabelValues(st.name).Inc()
		return models.NotFound()
	}
	return result
}

func (rs *ResolutionService) resolveRedirect(
	ctx context.Context,
	log *slog.Logger,
	res *resolution,
) (models.Result, error) {
	start := time.Now()
	canonical := rs.redirector.Resolve(ctx, res.rawURL)
	rs.observe("resolve", start)

	if canonical != "" {
		res.canonicalURL = canonical
	}
	log.DebugContext(ctx, "Canonical URL", "url", res.canonicalURL)
	return models.NotFound(), nil
}

func (rs *ResolutionService) fastPass(ctx context.Context, _ *slog.Logger, res *resolution) (models.Result, error) {
	if result := rs.extractor.Extract(ctx, res.canonicalURL, false); result.IsFound() {
		return result, nil
	}
	if res.rawURL != res.canonicalURL {
		return rs.extractor.Extract(ctx, res.rawURL, false), nil
	}
	return models.NotFound(), nil
}

func (rs *ResolutionService) ambiguousGuard(
	ctx context.Context,
	log *slog.Logger,
	res *resolution,
) (models.Result, error) {
	if patterns.IsAmbiguous(res.canonicalURL) {
		log.DebugContext(ctx, "Place or directions URL, bare decimal pairs are ignored", "url", res.canonicalURL)
	}
	return models.NotFound(), nil
}

func (rs *ResolutionService) shortLinkPass(
	ctx context.Context,
	log *slog.Logger,
	res *resolution,
) (models.Result, error) {
	if !rs.cfg.DeepFetch {
		return models.NotFound(), nil
	}

	target := res.rawURL
	if !rs.isShortLink(target) {
		target = res.canonicalURL
		if !rs.isShortLink(target) {
			return models.NotFound(), nil
		}
	}

	start := time.Now()
	location, ok := rs.redirector.ResolveWithoutFollowing(ctx, target)
	rs.observe("location", start)
	if ok {
		log.DebugContext(ctx, "Short link Location header", "location", location)
		if result := rs.extractor.Extract(ctx, location, false); result.IsFound() {
			return result, nil
		}
	}

	start = time.Now()
	page, ok := rs.redirector.FetchReadable(ctx, target)
	rs.observe("fetch", start)
	if !ok {
		return models.NotFound(), nil
	}

	res.fetchedBody = page.Body
	if page.FinalURL != res.rawURL && page.FinalURL != res.canonicalURL {
		if result := rs.extractor.Extract(ctx, page.FinalURL, false); result.IsFound() {
			return result, nil
		}
	}
	return rs.extractor.ExtractBody(ctx, page.Body, false), nil
}

func (rs *ResolutionService) placeIDPass(
	ctx context.Context,
	log *slog.Logger,
	res *resolution,
) (models.Result, error) {
	if rs.provider == nil {
		return models.NotFound(), nil
	}

	id, ok := placeid.Extract(res.canonicalURL)
	if !ok && res.rawURL != res.canonicalURL {
		id, ok = placeid.Extract(res.rawURL)
	}
	if !ok {
		return models.NotFound(), nil
	}

	log.DebugContext(ctx, "Looking up place identifier", "kind", id.Kind.String(), "id", id.Value)

	start := time.Now()
	coords, err := rs.provider.Lookup(ctx, id)
	rs.observe("lookup", start)
	if err != nil {
		return models.NotFound(), fmt.Errorf("failed to look up %s %s: %w", id.Kind, id.Value, err)
	}
	if coords == nil || !coords.Valid() {
		return models.NotFound(), fmt.Errorf("%w: provider returned %v", models.ErrInvalidCandidate, coords)
	}

	return models.Found(*coords, id.Kind.String()), nil
}

func (rs *ResolutionService) exhaustivePass(
	ctx context.Context,
	_ *slog.Logger,
	res *resolution,
) (models.Result, error) {
	if result := rs.extractor.Extract(ctx, res.canonicalURL, true); result.IsFound() {
		return result, nil
	}
	if res.fetchedBody != "" {
		return rs.extractor.ExtractBody(ctx, res.fetchedBody, true), nil
	}
	return models.NotFound(), nil
}

func (rs *ResolutionService) observe(operation string, start time.Time) {
	rs.metrics.RequestSeconds.WithLabelValues(operation).Observe(time.Since(start).Seconds())
}

// checkInput rejects inputs that cannot be map links before any network I/O.
func (rs *ResolutionService) checkInput(rawURL string) error {
	if rawURL == "" {
		return ErrEmptyURL
	}
	if len(rawURL) > rs.cfg.MaxURLLength {
		return fmt.Errorf("%w: %d characters", ErrURLTooLong, len(rawURL))
	}

	host := hostOf(normalizeURL(rawURL))
	if host == "" {
		return fmt.Errorf("%w: no host", ErrHostNotAllowed)
	}
	for _, allowed := range rs.cfg.AllowedHosts {
		if strings.Contains(host, allowed) {
			return nil
		}
	}
	return fmt.Errorf("%w: %s", ErrHostNotAllowed, host)
}

func (rs *ResolutionService) isShortLink(rawURL string) bool {
	host := hostOf(rawURL)
	for _, short := range rs.cfg.ShortLinkHosts {
		if host == short || strings.HasSuffix(host, "."+short) {
			return true
		}
	}
	return false
}

// normalizeURL trims rawURL and assumes https when no scheme is given.
func normalizeURL(rawURL string) string {
	rawURL = strings.TrimSpace(rawURL)
	if rawURL != "" && !strings.Contains(rawURL, "://") {
		rawURL = "https://" + rawURL
	}
	return rawURL
}

func hostOf(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return ""
	}
	return strings.ToLower(u.Hostname())
}
