package services

import (
	"context"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/ytsrc/internal/models"
	"github.com/desertthunder/ytsrc/internal/ranking"
	"github.com/desertthunder/ytsrc/internal/shared"
)

const (
	defaultConcurrency = 3
	defaultPerQuery    = 5
)

// SubQueries are the keyword sets searched for every track, in result order.
var SubQueries = [][]string{{"Official Audio"}, {"Audio"}, {"Lyrics"}, {}}

// YouTubeService resolves tracks against plain YouTube video search by fanning out one search per [SubQueries] entry.
type YouTubeService struct {
	searcher    VideoSearcher
	feeder      Feeder
	concurrency int
	perQuery    int
	pageEnd     int
	logger      *log.Logger
}

// YouTubeOpts configures a [YouTubeService].
type YouTubeOpts struct {
	Searcher    VideoSearcher // defaults to a [WebVideoSearcher]
	Feeder      Feeder
	Concurrency int // sub-queries in flight at once, default 3
	PerQuery    int // matches kept per sub-query, default 5
	PageEnd     int // last result page fetched per sub-query, default 2
	Logger      *log.Logger
}

// NewYouTubeService creates a [YouTubeService].
func NewYouTubeService(opts YouTubeOpts) *YouTubeService {
	if opts.Logger == nil {
		opts.Logger = shared.DiscardLogger()
	}
	if opts.Searcher == nil {
		opts.Searcher = NewWebVideoSearcher(VideoSearcherOpts{Logger: opts.Logger})
	}
	if opts.Feeder == nil {
		opts.Feeder = NewYTDLP(YTDLPOpts{Logger: opts.Logger})
	}
	if opts.Concurrency <= 0 {
		opts.Concurrency = defaultConcurrency
	}
	if opts.PerQuery <= 0 {
		opts.PerQuery = defaultPerQuery
	}
	if opts.PageEnd <= 0 {
		opts.PageEnd = defaultVideoPageEnd
	}
	return &YouTubeService{
		searcher:    opts.Searcher,
		feeder:      opts.Feeder,
		concurrency: opts.Concurrency,
		perQuery:    opts.PerQuery,
		pageEnd:     opts.PageEnd,
		logger:      shared.WithLogger(opts.Logger, "service", YouTubeMeta.ID),
	}
}

func (s *YouTubeService) Meta() Meta    { return YouTubeMeta }
func (s *YouTubeService) Name() string { return YouTubeMeta.Desc }

// match is a filtered video together with the keywords of the sub-query that found it.
type match struct {
	Video
	filters []string
}

// Search runs every sub-query and ranks the combined matches.
//
// A failing sub-query is logged and contributes nothing; when all of them fail the result is empty.
func (s *YouTubeService) Search(ctx context.Context, q models.SearchQuery) ([]models.Candidate, error) {
	if err := q.Validate(); err != nil {
		return nil, err
	}

	tasks := make([]func(context.Context) ([]match, error), len(SubQueries))
	for i, filters := range SubQueries {
		tasks[i] = func(ctx context.Context) ([]match, error) {
			return s.get(ctx, q, filters)
		}
	}

	results := shared.Settle(ctx, s.concurrency, tasks)
	var stack []match
	for i, r := range results {
		if !r.OK() {
			s.logger.Warn("sub-query failed", "filters", strings.Join(SubQueries[i], " "), "error", r.Err)
			continue
		}
		stack = append(stack, r.Value...)
	}

	return s.classify(stack, q), nil
}

// get runs one sub-query and keeps up to perQuery videos whose titles match the track.
func (s *YouTubeService) get(ctx context.Context, q models.SearchQuery, filters []string) ([]match, error) {
	res, err := s.searcher.SearchVideos(ctx, VideoSearch{Query: q.Text(filters...), PageStart: 1, PageEnd: s.pageEnd})
	if err != nil {
		return nil, err
	}

	out := make([]match, 0, s.perQuery)
	for _, v := range res.Videos {
		if len(out) >= s.perQuery {
			break
		}
		if ranking.MatchesTrack(v.Title, q.Artists, q.Track) {
			out = append(out, match{Video: v, filters: filters})
		}
	}
	return out, nil
}

func (s *YouTubeService) classify(stack []match, q models.SearchQuery) []models.Candidate {
	views := make([]int64, len(stack))
	for i, m := range stack {
		views[i] = m.Views
	}
	highest := ranking.MaxViews(views)

	ranked := ranking.Rank(stack,
		func(m match) string { return m.VideoID },
		func(m match) float64 {
			return ranking.VideoAccuracy(ranking.VideoSignals{
				Seconds: m.Seconds,
				Channel: m.Author.Name,
				Views:   m.Views,
			}, q.Artists, highest, q.DurationMS)
		},
	)

	out := make([]models.Candidate, 0, len(ranked))
	for _, r := range ranked {
		m := r.Item
		out = append(out, models.Candidate{
			Source:     YouTubeMeta.ID,
			Kind:       models.KindVideo,
			Type:       models.KindVideo.String(),
			Title:      m.Title,
			ViewCount:  m.Views,
			Channel:    m.Author.Name,
			Duration:   m.Timestamp,
			DurationMS: m.Seconds * 1000,
			VideoID:    m.VideoID,
			Filters:    append([]string(nil), m.filters...),
			Accuracy:   r.Accuracy,
			GetFeeds:   NewFeedResolver(s.feeder, m.VideoID),
		})
	}
	s.logger.Debug("search complete", "query", q.Text(), "collected", len(stack), "candidates", len(out))
	return out
}
