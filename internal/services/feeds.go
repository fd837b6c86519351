package services

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os/exec"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/ytsrc/internal/models"
	"github.com/desertthunder/ytsrc/internal/shared"
)

// FeedOptions are passed to the feed downloader on every lookup.
var FeedOptions = []string{"--socket-timeout=20", "--retries=20", "--no-cache-dir"}

// Feeder looks up downloadable feeds for a video id.
type Feeder interface {
	GetFeeds(ctx context.Context, id string, opts []string) (*models.FeedInfo, error)
}

// NewFeedResolver returns a resolver that asks feeder for id's feeds with [FeedOptions].
//
// Nothing is fetched until the resolver is called, and each call fetches again.
func NewFeedResolver(feeder Feeder, id string) models.FeedResolver {
	return func(ctx context.Context) (*models.FeedInfo, error) {
		return feeder.GetFeeds(ctx, id, append([]string(nil), FeedOptions...))
	}
}

// Executor abstracts command execution for testability.
type Executor interface {
	Output(ctx context.Context, binary string, args []string) ([]byte, error)
}

// YTDLPOption configures a [YTDLP].
type YTDLPOption func(*YTDLP)

// WithExecutor injects a custom executor.
func WithExecutor(e Executor) YTDLPOption {
	return func(y *YTDLP) {
		if e != nil {
			y.exec = e
		}
	}
}

// YTDLPOpts configures a [YTDLP].
type YTDLPOpts struct {
	Binary  string // defaults to "yt-dlp" on PATH
	BaseURL string // watch page prefix, defaults to https://www.youtube.com/watch?v=
	Logger  *log.Logger
}

// YTDLP implements [Feeder] by running yt-dlp in JSON dump mode.
type YTDLP struct {
	binary  string
	baseURL string
	exec    Executor
	logger  *log.Logger
}

// NewYTDLP creates a [YTDLP].
func NewYTDLP(opts YTDLPOpts, options ...YTDLPOption) *YTDLP {
	if strings.TrimSpace(opts.Binary) == "" {
		opts.Binary = "yt-dlp"
	}
	if opts.BaseURL == "" {
		opts.BaseURL = defaultVideoBaseURL + "/watch?v="
	}
	if opts.Logger == nil {
		opts.Logger = shared.DiscardLogger()
	}
	y := &YTDLP{
		binary:  opts.Binary,
		baseURL: opts.BaseURL,
		exec:    commandExecutor{},
		logger:  opts.Logger,
	}
	for _, opt := range options {
		opt(y)
	}
	return y
}

// GetFeeds runs yt-dlp for id and decodes its JSON description.
func (y *YTDLP) GetFeeds(ctx context.Context, id string, opts []string) (*models.FeedInfo, error) {
	if strings.TrimSpace(id) == "" {
		return nil, &shared.ValidationError{Field: "id", Reason: "must not be empty"}
	}

	args := append([]string{"--dump-single-json", "--no-warnings"}, opts...)
	args = append(args, y.baseURL+id)
	y.logger.Debug("resolving feeds", "id", id, "binary", y.binary)

	out, err := y.exec.Output(ctx, y.binary, args)
	if err != nil {
		return nil, fmt.Errorf("yt-dlp %s: %w", id, err)
	}

	var info models.FeedInfo
	if err := json.Unmarshal(out, &info); err != nil {
		return nil, fmt.Errorf("failed to decode yt-dlp output for %s: %w", id, err)
	}
	return &info, nil
}

type commandExecutor struct{}

func (commandExecutor) Output(ctx context.Context, binary string, args []string) ([]byte, error) {
	cmd := exec.CommandContext(ctx, binary, args...)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	out, err := cmd.Output()
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return nil, fmt.Errorf("%w: %s", err, strings.TrimSpace(stderr.String()))
		}
		return nil, err
	}
	return out, nil
}
