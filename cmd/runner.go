package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/ytsrc/internal/services"
	"github.com/desertthunder/ytsrc/internal/shared"
	"github.com/desertthunder/ytsrc/internal/tasks"
	"github.com/urfave/cli/v3"
)

// shelfSearcher is the raw shelf browsing part of the YouTube Music backend.
type shelfSearcher interface {
	Shelves(ctx context.Context, text string) (services.Shelves, error)
	Next(ctx context.Context, c *services.Cursor) (*services.Shelf, error)
}

// keyCache removes a cached credential.
type keyCache interface {
	Clear(service string) error
}

// Runner holds all dependencies for CLI commands and provides methods for each command action.
type Runner struct {
	config     *shared.Config
	configPath string
	backends   []services.Service
	shelves    shelfSearcher
	feeder     services.Feeder
	keys       services.CredentialProvider
	keyCache   keyCache
	logs       *logOutput
	logger     *log.Logger
	output     io.Writer
	engine     *tasks.Engine
}

// RunnerOpts contains configuration options for creating a Runner.
type RunnerOpts struct {
	Config     *shared.Config
	ConfigPath string
	Backends   []services.Service // searched and merged in this order
	Shelves    shelfSearcher
	Feeder     services.Feeder
	Keys       services.CredentialProvider
	KeyCache   keyCache
	Logs       *logOutput
	Logger     *log.Logger
	Output     io.Writer
}

// NewRunner creates a new Runner with the provided configuration
func NewRunner(opts RunnerOpts) *Runner {
	if opts.Config == nil {
		opts.Config = shared.DefaultConfig()
	}
	if opts.Logger == nil {
		opts.Logger = shared.NewLogger(nil)
	}
	if opts.Output == nil {
		opts.Output = os.Stdout
	}

	return &Runner{
		config:     opts.Config,
		configPath: opts.ConfigPath,
		backends:   opts.Backends,
		shelves:    opts.Shelves,
		feeder:     opts.Feeder,
		keys:       opts.Keys,
		keyCache:   opts.KeyCache,
		logs:       opts.Logs,
		logger:     opts.Logger,
		output:     opts.Output,
		engine:     tasks.NewEngine(opts.Logger, opts.Backends...),
	}
}

func (r *Runner) register() []*cli.Command {
	commands := []*cli.Command{}
	for _, fn := range [](func(*Runner) *cli.Command){
		searchCommand, feedsCommand, bulkCommand, pickCommand, keyCommand, setupCommand,
	} {
		commands = append(commands, fn(r))
	}

	return commands
}

// backendAliases maps the names accepted by --backend to service ids.
var backendAliases = map[string]string{
	"music":    services.MusicMeta.ID,
	"ytmusic":  services.MusicMeta.ID,
	"video":    services.YouTubeMeta.ID,
	"videos":   services.YouTubeMeta.ID,
	"youtube":  services.YouTubeMeta.ID,
	"yt_music": services.MusicMeta.ID,
}

// engineFor returns an engine over the backend named by name, or over every backend for "all" or "".
func (r *Runner) engineFor(name string) (*tasks.Engine, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" || name == "all" {
		return r.engine, nil
	}

	id, ok := backendAliases[name]
	if !ok {
		return nil, fmt.Errorf("%w: unknown backend %q", shared.ErrInvalidArgument, name)
	}
	for _, b := range r.backends {
		if b.Meta().ID == id {
			return tasks.NewEngine(r.logger, b), nil
		}
	}
	return nil, fmt.Errorf("%w: backend %q is not configured", shared.ErrServiceUnavailable, name)
}

func (r *Runner) writeJSON(data any, pretty bool) error {
	var output []byte
	var err error

	if pretty {
		output, err = json.MarshalIndent(data, "", "  ")
	} else {
		output, err = json.Marshal(data)
	}

	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}

	if _, err := r.output.Write(output); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}

	if _, err := r.output.Write([]byte("\n")); err != nil {
		return fmt.Errorf("failed to write newline: %w", err)
	}

	return nil
}

func (r *Runner) writeBytes(data []byte) error {
	if _, err := r.output.Write(data); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func (r *Runner) writePlain(format string, args ...any) error {
	return r.writeBytes([]byte(fmt.Sprintf(format, args...)))
}

func (r *Runner) writePlainln(format string, args ...any) error {
	return r.writeBytes([]byte("\n" + fmt.Sprintf(format, args...) + "\n"))
}

func (r *Runner) writePlainHeader(title string) {
	r.writePlain("═══════════════════════════════════════\n")
	r.writePlain("%v\n", title)
	r.writePlain("═══════════════════════════════════════\n")
}

// logOutput is the writer shared by every logger, so logs can be moved to a file once the services exist.
type logOutput struct {
	mu sync.Mutex
	w  io.Writer
}

func newLogOutput(w io.Writer) *logOutput {
	return &logOutput{w: w}
}

func (o *logOutput) Write(p []byte) (int, error) {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.w.Write(p)
}

// Redirect sends later writes to w and returns the previous writer.
func (o *logOutput) Redirect(w io.Writer) io.Writer {
	o.mu.Lock()
	defer o.mu.Unlock()
	prev := o.w
	o.w = w
	return prev
}
