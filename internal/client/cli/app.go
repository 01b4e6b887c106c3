package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/dmitrijs2005/drivequiz/internal/client/catalog"
	"github.com/dmitrijs2005/drivequiz/internal/client/client"
	"github.com/dmitrijs2005/drivequiz/internal/client/config"
	"github.com/dmitrijs2005/drivequiz/internal/client/credentials"
	"github.com/dmitrijs2005/drivequiz/internal/client/guard"
	"github.com/dmitrijs2005/drivequiz/internal/client/quiz"
	"github.com/dmitrijs2005/drivequiz/internal/client/repositories"
	"github.com/dmitrijs2005/drivequiz/internal/client/services"
	"github.com/dmitrijs2005/drivequiz/internal/client/session"
	"github.com/dmitrijs2005/drivequiz/internal/logging"
)

type Mode string

const (
	ModeUnknown Mode = ""
	ModeOffline Mode = "offline"
	ModeOnline  Mode = "online"
)

const pingTimeout = 3 * time.Second

type App struct {
	config *config.Config
	log    logging.Logger

	api      *client.HTTPClient
	session  *session.Manager
	engine   *quiz.Engine
	analysis services.AnalysisService
	bank     services.QuizBank
	history  services.HistoryService

	reader *bufio.Reader
	out    io.Writer

	closers []func() error
	bg      sync.WaitGroup

	mu       sync.Mutex
	location string
	from     string
	mode     Mode
	// set when the user was told the session expired
	expiredNotice bool
}

// NewApp builds the client from cfg: logger, local database, credential
// store, API client, session and quiz engine. Close releases what it opened.
func NewApp(ctx context.Context, cfg *config.Config, in io.Reader, out io.Writer) (*App, error) {
	a := &App{
		config:   cfg,
		reader:   bufio.NewReader(in),
		out:      &syncWriter{w: out},
		location: guard.ViewLogin,
	}

	if err := a.init(ctx); err != nil {
		_ = a.Close()
		return nil, err
	}
	return a, nil
}

func (a *App) init(ctx context.Context) error {
	cfg := a.config

	logger, err := a.openLogger()
	if err != nil {
		return err
	}
	a.log = logger

	repos, err := repositories.Open(ctx, cfg.DBFile())
	if err != nil {
		return fmt.Errorf("open local database: %w", err)
	}
	a.closers = append(a.closers, repos.Close)

	store, err := a.openStore(ctx, repos)
	if err != nil {
		return err
	}

	api, err := client.New(client.Options{
		BaseURL:        cfg.APIBaseURL,
		RequestTimeout: cfg.RequestTimeout,
		UploadTimeout:  cfg.UploadTimeout,
		Logger:         a.log,
	}, store)
	if err != nil {
		return err
	}
	a.api = api

	cat, err := openCatalog(cfg.CatalogPath)
	if err != nil {
		return err
	}

	// the session subscribes first so identity is gone before we redirect
	a.session = session.NewManager(api, store, a.log)
	api.OnUnauthorized(a.onUnauthorized)

	a.engine = quiz.NewEngine(api, cat, quiz.Options{
		MaxMediaSize: cfg.MaxVideoSize,
		Journal:      repos.Attempts,
		Logger:       a.log,
	})
	a.engine.OnTransition(func(from, to quiz.State) {
		a.log.Debug(context.Background(), "quiz state", "from", from.String(), "to", to.String())
	})

	a.analysis = services.NewAnalysisService(api)
	a.bank = services.NewQuizBank(api)
	a.history = services.NewHistoryService(repos.Attempts)
	return nil
}

func (a *App) openLogger() (logging.Logger, error) {
	w := io.Writer(os.Stderr)
	if p := a.config.LogPath(); p != "" {
		if err := os.MkdirAll(filepath.Dir(p), 0o700); err != nil {
			return nil, fmt.Errorf("create log dir: %w", err)
		}
		f, err := os.OpenFile(p, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
		if err != nil {
			return nil, fmt.Errorf("open log file: %w", err)
		}
		a.closers = append(a.closers, f.Close)
		w = f
	}
	return logging.New(a.config.LogBackend, a.config.LogLevel, w)
}

func (a *App) openStore(ctx context.Context, repos *repositories.Repositories) (credentials.Store, error) {
	switch a.config.CredentialBackend {
	case config.BackendRedis:
		rdb := redis.NewClient(&redis.Options{
			Addr:     a.config.RedisAddr,
			Password: a.config.RedisPassword,
			DB:       a.config.RedisDB,
		})
		a.closers = append(a.closers, rdb.Close)
		if err := rdb.Ping(ctx).Err(); err != nil {
			return nil, fmt.Errorf("connect to redis at %s: %w", a.config.RedisAddr, err)
		}
		return credentials.NewRedisStore(rdb), nil
	case config.BackendMemory:
		return credentials.NewMemoryStore(), nil
	default:
		return credentials.NewSQLiteStore(repos.Metadata), nil
	}
}

func openCatalog(path string) (*catalog.Catalog, error) {
	if path == "" {
		return catalog.Default()
	}
	c, err := catalog.Load(path)
	if err != nil {
		return nil, fmt.Errorf("load quiz catalog: %w", err)
	}
	return c, nil
}

// Close cancels a running generation, waits for background work and
// releases resources in reverse order of opening.
func (a *App) Close() error {
	if a.engine != nil {
		a.engine.Cancel()
	}
	a.bg.Wait()

	var errs []error
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](); err != nil {
			errs = append(errs, err)
		}
	}
	a.closers = nil
	return errors.Join(errs...)
}

// Run restores a stored session, starts the online watcher and blocks in
// the REPL until the user exits or the input ends.
func (a *App) Run(ctx context.Context) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	fmt.Fprintln(a.out, "Welcome to drivequiz (type 'help' for commands)")

	if a.session.HasCredential(ctx) {
		if err := a.session.Restore(ctx); err != nil {
			a.printErr(err)
		}
	}
	a.navigate(guard.ViewHome)

	go a.StartOnlineStatusWatcher(ctx, a.config.OnlineCheckInterval)

	runREPL(ctx, a, a.getStatus, a.reader)
}

func (a *App) setMode(mode Mode) {
	a.mu.Lock()
	changed := a.mode != mode
	a.mode = mode
	a.mu.Unlock()

	if changed {
		a.log.Info(context.Background(), "connectivity changed", "mode", string(mode))
	}
}

func (a *App) Mode() Mode {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.mode
}

// checkOnline pings the server once and updates the mode.
func (a *App) checkOnline(ctx context.Context) {
	ctx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()

	if err := a.api.Ping(ctx); err != nil {
		a.setMode(ModeOffline)
		return
	}
	a.setMode(ModeOnline)
}

// StartOnlineStatusWatcher probes the server every interval until ctx is
// done. It never touches session or quiz state.
func (a *App) StartOnlineStatusWatcher(ctx context.Context, interval time.Duration) {
	a.checkOnline(ctx)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			a.checkOnline(ctx)
		case <-ctx.Done():
			return
		}
	}
}

// getStatus renders the prompt status, e.g. "(kim online) /quiz [graded]".
func (a *App) getStatus() string {
	s := ""
	if u, ok := a.session.CurrentUser(); ok {
		s = u.DisplayName() + " "
	}
	if m := a.Mode(); m != ModeUnknown {
		s += string(m)
	}
	if s != "" {
		s = fmt.Sprintf("(%s) ", strings.TrimSpace(s))
	}
	s += a.Location()
	if st := a.engine.State(); st != quiz.Idle {
		s += " [" + st.String() + "]"
	}
	return s
}

// syncWriter serialises writes from the REPL and background commands.
type syncWriter struct {
	mu sync.Mutex
	w  io.Writer
}

func (s *syncWriter) Write(p []byte) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.w.Write(p)
}
