package app

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/alexedwards/scs/goredisstore"
	"github.com/alexedwards/scs/v2"
	"github.com/alexedwards/scs/v2/memstore"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"

	"github.com/ekaraca/cinebook/internal/domain"
	"github.com/ekaraca/cinebook/internal/mailer"
	"github.com/ekaraca/cinebook/internal/repository"
	"github.com/ekaraca/cinebook/internal/seatmap"
	appvalidator "github.com/ekaraca/cinebook/internal/validator"
	"github.com/ekaraca/cinebook/internal/vcs"
)

var (
	version = vcs.Version()
)

type application struct {
	config         config
	logger         *slog.Logger
	validator      *validator.Validate
	mailer         mailer.Mailer
	sessionManager *scs.SessionManager
	seatMaps       *seatmap.Generator

	movieRepo   domain.MovieRepository
	theaterRepo domain.TheaterRepository
	bookingRepo domain.BookingRepository
}

type config struct {
	port int
	env  string
	mock struct {
		latency time.Duration
	}
	seats seatmap.Config
	redis struct {
		url          string
		maxOpenConns int
		maxIdleConns int
		maxIdleTime  time.Duration
	}
	smtp struct {
		host     string
		port     int
		username string
		password string
		sender   string
	}
}

func Run() error {
	// A .env file is optional; flags below fall back to the environment.
	godotenv.Load()

	var cfg config

	flag.IntVar(&cfg.port, "port", envInt("PORT", 3000), "server port")
	flag.StringVar(&cfg.env, "env", envString("ENV", "dev"), "Environment (dev|staging|prod)")

	flag.DurationVar(&cfg.mock.latency, "mock-latency", 0, "Artificial latency per repository call")

	flag.Float64Var(&cfg.seats.BookedRate, "seat-booked-rate", 0.3, "Probability a generated seat is already booked")
	flag.Float64Var(&cfg.seats.MaintenanceRate, "seat-maintenance-rate", 0.05, "Probability a generated seat is out of service")
	flag.Float64Var(&cfg.seats.GoldPromotionRate, "seat-gold-promotion-rate", 0.1, "Chance a later center seat is promoted to Gold")

	flag.StringVar(&cfg.redis.url, "redis-url", envString("REDIS_URL", ""), "Redis URL for the session store (in-memory store when empty)")
	flag.IntVar(&cfg.redis.maxOpenConns, "redis-max-open-conns", 25, "Redis max open connections")
	flag.IntVar(&cfg.redis.maxIdleConns, "redis-max-idle-conns", 10, "Redis max idle connections")
	flag.DurationVar(&cfg.redis.maxIdleTime, "redis-max-idle-time", 2*time.Minute, "Redis max idle time for connections")

	flag.StringVar(&cfg.smtp.host, "smtp-host", envString("SMTP_HOST", "sandbox.smtp.mailtrap.io"), "SMTP host")
	flag.IntVar(&cfg.smtp.port, "smtp-port", envInt("SMTP_PORT", 2525), "SMTP port")
	flag.StringVar(&cfg.smtp.username, "smtp-username", envString("SMTP_USERNAME", ""), "SMTP username")
	flag.StringVar(&cfg.smtp.password, "smtp-password", envString("SMTP_PASSWORD", ""), "SMTP password")
	flag.StringVar(&cfg.smtp.sender, "smtp-sender", "CineBook <no-reply@cinebook.dev>", "SMTP sender")

	displayVersion := flag.Bool("version", false, "Display version and exit")

	flag.Parse()

	if *displayVersion {
		fmt.Printf("Version:\t%s\n", version)
		os.Exit(0)
	}

	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))

	movieRepo, err := repository.NewMemoryMovieRepository(cfg.mock.latency)
	if err != nil {
		return err
	}

	theaterRepo, err := repository.NewMemoryTheaterRepository(cfg.mock.latency)
	if err != nil {
		return err
	}

	bookingRepo := repository.NewMemoryBookingRepository(cfg.mock.latency)

	sessionManager, err := newSessionManager(cfg)
	if err != nil {
		return err
	}

	app := &application{
		config:         cfg,
		logger:         logger,
		validator:      appvalidator.NewValidator(),
		mailer:         mailer.NewSMTPMailer(cfg.smtp.host, cfg.smtp.port, cfg.smtp.username, cfg.smtp.password, cfg.smtp.sender),
		sessionManager: sessionManager,
		seatMaps:       seatmap.NewGenerator(cfg.seats),
		movieRepo:      movieRepo,
		theaterRepo:    theaterRepo,
		bookingRepo:    bookingRepo,
	}

	return app.run()
}

func envString(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok {
		return v
	}

	return fallback
}

func envInt(key string, fallback int) int {
	if v, ok := os.LookupEnv(key); ok {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}

	return fallback
}

func newSessionManager(cfg config) (*scs.SessionManager, error) {
	sessionManager := scs.New()
	sessionManager.IdleTimeout = 20 * time.Minute
	sessionManager.Cookie.Name = "session_id"

	if cfg.redis.url == "" {
		sessionManager.Store = memstore.New()
		return sessionManager, nil
	}

	client, err := newRedisClient(cfg)
	if err != nil {
		return nil, err
	}

	sessionManager.Store = goredisstore.New(client)

	return sessionManager, nil
}

func newRedisClient(cfg config) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:            cfg.redis.url,
		MaxIdleConns:    cfg.redis.maxIdleConns,
		MaxActiveConns:  cfg.redis.maxOpenConns,
		ConnMaxIdleTime: cfg.redis.maxIdleTime,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	err := rdb.Ping(ctx).Err()
	if err != nil {
		return nil, err
	}

	return rdb, nil
}

func (app *application) run() error {
	srv := &http.Server{
		Addr:         fmt.Sprintf("0.0.0.0:%d", app.config.port),
		Handler:      app.routes(),
		IdleTimeout:  time.Minute,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		ErrorLog:     slog.NewLogLogger(app.logger.Handler(), slog.LevelDebug),
	}

	shutdownError := make(chan error)

	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		s := <-quit

		app.logger.Info("shutting down server", "signal", s.String())

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		err := srv.Shutdown(ctx)
		if err != nil {
			shutdownError <- err
		}

		shutdownError <- nil
	}()

	app.logger.Info("starting server", "addr", srv.Addr, "env", app.config.env)

	err := srv.ListenAndServe()
	if !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	err = <-shutdownError
	if err != nil {
		return err
	}

	app.logger.Info("stopped server", "addr", srv.Addr)

	return nil
}

func (app *application) routes() http.Handler {
	r := chi.NewRouter()

	r.NotFound(app.notFoundResponse)

	r.Use(middleware.Logger)
	r.Use(middleware.RequestID)
	r.Use(app.recoverPanic)
	r.Use(app.requestLogger)
	r.Use(app.sessionManager.LoadAndSave)

	r.Get("/health", app.GetHealth)

	r.Route("/movies", func(r chi.Router) {
		r.Get("/", app.GetMovies)
		r.Get("/{movieId}", app.GetMovieById)
		r.Get("/{movieId}/theaters", app.GetTheatersByMovie)
	})

	r.Route("/theaters", func(r chi.Router) {
		r.Get("/", app.GetTheaters)
		r.Get("/{theaterId}/seats", app.GetSeatMapByTheater)
	})

	r.Route("/flow", func(r chi.Router) {
		r.Post("/", app.StartFlowHandler)
		r.Get("/", app.GetFlowHandler)
		r.Delete("/", app.CancelFlowHandler)
		r.Put("/showtime", app.SelectShowtimeHandler)
		r.Post("/seats", app.ToggleSeatHandler)
		r.Put("/step", app.ProceedFlowHandler)
		r.Post("/confirm", app.ConfirmFlowHandler)
	})

	r.Route("/bookings", func(r chi.Router) {
		r.Get("/", app.GetBookings)
		r.Get("/{bookingId}", app.GetBookingById)
		r.Patch("/{bookingId}", app.UpdateBooking)
		r.Delete("/{bookingId}", app.CancelBooking)
	})

	return r
}
