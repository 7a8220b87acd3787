package httpapi

import (
	"context"
	"errors"
	"io"
	"net"
	"net/http"
	"time"

	"github.com/dmitrijs2005/tripkeeper/internal/logging"
	"github.com/dmitrijs2005/tripkeeper/internal/models"
	"github.com/dmitrijs2005/tripkeeper/internal/store"
)

// Service is the store surface the handlers call. *store.Store implements it.
type Service interface {
	InsertPlan(ctx context.Context, in models.PlanInput) (*models.TravelPlan, error)
	ListPlans(ctx context.Context) ([]models.TravelPlan, error)
	DeletePlan(ctx context.Context, id int64) (bool, error)

	InsertPhotosBatch(ctx context.Context, in []models.PhotoInput) ([]models.Photo, error)
	ListPhotos(ctx context.Context) ([]models.Photo, error)
	GetPhoto(ctx context.Context, id int64) (*models.Photo, error)
	UpdatePhoto(ctx context.Context, id int64, u models.PhotoUpdate) (*models.PhotoUpdateResult, error)
	DeletePhoto(ctx context.Context, id int64) (bool, error)
	DeletePhotosBatch(ctx context.Context, ids []int64) (int, error)

	GetStats(ctx context.Context) (models.Stats, error)
	ExportSQLText(ctx context.Context) (string, error)
	ExportDatabaseFile(ctx context.Context) (*store.DatabaseFile, error)
	ImportDatabaseFile(ctx context.Context, r io.Reader) error
}

// Options configures optional parts of the surface.
type Options struct {
	// SecretKey enables bearer auth on mutating routes when non-empty.
	SecretKey string
	// MetricsPath and Metrics mount a Prometheus handler when both are set.
	MetricsPath string
	Metrics     http.Handler
	// Backend and Ready feed /api/health.
	Backend string
	Ready   func() bool
	// ShutdownTimeout bounds graceful shutdown in Run.
	ShutdownTimeout time.Duration
	// MaxImportBytes caps the body of POST /api/import/db.
	MaxImportBytes int64
}

const defaultMaxImportBytes = 256 << 20

type Server struct {
	address string
	svc     Service
	logger  logging.Logger
	secret  []byte
	opts    Options
	handler http.Handler
}

func NewServer(address string, svc Service, l logging.Logger, opts Options) *Server {
	if l == nil {
		l = logging.Nop{}
	}
	if opts.Ready == nil {
		opts.Ready = func() bool { return true }
	}
	if opts.MaxImportBytes <= 0 {
		opts.MaxImportBytes = defaultMaxImportBytes
	}
	s := &Server{
		address: address,
		svc:     svc,
		logger:  l.With("module", "http_server"),
		secret:  []byte(opts.SecretKey),
		opts:    opts,
	}
	s.handler = s.withRequestID(s.withLogging(s.routes()))
	return s
}

func (s *Server) Handler() http.Handler { return s.handler }

func (s *Server) routes() *http.ServeMux {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /api/photos", s.listPhotos)
	mux.HandleFunc("GET /api/photos/{id}", s.getPhoto)
	mux.HandleFunc("POST /api/photos", s.requireToken(s.insertPhotos))
	mux.HandleFunc("PUT /api/photos/{id}", s.requireToken(s.updatePhoto))
	mux.HandleFunc("DELETE /api/photos/{id}", s.requireToken(s.deletePhoto))
	mux.HandleFunc("DELETE /api/photos", s.requireToken(s.deletePhotos))

	mux.HandleFunc("GET /api/plans", s.listPlans)
	mux.HandleFunc("POST /api/plans", s.requireToken(s.insertPlan))
	mux.HandleFunc("DELETE /api/plans/{id}", s.requireToken(s.deletePlan))

	mux.HandleFunc("GET /api/stats", s.stats)
	mux.HandleFunc("GET /api/export/sql", s.exportSQL)
	mux.HandleFunc("GET /api/export/db", s.exportDB)
	mux.HandleFunc("POST /api/import/db", s.requireToken(s.importDB))
	mux.HandleFunc("GET /api/health", s.health)

	if s.opts.MetricsPath != "" && s.opts.Metrics != nil {
		mux.Handle("GET "+s.opts.MetricsPath, s.opts.Metrics)
	}

	return mux
}

// Run listens on the configured address and serves until ctx is done.
func (s *Server) Run(ctx context.Context) error {
	listen, err := net.Listen("tcp", s.address)
	if err != nil {
		return err
	}
	return s.Serve(ctx, listen)
}

// Serve accepts connections on lis until ctx is done, then shuts down,
// waiting at most ShutdownTimeout for in-flight requests.
func (s *Server) Serve(ctx context.Context, lis net.Listener) error {
	srv := &http.Server{
		Handler:           s.handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping HTTP server...")

		sctx := context.Background()
		if s.opts.ShutdownTimeout > 0 {
			var cancel context.CancelFunc
			sctx, cancel = context.WithTimeout(sctx, s.opts.ShutdownTimeout)
			defer cancel()
		}
		errc <- srv.Shutdown(sctx)
	}()

	s.logger.Info(ctx, "Starting HTTP server", "address", lis.Addr().String())

	if err := srv.Serve(lis); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	return <-errc
}
