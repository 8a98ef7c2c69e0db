package refresh

import (
	"context"
	"log/slog"
	"sync/atomic"

	"github.com/abhisek/tutordesk/internal/api"
)

// Source fetches the views a cascade refreshes.
type Source interface {
	FetchProgress(ctx context.Context) (*api.Progress, error)
	FetchLearningPath(ctx context.Context) ([]api.PathItem, error)
}

// Step names a cascade step.
type Step string

const (
	StepProgress        Step = "progress"
	StepLearningPath    Step = "learning_path"
	StepRecommendations Step = "recommendations"
)

// Result is the outcome of one cascade. Progress is the snapshot the later
// steps used, which is the previous one if the progress fetch failed.
type Result struct {
	Seq             uint64
	Progress        *api.Progress
	ProgressOK      bool
	Path            []api.PathItem
	PathOK          bool
	Recommendations []Recommendation
}

// Coordinator runs cascades against a Source and keeps the Store current.
type Coordinator struct {
	src    Source
	store  *Store
	logger *slog.Logger
	seq    atomic.Uint64
}

// NewCoordinator creates a coordinator. A nil logger discards output.
func NewCoordinator(src Source, store *Store, logger *slog.Logger) *Coordinator {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Coordinator{src: src, store: store, logger: logger}
}

// Store returns the snapshot store.
func (c *Coordinator) Store() *Store {
	return c.store
}

// Run refreshes progress, then the learning path, then the recommendations,
// each step starting after the previous one finished. Failures are logged
// and do not stop later steps.
func (c *Coordinator) Run(ctx context.Context) Result {
	res := Result{Seq: c.seq.Add(1)}

	p, err := c.src.FetchProgress(ctx)
	if err != nil {
		c.logger.Warn("refresh step failed", append([]any{"step", StepProgress, "seq", res.Seq}, api.LogAttrs(err)...)...)
	} else {
		res.ProgressOK = true
		if !c.store.Put(res.Seq, p) {
			c.logger.Debug("older progress snapshot dropped", "seq", res.Seq)
		}
	}
	res.Progress = c.store.Latest()

	path, err := c.src.FetchLearningPath(ctx)
	if err != nil {
		c.logger.Warn("refresh step failed", append([]any{"step", StepLearningPath, "seq", res.Seq}, api.LogAttrs(err)...)...)
	} else {
		res.PathOK = true
		res.Path = path
	}

	res.Recommendations = Recommend(res.Progress)
	c.logger.Debug("refresh complete", "seq", res.Seq, "progress", res.ProgressOK, "path", res.PathOK)
	return res
}
