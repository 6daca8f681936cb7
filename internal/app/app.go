// Package app runs the load, project and save pipeline behind the sureuv command.
package app

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"time"

	"go.uber.org/zap"

	"github.com/Faultbox/sureuv/internal/config"
	"github.com/Faultbox/sureuv/internal/logger"
	"github.com/Faultbox/sureuv/internal/meshstore"
	"github.com/Faultbox/sureuv/internal/texture"
	"github.com/Faultbox/sureuv/internal/watch"
	"github.com/Faultbox/sureuv/pkg/formats"
	"github.com/Faultbox/sureuv/pkg/uv"
)

// ErrWatchOverwritesInput is returned by Watch when the output path is the input mesh.
var ErrWatchOverwritesInput = errors.New("watch mode would overwrite its own input")

// App projects UVs onto the configured mesh.
type App struct {
	cfg     *config.Config
	texture texture.Settings
}

// Report describes one completed run.
type Report struct {
	Input        string
	Output       string
	Operation    string
	Aspect       float32
	CreatedUVMap bool
	Selected     int
	Result       uv.Result
}

// New validates cfg and returns an App for it.
func New(cfg *config.Config) (*App, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &App{
		cfg: cfg,
		texture: texture.Settings{
			AutoAspect: cfg.Texture.AutoAspect,
			Aspect:     cfg.Texture.Aspect,
		},
	}, nil
}

// Run loads the input mesh, applies the configured projection and writes the result.
func (a *App) Run(ctx context.Context) (Report, error) {
	if err := ctx.Err(); err != nil {
		return Report{}, err
	}
	start := time.Now()

	// Re-read the image every run; it may have been resized since the last one.
	if err := a.texture.SetImage(a.cfg.Texture.Image); err != nil {
		return Report{}, fmt.Errorf("texture aspect: %w", err)
	}
	aspect := a.texture.EffectiveAspect()

	obj, err := formats.ParseOBJFile(a.cfg.Input)
	if err != nil {
		return Report{}, err
	}
	for _, w := range obj.Warnings {
		logger.Debug("obj statement skipped", zap.String("detail", w))
	}

	store := meshstore.Open(obj, a.cfg.Selection.Groups)
	if len(a.cfg.Selection.Groups) > 0 && store.Selected == 0 {
		logger.Warn("no faces matched selection groups", zap.Strings("groups", a.cfg.Selection.Groups))
	}

	op := a.cfg.Operation(aspect)
	res, err := op.Apply(store.Mesh)
	if err != nil {
		return Report{}, fmt.Errorf("%s projection of %s: %w", op.Name(), a.cfg.Input, err)
	}
	store.Commit()

	out := a.cfg.OutputPath()
	if err := obj.WriteFile(out); err != nil {
		return Report{}, err
	}

	report := Report{
		Input:        a.cfg.Input,
		Output:       out,
		Operation:    op.Name(),
		Aspect:       aspect,
		CreatedUVMap: store.CreatedUVMap,
		Selected:     store.Selected,
		Result:       res,
	}
	logReport(report, time.Since(start))
	return report, nil
}

func logReport(r Report, took time.Duration) {
	fields := []zap.Field{
		zap.String("mode", r.Operation),
		zap.Stringer("scope", r.Result.Scope),
		zap.Int("faces", r.Result.Faces),
		zap.Int("loops", r.Result.Loops),
		zap.Float32("aspect", r.Aspect),
		zap.String("output", r.Output),
		zap.Duration("took", took),
	}
	if r.CreatedUVMap {
		fields = append(fields, zap.Bool("created_uv_map", true))
	}
	switch r.Operation {
	case "box":
		fields = append(fields, zap.Ints("axis_faces", r.Result.AxisFaces[:]))
	case "planar":
		n := r.Result.Normal
		fields = append(fields, zap.Float32s("normal", []float32{n.X, n.Y, n.Z}))
	}
	logger.Info("uv projection done", fields...)
}

// Watch runs once, then re-runs whenever the input mesh or texture image changes,
// until ctx is done. Failed runs are logged and do not stop the loop.
func (a *App) Watch(ctx context.Context) error {
	in, err := filepath.Abs(a.cfg.Input)
	if err != nil {
		return err
	}
	out, err := filepath.Abs(a.cfg.OutputPath())
	if err != nil {
		return err
	}
	if in == out {
		return fmt.Errorf("%w: %s", ErrWatchOverwritesInput, a.cfg.Input)
	}

	w, err := watch.New(time.Duration(a.cfg.Watch.DebounceMs)*time.Millisecond, a.cfg.Input, a.cfg.Texture.Image)
	if err != nil {
		return err
	}
	defer w.Close()

	a.runLogged(ctx)
	logger.Info("watching for changes", zap.String("input", a.cfg.Input), zap.String("image", a.cfg.Texture.Image))

	return w.Run(ctx, func(path string) {
		logger.Debug("re-running projection", zap.String("changed", path))
		a.runLogged(ctx)
	})
}

func (a *App) runLogged(ctx context.Context) {
	if _, err := a.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		logger.Error("projection failed", zap.Error(err))
	}
}
