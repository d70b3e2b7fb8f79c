package commands

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/nhle/mediashelf/internal/app"
	"github.com/nhle/mediashelf/internal/shake"
	"github.com/nhle/mediashelf/internal/theme"
	"github.com/nhle/mediashelf/internal/viewstate"
)

type uiOptions struct {
	Sensor string
}

func addUIArgs(cmd *cobra.Command, o *uiOptions) {
	cmd.Flags().StringVar(&o.Sensor, "sensor", "",
		`Read accelerometer samples ("x y z" per line) from this file or FIFO; a shake picks at random.`)
}

func runUI(ctx context.Context, ro *RootOptions, uo *uiOptions) error {
	if ctx == nil {
		ctx = context.Background()
	}

	e, err := openEnv(ro, logFile)
	if err != nil {
		return err
	}
	defer e.Close()

	theme.Apply(e.cfg.Display.Theme)

	opts := []viewstate.Option{
		viewstate.WithLogger(e.log),
		viewstate.WithDebounce(e.cfg.Random.Debounce()),
	}
	c := app.Containers{
		Home:   viewstate.NewHome(e.svc, opts...),
		Browse: viewstate.NewBrowse(e.svc, opts...),
		Tags:   viewstate.NewTags(e.svc, opts...),
		Lists:  viewstate.NewLists(e.svc, opts...),
	}
	defer func() {
		c.Home.Close()
		c.Browse.Close()
		c.Tags.Close()
		c.Lists.Close()
	}()

	m := app.New(c)
	defer m.Stop()

	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx))

	if uo.Sensor != "" {
		stop, err := startSensor(ctx, uo.Sensor, e.cfg.Shake.Threshold, p, e.log)
		if err != nil {
			return err
		}
		defer stop()
	}

	e.log.Info("starting ui", "database", e.cfg.Database.Path)
	if _, err := p.Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		return fmt.Errorf("running ui: %w", err)
	}
	return nil
}

// startSensor feeds samples from path into a shake detector that asks the
// program for a random pick on every shake. The returned func stops it.
func startSensor(ctx context.Context, path string, threshold float64, p *tea.Program, log *slog.Logger) (func(), error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening sensor %s: %w", path, err)
	}

	d := shake.New(func() {
		log.Debug("shake detected")
		p.Send(app.ShakeMsg{})
	}, shake.WithThreshold(threshold))

	ctx, cancel := context.WithCancel(ctx)
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		if err := shake.Feed(ctx, f, d, time.Now); err != nil && !errors.Is(err, context.Canceled) {
			log.Warn("sensor feed stopped", "path", path, "error", err)
		}
	}()

	return func() {
		cancel()
		_ = f.Close()
		wg.Wait()
	}, nil
}
