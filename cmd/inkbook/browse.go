package main

import (
	"context"
	"fmt"
	"os"
	"slices"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/glabrego/inkbook/internal/catalog"
	"github.com/glabrego/inkbook/internal/gallery"
	"github.com/glabrego/inkbook/internal/storage"
	"github.com/glabrego/inkbook/internal/tui"
)

func newBrowseCmd(env *appEnv) *cobra.Command {
	var pageSize int
	var imageRoot string
	var noWatch bool

	cmd := &cobra.Command{
		Use:   "browse",
		Short: "Browse the gallery in the terminal",
		Long: `Open the gallery browser. The catalog is reloaded into the cache on start
and again whenever the catalog file changes, unless --no-watch is set.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := context.WithCancel(cmd.Context())
			defer cancel()

			initCtx, initCancel := context.WithTimeout(ctx, 15*time.Second)
			defer initCancel()
			service, closeService, err := openService(initCtx, env)
			if err != nil {
				return err
			}
			defer closeService()

			loadStart := time.Now()
			images, err := service.Reload(initCtx)
			if err != nil {
				env.logger.Warn("catalog load failed, using cache", zap.String("path", env.cfg.CatalogPath), zap.Error(err))
				fmt.Fprintf(os.Stderr, "warning: could not load catalog (%v), showing cached gallery\n", err)
				images, err = service.ListCached(initCtx)
				if err != nil {
					return fmt.Errorf("cannot load cached images: %w", err)
				}
			}
			env.logger.Info("gallery loaded", zap.Int("images", len(images)), zap.Duration("duration", time.Since(loadStart)))

			prefs, err := service.LoadPreferences(initCtx)
			if err != nil {
				env.logger.Warn("could not load preferences, using defaults", zap.Error(err))
				prefs = storage.Preferences{LastStyle: gallery.AllStyles}
			}

			opts := tui.Options{
				PageSize:  resolvePageSize(pageSize, prefs.PageSize, env.cfg.PageSize),
				Initial:   initialState(images, prefs),
				SiteURL:   env.cfg.Site.URL,
				ImageRoot: imageRoot,
				Logger:    env.logger,
			}

			group, groupCtx := errgroup.WithContext(ctx)
			if !noWatch {
				watcher, err := catalog.NewWatcher(env.cfg.CatalogPath, env.logger)
				if err != nil {
					env.logger.Warn("catalog watcher disabled", zap.Error(err))
				} else {
					group.Go(func() error {
						return watcher.Run(groupCtx)
					})
					opts.Changes = watcher.Changes()
				}
			}

			program := tea.NewProgram(tui.NewModel(service, images, opts), tea.WithAltScreen(), tea.WithContext(groupCtx))
			group.Go(func() error {
				defer cancel()
				if _, err := program.Run(); err != nil {
					return fmt.Errorf("tui error: %w", err)
				}
				return nil
			})
			return group.Wait()
		},
	}
	cmd.Flags().IntVar(&pageSize, "page-size", 0, "Images revealed per page (overrides saved preference)")
	cmd.Flags().StringVar(&imageRoot, "image-root", "", "Local directory image sources are resolved against for previews")
	cmd.Flags().BoolVar(&noWatch, "no-watch", false, "Do not reload when the catalog file changes")
	return cmd
}

// resolvePageSize picks the first positive value of flag, saved preference
// and configuration.
func resolvePageSize(flag, saved, configured int) int {
	for _, size := range []int{flag, saved, configured} {
		if size > 0 {
			return size
		}
	}
	return gallery.DefaultPageSize
}

// initialState restores the last filters, dropping a saved style the catalog
// no longer offers.
func initialState(images []gallery.Image, prefs storage.Preferences) gallery.State {
	state := gallery.NewState()
	state = gallery.Reduce(state, gallery.SetSearch{Text: prefs.LastSearch})
	if slices.Contains(gallery.StyleOptions(images), prefs.LastStyle) {
		state = gallery.Reduce(state, gallery.SetFilter{Dimension: gallery.DimensionStyle, Value: prefs.LastStyle})
	}
	return state
}
