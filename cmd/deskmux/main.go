package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/nicobailon/deskmux/internal/appscan"
	"github.com/nicobailon/deskmux/internal/config"
	"github.com/nicobailon/deskmux/internal/executor"
	"github.com/nicobailon/deskmux/internal/favorites"
	"github.com/nicobailon/deskmux/internal/loader"
	"github.com/nicobailon/deskmux/internal/logger"
	"github.com/nicobailon/deskmux/internal/model"
	"github.com/nicobailon/deskmux/internal/recent"
	"github.com/nicobailon/deskmux/internal/shell"
	"github.com/nicobailon/deskmux/internal/tui"
	"github.com/nicobailon/deskmux/pkg/version"
)

var (
	dbFlag      string
	restorePage int
	pinMissing  bool
	verboseFlag bool
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "deskmux",
	Short: "A paged home screen for the terminal",
	RunE:  runRoot,
}

func init() {
	rootCmd.Version = version.Version
	rootCmd.PersistentFlags().StringVar(&dbFlag, "db", "", "Path to the favorites database")
	rootCmd.PersistentFlags().BoolVarP(&verboseFlag, "verbose", "v", false, "Verbose logging to stderr")
	rootCmd.Flags().IntVar(&restorePage, "restore-page", loader.InvalidPage, "Workspace page to show first")
	rootCmd.Flags().BoolVar(&pinMissing, "pin-missing", false, "Place apps with no workspace shortcut into free cells")

	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(seedCmd)
}

func loadServices() (*config.Config, *favorites.Store, error) {
	logger.SetVerbose(verboseFlag)
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, err
	}

	dbPath := dbFlag
	if dbPath == "" {
		dbPath = cfg.DBPath
	}
	if dbPath == "" {
		dbPath = config.DefaultDBPath()
	}
	store, err := favorites.Open(dbPath)
	if err != nil {
		return nil, nil, err
	}
	return cfg, store, nil
}

func runRoot(cmd *cobra.Command, args []string) error {
	cfg, store, err := loadServices()
	if err != nil {
		return err
	}
	defer store.Close()

	scanner := appscan.New(cfg.SearchPaths)
	if err := store.Seed(mustScan(scanner), cfg.DockSlots); err != nil {
		return fmt.Errorf("seeding first-run layout: %w", err)
	}

	ui := executor.NewQueue()
	defer ui.Close()
	data := model.NewDataModel()
	appsList := model.NewAllAppsList()
	ref := loader.NewRef()

	runLoader := func(page int) {
		task := &loader.Task{
			Source:   store,
			Apps:     scanner,
			Model:    data,
			AppsList: appsList,
			Results: loader.NewResults(ui, data, appsList, ref, loader.Config{
				Cols:            cfg.GridCols,
				Rows:            cfg.GridRows,
				StrictSort:      cfg.StrictSort,
				PageToBindFirst: page,
			}),
		}
		if err := task.Run(); err != nil {
			logger.Warn("loader: %v", err)
			return
		}
		if pinMissing {
			if added := task.Results.BindAllAppsToScreen(); len(added) > 0 {
				// The write fires the watcher, which rebinds the full
				// layout from disk with the pins in place.
				if err := store.AddItems(added); err != nil {
					logger.Warn("loader: persist pinned apps: %v", err)
				}
			}
		}
	}

	recentStore, err := recent.Load()
	if err != nil {
		logger.Warn("recent: %v", err)
		recentStore = &recent.Store{}
	}

	consumer := tui.NewConsumer(nil)
	app := tui.New(tui.Deps{
		Cfg:         cfg,
		Commander:   &shell.ExecCommander{},
		RecentStore: recentStore,
		Consumer:    consumer,
		Reload:      func() { go runLoader(loader.InvalidPage) },
	})
	p := app.NewProgram()
	consumer.Bind(p.Send)
	ref.Set(consumer)
	defer ref.Clear()

	watcher, err := favorites.NewWatcher(store.Path(), func() { go runLoader(loader.InvalidPage) })
	if err != nil {
		logger.Warn("favorites: watch disabled: %v", err)
	} else {
		defer watcher.Close()
	}

	go runLoader(restorePage)
	return app.Run(p)
}

func mustScan(s *appscan.Scanner) []model.AppInfo {
	apps, err := s.Scan()
	if err != nil {
		logger.Warn("appscan: %v", err)
		return nil
	}
	return apps
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "Print the workspace layout",
	RunE: func(cmd *cobra.Command, args []string) error {
		_, store, err := loadServices()
		if err != nil {
			return err
		}
		defer store.Close()

		items, widgets, screens, err := store.LoadWorkspace()
		if err != nil {
			return err
		}

		fmt.Println()
		for page, screenID := range screens {
			fmt.Printf("Screen %d (page %d)\n", screenID, page)
			for _, it := range items {
				if it.OnDesktop() && it.ScreenID == screenID {
					fmt.Printf("  (%d,%d) %-10s %s\n", it.CellX, it.CellY, it.Kind, it.Title)
				}
			}
			for _, w := range widgets {
				if w.ScreenID == screenID {
					fmt.Printf("  (%d,%d) %-10s %s [%dx%d]\n", w.CellX, w.CellY, w.Kind, w.Provider, w.SpanX, w.SpanY)
				}
			}
		}
		fmt.Println()
		fmt.Println("Dock")
		for _, it := range items {
			if it.InHotseat() {
				fmt.Printf("  slot %d: %s\n", it.ScreenID, it.Title)
			}
		}
		fmt.Println()
		return nil
	},
}

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Write a starter layout into an empty database",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, store, err := loadServices()
		if err != nil {
			return err
		}
		defer store.Close()

		empty, err := store.Empty()
		if err != nil {
			return err
		}
		if !empty {
			return fmt.Errorf("database already has a layout")
		}

		apps := mustScan(appscan.New(cfg.SearchPaths))
		if err := store.Seed(apps, cfg.DockSlots); err != nil {
			return err
		}
		fmt.Printf("Seeded layout with %d docked apps\n", min(len(apps), cfg.DockSlots))
		return nil
	},
}
