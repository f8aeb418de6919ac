package setup

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/miralabs/mira/config"
	"github.com/miralabs/mira/logging"
	"github.com/miralabs/mira/media"
	"github.com/miralabs/mira/tui"
	"github.com/miralabs/mira/wizard"
)

// Options wires the setup wizard's collaborators. Store is required;
// Importer is optional (no watcher means no live photo arrivals).
type Options struct {
	Config   *config.Config
	Store    *wizard.Store
	Importer *media.Importer
}

// Thresholds maps the wizard config section onto validator thresholds.
// Unset fields fall back to product defaults inside the validator.
func Thresholds(cfg *config.Config) wizard.Thresholds {
	if cfg == nil {
		return wizard.DefaultThresholds()
	}
	return wizard.Thresholds{
		MinPhotos:  cfg.Wizard.MinPhotos,
		MinIntents: cfg.Wizard.MinIntents,
		MaxIntents: cfg.Wizard.MaxIntents,
		MinBio:     cfg.Wizard.MinBio,
		MaxBio:     cfg.Wizard.MaxBio,
	}
}

// Run hydrates the wizard state, seeds photo candidates from the import
// directory, and runs the wizard TUI until the user quits or completes
// setup. Returns whether setup finished complete.
func Run(ctx context.Context, opts Options) (bool, error) {
	log := logging.NewLogger("mira-setup")

	if err := opts.Store.Hydrate(); err != nil {
		// Corrupt state hydrates empty; the wizard restarts from scratch
		// rather than refusing to run.
		log.WithError(err).Warn("Wizard state could not be hydrated, starting fresh")
	}

	var scanned []string
	var imports <-chan string
	if opts.Importer != nil {
		var err error
		scanned, err = opts.Importer.Scan()
		if err != nil {
			return false, err
		}
		imports, err = opts.Importer.Watch(ctx)
		if err != nil {
			log.WithError(err).Warn("Import watcher unavailable, continuing without it")
			imports = nil
		}
	}

	if len(scanned) > 0 {
		if err := opts.Store.ImportPhase1Data(scanned); err != nil {
			log.WithError(err).Warn("Seeding photo candidates failed")
		}
	}

	// Candidates are the scan results plus anything previously selected,
	// so a resumed session still shows photos whose files have moved on.
	snap := opts.Store.Snapshot()
	imported := mergeCandidates(scanned, snap.SelectedPhotoURLs)

	capacity := 0
	if opts.Config != nil {
		capacity = opts.Config.Wizard.GridCapacity
	}
	if capacity <= 0 {
		capacity = 9
	}

	tui.InitializeTUI()
	keys := NewKeyMap(opts.Config)
	model := newModel(opts.Store, Thresholds(opts.Config), keys, imported, capacity, imports)

	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))
	final, err := p.Run()
	if err != nil {
		return false, err
	}
	if m, ok := final.(Model); ok {
		return m.Done(), nil
	}
	return false, nil
}

func mergeCandidates(lists ...[]string) []string {
	seen := make(map[string]bool)
	var out []string
	for _, list := range lists {
		for _, u := range list {
			if u == "" || seen[u] {
				continue
			}
			seen[u] = true
			out = append(out, u)
		}
	}
	return out
}
