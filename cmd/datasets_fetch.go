package main

import (
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/drew-cmd/USA-Transportation-Project-Basic-Corridor-Identification-and-Mapping/internal/dataset"
	"github.com/drew-cmd/USA-Transportation-Project-Basic-Corridor-Identification-and-Mapping/internal/fetcher"
)

var datasetsFetchCmd = &cobra.Command{
	Use:   "fetch",
	Short: "Download fetchable datasets",
	Long: `Downloads and unpacks the dataset archives that have a known URL
(the TIGER CBSA and state layers). Datasets exported interactively from
the BTS portal are reported with a hint instead.

Examples:
  corridors datasets fetch
  corridors datasets fetch --only cbsa --force`,
	RunE: runDatasetsFetch,
}

func init() {
	f := datasetsFetchCmd.Flags()
	f.String("only", "", "comma-separated dataset keys to fetch")
	f.Bool("force", false, "re-download datasets that are already present")
	f.Int("concurrency", 2, "parallel downloads")

	datasetsCmd.AddCommand(datasetsFetchCmd)
}

func runDatasetsFetch(cmd *cobra.Command, _ []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := cfg.Validate("fetch"); err != nil {
		return err
	}

	only, _ := cmd.Flags().GetString("only")
	force, _ := cmd.Flags().GetBool("force")
	concurrency, _ := cmd.Flags().GetInt("concurrency")

	wanted := make(map[string]bool)
	for _, k := range strings.Split(only, ",") {
		if k = strings.TrimSpace(k); k != "" {
			wanted[k] = true
		}
	}

	fetch, present, manual := fetchPlan(dataset.Catalog(cfg.Data), wanted, force)

	for _, d := range manual {
		zap.L().Warn("datasets fetch: manual dataset missing",
			zap.String("dataset", d.Key),
			zap.String("hint", d.Note),
		)
	}

	if len(fetch) == 0 {
		fmt.Printf("Nothing to fetch: %d present, %d manual datasets missing.\n", len(present), len(manual))
		return nil
	}

	if err := os.MkdirAll(cfg.Data.Dir, 0o755); err != nil {
		return eris.Wrapf(err, "datasets fetch: create data dir %s", cfg.Data.Dir)
	}

	client := fetcher.New(fetcher.Options{})

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)

	for _, d := range fetch {
		g.Go(func() error {
			log := zap.L().With(zap.String("dataset", d.Key))
			log.Info("datasets fetch: downloading", zap.String("url", d.URL))

			files, err := client.FetchArchive(gctx, d.URL, filepath.Dir(d.Path))
			if err != nil {
				return eris.Wrapf(err, "datasets fetch: %s", d.Key)
			}

			log.Info("datasets fetch: unpacked", zap.Int("files", len(files)))
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	fmt.Printf("Fetched %d datasets (%d already present, %d manual missing).\n",
		len(fetch), len(present), len(manual))
	return nil
}

// fetchPlan splits the catalog into what to download, what is already
// on disk, and what has to be exported by hand. Disabled datasets
// (empty path) are dropped.
func fetchPlan(catalog []dataset.Descriptor, wanted map[string]bool, force bool) (fetch, present, manual []dataset.Descriptor) {
	for _, d := range catalog {
		if len(wanted) > 0 && !wanted[d.Key] {
			continue
		}
		if d.Path == "" {
			continue
		}

		has, _ := d.Status()
		switch {
		case d.URL == "":
			if !has {
				manual = append(manual, d)
			}
		case has && !force:
			present = append(present, d)
		default:
			fetch = append(fetch, d)
		}
	}
	return fetch, present, manual
}
