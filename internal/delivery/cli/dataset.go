package cli

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/huc-prioritizer/internal/domain"
	"github.com/huc-prioritizer/internal/prioritizer"
	"github.com/huc-prioritizer/internal/repository/dataset"
	"github.com/huc-prioritizer/internal/repository/sqlite"
)

func newMigrateCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create indicator and boundary tables in the SQLite dataset",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			db, err := a.migrated(cmd.Context())
			if err != nil {
				return err
			}
			defer db.Close()

			fmt.Fprintf(a.out, "%s %s\n", color.GreenString("migrated"), a.cfg.Dataset.SQLitePath)
			return nil
		},
	}
}

func newImportCommand(a *app) *cobra.Command {
	var policy string

	cmd := &cobra.Command{
		Use:   "import",
		Short: "Load GeoJSON feature collections into the SQLite dataset",
	}

	unitsCmd := &cobra.Command{
		Use:   "units <file.geojson>",
		Short: "Import HUC-12 indicator features into the table of one policy variant",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := domain.ParsePolicy(policy)
			if err != nil {
				return err
			}
			variant, err := prioritizer.ResolveVariant(p)
			if err != nil {
				return err
			}

			data, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}
			units, err := dataset.UnitsFromGeoJSON(data)
			if err != nil {
				return err
			}

			db, err := a.migrated(cmd.Context())
			if err != nil {
				return err
			}
			defer db.Close()

			table, err := a.tables().For(variant)
			if err != nil {
				return err
			}
			if err := db.InsertUnits(cmd.Context(), table, units); err != nil {
				return err
			}

			a.logger.Info("Units imported", zap.String("table", table), zap.Int("count", len(units)))
			fmt.Fprintf(a.out, "%s %d units into %s\n", color.GreenString("imported"), len(units), table)
			return nil
		},
	}
	unitsCmd.Flags().StringVar(&policy, "policy", "exclude", "protected-lands variant: exclude|include")

	boundariesCmd := &cobra.Command{
		Use:   "boundaries <file.geojson>",
		Short: "Import administrative boundaries (NAME, STATEFP)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}
			boundaries, err := dataset.BoundariesFromGeoJSON(data)
			if err != nil {
				return err
			}

			db, err := a.migrated(cmd.Context())
			if err != nil {
				return err
			}
			defer db.Close()

			table := a.cfg.Dataset.BoundaryTable
			if err := db.InsertBoundaries(cmd.Context(), table, boundaries); err != nil {
				return err
			}

			fmt.Fprintf(a.out, "%s %d boundaries into %s\n", color.GreenString("imported"), len(boundaries), table)
			return nil
		},
	}

	cmd.AddCommand(unitsCmd, boundariesCmd)
	return cmd
}

func newNamesCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:       "names <regions|basins>",
		Short:     "List selectable region or basin names",
		Args:      cobra.ExactArgs(1),
		ValidArgs: []string{"regions", "basins"},
		RunE: func(cmd *cobra.Command, args []string) error {
			src, err := a.openSource()
			if err != nil {
				return err
			}
			defer src.Close()

			var names []string
			switch strings.ToLower(args[0]) {
			case "regions":
				names, err = src.Boundaries.ListNames(cmd.Context(), a.cfg.Dataset.Jurisdiction)
			case "basins":
				names, err = src.Indicators.ListBasinNames(cmd.Context())
			default:
				return fmt.Errorf("unknown list %q, expected regions or basins", args[0])
			}
			if err != nil {
				return err
			}

			for _, n := range dataset.DedupeNames(names) {
				fmt.Fprintln(a.out, n)
			}
			return nil
		},
	}
}

// migrated открывает файл набора и создаёт недостающие таблицы
func (a *app) migrated(ctx context.Context) (*sqlite.DB, error) {
	db, err := sqlite.Open(a.cfg.Dataset.SQLitePath, a.logger)
	if err != nil {
		return nil, err
	}
	if err := db.Migrate(ctx, a.tables(), a.cfg.Dataset.BoundaryTable); err != nil {
		db.Close()
		return nil, err
	}
	return db, nil
}
