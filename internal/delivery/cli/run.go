package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/huc-prioritizer/internal/domain"
	"github.com/huc-prioritizer/internal/pkg/errors"
	"github.com/huc-prioritizer/internal/prioritizer"
	"github.com/huc-prioritizer/internal/usecase"
	"github.com/huc-prioritizer/internal/usecase/dto"
)

type runOptions struct {
	policy   string
	mode     string
	regions  []string
	basins   []string
	geometry string
	weights  map[string]string
	top      string
	all      bool
	asJSON   bool
	export   string
}

func newRunCommand(a *app) *cobra.Command {
	opts := &runOptions{}

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Score and rank HUC-12 units inside an area of interest",
		Example: `  prioritize run --mode basin --basin Neuse --weight carbon=2 --weight biodiversity=1
  prioritize run --mode region --region Wake --region Durham --top 10 --export top.xlsx
  prioritize run --mode geometry --geometry drawn.geojson --policy include`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runScenario(cmd.Context(), a, opts)
		},
	}

	f := cmd.Flags()
	f.StringVar(&opts.policy, "policy", "exclude", "protected lands: exclude|include")
	f.StringVar(&opts.mode, "mode", "", "area of interest: entire_domain|region|basin|geometry")
	f.StringArrayVar(&opts.regions, "region", nil, "region name (repeatable)")
	f.StringArrayVar(&opts.basins, "basin", nil, "basin name (repeatable)")
	f.StringVar(&opts.geometry, "geometry", "", "GeoJSON file with the drawn area")
	f.StringToStringVar(&opts.weights, "weight", nil, "criterion weight key=value (repeatable); omitted means carbon=1")
	f.StringVar(&opts.top, "top", "", "number of top units to show")
	f.BoolVar(&opts.all, "all", false, "print every ranked unit, not only the top")
	f.BoolVar(&opts.asJSON, "json", false, "print the result as JSON")
	f.StringVar(&opts.export, "export", "", "write attributes of all ranked units to a .csv or .xlsx file")
	_ = cmd.MarkFlagRequired("mode")
	_ = cmd.MarkFlagFilename("geometry", "geojson", "json")

	return cmd
}

func runScenario(ctx context.Context, a *app, opts *runOptions) error {
	req, err := opts.request()
	if err != nil {
		return err
	}

	src, err := a.openSource()
	if err != nil {
		return err
	}
	defer src.Close()

	p := a.cfg.Prioritization
	scenarioUC := usecase.NewScenarioUseCase(
		src.Indicators,
		src.Boundaries,
		nil,
		nil,
		prioritizer.NewEngine(),
		nil,
		a.logger,
		usecase.ScenarioConfig{
			Jurisdiction: a.cfg.Dataset.Jurisdiction,
			Bounds:       domain.WeightBounds{Min: p.WeightMin, Max: p.WeightMax},
			Ceilings:     domain.Ceilings{Regions: p.RegionCeiling, Basins: p.BasinCeiling},
			DefaultLimit: p.DefaultLimit,
		},
	)

	result, err := scenarioUC.EvaluateRequest(ctx, req)
	if err != nil {
		return err
	}

	if opts.export != "" {
		if err := exportResult(a, result, opts.export); err != nil {
			return err
		}
	}

	if opts.asJSON {
		enc := json.NewEncoder(a.out)
		enc.SetIndent("", "  ")
		return enc.Encode(result)
	}

	printResult(a, result, opts.all)
	return nil
}

// request переводит флаги в тот же запрос, что принимает POST /api/v1/scenarios/evaluate
func (o *runOptions) request() (dto.EvaluateRequest, error) {
	req := dto.EvaluateRequest{
		Policy:  o.policy,
		Mode:    o.mode,
		Regions: o.regions,
		Basins:  o.basins,
		Limit:   dto.LimitText(o.top),
	}

	if o.geometry != "" {
		data, err := os.ReadFile(o.geometry)
		if err != nil {
			return req, fmt.Errorf("read geometry: %w", err)
		}
		req.Geometry = data
	}

	if o.weights != nil {
		weights, err := parseWeightFlags(o.weights)
		if err != nil {
			return req, err
		}
		req.Weights = weights
	}
	return req, nil
}

func parseWeightFlags(raw map[string]string) (map[string]float64, error) {
	out := make(map[string]float64, len(raw))
	for k, v := range raw {
		f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil {
			return nil, errors.ErrInvalidWeight.WithDetails(map[string]interface{}{
				"criterion": k,
				"value":     v,
			})
		}
		out[strings.TrimSpace(k)] = f
	}
	return out, nil
}

func exportResult(a *app, result *domain.ScenarioResult, path string) error {
	format := strings.TrimPrefix(strings.ToLower(filepath.Ext(path)), ".")
	exp, err := usecase.NewExportUseCase(nil, a.logger).Export(result, format)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, exp.Data, 0o644); err != nil {
		return fmt.Errorf("write export: %w", err)
	}
	fmt.Fprintf(a.out, "%s %d units to %s\n", color.GreenString("exported"), len(result.Ranked), path)
	return nil
}

func printResult(a *app, result *domain.ScenarioResult, all bool) {
	if result.IsEmpty() {
		fmt.Fprintln(a.out, color.YellowString("No HUC-12 units fall inside the selected area."))
		return
	}

	fmt.Fprintf(a.out, "%s %s, %s %s, %d units\n",
		color.CyanString("variant:"), result.Variant,
		color.CyanString("mode:"), result.Mode,
		result.UnitCount)
	fmt.Fprintf(a.out, "%s %s\n\n", color.CyanString("weights:"), formatWeights(result.Weights))

	rows := result.Top
	if all {
		rows = result.Ranked
	}

	table := tablewriter.NewWriter(a.out)
	table.Header("Rank", "HUC12", "Name", "Basin", "Score")
	for i, u := range rows {
		score := strconv.FormatFloat(u.Weight, 'f', 4, 64)
		if i < len(result.Top) {
			score = color.GreenString(score)
		}
		_ = table.Append([]string{strconv.Itoa(i + 1), u.ID, u.Name, u.Basin, score})
	}
	_ = table.Render()

	fmt.Fprintln(a.out)
	printRange(a, "top range:", result.TopRange)
	printRange(a, "full range:", result.FullRange)
}

func printRange(a *app, label string, r *domain.ScoreRange) {
	if r == nil {
		return
	}
	fmt.Fprintf(a.out, "%s %.4f .. %.4f\n", color.CyanString(label), r.Min, r.Max)
}

// formatWeights печатает только ненулевые веса в порядке таблицы критериев
func formatWeights(w domain.Weights) string {
	parts := make([]string, 0, len(w))
	for _, c := range domain.Criteria() {
		if v := w[c.Key]; v != 0 {
			parts = append(parts, fmt.Sprintf("%s=%g", c.Key, v))
		}
	}
	if len(parts) == 0 {
		return "none"
	}
	return strings.Join(parts, " ")
}
