package cli

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/huc-prioritizer/internal/domain"
	"github.com/huc-prioritizer/internal/pkg/errors"
)

// unitFeature - квадрат 0.5x0.5 градуса; все индикаторы 0.5, кроме углерода
func unitFeature(id, basin string, carbon, lon, lat float64) string {
	props := map[string]interface{}{
		"HUC12":     id,
		"NAME":      "Unit " + id,
		"DWQ_Basin": basin,
		"ACRES":     1000,
		"CARB":      carbon * 100,
	}
	for _, c := range domain.Criteria() {
		props[c.Field] = 0.5
	}
	props["P_CARB"] = carbon
	p, _ := json.Marshal(props)
	return fmt.Sprintf(`{"type":"Feature","properties":%s,"geometry":%s}`, p, square(lon, lat, 0.5))
}

func square(lon, lat, size float64) string {
	return fmt.Sprintf(`{"type":"Polygon","coordinates":[[[%[1]g,%[2]g],[%[3]g,%[2]g],[%[3]g,%[4]g],[%[1]g,%[4]g],[%[1]g,%[2]g]]]}`,
		lon, lat, lon+size, lat+size)
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

// execute запускает дерево команд в изолированном каталоге
func execute(t *testing.T, db string, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := NewRootCommand(&out)
	cmd.SetArgs(append([]string{"--dataset", db, "--no-color", "--log-level", "error"}, args...))
	err := cmd.Execute()
	return out.String(), err
}

// seeded - набор из трёх единиц и одного округа
func seeded(t *testing.T) (dir, db string) {
	chdir(t, t.TempDir())
	dir = t.TempDir()
	db = filepath.Join(dir, "huc12.db")

	units := writeFile(t, dir, "units.geojson", `{"type":"FeatureCollection","features":[`+
		strings.Join([]string{
			unitFeature("030201010101", "Neuse", 0.2, -79, 35),
			unitFeature("030201010102", "Neuse", 0.9, -78, 35),
			unitFeature("030201010103", "Tar-Pamlico", 0.5, -77, 35),
		}, ",")+`]}`)
	boundaries := writeFile(t, dir, "boundaries.geojson", `{"type":"FeatureCollection","features":[
		{"type":"Feature","properties":{"NAME":"Pitt","STATEFP":"37"},"geometry":`+square(-76.9, 35.1, 0.2)+`},
		{"type":"Feature","properties":{"NAME":"Elsewhere","STATEFP":"51"},"geometry":`+square(-79, 35, 3)+`}
	]}`)

	_, err := execute(t, db, "migrate")
	require.NoError(t, err)
	out, err := execute(t, db, "import", "units", units)
	require.NoError(t, err)
	assert.Contains(t, out, "imported 3 units into huc12_scores_protected_excluded")
	_, err = execute(t, db, "import", "boundaries", boundaries)
	require.NoError(t, err)
	return dir, db
}

func TestNames(t *testing.T) {
	_, db := seeded(t)

	out, err := execute(t, db, "names", "basins")
	require.NoError(t, err)
	assert.Equal(t, "Neuse\nTar-Pamlico\n", out)

	out, err = execute(t, db, "names", "regions")
	require.NoError(t, err)
	assert.Equal(t, "Pitt\n", out)

	_, err = execute(t, db, "names", "states")
	assert.Error(t, err)
}

func TestRun_EntireDomainJSON(t *testing.T) {
	_, db := seeded(t)

	out, err := execute(t, db, "run", "--mode", "entire_domain", "--top", "2", "--json")
	require.NoError(t, err)

	var result domain.ScenarioResult
	require.NoError(t, json.Unmarshal([]byte(out), &result))
	assert.Equal(t, domain.VariantProtectedExcluded, result.Variant)
	assert.Equal(t, 3, result.UnitCount)
	require.Len(t, result.Top, 2)
	assert.Equal(t, "030201010102", result.Top[0].ID)
	assert.Equal(t, "030201010103", result.Top[1].ID)
	assert.InDelta(t, 0.2, result.FullRange.Min, 1e-9)
	assert.InDelta(t, 0.9, result.FullRange.Max, 1e-9)
}

func TestRun_BasinTableAndExport(t *testing.T) {
	dir, db := seeded(t)
	exportPath := filepath.Join(dir, "neuse.csv")

	out, err := execute(t, db, "run", "--mode", "basin", "--basin", "Neuse",
		"--weight", "carbon=2", "--export", exportPath)
	require.NoError(t, err)

	assert.Contains(t, out, "weights: carbon=2")
	assert.Contains(t, out, "030201010102")
	assert.NotContains(t, out, "030201010103")
	assert.Contains(t, out, "exported 2 units")

	data, err := os.ReadFile(exportPath)
	require.NoError(t, err)
	assert.Equal(t, 3, strings.Count(string(data), "\n"))
}

func TestRun_Region(t *testing.T) {
	_, db := seeded(t)

	out, err := execute(t, db, "run", "--mode", "region", "--region", "Pitt", "--json")
	require.NoError(t, err)

	var result domain.ScenarioResult
	require.NoError(t, json.Unmarshal([]byte(out), &result))
	require.Len(t, result.Ranked, 1)
	assert.Equal(t, "030201010103", result.Ranked[0].ID)
}

func TestRun_Errors(t *testing.T) {
	_, db := seeded(t)

	_, err := execute(t, db, "run", "--mode", "upstream")
	assert.ErrorIs(t, err, errors.ErrInvalidAOIMode)

	_, err = execute(t, db, "run", "--mode", "basin", "--policy", "maybe")
	assert.ErrorIs(t, err, errors.ErrInvalidPolicy)

	_, err = execute(t, db, "run", "--mode", "entire_domain", "--weight", "rainfall=1")
	assert.ErrorIs(t, err, errors.ErrUnknownCriterion)

	_, err = execute(t, db, "run", "--mode", "entire_domain", "--weight", "carbon=lots")
	assert.ErrorIs(t, err, errors.ErrInvalidWeight)

	_, err = execute(t, db, "run", "--mode", "entire_domain", "--export", "out.pdf")
	assert.ErrorIs(t, err, errors.ErrInvalidExportFormat)
}

func TestRun_EmptyArea(t *testing.T) {
	_, db := seeded(t)

	out, err := execute(t, db, "run", "--mode", "basin")
	require.NoError(t, err)
	assert.Contains(t, out, "No HUC-12 units fall inside the selected area.")
}

// chdir changes the working directory for the duration of the test.
func chdir(t *testing.T, dir string) {
	t.Helper()
	wd, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() {
		if err := os.Chdir(wd); err != nil {
			t.Fatal(err)
		}
	})
}
