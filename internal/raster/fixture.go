package raster

import (
	"encoding/json"
	"fmt"

	"github.com/banshee-data/lst.report/internal/fsutil"
)

// FixtureBand is one subdataset in a JSON granule fixture. Name is the part
// after the container path, e.g. "MODIS_Grid_8Day_1km_LST:LST_Day_1km".
type FixtureBand struct {
	Name string    `json:"name"`
	Rows int       `json:"rows"`
	Cols int       `json:"cols"`
	Data []float64 `json:"data"`
}

// Fixture is the on-disk layout of a JSON granule used in dev mode and tests.
type Fixture struct {
	Subdatasets []FixtureBand `json:"subdatasets"`
}

// FixtureOpener opens JSON granule fixtures through a FileSystem.
type FixtureOpener struct {
	FS fsutil.FileSystem
}

// Open parses the fixture at path. Subdataset names are qualified the way
// GDAL names HDF-EOS grid fields: HDF4_EOS:EOS_GRID:"<path>":<name>.
func (o FixtureOpener) Open(path string) (Source, error) {
	data, err := o.FS.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read fixture: %w", err)
	}
	var fx Fixture
	if err := json.Unmarshal(data, &fx); err != nil {
		return nil, fmt.Errorf("failed to parse fixture %s: %w", path, err)
	}

	src := NewMemorySource(path)
	for _, b := range fx.Subdatasets {
		if b.Rows*b.Cols != len(b.Data) {
			return nil, fmt.Errorf("fixture %s band %s: %dx%d needs %d cells, got %d",
				path, b.Name, b.Rows, b.Cols, b.Rows*b.Cols, len(b.Data))
		}
		src.Add(Band{
			Name: QualifiedName(path, b.Name),
			Rows: b.Rows,
			Cols: b.Cols,
			Data: b.Data,
		})
	}
	return src, nil
}

// QualifiedName builds the GDAL HDF-EOS subdataset name for a grid field.
func QualifiedName(path, field string) string {
	return fmt.Sprintf("HDF4_EOS:EOS_GRID:%q:%s", path, field)
}

// WriteFixture stores fx as indented JSON at path.
func WriteFixture(fsys fsutil.FileSystem, path string, fx Fixture) error {
	data, err := json.MarshalIndent(fx, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode fixture: %w", err)
	}
	if err := fsys.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write fixture: %w", err)
	}
	return nil
}
