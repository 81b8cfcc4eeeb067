package raster

import (
	"sort"
	"strconv"
	"strings"
)

// subdatasetNames orders the SUBDATASET_<n>_NAME entries of a GDAL
// SUBDATASETS metadata domain by n. Descriptions and malformed keys are skipped.
func subdatasetNames(md map[string]string) []string {
	type entry struct {
		idx  int
		name string
	}
	var entries []entry
	for k, v := range md {
		if !strings.HasPrefix(k, "SUBDATASET_") || !strings.HasSuffix(k, "_NAME") {
			continue
		}
		n, err := strconv.Atoi(strings.TrimSuffix(strings.TrimPrefix(k, "SUBDATASET_"), "_NAME"))
		if err != nil {
			continue
		}
		entries = append(entries, entry{n, v})
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].idx < entries[j].idx })
	names := make([]string, len(entries))
	for i, e := range entries {
		names[i] = e.name
	}
	return names
}
