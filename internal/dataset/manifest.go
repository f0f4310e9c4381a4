package dataset

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"

	"pbx-insights-go/internal/logger"
	"pbx-insights-go/internal/types"
)

// LoadManifest reads a batch manifest from the first sheet of an xlsx file.
// Columns are found by header heuristics; relative XML paths resolve
// against the manifest's directory.
func LoadManifest(log *logger.Logger, path string) ([]types.ManifestEntry, error) {
	log = log.Component("dataset.manifest")
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("open file: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("no sheets")
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("read rows: %w", err)
	}
	if len(rows) <= 1 {
		return nil, fmt.Errorf("no data rows")
	}

	header := rows[0]
	idIdx, nameIdx, pathIdx := -1, -1, -1
	for i, h := range header {
		l := strings.ToLower(strings.TrimSpace(h))
		switch {
		case strings.Contains(l, "xml") || strings.Contains(l, "path") || strings.Contains(l, "file"):
			if pathIdx == -1 {
				pathIdx = i
			}
		case strings.Contains(l, "account") && strings.Contains(l, "id") || l == "id" || strings.Contains(l, "code"):
			if idIdx == -1 {
				idIdx = i
			}
		case strings.Contains(l, "name"):
			if nameIdx == -1 {
				nameIdx = i
			}
		}
	}
	// fallback: id, name, path
	if pathIdx == -1 && len(header) > 2 {
		idIdx, nameIdx, pathIdx = 0, 1, 2
	}
	if pathIdx == -1 {
		return nil, fmt.Errorf("no xml path column in %v", header)
	}
	log.WithField("path", path).
		WithField("id_idx", idIdx).
		WithField("name_idx", nameIdx).
		WithField("xml_idx", pathIdx).
		Debug("detected manifest columns")

	base := filepath.Dir(path)
	var out []types.ManifestEntry
	for i, r := range rows {
		if i == 0 {
			continue
		}
		entry := types.ManifestEntry{
			AccountID:   cell(r, idIdx),
			AccountName: cell(r, nameIdx),
			XMLPath:     cell(r, pathIdx),
		}
		// rows without a document are skipped quietly
		if entry.XMLPath == "" {
			continue
		}
		if !filepath.IsAbs(entry.XMLPath) {
			entry.XMLPath = filepath.Join(base, entry.XMLPath)
		}
		if entry.AccountID == "" {
			entry.AccountID = strings.TrimSuffix(filepath.Base(entry.XMLPath), filepath.Ext(entry.XMLPath))
		}
		out = append(out, entry)
	}
	log.WithField("entries", len(out)).Info("manifest loaded")
	return out, nil
}

func cell(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}
