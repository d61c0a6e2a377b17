// Package mapping holds the cluster mapping table built once per run from
// the mapping CSV. The table is immutable after Load and safe for
// concurrent lookups.
package mapping

import (
	"encoding/csv"
	"fmt"
	"os"
	"regexp"
	"strings"

	"ran-insights-go/internal/logger"
)

// Tower identifiers are embedded in 4G element names between # markers,
// e.g. "ME#TOWER01#SECTOR2".
var towerPattern = regexp.MustCompile(`#([^#]+)#`)

// Table resolves measurement rows to clusters. All keys are stored
// lowercase and trimmed; lookups are case-insensitive.
type Table struct {
	towerToCluster map[string]string
	siteToCluster  map[string]string
	siteToTower    map[string]string
	cellToTx       map[string]string
	cellToCluster  map[string]string
	cellToTower    map[string]string
}

// Load reads the mapping CSV. Expected columns: cluster (0), tower id (1),
// site name (2), and optionally LTE cell name (3) and TX config (4).
// The first row is treated as a header and skipped.
func Load(path string) (*Table, error) {
	log := logger.New().WithField("component", "mapping").WithField("path", path)

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open mapping file: %w", err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1
	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read mapping file: %w", err)
	}

	t := &Table{
		towerToCluster: make(map[string]string),
		siteToCluster:  make(map[string]string),
		siteToTower:    make(map[string]string),
		cellToTx:       make(map[string]string),
		cellToCluster:  make(map[string]string),
		cellToTower:    make(map[string]string),
	}

	for i, row := range rows {
		if i == 0 {
			continue // header
		}
		if len(row) < 3 {
			continue
		}
		cluster := clean(row[0])
		towerID := clean(row[1])
		siteName := clean(row[2])
		if cluster == "" {
			continue
		}
		if towerID != "" {
			t.towerToCluster[strings.ToLower(towerID)] = cluster
		}
		if siteName != "" {
			t.siteToCluster[strings.ToLower(siteName)] = cluster
			if towerID != "" {
				t.siteToTower[strings.ToLower(siteName)] = towerID
			}
		}
		if len(row) >= 4 {
			cellName := clean(row[3])
			if cellName != "" {
				key := strings.ToLower(cellName)
				t.cellToCluster[key] = cluster
				if towerID != "" {
					t.cellToTower[key] = towerID
				}
				if len(row) >= 5 {
					if tx := strings.ToUpper(clean(row[4])); tx != "" {
						t.cellToTx[key] = tx
					}
				}
			}
		}
	}

	if len(t.towerToCluster) == 0 && len(t.siteToCluster) == 0 {
		return nil, fmt.Errorf("mapping file %s contains no usable rows", path)
	}

	log.WithField("towers", len(t.towerToCluster)).
		WithField("sites", len(t.siteToCluster)).
		WithField("tx_cells", len(t.cellToTx)).
		Info("cluster mapping loaded")
	return t, nil
}

// ExtractTowerID returns the first #...# delimited token of an element
// name, or "" when none is present.
func ExtractTowerID(elementName string) string {
	m := towerPattern.FindStringSubmatch(elementName)
	if m == nil {
		return ""
	}
	return strings.TrimSpace(m[1])
}

// ResolveTower maps a 4G element name to a cluster via its embedded tower
// identifier. Strict: no token or an unmapped token both fail.
func (t *Table) ResolveTower(elementName string) (string, bool) {
	towerID := ExtractTowerID(elementName)
	if towerID == "" {
		return "", false
	}
	cluster, ok := t.towerToCluster[strings.ToLower(towerID)]
	return cluster, ok
}

// ResolveSite maps a raw 2G site name to a cluster.
func (t *Table) ResolveSite(siteName string) (string, bool) {
	cluster, ok := t.siteToCluster[strings.ToLower(strings.TrimSpace(siteName))]
	return cluster, ok
}

// TowerID returns the tower identifier recorded for a site name.
func (t *Table) TowerID(siteName string) (string, bool) {
	id, ok := t.siteToTower[strings.ToLower(strings.TrimSpace(siteName))]
	return id, ok
}

// TxConfig returns the antenna/transceiver configuration mapped to a cell
// name, or "" when the cell carries no TX mapping.
func (t *Table) TxConfig(cellName string) string {
	return t.cellToTx[strings.ToLower(strings.TrimSpace(cellName))]
}

// ResolveCell maps an LTE cell name to its cluster and tower identifier.
// Used by the coverage-grid loader, which carries no element name.
func (t *Table) ResolveCell(cellName string) (cluster, towerID string, ok bool) {
	key := strings.ToLower(strings.TrimSpace(cellName))
	cluster, ok = t.cellToCluster[key]
	if !ok {
		return "", "", false
	}
	return cluster, t.cellToTower[key], true
}

// Clusters returns the distinct cluster names in the table.
func (t *Table) Clusters() []string {
	seen := make(map[string]struct{})
	var out []string
	for _, c := range t.towerToCluster {
		if _, ok := seen[c]; !ok {
			seen[c] = struct{}{}
			out = append(out, c)
		}
	}
	for _, c := range t.siteToCluster {
		if _, ok := seen[c]; !ok {
			seen[c] = struct{}{}
			out = append(out, c)
		}
	}
	return out
}

func clean(value string) string {
	value = strings.TrimPrefix(value, "\ufeff")
	return strings.TrimSpace(value)
}
