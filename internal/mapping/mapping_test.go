package mapping

import (
	"os"
	"path/filepath"
	"testing"
)

func writeMapping(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "mapping.csv")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write mapping file: %v", err)
	}
	return path
}

func TestExtractTowerID(t *testing.T) {
	cases := []struct {
		element string
		want    string
	}{
		{"ME#TOWER01#SECTOR2", "TOWER01"},
		{"#T-9# rest", "T-9"},
		{"no token here", ""},
		{"unterminated #TOKEN", ""},
		{"", ""},
	}
	for _, c := range cases {
		if got := ExtractTowerID(c.element); got != c.want {
			t.Fatalf("ExtractTowerID(%q) = %q, want %q", c.element, got, c.want)
		}
	}
}

func TestLoadAndResolve(t *testing.T) {
	path := writeMapping(t, "Cluster,TowerID,SiteName,CellName,TX\n"+
		"ClusterX,TOWER01,SITE_A,CELL_A1,4t4r\n"+
		"ClusterX,TOWER02,SITE_B,,\n"+
		"ClusterY,TOWER03,SITE_C,CELL_C1,2T2R\n")

	table, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	cluster, ok := table.ResolveTower("ME#TOWER01#CELL4")
	if !ok || cluster != "ClusterX" {
		t.Fatalf("ResolveTower = (%q, %v), want (ClusterX, true)", cluster, ok)
	}

	// Lookups are case-insensitive.
	if cluster, ok = table.ResolveTower("ME#tower03#"); !ok || cluster != "ClusterY" {
		t.Fatalf("case-insensitive ResolveTower = (%q, %v)", cluster, ok)
	}

	if _, ok = table.ResolveTower("ME#UNKNOWN#"); ok {
		t.Fatal("unmapped tower id must not resolve")
	}
	if _, ok = table.ResolveTower("no token"); ok {
		t.Fatal("element without #...# token must not resolve")
	}

	if cluster, ok = table.ResolveSite(" site_b "); !ok || cluster != "ClusterX" {
		t.Fatalf("ResolveSite = (%q, %v), want (ClusterX, true)", cluster, ok)
	}
	if _, ok = table.ResolveSite("SITE_Z"); ok {
		t.Fatal("unmapped site must not resolve")
	}

	if tx := table.TxConfig("cell_a1"); tx != "4T4R" {
		t.Fatalf("TxConfig = %q, want 4T4R", tx)
	}
	if tx := table.TxConfig("CELL_C1"); tx != "2T2R" {
		t.Fatalf("TxConfig = %q, want 2T2R", tx)
	}
	if tx := table.TxConfig("CELL_NOPE"); tx != "" {
		t.Fatalf("TxConfig for unmapped cell = %q, want empty", tx)
	}

	cluster, tower, ok := table.ResolveCell("CELL_C1")
	if !ok || cluster != "ClusterY" || tower != "TOWER03" {
		t.Fatalf("ResolveCell = (%q, %q, %v)", cluster, tower, ok)
	}

	clusters := table.Clusters()
	if len(clusters) != 2 {
		t.Fatalf("Clusters() = %v, want 2 entries", clusters)
	}
}

func TestLoadStripsBOM(t *testing.T) {
	path := writeMapping(t, "\ufeffCluster,TowerID,SiteName\n\"\ufeffClusterX\",TOWER01,SITE_A\n")
	table, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cluster, ok := table.ResolveTower("#TOWER01#"); !ok || cluster != "ClusterX" {
		t.Fatalf("BOM-prefixed cluster not cleaned: (%q, %v)", cluster, ok)
	}
}

func TestLoadRejectsEmptyMapping(t *testing.T) {
	path := writeMapping(t, "Cluster,TowerID,SiteName\n,,\n")
	if _, err := Load(path); err == nil {
		t.Fatal("Load must fail when no usable rows exist")
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "absent.csv")); err == nil {
		t.Fatal("Load must fail for a missing file")
	}
}
