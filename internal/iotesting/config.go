// Package iotesting provides shared test utilities for integration tests.
// This is an internal package for test infrastructure only.
package iotesting

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/gnames/cudb/internal/ioconfig"
	"github.com/gnames/cudb/pkg/config"
)

const (
	// TestDatabaseName is the database name used for all integration tests.
	// This ensures tests never accidentally run against production databases.
	TestDatabaseName = "cudb_test"
)

// GetTestConfig returns a configuration suitable for integration tests.
// It loads the standard config (from file, CUDB_ variables or defaults)
// and overrides the database name to TestDatabaseName for safety.
//
// Usage in integration tests:
//
//	func TestSomething(t *testing.T) {
//	    if testing.Short() {
//	        t.Skip("Skipping integration test")
//	    }
//	    cfg := iotesting.GetTestConfig()
//	    // ... use cfg for database operations
//	}
func GetTestConfig() *config.Config {
	cfg := config.New()

	home, err := os.UserHomeDir()
	if err == nil {
		if res, err := ioconfig.Load(home); err == nil {
			cfg.Update(res.ToOptions())
		}
	}

	// Always use test database for safety
	cfg.Update([]config.Option{config.OptDatabaseDatabase(TestDatabaseName)})
	return cfg
}

// GetTestDatabaseConfig returns only the database configuration for tests.
func GetTestDatabaseConfig() *config.DatabaseConfig {
	cfg := GetTestConfig()
	return &cfg.Database
}

// WriteFile writes content to a file inside dir, creating parent
// directories. Returns the full path of the file.
func WriteFile(t *testing.T, dir, name, content string) string {
	t.Helper()

	path := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatalf("Failed to create directory for %s: %v", name, err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write %s: %v", name, err)
	}
	return path
}

// WriteDataset writes a complete set of small CSV inputs and a matching
// sources.yaml into dir. Returns the path of sources.yaml.
//
// The data has three CUs with canonical ids C1, C2 and C3 (legacy ids
// 101, 102 and 103), three populations and one unmatched population
// time series record.
func WriteDataset(t *testing.T, dir string) string {
	t.Helper()

	WriteFile(t, dir, "cu_lookup.csv", `CU_ID,CU_ID_Report,CU_INDEX,CU_Name,Species,FAZ,Area,RunTiming,LifeHistory,AvGen
101,C1,1,Bowron,Sockeye,FRCany,Fraser,Early Summer,Lake,4
102,C2,2,Chilko,Sockeye,FRCany,Fraser,Summer,Lake,4
103,C3,3,Harrison,Sockeye,LFR,Fraser,Late,River,4
`)
	WriteFile(t, dir, "pop_lookup.csv", `CU_ID,Pop_ID,Pop_Name,Species,DataSet,Lat,Long,WSKey
101,7,Bowron River,Sockeye,Sk,53.9,-121.1,W1
101,8,Stuart Creek,Sockeye,Sk,NA,NA,W2
102,7,Chilko River,Sockeye,Sk,51.6,-124.1,W3
`)
	WriteFile(t, dir, "metrics.csv", `CU_ID,DataType,Year,Metric,Value,Status
101,Annual,2010,RelAbd,0.5,Green
101,Annual,2010,LongTrend,1.2,Amber
102,Annual,2010,RelAbd,0.3,Red
`)
	WriteFile(t, dir, "cu_timeseries.csv", `CU_ID,Year,Spawners
101,1999,100
101,2005,120
`)
	WriteFile(t, dir, "pop_timeseries.tsv", "DataSet\tPop_ID\tPop_Name\tTS_Name\tYear\tSpawners\n"+
		"Sk\t7\t\tEscapement\t2000\t10\n"+
		"Sk\t\tStuart Creek\tEscapement\t2001\t5\n"+
		"Sk\t\tNowhere\tEscapement\t2001\t1\n")
	WriteFile(t, dir, "streams.csv", `Code,CUs,Sites,Name,Geometry
100-000000,C2:C1,C2.7:C1.7,Fraser River,LINESTRING(0 0,1 1)
`)

	return WriteFile(t, dir, "sources.yaml", `version: v0.2.0
canonical_column: CU_ID_Report
datasets:
  cu_lookup:
    file: cu_lookup.csv
  pop_lookup:
    file: pop_lookup.csv
  cu_metrics:
    file: metrics.csv
  cu_timeseries:
    file: cu_timeseries.csv
  pop_timeseries:
    file: pop_timeseries.tsv
  streams:
    file: streams.csv
orderings:
  - column: RunTiming
    levels: [Early Summer, Summer, Late, NA]
`)
}
