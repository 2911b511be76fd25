package schema

import (
	"gorm.io/gorm"
)

// AllModels returns all schema models for GORM AutoMigrate.
func AllModels() []any {
	return []any{
		&ConservationUnit{},
		&Population{},
		&MetricValue{},
		&CUSeriesValue{},
		&PopSeriesValue{},
		&CUBoundary{},
		&PopSite{},
		&StreamSegment{},
		&BuildInfo{},
	}
}

// TableNames returns names of all export tables in AllModels order.
func TableNames() []string {
	models := AllModels()
	res := make([]string, len(models))
	for i, m := range models {
		res[i] = m.(DDLGenerator).TableName()
	}
	return res
}

// IndexDDL returns index statements of all models.
func IndexDDL() []string {
	var res []string
	for _, m := range AllModels() {
		res = append(res, m.(DDLGenerator).IndexDDL()...)
	}
	return res
}

// Migrate runs GORM AutoMigrate to create or update schema.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(AllModels()...)
}
