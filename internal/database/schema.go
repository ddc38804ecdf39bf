package database

import (
	"fmt"

	"gorm.io/gorm"
)

// TableStatus describes how far one model's table is from its GORM schema.
type TableStatus struct {
	Table          string
	Exists         bool
	MissingColumns []string
}

// SchemaStatus compares the live schema against PersistentModels without
// changing anything.
func SchemaStatus(db *gorm.DB) ([]TableStatus, error) {
	models := PersistentModels()
	out := make([]TableStatus, 0, len(models))
	m := db.Migrator()

	for _, model := range models {
		stmt := &gorm.Statement{DB: db}
		if err := stmt.Parse(model); err != nil {
			return nil, fmt.Errorf("parse model %T: %w", model, err)
		}

		st := TableStatus{Table: stmt.Schema.Table, Exists: m.HasTable(model)}
		for _, field := range stmt.Schema.Fields {
			if field.DBName == "" {
				continue
			}
			if !st.Exists || !m.HasColumn(model, field.DBName) {
				st.MissingColumns = append(st.MissingColumns, field.DBName)
			}
		}
		out = append(out, st)
	}
	return out, nil
}

// Pending reports whether any table needs Migrate.
func Pending(status []TableStatus) bool {
	for _, st := range status {
		if !st.Exists || len(st.MissingColumns) > 0 {
			return true
		}
	}
	return false
}
