package models

import "time"

// KVEntry is one key of the SQL-backed store.
type KVEntry struct {
	Key       string    `gorm:"column:entry_key;primaryKey;size:255" json:"key"`
	Value     string    `gorm:"type:text;not null" json:"value"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (KVEntry) TableName() string {
	return "kv_entries"
}
