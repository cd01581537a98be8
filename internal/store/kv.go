package store

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/jinzhu/gorm"
	"github.com/rs/zerolog"
)

// Record is a single key→JSON entry in the process-wide store.
// The table stands in for the browser's local storage: one row per
// namespace key, value always a JSON document.
type Record struct {
	ID    uint   `gorm:"primary_key"`
	Key   string `gorm:"unique_index;size:255"`
	Value string `gorm:"type:text"`
}

// TableName sets the table name for Record
func (Record) TableName() string {
	return "kv_records"
}

// KV is a typed key-value layer over the database
type KV struct {
	db  *gorm.DB
	log zerolog.Logger
}

// NewKV migrates the backing table and returns the key-value store
func NewKV(db *gorm.DB, log zerolog.Logger) (*KV, error) {
	if err := db.AutoMigrate(&Record{}).Error; err != nil {
		return nil, fmt.Errorf("failed to migrate kv table: %w", err)
	}
	return &KV{db: db, log: log}, nil
}

// Get unmarshals the value stored under key into out. Missing keys and
// corrupt JSON both report false so callers can fall back to an empty
// collection; reads never fail hard.
func (kv *KV) Get(key string, out interface{}) bool {
	var rec Record
	err := kv.db.Where("key = ?", key).First(&rec).Error
	if err != nil {
		if !gorm.IsRecordNotFoundError(err) {
			kv.log.Warn().Err(err).Str("key", key).Msg("kv read failed")
		}
		return false
	}
	if err := json.Unmarshal([]byte(rec.Value), out); err != nil {
		kv.log.Warn().Err(err).Str("key", key).Msg("kv value corrupt")
		return false
	}
	return true
}

// Put marshals v and upserts it under key
func (kv *KV) Put(key string, v interface{}) error {
	b, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to marshal value for %s: %w", key, err)
	}
	var rec Record
	err = kv.db.Where("key = ?", key).First(&rec).Error
	if gorm.IsRecordNotFoundError(err) {
		return kv.db.Create(&Record{Key: key, Value: string(b)}).Error
	}
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", key, err)
	}
	rec.Value = string(b)
	return kv.db.Save(&rec).Error
}

// Delete removes the entry stored under key, if any
func (kv *KV) Delete(key string) error {
	return kv.db.Where("key = ?", key).Delete(&Record{}).Error
}

// WipePrefix removes every entry whose key starts with prefix. The
// prefix is matched literally: LIKE wildcards in it are escaped.
func (kv *KV) WipePrefix(prefix string) error {
	escaped := strings.NewReplacer(`\`, `\\`, "%", `\%`, "_", `\_`).Replace(prefix)
	return kv.db.Where(`key LIKE ? ESCAPE '\'`, escaped+"%").Delete(&Record{}).Error
}
