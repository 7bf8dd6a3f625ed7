package settings

import (
	"fmt"
	"path/filepath"

	"github.com/bytedance/sonic"
	"github.com/penwyp/go-baggage-monitor/internal/core/constants"
	"github.com/penwyp/go-baggage-monitor/internal/util"
	"github.com/peterbourgon/diskv/v3"
)

// Persistence stores the raw settings blob
type Persistence interface {
	// Load returns the stored blob, or nil when nothing was stored yet
	Load() ([]byte, error)
	Save(data []byte) error
}

// DiskPersistence keeps the blob as a single diskv key
type DiskPersistence struct {
	d   *diskv.Diskv
	dir string
	key string
}

// NewDiskPersistence opens the settings store under dir. The read cache is
// disabled so edits made by another process are seen on the next Load.
func NewDiskPersistence(dir string) *DiskPersistence {
	return &DiskPersistence{
		d: diskv.New(diskv.Options{
			BasePath:     dir,
			CacheSizeMax: 0,
		}),
		dir: dir,
		key: constants.SettingsStorageKey,
	}
}

func (p *DiskPersistence) Load() ([]byte, error) {
	if !p.d.Has(p.key) {
		return nil, nil
	}
	data, err := p.d.Read(p.key)
	if err != nil {
		return nil, fmt.Errorf("read settings: %w", err)
	}
	return data, nil
}

func (p *DiskPersistence) Save(data []byte) error {
	if err := p.d.Write(p.key, data); err != nil {
		return fmt.Errorf("write settings: %w", err)
	}
	return nil
}

// Dir is the directory holding the blob
func (p *DiskPersistence) Dir() string {
	return p.dir
}

// Path is the file the blob is written to
func (p *DiskPersistence) Path() string {
	return filepath.Join(p.dir, p.key)
}

// storedSettings mirrors Settings with optional fields so that a partial
// blob only overrides what it actually contains.
type storedSettings struct {
	Theme                  *string `json:"theme"`
	LookupTimeRangePast    *int    `json:"lookupTimeRangePast"`
	LookupTimeRangeFuture  *int    `json:"lookupTimeRangeFuture"`
	CardsExpandedByDefault *bool   `json:"cardsExpandedByDefault"`
}

// decode merges a stored blob over the defaults field by field. Fields with
// invalid values keep their default. A blob that is not a JSON object is
// reported as an error.
func decode(data []byte) (Settings, error) {
	s := Defaults()
	var stored storedSettings
	if err := sonic.Unmarshal(data, &stored); err != nil {
		return s, fmt.Errorf("decode settings: %w", err)
	}

	if stored.Theme != nil {
		if t := Theme(*stored.Theme); t.Valid() {
			s.Theme = t
		} else {
			util.LogWarn("Ignoring stored setting", util.F("field", "theme"), util.F("value", *stored.Theme))
		}
	}
	if stored.LookupTimeRangePast != nil {
		if validHours(*stored.LookupTimeRangePast) {
			s.LookupTimeRangePast = *stored.LookupTimeRangePast
		} else {
			util.LogWarn("Ignoring stored setting", util.F("field", "lookupTimeRangePast"), util.F("value", *stored.LookupTimeRangePast))
		}
	}
	if stored.LookupTimeRangeFuture != nil {
		if validHours(*stored.LookupTimeRangeFuture) {
			s.LookupTimeRangeFuture = *stored.LookupTimeRangeFuture
		} else {
			util.LogWarn("Ignoring stored setting", util.F("field", "lookupTimeRangeFuture"), util.F("value", *stored.LookupTimeRangeFuture))
		}
	}
	if stored.CardsExpandedByDefault != nil {
		s.CardsExpandedByDefault = *stored.CardsExpandedByDefault
	}
	return s, nil
}

func encode(s Settings) ([]byte, error) {
	data, err := sonic.Marshal(s)
	if err != nil {
		return nil, fmt.Errorf("encode settings: %w", err)
	}
	return data, nil
}
