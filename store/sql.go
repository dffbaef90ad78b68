package store

import (
	"context"

	"github.com/google/uuid"
	"github.com/kizzycode/loreyawen"
	"github.com/pkg/errors"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// sqlRecord is the gorm model backing SQLStore, grounded on the
// device/session persistence pattern used by go-fdo-server's gorm models:
// a UUID primary key plus the device-identifying column queried on.
type sqlRecord struct {
	ID              string `gorm:"primaryKey"`
	DevAddr         uint32 `gorm:"uniqueIndex"`
	KEKLabel        string
	WrappedNwkSKey  []byte
	WrappedAppSKey  []byte
	UplinkCounter   uint32
	DownlinkCounter uint32
}

// SQLStore persists Records through gorm, to either SQLite or Postgres
// depending on which gorm driver the caller opened db with.
type SQLStore struct {
	db *gorm.DB
}

// NewSQLStore wraps an already-opened gorm database and ensures the
// session-record table exists.
func NewSQLStore(db *gorm.DB) (*SQLStore, error) {
	if err := db.AutoMigrate(&sqlRecord{}); err != nil {
		return nil, errors.Wrap(err, "store: auto-migrate")
	}
	return &SQLStore{db: db}, nil
}

// NewSQLiteStore opens dsn (a file path, or ":memory:") with the gorm
// sqlite driver and wraps it in a SQLStore.
func NewSQLiteStore(dsn string) (*SQLStore, error) {
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, errors.Wrap(err, "store: open sqlite")
	}
	return NewSQLStore(db)
}

// NewPostgresStore opens dsn with the gorm postgres driver and wraps it in
// a SQLStore, for operators who want a relational audit trail backed by a
// real database server rather than a local sqlite file.
func NewPostgresStore(dsn string) (*SQLStore, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, errors.Wrap(err, "store: open postgres")
	}
	return NewSQLStore(db)
}

// Load implements Backend.
func (s *SQLStore) Load(ctx context.Context, devAddr loreyawen.DevAddr) (*Record, error) {
	var row sqlRecord
	err := s.db.WithContext(ctx).Where("dev_addr = ?", uint32(devAddr)).First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, errors.Wrap(err, "store: sql load")
	}

	return &Record{
		DevAddr:         devAddr,
		KEKLabel:        row.KEKLabel,
		WrappedNwkSKey:  row.WrappedNwkSKey,
		WrappedAppSKey:  row.WrappedAppSKey,
		UplinkCounter:   row.UplinkCounter,
		DownlinkCounter: row.DownlinkCounter,
	}, nil
}

// Save implements Backend.
func (s *SQLStore) Save(ctx context.Context, rec *Record) error {
	row := sqlRecord{
		DevAddr:         uint32(rec.DevAddr),
		KEKLabel:        rec.KEKLabel,
		WrappedNwkSKey:  rec.WrappedNwkSKey,
		WrappedAppSKey:  rec.WrappedAppSKey,
		UplinkCounter:   rec.UplinkCounter,
		DownlinkCounter: rec.DownlinkCounter,
	}

	var existing sqlRecord
	err := s.db.WithContext(ctx).Where("dev_addr = ?", row.DevAddr).First(&existing).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		row.ID = uuid.NewString()
		return errors.Wrap(s.db.WithContext(ctx).Create(&row).Error, "store: sql create")
	case err != nil:
		return errors.Wrap(err, "store: sql lookup")
	default:
		row.ID = existing.ID
		return errors.Wrap(s.db.WithContext(ctx).Save(&row).Error, "store: sql save")
	}
}
