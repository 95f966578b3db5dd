package locale

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/uptrace/bun"
)

var errNoDatabase = errors.New("locale: bun repository requires a database")

const settingsRowID = 1

// BunRepository persists the language choice in a single row.
type BunRepository struct {
	db          *bun.DB
	now         func() time.Time
	broadcaster *broadcaster[ChangeEvent]
}

func NewBunRepository(db *bun.DB) *BunRepository {
	return &BunRepository{
		db:          db,
		now:         time.Now,
		broadcaster: newBroadcaster[ChangeEvent](),
	}
}

// CreateSchema creates the settings table when missing.
func CreateSchema(ctx context.Context, db *bun.DB) error {
	_, err := db.NewCreateTable().Model((*settingsRecord)(nil)).IfNotExists().Exec(ctx)
	return err
}

func (r *BunRepository) Get(ctx context.Context) (Settings, error) {
	record, err := r.load(ctx)
	if err != nil {
		return Settings{}, err
	}
	return Settings{Language: record.Language}, nil
}

func (r *BunRepository) Upsert(ctx context.Context, settings Settings) (Settings, error) {
	existing, err := r.load(ctx)
	created := errors.Is(err, ErrSettingsNotFound)
	if err != nil && !created {
		return Settings{}, err
	}

	record := &settingsRecord{
		ID:        settingsRowID,
		Language:  settings.Language,
		UpdatedAt: r.now().UTC(),
	}
	if created {
		if _, err := r.db.NewInsert().Model(record).Exec(ctx); err != nil {
			return Settings{}, err
		}
	} else {
		if existing.Language == settings.Language {
			return settings, nil
		}
		if _, err := r.db.NewUpdate().
			Model(record).
			Column("language", "updated_at").
			WherePK().
			Exec(ctx); err != nil {
			return Settings{}, err
		}
	}

	stored, err := r.Get(ctx)
	if err != nil {
		return Settings{}, err
	}
	changeType := ChangeUpdated
	if created {
		changeType = ChangeCreated
	}
	r.broadcaster.broadcast(ChangeEvent{Type: changeType, Settings: stored})
	return stored, nil
}

func (r *BunRepository) Delete(ctx context.Context) error {
	record, err := r.load(ctx)
	if err != nil {
		return err
	}
	if _, err := r.db.NewDelete().Model(record).WherePK().Exec(ctx); err != nil {
		return err
	}
	r.broadcaster.broadcast(ChangeEvent{Type: ChangeDeleted})
	return nil
}

func (r *BunRepository) Subscribe(ctx context.Context) (<-chan ChangeEvent, error) {
	return r.broadcaster.subscribe(ctx, nil), nil
}

func (r *BunRepository) load(ctx context.Context) (*settingsRecord, error) {
	if r.db == nil {
		return nil, errNoDatabase
	}
	record := new(settingsRecord)
	err := r.db.NewSelect().Model(record).Where("id = ?", settingsRowID).Scan(ctx)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrSettingsNotFound
	}
	if err != nil {
		return nil, err
	}
	return record, nil
}

type settingsRecord struct {
	bun.BaseModel `bun:"table:storefront_locale_settings"`

	ID        int       `bun:",pk"`
	Language  string    `bun:"language,notnull"`
	UpdatedAt time.Time `bun:"updated_at"`
}
