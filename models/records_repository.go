package models

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"
)

// ErrRecordNotFound is returned when a record id does not exist in its category.
var ErrRecordNotFound = errors.New("record not found")

// RecordFilters narrows a paged search.
type RecordFilters struct {
	Query  string
	Badges map[string]string // badge field key -> exact value
}

type RecordsRepository struct {
	db *gorm.DB
}

func NewRecordsRepository(db *gorm.DB) *RecordsRepository {
	return &RecordsRepository{
		db: db,
	}
}

type recordPtr[T any] interface {
	*T
	Record
}

// recordTable loads typed slices for one category table.
type recordTable interface {
	find(db *gorm.DB) ([]Record, error)
}

type table[T any, P recordPtr[T]] struct{}

func (table[T, P]) find(db *gorm.DB) ([]Record, error) {
	var rows []T
	if err := db.Find(&rows).Error; err != nil {
		return nil, err
	}
	records := make([]Record, len(rows))
	for i := range rows {
		records[i] = P(&rows[i])
	}
	return records, nil
}

func tableFor(c Category) recordTable {
	switch c {
	case SpiritualRoots:
		return table[SpiritualRoot, *SpiritualRoot]{}
	case CultivationRealms:
		return table[CultivationRealm, *CultivationRealm]{}
	case CultivationTypes:
		return table[CultivationType, *CultivationType]{}
	case Techniques:
		return table[Technique, *Technique]{}
	case Pills:
		return table[Pill, *Pill]{}
	case Treasures:
		return table[Treasure, *Treasure]{}
	case SpiritualBeasts:
		return table[SpiritualBeast, *SpiritualBeast]{}
	case SpiritualHerbs:
		return table[SpiritualHerb, *SpiritualHerb]{}
	case Formations:
		return table[Formation, *Formation]{}
	}
	panic(fmt.Sprintf("models: unknown category %q", string(c)))
}

// GetAll returns every record of the category, newest first.
func (r *RecordsRepository) GetAll(ctx context.Context, c Category) ([]Record, error) {
	return tableFor(c).find(r.db.WithContext(ctx).Order("created_at DESC"))
}

func (r *RecordsRepository) GetByID(ctx context.Context, c Category, id string) (Record, error) {
	rec := c.New()
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(rec).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRecordNotFound
		}
		return nil, err
	}
	return rec, nil
}

// FindByName returns the newest record carrying the given name.
func (r *RecordsRepository) FindByName(ctx context.Context, c Category, name string) (Record, error) {
	rec := c.New()
	if err := r.db.WithContext(ctx).Where("name = ?", name).Order("created_at DESC").First(rec).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRecordNotFound
		}
		return nil, err
	}
	return rec, nil
}

// Create persists rec, assigning its id and timestamps.
func (r *RecordsRepository) Create(ctx context.Context, c Category, rec Record) error {
	if rec.Category() != c {
		return fmt.Errorf("create %s: record belongs to %s", c, rec.Category())
	}
	base := rec.Base()
	base.ID = ""
	if err := PrepareRecord(rec); err != nil {
		return err
	}
	return r.db.WithContext(ctx).Create(rec).Error
}

// Update loads the record, lets apply merge new values into it and writes
// every column back. There is no version check: concurrent updates are
// last-write-wins.
func (r *RecordsRepository) Update(ctx context.Context, c Category, id string, apply func(Record) error) (Record, error) {
	rec, err := r.GetByID(ctx, c, id)
	if err != nil {
		return nil, err
	}

	base := rec.Base()
	createdAt := base.CreatedAt
	if err := apply(rec); err != nil {
		return nil, err
	}
	base.ID = id
	base.CreatedAt = createdAt
	if err := PrepareRecord(rec); err != nil {
		return nil, err
	}

	res := r.db.WithContext(ctx).Model(rec).Select("*").Omit("id", "created_at").Updates(rec)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, ErrRecordNotFound
	}
	return rec, nil
}

func (r *RecordsRepository) Delete(ctx context.Context, c Category, id string) error {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(c.New())
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrRecordNotFound
	}
	return nil
}

func (r *RecordsRepository) Count(ctx context.Context, c Category) (int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).Model(c.New()).Count(&total).Error; err != nil {
		return 0, err
	}
	return total, nil
}

// Search matches query case-insensitively against name, description and,
// when the category has one, type.
func (r *RecordsRepository) Search(ctx context.Context, c Category, query string) ([]Record, error) {
	db := r.db.WithContext(ctx).Model(c.New())
	db = applyFilters(db, c, RecordFilters{Query: query})
	return tableFor(c).find(db.Order("created_at DESC"))
}

// SearchPage is Search with badge filters and pagination. It also returns
// the total number of matches before pagination.
func (r *RecordsRepository) SearchPage(ctx context.Context, c Category, filters RecordFilters, offset, limit int) ([]Record, int64, error) {
	var total int64

	query := applyFilters(r.db.WithContext(ctx).Model(c.New()), c, filters)

	// Count total after filtering
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	// Apply pagination
	records, err := tableFor(c).find(query.Order("created_at DESC").Offset(offset).Limit(limit))
	if err != nil {
		return nil, 0, err
	}

	return records, total, nil
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func applyFilters(db *gorm.DB, c Category, filters RecordFilters) *gorm.DB {
	if q := strings.TrimSpace(filters.Query); q != "" {
		pattern := "%" + likeEscaper.Replace(strings.ToLower(q)) + "%"
		columns := []string{"name", "description"}
		if c.HasField("type") {
			columns = append(columns, "type")
		}
		clauses := make([]string, len(columns))
		args := make([]any, len(columns))
		for i, col := range columns {
			clauses[i] = "LOWER(" + col + `) LIKE ? ESCAPE '\'`
			args[i] = pattern
		}
		db = db.Where("("+strings.Join(clauses, " OR ")+")", args...)
	}

	for key, value := range filters.Badges {
		f, ok := c.Field(key)
		if !ok || f.Kind != KindBadge || value == "" {
			continue
		}
		db = db.Where(f.Column+" = ?", value)
	}
	return db
}
