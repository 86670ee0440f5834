package models

import (
	"strconv"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Record is implemented by the nine category record types.
type Record interface {
	Base() *RecordBase
	Category() Category
	// Values returns the category-specific fields keyed by JSON name.
	// Unset numbers are reported as "".
	Values() map[string]string
}

// RecordBase holds the columns every category table shares.
type RecordBase struct {
	ID        string    `gorm:"primaryKey;size:36" json:"id"`
	Name      string    `gorm:"not null;index" json:"name"`
	ImageURL  *string   `json:"imageUrl"`
	CreatedAt time.Time `gorm:"index" json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (b *RecordBase) Base() *RecordBase {
	return b
}

func (b *RecordBase) BeforeCreate(tx *gorm.DB) error {
	if b.ID == "" {
		b.ID = uuid.NewString()
	}
	return nil
}

func itoa(n int) string {
	if n == 0 {
		return ""
	}
	return strconv.Itoa(n)
}

// SpiritualRoot is a cultivator's innate talent (灵根).
type SpiritualRoot struct {
	RecordBase
	Type        string `gorm:"not null" json:"type"`
	Grade       string `gorm:"not null" json:"grade"`
	Rarity      int    `gorm:"not null;default:1" json:"rarity"`
	Properties  string `json:"properties"`
	Description string `gorm:"type:text;not null" json:"description"`
}

func (*SpiritualRoot) TableName() string  { return "spiritual_roots" }
func (*SpiritualRoot) Category() Category { return SpiritualRoots }

func (r *SpiritualRoot) Values() map[string]string {
	return map[string]string{
		"type":        r.Type,
		"grade":       r.Grade,
		"rarity":      itoa(r.Rarity),
		"properties":  r.Properties,
		"description": r.Description,
	}
}

func (r *SpiritualRoot) numbers() map[string]int {
	return map[string]int{"rarity": r.Rarity}
}

func (r *SpiritualRoot) applyDefaults() {
	if r.Rarity == 0 {
		r.Rarity = 1
	}
}

// CultivationRealm is a stage on the cultivation path (境界).
type CultivationRealm struct {
	RecordBase
	Level        int    `gorm:"not null" json:"level"`
	Stage        string `gorm:"not null" json:"stage"`
	Lifespan     string `json:"lifespan"`
	Requirements string `gorm:"type:text" json:"requirements"`
	Benefits     string `gorm:"type:text" json:"benefits"`
	Description  string `gorm:"type:text;not null" json:"description"`
}

func (*CultivationRealm) TableName() string  { return "cultivation_realms" }
func (*CultivationRealm) Category() Category { return CultivationRealms }

func (r *CultivationRealm) numbers() map[string]int {
	return map[string]int{"level": r.Level}
}

func (r *CultivationRealm) Values() map[string]string {
	return map[string]string{
		"level":        itoa(r.Level),
		"stage":        r.Stage,
		"lifespan":     r.Lifespan,
		"requirements": r.Requirements,
		"benefits":     r.Benefits,
		"description":  r.Description,
	}
}

// CultivationType is a cultivation discipline such as sword or body cultivation.
type CultivationType struct {
	RecordBase
	Discipline      string `gorm:"column:category;not null" json:"category"`
	Characteristics string `gorm:"type:text" json:"characteristics"`
	Advantages      string `gorm:"type:text" json:"advantages"`
	Disadvantages   string `gorm:"type:text" json:"disadvantages"`
	Description     string `gorm:"type:text;not null" json:"description"`
}

func (*CultivationType) TableName() string  { return "cultivation_types" }
func (*CultivationType) Category() Category { return CultivationTypes }

func (r *CultivationType) Values() map[string]string {
	return map[string]string{
		"category":        r.Discipline,
		"characteristics": r.Characteristics,
		"advantages":      r.Advantages,
		"disadvantages":   r.Disadvantages,
		"description":     r.Description,
	}
}

type Technique struct {
	RecordBase
	Type         string `gorm:"not null" json:"type"`
	Grade        string `gorm:"not null" json:"grade"`
	Level        string `json:"level"`
	Effects      string `gorm:"type:text" json:"effects"`
	Requirements string `gorm:"type:text" json:"requirements"`
	Drawbacks    string `json:"drawbacks"`
	Content      string `gorm:"type:text" json:"content"`
	Description  string `gorm:"type:text;not null" json:"description"`
}

func (*Technique) TableName() string  { return "techniques" }
func (*Technique) Category() Category { return Techniques }

func (r *Technique) Values() map[string]string {
	return map[string]string{
		"type":         r.Type,
		"grade":        r.Grade,
		"level":        r.Level,
		"effects":      r.Effects,
		"requirements": r.Requirements,
		"drawbacks":    r.Drawbacks,
		"content":      r.Content,
		"description":  r.Description,
	}
}

type Pill struct {
	RecordBase
	Type        string `gorm:"not null" json:"type"`
	Grade       string `gorm:"not null" json:"grade"`
	Effects     string `gorm:"type:text" json:"effects"`
	Ingredients string `json:"ingredients"`
	Refinement  string `gorm:"type:text" json:"refinement"`
	SideEffects string `json:"sideEffects"`
	Description string `gorm:"type:text;not null" json:"description"`
}

func (*Pill) TableName() string  { return "pills" }
func (*Pill) Category() Category { return Pills }

func (r *Pill) Values() map[string]string {
	return map[string]string{
		"type":        r.Type,
		"grade":       r.Grade,
		"effects":     r.Effects,
		"ingredients": r.Ingredients,
		"refinement":  r.Refinement,
		"sideEffects": r.SideEffects,
		"description": r.Description,
	}
}

type Treasure struct {
	RecordBase
	Type         string `gorm:"not null" json:"type"`
	Grade        string `gorm:"not null" json:"grade"`
	Abilities    string `gorm:"type:text" json:"abilities"`
	Usage        string `gorm:"type:text" json:"usage"`
	Materials    string `json:"materials"`
	Restrictions string `json:"restrictions"`
	Description  string `gorm:"type:text;not null" json:"description"`
}

func (*Treasure) TableName() string  { return "treasures" }
func (*Treasure) Category() Category { return Treasures }

func (r *Treasure) Values() map[string]string {
	return map[string]string{
		"type":         r.Type,
		"grade":        r.Grade,
		"abilities":    r.Abilities,
		"usage":        r.Usage,
		"materials":    r.Materials,
		"restrictions": r.Restrictions,
		"description":  r.Description,
	}
}

type SpiritualBeast struct {
	RecordBase
	Species     string `gorm:"not null" json:"species"`
	Level       string `gorm:"not null" json:"level"`
	Type        string `json:"type"`
	Abilities   string `gorm:"type:text" json:"abilities"`
	Habitat     string `json:"habitat"`
	Behavior    string `gorm:"type:text" json:"behavior"`
	Weakness    string `json:"weakness"`
	Description string `gorm:"type:text;not null" json:"description"`
}

func (*SpiritualBeast) TableName() string  { return "spiritual_beasts" }
func (*SpiritualBeast) Category() Category { return SpiritualBeasts }

func (r *SpiritualBeast) Values() map[string]string {
	return map[string]string{
		"species":     r.Species,
		"level":       r.Level,
		"type":        r.Type,
		"abilities":   r.Abilities,
		"habitat":     r.Habitat,
		"behavior":    r.Behavior,
		"weakness":    r.Weakness,
		"description": r.Description,
	}
}

type SpiritualHerb struct {
	RecordBase
	Type          string `gorm:"not null" json:"type"`
	Grade         string `gorm:"not null" json:"grade"`
	Effects       string `gorm:"type:text" json:"effects"`
	GrowthTime    string `json:"growthTime"`
	Habitat       string `json:"habitat"`
	HarvestMethod string `json:"harvestMethod"`
	Preservation  string `json:"preservation"`
	Description   string `gorm:"type:text;not null" json:"description"`
}

func (*SpiritualHerb) TableName() string  { return "spiritual_herbs" }
func (*SpiritualHerb) Category() Category { return SpiritualHerbs }

func (r *SpiritualHerb) Values() map[string]string {
	return map[string]string{
		"type":          r.Type,
		"grade":         r.Grade,
		"effects":       r.Effects,
		"growthTime":    r.GrowthTime,
		"habitat":       r.Habitat,
		"harvestMethod": r.HarvestMethod,
		"preservation":  r.Preservation,
		"description":   r.Description,
	}
}

type Formation struct {
	RecordBase
	Type        string `gorm:"not null" json:"type"`
	Grade       string `gorm:"not null" json:"grade"`
	Effects     string `gorm:"type:text" json:"effects"`
	Materials   string `json:"materials"`
	Arrangement string `gorm:"type:text" json:"arrangement"`
	Weaknesses  string `json:"weaknesses"`
	Description string `gorm:"type:text;not null" json:"description"`
}

func (*Formation) TableName() string  { return "formations" }
func (*Formation) Category() Category { return Formations }

func (r *Formation) Values() map[string]string {
	return map[string]string{
		"type":        r.Type,
		"grade":       r.Grade,
		"effects":     r.Effects,
		"materials":   r.Materials,
		"arrangement": r.Arrangement,
		"weaknesses":  r.Weaknesses,
		"description": r.Description,
	}
}
