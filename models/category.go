package models

import "fmt"

// Category identifies one of the nine fixed content types.
type Category string

const (
	SpiritualRoots    Category = "spiritualRoots"
	CultivationRealms Category = "cultivationRealms"
	CultivationTypes  Category = "cultivationTypes"
	Techniques        Category = "techniques"
	Pills             Category = "pills"
	Treasures         Category = "treasures"
	SpiritualBeasts   Category = "spiritualBeasts"
	SpiritualHerbs    Category = "spiritualHerbs"
	Formations        Category = "formations"
)

// Categories lists every category in display order.
var Categories = []Category{
	SpiritualRoots,
	CultivationRealms,
	CultivationTypes,
	Techniques,
	Pills,
	Treasures,
	SpiritualBeasts,
	SpiritualHerbs,
	Formations,
}

// CategoryInfo is the display metadata of a category.
type CategoryInfo struct {
	Key         Category
	Name        string
	ChineseName string
	Description string
	Icon        string
}

// ParseCategory resolves a category key as it appears in URLs.
func ParseCategory(key string) (Category, bool) {
	for _, c := range Categories {
		if string(c) == key {
			return c, true
		}
	}
	return "", false
}

func (c Category) String() string {
	return string(c)
}

// Info returns the display metadata of c.
func (c Category) Info() CategoryInfo {
	switch c {
	case SpiritualRoots:
		return CategoryInfo{c, "Spiritual Roots", "灵根", "修仙者天赋根基，决定修炼速度与潜力", "🌿"}
	case CultivationRealms:
		return CategoryInfo{c, "Cultivation Realms", "修行境界", "修仙道路上的各个境界等级", "⛰️"}
	case CultivationTypes:
		return CategoryInfo{c, "Cultivation Types", "修行类别", "不同的修炼方向与道路选择", "🗡️"}
	case Techniques:
		return CategoryInfo{c, "Techniques", "功法", "修炼所需的心法秘籍与招式", "📜"}
	case Pills:
		return CategoryInfo{c, "Pills & Elixirs", "丹药", "辅助修炼的各种灵丹妙药", "💊"}
	case Treasures:
		return CategoryInfo{c, "Treasures", "符宝", "神奇的法器宝物与符箓", "⚔️"}
	case SpiritualBeasts:
		return CategoryInfo{c, "Spiritual Beasts", "灵兽", "修仙界中的各种灵兽妖怪", "🐉"}
	case SpiritualHerbs:
		return CategoryInfo{c, "Spiritual Herbs", "灵草", "珍贵的天材地宝与灵草仙药", "🌱"}
	case Formations:
		return CategoryInfo{c, "Formations", "阵法", "神秘的阵法禁制与布阵之道", "🔮"}
	}
	panic(fmt.Sprintf("models: unknown category %q", string(c)))
}

// New returns an empty record of the category's concrete type.
func (c Category) New() Record {
	switch c {
	case SpiritualRoots:
		return &SpiritualRoot{}
	case CultivationRealms:
		return &CultivationRealm{}
	case CultivationTypes:
		return &CultivationType{}
	case Techniques:
		return &Technique{}
	case Pills:
		return &Pill{}
	case Treasures:
		return &Treasure{}
	case SpiritualBeasts:
		return &SpiritualBeast{}
	case SpiritualHerbs:
		return &SpiritualHerb{}
	case Formations:
		return &Formation{}
	}
	panic(fmt.Sprintf("models: unknown category %q", string(c)))
}

// RequiredFields lists the JSON keys that must be non-empty on create,
// name first.
func (c Category) RequiredFields() []string {
	required := []string{"name"}
	for _, f := range c.Fields() {
		if f.Required {
			required = append(required, f.Key)
		}
	}
	return required
}

// HasField reports whether the category declares a field with the given key.
func (c Category) HasField(key string) bool {
	_, ok := c.Field(key)
	return ok
}

// Field looks up a field definition by key.
func (c Category) Field(key string) (FieldDef, bool) {
	for _, f := range c.Fields() {
		if f.Key == key {
			return f, true
		}
	}
	return FieldDef{}, false
}
