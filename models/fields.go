package models

import "fmt"

// FieldKind drives how a field is stored, validated and rendered.
type FieldKind string

const (
	KindBadge    FieldKind = "badge"
	KindNumber   FieldKind = "number"
	KindText     FieldKind = "text"
	KindLongText FieldKind = "long-text"
)

// FieldDef describes one category-specific field.
type FieldDef struct {
	Key      string // JSON key
	Column   string // table column
	Kind     FieldKind
	LabelZH  string
	LabelEN  string
	Required bool
	Min, Max int // bounds for number fields, 0 means unbounded
}

func badge(key, zh, en string, required bool) FieldDef {
	return FieldDef{Key: key, Column: key, Kind: KindBadge, LabelZH: zh, LabelEN: en, Required: required}
}

func text(key, column, zh, en string) FieldDef {
	return FieldDef{Key: key, Column: column, Kind: KindText, LabelZH: zh, LabelEN: en}
}

func longText(key, zh, en string) FieldDef {
	return FieldDef{Key: key, Column: key, Kind: KindLongText, LabelZH: zh, LabelEN: en}
}

func description() FieldDef {
	f := longText("description", "详细描述", "Description")
	f.Required = true
	return f
}

var (
	spiritualRootFields = []FieldDef{
		badge("type", "灵根类型", "Root Type", true),
		badge("grade", "品级", "Grade", true),
		{Key: "rarity", Column: "rarity", Kind: KindNumber, LabelZH: "稀有度", LabelEN: "Rarity", Min: 1, Max: 10},
		text("properties", "properties", "特性", "Properties"),
		description(),
	}
	cultivationRealmFields = []FieldDef{
		{Key: "level", Column: "level", Kind: KindNumber, LabelZH: "境界等级", LabelEN: "Realm Level", Required: true, Min: 1},
		badge("stage", "阶段", "Stage", true),
		text("lifespan", "lifespan", "寿命", "Lifespan"),
		longText("requirements", "突破要求", "Breakthrough Requirements"),
		longText("benefits", "境界益处", "Benefits"),
		description(),
	}
	cultivationTypeFields = []FieldDef{
		badge("category", "修炼类别", "Category", true),
		longText("characteristics", "特点", "Characteristics"),
		longText("advantages", "优势", "Advantages"),
		longText("disadvantages", "劣势", "Disadvantages"),
		description(),
	}
	techniqueFields = []FieldDef{
		badge("type", "功法类型", "Technique Type", true),
		badge("grade", "品级", "Grade", true),
		badge("level", "等级", "Level", false),
		longText("effects", "修炼效果", "Effects"),
		longText("requirements", "修炼要求", "Requirements"),
		text("drawbacks", "drawbacks", "副作用", "Drawbacks"),
		longText("content", "功法内容", "Content"),
		description(),
	}
	pillFields = []FieldDef{
		badge("type", "丹药类型", "Pill Type", true),
		badge("grade", "品级", "Grade", true),
		longText("effects", "药效", "Effects"),
		text("ingredients", "ingredients", "主要材料", "Ingredients"),
		longText("refinement", "炼制方法", "Refinement"),
		text("sideEffects", "side_effects", "副作用", "Side Effects"),
		description(),
	}
	treasureFields = []FieldDef{
		badge("type", "宝物类型", "Treasure Type", true),
		badge("grade", "品级", "Grade", true),
		longText("abilities", "能力", "Abilities"),
		longText("usage", "使用方法", "Usage"),
		text("materials", "materials", "制作材料", "Materials"),
		text("restrictions", "restrictions", "使用限制", "Restrictions"),
		description(),
	}
	spiritualBeastFields = []FieldDef{
		badge("species", "种族", "Species", true),
		badge("level", "等级", "Level", true),
		badge("type", "类型", "Type", false),
		longText("abilities", "天赋技能", "Abilities"),
		text("habitat", "habitat", "栖息地", "Habitat"),
		longText("behavior", "习性", "Behavior"),
		text("weakness", "weakness", "弱点", "Weakness"),
		description(),
	}
	spiritualHerbFields = []FieldDef{
		badge("type", "草药类型", "Herb Type", true),
		badge("grade", "品级", "Grade", true),
		longText("effects", "功效", "Effects"),
		text("growthTime", "growth_time", "生长周期", "Growth Time"),
		text("habitat", "habitat", "生长环境", "Habitat"),
		text("harvestMethod", "harvest_method", "采集方法", "Harvest Method"),
		text("preservation", "preservation", "保存方法", "Preservation"),
		description(),
	}
	formationFields = []FieldDef{
		badge("type", "阵法类型", "Formation Type", true),
		badge("grade", "品级", "Grade", true),
		longText("effects", "阵法效果", "Effects"),
		text("materials", "materials", "布阵材料", "Materials"),
		longText("arrangement", "布阵方法", "Arrangement"),
		text("weaknesses", "weaknesses", "破阵方法", "Weaknesses"),
		description(),
	}
)

// Fields returns the category's field definitions in display order.
func (c Category) Fields() []FieldDef {
	switch c {
	case SpiritualRoots:
		return spiritualRootFields
	case CultivationRealms:
		return cultivationRealmFields
	case CultivationTypes:
		return cultivationTypeFields
	case Techniques:
		return techniqueFields
	case Pills:
		return pillFields
	case Treasures:
		return treasureFields
	case SpiritualBeasts:
		return spiritualBeastFields
	case SpiritualHerbs:
		return spiritualHerbFields
	case Formations:
		return formationFields
	}
	panic(fmt.Sprintf("models: unknown category %q", string(c)))
}
