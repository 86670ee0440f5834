package present

import "github.com/xiuxian-wiki/encyclopedia/models"

var (
	rootTypes      = []string{"金", "木", "水", "火", "土", "雷", "冰", "风", "五行", "变异"}
	rootGrades     = []string{"下品", "中品", "上品", "极品", "天品"}
	realmStages    = []string{"初期", "中期", "后期", "大圆满"}
	disciplines    = []string{"体修", "法修", "剑修", "丹修", "器修", "阵修", "符修"}
	techniqueTypes = []string{"攻击", "防御", "身法", "心法", "辅助", "特殊"}
	techniqueTiers = []string{"黄阶", "玄阶", "地阶", "天阶"}
	techniqueLevel = []string{"初级", "中级", "高级", "顶级"}
	pillTypes      = []string{"疗伤", "增进修为", "辅助突破", "解毒", "补充灵力", "延寿"}
	pillGrades     = []string{"一品", "二品", "三品", "四品", "五品", "六品", "七品", "八品", "九品"}
	treasureTypes  = []string{"符箓", "法器", "灵器", "宝器", "法宝", "先天灵宝"}
	treasureGrades = []string{"下品", "中品", "上品", "极品", "绝品"}
	beastLevels    = []string{"一阶", "二阶", "三阶", "四阶", "五阶", "六阶", "七阶", "八阶", "九阶"}
	beastTypes     = []string{"攻击型", "防御型", "辅助型", "速度型", "特殊型"}
	herbTypes      = []string{"药草", "毒草", "灵果", "仙花", "神木"}
	herbGrades     = []string{"普通", "灵级", "宝级", "王级", "帝级"}
	formationTypes = []string{"攻击阵", "防御阵", "迷阵", "聚灵阵", "传送阵", "禁制阵"}
	formationTiers = []string{"一级", "二级", "三级", "四级", "五级", "六级", "七级", "八级", "九级"}
)

// FieldOptions returns the picker values for a field, or nil when the field
// is free text.
func FieldOptions(c models.Category, key string) []string {
	switch c {
	case models.SpiritualRoots:
		return pick(key, map[string][]string{"type": rootTypes, "grade": rootGrades})
	case models.CultivationRealms:
		return pick(key, map[string][]string{"stage": realmStages})
	case models.CultivationTypes:
		return pick(key, map[string][]string{"category": disciplines})
	case models.Techniques:
		return pick(key, map[string][]string{"type": techniqueTypes, "grade": techniqueTiers, "level": techniqueLevel})
	case models.Pills:
		return pick(key, map[string][]string{"type": pillTypes, "grade": pillGrades})
	case models.Treasures:
		return pick(key, map[string][]string{"type": treasureTypes, "grade": treasureGrades})
	case models.SpiritualBeasts:
		return pick(key, map[string][]string{"level": beastLevels, "type": beastTypes})
	case models.SpiritualHerbs:
		return pick(key, map[string][]string{"type": herbTypes, "grade": herbGrades})
	case models.Formations:
		return pick(key, map[string][]string{"type": formationTypes, "grade": formationTiers})
	}
	return nil
}

func pick(key string, options map[string][]string) []string {
	return options[key]
}
