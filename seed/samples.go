package seed

import "github.com/xiuxian-wiki/encyclopedia/models"

func named[T any, P interface {
	*T
	models.Record
}](name string, rec T) models.Record {
	p := P(&rec)
	p.Base().Name = name
	return p
}

// Samples returns fresh copies of the sample records.
func Samples() []models.Record {
	return []models.Record{
		named("五行灵根", models.SpiritualRoot{
			Type: "五行", Grade: "中品", Rarity: 5,
			Properties:  "五行平衡，可修炼多种功法",
			Description: "最常见的灵根类型，包含金木水火土五种属性，修炼平衡但速度一般。",
		}),
		named("天灵根", models.SpiritualRoot{
			Type: "纯属性", Grade: "天品", Rarity: 10,
			Properties:  "纯净属性，修炼速度极快",
			Description: "极其罕见的单属性灵根，修炼速度极快，但只能修炼对应属性功法。",
		}),
		named("变异灵根", models.SpiritualRoot{
			Type: "变异", Grade: "极品", Rarity: 8,
			Properties:  "属性融合，拥有特殊能力",
			Description: "由两种或多种属性融合而成的特殊灵根，拥有独特的修炼优势。",
		}),
		named("炼气期", models.CultivationRealm{
			Level: 1, Stage: "初期", Lifespan: "120年",
			Requirements: "拥有灵根，学会基础吐纳术",
			Benefits:     "寿命延长至120年，身体素质大幅提升",
			Description:  "修仙入门境界，开始吸收天地灵气，淬炼肉身。",
		}),
		named("筑基期", models.CultivationRealm{
			Level: 2, Stage: "初期", Lifespan: "200年",
			Requirements: "炼气期大圆满，筑基丹或天地奇遇",
			Benefits:     "寿命延长至200年，可御器飞行",
			Description:  "在丹田内筑建灵力基础，为后续修炼奠定根基。",
		}),
		named("金丹期", models.CultivationRealm{
			Level: 3, Stage: "初期", Lifespan: "500年",
			Requirements: "筑基期大圆满，结丹机缘",
			Benefits:     "寿命延长至500年，法力深厚",
			Description:  "将筑基期的液态灵力凝聚成金丹，标志着修仙者的重大突破。",
		}),
		named("九转玄功", models.Technique{
			Type: "炼体", Grade: "天阶", Level: "高级",
			Effects:      "大幅提升肉身强度，增强恢复能力",
			Requirements: "炼气期以上，需要特殊体质",
			Content:      "第一转：炼皮，第二转：炼肉，第三转：炼筋...",
			Drawbacks:    "修炼过程极其痛苦，容易走火入魔",
			Description:  "传说中的炼体神功，共分九转，每一转都能带来脱胎换骨的变化。",
		}),
		named("太极真经", models.Technique{
			Type: "心法", Grade: "地阶", Level: "中级",
			Effects:      "修炼速度稳定，很少出现瓶颈",
			Requirements: "悟性较高，需理解阴阳之道",
			Content:      "无极生太极，太极生两仪，两仪生四象...",
			Description:  "道家传承的经典心法，讲究阴阳调和，刚柔并济。",
		}),
	}
}
