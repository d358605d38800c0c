package models

// SkillName is the human readable skill name
type SkillName string

const (
	SkillAttack        SkillName = "Attack"
	SkillDefence       SkillName = "Defence"
	SkillStrength      SkillName = "Strength"
	SkillConstitution  SkillName = "Constitution"
	SkillRanged        SkillName = "Ranged"
	SkillPrayer        SkillName = "Prayer"
	SkillMagic         SkillName = "Magic"
	SkillCooking       SkillName = "Cooking"
	SkillWoodcutting   SkillName = "Woodcutting"
	SkillFletching     SkillName = "Fletching"
	SkillFishing       SkillName = "Fishing"
	SkillFiremaking    SkillName = "Firemaking"
	SkillCrafting      SkillName = "Crafting"
	SkillSmithing      SkillName = "Smithing"
	SkillMining        SkillName = "Mining"
	SkillHerblore      SkillName = "Herblore"
	SkillAgility       SkillName = "Agility"
	SkillThieving      SkillName = "Thieving"
	SkillSlayer        SkillName = "Slayer"
	SkillFarming       SkillName = "Farming"
	SkillRunecrafting  SkillName = "Runecrafting"
	SkillHunter        SkillName = "Hunter"
	SkillConstruction  SkillName = "Construction"
	SkillSummoning     SkillName = "Summoning"
	SkillDungeoneering SkillName = "Dungeoneering"
	SkillDivination    SkillName = "Divination"
	SkillInvention     SkillName = "Invention"
	SkillArchaeology   SkillName = "Archaeology"
	SkillNecromancy    SkillName = "Necromancy"
)

// SkillMap maps Jagex skill ids to skill names
var SkillMap = map[int]SkillName{
	0:  SkillAttack,
	1:  SkillDefence,
	2:  SkillStrength,
	3:  SkillConstitution,
	4:  SkillRanged,
	5:  SkillPrayer,
	6:  SkillMagic,
	7:  SkillCooking,
	8:  SkillWoodcutting,
	9:  SkillFletching,
	10: SkillFishing,
	11: SkillFiremaking,
	12: SkillCrafting,
	13: SkillSmithing,
	14: SkillMining,
	15: SkillHerblore,
	16: SkillAgility,
	17: SkillThieving,
	18: SkillSlayer,
	19: SkillFarming,
	20: SkillRunecrafting,
	21: SkillHunter,
	22: SkillConstruction,
	23: SkillSummoning,
	24: SkillDungeoneering,
	25: SkillDivination,
	26: SkillInvention,
	27: SkillArchaeology,
	28: SkillNecromancy,
}

// SkillCategory groups skills for display
type SkillCategory string

const (
	CategoryCombat    SkillCategory = "Combat"
	CategoryGathering SkillCategory = "Gathering"
	CategoryArtisan   SkillCategory = "Artisan"
	CategorySupport   SkillCategory = "Support"
)

// SkillCategories lists skills per category
var SkillCategories = map[SkillCategory][]SkillName{
	CategoryCombat: {
		SkillAttack, SkillStrength, SkillDefence, SkillConstitution, SkillRanged,
		SkillPrayer, SkillMagic, SkillSummoning, SkillNecromancy,
	},
	CategoryGathering: {
		SkillMining, SkillFishing, SkillWoodcutting, SkillFarming, SkillHunter, SkillDivination,
	},
	CategoryArtisan: {
		SkillSmithing, SkillCooking, SkillFiremaking, SkillFletching,
		SkillCrafting, SkillConstruction, SkillHerblore, SkillRunecrafting,
	},
	CategorySupport: {
		SkillAgility, SkillThieving, SkillSlayer, SkillDungeoneering, SkillInvention, SkillArchaeology,
	},
}

// CategoryOf returns the category a skill belongs to
func CategoryOf(name SkillName) (SkillCategory, bool) {
	for category, skills := range SkillCategories {
		for _, s := range skills {
			if s == name {
				return category, true
			}
		}
	}
	return "", false
}
