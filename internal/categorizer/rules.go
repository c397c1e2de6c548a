package categorizer

// Rules are the ordered vocabularies the classifier is built from.
type Rules struct {
	EggPhrases       []string `yaml:"egg_phrases" json:"egg_phrases"`
	FeedPhrases      []string `yaml:"feed_phrases" json:"feed_phrases"`
	MedicineNames    []string `yaml:"medicine_names" json:"medicine_names"`
	MedicineKeywords []string `yaml:"medicine_keywords" json:"medicine_keywords"`
	// SizeWords are the bare egg grades the auto-correct rule recognizes.
	SizeWords []string `yaml:"size_words" json:"size_words"`
	// EggUnits are the units that make a bare size word an egg count.
	EggUnits []string `yaml:"egg_units" json:"egg_units"`
}

// DefaultRules returns the vocabularies used by the poultry ledgers.
func DefaultRules() Rules {
	return Rules{
		EggPhrases: []string{
			"LARGE EGG", "MEDIUM EGG", "SMALL EGG", "CORRECT EGG", "EXPORT EGG", "CORRECT SIZE",
		},
		FeedPhrases: []string{
			"LAYER MASH", "GROWER MASH", "PRE LAYER MASH",
			"LAYER MASH BULK", "GROWER MASH BULK", "PRE LAYER MASH BULK",
		},
		MedicineNames: []string{
			"D3 FORTE", "VETMULIN", "OXYCYCLINE", "TIAZIN", "BPPS FORTE", "CTC", "SHELL GRIT",
			"ROVIMIX", "CHOLIMARIN", "ZAGROMIN", "G PRO NATURO", "NECROVET", "TOXOL",
			"FRA C12 DRY", "CALCI ROYAL FS", "CALDLIV FS", "RESPAFEED", "VENTRIM (VITAL)",
		},
		MedicineKeywords: []string{"GRIT", "D3", "FRA", "VET", "CTC", "NECRO", "TOX", "ROVIMIX"},
		SizeWords:        []string{"LARGE", "SMALL", "MEDIUM"},
		EggUnits:         []string{"NOS", "NO"},
	}
}

// Merge fills every empty list in r from defaults.
func (r Rules) Merge(defaults Rules) Rules {
	if len(r.EggPhrases) == 0 {
		r.EggPhrases = defaults.EggPhrases
	}
	if len(r.FeedPhrases) == 0 {
		r.FeedPhrases = defaults.FeedPhrases
	}
	if len(r.MedicineNames) == 0 {
		r.MedicineNames = defaults.MedicineNames
	}
	if len(r.MedicineKeywords) == 0 {
		r.MedicineKeywords = defaults.MedicineKeywords
	}
	if len(r.SizeWords) == 0 {
		r.SizeWords = defaults.SizeWords
	}
	if len(r.EggUnits) == 0 {
		r.EggUnits = defaults.EggUnits
	}
	return r
}
