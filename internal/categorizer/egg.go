package categorizer

import "strings"

// EggGrade is the canonical grade of an egg line.
type EggGrade string

// Egg grades
const (
	EggLarge      EggGrade = "LARGE"
	EggMedium     EggGrade = "MEDIUM"
	EggSmall      EggGrade = "SMALL"
	EggBroken     EggGrade = "BROKEN"
	EggDoubleYolk EggGrade = "DOUBLE_YOLK"
	EggDirt       EggGrade = "DIRT"
)

var eggGradeRules = []struct {
	keywords []string
	name     string
	grade    EggGrade
}{
	{[]string{"LARGE", "CORRECT EGG", "EXPORT EGG", "CORRECT SIZE"}, "LARGE EGG", EggLarge},
	{[]string{"MEDIUM"}, "MEDIUM EGG", EggMedium},
	{[]string{"SMALL"}, "SMALL EGG", EggSmall},
	{[]string{"BROKEN", "BREAK"}, "BROKEN EGG", EggBroken},
	{[]string{"DOUBLE", "YOLK"}, "DOUBLE YOLK EGG", EggDoubleYolk},
	{[]string{"DIRT", "SOIL"}, "DIRT EGG", EggDirt},
}

// NormalizeEggName maps the many spellings of an egg line to a canonical name and grade.
// Names that do not look like eggs are returned unchanged with an empty grade.
func NormalizeEggName(name string) (string, EggGrade) {
	upper := normalizeName(name)
	if upper == "" {
		return name, ""
	}
	for _, rule := range eggGradeRules {
		for _, k := range rule.keywords {
			if strings.Contains(upper, k) {
				return rule.name, rule.grade
			}
		}
	}
	if strings.Contains(upper, "EGG") {
		return "LARGE EGG", EggLarge
	}
	return name, ""
}
