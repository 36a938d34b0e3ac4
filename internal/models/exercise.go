// ABOUTME: Exercise catalog with category groupings and cardio detection.
// ABOUTME: Ships the default catalog the program editor offers.
package models

// Catalog groups exercise names by category.
type Catalog map[string][]string

// CardioCategory is the catalog category whose members are countdown-based.
const CardioCategory = "Кардио"

// DefaultCatalog lists the stock exercises offered by the program editor.
var DefaultCatalog = Catalog{
	"Грудь":        {"Жим лёжа", "Жим гантелей", "Разводка гантелей", "Отжимания", "Жим в тренажёре", "Кроссовер"},
	"Спина":        {"Тяга штанги в наклоне", "Подтягивания", "Тяга верхнего блока", "Тяга гантели", "Становая тяга", "Гиперэкстензия"},
	"Плечи":        {"Жим стоя", "Жим сидя", "Махи гантелями в стороны", "Махи перед собой", "Тяга к подбородку"},
	"Руки":         {"Подъём штанги на бицепс", "Молотки", "Французский жим", "Разгибания на трицепс", "Отжимания на брусьях"},
	"Ноги":         {"Приседания со штангой", "Жим ногами", "Выпады", "Разгибания ног", "Сгибания ног", "Подъём на носки"},
	"Кор":          {"Планка", "Скручивания", "Подъём ног", "Русские скручивания", "Вакуум"},
	CardioCategory: {"Бег", "Велотренажёр", "Эллипс", "Скакалка", "Бёрпи"},
}

// IsCardio reports whether the named exercise runs as a countdown.
// "Скакалка" predates the cardio category and stays special-cased.
func (c Catalog) IsCardio(name string) bool {
	if name == "Скакалка" {
		return true
	}
	for _, n := range c[CardioCategory] {
		if n == name {
			return true
		}
	}
	return false
}
