package inbox

import "strings"

// keywords is matched as plain substrings against the lower-cased message.
// The order of categories here is the classification precedence.
var keywords = []struct {
	category Category
	words    []string
}{
	{CategoryDecisionNeeded, []string{"решить", "согласовать", "одобрить", "утвердить", "решение", "разрешить", "утверди", "согласова"}},
	{CategoryDelegate, []string{"поручить", "передать", "назначить", "пусть", "делегировать", "направить"}},
	{CategoryInfoOnly, []string{"fyi", "к сведению", "информирую", "сообщаю", "отчёт", "данные", "результат"}},
	{CategoryControlCheck, []string{"проверить", "контроль", "статус", "как дела", "что с", "где", "выполнено"}},
}

// Classify returns the first category whose keywords occur in message.
// Messages matching nothing fall back to CategoryInfoOnly.
func Classify(message string) Category {
	lowered := strings.ToLower(message)
	for _, group := range keywords {
		for _, kw := range group.words {
			if strings.Contains(lowered, kw) {
				return group.category
			}
		}
	}
	return CategoryInfoOnly
}

// Keywords returns a copy of the keyword list for a category.
func Keywords(c Category) []string {
	for _, group := range keywords {
		if group.category == c {
			return append([]string(nil), group.words...)
		}
	}
	return nil
}
