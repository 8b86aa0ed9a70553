package inbox

import "strings"

const senderToken = "{sender}"

type draftTemplate struct {
	priority Priority
	action   string
	response string
}

var drafts = map[Category]draftTemplate{
	CategoryDecisionNeeded: {
		priority: PriorityP1,
		action:   "Подготовить аналитическую записку и вынести на рассмотрение.",
		response: "{sender}, получил. Вопрос рассмотрю, дам ответ до конца рабочего дня. " +
			"Подготовьте краткую аналитическую записку с вариантами решения.",
	},
	CategoryDelegate: {
		priority: PriorityP2,
		action:   "Определить исполнителя и поставить задачу через PDCA-трекер.",
		response: "{sender}, принято. Задача будет делегирована профильному подразделению. " +
			"Прошу обеспечить контроль исполнения и доложить о результате.",
	},
	CategoryInfoOnly: {
		priority: PriorityP3,
		action:   "Принять к сведению, при необходимости — занести в базу знаний.",
		response: "{sender}, информация получена. Принято к сведению. " +
			"Если потребуются дополнительные данные — запрошу.",
	},
	CategoryControlCheck: {
		priority: PriorityP2,
		action:   "Запросить статус у исполнителя, обновить PDCA-фазу.",
		response: "{sender}, статус вопроса уточняется. " +
			"Исполнитель предоставит обновление в ближайшее время.",
	},
}

var fallbackDraft = draftTemplate{
	priority: PriorityP3,
	action:   "Принять к сведению.",
	response: "{sender}, сообщение получено.",
}

// Draft is the canned reply and follow-up for a category.
type Draft struct {
	Priority          Priority
	RecommendedAction string
	Response          string
}

// DraftFor fills the category's template with the sender name.
// Categories outside the fixed set get a generic acknowledgment at P3.
func DraftFor(category Category, sender string) Draft {
	tmpl, ok := drafts[category]
	if !ok {
		tmpl = fallbackDraft
	}
	return Draft{
		Priority:          tmpl.priority,
		RecommendedAction: tmpl.action,
		Response:          strings.ReplaceAll(tmpl.response, senderToken, sender),
	}
}
