package report

import (
	"fmt"
	"strings"
)

// DecisionMemo lays out an analytical note for a decision. The first option
// is the recommended one.
func (s *Service) DecisionMemo(topic, background string, options []string) (string, error) {
	if strings.TrimSpace(topic) == "" {
		return "", ErrNoTopic
	}

	recommended := "—"
	if len(options) > 0 {
		recommended = options[0]
	}

	var opts strings.Builder
	for i, o := range options {
		if i > 0 {
			opts.WriteString("\n")
		}
		fmt.Fprintf(&opts, "%d. %s", i+1, o)
	}

	sections := []string{
		fmt.Sprintf("# Аналитическая записка: %s", topic),
		fmt.Sprintf("_Дата: %s_\n", s.now().UTC().Format(dateLayout)),
		fmt.Sprintf("## 1. Масштаб проблемы (цифры)\n%s\n", background),
		"## 2. Специфика организации / наша позиция\n" +
			"Решение должно соответствовать стратегическим приоритетам " +
			"и минимизировать регуляторные и репутационные риски.\n",
		"## 3. Прогноз\n" +
			"- Краткосрочный (3–6 мес.): требует дополнительной аналитики.\n" +
			"- Долгосрочный (1–3 года): зависит от выбранного варианта.\n",
		"## 4. Связь с национальными приоритетами\n" +
			"Решение учитывает национальные цели: цифровая трансформация, " +
			"технологический суверенитет, социальная ответственность бизнеса.\n",
		"## 5. Международный контекст\n" +
			"Мировые тренды подтверждают актуальность. Лучшие практики рекомендуют " +
			"взвешенный подход с поэтапным внедрением изменений.\n",
		fmt.Sprintf("---\n\n## Варианты решения\n%s\n", opts.String()),
		fmt.Sprintf("## Рекомендация\n**Рекомендуемый вариант: %s**\n\n", recommended) +
			"Обоснование: оптимальный баланс скорости, управляемости рисков и стратегических " +
			"ориентиров. Приступить после согласования с профильными подразделениями.\n",
		"---\n_Окончательное решение остаётся за руководством._",
	}
	return strings.Join(sections, "\n"), nil
}
