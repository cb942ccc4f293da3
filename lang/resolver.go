package lang

import (
	"regexp"
	"strings"

	"github.com/adrg/strutil"
	"github.com/adrg/strutil/metrics"
)

// scoreThreshold — минимальная оценка сходства (по шкале 0–100),
// при которой кандидат считается найденным.
const scoreThreshold = 55

// Match — результат поиска языка по свободному запросу.
type Match struct {
	Code  string
	Name  string
	Score int
}

var (
	separatorRuns = regexp.MustCompile(`[_\-]+`)
	parenthesized = regexp.MustCompile(`\([^)]*\)`)
	spaceRuns     = regexp.MustCompile(`\s+`)
)

// Normalize приводит запрос к виду, в котором хранятся синонимы каталога:
// нижний регистр, подчёркивания и дефисы как пробелы, без скобочных частей.
func Normalize(query string) string {
	q := strings.ToLower(query)
	q = separatorRuns.ReplaceAllString(q, " ")
	q = parenthesized.ReplaceAllString(q, " ")
	q = spaceRuns.ReplaceAllString(q, " ")
	return strings.TrimSpace(q)
}

// Resolve ищет язык по свободному запросу. Сначала проверяется точное
// совпадение с кодом или синонимом, затем нечёткое сходство; кандидаты
// с оценкой ниже порога отбрасываются. nil — ничего похожего не найдено.
func Resolve(query string) *Match {
	q := Normalize(query)
	if q == "" {
		return nil
	}

	for _, e := range entries {
		if e.Code == q {
			return &Match{Code: e.Code, Name: e.Name, Score: 100}
		}
		for _, alias := range e.Aliases {
			if alias == q {
				return &Match{Code: e.Code, Name: e.Name, Score: 100}
			}
		}
	}

	lev := metrics.NewLevenshtein()
	var best *Match
	for _, e := range entries {
		for _, alias := range e.Aliases {
			score := int(strutil.Similarity(q, alias, lev) * 100)
			if best == nil || score > best.Score {
				best = &Match{Code: e.Code, Name: e.Name, Score: score}
			}
		}
	}

	if best == nil || best.Score < scoreThreshold {
		return nil
	}
	return best
}
