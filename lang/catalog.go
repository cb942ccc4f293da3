package lang

import "strings"

// Entry описывает язык каталога: код, каноническое имя и синонимы.
// Синонимы хранятся уже в нормализованном виде (см. Normalize).
type Entry struct {
	Code    string
	Name    string
	Aliases []string
}

// Порядок записей фиксирован: при равных оценках нечёткого поиска
// побеждает более ранняя запись.
var entries = []Entry{
	{"en", "English", []string{"english", "eng"}},
	{"ru", "Russian", []string{"russian", "rus", "русский"}},
	{"uk", "Ukrainian", []string{"ukrainian", "ukr", "українська"}},
	{"de", "German", []string{"german", "deutsch", "ger"}},
	{"fr", "French", []string{"french", "francais", "fra"}},
	{"es", "Spanish", []string{"spanish", "espanol", "spa"}},
	{"pt", "Portuguese", []string{"portuguese", "portugues", "brazil"}},
	{"it", "Italian", []string{"italian", "italiano"}},
	{"pl", "Polish", []string{"polish", "polski"}},
	{"tr", "Turkish", []string{"turkish", "turkce"}},
	{"sv", "Swedish", []string{"swedish", "svenska"}},
	{"no", "Norwegian", []string{"norwegian", "norsk"}},
	{"da", "Danish", []string{"danish", "dansk"}},
	{"fi", "Finnish", []string{"finnish", "suomi"}},
	{"nl", "Dutch", []string{"dutch", "nederlands"}},
	{"cs", "Czech", []string{"czech", "cestina"}},
	{"sk", "Slovak", []string{"slovak"}},
	{"hu", "Hungarian", []string{"hungarian", "magyar"}},
	{"ro", "Romanian", []string{"romanian"}},
	{"bg", "Bulgarian", []string{"bulgarian"}},
	{"el", "Greek", []string{"greek"}},
	{"sr", "Serbian", []string{"serbian"}},
	{"lt", "Lithuanian", []string{"lithuanian"}},
	{"lv", "Latvian", []string{"latvian"}},
	{"et", "Estonian", []string{"estonian"}},
	{"kk", "Kazakh", []string{"kazakh"}},
	{"zh", "Chinese", []string{"chinese", "mandarin"}},
	{"ja", "Japanese", []string{"japanese"}},
	{"ko", "Korean", []string{"korean"}},
	{"ar", "Arabic", []string{"arabic"}},
	{"he", "Hebrew", []string{"hebrew"}},
	{"hi", "Hindi", []string{"hindi"}},
	{"th", "Thai", []string{"thai"}},
	{"vi", "Vietnamese", []string{"vietnamese"}},
	{"fa", "Persian", []string{"persian", "farsi"}},
}

// Entries возвращает каталог в фиксированном порядке.
func Entries() []Entry {
	return entries
}

// Name возвращает читаемое имя языка по коду. Неизвестный код отображается
// в верхнем регистре, пустой — как "UNKNOWN".
func Name(code string) string {
	code = strings.ToLower(strings.TrimSpace(code))
	if code == "" {
		return "UNKNOWN"
	}
	for _, e := range entries {
		if e.Code == code {
			return e.Name
		}
	}
	return strings.ToUpper(code)
}
