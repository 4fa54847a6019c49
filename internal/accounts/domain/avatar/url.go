// Package avatar строит URL внешнего сервиса генерации аватаров.
package avatar

import (
	"net/url"
	"sort"
	"strings"

	"goaccounts/internal/accounts/domain/entities"
)

// DefaultBaseURL - адрес сервиса аватаров по умолчанию.
const DefaultBaseURL = "https://api.dicebear.com/6.x/adventurer"

// Символы, которые encodeURIComponent оставляет как есть, а url.QueryEscape экранирует.
var componentUnescaper = strings.NewReplacer(
	"+", "%20",
	"%21", "!",
	"%27", "'",
	"%28", "(",
	"%29", ")",
	"%2A", "*",
)

// URL возвращает base + "/svg?seed=<seed>" и, при наличии параметров кроме seed,
// "&" + строку запроса с параметрами в порядке возрастания ключей.
func URL(baseURL, seed string, options map[string]entities.StyleValue) string {
	var b strings.Builder
	b.WriteString(strings.TrimRight(baseURL, "/"))
	b.WriteString("/svg?seed=")
	b.WriteString(EscapeComponent(seed))

	if query := EncodeOptions(options); query != "" {
		b.WriteByte('&')
		b.WriteString(query)
	}

	return b.String()
}

// Build строит URL и возвращает копию дескриптора с заполненным полем URL.
func Build(baseURL string, a entities.Avatar) entities.Avatar {
	a.URL = URL(baseURL, a.Seed, a.Options)
	return a
}

// EscapeComponent экранирует строку как encodeURIComponent.
func EscapeComponent(s string) string {
	return componentUnescaper.Replace(url.QueryEscape(s))
}

// EncodeOptions кодирует параметры: ключи без экранирования, значения по RFC 3986,
// массивы в виде key[]=a&key[]=b, пустые массивы пропускаются.
func EncodeOptions(options map[string]entities.StyleValue) string {
	keys := make([]string, 0, len(options))
	for k := range options {
		if k == entities.AvatarSeedKey || k == entities.AvatarURLKey {
			continue
		}
		keys = append(keys, k)
	}
	sort.Strings(keys)

	pairs := make([]string, 0, len(keys))
	for _, k := range keys {
		v := options[k]
		if !v.List {
			value := ""
			if len(v.Values) > 0 {
				value = v.Values[0]
			}
			pairs = append(pairs, k+"="+escapeValue(value))
			continue
		}
		for _, item := range v.Values {
			pairs = append(pairs, k+"[]="+escapeValue(item))
		}
	}

	return strings.Join(pairs, "&")
}

func escapeValue(s string) string {
	return strings.ReplaceAll(url.QueryEscape(s), "+", "%20")
}
