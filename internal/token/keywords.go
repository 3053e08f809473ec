package token

var keywords = map[string]Kind{
	"class": KwClass,
	"def":   KwDef,
	"end":   KwEnd,
}

// LookupKeyword возвращает тип ключевого слова. Регистр важен.
func LookupKeyword(ident string) (Kind, bool) {
	k, ok := keywords[ident]
	return k, ok
}
