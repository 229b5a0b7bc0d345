package pretranslate

// Locale is the platform-side view of a locale: the slug used throughout the
// record store plus the English name used when prompting the completion model.
type Locale struct {
	Slug        string
	EnglishName string
}

// LocaleBySlug resolves a platform locale slug. Slugs without a registered
// English name fall back to the slug itself so prompts stay well-formed.
func LocaleBySlug(slug string) Locale {
	if name, ok := localeEnglishNames[slug]; ok {
		return Locale{Slug: slug, EnglishName: name}
	}
	return Locale{Slug: slug, EnglishName: slug}
}

var localeEnglishNames = map[string]string{
	"bg":    "Bulgarian",
	"cs":    "Czech",
	"da":    "Danish",
	"de":    "German",
	"el":    "Greek",
	"en-gb": "English (UK)",
	"es":    "Spanish",
	"et":    "Estonian",
	"fi":    "Finnish",
	"fr":    "French",
	"hu":    "Hungarian",
	"id":    "Indonesian",
	"it":    "Italian",
	"ja":    "Japanese",
	"ko":    "Korean",
	"lt":    "Lithuanian",
	"lv":    "Latvian",
	"nb":    "Norwegian (Bokmål)",
	"nl":    "Dutch",
	"pl":    "Polish",
	"pt":    "Portuguese (Portugal)",
	"pt-br": "Portuguese (Brazil)",
	"ro":    "Romanian",
	"ru":    "Russian",
	"sk":    "Slovak",
	"sl":    "Slovenian",
	"sv":    "Swedish",
	"tr":    "Turkish",
	"uk":    "Ukrainian",
	"zh-cn": "Chinese (China)",
}

// deeplLocales maps platform locale slugs to DeepL target language codes.
// Slugs not listed here are unsupported by the DeepL strategy.
var deeplLocales = map[string]string{
	"bg":    "BG",
	"cs":    "CS",
	"da":    "DA",
	"de":    "DE",
	"el":    "EL",
	"en-gb": "EN-GB",
	"es":    "ES",
	"et":    "ET",
	"fi":    "FI",
	"fr":    "FR",
	"hu":    "HU",
	"id":    "ID",
	"it":    "IT",
	"ja":    "JA",
	"ko":    "KO",
	"lt":    "LT",
	"lv":    "LV",
	"nb":    "NB",
	"nl":    "NL",
	"pl":    "PL",
	"pt":    "PT-PT",
	"pt-br": "PT-BR",
	"ro":    "RO",
	"ru":    "RU",
	"sk":    "SK",
	"sl":    "SL",
	"sv":    "SV",
	"tr":    "TR",
	"uk":    "UK",
	"zh-cn": "ZH",
}

// DeepLLocale converts a platform locale slug to the DeepL language code.
// Returns "" for unsupported locales; callers must treat that as a rejection,
// not an error.
func DeepLLocale(slug string) string {
	return deeplLocales[slug]
}

// langFormality is the default formality hint per DeepL language code.
var langFormality = map[string]string{
	"BG":    "prefer_more",
	"CS":    "prefer_less",
	"DA":    "prefer_less",
	"DE":    "prefer_less",
	"EL":    "prefer_more",
	"EN-GB": "prefer_less",
	"ES":    "prefer_less",
	"ET":    "prefer_less",
	"FI":    "prefer_less",
	"FR":    "prefer_more",
	"HU":    "prefer_more",
	"ID":    "prefer_more",
	"IT":    "prefer_less",
	"JA":    "prefer_more",
	"KO":    "prefer_less",
	"LT":    "prefer_more",
	"LV":    "prefer_less",
	"NB":    "prefer_less",
	"NL":    "prefer_less",
	"PL":    "prefer_less",
	"PT-BR": "prefer_less",
	"PT-PT": "prefer_more",
	"RO":    "prefer_less",
	"RU":    "prefer_more",
	"SK":    "prefer_less",
	"SL":    "prefer_less",
	"SV":    "prefer_less",
	"TR":    "prefer_less",
	"UK":    "prefer_more",
	"ZH":    "prefer_more",
}

// Formality returns the DeepL formality hint for a language code. German and
// Dutch formal variants (set slug "formal") always request the formal
// register, overriding the per-language default. Unknown codes get "default".
func Formality(deeplCode, setSlug string) string {
	if (deeplCode == "DE" || deeplCode == "NL") && setSlug == "formal" {
		return "prefer_more"
	}
	if f, ok := langFormality[deeplCode]; ok {
		return f
	}
	return "default"
}
