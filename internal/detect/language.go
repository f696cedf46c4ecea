package detect

// languageRange is a unicode script range mapped to a language code.
// Ranges are tested in declaration order; the first range containing any
// character of the text wins.
type languageRange struct {
	code string
	lo   rune
	hi   rune
}

var languageRanges = []languageRange{
	{"hi", 0x0900, 0x097F}, // Devanagari
	{"te", 0x0C00, 0x0C7F}, // Telugu
	{"ta", 0x0B80, 0x0BFF}, // Tamil
	{"ml", 0x0D00, 0x0D7F}, // Malayalam
}

var languageNames = map[string]string{
	"en": "English",
	"hi": "Hindi",
	"te": "Telugu",
	"ta": "Tamil",
	"ml": "Malayalam",
}

// LanguageDetector classifies text by unicode script. Stateless.
type LanguageDetector struct{}

// NewLanguageDetector creates a new language detector
func NewLanguageDetector() *LanguageDetector {
	return &LanguageDetector{}
}

// Detect returns the language code of the text, defaulting to "en" when no
// script range matches. No mixed-language scoring.
func (d *LanguageDetector) Detect(text string) string {
	for _, lr := range languageRanges {
		for _, r := range text {
			if r >= lr.lo && r <= lr.hi {
				return lr.code
			}
		}
	}
	return "en"
}

// GetLanguageName returns the display name for a language code.
func (d *LanguageDetector) GetLanguageName(code string) string {
	if name, ok := languageNames[code]; ok {
		return name
	}
	return "English"
}
