package model

type Phrase struct {
	ID   int
	Text string
	Type PhraseType
}

// ClosingPhrase is shown once per bounded cycle, at total 99.
var ClosingPhrase = Phrase{
	ID:   100,
	Text: "لا إله إلا الله وحده لا شريك له، له الملك وله الحمد وهو على كل شيء قدير",
}

var phrases = map[PhraseType][]Phrase{
	PhraseTasbih: {
		{ID: 1, Text: "سُبْحَانَ اللَّهِ", Type: PhraseTasbih},
		{ID: 2, Text: "سُبْحَانَ اللَّهِ وَبِحَمْدِهِ", Type: PhraseTasbih},
		{ID: 3, Text: "سُبْحَانَ اللَّهِ الْعَظِيمِ", Type: PhraseTasbih},
		{ID: 4, Text: "سُبْحَانَ رَبِّيَ الْأَعْلَى", Type: PhraseTasbih},
	},
	PhraseTahmid: {
		{ID: 5, Text: "الْحَمْدُ لِلَّهِ", Type: PhraseTahmid},
		{ID: 6, Text: "الْحَمْدُ لِلَّهِ رَبِّ الْعَالَمِينَ", Type: PhraseTahmid},
		{ID: 7, Text: "الْحَمْدُ لِلَّهِ عَلَى كُلِّ حَالٍ", Type: PhraseTahmid},
	},
	PhraseTakbir: {
		{ID: 8, Text: "اللَّهُ أَكْبَرُ", Type: PhraseTakbir},
		{ID: 9, Text: "اللَّهُ أَكْبَرُ كَبِيرًا", Type: PhraseTakbir},
		{ID: 10, Text: "اللَّهُ أَكْبَرُ وَلِلَّهِ الْحَمْدُ", Type: PhraseTakbir},
	},
}

const sealLabel = "اختم"

var buttonLabels = map[PhraseType]string{
	PhraseTasbih: "سبّح",
	PhraseTahmid: "اِحْمَدْ",
	PhraseTakbir: "كبّر",
}

var categoryLabels = map[PhraseType]string{
	PhraseTasbih: "التسبيح",
	PhraseTahmid: "التحميد",
	PhraseTakbir: "التكبير",
}

// PhrasesFor returns the phrase list of a category. Lists need not be a
// multiple of CycleLength long; callers index with wraparound.
func PhrasesFor(t PhraseType) []Phrase {
	return phrases[t]
}

func CategoryLabelFor(t PhraseType) string {
	return categoryLabels[t]
}
