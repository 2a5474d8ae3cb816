package roman

const (
	MinValue = 1
	MaxValue = 3999

	// MaxNumeralLen is the length of the longest canonical numeral (MMMDCCCLXXXVIII).
	MaxNumeralLen = 15

	maxRepeat = 3
)

// Fragment is one greedy encoding step: a weight and the letters that spell it.
type Fragment struct {
	Weight int
	Text   string
}

// SymbolTable holds the letter weights and the descending fragment list.
// The zero value is unusable; use Standard.
type SymbolTable struct {
	weights   [128]int
	fragments [13]Fragment
}

var standard = &SymbolTable{
	weights: [128]int{
		'I': 1,
		'V': 5,
		'X': 10,
		'L': 50,
		'C': 100,
		'D': 500,
		'M': 1000,
	},
	fragments: [13]Fragment{
		{1000, "M"},
		{900, "CM"},
		{500, "D"},
		{400, "CD"},
		{100, "C"},
		{90, "XC"},
		{50, "L"},
		{40, "XL"},
		{10, "X"},
		{9, "IX"},
		{5, "V"},
		{4, "IV"},
		{1, "I"},
	},
}

// Standard returns the classical symbol table shared by every Converter.
func Standard() *SymbolTable {
	return standard
}

// Weight returns the value of one upper-case numeral letter.
func (t *SymbolTable) Weight(letter byte) (int, bool) {
	if letter >= byte(len(t.weights)) {
		return 0, false
	}
	w := t.weights[letter]
	return w, w > 0
}

// Fragments returns a copy of the encoding table, largest weight first.
func (t *SymbolTable) Fragments() []Fragment {
	out := make([]Fragment, len(t.fragments))
	copy(out, t.fragments[:])
	return out
}

func (t *SymbolTable) weight(letter byte) int {
	w, _ := t.Weight(letter)
	return w
}
