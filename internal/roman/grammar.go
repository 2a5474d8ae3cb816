package roman

import (
	"regexp"
	"strings"
)

// canonicalPattern is the declarative form of checkGrammar.
var canonicalPattern = regexp.MustCompile(`^M{0,3}(CM|CD|D?C{0,3})(XC|XL|L?X{0,3})(IX|IV|V?I{0,3})$`)

// MatchPattern reports whether s is a canonical numeral according to the
// compiled pattern. s must already be trimmed and upper-case.
func MatchPattern(s string) bool {
	return s != "" && canonicalPattern.MatchString(s)
}

// magnitude is one decimal group below the thousands: its unit, five and ten letters.
type magnitude struct {
	one, five, ten byte
}

var magnitudes = [...]magnitude{
	{'C', 'D', 'M'},
	{'X', 'L', 'C'},
	{'I', 'V', 'X'},
}

type scanner struct {
	table *SymbolTable
	s     string
	pos   int
	last  byte
}

func (sc *scanner) at(i int) byte {
	if i < len(sc.s) {
		return sc.s[i]
	}
	return 0
}

func (sc *scanner) run(letter byte) int {
	n := 0
	for sc.at(sc.pos+n) == letter {
		n++
	}
	return n
}

func (sc *scanner) advance(n int) {
	sc.pos += n
	sc.last = sc.s[sc.pos-1]
}

func (sc *scanner) tooMany(letter byte, n int) *Error {
	return newError(KindInvalidRepetition, sc.s, sc.pos,
		"%s repeats %d times, at most %d allowed", string(letter), n, maxRepeat)
}

// thousands accepts M{0,3}.
func (sc *scanner) thousands() *Error {
	n := sc.run('M')
	if n > maxRepeat {
		return sc.tooMany('M', n)
	}
	if n > 0 {
		sc.advance(n)
	}
	return nil
}

// group accepts one magnitude: empty, 1-3 units, unit+five, unit+ten, or five
// followed by 0-3 units.
func (sc *scanner) group(m magnitude) *Error {
	switch sc.at(sc.pos) {
	case m.one:
		n := sc.run(m.one)
		if n > maxRepeat {
			return sc.tooMany(m.one, n)
		}
		next := sc.at(sc.pos + n)
		if next != m.five && next != m.ten {
			sc.advance(n)
			return nil
		}
		if n > 1 {
			return newError(KindInvalidSubtraction, sc.s, sc.pos,
				"%s cannot be subtracted from %s", strings.Repeat(string(m.one), n), string(next))
		}
		sc.advance(2)
	case m.five:
		sc.advance(1)
		n := sc.run(m.one)
		if n > maxRepeat {
			return sc.tooMany(m.one, n)
		}
		if n > 0 {
			sc.advance(n)
		}
	}
	return nil
}

// trailing classifies the first letter no group could take.
func (sc *scanner) trailing() *Error {
	letter := sc.s[sc.pos]
	if sc.table.weight(letter) > sc.table.weight(sc.last) {
		return newError(KindInvalidSubtraction, sc.s, sc.pos,
			"%s cannot follow %s", string(letter), string(sc.s[:sc.pos]))
	}
	if letter == sc.last {
		return newError(KindInvalidRepetition, sc.s, sc.pos,
			"%s cannot repeat here", string(letter))
	}
	return newError(KindInvalidRepetition, sc.s, sc.pos,
		"%s is out of order after %s", string(letter), string(sc.s[:sc.pos]))
}

// checkGrammar walks s once, group by group in decreasing magnitude. s is
// normalized and non-empty.
func (c *Converter) checkGrammar(s string) *Error {
	sc := scanner{table: c.table, s: s}
	if err := sc.thousands(); err != nil {
		return err
	}
	for _, m := range magnitudes {
		if err := sc.group(m); err != nil {
			return err
		}
	}
	if sc.pos < len(s) {
		return sc.trailing()
	}
	return nil
}
