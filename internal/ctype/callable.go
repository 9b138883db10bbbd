package ctype

import "strings"

// CallableString renders t's functional string remapped into a string
// safe to splice directly into a generated identifier (spec §3.1's
// monomorphized-name requirement, C8: `genericName_arg1_arg2_...`). Letters
// and digits pass through; ASCII punctuation is remapped into the letter
// ranges A-V and a-f, `|` to z, `~` to y, and every other rune (including
// `{`, `}` and space) to `_`. Equal functional strings always produce the
// same callable string; because remapped punctuation lands on letters that
// also pass through unchanged, distinct functional strings can collide.
func CallableString(t CType) string {
	base := t.FunctionalString()
	if alias, ok := t.(TypeAlias); ok {
		if _, isBinds := alias.Inner.(Binds); isBinds {
			base = alias.Name
		}
	}
	var b strings.Builder
	b.Grow(len(base))
	for _, c := range base {
		b.WriteRune(remapRune(c))
	}
	return b.String()
}

func remapRune(c rune) rune {
	switch {
	case c >= '0' && c <= '9':
		return c
	case c >= 'a' && c <= 'z':
		return c
	case c >= 'A' && c <= 'Z':
		return c
	case c >= '!' && c <= '/':
		return c + 32 // '!'..'/' -> 'A'..'O'
	case c >= ':' && c <= '@':
		return c + 22 // ':'..'@' -> 'P'..'V'
	case c >= '[' && c <= '`':
		return c + 6 // '['..'`' -> 'a'..'f'
	case c == '|':
		return 'z'
	case c == '~':
		return 'y'
	default:
		return '_'
	}
}
