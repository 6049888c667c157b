package formula

import (
	"strings"

	"github.com/xuri/efp"
)

// operandFunc maps a range operand to its replacement. ok is false when
// the operand is left alone.
type operandFunc func(operand string) (replacement string, ok bool)

// rewriteOperands tokenizes formula and passes every range operand to fn.
// Replacements are spliced into the original text so that whitespace,
// casing and array constants survive untouched. The formula is returned
// unchanged, with changed=false, when nothing was replaced or when the
// tokens cannot be located in the source text.
func rewriteOperands(formula string, fn operandFunc) (string, bool) {
	prefix, body := "", formula
	if strings.HasPrefix(body, "=") {
		prefix, body = "=", body[1:]
	}
	if !strings.ContainsAny(body, "!:$") && !containsDigit(body) {
		return formula, false
	}

	ps := efp.ExcelParser()
	tokens := ps.Parse(body)

	var out strings.Builder
	cursor := 0
	changed := false
	for _, token := range tokens {
		if token.TType == efp.TokenTypeUnknown {
			return formula, false
		}
		text, idx := locate(body[cursor:], token)
		if text == "" {
			continue
		}
		if idx < 0 {
			if isRangeOperand(token) || isTextOperand(token) {
				return formula, false
			}
			// Synthetic tokens such as ARRAY for {..} have no source text.
			continue
		}
		start := cursor + idx
		end := start + len(text)

		if isRangeOperand(token) {
			if replacement, ok := fn(text); ok && replacement != text {
				out.WriteString(body[cursor:start])
				out.WriteString(replacement)
				cursor = end
				changed = true
				continue
			}
		}
		out.WriteString(body[cursor:end])
		cursor = end
	}

	if !changed {
		return formula, false
	}
	out.WriteString(body[cursor:])
	return prefix + out.String(), true
}

// locate finds the source text of token in s. The tokenizer drops the
// quotes around a sheet name and collapses doubled quotes inside it, so
// range operands are also looked up with their first sheet prefix quoted.
// The earliest match wins, which keeps a lookup from landing inside a
// later string literal.
func locate(s string, token efp.Token) (string, int) {
	text := tokenText(token)
	if text == "" {
		return "", -1
	}
	idx := strings.Index(s, text)
	if !isRangeOperand(token) {
		return text, idx
	}
	bang := strings.Index(token.TValue, "!")
	if bang <= 0 || strings.HasPrefix(token.TValue, "'") {
		return text, idx
	}
	sheet := token.TValue[:bang]
	quoted := "'" + strings.ReplaceAll(sheet, "'", "''") + "'" + token.TValue[bang:]
	if q := strings.Index(s, quoted); q >= 0 && (idx < 0 || q < idx) {
		return quoted, q
	}
	return text, idx
}

// tokenText returns the text a token occupies in the formula source.
func tokenText(token efp.Token) string {
	switch {
	case isTextOperand(token):
		return `"` + strings.ReplaceAll(token.TValue, `"`, `""`) + `"`
	case token.TType == efp.TokenTypeFunction && token.TSubType == efp.TokenSubTypeStart:
		return token.TValue + "("
	}
	return token.TValue
}

func isRangeOperand(token efp.Token) bool {
	return token.TType == efp.TokenTypeOperand && token.TSubType == efp.TokenSubTypeRange
}

func isTextOperand(token efp.Token) bool {
	return token.TType == efp.TokenTypeOperand && token.TSubType == efp.TokenSubTypeText
}

func containsDigit(s string) bool {
	return strings.ContainsAny(s, "0123456789")
}

// indexOutsideQuotes returns the index of the first ch at or after from
// that is not inside a quoted sheet name, or -1.
func indexOutsideQuotes(s string, ch byte, from int) int {
	quoted := false
	for i := 0; i < len(s); i++ {
		switch {
		case s[i] == '\'':
			quoted = !quoted
		case !quoted && i >= from && s[i] == ch:
			return i
		}
	}
	return -1
}

// splitOperand splits a range operand into sides that each carry their
// own sheet prefix, as in Sheet1!A1:Sheet1!B2 or A1:Sheet1!B2. An operand
// with a single prefix, 3D ones such as Sheet1:Sheet3!A1:B2 included,
// comes back as one side.
func splitOperand(operand string) []string {
	colon := indexOutsideQuotes(operand, ':', 0)
	bang := indexOutsideQuotes(operand, '!', 0)
	if colon < 0 || bang < 0 {
		return []string{operand}
	}
	if colon < bang {
		// Sheet1:Sheet3!A1 keeps its colon; A1:Sheet1!B2 splits.
		if c, ok := parseCellRef(operand[:colon]); !ok || !c.hasCol || !c.hasRow {
			return []string{operand}
		}
		return append([]string{operand[:colon]}, splitOperand(operand[colon+1:])...)
	}
	next := indexOutsideQuotes(operand, ':', bang)
	if next < 0 || indexOutsideQuotes(operand, '!', next) < 0 {
		return []string{operand}
	}
	return append([]string{operand[:next]}, splitOperand(operand[next+1:])...)
}

// ReplaceSheetName rewrites references to oldName so they point at
// newName. Sheet names compare case-insensitively; newName may be passed
// quoted or bare and is quoted in the output only when required. Each
// side of a 3D reference (Sheet1:Sheet3!A1) and of a range whose corners
// both carry a sheet (Sheet1!A1:Sheet1!B2) is matched on its own.
// References into external workbooks ([1]Sheet1!A1) are never touched.
func ReplaceSheetName(formula, oldName, newName string) (string, bool) {
	oldName = UnquoteSheetName(oldName)
	newName = UnquoteSheetName(newName)
	if oldName == "" {
		return formula, false
	}
	lower := strings.ToLower(formula)
	escaped := strings.ReplaceAll(oldName, "'", "''")
	if !strings.Contains(lower, strings.ToLower(oldName)) && !strings.Contains(lower, strings.ToLower(escaped)) {
		return formula, false
	}

	return rewriteOperands(formula, func(operand string) (string, bool) {
		sides := splitOperand(operand)
		hit := false
		for i, side := range sides {
			renamed, ok := renameSheet(side, oldName, newName)
			if ok {
				sides[i] = renamed
				hit = true
			}
		}
		if !hit {
			return "", false
		}
		return strings.Join(sides, ":"), true
	})
}

// renameSheet renames oldName in the sheet prefix of a single-sided operand.
func renameSheet(operand, oldName, newName string) (string, bool) {
	sheet, ref, ok := SplitSheetRef(operand)
	if !ok {
		return "", false
	}
	names := strings.Split(UnquoteSheetName(sheet), ":")
	if len(names) > 2 {
		return "", false
	}
	hit := false
	for i, name := range names {
		if strings.HasPrefix(name, "[") {
			return "", false
		}
		if strings.EqualFold(name, oldName) {
			names[i] = newName
			hit = true
		}
	}
	if !hit {
		return "", false
	}
	return quoteSheetRange(names) + "!" + ref, true
}

func quoteSheetRange(names []string) string {
	for _, name := range names {
		if needsQuoting(name) {
			escaped := make([]string, len(names))
			for i, n := range names {
				escaped[i] = strings.ReplaceAll(n, "'", "''")
			}
			return "'" + strings.Join(escaped, ":") + "'"
		}
	}
	return strings.Join(names, ":")
}

// ShiftReferences moves every relative row and column part of the
// references in formula by dRow rows and dCol columns, as pasting a
// copied cell does. Absolute parts ($A$1) keep their position. A
// reference pushed off the sheet becomes #REF!.
func ShiftReferences(formula string, dRow, dCol int) (string, bool) {
	if dRow == 0 && dCol == 0 {
		return formula, false
	}

	return rewriteOperands(formula, func(operand string) (string, bool) {
		sides := splitOperand(operand)
		if len(sides) == 1 {
			return shiftOperand(operand, dRow, dCol)
		}
		for i, side := range sides {
			shifted, ok := shiftOperand(side, dRow, dCol)
			if !ok {
				return "", false
			}
			if strings.HasSuffix(shifted, RefError) {
				if sheet, _, hasSheet := SplitSheetRef(sides[0]); hasSheet {
					return sheet + "!" + RefError, true
				}
				return RefError, true
			}
			sides[i] = shifted
		}
		return strings.Join(sides, ":"), true
	})
}

func shiftOperand(operand string, dRow, dCol int) (string, bool) {
	sheet, ref, hasSheet := SplitSheetRef(operand)
	refs, ok := parseAreaRef(ref)
	if !ok {
		return "", false
	}

	parts := make([]string, len(refs))
	for i, r := range refs {
		shifted, inside := r.shift(dRow, dCol)
		if !inside {
			if hasSheet {
				return sheet + "!" + RefError, true
			}
			return RefError, true
		}
		parts[i] = shifted.String()
	}

	out := strings.Join(parts, ":")
	if hasSheet {
		out = sheet + "!" + out
	}
	return out, true
}

// SheetRefs returns the distinct sheet names referenced by formula, in
// order of first appearance, unquoted.
func SheetRefs(formula string) []string {
	var names []string
	seen := make(map[string]bool)

	body := strings.TrimPrefix(formula, "=")
	if !strings.Contains(body, "!") {
		return nil
	}
	ps := efp.ExcelParser()
	for _, token := range ps.Parse(body) {
		if !isRangeOperand(token) {
			continue
		}
		for _, side := range splitOperand(token.TValue) {
			sheet, _, ok := SplitSheetRef(side)
			if !ok {
				continue
			}
			for _, name := range strings.Split(UnquoteSheetName(sheet), ":") {
				key := strings.ToLower(name)
				if name == "" || seen[key] {
					continue
				}
				seen[key] = true
				names = append(names, name)
			}
		}
	}
	return names
}
