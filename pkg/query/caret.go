package query

// CaretUnknown is the caret reported by a detached input or one without a
// selection. It is distinct from 0, the start of the query.
const CaretUnknown = -1

// WordSpan returns the rune offsets [start, end) of the space-delimited word that
// contains caret. A caret between two spaces, or outside the query, yields an empty
// span.
func WordSpan(value string, caret int) (start, end int) {
	runes := []rune(value)
	if caret < 0 {
		return 0, 0
	}
	if caret > len(runes) {
		return len(runes), len(runes)
	}

	start, end = caret, caret
	for start > 0 && runes[start-1] != ' ' {
		start--
	}
	for end < len(runes) && runes[end] != ' ' {
		end++
	}
	return start, end
}

// WordAt returns the word under caret. An empty word is a valid result.
func WordAt(value string, caret int) string {
	start, end := WordSpan(value, caret)
	if start == end {
		return ""
	}
	return string([]rune(value)[start:end])
}
