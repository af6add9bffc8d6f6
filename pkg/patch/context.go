package patch

// findContext locates the first position at or after start where the context
// lines occur contiguously in lines. It returns the half-open [start, end)
// line range of the match.
//
// When eof is true a window that runs exactly one line past the end of the
// file is still accepted provided only the final context line is missing; this
// models hunks that target the tail of a file whose context slightly exceeds
// the remaining lines. An empty context matches trivially at start with a
// zero-length span.
func findContext(lines, context []string, start int, eof bool) (int, int, error) {
	if len(context) == 0 {
		return start, start, nil
	}

	for i := start; i < len(lines); i++ {
		matched := true
		end := i + len(context)
		for j, ctx := range context {
			if i+j >= len(lines) {
				if eof && j == len(context)-1 {
					return i, i + j, nil
				}
				matched = false
				break
			}
			if lines[i+j] != ctx {
				matched = false
				break
			}
		}
		if matched {
			return i, end, nil
		}
	}

	return 0, 0, &Error{Code: CodeContextNotFound, Message: "Context not found"}
}
