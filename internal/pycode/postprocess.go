// Package pycode post-processes model output before it is returned to the
// client: fence stripping, hallucinated-TODO removal, body restoration and
// docstring indentation normalization.
package pycode

import (
	"regexp"
	"strings"
)

// EmptySourceComment is returned as documented code for empty input.
const EmptySourceComment = "# Error: The provided source code is empty."

// syntaxTODO is the marker the prompt asks the model to add for broken code.
const syntaxTODO = "# TODO: Fix syntax error"

var (
	docstringRe = regexp.MustCompile(`(?s)"""(.*?)"""`)
	signatureRe = regexp.MustCompile(`def \w+\([^)]*\):`)
	bodyRe      = regexp.MustCompile(`(?s):\s*(.*)`)
)

// Postprocess runs the full cleanup pipeline on raw model output.
func Postprocess(raw, original string) string {
	out := StripFences(raw)
	out = Clean(out, original)
	out = FixIndentation(out)
	return strings.TrimSpace(out)
}

// StripFences removes accidental markdown code fences around the output.
func StripFences(output string) string {
	out := strings.TrimSpace(output)
	if strings.HasPrefix(out, "```python") {
		out = out[len("```python"):]
	}
	if strings.HasPrefix(out, "```") {
		out = out[len("```"):]
	}
	if strings.HasSuffix(out, "```") {
		out = out[:len(out)-len("```")]
	}
	return strings.TrimSpace(out)
}

// Clean removes hallucinated syntax TODO comments when the original code is
// valid, and restores the function body if the model stripped it.
func Clean(output, original string) string {
	lines := strings.Split(output, "\n")

	// only remove TODO comments if the original code is valid
	if IsValid(original) {
		kept := lines[:0]
		for _, line := range lines {
			if !strings.Contains(line, syntaxTODO) {
				kept = append(kept, line)
			}
		}
		lines = kept
	}

	cleaned := strings.TrimSpace(strings.Join(lines, "\n"))

	// restore missing body (rare, but safeguard)
	if strings.Count(cleaned, "def ") == 1 && !strings.Contains(cleaned, "return") {
		if docstring := docstringRe.FindString(cleaned); docstring != "" {
			if sig := signatureRe.FindString(cleaned); sig != "" {
				if bodyMatch := bodyRe.FindStringSubmatch(original); bodyMatch != nil {
					body := strings.TrimSpace(bodyMatch[1])
					return sig + "\n    " + docstring + "\n    " + body
				}
				return sig + "\n    " + docstring + "\n" + original
			}
		}
	}

	return cleaned
}

// FixIndentation ensures Args/Returns sections sit 4 spaces inside the
// docstring and their descriptions 8 spaces inside.
func FixIndentation(code string) string {
	lines := strings.Split(code, "\n")
	fixed := make([]string, 0, len(lines))

	inDocstring := false
	docstringIndent := 0

	for _, line := range lines {
		if !inDocstring {
			fixed = append(fixed, line)
			// a line with a single """ opens a docstring; two on one line
			// is a complete one-line docstring
			if strings.Count(line, `"""`) == 1 {
				inDocstring = true
				docstringIndent = indentOf(line)
			}
			continue
		}

		if strings.Contains(line, `"""`) {
			fixed = append(fixed, line)
			inDocstring = false
			docstringIndent = 0
			continue
		}

		stripped := strings.TrimLeft(line, " \t")
		switch {
		case hasSectionHeader(stripped):
			fixed = append(fixed, strings.Repeat(" ", docstringIndent+4)+stripped)
		case stripped != "":
			if indentOf(line) <= docstringIndent+4 {
				fixed = append(fixed, strings.Repeat(" ", docstringIndent+8)+stripped)
			} else {
				fixed = append(fixed, line)
			}
		default:
			fixed = append(fixed, line)
		}
	}

	return strings.Join(fixed, "\n")
}

func hasSectionHeader(stripped string) bool {
	for _, header := range []string{"Args:", "Returns:", "Yields:", "Raises:"} {
		if strings.HasPrefix(stripped, header) {
			return true
		}
	}
	return false
}

func indentOf(line string) int {
	return len(line) - len(strings.TrimLeft(line, " \t"))
}
