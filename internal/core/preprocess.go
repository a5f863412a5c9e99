package core

import (
	"sort"
	"strconv"
	"strings"
)

// Program is the preprocessed, ready-to-execute form of a source file: an
// ordered sequence of lines, 1-indexed for PC access (spec §3).
type Program struct {
	Lines []string
}

// Line fetches the line at the given 1-based PC.
func (p *Program) Line(pc int) (string, error) {
	if pc < 1 || pc > len(p.Lines) {
		return "", &OutOfBoundsProgramCounter{PC: pc}
	}
	return p.Lines[pc-1], nil
}

// Len returns the number of lines in the program.
func (p *Program) Len() int { return len(p.Lines) }

const dataSectionMarker = "DATA:"

// Preprocess runs the two passes of spec §4.7 over raw source text and
// returns a Program ready for indexed execution.
func Preprocess(source string) (*Program, error) {
	lines := splitLines(source)

	programLines, dataLines := splitDataSection(lines)

	data, err := parseDataSection(dataLines)
	if err != nil {
		return nil, err
	}
	programLines = applySubstitutions(programLines, data)

	if err := resolveFunctionLabels(programLines); err != nil {
		return nil, err
	}

	return &Program{Lines: programLines}, nil
}

func splitLines(source string) []string {
	raw := strings.Split(source, "\n")
	out := make([]string, len(raw))
	for i, l := range raw {
		out[i] = strings.TrimSuffix(l, "\r")
	}
	return out
}

// splitDataSection implements pass A's split step: locate the *last* line
// that reads "DATA:" once surrounding whitespace is trimmed, and split the
// source there.
func splitDataSection(lines []string) (program, data []string) {
	marker := -1
	for i, l := range lines {
		if strings.TrimSpace(l) == dataSectionMarker {
			marker = i
		}
	}
	if marker == -1 {
		return lines, nil
	}
	return lines[:marker], lines[marker+1:]
}

func isCommentOrBlank(line string) bool {
	trimmed := strings.TrimSpace(line)
	return trimmed == "" || strings.HasPrefix(trimmed, "//")
}

// parseDataSection turns the data lines following DATA: into a key->value
// substitution map (spec §4.7 pass A).
func parseDataSection(lines []string) (map[string]string, error) {
	data := make(map[string]string)
	for _, raw := range lines {
		line := strings.TrimLeft(raw, " \t")
		if isCommentOrBlank(line) {
			continue
		}

		fields := strings.Fields(line)
		key := fields[0]
		if !isScreamingSnakeCase(key) {
			return nil, &InvalidKeyFormat{Key: key}
		}
		if len(fields) < 2 {
			return nil, &MissingValue{Key: key}
		}
		data[key] = fields[1]
	}
	return data, nil
}

// applySubstitutions performs the textual key->value replace over the
// whole program text, per spec §4.7 pass A.
func applySubstitutions(programLines []string, data map[string]string) []string {
	if len(data) == 0 {
		return programLines
	}

	keys := make([]string, 0, len(data))
	for k := range data {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	text := strings.Join(programLines, "\n")
	for _, k := range keys {
		text = strings.ReplaceAll(text, k, data[k])
	}
	return strings.Split(text, "\n")
}

// resolveFunctionLabels implements pass B of spec §4.7: collects `fn
// name:` labels (rewriting each such line to a no-op per the fall-through
// policy decision recorded in SPEC_FULL.md), then resolves every `call`
// site's argument to a line number in place.
func resolveFunctionLabels(lines []string) error {
	labels := make(map[string]int)

	for i, raw := range lines {
		trimmed := strings.TrimSpace(raw)
		if isCommentOrBlank(trimmed) {
			continue
		}

		fields := strings.Fields(trimmed)
		if fields[0] != "fn" {
			continue
		}

		if len(fields) < 2 {
			return ErrMissingFunctionName
		}
		token := fields[1]
		if !strings.HasSuffix(token, ":") {
			return ErrMissingColonSuffix
		}
		label := strings.TrimSuffix(token, ":")
		if !isSnakeCase(label) {
			return &InvalidFunctionNameFormat{Name: label}
		}
		if IsMnemonic(label) {
			return ErrFunctionNamedAfterInstruction
		}
		if _, exists := labels[label]; exists {
			return &DuplicateFunctionName{Name: label}
		}

		// The fn line is the (i+1)'th 1-based line; the body's first
		// instruction is the line after it.
		labels[label] = i + 2
		lines[i] = "nop"
	}

	for i, raw := range lines {
		trimmed := strings.TrimSpace(raw)
		if isCommentOrBlank(trimmed) {
			continue
		}
		fields := strings.Fields(trimmed)
		if fields[0] != "call" || len(fields) < 2 {
			continue
		}

		arg := fields[1]
		if target, ok := labels[arg]; ok {
			lines[i] = "call " + strconv.Itoa(target)
			continue
		}
		if _, err := strconv.ParseUint(arg, 10, 64); err == nil {
			continue
		}
		return &UndefinedFunctionCalled{Name: arg}
	}

	return nil
}

func isSnakeCase(s string) bool {
	if s == "" {
		return false
	}
	for _, c := range s {
		if !(c >= 'a' && c <= 'z') && !(c >= '0' && c <= '9') && c != '_' {
			return false
		}
	}
	return true
}

func isScreamingSnakeCase(s string) bool {
	if s == "" {
		return false
	}
	for _, c := range s {
		if !(c >= 'A' && c <= 'Z') && !(c >= '0' && c <= '9') && c != '_' {
			return false
		}
	}
	return true
}
