package engine

import "strings"

// ExtractFields runs the vendor's single-line pattern rules and block
// scans over the document lines and returns the fields that matched.
// Absence of a match is never an error; the field is simply omitted.
//
// Re-running ExtractFields on identical input yields identical output:
// nothing here depends on state outside the arguments.
func ExtractFields(rs RuleSet, lines []string) map[string]string {
	out := make(map[string]string)

	text := strings.Join(lines, "\n")
	for _, rule := range rs.FieldRules() {
		m := rule.Pattern.FindStringSubmatch(text)
		if len(m) < 2 {
			continue
		}
		v := CollapseWhitespace(m[1])
		if v == "" {
			continue
		}
		if _, done := out[rule.Field]; !done {
			out[rule.Field] = v
		}
	}

	for field, v := range rs.BlockFields(lines) {
		if v == "" {
			continue
		}
		if _, done := out[field]; !done {
			out[field] = v
		}
	}
	return out
}

// blockState is the scanner state for one block field.
type blockState int

const (
	stateSearching blockState = iota
	stateAccumulating
	stateDone
)

// blockScanner is the small state machine behind bounded-window block
// extraction: SEARCHING until the trigger line, ACCUMULATING subsequent
// lines until a blank line, a stop match, or window exhaustion, then DONE
// once a non-empty block has been emitted.
//
// An accumulation that terminates with an empty buffer does not emit;
// the scanner resumes searching so a later trigger can still win. Once a
// block has been emitted the scanner ignores every further trigger:
// first successful extraction wins.
type blockScanner struct {
	rule   BlockRule
	state  blockState
	buf    []string
	budget int
	out    string
}

func newBlockScanner(rule BlockRule) *blockScanner {
	return &blockScanner{rule: rule}
}

// feed consumes one line and returns true once the scanner is done.
func (s *blockScanner) feed(line string) bool {
	switch s.state {
	case stateDone:
		return true

	case stateSearching:
		if s.rule.Trigger.MatchString(line) {
			s.state = stateAccumulating
			s.buf = s.buf[:0]
			s.budget = s.rule.Window
		}
		return false

	case stateAccumulating:
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || (s.rule.Stop != nil && s.rule.Stop.MatchString(line)) {
			s.finish()
			return s.state == stateDone
		}
		s.buf = append(s.buf, trimmed)
		s.budget--
		if s.budget <= 0 {
			s.finish()
		}
		return s.state == stateDone
	}
	return false
}

// finish emits the accumulated block, or falls back to searching when the
// window closed without collecting anything.
func (s *blockScanner) finish() {
	if len(s.buf) == 0 {
		s.state = stateSearching
		return
	}
	s.out = CollapseWhitespace(strings.Join(s.buf, " "))
	s.state = stateDone
}

// result returns the emitted block, finalizing a scan still accumulating
// at end of input.
func (s *blockScanner) result() string {
	if s.state == stateAccumulating {
		s.finish()
	}
	return s.out
}

// scanBlock runs one bounded-window scan over the whole line sequence.
func scanBlock(lines []string, rule BlockRule) string {
	s := newBlockScanner(rule)
	for _, line := range lines {
		if s.feed(line) {
			break
		}
	}
	return s.result()
}
