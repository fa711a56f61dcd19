package conversation

const HistorySize = 15

// History keeps the most recent normalized input lines, oldest first.
type History struct {
	lines []string
}

func (h *History) Add(line string) {
	if len(h.lines) >= HistorySize {
		h.lines = append(h.lines[1:], line)
	} else {
		h.lines = append(h.lines, line)
	}
}

func (h *History) Lines() []string {
	result := make([]string, len(h.lines))
	copy(result, h.lines)

	return result
}

func (h *History) Len() int {
	return len(h.lines)
}
