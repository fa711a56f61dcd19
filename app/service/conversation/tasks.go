package conversation

// Tasks is the session's to-do list. It is never persisted.
type Tasks struct {
	items []string
}

func (t *Tasks) Add(task string) {
	t.items = append(t.items, task)
}

func (t *Tasks) Items() []string {
	result := make([]string, len(t.items))
	copy(result, t.items)

	return result
}
