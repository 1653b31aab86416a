package todo

import "fmt"

// Task represents a single entry in the todo list.
type Task struct {
	Description string `json:"description"`
	Completed   bool   `json:"completed"`
}

// Marker returns the completion marker used by list output: "x" or " ".
func (t Task) Marker() string {
	if t.Completed {
		return "x"
	}
	return " "
}

// List is an ordered task collection. The position of a task in the slice
// is its user-facing index.
type List []Task

// IndexError reports an index outside [0, Len).
type IndexError struct {
	Index int
	Len   int
}

func (e *IndexError) Error() string {
	return fmt.Sprintf("task %d doesn't exist (list has %d tasks)", e.Index, e.Len)
}

// Add appends a new incomplete task with the given description.
func (l *List) Add(description string) {
	*l = append(*l, Task{Description: description})
}

// Remove deletes the task at index, shifting later tasks down by one.
// It returns the removed task.
func (l *List) Remove(index int) (Task, error) {
	if index < 0 || index >= len(*l) {
		return Task{}, &IndexError{Index: index, Len: len(*l)}
	}
	removed := (*l)[index]
	*l = append((*l)[:index], (*l)[index+1:]...)
	return removed, nil
}

// Complete marks the task at index as completed. Completing an already
// completed task is a no-op that still succeeds.
func (l List) Complete(index int) (Task, error) {
	if index < 0 || index >= len(l) {
		return Task{}, &IndexError{Index: index, Len: len(l)}
	}
	l[index].Completed = true
	return l[index], nil
}
