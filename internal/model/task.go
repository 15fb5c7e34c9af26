package model

// Task statuses in the Sales system task tracker.
const (
	TaskTodo       = "Todo"
	TaskInProgress = "In progress"
	TaskDone       = "Done"
)

// Task is a to-do entry in the Sales system.
type Task struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Status     string `json:"status"`
	Priority   string `json:"priority,omitempty"` // High, Medium or Low
	DueDate    string `json:"due_date,omitempty"`
	AssignedTo string `json:"assigned_to,omitempty"`
	Notes      string `json:"notes,omitempty"`
}

// TaskSummary is the progress breakdown shown by /status.
type TaskSummary struct {
	Total      int `json:"total"`
	Done       int `json:"done"`
	InProgress int `json:"in_progress"`
	Todo       int `json:"todo"`
}
