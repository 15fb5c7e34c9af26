package store

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/hotelrisk/riskadvisor/internal/cache"
	"github.com/hotelrisk/riskadvisor/internal/model"
)

const openTasksLimit = 20

// ListOpenTasks returns every task in the Sales system that is not done.
func (c *Client) ListOpenTasks(ctx context.Context) ([]model.Task, error) {
	key := cache.Key("tasks", "open")
	if c.cache != nil {
		if data, found := c.cache.Get(key); found {
			var cached []model.Task
			if err := json.Unmarshal(data, &cached); err == nil {
				return cached, nil
			}
		}
	}

	records, err := c.listRecords(ctx, c.cfg.SalesBaseID, c.cfg.TasksTableID, listOptions{
		FilterFormula: openTasksFormula(),
		MaxRecords:    openTasksLimit,
	})
	if err != nil {
		return nil, err
	}

	tasks := make([]model.Task, 0, len(records))
	for _, rec := range records {
		tasks = append(tasks, decodeTask(rec))
	}

	if c.cache != nil {
		if data, err := json.Marshal(tasks); err == nil {
			_ = c.cache.Set(key, data, c.cacheTTL)
		}
	}
	return tasks, nil
}

// TaskSummary counts tasks by status across the full tracker.
func (c *Client) TaskSummary(ctx context.Context) (model.TaskSummary, error) {
	records, err := c.listRecords(ctx, c.cfg.SalesBaseID, c.cfg.TasksTableID, listOptions{})
	if err != nil {
		return model.TaskSummary{}, err
	}

	summary := model.TaskSummary{Total: len(records)}
	for _, rec := range records {
		switch fieldString(rec.Fields, "Task Status") {
		case model.TaskDone:
			summary.Done++
		case model.TaskInProgress:
			summary.InProgress++
		case model.TaskTodo:
			summary.Todo++
		}
	}
	return summary, nil
}

// AddTask creates a new to-do entry. The company name is folded into the
// notes field; priority must already be canonical (High, Medium, Low).
func (c *Client) AddTask(ctx context.Context, company, description, priority string) error {
	notes := fmt.Sprintf("%s\n\n%s: added %s", description, company,
		time.Now().Format("01/02/2006 03:04 PM"))

	_, err := c.createRecord(ctx, c.cfg.SalesBaseID, c.cfg.TodoTableID, map[string]any{
		"Notes":    notes,
		"Status":   model.TaskTodo,
		"Priority": priority,
	})
	if err != nil {
		return err
	}

	if c.cache != nil {
		_ = c.cache.Delete(cache.Key("tasks", "open"))
	}
	return nil
}

func decodeTask(rec record) model.Task {
	f := rec.Fields
	return model.Task{
		ID:         rec.ID,
		Name:       fieldString(f, "Name"),
		Status:     fieldString(f, "Task Status"),
		Priority:   fieldString(f, "Priority"),
		DueDate:    fieldString(f, "Due Date"),
		AssignedTo: fieldString(f, "CAM"),
		Notes:      fieldString(f, "Notes"),
	}
}
