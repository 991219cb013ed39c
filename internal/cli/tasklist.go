package cli

import (
	"fmt"
	"sort"

	"github.com/Damatnic/astral-planner/internal/models"
)

type TaskListCmd struct{}

func (c *TaskListCmd) Run(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}

	tasks, err := ctx.Store.GetAllTasks()
	if err != nil {
		return err
	}
	if len(tasks) == 0 {
		fmt.Println("No tasks found")
		return nil
	}

	// Highest priority first for readability; due dates break ties
	sort.SliceStable(tasks, func(i, j int) bool {
		return tasks[i].Priority.Rank() > tasks[j].Priority.Rank()
	})

	fmt.Println("Tasks:")
	for _, task := range tasks {
		priority := task.Priority
		if priority == "" {
			priority = models.PriorityMedium
		}
		fmt.Printf("  %s - %dm (%s)\n", task.Title, task.EffectiveDurationMin(), priority)
		if task.DueDate != nil {
			fmt.Printf("      Due: %s\n", task.DueDate.Format("2006-01-02 15:04"))
		}
		if task.Type != "" {
			fmt.Printf("      Type: %s\n", task.Type)
		}
		fmt.Printf("      ID: %s\n", task.ID)
	}

	return nil
}
