package state

import "github.com/adanyl0v/go-todo-board/internal/models"

type Stats struct {
	Total        int
	Completed    int
	Pending      int
	HighPriority int
	// CompletionRate is a percentage in [0, 100].
	CompletionRate float64
}

func ComputeStats(tasks []models.Task) Stats {
	var st Stats
	st.Total = len(tasks)
	for _, task := range tasks {
		if task.Completed {
			st.Completed++
		}
		if task.Priority == models.PriorityHigh {
			st.HighPriority++
		}
	}
	st.Pending = st.Total - st.Completed
	if st.Total > 0 {
		st.CompletionRate = float64(st.Completed) / float64(st.Total) * 100
	}
	return st
}
