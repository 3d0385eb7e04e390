package api

import (
	"net/http"
	"slices"
	"time"

	"github.com/bornholm/producthub/internal/core/model"
	"github.com/bornholm/producthub/internal/core/port"
	httpx "github.com/bornholm/producthub/internal/http"
	"github.com/pkg/errors"
)

const labelTask = "Task"

type ListTasksResponse struct {
	Tasks []TaskStateHeader `json:"tasks"`
}

type TaskStateHeader struct {
	ID          model.TaskID    `json:"id"`
	Type        model.TaskType  `json:"type"`
	ScheduledAt time.Time       `json:"scheduledAt"`
	Status      port.TaskStatus `json:"status"`
}

func (h *Handler) listTasks(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	headers, err := h.services.TaskRunner.ListTasks(ctx)
	if err != nil {
		h.handleError(w, r, labelTask, errors.WithStack(err))
		return
	}

	slices.SortFunc(headers, func(h1, h2 port.TaskStateHeader) int {
		return h1.ScheduledAt.Compare(h2.ScheduledAt)
	})

	tasks := slices.Collect(func(yield func(TaskStateHeader) bool) {
		for _, h := range headers {
			if !yield(TaskStateHeader{ID: h.ID, Type: h.Type, ScheduledAt: h.ScheduledAt, Status: h.Status}) {
				return
			}
		}
	})
	if tasks == nil {
		tasks = make([]TaskStateHeader, 0)
	}

	res := ListTasksResponse{
		Tasks: tasks,
	}

	httpx.WriteJSON(w, r, http.StatusOK, res)
}

type ShowTaskResponse struct {
	Task *Task `json:"task"`
}

type Task struct {
	ID          model.TaskID    `json:"id"`
	Type        model.TaskType  `json:"type"`
	Status      port.TaskStatus `json:"status"`
	Progress    float32         `json:"progress"`
	ScheduledAt time.Time       `json:"scheduledAt"`
	FinishedAt  time.Time       `json:"finishedAt"`
	Error       string          `json:"error,omitempty"`
	Message     string          `json:"message"`
}

func (h *Handler) showTask(w http.ResponseWriter, r *http.Request) {
	taskID := model.TaskID(r.PathValue("taskID"))

	ctx := r.Context()

	taskState, err := h.services.TaskRunner.GetTaskState(ctx, taskID)
	if err != nil {
		h.handleError(w, r, labelTask, errors.WithStack(err))
		return
	}

	res := ShowTaskResponse{
		Task: &Task{
			ID:          taskID,
			Type:        taskState.Type,
			Status:      taskState.Status,
			Progress:    taskState.Progress,
			ScheduledAt: taskState.ScheduledAt,
			FinishedAt:  taskState.FinishedAt,
			Message:     taskState.Message,
		},
	}

	if taskState.Error != nil {
		res.Task.Error = taskState.Error.Error()
	}

	httpx.WriteJSON(w, r, http.StatusOK, res)
}

func (h *Handler) cancelTask(w http.ResponseWriter, r *http.Request) {
	taskID := model.TaskID(r.PathValue("taskID"))

	ctx := r.Context()

	if err := h.services.TaskRunner.CancelTask(ctx, taskID); err != nil {
		h.handleError(w, r, labelTask, errors.WithStack(err))
		return
	}

	httpx.WriteJSON(w, r, http.StatusOK, map[string]any{
		"message": "Task canceled",
		"taskId":  taskID,
	})
}
