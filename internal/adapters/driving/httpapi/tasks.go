package httpapi

import (
	"net/http"

	"github.com/custodia-labs/taskd/internal/core/domain"
)

type listTasksResponse struct {
	Success bool           `json:"success"`
	Data    []taskResponse `json:"data"`
	Count   int            `json:"count"`
}

type taskEnvelope struct {
	Success bool         `json:"success"`
	Data    taskResponse `json:"data"`
	Message string       `json:"message,omitempty"`
}

type messageResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

func (s *Server) handleListTasks(w http.ResponseWriter, r *http.Request) {
	var filter domain.TaskFilter
	if q := r.URL.Query(); q.Has("completed") {
		completed, err := domain.ParseCompleted(q.Get("completed"))
		if err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		filter.Completed = &completed
	}

	tasks, err := s.tasks.List(r.Context(), filter)
	if err != nil {
		s.writeServiceError(w, r, "list tasks", err)
		return
	}

	writeJSON(w, http.StatusOK, listTasksResponse{
		Success: true,
		Data:    toTaskResponses(tasks),
		Count:   len(tasks),
	})
}

func (s *Server) handleCreateTask(w http.ResponseWriter, r *http.Request) {
	var req createTaskRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	created, err := s.tasks.Create(r.Context(), req.toNewTask())
	if err != nil {
		s.writeServiceError(w, r, "create task", err)
		return
	}

	writeJSON(w, http.StatusCreated, taskEnvelope{
		Success: true,
		Data:    toTaskResponse(*created),
		Message: "task created",
	})
}

func (s *Server) handleGetTask(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	task, err := s.tasks.Get(r.Context(), id)
	if err != nil {
		s.writeServiceError(w, r, "get task", err)
		return
	}

	writeJSON(w, http.StatusOK, taskEnvelope{Success: true, Data: toTaskResponse(*task)})
}

func (s *Server) handleUpdateTask(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	var req updateTaskRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	patch, err := req.toPatch()
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	updated, err := s.tasks.Update(r.Context(), id, patch)
	if err != nil {
		s.writeServiceError(w, r, "update task", err)
		return
	}

	writeJSON(w, http.StatusOK, taskEnvelope{
		Success: true,
		Data:    toTaskResponse(*updated),
		Message: "task updated",
	})
}

func (s *Server) handleDeleteTask(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := s.tasks.Delete(r.Context(), id); err != nil {
		s.writeServiceError(w, r, "delete task", err)
		return
	}

	writeJSON(w, http.StatusOK, messageResponse{Success: true, Message: "task deleted"})
}
