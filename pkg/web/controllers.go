package web

import (
	"context"
	"net/http"
	"strings"

	"taskboard/pkg/board"
	"taskboard/pkg/task"
	"taskboard/pkg/view"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

func (s *Server) BoardController(c *gin.Context) {
	q := strings.TrimSpace(c.Query("q"))
	v := s.board.RefreshSearch(c.Request.Context(), q)
	s.renderBoard(c, v, board.CreateForm{}, q)
}

func (s *Server) BoardJSONController(c *gin.Context) {
	q := strings.TrimSpace(c.Query("q"))
	v := s.board.RefreshSearch(c.Request.Context(), q)
	c.JSON(http.StatusOK, defaultSuccessResponse(v))
}

func (s *Server) CreateTaskController(c *gin.Context) {
	var form board.CreateForm
	if err := c.ShouldBind(&form); err != nil {
		log.Error().Err(err).Msg("Invalid create task form")
		s.renderError(c, http.StatusBadRequest, "create task", "Invalid form")
		return
	}

	v, kept, err := s.board.Create(c.Request.Context(), form)
	if err != nil {
		status := s.logMutationError(err, "create task", "")
		c.HTML(status, "board.tmpl", boardPage{Form: kept, Banner: err.Error(), APIURL: s.board.APIURL()})
		return
	}
	log.Info().Str("title", strings.TrimSpace(form.Title)).Msg("Task created")
	s.renderBoard(c, v, kept, "")
}

func (s *Server) UpdateStatusController(c *gin.Context) {
	id := task.ID(c.Param("id"))
	v, err := s.board.UpdateStatus(c.Request.Context(), id, c.PostForm("status"))
	if err != nil {
		s.mutationFailed(c, err, "update task status", id)
		return
	}
	log.Info().Str("taskId", string(id)).Str("status", c.PostForm("status")).Msg("Task status updated")
	s.renderBoard(c, v, board.CreateForm{}, "")
}

// DeleteTaskController only deletes when the form carries confirm=yes;
// otherwise it answers with the confirmation page and sends nothing upstream.
func (s *Server) DeleteTaskController(c *gin.Context) {
	id := task.ID(c.Param("id"))
	confirmed := c.PostForm("confirm") == "yes"
	confirmer := board.ConfirmFunc(func(context.Context, string) bool {
		return confirmed
	})

	v, deleted, err := s.board.Delete(c.Request.Context(), id, confirmer)
	if err != nil {
		s.mutationFailed(c, err, "delete task", id)
		return
	}
	if !deleted {
		c.HTML(http.StatusOK, "confirm.tmpl", confirmPage{ID: id, Prompt: board.DeletePrompt, APIURL: s.board.APIURL()})
		return
	}
	log.Info().Str("taskId", string(id)).Msg("Task deleted")
	s.renderBoard(c, v, board.CreateForm{}, "")
}

func (s *Server) LivenessController(c *gin.Context) {
	c.JSON(http.StatusOK, defaultSuccessResponse(gin.H{"status": "ok"}))
}

func (s *Server) ReadinessController(c *gin.Context) {
	health, err := s.health.Health(c.Request.Context())
	if err != nil {
		log.Warn().Err(err).Str("apiUrl", s.board.APIURL()).Msg("Task API not ready")
		c.JSON(http.StatusServiceUnavailable, defaultErrorResponse(gin.H{
			"apiUrl": s.board.APIURL(),
			"reason": err.Error(),
		}))
		return
	}
	c.JSON(http.StatusOK, defaultSuccessResponse(gin.H{
		"apiUrl": s.board.APIURL(),
		"status": health.Status,
	}))
}

func (s *Server) renderBoard(c *gin.Context, v view.View, form board.CreateForm, q string) {
	c.HTML(http.StatusOK, "board.tmpl", boardPage{View: v, Form: form, Query: q, APIURL: s.board.APIURL()})
}

// mutationFailed logs the failure and shows it; the board is not refreshed,
// so what the user saw before the action is still what the server holds.
func (s *Server) mutationFailed(c *gin.Context, err error, action string, id task.ID) {
	status := s.logMutationError(err, action, id)
	s.renderError(c, status, action, err.Error())
}

func (s *Server) logMutationError(err error, action string, id task.ID) int {
	status := statusForError(err)
	log.Error().Err(err).Str("action", action).Str("taskId", string(id)).Int("status", status).Msg("Task mutation failed")
	return status
}

func (s *Server) renderError(c *gin.Context, status int, action string, message string) {
	c.HTML(status, "error.tmpl", errorPage{Action: action, Message: message, APIURL: s.board.APIURL()})
}
