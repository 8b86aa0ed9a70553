package httpserver

import (
	"errors"

	"github.com/gin-gonic/gin"

	"inboxassist/internal/domain/inbox"
	"inboxassist/internal/domain/task"
	"inboxassist/internal/interfaces/httpserver/response"
)

var errMessageRequired = errors.New("message is required")

// routeRequest keeps Sender as a pointer: an omitted sender becomes
// inbox.DefaultSender, an explicit empty one stays empty.
type routeRequest struct {
	Message *string `json:"message"`
	Sender  *string `json:"sender"`
}

// routeMessage classifies a message and drafts a reply.
// @Summary Route an inbox message
// @Description Classify the message into decision_needed, delegate, info_only or control_check and draft a reply.
// @Tags Inbox
// @Accept json
// @Produce json
// @Param body body routeRequest true "message and optional sender"
// @Success 200 {object} response.Resp{data=inbox.Result}
// @Failure 400 {object} response.Resp
// @Router /api/v1/inbox/route [post]
func (srv *HTTPServer) routeMessage(c *gin.Context) {
	var req routeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, err)
		return
	}
	if req.Message == nil {
		response.Error(c, errMessageRequired)
		return
	}

	sender := inbox.DefaultSender
	if req.Sender != nil {
		sender = *req.Sender
	}

	result := inbox.Route(*req.Message, sender)
	srv.l.Debugf(c.Request.Context(), "Routed message from %s as %s", result.Sender, result.Classification)

	response.OK(c, result)
}

// listTasks returns open PDCA tasks ordered by priority.
// @Summary List open tasks
// @Tags Tasks
// @Produce json
// @Success 200 {object} response.Resp
// @Router /api/v1/tasks [get]
func (srv *HTTPServer) listTasks(c *gin.Context) {
	tasks, err := srv.tasks.ListOpen(c.Request.Context())
	if err != nil {
		srv.l.Errorf(c.Request.Context(), "List tasks: %v", err)
		response.InternalError(c, err)
		return
	}
	if tasks == nil {
		tasks = []*task.Task{}
	}
	response.OK(c, tasks)
}

// morningBriefing renders the Markdown morning briefing.
// @Summary Morning briefing
// @Tags Reports
// @Produce json
// @Success 200 {object} response.Resp
// @Router /api/v1/reports/briefing [get]
func (srv *HTTPServer) morningBriefing(c *gin.Context) {
	text, err := srv.reports.MorningBriefing(c.Request.Context())
	if err != nil {
		srv.l.Errorf(c.Request.Context(), "Morning briefing: %v", err)
		response.InternalError(c, err)
		return
	}
	response.OK(c, gin.H{"markdown": text})
}
