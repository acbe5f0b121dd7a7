// Package controller wires the HTTP surface onto the services.
package controller

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"minioj/internal/model"
	"minioj/internal/service"
	"minioj/pkg/utils/response"
)

// JobsController handles submission and job query endpoints.
type JobsController struct {
	judgeService *service.JudgeService
}

// NewJobsController creates a new JobsController.
func NewJobsController(judgeService *service.JudgeService) *JobsController {
	return &JobsController{judgeService: judgeService}
}

// SubmitRequest defines the submission payload. Integer ids are
// pointers so that a present zero survives required validation.
type SubmitRequest struct {
	SourceCode string `json:"source_code" binding:"required"`
	Language   string `json:"language" binding:"required"`
	UserID     *int   `json:"user_id" binding:"required"`
	ContestID  *int   `json:"contest_id" binding:"required"`
	ProblemID  *int   `json:"problem_id" binding:"required"`
}

// Submit judges a submission synchronously and returns the finished job.
func (h *JobsController) Submit(c *gin.Context) {
	var req SubmitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request parameters")
		return
	}

	job, err := h.judgeService.Submit(c.Request.Context(), model.Submission{
		SourceCode: req.SourceCode,
		Language:   req.Language,
		UserID:     *req.UserID,
		ContestID:  *req.ContestID,
		ProblemID:  *req.ProblemID,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, job)
}

// List returns the jobs matching the query filters.
func (h *JobsController) List(c *gin.Context) {
	var filter service.JobFilter
	for name, dst := range map[string]**int{
		"user_id":    &filter.UserID,
		"contest_id": &filter.ContestID,
		"problem_id": &filter.ProblemID,
	} {
		raw, ok := c.GetQuery(name)
		if !ok {
			continue
		}
		v, err := strconv.Atoi(raw)
		if err != nil {
			response.BadRequest(c, "Invalid query parameter "+name)
			return
		}
		*dst = &v
	}
	for name, dst := range map[string]**string{
		"user_name": &filter.UserName,
		"language":  &filter.Language,
		"from":      &filter.From,
		"to":        &filter.To,
	} {
		if raw, ok := c.GetQuery(name); ok {
			v := raw
			*dst = &v
		}
	}
	if raw, ok := c.GetQuery("state"); ok {
		state := model.State(raw)
		filter.State = &state
	}
	if raw, ok := c.GetQuery("result"); ok {
		result := model.CaseResult(raw)
		filter.Result = &result
	}

	jobs, err := h.judgeService.List(filter)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, jobs)
}

// Get returns one job by id.
func (h *JobsController) Get(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid job id")
		return
	}
	job, err := h.judgeService.Get(id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, job)
}

// Rejudge re-runs a finished job.
func (h *JobsController) Rejudge(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid job id")
		return
	}
	job, err := h.judgeService.Rejudge(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, job)
}
