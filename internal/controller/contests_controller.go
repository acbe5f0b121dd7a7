package controller

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"minioj/internal/contest"
	"minioj/internal/model"
	"minioj/internal/service"
	"minioj/pkg/utils/response"
)

// ContestsController handles contest management and ranklist endpoints.
type ContestsController struct {
	contestService *service.ContestService
}

// NewContestsController creates a new ContestsController.
func NewContestsController(contestService *service.ContestService) *ContestsController {
	return &ContestsController{contestService: contestService}
}

// ContestRequest defines the create/update payload. An omitted id means
// create; problem_ids and user_ids may be present but empty.
type ContestRequest struct {
	ID              *int   `json:"id"`
	Name            string `json:"name" binding:"required"`
	From            string `json:"from" binding:"required"`
	To              string `json:"to" binding:"required"`
	ProblemIDs      *[]int `json:"problem_ids" binding:"required"`
	UserIDs         *[]int `json:"user_ids" binding:"required"`
	SubmissionLimit *int   `json:"submission_limit" binding:"required"`
}

// Save creates (no id) or replaces (id > 0) a contest.
func (h *ContestsController) Save(c *gin.Context) {
	var req ContestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request parameters")
		return
	}

	id := -1
	if req.ID != nil {
		id = *req.ID
	}
	saved, err := h.contestService.SaveContest(model.Contest{
		ID:              id,
		Name:            req.Name,
		From:            req.From,
		To:              req.To,
		ProblemIDs:      *req.ProblemIDs,
		UserIDs:         *req.UserIDs,
		SubmissionLimit: *req.SubmissionLimit,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, saved)
}

// List returns the user-created contests.
func (h *ContestsController) List(c *gin.Context) {
	response.OK(c, h.contestService.ListContests())
}

// Get returns one contest by id, including the global contest 0.
func (h *ContestsController) Get(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid contest id")
		return
	}
	found, err := h.contestService.GetContest(id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, found)
}

// Ranklist returns the contest's ranked standings.
func (h *ContestsController) Ranklist(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid contest id")
		return
	}
	rule, err := contest.ParseScoringRule(c.Query("scoring_rule"))
	if err != nil {
		response.Error(c, err)
		return
	}
	tie, err := contest.ParseTieBreaker(c.Query("tie_breaker"))
	if err != nil {
		response.Error(c, err)
		return
	}

	entries, err := h.contestService.Ranklist(id, rule, tie)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, entries)
}
