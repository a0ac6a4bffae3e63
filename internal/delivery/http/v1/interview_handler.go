package v1

import (
	"net/http"
	"strconv"

	"go-talent-marketplace/internal/delivery/http/response"
	"go-talent-marketplace/internal/domain"
	"go-talent-marketplace/pkg/apperror"

	"github.com/gin-gonic/gin"
)

type InterviewHandler struct {
	interviewUC domain.InterviewRequestUsecase
}

// NewInterviewHandler registers interview request routes
func NewInterviewHandler(r *gin.RouterGroup, interviewUC domain.InterviewRequestUsecase) {
	handler := &InterviewHandler{interviewUC: interviewUC}

	requests := r.Group("/interview-requests")
	{
		requests.POST("", handler.CreateRequest)
		requests.GET("/employer/:id", handler.ListByEmployer)
		requests.GET("/candidate/:id", handler.ListByCandidate)
		requests.PUT("/:id/status", handler.UpdateStatus)
		requests.DELETE("/:id", handler.DeleteRequest)
	}
}

// CreateInterviewRequest is the request payload for creating an interview request
type CreateInterviewRequest struct {
	EmployerID  int64  `json:"employer_id" binding:"required"`
	CandidateID int64  `json:"candidate_id" binding:"required"`
	Message     string `json:"message" binding:"required"`
}

// UpdateInterviewStatusRequest is the request payload for a status change.
// The HTTP surface constrains status to the known vocabulary; the store
// itself applies whatever it is handed.
type UpdateInterviewStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=PENDING ACCEPTED REJECTED WITHDRAWN"`
}

// CreateRequest godoc
// @Summary      Create an interview request
// @Description  Employer invites a candidate to interview; status starts at PENDING
// @Tags         interview-requests
// @Accept       json
// @Produce      json
// @Param        body  body      CreateInterviewRequest  true  "Request data"
// @Success      201   {object}  response.Response{data=domain.InterviewRequest}
// @Failure      403   {object}  response.Response
// @Failure      404   {object}  response.Response
// @Router       /interview-requests [post]
// @Security     BearerAuth
func (h *InterviewHandler) CreateRequest(c *gin.Context) {
	role := c.GetString(string(domain.KeyUserRole))
	if role != domain.RoleEmployer {
		c.Error(apperror.Forbidden("Only employers can create interview requests"))
		return
	}

	var req CreateInterviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.BadRequest(err.Error()))
		return
	}

	created, err := h.interviewUC.CreateRequest(c, req.EmployerID, req.CandidateID, req.Message)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusCreated, "Interview request created", created)
}

// ListByEmployer godoc
// @Summary      List requests by employer
// @Tags         interview-requests
// @Produce      json
// @Param        id  path      int  true  "Employer ID"
// @Success      200 {object}  response.Response{data=[]domain.InterviewRequest}
// @Failure      404 {object}  response.Response
// @Router       /interview-requests/employer/{id} [get]
// @Security     BearerAuth
func (h *InterviewHandler) ListByEmployer(c *gin.Context) {
	employerID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.Error(apperror.BadRequest("Invalid employer ID"))
		return
	}

	requests, err := h.interviewUC.ListByEmployer(c, employerID)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Interview requests retrieved", requests)
}

// ListByCandidate godoc
// @Summary      List requests by candidate
// @Tags         interview-requests
// @Produce      json
// @Param        id  path      int  true  "Candidate ID"
// @Success      200 {object}  response.Response{data=[]domain.InterviewRequest}
// @Failure      404 {object}  response.Response
// @Router       /interview-requests/candidate/{id} [get]
// @Security     BearerAuth
func (h *InterviewHandler) ListByCandidate(c *gin.Context) {
	candidateID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.Error(apperror.BadRequest("Invalid candidate ID"))
		return
	}

	requests, err := h.interviewUC.ListByCandidate(c, candidateID)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Interview requests retrieved", requests)
}

// UpdateStatus godoc
// @Summary      Update request status
// @Description  Unconditionally overwrites the status; there is no transition guard
// @Tags         interview-requests
// @Accept       json
// @Produce      json
// @Param        id    path      int                           true  "Request ID"
// @Param        body  body      UpdateInterviewStatusRequest  true  "Status update"
// @Success      200   {object}  response.Response{data=domain.InterviewRequest}
// @Failure      400   {object}  response.Response
// @Failure      404   {object}  response.Response
// @Router       /interview-requests/{id}/status [put]
// @Security     BearerAuth
func (h *InterviewHandler) UpdateStatus(c *gin.Context) {
	requestID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.Error(apperror.BadRequest("Invalid request ID"))
		return
	}

	var req UpdateInterviewStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.BadRequest(err.Error()))
		return
	}

	updated, err := h.interviewUC.UpdateStatus(c, requestID, req.Status)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Interview request status updated", updated)
}

// DeleteRequest godoc
// @Summary      Delete an interview request
// @Description  Hard delete; unlike messages there is no tombstone
// @Tags         interview-requests
// @Produce      json
// @Param        id  path      int  true  "Request ID"
// @Success      200 {object}  response.Response
// @Failure      404 {object}  response.Response
// @Router       /interview-requests/{id} [delete]
// @Security     BearerAuth
func (h *InterviewHandler) DeleteRequest(c *gin.Context) {
	requestID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.Error(apperror.BadRequest("Invalid request ID"))
		return
	}

	if err := h.interviewUC.DeleteRequest(c, requestID); err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Interview request deleted", nil)
}
