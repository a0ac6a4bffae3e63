package v1

import (
	"net/http"
	"strconv"

	"go-talent-marketplace/internal/delivery/http/response"
	"go-talent-marketplace/internal/domain"
	"go-talent-marketplace/pkg/apperror"

	"github.com/gin-gonic/gin"
)

type MessageHandler struct {
	messageUC domain.MessageUsecase
}

// NewMessageHandler registers messaging routes
func NewMessageHandler(r *gin.RouterGroup, messageUC domain.MessageUsecase) {
	handler := &MessageHandler{messageUC: messageUC}

	messages := r.Group("/messages")
	{
		messages.POST("", handler.SendMessage)
		messages.GET("/conversation", handler.GetConversation)
		messages.GET("/partners/:userId", handler.GetPartners)
		messages.GET("/unread/:userId", handler.GetUnread)
		messages.PUT("/:id/read", handler.MarkAsRead)
		messages.DELETE("/:id", handler.DeleteMessage)
	}
}

// SendMessageRequest is the request payload for sending a message.
// Content is deliberately not required: blank messages are accepted.
type SendMessageRequest struct {
	SenderID   int64  `json:"sender_id" binding:"required"`
	ReceiverID int64  `json:"receiver_id" binding:"required"`
	Content    string `json:"content"`
}

// SendMessage godoc
// @Summary      Send a direct message
// @Description  Persist a message and push it to the receiver's live session if connected
// @Tags         messages
// @Accept       json
// @Produce      json
// @Param        body  body      SendMessageRequest  true  "Message data"
// @Success      201   {object}  response.Response{data=domain.Message}
// @Failure      404   {object}  response.Response
// @Router       /messages [post]
// @Security     BearerAuth
func (h *MessageHandler) SendMessage(c *gin.Context) {
	var req SendMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.BadRequest(err.Error()))
		return
	}

	msg, err := h.messageUC.Send(c, req.SenderID, req.ReceiverID, req.Content)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusCreated, "Message sent", msg)
}

// GetConversation godoc
// @Summary      Get a conversation
// @Description  Get the full message history between two users, oldest first
// @Tags         messages
// @Produce      json
// @Param        userId1  query     int  true  "First user ID"
// @Param        userId2  query     int  true  "Second user ID"
// @Success      200      {object}  response.Response{data=[]domain.Message}
// @Failure      404      {object}  response.Response
// @Router       /messages/conversation [get]
// @Security     BearerAuth
func (h *MessageHandler) GetConversation(c *gin.Context) {
	userA, err := strconv.ParseInt(c.Query("userId1"), 10, 64)
	if err != nil {
		c.Error(apperror.BadRequest("Invalid userId1"))
		return
	}
	userB, err := strconv.ParseInt(c.Query("userId2"), 10, 64)
	if err != nil {
		c.Error(apperror.BadRequest("Invalid userId2"))
		return
	}

	messages, err := h.messageUC.GetConversation(c, userA, userB)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Conversation retrieved", messages)
}

// GetPartners godoc
// @Summary      Get conversation partners
// @Description  Get the distinct users this user has exchanged messages with
// @Tags         messages
// @Produce      json
// @Param        userId  path      int  true  "User ID"
// @Success      200     {object}  response.Response{data=[]domain.User}
// @Failure      404     {object}  response.Response
// @Router       /messages/partners/{userId} [get]
// @Security     BearerAuth
func (h *MessageHandler) GetPartners(c *gin.Context) {
	userID, err := strconv.ParseInt(c.Param("userId"), 10, 64)
	if err != nil {
		c.Error(apperror.BadRequest("Invalid user ID"))
		return
	}

	partners, err := h.messageUC.GetPartners(c, userID)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Partners retrieved", partners)
}

// GetUnread godoc
// @Summary      Get unread messages
// @Description  Get undeleted unread messages addressed to the user
// @Tags         messages
// @Produce      json
// @Param        userId  path      int  true  "User ID"
// @Success      200     {object}  response.Response{data=[]domain.Message}
// @Failure      404     {object}  response.Response
// @Router       /messages/unread/{userId} [get]
// @Security     BearerAuth
func (h *MessageHandler) GetUnread(c *gin.Context) {
	userID, err := strconv.ParseInt(c.Param("userId"), 10, 64)
	if err != nil {
		c.Error(apperror.BadRequest("Invalid user ID"))
		return
	}

	messages, err := h.messageUC.GetUnread(c, userID)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Unread messages retrieved", messages)
}

// MarkAsRead godoc
// @Summary      Mark a message as read
// @Description  Idempotent; re-marking an already-read message succeeds
// @Tags         messages
// @Produce      json
// @Param        id  path      int  true  "Message ID"
// @Success      200 {object}  response.Response
// @Failure      404 {object}  response.Response
// @Router       /messages/{id}/read [put]
// @Security     BearerAuth
func (h *MessageHandler) MarkAsRead(c *gin.Context) {
	msgID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.Error(apperror.BadRequest("Invalid message ID"))
		return
	}

	if err := h.messageUC.MarkAsRead(c, msgID); err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Message marked as read", nil)
}

// DeleteMessage godoc
// @Summary      Delete a message
// @Description  Tombstones the message; it disappears from conversation and unread views
// @Tags         messages
// @Produce      json
// @Param        id  path      int  true  "Message ID"
// @Success      200 {object}  response.Response
// @Failure      404 {object}  response.Response
// @Router       /messages/{id} [delete]
// @Security     BearerAuth
func (h *MessageHandler) DeleteMessage(c *gin.Context) {
	msgID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.Error(apperror.BadRequest("Invalid message ID"))
		return
	}

	if err := h.messageUC.DeleteMessage(c, msgID); err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Message deleted", nil)
}
