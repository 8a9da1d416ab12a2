package v1

import (
	"net/http"

	"go-recruitment-chatbot/internal/delivery/http/response"
	"go-recruitment-chatbot/internal/domain"
	"go-recruitment-chatbot/pkg/apperror"

	"github.com/gin-gonic/gin"
)

type ChatHandler struct {
	chatUC domain.ChatUsecase
}

// ChatMessageRequest is the inbound WhatsApp gateway payload.
type ChatMessageRequest struct {
	Phone    string `json:"phone" binding:"required,valid_phone"`
	Message  string `json:"message" binding:"required,max=4096"`
	OriginID string `json:"origin_id" binding:"required"`
}

// NewChatHandler registers the chat webhook (public, rate limited upstream)
func NewChatHandler(public *gin.RouterGroup, chatUC domain.ChatUsecase) {
	handler := &ChatHandler{chatUC: chatUC}

	public.POST("/chat/message", handler.HandleMessage)
}

// HandleMessage godoc
// @Summary      Process an inbound chat message
// @Description  Receives one WhatsApp message, advances the candidate conversation and returns the reply.
// @Tags         chat
// @Accept       json
// @Produce      json
// @Param        message  body      ChatMessageRequest  true  "Inbound message"
// @Success      200      {object}  response.Response{data=domain.ChatReply}
// @Failure      400      {object}  response.Response
// @Failure      404      {object}  response.Response
// @Router       /chat/message [post]
func (h *ChatHandler) HandleMessage(c *gin.Context) {
	var req ChatMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.BadRequest("phone, message and origin_id are required"))
		return
	}

	reply, err := h.chatUC.HandleMessage(c.Request.Context(), req.Phone, req.Message, req.OriginID)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Message processed", reply)
}
