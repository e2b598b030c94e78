package controller

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"go-pairchat/internal/infrastructure/realtime"
	auth "go-pairchat/internal/pkg/auth/application/domain"
	"go-pairchat/internal/pkg/auth/presentation/middleware"
	"go-pairchat/internal/pkg/chat/application/usecase"
	"go-pairchat/internal/pkg/chat/presentation/dto"
	"go-pairchat/pkg/errors"
	"go-pairchat/pkg/logger"
)

// ChatSocketController handles GET /ws. The socket carries new-message signals to the user
// and accepts message frames as an alternative to POST /messages/send.
type ChatSocketController struct {
	router          *realtime.Router
	sendMessageUC   *usecase.SendMessageUseCase
	logger          logger.Logger
	inflightTimeout time.Duration
}

func NewChatSocketController(router *realtime.Router, send *usecase.SendMessageUseCase, log logger.Logger) *ChatSocketController {
	return &ChatSocketController{
		router:          router,
		sendMessageUC:   send,
		logger:          log,
		inflightTimeout: 5 * time.Second,
	}
}

var wsUpgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// browsers authenticate with the token query parameter; CORS does not apply to upgrades
	CheckOrigin: func(r *http.Request) bool { return true },
}

type inboundFrame struct {
	Type           string `json:"type"`
	ConversationID string `json:"conversationId,omitempty"`
	Text           string `json:"text,omitempty"`
}

type errorFrame struct {
	Type    string `json:"type"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

type ackFrame struct {
	Type    string               `json:"type"`
	Message *dto.MessageResponse `json:"message,omitempty"`
}

const (
	defaultReadTimeout = 60 * time.Second
	maxFrameSize       = 16 << 10
)

func (ctl *ChatSocketController) Handle() gin.HandlerFunc {
	return func(c *gin.Context) {
		caller, ok := middleware.IdentityFrom(c)
		if !ok {
			respondError(c, errors.ErrUnauthorized)
			return
		}

		ws, err := wsUpgrader.Upgrade(c.Writer, c.Request, nil)
		if err != nil {
			// Upgrade already wrote the response
			ctl.logger.Debug("websocket upgrade failed", "user", caller.UserID, "err", err)
			return
		}

		conn := realtime.NewConnection(caller.UserID, ws)
		ctl.router.Attach(conn)
		defer func() {
			ctl.router.Detach(conn)
			conn.Close(websocket.CloseNormalClosure, "session closed")
		}()

		ws.SetReadLimit(maxFrameSize)
		_ = ws.SetReadDeadline(time.Now().Add(defaultReadTimeout))
		ws.SetPongHandler(func(string) error {
			return ws.SetReadDeadline(time.Now().Add(defaultReadTimeout))
		})

		ctl.reply(conn, ackFrame{Type: "connected"})

		for {
			_, data, err := ws.ReadMessage()
			if err != nil {
				if !websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway, websocket.CloseNoStatusReceived) &&
					!stderrors.Is(err, websocket.ErrCloseSent) {
					ctl.logger.Debug("websocket read ended", "user", caller.UserID, "err", err)
				}
				return
			}
			_ = ws.SetReadDeadline(time.Now().Add(defaultReadTimeout))

			var frame inboundFrame
			if err := json.Unmarshal(data, &frame); err != nil {
				ctl.replyError(conn, "bad_request", "invalid payload")
				continue
			}

			switch frame.Type {
			case "ping":
				ctl.reply(conn, ackFrame{Type: "pong"})
			case "message":
				ctl.handleMessage(c.Request.Context(), conn, caller, frame)
			default:
				ctl.replyError(conn, "unsupported_type", "unknown frame type")
			}
		}
	}
}

func (ctl *ChatSocketController) handleMessage(parent context.Context, conn *realtime.Connection, caller auth.Identity, frame inboundFrame) {
	ctx, cancel := context.WithTimeout(parent, ctl.inflightTimeout)
	defer cancel()

	msg, err := ctl.sendMessageUC.Execute(ctx, usecase.SendMessageInput{
		Caller:         caller,
		ConversationID: frame.ConversationID,
		Text:           frame.Text,
	})
	if err != nil {
		ctl.replyError(conn, string(errors.CodeOf(err)), errors.PublicMessage(err))
		return
	}
	out := dto.NewMessageResponse(*msg)
	ctl.reply(conn, ackFrame{Type: "sent", Message: &out})
}

func (ctl *ChatSocketController) replyError(conn *realtime.Connection, code string, message string) {
	ctl.reply(conn, errorFrame{Type: "error", Code: code, Message: message})
}

func (ctl *ChatSocketController) reply(conn *realtime.Connection, frame any) {
	if payload, err := json.Marshal(frame); err == nil {
		_ = conn.Send(payload)
	}
}
