package handler

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/a-h/respond"

	"github.com/vitormoschetta/study-buddy/internal/model"
	"github.com/vitormoschetta/study-buddy/internal/service"
)

// MaxBodyBytes limita o corpo das requisições de chat (100 KiB)
const MaxBodyBytes = 100 << 10

// Mensagens de erro expostas ao cliente
const (
	InternalServerError = "Internal server error"
	InvalidJSONError    = "Invalid JSON body"
	BodyTooLargeError   = "Request body too large"
	NotFoundError       = "Not found"
	MethodNotAllowed    = "Method not allowed"
)

// Replier é o contrato do serviço de chat usado pelo handler
type Replier interface {
	Reply(ctx context.Context, message string) (string, error)
}

// Handler contém as dependências necessárias para os handlers HTTP
type Handler struct {
	log         *slog.Logger
	chat        Replier
	serviceName string
}

// NewHandler cria uma nova instância do Handler
func NewHandler(log *slog.Logger, chat Replier, serviceName string) *Handler {
	return &Handler{
		log:         log,
		chat:        chat,
		serviceName: serviceName,
	}
}

// HandleHealth retorna o status de saúde do servidor
func (h *Handler) HandleHealth(w http.ResponseWriter, r *http.Request) {
	respond.WithJSON(w, model.HealthResponse{
		Status:  "ok",
		Message: h.serviceName + " backend is running",
	}, http.StatusOK)
}

// HandleChat encaminha a mensagem do usuário ao modelo
func (h *Handler) HandleChat(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, MaxBodyBytes)
	defer r.Body.Close()

	req, err := decodeChatRequest(r.Body)
	if err != nil {
		h.writeDecodeError(w, err)
		return
	}

	text, err := h.chat.Reply(r.Context(), req.Message)
	if err != nil {
		h.writeChatError(w, err)
		return
	}

	respond.WithJSON(w, model.ChatResponse{Response: text}, http.StatusOK)
}

// HandleNotFound responde rotas desconhecidas em JSON
func (h *Handler) HandleNotFound(w http.ResponseWriter, r *http.Request) {
	respond.WithJSON(w, model.ErrorResponse{Error: NotFoundError}, http.StatusNotFound)
}

// HandleMethodNotAllowed responde métodos não suportados em JSON
func (h *Handler) HandleMethodNotAllowed(w http.ResponseWriter, r *http.Request) {
	respond.WithJSON(w, model.ErrorResponse{Error: MethodNotAllowed}, http.StatusMethodNotAllowed)
}

var errInvalidJSON = errors.New("invalid JSON body")

// decodeChatRequest extrai o campo message do corpo. Um corpo vazio equivale a {}.
// Ausente, null, vazio ou de outro tipo resulta em *service.ValidationError.
func decodeChatRequest(body io.Reader) (model.ChatRequest, error) {
	invalid := &service.ValidationError{Message: service.MessageRequiredError}

	var raw json.RawMessage
	if err := json.NewDecoder(body).Decode(&raw); err != nil {
		if errors.Is(err, io.EOF) {
			return model.ChatRequest{}, invalid
		}
		var mbe *http.MaxBytesError
		if errors.As(err, &mbe) {
			return model.ChatRequest{}, err
		}
		return model.ChatRequest{}, errInvalidJSON
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil {
		// JSON válido mas não é um objeto.
		return model.ChatRequest{}, invalid
	}
	var message *string
	if err := json.Unmarshal(fields["message"], &message); err != nil || message == nil || *message == "" {
		return model.ChatRequest{}, invalid
	}
	return model.ChatRequest{Message: *message}, nil
}

func (h *Handler) writeDecodeError(w http.ResponseWriter, err error) {
	var mbe *http.MaxBytesError
	switch {
	case errors.As(err, &mbe):
		h.log.Warn("request body too large", slog.Int64("limit", mbe.Limit))
		respond.WithJSON(w, model.ErrorResponse{Error: BodyTooLargeError}, http.StatusRequestEntityTooLarge)
	case errors.Is(err, errInvalidJSON):
		respond.WithJSON(w, model.ErrorResponse{Error: InvalidJSONError}, http.StatusBadRequest)
	default:
		h.writeChatError(w, err)
	}
}

func (h *Handler) writeChatError(w http.ResponseWriter, err error) {
	var (
		ve *service.ValidationError
		ce *service.ConfigurationError
		ue *service.UpstreamError
	)
	switch {
	case errors.As(err, &ve):
		respond.WithJSON(w, model.ErrorResponse{Error: ve.Message}, http.StatusBadRequest)
	case errors.As(err, &ce):
		h.log.Error("chat endpoint is not configured", slog.String("variable", ce.Variable))
		respond.WithJSON(w, model.ErrorResponse{Error: ce.Error()}, http.StatusInternalServerError)
	case errors.As(err, &ue):
		h.log.Error("error in chat endpoint", slog.Any("error", ue.Err))
		respond.WithJSON(w, model.ErrorResponse{Error: InternalServerError}, http.StatusInternalServerError)
	default:
		h.log.Error("unexpected error in chat endpoint", slog.Any("error", err))
		respond.WithJSON(w, model.ErrorResponse{Error: InternalServerError}, http.StatusInternalServerError)
	}
}
