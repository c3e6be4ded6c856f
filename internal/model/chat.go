package model

// ChatRequest representa a requisição para o endpoint de chat.
// Message é validado pelo handler antes de chegar ao serviço.
type ChatRequest struct {
	Message string `json:"message"`
}

// ChatResponse representa a resposta de sucesso do endpoint de chat
type ChatResponse struct {
	Response string `json:"response"`
}

// ErrorResponse é o corpo de qualquer resposta de erro da API
type ErrorResponse struct {
	Error string `json:"error"`
}

// HealthResponse representa a resposta do health check
type HealthResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}
