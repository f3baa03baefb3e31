package services

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/go-redis/redis/v8"
	"github.com/sashabaranov/go-openai"
)

const assistantSystemPrompt = "You are EcoSayahat AI Assistant. You help tourists in Kazakhstan with eco-tourism information.\n" +
	"You speak multiple languages: Russian, English, and Kazakh. Respond in %s.\n" +
	"You can answer questions about regions (Caspian, Burabay, Alakol, Balkhash, Kolsay), attractions, hotels, eco-tasks, and eco-coins.\n" +
	"Be friendly, helpful, and encourage eco-friendly behavior."

// assistant history is capped so the prompt stays bounded.
const assistantHistoryLimit = 20

// AssistantService is the tourist-facing chat assistant. Conversation history
// lives in Redis keyed by user so the assistant keeps context across requests
// without another table. With no Redis configured every message is standalone.
type AssistantService struct {
	client    *openai.Client
	redis     *redis.Client
	model     string
	validator *validator.Validate
}

type assistantChatRequest struct {
	Message     string `json:"message" validate:"required"`
	Language    string `json:"language"`
	ImageBase64 string `json:"image_base64"`
}

type storedMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

func NewAssistantService(apiKey, model string, redisClient *redis.Client) *AssistantService {
	return &AssistantService{
		client:    openai.NewClient(apiKey),
		redis:     redisClient,
		model:     model,
		validator: validator.New(),
	}
}

// Chat answers a tourist question, optionally about an attached photo
// @Summary Chat with the eco-tourism assistant
// @Tags assistant
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body object{message=string,language=string,image_base64=string} true "Message"
// @Success 200 {object} map[string]string
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Router /ai-assistant/chat [post]
func (s *AssistantService) Chat(w http.ResponseWriter, r *http.Request) {
	userID, ok := r.Context().Value("userID").(string)
	if !ok || userID == "" {
		SendErrorResponse(w, "Unauthorized", http.StatusUnauthorized, nil)
		return
	}

	var req assistantChatRequest
	r.Body = http.MaxBytesReader(w, r.Body, 10*1024*1024)
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()

	if err := dec.Decode(&req); err != nil {
		SendErrorResponse(w, "Invalid request body", http.StatusBadRequest, nil)
		return
	}
	if err := dec.Decode(&struct{}{}); err != io.EOF {
		SendErrorResponse(w, "Request body must only contain a single JSON object", http.StatusBadRequest, nil)
		return
	}
	if err := s.validator.Struct(&req); err != nil {
		SendErrorResponse(w, "Validation failed", http.StatusBadRequest, err)
		return
	}
	if req.Language == "" {
		req.Language = "Russian"
	}

	response, err := s.Ask(r.Context(), userID, req.Message, req.Language, req.ImageBase64)
	if err != nil {
		log.Printf("[ASSISTANT] Chat failed for user %s: %v", userID, err)
		SendErrorResponse(w, "AI assistant error", http.StatusInternalServerError, nil)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"response": response})
}

// Ask runs one assistant turn: prior history plus the new message, reply
// appended back to history. Exposed so the voice path reuses the same flow.
func (s *AssistantService) Ask(ctx context.Context, userID, message, language, imageBase64 string) (string, error) {
	messages := []openai.ChatCompletionMessage{
		{
			Role:    openai.ChatMessageRoleSystem,
			Content: fmt.Sprintf(assistantSystemPrompt, language),
		},
	}
	messages = append(messages, s.loadHistory(ctx, userID)...)

	userMessage := openai.ChatCompletionMessage{Role: openai.ChatMessageRoleUser}
	if imageBase64 != "" {
		userMessage.MultiContent = []openai.ChatMessagePart{
			{Type: openai.ChatMessagePartTypeText, Text: message},
			{
				Type: openai.ChatMessagePartTypeImageURL,
				ImageURL: &openai.ChatMessageImageURL{
					URL:    "data:image/jpeg;base64," + imageBase64,
					Detail: openai.ImageURLDetailAuto,
				},
			},
		}
	} else {
		userMessage.Content = message
	}
	messages = append(messages, userMessage)

	resp, err := s.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:    s.model,
		Messages: messages,
		User:     "user_" + userID,
	})
	if err != nil {
		return "", fmt.Errorf("assistant call failed: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("assistant returned no choices")
	}

	reply := resp.Choices[0].Message.Content
	s.appendHistory(ctx, userID, message, reply)
	return reply, nil
}

func (s *AssistantService) historyKey(userID string) string {
	return fmt.Sprintf("assistant:history:%s", userID)
}

func (s *AssistantService) loadHistory(ctx context.Context, userID string) []openai.ChatCompletionMessage {
	if s.redis == nil {
		return nil
	}

	raw, err := s.redis.LRange(ctx, s.historyKey(userID), 0, -1).Result()
	if err != nil {
		if err != redis.Nil {
			log.Printf("[ASSISTANT] History load failed for user %s: %v", userID, err)
		}
		return nil
	}

	messages := make([]openai.ChatCompletionMessage, 0, len(raw))
	for _, item := range raw {
		var m storedMessage
		if err := json.Unmarshal([]byte(item), &m); err != nil {
			continue
		}
		messages = append(messages, openai.ChatCompletionMessage{Role: m.Role, Content: m.Content})
	}
	return messages
}

func (s *AssistantService) appendHistory(ctx context.Context, userID, question, answer string) {
	if s.redis == nil {
		return
	}

	key := s.historyKey(userID)
	for _, m := range []storedMessage{
		{Role: openai.ChatMessageRoleUser, Content: question},
		{Role: openai.ChatMessageRoleAssistant, Content: answer},
	} {
		data, err := json.Marshal(m)
		if err != nil {
			continue
		}
		s.redis.RPush(ctx, key, data)
	}
	s.redis.LTrim(ctx, key, -assistantHistoryLimit, -1)
	s.redis.Expire(ctx, key, 24*time.Hour)
}
