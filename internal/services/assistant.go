package services

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// ErrUpstreamUnavailable signals that the hosted chat-completion service
// failed. Callers recover locally with FallbackResponse; this error must
// never reach the end user as a hard failure.
var ErrUpstreamUnavailable = errors.New("assistant service unavailable")

const assistantSystemPrompt = `You are an AI-powered medical assistant designed to help patients understand their symptoms and guide them to appropriate healthcare.

Your responsibilities:
1. Engage with patients in a conversational, empathetic manner
2. Ask clarifying questions about their symptoms
3. Extract key symptoms from the conversation
4. Provide general health information (NOT medical diagnosis)
5. Recommend appropriate specialist types based on symptoms
6. Remind patients that your advice is informational only

Guidelines:
- Be empathetic and professional
- Ask about symptom duration, severity, and any related symptoms
- Never provide definitive diagnoses
- Always recommend consulting a healthcare professional
- If symptoms sound serious (chest pain, difficulty breathing, severe pain), advise seeking immediate medical attention
- Extract symptoms in a structured format when possible

When you identify symptoms, format them as: [SYMPTOMS: symptom1, symptom2, symptom3]
When you recommend a specialist, format as: [SPECIALIST: specialty_name]
When symptoms are urgent, include: [URGENT: true]`

// ChatMessage is one turn of the patient conversation.
type ChatMessage struct {
	Role    string `json:"role"` // user | assistant
	Content string `json:"content"`
}

type completionRequest struct {
	Model       string        `json:"model"`
	Messages    []ChatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
	MaxTokens   int           `json:"max_tokens"`
}

type completionResponse struct {
	Choices []struct {
		Message struct {
			Role    string `json:"role"`
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// AssistantService talks to an OpenAI-compatible chat-completion API.
type AssistantService struct {
	apiKey  string
	baseURL string
	model   string
	client  *http.Client
}

func NewAssistantService(apiKey, baseURL, model string) *AssistantService {
	if baseURL == "" {
		baseURL = "https://api.openai.com/v1"
	}
	if model == "" {
		model = "gpt-4o-mini"
	}
	return &AssistantService{
		apiKey:  apiKey,
		baseURL: baseURL,
		model:   model,
		client:  &http.Client{Timeout: 30 * time.Second},
	}
}

// Complete sends the conversation plus the new user message and returns the
// assistant's reply text. Any failure is reported as ErrUpstreamUnavailable.
func (s *AssistantService) Complete(ctx context.Context, history []ChatMessage, userMessage string) (string, error) {
	if s.apiKey == "" {
		return "", fmt.Errorf("%w: no API key configured", ErrUpstreamUnavailable)
	}

	messages := make([]ChatMessage, 0, len(history)+2)
	messages = append(messages, ChatMessage{Role: "system", Content: assistantSystemPrompt})
	messages = append(messages, history...)
	messages = append(messages, ChatMessage{Role: "user", Content: userMessage})

	body, err := json.Marshal(completionRequest{
		Model:       s.model,
		Messages:    messages,
		Temperature: 0.7,
		MaxTokens:   1000,
	})
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrUpstreamUnavailable, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.baseURL+"/chat/completions", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrUpstreamUnavailable, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+s.apiKey)

	resp, err := s.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrUpstreamUnavailable, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrUpstreamUnavailable, err)
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("%w: status %d", ErrUpstreamUnavailable, resp.StatusCode)
	}

	var parsed completionResponse
	if err := json.Unmarshal(respBody, &parsed); err != nil {
		return "", fmt.Errorf("%w: %v", ErrUpstreamUnavailable, err)
	}
	if len(parsed.Choices) == 0 || parsed.Choices[0].Message.Content == "" {
		return "", fmt.Errorf("%w: empty completion", ErrUpstreamUnavailable)
	}
	return parsed.Choices[0].Message.Content, nil
}

// FallbackResponse produces a canned reply, with directives, when the hosted
// assistant is unreachable. Keyed off a few common complaints so the chat
// flow still completes end to end.
func FallbackResponse(message string) string {
	lower := strings.ToLower(message)

	switch {
	case strings.Contains(lower, "headache") || strings.Contains(lower, "head pain"):
		return `I understand you're experiencing headache symptoms. Headaches can have various causes including stress, dehydration, lack of sleep, or underlying conditions.

[SYMPTOMS: headache]
[SPECIALIST: General Physician]

Could you tell me more about:
- How long have you had this headache?
- Is it accompanied by any other symptoms like nausea, sensitivity to light, or fever?
- Have you been under stress recently?

In the meantime, try to rest in a quiet, dark room, stay hydrated, and avoid screen time if possible.`

	case strings.Contains(lower, "fever") || strings.Contains(lower, "temperature"):
		return `I see you're experiencing fever. Fever is often a sign that your body is fighting an infection.

[SYMPTOMS: fever]
[SPECIALIST: General Physician]

To help me understand better:
- What is your temperature reading?
- Do you have any other symptoms like cough, body aches, or sore throat?
- How long have you had the fever?

Make sure to stay hydrated and rest. If your fever is above 103°F (39.4°C) or persists for more than 3 days, please seek immediate medical attention.`

	case strings.Contains(lower, "chest pain") || strings.Contains(lower, "heart"):
		return `Chest pain is a symptom that should be taken seriously.

[SYMPTOMS: chest pain]
[SPECIALIST: Cardiologist]
[URGENT: true]

If you're experiencing severe chest pain, especially with shortness of breath, pain radiating to your arm or jaw, or excessive sweating, please seek emergency medical care immediately.

Can you describe:
- Where exactly is the pain located?
- Is it sharp or dull?
- Does it worsen with movement or breathing?`
	}

	return `Thank you for sharing your symptoms with me. I'm here to help you understand your health concerns better.

To provide you with the most accurate guidance, could you please describe:
- Your main symptoms in detail
- How long you've been experiencing them
- Any other symptoms you've noticed
- Your location (so I can recommend nearby doctors)

Remember, while I can provide general health information, it's important to consult with a qualified healthcare professional for proper diagnosis and treatment.`
}
