package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const voiceAssistantBasePrompt = `You are a professional medical office assistant for a doctor's clinic. Your role is to:

1. Greet callers warmly and professionally
2. Handle appointment inquiries and bookings
3. Provide clinic information (hours, location, services)
4. Take messages for the doctor when unavailable
5. Handle prescription refill requests (note them down)
6. Triage urgent calls appropriately

Guidelines:
- Be empathetic and professional
- Collect caller's name and phone number
- Ask about the reason for their call
- For appointments, ask preferred date/time
- For urgent medical emergencies, advise calling emergency services
- Keep responses concise and helpful
- Always confirm information before ending the call`

// VoiceAssistantConfig is the assistant definition sent to the voice
// platform (VAPI).
type VoiceAssistantConfig struct {
	Name                 string          `json:"name"`
	Model                VoiceModel      `json:"model"`
	Voice                VoiceSelection  `json:"voice"`
	FirstMessage         string          `json:"firstMessage"`
	EndCallMessage       string          `json:"endCallMessage"`
	RecordingEnabled     bool            `json:"recordingEnabled"`
	TranscriptionEnabled bool            `json:"transcriptionEnabled"`
}

type VoiceModel struct {
	Provider     string `json:"provider"`
	Model        string `json:"model"`
	SystemPrompt string `json:"systemPrompt"`
}

type VoiceSelection struct {
	Provider string `json:"provider"`
	VoiceID  string `json:"voiceId"`
}

// VoiceDoctorProfile carries the doctor details folded into the per-doctor
// assistant prompt.
type VoiceDoctorProfile struct {
	Name            string
	Specialty       string
	Address         string
	City            string
	AvailableFrom   string
	AvailableTo     string
	WorkingDays     []string
	ConsultationFee float64
}

// VoiceService is the client for the hosted voice-assistant platform.
type VoiceService struct {
	apiKey  string
	baseURL string
	client  *http.Client
}

func NewVoiceService(apiKey string) *VoiceService {
	return &VoiceService{
		apiKey:  apiKey,
		baseURL: "https://api.vapi.ai",
		client:  &http.Client{Timeout: 15 * time.Second},
	}
}

// AssistantTemplate returns the base assistant configuration before
// per-doctor customization.
func AssistantTemplate() VoiceAssistantConfig {
	return VoiceAssistantConfig{
		Name: "Medical Office Assistant",
		Model: VoiceModel{
			Provider:     "openai",
			Model:        "gpt-4o-mini",
			SystemPrompt: voiceAssistantBasePrompt,
		},
		Voice: VoiceSelection{
			Provider: "elevenlabs",
			VoiceID:  "rachel",
		},
		FirstMessage:         "Hello, thank you for calling the medical office. How may I assist you today?",
		EndCallMessage:       "Thank you for calling. Have a great day and take care of your health!",
		RecordingEnabled:     true,
		TranscriptionEnabled: true,
	}
}

// CreateAssistant registers a per-doctor assistant and returns its platform ID.
func (s *VoiceService) CreateAssistant(ctx context.Context, doctor VoiceDoctorProfile) (string, error) {
	if s.apiKey == "" {
		return "", fmt.Errorf("%w: no voice API key configured", ErrUpstreamUnavailable)
	}

	config := AssistantTemplate()
	config.Name = doctor.Name + "'s Office Assistant"
	config.Model.SystemPrompt = fmt.Sprintf(`%s

Doctor Information:
- Name: %s
- Specialty: %s
- Location: %s, %s
- Working Hours: %s to %s
- Working Days: %s
- Consultation Fee: Rs. %.0f`,
		voiceAssistantBasePrompt,
		doctor.Name, doctor.Specialty, doctor.Address, doctor.City,
		doctor.AvailableFrom, doctor.AvailableTo,
		strings.Join(doctor.WorkingDays, ", "), doctor.ConsultationFee)

	var created struct {
		ID string `json:"id"`
	}
	if err := s.do(ctx, "/assistant", config, &created); err != nil {
		return "", err
	}
	return created.ID, nil
}

// StartOutboundCall initiates a call to the given number through an existing
// assistant and returns the platform call ID.
func (s *VoiceService) StartOutboundCall(ctx context.Context, assistantID, phoneNumber, doctorID string) (string, error) {
	if s.apiKey == "" {
		return "", fmt.Errorf("%w: no voice API key configured", ErrUpstreamUnavailable)
	}

	payload := map[string]interface{}{
		"assistantId": assistantID,
		"customer":    map[string]string{"number": phoneNumber},
		"metadata": map[string]string{
			"doctorId": doctorID,
			"callType": "outbound",
		},
	}

	var created struct {
		ID string `json:"id"`
	}
	if err := s.do(ctx, "/call/phone", payload, &created); err != nil {
		return "", err
	}
	return created.ID, nil
}

func (s *VoiceService) do(ctx context.Context, path string, payload, out interface{}) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUpstreamUnavailable, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUpstreamUnavailable, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+s.apiKey)

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUpstreamUnavailable, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUpstreamUnavailable, err)
	}
	if resp.StatusCode >= 300 {
		return fmt.Errorf("%w: status %d: %s", ErrUpstreamUnavailable, resp.StatusCode, string(respBody))
	}
	if out != nil {
		if err := json.Unmarshal(respBody, out); err != nil {
			return fmt.Errorf("%w: %v", ErrUpstreamUnavailable, err)
		}
	}
	return nil
}
