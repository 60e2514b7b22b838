package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"

	"google.golang.org/genai"
)

const geminiPrompt = `Analyze this car image and return a JSON object with these fields:
brand (string), model (string), color (string), body_type (string, one of: SUV, Sedan, Hatchback, Convertible, Coupe, Wagon, Pickup),
confidence (number between 0 and 1 indicating how confident you are overall).
Return only the JSON object, nothing else.`

// CarImageGuess 影像辨識出的車輛屬性與整體信心值
type CarImageGuess struct {
	Brand      string  `json:"brand"`
	Model      string  `json:"model"`
	Color      string  `json:"color"`
	BodyType   string  `json:"body_type"`
	Confidence float64 `json:"confidence"`
}

// ClassifyCarImage 呼叫 Gemini 辨識車輛圖片，回傳結構化的屬性猜測
// 外部 API 的配額或格式錯誤一律轉成 error 回報，不會讓請求流程崩潰
func ClassifyCarImage(ctx context.Context, imageData []byte, mimeType string) (*CarImageGuess, error) {
	apiKey := os.Getenv("GEMINI_API_KEY")
	if apiKey == "" {
		return nil, fmt.Errorf("GEMINI_API_KEY is not set")
	}
	model := os.Getenv("GEMINI_MODEL")
	if model == "" {
		model = "gemini-1.5-flash"
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		log.Printf("Failed to create gemini client: %v", err)
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}

	contents := []*genai.Content{
		genai.NewContentFromParts([]*genai.Part{
			genai.NewPartFromText(geminiPrompt),
			genai.NewPartFromBytes(imageData, mimeType),
		}, genai.RoleUser),
	}
	config := &genai.GenerateContentConfig{
		ResponseMIMEType: "application/json",
	}

	resp, err := client.Models.GenerateContent(ctx, model, contents, config)
	if err != nil {
		log.Printf("Gemini request failed: %v", err)
		return nil, fmt.Errorf("gemini request failed: %w", err)
	}

	guess, err := ParseCarImageGuess(resp.Text())
	if err != nil {
		log.Printf("Failed to parse gemini response: %v", err)
		return nil, err
	}

	log.Printf("Gemini classified image: brand=%s, body_type=%s, confidence=%.2f", guess.Brand, guess.BodyType, guess.Confidence)
	return guess, nil
}

// ParseCarImageGuess 解析模型回覆的 JSON 內容
func ParseCarImageGuess(payload string) (*CarImageGuess, error) {
	if payload == "" {
		return nil, fmt.Errorf("gemini response has no content")
	}

	var guess CarImageGuess
	if err := json.Unmarshal([]byte(payload), &guess); err != nil {
		return nil, fmt.Errorf("malformed gemini payload: %w", err)
	}
	return &guess, nil
}
