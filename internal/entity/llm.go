package entity

// GenerateOptions are the fixed decoding parameters sent with every generation call.
type GenerateOptions struct {
	Temperature   float64 `json:"temperature"`
	TopP          float64 `json:"top_p"`
	TopK          int     `json:"top_k"`
	NumPredict    int     `json:"num_predict"`
	RepeatPenalty float64 `json:"repeat_penalty"`
	Seed          int     `json:"seed"`
}

// LLMGenerateRequest is the body of a generation backend call.
type LLMGenerateRequest struct {
	Model   string           `json:"model"`
	Prompt  string           `json:"prompt"`
	Stream  bool             `json:"stream"`
	Raw     bool             `json:"raw,omitempty"`
	Options *GenerateOptions `json:"options,omitempty"`
}

type LLMGenerateResponse struct {
	Response string `json:"response"`
}
