package model

// ================ Config ================
type ConversationConfig struct {
	TTL        string `envconfig:"CONVERSATION_TTL" default:"15m"`
	Classifier struct {
		MaxTurns int `envconfig:"CONVERSATION_CLASSIFIER_MAX_TURNS" default:"5"`
	}
	Answerer struct {
		MaxTurns int `envconfig:"CONVERSATION_ANSWERER_MAX_TURNS" default:"10"`
	}
}

type ClassifierModelConfig struct {
	Model          string  `envconfig:"CLASSIFIER_MODEL" default:"gemini-2.5-flash-lite"`
	MaxTokens      int     `envconfig:"CLASSIFIER_MAX_TOKENS" default:"256"`
	Temperature    float32 `envconfig:"CLASSIFIER_TEMPERATURE" default:"0.1"`
	TimeoutSeconds int     `envconfig:"CLASSIFIER_TIMEOUT_SECONDS" default:"10"`
}

type AnswererModelConfig struct {
	Model          string  `envconfig:"ANSWERER_MODEL" default:"gemini-2.5-flash"`
	MaxTokens      int     `envconfig:"ANSWERER_MAX_TOKENS" default:"2000"`
	Temperature    float32 `envconfig:"ANSWERER_TEMPERATURE" default:"0.4"`
	TimeoutSeconds int     `envconfig:"ANSWERER_TIMEOUT_SECONDS" default:"15"`
}

type StoreConfig struct {
	Path string `envconfig:"RESERVATION_FILE" default:"reservations.json"`
}
