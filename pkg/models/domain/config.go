package domain

import (
	"fmt"
	"time"
)

type ProviderType string

const (
	ProviderOllama ProviderType = "ollama"
	ProviderGemini ProviderType = "gemini"
)

// ModelProfile describes how to reach one text-generation backend
type ModelProfile struct {
	Name     string
	Provider ProviderType
	Host     string
	Model    string
	APIKey   string
	Timeout  time.Duration
}

func (p ModelProfile) String() string {
	return fmt.Sprintf("%s:%s", p.Provider, p.Name)
}
