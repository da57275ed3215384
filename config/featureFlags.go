package config

import (
	"os"
	"strings"
)

// AIDisabled turns every assistant feature off globally. When set, AI
// endpoints fail fast with a descriptive error and no vendor call is made.
//
// Set via env:
// - AI_OFF=true
func AIDisabled() bool {
	v := strings.ToLower(strings.TrimSpace(os.Getenv("AI_OFF")))
	return v == "1" || v == "true" || v == "yes" || v == "y"
}

// WebGroundingDisabled disables the web-search grounding tool on analysis
// calls while leaving plain generation available.
//
// Set via env:
// - AI_WEB_GROUNDING_OFF=true
func WebGroundingDisabled() bool {
	v := strings.ToLower(strings.TrimSpace(os.Getenv("AI_WEB_GROUNDING_OFF")))
	return v == "1" || v == "true" || v == "yes" || v == "y"
}
