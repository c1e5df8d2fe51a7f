package entities

// GenerateImageInput represents input for the image-generation proxy
type GenerateImageInput struct {
	Prompt   string `json:"prompt" binding:"required"`
	Width    int    `json:"width"`
	Height   int    `json:"height"`
	Samples  int    `json:"samples"`
	CfgScale int    `json:"cfgScale"`
}

// Defaults fills zero-valued generation parameters
func (in *GenerateImageInput) Defaults() {
	if in.Width <= 0 {
		in.Width = 1024
	}
	if in.Height <= 0 {
		in.Height = 1024
	}
	if in.Samples <= 0 {
		in.Samples = 1
	}
	if in.CfgScale <= 0 {
		in.CfgScale = 7
	}
}

// GenerateIconsInput represents input for icon keyword suggestions
type GenerateIconsInput struct {
	Description string `json:"description" binding:"required"`
}

// ImageSuggestion is the normalized result of a generation call:
// either a list of displayable references (URLs or data URIs), or the
// raw upstream payload when no recognized shape was found.
type ImageSuggestion struct {
	URLs []string    `json:"urls,omitempty"`
	Raw  interface{} `json:"raw,omitempty"`
}

// Recognized reports whether the upstream response produced any URLs
func (s *ImageSuggestion) Recognized() bool {
	return len(s.URLs) > 0
}
