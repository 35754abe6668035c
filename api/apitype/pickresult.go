package apitype

// PickRequest describes the selection surface a host should present.
type PickRequest struct {
	SessionId string
	Title     string
	MimeType  string
	Patterns  []string
}

func NewImagePickRequest(sessionId string) *PickRequest {
	return &PickRequest{
		SessionId: sessionId,
		Title:     "Select image",
		MimeType:  "image/*",
		Patterns:  []string{"*.jpg", "*.jpeg", "*.png", "*.gif", "*.webp", "*.bmp", "*.tif", "*.tiff"},
	}
}

// Extensions returns the patterns without the leading "*.".
func (s *PickRequest) Extensions() []string {
	extensions := make([]string, 0, len(s.Patterns))
	for _, pattern := range s.Patterns {
		if len(pattern) > 2 && pattern[:2] == "*." {
			extensions = append(extensions, pattern[2:])
		}
	}
	return extensions
}

// PickResult is the message a host delivers back to the picker once the
// user has acted on the selection surface.
type PickResult struct {
	reference *ContentReference
	canceled  bool
	err       error
}

func NewSelectedResult(reference *ContentReference) *PickResult {
	return &PickResult{reference: reference}
}

func NewCanceledResult() *PickResult {
	return &PickResult{canceled: true}
}

func NewErrorResult(err error) *PickResult {
	return &PickResult{err: err}
}

func (s *PickResult) Reference() *ContentReference {
	return s.reference
}

func (s *PickResult) IsCanceled() bool {
	return s.canceled
}

func (s *PickResult) Err() error {
	return s.err
}
