package meeting

// UpdateActionRequest represents the body of an action item update
type UpdateActionRequest struct {
	Completed *bool `json:"completed" validate:"required"`
}

// CreateUploadRequest represents the body of an upload URL request
type CreateUploadRequest struct {
	Title       string `json:"title" validate:"max=255" example:"Weekly Sync"`
	ContentType string `json:"contentType" example:"audio/mpeg"`
	FileSize    int64  `json:"fileSize" validate:"gte=0" example:"1048576"`
	TeamID      string `json:"teamId,omitempty"`
}
