package dto

type CreateCommentReq struct {
	Content  string `json:"content"`
	ImageURL string `json:"imageUrl,omitempty"`
}

type UpdateCommentReq struct {
	Content string `json:"content"`
}

type ToggleLikeResp struct {
	Liked bool `json:"liked"`
}
