package dto

type CreatePostReq struct {
	Title    string `json:"title"`
	Content  string `json:"content"`
	ImageURL string `json:"imageUrl,omitempty"`
}

type UpdatePostReq struct {
	Title    string `json:"title"`
	Content  string `json:"content"`
	ImageURL string `json:"imageUrl,omitempty"`
}
