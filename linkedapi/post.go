package linkedapi

type PostType string

const (
	PostOriginal PostType = "original"
	PostRepost   PostType = "repost"
)

type Post struct {
	URL           string   `json:"url"`
	Time          string   `json:"time"`
	Type          PostType `json:"type"`
	RepostText    *string  `json:"repostText"`
	Text          *string  `json:"text"`
	Images        []string `json:"images"`
	HasVideo      bool     `json:"hasVideo"`
	HasPoll       bool     `json:"hasPoll"`
	ReactionCount int      `json:"reactionCount"`
	CommentCount  int      `json:"commentCount"`
}

type ReactionType string

const (
	ReactionLike       ReactionType = "like"
	ReactionCelebrate  ReactionType = "celebrate"
	ReactionSupport    ReactionType = "support"
	ReactionLove       ReactionType = "love"
	ReactionInsightful ReactionType = "insightful"
	ReactionFunny      ReactionType = "funny"
)

type Reaction struct {
	PostURL      string       `json:"postUrl"`
	Time         string       `json:"time"`
	ReactionType ReactionType `json:"reactionType"`
}

type Comment struct {
	PostURL       string  `json:"postUrl"`
	Time          string  `json:"time"`
	Text          *string `json:"text"`
	Image         *string `json:"image"`
	ReactionCount int     `json:"reactionCount"`
}

type FetchPostParams struct {
	PostURL string `json:"postUrl" validate:"required,linkedin_url"`
}

type ReactToPostParams struct {
	PostURL string       `json:"postUrl" validate:"required,linkedin_url"`
	Type    ReactionType `json:"type" validate:"required,oneof=like celebrate support love insightful funny"`
}

type CommentOnPostParams struct {
	PostURL string `json:"postUrl" validate:"required,linkedin_url"`
	Text    string `json:"text" validate:"required"`
}

type AttachmentType string

const (
	AttachmentImage    AttachmentType = "image"
	AttachmentVideo    AttachmentType = "video"
	AttachmentDocument AttachmentType = "document"
)

// Attachment is media published with a new post. Documents require a Name.
type Attachment struct {
	URL  string         `json:"url" validate:"required,url_format"`
	Type AttachmentType `json:"type" validate:"required,oneof=image video document"`
	Name string         `json:"name,omitempty" validate:"required_if=Type document"`
}

type CreatePostParams struct {
	Text        string       `json:"text" validate:"required"`
	Attachments []Attachment `json:"attachments,omitempty" validate:"omitempty,dive"`
}

type CreatePostResult struct {
	URL string `json:"url"`
}
