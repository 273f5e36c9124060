package linkedapi

type SendMessageParams struct {
	PersonURL string `json:"personUrl" validate:"required,linkedin_url"`
	Text      string `json:"text" validate:"required"`
}

type SyncConversationParams struct {
	PersonURL string `json:"personUrl" validate:"required,linkedin_url"`
}

type NvSendMessageParams struct {
	PersonURL string `json:"personUrl" validate:"required,linkedin_url"`
	Text      string `json:"text" validate:"required"`
	Subject   string `json:"subject" validate:"required"`
}

type NvSyncConversationParams struct {
	PersonURL string `json:"personUrl" validate:"required,linkedin_url"`
}

// ConversationType selects the standard LinkedIn inbox or Sales Navigator.
type ConversationType string

const (
	ConversationStandard       ConversationType = "st"
	ConversationSalesNavigator ConversationType = "nv"
)

type MessageSender string

const (
	SenderUs   MessageSender = "us"
	SenderThem MessageSender = "them"
)

// ConversationPollRequest asks for the messages of one synced conversation.
type ConversationPollRequest struct {
	PersonURL string           `json:"personUrl" validate:"required,linkedin_url"`
	Type      ConversationType `json:"type" validate:"required,oneof=st nv"`
	// Since is an ISO 8601 timestamp; only newer messages are returned.
	Since string `json:"since,omitempty" validate:"omitempty,datetime=2006-01-02T15:04:05Z07:00"`
}

type Message struct {
	ID     string        `json:"id"`
	Sender MessageSender `json:"sender"`
	Text   string        `json:"text"`
	Time   string        `json:"time"`
}

type ConversationPollResult struct {
	PersonURL string           `json:"personUrl"`
	Since     string           `json:"since,omitempty"`
	Type      ConversationType `json:"type"`
	Messages  []Message        `json:"messages"`
}
