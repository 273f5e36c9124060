package linkedapi

type SendConnectionRequestParams struct {
	PersonURL string `json:"personUrl" validate:"required,linkedin_url"`
	Note      string `json:"note,omitempty" validate:"omitempty,max=300"`
	// Email is required by LinkedIn for some profiles (emailRequired).
	Email string `json:"email,omitempty" validate:"omitempty,email"`
}

type CheckConnectionStatusParams struct {
	PersonURL string `json:"personUrl" validate:"required,linkedin_url"`
}

type ConnectionStatus string

const (
	ConnectionConnected    ConnectionStatus = "connected"
	ConnectionPending      ConnectionStatus = "pending"
	ConnectionNotConnected ConnectionStatus = "notConnected"
)

type CheckConnectionStatusResult struct {
	ConnectionStatus ConnectionStatus `json:"connectionStatus"`
}

type WithdrawConnectionRequestParams struct {
	PersonURL string `json:"personUrl" validate:"required,linkedin_url"`
	Unfollow  bool   `json:"unfollow,omitempty"`
}

type PendingRequest struct {
	Name      string `json:"name"`
	PublicURL string `json:"publicUrl"`
	Headline  string `json:"headline"`
}

type RetrieveConnectionsParams struct {
	Limit  int                 `json:"limit,omitempty" validate:"omitempty,gte=1"`
	Filter *SearchPeopleFilter `json:"filter,omitempty"`
}

type Connection struct {
	Name      string `json:"name"`
	PublicURL string `json:"publicUrl"`
	Headline  string `json:"headline"`
	Location  string `json:"location"`
}

type RemoveConnectionParams struct {
	PersonURL string `json:"personUrl" validate:"required,linkedin_url"`
}
