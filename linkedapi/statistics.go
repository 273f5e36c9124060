package linkedapi

// SSI is the LinkedIn Social Selling Index of the account.
type SSI struct {
	SSI         float64 `json:"ssi"`
	IndustryTop float64 `json:"industryTop"`
	NetworkTop  float64 `json:"networkTop"`
}

type Performance struct {
	FollowersCount                int `json:"followersCount"`
	PostViewsLast7Days            int `json:"postViewsLast7Days"`
	ProfileViewsLast90Days        int `json:"profileViewsLast90Days"`
	SearchAppearancesPreviousWeek int `json:"searchAppearancesPreviousWeek"`
}

// APIUsageAction is one action executed by the account.
type APIUsageAction struct {
	ActionType string `json:"actionType"`
	Success    bool   `json:"success"`
	Time       string `json:"time"`
}
