package linkedapi

// LimitSince bounds a retrieval by count and, optionally, by an ISO 8601
// lower time bound.
type LimitSince struct {
	Limit int    `json:"limit,omitempty" validate:"omitempty,gte=1"`
	Since string `json:"since,omitempty"`
}

// Limit bounds a retrieval by count.
type Limit struct {
	Limit int `json:"limit,omitempty" validate:"omitempty,gte=1"`
}

// FetchPersonParams opens a person's profile. Each Retrieve flag adds a
// chained action whose data is attached to the corresponding Person field.
type FetchPersonParams struct {
	PersonURL          string `json:"personUrl" validate:"required,linkedin_url"`
	RetrieveExperience bool   `json:"retrieveExperience,omitempty"`
	RetrieveEducation  bool   `json:"retrieveEducation,omitempty"`
	RetrieveSkills     bool   `json:"retrieveSkills,omitempty"`
	RetrieveLanguages  bool   `json:"retrieveLanguages,omitempty"`
	RetrievePosts      bool   `json:"retrievePosts,omitempty"`
	RetrieveComments   bool   `json:"retrieveComments,omitempty"`
	RetrieveReactions  bool   `json:"retrieveReactions,omitempty"`

	PostsRetrievalConfig     *LimitSince `json:"postsRetrievalConfig,omitempty"`
	CommentsRetrievalConfig  *LimitSince `json:"commentsRetrievalConfig,omitempty"`
	ReactionsRetrievalConfig *LimitSince `json:"reactionsRetrievalConfig,omitempty"`
}

type Person struct {
	Name             string `json:"name"`
	PublicURL        string `json:"publicUrl"`
	HashedURL        string `json:"hashedUrl"`
	Headline         string `json:"headline"`
	Location         string `json:"location"`
	CountryCode      string `json:"countryCode"`
	Position         string `json:"position"`
	CompanyName      string `json:"companyName"`
	CompanyHashedURL string `json:"companyHashedUrl"`

	Experiences []Experience `json:"experiences,omitempty"`
	Education   []Education  `json:"education,omitempty"`
	Skills      []Skill      `json:"skills,omitempty"`
	Languages   []Language   `json:"languages,omitempty"`
	Posts       []Post       `json:"posts,omitempty"`
	Comments    []Comment    `json:"comments,omitempty"`
	Reactions   []Reaction   `json:"reactions,omitempty"`
}

type EmploymentType string

const (
	EmploymentFullTime       EmploymentType = "fullTime"
	EmploymentPartTime       EmploymentType = "partTime"
	EmploymentSelfEmployed   EmploymentType = "selfEmployed"
	EmploymentFreelance      EmploymentType = "freelance"
	EmploymentContract       EmploymentType = "contract"
	EmploymentInternship     EmploymentType = "internship"
	EmploymentApprenticeship EmploymentType = "apprenticeship"
	EmploymentSeasonal       EmploymentType = "seasonal"
)

type LocationType string

const (
	LocationOnSite LocationType = "onSite"
	LocationRemote LocationType = "remote"
	LocationHybrid LocationType = "hybrid"
)

type Experience struct {
	Position         string         `json:"position"`
	CompanyName      string         `json:"companyName"`
	CompanyHashedURL string         `json:"companyHashedUrl"`
	EmploymentType   EmploymentType `json:"employmentType"`
	LocationType     LocationType   `json:"locationType"`
	Description      string         `json:"description"`
	// Duration in months.
	Duration  int     `json:"duration"`
	StartTime string  `json:"startTime"`
	EndTime   *string `json:"endTime"`
	Location  string  `json:"location"`
}

type Education struct {
	SchoolName      string `json:"schoolName"`
	SchoolHashedURL string `json:"schoolHashedUrl"`
	Details         string `json:"details"`
}

type Skill struct {
	Name string `json:"name"`
}

type LanguageProficiency string

const (
	ProficiencyElementary          LanguageProficiency = "elementary"
	ProficiencyLimitedWorking      LanguageProficiency = "limitedWorking"
	ProficiencyProfessionalWorking LanguageProficiency = "professionalWorking"
	ProficiencyFullProfessional    LanguageProficiency = "fullProfessional"
	ProficiencyNativeOrBilingual   LanguageProficiency = "nativeOrBilingual"
)

type Language struct {
	Name        string              `json:"name"`
	Proficiency LanguageProficiency `json:"proficiency"`
}

// NvFetchPersonParams opens a profile in Sales Navigator.
type NvFetchPersonParams struct {
	PersonHashedURL string `json:"personHashedUrl" validate:"required,linkedin_url"`
}

// NvPerson is the basic profile returned by Sales Navigator.
type NvPerson struct {
	Name             string `json:"name"`
	PublicURL        string `json:"publicUrl"`
	HashedURL        string `json:"hashedUrl"`
	Headline         string `json:"headline"`
	Location         string `json:"location"`
	CountryCode      string `json:"countryCode"`
	Position         string `json:"position"`
	CompanyName      string `json:"companyName"`
	CompanyHashedURL string `json:"companyHashedUrl"`
}
