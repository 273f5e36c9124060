package linkedapi

// EmployeeFilter narrows the employees retrieved with a company.
type EmployeeFilter struct {
	FirstName  string   `json:"firstName,omitempty"`
	LastName   string   `json:"lastName,omitempty"`
	Position   string   `json:"position,omitempty"`
	Locations  []string `json:"locations,omitempty"`
	Industries []string `json:"industries,omitempty"`
	Schools    []string `json:"schools,omitempty"`
}

type EmployeesRetrievalConfig struct {
	Limit  int             `json:"limit,omitempty" validate:"omitempty,gte=1"`
	Filter *EmployeeFilter `json:"filter,omitempty"`
}

type FetchCompanyParams struct {
	CompanyURL        string `json:"companyUrl" validate:"required,linkedin_url"`
	RetrieveEmployees bool   `json:"retrieveEmployees,omitempty"`
	RetrieveDMs       bool   `json:"retrieveDMs,omitempty"`
	RetrievePosts     bool   `json:"retrievePosts,omitempty"`

	EmployeesRetrievalConfig *EmployeesRetrievalConfig `json:"employeesRetrievalConfig,omitempty"`
	DMsRetrievalConfig       *Limit                    `json:"dmsRetrievalConfig,omitempty"`
	PostsRetrievalConfig     *LimitSince               `json:"postsRetrievalConfig,omitempty"`
}

type Company struct {
	Name             string `json:"name"`
	PublicURL        string `json:"publicUrl"`
	Description      string `json:"description"`
	Location         string `json:"location"`
	Headquarters     string `json:"headquarters"`
	Industry         string `json:"industry"`
	Specialties      string `json:"specialties"`
	Website          string `json:"website"`
	EmployeeCount    int    `json:"employeeCount"`
	YearFounded      *int   `json:"yearFounded,omitempty"`
	VentureFinancing bool   `json:"ventureFinancing"`
	JobsCount        int    `json:"jobsCount"`

	Employees []CompanyEmployee `json:"employees,omitempty"`
	DMs       []CompanyDM       `json:"dms,omitempty"`
	Posts     []Post            `json:"posts,omitempty"`
}

type CompanyEmployee struct {
	Name      string `json:"name"`
	PublicURL string `json:"publicUrl"`
	Headline  string `json:"headline"`
	Location  string `json:"location"`
}

// CompanyDM is a decision maker at a company.
type CompanyDM struct {
	Name        string `json:"name"`
	PublicURL   string `json:"publicUrl"`
	Headline    string `json:"headline"`
	Location    string `json:"location"`
	CountryCode string `json:"countryCode"`
}

type YearsOfExperience string

const (
	ExperienceLessThanOne YearsOfExperience = "lessThanOne"
	ExperienceOneToTwo    YearsOfExperience = "oneToTwo"
	ExperienceThreeToFive YearsOfExperience = "threeToFive"
	ExperienceSixToTen    YearsOfExperience = "sixToTen"
	ExperienceMoreThanTen YearsOfExperience = "moreThanTen"
)

type NvEmployeeFilter struct {
	FirstName          string              `json:"firstName,omitempty"`
	LastName           string              `json:"lastName,omitempty"`
	Positions          []string            `json:"positions,omitempty"`
	Locations          []string            `json:"locations,omitempty"`
	Industries         []string            `json:"industries,omitempty"`
	Schools            []string            `json:"schools,omitempty"`
	YearsOfExperiences []YearsOfExperience `json:"yearsOfExperiences,omitempty"`
}

type NvEmployeesRetrievalConfig struct {
	Limit  int               `json:"limit,omitempty" validate:"omitempty,gte=1"`
	Filter *NvEmployeeFilter `json:"filter,omitempty"`
}

// NvFetchCompanyParams opens a company page in Sales Navigator.
type NvFetchCompanyParams struct {
	CompanyHashedURL  string `json:"companyHashedUrl" validate:"required,linkedin_url"`
	RetrieveEmployees bool   `json:"retrieveEmployees,omitempty"`
	RetrieveDMs       bool   `json:"retrieveDMs,omitempty"`

	EmployeesRetrievalConfig *NvEmployeesRetrievalConfig `json:"employeesRetrievalConfig,omitempty"`
	DMsRetrievalConfig       *Limit                      `json:"dmsRetrievalConfig,omitempty"`
}

type NvCompany struct {
	Name          string `json:"name"`
	PublicURL     string `json:"publicUrl"`
	Description   string `json:"description"`
	Location      string `json:"location"`
	Headquarters  string `json:"headquarters"`
	Industry      string `json:"industry"`
	Website       string `json:"website"`
	EmployeeCount int    `json:"employeeCount"`
	YearFounded   *int   `json:"yearFounded,omitempty"`

	Employees []NvCompanyEmployee `json:"employees,omitempty"`
	DMs       []NvCompanyDM       `json:"dms,omitempty"`
}

type NvCompanyEmployee struct {
	Name      string `json:"name"`
	HashedURL string `json:"hashedUrl"`
	Position  string `json:"position"`
	Location  string `json:"location"`
}

type NvCompanyDM struct {
	Name        string `json:"name"`
	HashedURL   string `json:"hashedUrl"`
	Position    string `json:"position"`
	Location    string `json:"location"`
	CountryCode string `json:"countryCode"`
}
