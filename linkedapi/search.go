package linkedapi

type SearchPeopleFilter struct {
	FirstName         string   `json:"firstName,omitempty"`
	LastName          string   `json:"lastName,omitempty"`
	Position          string   `json:"position,omitempty"`
	Locations         []string `json:"locations,omitempty"`
	Industries        []string `json:"industries,omitempty"`
	CurrentCompanies  []string `json:"currentCompanies,omitempty"`
	PreviousCompanies []string `json:"previousCompanies,omitempty"`
	Schools           []string `json:"schools,omitempty"`
}

type SearchPeopleParams struct {
	Term   string              `json:"term,omitempty"`
	Limit  int                 `json:"limit,omitempty" validate:"omitempty,gte=1"`
	Filter *SearchPeopleFilter `json:"filter,omitempty"`
}

type SearchPeopleResult struct {
	Name      string `json:"name"`
	PublicURL string `json:"publicUrl"`
	Headline  string `json:"headline"`
	Location  string `json:"location"`
}

type NvSearchPeopleFilter struct {
	SearchPeopleFilter `json:",squash"`
	YearsOfExperience []string `json:"yearsOfExperience,omitempty" validate:"omitempty,dive,oneof=0-1 1-2 3-5 6-10 10+"`
}

type NvSearchPeopleParams struct {
	Term   string                `json:"term,omitempty"`
	Limit  int                   `json:"limit,omitempty" validate:"omitempty,gte=1"`
	Filter *NvSearchPeopleFilter `json:"filter,omitempty"`
}

type NvSearchPeopleResult struct {
	Name      string `json:"name"`
	HashedURL string `json:"hashedUrl"`
	Position  string `json:"position"`
	Location  string `json:"location"`
}

// CompanySize values: "1-10", "11-50", "51-200", "201-500", "501-1000",
// "1001-5000", "5001-10000", "10001+".
type CompanySize string

type SearchCompaniesFilter struct {
	Sizes      []CompanySize `json:"sizes,omitempty" validate:"omitempty,dive,oneof=1-10 11-50 51-200 201-500 501-1000 1001-5000 5001-10000 10001+"`
	Locations  []string      `json:"locations,omitempty"`
	Industries []string      `json:"industries,omitempty"`
}

type SearchCompaniesParams struct {
	Term   string                 `json:"term,omitempty"`
	Limit  int                    `json:"limit,omitempty" validate:"omitempty,gte=1"`
	Filter *SearchCompaniesFilter `json:"filter,omitempty"`
}

type SearchCompanyResult struct {
	Name      string `json:"name"`
	PublicURL string `json:"publicUrl"`
	Industry  string `json:"industry"`
	Location  string `json:"location"`
}

// AnnualRevenue is a range in millions of USD, e.g. {Min: "2.5", Max: "1000+"}.
type AnnualRevenue struct {
	Min string `json:"min" validate:"required,oneof=0 0.5 1 2.5 5 10 20 50 100 500 1000"`
	Max string `json:"max" validate:"required,oneof=0.5 1 2.5 5 10 20 50 100 500 1000 1000+"`
}

type NvSearchCompaniesFilter struct {
	SearchCompaniesFilter `json:",squash"`
	AnnualRevenue *AnnualRevenue `json:"annualRevenue,omitempty"`
}

type NvSearchCompaniesParams struct {
	Term   string                   `json:"term,omitempty"`
	Limit  int                      `json:"limit,omitempty" validate:"omitempty,gte=1"`
	Filter *NvSearchCompaniesFilter `json:"filter,omitempty"`
}

type NvSearchCompanyResult struct {
	Name          string `json:"name"`
	HashedURL     string `json:"hashedUrl"`
	Industry      string `json:"industry"`
	EmployeeCount int    `json:"employeeCount"`
}
