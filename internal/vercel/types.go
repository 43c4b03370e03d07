package vercel

// EnvironmentTarget scopes an environment variable to a deployment environment.
type EnvironmentTarget string

// Environment target enumerations as returned by the Vercel API.
const (
	EnvironmentTargetProduction  EnvironmentTarget = "production"
	EnvironmentTargetPreview     EnvironmentTarget = "preview"
	EnvironmentTargetDevelopment EnvironmentTarget = "development"
)

// RepositoryLink describes the source-control repository driving a project's deployments.
type RepositoryLink struct {
	Type             string `json:"type"`
	Organization     string `json:"org"`
	Repository       string `json:"repo"`
	ProductionBranch string `json:"productionBranch"`
}

// ProjectSummary captures the listing representation of a project.
type ProjectSummary struct {
	ID        string          `json:"id"`
	Name      string          `json:"name"`
	Framework string          `json:"framework"`
	Link      *RepositoryLink `json:"link"`
}

// ProjectDetail captures the full project representation used for migration.
type ProjectDetail struct {
	ID               string          `json:"id"`
	Name             string          `json:"name"`
	Framework        string          `json:"framework"`
	Link             *RepositoryLink `json:"link"`
	ProductionBranch string          `json:"productionBranch"`
	BuildCommand     *string         `json:"buildCommand"`
	OutputDirectory  *string         `json:"outputDirectory"`
	RootDirectory    *string         `json:"rootDirectory"`
}

// BuildSettings carries optional build configuration; nil pointers mean the provider default applies.
type BuildSettings struct {
	BuildCommand    *string
	OutputDirectory *string
	RootDirectory   *string
}

// EnvironmentVariable is a decrypted project variable with its deployment targets.
type EnvironmentVariable struct {
	Key     string              `json:"key"`
	Value   string              `json:"value"`
	Targets []EnvironmentTarget `json:"target"`
}

type projectListResponse struct {
	Projects   []ProjectSummary `json:"projects"`
	Pagination paginationMarker `json:"pagination"`
}

type paginationMarker struct {
	Next *int64 `json:"next"`
}

type environmentVariableListResponse struct {
	Variables []EnvironmentVariable `json:"envs"`
}

type domainListResponse struct {
	Domains []domainEntry `json:"domains"`
}

type domainEntry struct {
	Name string `json:"name"`
}
