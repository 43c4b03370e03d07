package cloudflare

import (
	"bytes"
	"encoding/json"
)

// BuildConfiguration carries build settings for a Pages project. Nil fields are omitted so the
// destination applies its own defaults.
type BuildConfiguration struct {
	BuildCommand    *string `json:"build_command,omitempty"`
	OutputDirectory *string `json:"destination_dir,omitempty"`
	RootDirectory   *string `json:"root_dir,omitempty"`
}

// SourceConfiguration describes the git integration backing a Pages project.
type SourceConfiguration struct {
	Owner              string `json:"owner"`
	Repository         string `json:"repo_name"`
	ProductionBranch   string `json:"production_branch"`
	PRCommentsEnabled  bool   `json:"pr_comments_enabled"`
	DeploymentsEnabled bool   `json:"deployments_enabled"`
}

// ProjectSource wraps the git provider type and its configuration.
type ProjectSource struct {
	Type          string              `json:"type"`
	Configuration SourceConfiguration `json:"config"`
}

// VariableAssignment pairs an environment variable key with its value.
type VariableAssignment struct {
	Key   string
	Value string
}

// OrderedVariables serializes as a JSON object while preserving source ordering.
type OrderedVariables []VariableAssignment

// MarshalJSON emits the assignments as an object with keys in slice order.
func (variables OrderedVariables) MarshalJSON() ([]byte, error) {
	var buffer bytes.Buffer
	buffer.WriteByte('{')
	for assignmentIndex, assignment := range variables {
		if assignmentIndex > 0 {
			buffer.WriteByte(',')
		}
		encodedKey, keyError := json.Marshal(assignment.Key)
		if keyError != nil {
			return nil, keyError
		}
		encodedValue, valueError := json.Marshal(assignment.Value)
		if valueError != nil {
			return nil, valueError
		}
		buffer.Write(encodedKey)
		buffer.WriteByte(':')
		buffer.Write(encodedValue)
	}
	buffer.WriteByte('}')
	return buffer.Bytes(), nil
}

// EnvironmentConfiguration holds per-environment variable assignments.
type EnvironmentConfiguration struct {
	EnvironmentVariables OrderedVariables `json:"environment_variables,omitempty"`
}

// DeploymentConfigurations splits environment variables between preview and production.
type DeploymentConfigurations struct {
	Preview    EnvironmentConfiguration `json:"preview"`
	Production EnvironmentConfiguration `json:"production"`
}

// CreatePayload is the write-once project creation request. Every payload references a non-empty
// git repository; repository-less projects are skipped before mapping.
type CreatePayload struct {
	Name                     string                   `json:"name"`
	ProductionBranch         string                   `json:"production_branch"`
	Framework                string                   `json:"framework,omitempty"`
	BuildConfiguration       BuildConfiguration       `json:"build_config"`
	Source                   ProjectSource            `json:"source"`
	DeploymentConfigurations DeploymentConfigurations `json:"deployment_configs"`
}

// CreateResult reports a single create attempt. Failures are soft so callers can continue past them.
type CreateResult struct {
	Success     bool
	CreatedID   string
	Subdomain   string
	ErrorDetail string
}

type apiEnvelope struct {
	Success bool           `json:"success"`
	Errors  []apiError     `json:"errors"`
	Result  createdProject `json:"result"`
}

type apiError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

type createdProject struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Subdomain string `json:"subdomain"`
}
