package migration

import (
	"strings"

	"github.com/temirov/pagemove/internal/cloudflare"
	"github.com/temirov/pagemove/internal/vercel"
)

const (
	supportedGitProviderTypeConstant = "github"
	fallbackProductionBranchConstant = "main"
	gitProviderSourceTypeConstant    = "github"
)

// VariableFilter optionally rewrites or drops an environment variable before mapping.
// A nil filter passes every variable through unchanged, which is the deliberate default:
// values that look like secrets are carried verbatim.
type VariableFilter func(variable vercel.EnvironmentVariable) (vercel.EnvironmentVariable, bool)

// Mapper is the pure transformation from source project configuration to a destination
// create payload. It performs no I/O.
type Mapper struct {
	Vocabulary     FrameworkVocabulary
	VariableFilter VariableFilter
}

// NewMapper constructs a mapper; a nil vocabulary falls back to the embedded default.
func NewMapper(vocabulary FrameworkVocabulary, variableFilter VariableFilter) *Mapper {
	if vocabulary == nil {
		vocabulary = DefaultFrameworkVocabulary()
	}
	return &Mapper{Vocabulary: vocabulary, VariableFilter: variableFilter}
}

// Map reshapes a fetched project into the destination create payload, or returns the reason the
// project cannot be migrated. Destination creation through this pipeline requires a git-linked
// source project; anything else is an expected skip, not an error.
func (mapper *Mapper) Map(detail vercel.ProjectDetail, buildSettings vercel.BuildSettings, environmentVariables []vercel.EnvironmentVariable) (cloudflare.CreatePayload, *SkipReason) {
	if detail.Link == nil || len(strings.TrimSpace(detail.Link.Repository)) == 0 {
		return cloudflare.CreatePayload{}, skipReasonPointer(SkipReasonNoGitIntegration)
	}
	if !strings.EqualFold(detail.Link.Type, supportedGitProviderTypeConstant) {
		return cloudflare.CreatePayload{}, skipReasonPointer(SkipReasonUnsupportedGitProvider)
	}

	productionBranch := mapper.resolveProductionBranch(detail)
	productionVariables, previewVariables := mapper.partitionVariables(environmentVariables)

	payload := cloudflare.CreatePayload{
		Name:             detail.Name,
		ProductionBranch: productionBranch,
		BuildConfiguration: cloudflare.BuildConfiguration{
			BuildCommand:    buildSettings.BuildCommand,
			OutputDirectory: buildSettings.OutputDirectory,
			RootDirectory:   buildSettings.RootDirectory,
		},
		Source: cloudflare.ProjectSource{
			Type: gitProviderSourceTypeConstant,
			Configuration: cloudflare.SourceConfiguration{
				Owner:              detail.Link.Organization,
				Repository:         detail.Link.Repository,
				ProductionBranch:   productionBranch,
				PRCommentsEnabled:  true,
				DeploymentsEnabled: true,
			},
		},
		DeploymentConfigurations: cloudflare.DeploymentConfigurations{
			Preview:    cloudflare.EnvironmentConfiguration{EnvironmentVariables: previewVariables},
			Production: cloudflare.EnvironmentConfiguration{EnvironmentVariables: productionVariables},
		},
	}

	if destinationFramework, frameworkKnown := mapper.Vocabulary.Translate(detail.Framework); frameworkKnown {
		payload.Framework = destinationFramework
	}

	return payload, nil
}

func (mapper *Mapper) resolveProductionBranch(detail vercel.ProjectDetail) string {
	if len(detail.ProductionBranch) > 0 {
		return detail.ProductionBranch
	}
	if detail.Link != nil && len(detail.Link.ProductionBranch) > 0 {
		return detail.Link.ProductionBranch
	}
	return fallbackProductionBranchConstant
}

// partitionVariables splits variables by target environment, preserving source order and values.
// Variables targeting only the development environment are dropped: the destination has no such
// environment. A key repeated within one environment keeps its first position with the later value.
func (mapper *Mapper) partitionVariables(environmentVariables []vercel.EnvironmentVariable) (cloudflare.OrderedVariables, cloudflare.OrderedVariables) {
	var productionVariables cloudflare.OrderedVariables
	var previewVariables cloudflare.OrderedVariables

	for _, variable := range environmentVariables {
		resolvedVariable := variable
		if mapper.VariableFilter != nil {
			filteredVariable, keepVariable := mapper.VariableFilter(variable)
			if !keepVariable {
				continue
			}
			resolvedVariable = filteredVariable
		}

		for _, target := range resolvedVariable.Targets {
			switch target {
			case vercel.EnvironmentTargetProduction:
				productionVariables = upsertVariable(productionVariables, resolvedVariable)
			case vercel.EnvironmentTargetPreview:
				previewVariables = upsertVariable(previewVariables, resolvedVariable)
			}
		}
	}

	return productionVariables, previewVariables
}

func upsertVariable(assignments cloudflare.OrderedVariables, variable vercel.EnvironmentVariable) cloudflare.OrderedVariables {
	for assignmentIndex := range assignments {
		if assignments[assignmentIndex].Key == variable.Key {
			assignments[assignmentIndex].Value = variable.Value
			return assignments
		}
	}
	return append(assignments, cloudflare.VariableAssignment{Key: variable.Key, Value: variable.Value})
}

func skipReasonPointer(reason SkipReason) *SkipReason {
	return &reason
}
