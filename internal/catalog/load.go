package catalog

import (
	"embed"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// ErrInvalid is wrapped by every catalog validation error.
var ErrInvalid = errors.New("invalid catalog")

// File names read by Load.
const (
	ToolsFile    = "tools.yaml"
	UseCasesFile = "use_cases.yaml"
)

//go:embed defaults/*.yaml
var defaultFS embed.FS

type toolsDoc struct {
	Tools []struct {
		Name  string `yaml:"name"`
		Tiers []struct {
			Name    string   `yaml:"name"`
			Unlocks []string `yaml:"unlocks"`
		} `yaml:"tiers"`
		CapabilityGroups []struct {
			Key          string   `yaml:"key"`
			DisplayName  string   `yaml:"display_name"`
			Capabilities []string `yaml:"capabilities"`
			Scopes       []string `yaml:"scopes"`
		} `yaml:"capability_groups"`
	} `yaml:"tools"`
}

type useCasesDoc struct {
	UseCases []struct {
		ID               string              `yaml:"id"`
		Name             string              `yaml:"name"`
		Category         string              `yaml:"category"`
		RequiredTools    []string            `yaml:"required_tools"`
		RequiredAPIs     map[string][]string `yaml:"required_apis"`
		TargetCategories []string            `yaml:"target_categories"`
		AutomationRate   float64             `yaml:"automation_rate"`
		ResidualHours    *float64            `yaml:"residual_hours"`
		ApprovalLeakage  *float64            `yaml:"approval_leakage"`
		Confidence       float64             `yaml:"confidence"`
		Effort           string              `yaml:"effort"`
		TimeToValueDays  int                 `yaml:"time_to_value_days"`
		Prerequisites    []string            `yaml:"prerequisites"`
		Workflow         []string            `yaml:"workflow"`
	} `yaml:"use_cases"`
}

// Default returns the catalog embedded in the binary.
func Default() (*Catalog, error) {
	tools, err := defaultFS.ReadFile("defaults/" + ToolsFile)
	if err != nil {
		return nil, fmt.Errorf("failed to read embedded tools: %w", err)
	}
	useCases, err := defaultFS.ReadFile("defaults/" + UseCasesFile)
	if err != nil {
		return nil, fmt.Errorf("failed to read embedded use-cases: %w", err)
	}
	return Parse(tools, useCases)
}

// Load reads tools.yaml and use_cases.yaml from dir.
func Load(dir string) (*Catalog, error) {
	tools, err := os.ReadFile(filepath.Join(dir, ToolsFile))
	if err != nil {
		return nil, fmt.Errorf("failed to read tool catalog: %w", err)
	}
	useCases, err := os.ReadFile(filepath.Join(dir, UseCasesFile))
	if err != nil {
		return nil, fmt.Errorf("failed to read use-case catalog: %w", err)
	}
	return Parse(tools, useCases)
}

// Parse decodes the two catalog documents and validates them.
func Parse(toolsYAML, useCasesYAML []byte) (*Catalog, error) {
	var td toolsDoc
	if err := yaml.Unmarshal(toolsYAML, &td); err != nil {
		return nil, fmt.Errorf("failed to parse tool catalog: %w", err)
	}
	var ud useCasesDoc
	if err := yaml.Unmarshal(useCasesYAML, &ud); err != nil {
		return nil, fmt.Errorf("failed to parse use-case catalog: %w", err)
	}

	tools := make([]*Tool, 0, len(td.Tools))
	for _, raw := range td.Tools {
		t := &Tool{Name: raw.Name}
		for _, tier := range raw.Tiers {
			t.Tiers = append(t.Tiers, Tier{Name: tier.Name, Unlocks: tier.Unlocks})
		}
		for _, g := range raw.CapabilityGroups {
			t.Groups = append(t.Groups, CapabilityGroup{
				Key:          g.Key,
				DisplayName:  g.DisplayName,
				Capabilities: g.Capabilities,
				Scopes:       g.Scopes,
			})
		}
		tools = append(tools, t)
	}

	useCases := make([]*UseCase, 0, len(ud.UseCases))
	for _, raw := range ud.UseCases {
		effort, err := ParseEffort(raw.Effort)
		if err != nil {
			return nil, fmt.Errorf("use-case %s: %w", raw.ID, err)
		}
		u := &UseCase{
			ID:              raw.ID,
			Name:            raw.Name,
			Category:        raw.Category,
			RequiredTools:   raw.RequiredTools,
			RequiredAPIs:    make(map[ToolKey][]string, len(raw.RequiredAPIs)),
			AutomationRate:  raw.AutomationRate,
			ResidualHours:   raw.ResidualHours,
			ApprovalLeakage: raw.ApprovalLeakage,
			Confidence:      raw.Confidence,
			Effort:          effort,
			TimeToValueDays: raw.TimeToValueDays,
			Prerequisites:   raw.Prerequisites,
			Workflow:        raw.Workflow,
		}
		for tool, keys := range raw.RequiredAPIs {
			u.RequiredAPIs[NormalizeTool(tool)] = keys
		}
		for _, c := range raw.TargetCategories {
			u.TargetCategories = append(u.TargetCategories, NormalizeCategory(c))
		}
		useCases = append(useCases, u)
	}

	return New(tools, useCases)
}

// New validates tools and use-cases and builds a Catalog. It fills in each
// tool's Key and each capability group's UnlockedBy list.
func New(tools []*Tool, useCases []*UseCase) (*Catalog, error) {
	seenTools := make(map[ToolKey]bool, len(tools))
	for _, t := range tools {
		t.Key = NormalizeTool(t.Name)
		if t.Key == "" {
			return nil, fmt.Errorf("%w: tool with empty name", ErrInvalid)
		}
		if seenTools[t.Key] {
			return nil, fmt.Errorf("%w: duplicate tool %q", ErrInvalid, t.Name)
		}
		seenTools[t.Key] = true

		groupIdx := make(map[string]int, len(t.Groups))
		for i := range t.Groups {
			t.Groups[i].UnlockedBy = nil
			groupIdx[t.Groups[i].Key] = i
		}
		for _, tier := range t.Tiers {
			for _, key := range tier.Unlocks {
				i, ok := groupIdx[key]
				if !ok {
					return nil, fmt.Errorf("%w: tool %s tier %s unlocks undeclared capability group %q",
						ErrInvalid, t.Name, tier.Name, key)
				}
				t.Groups[i].UnlockedBy = append(t.Groups[i].UnlockedBy, tier.Name)
			}
		}
	}

	seenUseCases := make(map[string]bool, len(useCases))
	for _, u := range useCases {
		if err := validateUseCase(u); err != nil {
			return nil, err
		}
		if seenUseCases[u.ID] {
			return nil, fmt.Errorf("%w: duplicate use-case %q", ErrInvalid, u.ID)
		}
		seenUseCases[u.ID] = true
	}

	return newCatalog(tools, useCases), nil
}

func validateUseCase(u *UseCase) error {
	if strings.TrimSpace(u.ID) == "" {
		return fmt.Errorf("%w: use-case with empty id", ErrInvalid)
	}
	if !inUnitRange(u.AutomationRate) {
		return fmt.Errorf("%w: use-case %s: automation_rate %v outside [0,1]", ErrInvalid, u.ID, u.AutomationRate)
	}
	if !inUnitRange(u.Confidence) {
		return fmt.Errorf("%w: use-case %s: confidence %v outside [0,1]", ErrInvalid, u.ID, u.Confidence)
	}
	if u.ApprovalLeakage != nil && !inUnitRange(*u.ApprovalLeakage) {
		return fmt.Errorf("%w: use-case %s: approval_leakage %v outside [0,1]", ErrInvalid, u.ID, *u.ApprovalLeakage)
	}
	if u.ResidualHours != nil && *u.ResidualHours < 0 {
		return fmt.Errorf("%w: use-case %s: negative residual_hours", ErrInvalid, u.ID)
	}
	if u.TimeToValueDays < 0 {
		return fmt.Errorf("%w: use-case %s: negative time_to_value_days", ErrInvalid, u.ID)
	}
	if !u.Effort.Valid() {
		return fmt.Errorf("%w: use-case %s: unknown effort %q", ErrInvalid, u.ID, u.Effort)
	}
	return nil
}

func inUnitRange(v float64) bool {
	return v >= 0 && v <= 1
}
