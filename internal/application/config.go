// Package application wires the scoring engine's components into
// runnable tasks: it loads and validates task configuration and drives
// the extract-aggregate-score pipeline over result sets.
package application

import (
	"fmt"
	"os"
	"strings"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/brandscope/brandscope/internal/domain"
)

// TaskConfig is the YAML configuration of one analysis task: which
// result file to score, which brands to recognize and rank, and how to
// weight the composite index.
type TaskConfig struct {
	// TaskName identifies the analysis task.
	TaskName string `yaml:"task_name" validate:"required,min=1"`

	// ResultsFile is the path of the collected result set to score.
	ResultsFile string `yaml:"results_file"`

	// RankingOutputFile is where the rendered report is written.
	// Empty means ranking_report_<task_name>.md.
	RankingOutputFile string `yaml:"ranking_output_file"`

	// ReportTitle is the heading of the rendered report.
	// Empty means a default title derived from the task name.
	ReportTitle string `yaml:"report_title"`

	// Weights configures the composite index. Omitted weights mean the
	// equal-weight default.
	Weights *domain.Weights `yaml:"weights"`

	// BrandDictionary maps canonical names to recognized aliases.
	BrandDictionary map[string][]string `yaml:"brand_dictionary" validate:"required,min=1"`

	// BrandsWhitelist lists the canonical names to rank.
	BrandsWhitelist []string `yaml:"brands_whitelist" validate:"required,min=1"`
}

var validate = validator.New()

// LoadTaskConfig reads and validates a task configuration file.
func LoadTaskConfig(path string) (*TaskConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	return ParseTaskConfig(data)
}

// ParseTaskConfig parses and validates task configuration from YAML.
// Empty alias entries are dropped rather than rejected, since
// hand-edited dictionaries routinely carry placeholder lines; a brand
// left with no aliases at all is an error.
func ParseTaskConfig(data []byte) (*TaskConfig, error) {
	var config TaskConfig
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	if err := validate.Struct(&config); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	config.BrandDictionary = pruneEmptyAliases(config.BrandDictionary)

	dictionary := domain.BrandDictionary(config.BrandDictionary)
	if err := dictionary.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidConfiguration, err)
	}

	if config.Weights != nil {
		if err := validate.Struct(config.Weights); err != nil {
			return nil, fmt.Errorf("invalid weights: %w", err)
		}
	}

	if config.RankingOutputFile == "" {
		config.RankingOutputFile = fmt.Sprintf("ranking_report_%s.md", config.TaskName)
	}
	if config.ReportTitle == "" {
		config.ReportTitle = fmt.Sprintf("# %s 品牌AI认知指数排行榜", strings.ToUpper(config.TaskName))
	}

	return &config, nil
}

// Dictionary returns the validated brand dictionary.
func (c *TaskConfig) Dictionary() domain.BrandDictionary {
	return domain.BrandDictionary(c.BrandDictionary)
}

// Whitelist returns the whitelist as a set.
func (c *TaskConfig) Whitelist() domain.Whitelist {
	return domain.NewWhitelist(c.BrandsWhitelist)
}

// ScoringWeights returns the configured weights, or the equal-weight
// default when the config omits them.
func (c *TaskConfig) ScoringWeights() domain.Weights {
	if c.Weights != nil {
		return *c.Weights
	}
	return domain.DefaultWeights()
}

func pruneEmptyAliases(dictionary map[string][]string) map[string][]string {
	pruned := make(map[string][]string, len(dictionary))
	for brand, aliases := range dictionary {
		kept := make([]string, 0, len(aliases))
		for _, alias := range aliases {
			if strings.TrimSpace(alias) != "" {
				kept = append(kept, alias)
			}
		}
		pruned[brand] = kept
	}
	return pruned
}
