package goal

import (
	"os"

	"github.com/rotisserie/eris"
	"gopkg.in/yaml.v3"

	"github.com/payvista/finhealth/internal/model"
)

// definitionsFile is the on-disk shape of a goal definitions file.
type definitionsFile struct {
	Goals []Definition `yaml:"goals"`
}

var validGoalTypes = map[model.GoalType]bool{
	model.GoalEmergencyFund: true,
	model.GoalEducation:     true,
	model.GoalMajorPurchase: true,
	model.GoalRetirement:    true,
	model.GoalSavings:       true,
	model.GoalInvestment:    true,
	model.GoalDebtPayoff:    true,
}

// LoadDefinitions reads caller-defined goals from a YAML file. A missing path
// returns no definitions; the built-in goals cover that case.
func LoadDefinitions(path string) ([]Definition, error) {
	if path == "" {
		return nil, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, eris.Wrapf(err, "goal: read definitions %s", path)
	}

	var file definitionsFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, eris.Wrapf(err, "goal: parse definitions %s", path)
	}

	for i, def := range file.Goals {
		if err := validateDefinition(def); err != nil {
			return nil, eris.Wrapf(err, "goal: definition %d (%s)", i+1, def.Name)
		}
	}
	return file.Goals, nil
}

func validateDefinition(def Definition) error {
	if !validGoalTypes[def.Type] {
		return eris.Errorf("unknown goal type %q", def.Type)
	}
	if def.Name == "" {
		return eris.New("goal name is required")
	}
	if def.TargetAmount <= 0 {
		return eris.Errorf("target amount must be positive, got %v", def.TargetAmount)
	}
	if def.TargetDate.IsZero() {
		return eris.New("target date is required")
	}
	return nil
}
