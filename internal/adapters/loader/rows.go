package loader

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/okian/auditplan/internal/domain/model"
)

var validate = newValidator()

// newValidator registers "finite", which rejects NaN and ±Inf.
func newValidator() *validator.Validate {
	v := validator.New()
	_ = v.RegisterValidation("finite", func(fl validator.FieldLevel) bool {
		f := fl.Field().Float()
		return !math.IsNaN(f) && !math.IsInf(f, 0)
	})
	return v
}

// Column names shared by every tabular format.
var (
	engagementColumns = []string{"client_industry", "client_size", "complexity", "prev_issues", "hours_spent"}
	staffColumns      = []string{"staff_id", "name", "level", "skills", "available_hours_per_week"}
)

type engagementRow struct {
	ClientIndustry string   `yaml:"client_industry" validate:"required"`
	ClientSize     string   `yaml:"client_size" validate:"required,oneof=Small Medium Large"`
	Complexity     string   `yaml:"complexity" validate:"required,oneof=Low Medium High"`
	PrevIssues     *int     `yaml:"prev_issues" validate:"required,gte=0"`
	HoursSpent     *float64 `yaml:"hours_spent" validate:"required,finite,gte=0"`
}

func (r engagementRow) record() (model.EngagementRecord, error) {
	if err := validate.Struct(r); err != nil {
		return model.EngagementRecord{}, err
	}
	size, err := model.ParseSize(r.ClientSize)
	if err != nil {
		return model.EngagementRecord{}, err
	}
	complexity, err := model.ParseComplexity(r.Complexity)
	if err != nil {
		return model.EngagementRecord{}, err
	}
	return model.EngagementRecord{
		ClientIndustry: r.ClientIndustry,
		ClientSize:     size,
		Complexity:     complexity,
		PrevIssues:     *r.PrevIssues,
		HoursSpent:     *r.HoursSpent,
	}, nil
}

type staffRow struct {
	StaffID               string    `yaml:"staff_id" validate:"required"`
	Name                  string    `yaml:"name" validate:"required"`
	Level                 string    `yaml:"level" validate:"required"`
	Skills                skillList `yaml:"skills"`
	AvailableHoursPerWeek *float64  `yaml:"available_hours_per_week" validate:"required,finite,gte=0"`
}

func (r staffRow) record() (model.StaffRecord, error) {
	if err := validate.Struct(r); err != nil {
		return model.StaffRecord{}, err
	}
	skills := []string(r.Skills)
	if skills == nil {
		skills = []string{}
	}
	return model.StaffRecord{
		StaffID:               r.StaffID,
		Name:                  r.Name,
		Level:                 model.Level(r.Level),
		Skills:                skills,
		AvailableHoursPerWeek: *r.AvailableHoursPerWeek,
	}, nil
}

// skillList accepts either a YAML sequence or the delimited string form.
type skillList []string

func (s *skillList) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode:
		*s = model.ParseSkills(node.Value)
		return nil
	case yaml.SequenceNode:
		var raw []string
		if err := node.Decode(&raw); err != nil {
			return err
		}
		*s = model.ParseSkills(strings.Join(raw, model.SkillSeparator))
		return nil
	}
	return fmt.Errorf("line %d: skills must be a string or a list", node.Line)
}

// table is a header-addressed view over string rows.
type table struct {
	index map[string]int
	rows  [][]string
}

func newTable(header []string, rows [][]string, required []string) (*table, error) {
	t := &table{index: make(map[string]int, len(header)), rows: rows}
	for i, col := range header {
		t.index[strings.ToLower(strings.TrimSpace(col))] = i
	}
	var missing []string
	for _, col := range required {
		if _, ok := t.index[col]; !ok {
			missing = append(missing, col)
		}
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("missing columns %s", strings.Join(missing, ", "))
	}
	return t, nil
}

func (t *table) cell(row []string, col string) string {
	i := t.index[col]
	if i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}

func blank(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}

func (t *table) engagementRow(row []string) (engagementRow, error) {
	prev, err := parseInt(t.cell(row, "prev_issues"))
	if err != nil {
		return engagementRow{}, fmt.Errorf("prev_issues: %w", err)
	}
	hours, err := strconv.ParseFloat(t.cell(row, "hours_spent"), 64)
	if err != nil {
		return engagementRow{}, fmt.Errorf("hours_spent: %w", err)
	}
	return engagementRow{
		ClientIndustry: t.cell(row, "client_industry"),
		ClientSize:     t.cell(row, "client_size"),
		Complexity:     t.cell(row, "complexity"),
		PrevIssues:     &prev,
		HoursSpent:     &hours,
	}, nil
}

func (t *table) staffRow(row []string) (staffRow, error) {
	avail, err := strconv.ParseFloat(t.cell(row, "available_hours_per_week"), 64)
	if err != nil {
		return staffRow{}, fmt.Errorf("available_hours_per_week: %w", err)
	}
	return staffRow{
		StaffID:               t.cell(row, "staff_id"),
		Name:                  t.cell(row, "name"),
		Level:                 t.cell(row, "level"),
		Skills:                model.ParseSkills(t.cell(row, "skills")),
		AvailableHoursPerWeek: &avail,
	}, nil
}

// parseInt accepts integral values written as floats ("2.0"), which
// spreadsheet exports produce.
func parseInt(s string) (int, error) {
	if n, err := strconv.Atoi(s); err == nil {
		return n, nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, err
	}
	if f != float64(int(f)) {
		return 0, fmt.Errorf("%q is not a whole number", s)
	}
	return int(f), nil
}

// Engagements converts every non-blank row. Row numbers in errors count the
// header as row 1.
func (t *table) engagements(name string) ([]model.EngagementRecord, error) {
	out := make([]model.EngagementRecord, 0, len(t.rows))
	for i, row := range t.rows {
		if blank(row) {
			continue
		}
		dto, err := t.engagementRow(row)
		if err == nil {
			var rec model.EngagementRecord
			if rec, err = dto.record(); err == nil {
				out = append(out, rec)
				continue
			}
		}
		return nil, rowError(name, i+2, err)
	}
	return out, nil
}

func (t *table) staff(name string) ([]model.StaffRecord, error) {
	out := make([]model.StaffRecord, 0, len(t.rows))
	for i, row := range t.rows {
		if blank(row) {
			continue
		}
		dto, err := t.staffRow(row)
		if err == nil {
			var rec model.StaffRecord
			if rec, err = dto.record(); err == nil {
				out = append(out, rec)
				continue
			}
		}
		return nil, rowError(name, i+2, err)
	}
	return out, nil
}

func rowError(name string, row int, err error) error {
	return fmt.Errorf("%s row %d: %w: %w", name, row, model.ErrDataLoad, err)
}
