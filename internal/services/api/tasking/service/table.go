package service

import (
	"bytes"
	"strconv"
	"strings"

	"galaxy/internal/core/mapping"
	"galaxy/internal/services/api/tasking/domain"
)

// validatorKey identifies one validator and project row of the spread table
type validatorKey struct {
	userID        int64
	username      string
	mappingLevel  string
	projectID     int64
	projectStatus string
	countries     string
	tasksMapped   int64
	tasksValid    int64
}

var validatorColumns = []string{
	"user_id", "username", "mapping_level", "project_id", "project_status",
	"countries", "project_tasks_mapped", "project_tasks_validated",
}

// ValidatorsCSV spreads validator stats into one row per validator and
// project with a column per year and a trailing total
func ValidatorsCSV(stats []domain.ValidatorStat) ([]byte, error) {
	var buf bytes.Buffer
	if len(stats) == 0 {
		err := mapping.WriteTable(&buf, append(append([]string{}, validatorColumns...), "total"), nil)
		return buf.Bytes(), err
	}

	cells := make([]mapping.Cell[validatorKey], 0, len(stats))
	for _, s := range stats {
		cells = append(cells, mapping.Cell[validatorKey]{
			Key: validatorKey{
				userID:        s.UserID,
				username:      s.Username,
				mappingLevel:  s.MappingLevel,
				projectID:     s.ProjectID,
				projectStatus: s.ProjectStatus,
				countries:     strings.Join(s.Countries, ","),
				tasksMapped:   s.ProjectTasksMapped,
				tasksValid:    s.ProjectTasksValidated,
			},
			Column: s.Year,
			Value:  s.Validated,
		})
	}
	table, err := mapping.Pivot(cells)
	if err != nil {
		return nil, err
	}

	header := append([]string{}, validatorColumns...)
	for _, y := range table.Columns {
		header = append(header, strconv.Itoa(y))
	}
	header = append(header, "total")

	rows := make([][]string, 0, len(table.Rows))
	for _, r := range table.Rows {
		k := r.Key
		row := []string{
			strconv.FormatInt(k.userID, 10), k.username, k.mappingLevel,
			strconv.FormatInt(k.projectID, 10), k.projectStatus, k.countries,
			strconv.FormatInt(k.tasksMapped, 10), strconv.FormatInt(k.tasksValid, 10),
		}
		var total int64
		for _, v := range r.Values {
			row = append(row, strconv.FormatInt(v, 10))
			total += v
		}
		rows = append(rows, append(row, strconv.FormatInt(total, 10)))
	}
	if err := mapping.WriteTable(&buf, header, rows); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
