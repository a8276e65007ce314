package store

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"strata-cli/internal/model"
)

var csvColumns = []string{
	"ID", "Title", "Kind", "Status", "Priority", "Urgency", "ProcessStage",
	"Project", "Tags", "Due", "Parent", "CreatedUTC", "UpdatedUTC", "Description",
}

// CSVHeader is the column line every export starts with and every import
// must present.
var CSVHeader = strings.Join(csvColumns, ",")

func csvRecord(t *model.Task) []string {
	tags := "-"
	if len(t.Tags) > 0 {
		tags = strings.Join(t.Tags, ";")
	}
	due := "-"
	if t.Due != nil {
		due = t.Due.String()
	}
	parent := "-"
	if t.Parent != nil {
		parent = strconv.FormatUint(*t.Parent, 10)
	}
	return []string{
		strconv.FormatUint(t.ID, 10),
		t.Title,
		t.Kind.Display(),
		t.Status.Display(),
		model.DisplayPriority(t.Priority),
		model.DisplayUrgency(t.Urgency),
		model.DisplayStage(t.Stage),
		model.StrOr(t.Project, "-"),
		tags,
		due,
		parent,
		time.Unix(t.CreatedAtUTC, 0).UTC().Format(time.RFC3339),
		time.Unix(t.UpdatedAtUTC, 0).UTC().Format(time.RFC3339),
		model.StrOr(t.Description, "-"),
	}
}

// WriteTasksCSV exports tasks in the fixed column layout.
func WriteTasksCSV(w io.Writer, tasks []*model.Task) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvColumns); err != nil {
		return err
	}
	for _, t := range tasks {
		if err := cw.Write(csvRecord(t)); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// ProjectTask pairs a task with the display name of the project file it
// came from, for cross-project exports.
type ProjectTask struct {
	ProjectName string
	Task        *model.Task
}

// WriteProjectsCSV exports tasks from several projects, prefixing each row
// with its project name.
func WriteProjectsCSV(w io.Writer, rows []ProjectTask) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(append([]string{"ProjectName"}, csvColumns...)); err != nil {
		return err
	}
	for _, row := range rows {
		if err := cw.Write(append([]string{row.ProjectName}, csvRecord(row.Task)...)); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// ImportResult counts the outcome of a CSV import.
type ImportResult struct {
	Imported int
	Skipped  int
}

// ImportCSV appends tasks parsed from r to db. Rows with the wrong field
// count, an empty title, or a title already present are skipped with a
// warning on warn. Imported tasks get fresh sequential ids; the CSV's
// timestamp columns are ignored and replaced with now.
//
// Summary, user story, requirements, links and artifacts are not part of
// the CSV layout and import as unset.
func ImportCSV(db *DB, r io.Reader, warn io.Writer) (ImportResult, error) {
	var res ImportResult

	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true

	header, err := cr.Read()
	if err == io.EOF {
		return res, fmt.Errorf("CSV file is empty")
	}
	if err != nil {
		return res, err
	}
	if strings.Join(header, ",") != CSVHeader {
		return res, fmt.Errorf("Invalid CSV header. Expected:\n%s\nGot:\n%s", CSVHeader, strings.Join(header, ","))
	}

	now := time.Now().Unix()
	nextID := db.NextID()
	for lineNum := 2; ; lineNum++ {
		fields, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			fmt.Fprintf(warn, "Warning: Line %d is malformed (%v). Skipping.\n", lineNum, err)
			res.Skipped++
			continue
		}
		if len(fields) != len(csvColumns) {
			fmt.Fprintf(warn, "Warning: Line %d has %d fields, expected %d. Skipping.\n", lineNum, len(fields), len(csvColumns))
			res.Skipped++
			continue
		}

		title := fields[1]
		if title == "" {
			fmt.Fprintf(warn, "Warning: Line %d has empty title. Skipping.\n", lineNum)
			res.Skipped++
			continue
		}
		exists := false
		for i := range db.Tasks {
			if db.Tasks[i].Title == title {
				exists = true
				break
			}
		}
		if exists {
			fmt.Fprintf(warn, "Warning: Task with title '%s' already exists. Skipping.\n", title)
			res.Skipped++
			continue
		}

		t := model.Task{
			ID:           nextID,
			Title:        title,
			Tags:         []string{},
			Artifacts:    []string{},
			CreatedAtUTC: now,
			UpdatedAtUTC: now,
		}
		if kind, err := model.ParseKind(fields[2]); err == nil {
			t.Kind = kind
		} else {
			t.Kind = model.KindTask
		}
		if status, err := model.ParseStatus(fields[3]); err == nil {
			t.Status = status
		} else {
			t.Status = model.StatusOpen
		}
		if p, err := model.ParsePriority(fields[4]); err == nil {
			t.Priority = &p
		}
		if u, err := model.ParseUrgency(fields[5]); err == nil {
			t.Urgency = &u
		}
		if s, err := model.ParseStage(fields[6]); err == nil {
			t.Stage = &s
		}
		if fields[7] != "-" {
			t.Project = model.StrPtr(fields[7])
		}
		if fields[8] != "-" && fields[8] != "" {
			t.Tags = strings.Split(fields[8], ";")
		}
		if fields[9] != "-" {
			if d, err := model.ParseDate(fields[9]); err == nil {
				t.Due = &d
			}
		}
		if fields[10] != "-" {
			if p, err := strconv.ParseUint(fields[10], 10, 64); err == nil {
				t.Parent = &p
			}
		}
		if fields[13] != "-" {
			t.Description = model.StrPtr(fields[13])
		}

		db.Tasks = append(db.Tasks, t)
		res.Imported++
		nextID++
	}
	return res, nil
}
