// Package views turns the sections and tasks of a project into the
// presentation model of one view type.
package views

import (
	"errors"
	"sort"
	"strings"
	"time"

	"github.com/yukikurage/workspace-task-api/internal/dto"
	"github.com/yukikurage/workspace-task-api/internal/models"
)

// Type names a project view.
type Type string

const (
	TypeList     Type = "list"
	TypeBoard    Type = "board"
	TypeTimeline Type = "timeline"
	TypeGantt    Type = "gantt"
	TypeCalendar Type = "calendar"
)

// ErrUnknownType is returned for a view type outside the supported set.
var ErrUnknownType = errors.New("unknown view type")

var labels = map[string]Type{
	"リスト":    TypeList,
	"ボード":    TypeBoard,
	"タイムライン": TypeTimeline,
	"ガント":    TypeGantt,
	"カレンダー":  TypeCalendar,
}

// ParseType accepts either the identifier or the display label of a view type.
func ParseType(raw string) (Type, error) {
	raw = strings.TrimSpace(raw)
	switch t := Type(strings.ToLower(raw)); t {
	case TypeList, TypeBoard, TypeTimeline, TypeGantt, TypeCalendar:
		return t, nil
	}
	if t, ok := labels[raw]; ok {
		return t, nil
	}
	return "", ErrUnknownType
}

// View is implemented by every presentation model.
type View interface {
	ViewType() Type
}

// ListView is every task, most recently updated first.
type ListView struct {
	Type  Type          `json:"type"`
	Tasks []dto.TaskDTO `json:"tasks"`
}

// BoardColumn is one section with its tasks.
type BoardColumn struct {
	Section dto.SectionDTO `json:"section"`
	Tasks   []dto.TaskDTO  `json:"tasks"`
}

// BoardView has one column per section, in section order.
type BoardView struct {
	Type    Type          `json:"type"`
	Columns []BoardColumn `json:"columns"`
}

// TimelineView lists dated tasks by due date; undated tasks are kept apart.
type TimelineView struct {
	Type    Type          `json:"type"`
	Tasks   []dto.TaskDTO `json:"tasks"`
	Undated []dto.TaskDTO `json:"undated"`
}

// GanttBar spans from task creation to its due date.
type GanttBar struct {
	Task  dto.TaskDTO `json:"task"`
	Start time.Time   `json:"start"`
	End   time.Time   `json:"end"`
}

// GanttView has one bar per dated task.
type GanttView struct {
	Type Type       `json:"type"`
	Bars []GanttBar `json:"bars"`
}

// CalendarDay groups the tasks due on one day (YYYY-MM-DD).
type CalendarDay struct {
	Date  string        `json:"date"`
	Tasks []dto.TaskDTO `json:"tasks"`
}

// CalendarView lists days with due tasks in ascending order.
type CalendarView struct {
	Type Type          `json:"type"`
	Days []CalendarDay `json:"days"`
}

func (ListView) ViewType() Type     { return TypeList }
func (BoardView) ViewType() Type    { return TypeBoard }
func (TimelineView) ViewType() Type { return TypeTimeline }
func (GanttView) ViewType() Type    { return TypeGantt }
func (CalendarView) ViewType() Type { return TypeCalendar }

// Build renders sections (with their tasks preloaded) as a view of type t.
func Build(t Type, sections []models.Section) (View, error) {
	switch t {
	case TypeList:
		return buildList(sections), nil
	case TypeBoard:
		return buildBoard(sections), nil
	case TypeTimeline:
		return buildTimeline(sections), nil
	case TypeGantt:
		return buildGantt(sections), nil
	case TypeCalendar:
		return buildCalendar(sections), nil
	default:
		return nil, ErrUnknownType
	}
}

func allTasks(sections []models.Section) []models.Task {
	var tasks []models.Task
	for _, section := range sections {
		tasks = append(tasks, section.Tasks...)
	}
	return tasks
}

func toDTOs(tasks []models.Task) []dto.TaskDTO {
	dtos := make([]dto.TaskDTO, len(tasks))
	for i, task := range tasks {
		dtos[i] = dto.ToTaskDTO(task)
	}
	return dtos
}

// byDueDate sorts dated tasks first by due date, then by name.
func byDueDate(tasks []models.Task) {
	sort.SliceStable(tasks, func(i, j int) bool {
		a, b := tasks[i].DueDate, tasks[j].DueDate
		if !a.Equal(*b) {
			return a.Before(*b)
		}
		return tasks[i].Name < tasks[j].Name
	})
}

func splitDated(tasks []models.Task) (dated, undated []models.Task) {
	for _, task := range tasks {
		if task.DueDate != nil {
			dated = append(dated, task)
		} else {
			undated = append(undated, task)
		}
	}
	byDueDate(dated)
	return dated, undated
}

func buildList(sections []models.Section) ListView {
	tasks := allTasks(sections)
	sort.SliceStable(tasks, func(i, j int) bool {
		return tasks[i].UpdatedAt.After(tasks[j].UpdatedAt)
	})
	return ListView{Type: TypeList, Tasks: toDTOs(tasks)}
}

func buildBoard(sections []models.Section) BoardView {
	ordered := make([]models.Section, len(sections))
	copy(ordered, sections)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].Order < ordered[j].Order
	})

	columns := make([]BoardColumn, len(ordered))
	for i, section := range ordered {
		tasks := section.Tasks
		section.Tasks = nil
		columns[i] = BoardColumn{
			Section: dto.ToSectionDTO(section),
			Tasks:   toDTOs(tasks),
		}
	}
	return BoardView{Type: TypeBoard, Columns: columns}
}

func buildTimeline(sections []models.Section) TimelineView {
	dated, undated := splitDated(allTasks(sections))
	return TimelineView{Type: TypeTimeline, Tasks: toDTOs(dated), Undated: toDTOs(undated)}
}

func buildGantt(sections []models.Section) GanttView {
	dated, _ := splitDated(allTasks(sections))

	bars := make([]GanttBar, len(dated))
	for i, task := range dated {
		start, end := task.CreatedAt, *task.DueDate
		if end.Before(start) {
			start = end
		}
		bars[i] = GanttBar{Task: dto.ToTaskDTO(task), Start: start, End: end}
	}
	return GanttView{Type: TypeGantt, Bars: bars}
}

func buildCalendar(sections []models.Section) CalendarView {
	dated, _ := splitDated(allTasks(sections))

	days := []CalendarDay{}
	for _, task := range dated {
		date := task.DueDate.Format("2006-01-02")
		if n := len(days); n > 0 && days[n-1].Date == date {
			days[n-1].Tasks = append(days[n-1].Tasks, dto.ToTaskDTO(task))
			continue
		}
		days = append(days, CalendarDay{Date: date, Tasks: []dto.TaskDTO{dto.ToTaskDTO(task)}})
	}
	return CalendarView{Type: TypeCalendar, Days: days}
}
