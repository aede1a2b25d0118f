package views

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yukikurage/workspace-task-api/internal/models"
)

func at(day int) *time.Time {
	t := time.Date(2025, 10, day, 12, 0, 0, 0, time.UTC)
	return &t
}

func fixture() []models.Section {
	created := time.Date(2025, 10, 1, 9, 0, 0, 0, time.UTC)

	todo := models.Section{Name: "未着手", Order: 0}
	todo.ID = "s0"
	todo.Tasks = []models.Task{
		{Base: models.Base{ID: "t1", CreatedAt: created, UpdatedAt: created.Add(time.Hour)}, Name: "Spec", DueDate: at(10)},
		{Base: models.Base{ID: "t2", CreatedAt: created, UpdatedAt: created.Add(3 * time.Hour)}, Name: "Mock"},
	}

	doing := models.Section{Name: "進行中", Order: 1}
	doing.ID = "s1"
	doing.Tasks = []models.Task{
		{Base: models.Base{ID: "t3", CreatedAt: created, UpdatedAt: created.Add(2 * time.Hour)}, Name: "Build", DueDate: at(5)},
		{Base: models.Base{ID: "t4", CreatedAt: created, UpdatedAt: created}, Name: "Review", DueDate: at(10)},
	}

	// Deliberately out of order to check the board sorts columns.
	return []models.Section{doing, todo}
}

func TestParseType(t *testing.T) {
	for raw, want := range map[string]Type{
		"list":   TypeList,
		"Board":  TypeBoard,
		"ガント":    TypeGantt,
		"カレンダー":  TypeCalendar,
		"タイムライン": TypeTimeline,
	} {
		got, err := ParseType(raw)
		require.NoError(t, err, raw)
		assert.Equal(t, want, got)
	}

	_, err := ParseType("kanban")
	assert.ErrorIs(t, err, ErrUnknownType)
}

func TestBuild_List(t *testing.T) {
	view, err := Build(TypeList, fixture())
	require.NoError(t, err)

	list := view.(ListView)
	require.Len(t, list.Tasks, 4)
	assert.Equal(t, []string{"t2", "t3", "t1", "t4"}, []string{list.Tasks[0].ID, list.Tasks[1].ID, list.Tasks[2].ID, list.Tasks[3].ID})
}

func TestBuild_Board(t *testing.T) {
	view, err := Build(TypeBoard, fixture())
	require.NoError(t, err)

	board := view.(BoardView)
	require.Len(t, board.Columns, 2)
	assert.Equal(t, "s0", board.Columns[0].Section.ID)
	assert.Empty(t, board.Columns[0].Section.Tasks)
	assert.Len(t, board.Columns[0].Tasks, 2)
	assert.Equal(t, "s1", board.Columns[1].Section.ID)
}

func TestBuild_TimelineAndGantt(t *testing.T) {
	view, err := Build(TypeTimeline, fixture())
	require.NoError(t, err)

	timeline := view.(TimelineView)
	require.Len(t, timeline.Tasks, 3)
	assert.Equal(t, "t3", timeline.Tasks[0].ID)
	// Same due date falls back to name order.
	assert.Equal(t, "t4", timeline.Tasks[1].ID)
	assert.Equal(t, "t1", timeline.Tasks[2].ID)
	require.Len(t, timeline.Undated, 1)
	assert.Equal(t, "t2", timeline.Undated[0].ID)

	view, err = Build(TypeGantt, fixture())
	require.NoError(t, err)

	gantt := view.(GanttView)
	require.Len(t, gantt.Bars, 3)
	assert.True(t, gantt.Bars[0].Start.Before(gantt.Bars[0].End))
	assert.Equal(t, *at(5), gantt.Bars[0].End)
}

func TestBuild_Calendar(t *testing.T) {
	view, err := Build(TypeCalendar, fixture())
	require.NoError(t, err)

	calendar := view.(CalendarView)
	require.Len(t, calendar.Days, 2)
	assert.Equal(t, "2025-10-05", calendar.Days[0].Date)
	assert.Equal(t, "2025-10-10", calendar.Days[1].Date)
	assert.Len(t, calendar.Days[1].Tasks, 2)
	assert.Equal(t, TypeCalendar, view.ViewType())
}

func TestBuild_UnknownType(t *testing.T) {
	_, err := Build(Type("kanban"), fixture())
	assert.ErrorIs(t, err, ErrUnknownType)
}
