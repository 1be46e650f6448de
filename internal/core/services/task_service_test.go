package services

import (
	"context"
	"sort"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tasklist/api/internal/core/domain"
	"github.com/tasklist/api/internal/core/ports"
)

type fakeTaskRepo struct {
	nextID int64
	tasks  []*domain.Task
}

func newFakeTaskRepo() *fakeTaskRepo {
	return &fakeTaskRepo{nextID: 1}
}

func cloneTask(t *domain.Task) *domain.Task {
	c := *t
	return &c
}

func (r *fakeTaskRepo) FindAll(_ context.Context, userID uuid.UUID) ([]*domain.Task, error) {
	var out []*domain.Task
	for _, t := range r.tasks {
		if t.UserID == userID {
			out = append(out, cloneTask(t))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Position < out[j].Position })
	return out, nil
}

func (r *fakeTaskRepo) FindByID(_ context.Context, id int64, userID uuid.UUID) (*domain.Task, error) {
	for _, t := range r.tasks {
		if t.ID == id && t.UserID == userID {
			return cloneTask(t), nil
		}
	}
	return nil, nil
}

func (r *fakeTaskRepo) Create(_ context.Context, task *domain.Task) error {
	task.ID = r.nextID
	r.nextID++
	r.tasks = append(r.tasks, cloneTask(task))
	return nil
}

func (r *fakeTaskRepo) Update(_ context.Context, task *domain.Task) error {
	for i, t := range r.tasks {
		if t.ID == task.ID && t.UserID == task.UserID {
			r.tasks[i] = cloneTask(task)
			return nil
		}
	}
	return nil
}

func (r *fakeTaskRepo) Delete(_ context.Context, id int64, userID uuid.UUID) (bool, error) {
	for i, t := range r.tasks {
		if t.ID == id && t.UserID == userID {
			r.tasks = append(r.tasks[:i], r.tasks[i+1:]...)
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeTaskRepo) UpdatePositions(_ context.Context, userID uuid.UUID, tasks []*domain.Task) error {
	for _, changed := range tasks {
		for _, t := range r.tasks {
			if t.ID == changed.ID && t.UserID == userID {
				t.Position = changed.Position
				t.UpdatedAt = changed.UpdatedAt
			}
		}
	}
	return nil
}

func seedTasks(t *testing.T, repo *fakeTaskRepo, ident ports.Identity, descriptions ...string) []*domain.Task {
	t.Helper()
	svc := NewTaskService(repo)
	out := make([]*domain.Task, 0, len(descriptions))
	for i, desc := range descriptions {
		pos := i
		task, err := svc.Create(context.Background(), ident, ports.CreateTaskInput{Description: desc, Position: &pos})
		require.NoError(t, err)
		out = append(out, task)
	}
	return out
}

func positionsOf(tasks []*domain.Task) []int {
	out := make([]int, 0, len(tasks))
	for _, t := range tasks {
		out = append(out, t.Position)
	}
	return out
}

func descriptionsOf(tasks []*domain.Task) []string {
	out := make([]string, 0, len(tasks))
	for _, t := range tasks {
		out = append(out, t.Description)
	}
	return out
}

func TestTaskCreate(t *testing.T) {
	repo := newFakeTaskRepo()
	svc := NewTaskService(repo)
	ident := ports.Identity{UserID: uuid.New()}

	task, err := svc.Create(context.Background(), ident, ports.CreateTaskInput{Description: "buy milk"})
	require.NoError(t, err)

	assert.Equal(t, "buy milk", task.Description)
	assert.Equal(t, 0, task.Position, "omitted position defaults to 0")
	assert.False(t, task.IsCompleted)
	assert.Equal(t, ident.UserID, task.UserID)
}

func TestTaskCreateEmptyDescription(t *testing.T) {
	repo := newFakeTaskRepo()
	svc := NewTaskService(repo)
	ident := ports.Identity{UserID: uuid.New()}

	_, err := svc.Create(context.Background(), ident, ports.CreateTaskInput{Description: ""})
	assert.ErrorIs(t, err, domain.ErrEmptyDescription)
}

func TestTaskCreateDoesNotRenumber(t *testing.T) {
	repo := newFakeTaskRepo()
	svc := NewTaskService(repo)
	ident := ports.Identity{UserID: uuid.New()}
	seedTasks(t, repo, ident, "a", "b")

	pos := 0
	_, err := svc.Create(context.Background(), ident, ports.CreateTaskInput{Description: "c", Position: &pos})
	require.NoError(t, err)

	tasks, err := svc.List(context.Background(), ident)
	require.NoError(t, err)
	assert.ElementsMatch(t, []int{0, 0, 1}, positionsOf(tasks), "insert leaves existing rows untouched")
}

func TestTaskGetNotFound(t *testing.T) {
	repo := newFakeTaskRepo()
	svc := NewTaskService(repo)
	ident := ports.Identity{UserID: uuid.New()}

	_, err := svc.Get(context.Background(), ident, 42)
	assert.ErrorIs(t, err, domain.ErrTaskNotFound)
}

func TestTaskGetOtherOwner(t *testing.T) {
	repo := newFakeTaskRepo()
	svc := NewTaskService(repo)
	owner := ports.Identity{UserID: uuid.New()}
	other := ports.Identity{UserID: uuid.New()}
	tasks := seedTasks(t, repo, owner, "private")

	_, err := svc.Get(context.Background(), other, tasks[0].ID)
	assert.ErrorIs(t, err, domain.ErrTaskNotFound)
}

func TestTaskUpdate(t *testing.T) {
	repo := newFakeTaskRepo()
	svc := NewTaskService(repo)
	ident := ports.Identity{UserID: uuid.New()}
	tasks := seedTasks(t, repo, ident, "draft")
	before := tasks[0].UpdatedAt

	desc := "final"
	done := true
	updated, err := svc.Update(context.Background(), ident, tasks[0].ID, ports.UpdateTaskInput{
		Description: &desc,
		IsCompleted: &done,
	})
	require.NoError(t, err)

	assert.Equal(t, "final", updated.Description)
	assert.True(t, updated.IsCompleted)
	assert.Equal(t, 0, updated.Position, "untouched fields keep their value")
	assert.False(t, updated.UpdatedAt.Before(before))
}

func TestTaskUpdateNotFound(t *testing.T) {
	repo := newFakeTaskRepo()
	svc := NewTaskService(repo)
	ident := ports.Identity{UserID: uuid.New()}

	desc := "x"
	_, err := svc.Update(context.Background(), ident, 99, ports.UpdateTaskInput{Description: &desc})
	assert.ErrorIs(t, err, domain.ErrTaskNotFound)
}

func TestTaskUpdatePositionDoesNotCompact(t *testing.T) {
	repo := newFakeTaskRepo()
	svc := NewTaskService(repo)
	ident := ports.Identity{UserID: uuid.New()}
	tasks := seedTasks(t, repo, ident, "a", "b", "c")

	pos := 5
	_, err := svc.Update(context.Background(), ident, tasks[0].ID, ports.UpdateTaskInput{Position: &pos})
	require.NoError(t, err)

	all, err := svc.List(context.Background(), ident)
	require.NoError(t, err)
	assert.Equal(t, []int{1, 2, 5}, positionsOf(all), "direct position edits leave gaps")
}

func TestTaskDeleteNotFoundLeavesListUnchanged(t *testing.T) {
	repo := newFakeTaskRepo()
	svc := NewTaskService(repo)
	ident := ports.Identity{UserID: uuid.New()}
	seedTasks(t, repo, ident, "a", "b", "c")

	err := svc.Delete(context.Background(), ident, 999)
	assert.ErrorIs(t, err, domain.ErrTaskNotFound)

	tasks, err := svc.List(context.Background(), ident)
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b", "c"}, descriptionsOf(tasks))
}

func TestTaskDelete(t *testing.T) {
	repo := newFakeTaskRepo()
	svc := NewTaskService(repo)
	ident := ports.Identity{UserID: uuid.New()}
	tasks := seedTasks(t, repo, ident, "a", "b")

	require.NoError(t, svc.Delete(context.Background(), ident, tasks[0].ID))

	remaining, err := svc.List(context.Background(), ident)
	require.NoError(t, err)
	require.Len(t, remaining, 1)
	assert.Equal(t, "b", remaining[0].Description)
	assert.Equal(t, 1, remaining[0].Position, "delete does not compact positions")
}

func TestTaskToggleCompletion(t *testing.T) {
	repo := newFakeTaskRepo()
	svc := NewTaskService(repo)
	ident := ports.Identity{UserID: uuid.New()}
	tasks := seedTasks(t, repo, ident, "a")

	toggled, err := svc.ToggleCompletion(context.Background(), ident, tasks[0].ID)
	require.NoError(t, err)
	assert.True(t, toggled.IsCompleted)

	toggled, err = svc.ToggleCompletion(context.Background(), ident, tasks[0].ID)
	require.NoError(t, err)
	assert.False(t, toggled.IsCompleted)
}

func TestTaskReorderMoveBackward(t *testing.T) {
	repo := newFakeTaskRepo()
	svc := NewTaskService(repo)
	ident := ports.Identity{UserID: uuid.New()}
	tasks := seedTasks(t, repo, ident, "A", "B", "C", "D")

	// D moves from 3 to 1; B and C shift up by one.
	reordered, err := svc.Reorder(context.Background(), ident, tasks[3].ID, 1)
	require.NoError(t, err)

	assert.Equal(t, []string{"A", "D", "B", "C"}, descriptionsOf(reordered))
	assert.Equal(t, []int{0, 1, 2, 3}, positionsOf(reordered))
}

func TestTaskReorderMoveForward(t *testing.T) {
	repo := newFakeTaskRepo()
	svc := NewTaskService(repo)
	ident := ports.Identity{UserID: uuid.New()}
	tasks := seedTasks(t, repo, ident, "A", "B", "C", "D")

	// A moves from 0 to 2; B and C shift down by one.
	reordered, err := svc.Reorder(context.Background(), ident, tasks[0].ID, 2)
	require.NoError(t, err)

	assert.Equal(t, []string{"B", "C", "A", "D"}, descriptionsOf(reordered))
	assert.Equal(t, []int{0, 1, 2, 3}, positionsOf(reordered))
}

func TestTaskReorderSamePosition(t *testing.T) {
	repo := newFakeTaskRepo()
	svc := NewTaskService(repo)
	ident := ports.Identity{UserID: uuid.New()}
	tasks := seedTasks(t, repo, ident, "A", "B", "C")

	reordered, err := svc.Reorder(context.Background(), ident, tasks[1].ID, 1)
	require.NoError(t, err)

	assert.Equal(t, []string{"A", "B", "C"}, descriptionsOf(reordered))
	assert.Equal(t, []int{0, 1, 2}, positionsOf(reordered))
}

func TestTaskReorderNotFound(t *testing.T) {
	repo := newFakeTaskRepo()
	svc := NewTaskService(repo)
	ident := ports.Identity{UserID: uuid.New()}
	seedTasks(t, repo, ident, "A")

	_, err := svc.Reorder(context.Background(), ident, 77, 0)
	assert.ErrorIs(t, err, domain.ErrTaskNotFound)
}

func TestTaskReorderPreservesPositionMultiset(t *testing.T) {
	repo := newFakeTaskRepo()
	svc := NewTaskService(repo)
	ident := ports.Identity{UserID: uuid.New()}
	tasks := seedTasks(t, repo, ident, "a", "b", "c", "d", "e", "f")

	moves := []struct {
		idx         int
		newPosition int
	}{
		{0, 5}, {3, 0}, {2, 2}, {5, 1}, {1, 4},
	}

	for _, m := range moves {
		reordered, err := svc.Reorder(context.Background(), ident, tasks[m.idx].ID, m.newPosition)
		require.NoError(t, err)

		got := positionsOf(reordered)
		sort.Ints(got)
		assert.Equal(t, []int{0, 1, 2, 3, 4, 5}, got, "positions must stay a permutation of the original set")
	}
}

func TestTaskReorderDoesNotTouchOtherOwners(t *testing.T) {
	repo := newFakeTaskRepo()
	svc := NewTaskService(repo)
	owner := ports.Identity{UserID: uuid.New()}
	other := ports.Identity{UserID: uuid.New()}
	mine := seedTasks(t, repo, owner, "m1", "m2", "m3")
	seedTasks(t, repo, other, "o1", "o2", "o3")

	_, err := svc.Reorder(context.Background(), owner, mine[0].ID, 2)
	require.NoError(t, err)

	theirs, err := svc.List(context.Background(), other)
	require.NoError(t, err)
	assert.Equal(t, []int{0, 1, 2}, positionsOf(theirs))
	assert.Equal(t, []string{"o1", "o2", "o3"}, descriptionsOf(theirs))
}

func TestTaskUpdateStampsUpdatedAt(t *testing.T) {
	repo := newFakeTaskRepo()
	svc := NewTaskService(repo)
	ident := ports.Identity{UserID: uuid.New()}
	tasks := seedTasks(t, repo, ident, "a")

	created := tasks[0].CreatedAt
	time.Sleep(5 * time.Millisecond)

	done := true
	updated, err := svc.Update(context.Background(), ident, tasks[0].ID, ports.UpdateTaskInput{IsCompleted: &done})
	require.NoError(t, err)
	assert.True(t, updated.UpdatedAt.After(created))
}
