package services

import (
	"sync"
	"testing"
	"time"

	"golang.org/x/crypto/bcrypt"

	"task-manager.com/task-manager/internal/realtime"
	repository "task-manager.com/task-manager/internal/repositories"
	"task-manager.com/task-manager/internal/sessions"
	"task-manager.com/task-manager/internal/testutil"
)

type published struct {
	userID string
	event  realtime.Event
}

// recordingPublisher captures events instead of pushing them to sockets.
type recordingPublisher struct {
	mu     sync.Mutex
	events []published
}

func (p *recordingPublisher) Publish(userID string, event realtime.Event) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, published{userID: userID, event: event})
}

func (p *recordingPublisher) count() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.events)
}

type fixture struct {
	users     *repository.UserRepository
	prefs     *repository.PreferencesRepository
	tasks     *repository.TaskRepository
	store     *sessions.MemoryStore
	publisher *recordingPublisher
	auth      *AuthService
	taskSvc   *TaskService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	db := testutil.SetupTestDB(t)
	f := &fixture{
		users:     repository.NewUserRepository(db),
		prefs:     repository.NewPreferencesRepository(db),
		tasks:     repository.NewTaskRepository(db),
		store:     sessions.NewMemoryStore(),
		publisher: &recordingPublisher{},
	}

	f.auth = NewAuthService(f.users, f.store, "0123456789abcdef0123456789abcdef", time.Hour)
	f.auth.hashCost = bcrypt.MinCost
	f.taskSvc = NewTaskService(f.tasks, f.prefs, f.publisher)
	return f
}
