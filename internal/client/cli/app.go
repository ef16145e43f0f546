package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/dmitrijs2005/dailykeep/internal/client/config"
	"github.com/dmitrijs2005/dailykeep/internal/client/models"
	"github.com/dmitrijs2005/dailykeep/internal/client/notify"
	"github.com/dmitrijs2005/dailykeep/internal/client/records"
	"github.com/dmitrijs2005/dailykeep/internal/client/reminders"
	"github.com/dmitrijs2005/dailykeep/internal/client/services"
	"github.com/dmitrijs2005/dailykeep/internal/client/storage"
	"github.com/dmitrijs2005/dailykeep/internal/logging"
	"github.com/dmitrijs2005/dailykeep/internal/timex"
)

type App struct {
	config *config.Config
	log    logging.Logger
	clock  timex.Clock
	store  *storage.Store

	authService      services.AuthService
	taskService      services.TaskService
	budgetService    services.BudgetService
	loanService      services.LoanService
	jobService       services.JobService
	reminderSettings services.ReminderSettingsService
	snapshots        *services.SnapshotLoader
	dispatcher       *notify.Dispatcher

	user   *models.User
	reader *bufio.Reader
	out    io.Writer

	panelMu sync.Mutex
	panel   reminders.Result

	cancelReminders context.CancelFunc
	remindersDone   chan struct{}
}

// NewApp opens the local store under c.DataDir and wires the services.
// The durable backend itself is opened lazily on first use.
func NewApp(c *config.Config, log logging.Logger) *App {
	ctx := context.Background()

	fallback := storage.NewFileBackend(ctx, filepath.Join(c.DataDir, storage.FallbackFileName), c.FallbackCapacity, log)
	store := storage.NewStore(storage.DurableOpener(c.DataDir), fallback, log)

	return newApp(c, log, timex.SystemClock{}, store, os.Stdin, os.Stdout)
}

func newApp(c *config.Config, log logging.Logger, clock timex.Clock, store *storage.Store, in io.Reader, out io.Writer) *App {
	rec := records.New(store, log)

	a := &App{
		config:           c,
		log:              log,
		clock:            clock,
		store:            store,
		authService:      services.NewAuthService(rec, clock, log),
		taskService:      services.NewTaskService(rec, clock),
		budgetService:    services.NewBudgetService(rec, clock, log),
		loanService:      services.NewLoanService(rec, clock, log),
		jobService:       services.NewJobService(rec, clock),
		reminderSettings: services.NewReminderSettingsService(rec, clock),
		dispatcher:       notify.NewDispatcher(notify.NewTerminalNotifier(out, false), log),
		reader:           bufio.NewReader(in),
		out:              out,
	}
	a.snapshots = &services.SnapshotLoader{
		Auth:      a.authService,
		Budget:    a.budgetService,
		Loans:     a.loanService,
		Jobs:      a.jobService,
		Reminders: a.reminderSettings,
	}
	return a
}

// Run resumes a saved session if there is one and blocks in the REPL until
// the user exits.
func (a *App) Run(ctx context.Context) {
	defer a.Close()

	if u, err := a.authService.CurrentUser(ctx); err == nil {
		a.user = u
		fmt.Fprintf(a.out, "Welcome back, %s\n", u.Name)
		a.startReminders(ctx)
	}
	a.Root(ctx)
}

// Close stops the reminder loop and releases the store.
func (a *App) Close() {
	a.stopReminders()
	if err := a.store.Close(); err != nil {
		a.log.Warn(context.Background(), "closing store", "error", err)
	}
}

func (a *App) isLoggedIn() bool {
	return a.user != nil
}

func (a *App) startReminders(ctx context.Context) {
	a.stopReminders()

	interval := time.Minute
	if a.config != nil && a.config.ReminderInterval > 0 {
		interval = a.config.ReminderInterval
	}
	s := notify.NewScheduler(a.snapshots, a.dispatcher, interval, a.clock, a.setPanel, a.log)

	rctx, cancel := context.WithCancel(ctx)
	done := make(chan struct{})
	a.cancelReminders = cancel
	a.remindersDone = done

	go func() {
		defer close(done)
		s.Run(rctx)
	}()
}

func (a *App) stopReminders() {
	if a.cancelReminders == nil {
		return
	}
	a.cancelReminders()
	<-a.remindersDone
	a.cancelReminders = nil
	a.remindersDone = nil
	a.setPanel("", reminders.Result{})
}

func (a *App) setPanel(_ string, res reminders.Result) {
	a.panelMu.Lock()
	defer a.panelMu.Unlock()
	a.panel = res
}

func (a *App) currentPanel() reminders.Result {
	a.panelMu.Lock()
	defer a.panelMu.Unlock()
	return a.panel
}
