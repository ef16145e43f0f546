package cli

import (
	"bytes"
	"context"
	"io"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/dmitrijs2005/dailykeep/internal/client/config"
	"github.com/dmitrijs2005/dailykeep/internal/client/storage"
	"github.com/dmitrijs2005/dailykeep/internal/logging"
	"github.com/dmitrijs2005/dailykeep/internal/timex"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// syncBuffer is shared by the REPL and the reminder goroutine.
type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func newMemStore() *storage.Store {
	nop := logging.NewNop()
	return storage.NewStore(
		storage.DurableOpener(":memory:"),
		storage.NewFileBackend(context.Background(), "", 0, nop),
		nop,
	)
}

func stubPassword(t *testing.T, pw string) {
	t.Helper()
	orig := getPassword
	getPassword = func(io.Writer) ([]byte, error) { return []byte(pw), nil }
	t.Cleanup(func() { getPassword = orig })
}

func script(lines ...string) io.Reader {
	return strings.NewReader(strings.Join(lines, "\n") + "\n")
}

var testNow = time.Date(2024, time.May, 10, 21, 0, 0, 0, time.UTC)

func TestApp_FullSession(t *testing.T) {
	capturePrint(t)
	stubPassword(t, "secret1")

	out := &syncBuffer{}
	cfg := &config.Config{ReminderInterval: time.Hour}
	a := newApp(cfg, logging.NewNop(), timex.FixedClock{T: testNow}, newMemStore(), script(
		"register",
		"Ada",
		"ada@example.com",
		"addtask pay rent",
		"tasks",
		"reminders",
		"addexpense 25.5 Food lunch",
		"budget",
		"addloan",
		"Car",
		"1000",
		"100",
		"5",
		"2024-05-11",
		"loans",
		"reminders",
		"toggle loans",
		"reminders",
		"snooze 30",
		"snooze off",
		"logout",
		"exit",
	), out)

	a.Run(context.Background())

	got := out.String()
	assert.Contains(t, got, "Welcome, Ada!")
	assert.Contains(t, got, "Medium pay rent")
	assert.Contains(t, got, "Daily Expense Reminder: Update today's expenses")
	assert.Contains(t, got, "Logged 25.50 on 2024-05-10")
	assert.Contains(t, got, "Food")
	assert.Contains(t, got, "EMI 100.00 due 2024-05-11")
	assert.Contains(t, got, "EMI Reminder: Car EMI due on 2024-05-11")
	assert.Contains(t, got, "loans reminders off")
	assert.Contains(t, got, "Nothing due")
	assert.Contains(t, got, "Reminders resumed")
	assert.Contains(t, got, "Signed out")
	assert.Nil(t, a.user)
}

func TestApp_LoginWrongPassword(t *testing.T) {
	lines := capturePrint(t)
	stubPassword(t, "secret1")

	store := newMemStore()
	a := newApp(&config.Config{}, logging.NewNop(), timex.FixedClock{T: testNow}, store, script(
		"register", "Ada", "ada@example.com", "logout", "exit",
	), &syncBuffer{})
	a.Root(context.Background())
	a.stopReminders()

	stubPassword(t, "wrong-one")
	b := newApp(&config.Config{}, logging.NewNop(), timex.FixedClock{T: testNow}, store, script(
		"login ada@example.com", "tasks", "exit",
	), &syncBuffer{})
	b.Run(context.Background())

	assert.Nil(t, b.user)
	assert.Contains(t, *lines, "Unknown command: tasks")
}

func TestApp_ResumesSession(t *testing.T) {
	capturePrint(t)
	stubPassword(t, "secret1")

	store := newMemStore()
	first := newApp(&config.Config{}, logging.NewNop(), timex.FixedClock{T: testNow}, store, script(
		"register", "Ada", "ada@example.com", "exit",
	), &syncBuffer{})
	first.Root(context.Background())
	first.stopReminders()

	out := &syncBuffer{}
	second := newApp(&config.Config{}, logging.NewNop(), timex.FixedClock{T: testNow}, store, script("tasks", "exit"), out)
	second.Run(context.Background())

	require.NotNil(t, second.user)
	assert.Equal(t, "ada@example.com", second.user.Email)
	assert.Contains(t, out.String(), "Welcome back, Ada")
	assert.Contains(t, out.String(), "No tasks yet")
}
