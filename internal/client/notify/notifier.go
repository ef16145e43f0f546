// Package notify surfaces reminders: a Dispatcher sends each reminder to
// the platform notifier at most once per process, and a Scheduler
// re-evaluates reminders on an interval for the signed-in user.
package notify

import (
	"context"
	"fmt"
	"io"
	"sync"
)

type Permission int

const (
	PermissionDefault Permission = iota
	PermissionGranted
	PermissionDenied
)

func (p Permission) String() string {
	switch p {
	case PermissionGranted:
		return "granted"
	case PermissionDenied:
		return "denied"
	}
	return "default"
}

// Notifier is a platform notification channel.
type Notifier interface {
	Permission() Permission
	RequestPermission(ctx context.Context) (Permission, error)
	Notify(ctx context.Context, title, body string) error
}

// TerminalNotifier prints notifications to a writer. Permission is granted
// on request unless the notifier was created muted.
type TerminalNotifier struct {
	mu    sync.Mutex
	w     io.Writer
	muted bool
	perm  Permission
}

func NewTerminalNotifier(w io.Writer, muted bool) *TerminalNotifier {
	return &TerminalNotifier{w: w, muted: muted}
}

func (n *TerminalNotifier) Permission() Permission {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.perm
}

func (n *TerminalNotifier) RequestPermission(context.Context) (Permission, error) {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.muted {
		n.perm = PermissionDenied
	} else {
		n.perm = PermissionGranted
	}
	return n.perm, nil
}

func (n *TerminalNotifier) Notify(_ context.Context, title, body string) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	_, err := fmt.Fprintf(n.w, "\n[reminder] %s: %s\n", title, body)
	return err
}
