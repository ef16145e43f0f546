// Package keys builds the namespaced storage keys under which every logical
// record is persisted:
//
//	<namespace>:<record>[:<userID>][:v<schemaVersion>]
//
// User-scoped keys embed the user identifier, so two users can never collide.
package keys

import "fmt"

const (
	Namespace     = "task_manager_v1"
	SchemaVersion = 1
)

// Record names.
const (
	Users     = "users"
	Session   = "session"
	Tasks     = "tasks"
	Budget    = "budget"
	Loans     = "loans"
	Jobs      = "jobs"
	Reminders = "reminders"
)

// Global returns the key of a record shared by the whole device.
func Global(name string) string {
	return Namespace + ":" + name
}

// User returns the versioned key of a record owned by userID.
func User(name, userID string) string {
	return fmt.Sprintf("%s:%s:%s:v%d", Namespace, name, userID, SchemaVersion)
}
