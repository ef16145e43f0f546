// Package services contains the application services behind the dailykeep
// shell: local accounts, tasks, the encrypted budget and loan books, job
// applications and reminder settings.
//
// Every service persists through the record store under per-user keys and
// treats the user id as an explicit argument, never as ambient state.
package services
