// Package models defines the per-user records dailykeep persists: accounts,
// tasks, the encrypted budget and loan books, job applications and reminder
// settings.
package models
