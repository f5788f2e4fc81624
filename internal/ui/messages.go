package ui

import (
	"time"

	"mynotion/internal/entity"
	"mynotion/internal/store"
)

type tasksLoadedMsg struct {
	tasks []entity.Task
	err   error
}

type habitsLoadedMsg struct {
	habits []entity.Habit
	err    error
}

type linksLoadedMsg struct {
	links []entity.Link
	err   error
}

type notesLoadedMsg struct {
	notes []entity.Note
	err   error
}

type usageLoadedMsg struct {
	usage store.Usage
	err   error
}

// mutationDoneMsg reports the outcome of a create/update/delete and names
// the storage key whose pane should reload.
type mutationDoneMsg struct {
	key string
	err error
}

// storageChangedMsg arrives when the watcher sees another process modify a
// collection file.
type storageChangedMsg struct {
	key string
}

type tickMsg time.Time

type statusMsg struct {
	text  string
	isErr bool
}
