package ui

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/desertthunder/ytsrc/internal/models"
	"github.com/desertthunder/ytsrc/internal/tasks"
)

// MsgKind enumerates all message types in the application.
type MsgKind int

// Msg represents all possible messages in the TUI (Elm-style message union).
type Msg struct {
	kind MsgKind
	data any
}

var (
	_ tea.Msg = Msg{}
)

const (
	MsgProgressUpdate MsgKind = iota
	MsgResolveComplete
	MsgFeedsFetched
)

type resolveComplete struct {
	result *tasks.ResolveResult
	err    error
}

type feedsFetched struct {
	videoID string
	info    *models.FeedInfo
	err     error
}

// progressUpdateMsg is the constructor for [MsgProgressUpdate]
func progressUpdateMsg(update tasks.ProgressUpdate) Msg {
	return Msg{kind: MsgProgressUpdate, data: update}
}

// resolveCompleteMsg is the constructor for [MsgResolveComplete]
func resolveCompleteMsg(result *tasks.ResolveResult, err error) Msg {
	return Msg{kind: MsgResolveComplete, data: resolveComplete{result, err}}
}

// feedsFetchedMsg is the constructor for [MsgFeedsFetched]
func feedsFetchedMsg(videoID string, info *models.FeedInfo, err error) Msg {
	return Msg{kind: MsgFeedsFetched, data: feedsFetched{videoID, info, err}}
}
