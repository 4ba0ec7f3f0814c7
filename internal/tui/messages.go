package tui

import (
	"github.com/TerminusTerminal/invest-desk/internal/dashboard"
	"github.com/TerminusTerminal/invest-desk/internal/model"
	"github.com/TerminusTerminal/invest-desk/internal/resource"
	"github.com/TerminusTerminal/invest-desk/internal/session"
)

// Snapshot loading messages. Each carries the sequence-keyed result;
// the module's Apply decides whether the result is still current.
type investorsLoadedMsg struct {
	res resource.LoadResult[model.Investor]
}

type projectsLoadedMsg struct {
	res resource.LoadResult[model.Project]
}

type incentivesLoadedMsg struct {
	res resource.LoadResult[model.Incentive]
}

type applicationsLoadedMsg struct {
	res resource.LoadResult[model.Application]
}

type dashboardLoadedMsg struct {
	err  error
	view dashboard.View
}

type reportLoadedMsg struct {
	err error
}

type refsLoadedMsg struct {
	err error
}

// Mutation outcomes. A successful mutation triggers a re-fetch of the
// affected snapshot; the local copy is never patched in place.
type mutationDoneMsg struct {
	err    error
	screen Screen
}

type submittedMsg struct {
	err error
}

type summaryReadyMsg struct {
	err error
	key string
}

type exportDoneMsg struct {
	err  error
	path string
}

// Auth messages.
type loginDoneMsg struct {
	err  error
	sess session.Session
}

// errorMsg surfaces a failure in the status line.
type errorMsg struct {
	err error
}
