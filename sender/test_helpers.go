package sender

import "github.com/stretchr/testify/mock"

// MatchWorkItem creates a custom matcher for work item arguments in mocks
func MatchWorkItem(matcher func(WorkItem) bool) interface{} {
	return mock.MatchedBy(matcher)
}
